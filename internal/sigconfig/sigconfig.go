// Package sigconfig loads category signature configuration.
//
// The signature file is a JSON object mapping category names to their
// expected columns. Category order is significant for contains matching
// (first match wins), so the object is decoded token-by-token rather than
// into a Go map, which would discard it.
package sigconfig

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/csvsmith/internal/common"
)

// Signature pairs a category with its expected columns.
type Signature struct {
	Category string
	Columns  []string
}

// Signatures is an ordered signature list; the order is the configuration
// file's key order.
type Signatures []Signature

// Load reads and parses a signature file.
func Load(path string) (Signatures, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open signature config: %w", err)
	}
	defer f.Close()

	sigs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signature config %s: %w", path, err)
	}
	return sigs, nil
}

// Parse decodes a signature JSON object, preserving key order.
func Parse(r io.Reader) (Signatures, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: signature config must be a JSON object", common.ErrInvalidConfig)
	}

	var sigs Signatures
	seen := make(map[string]struct{})
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
		}
		category, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: unexpected token %v", common.ErrInvalidConfig, keyTok)
		}
		if _, dup := seen[category]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", common.ErrInvalidConfig, category)
		}
		seen[category] = struct{}{}

		var columns []string
		if err := dec.Decode(&columns); err != nil {
			return nil, fmt.Errorf("%w: category %q: expected a list of column names: %v",
				common.ErrInvalidConfig, category, err)
		}
		sigs = append(sigs, Signature{Category: category, Columns: columns})
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}
	return sigs, nil
}
