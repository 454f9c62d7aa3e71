// Package model defines the core domain types used throughout csvsmith.
package model

import (
	"fmt"
	"slices"
	"sort"
)

// Mode controls how header signatures are keyed and compared.
type Mode string

// Comparison modes.
const (
	// ModeStrict preserves column order and duplicates.
	ModeStrict Mode = "strict"
	// ModeRelaxed compares the sorted, deduplicated column set.
	ModeRelaxed Mode = "relaxed"
)

// Validate checks that the mode is a known value.
func (m Mode) Validate() error {
	switch m {
	case ModeStrict, ModeRelaxed:
		return nil
	}
	return fmt.Errorf("mode must be %q or %q, got %q", ModeStrict, ModeRelaxed, m)
}

// MatchStrategy controls how signatures are compared against headers.
type MatchStrategy string

// Match strategies.
const (
	// MatchExact requires the signature to equal the header key precisely.
	MatchExact MatchStrategy = "exact"
	// MatchContains requires the signature's columns to all be present in
	// the header; extra columns are allowed.
	MatchContains MatchStrategy = "contains"
)

// Validate checks that the strategy is a known value.
func (s MatchStrategy) Validate() error {
	switch s {
	case MatchExact, MatchContains:
		return nil
	}
	return fmt.Errorf("match must be %q or %q, got %q", MatchExact, MatchContains, s)
}

// HeaderKey is an immutable header signature. Under strict mode the columns
// preserve file order and duplicates; under relaxed mode they are the sorted,
// deduplicated set. Keys built with different modes are not meaningfully
// comparable.
type HeaderKey struct {
	Mode    Mode
	Columns []string
}

// NewHeaderKey builds a key for the given normalized columns.
func NewHeaderKey(columns []string, mode Mode) HeaderKey {
	if mode == ModeStrict {
		return HeaderKey{Mode: ModeStrict, Columns: slices.Clone(columns)}
	}

	seen := make(map[string]struct{}, len(columns))
	distinct := make([]string, 0, len(columns))
	for _, c := range columns {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		distinct = append(distinct, c)
	}
	sort.Strings(distinct)
	return HeaderKey{Mode: ModeRelaxed, Columns: distinct}
}

// Equal reports whether two keys have the same mode and column sequence.
func (k HeaderKey) Equal(other HeaderKey) bool {
	return k.Mode == other.Mode && slices.Equal(k.Columns, other.Columns)
}
