// Package header extracts and normalizes CSV header rows.
package header

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/Veraticus/csvsmith/internal/common"
)

// Supported file encodings.
const (
	// EncodingUTF8Sig strips a leading byte-order mark if present.
	EncodingUTF8Sig = "utf-8-sig"
	// EncodingUTF8 reads the file as-is.
	EncodingUTF8 = "utf-8"
)

const utf8BOM = "\uFEFF"

// Options controls header normalization.
type Options struct {
	Encoding  string
	Strip     bool
	Casefold  bool
	DropEmpty bool
}

// DefaultOptions returns the options used when none are configured:
// BOM-stripping UTF-8, whitespace trimming and blank-cell dropping on,
// case-folding off.
func DefaultOptions() Options {
	return Options{
		Encoding:  EncodingUTF8Sig,
		Strip:     true,
		Casefold:  false,
		DropEmpty: true,
	}
}

// Validate checks the encoding value. Unknown encodings are a construction-
// time configuration error, not a per-file one.
func (o Options) Validate() error {
	switch o.Encoding {
	case EncodingUTF8Sig, EncodingUTF8:
		return nil
	}
	return fmt.Errorf("%w: encoding must be %q or %q, got %q",
		common.ErrInvalidConfig, EncodingUTF8Sig, EncodingUTF8, o.Encoding)
}

// Reader extracts raw header rows from CSV files.
type Reader struct {
	opts Options
}

// NewReader creates a Reader with the given options.
func NewReader(opts Options) *Reader {
	return &Reader{opts: opts}
}

// Read returns the file's first row, or nil when the file has no usable
// header: wrong extension, unreadable or undecodable content, an empty
// first row, or a first row that is purely numeric (a data row).
func (r *Reader) Read(path string) []string {
	if !strings.EqualFold(filepath.Ext(path), ".csv") {
		return nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	row, err := r.readFirstRow(f)
	if err != nil || len(row) == 0 {
		return nil
	}

	for _, cell := range row {
		if !utf8.ValidString(cell) {
			return nil
		}
	}

	// A purely numeric first row is data, not a header.
	if isPurelyNumericRow(row) {
		return nil
	}

	return row
}

func (r *Reader) readFirstRow(f io.Reader) ([]string, error) {
	br := bufio.NewReader(f)
	if r.opts.Encoding == EncodingUTF8Sig {
		if peek, err := br.Peek(len(utf8BOM)); err == nil && string(peek) == utf8BOM {
			if _, err := br.Discard(len(utf8BOM)); err != nil {
				return nil, err
			}
		}
	}

	// encoding/csv skips blank lines, but an empty first row means the
	// file has no usable header, so catch it before parsing.
	first, err := br.Peek(1)
	if err != nil {
		return nil, err
	}
	if first[0] == '\n' || first[0] == '\r' {
		return nil, nil
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	return cr.Read()
}

// Normalize applies the configured strip/casefold/drop-empty toggles to a
// raw header row. It is idempotent.
func (r *Reader) Normalize(row []string) []string {
	out := make([]string, 0, len(row))
	for _, s := range row {
		if r.opts.Strip {
			s = strings.TrimSpace(s)
		}
		if r.opts.Casefold {
			s = strings.ToLower(s)
		}
		if r.opts.DropEmpty && s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// isPurelyNumericRow reports whether every non-blank cell parses as a plain
// integer or decimal number. A row with zero non-blank cells is not
// considered numeric.
func isPurelyNumericRow(row []string) bool {
	seen := false
	for _, cell := range row {
		cell = strings.TrimSpace(cell)
		if cell == "" {
			continue
		}
		seen = true
		if !isNumericCell(cell) {
			return false
		}
	}
	return seen
}

// isNumericCell allows decimal digits with at most one decimal point.
func isNumericCell(s string) bool {
	s = strings.Replace(s, ".", "", 1)
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
