package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// digestSeparator delimits cell values before hashing. The ASCII Unit
// Separator almost never appears in CSV data, so ["ab","c"] and ["a","bc"]
// hash differently.
const digestSeparator = "\x1f"

// DefaultDigestColumn is the report column name for row digests.
const DefaultDigestColumn = "row_digest"

// RowDigest returns the SHA-256 hex digest of the given cell values.
func RowDigest(cells []string) string {
	sum := sha256.Sum256([]byte(strings.Join(cells, digestSeparator)))
	return hex.EncodeToString(sum[:])
}

// Digests computes one digest per row over the effective column selection.
func (t *Table) Digests(subset, exclude []string) ([]string, error) {
	idx, err := t.effectiveColumns(subset, exclude)
	if err != nil {
		return nil, err
	}

	digests := make([]string, len(t.Rows))
	for n, row := range t.Rows {
		cells := make([]string, len(idx))
		for j, i := range idx {
			cells[j] = cell(row, i)
		}
		digests[n] = RowDigest(cells)
	}
	return digests, nil
}

// WithDigests returns a copy of the table with a digest column appended.
func (t *Table) WithDigests(colname string, subset, exclude []string) (*Table, error) {
	if colname == "" {
		colname = DefaultDigestColumn
	}
	digests, err := t.Digests(subset, exclude)
	if err != nil {
		return nil, err
	}

	out := &Table{
		Columns: append(append([]string{}, t.Columns...), colname),
		Rows:    make([][]string, len(t.Rows)),
	}
	for n, row := range t.Rows {
		out.Rows[n] = append(append([]string{}, row...), digests[n])
	}
	return out, nil
}
