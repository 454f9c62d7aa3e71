package dataset

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Count pairs an item with its occurrence count.
type Count[K comparable] struct {
	Item K
	N    int
}

// CountDuplicates counts occurrences and returns items whose frequency is
// at or above threshold, sorted by count descending (first-seen order
// breaks ties).
func CountDuplicates[K comparable](items []K, threshold int) []Count[K] {
	counts := make(map[K]int)
	var order []K
	for _, item := range items {
		if counts[item] == 0 {
			order = append(order, item)
		}
		counts[item]++
	}

	var out []Count[K]
	for _, item := range order {
		if counts[item] >= threshold {
			out = append(out, Count[K]{Item: item, N: counts[item]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].N > out[j].N })
	return out
}

// DuplicateRows returns only the rows that participate in duplicate groups
// over the effective column selection, preserving original order.
func (t *Table) DuplicateRows(subset, exclude []string) (*Table, error) {
	digests, err := t.Digests(subset, exclude)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int, len(digests))
	for _, d := range digests {
		counts[d]++
	}

	out := &Table{Columns: t.Columns}
	for n, row := range t.Rows {
		if counts[digests[n]] > 1 {
			out.Rows = append(out.Rows, row)
		}
	}
	return out, nil
}

// KeepPolicy selects which member of a duplicate group survives dedupe.
type KeepPolicy string

// Keep policies.
const (
	KeepFirst KeepPolicy = "first"
	KeepLast  KeepPolicy = "last"
	KeepNone  KeepPolicy = "none"
)

// Validate checks that the policy is a known value.
func (p KeepPolicy) Validate() error {
	switch p {
	case KeepFirst, KeepLast, KeepNone:
		return nil
	}
	return fmt.Errorf("keep must be %q, %q, or %q, got %q", KeepFirst, KeepLast, KeepNone, p)
}

// DupeGroup describes one group of identical rows in a dedupe report.
type DupeGroup struct {
	Digest  string
	Indices []int
	Count   int
}

// Dedupe drops duplicate rows according to the keep policy and returns the
// surviving table plus a report of the duplicate groups, sorted by group
// size descending.
func (t *Table) Dedupe(subset, exclude []string, keep KeepPolicy) (*Table, []DupeGroup, error) {
	if err := keep.Validate(); err != nil {
		return nil, nil, err
	}
	digests, err := t.Digests(subset, exclude)
	if err != nil {
		return nil, nil, err
	}

	groups := make(map[string][]int, len(digests))
	var order []string
	for n, d := range digests {
		if len(groups[d]) == 0 {
			order = append(order, d)
		}
		groups[d] = append(groups[d], n)
	}

	surviving := make(map[int]struct{}, len(t.Rows))
	var report []DupeGroup
	for _, d := range order {
		indices := groups[d]
		if len(indices) > 1 {
			report = append(report, DupeGroup{Digest: d, Indices: indices, Count: len(indices)})
		}
		switch {
		case len(indices) == 1:
			surviving[indices[0]] = struct{}{}
		case keep == KeepFirst:
			surviving[indices[0]] = struct{}{}
		case keep == KeepLast:
			surviving[indices[len(indices)-1]] = struct{}{}
		}
	}
	sort.SliceStable(report, func(i, j int) bool { return report[i].Count > report[j].Count })

	out := &Table{Columns: t.Columns}
	for n, row := range t.Rows {
		if _, ok := surviving[n]; ok {
			out.Rows = append(out.Rows, row)
		}
	}
	return out, report, nil
}

// ReportTable renders a dedupe report as a table with digest, count, and
// semicolon-joined row indices.
func ReportTable(report []DupeGroup, digestCol string) *Table {
	if digestCol == "" {
		digestCol = DefaultDigestColumn
	}
	out := &Table{Columns: []string{digestCol, "count", "indices"}}
	for _, g := range report {
		indices := make([]string, len(g.Indices))
		for i, n := range g.Indices {
			indices[i] = strconv.Itoa(n)
		}
		out.Rows = append(out.Rows, []string{g.Digest, strconv.Itoa(g.Count), strings.Join(indices, ";")})
	}
	return out
}
