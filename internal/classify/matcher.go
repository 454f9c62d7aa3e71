// Package classify routes CSV files into category folders based on their
// header signatures and records every decision in a run manifest.
package classify

import (
	"github.com/Veraticus/csvsmith/internal/header"
	"github.com/Veraticus/csvsmith/internal/model"
	"github.com/Veraticus/csvsmith/internal/sigconfig"
)

// Matcher decides which configured category, if any, a normalized header
// belongs to. Strategy and mode are fixed at construction; exact-match
// signature keys are precomputed so per-file matching never re-normalizes
// the configuration.
type Matcher struct {
	strategy model.MatchStrategy
	mode     model.Mode
	entries  []sigEntry
}

type sigEntry struct {
	category string
	columns  []string // normalized signature columns
	key      model.HeaderKey
}

// NewMatcher builds a matcher over the configured signatures. Signature
// columns are normalized with the same options applied to file headers.
func NewMatcher(sigs sigconfig.Signatures, mode model.Mode, strategy model.MatchStrategy, reader *header.Reader) *Matcher {
	entries := make([]sigEntry, 0, len(sigs))
	for _, sig := range sigs {
		norm := reader.Normalize(sig.Columns)
		entries = append(entries, sigEntry{
			category: sig.Category,
			columns:  norm,
			key:      model.NewHeaderKey(norm, mode),
		})
	}
	return &Matcher{strategy: strategy, mode: mode, entries: entries}
}

// Match returns the first matching category in configuration order, or
// false when no signature matches.
func (m *Matcher) Match(headerNorm []string) (string, bool) {
	if len(m.entries) == 0 {
		return "", false
	}

	if m.strategy == model.MatchContains {
		headerSet := make(map[string]struct{}, len(headerNorm))
		for _, col := range headerNorm {
			headerSet[col] = struct{}{}
		}
		for _, entry := range m.entries {
			if containsAll(headerSet, entry.columns) {
				return entry.category, true
			}
		}
		return "", false
	}

	key := model.NewHeaderKey(headerNorm, m.mode)
	for _, entry := range m.entries {
		if key.Equal(entry.key) {
			return entry.category, true
		}
	}
	return "", false
}

func containsAll(headerSet map[string]struct{}, required []string) bool {
	for _, col := range required {
		if _, ok := headerSet[col]; !ok {
			return false
		}
	}
	return true
}
