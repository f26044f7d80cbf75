package store

import (
	"slices"
	"strings"

	"github.com/rogersnm/arcedit/internal/model"
	"github.com/sahilm/fuzzy"
)

// Criteria selects and orders the archive list.
type Criteria struct {
	SearchText    string
	EmptyTagsOnly bool
	// SortByFilename is nil when the caller offers no sort control; that
	// sorts like true.
	SortByFilename *bool
	// Fuzzy matches SearchText as a subsequence of the filename.
	Fuzzy bool
}

func (c Criteria) Sorted() bool {
	return c.SortByFilename == nil || *c.SortByFilename
}

type row struct {
	entry model.Entry
	key   string
}

// Query returns the archives matching c. It never changes the document or
// the selection.
func (s *Store) Query(c Criteria) []model.Entry {
	if s.archives == nil {
		return nil
	}
	needle := s.fold.String(c.SearchText)

	var rows []row
	for i, rec := range s.archives.Items {
		if c.EmptyTagsOnly && rec.Get("tags").Truthy() {
			continue
		}
		a := s.archive(rec)
		key := s.fold.String(a.Filename)
		if needle != "" && !matches(needle, key, c.Fuzzy) {
			continue
		}
		if err := a.Validate(); err != nil {
			s.log.Warn("skipping archive with incorrect format", "index", i, "error", err)
			continue
		}
		rows = append(rows, row{entry: model.Entry{ID: a.ID, Filename: a.Filename}, key: key})
	}

	if c.Sorted() {
		slices.SortStableFunc(rows, s.compare)
	}

	entries := make([]model.Entry, len(rows))
	for i, r := range rows {
		entries[i] = r.entry
	}
	return entries
}

func (s *Store) compare(a, b row) int {
	if s.collator != nil {
		return s.collator.CompareString(a.entry.Filename, b.entry.Filename)
	}
	return strings.Compare(a.key, b.key)
}

func matches(needle, text string, fuzzyMatch bool) bool {
	if fuzzyMatch {
		return len(fuzzy.Find(needle, []string{text})) > 0
	}
	return strings.Contains(text, needle)
}
