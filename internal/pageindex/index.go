// Package pageindex partitions normalized entries by their page hints.
package pageindex

import (
	"sort"

	"github.com/ledgerlens/ledgerlens/internal/model"
)

// Index maps page numbers to the entries hinted to them, preserving input
// order within a page. Entries without a page hint land in Fallback and are
// never attempted against any page. Built once per document load.
type Index struct {
	byPage   map[int][]model.AnchorableEntry
	Fallback []model.AnchorableEntry
}

// Build partitions entries by page number. The partition is a pure function
// of the input list: building twice from the same entries yields identical
// buckets in identical order.
func Build(entries []model.AnchorableEntry) *Index {
	idx := &Index{byPage: make(map[int][]model.AnchorableEntry)}
	for _, entry := range entries {
		if entry.PageNumber == nil {
			idx.Fallback = append(idx.Fallback, entry)
			continue
		}
		page := *entry.PageNumber
		idx.byPage[page] = append(idx.byPage[page], entry)
	}
	return idx
}

// Page returns the entries hinted to the given page, in input order.
func (idx *Index) Page(page int) []model.AnchorableEntry {
	return idx.byPage[page]
}

// Pages returns the page numbers that have at least one entry, ascending.
func (idx *Index) Pages() []int {
	pages := make([]int, 0, len(idx.byPage))
	for page := range idx.byPage {
		pages = append(pages, page)
	}
	sort.Ints(pages)
	return pages
}

// Len returns the total number of indexed entries including the fallback
// bucket.
func (idx *Index) Len() int {
	n := len(idx.Fallback)
	for _, bucket := range idx.byPage {
		n += len(bucket)
	}
	return n
}
