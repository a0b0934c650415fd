package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CategoryAll is the wildcard sentinel meaning "no category restriction".
const CategoryAll = "all"

// SortKey selects the ordering applied by Sort.
type SortKey string

const (
	SortPriceHigh SortKey = "priceHigh"
	SortPriceLow  SortKey = "priceLow"
	SortNewest    SortKey = "newest"
	SortAlpha     SortKey = "alpha"
)

// Filter returns the subset of products whose name or brand contains the
// search term (case-insensitive) and whose category matches. Inputs are
// never mutated; the result is a fresh slice. Both checks run on every
// keystroke upstream, so the whole pass stays a single O(n) sweep.
func Filter(products []Product, term, category string) []Product {
	needle := strings.ToLower(strings.TrimSpace(term))
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if needle != "" &&
			!strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Brand), needle) {
			continue
		}
		if category != "" && category != CategoryAll && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Sort orders a copy of products by the given key. An unrecognized key is a
// stable no-op that preserves the input order. The alphabetical key uses a
// Spanish collation so tilde and accent ordering matches what users expect.
func Sort(products []Product, key SortKey) []Product {
	out := make([]Product, len(products))
	copy(out, products)

	switch key {
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].DateAdded.After(out[j].DateAdded) })
	case SortAlpha:
		c := collate.New(language.Spanish, collate.IgnoreCase)
		sort.SliceStable(out, func(i, j int) bool { return c.CompareString(out[i].Name, out[j].Name) < 0 })
	}
	return out
}
