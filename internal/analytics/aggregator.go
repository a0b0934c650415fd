package analytics

import (
	"math"
	"sort"

	"github.com/mostrador-pos/mostrador-pos/internal/catalog"
)

// Bucket groups one or more raw categories under a dashboard label.
type Bucket struct {
	Label      string
	Categories []string
}

// DefaultBuckets mirrors the dashboard's fixed composition bars.
var DefaultBuckets = []Bucket{
	{Label: "books", Categories: []string{"book"}},
	{Label: "stationery", Categories: []string{"stationery"}},
	{Label: "other", Categories: []string{"art", "office"}},
}

// CompositionSlice is one bucket's share of the record set.
type CompositionSlice struct {
	Label   string `json:"label"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

// Composition computes each bucket's percentage share of the record set,
// rounded to the nearest integer. The divisor floors at 1 so an empty set
// yields zero percentages instead of a division by zero.
func Composition(products []catalog.Product, buckets []Bucket) []CompositionSlice {
	total := len(products)
	if total < 1 {
		total = 1
	}
	slices := make([]CompositionSlice, 0, len(buckets))
	for _, bucket := range buckets {
		count := 0
		for _, p := range products {
			for _, cat := range bucket.Categories {
				if p.Category == cat {
					count++
					break
				}
			}
		}
		slices = append(slices, CompositionSlice{
			Label:   bucket.Label,
			Count:   count,
			Percent: int(math.Round(float64(count) / float64(total) * 100)),
		})
	}
	return slices
}

// TotalValuation sums price times stock over the whole record set.
func TotalValuation(products []catalog.Product) float64 {
	var total float64
	for _, p := range products {
		total += p.Price * float64(p.Stock)
	}
	return total
}

// LowStockCount counts records strictly below the low-stock threshold.
func LowStockCount(products []catalog.Product) int {
	count := 0
	for _, p := range products {
		if p.LowStock() {
			count++
		}
	}
	return count
}

// LowStockRanking lists the five scarcest records, ascending by stock,
// optionally restricted to one category. The ranking includes records above
// the threshold when nothing scarcer exists; the threshold only drives the
// flag and count.
func LowStockRanking(products []catalog.Product, category string) []catalog.Product {
	filtered := byCategory(products, category)
	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Stock < filtered[j].Stock })
	return top(filtered, 5)
}

// TopStock lists the five best stocked records, descending, restricted by
// category and brand selections.
func TopStock(products []catalog.Product, category, brand string) []catalog.Product {
	filtered := make([]catalog.Product, 0, len(products))
	for _, p := range byCategory(products, category) {
		if brand != "" && brand != catalog.CategoryAll && p.Brand != brand {
			continue
		}
		filtered = append(filtered, p)
	}
	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Stock > filtered[j].Stock })
	return top(filtered, 5)
}

// BestSellers lists the three records with the highest cumulative sales,
// ties broken by input order.
func BestSellers(products []catalog.Product, category string) []catalog.Product {
	filtered := byCategory(products, category)
	sort.SliceStable(filtered, func(i, j int) bool { return filtered[i].Sales > filtered[j].Sales })
	return top(filtered, 3)
}

// Brands returns the sorted distinct brand names, feeding the dashboard
// brand dropdown.
func Brands(products []catalog.Product) []string {
	seen := make(map[string]struct{}, len(products))
	var brands []string
	for _, p := range products {
		if p.Brand == "" {
			continue
		}
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		brands = append(brands, p.Brand)
	}
	sort.Strings(brands)
	return brands
}

func byCategory(products []catalog.Product, category string) []catalog.Product {
	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		if category != "" && category != catalog.CategoryAll && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

func top(products []catalog.Product, n int) []catalog.Product {
	if len(products) > n {
		return products[:n]
	}
	return products
}
