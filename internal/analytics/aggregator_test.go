package analytics

import (
	"testing"

	"github.com/mostrador-pos/mostrador-pos/internal/catalog"
)

func sampleProducts() []catalog.Product {
	return []catalog.Product{
		{ID: "BOO101", Name: "Cien Años de Soledad", Brand: "Penguin", Category: "book", Price: 350, Stock: 12, Sales: 31},
		{ID: "BOO205", Name: "El Principito", Brand: "Penguin", Category: "book", Price: 180, Stock: 3, Sales: 48},
		{ID: "STA310", Name: "Cuaderno", Brand: "Scribe", Category: "stationery", Price: 45, Stock: 60, Sales: 120},
		{ID: "STA411", Name: "Bolígrafo", Brand: "Bic", Category: "stationery", Price: 8, Stock: 200, Sales: 340},
		{ID: "ART512", Name: "Lápices x24", Brand: "Faber-Castell", Category: "art", Price: 240, Stock: 4, Sales: 17},
		{ID: "OFF613", Name: "Engrapadora", Brand: "Bic", Category: "office", Price: 120, Stock: 9, Sales: 7},
	}
}

func assertIDs(t *testing.T, got []catalog.Product, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d products, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestComposition(t *testing.T) {
	slices := Composition(sampleProducts(), DefaultBuckets)
	if len(slices) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(slices))
	}
	// 2 books, 2 stationery, 2 other out of 6.
	for _, s := range slices {
		if s.Count != 2 {
			t.Fatalf("bucket %s: expected count 2, got %d", s.Label, s.Count)
		}
		if s.Percent != 33 {
			t.Fatalf("bucket %s: expected 33%%, got %d", s.Label, s.Percent)
		}
	}
}

func TestCompositionEmptySetYieldsZeros(t *testing.T) {
	slices := Composition(nil, DefaultBuckets)
	for _, s := range slices {
		if s.Count != 0 || s.Percent != 0 {
			t.Fatalf("bucket %s: expected zeros, got count=%d percent=%d", s.Label, s.Count, s.Percent)
		}
	}
}

func TestTotalValuation(t *testing.T) {
	products := []catalog.Product{
		{Price: 10, Stock: 3},
		{Price: 2.5, Stock: 4},
	}
	if got := TotalValuation(products); got != 40 {
		t.Fatalf("expected 40, got %.2f", got)
	}
}

func TestLowStockCount(t *testing.T) {
	// Strictly below 5: BOO205 (3) and ART512 (4).
	if got := LowStockCount(sampleProducts()); got != 2 {
		t.Fatalf("expected 2, got %d", got)
	}
}

func TestLowStockRankingAscendingTopFive(t *testing.T) {
	ranking := LowStockRanking(sampleProducts(), "")
	// Well-stocked records fill out the table when fewer than five are scarce.
	assertIDs(t, ranking, "BOO205", "ART512", "OFF613", "BOO101", "STA310")
}

func TestLowStockRankingByCategory(t *testing.T) {
	ranking := LowStockRanking(sampleProducts(), "book")
	assertIDs(t, ranking, "BOO205", "BOO101")
}

func TestTopStockDescending(t *testing.T) {
	ranking := TopStock(sampleProducts(), "", "")
	assertIDs(t, ranking, "STA411", "STA310", "BOO101", "OFF613", "ART512")
}

func TestTopStockByBrand(t *testing.T) {
	ranking := TopStock(sampleProducts(), catalog.CategoryAll, "Bic")
	assertIDs(t, ranking, "STA411", "OFF613")
}

func TestBestSellersTopThree(t *testing.T) {
	ranking := BestSellers(sampleProducts(), "")
	assertIDs(t, ranking, "STA411", "STA310", "BOO205")
}

func TestBestSellersTiesKeepInputOrder(t *testing.T) {
	products := []catalog.Product{
		{ID: "A", Sales: 10},
		{ID: "B", Sales: 10},
		{ID: "C", Sales: 10},
		{ID: "D", Sales: 10},
	}
	assertIDs(t, BestSellers(products, ""), "A", "B", "C")
}

func TestBrandsDistinctSorted(t *testing.T) {
	brands := Brands(sampleProducts())
	want := []string{"Bic", "Faber-Castell", "Penguin", "Scribe"}
	if len(brands) != len(want) {
		t.Fatalf("expected %v, got %v", want, brands)
	}
	for i := range want {
		if brands[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, brands)
		}
	}
}

func TestBrandsSkipsEmpty(t *testing.T) {
	brands := Brands([]catalog.Product{{Brand: ""}, {Brand: "Bic"}})
	if len(brands) != 1 || brands[0] != "Bic" {
		t.Fatalf("expected [Bic], got %v", brands)
	}
}
