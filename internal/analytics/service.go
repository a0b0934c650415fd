package analytics

import (
	"context"

	"github.com/mostrador-pos/mostrador-pos/internal/catalog"
)

// Lister supplies the full record set the derivations work from. The
// catalog service satisfies it, mirror fallback included.
type Lister interface {
	List(ctx context.Context) ([]catalog.Product, error)
}

// Summary is the dashboard headline card: totals, valuation and the fixed
// composition bars.
type Summary struct {
	TotalProducts  int                `json:"total_products"`
	TotalValuation float64            `json:"total_valuation"`
	LowStockCount  int                `json:"low_stock_count"`
	Composition    []CompositionSlice `json:"composition"`
	Brands         []string           `json:"brands"`
}

// Ranking is one dashboard table: an ordered subset of products.
type Ranking struct {
	Products []catalog.Product `json:"products"`
}

// Service resolves dashboard derivations with cache-aware lookups. Every
// derivation recomputes fully from the record set; with hundreds of records
// the cache exists to spare the backend round trip, not the arithmetic.
type Service struct {
	lister Lister
	cache  *Cache
}

// NewService constructs the analytics service.
func NewService(lister Lister, cache *Cache) *Service {
	return &Service{lister: lister, cache: cache}
}

// GetSummary resolves the headline card.
func (s *Service) GetSummary(ctx context.Context) (Summary, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		products, err := s.lister.List(ctx)
		if err != nil {
			return Summary{}, err
		}
		return Summary{
			TotalProducts:  len(products),
			TotalValuation: TotalValuation(products),
			LowStockCount:  LowStockCount(products),
			Composition:    Composition(products, DefaultBuckets),
			Brands:         Brands(products),
		}, nil
	}

	var summary Summary
	if err := s.fetch(ctx, keySummary(), &summary, loader); err != nil {
		return Summary{}, err
	}
	return summary, nil
}

// GetLowStock resolves the scarcity ranking for one category selection.
func (s *Service) GetLowStock(ctx context.Context, category string) (Ranking, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		products, err := s.lister.List(ctx)
		if err != nil {
			return Ranking{}, err
		}
		return Ranking{Products: LowStockRanking(products, category)}, nil
	}

	var ranking Ranking
	if err := s.fetch(ctx, keyLowStock(category), &ranking, loader); err != nil {
		return Ranking{}, err
	}
	return ranking, nil
}

// GetTopStock resolves the best-stocked ranking for category and brand
// selections.
func (s *Service) GetTopStock(ctx context.Context, category, brand string) (Ranking, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		products, err := s.lister.List(ctx)
		if err != nil {
			return Ranking{}, err
		}
		return Ranking{Products: TopStock(products, category, brand)}, nil
	}

	var ranking Ranking
	if err := s.fetch(ctx, keyTopStock(category, brand), &ranking, loader); err != nil {
		return Ranking{}, err
	}
	return ranking, nil
}

// GetBestSellers resolves the sales ranking for one category selection.
func (s *Service) GetBestSellers(ctx context.Context, category string) (Ranking, error) {
	loader := func(ctx context.Context) (interface{}, error) {
		products, err := s.lister.List(ctx)
		if err != nil {
			return Ranking{}, err
		}
		return Ranking{Products: BestSellers(products, category)}, nil
	}

	var ranking Ranking
	if err := s.fetch(ctx, keyBestSellers(category), &ranking, loader); err != nil {
		return Ranking{}, err
	}
	return ranking, nil
}

func (s *Service) fetch(ctx context.Context, keyParts []string, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return err
		}
		return assign(value, dest)
	}
	key, err := s.cache.BuildKey(ctx, keyParts...)
	if err != nil {
		return err
	}
	return s.cache.FetchJSON(ctx, key, dest, loader)
}

func assign(value, dest interface{}) error {
	switch d := dest.(type) {
	case *Summary:
		d2, _ := value.(Summary)
		*d = d2
	case *Ranking:
		d2, _ := value.(Ranking)
		*d = d2
	}
	return nil
}
