package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/mostrador-pos/mostrador-pos/internal/catalog"
)

type mockLister struct {
	products []catalog.Product
	err      error
	calls    int
}

func (m *mockLister) List(ctx context.Context) ([]catalog.Product, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func newCachedService(t *testing.T, lister Lister) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(lister, NewCache(client, time.Minute))
}

func TestGetSummaryCaches(t *testing.T) {
	lister := &mockLister{products: sampleProducts()}
	svc := newCachedService(t, lister)
	ctx := context.Background()

	summary, err := svc.GetSummary(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.TotalProducts != 6 {
		t.Fatalf("expected 6 products, got %d", summary.TotalProducts)
	}
	if summary.LowStockCount != 2 {
		t.Fatalf("expected low stock count 2, got %d", summary.LowStockCount)
	}
	if lister.calls != 1 {
		t.Fatalf("expected 1 lister call, got %d", lister.calls)
	}

	// Second call should hit cache.
	if _, err := svc.GetSummary(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lister.calls != 1 {
		t.Fatalf("expected cached result, lister called %d times", lister.calls)
	}

	// Bumping the cache should trigger reload.
	if err := svc.cache.Bump(ctx); err != nil {
		t.Fatalf("bump failed: %v", err)
	}
	lister.products = lister.products[:3]
	summary, err = svc.GetSummary(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.TotalProducts != 3 {
		t.Fatalf("expected refreshed value 3, got %d", summary.TotalProducts)
	}
	if lister.calls != 2 {
		t.Fatalf("expected lister to refresh, calls %d", lister.calls)
	}
}

func TestRankingsKeyedBySelection(t *testing.T) {
	lister := &mockLister{products: sampleProducts()}
	svc := newCachedService(t, lister)
	ctx := context.Background()

	all, err := svc.GetLowStock(ctx, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	books, err := svc.GetLowStock(ctx, "book")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all.Products) == len(books.Products) {
		t.Fatalf("selections share a cache entry: %d vs %d", len(all.Products), len(books.Products))
	}
	if lister.calls != 2 {
		t.Fatalf("expected 2 lister calls, got %d", lister.calls)
	}

	// Same selection again is served from cache.
	if _, err := svc.GetLowStock(ctx, "book"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lister.calls != 2 {
		t.Fatalf("expected cached result, lister called %d times", lister.calls)
	}
}

func TestGetTopStockBrandSelection(t *testing.T) {
	lister := &mockLister{products: sampleProducts()}
	svc := newCachedService(t, lister)

	ranking, err := svc.GetTopStock(context.Background(), "", "Bic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertIDs(t, ranking.Products, "STA411", "OFF613")
}

func TestServiceWithoutCache(t *testing.T) {
	lister := &mockLister{products: sampleProducts()}
	svc := NewService(lister, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		summary, err := svc.GetSummary(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if summary.TotalProducts != 6 {
			t.Fatalf("expected 6 products, got %d", summary.TotalProducts)
		}
	}
	if lister.calls != 2 {
		t.Fatalf("expected a lister call per request without cache, got %d", lister.calls)
	}
}

func TestServicePropagatesListerError(t *testing.T) {
	wantErr := errors.New("backend down")
	lister := &mockLister{err: wantErr}
	svc := newCachedService(t, lister)

	if _, err := svc.GetBestSellers(context.Background(), ""); !errors.Is(err, wantErr) {
		t.Fatalf("expected lister error, got %v", err)
	}
}
