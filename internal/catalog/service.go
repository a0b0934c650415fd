package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

// CategoryResolver looks up a category by name, creating it when absent.
type CategoryResolver interface {
	Resolve(ctx context.Context, name string) (int64, error)
}

// BrandResolver looks up a brand by name, creating it when absent.
type BrandResolver interface {
	Resolve(ctx context.Context, name string) (string, error)
}

// Invalidator is notified after every successful write so derived views can
// drop stale data.
type Invalidator interface {
	Bump(ctx context.Context) error
}

// FallbackCounter records reads served from the mirror instead of the backend.
type FallbackCounter interface {
	MirrorFallback()
}

// Service coordinates the remote repository with the local mirror. Reads
// fall back to the mirror when the backend is unreachable; writes are
// fire-and-forget against the backend and never touch the mirror on
// failure, for every operation alike.
type Service struct {
	repo        Repository
	mirror      *Mirror
	categories  CategoryResolver
	brands      BrandResolver
	invalidator Invalidator
	fallbacks   FallbackCounter
	logger      *slog.Logger
	group       singleflight.Group
	now         func() time.Time
}

// NewService constructs the catalog service.
func NewService(repo Repository, mirror *Mirror, categories CategoryResolver, brands BrandResolver, invalidator Invalidator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:        repo,
		mirror:      mirror,
		categories:  categories,
		brands:      brands,
		invalidator: invalidator,
		logger:      logger,
		now:         time.Now,
	}
}

// SetFallbackCounter attaches an optional counter for mirror-served reads.
func (s *Service) SetFallbackCounter(c FallbackCounter) {
	s.fallbacks = c
}

func (s *Service) countFallback() {
	if s.fallbacks != nil {
		s.fallbacks.MirrorFallback()
	}
}

// List returns the full record set, newest first. Concurrent callers share a
// single backend fetch.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	v, err, _ := s.group.Do("catalog.list", func() (any, error) {
		products, err := s.repo.List(ctx)
		if err != nil {
			s.logger.Warn("catalog fetch failed, serving mirror", slog.Any("error", err))
			cached, mErr := s.mirror.Load(ctx)
			if mErr != nil {
				return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
			}
			s.countFallback()
			return cached, nil
		}
		if err := s.mirror.Store(ctx, products); err != nil {
			s.logger.Warn("mirror store failed", slog.Any("error", err))
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Product), nil
}

// Search applies the filter/sort engine on top of List.
func (s *Service) Search(ctx context.Context, term, category string, key SortKey) ([]Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return Sort(Filter(products, term, category), key), nil
}

// Get resolves a single product, scanning the mirror when the backend is
// down.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	p, err := s.repo.Get(ctx, id)
	if err == nil || err == ErrNotFound {
		return p, err
	}
	s.logger.Warn("catalog get failed, serving mirror", slog.Any("error", err))
	cached, mErr := s.mirror.Load(ctx)
	if mErr != nil {
		return Product{}, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	s.countFallback()
	for _, c := range cached {
		if c.ID == id {
			return c, nil
		}
	}
	return Product{}, ErrNotFound
}

// Create registers a new product, lazily creating its category and brand.
func (s *Service) Create(ctx context.Context, req ProductRequest) (Product, error) {
	categoryID, brandID, err := s.resolveRefs(ctx, req.Category, req.Brand)
	if err != nil {
		return Product{}, err
	}

	p := Product{
		ID:          newProductID(req.Category),
		Name:        req.Name,
		Brand:       req.Brand,
		Category:    req.Category,
		Price:       req.Price,
		Cost:        req.Cost,
		Stock:       req.Stock,
		Description: req.Description,
		Image:       req.Image,
		DateAdded:   s.now(),
	}
	if err := s.repo.Create(ctx, p, categoryID, brandID); err != nil {
		return Product{}, fmt.Errorf("%w: %v", ErrBackendWrite, err)
	}
	s.afterWrite(ctx)
	return p, nil
}

// Update replaces the editable fields of an existing product. Identifier,
// creation timestamp and cumulative sales are preserved.
func (s *Service) Update(ctx context.Context, id string, req ProductRequest) (Product, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		if err == ErrNotFound {
			return Product{}, err
		}
		return Product{}, fmt.Errorf("%w: %v", ErrBackendWrite, err)
	}

	categoryID, brandID, err := s.resolveRefs(ctx, req.Category, req.Brand)
	if err != nil {
		return Product{}, err
	}

	p := existing
	p.Name = req.Name
	p.Brand = req.Brand
	p.Category = req.Category
	p.Price = req.Price
	p.Cost = req.Cost
	p.Stock = req.Stock
	p.Description = req.Description
	if req.Image != "" {
		p.Image = req.Image
	}

	if err := s.repo.Update(ctx, p, categoryID, brandID); err != nil {
		if err == ErrNotFound {
			return Product{}, err
		}
		return Product{}, fmt.Errorf("%w: %v", ErrBackendWrite, err)
	}
	s.afterWrite(ctx)
	return p, nil
}

// Delete removes a product. A failed delete leaves the mirror untouched.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if err == ErrNotFound {
			return err
		}
		return fmt.Errorf("%w: %v", ErrBackendWrite, err)
	}
	s.afterWrite(ctx)
	return nil
}

// Sell records a single-unit sale: stock down one, sales up one.
func (s *Service) Sell(ctx context.Context, id string) (Product, error) {
	if err := s.repo.Sell(ctx, id); err != nil {
		if err == ErrNotFound || err == ErrOutOfStock {
			return Product{}, err
		}
		return Product{}, fmt.Errorf("%w: %v", ErrBackendWrite, err)
	}
	s.afterWrite(ctx)
	return s.repo.Get(ctx, id)
}

// RefreshMirror forces a full backend read into the mirror. Used by the
// scheduled refresh so the offline copy stays fresh between writes.
func (s *Service) RefreshMirror(ctx context.Context) error {
	products, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return s.mirror.Store(ctx, products)
}

func (s *Service) resolveRefs(ctx context.Context, category, brand string) (int64, string, error) {
	categoryID, err := s.categories.Resolve(ctx, category)
	if err != nil {
		return 0, "", fmt.Errorf("%w: resolve category: %v", ErrBackendWrite, err)
	}
	brandID, err := s.brands.Resolve(ctx, brand)
	if err != nil {
		return 0, "", fmt.Errorf("%w: resolve brand: %v", ErrBackendWrite, err)
	}
	return categoryID, brandID, nil
}

// afterWrite refreshes the mirror from the backend and invalidates derived
// caches. Runs only after a successful write.
func (s *Service) afterWrite(ctx context.Context) {
	if products, err := s.repo.List(ctx); err == nil {
		if err := s.mirror.Store(ctx, products); err != nil {
			s.logger.Warn("mirror refresh failed", slog.Any("error", err))
		}
	}
	if s.invalidator != nil {
		if err := s.invalidator.Bump(ctx); err != nil {
			s.logger.Warn("analytics invalidation failed", slog.Any("error", err))
		}
	}
}

// newProductID derives an identifier from the category prefix plus a random
// three-digit suffix. Collisions are possible and deliberately not retried;
// the insert surfaces the conflict instead.
func newProductID(category string) string {
	prefix := []rune(strings.ToUpper(strings.TrimSpace(category)))
	if len(prefix) == 0 {
		prefix = []rune("GEN")
	}
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	return fmt.Sprintf("%s%d", string(prefix), 100+rand.IntN(900))
}
