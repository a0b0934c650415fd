package quotes

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mostrador-pos/mostrador-pos/internal/catalog"
)

// ProductGetter resolves products the builder adds to the working set.
type ProductGetter interface {
	Get(ctx context.Context, id string) (catalog.Product, error)
}

// Service owns quote persistence and drives builder saves.
type Service struct {
	repo     Repository
	products ProductGetter
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs the quote service.
func NewService(repo Repository, products ProductGetter, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		repo:     repo,
		products: products,
		logger:   logger,
		now:      time.Now,
	}
}

// List returns all persisted quote summaries, newest first.
func (s *Service) List(ctx context.Context) ([]Quote, error) {
	return s.repo.List(ctx)
}

// Get resolves one persisted quote summary.
func (s *Service) Get(ctx context.Context, id string) (Quote, error) {
	return s.repo.Get(ctx, id)
}

// GetLines resolves a quote's detail rows.
func (s *Service) GetLines(ctx context.Context, id string) ([]QuoteLine, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.GetLines(ctx, id)
}

// Delete removes a persisted quote and its detail rows.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if err == nil || err == ErrNotFound {
		return err
	}
	return fmt.Errorf("%w: %v", ErrBackendWrite, err)
}

// StartEdit loads a persisted quote into the builder and tags the working
// set with the source id so the eventual save updates instead of creating.
func (s *Service) StartEdit(ctx context.Context, b *Builder, quoteID string) error {
	quote, err := s.repo.Get(ctx, quoteID)
	if err != nil {
		return err
	}
	lines, err := s.repo.GetLines(ctx, quoteID)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return ErrNoLines
	}
	b.StartEdit(quote, lines)
	return nil
}

// AddProduct resolves the product and adds one unit to the working set,
// capturing its current name, brand and price.
func (s *Service) AddProduct(ctx context.Context, b *Builder, productID string) error {
	product, err := s.products.Get(ctx, productID)
	if err != nil {
		return err
	}
	b.AddProduct(product)
	return nil
}

// Save validates and persists the builder's working set: an update when the
// set was loaded from a persisted quote, a create otherwise. The builder's
// guard makes re-entrant saves no-ops while one is pending.
func (s *Service) Save(ctx context.Context, b *Builder) (Quote, error) {
	snap, err := b.BeginSave()
	if err != nil {
		return Quote{}, err
	}

	quote := Quote{
		ID:             snap.EditingID,
		ClientName:     snap.ClientName,
		Status:         QuoteStatusPending,
		EstimatedTotal: snap.GrandTotal,
		CreatedAt:      s.now(),
	}

	if snap.EditingID != "" {
		// Updates keep the original creation timestamp and status; reflect
		// them in the response instead of this save's clock.
		existing, gerr := s.repo.Get(ctx, snap.EditingID)
		if gerr != nil {
			b.EndSave(false)
			if gerr == ErrNotFound {
				return Quote{}, gerr
			}
			return Quote{}, fmt.Errorf("%w: %v", ErrBackendWrite, gerr)
		}
		quote.CreatedAt = existing.CreatedAt
		quote.Status = existing.Status
		err = s.repo.Update(ctx, snap.EditingID, snap.ClientName, snap.GrandTotal, snap.Lines)
	} else {
		quote.ID = uuid.NewString()
		err = s.repo.Create(ctx, quote, snap.Lines)
	}
	if err != nil {
		b.EndSave(false)
		s.logger.Error("save quote failed", slog.Any("error", err))
		if err == ErrNotFound {
			return Quote{}, err
		}
		return Quote{}, fmt.Errorf("%w: %v", ErrBackendWrite, err)
	}

	b.EndSave(true)
	return quote, nil
}
