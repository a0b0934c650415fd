package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/mostrador-pos/mostrador-pos/internal/catalog"
)

// ProductLister is the read side of the catalog the digest iterates over.
type ProductLister interface {
	List(ctx context.Context) ([]catalog.Product, error)
}

// NewLowStockDigestHandler processes TaskLowStockDigest tasks. The digest is
// an operational log entry per product under the threshold; the on-call
// channel tails the worker log.
func NewLowStockDigestHandler(products ProductLister, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload LowStockDigestPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		list, err := products.List(ctx)
		if err != nil {
			logger.Error("low stock digest", slog.Any("error", err))
			return err
		}
		count := 0
		for _, p := range list {
			if !p.LowStock() {
				continue
			}
			count++
			logger.Warn("low stock",
				slog.String("job", "low_stock_digest"),
				slog.String("product_id", p.ID),
				slog.String("name", p.Name),
				slog.Int("stock", p.Stock),
			)
		}
		logger.Info("low stock digest complete",
			slog.String("job", "low_stock_digest"),
			slog.Int("flagged", count),
			slog.Int("total", len(list)),
		)
		return nil
	}
}
