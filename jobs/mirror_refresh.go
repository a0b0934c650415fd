package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

// MirrorRefresher forces the offline catalog copy back in sync with the
// backend.
type MirrorRefresher interface {
	RefreshMirror(ctx context.Context) error
}

// NewMirrorRefreshHandler processes TaskMirrorRefresh tasks.
func NewMirrorRefreshHandler(catalog MirrorRefresher, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload MirrorRefreshPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		if err := catalog.RefreshMirror(ctx); err != nil {
			logger.Error("mirror refresh", slog.Any("error", err))
			return err
		}
		logger.Info("mirror refreshed",
			slog.String("job", "mirror_refresh"),
			slog.Time("scheduled_for", payload.ScheduledFor),
		)
		return nil
	}
}
