package categories

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mostrador-pos/mostrador-pos/internal/platform/httpx"
)

// Handler serves the category names that feed the filter dropdowns.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/categories", h.List)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list categories", slog.Any("error", err))
		httpx.Problem(w, http.StatusServiceUnavailable, "Backend Unavailable", err.Error())
		return
	}
	if names == nil {
		names = []string{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"categories": names})
}
