package analytics

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mostrador-pos/mostrador-pos/internal/catalog"
	"github.com/mostrador-pos/mostrador-pos/internal/platform/httpx"
)

// Handler serves the dashboard derivations. Each endpoint takes its own
// dropdown selections so the rankings stay independently re-filterable.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/summary", h.Summary)
	r.Get("/low-stock", h.LowStock)
	r.Get("/top-stock", h.TopStock)
	r.Get("/best-sellers", h.BestSellers)
}

func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetSummary(r.Context())
	if err != nil {
		h.respondError(w, "dashboard summary", err)
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}

func (h *Handler) LowStock(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.service.GetLowStock(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.respondError(w, "low stock ranking", err)
		return
	}
	httpx.JSON(w, http.StatusOK, ranking)
}

func (h *Handler) TopStock(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ranking, err := h.service.GetTopStock(r.Context(), q.Get("category"), q.Get("brand"))
	if err != nil {
		h.respondError(w, "top stock ranking", err)
		return
	}
	httpx.JSON(w, http.StatusOK, ranking)
}

func (h *Handler) BestSellers(w http.ResponseWriter, r *http.Request) {
	ranking, err := h.service.GetBestSellers(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.respondError(w, "best sellers ranking", err)
		return
	}
	httpx.JSON(w, http.StatusOK, ranking)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, catalog.ErrBackendUnavailable) {
		httpx.Problem(w, http.StatusServiceUnavailable, "Backend Unavailable", err.Error())
		return
	}
	h.logger.Error(op, slog.Any("error", err))
	httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
}
