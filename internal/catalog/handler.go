package catalog

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/mostrador-pos/mostrador-pos/internal/export"
	"github.com/mostrador-pos/mostrador-pos/internal/platform/httpx"
)

// Handler exposes the catalog over JSON.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs the catalog handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, err := h.service.Search(r.Context(), q.Get("search"), q.Get("category"), SortKey(q.Get("sort")))
	if err != nil {
		h.respondError(w, "list products", err)
		return
	}
	if products == nil {
		products = []Product{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"products": products, "total": len(products)})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, "get product", err)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	product, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.respondError(w, "create product", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, product)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	product, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		h.respondError(w, "update product", err)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, "delete product", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Sell(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.Sell(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, ErrOutOfStock) {
			httpx.Problem(w, http.StatusConflict, "Out Of Stock", err.Error())
			return
		}
		h.respondError(w, "sell product", err)
		return
	}
	httpx.JSON(w, http.StatusOK, product)
}

// ExportCSV streams the full catalog as a spreadsheet-compatible report.
func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		h.respondError(w, "export products", err)
		return
	}

	filename := export.InventoryCSVFilename(time.Now())
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := export.WriteInventoryCSV(w, toExportRows(products)); err != nil {
		h.logger.Error("write csv", slog.Any("error", err))
	}
}

func toExportRows(products []Product) []export.InventoryRow {
	rows := make([]export.InventoryRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, export.InventoryRow{
			ID:        p.ID,
			Name:      p.Name,
			Brand:     p.Brand,
			Category:  p.Category,
			Price:     p.Price,
			Cost:      p.Cost,
			Stock:     p.Stock,
			DateAdded: p.DateAdded,
		})
	}
	return rows
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (ProductRequest, bool) {
	var req ProductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Payload", err.Error())
		return req, false
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "Validation Failed", err.Error())
		return req, false
	}
	return req, true
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrBackendUnavailable):
		httpx.Problem(w, http.StatusServiceUnavailable, "Backend Unavailable", err.Error())
	case errors.Is(err, ErrBackendWrite):
		httpx.Problem(w, http.StatusBadGateway, "Backend Write Failed", err.Error())
	default:
		h.logger.Error(op, slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
