package quotes

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/mostrador-pos/mostrador-pos/internal/catalog"
	"github.com/mostrador-pos/mostrador-pos/internal/export"
	"github.com/mostrador-pos/mostrador-pos/internal/platform/httpx"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	drafts   *DraftStore
	pdf      *export.PDFExporter
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service, drafts *DraftStore, pdf *export.PDFExporter) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		drafts:   drafts,
		pdf:      pdf,
		validate: validator.New(),
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"quotes": list})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	quote, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, quote)
}

func (h *Handler) Lines(w http.ResponseWriter, r *http.Request) {
	lines, err := h.service.GetLines(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"lines": lines})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// OpenDraft starts a fresh working quote and returns its view.
func (h *Handler) OpenDraft(w http.ResponseWriter, r *http.Request) {
	id, b := h.drafts.Open()
	httpx.JSON(w, http.StatusCreated, draftView(id, b))
}

// EditQuote loads a saved quote into a fresh working draft.
func (h *Handler) EditQuote(w http.ResponseWriter, r *http.Request) {
	id, b := h.drafts.Open()
	if err := h.service.StartEdit(r.Context(), b, chi.URLParam(r, "id")); err != nil {
		h.drafts.Close(id)
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, draftView(id, b))
}

func (h *Handler) ShowDraft(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "draftID")
	b, err := h.drafts.Get(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, draftView(id, b))
}

func (h *Handler) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	h.drafts.Close(chi.URLParam(r, "draftID"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SetClient(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "draftID")
	b, err := h.drafts.Get(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	var req ClientNameRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid payload", err.Error())
		return
	}
	b.SetClientName(req.ClientName)
	httpx.JSON(w, http.StatusOK, draftView(id, b))
}

func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "draftID")
	b, err := h.drafts.Get(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	var req AddItemRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid payload", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "Validation failed", err.Error())
		return
	}
	if err := h.service.AddProduct(r.Context(), b, req.ProductID); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, draftView(id, b))
}

// SetQuantity applies a quantity edit. Invalid values are dropped and the
// unchanged view is returned, mirroring how the counter UI keeps the last
// good value.
func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "draftID")
	b, err := h.drafts.Get(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid line index", err.Error())
		return
	}
	var req SetQuantityRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid payload", err.Error())
		return
	}
	b.SetQuantity(index, req.Quantity)
	httpx.JSON(w, http.StatusOK, draftView(id, b))
}

func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "draftID")
	b, err := h.drafts.Get(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid line index", err.Error())
		return
	}
	b.RemoveLine(index)
	httpx.JSON(w, http.StatusOK, draftView(id, b))
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "draftID")
	b, err := h.drafts.Get(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	quote, err := h.service.Save(r.Context(), b)
	if err != nil {
		h.respondError(w, err)
		return
	}
	h.drafts.Close(id)
	httpx.JSON(w, http.StatusOK, quote)
}

func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "draftID")
	b, err := h.drafts.Get(id)
	if err != nil {
		h.respondError(w, err)
		return
	}
	snap := b.Snapshot()
	if len(snap.Lines) == 0 {
		httpx.Problem(w, http.StatusUnprocessableEntity, "Nothing to export", "the quote has no lines")
		return
	}
	payload := export.QuotePayload{
		ClientName: snap.ClientName,
		GrandTotal: snap.GrandTotal,
	}
	for _, l := range snap.Lines {
		payload.Lines = append(payload.Lines, export.QuoteLine{
			Name:      l.Name,
			Brand:     l.Brand,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal(),
		})
	}
	pdf, err := h.pdf.RenderQuote(r.Context(), payload)
	if err != nil {
		h.logger.Error("quote pdf render failed", "error", err)
		httpx.Problem(w, http.StatusBadGateway, "Export failed", "the PDF renderer is unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.QuotePDFFilename(snap.ClientName)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Quote not found", err.Error())
	case errors.Is(err, ErrDraftNotFound):
		httpx.Problem(w, http.StatusNotFound, "Draft not found", err.Error())
	case errors.Is(err, ErrSaveInProgress):
		httpx.Problem(w, http.StatusConflict, "Save in progress", err.Error())
	case errors.Is(err, ErrClientNameRequired), errors.Is(err, ErrEmptyQuote), errors.Is(err, ErrNoLines):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Quote incomplete", err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		httpx.Problem(w, http.StatusNotFound, "Product not found", err.Error())
	case errors.Is(err, catalog.ErrBackendUnavailable):
		httpx.Problem(w, http.StatusServiceUnavailable, "Catalog unavailable", err.Error())
	case errors.Is(err, ErrBackendWrite):
		httpx.Problem(w, http.StatusBadGateway, "Storage write failed", err.Error())
	default:
		h.logger.Error("quotes request failed", "error", err)
		httpx.Problem(w, http.StatusInternalServerError, "Internal error", "unexpected failure")
	}
}
