package quotes

import (
	"github.com/go-chi/chi/v5"
)

func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/quotes", h.List)
	r.Post("/quotes/drafts", h.OpenDraft)
	r.Get("/quotes/drafts/{draftID}", h.ShowDraft)
	r.Delete("/quotes/drafts/{draftID}", h.DiscardDraft)
	r.Put("/quotes/drafts/{draftID}/client", h.SetClient)
	r.Post("/quotes/drafts/{draftID}/items", h.AddItem)
	r.Put("/quotes/drafts/{draftID}/items/{index}", h.SetQuantity)
	r.Delete("/quotes/drafts/{draftID}/items/{index}", h.RemoveItem)
	r.Post("/quotes/drafts/{draftID}/save", h.Save)
	r.Get("/quotes/drafts/{draftID}/pdf", h.ExportPDF)
	r.Get("/quotes/{id}", h.Show)
	r.Get("/quotes/{id}/lines", h.Lines)
	r.Post("/quotes/{id}/edit", h.EditQuote)
	r.Delete("/quotes/{id}", h.Delete)
}
