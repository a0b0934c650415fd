package quotes

import (
	"errors"
	"time"
)

// QuoteStatus tags a persisted quote's lifecycle position.
type QuoteStatus string

// QuoteStatusPending is the state every saved quote starts in. Terminal
// states are whatever the back office later sets; this service only ever
// writes pending.
const QuoteStatusPending QuoteStatus = "pendiente"

// Quote is a client-specific list of line items with a derived total that is
// persisted redundantly for cheap gallery rendering.
type Quote struct {
	ID             string      `json:"id"`
	ClientName     string      `json:"client_name"`
	Status         QuoteStatus `json:"status"`
	EstimatedTotal float64     `json:"estimated_total"`
	CreatedAt      time.Time   `json:"created_at"`
}

// QuoteLine references a product with name, brand and unit price captured at
// the moment it was added. Within one quote product references are unique.
type QuoteLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// Subtotal is the line's contribution to the grand total.
func (l QuoteLine) Subtotal() float64 {
	return l.UnitPrice * float64(l.Quantity)
}

var (
	// ErrNotFound indicates the referenced quote does not exist.
	ErrNotFound = errors.New("quotes: quote not found")
	// ErrBackendWrite indicates a persistence call failed; the operation is
	// treated as not applied and never retried automatically.
	ErrBackendWrite = errors.New("quotes: backend write failed")
	// ErrClientNameRequired blocks a save without a client name, before any
	// network call.
	ErrClientNameRequired = errors.New("quotes: client name is required")
	// ErrEmptyQuote blocks a save with no line items.
	ErrEmptyQuote = errors.New("quotes: quote has no line items")
	// ErrSaveInProgress signals a re-entrant save attempt; the attempt is a
	// no-op and the pending save continues undisturbed.
	ErrSaveInProgress = errors.New("quotes: save already in progress")
	// ErrNoLines indicates a persisted quote with no detail rows, which the
	// editor cannot load.
	ErrNoLines = errors.New("quotes: quote has no detail rows")
)
