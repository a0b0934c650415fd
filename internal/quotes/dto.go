package quotes

// ClientNameRequest sets the client the working quote is for.
type ClientNameRequest struct {
	ClientName string `json:"client_name" validate:"required"`
}

// AddItemRequest adds one unit of a product to the working set.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// SetQuantityRequest replaces a line's quantity. The value arrives as the
// raw input text; the builder rejects anything that is not a positive
// integer.
type SetQuantityRequest struct {
	Quantity string `json:"quantity"`
}

// DraftLine is one rendered row of the working set. The index is derived
// from the current list on every response; clients must never cache it
// across mutations.
type DraftLine struct {
	Index     int     `json:"index"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	Subtotal  float64 `json:"subtotal"`
}

// DraftView is the full rendered state of a working quote.
type DraftView struct {
	ID         string      `json:"id"`
	State      State       `json:"state"`
	EditingID  string      `json:"editing_id,omitempty"`
	ClientName string      `json:"client_name"`
	Lines      []DraftLine `json:"lines"`
	GrandTotal float64     `json:"grand_total"`
}

func draftView(id string, b *Builder) DraftView {
	lines := b.Lines()
	view := DraftView{
		ID:         id,
		State:      b.State(),
		EditingID:  b.EditingID(),
		ClientName: b.ClientName(),
		Lines:      make([]DraftLine, 0, len(lines)),
		GrandTotal: b.GrandTotal(),
	}
	for i, l := range lines {
		view.Lines = append(view.Lines, DraftLine{
			Index:     i,
			ProductID: l.ProductID,
			Name:      l.Name,
			Brand:     l.Brand,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal(),
		})
	}
	return view
}
