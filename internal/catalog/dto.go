package catalog

// ProductRequest carries the editable fields for create and update calls.
// Cost may exceed price; the margin is the owner's problem, not an
// invariant.
type ProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Brand       string  `json:"brand" validate:"required"`
	Category    string  `json:"category" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Cost        float64 `json:"cost" validate:"gte=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Description string  `json:"description"`
	Image       string  `json:"image" validate:"omitempty,url"`
}
