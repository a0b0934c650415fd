package catalog

import (
	"errors"
	"time"
)

// Product is a catalog record with category and brand denormalized to plain
// names. The two-shape polymorphism of upstream payloads (name vs {id,name})
// never crosses the repository boundary.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand"`
	Category    string    `json:"category"`
	Price       float64   `json:"price"`
	Cost        float64   `json:"cost"`
	Stock       int       `json:"stock"`
	Sales       int       `json:"sales"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image,omitempty"`
	DateAdded   time.Time `json:"date_added"`
}

// LowStockThreshold marks a product as low stock when its quantity is
// strictly below this value.
const LowStockThreshold = 5

// LowStock reports whether the product needs restocking.
func (p Product) LowStock() bool {
	return p.Stock < LowStockThreshold
}

// ErrBackendUnavailable indicates the remote store could not be reached for
// a read. Callers recover through the local mirror.
var ErrBackendUnavailable = errors.New("catalog: backend unavailable")

// ErrBackendWrite indicates a create/update/delete against the remote store
// failed. The operation is treated as not applied and is never retried
// automatically.
var ErrBackendWrite = errors.New("catalog: backend write failed")

// ErrNotFound indicates the referenced product does not exist.
var ErrNotFound = errors.New("catalog: product not found")

// ErrOutOfStock indicates a sale was attempted with zero stock remaining.
var ErrOutOfStock = errors.New("catalog: no stock available")
