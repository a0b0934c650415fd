package categories

import "errors"

// Category is a name-keyed entity created lazily on first use.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ErrNameRequired indicates a lookup or create with an empty name.
var ErrNameRequired = errors.New("categories: name is required")
