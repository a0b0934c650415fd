package brands

import "errors"

// Brand is a name-keyed entity with a generated string identifier.
type Brand struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ErrNameRequired indicates a lookup or create with an empty name.
var ErrNameRequired = errors.New("brands: name is required")

// ErrIDConflict surfaces a collision of the generated identifier. The
// random-suffix scheme has no uniqueness retry loop; conflicts are reported,
// not resolved. A collision-free scheme is the known fix if this ever bites.
var ErrIDConflict = errors.New("brands: generated id already exists")
