package brands

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Resolve returns the id for the named brand, creating it on first use.
func (s *Service) Resolve(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	existing, err := s.repo.GetByName(ctx, name)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return "", err
	}

	brand := Brand{ID: newBrandID(name), Name: name}
	if err := s.repo.Create(ctx, brand); err != nil {
		return "", err
	}
	return brand.ID, nil
}

// newBrandID builds an identifier from the first two characters of the name
// plus a random numeric suffix in [100, 999]. Collisions surface from the
// insert as ErrIDConflict and are not retried.
func newBrandID(name string) string {
	prefix := []rune(strings.ToUpper(name))
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	return fmt.Sprintf("%s%d", string(prefix), 100+rand.IntN(900))
}
