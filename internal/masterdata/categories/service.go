package categories

import (
	"context"
	"errors"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Resolve returns the id for the named category, creating it on first use.
// New names are stored lowercased so the case-insensitive lookup stays the
// single source of identity.
func (s *Service) Resolve(ctx context.Context, name string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrNameRequired
	}
	existing, err := s.repo.GetByName(ctx, name)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return 0, err
	}
	created, err := s.repo.Create(ctx, strings.ToLower(name))
	if err != nil {
		return 0, err
	}
	return created.ID, nil
}

// List returns all category names for filter dropdowns.
func (s *Service) List(ctx context.Context) ([]string, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names, nil
}
