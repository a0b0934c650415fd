package brands

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	byName map[string]Brand
	byID   map[string]Brand

	createErr   error
	createCalls int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byName: make(map[string]Brand), byID: make(map[string]Brand)}
}

func (r *fakeRepo) GetByName(ctx context.Context, name string) (Brand, error) {
	b, ok := r.byName[strings.ToLower(name)]
	if !ok {
		return Brand{}, ErrNotFound
	}
	return b, nil
}

func (r *fakeRepo) Create(ctx context.Context, brand Brand) error {
	r.createCalls++
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.byID[brand.ID]; ok {
		return ErrIDConflict
	}
	r.byID[brand.ID] = brand
	r.byName[strings.ToLower(brand.Name)] = brand
	return nil
}

func TestResolveCreatesWithGeneratedID(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	id, err := svc.Resolve(ctx, "Scribe")
	require.NoError(t, err)
	require.Len(t, id, 5)
	assert.Equal(t, "SC", id[:2])
	n, err := strconv.Atoi(id[2:])
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 100)
	assert.LessOrEqual(t, n, 999)

	// Case-insensitive reuse, no second insert.
	again, err := svc.Resolve(ctx, "scribe")
	require.NoError(t, err)
	assert.Equal(t, id, again)
	assert.Equal(t, 1, repo.createCalls)
}

func TestResolveTreatsNameVerbatim(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	first, err := svc.Resolve(ctx, "3DM")
	require.NoError(t, err)

	// Underscores and percent signs are literal characters, not wildcards:
	// "3_M" is its own brand, never an alias for "3DM".
	second, err := svc.Resolve(ctx, "3_M")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, repo.createCalls)
}

func TestResolveRejectsEmptyName(t *testing.T) {
	svc := NewService(newFakeRepo())
	_, err := svc.Resolve(context.Background(), "  ")
	require.ErrorIs(t, err, ErrNameRequired)
}

func TestResolveSurfacesIDConflictWithoutRetry(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = ErrIDConflict
	svc := NewService(repo)

	_, err := svc.Resolve(context.Background(), "Scribe")
	require.ErrorIs(t, err, ErrIDConflict)
	// One attempt only; the scheme has no retry loop.
	assert.Equal(t, 1, repo.createCalls)
}

func TestNewBrandIDShortNames(t *testing.T) {
	id := newBrandID("b")
	require.Len(t, id, 4)
	assert.Equal(t, "B", id[:1])
}
