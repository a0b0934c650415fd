package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	products map[string]Product

	listErr   error
	createErr error
	updateErr error
	deleteErr error
	sellErr   error

	listCalls int
}

func newFakeRepo(products ...Product) *fakeRepo {
	r := &fakeRepo{products: make(map[string]Product)}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeRepo) List(ctx context.Context) ([]Product, error) {
	r.listCalls++
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeRepo) Get(ctx context.Context, id string) (Product, error) {
	if r.listErr != nil {
		return Product{}, r.listErr
	}
	p, ok := r.products[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}

func (r *fakeRepo) Create(ctx context.Context, p Product, categoryID int64, brandID string) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeRepo) Update(ctx context.Context, p Product, categoryID int64, brandID string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.products[p.ID]; !ok {
		return ErrNotFound
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.products[id]; !ok {
		return ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeRepo) Sell(ctx context.Context, id string) error {
	if r.sellErr != nil {
		return r.sellErr
	}
	p, ok := r.products[id]
	if !ok {
		return ErrNotFound
	}
	if p.Stock <= 0 {
		return ErrOutOfStock
	}
	p.Stock--
	p.Sales++
	r.products[id] = p
	return nil
}

type fakeResolver struct{ nextID int64 }

func (f *fakeResolver) Resolve(ctx context.Context, name string) (int64, error) {
	f.nextID++
	return f.nextID, nil
}

type fakeBrandResolver struct{}

func (fakeBrandResolver) Resolve(ctx context.Context, name string) (string, error) {
	return "BR101", nil
}

type countingInvalidator struct{ bumps int }

func (c *countingInvalidator) Bump(ctx context.Context) error {
	c.bumps++
	return nil
}

func newTestService(t *testing.T, repo Repository) (*Service, *Mirror, *countingInvalidator) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	mirror := NewMirror(client, "test:mirror")
	inv := &countingInvalidator{}
	svc := NewService(repo, mirror, &fakeResolver{}, fakeBrandResolver{}, inv, slog.Default())
	return svc, mirror, inv
}

func productRequest(name string) ProductRequest {
	return ProductRequest{
		Name:     name,
		Brand:    "Scribe",
		Category: "papeleria",
		Price:    45,
		Cost:     22,
		Stock:    10,
	}
}

func TestListStoresMirrorOnSuccess(t *testing.T) {
	repo := newFakeRepo(Product{ID: "PAP310", Name: "Cuaderno", Stock: 10})
	svc, mirror, _ := newTestService(t, repo)
	ctx := context.Background()

	products, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)

	cached, err := mirror.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "PAP310", cached[0].ID)
}

func TestListFallsBackToMirror(t *testing.T) {
	repo := newFakeRepo(Product{ID: "PAP310", Name: "Cuaderno", Stock: 10})
	svc, _, _ := newTestService(t, repo)
	ctx := context.Background()

	// Prime the mirror, then take the backend down.
	_, err := svc.List(ctx)
	require.NoError(t, err)
	repo.listErr = errors.New("connection refused")

	products, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "PAP310", products[0].ID)
}

func TestListErrorsWhenMirrorEmpty(t *testing.T) {
	repo := newFakeRepo()
	repo.listErr = errors.New("connection refused")
	svc, _, _ := newTestService(t, repo)

	_, err := svc.List(context.Background())
	require.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestGetScansMirrorWhenBackendDown(t *testing.T) {
	repo := newFakeRepo(Product{ID: "PAP310", Name: "Cuaderno", Stock: 10})
	svc, _, _ := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.List(ctx)
	require.NoError(t, err)
	repo.listErr = errors.New("connection refused")

	p, err := svc.Get(ctx, "PAP310")
	require.NoError(t, err)
	assert.Equal(t, "Cuaderno", p.Name)

	_, err = svc.Get(ctx, "NOPE")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCreateRefreshesMirrorAndBumps(t *testing.T) {
	repo := newFakeRepo()
	svc, mirror, inv := newTestService(t, repo)
	ctx := context.Background()

	p, err := svc.Create(ctx, productRequest("Cuaderno"))
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "PAP", p.ID[:3])
	assert.False(t, p.DateAdded.IsZero())

	cached, err := mirror.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, 1)
	assert.Equal(t, 1, inv.bumps)
}

func TestCreateFailureLeavesMirrorUntouched(t *testing.T) {
	repo := newFakeRepo()
	repo.createErr = errors.New("connection refused")
	svc, mirror, inv := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, productRequest("Cuaderno"))
	require.ErrorIs(t, err, ErrBackendWrite)

	_, err = mirror.Load(ctx)
	require.ErrorIs(t, err, ErrMirrorEmpty)
	assert.Equal(t, 0, inv.bumps)
}

func TestUpdatePreservesIdentityAndSales(t *testing.T) {
	added := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	repo := newFakeRepo(Product{
		ID: "PAP310", Name: "Cuaderno", Sales: 42, Image: "https://img/old.png", DateAdded: added,
	})
	svc, _, _ := newTestService(t, repo)

	req := productRequest("Cuaderno Pro")
	p, err := svc.Update(context.Background(), "PAP310", req)
	require.NoError(t, err)
	assert.Equal(t, "PAP310", p.ID)
	assert.Equal(t, 42, p.Sales)
	assert.Equal(t, added, p.DateAdded)
	// Empty image in the request keeps the stored one.
	assert.Equal(t, "https://img/old.png", p.Image)
}

func TestSellDecrementsStockAndIncrementsSales(t *testing.T) {
	repo := newFakeRepo(Product{ID: "PAP310", Name: "Cuaderno", Stock: 1, Sales: 9})
	svc, _, inv := newTestService(t, repo)
	ctx := context.Background()

	p, err := svc.Sell(ctx, "PAP310")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stock)
	assert.Equal(t, 10, p.Sales)
	assert.Equal(t, 1, inv.bumps)

	_, err = svc.Sell(ctx, "PAP310")
	require.ErrorIs(t, err, ErrOutOfStock)
	assert.Equal(t, 1, inv.bumps)
}

func TestDeleteFailurePreservesMirror(t *testing.T) {
	repo := newFakeRepo(Product{ID: "PAP310", Name: "Cuaderno", Stock: 10})
	svc, mirror, _ := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.List(ctx)
	require.NoError(t, err)

	repo.deleteErr = errors.New("connection refused")
	err = svc.Delete(ctx, "PAP310")
	require.ErrorIs(t, err, ErrBackendWrite)

	cached, err := mirror.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, cached, 1)
}

func TestNewProductIDFormat(t *testing.T) {
	for i := 0; i < 50; i++ {
		id := newProductID("papeleria")
		require.Len(t, id, 6)
		assert.Equal(t, "PAP", id[:3])
		n, err := strconv.Atoi(id[3:])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100)
		assert.LessOrEqual(t, n, 999)
	}
	assert.Equal(t, "GEN", newProductID("")[:3])
	assert.Equal(t, "AB", newProductID("ab")[:2])
}
