package quotes

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mostrador-pos/mostrador-pos/internal/catalog"
)

type mockRepo struct {
	quotes map[string]Quote
	lines  map[string][]QuoteLine

	createErr error
	updateErr error
	deleteErr error

	createCalls int
	updateCalls int
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		quotes: make(map[string]Quote),
		lines:  make(map[string][]QuoteLine),
	}
}

func (m *mockRepo) List(ctx context.Context) ([]Quote, error) {
	out := make([]Quote, 0, len(m.quotes))
	for _, q := range m.quotes {
		out = append(out, q)
	}
	return out, nil
}

func (m *mockRepo) Get(ctx context.Context, id string) (Quote, error) {
	q, ok := m.quotes[id]
	if !ok {
		return Quote{}, ErrNotFound
	}
	return q, nil
}

func (m *mockRepo) GetLines(ctx context.Context, quoteID string) ([]QuoteLine, error) {
	return m.lines[quoteID], nil
}

func (m *mockRepo) Create(ctx context.Context, quote Quote, lines []QuoteLine) error {
	m.createCalls++
	if m.createErr != nil {
		return m.createErr
	}
	m.quotes[quote.ID] = quote
	m.lines[quote.ID] = append([]QuoteLine(nil), lines...)
	return nil
}

func (m *mockRepo) Update(ctx context.Context, id, clientName string, total float64, lines []QuoteLine) error {
	m.updateCalls++
	if m.updateErr != nil {
		return m.updateErr
	}
	q, ok := m.quotes[id]
	if !ok {
		return ErrNotFound
	}
	q.ClientName = clientName
	q.EstimatedTotal = total
	m.quotes[id] = q
	m.lines[id] = append([]QuoteLine(nil), lines...)
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.quotes[id]; !ok {
		return ErrNotFound
	}
	delete(m.quotes, id)
	delete(m.lines, id)
	return nil
}

type mockProducts struct {
	products map[string]catalog.Product
}

func (m *mockProducts) Get(ctx context.Context, id string) (catalog.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return p, nil
}

func newTestService(repo *mockRepo) *Service {
	products := &mockProducts{products: map[string]catalog.Product{
		"PAP310": {ID: "PAP310", Name: "Cuaderno Profesional", Brand: "Scribe", Price: 45},
		"PAP411": {ID: "PAP411", Name: "Bolígrafo Cristal", Brand: "Bic", Price: 8},
	}}
	return NewService(repo, products, slog.Default())
}

func TestSaveCreatesNewQuote(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	b := NewBuilder()
	b.StartNew()
	b.SetClientName("Escuela Benito Juárez")
	require.NoError(t, svc.AddProduct(ctx, b, "PAP310"))
	require.NoError(t, svc.AddProduct(ctx, b, "PAP310"))

	quote, err := svc.Save(ctx, b)
	require.NoError(t, err)
	assert.NotEmpty(t, quote.ID)
	assert.Equal(t, QuoteStatusPending, quote.Status)
	assert.InDelta(t, 90, quote.EstimatedTotal, 1e-9)
	assert.Equal(t, 1, repo.createCalls)
	assert.Equal(t, 0, repo.updateCalls)

	saved := repo.lines[quote.ID]
	require.Len(t, saved, 1)
	assert.Equal(t, 2, saved[0].Quantity)
	assert.Equal(t, StateEmpty, b.State())
}

func TestSaveUpdatesEditedQuote(t *testing.T) {
	createdAt := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	repo := newMockRepo()
	repo.quotes["q-1"] = Quote{ID: "q-1", ClientName: "Escuela", Status: QuoteStatusPending, EstimatedTotal: 45, CreatedAt: createdAt}
	repo.lines["q-1"] = []QuoteLine{{ProductID: "PAP310", Name: "Cuaderno", UnitPrice: 45, Quantity: 1}}
	svc := newTestService(repo)
	ctx := context.Background()

	b := NewBuilder()
	require.NoError(t, svc.StartEdit(ctx, b, "q-1"))
	b.SetQuantity(0, "5")

	quote, err := svc.Save(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, "q-1", quote.ID)
	assert.Equal(t, 1, repo.updateCalls)
	assert.Equal(t, 0, repo.createCalls)
	assert.InDelta(t, 225, repo.quotes["q-1"].EstimatedTotal, 1e-9)
	// The response mirrors what a subsequent Get returns: the original
	// creation timestamp, not this save's clock.
	assert.Equal(t, createdAt, quote.CreatedAt)
	assert.Equal(t, QuoteStatusPending, quote.Status)
}

func TestSaveFailureKeepsWorkingSet(t *testing.T) {
	repo := newMockRepo()
	repo.createErr = errors.New("connection refused")
	svc := newTestService(repo)
	ctx := context.Background()

	b := NewBuilder()
	b.StartNew()
	b.SetClientName("Cliente")
	require.NoError(t, svc.AddProduct(ctx, b, "PAP411"))

	_, err := svc.Save(ctx, b)
	require.ErrorIs(t, err, ErrBackendWrite)

	// Nothing was lost and a retry can proceed.
	assert.Equal(t, StateBuildingNew, b.State())
	assert.Len(t, b.Lines(), 1)
	repo.createErr = nil
	_, err = svc.Save(ctx, b)
	require.NoError(t, err)
}

func TestSaveWithoutClientNameNeverHitsRepo(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	b := NewBuilder()
	b.StartNew()
	require.NoError(t, svc.AddProduct(ctx, b, "PAP310"))

	_, err := svc.Save(ctx, b)
	require.ErrorIs(t, err, ErrClientNameRequired)
	assert.Equal(t, 0, repo.createCalls)

	// Whitespace counts as empty.
	b.SetClientName("   ")
	_, err = svc.Save(ctx, b)
	require.ErrorIs(t, err, ErrClientNameRequired)
	assert.Equal(t, 0, repo.createCalls)
}

func TestStartEditRejectsQuoteWithoutLines(t *testing.T) {
	repo := newMockRepo()
	repo.quotes["q-2"] = Quote{ID: "q-2", ClientName: "Cliente"}
	svc := newTestService(repo)

	b := NewBuilder()
	err := svc.StartEdit(context.Background(), b, "q-2")
	require.ErrorIs(t, err, ErrNoLines)
	assert.Equal(t, StateEmpty, b.State())
}

func TestStartEditUnknownQuote(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	err := svc.StartEdit(context.Background(), NewBuilder(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAddProductUnknownID(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	b := NewBuilder()
	b.StartNew()
	err := svc.AddProduct(context.Background(), b, "NOPE")
	require.ErrorIs(t, err, catalog.ErrNotFound)
	assert.Empty(t, b.Lines())
}

func TestGetLinesChecksExistence(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	_, err := svc.GetLines(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteWrapsBackendFailure(t *testing.T) {
	repo := newMockRepo()
	repo.quotes["q-3"] = Quote{ID: "q-3"}
	repo.deleteErr = errors.New("timeout")
	svc := newTestService(repo)

	err := svc.Delete(context.Background(), "q-3")
	require.ErrorIs(t, err, ErrBackendWrite)
}
