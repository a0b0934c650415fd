package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrMirrorEmpty indicates no snapshot has been stored yet.
var ErrMirrorEmpty = errors.New("catalog: mirror empty")

// Mirror keeps the last successful full catalog fetch in Redis so reads
// survive backend outages. Only the service replaces it, and always
// wholesale — there is no partial mutation.
type Mirror struct {
	client *redis.Client
	key    string
}

// NewMirror constructs the snapshot mirror.
func NewMirror(client *redis.Client, key string) *Mirror {
	return &Mirror{client: client, key: key}
}

// Store replaces the snapshot with the given record set.
func (m *Mirror) Store(ctx context.Context, products []Product) error {
	if m == nil || m.client == nil {
		return nil
	}
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("catalog: encode mirror: %w", err)
	}
	// No TTL: a stale snapshot beats no snapshot when the backend is down.
	return m.client.Set(ctx, m.key, raw, 0).Err()
}

// Load returns the last stored snapshot.
func (m *Mirror) Load(ctx context.Context) ([]Product, error) {
	if m == nil || m.client == nil {
		return nil, ErrMirrorEmpty
	}
	raw, err := m.client.Get(ctx, m.key).Bytes()
	if err == redis.Nil {
		return nil, ErrMirrorEmpty
	}
	if err != nil {
		return nil, err
	}
	var products []Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("catalog: decode mirror: %w", err)
	}
	if len(products) == 0 {
		return nil, ErrMirrorEmpty
	}
	return products, nil
}
