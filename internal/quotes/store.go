package quotes

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrDraftNotFound indicates an unknown or already-closed draft.
var ErrDraftNotFound = errors.New("quotes: draft not found")

// DraftStore keeps the live builders, keyed by draft id. There is one
// browsing session per deployment so the store is a plain map under a
// mutex; drafts never outlive the process.
type DraftStore struct {
	mu     sync.Mutex
	drafts map[string]*Builder
}

// NewDraftStore constructs an empty draft store.
func NewDraftStore() *DraftStore {
	return &DraftStore{drafts: make(map[string]*Builder)}
}

// Open registers a fresh builder and returns its id.
func (s *DraftStore) Open() (string, *Builder) {
	b := NewBuilder()
	b.StartNew()
	id := uuid.NewString()
	s.mu.Lock()
	s.drafts[id] = b
	s.mu.Unlock()
	return id, b
}

// Get resolves a live draft.
func (s *DraftStore) Get(id string) (*Builder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.drafts[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return b, nil
}

// Close discards a draft, after a successful save or an abandoned edit.
func (s *DraftStore) Close(id string) {
	s.mu.Lock()
	delete(s.drafts, id)
	s.mu.Unlock()
}
