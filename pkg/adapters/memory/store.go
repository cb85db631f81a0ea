package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/longboard/pkg/domain"
)

// Store implements ports.StateStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.DocumentState
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.DocumentState),
	}
}

func copyState(state *domain.DocumentState) *domain.DocumentState {
	ret := *state
	ret.Preview = state.Preview.Clone()
	ret.Roles = append(domain.Roles(nil), state.Roles...)
	return &ret
}

// Save persists the state in memory.
func (s *Store) Save(ctx context.Context, documentID string, state *domain.DocumentState) error {
	// Deep copy to ensure isolation, similar to serialization
	copied := copyState(state)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[documentID] = copied
	return nil
}

// Load retrieves the state from memory.
func (s *Store) Load(ctx context.Context, documentID string) (*domain.DocumentState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.data[documentID]
	if !ok {
		return nil, domain.ErrStateNotFound
	}

	// Copy on read so callers can't mutate the stored state
	return copyState(state), nil
}

// Delete removes the state.
func (s *Store) Delete(ctx context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, documentID)
	return nil
}

// List returns the stored document IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
