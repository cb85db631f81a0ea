package ports

import (
	"context"

	"github.com/aretw0/longboard/pkg/domain"
)

// StateStore persists the navigation state of documents so a preview
// location and role table survive restarts and are shared between replicas.
type StateStore interface {
	// Save persists the state for a document ID.
	Save(ctx context.Context, documentID string, state *domain.DocumentState) error

	// Load retrieves the state for a document ID.
	// Returns domain.ErrStateNotFound if nothing is saved.
	Load(ctx context.Context, documentID string) (*domain.DocumentState, error)

	// Delete removes the state for a document ID.
	Delete(ctx context.Context, documentID string) error

	// List returns the IDs of all documents with saved state.
	List(ctx context.Context) ([]string, error)
}
