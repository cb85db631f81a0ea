package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/longboard/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStateStoreContract runs a suite of tests to verify that a StateStore
// implementation adheres to the interface contract.
func RunStateStoreContract(t *testing.T, store StateStore) {
	ctx := context.Background()
	docID := "contract-test-doc-" + time.Now().Format("20060102150405")

	newState := func(id string) *domain.DocumentState {
		return &domain.DocumentState{
			DocumentID: id,
			Preview: domain.Location{
				"weight": domain.Scalar(412.5),
				"width":  domain.Anisotropic(90, 110),
			},
			Roles:     domain.DefaultRoles([]string{"weight", "width"}),
			UpdatedAt: time.Now().UTC().Truncate(time.Second),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		state := newState(docID)
		require.NoError(t, store.Save(ctx, docID, state), "Save should not return error")

		loaded, err := store.Load(ctx, docID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, docID, loaded.DocumentID)
		assert.True(t, state.Preview.Equal(loaded.Preview), "anisotropic values must survive persistence")
		assert.Equal(t, state.Roles, loaded.Roles)
		assert.True(t, state.UpdatedAt.Equal(loaded.UpdatedAt))
	})

	t.Run("Overwrite", func(t *testing.T) {
		state := newState(docID)
		state.Preview["weight"] = domain.Scalar(700)
		require.NoError(t, store.Save(ctx, docID, state))

		loaded, err := store.Load(ctx, docID)
		require.NoError(t, err)
		assert.Equal(t, 700.0, loaded.Preview["weight"].Scalar())
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+docID)
		assert.ErrorIs(t, err, domain.ErrStateNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, docID, newState(docID)))
		require.NoError(t, store.Delete(ctx, docID), "Delete should not return error")

		_, err := store.Load(ctx, docID)
		assert.ErrorIs(t, err, domain.ErrStateNotFound, "Load after Delete should return ErrStateNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := docID + "-1"
		id2 := docID + "-2"
		_ = store.Save(ctx, id1, newState(id1))
		_ = store.Save(ctx, id2, newState(id2))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
