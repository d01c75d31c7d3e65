package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/racerready/racerready-manager-go/pkg/store"
)

func TestMemoryStore_CreateAndQuery(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, err := s.Create(ctx, "tracks", map[string]any{
		"name": "Oakhill", "ownerId": "u1",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)
	_, err = s.Create(ctx, "tracks", map[string]any{
		"name": "Riverside", "ownerId": "u2",
	})
	require.NoError(t, err)

	docs, err := s.Query(ctx, "tracks",
		[]store.Filter{store.ByOwner("u1")})
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, id, docs[0].ID)
	assert.Equal(t, "Oakhill", docs[0].Data["name"])
}

func TestMemoryStore_FiltersAreAnded(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Create(ctx, "days", map[string]any{
		"trackId": "t1", "ownerId": "u1",
	})
	require.NoError(t, err)
	_, err = s.Create(ctx, "days", map[string]any{
		"trackId": "t2", "ownerId": "u1",
	})
	require.NoError(t, err)

	docs, err := s.Query(ctx, "days", []store.Filter{
		store.ByOwner("u1"), store.ByField("trackId", "t1"),
	})
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestMemoryStore_NumericFilterIsTypeInsensitive(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Create(ctx, "tireSets", map[string]any{
		"setName": "race", "quantity": 4,
	})
	require.NoError(t, err)

	for _, value := range []any{4, int64(4), float64(4)} {
		docs, err := s.Query(ctx, "tireSets",
			[]store.Filter{store.ByField("quantity", value)})
		require.NoError(t, err)
		assert.Len(t, docs, 1, "filter value %T", value)
	}
}

func TestMemoryStore_UpdateMerges(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, err := s.Create(ctx, "days", map[string]any{
		"raceName": "club race", "pointsEarned": 5, "gripLevel": "high",
	})
	require.NoError(t, err)

	require.NoError(t, s.Update(ctx, "days", id,
		map[string]any{"pointsEarned": 10}))

	doc, err := s.Get(ctx, "days", id)
	require.NoError(t, err)
	assert.Equal(t, int64(10), doc.Data["pointsEarned"])
	assert.Equal(t, "club race", doc.Data["raceName"])
	assert.Equal(t, "high", doc.Data["gripLevel"])
}

func TestMemoryStore_UpdateMissing(t *testing.T) {
	s := New()
	err := s.Update(context.Background(), "days", "no-such-id",
		map[string]any{"pointsEarned": 1})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemoryStore_DeleteMissingIsNoop(t *testing.T) {
	s := New()
	assert.NoError(t, s.Delete(context.Background(), "tracks", "no-such-id"))
}

func TestMemoryStore_PutAndGetByFixedId(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "users", "uid-1",
		map[string]any{"displayName": "Max"}))
	require.NoError(t, s.Put(ctx, "users", "uid-1",
		map[string]any{"displayName": "Maxine"}))

	doc, err := s.Get(ctx, "users", "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "Maxine", doc.Data["displayName"])

	_, err = s.Get(ctx, "users", "uid-2")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestMemoryStore_QueryResultIsIsolated(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, err := s.Create(ctx, "tracks", map[string]any{"name": "Oakhill"})
	require.NoError(t, err)

	docs, err := s.Query(ctx, "tracks", nil)
	require.NoError(t, err)
	docs[0].Data["name"] = "mutated"

	doc, err := s.Get(ctx, "tracks", id)
	require.NoError(t, err)
	assert.Equal(t, "Oakhill", doc.Data["name"])
}
