//nolint:funlen // ok for tests
package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/racerready/racerready-manager-go/pkg/store"
	tcpg "github.com/racerready/racerready-manager-go/testsupport/tcpostgres"
	"github.com/racerready/racerready-manager-go/testsupport/testdb"
)

func TestDocumentStore(t *testing.T) {
	pool := testdb.InitTestDb()
	defer pool.Close()
	s := New(pool)
	ctx := context.Background()

	t.Run("create and query by owner", func(t *testing.T) {
		tcpg.ClearDocumentTable(pool)
		id, err := s.Create(ctx, "tracks", map[string]any{
			"name": "Oakhill", "ownerId": "u1", "createdAt": 1700000000000,
		})
		require.NoError(t, err)
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
	})

	t.Run("collections are separate", func(t *testing.T) {
		tcpg.ClearDocumentTable(pool)
		_, err := s.Create(ctx, "tracks", map[string]any{"ownerId": "u1"})
		require.NoError(t, err)
		_, err = s.Create(ctx, "days", map[string]any{"ownerId": "u1"})
		require.NoError(t, err)

		docs, err := s.Query(ctx, "days", []store.Filter{store.ByOwner("u1")})
		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})

	t.Run("anded filters", func(t *testing.T) {
		tcpg.ClearDocumentTable(pool)
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
	})

	t.Run("update merges fields", func(t *testing.T) {
		tcpg.ClearDocumentTable(pool)
		id, err := s.Create(ctx, "days", map[string]any{
			"raceName": "club race", "pointsEarned": 5,
		})
		require.NoError(t, err)

		require.NoError(t, s.Update(ctx, "days", id,
			map[string]any{"pointsEarned": 10}))

		doc, err := s.Get(ctx, "days", id)
		require.NoError(t, err)
		assert.Equal(t, int64(10), doc.Data["pointsEarned"])
		assert.Equal(t, "club race", doc.Data["raceName"])
	})

	t.Run("update missing id", func(t *testing.T) {
		err := s.Update(ctx, "days", "ffffffff-ffff-ffff-ffff-ffffffffffff",
			map[string]any{"pointsEarned": 1})
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete removes, missing id is a no-op", func(t *testing.T) {
		tcpg.ClearDocumentTable(pool)
		id, err := s.Create(ctx, "tracks", map[string]any{"name": "Oakhill"})
		require.NoError(t, err)
		require.NoError(t, s.Delete(ctx, "tracks", id))
		require.NoError(t, s.Delete(ctx, "tracks", id))

		_, err = s.Get(ctx, "tracks", id)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("put upserts the profile doc", func(t *testing.T) {
		tcpg.ClearDocumentTable(pool)
		require.NoError(t, s.Put(ctx, "users", "uid-1",
			map[string]any{"displayName": "Max"}))
		require.NoError(t, s.Put(ctx, "users", "uid-1",
			map[string]any{"displayName": "Maxine"}))

		doc, err := s.Get(ctx, "users", "uid-1")
		require.NoError(t, err)
		assert.Equal(t, "Maxine", doc.Data["displayName"])
	})
}
