//nolint:funlen // ok for tests
package tire_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/racerready/racerready-manager-go/pkg/auth"
	"github.com/racerready/racerready-manager-go/pkg/dialog"
	"github.com/racerready/racerready-manager-go/pkg/feature"
	"github.com/racerready/racerready-manager-go/pkg/feature/tire"
	"github.com/racerready/racerready-manager-go/pkg/session"
	"github.com/racerready/racerready-manager-go/pkg/store"
	"github.com/racerready/racerready-manager-go/pkg/store/memory"
	"github.com/racerready/racerready-manager-go/testsupport/scripted"
)

type fixture struct {
	store     store.Store
	session   *session.Holder
	presenter *scripted.Presenter
	svc       *tire.Service
	now       time.Time
}

func newFixture(responses ...dialog.Response) *fixture {
	f := &fixture{
		store:     memory.New(),
		session:   session.NewHolder(),
		presenter: scripted.NewPresenter(responses...),
		now:       time.UnixMilli(1700000000000),
	}
	f.svc = tire.NewService(
		tire.WithStore(f.store),
		tire.WithSession(f.session),
		tire.WithDialog(dialog.New(f.presenter)),
		tire.WithNowFn(func() time.Time { return f.now }))
	f.session.Set(&auth.Identity{UID: "u1", Email: "u1@example.com"})
	return f
}

func TestAddSet_QuantityValidation(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		wantErr  bool
	}{
		{name: "lower bound", quantity: 1},
		{name: "upper bound", quantity: 4},
		{name: "zero", quantity: 0, wantErr: true},
		{name: "too many", quantity: 5, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.AddSet(context.Background(),
				"race set", "Vega", "XH3", tt.quantity)
			if tt.wantErr {
				assert.ErrorIs(t, err, tire.ErrQuantityRange)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAddTire_RefusesWhenSetIsFull(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	set, err := f.svc.AddSet(ctx, "race set", "Vega", "XH3", 4)
	require.NoError(t, err)
	for _, name := range []string{"LF", "RF", "LR", "RR"} {
		_, err := f.svc.AddTire(ctx, set.ID, name)
		require.NoError(t, err)
	}

	_, err = f.svc.AddTire(ctx, set.ID, "spare")
	assert.ErrorIs(t, err, tire.ErrLimitReached)

	tires, err := f.svc.ListTires(ctx, set.ID)
	require.NoError(t, err)
	assert.Len(t, tires, 4)
}

func TestAddTire_RequiresIdentity(t *testing.T) {
	f := newFixture()
	f.session.Clear()
	_, err := f.svc.AddTire(context.Background(), "s1", "LF")
	assert.ErrorIs(t, err, feature.ErrNotAuthenticated)
}

func TestLatestEvent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, ok, err := f.svc.LatestEvent(ctx, "tire-1")
	require.NoError(t, err)
	assert.False(t, ok)

	for i, createdAt := range []int64{100, 300, 200} {
		_, err := f.store.Create(ctx, store.TireEvents, map[string]any{
			"tireId": "tire-1", "ownerId": "u1",
			"createdAt": createdAt, "description": []string{"a", "b", "c"}[i],
		})
		require.NoError(t, err)
	}

	latest, ok, err := f.svc.LatestEvent(ctx, "tire-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(300), latest.CreatedAt)
	assert.Equal(t, "b", latest.Description)
}

func TestAddEvent_SingleTire(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.AddEvent(ctx, "s1", "tire-1", tire.EventInput{
		OuterChemical: "Goat", OuterAmount: "2oz",
	}, false))

	events, err := f.svc.ListEvents(ctx, "tire-1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Goat", events[0].OuterChemical)
	assert.Equal(t, f.now.UnixMilli(), events[0].CreatedAt)
}

func TestAddEvent_ApplyToAllSharesOneTimestamp(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	set, err := f.svc.AddSet(ctx, "race set", "Vega", "XH3", 3)
	require.NoError(t, err)
	for _, name := range []string{"LF", "RF", "LR"} {
		_, err := f.svc.AddTire(ctx, set.ID, name)
		require.NoError(t, err)
	}

	require.NoError(t, f.svc.AddEvent(ctx, set.ID, "", tire.EventInput{
		Description: "prep for finals",
	}, true))

	docs, err := f.store.Query(ctx, store.TireEvents,
		[]store.Filter{store.ByOwner("u1")})
	require.NoError(t, err)
	require.Len(t, docs, 3)
	seen := map[string]bool{}
	for _, doc := range docs {
		assert.EqualValues(t, f.now.UnixMilli(), doc.Data["createdAt"])
		assert.Equal(t, "prep for finals", doc.Data["description"])
		seen[doc.Data["tireId"].(string)] = true
	}
	assert.Len(t, seen, 3)
}

func TestEditEvent_KeepsTimestamp(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	require.NoError(t, f.svc.AddEvent(ctx, "s1", "tire-1",
		tire.EventInput{Description: "initial"}, false))
	events, err := f.svc.ListEvents(ctx, "tire-1")
	require.NoError(t, err)
	require.Len(t, events, 1)

	require.NoError(t, f.svc.EditEvent(ctx, events[0].ID,
		tire.EventInput{Description: "corrected"}))
	updated, err := f.svc.GetEvent(ctx, events[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "corrected", updated.Description)
	assert.Equal(t, events[0].CreatedAt, updated.CreatedAt)
}

func TestDeleteSet_DeclinedConfirm(t *testing.T) {
	f := newFixture(scripted.Cancel())
	ctx := context.Background()

	set, err := f.svc.AddSet(ctx, "race set", "Vega", "XH3", 2)
	require.NoError(t, err)
	deleted, err := f.svc.DeleteSet(ctx, set.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	sets, err := f.svc.ListSets(ctx)
	require.NoError(t, err)
	assert.Len(t, sets, 1)
}
