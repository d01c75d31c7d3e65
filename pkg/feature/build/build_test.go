package build_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/racerready/racerready-manager-go/pkg/auth"
	"github.com/racerready/racerready-manager-go/pkg/dialog"
	"github.com/racerready/racerready-manager-go/pkg/feature/build"
	"github.com/racerready/racerready-manager-go/pkg/model"
	"github.com/racerready/racerready-manager-go/pkg/session"
	"github.com/racerready/racerready-manager-go/pkg/store"
	"github.com/racerready/racerready-manager-go/pkg/store/memory"
	"github.com/racerready/racerready-manager-go/testsupport/scripted"
)

func newService(
	mem store.Store,
	responses ...dialog.Response,
) *build.Service {
	holder := session.NewHolder()
	holder.Set(&auth.Identity{UID: "u1", Email: "u1@example.com"})
	return build.NewService(
		build.WithStore(mem),
		build.WithSession(holder),
		build.WithDialog(dialog.New(scripted.NewPresenter(responses...))),
		build.WithNowFn(func() time.Time { return time.UnixMilli(1700000000000) }))
}

func TestSaveBuild(t *testing.T) {
	mem := memory.New()
	svc := newService(mem, scripted.Text("race day setup"))
	ctx := context.Background()

	saved, ok, err := svc.SaveBuild(ctx, map[model.SettingKey]string{
		model.SettingFrontCaster:  "+2",
		model.SettingTireCompound: "",
	})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "race day setup", saved.Name)
	// empty fields never make it into the snapshot
	assert.Equal(t,
		map[string]string{string(model.SettingFrontCaster): "+2"},
		saved.Settings)

	docs, err := mem.Query(ctx, store.Builds, nil)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestSaveBuild_CancelWritesNothing(t *testing.T) {
	mem := memory.New()
	svc := newService(mem, scripted.Cancel())
	ctx := context.Background()

	_, ok, err := svc.SaveBuild(ctx, map[model.SettingKey]string{
		model.SettingFrontCaster: "+2",
	})
	require.NoError(t, err)
	assert.False(t, ok)

	docs, err := mem.Query(ctx, store.Builds, nil)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLoadBuild_LinearSearchById(t *testing.T) {
	mem := memory.New()
	svc := newService(mem,
		scripted.Text("first"), scripted.Text("second"))
	ctx := context.Background()

	first, ok, err := svc.SaveBuild(ctx, map[model.SettingKey]string{
		model.SettingFrontCaster: "+1",
	})
	require.NoError(t, err)
	require.True(t, ok)
	_, ok, err = svc.SaveBuild(ctx, map[model.SettingKey]string{
		model.SettingFrontCaster: "+2",
	})
	require.NoError(t, err)
	require.True(t, ok)

	loaded, err := svc.LoadBuild(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", loaded.Name)

	_, err = svc.LoadBuild(ctx, "no-such-id")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteBuild(t *testing.T) {
	mem := memory.New()
	svc := newService(mem, scripted.Text("doomed"), scripted.Accept())
	ctx := context.Background()

	saved, ok, err := svc.SaveBuild(ctx, map[model.SettingKey]string{
		model.SettingFrontCaster: "+1",
	})
	require.NoError(t, err)
	require.True(t, ok)

	deleted, err := svc.DeleteBuild(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	docs, err := mem.Query(ctx, store.Builds, nil)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestSurface_ApplyClearsThenPopulates(t *testing.T) {
	surface := build.NewSurface(model.CategoryKart)
	surface.Set(model.SettingFrontCaster, "+2")
	surface.Set(model.SettingGearing, "11/78")
	surface.Set(model.SettingTireCompound, "soft")

	surface.Apply(model.Build{Settings: map[string]string{
		string(model.SettingFrontCaster): "+3",
	}})

	// only saved keys survive, everything else is cleared
	assert.Equal(t, "+3", surface.Get(model.SettingFrontCaster))
	assert.Empty(t, surface.Get(model.SettingGearing))
	assert.Empty(t, surface.Get(model.SettingTireCompound))
}

func TestSurface_VisibilityFollowsCategory(t *testing.T) {
	surface := build.NewSurface(model.CategoryKart)
	for _, def := range surface.Visible() {
		assert.Equal(t, model.CategoryKart, def.Category)
	}
	surface.SetCategory(model.CategoryTire)
	for _, def := range surface.Visible() {
		assert.Equal(t, model.CategoryTire, def.Category)
	}
	assert.NotEmpty(t, surface.Visible())
}
