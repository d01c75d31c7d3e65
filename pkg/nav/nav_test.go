package nav

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_DocumentedEdges(t *testing.T) {
	s := NewTrackStack()
	ctx := context.Background()

	assert.Equal(t, PanelTrackHistory, s.Current())
	assert.True(t, s.Fire(ctx, TriggerOpenAdd))
	assert.Equal(t, PanelAddTrack, s.Current())
	assert.True(t, s.Fire(ctx, TriggerSubmit))
	assert.Equal(t, PanelTrackHistory, s.Current())
}

func TestStack_UndocumentedTriggerIsNoop(t *testing.T) {
	s := NewTrackStack()
	ctx := context.Background()

	// openDayEntry only exists on the details panel
	assert.False(t, s.Fire(ctx, TriggerOpenDayEntry))
	assert.Equal(t, PanelTrackHistory, s.Current())

	s.Fire(ctx, TriggerLoadTrack)
	assert.False(t, s.Fire(ctx, TriggerOpenAdd))
	assert.Equal(t, PanelTrackDetails, s.Current())
}

func TestStack_BackEdges(t *testing.T) {
	tests := []struct {
		name    string
		path    []Trigger
		current Panel
		parent  Panel
	}{
		{
			name:    "settings back to details",
			path:    []Trigger{TriggerLoadTrack, TriggerOpenSettings},
			current: PanelTrackSettings,
			parent:  PanelTrackDetails,
		},
		{
			name:    "standings back to details",
			path:    []Trigger{TriggerLoadTrack, TriggerOpenStandings},
			current: PanelPointsStandings,
			parent:  PanelTrackDetails,
		},
		{
			name:    "details back to history",
			path:    []Trigger{TriggerLoadTrack},
			current: PanelTrackDetails,
			parent:  PanelTrackHistory,
		},
		{
			name:    "view day back to details",
			path:    []Trigger{TriggerLoadTrack, TriggerViewDay},
			current: PanelViewDay,
			parent:  PanelTrackDetails,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewTrackStack()
			ctx := context.Background()
			for _, trigger := range tt.path {
				assert.True(t, s.Fire(ctx, trigger))
			}
			assert.Equal(t, tt.current, s.Current())
			assert.True(t, s.Back(ctx))
			assert.Equal(t, tt.parent, s.Current())
		})
	}
}

func TestStack_BackOnRootStaysPut(t *testing.T) {
	s := NewTrackStack()
	assert.False(t, s.Back(context.Background()))
	assert.Equal(t, PanelTrackHistory, s.Current())
}

func TestStack_EnterHookRunsOncePerActivation(t *testing.T) {
	reloads := 0
	s := NewTrackStack(WithEnterHook(PanelTrackHistory,
		func(ctx context.Context) { reloads++ }))
	ctx := context.Background()

	s.Fire(ctx, TriggerOpenAdd)
	assert.Equal(t, 0, reloads)
	s.Fire(ctx, TriggerSubmit)
	assert.Equal(t, 1, reloads)
	s.Fire(ctx, TriggerLoadTrack)
	s.Back(ctx)
	assert.Equal(t, 2, reloads)
}

func TestStack_GenerationGuardsStaleRenders(t *testing.T) {
	s := NewTrackStack()
	ctx := context.Background()

	generation := s.Generation()
	assert.True(t, s.StillCurrent(generation))

	// a fetch started before this navigation must not paint its result
	s.Fire(ctx, TriggerLoadTrack)
	assert.False(t, s.StillCurrent(generation))
	assert.True(t, s.StillCurrent(s.Generation()))
}

func TestStack_SelectionTravelsWithTheStack(t *testing.T) {
	s := NewTireStack()
	s.Select(func(sel *Selection) { sel.TireSetID = "set-1" })
	s.Select(func(sel *Selection) { sel.TireID = "tire-9" })

	sel := s.Selection()
	assert.Equal(t, "set-1", sel.TireSetID)
	assert.Equal(t, "tire-9", sel.TireID)
}

func TestTireStack_DeepPath(t *testing.T) {
	s := NewTireStack()
	ctx := context.Background()

	assert.True(t, s.Fire(ctx, TriggerLoadSet))
	assert.True(t, s.Fire(ctx, TriggerLoadTire))
	assert.True(t, s.Fire(ctx, TriggerOpenEventEntry))
	assert.Equal(t, PanelAddEvent, s.Current())
	assert.True(t, s.Fire(ctx, TriggerSave))
	assert.Equal(t, PanelTireDetails, s.Current())
	assert.True(t, s.Back(ctx))
	assert.Equal(t, PanelSetDetails, s.Current())
	assert.True(t, s.Back(ctx))
	assert.Equal(t, PanelTireHistory, s.Current())
}

func TestBuildStack_SavedBuildsFlow(t *testing.T) {
	s := NewBuildStack()
	ctx := context.Background()

	assert.True(t, s.Fire(ctx, TriggerLoadSaved))
	assert.Equal(t, PanelSavedBuilds, s.Current())
	// loading a saved build moves on to the category menu
	assert.True(t, s.Fire(ctx, TriggerSubmit))
	assert.Equal(t, PanelBuildCategory, s.Current())
	assert.True(t, s.Fire(ctx, TriggerPickCategory))
	assert.Equal(t, PanelBuildEditor, s.Current())
	assert.True(t, s.Back(ctx))
	assert.Equal(t, PanelBuildCategory, s.Current())
}
