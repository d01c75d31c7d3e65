package nav

// Track stack panels
const (
	PanelTrackHistory    Panel = "history"
	PanelAddTrack        Panel = "addTrack"
	PanelTrackDetails    Panel = "details"
	PanelDayEntry        Panel = "dayEntry"
	PanelTrackSettings   Panel = "trackSettings"
	PanelPointsStandings Panel = "pointsStandings"
	PanelViewDay         Panel = "viewDay"
	PanelEditDay         Panel = "editDay"
)

// Tire stack panels (one level deeper than the track stack)
const (
	PanelTireHistory Panel = "tireHistory"
	PanelAddSet      Panel = "addSet"
	PanelSetDetails  Panel = "setDetails"
	PanelTireDetails Panel = "tireDetails"
	PanelAddEvent    Panel = "addEvent"
	PanelViewEvent   Panel = "viewEvent"
	PanelEditEvent   Panel = "editEvent"
)

// Build stack panels
const (
	PanelBuildChoice   Panel = "buildChoice"
	PanelBuildCategory Panel = "buildCategory"
	PanelBuildEditor   Panel = "buildEditor"
	PanelSavedBuilds   Panel = "savedBuilds"
)

// Triggers
const (
	TriggerOpenAdd        Trigger = "openAdd"
	TriggerSubmit         Trigger = "submit"
	TriggerLoadTrack      Trigger = "loadTrack"
	TriggerOpenDayEntry   Trigger = "openDayEntry"
	TriggerSave           Trigger = "save"
	TriggerOpenSettings   Trigger = "openSettings"
	TriggerOpenStandings  Trigger = "openStandings"
	TriggerViewDay        Trigger = "viewDay"
	TriggerEditDay        Trigger = "editDay"
	TriggerLoadSet        Trigger = "loadSet"
	TriggerLoadTire       Trigger = "loadTire"
	TriggerOpenEventEntry Trigger = "openEventEntry"
	TriggerViewEvent      Trigger = "viewEvent"
	TriggerEditEvent      Trigger = "editEvent"
	TriggerCreateNew      Trigger = "createNew"
	TriggerLoadSaved      Trigger = "loadSaved"
	TriggerPickCategory   Trigger = "pickCategory"
)

// NewTrackStack builds the track feature's navigation stack. Entering
// history reloads the owner's track list, so hooks are attached there.
func NewTrackStack(opts ...Option) *Stack {
	edges := []Edge{
		{PanelTrackHistory, TriggerOpenAdd, PanelAddTrack},
		{PanelAddTrack, TriggerSubmit, PanelTrackHistory},
		{PanelTrackHistory, TriggerLoadTrack, PanelTrackDetails},
		{PanelTrackDetails, TriggerOpenDayEntry, PanelDayEntry},
		{PanelDayEntry, TriggerSave, PanelTrackDetails},
		{PanelTrackDetails, TriggerOpenSettings, PanelTrackSettings},
		{PanelTrackDetails, TriggerOpenStandings, PanelPointsStandings},
		{PanelTrackDetails, TriggerViewDay, PanelViewDay},
		{PanelTrackDetails, TriggerEditDay, PanelEditDay},
		{PanelEditDay, TriggerSave, PanelTrackDetails},
	}
	back := map[Panel]Panel{
		PanelAddTrack:        PanelTrackHistory,
		PanelTrackDetails:    PanelTrackHistory,
		PanelDayEntry:        PanelTrackDetails,
		PanelTrackSettings:   PanelTrackDetails,
		PanelPointsStandings: PanelTrackDetails,
		PanelViewDay:         PanelTrackDetails,
		PanelEditDay:         PanelTrackDetails,
	}
	return NewStack("track", PanelTrackHistory, edges, back, opts...)
}

// NewTireStack mirrors the track stack one level deeper:
// history -> setDetails -> tireDetails -> add/view/editEvent.
func NewTireStack(opts ...Option) *Stack {
	edges := []Edge{
		{PanelTireHistory, TriggerOpenAdd, PanelAddSet},
		{PanelAddSet, TriggerSubmit, PanelTireHistory},
		{PanelTireHistory, TriggerLoadSet, PanelSetDetails},
		{PanelSetDetails, TriggerLoadTire, PanelTireDetails},
		{PanelTireDetails, TriggerOpenEventEntry, PanelAddEvent},
		{PanelAddEvent, TriggerSave, PanelTireDetails},
		{PanelTireDetails, TriggerViewEvent, PanelViewEvent},
		{PanelTireDetails, TriggerEditEvent, PanelEditEvent},
		{PanelEditEvent, TriggerSave, PanelTireDetails},
	}
	back := map[Panel]Panel{
		PanelAddSet:      PanelTireHistory,
		PanelSetDetails:  PanelTireHistory,
		PanelTireDetails: PanelSetDetails,
		PanelAddEvent:    PanelTireDetails,
		PanelViewEvent:   PanelTireDetails,
		PanelEditEvent:   PanelTireDetails,
	}
	return NewStack("tire", PanelTireHistory, edges, back, opts...)
}

// NewBuildStack covers the build flow: choice menu, category menu,
// setup editor and the saved-builds list.
func NewBuildStack(opts ...Option) *Stack {
	edges := []Edge{
		{PanelBuildChoice, TriggerCreateNew, PanelBuildCategory},
		{PanelBuildChoice, TriggerLoadSaved, PanelSavedBuilds},
		{PanelBuildCategory, TriggerPickCategory, PanelBuildEditor},
		{PanelSavedBuilds, TriggerSubmit, PanelBuildCategory},
	}
	back := map[Panel]Panel{
		PanelBuildCategory: PanelBuildChoice,
		PanelBuildEditor:   PanelBuildCategory,
		PanelSavedBuilds:   PanelBuildChoice,
	}
	return NewStack("build", PanelBuildChoice, edges, back, opts...)
}
