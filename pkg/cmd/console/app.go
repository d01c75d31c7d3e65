package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/racerready/racerready-manager-go/log"
	"github.com/racerready/racerready-manager-go/pkg/auth"
	simpleauth "github.com/racerready/racerready-manager-go/pkg/auth/impl/simple"
	"github.com/racerready/racerready-manager-go/pkg/dialog"
	"github.com/racerready/racerready-manager-go/pkg/feature"
	"github.com/racerready/racerready-manager-go/pkg/feature/build"
	"github.com/racerready/racerready-manager-go/pkg/feature/profile"
	"github.com/racerready/racerready-manager-go/pkg/feature/tire"
	"github.com/racerready/racerready-manager-go/pkg/feature/track"
	"github.com/racerready/racerready-manager-go/pkg/model"
	"github.com/racerready/racerready-manager-go/pkg/nav"
	"github.com/racerready/racerready-manager-go/pkg/session"
	"github.com/racerready/racerready-manager-go/pkg/store"
)

// app is the interactive terminal front end. It is glue only: every
// rule lives in the feature services.
type app struct {
	session  *session.Holder
	provider auth.Provider
	dialogs  *dialog.Dialog
	tracks   *track.Service
	tires    *tire.Service
	builds   *build.Service
	profiles *profile.Service
	trackNav *nav.Stack
	tireNav  *nav.Stack
	buildNav *nav.Stack
	surface  *build.Surface
	in       *bufio.Reader
	out      io.Writer
	log      *log.Logger

	trackList []model.Track
	setList   []model.TireSet
}

func newApp(
	docStore store.Store,
	provider auth.Provider,
	in io.Reader,
	out io.Writer,
) *app {
	holder := session.NewHolder()
	reader := bufio.NewReader(in)
	dialogs := dialog.New(&stdinPresenter{in: reader, out: out})
	a := &app{
		session:  holder,
		provider: provider,
		dialogs:  dialogs,
		in:       reader,
		out:      out,
		log:      log.Default().Named("console"),
		surface:  build.NewSurface(model.CategoryKart),
	}
	a.tracks = track.NewService(
		track.WithStore(docStore),
		track.WithSession(holder),
		track.WithDialog(dialogs))
	a.tires = tire.NewService(
		tire.WithStore(docStore),
		tire.WithSession(holder),
		tire.WithDialog(dialogs))
	a.builds = build.NewService(
		build.WithStore(docStore),
		build.WithSession(holder),
		build.WithDialog(dialogs))
	a.profiles = profile.NewService(
		profile.WithStore(docStore),
		profile.WithSession(holder),
		profile.WithProvider(provider))

	// entering a history panel reloads its list; a stale fetch result
	// is dropped when the panel changed underneath it
	a.trackNav = nav.NewTrackStack(nav.WithEnterHook(
		nav.PanelTrackHistory, func(ctx context.Context) {
			generation := a.trackNav.Generation()
			list, err := a.tracks.ListTracks(ctx)
			if err != nil {
				a.log.Error("track list reload failed", log.ErrorField(err))
				return
			}
			if a.trackNav.StillCurrent(generation) {
				a.trackList = list
			}
		}))
	a.tireNav = nav.NewTireStack(nav.WithEnterHook(
		nav.PanelTireHistory, func(ctx context.Context) {
			generation := a.tireNav.Generation()
			list, err := a.tires.ListSets(ctx)
			if err != nil {
				a.log.Error("tire set reload failed", log.ErrorField(err))
				return
			}
			if a.tireNav.StillCurrent(generation) {
				a.setList = list
			}
		}))
	a.buildNav = nav.NewBuildStack()
	return a
}

func (a *app) run(ctx context.Context) error {
	fmt.Fprintln(a.out, "Racer Ready console. Type the letter of an action.")
	for {
		ident, signedIn := a.session.Current()
		if !signedIn {
			fmt.Fprintln(a.out, "\n[l]ogin  [r]egister  [q]uit")
		} else {
			fmt.Fprintf(a.out,
				"\nSigned in as %s\n[t]racks  [y]tires  [b]uilds  [p]rofile  [o]logout  [q]uit\n",
				ident.Email)
		}
		line, err := a.readCommand()
		if err != nil {
			return nil
		}
		switch line {
		case "q":
			return nil
		case "l":
			a.signIn(ctx)
		case "r":
			a.register(ctx)
		case "t":
			if signedIn {
				a.trackLoop(ctx)
			}
		case "y":
			if signedIn {
				a.tireLoop(ctx)
			}
		case "b":
			if signedIn {
				a.buildLoop(ctx)
			}
		case "p":
			if signedIn {
				a.profileLoop(ctx)
			}
		case "o":
			if signedIn {
				if err := a.provider.SignOut(ctx, ident.UID); err != nil {
					a.log.Warn("sign out failed", log.ErrorField(err))
				}
				a.session.Clear()
			}
		}
	}
}

func (a *app) signIn(ctx context.Context) {
	email, ok := a.promptField("email")
	if !ok {
		return
	}
	password, ok := a.promptField("password")
	if !ok {
		return
	}
	ident, err := a.provider.SignIn(ctx, email, password)
	if err != nil {
		a.showError(ctx, err)
		return
	}
	a.session.Set(ident)
}

func (a *app) register(ctx context.Context) {
	registrar, ok := a.provider.(*simpleauth.Provider)
	if !ok {
		a.alert(ctx, "Registration is handled by your identity provider.")
		return
	}
	email, ok := a.promptField("email")
	if !ok {
		return
	}
	password, ok := a.promptField("password")
	if !ok {
		return
	}
	if _, err := registrar.Register(email, password); err != nil {
		a.showError(ctx, err)
		return
	}
	ident, err := a.provider.SignIn(ctx, email, password)
	if err != nil {
		a.showError(ctx, err)
		return
	}
	a.session.Set(ident)
}

//nolint:gocognit,funlen // panel dispatch
func (a *app) trackLoop(ctx context.Context) {
	a.reloadTracks(ctx)
	for {
		switch a.trackNav.Current() {
		case nav.PanelTrackHistory:
			a.renderTracks()
			fmt.Fprintln(a.out, "[a]dd  [o <n>]pen  [d <n>]elete  [q] main menu")
			cmd, arg, err := a.readIndexed()
			if err != nil {
				return
			}
			switch cmd {
			case "q":
				return
			case "a":
				a.trackNav.Fire(ctx, nav.TriggerOpenAdd)
			case "o":
				if t, ok := a.pickTrack(arg); ok {
					a.trackNav.Select(func(sel *nav.Selection) { sel.TrackID = t.ID })
					a.trackNav.Fire(ctx, nav.TriggerLoadTrack)
				}
			case "d":
				if t, ok := a.pickTrack(arg); ok {
					if _, err := a.tracks.DeleteTrack(ctx, t.ID); err != nil {
						a.showError(ctx, err)
					}
					a.reloadTracks(ctx)
				}
			}
		case nav.PanelAddTrack:
			a.addTrackPanel(ctx)
		case nav.PanelTrackDetails:
			if !a.trackDetailsPanel(ctx) {
				return
			}
		case nav.PanelDayEntry:
			a.dayEntryPanel(ctx)
		case nav.PanelTrackSettings:
			a.trackSettingsPanel(ctx)
		case nav.PanelPointsStandings:
			a.standingsPanel(ctx)
		case nav.PanelViewDay:
			a.viewDayPanel(ctx)
		case nav.PanelEditDay:
			a.editDayPanel(ctx)
		default:
			a.trackNav.Back(ctx)
		}
	}
}

func (a *app) reloadTracks(ctx context.Context) {
	list, err := a.tracks.ListTracks(ctx)
	if err != nil {
		a.showError(ctx, err)
		return
	}
	a.trackList = list
}

func (a *app) renderTracks() {
	if len(a.trackList) == 0 {
		fmt.Fprintln(a.out, "\nNo tracks yet. Add your first track!")
		return
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\n#\tNAME\tLOCATION\tNOTES")
	for i, t := range a.trackList {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, t.Name, t.Location, t.Notes)
	}
	w.Flush()
}

func (a *app) pickTrack(arg string) (model.Track, bool) {
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 1 || idx > len(a.trackList) {
		return model.Track{}, false
	}
	return a.trackList[idx-1], true
}

func (a *app) addTrackPanel(ctx context.Context) {
	name, ok := a.promptField("track name")
	if !ok {
		a.trackNav.Back(ctx)
		return
	}
	location, _ := a.promptField("location")
	notes, _ := a.promptField("notes")
	if _, err := a.tracks.AddTrack(ctx, name, location, notes); err != nil {
		a.showError(ctx, err)
		return
	}
	a.trackNav.Fire(ctx, nav.TriggerSubmit)
	a.reloadTracks(ctx)
}

func (a *app) trackDetailsPanel(ctx context.Context) bool {
	sel := a.trackNav.Selection()
	days, err := a.tracks.ListDays(ctx, sel.TrackID)
	if err != nil {
		a.showError(ctx, err)
		a.trackNav.Back(ctx)
		return true
	}
	a.renderDays(days)
	fmt.Fprintln(a.out,
		"[n]ew day  [v <n>]iew  [e <n>]dit  [s]ettings  [p]oints  [b]ack")
	cmd, arg, err := a.readIndexed()
	if err != nil {
		return false
	}
	pick := func() (model.Day, bool) {
		idx, convErr := strconv.Atoi(arg)
		if convErr != nil || idx < 1 || idx > len(days) {
			return model.Day{}, false
		}
		return days[idx-1], true
	}
	switch cmd {
	case "b":
		a.trackNav.Back(ctx)
	case "n":
		a.trackNav.Fire(ctx, nav.TriggerOpenDayEntry)
	case "v":
		if d, ok := pick(); ok {
			a.trackNav.Select(func(s *nav.Selection) { s.DayID = d.ID })
			a.trackNav.Fire(ctx, nav.TriggerViewDay)
		}
	case "e":
		if d, ok := pick(); ok {
			a.trackNav.Select(func(s *nav.Selection) { s.DayID = d.ID })
			a.trackNav.Fire(ctx, nav.TriggerEditDay)
		}
	case "s":
		a.trackNav.Fire(ctx, nav.TriggerOpenSettings)
	case "p":
		a.trackNav.Fire(ctx, nav.TriggerOpenStandings)
	}
	return true
}

func (a *app) renderDays(days []model.Day) {
	if len(days) == 0 {
		fmt.Fprintln(a.out, "\nNo race days recorded yet.")
		return
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\n#\tDATE\tRACE\tPOINTS")
	for i, d := range days {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n",
			i+1, formatMillis(d.CreatedAt), d.RaceName, d.PointsEarned)
	}
	w.Flush()
}

func (a *app) dayEntryPanel(ctx context.Context) {
	in, ok := a.collectDayInput(nil)
	if !ok {
		a.trackNav.Back(ctx)
		return
	}
	sel := a.trackNav.Selection()
	if _, saved, err := a.tracks.AddDay(ctx, sel.TrackID, in); err != nil {
		a.showError(ctx, err)
		return
	} else if !saved {
		a.trackNav.Back(ctx)
		return
	}
	a.trackNav.Fire(ctx, nav.TriggerSave)
}

func (a *app) trackSettingsPanel(ctx context.Context) {
	sel := a.trackNav.Selection()
	fmt.Fprintln(a.out, "\nTrack settings: [d]elete track  [b]ack")
	cmd, _, err := a.readIndexed()
	if err != nil {
		return
	}
	switch cmd {
	case "d":
		deleted, delErr := a.tracks.DeleteTrack(ctx, sel.TrackID)
		if delErr != nil {
			a.showError(ctx, delErr)
			return
		}
		if deleted {
			// the track is gone, return to history
			a.trackNav.Back(ctx)
			a.trackNav.Back(ctx)
			a.reloadTracks(ctx)
		}
	default:
		a.trackNav.Back(ctx)
	}
}

func (a *app) standingsPanel(ctx context.Context) {
	sel := a.trackNav.Selection()
	standings, err := a.tracks.Standings(ctx, sel.TrackID)
	if err != nil {
		a.showError(ctx, err)
		a.trackNav.Back(ctx)
		return
	}
	fmt.Fprintf(a.out, "\nTotal points: %d\n", standings.Total)
	a.renderDays(standings.Days)
	a.pause()
	a.trackNav.Back(ctx)
}

func (a *app) viewDayPanel(ctx context.Context) {
	sel := a.trackNav.Selection()
	day, err := a.tracks.GetDay(ctx, sel.DayID)
	if err != nil {
		a.showError(ctx, err)
		a.trackNav.Back(ctx)
		return
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "\nRace:\t%s\n", day.RaceName)
	fmt.Fprintf(w, "Date:\t%s\n", formatMillis(day.CreatedAt))
	fmt.Fprintf(w, "Surface:\t%s\n", day.SurfaceCondition)
	fmt.Fprintf(w, "Moisture:\t%s\n", day.MoistureContent)
	fmt.Fprintf(w, "Grip:\t%s\n", day.GripLevel)
	fmt.Fprintf(w, "Groove:\t%s\n", day.GroovePosition)
	fmt.Fprintf(w, "Texture:\t%s\n", day.SurfaceTexture)
	fmt.Fprintf(w, "Air temp:\t%s\n", day.AirTemperature)
	fmt.Fprintf(w, "Surface temp:\t%s\n", day.SurfaceTemperature)
	fmt.Fprintf(w, "Humidity:\t%s\n", day.Humidity)
	fmt.Fprintf(w, "Time of day:\t%s\n", day.TimeOfDay)
	fmt.Fprintf(w, "Wind:\t%s\n", day.WindConditions)
	fmt.Fprintf(w, "Points:\t%d\n", day.PointsEarned)
	w.Flush()
	a.pause()
	a.trackNav.Back(ctx)
}

func (a *app) editDayPanel(ctx context.Context) {
	sel := a.trackNav.Selection()
	current, err := a.tracks.GetDay(ctx, sel.DayID)
	if err != nil {
		a.showError(ctx, err)
		a.trackNav.Back(ctx)
		return
	}
	in, ok := a.collectDayInput(&current)
	if !ok {
		a.trackNav.Back(ctx)
		return
	}
	if err := a.tracks.EditDay(ctx, sel.DayID, in); err != nil {
		a.showError(ctx, err)
		return
	}
	a.trackNav.Fire(ctx, nav.TriggerSave)
}

// collectDayInput prompts for every editable field. With an existing
// day the current values are the defaults and a blank date keeps the
// original timestamp.
func (a *app) collectDayInput(existing *model.Day) (track.DayInput, bool) {
	def := func(get func(*model.Day) string) string {
		if existing == nil {
			return ""
		}
		return get(existing)
	}
	var in track.DayInput
	fields := []struct {
		label string
		def   string
		dst   *string
	}{
		{"race name", def(func(d *model.Day) string { return d.RaceName }), &in.RaceName},
		{"surface condition", def(func(d *model.Day) string { return d.SurfaceCondition }), &in.SurfaceCondition},
		{"moisture content", def(func(d *model.Day) string { return d.MoistureContent }), &in.MoistureContent},
		{"grip level", def(func(d *model.Day) string { return d.GripLevel }), &in.GripLevel},
		{"groove position", def(func(d *model.Day) string { return d.GroovePosition }), &in.GroovePosition},
		{"surface texture", def(func(d *model.Day) string { return d.SurfaceTexture }), &in.SurfaceTexture},
		{"air temperature", def(func(d *model.Day) string { return d.AirTemperature }), &in.AirTemperature},
		{"surface temperature", def(func(d *model.Day) string { return d.SurfaceTemperature }), &in.SurfaceTemperature},
		{"humidity", def(func(d *model.Day) string { return d.Humidity }), &in.Humidity},
		{"time of day", def(func(d *model.Day) string { return d.TimeOfDay }), &in.TimeOfDay},
		{"wind conditions", def(func(d *model.Day) string { return d.WindConditions }), &in.WindConditions},
	}
	for _, f := range fields {
		value, ok := a.promptDefault(f.label, f.def)
		if !ok {
			return track.DayInput{}, false
		}
		*f.dst = value
	}
	pointsDef := ""
	if existing != nil {
		pointsDef = strconv.Itoa(existing.PointsEarned)
	}
	points, ok := a.promptDefault("points earned", pointsDef)
	if !ok {
		return track.DayInput{}, false
	}
	in.Points = points
	raw, ok := a.promptDefault("date/time (RFC3339, blank = unchanged)", "")
	if !ok {
		return track.DayInput{}, false
	}
	if raw != "" {
		if when, parseErr := time.Parse(time.RFC3339, raw); parseErr == nil {
			in.EventTime = when
		}
	}
	return in, true
}

//nolint:gocognit,funlen // panel dispatch
func (a *app) tireLoop(ctx context.Context) {
	if list, err := a.tires.ListSets(ctx); err == nil {
		a.setList = list
	} else {
		a.showError(ctx, err)
	}
	for {
		switch a.tireNav.Current() {
		case nav.PanelTireHistory:
			a.renderSets()
			fmt.Fprintln(a.out, "[a]dd set  [o <n>]pen  [d <n>]elete  [q] main menu")
			cmd, arg, err := a.readIndexed()
			if err != nil {
				return
			}
			switch cmd {
			case "q":
				return
			case "a":
				a.tireNav.Fire(ctx, nav.TriggerOpenAdd)
			case "o":
				if set, ok := a.pickSet(arg); ok {
					a.tireNav.Select(func(s *nav.Selection) { s.TireSetID = set.ID })
					a.tireNav.Fire(ctx, nav.TriggerLoadSet)
				}
			case "d":
				if set, ok := a.pickSet(arg); ok {
					if _, err := a.tires.DeleteSet(ctx, set.ID); err != nil {
						a.showError(ctx, err)
					}
					if list, err := a.tires.ListSets(ctx); err == nil {
						a.setList = list
					}
				}
			}
		case nav.PanelAddSet:
			a.addSetPanel(ctx)
		case nav.PanelSetDetails:
			if !a.setDetailsPanel(ctx) {
				return
			}
		case nav.PanelTireDetails:
			if !a.tireDetailsPanel(ctx) {
				return
			}
		case nav.PanelAddEvent:
			a.addEventPanel(ctx)
		case nav.PanelViewEvent:
			a.viewEventPanel(ctx)
		case nav.PanelEditEvent:
			a.editEventPanel(ctx)
		default:
			a.tireNav.Back(ctx)
		}
	}
}

func (a *app) renderSets() {
	if len(a.setList) == 0 {
		fmt.Fprintln(a.out, "\nNo tire sets yet.")
		return
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\n#\tSET\tBRAND\tMODEL\tQUANTITY")
	for i, s := range a.setList {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n", i+1, s.SetName, s.Brand, s.Model, s.Quantity)
	}
	w.Flush()
}

func (a *app) pickSet(arg string) (model.TireSet, bool) {
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 1 || idx > len(a.setList) {
		return model.TireSet{}, false
	}
	return a.setList[idx-1], true
}

func (a *app) addSetPanel(ctx context.Context) {
	name, ok := a.promptField("set name")
	if !ok {
		a.tireNav.Back(ctx)
		return
	}
	brand, _ := a.promptField("brand")
	tireModel, _ := a.promptField("model")
	quantityRaw, _ := a.promptField("quantity (1-4)")
	quantity, _ := strconv.Atoi(strings.TrimSpace(quantityRaw))
	if _, err := a.tires.AddSet(ctx, name, brand, tireModel, quantity); err != nil {
		a.showError(ctx, err)
		return
	}
	a.tireNav.Fire(ctx, nav.TriggerSubmit)
	if list, err := a.tires.ListSets(ctx); err == nil {
		a.setList = list
	}
}

func (a *app) setDetailsPanel(ctx context.Context) bool {
	sel := a.tireNav.Selection()
	tires, err := a.tires.ListTires(ctx, sel.TireSetID)
	if err != nil {
		a.showError(ctx, err)
		a.tireNav.Back(ctx)
		return true
	}
	if len(tires) == 0 {
		fmt.Fprintln(a.out, "\nNo tires in this set yet.")
	} else {
		w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "\n#\tTIRE")
		for i, t := range tires {
			fmt.Fprintf(w, "%d\t%s\n", i+1, t.TireName)
		}
		w.Flush()
	}
	fmt.Fprintln(a.out, "[a <name>]dd tire  [o <n>]pen  [d <n>]elete  [b]ack")
	cmd, arg, err := a.readIndexed()
	if err != nil {
		return false
	}
	switch cmd {
	case "b":
		a.tireNav.Back(ctx)
	case "a":
		if _, err := a.tires.AddTire(ctx, sel.TireSetID, arg); err != nil {
			a.showError(ctx, err)
		}
	case "o":
		if idx, convErr := strconv.Atoi(arg); convErr == nil && idx >= 1 && idx <= len(tires) {
			tireID := tires[idx-1].ID
			a.tireNav.Select(func(s *nav.Selection) { s.TireID = tireID })
			a.tireNav.Fire(ctx, nav.TriggerLoadTire)
		}
	case "d":
		if idx, convErr := strconv.Atoi(arg); convErr == nil && idx >= 1 && idx <= len(tires) {
			if _, err := a.tires.DeleteTire(ctx, tires[idx-1].ID); err != nil {
				a.showError(ctx, err)
			}
		}
	}
	return true
}

func (a *app) tireDetailsPanel(ctx context.Context) bool {
	sel := a.tireNav.Selection()
	if latest, ok, err := a.tires.LatestEvent(ctx, sel.TireID); err != nil {
		a.showError(ctx, err)
	} else if ok {
		fmt.Fprintf(a.out, "\nLatest event: %s (%s)\n",
			latest.Description, formatMillis(latest.CreatedAt))
	} else {
		fmt.Fprintln(a.out, "\nNo events for this tire yet.")
	}
	events, err := a.tires.ListEvents(ctx, sel.TireID)
	if err != nil {
		a.showError(ctx, err)
		a.tireNav.Back(ctx)
		return true
	}
	a.renderEvents(events)
	fmt.Fprintln(a.out, "[n]ew event  [v <n>]iew  [e <n>]dit  [d <n>]elete  [b]ack")
	cmd, arg, err := a.readIndexed()
	if err != nil {
		return false
	}
	pick := func() (model.TireEvent, bool) {
		idx, convErr := strconv.Atoi(arg)
		if convErr != nil || idx < 1 || idx > len(events) {
			return model.TireEvent{}, false
		}
		return events[idx-1], true
	}
	switch cmd {
	case "b":
		a.tireNav.Back(ctx)
	case "n":
		a.tireNav.Fire(ctx, nav.TriggerOpenEventEntry)
	case "v":
		if e, ok := pick(); ok {
			a.tireNav.Select(func(s *nav.Selection) { s.EventID = e.ID })
			a.tireNav.Fire(ctx, nav.TriggerViewEvent)
		}
	case "e":
		if e, ok := pick(); ok {
			a.tireNav.Select(func(s *nav.Selection) { s.EventID = e.ID })
			a.tireNav.Fire(ctx, nav.TriggerEditEvent)
		}
	case "d":
		if e, ok := pick(); ok {
			if _, err := a.tires.DeleteEvent(ctx, e.ID); err != nil {
				a.showError(ctx, err)
			}
		}
	}
	return true
}

func (a *app) renderEvents(events []model.TireEvent) {
	if len(events) == 0 {
		return
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\n#\tDATE\tOUTER\tINNER\tDESCRIPTION")
	for i, e := range events {
		fmt.Fprintf(w, "%d\t%s\t%s %s\t%s %s\t%s\n",
			i+1, formatMillis(e.CreatedAt),
			e.OuterChemical, e.OuterAmount,
			e.InnerChemical, e.InnerAmount,
			e.Description)
	}
	w.Flush()
}

func (a *app) collectEventInput(existing *model.TireEvent) (tire.EventInput, bool) {
	def := func(get func(*model.TireEvent) string) string {
		if existing == nil {
			return ""
		}
		return get(existing)
	}
	var in tire.EventInput
	fields := []struct {
		label string
		def   string
		dst   *string
	}{
		{"outer chemical", def(func(e *model.TireEvent) string { return e.OuterChemical }), &in.OuterChemical},
		{"outer amount", def(func(e *model.TireEvent) string { return e.OuterAmount }), &in.OuterAmount},
		{"inner chemical", def(func(e *model.TireEvent) string { return e.InnerChemical }), &in.InnerChemical},
		{"inner amount", def(func(e *model.TireEvent) string { return e.InnerAmount }), &in.InnerAmount},
		{"description", def(func(e *model.TireEvent) string { return e.Description }), &in.Description},
	}
	for _, f := range fields {
		value, ok := a.promptDefault(f.label, f.def)
		if !ok {
			return tire.EventInput{}, false
		}
		*f.dst = value
	}
	return in, true
}

func (a *app) addEventPanel(ctx context.Context) {
	in, ok := a.collectEventInput(nil)
	if !ok {
		a.tireNav.Back(ctx)
		return
	}
	applyRaw, _ := a.promptDefault("apply to all tires in set? (y/N)", "")
	applyToAll := strings.EqualFold(strings.TrimSpace(applyRaw), "y")
	sel := a.tireNav.Selection()
	if err := a.tires.AddEvent(ctx, sel.TireSetID, sel.TireID, in, applyToAll); err != nil {
		a.showError(ctx, err)
		return
	}
	a.tireNav.Fire(ctx, nav.TriggerSave)
}

func (a *app) viewEventPanel(ctx context.Context) {
	sel := a.tireNav.Selection()
	event, err := a.tires.GetEvent(ctx, sel.EventID)
	if err != nil {
		a.showError(ctx, err)
		a.tireNav.Back(ctx)
		return
	}
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "\nDate:\t%s\n", formatMillis(event.CreatedAt))
	fmt.Fprintf(w, "Outer:\t%s %s\n", event.OuterChemical, event.OuterAmount)
	fmt.Fprintf(w, "Inner:\t%s %s\n", event.InnerChemical, event.InnerAmount)
	fmt.Fprintf(w, "Description:\t%s\n", event.Description)
	w.Flush()
	a.pause()
	a.tireNav.Back(ctx)
}

func (a *app) editEventPanel(ctx context.Context) {
	sel := a.tireNav.Selection()
	current, err := a.tires.GetEvent(ctx, sel.EventID)
	if err != nil {
		a.showError(ctx, err)
		a.tireNav.Back(ctx)
		return
	}
	in, ok := a.collectEventInput(&current)
	if !ok {
		a.tireNav.Back(ctx)
		return
	}
	if err := a.tires.EditEvent(ctx, sel.EventID, in); err != nil {
		a.showError(ctx, err)
		return
	}
	a.tireNav.Fire(ctx, nav.TriggerSave)
}

//nolint:gocognit,funlen // panel dispatch
func (a *app) buildLoop(ctx context.Context) {
	for {
		switch a.buildNav.Current() {
		case nav.PanelBuildChoice:
			fmt.Fprintln(a.out, "\n[n]ew build  [l]oad saved  [q] main menu")
			cmd, _, err := a.readIndexed()
			if err != nil {
				return
			}
			switch cmd {
			case "q":
				return
			case "n":
				a.buildNav.Fire(ctx, nav.TriggerCreateNew)
			case "l":
				a.buildNav.Fire(ctx, nav.TriggerLoadSaved)
			}
		case nav.PanelBuildCategory:
			fmt.Fprintln(a.out, "\n[k]art adjustments  [t]ire adjustments  [b]ack")
			cmd, _, err := a.readIndexed()
			if err != nil {
				return
			}
			switch cmd {
			case "b":
				a.buildNav.Back(ctx)
			case "k":
				a.surface.SetCategory(model.CategoryKart)
				a.buildNav.Select(func(s *nav.Selection) { s.Category = model.CategoryKart })
				a.buildNav.Fire(ctx, nav.TriggerPickCategory)
			case "t":
				a.surface.SetCategory(model.CategoryTire)
				a.buildNav.Select(func(s *nav.Selection) { s.Category = model.CategoryTire })
				a.buildNav.Fire(ctx, nav.TriggerPickCategory)
			}
		case nav.PanelBuildEditor:
			if !a.buildEditorPanel(ctx) {
				return
			}
		case nav.PanelSavedBuilds:
			if !a.savedBuildsPanel(ctx) {
				return
			}
		default:
			a.buildNav.Back(ctx)
		}
	}
}

func (a *app) buildEditorPanel(ctx context.Context) bool {
	visible := a.surface.Visible()
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\n#\tSETTING\tVALUE")
	for i, def := range visible {
		fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, def.Label, a.surface.Get(def.Key))
	}
	w.Flush()
	fmt.Fprintln(a.out, "[<n> <value>] set field  [s]ave build  [b]ack")
	cmd, arg, err := a.readIndexed()
	if err != nil {
		return false
	}
	switch cmd {
	case "b":
		a.buildNav.Back(ctx)
	case "s":
		if _, _, saveErr := a.builds.SaveBuild(ctx, a.surface.Snapshot()); saveErr != nil {
			a.showError(ctx, saveErr)
		}
	default:
		if idx, convErr := strconv.Atoi(cmd); convErr == nil &&
			idx >= 1 && idx <= len(visible) {
			a.surface.Set(visible[idx-1].Key, arg)
		}
	}
	return true
}

func (a *app) savedBuildsPanel(ctx context.Context) bool {
	builds, err := a.builds.ListBuilds(ctx)
	if err != nil {
		a.showError(ctx, err)
		a.buildNav.Back(ctx)
		return true
	}
	if len(builds) == 0 {
		fmt.Fprintln(a.out, "\nNo saved builds yet.")
	} else {
		w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "\n#\tNAME\tSETTINGS\tSAVED")
		for i, b := range builds {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\n",
				i+1, b.Name, len(b.Settings), formatMillis(b.CreatedAt))
		}
		w.Flush()
	}
	fmt.Fprintln(a.out, "[l <n>]oad  [d <n>]elete  [b]ack")
	cmd, arg, err := a.readIndexed()
	if err != nil {
		return false
	}
	pick := func() (model.Build, bool) {
		idx, convErr := strconv.Atoi(arg)
		if convErr != nil || idx < 1 || idx > len(builds) {
			return model.Build{}, false
		}
		return builds[idx-1], true
	}
	switch cmd {
	case "b":
		a.buildNav.Back(ctx)
	case "l":
		if b, ok := pick(); ok {
			loaded, loadErr := a.builds.LoadBuild(ctx, b.ID)
			if loadErr != nil {
				a.showError(ctx, loadErr)
				return true
			}
			a.surface.Apply(loaded)
			a.buildNav.Select(func(s *nav.Selection) { s.BuildID = loaded.ID })
			a.buildNav.Fire(ctx, nav.TriggerSubmit)
		}
	case "d":
		if b, ok := pick(); ok {
			if _, delErr := a.builds.DeleteBuild(ctx, b.ID); delErr != nil {
				a.showError(ctx, delErr)
			}
		}
	}
	return true
}

func (a *app) profileLoop(ctx context.Context) {
	for {
		current, err := a.profiles.Get(ctx)
		if err != nil {
			a.showError(ctx, err)
			return
		}
		w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "\nName:\t%s\n", current.DisplayName)
		fmt.Fprintf(w, "Date of birth:\t%s\n", current.DOB)
		fmt.Fprintf(w, "Team:\t%s\n", current.RacingTeam)
		fmt.Fprintf(w, "Kart number:\t%s\n", current.KartNumber)
		fmt.Fprintf(w, "Class:\t%s\n", current.RacingClass)
		w.Flush()
		fmt.Fprintln(a.out, "[e]dit  [m]ail change  [p]assword change  [b]ack")
		cmd, _, err := a.readIndexed()
		if err != nil {
			return
		}
		switch cmd {
		case "b":
			return
		case "e":
			a.editProfile(ctx, current)
		case "m":
			a.changeEmail(ctx)
		case "p":
			a.changePassword(ctx)
		}
	}
}

func (a *app) editProfile(ctx context.Context, current model.UserProfile) {
	fields := []struct {
		label string
		dst   *string
	}{
		{"display name", &current.DisplayName},
		{"date of birth", &current.DOB},
		{"racing team", &current.RacingTeam},
		{"kart number", &current.KartNumber},
		{"racing class", &current.RacingClass},
	}
	for _, f := range fields {
		value, ok := a.promptDefault(f.label, *f.dst)
		if !ok {
			return
		}
		*f.dst = value
	}
	if err := a.profiles.Save(ctx, current); err != nil {
		a.showError(ctx, err)
	}
}

func (a *app) changeEmail(ctx context.Context) {
	password, ok := a.promptField("current password")
	if !ok {
		return
	}
	newEmail, ok := a.promptField("new email")
	if !ok {
		return
	}
	if err := a.profiles.ChangeEmail(ctx, password, newEmail); err != nil {
		a.showError(ctx, err)
		return
	}
	a.alert(ctx, "Email updated.")
}

func (a *app) changePassword(ctx context.Context) {
	password, ok := a.promptField("current password")
	if !ok {
		return
	}
	newPassword, ok := a.promptField("new password")
	if !ok {
		return
	}
	if err := a.profiles.ChangePassword(ctx, password, newPassword); err != nil {
		a.showError(ctx, err)
		return
	}
	a.alert(ctx, "Password updated.")
}

func (a *app) readCommand() (string, error) {
	fmt.Fprint(a.out, "> ")
	line, err := a.in.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}

// readIndexed splits "o 3" into command and argument.
func (a *app) readIndexed() (cmd, arg string, err error) {
	line, err := a.readCommand()
	if err != nil {
		return "", "", err
	}
	parts := strings.SplitN(line, " ", 2)
	cmd = parts[0]
	if len(parts) > 1 {
		arg = strings.TrimSpace(parts[1])
	}
	return cmd, arg, nil
}

func (a *app) promptField(label string) (string, bool) {
	return a.promptDefault(label, "")
}

func (a *app) promptDefault(label, def string) (string, bool) {
	if def != "" {
		fmt.Fprintf(a.out, "%s [%s]: ", label, def)
	} else {
		fmt.Fprintf(a.out, "%s: ", label)
	}
	line, err := a.in.ReadString('\n')
	if err != nil {
		return "", false
	}
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "/cancel" {
		return "", false
	}
	if line == "" {
		return def, true
	}
	return line, true
}

func (a *app) pause() {
	fmt.Fprintln(a.out, "[press enter]")
	//nolint:errcheck // nothing to do on a closed stdin
	a.in.ReadString('\n')
}

func (a *app) alert(ctx context.Context, message string) {
	if err := a.dialogs.Alert(ctx, message, "Racer Ready", "ℹ️"); err != nil {
		a.log.Warn("alert failed", log.ErrorField(err))
	}
}

// showError maps the feature error taxonomy to user-facing alerts.
func (a *app) showError(ctx context.Context, err error) {
	a.log.Error("operation failed", log.ErrorField(err))
	switch {
	case errors.Is(err, feature.ErrNotAuthenticated):
		a.alert(ctx, "Please log in first.")
	case errors.Is(err, feature.ErrValidation),
		errors.Is(err, auth.ErrWrongPassword),
		errors.Is(err, auth.ErrEmailInUse),
		errors.Is(err, auth.ErrInvalidCredentials):
		a.alert(ctx, err.Error())
	default:
		a.alert(ctx, "Something went wrong. Please try again.")
	}
}

func formatMillis(millis int64) string {
	return time.UnixMilli(millis).Format("2006-01-02 15:04")
}
