package track

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/racerready/racerready-manager-go/log"
	"github.com/racerready/racerready-manager-go/pkg/dialog"
	"github.com/racerready/racerready-manager-go/pkg/feature"
	"github.com/racerready/racerready-manager-go/pkg/model"
	"github.com/racerready/racerready-manager-go/pkg/session"
	"github.com/racerready/racerready-manager-go/pkg/store"
)

var ErrDuplicateName = fmt.Errorf("%w: track name already exists", feature.ErrValidation)

func NewService(opts ...Option) *Service {
	ret := &Service{
		log:   log.Default().Named("track"),
		nowFn: time.Now,
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.tracer == nil {
		ret.tracer = otel.Tracer("rrm")
	}
	return ret
}

type Option func(*Service)

func WithStore(s store.Store) Option {
	return func(srv *Service) { srv.store = s }
}

func WithSession(h *session.Holder) Option {
	return func(srv *Service) { srv.session = h }
}

func WithDialog(d *dialog.Dialog) Option {
	return func(srv *Service) { srv.dialog = d }
}

func WithLogger(logger *log.Logger) Option {
	return func(srv *Service) { srv.log = logger }
}

func WithTracer(tracer trace.Tracer) Option {
	return func(srv *Service) { srv.tracer = tracer }
}

func WithNowFn(nowFn func() time.Time) Option {
	return func(srv *Service) { srv.nowFn = nowFn }
}

// Service owns tracks and race-day records. It keeps the last fetched
// track list as a cache; the duplicate-name check runs against that
// cache only, so a stale cache can admit a duplicate.
type Service struct {
	store   store.Store
	session *session.Holder
	dialog  *dialog.Dialog
	log     *log.Logger
	tracer  trace.Tracer
	nowFn   func() time.Time

	mu    sync.Mutex
	cache []model.Track
}

// DayInput carries the editable field set of a race day. All condition
// fields are optional free-text. Points is the raw form value; it is
// parsed to an int and defaults to 0 on absence or parse failure. A
// zero EventTime means "now" on add and "unchanged" on edit.
type DayInput struct {
	RaceName           string
	SurfaceCondition   string
	MoistureContent    string
	GripLevel          string
	GroovePosition     string
	SurfaceTexture     string
	AirTemperature     string
	SurfaceTemperature string
	Humidity           string
	TimeOfDay          string
	WindConditions     string
	Points             string
	EventTime          time.Time
}

// Standings is the points view for one track: only days that earned
// points appear, most recent first.
type Standings struct {
	Total int
	Days  []model.Day
}

func (s *Service) ListTracks(ctx context.Context) ([]model.Track, error) {
	ctx, span := s.tracer.Start(ctx, "track.listTracks")
	defer span.End()
	ident, ok := s.session.Current()
	if !ok {
		return nil, feature.ErrNotAuthenticated
	}
	docs, err := s.store.Query(ctx, store.Tracks,
		[]store.Filter{store.ByOwner(ident.UID)})
	if err != nil {
		return nil, err
	}
	tracks, err := model.DecodeAll[model.Track](docs)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.cache = tracks
	s.mu.Unlock()
	return tracks, nil
}

func (s *Service) AddTrack(
	ctx context.Context,
	name, location, notes string,
) (model.Track, error) {
	ctx, span := s.tracer.Start(ctx, "track.addTrack")
	defer span.End()
	ident, ok := s.session.Current()
	if !ok {
		return model.Track{}, feature.ErrNotAuthenticated
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return model.Track{}, fmt.Errorf("%w: track name is required", feature.ErrValidation)
	}
	if s.hasDuplicate(ident.UID, name) {
		return model.Track{}, ErrDuplicateName
	}
	entry := model.Track{
		Name:      name,
		Location:  strings.TrimSpace(location),
		Notes:     strings.TrimSpace(notes),
		OwnerID:   ident.UID,
		CreatedAt: s.nowFn().UnixMilli(),
	}
	data, err := model.Encode(&entry)
	if err != nil {
		return model.Track{}, err
	}
	id, err := s.store.Create(ctx, store.Tracks, data)
	if err != nil {
		return model.Track{}, err
	}
	entry.ID = id
	s.mu.Lock()
	s.cache = append(s.cache, entry)
	s.mu.Unlock()
	return entry, nil
}

// hasDuplicate checks the cached list only (never re-queried).
func (s *Service) hasDuplicate(uid, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.ContainsBy(s.cache, func(t model.Track) bool {
		return t.OwnerID == uid && strings.EqualFold(t.Name, name)
	})
}

// DeleteTrack asks for confirmation, then deletes the track's days
// concurrently best-effort before deleting the track itself. A failed
// day delete is logged and does not stop the rest of the cascade.
func (s *Service) DeleteTrack(ctx context.Context, id string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "track.deleteTrack")
	defer span.End()
	ident, ok := s.session.Current()
	if !ok {
		return false, feature.ErrNotAuthenticated
	}
	confirmed, err := s.dialog.Confirm(ctx,
		"Delete this track and all of its race days?", "Delete Track", "🗑️")
	if err != nil || !confirmed {
		return false, err
	}
	docs, err := s.store.Query(ctx, store.Days,
		[]store.Filter{store.ByOwner(ident.UID), store.ByField("trackId", id)})
	if err != nil {
		return false, err
	}
	var wg sync.WaitGroup
	for _, doc := range docs {
		wg.Add(1)
		go func(dayID string) {
			defer wg.Done()
			if delErr := s.store.Delete(ctx, store.Days, dayID); delErr != nil {
				s.log.Error("day delete failed during cascade",
					log.String("dayId", dayID), log.ErrorField(delErr))
			}
		}(doc.ID)
	}
	wg.Wait()
	if err := s.store.Delete(ctx, store.Tracks, id); err != nil {
		return false, err
	}
	s.mu.Lock()
	s.cache = lo.Reject(s.cache, func(t model.Track, _ int) bool { return t.ID == id })
	s.mu.Unlock()
	return true, nil
}

// ListDays returns the track's race days, most recent first. The sort
// is done here; the store result carries no order.
func (s *Service) ListDays(ctx context.Context, trackID string) ([]model.Day, error) {
	ctx, span := s.tracer.Start(ctx, "track.listDays")
	defer span.End()
	ident, ok := s.session.Current()
	if !ok {
		return nil, feature.ErrNotAuthenticated
	}
	docs, err := s.store.Query(ctx, store.Days,
		[]store.Filter{store.ByOwner(ident.UID), store.ByField("trackId", trackID)})
	if err != nil {
		return nil, err
	}
	days, err := model.DecodeAll[model.Day](docs)
	if err != nil {
		return nil, err
	}
	sortDaysDesc(days)
	return days, nil
}

// AddDay asks for the race name first; cancelling the prompt aborts
// the whole save. ok=false means the user cancelled.
func (s *Service) AddDay(
	ctx context.Context,
	trackID string,
	in DayInput,
) (model.Day, bool, error) {
	ctx, span := s.tracer.Start(ctx, "track.addDay")
	defer span.End()
	ident, ok := s.session.Current()
	if !ok {
		return model.Day{}, false, feature.ErrNotAuthenticated
	}
	raceName, ok, err := s.dialog.PromptText(ctx,
		"Enter a name for this race day:", "Race Name", "🏁")
	if err != nil || !ok {
		return model.Day{}, false, err
	}
	createdAt := s.nowFn()
	if !in.EventTime.IsZero() {
		createdAt = in.EventTime
	}
	entry := model.Day{
		TrackID:            trackID,
		RaceName:           raceName,
		CreatedAt:          createdAt.UnixMilli(),
		SurfaceCondition:   in.SurfaceCondition,
		MoistureContent:    in.MoistureContent,
		GripLevel:          in.GripLevel,
		GroovePosition:     in.GroovePosition,
		SurfaceTexture:     in.SurfaceTexture,
		AirTemperature:     in.AirTemperature,
		SurfaceTemperature: in.SurfaceTemperature,
		Humidity:           in.Humidity,
		TimeOfDay:          in.TimeOfDay,
		WindConditions:     in.WindConditions,
		PointsEarned:       parsePoints(in.Points),
		OwnerID:            ident.UID,
	}
	data, err := model.Encode(&entry)
	if err != nil {
		return model.Day{}, false, err
	}
	id, err := s.store.Create(ctx, store.Days, data)
	if err != nil {
		return model.Day{}, false, err
	}
	entry.ID = id
	return entry, true, nil
}

func (s *Service) GetDay(ctx context.Context, id string) (model.Day, error) {
	doc, err := s.store.Get(ctx, store.Days, id)
	if err != nil {
		return model.Day{}, err
	}
	var day model.Day
	if err := model.Decode(doc, &day); err != nil {
		return model.Day{}, err
	}
	return day, nil
}

// EditDay overwrites the full editable field set. The timestamp is
// only touched when the date/time input changed (non-zero EventTime).
func (s *Service) EditDay(ctx context.Context, id string, in DayInput) error {
	ctx, span := s.tracer.Start(ctx, "track.editDay")
	defer span.End()
	if _, ok := s.session.Current(); !ok {
		return feature.ErrNotAuthenticated
	}
	partial := map[string]any{
		"raceName":           in.RaceName,
		"surfaceCondition":   in.SurfaceCondition,
		"moistureContent":    in.MoistureContent,
		"gripLevel":          in.GripLevel,
		"groovePosition":     in.GroovePosition,
		"surfaceTexture":     in.SurfaceTexture,
		"airTemperature":     in.AirTemperature,
		"surfaceTemperature": in.SurfaceTemperature,
		"humidity":           in.Humidity,
		"timeOfDay":          in.TimeOfDay,
		"windConditions":     in.WindConditions,
		"pointsEarned":       parsePoints(in.Points),
	}
	if !in.EventTime.IsZero() {
		partial["createdAt"] = in.EventTime.UnixMilli()
	}
	return s.store.Update(ctx, store.Days, id, partial)
}

// Standings filters to days with points, sums them and sorts the
// remainder most recent first. Zero-point days are excluded from both
// the list and the total.
func (s *Service) Standings(ctx context.Context, trackID string) (Standings, error) {
	ctx, span := s.tracer.Start(ctx, "track.standings")
	defer span.End()
	days, err := s.ListDays(ctx, trackID)
	if err != nil {
		return Standings{}, err
	}
	scored := lo.Filter(days, func(d model.Day, _ int) bool {
		return d.PointsEarned > 0
	})
	total := lo.SumBy(scored, func(d model.Day) int { return d.PointsEarned })
	sortDaysDesc(scored)
	return Standings{Total: total, Days: scored}, nil
}

func sortDaysDesc(days []model.Day) {
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].CreatedAt > days[j].CreatedAt
	})
}

func parsePoints(raw string) int {
	points, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || points < 0 {
		return 0
	}
	return points
}
