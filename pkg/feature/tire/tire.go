package tire

import (
	"context"
	"fmt"
	"sort"
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

const (
	minQuantity = 1
	maxQuantity = 4
)

var (
	ErrQuantityRange = fmt.Errorf(
		"%w: quantity must be between %d and %d",
		feature.ErrValidation, minQuantity, maxQuantity)
	ErrLimitReached = fmt.Errorf(
		"%w: this set already holds its declared number of tires",
		feature.ErrValidation)
)

func NewService(opts ...Option) *Service {
	ret := &Service{
		log:   log.Default().Named("tire"),
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

// Service owns tire sets, their tires and chemical-application events.
type Service struct {
	store   store.Store
	session *session.Holder
	dialog  *dialog.Dialog
	log     *log.Logger
	tracer  trace.Tracer
	nowFn   func() time.Time

	mu    sync.Mutex
	cache []model.TireSet
}

// EventInput is the chemical/description payload of one event. All
// fields are optional free text.
type EventInput struct {
	OuterChemical string
	OuterAmount   string
	InnerChemical string
	InnerAmount   string
	Description   string
}

func (s *Service) ListSets(ctx context.Context) ([]model.TireSet, error) {
	ctx, span := s.tracer.Start(ctx, "tire.listSets")
	defer span.End()
	ident, ok := s.session.Current()
	if !ok {
		return nil, feature.ErrNotAuthenticated
	}
	docs, err := s.store.Query(ctx, store.TireSets,
		[]store.Filter{store.ByOwner(ident.UID)})
	if err != nil {
		return nil, err
	}
	sets, err := model.DecodeAll[model.TireSet](docs)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.cache = sets
	s.mu.Unlock()
	return sets, nil
}

func (s *Service) AddSet(
	ctx context.Context,
	setName, brand, tireModel string,
	quantity int,
) (model.TireSet, error) {
	ctx, span := s.tracer.Start(ctx, "tire.addSet")
	defer span.End()
	ident, ok := s.session.Current()
	if !ok {
		return model.TireSet{}, feature.ErrNotAuthenticated
	}
	setName = strings.TrimSpace(setName)
	if setName == "" {
		return model.TireSet{}, fmt.Errorf("%w: set name is required", feature.ErrValidation)
	}
	if quantity < minQuantity || quantity > maxQuantity {
		return model.TireSet{}, ErrQuantityRange
	}
	entry := model.TireSet{
		SetName:   setName,
		Brand:     strings.TrimSpace(brand),
		Model:     strings.TrimSpace(tireModel),
		Quantity:  quantity,
		OwnerID:   ident.UID,
		CreatedAt: s.nowFn().UnixMilli(),
	}
	data, err := model.Encode(&entry)
	if err != nil {
		return model.TireSet{}, err
	}
	id, err := s.store.Create(ctx, store.TireSets, data)
	if err != nil {
		return model.TireSet{}, err
	}
	entry.ID = id
	s.mu.Lock()
	s.cache = append(s.cache, entry)
	s.mu.Unlock()
	return entry, nil
}

func (s *Service) GetSet(ctx context.Context, id string) (model.TireSet, error) {
	doc, err := s.store.Get(ctx, store.TireSets, id)
	if err != nil {
		return model.TireSet{}, err
	}
	var set model.TireSet
	if err := model.Decode(doc, &set); err != nil {
		return model.TireSet{}, err
	}
	return set, nil
}

func (s *Service) DeleteSet(ctx context.Context, id string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "tire.deleteSet")
	defer span.End()
	if _, ok := s.session.Current(); !ok {
		return false, feature.ErrNotAuthenticated
	}
	confirmed, err := s.dialog.Confirm(ctx,
		"Delete this tire set?", "Delete Set", "🗑️")
	if err != nil || !confirmed {
		return false, err
	}
	if err := s.store.Delete(ctx, store.TireSets, id); err != nil {
		return false, err
	}
	s.mu.Lock()
	s.cache = lo.Reject(s.cache, func(t model.TireSet, _ int) bool { return t.ID == id })
	s.mu.Unlock()
	return true, nil
}

func (s *Service) ListTires(ctx context.Context, setID string) ([]model.Tire, error) {
	ctx, span := s.tracer.Start(ctx, "tire.listTires")
	defer span.End()
	ident, ok := s.session.Current()
	if !ok {
		return nil, feature.ErrNotAuthenticated
	}
	docs, err := s.store.Query(ctx, store.Tires,
		[]store.Filter{store.ByOwner(ident.UID), store.ByField("setId", setID)})
	if err != nil {
		return nil, err
	}
	return model.DecodeAll[model.Tire](docs)
}

// AddTire counts the set's existing tires first and refuses once the
// declared quantity is reached. The count-then-add sequence is not
// atomic against a concurrent add from another session.
func (s *Service) AddTire(
	ctx context.Context,
	setID, tireName string,
) (model.Tire, error) {
	ctx, span := s.tracer.Start(ctx, "tire.addTire")
	defer span.End()
	ident, ok := s.session.Current()
	if !ok {
		return model.Tire{}, feature.ErrNotAuthenticated
	}
	tireName = strings.TrimSpace(tireName)
	if tireName == "" {
		return model.Tire{}, fmt.Errorf("%w: tire name is required", feature.ErrValidation)
	}
	set, err := s.GetSet(ctx, setID)
	if err != nil {
		return model.Tire{}, err
	}
	existing, err := s.ListTires(ctx, setID)
	if err != nil {
		return model.Tire{}, err
	}
	if len(existing) >= set.Quantity {
		return model.Tire{}, ErrLimitReached
	}
	entry := model.Tire{
		TireName:  tireName,
		SetID:     setID,
		OwnerID:   ident.UID,
		CreatedAt: s.nowFn().UnixMilli(),
	}
	data, err := model.Encode(&entry)
	if err != nil {
		return model.Tire{}, err
	}
	id, err := s.store.Create(ctx, store.Tires, data)
	if err != nil {
		return model.Tire{}, err
	}
	entry.ID = id
	return entry, nil
}

func (s *Service) DeleteTire(ctx context.Context, id string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "tire.deleteTire")
	defer span.End()
	if _, ok := s.session.Current(); !ok {
		return false, feature.ErrNotAuthenticated
	}
	confirmed, err := s.dialog.Confirm(ctx,
		"Delete this tire?", "Delete Tire", "🗑️")
	if err != nil || !confirmed {
		return false, err
	}
	return true, s.store.Delete(ctx, store.Tires, id)
}

// ListEvents returns a tire's events, most recent first.
func (s *Service) ListEvents(
	ctx context.Context,
	tireID string,
) ([]model.TireEvent, error) {
	ctx, span := s.tracer.Start(ctx, "tire.listEvents")
	defer span.End()
	ident, ok := s.session.Current()
	if !ok {
		return nil, feature.ErrNotAuthenticated
	}
	docs, err := s.store.Query(ctx, store.TireEvents,
		[]store.Filter{store.ByOwner(ident.UID), store.ByField("tireId", tireID)})
	if err != nil {
		return nil, err
	}
	events, err := model.DecodeAll[model.TireEvent](docs)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt > events[j].CreatedAt
	})
	return events, nil
}

// LatestEvent picks the event with the highest createdAt client-side.
// ok=false when the tire has no events yet.
func (s *Service) LatestEvent(
	ctx context.Context,
	tireID string,
) (model.TireEvent, bool, error) {
	events, err := s.ListEvents(ctx, tireID)
	if err != nil {
		return model.TireEvent{}, false, err
	}
	if len(events) == 0 {
		return model.TireEvent{}, false, nil
	}
	latest := lo.MaxBy(events, func(a, b model.TireEvent) bool {
		return a.CreatedAt > b.CreatedAt
	})
	return latest, true, nil
}

// AddEvent records one event for the tire, or with applyToAll one
// event per tire in the set. The fan-out creates run concurrently with
// a single shared timestamp and payload; individual failures are
// logged only, partial success is not distinguished from total.
func (s *Service) AddEvent(
	ctx context.Context,
	setID, tireID string,
	in EventInput,
	applyToAll bool,
) error {
	ctx, span := s.tracer.Start(ctx, "tire.addEvent")
	defer span.End()
	ident, ok := s.session.Current()
	if !ok {
		return feature.ErrNotAuthenticated
	}
	createdAt := s.nowFn().UnixMilli()
	if !applyToAll {
		return s.createEvent(ctx, ident.UID, tireID, in, createdAt)
	}
	tires, err := s.ListTires(ctx, setID)
	if err != nil {
		return err
	}
	var wg sync.WaitGroup
	for _, t := range tires {
		wg.Add(1)
		go func(targetID string) {
			defer wg.Done()
			if createErr := s.createEvent(
				ctx, ident.UID, targetID, in, createdAt); createErr != nil {
				s.log.Error("event create failed during fan-out",
					log.String("tireId", targetID), log.ErrorField(createErr))
			}
		}(t.ID)
	}
	wg.Wait()
	return nil
}

func (s *Service) createEvent(
	ctx context.Context,
	uid, tireID string,
	in EventInput,
	createdAt int64,
) error {
	entry := model.TireEvent{
		TireID:        tireID,
		OuterChemical: in.OuterChemical,
		OuterAmount:   in.OuterAmount,
		InnerChemical: in.InnerChemical,
		InnerAmount:   in.InnerAmount,
		Description:   in.Description,
		OwnerID:       uid,
		CreatedAt:     createdAt,
	}
	data, err := model.Encode(&entry)
	if err != nil {
		return err
	}
	_, err = s.store.Create(ctx, store.TireEvents, data)
	return err
}

func (s *Service) GetEvent(ctx context.Context, id string) (model.TireEvent, error) {
	doc, err := s.store.Get(ctx, store.TireEvents, id)
	if err != nil {
		return model.TireEvent{}, err
	}
	var event model.TireEvent
	if err := model.Decode(doc, &event); err != nil {
		return model.TireEvent{}, err
	}
	return event, nil
}

// EditEvent overwrites the chemical/description payload. The event's
// timestamp is never touched on edit.
func (s *Service) EditEvent(ctx context.Context, id string, in EventInput) error {
	ctx, span := s.tracer.Start(ctx, "tire.editEvent")
	defer span.End()
	if _, ok := s.session.Current(); !ok {
		return feature.ErrNotAuthenticated
	}
	return s.store.Update(ctx, store.TireEvents, id, map[string]any{
		"outerChemical": in.OuterChemical,
		"outerAmount":   in.OuterAmount,
		"innerChemical": in.InnerChemical,
		"innerAmount":   in.InnerAmount,
		"description":   in.Description,
	})
}

func (s *Service) DeleteEvent(ctx context.Context, id string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "tire.deleteEvent")
	defer span.End()
	if _, ok := s.session.Current(); !ok {
		return false, feature.ErrNotAuthenticated
	}
	confirmed, err := s.dialog.Confirm(ctx,
		"Delete this event?", "Delete Event", "🗑️")
	if err != nil || !confirmed {
		return false, err
	}
	return true, s.store.Delete(ctx, store.TireEvents, id)
}
