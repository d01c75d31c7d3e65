package build

import (
	"context"
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

func NewService(opts ...Option) *Service {
	ret := &Service{
		log:   log.Default().Named("build"),
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

// Service owns named configuration snapshots. Settings are stored
// under stable machine keys (model.SettingKey), not display labels, so
// renaming a label cannot orphan saved values.
type Service struct {
	store   store.Store
	session *session.Holder
	dialog  *dialog.Dialog
	log     *log.Logger
	tracer  trace.Tracer
	nowFn   func() time.Time

	mu    sync.Mutex
	cache []model.Build
}

// SaveBuild snapshots the given settings under a user-chosen name. The
// name comes from the dedicated naming dialog; ok=false means the user
// cancelled and nothing was written. Empty values are dropped.
func (s *Service) SaveBuild(
	ctx context.Context,
	settings map[model.SettingKey]string,
) (model.Build, bool, error) {
	ctx, span := s.tracer.Start(ctx, "build.saveBuild")
	defer span.End()
	ident, ok := s.session.Current()
	if !ok {
		return model.Build{}, false, feature.ErrNotAuthenticated
	}
	name, ok, err := s.dialog.PromptBuildName(ctx)
	if err != nil || !ok {
		return model.Build{}, false, err
	}
	stored := map[string]string{}
	for key, value := range settings {
		if value != "" {
			stored[string(key)] = value
		}
	}
	entry := model.Build{
		Name:      name,
		Settings:  stored,
		OwnerID:   ident.UID,
		CreatedAt: s.nowFn().UnixMilli(),
	}
	data, err := model.Encode(&entry)
	if err != nil {
		return model.Build{}, false, err
	}
	id, err := s.store.Create(ctx, store.Builds, data)
	if err != nil {
		return model.Build{}, false, err
	}
	entry.ID = id
	s.mu.Lock()
	s.cache = append(s.cache, entry)
	s.mu.Unlock()
	return entry, true, nil
}

func (s *Service) ListBuilds(ctx context.Context) ([]model.Build, error) {
	ctx, span := s.tracer.Start(ctx, "build.listBuilds")
	defer span.End()
	ident, ok := s.session.Current()
	if !ok {
		return nil, feature.ErrNotAuthenticated
	}
	docs, err := s.store.Query(ctx, store.Builds,
		[]store.Filter{store.ByOwner(ident.UID)})
	if err != nil {
		return nil, err
	}
	builds, err := model.DecodeAll[model.Build](docs)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.cache = builds
	s.mu.Unlock()
	return builds, nil
}

// LoadBuild fetches the owner's builds and searches for the id
// client-side; there is no direct point lookup in this flow.
func (s *Service) LoadBuild(ctx context.Context, id string) (model.Build, error) {
	ctx, span := s.tracer.Start(ctx, "build.loadBuild")
	defer span.End()
	builds, err := s.ListBuilds(ctx)
	if err != nil {
		return model.Build{}, err
	}
	found, ok := lo.Find(builds, func(b model.Build) bool { return b.ID == id })
	if !ok {
		return model.Build{}, store.ErrNotFound
	}
	return found, nil
}

func (s *Service) DeleteBuild(ctx context.Context, id string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "build.deleteBuild")
	defer span.End()
	if _, ok := s.session.Current(); !ok {
		return false, feature.ErrNotAuthenticated
	}
	confirmed, err := s.dialog.Confirm(ctx,
		"Delete this build?", "Delete Build", "🗑️")
	if err != nil || !confirmed {
		return false, err
	}
	if err := s.store.Delete(ctx, store.Builds, id); err != nil {
		return false, err
	}
	s.mu.Lock()
	s.cache = lo.Reject(s.cache, func(b model.Build, _ int) bool { return b.ID == id })
	s.mu.Unlock()
	return true, nil
}
