package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/racerready/racerready-manager-go/log"
	"github.com/racerready/racerready-manager-go/pkg/auth"
	"github.com/racerready/racerready-manager-go/pkg/feature"
	"github.com/racerready/racerready-manager-go/pkg/model"
	"github.com/racerready/racerready-manager-go/pkg/session"
	"github.com/racerready/racerready-manager-go/pkg/store"
)

// maxPictureBytes caps the stored thumbnail data URI.
const maxPictureBytes = 256 * 1024

var ErrBadPicture = fmt.Errorf(
	"%w: profile picture must be an image data URI of at most 256 KiB",
	feature.ErrValidation)

func NewService(opts ...Option) *Service {
	ret := &Service{
		log: log.Default().Named("profile"),
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

func WithProvider(p auth.Provider) Option {
	return func(srv *Service) { srv.provider = p }
}

func WithLogger(logger *log.Logger) Option {
	return func(srv *Service) { srv.log = logger }
}

func WithTracer(tracer trace.Tracer) Option {
	return func(srv *Service) { srv.tracer = tracer }
}

// Service owns the per-identity profile document and the sensitive
// account changes that need reauthentication first.
type Service struct {
	store    store.Store
	session  *session.Holder
	provider auth.Provider
	log      *log.Logger
	tracer   trace.Tracer
}

// Get loads the signed-in identity's profile. A first visit without a
// stored document yields an empty profile carrying the uid.
func (s *Service) Get(ctx context.Context) (model.UserProfile, error) {
	ctx, span := s.tracer.Start(ctx, "profile.get")
	defer span.End()
	ident, ok := s.session.Current()
	if !ok {
		return model.UserProfile{}, feature.ErrNotAuthenticated
	}
	doc, err := s.store.Get(ctx, store.Users, ident.UID)
	if errors.Is(err, store.ErrNotFound) {
		return model.UserProfile{OwnerID: ident.UID}, nil
	}
	if err != nil {
		return model.UserProfile{}, err
	}
	var profile model.UserProfile
	if err := model.Decode(doc, &profile); err != nil {
		return model.UserProfile{}, err
	}
	profile.OwnerID = ident.UID
	return profile, nil
}

// Save replaces the profile document under the identity's uid.
func (s *Service) Save(ctx context.Context, profile model.UserProfile) error {
	ctx, span := s.tracer.Start(ctx, "profile.save")
	defer span.End()
	ident, ok := s.session.Current()
	if !ok {
		return feature.ErrNotAuthenticated
	}
	if err := validatePicture(profile.ProfilePictureDataURI); err != nil {
		return err
	}
	profile.OwnerID = ident.UID
	data, err := model.Encode(&profile)
	if err != nil {
		return err
	}
	return s.store.Put(ctx, store.Users, ident.UID, data)
}

// ChangeEmail reauthenticates with the current password first. A wrong
// password or a taken address surfaces as its sentinel without any
// write; on success the session identity is refreshed.
func (s *Service) ChangeEmail(ctx context.Context, currentPassword, newEmail string) error {
	ctx, span := s.tracer.Start(ctx, "profile.changeEmail")
	defer span.End()
	ident, ok := s.session.Current()
	if !ok {
		return feature.ErrNotAuthenticated
	}
	newEmail = strings.TrimSpace(newEmail)
	if newEmail == "" {
		return fmt.Errorf("%w: email is required", feature.ErrValidation)
	}
	if err := s.provider.Reauthenticate(ctx, ident.UID, currentPassword); err != nil {
		return err
	}
	if err := s.provider.UpdateEmail(ctx, ident.UID, newEmail); err != nil {
		return err
	}
	s.session.Set(&auth.Identity{UID: ident.UID, Email: newEmail})
	return nil
}

// ChangePassword reauthenticates with the current password first.
func (s *Service) ChangePassword(
	ctx context.Context,
	currentPassword, newPassword string,
) error {
	ctx, span := s.tracer.Start(ctx, "profile.changePassword")
	defer span.End()
	ident, ok := s.session.Current()
	if !ok {
		return feature.ErrNotAuthenticated
	}
	if newPassword == "" {
		return fmt.Errorf("%w: password is required", feature.ErrValidation)
	}
	if err := s.provider.Reauthenticate(ctx, ident.UID, currentPassword); err != nil {
		return err
	}
	return s.provider.UpdatePassword(ctx, ident.UID, newPassword)
}

func validatePicture(dataURI string) error {
	if dataURI == "" {
		return nil
	}
	if !strings.HasPrefix(dataURI, "data:image/") || len(dataURI) > maxPictureBytes {
		return ErrBadPicture
	}
	return nil
}
