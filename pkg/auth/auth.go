package auth

import (
	"context"
	"errors"
)

// Identity is the authenticated principal. Every stored record carries
// its UID as ownerId.
type Identity struct {
	UID   string
	Email string
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	// distinguishable errors for sensitive account changes
	ErrWrongPassword = errors.New("wrong current password")
	ErrEmailInUse    = errors.New("new email already in use")
	ErrUnsupported   = errors.New("operation not supported by this provider")
)

// Provider abstracts the external identity provider. Sensitive changes
// (email, password) require a prior successful Reauthenticate for the
// same identity.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Identity, error)
	SignOut(ctx context.Context, uid string) error
	Reauthenticate(ctx context.Context, uid, password string) error
	UpdateEmail(ctx context.Context, uid, newEmail string) error
	UpdatePassword(ctx context.Context, uid, newPassword string) error
}
