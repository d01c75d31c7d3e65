package simple

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/racerready/racerready-manager-go/pkg/auth"
)

func TestSignIn(t *testing.T) {
	p := New()
	uid, err := p.Register("max@example.com", "secret")
	require.NoError(t, err)
	ctx := context.Background()

	ident, err := p.SignIn(ctx, "max@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, uid, ident.UID)
	assert.Equal(t, "max@example.com", ident.Email)

	_, err = p.SignIn(ctx, "max@example.com", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = p.SignIn(ctx, "nobody@example.com", "secret")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	p := New()
	_, err := p.Register("max@example.com", "secret")
	require.NoError(t, err)
	_, err = p.Register("max@example.com", "other")
	assert.ErrorIs(t, err, auth.ErrEmailInUse)
}

func TestReauthenticate(t *testing.T) {
	p := New()
	uid, err := p.Register("max@example.com", "secret")
	require.NoError(t, err)
	ctx := context.Background()

	assert.NoError(t, p.Reauthenticate(ctx, uid, "secret"))
	assert.ErrorIs(t, p.Reauthenticate(ctx, uid, "wrong"), auth.ErrWrongPassword)
}

func TestUpdateEmail(t *testing.T) {
	p := New()
	uid, err := p.Register("max@example.com", "secret")
	require.NoError(t, err)
	_, err = p.Register("taken@example.com", "other")
	require.NoError(t, err)
	ctx := context.Background()

	assert.ErrorIs(t,
		p.UpdateEmail(ctx, uid, "taken@example.com"), auth.ErrEmailInUse)
	require.NoError(t, p.UpdateEmail(ctx, uid, "new@example.com"))

	ident, err := p.SignIn(ctx, "new@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, uid, ident.UID)
}

func TestUpdatePassword(t *testing.T) {
	p := New()
	uid, err := p.Register("max@example.com", "secret")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, p.UpdatePassword(ctx, uid, "changed"))
	_, err = p.SignIn(ctx, "max@example.com", "secret")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	_, err = p.SignIn(ctx, "max@example.com", "changed")
	assert.NoError(t, err)
}
