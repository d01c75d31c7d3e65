package oidc

import (
	"context"

	gooidc "github.com/coreos/go-oidc/v3/oidc"

	"github.com/racerready/racerready-manager-go/pkg/auth"
)

// Provider maps a verified OIDC ID token to an Identity. The token is
// passed in place of the password; account maintenance stays with the
// issuer, so sensitive updates report ErrUnsupported.
type Provider struct {
	verifier *gooidc.IDTokenVerifier
}

var _ auth.Provider = (*Provider)(nil)

func New(ctx context.Context, issuerURL, clientID string) (*Provider, error) {
	provider, err := gooidc.NewProvider(ctx, issuerURL)
	if err != nil {
		return nil, err
	}
	return &Provider{
		verifier: provider.Verifier(&gooidc.Config{ClientID: clientID}),
	}, nil
}

func (p *Provider) SignIn(ctx context.Context, email, rawIDToken string) (
	*auth.Identity, error,
) {
	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, auth.ErrInvalidCredentials
	}
	var claims struct {
		Email string `json:"email"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, err
	}
	return &auth.Identity{UID: idToken.Subject, Email: claims.Email}, nil
}

func (p *Provider) SignOut(ctx context.Context, uid string) error {
	return nil
}

func (p *Provider) Reauthenticate(ctx context.Context, uid, rawIDToken string) error {
	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return auth.ErrWrongPassword
	}
	if idToken.Subject != uid {
		return auth.ErrWrongPassword
	}
	return nil
}

func (p *Provider) UpdateEmail(ctx context.Context, uid, newEmail string) error {
	return auth.ErrUnsupported
}

func (p *Provider) UpdatePassword(ctx context.Context, uid, newPassword string) error {
	return auth.ErrUnsupported
}
