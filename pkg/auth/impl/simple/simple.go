package simple

import (
	"context"
	"strings"
	"sync"

	"github.com/gofrs/uuid/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/racerready/racerready-manager-go/pkg/auth"
)

// Provider keeps accounts in memory with bcrypt password hashes.
// Meant for local development and tests.
type Provider struct {
	mu       sync.Mutex
	accounts map[string]*account // keyed by lowercase email
}

type account struct {
	uid   string
	email string
	hash  []byte
}

var _ auth.Provider = (*Provider)(nil)

func New() *Provider {
	return &Provider{accounts: map[string]*account{}}
}

// Register creates an account and returns its uid.
func (p *Provider) Register(email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	id, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	key := strings.ToLower(email)
	if _, exists := p.accounts[key]; exists {
		return "", auth.ErrEmailInUse
	}
	p.accounts[key] = &account{uid: id.String(), email: email, hash: hash}
	return id.String(), nil
}

func (p *Provider) SignIn(ctx context.Context, email, password string) (
	*auth.Identity, error,
) {
	p.mu.Lock()
	defer p.mu.Unlock()
	acc, ok := p.accounts[strings.ToLower(email)]
	if !ok {
		return nil, auth.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(acc.hash, []byte(password)) != nil {
		return nil, auth.ErrInvalidCredentials
	}
	return &auth.Identity{UID: acc.uid, Email: acc.email}, nil
}

func (p *Provider) SignOut(ctx context.Context, uid string) error {
	return nil
}

func (p *Provider) Reauthenticate(ctx context.Context, uid, password string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	acc := p.byUID(uid)
	if acc == nil {
		return auth.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword(acc.hash, []byte(password)) != nil {
		return auth.ErrWrongPassword
	}
	return nil
}

func (p *Provider) UpdateEmail(ctx context.Context, uid, newEmail string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	key := strings.ToLower(newEmail)
	if other, exists := p.accounts[key]; exists && other.uid != uid {
		return auth.ErrEmailInUse
	}
	acc := p.byUID(uid)
	if acc == nil {
		return auth.ErrInvalidCredentials
	}
	delete(p.accounts, strings.ToLower(acc.email))
	acc.email = newEmail
	p.accounts[key] = acc
	return nil
}

func (p *Provider) UpdatePassword(ctx context.Context, uid, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	acc := p.byUID(uid)
	if acc == nil {
		return auth.ErrInvalidCredentials
	}
	acc.hash = hash
	return nil
}

// callers hold p.mu
func (p *Provider) byUID(uid string) *account {
	for _, acc := range p.accounts {
		if acc.uid == uid {
			return acc
		}
	}
	return nil
}
