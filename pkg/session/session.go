package session

import (
	"sync"

	"github.com/racerready/racerready-manager-go/pkg/auth"
)

// Holder keeps the current authenticated identity. All owner-scoped
// operations consult it first and fail fast when empty.
type Holder struct {
	mu      sync.RWMutex
	current *auth.Identity
}

func NewHolder() *Holder {
	return &Holder{}
}

func (h *Holder) Set(identity *auth.Identity) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = identity
}

func (h *Holder) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = nil
}

func (h *Holder) Current() (auth.Identity, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.current == nil {
		return auth.Identity{}, false
	}
	return *h.current, true
}
