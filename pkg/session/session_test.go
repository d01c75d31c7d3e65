package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/racerready/racerready-manager-go/pkg/auth"
)

func TestHolder(t *testing.T) {
	h := NewHolder()

	_, ok := h.Current()
	assert.False(t, ok)

	h.Set(&auth.Identity{UID: "u1", Email: "max@example.com"})
	ident, ok := h.Current()
	assert.True(t, ok)
	assert.Equal(t, "u1", ident.UID)
	assert.Equal(t, "max@example.com", ident.Email)

	h.Clear()
	_, ok = h.Current()
	assert.False(t, ok)
}
