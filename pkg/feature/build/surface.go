package build

import (
	"sync"

	"github.com/racerready/racerready-manager-go/pkg/model"
)

// Surface is the active edit surface: the current value of every
// configurable field plus the category filter deciding which fields
// are visible at once.
type Surface struct {
	mu       sync.Mutex
	category string
	values   map[model.SettingKey]string
}

func NewSurface(category string) *Surface {
	return &Surface{
		category: category,
		values:   map[model.SettingKey]string{},
	}
}

func (s *Surface) Category() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

func (s *Surface) SetCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.category = category
}

func (s *Surface) Set(key model.SettingKey, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *Surface) Get(key model.SettingKey) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

// Snapshot copies the current values for saving.
func (s *Surface) Snapshot() map[model.SettingKey]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ret := make(map[model.SettingKey]string, len(s.values))
	for key, value := range s.values {
		ret[key] = value
	}
	return ret
}

// Apply repopulates the surface from a saved build: every field is
// cleared first, then only the keys present in the saved map are
// written. Visibility stays with the category filter.
func (s *Surface) Apply(saved model.Build) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = map[model.SettingKey]string{}
	for key, value := range saved.Settings {
		s.values[model.SettingKey(key)] = value
	}
}

// Visible returns the catalog entries for the active category in
// display order.
func (s *Surface) Visible() []model.SettingDef {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.SettingsByCategory(s.category)
}
