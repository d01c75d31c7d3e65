package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/racerready/racerready-manager-go/pkg/store"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	entry := Track{
		Name:      "Oakhill",
		Location:  "Somewhere",
		Notes:     "fast in turn 3",
		OwnerID:   "u1",
		CreatedAt: 1700000000000,
	}
	data, err := Encode(&entry)
	require.NoError(t, err)
	// the generated id never travels inside the document body
	assert.NotContains(t, data, "ID")
	assert.Equal(t, "Oakhill", data["name"])
	assert.Equal(t, "u1", data["ownerId"])

	var decoded Track
	require.NoError(t, Decode(store.Document{ID: "abc", Data: data}, &decoded))
	entry.ID = "abc"
	if diff := cmp.Diff(entry, decoded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeDefaultsMissingFields(t *testing.T) {
	var day Day
	require.NoError(t, Decode(store.Document{
		ID:   "d1",
		Data: map[string]any{"trackId": "t1", "raceName": "club race"},
	}, &day))
	assert.Equal(t, "d1", day.ID)
	assert.Equal(t, 0, day.PointsEarned)
	assert.Empty(t, day.GripLevel)
}

func TestDecodeAll(t *testing.T) {
	docs := []store.Document{
		{ID: "a", Data: map[string]any{"tireName": "LF", "setId": "s1"}},
		{ID: "b", Data: map[string]any{"tireName": "RF", "setId": "s1"}},
	}
	tires, err := DecodeAll[Tire](docs)
	require.NoError(t, err)
	require.Len(t, tires, 2)
	assert.Equal(t, "a", tires[0].ID)
	assert.Equal(t, "RF", tires[1].TireName)
}

func TestSettingCatalog(t *testing.T) {
	kart := SettingsByCategory(CategoryKart)
	tire := SettingsByCategory(CategoryTire)
	assert.NotEmpty(t, kart)
	assert.NotEmpty(t, tire)
	assert.Len(t, SettingCatalog(), len(kart)+len(tire))

	def, ok := LookupSetting(SettingFrontCaster)
	require.True(t, ok)
	assert.Equal(t, "Caster", def.Label)
	assert.Equal(t, CategoryKart, def.Category)

	_, ok = LookupSetting("kart.frontend.bogus")
	assert.False(t, ok)
}
