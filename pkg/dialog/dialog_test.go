package dialog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/racerready/racerready-manager-go/pkg/dialog"
	"github.com/racerready/racerready-manager-go/testsupport/scripted"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		name     string
		response dialog.Response
		want     bool
	}{
		{name: "accept", response: scripted.Accept(), want: true},
		{name: "cancel", response: scripted.Cancel(), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			presenter := scripted.NewPresenter(tt.response)
			d := dialog.New(presenter)
			got, err := d.Confirm(context.Background(), "sure?", "Confirm", "❓")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPromptText_CancelYieldsNoValue(t *testing.T) {
	presenter := scripted.NewPresenter(scripted.Cancel())
	d := dialog.New(presenter)
	text, ok, err := d.PromptText(context.Background(), "name?", "Prompt", "✏️")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, text)
}

func TestPromptBuildName_RepromptsOnBlank(t *testing.T) {
	// submit "", then "  ", then a real name; each blank submit shows
	// the missing-name alert and re-prompts
	presenter := scripted.NewPresenter(
		scripted.Text(""),
		scripted.Accept(), // alert ack
		scripted.Text("  "),
		scripted.Accept(), // alert ack
		scripted.Text("  race day setup "),
	)
	d := dialog.New(presenter)

	name, ok, err := d.PromptBuildName(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "race day setup", name)

	assert.Len(t, presenter.Shown(dialog.KindBuildName), 3)
	alerts := presenter.Shown(dialog.KindAlert)
	require.Len(t, alerts, 2)
	assert.Equal(t, "Missing Name", alerts[0].Title)
}

func TestPromptBuildName_CancelResolvesNothing(t *testing.T) {
	presenter := scripted.NewPresenter(scripted.Cancel())
	d := dialog.New(presenter)

	name, ok, err := d.PromptBuildName(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, name)
	assert.Empty(t, presenter.Shown(dialog.KindAlert))
}
