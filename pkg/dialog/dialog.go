package dialog

import (
	"context"
	"strings"
	"sync"
)

// Kind identifies the modal primitive being shown.
type Kind int

const (
	KindAlert Kind = iota
	KindConfirm
	KindPrompt
	KindBuildName
	kindCount
)

// Request describes one modal to present.
type Request struct {
	Kind    Kind
	Message string
	Title   string
	Icon    string
}

// Response is the single resolution of a modal. Accepted is false when
// the user cancelled, closed or escaped the dialog.
type Response struct {
	Accepted bool
	Text     string
}

// Presenter renders one modal and blocks until it resolves. The console
// front end and the scripted test presenter implement this.
type Presenter interface {
	Present(ctx context.Context, req Request) (Response, error)
}

// Dialog exposes the modal primitives. A per-kind lock keeps at most
// one modal of each kind open; dialogs never stack.
type Dialog struct {
	presenter Presenter
	locks     [kindCount]sync.Mutex
}

func New(presenter Presenter) *Dialog {
	return &Dialog{presenter: presenter}
}

// Alert resolves with no value once acknowledged.
func (d *Dialog) Alert(ctx context.Context, message, title, icon string) error {
	d.locks[KindAlert].Lock()
	defer d.locks[KindAlert].Unlock()
	_, err := d.presenter.Present(ctx, Request{
		Kind: KindAlert, Message: message, Title: title, Icon: icon,
	})
	return err
}

// Confirm resolves true on accept, false on cancel or close.
func (d *Dialog) Confirm(ctx context.Context, message, title, icon string) (
	bool, error,
) {
	d.locks[KindConfirm].Lock()
	defer d.locks[KindConfirm].Unlock()
	resp, err := d.presenter.Present(ctx, Request{
		Kind: KindConfirm, Message: message, Title: title, Icon: icon,
	})
	if err != nil {
		return false, err
	}
	return resp.Accepted, nil
}

// PromptText resolves with the entered text, or ok=false if cancelled.
func (d *Dialog) PromptText(ctx context.Context, message, title, icon string) (
	string, bool, error,
) {
	d.locks[KindPrompt].Lock()
	defer d.locks[KindPrompt].Unlock()
	resp, err := d.presenter.Present(ctx, Request{
		Kind: KindPrompt, Message: message, Title: title, Icon: icon,
	})
	if err != nil {
		return "", false, err
	}
	if !resp.Accepted {
		return "", false, nil
	}
	return resp.Text, true, nil
}

// PromptBuildName resolves with a trimmed non-empty name or ok=false on
// cancel. Accepting an empty string re-prompts in place and does not
// resolve.
func (d *Dialog) PromptBuildName(ctx context.Context) (string, bool, error) {
	d.locks[KindBuildName].Lock()
	defer d.locks[KindBuildName].Unlock()
	for {
		resp, err := d.presenter.Present(ctx, Request{
			Kind:    KindBuildName,
			Message: "Enter a name for your build:",
			Title:   "Save Build",
			Icon:    "💾",
		})
		if err != nil {
			return "", false, err
		}
		if !resp.Accepted {
			return "", false, nil
		}
		name := strings.TrimSpace(resp.Text)
		if name == "" {
			if _, err := d.presenter.Present(ctx, Request{
				Kind:    KindAlert,
				Message: "Please enter a name for your build.",
				Title:   "Missing Name",
				Icon:    "⚠️",
			}); err != nil {
				return "", false, err
			}
			continue
		}
		return name, true, nil
	}
}
