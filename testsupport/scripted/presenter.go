package scripted

import (
	"context"
	"fmt"
	"sync"

	"github.com/racerready/racerready-manager-go/pkg/dialog"
)

// Presenter replays a fixed script of dialog responses and records
// every request it was shown.
type Presenter struct {
	mu        sync.Mutex
	responses []dialog.Response
	Requests  []dialog.Request
}

func NewPresenter(responses ...dialog.Response) *Presenter {
	return &Presenter{responses: responses}
}

// Accept is a confirm/alert acknowledgement.
func Accept() dialog.Response { return dialog.Response{Accepted: true} }

// Cancel is a cancelled/closed dialog.
func Cancel() dialog.Response { return dialog.Response{Accepted: false} }

// Text is an accepted prompt carrying the entered text.
func Text(text string) dialog.Response {
	return dialog.Response{Accepted: true, Text: text}
}

func (p *Presenter) Present(
	ctx context.Context,
	req dialog.Request,
) (dialog.Response, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Requests = append(p.Requests, req)
	if len(p.responses) == 0 {
		return dialog.Response{}, fmt.Errorf("script exhausted at %q", req.Title)
	}
	resp := p.responses[0]
	p.responses = p.responses[1:]
	return resp, nil
}

// Shown returns the recorded requests of the given kind.
func (p *Presenter) Shown(kind dialog.Kind) []dialog.Request {
	p.mu.Lock()
	defer p.mu.Unlock()
	ret := []dialog.Request{}
	for _, req := range p.Requests {
		if req.Kind == kind {
			ret = append(ret, req)
		}
	}
	return ret
}
