package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/racerready/racerready-manager-go/pkg/dialog"
)

// stdinPresenter renders the modal primitives on the terminal. A line
// of "/cancel" (or EOF) cancels prompts and confirms.
type stdinPresenter struct {
	in  *bufio.Reader
	out io.Writer
}

func (p *stdinPresenter) Present(
	ctx context.Context,
	req dialog.Request,
) (dialog.Response, error) {
	switch req.Kind {
	case dialog.KindAlert:
		fmt.Fprintf(p.out, "\n%s %s\n%s\n[press enter]\n",
			req.Icon, req.Title, req.Message)
		_, err := p.readLine()
		if err != nil && err != io.EOF {
			return dialog.Response{}, err
		}
		return dialog.Response{Accepted: true}, nil
	case dialog.KindConfirm:
		fmt.Fprintf(p.out, "\n%s %s\n%s [y/N] ", req.Icon, req.Title, req.Message)
		line, err := p.readLine()
		if err != nil && err != io.EOF {
			return dialog.Response{}, err
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return dialog.Response{Accepted: answer == "y" || answer == "yes"}, nil
	case dialog.KindPrompt, dialog.KindBuildName:
		fmt.Fprintf(p.out, "\n%s %s\n%s (/cancel to abort) ",
			req.Icon, req.Title, req.Message)
		line, err := p.readLine()
		if err == io.EOF {
			return dialog.Response{Accepted: false}, nil
		}
		if err != nil {
			return dialog.Response{}, err
		}
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) == "/cancel" {
			return dialog.Response{Accepted: false}, nil
		}
		return dialog.Response{Accepted: true, Text: line}, nil
	default:
		return dialog.Response{}, fmt.Errorf("unknown dialog kind %d", req.Kind)
	}
}

func (p *stdinPresenter) readLine() (string, error) {
	return p.in.ReadString('\n')
}
