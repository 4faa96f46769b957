// Package terminal prints notifications to the process standard output.
package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/gabapcia/walletsentry/internal/action"
	"github.com/gabapcia/walletsentry/internal/message"
)

type printer struct {
	renderer *message.Renderer

	mu  sync.Mutex
	out io.Writer
}

var _ action.Action = (*printer)(nil)

type Option func(*printer)

// WithWriter redirects the output. Default: os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(p *printer) {
		p.out = w
	}
}

func New(renderer *message.Renderer, opts ...Option) *printer {
	p := &printer{
		renderer: renderer,
		out:      os.Stdout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *printer) Name() string {
	return string(action.KindTerminalPrint)
}

// Execute writes the subject and body followed by a blank line. Concurrent
// notifications never interleave.
func (p *printer) Execute(_ context.Context, mctx *message.Context) error {
	subject, err := p.renderer.Subject(mctx)
	if err != nil {
		return err
	}

	body, err := p.renderer.Body(mctx)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	_, err = fmt.Fprintf(p.out, "%s\n%s\n\n", subject, body)
	return err
}
