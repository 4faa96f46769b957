// Package desktop shows notifications on the desktop through the
// freedesktop notify-send utility.
package desktop

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/gabapcia/walletsentry/internal/action"
	"github.com/gabapcia/walletsentry/internal/message"
)

const (
	DefaultBinary  = "notify-send"
	DefaultAppName = "walletsentry"
)

type notifier struct {
	binary   string
	appName  string
	renderer *message.Renderer
}

var _ action.Action = (*notifier)(nil)

type Option func(*notifier)

// WithBinary sets the notify-send compatible program. Default: DefaultBinary.
func WithBinary(path string) Option {
	return func(n *notifier) {
		n.binary = path
	}
}

// WithAppName sets the application name shown by the notification daemon.
// Default: DefaultAppName.
func WithAppName(name string) Option {
	return func(n *notifier) {
		n.appName = name
	}
}

// New fails when the notification program cannot be found.
func New(renderer *message.Renderer, opts ...Option) (*notifier, error) {
	n := &notifier{
		binary:   DefaultBinary,
		appName:  DefaultAppName,
		renderer: renderer,
	}
	for _, opt := range opts {
		opt(n)
	}

	path, err := exec.LookPath(n.binary)
	if err != nil {
		return nil, err
	}
	n.binary = path

	return n, nil
}

func (n *notifier) Name() string {
	return string(action.KindDesktopNotification)
}

func (n *notifier) Execute(ctx context.Context, mctx *message.Context) error {
	subject, err := n.renderer.Subject(mctx)
	if err != nil {
		return err
	}

	body, err := n.renderer.Body(mctx)
	if err != nil {
		return err
	}

	out, err := exec.CommandContext(ctx, n.binary, "--app-name="+n.appName, "--", subject, body).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", n.binary, err, strings.TrimSpace(string(out)))
	}
	return nil
}
