// Package command runs an external program for every notification. Each
// argument is a message template rendered against the notification.
package command

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/gabapcia/walletsentry/internal/action"
	"github.com/gabapcia/walletsentry/internal/message"
	"github.com/gabapcia/walletsentry/internal/pkg/logger"
)

// maxOutput caps how much of the program output is kept in an error.
const maxOutput = 1024

type runner struct {
	cfg      action.CommandConfig
	renderer *message.Renderer
}

var _ action.Action = (*runner)(nil)

// New validates every argument template and returns the action.
func New(cfg action.CommandConfig, renderer *message.Renderer) (*runner, error) {
	for i, arg := range cfg.Args {
		if err := message.ValidateTemplate(arg); err != nil {
			return nil, fmt.Errorf("args[%d]: %w", i, err)
		}
	}

	return &runner{
		cfg:      cfg,
		renderer: renderer,
	}, nil
}

func (r *runner) Name() string {
	return string(action.KindCommand)
}

// Execute runs the program and waits for it. A non-zero exit status is an error.
// Arguments are passed verbatim on a dry run.
func (r *runner) Execute(ctx context.Context, mctx *message.Context) error {
	args := make([]string, len(r.cfg.Args))
	for i, arg := range r.cfg.Args {
		if mctx == nil {
			args[i] = arg
			continue
		}

		rendered, err := r.renderer.Render(arg, mctx)
		if err != nil {
			return fmt.Errorf("args[%d]: %w", i, err)
		}
		args[i] = rendered
	}

	cmd := exec.CommandContext(ctx, r.cfg.Cmd, args...)
	cmd.Dir = r.cfg.WorkingDir
	cmd.Env = r.env()

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", r.cfg.Cmd, err, truncate(strings.TrimSpace(string(out))))
	}

	logger.Debug(ctx, "command finished", "command.name", r.cfg.Cmd, "command.output", truncate(string(out)))
	return nil
}

// env returns the child environment. A nil slice inherits the parent's.
func (r *runner) env() []string {
	if !r.cfg.ClearParentEnv && len(r.cfg.Envs) == 0 {
		return nil
	}

	env := []string{}
	if !r.cfg.ClearParentEnv {
		env = os.Environ()
	}
	for k, v := range r.cfg.Envs {
		env = append(env, k+"="+v)
	}
	return env
}

func truncate(s string) string {
	if len(s) <= maxOutput {
		return s
	}
	return s[:maxOutput] + "..."
}
