// Package notifier binds every notification backend to its action kind.
package notifier

import (
	"context"

	"github.com/gabapcia/walletsentry/internal/action"
	"github.com/gabapcia/walletsentry/internal/infra/notifier/command"
	"github.com/gabapcia/walletsentry/internal/infra/notifier/desktop"
	"github.com/gabapcia/walletsentry/internal/infra/notifier/email"
	"github.com/gabapcia/walletsentry/internal/infra/notifier/nostr"
	"github.com/gabapcia/walletsentry/internal/infra/notifier/ntfy"
	"github.com/gabapcia/walletsentry/internal/infra/notifier/redisstream"
	"github.com/gabapcia/walletsentry/internal/infra/notifier/telegram"
	"github.com/gabapcia/walletsentry/internal/infra/notifier/terminal"
	"github.com/gabapcia/walletsentry/internal/infra/storage/redis"
	"github.com/gabapcia/walletsentry/internal/message"
)

// NewRegistry returns a registry able to build every supported backend,
// all rendering through renderer.
func NewRegistry(renderer *message.Renderer) *action.Registry {
	r := action.NewRegistry()

	r.Register(action.KindTerminalPrint, func(_ context.Context, _ action.Config) (action.Action, error) {
		return terminal.New(renderer), nil
	})

	r.Register(action.KindCommand, func(_ context.Context, cfg action.Config) (action.Action, error) {
		return command.New(*cfg.Command, renderer)
	})

	r.Register(action.KindDesktopNotification, func(_ context.Context, _ action.Config) (action.Action, error) {
		return desktop.New(renderer)
	})

	r.Register(action.KindNtfy, func(ctx context.Context, cfg action.Config) (action.Action, error) {
		return ntfy.New(ctx, *cfg.Ntfy, renderer)
	})

	r.Register(action.KindTelegram, func(_ context.Context, cfg action.Config) (action.Action, error) {
		return telegram.New(*cfg.Telegram, renderer)
	})

	r.Register(action.KindEmail, func(_ context.Context, cfg action.Config) (action.Action, error) {
		return email.New(*cfg.Email, renderer)
	})

	r.Register(action.KindRedisStream, func(ctx context.Context, cfg action.Config) (action.Action, error) {
		p := cfg.RedisStream
		client, err := redis.NewClient(ctx, p.Addr, p.Username, p.Password, p.DB)
		if err != nil {
			return nil, err
		}
		return redisstream.New(*p, client, renderer), nil
	})

	r.Register(action.KindNostr, func(ctx context.Context, cfg action.Config) (action.Action, error) {
		return nostr.New(ctx, *cfg.Nostr, renderer)
	})

	return r
}
