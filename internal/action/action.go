// Package action defines the notification backend contract, the tagged
// configuration union that selects a backend, the Registry that builds the
// active backend set and the Dispatcher that fans a notification out to it.
package action

import (
	"context"
	"errors"

	"github.com/gabapcia/walletsentry/internal/message"
)

var (
	// ErrNoActions is returned by Build when no backend could be constructed.
	ErrNoActions = errors.New("no actions available")

	// ErrUnknownKind is returned when a config names a backend kind without a factory.
	ErrUnknownKind = errors.New("unknown action kind")

	// ErrInvalidConfig is reported by Config.Validate for parameters that
	// could not be decoded, such as a misspelled key.
	ErrInvalidConfig = errors.New("invalid action config")

	// ErrActionPanicked wraps a panic recovered while executing an action.
	ErrActionPanicked = errors.New("action panicked")
)

// Action is a notification backend.
//
// Execute receives a nil Context when invoked as a dry run. Implementations
// must be safe for concurrent use; any internal state is theirs to guard.
type Action interface {
	Name() string
	Execute(ctx context.Context, mctx *message.Context) error
}

// Kind selects the backend a Config builds.
type Kind string

const (
	KindTerminalPrint       Kind = "terminal_print"
	KindCommand             Kind = "command"
	KindDesktopNotification Kind = "desktop_notification"
	KindNtfy                Kind = "ntfy"
	KindTelegram            Kind = "telegram"
	KindEmail               Kind = "email"
	KindRedisStream         Kind = "redis_stream"
	KindNostr               Kind = "nostr"
)
