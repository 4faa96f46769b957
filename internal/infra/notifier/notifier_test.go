package notifier

import (
	"strings"
	"testing"

	"github.com/gabapcia/walletsentry/internal/action"
	"github.com/gabapcia/walletsentry/internal/message"
	"github.com/gabapcia/walletsentry/internal/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	_ = logger.Init(logger.WithLevel("error"))
}

func TestNewRegistry(t *testing.T) {
	renderer, err := message.NewRenderer()
	require.NoError(t, err)

	srv := miniredis.RunT(t)

	t.Run("builds the configured backends", func(t *testing.T) {
		// Arrange
		cfgs := []action.Config{
			{Type: action.KindTerminalPrint},
			{Type: action.KindCommand, Command: &action.CommandConfig{Cmd: "true", Args: []string{"{txid}"}}},
			{Type: action.KindNtfy, Ntfy: &action.NtfyConfig{Topic: "wallets"}},
			{Type: action.KindEmail, Email: &action.EmailConfig{Server: "smtp.example.com", From: "me@example.com"}},
			{Type: action.KindRedisStream, RedisStream: &action.RedisStreamConfig{Addr: srv.Addr(), Stream: "notifications"}},
		}

		// Act
		actions, err := NewRegistry(renderer).Build(t.Context(), cfgs)

		// Assert
		require.NoError(t, err)

		names := make([]string, len(actions))
		for i, a := range actions {
			names[i] = a.Name()
		}
		assert.Equal(t, []string{"terminal_print", "command", "ntfy", "email", "redis_stream"}, names)
	})

	t.Run("skips backends that cannot be built", func(t *testing.T) {
		cfgs := []action.Config{
			{Type: action.KindCommand, Command: &action.CommandConfig{Cmd: "true", Args: []string{"{unknown}"}}},
			{Type: action.KindRedisStream, RedisStream: &action.RedisStreamConfig{Addr: "127.0.0.1:1", Stream: "s"}},
			{Type: action.KindCommand},
			{Type: action.KindNostr, Nostr: &action.NostrConfig{Recipient: "satoshi", SecretKey: strings.Repeat("1", 64)}},
			{Type: action.KindTerminalPrint},
		}

		actions, err := NewRegistry(renderer).Build(t.Context(), cfgs)

		require.NoError(t, err)
		require.Len(t, actions, 1)
		assert.Equal(t, "terminal_print", actions[0].Name())
	})

	t.Run("nothing could be built", func(t *testing.T) {
		_, err := NewRegistry(renderer).Build(t.Context(), []action.Config{{Type: "carrier_pigeon"}})
		assert.ErrorIs(t, err, action.ErrNoActions)
	})
}
