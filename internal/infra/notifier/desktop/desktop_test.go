package desktop

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gabapcia/walletsentry/internal/chain"
	"github.com/gabapcia/walletsentry/internal/message"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNotifySend writes a script recording its arguments, one per line, to out.
func fakeNotifySend(t *testing.T, exitCode int) (binary, out string) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh is not available")
	}

	dir := t.TempDir()
	binary = filepath.Join(dir, "notify-send")
	out = filepath.Join(dir, "args")

	script := "#!/bin/sh\nprintf '%s\\n' \"$@\" > " + out + "\nexit " + strconv.Itoa(exitCode) + "\n"
	require.NoError(t, os.WriteFile(binary, []byte(script), 0o755))

	return binary, out
}

func TestNotifier_Execute(t *testing.T) {
	renderer, err := message.NewRenderer(message.WithSubject("[{wallet}]"), message.WithBody("{txid}"))
	require.NoError(t, err)

	t.Run("sends subject and body", func(t *testing.T) {
		binary, out := fakeNotifySend(t, 0)
		n, err := New(renderer, WithBinary(binary))
		require.NoError(t, err)

		err = n.Execute(t.Context(), &message.Context{Wallet: "cold", Transaction: chain.Transaction{ID: "tx1"}})

		require.NoError(t, err)
		content, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "--app-name=walletsentry\n--\n[cold]\ntx1\n", string(content))
	})

	t.Run("program failure", func(t *testing.T) {
		binary, _ := fakeNotifySend(t, 1)
		n, err := New(renderer, WithBinary(binary), WithAppName("test"))
		require.NoError(t, err)

		assert.Error(t, n.Execute(t.Context(), nil))
	})

	t.Run("missing program", func(t *testing.T) {
		_, err := New(renderer, WithBinary(filepath.Join(t.TempDir(), "notify-send")))
		assert.Error(t, err)
	})

	t.Run("name", func(t *testing.T) {
		binary, _ := fakeNotifySend(t, 0)
		n, err := New(renderer, WithBinary(binary))
		require.NoError(t, err)
		assert.Equal(t, "desktop_notification", n.Name())
	})
}
