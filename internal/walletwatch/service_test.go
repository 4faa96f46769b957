package walletwatch

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gabapcia/walletsentry/internal/chain"
	"github.com/gabapcia/walletsentry/internal/message"
	"github.com/gabapcia/walletsentry/internal/pkg/resilience/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// growingWallet returns initial on the first sync and initial plus extra on
// every later one.
func growingWallet(t *testing.T, initial, extra []chain.Transaction) *WalletMock {
	var syncs atomic.Int32

	client := NewWalletMock(t)
	client.EXPECT().Sync(mock.Anything).RunAndReturn(func(context.Context) ([]chain.Transaction, error) {
		if syncs.Add(1) == 1 {
			return initial, nil
		}
		return append(append([]chain.Transaction{}, initial...), extra...), nil
	})
	client.EXPECT().Balance(mock.Anything).Return(uint64(42000), nil).Maybe()
	client.EXPECT().Network().Return(chain.Testnet).Maybe()
	return client
}

func recordingNotifier(t *testing.T) (*NotifierMock, <-chan *message.Context) {
	received := make(chan *message.Context, 16)

	notifier := NewNotifierMock(t)
	notifier.EXPECT().Dispatch(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, mctx *message.Context) error {
			received <- mctx
			return nil
		}).
		Maybe()

	return notifier, received
}

func fixedHeight(t *testing.T, height uint32) *HeightReaderMock {
	heights := NewHeightReaderMock(t)
	heights.EXPECT().CurrentHeight().Return(height, true).Maybe()
	return heights
}

func TestService_Start(t *testing.T) {
	t.Run("initial sync is silent and new transactions are notified once", func(t *testing.T) {
		// Arrange
		initial := txs("old1", "old2")
		extra := []chain.Transaction{{ID: "new1", Received: 500, Sent: 300, Confirmation: &chain.Confirmation{Height: 99}}}

		notifier, received := recordingNotifier(t)
		svc := New(
			[]Wallet{{Name: "cold", Client: growingWallet(t, initial, extra)}},
			fixedHeight(t, 100),
			notifier,
			WithInterval(5*time.Millisecond),
		)
		defer svc.Close()

		// Act
		require.NoError(t, svc.Start(t.Context()))

		// Assert
		var mctx *message.Context
		select {
		case mctx = <-received:
		case <-time.After(time.Second):
			t.Fatal("no notification received")
		}

		assert.Equal(t, "new1", mctx.Transaction.ID)
		assert.Equal(t, "cold", mctx.Wallet)
		assert.Equal(t, uint64(42000), mctx.TotalBalance)
		assert.Equal(t, uint32(100), mctx.CurrentHeight)
		assert.Equal(t, chain.Testnet, mctx.Network)
		assert.Equal(t, uint32(1), mctx.Confirmations())

		select {
		case again := <-received:
			t.Fatalf("transaction %s notified twice", again.Transaction.ID)
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("without initial sync every transaction is notified", func(t *testing.T) {
		notifier, received := recordingNotifier(t)
		svc := New(
			[]Wallet{{Name: "cold", Client: growingWallet(t, txs("a", "b"), nil)}},
			fixedHeight(t, 100),
			notifier,
			WithInterval(5*time.Millisecond),
			WithInitialSync(false),
		)
		defer svc.Close()

		require.NoError(t, svc.Start(t.Context()))

		var ids []string
		for range 2 {
			select {
			case mctx := <-received:
				ids = append(ids, mctx.Transaction.ID)
			case <-time.After(time.Second):
				t.Fatal("missing notification")
			}
		}
		assert.ElementsMatch(t, []string{"a", "b"}, ids)
	})

	t.Run("stored seen-set suppresses notifications", func(t *testing.T) {
		storage := NewSeenStorageMock(t)
		storage.EXPECT().LoadSeen(mock.Anything, "cold").Return([]string{"a"}, nil).Once()
		storage.EXPECT().MarkSeen(mock.Anything, "cold", []string{"b"}).Return(nil).Once()

		notifier, received := recordingNotifier(t)
		svc := New(
			[]Wallet{{Name: "cold", Client: growingWallet(t, txs("a", "b"), nil)}},
			fixedHeight(t, 100),
			notifier,
			WithInterval(5*time.Millisecond),
			WithInitialSync(false),
			WithSeenStorage(storage),
		)
		defer svc.Close()

		require.NoError(t, svc.Start(t.Context()))

		select {
		case mctx := <-received:
			assert.Equal(t, "b", mctx.Transaction.ID)
		case <-time.After(time.Second):
			t.Fatal("no notification received")
		}
	})

	t.Run("unreadable balance and unknown height", func(t *testing.T) {
		client := NewWalletMock(t)
		client.EXPECT().Sync(mock.Anything).Return(txs("a"), nil)
		client.EXPECT().Balance(mock.Anything).Return(uint64(0), errors.New("timeout")).Maybe()
		client.EXPECT().Network().Return(chain.Mainnet).Maybe()

		heights := NewHeightReaderMock(t)
		heights.EXPECT().CurrentHeight().Return(uint32(0), false).Maybe()

		notifier, received := recordingNotifier(t)
		svc := New([]Wallet{{Name: "cold", Client: client}}, heights, notifier,
			WithInterval(5*time.Millisecond),
			WithInitialSync(false),
		)
		defer svc.Close()

		require.NoError(t, svc.Start(t.Context()))

		select {
		case mctx := <-received:
			assert.Equal(t, uint64(0), mctx.TotalBalance)
			assert.Equal(t, uint32(0), mctx.CurrentHeight)
		case <-time.After(time.Second):
			t.Fatal("no notification received")
		}
	})

	t.Run("failed initial sync does not block the others", func(t *testing.T) {
		broken := NewWalletMock(t)
		broken.EXPECT().Sync(mock.Anything).Return(nil, errors.New("bad xpub")).Maybe()

		notifier, _ := recordingNotifier(t)
		svc := New(
			[]Wallet{
				{Name: "broken", Client: broken},
				{Name: "cold", Client: growingWallet(t, txs("a"), nil)},
			},
			fixedHeight(t, 100),
			notifier,
			WithInterval(time.Hour),
			WithRetry(retry.New(retry.WithAttempts(1))),
		)
		defer svc.Close()

		require.NoError(t, svc.Start(t.Context()))

		cold := svc.wallets[1]
		cold.mu.Lock()
		defer cold.mu.Unlock()
		assert.True(t, cold.seen.Has("a"))
	})

	t.Run("close interrupts a blocked initial sync", func(t *testing.T) {
		syncing := make(chan struct{})
		client := NewWalletMock(t)
		client.EXPECT().Sync(mock.Anything).RunAndReturn(func(ctx context.Context) ([]chain.Transaction, error) {
			close(syncing)
			<-ctx.Done()
			return nil, ctx.Err()
		}).Once()

		notifier, _ := recordingNotifier(t)
		svc := New([]Wallet{{Name: "cold", Client: client}}, fixedHeight(t, 1), notifier,
			WithRetry(retry.New(retry.WithAttempts(5), retry.WithDelay(time.Hour))),
		)

		done := make(chan error, 1)
		go func() { done <- svc.Start(t.Context()) }()
		<-syncing

		svc.Close()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(5 * time.Second):
			t.Fatal("Start did not return after Close")
		}
	})

	t.Run("already started", func(t *testing.T) {
		notifier, _ := recordingNotifier(t)
		svc := New(nil, fixedHeight(t, 1), notifier)
		defer svc.Close()

		require.NoError(t, svc.Start(t.Context()))
		assert.Equal(t, ErrServiceAlreadyStarted, svc.Start(t.Context()))
	})
}
