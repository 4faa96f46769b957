// Package walletwatch implements the per-wallet monitor: it repeatedly
// resynchronizes each wallet, detects transactions it has not seen before and
// hands each of them to a Notifier.
//
// Every wallet owns a seen-set of transaction ids. The set only grows for the
// lifetime of the process; it is never evicted, so very busy wallets grow it
// without bound.
package walletwatch

import (
	"context"

	"github.com/gabapcia/walletsentry/internal/chain"
	"github.com/gabapcia/walletsentry/internal/message"
)

// Notifier delivers one notification per new transaction.
type Notifier interface {
	// Dispatch delivers mctx to every configured backend and returns once all
	// of them finished. Failures are the Notifier's to report.
	Dispatch(ctx context.Context, mctx *message.Context) error
}

// HeightReader exposes the last known chain tip height.
type HeightReader interface {
	// CurrentHeight returns the tip height and whether it is known yet.
	CurrentHeight() (height uint32, ok bool)
}

// SeenStorage persists the seen-set of each wallet so restarts do not
// re-notify old transactions.
type SeenStorage interface {
	// LoadSeen returns every transaction id previously marked as seen for wallet.
	//
	// Parameters:
	//   - ctx: context for cancellation and timeout control.
	//   - wallet: the configured wallet name.
	//
	// Returns:
	//   - The stored ids, empty when nothing was stored.
	//   - An error if the storage could not be read.
	LoadSeen(ctx context.Context, wallet string) ([]string, error)

	// MarkSeen adds txIDs to the stored seen-set of wallet.
	//
	// Parameters:
	//   - ctx: context for cancellation and timeout control.
	//   - wallet: the configured wallet name.
	//   - txIDs: the newly seen transaction ids.
	//
	// Returns:
	//   - An error if the ids could not be written.
	MarkSeen(ctx context.Context, wallet string, txIDs []string) error
}

// nopSeenStorage keeps seen-sets in memory only.
type nopSeenStorage struct{}

func (nopSeenStorage) LoadSeen(context.Context, string) ([]string, error) { return nil, nil }

func (nopSeenStorage) MarkSeen(context.Context, string, []string) error { return nil }

// Wallet is a watched wallet: its configured name and its chain client.
type Wallet struct {
	Name   string
	Client chain.Wallet
}
