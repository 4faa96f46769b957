package walletwatch

import (
	"context"
	"sync"

	"github.com/gabapcia/walletsentry/internal/chain"
	"github.com/gabapcia/walletsentry/internal/pkg/logger"
	"github.com/gabapcia/walletsentry/internal/pkg/resilience/retry"
	"github.com/gabapcia/walletsentry/internal/pkg/types"
)

// walletState is the synchronization state of one wallet. It is owned by a
// single monitor goroutine; mu serializes whole detection cycles so two
// overlapping cycles can never detect the same transaction twice.
type walletState struct {
	name   string
	client chain.Wallet

	mu   sync.Mutex
	seen types.Set[string]
}

func newWalletState(w Wallet) *walletState {
	return &walletState{
		name:   w.Name,
		client: w.Client,
		seen:   types.NewSet[string](),
	}
}

// detect resynchronizes the wallet and returns, in the order the client
// reported them, the transactions not present in the seen-set. They are added
// to the seen-set, and written through to storage, before detect returns.
//
// A failed sync is logged and reported as no new transactions.
//
// Parameters:
//   - ctx: context for cancellation and timeout control.
//   - storage: where newly seen ids are persisted.
//
// Returns:
//   - The transactions seen for the first time in this cycle.
func (w *walletState) detect(ctx context.Context, storage SeenStorage) []chain.Transaction {
	w.mu.Lock()
	defer w.mu.Unlock()

	logger.Debug(ctx, "syncing wallet", "wallet.name", w.name)

	txs, err := w.client.Sync(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.Warn(ctx, "cannot sync wallet", "wallet.name", w.name, "error", err)
		}
		return nil
	}

	return w.mark(ctx, storage, txs)
}

// mark adds the unseen transactions of txs to the seen-set and returns them.
// It must be called with mu held.
func (w *walletState) mark(ctx context.Context, storage SeenStorage, txs []chain.Transaction) []chain.Transaction {
	newIDs := w.seen.Missing(chain.IDs(txs))
	if len(newIDs) == 0 {
		return nil
	}

	w.seen.Add(newIDs...)
	if err := storage.MarkSeen(ctx, w.name, newIDs); err != nil {
		logger.Warn(ctx, "could not persist seen transactions",
			"wallet.name", w.name,
			"tx.count", len(newIDs),
			"error", err,
		)
	}

	wanted := types.NewSet(newIDs...)
	newTxs := make([]chain.Transaction, 0, len(newIDs))
	for _, tx := range txs {
		if wanted.Has(tx.ID) {
			newTxs = append(newTxs, tx)
			delete(wanted, tx.ID)
		}
	}

	return newTxs
}

// initialSync populates the seen-set from the current transaction list
// without reporting anything, retrying failed syncs through r.
func (w *walletState) initialSync(ctx context.Context, storage SeenStorage, r retry.Retry) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var txs []chain.Transaction
	err := r.Execute(ctx, func() error {
		var err error
		txs, err = w.client.Sync(ctx)
		return err
	})
	if err != nil {
		return 0, err
	}

	return len(w.mark(ctx, storage, txs)), nil
}

// seed adds previously stored ids to the seen-set.
func (w *walletState) seed(ids []string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.seen.Add(ids...)
}
