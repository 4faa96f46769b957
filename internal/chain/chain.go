// Package chain defines the contract between the notification core and the
// wallet/chain client collaborator: the transaction model, the supported
// networks and the operations the core consumes.
package chain

import (
	"context"
	"errors"
)

// ErrChain is the root of every error returned by chain client implementations.
// The core treats these failures as "no new data this cycle" and never aborts on them.
var ErrChain = errors.New("chain client error")

// Confirmation describes the block a transaction was mined in.
type Confirmation struct {
	Height    uint32 // block height
	Timestamp uint64 // block time, unix seconds
}

// Transaction is a wallet-relative view of a transaction, as returned by Sync.
// Values are never mutated once observed.
type Transaction struct {
	ID           string        // transaction id (hex)
	Received     uint64        // sats paid to the wallet's addresses
	Sent         uint64        // sats spent from the wallet's addresses
	Fee          *uint64       // nil when the client cannot determine it
	Confirmation *Confirmation // nil while unconfirmed
}

// IDs returns the ids of txs, in order.
func IDs(txs []Transaction) []string {
	ids := make([]string, len(txs))
	for i, tx := range txs {
		ids[i] = tx.ID
	}
	return ids
}

// Wallet is a single watched wallet as exposed by the chain client.
type Wallet interface {
	// Sync resynchronizes the wallet and returns its full, current transaction
	// list (not a delta). It is idempotent.
	Sync(ctx context.Context) ([]Transaction, error)

	// Balance returns the total wallet balance in sats, confirmed and unconfirmed.
	Balance(ctx context.Context) (uint64, error)

	// Network returns the network the wallet lives on.
	Network() Network
}

// HeightSource reports the current chain tip height.
type HeightSource interface {
	Height(ctx context.Context) (uint32, error)
}
