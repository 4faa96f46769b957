package esplora

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gabapcia/walletsentry/internal/chain"
)

// DefaultGapLimit is how many consecutive unused addresses end a chain scan.
const DefaultGapLimit = 20

var ErrEmptyWallet = errors.New("wallet has neither a descriptor, an extended public key nor addresses")

// WalletSpec describes which addresses belong to a wallet. One of
// Descriptor, XPub or Addresses must be set, checked in that order.
type WalletSpec struct {
	Descriptor       string      // ranged descriptor, e.g. wpkh(xpub.../<0;1>/*)
	ChangeDescriptor string      // change chain, only for non multipath descriptors
	XPub             string      // account level xpub/tpub (ypub/zpub/upub/vpub accepted)
	Kind             AddressKind // script type derived from XPub, defaults to segwit
	Addresses        []string    // fixed address list, used without XPub
	GapLimit         int         // defaults to DefaultGapLimit
}

// wallet is a chain.Wallet backed by an Esplora server.
type wallet struct {
	client    *Client
	deriver   *deriver
	addresses []string
	gapLimit  int

	mu    sync.Mutex
	stats []addressStats // last scan, nil until the first one
}

// Ensure wallet implements chain.Wallet at compile time.
var _ chain.Wallet = (*wallet)(nil)

// NewWallet returns a wallet watched through c.
func NewWallet(c *Client, spec WalletSpec) (*wallet, error) {
	w := &wallet{
		client:   c,
		gapLimit: spec.GapLimit,
	}
	if w.gapLimit <= 0 {
		w.gapLimit = DefaultGapLimit
	}

	switch {
	case spec.Descriptor != "":
		d, err := newDescriptorDeriver(spec.Descriptor, spec.ChangeDescriptor, c.params)
		if err != nil {
			return nil, err
		}
		w.deriver = d
	case spec.XPub != "":
		d, err := newDeriver(spec.XPub, spec.Kind, c.params)
		if err != nil {
			return nil, err
		}
		w.deriver = d
	case len(spec.Addresses) > 0:
		for _, address := range spec.Addresses {
			if err := validateAddress(address, c.params); err != nil {
				return nil, err
			}
		}
		w.addresses = slices.Compact(slices.Sorted(slices.Values(spec.Addresses)))
	default:
		return nil, ErrEmptyWallet
	}

	return w, nil
}

func (w *wallet) Network() chain.Network {
	return w.client.network
}

// Sync scans the wallet addresses and returns every transaction touching
// them, confirmed ones by ascending height and unconfirmed ones last.
func (w *wallet) Sync(ctx context.Context) ([]chain.Transaction, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	stats, err := w.scan(ctx)
	if err != nil {
		return nil, err
	}

	owned := make(map[string]struct{}, len(stats))
	for _, s := range stats {
		owned[s.Address] = struct{}{}
	}

	var (
		txs  []chain.Transaction
		seen = make(map[string]struct{})
	)
	for _, s := range stats {
		if !s.used() {
			continue
		}

		history, err := w.client.addressTxs(ctx, s.Address)
		if err != nil {
			return nil, err
		}

		for _, tx := range history {
			if _, ok := seen[tx.TxID]; ok {
				continue
			}
			seen[tx.TxID] = struct{}{}
			txs = append(txs, toTransaction(tx, owned))
		}
	}

	slices.SortStableFunc(txs, compareByConfirmation)

	w.stats = stats
	return txs, nil
}

// Balance returns the balance observed by the last Sync, scanning the
// addresses when no Sync happened yet.
func (w *wallet) Balance(ctx context.Context) (uint64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stats == nil {
		stats, err := w.scan(ctx)
		if err != nil {
			return 0, err
		}
		w.stats = stats
	}

	var balance int64
	for _, s := range w.stats {
		balance += s.balance()
	}
	return uint64(max(balance, 0)), nil
}

// scan fetches the stats of every wallet address. Derived chains are
// walked until gapLimit consecutive unused addresses are found.
func (w *wallet) scan(ctx context.Context) ([]addressStats, error) {
	if w.deriver == nil {
		stats := make([]addressStats, 0, len(w.addresses))
		for _, address := range w.addresses {
			s, err := w.client.addressStats(ctx, address)
			if err != nil {
				return nil, err
			}
			s.Address = address
			stats = append(stats, s)
		}
		return stats, nil
	}

	var stats []addressStats
	for chainIndex := range w.deriver.chains {
		unused := 0
		for index := uint32(0); unused < w.gapLimit; index++ {
			address, err := w.deriver.address(chainIndex, index)
			if err != nil {
				return nil, fmt.Errorf("derive %d/%d: %w", chainIndex, index, err)
			}

			s, err := w.client.addressStats(ctx, address)
			if err != nil {
				return nil, err
			}
			s.Address = address
			stats = append(stats, s)

			if s.used() {
				unused = 0
			} else {
				unused++
			}
		}
	}

	return stats, nil
}

// toTransaction builds the wallet relative view of tx.
func toTransaction(tx transaction, owned map[string]struct{}) chain.Transaction {
	result := chain.Transaction{ID: tx.TxID}

	for _, out := range tx.Vout {
		if _, ok := owned[out.ScriptPubKeyAddress]; ok {
			result.Received += out.Value
		}
	}

	for _, in := range tx.Vin {
		if in.IsCoinbase || in.Prevout == nil {
			continue
		}
		if _, ok := owned[in.Prevout.ScriptPubKeyAddress]; ok {
			result.Sent += in.Prevout.Value
		}
	}

	// Fee is reported only when the wallet funded inputs.
	if result.Sent > 0 {
		fee := tx.Fee
		result.Fee = &fee
	}

	if tx.Status.Confirmed {
		result.Confirmation = &chain.Confirmation{
			Height:    tx.Status.BlockHeight,
			Timestamp: tx.Status.BlockTime,
		}
	}

	return result
}

func compareByConfirmation(a, b chain.Transaction) int {
	switch {
	case a.Confirmation == nil && b.Confirmation == nil:
		return 0
	case a.Confirmation == nil:
		return 1
	case b.Confirmation == nil:
		return -1
	default:
		return cmp.Compare(a.Confirmation.Height, b.Confirmation.Height)
	}
}
