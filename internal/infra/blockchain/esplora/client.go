// Package esplora implements the chain client over the Esplora REST API
// (mempool.space, blockstream.info or a self-hosted electrs). It derives
// wallet addresses from extended public keys, scans them with a gap limit and
// turns their history into wallet-relative transactions.
package esplora

import (
	"context"
	"errors"
	"fmt"

	"github.com/gabapcia/walletsentry/internal/chain"
	"github.com/gabapcia/walletsentry/internal/pkg/transport/rest"

	"github.com/btcsuite/btcd/chaincfg"
)

// confirmedPageSize is how many confirmed transactions Esplora returns per page.
const confirmedPageSize = 25

// Default Esplora API roots per network.
const (
	DefaultMainnetURL = "https://mempool.space/api"
	DefaultTestnetURL = "https://mempool.space/testnet/api"
	DefaultSignetURL  = "https://mempool.space/signet/api"
	DefaultRegtestURL = "http://127.0.0.1:3002"
)

var ErrUnsupportedNetwork = errors.New("unsupported network")

// DefaultURL returns the default API root for network.
func DefaultURL(network chain.Network) (string, error) {
	switch network {
	case chain.Mainnet:
		return DefaultMainnetURL, nil
	case chain.Testnet:
		return DefaultTestnetURL, nil
	case chain.Signet:
		return DefaultSignetURL, nil
	case chain.Regtest:
		return DefaultRegtestURL, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedNetwork, network)
	}
}

// netParams maps a network to its btcd chain parameters.
func netParams(network chain.Network) (*chaincfg.Params, error) {
	switch network {
	case chain.Mainnet:
		return &chaincfg.MainNetParams, nil
	case chain.Testnet:
		return &chaincfg.TestNet3Params, nil
	case chain.Signet:
		return &chaincfg.SigNetParams, nil
	case chain.Regtest:
		return &chaincfg.RegressionNetParams, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedNetwork, network)
	}
}

// Client talks to one Esplora server for one network.
type Client struct {
	conn    rest.Client
	network chain.Network
	params  *chaincfg.Params
}

// Ensure client implements chain.HeightSource at compile time.
var _ chain.HeightSource = (*Client)(nil)

// NewClient returns an Esplora client for network using conn.
func NewClient(conn rest.Client, network chain.Network) (*Client, error) {
	params, err := netParams(network)
	if err != nil {
		return nil, err
	}

	return &Client{
		conn:    conn,
		network: network,
		params:  params,
	}, nil
}

// Endpoint returns the API root the client talks to.
func (c *Client) Endpoint() string {
	return c.conn.BaseURL()
}

// Height returns the current tip height.
func (c *Client) Height(ctx context.Context) (uint32, error) {
	var height uint32
	if err := c.conn.Get(ctx, "/blocks/tip/height", &height); err != nil {
		return 0, fmt.Errorf("%w: %w", chain.ErrChain, err)
	}
	return height, nil
}

func (c *Client) addressStats(ctx context.Context, address string) (addressStats, error) {
	var stats addressStats
	if err := c.conn.Get(ctx, "/address/"+address, &stats); err != nil {
		return addressStats{}, fmt.Errorf("%w: %w", chain.ErrChain, err)
	}
	return stats, nil
}

// addressTxs returns the full history of address: every mempool transaction
// and every confirmed one, following the confirmed pagination.
func (c *Client) addressTxs(ctx context.Context, address string) ([]transaction, error) {
	var txs []transaction
	if err := c.conn.Get(ctx, "/address/"+address+"/txs", &txs); err != nil {
		return nil, fmt.Errorf("%w: %w", chain.ErrChain, err)
	}

	confirmed := 0
	lastConfirmed := ""
	for _, tx := range txs {
		if tx.Status.Confirmed {
			confirmed++
			lastConfirmed = tx.TxID
		}
	}

	for confirmed == confirmedPageSize {
		var page []transaction
		if err := c.conn.Get(ctx, "/address/"+address+"/txs/chain/"+lastConfirmed, &page); err != nil {
			return nil, fmt.Errorf("%w: %w", chain.ErrChain, err)
		}

		txs = append(txs, page...)
		confirmed = len(page)
		if confirmed > 0 {
			lastConfirmed = page[confirmed-1].TxID
		}
	}

	return txs, nil
}
