package message

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gabapcia/walletsentry/internal/chain"
)

// ErrUnsupportedNetwork is returned when no block explorer is known for a network.
var ErrUnsupportedNetwork = errors.New("unsupported network")

// TxIDPlaceholder is replaced by the transaction id in explorer URL templates.
const TxIDPlaceholder = "{txid}"

// Default block explorer URL templates.
const (
	DefaultMainnetExplorer = "https://mempool.space/tx/" + TxIDPlaceholder
	DefaultTestnetExplorer = "https://mempool.space/testnet/tx/" + TxIDPlaceholder
	DefaultSignetExplorer  = "https://mempool.space/signet/tx/" + TxIDPlaceholder
)

// Explorers maps a network to a block explorer URL template containing {txid}.
type Explorers map[chain.Network]string

// DefaultExplorers returns the mempool.space explorers for mainnet, testnet and signet.
func DefaultExplorers() Explorers {
	return Explorers{
		chain.Mainnet: DefaultMainnetExplorer,
		chain.Testnet: DefaultTestnetExplorer,
		chain.Signet:  DefaultSignetExplorer,
	}
}

// Template returns the URL template for network.
func (e Explorers) Template(network chain.Network) (string, error) {
	tmpl, ok := e[network]
	if !ok || tmpl == "" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedNetwork, network)
	}
	return tmpl, nil
}

// TxURL renders the explorer URL of txid on network.
func (e Explorers) TxURL(network chain.Network, txid string) (string, error) {
	tmpl, err := e.Template(network)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(tmpl, TxIDPlaceholder, txid), nil
}

// Validate checks that every configured template references {txid}.
func (e Explorers) Validate() error {
	for network, tmpl := range e {
		if !strings.Contains(tmpl, TxIDPlaceholder) {
			return fmt.Errorf("%w: explorer for %s does not reference %s", ErrInvalidTemplate, network, TxIDPlaceholder)
		}
	}
	return nil
}
