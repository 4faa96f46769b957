package chain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownNetwork is returned when a network name cannot be parsed.
var ErrUnknownNetwork = errors.New("unknown network")

// Network identifies a bitcoin network.
type Network int

const (
	Mainnet Network = iota
	Testnet
	Signet
	Regtest
)

var networkNames = map[Network]string{
	Mainnet: "mainnet",
	Testnet: "testnet",
	Signet:  "signet",
	Regtest: "regtest",
}

func (n Network) String() string {
	if name, ok := networkNames[n]; ok {
		return name
	}
	return fmt.Sprintf("network(%d)", int(n))
}

// ParseNetwork resolves a network from its name. "bitcoin" and "main" are
// accepted as aliases of mainnet, "test" of testnet.
func ParseNetwork(s string) (Network, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mainnet", "main", "bitcoin":
		return Mainnet, nil
	case "testnet", "test", "testnet3":
		return Testnet, nil
	case "signet":
		return Signet, nil
	case "regtest":
		return Regtest, nil
	default:
		return 0, fmt.Errorf("%w: '%s'", ErrUnknownNetwork, s)
	}
}

// UnmarshalText allows Network to be decoded directly from configuration files.
func (n *Network) UnmarshalText(text []byte) error {
	network, err := ParseNetwork(string(text))
	if err != nil {
		return err
	}

	*n = network
	return nil
}

func (n Network) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}
