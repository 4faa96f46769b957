package esplora

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

var (
	ErrInvalidXPub        = errors.New("invalid extended public key")
	ErrUnknownAddressKind = errors.New("unknown address kind")
)

// AddressKind is the script type addresses are derived as.
type AddressKind string

const (
	AddressKindLegacy       AddressKind = "legacy"        // P2PKH
	AddressKindNestedSegwit AddressKind = "nested_segwit" // P2SH-P2WPKH
	AddressKindSegwit       AddressKind = "segwit"        // P2WPKH
	AddressKindTaproot      AddressKind = "taproot"       // P2TR, key path only
)

// ParseAddressKind parses a kind name. An empty name means segwit.
func ParseAddressKind(s string) (AddressKind, error) {
	switch k := AddressKind(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return AddressKindSegwit, nil
	case AddressKindLegacy, AddressKindNestedSegwit, AddressKindSegwit, AddressKindTaproot:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAddressKind, s)
	}
}

// UnmarshalText allows AddressKind to be decoded directly from configuration files.
func (k *AddressKind) UnmarshalText(text []byte) error {
	kind, err := ParseAddressKind(string(text))
	if err != nil {
		return err
	}

	*k = kind
	return nil
}

// slip132 lists the SLIP-0132 public key versions accepted in place of
// xpub/tpub, with the kind they imply.
var slip132 = []struct {
	version [4]byte
	kind    AddressKind
	mainnet bool
}{
	{[4]byte{0x04, 0x9d, 0x7c, 0xb2}, AddressKindNestedSegwit, true},  // ypub
	{[4]byte{0x04, 0xb2, 0x47, 0x46}, AddressKindSegwit, true},        // zpub
	{[4]byte{0x04, 0x4a, 0x52, 0x62}, AddressKindNestedSegwit, false}, // upub
	{[4]byte{0x04, 0x5f, 0x1c, 0xf6}, AddressKindSegwit, false},       // vpub
}

// deriver derives addresses of one kind from account level chains: chain 0
// holds receive addresses, chain 1 change addresses when present.
type deriver struct {
	chains []*hdkeychain.ExtendedKey
	kind   AddressKind
	params *chaincfg.Params
}

// newDeriver parses xpub for params. ypub/zpub style keys are accepted and,
// when kind is empty, select the kind they imply.
func newDeriver(xpub string, kind AddressKind, params *chaincfg.Params) (*deriver, error) {
	key, implied, err := parseXPub(xpub, params)
	if err != nil {
		return nil, err
	}

	if kind == "" {
		kind = implied
	}

	if kind, err = ParseAddressKind(string(kind)); err != nil {
		return nil, err
	}

	d := &deriver{kind: kind, params: params, chains: make([]*hdkeychain.ExtendedKey, 2)}
	for i := range d.chains {
		if d.chains[i], err = key.Derive(uint32(i)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidXPub, err)
		}
	}

	return d, nil
}

// parseXPub decodes a public extended key for params. SLIP-0132 versions are
// rewritten to the network default and reported through implied.
func parseXPub(xpub string, params *chaincfg.Params) (key *hdkeychain.ExtendedKey, implied AddressKind, err error) {
	key, err = hdkeychain.NewKeyFromString(strings.TrimSpace(xpub))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidXPub, err)
	}

	if key.IsPrivate() {
		return nil, "", fmt.Errorf("%w: private keys are not accepted", ErrInvalidXPub)
	}

	if key.IsForNet(params) {
		return key, "", nil
	}

	implied, ok := slip132Kind(key.Version(), params)
	if !ok {
		return nil, "", fmt.Errorf("%w: key is not for %s", ErrInvalidXPub, params.Name)
	}

	if key, err = key.CloneWithVersion(params.HDPublicKeyID[:]); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidXPub, err)
	}
	return key, implied, nil
}

func slip132Kind(version []byte, params *chaincfg.Params) (AddressKind, bool) {
	mainnet := params.Net == chaincfg.MainNetParams.Net
	for _, v := range slip132 {
		if v.mainnet == mainnet && bytes.Equal(version, v.version[:]) {
			return v.kind, true
		}
	}
	return "", false
}

// address derives the address at chainIndex/index.
func (d *deriver) address(chainIndex int, index uint32) (string, error) {
	child, err := d.chains[chainIndex].Derive(index)
	if err != nil {
		return "", err
	}

	pubKey, err := child.ECPubKey()
	if err != nil {
		return "", err
	}

	var addr btcutil.Address
	switch d.kind {
	case AddressKindLegacy:
		addr, err = btcutil.NewAddressPubKeyHash(btcutil.Hash160(pubKey.SerializeCompressed()), d.params)
	case AddressKindNestedSegwit:
		var witness *btcutil.AddressWitnessPubKeyHash
		witness, err = btcutil.NewAddressWitnessPubKeyHash(btcutil.Hash160(pubKey.SerializeCompressed()), d.params)
		if err != nil {
			return "", err
		}

		var script []byte
		if script, err = txscript.PayToAddrScript(witness); err != nil {
			return "", err
		}
		addr, err = btcutil.NewAddressScriptHash(script, d.params)
	case AddressKindSegwit:
		addr, err = btcutil.NewAddressWitnessPubKeyHash(btcutil.Hash160(pubKey.SerializeCompressed()), d.params)
	case AddressKindTaproot:
		outputKey := txscript.ComputeTaprootKeyNoScript(pubKey)
		addr, err = btcutil.NewAddressTaproot(schnorr.SerializePubKey(outputKey), d.params)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAddressKind, d.kind)
	}
	if err != nil {
		return "", err
	}

	return addr.EncodeAddress(), nil
}

// validateAddress checks that address is well formed and belongs to params.
func validateAddress(address string, params *chaincfg.Params) error {
	addr, err := btcutil.DecodeAddress(address, params)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", address, err)
	}

	if !addr.IsForNet(params) {
		return fmt.Errorf("address %q is not for %s", address, params.Name)
	}
	return nil
}
