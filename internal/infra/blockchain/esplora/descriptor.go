package esplora

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

var ErrInvalidDescriptor = errors.New("invalid output descriptor")

// descriptorWrappers maps the supported single key script expressions to the
// kind they derive. Order matters: sh(wpkh( must be tried before wpkh(.
var descriptorWrappers = []struct {
	prefix string
	kind   AddressKind
}{
	{"sh(wpkh(", AddressKindNestedSegwit},
	{"wpkh(", AddressKindSegwit},
	{"pkh(", AddressKindLegacy},
	{"tr(", AddressKindTaproot},
}

// descriptor is a parsed ranged single key descriptor such as
// wpkh([fingerprint/84h/0h/0h]xpub.../<0;1>/*).
type descriptor struct {
	kind      AddressKind
	key       *hdkeychain.ExtendedKey
	steps     []uint32
	multipath int      // index in steps replaced by each branch, -1 when absent
	branches  []uint32 // values of the <a;b> step
}

// newDescriptorDeriver builds a deriver from a receive descriptor and an
// optional change descriptor. A multipath descriptor (.../<0;1>/*) carries
// both chains on its own and cannot be combined with a change descriptor.
func newDescriptorDeriver(receive, change string, params *chaincfg.Params) (*deriver, error) {
	desc, err := parseDescriptor(receive, params)
	if err != nil {
		return nil, err
	}

	d := &deriver{kind: desc.kind, params: params}

	if desc.multipath >= 0 {
		if strings.TrimSpace(change) != "" {
			return nil, fmt.Errorf("%w: multipath descriptor already holds the change chain", ErrInvalidDescriptor)
		}

		for _, branch := range desc.branches {
			key, err := desc.derive(branch)
			if err != nil {
				return nil, err
			}
			d.chains = append(d.chains, key)
		}
		return d, nil
	}

	key, err := desc.derive(0)
	if err != nil {
		return nil, err
	}
	d.chains = append(d.chains, key)

	if strings.TrimSpace(change) == "" {
		return d, nil
	}

	changeDesc, err := parseDescriptor(change, params)
	if err != nil {
		return nil, fmt.Errorf("change: %w", err)
	}

	if changeDesc.kind != desc.kind {
		return nil, fmt.Errorf("%w: change descriptor is %s, receive is %s", ErrInvalidDescriptor, changeDesc.kind, desc.kind)
	}

	if changeDesc.multipath >= 0 {
		return nil, fmt.Errorf("%w: change descriptor cannot be multipath", ErrInvalidDescriptor)
	}

	if key, err = changeDesc.derive(0); err != nil {
		return nil, err
	}
	d.chains = append(d.chains, key)

	return d, nil
}

// parseDescriptor parses one ranged descriptor. The trailing checksum, when
// present, is dropped without being verified.
func parseDescriptor(s string, params *chaincfg.Params) (*descriptor, error) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}

	desc := &descriptor{multipath: -1}

	var inner string
	for _, w := range descriptorWrappers {
		if !strings.HasPrefix(s, w.prefix) {
			continue
		}

		closing := strings.Repeat(")", strings.Count(w.prefix, "("))
		if !strings.HasSuffix(s, closing) {
			return nil, fmt.Errorf("%w: unbalanced %q", ErrInvalidDescriptor, s)
		}

		desc.kind = w.kind
		inner = strings.TrimSuffix(strings.TrimPrefix(s, w.prefix), closing)
		break
	}
	if desc.kind == "" {
		return nil, fmt.Errorf("%w: unsupported script expression %q", ErrInvalidDescriptor, s)
	}

	// Key origin, e.g. [d34db33f/84h/0h/0h], is informative only.
	if strings.HasPrefix(inner, "[") {
		end := strings.IndexByte(inner, ']')
		if end < 0 {
			return nil, fmt.Errorf("%w: unterminated key origin", ErrInvalidDescriptor)
		}
		inner = inner[end+1:]
	}

	parts := strings.Split(inner, "/")
	if len(parts) < 2 || parts[len(parts)-1] != "*" {
		return nil, fmt.Errorf("%w: only ranged descriptors ending in /* are supported", ErrInvalidDescriptor)
	}

	key, _, err := parseXPub(parts[0], params)
	if err != nil {
		return nil, err
	}
	desc.key = key

	for _, part := range parts[1 : len(parts)-1] {
		if strings.HasPrefix(part, "<") && strings.HasSuffix(part, ">") {
			if desc.multipath >= 0 {
				return nil, fmt.Errorf("%w: more than one multipath step", ErrInvalidDescriptor)
			}

			branches := strings.Split(part[1:len(part)-1], ";")
			if len(branches) != 2 {
				return nil, fmt.Errorf("%w: multipath step %q must have a receive and a change branch", ErrInvalidDescriptor, part)
			}

			for _, b := range branches {
				step, err := parseStep(b)
				if err != nil {
					return nil, err
				}
				desc.branches = append(desc.branches, step)
			}

			desc.multipath = len(desc.steps)
			desc.steps = append(desc.steps, 0)
			continue
		}

		step, err := parseStep(part)
		if err != nil {
			return nil, err
		}
		desc.steps = append(desc.steps, step)
	}

	return desc, nil
}

// parseStep parses an unhardened derivation step.
func parseStep(s string) (uint32, error) {
	if strings.HasSuffix(s, "h") || strings.HasSuffix(s, "'") {
		return 0, fmt.Errorf("%w: hardened step %q cannot follow a public key", ErrInvalidDescriptor, s)
	}

	step, err := strconv.ParseUint(s, 10, 32)
	if err != nil || step >= hdkeychain.HardenedKeyStart {
		return 0, fmt.Errorf("%w: invalid derivation step %q", ErrInvalidDescriptor, s)
	}
	return uint32(step), nil
}

// derive walks the descriptor steps up to the wildcard, using branch for
// the multipath step.
func (d *descriptor) derive(branch uint32) (*hdkeychain.ExtendedKey, error) {
	key := d.key
	for i, step := range d.steps {
		if i == d.multipath {
			step = branch
		}

		var err error
		if key, err = key.Derive(step); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
		}
	}
	return key, nil
}
