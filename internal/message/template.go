package message

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalidTemplate is returned for templates that reference an unknown
// placeholder or contain an unbalanced brace.
var ErrInvalidTemplate = errors.New("invalid template")

// Placeholder names accepted in message templates.
const (
	PlaceholderWallet        = "wallet"
	PlaceholderTotalBalance  = "total_balance"
	PlaceholderTxID          = "txid"
	PlaceholderTxIDShort     = "txid_short"
	PlaceholderTxNet         = "tx_net"
	PlaceholderReceived      = "received"
	PlaceholderSent          = "sent"
	PlaceholderFee           = "fee"
	PlaceholderCurrentHeight = "current_height"
	PlaceholderTxHeight      = "tx_height"
	PlaceholderConfs         = "confs"
	PlaceholderConfTimestamp = "conf_timestamp"
	PlaceholderTxURL         = "tx_url"
)

// Placeholders is the closed vocabulary of template placeholders.
var Placeholders = []string{
	PlaceholderWallet,
	PlaceholderTotalBalance,
	PlaceholderTxID,
	PlaceholderTxIDShort,
	PlaceholderTxNet,
	PlaceholderReceived,
	PlaceholderSent,
	PlaceholderFee,
	PlaceholderCurrentHeight,
	PlaceholderTxHeight,
	PlaceholderConfs,
	PlaceholderConfTimestamp,
	PlaceholderTxURL,
}

// segment is either literal text or a placeholder reference.
type segment struct {
	text        string
	placeholder bool
}

// template is a parsed message template.
type template struct {
	raw      string
	segments []segment
}

// parseTemplate splits raw into literal and placeholder segments.
// "{{" and "}}" are escapes for literal braces.
func parseTemplate(raw string) (template, error) {
	var (
		segments []segment
		literal  strings.Builder
	)

	flush := func() {
		if literal.Len() > 0 {
			segments = append(segments, segment{text: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(raw); i++ {
		switch c := raw[i]; c {
		case '{':
			if i+1 < len(raw) && raw[i+1] == '{' {
				literal.WriteByte('{')
				i++
				continue
			}

			end := strings.IndexAny(raw[i+1:], "{}")
			if end < 0 || raw[i+1+end] != '}' {
				return template{}, fmt.Errorf("%w: unclosed '{' at offset %d in %q", ErrInvalidTemplate, i, raw)
			}

			name := raw[i+1 : i+1+end]
			if !slices.Contains(Placeholders, name) {
				return template{}, fmt.Errorf("%w: unknown placeholder {%s} in %q", ErrInvalidTemplate, name, raw)
			}

			flush()
			segments = append(segments, segment{text: name, placeholder: true})
			i += end + 1
		case '}':
			if i+1 < len(raw) && raw[i+1] == '}' {
				literal.WriteByte('}')
				i++
				continue
			}
			return template{}, fmt.Errorf("%w: unmatched '}' at offset %d in %q", ErrInvalidTemplate, i, raw)
		default:
			literal.WriteByte(c)
		}
	}
	flush()

	return template{raw: raw, segments: segments}, nil
}

// execute renders the template, resolving each placeholder through resolve.
func (t template) execute(resolve func(name string) (string, error)) (string, error) {
	var b strings.Builder
	b.Grow(len(t.raw))

	for _, s := range t.segments {
		if !s.placeholder {
			b.WriteString(s.text)
			continue
		}

		value, err := resolve(s.text)
		if err != nil {
			return "", err
		}
		b.WriteString(value)
	}

	return b.String(), nil
}

// ValidateTemplate parses raw and reports whether it is a valid message template.
func ValidateTemplate(raw string) error {
	_, err := parseTemplate(raw)
	return err
}
