// Package message renders notification subjects and bodies from a fixed
// vocabulary of {placeholder} fields and builds the per-transaction Context
// those fields are resolved from.
//
// A nil Context is a dry run: templates are still validated, known
// placeholders are kept verbatim as {name}, brace escapes are unescaped and
// {tx_url} becomes the mainnet explorer URL template. Configuration self-tests
// rely on this behavior.
package message

import (
	"strconv"

	"github.com/gabapcia/walletsentry/internal/chain"
)

// Default message templates.
const (
	DefaultSubject = "[{wallet}] new transaction"
	DefaultBody    = "net: {tx_net} sats, balance: {total_balance} sats, txid: {txid_short}"
)

// Renderer renders the configured subject and body templates. It is immutable
// and safe for concurrent use.
type Renderer struct {
	subject   template
	body      template
	format    Format
	explorers Explorers
}

type config struct {
	subject   string
	body      string
	format    Format
	explorers Explorers
}

type Option func(*config)

// NewRenderer parses and validates the subject and body templates.
// It fails with ErrInvalidTemplate when either is malformed.
func NewRenderer(opts ...Option) (*Renderer, error) {
	cfg := config{
		subject:   DefaultSubject,
		body:      DefaultBody,
		format:    FormatPlain,
		explorers: DefaultExplorers(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := cfg.explorers.Validate(); err != nil {
		return nil, err
	}

	subject, err := parseTemplate(cfg.subject)
	if err != nil {
		return nil, err
	}

	body, err := parseTemplate(cfg.body)
	if err != nil {
		return nil, err
	}

	return &Renderer{
		subject:   subject,
		body:      body,
		format:    cfg.format,
		explorers: cfg.explorers,
	}, nil
}

// Subject renders the subject template.
func (r *Renderer) Subject(mctx *Context) (string, error) {
	return r.execute(r.subject, mctx)
}

// Body renders the body template.
func (r *Renderer) Body(mctx *Context) (string, error) {
	return r.execute(r.body, mctx)
}

// Render parses and renders an arbitrary template, such as a command argument.
func (r *Renderer) Render(raw string, mctx *Context) (string, error) {
	tmpl, err := parseTemplate(raw)
	if err != nil {
		return "", err
	}
	return r.execute(tmpl, mctx)
}

// Format returns the configured body format.
func (r *Renderer) Format() Format {
	return r.format
}

// TxURL returns the block explorer URL of the context's transaction, or the
// mainnet URL template when mctx is nil.
func (r *Renderer) TxURL(mctx *Context) (string, error) {
	if mctx == nil {
		return r.explorers.Template(chain.Mainnet)
	}
	return r.explorers.TxURL(mctx.Network, mctx.Transaction.ID)
}

func (r *Renderer) execute(tmpl template, mctx *Context) (string, error) {
	if mctx == nil {
		return tmpl.execute(func(name string) (string, error) {
			if name == PlaceholderTxURL {
				return r.TxURL(nil)
			}
			return "{" + name + "}", nil
		})
	}

	return tmpl.execute(func(name string) (string, error) {
		switch name {
		case PlaceholderWallet:
			return mctx.Wallet, nil
		case PlaceholderTotalBalance:
			return strconv.FormatUint(mctx.TotalBalance, 10), nil
		case PlaceholderTxID:
			return mctx.Transaction.ID, nil
		case PlaceholderTxIDShort:
			return mctx.TxIDShort(), nil
		case PlaceholderTxNet:
			return strconv.FormatInt(mctx.Net(), 10), nil
		case PlaceholderReceived:
			return strconv.FormatUint(mctx.Transaction.Received, 10), nil
		case PlaceholderSent:
			return strconv.FormatUint(mctx.Transaction.Sent, 10), nil
		case PlaceholderFee:
			return strconv.FormatUint(mctx.Fee(), 10), nil
		case PlaceholderCurrentHeight:
			return strconv.FormatUint(uint64(mctx.CurrentHeight), 10), nil
		case PlaceholderTxHeight:
			return strconv.FormatUint(uint64(mctx.TxHeight()), 10), nil
		case PlaceholderConfs:
			return strconv.FormatUint(uint64(mctx.Confirmations()), 10), nil
		case PlaceholderConfTimestamp:
			return mctx.ConfTimestamp(), nil
		case PlaceholderTxURL:
			// regtest has no explorer; fail only when referenced.
			return r.TxURL(mctx)
		default:
			return "", nil
		}
	})
}

// WithSubject sets the subject template. Default: DefaultSubject.
func WithSubject(s string) Option {
	return func(c *config) {
		c.subject = s
	}
}

// WithBody sets the body template. Default: DefaultBody.
func WithBody(s string) Option {
	return func(c *config) {
		c.body = s
	}
}

// WithFormat sets the body format. Default: FormatPlain.
func WithFormat(f Format) Option {
	return func(c *config) {
		c.format = f
	}
}

// WithExplorers overrides explorer templates per network. Networks not present
// in e keep their default.
func WithExplorers(e Explorers) Option {
	return func(c *config) {
		for network, tmpl := range e {
			if tmpl != "" {
				c.explorers[network] = tmpl
			}
		}
	}
}
