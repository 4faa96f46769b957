package message

import (
	"time"

	"github.com/gabapcia/walletsentry/internal/chain"
)

// confTimestampLayout renders block times as "2006-01-02 15:04:05 UTC".
const confTimestampLayout = "2006-01-02 15:04:05 UTC"

// txIDShortSide is how many characters of each end of a txid are kept by TxIDShort.
const txIDShortSide = 6

// Context is the notification context built once per new transaction.
// It is read-only once built and may be shared by concurrent actions.
type Context struct {
	Transaction   chain.Transaction
	Wallet        string        // wallet name as configured
	TotalBalance  uint64        // wallet balance in sats when the context was built
	CurrentHeight uint32        // last known tip height, 0 if unknown
	Network       chain.Network // network the wallet lives on
}

// Net is received minus sent, in sats. It is negative for outgoing transactions.
func (c *Context) Net() int64 {
	return int64(c.Transaction.Received) - int64(c.Transaction.Sent)
}

// TxHeight returns the confirmation height, or 0 while unconfirmed.
func (c *Context) TxHeight() uint32 {
	if c.Transaction.Confirmation == nil {
		return 0
	}
	return c.Transaction.Confirmation.Height
}

// Fee returns the transaction fee, or 0 when it is unknown.
func (c *Context) Fee() uint64 {
	if c.Transaction.Fee == nil {
		return 0
	}
	return *c.Transaction.Fee
}

// Confirmations is max(0, CurrentHeight - TxHeight) for confirmed transactions
// and 0 for unconfirmed ones.
func (c *Context) Confirmations() uint32 {
	if c.Transaction.Confirmation == nil {
		return 0
	}

	txHeight := c.Transaction.Confirmation.Height
	if c.CurrentHeight < txHeight {
		return 0
	}
	return c.CurrentHeight - txHeight
}

// ConfTimestamp formats the confirmation block time in UTC, or returns an
// empty string while unconfirmed.
func (c *Context) ConfTimestamp() string {
	if c.Transaction.Confirmation == nil {
		return ""
	}

	return time.Unix(int64(c.Transaction.Confirmation.Timestamp), 0).
		UTC().
		Format(confTimestampLayout)
}

// TxIDShort keeps the first and last six characters of the txid joined by
// "...". Ids shorter than twelve characters are returned unchanged.
func (c *Context) TxIDShort() string {
	id := c.Transaction.ID
	if len(id) < 2*txIDShortSide {
		return id
	}
	return id[:txIDShortSide] + "..." + id[len(id)-txIDShortSide:]
}
