// Package redisstream publishes every notification as an entry of a Redis
// stream, for consumption by other services.
package redisstream

import (
	"context"
	"strconv"

	"github.com/gabapcia/walletsentry/internal/action"
	"github.com/gabapcia/walletsentry/internal/message"
)

// Publisher appends entries to a Redis stream.
type Publisher interface {
	Publish(ctx context.Context, stream string, maxLen int64, fields map[string]any) (string, error)
}

type streamer struct {
	publisher Publisher
	stream    string
	maxLen    int64
	renderer  *message.Renderer
}

var _ action.Action = (*streamer)(nil)

func New(cfg action.RedisStreamConfig, publisher Publisher, renderer *message.Renderer) *streamer {
	return &streamer{
		publisher: publisher,
		stream:    cfg.Stream,
		maxLen:    cfg.MaxLen,
		renderer:  renderer,
	}
}

func (s *streamer) Name() string {
	return string(action.KindRedisStream)
}

func (s *streamer) Execute(ctx context.Context, mctx *message.Context) error {
	fields, err := s.fields(ctx, mctx)
	if err != nil {
		return err
	}

	_, err = s.publisher.Publish(ctx, s.stream, s.maxLen, fields)
	return err
}

// fields flattens the notification into stream entry fields. A dry run only
// carries the rendered templates and a test marker.
func (s *streamer) fields(ctx context.Context, mctx *message.Context) (map[string]any, error) {
	subject, err := s.renderer.Subject(mctx)
	if err != nil {
		return nil, err
	}

	body, err := s.renderer.Body(mctx)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"subject": subject,
		"body":    body,
	}
	if id, ok := action.EventID(ctx); ok {
		fields["event_id"] = id
	}

	if mctx == nil {
		fields["test"] = "true"
		return fields, nil
	}

	fields["wallet"] = mctx.Wallet
	fields["network"] = mctx.Network.String()
	fields["txid"] = mctx.Transaction.ID
	fields["received"] = strconv.FormatUint(mctx.Transaction.Received, 10)
	fields["sent"] = strconv.FormatUint(mctx.Transaction.Sent, 10)
	fields["net"] = strconv.FormatInt(mctx.Net(), 10)
	fields["total_balance"] = strconv.FormatUint(mctx.TotalBalance, 10)
	fields["current_height"] = strconv.FormatUint(uint64(mctx.CurrentHeight), 10)
	fields["confirmations"] = strconv.FormatUint(uint64(mctx.Confirmations()), 10)

	if mctx.Transaction.Fee != nil {
		fields["fee"] = strconv.FormatUint(*mctx.Transaction.Fee, 10)
	}
	if mctx.Transaction.Confirmation != nil {
		fields["tx_height"] = strconv.FormatUint(uint64(mctx.TxHeight()), 10)
		fields["conf_timestamp"] = mctx.ConfTimestamp()
	}
	if url, err := s.renderer.TxURL(mctx); err == nil {
		fields["tx_url"] = url
	}

	return fields, nil
}
