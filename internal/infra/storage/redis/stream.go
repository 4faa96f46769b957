package redis

import (
	"context"

	redis "github.com/redis/go-redis/v9"
)

// Publish appends an entry with fields to stream using XADD and returns the
// entry id. A positive maxLen trims the stream to that many entries.
func (c *client) Publish(ctx context.Context, stream string, maxLen int64, fields map[string]any) (string, error) {
	return c.conn.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		MaxLen: maxLen,
		Values: fields,
	}).Result()
}
