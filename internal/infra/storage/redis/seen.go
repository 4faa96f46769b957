package redis

import (
	"context"
	"fmt"

	"github.com/gabapcia/walletsentry/internal/walletwatch"
)

// seenKey returns the Redis set holding the seen transaction ids of wallet.
//
// Format: "{prefix}:seen:{wallet}"
func (c *client) seenKey(wallet string) string {
	return fmt.Sprintf("%s:seen:%s", c.keyPrefix, wallet)
}

// LoadSeen implements walletwatch.SeenStorage using SMEMBERS.
//
// A wallet that was never stored yields an empty slice.
func (c *client) LoadSeen(ctx context.Context, wallet string) ([]string, error) {
	return c.conn.SMembers(ctx, c.seenKey(wallet)).Result()
}

// MarkSeen implements walletwatch.SeenStorage using SADD. Ids already in the
// set are ignored by Redis.
func (c *client) MarkSeen(ctx context.Context, wallet string, txIDs []string) error {
	if len(txIDs) == 0 {
		return nil
	}

	// Convert []string to []any, required by SADD
	members := make([]any, len(txIDs))
	for i, id := range txIDs {
		members[i] = id
	}

	return c.conn.SAdd(ctx, c.seenKey(wallet), members...).Err()
}

// Ensure the client satisfies the SeenStorage interface at compile time.
var _ walletwatch.SeenStorage = new(client)
