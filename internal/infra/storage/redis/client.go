// Package redis implements the Redis backed storage of walletsentry: the
// persisted seen-set of each wallet and the stream notifications are
// published to.
package redis

import (
	"context"

	redis "github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces every key written by the client.
const DefaultKeyPrefix = "walletsentry"

type client struct {
	conn      *redis.Client
	keyPrefix string
}

func (c *client) Close() error {
	return c.conn.Close()
}

type config struct {
	keyPrefix string
}

type Option func(*config)

// WithKeyPrefix sets the namespace of every key. Default: DefaultKeyPrefix.
func WithKeyPrefix(prefix string) Option {
	return func(c *config) {
		if prefix != "" {
			c.keyPrefix = prefix
		}
	}
}

// NewClient connects to Redis and pings it.
func NewClient(ctx context.Context, addr, username, password string, db int, opts ...Option) (*client, error) {
	cfg := config{
		keyPrefix: DefaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})

	if err := conn.Ping(ctx).Err(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &client{
		conn:      conn,
		keyPrefix: cfg.keyPrefix,
	}, nil
}
