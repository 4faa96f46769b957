// Package chainwatch tracks the chain tip height. It polls a HeightSource on
// a fixed interval and exposes the last successfully read height to the
// wallet monitors, which use it to count confirmations.
package chainwatch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gabapcia/walletsentry/internal/chain"
	"github.com/gabapcia/walletsentry/internal/pkg/logger"
	"github.com/gabapcia/walletsentry/internal/pkg/telemetry"
	"github.com/gabapcia/walletsentry/internal/pkg/x/chflow"

	"go.opentelemetry.io/otel/metric"
)

var ErrServiceAlreadyStarted = errors.New("service already started")

// DefaultInterval is how often the tip height is polled.
const DefaultInterval = 60 * time.Second

type Service interface {
	// Start performs the first poll synchronously and then keeps polling in
	// the background until ctx is done or Close is called. A failed first
	// poll is logged, not returned.
	Start(ctx context.Context) error

	// CurrentHeight returns the last known tip height. ok is false until the
	// first successful poll.
	CurrentHeight() (height uint32, ok bool)

	Close()
}

type closeFunc func()

type service struct {
	mu        sync.Mutex
	isStarted bool
	closeFunc closeFunc

	source   chain.HeightSource
	interval time.Duration
	endpoint string

	heightMu sync.RWMutex
	height   uint32
	known    bool

	heightGauge metric.Int64Gauge
}

var _ Service = (*service)(nil)

func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return ErrServiceAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	s.closeFunc = func() {
		cancel()
	}

	s.poll(ctx)

	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()

		for {
			if _, ok := chflow.Receive(ctx, ticker.C); !ok {
				return
			}
			s.poll(ctx)
		}
	}()

	s.isStarted = true
	return nil
}

func (s *service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closeFunc != nil {
		s.closeFunc()
	}
	s.isStarted = false
	s.closeFunc = nil
}

func (s *service) CurrentHeight() (uint32, bool) {
	s.heightMu.RLock()
	defer s.heightMu.RUnlock()

	return s.height, s.known
}

// poll reads the tip height once. Failures keep the previous height.
func (s *service) poll(ctx context.Context) {
	height, err := s.source.Height(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.Warn(ctx, "could not fetch chain height", "chain.endpoint", s.endpoint, "error", err)
		}
		return
	}

	s.heightMu.Lock()
	previous, first := s.height, !s.known
	s.height, s.known = height, true
	s.heightMu.Unlock()

	if s.heightGauge != nil {
		s.heightGauge.Record(ctx, int64(height))
	}

	switch {
	case first:
		logger.Info(ctx, "connected to chain server",
			"chain.endpoint", s.endpoint,
			"chain.height", height,
		)
	case previous != height:
		logger.Debug(ctx, "chain height changed",
			"chain.previous_height", previous,
			"chain.height", height,
		)
	}
}

type config struct {
	interval time.Duration
	endpoint string
}

type Option func(*config)

// New returns a height tracker polling source.
func New(source chain.HeightSource, opts ...Option) *service {
	cfg := config{
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	heightGauge, err := telemetry.Meter().Int64Gauge("walletsentry.chain.height",
		metric.WithDescription("Last known chain tip height."),
	)
	if err != nil {
		logger.Warn(context.Background(), "could not create chain height gauge", "error", err)
	}

	return &service{
		source:      source,
		interval:    cfg.interval,
		endpoint:    cfg.endpoint,
		heightGauge: heightGauge,
	}
}

// WithInterval sets the polling interval. Non-positive values keep the default.
func WithInterval(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithEndpoint sets the chain server address reported in logs.
func WithEndpoint(endpoint string) Option {
	return func(c *config) {
		c.endpoint = endpoint
	}
}
