package walletwatch

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gabapcia/walletsentry/internal/chain"
	"github.com/gabapcia/walletsentry/internal/message"
	"github.com/gabapcia/walletsentry/internal/pkg/logger"
	"github.com/gabapcia/walletsentry/internal/pkg/resilience/retry"
	"github.com/gabapcia/walletsentry/internal/pkg/telemetry"
	"github.com/gabapcia/walletsentry/internal/pkg/x/chflow"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var ErrServiceAlreadyStarted = errors.New("service already started")

// DefaultInterval is the idle time between two detection cycles of a wallet.
const DefaultInterval = 10 * time.Second

type Service interface {
	// Start seeds every seen-set from storage, runs the initial sync when
	// enabled and then launches one monitor goroutine per wallet. It returns
	// once every monitor is running, or with the context error when ctx is
	// canceled or Close is called during the initial sync.
	Start(ctx context.Context) error

	Close()
}

type closeFunc func()

type service struct {
	mu        sync.Mutex
	isStarted bool
	closeFunc closeFunc

	wallets     []*walletState
	heights     HeightReader
	notifier    Notifier
	seenStorage SeenStorage

	retry       retry.Retry
	interval    time.Duration
	initialSync bool

	newTransactions metric.Int64Counter
}

var _ Service = (*service)(nil)

func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isStarted {
		s.mu.Unlock()
		return ErrServiceAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	s.closeFunc = func() {
		cancel()
	}
	s.isStarted = true
	s.mu.Unlock()

	// The lock is released while syncing so Close can interrupt a slow
	// initial sync.
	s.seedAll(ctx)

	if s.initialSync {
		logger.Info(ctx, "initial wallet sync", "wallet.count", len(s.wallets))
		s.initialSyncAll(ctx)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	logger.Info(ctx, "listening for new transactions", "wallet.count", len(s.wallets))
	for _, w := range s.wallets {
		go s.watch(ctx, w)
	}

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

// seedAll loads every stored seen-set. A wallet whose seen-set cannot be read
// starts empty.
func (s *service) seedAll(ctx context.Context) {
	for _, w := range s.wallets {
		ids, err := s.seenStorage.LoadSeen(ctx, w.name)
		if err != nil {
			logger.Warn(ctx, "could not load seen transactions", "wallet.name", w.name, "error", err)
			continue
		}
		w.seed(ids)
	}
}

// initialSyncAll runs the initial sync of every wallet concurrently and
// waits for all of them.
func (s *service) initialSyncAll(ctx context.Context) {
	var wg sync.WaitGroup
	for _, w := range s.wallets {
		wg.Add(1)
		go func() {
			defer wg.Done()

			count, err := w.initialSync(ctx, s.seenStorage, s.retry)
			if err != nil {
				logger.Warn(ctx, "initial wallet sync failed", "wallet.name", w.name, "error", err)
				return
			}
			logger.Debug(ctx, "initial wallet sync done", "wallet.name", w.name, "tx.count", count)
		}()
	}
	wg.Wait()
}

// watch runs the detection loop of w until ctx is done.
func (s *service) watch(ctx context.Context, w *walletState) {
	for ctx.Err() == nil {
		s.notify(ctx, w, w.detect(ctx, s.seenStorage))

		if !chflow.Sleep(ctx, s.interval) {
			return
		}
	}
}

// notify builds the context of each new transaction and dispatches it in its
// own goroutine. Dispatches are not bounded: a persistently slow backend
// accumulates in-flight notifications.
func (s *service) notify(ctx context.Context, w *walletState, txs []chain.Transaction) {
	if len(txs) == 0 {
		return
	}

	if s.newTransactions != nil {
		s.newTransactions.Add(ctx, int64(len(txs)), metric.WithAttributes(
			attribute.String("wallet.name", w.name),
		))
	}

	for _, tx := range txs {
		mctx := s.newContext(ctx, w, tx)
		logger.Info(ctx, "new transaction",
			"wallet.name", w.name,
			"tx.id", tx.ID,
			"tx.net", mctx.Net(),
		)

		go func() {
			_ = s.notifier.Dispatch(ctx, mctx)
		}()
	}
}

// newContext snapshots the height and balance for tx. An unreadable balance
// is reported as 0.
func (s *service) newContext(ctx context.Context, w *walletState, tx chain.Transaction) *message.Context {
	balance, err := w.client.Balance(ctx)
	if err != nil {
		logger.Warn(ctx, "cannot read wallet balance", "wallet.name", w.name, "error", err)
		balance = 0
	}

	height, _ := s.heights.CurrentHeight()

	return &message.Context{
		Transaction:   tx,
		Wallet:        w.name,
		TotalBalance:  balance,
		CurrentHeight: height,
		Network:       w.client.Network(),
	}
}

type config struct {
	seenStorage SeenStorage
	retry       retry.Retry
	interval    time.Duration
	initialSync bool
}

type Option func(*config)

// New returns a monitor for wallets. heights provides the tip height used for
// confirmation counts and notifier receives every new transaction.
func New(wallets []Wallet, heights HeightReader, notifier Notifier, opts ...Option) *service {
	cfg := config{
		seenStorage: nopSeenStorage{},
		retry:       retry.New(),
		interval:    DefaultInterval,
		initialSync: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	states := make([]*walletState, len(wallets))
	for i, w := range wallets {
		states[i] = newWalletState(w)
	}

	newTransactions, err := telemetry.Meter().Int64Counter("walletsentry.wallet.new_transactions",
		metric.WithDescription("Transactions detected for the first time."),
	)
	if err != nil {
		logger.Warn(context.Background(), "could not create new transactions counter", "error", err)
	}

	return &service{
		wallets:         states,
		heights:         heights,
		notifier:        notifier,
		seenStorage:     cfg.seenStorage,
		retry:           cfg.retry,
		interval:        cfg.interval,
		initialSync:     cfg.initialSync,
		newTransactions: newTransactions,
	}
}

// WithSeenStorage persists seen-sets in ss. Default: in memory only.
func WithSeenStorage(ss SeenStorage) Option {
	return func(c *config) {
		c.seenStorage = ss
	}
}

// WithRetry sets how failed initial syncs are retried.
func WithRetry(r retry.Retry) Option {
	return func(c *config) {
		c.retry = r
	}
}

// WithInterval sets the idle time between detection cycles. Zero re-enters
// immediately after a cycle. Default: DefaultInterval.
func WithInterval(d time.Duration) Option {
	return func(c *config) {
		c.interval = d
	}
}

// WithInitialSync enables or disables the silent initial sync. When disabled
// every existing transaction is notified once. Default: enabled.
func WithInitialSync(enabled bool) Option {
	return func(c *config) {
		c.initialSync = enabled
	}
}
