// Package app wires walletsentry together: it builds the notification
// backends, the chain client, the wallets and the watch pipeline from a
// loaded configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gabapcia/walletsentry/internal/action"
	"github.com/gabapcia/walletsentry/internal/chainwatch"
	"github.com/gabapcia/walletsentry/internal/config"
	"github.com/gabapcia/walletsentry/internal/infra/blockchain/esplora"
	"github.com/gabapcia/walletsentry/internal/infra/notifier"
	"github.com/gabapcia/walletsentry/internal/infra/storage/redis"
	"github.com/gabapcia/walletsentry/internal/message"
	"github.com/gabapcia/walletsentry/internal/pkg/logger"
	"github.com/gabapcia/walletsentry/internal/pkg/resilience/retry"
	"github.com/gabapcia/walletsentry/internal/pkg/telemetry"
	httpclient "github.com/gabapcia/walletsentry/internal/pkg/transport/http"
	"github.com/gabapcia/walletsentry/internal/pkg/transport/rest"
	"github.com/gabapcia/walletsentry/internal/walletwatch"
	"github.com/gabapcia/walletsentry/internal/watchproc"
)

// App is a fully wired walletsentry instance.
type App struct {
	watcher    watchproc.Service
	dispatcher *action.Dispatcher
	closers    []func(ctx context.Context) error
}

// ErrTestOnly is returned by Start on an App built with WithTestOnly.
var ErrTestOnly = errors.New("app built for test notifications only")

type options struct {
	notifyPastTxs bool
	testOnly      bool
}

type Option func(*options)

// WithNotifyPastTxs skips the initial sync so existing transactions are
// notified once.
func WithNotifyPastTxs(enabled bool) Option {
	return func(o *options) {
		o.notifyPastTxs = enabled
	}
}

// WithTestOnly builds telemetry and the notification backends only. The
// chain client, wallets and storage are skipped, so such an App can Test
// but not Start.
func WithTestOnly() Option {
	return func(o *options) {
		o.testOnly = true
	}
}

// NewDispatcher builds the renderer and every configured backend. It fails
// with action.ErrNoActions when no backend could be built.
func NewDispatcher(ctx context.Context, cfg *config.Config) (*action.Dispatcher, error) {
	explorers := make(message.Explorers, len(cfg.Message.BlockExplorers))
	for network, tmpl := range cfg.Message.BlockExplorers {
		explorers[network] = tmpl
	}

	renderer, err := message.NewRenderer(
		message.WithSubject(cfg.Message.Subject),
		message.WithBody(cfg.Message.Body),
		message.WithFormat(cfg.Message.Format),
		message.WithExplorers(explorers),
	)
	if err != nil {
		return nil, err
	}

	actions, err := notifier.NewRegistry(renderer).Build(ctx, cfg.Actions)
	if err != nil {
		return nil, err
	}

	return action.NewDispatcher(actions), nil
}

// New builds every component described by cfg. Wallets that cannot be
// built are skipped; having none left is fatal.
func New(ctx context.Context, cfg *config.Config, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{}
	if err := a.build(ctx, cfg, o); err != nil {
		a.Close(context.WithoutCancel(ctx))
		return nil, err
	}

	return a, nil
}

func (a *App) build(ctx context.Context, cfg *config.Config, o options) error {
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Init(ctx, cfg.Telemetry.ServiceName)
		if err != nil {
			return fmt.Errorf("telemetry: %w", err)
		}
		a.closers = append(a.closers, shutdown)
	}

	dispatcher, err := NewDispatcher(ctx, cfg)
	if err != nil {
		return err
	}
	a.dispatcher = dispatcher

	if o.testOnly {
		return nil
	}

	client, err := newChainClient(cfg.Chain)
	if err != nil {
		return err
	}

	wallets := newWallets(ctx, client, cfg.Wallets)
	if len(wallets) == 0 {
		return config.ErrNoWallets
	}

	wwOpts := []walletwatch.Option{
		walletwatch.WithInterval(*cfg.Monitor.Interval),
		walletwatch.WithInitialSync(*cfg.Monitor.InitialSync && !o.notifyPastTxs),
		walletwatch.WithRetry(retry.New(
			retry.WithAttempts(5),
			retry.WithMaxDelay(30*time.Second),
			retry.WithOnRetry(func(attempt uint, err error) {
				logger.Warn(ctx, "initial sync failed, retrying", "retry.attempt", attempt+1, "error", err)
			}),
		)),
	}

	if r := cfg.Storage.Redis; r.Addr != "" {
		storage, err := redis.NewClient(ctx, r.Addr, r.Username, r.Password, r.DB, redis.WithKeyPrefix(r.KeyPrefix))
		if err != nil {
			return fmt.Errorf("redis storage: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) error { return storage.Close() })
		wwOpts = append(wwOpts, walletwatch.WithSeenStorage(storage))
	}

	heights := chainwatch.New(client,
		chainwatch.WithInterval(cfg.Chain.HeightInterval),
		chainwatch.WithEndpoint(client.Endpoint()),
	)
	monitors := walletwatch.New(wallets, heights, dispatcher, wwOpts...)
	a.watcher = watchproc.New(heights, monitors)

	return nil
}

func newChainClient(cfg config.ChainConfig) (*esplora.Client, error) {
	url := cfg.URL
	if url == "" {
		var err error
		if url, err = esplora.DefaultURL(cfg.Network); err != nil {
			return nil, err
		}
	}

	hc, err := httpclient.NewClient(
		httpclient.WithProxy(cfg.Proxy),
		httpclient.WithTimeout(30*time.Second),
		httpclient.WithRetryMax(3),
		httpclient.WithRetryWaitMax(10*time.Second),
	)
	if err != nil {
		return nil, err
	}

	return esplora.NewClient(rest.NewClient(hc.StandardClient(), url), cfg.Network)
}

func newWallets(ctx context.Context, client *esplora.Client, cfgs []config.WalletConfig) []walletwatch.Wallet {
	wallets := make([]walletwatch.Wallet, 0, len(cfgs))
	for _, cfg := range cfgs {
		w, err := esplora.NewWallet(client, esplora.WalletSpec{
			Descriptor:       cfg.Descriptor,
			ChangeDescriptor: cfg.ChangeDescriptor,
			XPub:             cfg.XPub,
			Kind:             cfg.Kind,
			Addresses:        cfg.Addresses,
			GapLimit:         cfg.GapLimit,
		})
		if err != nil {
			logger.Warn(ctx, "could not load wallet", "wallet.name", cfg.Name, "error", err)
			continue
		}

		logger.Info(ctx, "loaded wallet", "wallet.name", cfg.Name, "chain.network", w.Network())
		wallets = append(wallets, walletwatch.Wallet{Name: cfg.Name, Client: w})
	}
	return wallets
}

// Start starts the watch pipeline. It returns once the first height poll and
// the initial wallet syncs are done.
func (a *App) Start(ctx context.Context) error {
	if a.watcher == nil {
		return ErrTestOnly
	}
	return a.watcher.Start(ctx)
}

// Test dispatches a dry run notification to every backend.
func (a *App) Test(ctx context.Context) error {
	return a.dispatcher.Dispatch(ctx, nil)
}

// Close stops the pipeline and releases every resource. It is safe to call
// on a partially built App.
func (a *App) Close(ctx context.Context) {
	if a.watcher != nil {
		a.watcher.Close()
	}

	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i](ctx))
	}
	if err := errors.Join(errs...); err != nil {
		logger.Warn(ctx, "could not release resources", "error", err)
	}
}
