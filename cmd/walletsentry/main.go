package main

import (
	"context"
	"os"

	"github.com/gabapcia/walletsentry/internal/app"
	"github.com/gabapcia/walletsentry/internal/config"
	"github.com/gabapcia/walletsentry/internal/handlers/cli"
	"github.com/gabapcia/walletsentry/internal/pkg/logger"
)

func main() {
	ctx := context.Background()

	env, err := config.LoadEnv()
	if err != nil {
		_ = logger.Init()
		logger.Fatal(ctx, "could not read environment", "error", err)
	}
	defer func() { _ = logger.Sync() }()

	newApp := func(ctx context.Context, opts cli.Options) (cli.App, error) {
		path, err := config.Find(opts.ConfigPath, env)
		if err != nil {
			return nil, err
		}

		var loadOpts []config.LoadOption
		appOpts := []app.Option{app.WithNotifyPastTxs(opts.NotifyPastTxs)}
		if opts.TestOnly {
			loadOpts = append(loadOpts, config.WithoutWallets())
			appOpts = append(appOpts, app.WithTestOnly())
		}

		cfg, err := config.Load(path, env, loadOpts...)
		if err != nil {
			return nil, err
		}

		// The file settings win unless the environment overrode them.
		if err := logger.Init(logger.WithLevel(cfg.Log.Level), logger.WithFormat(cfg.Log.Format)); err != nil {
			return nil, err
		}
		logger.Info(ctx, "configuration loaded", "config.path", path)

		a, err := app.New(ctx, cfg, appOpts...)
		if err != nil {
			return nil, err
		}
		return a, nil
	}

	if err := cli.Run(ctx, os.Args, newApp); err != nil {
		// No-op when the configuration already initialized the logger.
		_ = logger.Init(logger.WithLevel(orDefault(env.LogLevel, config.DefaultLogLevel)), logger.WithFormat(orDefault(env.LogFormat, config.DefaultLogFormat)))
		logger.Error(ctx, "walletsentry failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
