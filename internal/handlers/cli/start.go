package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gabapcia/walletsentry/internal/pkg/logger"

	"github.com/coreos/go-systemd/v22/daemon"
	"github.com/urfave/cli/v3"
)

const notifyPastTxsFlag = "notify-past-txs"

// startCommand returns a CLI command that watches the configured wallets.
//
// Usage example:
//
//	walletsentry start --config /etc/walletsentry/walletsentry.yaml
//
// The process runs until it receives SIGINT, SIGTERM or SIGHUP. Once the
// pipeline is running systemd is notified with READY=1.
func startCommand(newApp Factory) *cli.Command {
	return &cli.Command{
		Name:        "start",
		Description: "Watches the configured wallets and notifies every new transaction.",
		Usage:       "Runs until interrupted. Terminates gracefully on Ctrl+C or termination signals.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  notifyPastTxsFlag,
				Usage: "notify transactions that already exist when the wallets are first synced",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			ctx, cancel := context.WithCancel(ctx)
			defer cancel()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
			defer signal.Stop(quit)

			// Signals cancel ctx at any point, including while the app is
			// still loading or running its initial sync.
			go func() {
				select {
				case sig := <-quit:
					logger.Info(ctx, "received signal, shutting down", "signal", sig.String())
					cancel()
				case <-ctx.Done():
				}
			}()

			app, err := newApp(ctx, Options{
				ConfigPath:    c.String(configFlag),
				NotifyPastTxs: c.Bool(notifyPastTxsFlag),
			})
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			defer app.Close(context.WithoutCancel(ctx))

			if err := app.Start(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}

			if _, err := daemon.SdNotify(false, daemon.SdNotifyReady); err != nil {
				logger.Warn(ctx, "could not notify systemd", "error", err)
			}
			logger.Info(ctx, "walletsentry started")

			<-ctx.Done()
			logger.Info(ctx, "walletsentry stopping")

			_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
			return nil
		},
	}
}
