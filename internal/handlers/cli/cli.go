package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

// App is the running walletsentry instance driven by the commands.
type App interface {
	// Start launches the watch pipeline and returns once it is running.
	Start(ctx context.Context) error

	// Test dispatches a dry run notification to every backend.
	Test(ctx context.Context) error

	// Close stops the pipeline and releases its resources.
	Close(ctx context.Context)
}

// Options carries what the commands learned from their flags.
type Options struct {
	ConfigPath    string // explicit configuration file, may be empty
	NotifyPastTxs bool   // notify transactions that predate the start
	TestOnly      bool   // only the actions are needed, wallets and storage are skipped
}

// Factory loads the configuration and builds an App.
type Factory func(ctx context.Context, opts Options) (App, error)

const configFlag = "config"

// Run initializes and executes the walletsentry CLI application with args
// (os.Args in production).
//
// It registers all available commands:
//
//   - `start`: Watches the configured wallets and notifies new transactions.
//   - `test`: Sends a test notification through every configured action.
func Run(ctx context.Context, args []string, newApp Factory) error {
	app := &cli.Command{
		EnableShellCompletion: true,
		Name:                  "walletsentry",
		Description:           "Watches bitcoin wallets and notifies every new transaction through the configured actions.",
		Usage:                 "walletsentry [command] [flags]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    configFlag,
				Aliases: []string{"c"},
				Usage:   "path to the configuration file",
			},
		},
		Commands: []*cli.Command{
			startCommand(newApp),
			testCommand(newApp),
		},
	}

	return app.Run(ctx, args)
}
