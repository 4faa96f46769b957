package cli

import (
	"context"

	"github.com/gabapcia/walletsentry/internal/pkg/logger"

	"github.com/urfave/cli/v3"
)

// testCommand returns a CLI command that sends a test notification through
// every configured action, with every placeholder left unresolved.
//
// Usage example:
//
//	walletsentry test
func testCommand(newApp Factory) *cli.Command {
	return &cli.Command{
		Name:        "test",
		Description: "Sends a test notification through every configured action.",
		Usage:       "Checks the action configuration without watching any wallet.",
		Action: func(ctx context.Context, c *cli.Command) error {
			app, err := newApp(ctx, Options{ConfigPath: c.String(configFlag), TestOnly: true})
			if err != nil {
				return err
			}
			defer app.Close(context.WithoutCancel(ctx))

			if err := app.Test(ctx); err != nil {
				return err
			}

			logger.Info(ctx, "test notification sent")
			return nil
		},
	}
}
