package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"

	"github.com/portnet-lab/caseflow/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdDispatch() *cli.Command {
	var dispatcherCfg config.Dispatcher

	return &cli.Command{
		Name:    "dispatch",
		Aliases: []string{"d"},
		Usage:   "Run a single dispatch cycle via the external dispatcher",
		Flags:   dispatcherCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if !dispatcherCfg.Enabled() {
				return goerr.New("dispatcher-url is required")
			}

			svc, err := dispatcherCfg.Build()
			if err != nil {
				return goerr.Wrap(err, "failed to build dispatcher client")
			}

			report, err := svc.RunOnce(ctx, dispatcherCfg.Limit())
			if err != nil {
				return goerr.Wrap(err, "dispatch cycle failed")
			}

			fmt.Printf("%s %d assigned, %d skipped, %d errors\n",
				color.New(color.FgGreen, color.Bold).Sprint("✓"),
				report.Assigned, report.Skipped, report.Errors)

			return nil
		},
	}
}
