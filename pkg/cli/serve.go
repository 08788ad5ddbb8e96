package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/portnet-lab/caseflow/pkg/cli/config"
	httpctrl "github.com/portnet-lab/caseflow/pkg/controller/http"
	"github.com/portnet-lab/caseflow/pkg/service/worker"
	"github.com/portnet-lab/caseflow/pkg/usecase"
	"github.com/portnet-lab/caseflow/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var addr string
	var repoCfg config.Repository
	var scoringCfg config.Scoring
	var dispatcherCfg config.Dispatcher

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("CASEFLOW_ADDR"),
			Destination: &addr,
		},
	}

	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, scoringCfg.Flags()...)
	flags = append(flags, dispatcherCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Build(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			policy, err := scoringCfg.Build()
			if err != nil {
				return goerr.Wrap(err, "failed to load scoring policy")
			}

			uc := usecase.New(repo, usecase.WithScoringPolicy(policy))

			// Start background dispatch cycles when a delegate is configured
			var dispatchWorker *worker.DispatchCycleWorker
			if dispatcherCfg.Enabled() {
				svc, err := dispatcherCfg.Build()
				if err != nil {
					return goerr.Wrap(err, "failed to build dispatcher client")
				}
				dispatchWorker = worker.NewDispatchCycleWorker(svc, dispatcherCfg.Interval(), dispatcherCfg.Limit())
				if err := dispatchWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start dispatch cycle worker")
				}
				logging.Default().Info("Dispatch delegate enabled", "dispatcher", dispatcherCfg)
			} else {
				logging.Default().Info("Dispatch delegate not configured, running with internal dispatch only")
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				if dispatchWorker != nil {
					dispatchWorker.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
