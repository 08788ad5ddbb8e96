package config

import (
	"log/slog"
	"time"

	"github.com/portnet-lab/caseflow/pkg/service/dispatcher"
	"github.com/urfave/cli/v3"
)

// Dispatcher holds CLI flags for the external dispatcher delegate
type Dispatcher struct {
	baseURL  string
	apiKey   string
	timeout  time.Duration
	interval time.Duration
	limit    int64
}

// Flags returns CLI flags for dispatcher configuration
func (d *Dispatcher) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dispatcher-url",
			Usage:       "Base URL of the external dispatcher (delegate disabled when empty)",
			Sources:     cli.EnvVars("CASEFLOW_DISPATCHER_URL"),
			Destination: &d.baseURL,
		},
		&cli.StringFlag{
			Name:        "dispatcher-api-key",
			Usage:       "API key sent as X-Dispatcher-Key",
			Sources:     cli.EnvVars("CASEFLOW_DISPATCHER_API_KEY"),
			Destination: &d.apiKey,
		},
		&cli.DurationFlag{
			Name:        "dispatcher-timeout",
			Usage:       "HTTP timeout for dispatcher calls",
			Value:       30 * time.Second,
			Sources:     cli.EnvVars("CASEFLOW_DISPATCHER_TIMEOUT"),
			Destination: &d.timeout,
		},
		&cli.DurationFlag{
			Name:        "dispatcher-interval",
			Usage:       "Interval between background dispatch cycles",
			Value:       5 * time.Minute,
			Sources:     cli.EnvVars("CASEFLOW_DISPATCHER_INTERVAL"),
			Destination: &d.interval,
		},
		&cli.Int64Flag{
			Name:        "dispatcher-limit",
			Usage:       "Maximum cases per dispatch cycle",
			Value:       50,
			Sources:     cli.EnvVars("CASEFLOW_DISPATCHER_LIMIT"),
			Destination: &d.limit,
		},
	}
}

// Enabled reports whether a delegate endpoint is configured
func (d *Dispatcher) Enabled() bool {
	return d.baseURL != ""
}

// Build creates the dispatcher client from the flags
func (d *Dispatcher) Build() (dispatcher.Service, error) {
	return dispatcher.New(d.baseURL, d.apiKey, d.timeout)
}

// Interval returns the configured background cycle interval
func (d *Dispatcher) Interval() time.Duration {
	return d.interval
}

// Limit returns the configured per-cycle case limit
func (d *Dispatcher) Limit() int {
	return int(d.limit)
}

// LogValue renders the configuration for the startup log line
func (d *Dispatcher) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("base_url", d.baseURL),
		slog.Bool("api_key_set", d.apiKey != ""),
		slog.Duration("timeout", d.timeout),
		slog.Duration("interval", d.interval),
		slog.Int64("limit", d.limit),
	)
}
