package worker

import (
	"context"
	"time"

	"github.com/portnet-lab/caseflow/pkg/service/dispatcher"
	"github.com/portnet-lab/caseflow/pkg/utils/logging"
)

// DispatchCycleWorker periodically triggers the external dispatch
// service.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - The external service is itself idempotent per cycle
type DispatchCycleWorker struct {
	service  dispatcher.Service
	interval time.Duration
	limit    int
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewDispatchCycleWorker creates a worker that calls the dispatch service
// every interval, processing at most limit cases per cycle.
func NewDispatchCycleWorker(svc dispatcher.Service, interval time.Duration, limit int) *DispatchCycleWorker {
	return &DispatchCycleWorker{
		service:  svc,
		interval: interval,
		limit:    limit,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background dispatch loop. It does not block.
func (w *DispatchCycleWorker) Start(ctx context.Context) error {
	logging.Default().Info("dispatch cycle worker starting",
		"interval", w.interval.String(), "limit", w.limit)

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion
func (w *DispatchCycleWorker) Stop() {
	logging.Default().Info("dispatch cycle worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("dispatch cycle worker stopped")
}

func (w *DispatchCycleWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.runOnce(ctx)

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("dispatch cycle worker context cancelled")
			return
		}
	}
}

// runOnce performs a single cycle. Errors are logged and the loop
// continues on the next tick.
func (w *DispatchCycleWorker) runOnce(ctx context.Context) {
	startTime := time.Now()

	report, err := w.service.RunOnce(ctx, w.limit)
	if err != nil {
		logging.Default().Error("dispatch cycle failed (will retry next interval)",
			"error", err.Error())
		return
	}

	logging.Default().Info("dispatch cycle completed",
		"assigned", report.Assigned,
		"skipped", report.Skipped,
		"errors", report.Errors,
		"duration", time.Since(startTime).String())
}
