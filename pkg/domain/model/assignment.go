package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/portnet-lab/caseflow/pkg/domain/types"
)

// Assignment binds exactly one case to one agent. A case has at most one
// assignment at any time; the repository enforces the uniqueness.
type Assignment struct {
	ID         int64
	AgentID    int64
	CaseID     int64
	Status     types.AssignmentStatus
	CreatedAt  time.Time
	StartedAt  *time.Time
	FinishedAt *time.Time
}

// Start transitions the assignment from ASSIGNED to IN_PROGRESS and
// stamps StartedAt.
func (a *Assignment) Start(now time.Time) error {
	if a.Status != types.AssignmentStatusAssigned {
		return goerr.New("assignment cannot be started",
			goerr.V("id", a.ID), goerr.V("status", a.Status))
	}
	a.Status = types.AssignmentStatusInProgress
	a.StartedAt = &now
	return nil
}

// Finish transitions the assignment to DONE and stamps FinishedAt.
func (a *Assignment) Finish(now time.Time) error {
	if a.Status != types.AssignmentStatusInProgress {
		return goerr.New("assignment cannot be finished",
			goerr.V("id", a.ID), goerr.V("status", a.Status))
	}
	a.Status = types.AssignmentStatusDone
	a.FinishedAt = &now
	return nil
}

// Cancel transitions an open assignment to CANCELLED and stamps FinishedAt.
func (a *Assignment) Cancel(now time.Time) error {
	if !a.Status.IsOpen() {
		return goerr.New("assignment cannot be cancelled",
			goerr.V("id", a.ID), goerr.V("status", a.Status))
	}
	a.Status = types.AssignmentStatusCancelled
	a.FinishedAt = &now
	return nil
}

// Duration returns the handling duration of a finished assignment, measured
// from StartedAt (or CreatedAt when it was never started) to FinishedAt.
// The second return value is false while the assignment is not finished.
func (a *Assignment) Duration() (time.Duration, bool) {
	if a.FinishedAt == nil {
		return 0, false
	}
	start := a.CreatedAt
	if a.StartedAt != nil {
		start = *a.StartedAt
	}
	return a.FinishedAt.Sub(start), true
}
