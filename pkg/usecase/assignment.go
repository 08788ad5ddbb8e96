package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/portnet-lab/caseflow/pkg/domain/interfaces"
	"github.com/portnet-lab/caseflow/pkg/domain/model"
	"github.com/portnet-lab/caseflow/pkg/domain/types"
)

// MyAssignments returns the agent's open assignments, oldest first. It
// never hands out new work; claiming goes through PullForAgent.
func (uc *UseCases) MyAssignments(ctx context.Context, agentID int64) ([]*model.Assignment, error) {
	if _, err := uc.repo.Agent().Get(ctx, agentID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrAgentNotFound, "cannot list tasks for unknown agent",
				goerr.V(AgentIDKey, agentID))
		}
		return nil, goerr.Wrap(err, "failed to resolve agent", goerr.V(AgentIDKey, agentID))
	}

	mine, err := uc.repo.Assignment().ListByAgent(ctx, agentID, types.OpenAssignmentStatuses())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list open assignments", goerr.V(AgentIDKey, agentID))
	}
	return mine, nil
}

// StartAssignment transitions an assignment to IN_PROGRESS. Called by
// collaborators when the agent picks up the case.
func (uc *UseCases) StartAssignment(ctx context.Context, id int64) (*model.Assignment, error) {
	return uc.transition(ctx, id, func(a *model.Assignment, now time.Time) error {
		return a.Start(now)
	})
}

// FinishAssignment transitions an assignment to DONE.
func (uc *UseCases) FinishAssignment(ctx context.Context, id int64) (*model.Assignment, error) {
	return uc.transition(ctx, id, func(a *model.Assignment, now time.Time) error {
		return a.Finish(now)
	})
}

// CancelAssignment transitions an open assignment to CANCELLED.
func (uc *UseCases) CancelAssignment(ctx context.Context, id int64) (*model.Assignment, error) {
	return uc.transition(ctx, id, func(a *model.Assignment, now time.Time) error {
		return a.Cancel(now)
	})
}

func (uc *UseCases) transition(ctx context.Context, id int64, apply func(*model.Assignment, time.Time) error) (*model.Assignment, error) {
	a, err := uc.repo.Assignment().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrAssignmentNotFound, "assignment does not exist",
				goerr.V(AssignmentIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to load assignment", goerr.V(AssignmentIDKey, id))
	}

	if err := apply(a, time.Now().UTC()); err != nil {
		return nil, err
	}

	updated, err := uc.repo.Assignment().Update(ctx, a)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to persist assignment transition",
			goerr.V(AssignmentIDKey, id))
	}
	return updated, nil
}
