package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/portnet-lab/caseflow/pkg/domain/interfaces"
	"github.com/portnet-lab/caseflow/pkg/domain/model"
	"github.com/portnet-lab/caseflow/pkg/domain/types"
	"github.com/portnet-lab/caseflow/pkg/utils/logging"
)

// PullForAgent serves an agent asking for work. When the agent already
// owns an open assignment, the oldest one is returned unchanged. A fresh
// claim is refused while the agent carries a recent CRITICAL risk event.
// Returns nil, nil when there is nothing to hand out.
func (uc *UseCases) PullForAgent(ctx context.Context, agentID int64) (*model.Assignment, error) {
	agent, err := uc.repo.Agent().Get(ctx, agentID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrAgentNotFound, "cannot pull for unknown agent",
				goerr.V(AgentIDKey, agentID))
		}
		return nil, goerr.Wrap(err, "failed to resolve agent", goerr.V(AgentIDKey, agentID))
	}

	mine, err := uc.repo.Assignment().ListByAgent(ctx, agentID, types.OpenAssignmentStatuses())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list open assignments", goerr.V(AgentIDKey, agentID))
	}
	if len(mine) > 0 {
		return mine[0], nil
	}

	if uc.hasRecentCriticalRisk(ctx, agentID) {
		logging.From(ctx).Info("agent disqualified from pull dispatch",
			"agentID", agentID)
		return nil, nil
	}

	return uc.claimOldestPending(ctx, agent, types.DispatchTriggerPull, 0)
}

// PushBestForOldestPending dispatches the oldest unassigned pending case
// to the best scoring eligible agent. Returns nil, nil when no pending
// case is unassigned or no agent is eligible.
func (uc *UseCases) PushBestForOldestPending(ctx context.Context) (*model.Assignment, error) {
	pending, err := uc.repo.Case().ListPendingOldestFirst(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list pending cases")
	}

	for _, c := range pending {
		existing, err := uc.repo.Assignment().GetByCaseID(ctx, c.ID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to check case assignment", goerr.V(CaseIDKey, c.ID))
		}
		if existing != nil {
			continue
		}

		best, score, err := uc.pickBestAgent(ctx)
		if err != nil {
			return nil, err
		}
		if best == nil {
			return nil, nil
		}

		created, err := uc.repo.Assignment().Create(ctx, &model.Assignment{
			AgentID: best.ID,
			CaseID:  c.ID,
			Status:  types.AssignmentStatusAssigned,
		})
		if err != nil {
			// Lost the race on this case: pick the next pending one.
			if errors.Is(err, interfaces.ErrCaseAlreadyAssigned) {
				continue
			}
			return nil, goerr.Wrap(err, "failed to create assignment", goerr.V(CaseIDKey, c.ID))
		}

		uc.journalDispatch(ctx, created, types.DispatchTriggerPush, score)
		return created, nil
	}

	return nil, nil
}

// AutoAssignOnPending attempts a best-agent binding for one case that just
// became pending. The call is idempotent: a case that is no longer
// pending, already assigned, or claimed by a concurrent dispatcher is
// silently left alone.
func (uc *UseCases) AutoAssignOnPending(ctx context.Context, caseID int64) error {
	c, err := uc.repo.Case().Get(ctx, caseID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return goerr.Wrap(ErrCaseNotFound, "cannot auto-assign unknown case",
				goerr.V(CaseIDKey, caseID))
		}
		return goerr.Wrap(err, "failed to resolve case", goerr.V(CaseIDKey, caseID))
	}
	if c.Status != types.CaseStatusPending {
		return nil
	}

	existing, err := uc.repo.Assignment().GetByCaseID(ctx, c.ID)
	if err != nil {
		return goerr.Wrap(err, "failed to check case assignment", goerr.V(CaseIDKey, c.ID))
	}
	if existing != nil {
		return nil
	}

	best, score, err := uc.pickBestAgent(ctx)
	if err != nil {
		return err
	}
	if best == nil {
		return nil
	}

	created, err := uc.repo.Assignment().Create(ctx, &model.Assignment{
		AgentID: best.ID,
		CaseID:  c.ID,
		Status:  types.AssignmentStatusAssigned,
	})
	if err != nil {
		if errors.Is(err, interfaces.ErrCaseAlreadyAssigned) {
			return nil
		}
		return goerr.Wrap(err, "failed to create assignment", goerr.V(CaseIDKey, c.ID))
	}

	uc.journalDispatch(ctx, created, types.DispatchTriggerAuto, score)
	return nil
}

// claimOldestPending scans pending cases oldest-first and binds the first
// unassigned one to the given agent, retrying the scan when a concurrent
// claim wins a case.
func (uc *UseCases) claimOldestPending(ctx context.Context, agent *model.Agent, trigger types.DispatchTrigger, score float64) (*model.Assignment, error) {
	pending, err := uc.repo.Case().ListPendingOldestFirst(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list pending cases")
	}

	for _, c := range pending {
		existing, err := uc.repo.Assignment().GetByCaseID(ctx, c.ID)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to check case assignment", goerr.V(CaseIDKey, c.ID))
		}
		if existing != nil {
			continue
		}

		created, err := uc.repo.Assignment().Create(ctx, &model.Assignment{
			AgentID: agent.ID,
			CaseID:  c.ID,
			Status:  types.AssignmentStatusAssigned,
		})
		if err != nil {
			if errors.Is(err, interfaces.ErrCaseAlreadyAssigned) {
				continue
			}
			return nil, goerr.Wrap(err, "failed to create assignment",
				goerr.V(CaseIDKey, c.ID), goerr.V(AgentIDKey, agent.ID))
		}

		uc.journalDispatch(ctx, created, trigger, score)
		return created, nil
	}

	return nil, nil
}

// journalDispatch records an assignment decision in the dispatch journal.
// The journal is best-effort: a write failure is logged, never surfaced.
func (uc *UseCases) journalDispatch(ctx context.Context, a *model.Assignment, trigger types.DispatchTrigger, score float64) {
	entry := &model.DispatchLog{
		CaseID:       a.CaseID,
		AgentID:      a.AgentID,
		AssignmentID: a.ID,
		Trigger:      trigger,
		Score:        score,
	}
	if err := uc.repo.Journal().Append(ctx, entry); err != nil {
		logging.From(ctx).Warn("failed to append dispatch journal entry",
			"caseID", a.CaseID, "agentID", a.AgentID, "error", err.Error())
	}
}

// DispatchJournal returns the most recent dispatch decisions, newest
// first.
func (uc *UseCases) DispatchJournal(ctx context.Context, limit int) ([]*model.DispatchLog, error) {
	entries, err := uc.repo.Journal().List(ctx, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list dispatch journal")
	}
	return entries, nil
}
