package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/portnet-lab/caseflow/pkg/domain/interfaces"
	"github.com/portnet-lab/caseflow/pkg/domain/model"
	"github.com/portnet-lab/caseflow/pkg/domain/types"
	"github.com/portnet-lab/caseflow/pkg/utils/errutil"
)

// BulkReassign transfers ownership of many cases to one target agent.
// Tokens are free-form case references; the numeric portion resolves the
// case ID. Semantics are partial-success: unresolvable tokens land in
// NotFound and never abort the batch. A reassigned assignment is forced
// back to ASSIGNED with its timing fields cleared, so a re-owned record
// never keeps a stale DONE state.
func (uc *UseCases) BulkReassign(ctx context.Context, tokens []string, targetAgentID int64) (*model.BulkReassignResult, error) {
	result := &model.BulkReassignResult{NotFound: []string{}}

	target, err := uc.repo.Agent().Get(ctx, targetAgentID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			result.NotFound = append(result.NotFound, fmt.Sprintf("agent:%d", targetAgentID))
			return result, nil
		}
		return nil, goerr.Wrap(err, "failed to resolve target agent", goerr.V(AgentIDKey, targetAgentID))
	}

	for _, raw := range tokens {
		caseID, ok := parseCaseToken(raw)
		if !ok {
			result.NotFound = append(result.NotFound, raw)
			continue
		}

		c, err := uc.repo.Case().Get(ctx, caseID)
		if err != nil {
			if !errors.Is(err, interfaces.ErrNotFound) {
				errutil.Handle(ctx, err, "failed to resolve case for reassignment")
			}
			result.NotFound = append(result.NotFound, raw)
			continue
		}

		if err := uc.reassignCase(ctx, c, target); err != nil {
			errutil.Handle(ctx, err, "failed to reassign case")
			result.NotFound = append(result.NotFound, raw)
			continue
		}
		result.Updated++
	}

	return result, nil
}

func (uc *UseCases) reassignCase(ctx context.Context, c *model.Case, target *model.Agent) error {
	existing, err := uc.repo.Assignment().GetByCaseID(ctx, c.ID)
	if err != nil {
		return goerr.Wrap(err, "failed to check case assignment", goerr.V(CaseIDKey, c.ID))
	}

	if existing == nil {
		created, err := uc.repo.Assignment().Create(ctx, &model.Assignment{
			AgentID: target.ID,
			CaseID:  c.ID,
			Status:  types.AssignmentStatusAssigned,
		})
		if err != nil {
			if !errors.Is(err, interfaces.ErrCaseAlreadyAssigned) {
				return goerr.Wrap(err, "failed to create assignment", goerr.V(CaseIDKey, c.ID))
			}
			// A concurrent claim created it first; re-own that one.
			existing, err = uc.repo.Assignment().GetByCaseID(ctx, c.ID)
			if err != nil || existing == nil {
				return goerr.Wrap(err, "failed to reload conflicting assignment", goerr.V(CaseIDKey, c.ID))
			}
		} else {
			uc.journalDispatch(ctx, created, types.DispatchTriggerReassign, 0)
			return nil
		}
	}

	existing.AgentID = target.ID
	existing.Status = types.AssignmentStatusAssigned
	existing.StartedAt = nil
	existing.FinishedAt = nil

	updated, err := uc.repo.Assignment().Update(ctx, existing)
	if err != nil {
		return goerr.Wrap(err, "failed to re-own assignment", goerr.V(CaseIDKey, c.ID))
	}

	uc.journalDispatch(ctx, updated, types.DispatchTriggerReassign, 0)
	return nil
}

// parseCaseToken extracts the numeric portion of a free-form case token
// (e.g. "DOS-12" resolves to case 12).
func parseCaseToken(raw string) (int64, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0, false
	}

	id, err := strconv.ParseInt(b.String(), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
