package usecase

import (
	"context"
	"math"
	"time"

	"github.com/portnet-lab/caseflow/pkg/domain/model"
	"github.com/portnet-lab/caseflow/pkg/utils/logging"
)

// ScoreAgent computes the desirability score of one agent against the
// current ledger, activity and risk feed snapshot. Higher is better.
// Collaborator read failures degrade to neutral inputs (zero load, zero
// bonus, zero penalty) so a flaky feed never blocks dispatch.
func (uc *UseCases) ScoreAgent(ctx context.Context, agent *model.Agent) float64 {
	now := time.Now().UTC()

	var active float64
	if count, err := uc.repo.Assignment().CountActiveByAgent(ctx, agent.ID); err != nil {
		logging.From(ctx).Warn("active assignment count unavailable, scoring with zero load",
			"agentID", agent.ID, "error", err.Error())
	} else {
		active = float64(count)
	}
	availability := uc.policy.MaxAvailability - math.Min(uc.policy.MaxAvailability, active)

	var recencyBonus float64
	since := now.Add(-uc.policy.RecencyWindow)
	if recent, err := uc.repo.Activity().HasActivitySince(ctx, agent.ID, since); err != nil {
		logging.From(ctx).Warn("activity source unavailable, scoring without recency bonus",
			"agentID", agent.ID, "error", err.Error())
	} else if recent {
		recencyBonus = uc.policy.RecencyBonus
	}

	var riskPenalty float64
	events, err := uc.repo.Risk().ListByAgentSince(ctx, agent.ID, now.Add(-uc.policy.RiskWindow))
	if err != nil {
		logging.From(ctx).Warn("risk feed unavailable, scoring without risk penalty",
			"agentID", agent.ID, "error", err.Error())
	} else {
		for _, e := range events {
			riskPenalty += uc.policy.SeverityWeight(e.Severity)
		}
	}

	return availability + recencyBonus - riskPenalty
}

// pickBestAgent returns the activated agent with the maximum score, or
// nil when no agent is eligible. Ties resolve to the lowest agent ID so
// the selection is deterministic.
func (uc *UseCases) pickBestAgent(ctx context.Context) (*model.Agent, float64, error) {
	agents, err := uc.repo.Agent().ListActivated(ctx)
	if err != nil {
		logging.From(ctx).Warn("agent directory unavailable, no dispatch candidate",
			"error", err.Error())
		return nil, 0, nil
	}

	var best *model.Agent
	bestScore := math.Inf(-1)
	for _, agent := range agents {
		score := uc.ScoreAgent(ctx, agent)
		if score > bestScore || (score == bestScore && best != nil && agent.ID < best.ID) {
			best = agent
			bestScore = score
		}
	}

	if best == nil {
		return nil, 0, nil
	}
	return best, bestScore, nil
}

// hasRecentCriticalRisk reports whether the agent carries a CRITICAL risk
// event within the risk window. A disqualified agent is never handed new
// work. Feed failures degrade to "no events".
func (uc *UseCases) hasRecentCriticalRisk(ctx context.Context, agentID int64) bool {
	since := time.Now().UTC().Add(-uc.policy.RiskWindow)
	events, err := uc.repo.Risk().ListByAgentSince(ctx, agentID, since)
	if err != nil {
		logging.From(ctx).Warn("risk feed unavailable, skipping disqualification check",
			"agentID", agentID, "error", err.Error())
		return false
	}

	for _, e := range events {
		if e.Severity.IsCritical() {
			return true
		}
	}
	return false
}
