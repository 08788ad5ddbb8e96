package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/portnet-lab/caseflow/pkg/domain/interfaces"
	"github.com/portnet-lab/caseflow/pkg/domain/model"
	"github.com/portnet-lab/caseflow/pkg/domain/types"
	"github.com/portnet-lab/caseflow/pkg/repository/memory"
	"github.com/portnet-lab/caseflow/pkg/usecase"
)

func mustAgent(t *testing.T, repo interfaces.Repository, name string, activated bool) *model.Agent {
	t.Helper()
	agent, err := repo.Agent().Create(context.Background(), &model.Agent{
		Name:      name,
		Email:     name + "@example.com",
		Activated: activated,
	})
	gt.NoError(t, err).Required()
	return agent
}

func mustCase(t *testing.T, repo interfaces.Repository, reference string, createdAt time.Time) *model.Case {
	t.Helper()
	c, err := repo.Case().Create(context.Background(), &model.Case{
		Reference: reference,
		CreatedAt: createdAt,
	})
	gt.NoError(t, err).Required()
	return c
}

func TestScoreAgent(t *testing.T) {
	ctx := context.Background()

	t.Run("idle agent scores the availability cap", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		agent := mustAgent(t, repo, "idle", true)

		gt.Value(t, uc.ScoreAgent(ctx, agent)).Equal(10.0)
	})

	t.Run("open assignments reduce availability", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		agent := mustAgent(t, repo, "busy", true)

		for i := 0; i < 3; i++ {
			_, err := repo.Assignment().Create(ctx, &model.Assignment{
				AgentID: agent.ID,
				CaseID:  int64(i + 1),
				Status:  types.AssignmentStatusAssigned,
			})
			gt.NoError(t, err).Required()
		}

		gt.Value(t, uc.ScoreAgent(ctx, agent)).Equal(7.0)
	})

	t.Run("availability floors at zero under heavy load", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		agent := mustAgent(t, repo, "overloaded", true)

		for i := 0; i < 15; i++ {
			_, err := repo.Assignment().Create(ctx, &model.Assignment{
				AgentID: agent.ID,
				CaseID:  int64(i + 1),
				Status:  types.AssignmentStatusInProgress,
			})
			gt.NoError(t, err).Required()
		}

		gt.Value(t, uc.ScoreAgent(ctx, agent)).Equal(0.0)
	})

	t.Run("terminal assignments do not count as load", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		agent := mustAgent(t, repo, "finished", true)

		_, err := repo.Assignment().Create(ctx, &model.Assignment{
			AgentID: agent.ID,
			CaseID:  1,
			Status:  types.AssignmentStatusDone,
		})
		gt.NoError(t, err).Required()

		gt.Value(t, uc.ScoreAgent(ctx, agent)).Equal(10.0)
	})

	t.Run("recent activity earns the recency bonus", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		agent := mustAgent(t, repo, "active", true)

		gt.NoError(t, repo.Activity().Record(ctx, &model.ActivityMark{
			AgentID:   agent.ID,
			Timestamp: time.Now().UTC().Add(-10 * time.Minute),
		}))

		gt.Value(t, uc.ScoreAgent(ctx, agent)).Equal(12.0)
	})

	t.Run("stale activity earns no bonus", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		agent := mustAgent(t, repo, "stale", true)

		gt.NoError(t, repo.Activity().Record(ctx, &model.ActivityMark{
			AgentID:   agent.ID,
			Timestamp: time.Now().UTC().Add(-2 * time.Hour),
		}))

		gt.Value(t, uc.ScoreAgent(ctx, agent)).Equal(10.0)
	})

	t.Run("risk events inside the window weigh against the score", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		agent := mustAgent(t, repo, "risky", true)

		now := time.Now().UTC()
		for _, sev := range []types.Severity{
			types.SeverityCritical, // 3.0
			types.SeverityHigh,     // 2.0
			types.SeverityLow,      // 0.5
		} {
			_, err := repo.Risk().Create(ctx, &model.RiskEvent{
				AgentID:    agent.ID,
				Severity:   sev,
				DetectedAt: now.Add(-time.Hour),
			})
			gt.NoError(t, err).Required()
		}

		gt.Value(t, uc.ScoreAgent(ctx, agent)).Equal(4.5)
	})

	t.Run("risk events outside the window are ignored", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)
		agent := mustAgent(t, repo, "reformed", true)

		_, err := repo.Risk().Create(ctx, &model.RiskEvent{
			AgentID:    agent.ID,
			Severity:   types.SeverityCritical,
			DetectedAt: time.Now().UTC().Add(-4 * time.Hour),
		})
		gt.NoError(t, err).Required()

		gt.Value(t, uc.ScoreAgent(ctx, agent)).Equal(10.0)
	})

	t.Run("failing scoring inputs degrade to neutral", func(t *testing.T) {
		repo := &faultyScoringRepo{Repository: memory.New()}
		uc := usecase.New(repo)
		agent := mustAgent(t, repo, "degraded", true)

		// Activity and risk feeds are down; availability still counts.
		gt.Value(t, uc.ScoreAgent(ctx, agent)).Equal(10.0)
	})
}

func TestPickBestAgent(t *testing.T) {
	ctx := context.Background()

	t.Run("highest score wins", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		loaded := mustAgent(t, repo, "loaded", true)
		idle := mustAgent(t, repo, "idle", true)

		_, err := repo.Assignment().Create(ctx, &model.Assignment{
			AgentID: loaded.ID,
			CaseID:  1,
			Status:  types.AssignmentStatusAssigned,
		})
		gt.NoError(t, err).Required()

		best, score, err := usecase.PickBestAgent(uc, ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, best).NotNil()
		gt.Value(t, best.ID).Equal(idle.ID)
		gt.Value(t, score).Equal(10.0)
	})

	t.Run("ties resolve to the lowest agent ID", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		first := mustAgent(t, repo, "first", true)
		_ = mustAgent(t, repo, "second", true)

		best, _, err := usecase.PickBestAgent(uc, ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, best).NotNil()
		gt.Value(t, best.ID).Equal(first.ID)
	})

	t.Run("deactivated agents are not candidates", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		_ = mustAgent(t, repo, "dormant", false)

		best, _, err := usecase.PickBestAgent(uc, ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, best).Nil()
	})
}

func TestHasRecentCriticalRisk(t *testing.T) {
	ctx := context.Background()

	repo := memory.New()
	uc := usecase.New(repo)

	now := time.Now().UTC()
	flagged := mustAgent(t, repo, "flagged", true)
	_, err := repo.Risk().Create(ctx, &model.RiskEvent{
		AgentID:    flagged.ID,
		Severity:   types.SeverityCritical,
		DetectedAt: now.Add(-time.Hour),
	})
	gt.NoError(t, err).Required()

	clean := mustAgent(t, repo, "clean", true)
	_, err = repo.Risk().Create(ctx, &model.RiskEvent{
		AgentID:    clean.ID,
		Severity:   types.SeverityHigh,
		DetectedAt: now.Add(-time.Hour),
	})
	gt.NoError(t, err).Required()

	gt.Bool(t, usecase.HasRecentCriticalRisk(uc, ctx, flagged.ID)).True()
	gt.Bool(t, usecase.HasRecentCriticalRisk(uc, ctx, clean.ID)).False()
}

// faultyScoringRepo simulates unreachable activity and risk feeds
type faultyScoringRepo struct {
	interfaces.Repository
}

func (r *faultyScoringRepo) Risk() interfaces.RiskRepository {
	return &faultyRiskRepo{}
}

func (r *faultyScoringRepo) Activity() interfaces.ActivityRepository {
	return &faultyActivityRepo{}
}

type faultyRiskRepo struct{}

func (r *faultyRiskRepo) Create(ctx context.Context, event *model.RiskEvent) (*model.RiskEvent, error) {
	return nil, goerr.New("risk feed unavailable")
}

func (r *faultyRiskRepo) ListByAgentSince(ctx context.Context, agentID int64, since time.Time) ([]*model.RiskEvent, error) {
	return nil, goerr.New("risk feed unavailable")
}

type faultyActivityRepo struct{}

func (r *faultyActivityRepo) Record(ctx context.Context, mark *model.ActivityMark) error {
	return goerr.New("activity source unavailable")
}

func (r *faultyActivityRepo) HasActivitySince(ctx context.Context, agentID int64, since time.Time) (bool, error) {
	return false, goerr.New("activity source unavailable")
}
