package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/portnet-lab/caseflow/pkg/domain/interfaces"
	"github.com/portnet-lab/caseflow/pkg/domain/model"
	"github.com/portnet-lab/caseflow/pkg/domain/types"
)

func runRiskRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("ListByAgentSince returns only events inside the window", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		now := time.Now().UTC()

		recent, err := repo.Risk().Create(ctx, &model.RiskEvent{
			AgentID:    1,
			Severity:   types.SeverityHigh,
			DetectedAt: now.Add(-time.Hour),
		})
		gt.NoError(t, err).Required()
		gt.Value(t, recent.ID).NotEqual(int64(0))

		_, err = repo.Risk().Create(ctx, &model.RiskEvent{
			AgentID:    1,
			Severity:   types.SeverityCritical,
			DetectedAt: now.Add(-5 * time.Hour),
		})
		gt.NoError(t, err).Required()

		_, err = repo.Risk().Create(ctx, &model.RiskEvent{
			AgentID:    2,
			Severity:   types.SeverityMedium,
			DetectedAt: now.Add(-time.Minute),
		})
		gt.NoError(t, err).Required()

		events, err := repo.Risk().ListByAgentSince(ctx, 1, now.Add(-3*time.Hour))
		gt.NoError(t, err).Required()
		gt.Array(t, events).Length(1)
		gt.Value(t, events[0].Severity).Equal(types.SeverityHigh)
	})

	t.Run("ListByAgentSince is empty for clean agent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		events, err := repo.Risk().ListByAgentSince(ctx, 42, time.Now().UTC().Add(-time.Hour))
		gt.NoError(t, err).Required()
		gt.Array(t, events).Length(0)
	})
}

func runActivityRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("HasActivitySince sees a recent mark", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		now := time.Now().UTC()
		gt.NoError(t, repo.Activity().Record(ctx, &model.ActivityMark{
			AgentID:   1,
			Timestamp: now.Add(-10 * time.Minute),
		}))

		got, err := repo.Activity().HasActivitySince(ctx, 1, now.Add(-time.Hour))
		gt.NoError(t, err).Required()
		gt.Bool(t, got).True()
	})

	t.Run("HasActivitySince ignores stale marks", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		now := time.Now().UTC()
		gt.NoError(t, repo.Activity().Record(ctx, &model.ActivityMark{
			AgentID:   2,
			Timestamp: now.Add(-3 * time.Hour),
		}))

		got, err := repo.Activity().HasActivitySince(ctx, 2, now.Add(-time.Hour))
		gt.NoError(t, err).Required()
		gt.Bool(t, got).False()
	})

	t.Run("HasActivitySince is false for silent agent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		got, err := repo.Activity().HasActivitySince(ctx, 99, time.Now().UTC().Add(-time.Hour))
		gt.NoError(t, err).Required()
		gt.Bool(t, got).False()
	})
}

func TestRiskRepository_Memory(t *testing.T) {
	runRiskRepositoryTest(t, newMemoryRepo)
}

func TestRiskRepository_Firestore(t *testing.T) {
	runRiskRepositoryTest(t, newFirestoreRepo)
}

func TestActivityRepository_Memory(t *testing.T) {
	runActivityRepositoryTest(t, newMemoryRepo)
}

func TestActivityRepository_Firestore(t *testing.T) {
	runActivityRepositoryTest(t, newFirestoreRepo)
}
