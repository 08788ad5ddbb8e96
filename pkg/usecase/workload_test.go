package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/portnet-lab/caseflow/pkg/domain/model"
	"github.com/portnet-lab/caseflow/pkg/domain/types"
	"github.com/portnet-lab/caseflow/pkg/repository/memory"
	"github.com/portnet-lab/caseflow/pkg/usecase"
)

func TestMeanMinutes(t *testing.T) {
	gt.Number(t, usecase.MeanMinutes(nil)).Equal(0)
	gt.Number(t, usecase.MeanMinutes([]int64{10, 20, 30})).Equal(20)
	gt.Number(t, usecase.MeanMinutes([]int64{10, 15})).Equal(13) // 12.5 rounds up
}

func TestMedianMinutes(t *testing.T) {
	gt.Number(t, usecase.MedianMinutes(nil)).Equal(0)
	gt.Number(t, usecase.MedianMinutes([]int64{10})).Equal(10)
	gt.Number(t, usecase.MedianMinutes([]int64{30, 10, 20})).Equal(20)
	gt.Number(t, usecase.MedianMinutes([]int64{40, 10, 30, 20})).Equal(25)
}

func mustFinishedAssignment(t *testing.T, repo *memory.Memory, agentID, caseID int64, createdAt time.Time, minutes int) {
	t.Helper()
	ctx := context.Background()

	started := createdAt.Add(time.Minute)
	finished := started.Add(time.Duration(minutes) * time.Minute)
	a, err := repo.Assignment().Create(ctx, &model.Assignment{
		AgentID:   agentID,
		CaseID:    caseID,
		Status:    types.AssignmentStatusAssigned,
		CreatedAt: createdAt,
	})
	gt.NoError(t, err).Required()

	a.Status = types.AssignmentStatusDone
	a.StartedAt = &started
	a.FinishedAt = &finished
	_, err = repo.Assignment().Update(ctx, a)
	gt.NoError(t, err).Required()
}

func TestComputeWorkload(t *testing.T) {
	ctx := context.Background()

	t.Run("aggregates per-agent statistics", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		agent := mustAgent(t, repo, "stats", true)
		now := time.Now().UTC()

		mustFinishedAssignment(t, repo, agent.ID, 1, now.Add(-3*time.Hour), 10)
		mustFinishedAssignment(t, repo, agent.ID, 2, now.Add(-2*time.Hour), 20)
		mustFinishedAssignment(t, repo, agent.ID, 3, now.Add(-time.Hour), 30)

		// One still in flight
		_, err := repo.Assignment().Create(ctx, &model.Assignment{
			AgentID:   agent.ID,
			CaseID:    4,
			Status:    types.AssignmentStatusInProgress,
			CreatedAt: now.Add(-time.Hour),
		})
		gt.NoError(t, err).Required()

		stats, err := uc.ComputeWorkload(ctx, "", now.AddDate(0, 0, -1), now)
		gt.NoError(t, err).Required()
		gt.Array(t, stats).Length(1)

		w := stats[0]
		gt.Value(t, w.AgentID).Equal(agent.ID)
		gt.Value(t, w.AgentName).Equal("stats")
		gt.Number(t, w.Total).Equal(4)
		gt.Number(t, w.InProgress).Equal(1)
		gt.Number(t, w.Overdue).Equal(0)
		gt.Number(t, w.AvgDurationMin).Equal(20)
		gt.Number(t, w.MedianDurationMin).Equal(20)
		gt.Number(t, w.Throughput).Equal(3)
	})

	t.Run("even sample count uses mid-pair median", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		agent := mustAgent(t, repo, "even", true)
		now := time.Now().UTC()

		for i, minutes := range []int{10, 20, 30, 40} {
			mustFinishedAssignment(t, repo, agent.ID, int64(i+1), now.Add(-time.Duration(i+1)*time.Hour), minutes)
		}

		stats, err := uc.ComputeWorkload(ctx, "", now.AddDate(0, 0, -1), now)
		gt.NoError(t, err).Required()
		gt.Array(t, stats).Length(1)
		gt.Number(t, stats[0].MedianDurationMin).Equal(25)
	})

	t.Run("assignments outside the window are excluded", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		agent := mustAgent(t, repo, "windowed", true)
		now := time.Now().UTC()

		mustFinishedAssignment(t, repo, agent.ID, 1, now, 10)
		mustFinishedAssignment(t, repo, agent.ID, 2, now.AddDate(0, 0, -10), 60)

		stats, err := uc.ComputeWorkload(ctx, "", now, now)
		gt.NoError(t, err).Required()
		gt.Array(t, stats).Length(1)
		gt.Number(t, stats[0].Total).Equal(1)
		gt.Number(t, stats[0].AvgDurationMin).Equal(10)
	})

	t.Run("stale open assignments count as overdue", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		agent := mustAgent(t, repo, "late", true)
		now := time.Now().UTC()

		_, err := repo.Assignment().Create(ctx, &model.Assignment{
			AgentID:   agent.ID,
			CaseID:    1,
			Status:    types.AssignmentStatusAssigned,
			CreatedAt: now.AddDate(0, 0, -3),
		})
		gt.NoError(t, err).Required()

		stats, err := uc.ComputeWorkload(ctx, "", now.AddDate(0, 0, -5), now)
		gt.NoError(t, err).Required()
		gt.Array(t, stats).Length(1)
		gt.Number(t, stats[0].Total).Equal(1)
		gt.Number(t, stats[0].Overdue).Equal(1)
	})

	t.Run("query filters agents by name or email", func(t *testing.T) {
		repo := memory.New()
		uc := usecase.New(repo)

		_ = mustAgent(t, repo, "alice", true)
		_ = mustAgent(t, repo, "bob", true)

		stats, err := uc.ComputeWorkload(ctx, "ALICE", time.Time{}, time.Time{})
		gt.NoError(t, err).Required()
		gt.Array(t, stats).Length(1)
		gt.Value(t, stats[0].AgentName).Equal("alice")

		stats, err = uc.ComputeWorkload(ctx, "bob@example.com", time.Time{}, time.Time{})
		gt.NoError(t, err).Required()
		gt.Array(t, stats).Length(1)
		gt.Value(t, stats[0].AgentName).Equal("bob")

		stats, err = uc.ComputeWorkload(ctx, "nobody", time.Time{}, time.Time{})
		gt.NoError(t, err).Required()
		gt.Array(t, stats).Length(0)
	})
}
