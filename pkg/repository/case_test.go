package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/portnet-lab/caseflow/pkg/domain/interfaces"
	"github.com/portnet-lab/caseflow/pkg/domain/model"
	"github.com/portnet-lab/caseflow/pkg/domain/types"
)

func runCaseRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create defaults empty status to pending", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Case().Create(ctx, &model.Case{
			Reference: "DOS-2026-0001",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID).NotEqual(int64(0))
		gt.Value(t, created.Status).Equal(types.CaseStatusPending)
		gt.Bool(t, created.CreatedAt.IsZero()).False()
	})

	t.Run("Create rejects invalid status", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Case().Create(ctx, &model.Case{
			Reference: "DOS-2026-0002",
			Status:    types.CaseStatus("OPEN"),
		})
		gt.Value(t, err).NotNil()
	})

	t.Run("Get returns ErrNotFound for unknown case", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Case().Get(ctx, time.Now().UnixNano())
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("ListPendingOldestFirst orders by creation time", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		now := time.Now().UTC()
		newer, err := repo.Case().Create(ctx, &model.Case{
			Reference: "DOS-NEWER",
			CreatedAt: now,
		})
		gt.NoError(t, err).Required()

		older, err := repo.Case().Create(ctx, &model.Case{
			Reference: "DOS-OLDER",
			CreatedAt: now.Add(-time.Hour),
		})
		gt.NoError(t, err).Required()

		pending, err := repo.Case().ListPendingOldestFirst(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, pending).Length(2)
		gt.Value(t, pending[0].ID).Equal(older.ID)
		gt.Value(t, pending[1].ID).Equal(newer.ID)
	})

	t.Run("ListPendingOldestFirst excludes non-pending cases", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		pending, err := repo.Case().Create(ctx, &model.Case{Reference: "DOS-P"})
		gt.NoError(t, err).Required()

		accepted, err := repo.Case().Create(ctx, &model.Case{Reference: "DOS-A"})
		gt.NoError(t, err).Required()
		gt.NoError(t, repo.Case().UpdateStatus(ctx, accepted.ID, types.CaseStatusAccepted))

		got, err := repo.Case().ListPendingOldestFirst(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, got).Length(1)
		gt.Value(t, got[0].ID).Equal(pending.ID)
	})

	t.Run("UpdateStatus transitions case", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Case().Create(ctx, &model.Case{Reference: "DOS-U"})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Case().UpdateStatus(ctx, created.ID, types.CaseStatusRefused))

		retrieved, err := repo.Case().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.Status).Equal(types.CaseStatusRefused)
	})

	t.Run("UpdateStatus fails for unknown case", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		err := repo.Case().UpdateStatus(ctx, time.Now().UnixNano(), types.CaseStatusCancelled)
		gt.Value(t, err).NotNil()
	})
}

func TestCaseRepository_Memory(t *testing.T) {
	runCaseRepositoryTest(t, newMemoryRepo)
}

func TestCaseRepository_Firestore(t *testing.T) {
	runCaseRepositoryTest(t, newFirestoreRepo)
}
