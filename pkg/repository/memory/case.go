package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/portnet-lab/caseflow/pkg/domain/interfaces"
	"github.com/portnet-lab/caseflow/pkg/domain/model"
	"github.com/portnet-lab/caseflow/pkg/domain/types"
)

type caseRepository struct {
	mu     sync.RWMutex
	cases  map[int64]*model.Case
	nextID int64
}

func newCaseRepository() *caseRepository {
	return &caseRepository{
		cases:  make(map[int64]*model.Case),
		nextID: 1,
	}
}

func copyCase(c *model.Case) *model.Case {
	copied := *c
	return &copied
}

func (r *caseRepository) Create(ctx context.Context, c *model.Case) (*model.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyCase(c)
	created.ID = r.nextID
	r.nextID++
	created.Status = created.Status.Normalize()
	if !created.Status.IsValid() {
		return nil, goerr.New("invalid case status", goerr.V("status", created.Status))
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.cases[created.ID] = created
	return copyCase(created), nil
}

func (r *caseRepository) Get(ctx context.Context, id int64) (*model.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.cases[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "case not found", goerr.V("id", id))
	}
	return copyCase(c), nil
}

func (r *caseRepository) ListPendingOldestFirst(ctx context.Context) ([]*model.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Case, 0)
	for _, c := range r.cases {
		if c.Status == types.CaseStatusPending {
			result = append(result, copyCase(c))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

func (r *caseRepository) UpdateStatus(ctx context.Context, id int64, status types.CaseStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !status.IsValid() {
		return goerr.New("invalid case status", goerr.V("status", status))
	}

	c, exists := r.cases[id]
	if !exists {
		return goerr.Wrap(interfaces.ErrNotFound, "case not found", goerr.V("id", id))
	}

	c.Status = status
	return nil
}
