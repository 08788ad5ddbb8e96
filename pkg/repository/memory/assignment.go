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

// assignmentRepository indexes assignments by case ID so the
// check-then-insert of Create is atomic under the mutex: two claimers
// racing on one case observe exactly one winner.
type assignmentRepository struct {
	mu     sync.RWMutex
	byID   map[int64]*model.Assignment
	byCase map[int64]*model.Assignment
	nextID int64
}

func newAssignmentRepository() *assignmentRepository {
	return &assignmentRepository{
		byID:   make(map[int64]*model.Assignment),
		byCase: make(map[int64]*model.Assignment),
		nextID: 1,
	}
}

func copyAssignment(a *model.Assignment) *model.Assignment {
	copied := *a
	if a.StartedAt != nil {
		t := *a.StartedAt
		copied.StartedAt = &t
	}
	if a.FinishedAt != nil {
		t := *a.FinishedAt
		copied.FinishedAt = &t
	}
	return &copied
}

func (r *assignmentRepository) Create(ctx context.Context, a *model.Assignment) (*model.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byCase[a.CaseID]; exists {
		return nil, goerr.Wrap(interfaces.ErrCaseAlreadyAssigned, "assignment already exists for case",
			goerr.V("caseID", a.CaseID))
	}

	created := copyAssignment(a)
	created.ID = r.nextID
	r.nextID++
	if created.Status == "" {
		created.Status = types.AssignmentStatusAssigned
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.byID[created.ID] = created
	r.byCase[created.CaseID] = created
	return copyAssignment(created), nil
}

func (r *assignmentRepository) Get(ctx context.Context, id int64) (*model.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, exists := r.byID[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "assignment not found", goerr.V("id", id))
	}
	return copyAssignment(a), nil
}

func (r *assignmentRepository) GetByCaseID(ctx context.Context, caseID int64) (*model.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, exists := r.byCase[caseID]
	if !exists {
		return nil, nil
	}
	return copyAssignment(a), nil
}

func (r *assignmentRepository) ListByAgent(ctx context.Context, agentID int64, statuses []types.AssignmentStatus) ([]*model.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[types.AssignmentStatus]bool, len(statuses))
	for _, s := range statuses {
		wanted[s] = true
	}

	result := make([]*model.Assignment, 0)
	for _, a := range r.byID {
		if a.AgentID != agentID {
			continue
		}
		if len(wanted) > 0 && !wanted[a.Status] {
			continue
		}
		result = append(result, copyAssignment(a))
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})

	return result, nil
}

func (r *assignmentRepository) CountActiveByAgent(ctx context.Context, agentID int64) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, a := range r.byID {
		if a.AgentID == agentID && a.Status.IsOpen() {
			count++
		}
	}
	return count, nil
}

func (r *assignmentRepository) Update(ctx context.Context, a *model.Assignment) (*model.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.byID[a.ID]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "assignment not found", goerr.V("id", a.ID))
	}
	if existing.CaseID != a.CaseID {
		return nil, goerr.New("assignment case reference is immutable",
			goerr.V("id", a.ID), goerr.V("caseID", existing.CaseID))
	}

	updated := copyAssignment(a)
	updated.CreatedAt = existing.CreatedAt
	r.byID[updated.ID] = updated
	r.byCase[updated.CaseID] = updated
	return copyAssignment(updated), nil
}
