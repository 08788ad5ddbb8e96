package interfaces

import (
	"context"

	"github.com/portnet-lab/caseflow/pkg/domain/model"
	"github.com/portnet-lab/caseflow/pkg/domain/types"
)

// AssignmentRepository defines the interface for the assignment ledger.
// The store enforces the at-most-one-assignment-per-case invariant: the
// check "does this case already have an assignment" and the insert are
// atomic as observed by all callers.
type AssignmentRepository interface {
	// Create creates a new assignment with auto-generated ID. When the
	// case already has an assignment, ErrCaseAlreadyAssigned is returned
	// and nothing is written.
	Create(ctx context.Context, a *model.Assignment) (*model.Assignment, error)

	// Get retrieves an assignment by ID
	Get(ctx context.Context, id int64) (*model.Assignment, error)

	// GetByCaseID retrieves the assignment bound to a case.
	// Returns nil, nil when the case has no assignment.
	GetByCaseID(ctx context.Context, caseID int64) (*model.Assignment, error)

	// ListByAgent retrieves the assignments of one agent filtered by
	// status, ordered by creation time ascending. An empty status list
	// means all statuses.
	ListByAgent(ctx context.Context, agentID int64, statuses []types.AssignmentStatus) ([]*model.Assignment, error)

	// CountActiveByAgent counts the agent's open assignments
	// (ASSIGNED or IN_PROGRESS)
	CountActiveByAgent(ctx context.Context, agentID int64) (int64, error)

	// Update persists status, owner and timestamp changes of an existing
	// assignment
	Update(ctx context.Context, a *model.Assignment) (*model.Assignment, error)
}
