package interfaces

import (
	"context"

	"github.com/portnet-lab/caseflow/pkg/domain/model"
	"github.com/portnet-lab/caseflow/pkg/domain/types"
)

// CaseRepository defines the interface for Case data access
type CaseRepository interface {
	// Create creates a new case with auto-generated ID. An empty status
	// defaults to PENDING.
	Create(ctx context.Context, c *model.Case) (*model.Case, error)

	// Get retrieves a case by ID
	Get(ctx context.Context, id int64) (*model.Case, error)

	// ListPendingOldestFirst retrieves pending cases ordered by creation
	// time, oldest first
	ListPendingOldestFirst(ctx context.Context) ([]*model.Case, error)

	// UpdateStatus transitions the status of an existing case
	UpdateStatus(ctx context.Context, id int64, status types.CaseStatus) error
}
