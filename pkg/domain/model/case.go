package model

import (
	"time"

	"github.com/portnet-lab/caseflow/pkg/domain/types"
)

// Case represents a unit of pending work (an import/export request)
// waiting to be handled by an agent. The assignment engine only reads
// cases; status transitions are driven elsewhere.
type Case struct {
	ID        int64
	Reference string
	Status    types.CaseStatus
	CreatedAt time.Time
}
