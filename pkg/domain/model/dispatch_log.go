package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/portnet-lab/caseflow/pkg/domain/types"
)

// DispatchLogID is a unique identifier for a dispatch journal entry
type DispatchLogID string

// NewDispatchLogID generates a new random dispatch log ID
func NewDispatchLogID() DispatchLogID {
	return DispatchLogID(uuid.NewString())
}

// DispatchLog is a journal entry recording one assignment decision:
// which case went to which agent, through which flow, and with what
// winning score.
type DispatchLog struct {
	ID           DispatchLogID
	CaseID       int64
	AgentID      int64
	AssignmentID int64
	Trigger      types.DispatchTrigger
	Score        float64
	CreatedAt    time.Time
}
