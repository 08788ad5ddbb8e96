package model

import (
	"time"

	"github.com/portnet-lab/caseflow/pkg/domain/types"
)

// RiskEvent is a severity-scored anomaly signal about an agent, supplied
// by an external detector. It is a read-only scoring input for this core.
type RiskEvent struct {
	ID         int64
	AgentID    int64
	Severity   types.Severity
	DetectedAt time.Time
}

// ActivityMark records the last observed activity of an agent. Read-only
// scoring input.
type ActivityMark struct {
	AgentID   int64
	Timestamp time.Time
}
