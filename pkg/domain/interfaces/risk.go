package interfaces

import (
	"context"
	"time"

	"github.com/portnet-lab/caseflow/pkg/domain/model"
)

// RiskRepository defines the interface for the risk event feed
type RiskRepository interface {
	// Create records a new risk event with auto-generated ID
	Create(ctx context.Context, event *model.RiskEvent) (*model.RiskEvent, error)

	// ListByAgentSince retrieves the risk events of an agent detected
	// after the given time
	ListByAgentSince(ctx context.Context, agentID int64, since time.Time) ([]*model.RiskEvent, error)
}

// ActivityRepository defines the interface for the agent activity source
type ActivityRepository interface {
	// Record stores an activity mark
	Record(ctx context.Context, mark *model.ActivityMark) error

	// HasActivitySince reports whether the agent has any activity mark
	// after the given time
	HasActivitySince(ctx context.Context, agentID int64, since time.Time) (bool, error)
}
