package interfaces

import (
	"context"

	"github.com/portnet-lab/caseflow/pkg/domain/model"
)

// AgentRepository defines the interface for Agent data access
type AgentRepository interface {
	// Create creates a new agent with auto-generated ID
	Create(ctx context.Context, agent *model.Agent) (*model.Agent, error)

	// Get retrieves an agent by ID
	Get(ctx context.Context, id int64) (*model.Agent, error)

	// List retrieves all agents
	List(ctx context.Context) ([]*model.Agent, error)

	// ListActivated retrieves all assignment-eligible agents
	ListActivated(ctx context.Context) ([]*model.Agent, error)
}
