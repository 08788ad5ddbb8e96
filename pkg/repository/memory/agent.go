package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/portnet-lab/caseflow/pkg/domain/interfaces"
	"github.com/portnet-lab/caseflow/pkg/domain/model"
)

type agentRepository struct {
	mu     sync.RWMutex
	agents map[int64]*model.Agent
	nextID int64
}

func newAgentRepository() *agentRepository {
	return &agentRepository{
		agents: make(map[int64]*model.Agent),
		nextID: 1,
	}
}

func copyAgent(a *model.Agent) *model.Agent {
	copied := *a
	return &copied
}

func (r *agentRepository) Create(ctx context.Context, agent *model.Agent) (*model.Agent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyAgent(agent)
	created.ID = r.nextID
	r.nextID++
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.agents[created.ID] = created
	return copyAgent(created), nil
}

func (r *agentRepository) Get(ctx context.Context, id int64) (*model.Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	agent, exists := r.agents[id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "agent not found", goerr.V("id", id))
	}
	return copyAgent(agent), nil
}

func (r *agentRepository) List(ctx context.Context) ([]*model.Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Agent, 0, len(r.agents))
	for _, a := range r.agents {
		result = append(result, copyAgent(a))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (r *agentRepository) ListActivated(ctx context.Context) ([]*model.Agent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Agent, 0, len(r.agents))
	for _, a := range r.agents {
		if a.Activated {
			result = append(result, copyAgent(a))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}
