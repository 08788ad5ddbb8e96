package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/portnet-lab/caseflow/pkg/domain/model"
)

type riskRepository struct {
	mu     sync.RWMutex
	events map[int64]*model.RiskEvent
	nextID int64
}

func newRiskRepository() *riskRepository {
	return &riskRepository{
		events: make(map[int64]*model.RiskEvent),
		nextID: 1,
	}
}

func copyRiskEvent(e *model.RiskEvent) *model.RiskEvent {
	copied := *e
	return &copied
}

func (r *riskRepository) Create(ctx context.Context, event *model.RiskEvent) (*model.RiskEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyRiskEvent(event)
	created.ID = r.nextID
	r.nextID++
	if created.DetectedAt.IsZero() {
		created.DetectedAt = time.Now().UTC()
	}

	r.events[created.ID] = created
	return copyRiskEvent(created), nil
}

func (r *riskRepository) ListByAgentSince(ctx context.Context, agentID int64, since time.Time) ([]*model.RiskEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.RiskEvent, 0)
	for _, e := range r.events {
		if e.AgentID == agentID && e.DetectedAt.After(since) {
			result = append(result, copyRiskEvent(e))
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].DetectedAt.Before(result[j].DetectedAt)
	})

	return result, nil
}

type activityRepository struct {
	mu    sync.RWMutex
	marks map[int64][]model.ActivityMark
}

func newActivityRepository() *activityRepository {
	return &activityRepository{
		marks: make(map[int64][]model.ActivityMark),
	}
}

func (r *activityRepository) Record(ctx context.Context, mark *model.ActivityMark) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := *mark
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	r.marks[m.AgentID] = append(r.marks[m.AgentID], m)
	return nil
}

func (r *activityRepository) HasActivitySince(ctx context.Context, agentID int64, since time.Time) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.marks[agentID] {
		if m.Timestamp.After(since) {
			return true, nil
		}
	}
	return false, nil
}
