package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/portnet-lab/caseflow/pkg/domain/model"
)

type journalRepository struct {
	mu      sync.RWMutex
	entries []*model.DispatchLog
}

func newJournalRepository() *journalRepository {
	return &journalRepository{}
}

func copyDispatchLog(e *model.DispatchLog) *model.DispatchLog {
	copied := *e
	return &copied
}

func (r *journalRepository) Append(ctx context.Context, entry *model.DispatchLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyDispatchLog(entry)
	if created.ID == "" {
		created.ID = model.NewDispatchLogID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}
	r.entries = append(r.entries, created)
	return nil
}

func (r *journalRepository) List(ctx context.Context, limit int) ([]*model.DispatchLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.DispatchLog, 0, len(r.entries))
	for _, e := range r.entries {
		result = append(result, copyDispatchLog(e))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}
