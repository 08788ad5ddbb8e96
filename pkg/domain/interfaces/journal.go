package interfaces

import (
	"context"

	"github.com/portnet-lab/caseflow/pkg/domain/model"
)

// JournalRepository defines the interface for the dispatch journal
type JournalRepository interface {
	// Append stores a journal entry
	Append(ctx context.Context, entry *model.DispatchLog) error

	// List retrieves the most recent entries, newest first, up to limit
	List(ctx context.Context, limit int) ([]*model.DispatchLog, error)
}
