package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/portnet-lab/caseflow/pkg/domain/model"
	"google.golang.org/api/iterator"
)

type journalRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newJournalRepository(client *firestore.Client) *journalRepository {
	return &journalRepository{client: client}
}

func (r *journalRepository) journalCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_dispatch_logs"
	}
	return "dispatch_logs"
}

func (r *journalRepository) Append(ctx context.Context, entry *model.DispatchLog) error {
	created := &model.DispatchLog{
		ID:           entry.ID,
		CaseID:       entry.CaseID,
		AgentID:      entry.AgentID,
		AssignmentID: entry.AssignmentID,
		Trigger:      entry.Trigger,
		Score:        entry.Score,
		CreatedAt:    entry.CreatedAt,
	}
	if created.ID == "" {
		created.ID = model.NewDispatchLogID()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	if _, err := r.client.Collection(r.journalCollection()).Doc(string(created.ID)).Set(ctx, created); err != nil {
		return goerr.Wrap(err, "failed to append dispatch log", goerr.V("id", created.ID))
	}
	return nil
}

func (r *journalRepository) List(ctx context.Context, limit int) ([]*model.DispatchLog, error) {
	query := r.client.Collection(r.journalCollection()).
		OrderBy("CreatedAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	iter := query.Documents(ctx)
	defer iter.Stop()

	var entries []*model.DispatchLog
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate dispatch logs")
		}

		var entry model.DispatchLog
		if err := docSnap.DataTo(&entry); err != nil {
			return nil, goerr.Wrap(err, "failed to decode dispatch log", goerr.V("doc_id", docSnap.Ref.ID))
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}
