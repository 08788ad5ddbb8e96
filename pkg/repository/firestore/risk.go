package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/portnet-lab/caseflow/pkg/domain/model"
	"google.golang.org/api/iterator"
)

type riskRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newRiskRepository(client *firestore.Client) *riskRepository {
	return &riskRepository{client: client}
}

func (r *riskRepository) riskEventsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_risk_events"
	}
	return "risk_events"
}

func (r *riskRepository) countersCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *riskRepository) Create(ctx context.Context, event *model.RiskEvent) (*model.RiskEvent, error) {
	id, err := nextID(ctx, r.client, r.countersCollection(), "risk_event_counter")
	if err != nil {
		return nil, err
	}

	created := &model.RiskEvent{
		ID:         id,
		AgentID:    event.AgentID,
		Severity:   event.Severity,
		DetectedAt: event.DetectedAt,
	}
	if created.DetectedAt.IsZero() {
		created.DetectedAt = time.Now().UTC()
	}

	if _, err := r.client.Collection(r.riskEventsCollection()).Doc(docID(id)).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create risk event", goerr.V("id", id))
	}

	return created, nil
}

func (r *riskRepository) ListByAgentSince(ctx context.Context, agentID int64, since time.Time) ([]*model.RiskEvent, error) {
	iter := r.client.Collection(r.riskEventsCollection()).
		Where("AgentID", "==", agentID).
		Where("DetectedAt", ">", since).
		Documents(ctx)
	defer iter.Stop()

	var events []*model.RiskEvent
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate risk events", goerr.V("agentID", agentID))
		}

		var event model.RiskEvent
		if err := docSnap.DataTo(&event); err != nil {
			return nil, goerr.Wrap(err, "failed to decode risk event", goerr.V("doc_id", docSnap.Ref.ID))
		}
		events = append(events, &event)
	}

	return events, nil
}

type activityRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newActivityRepository(client *firestore.Client) *activityRepository {
	return &activityRepository{client: client}
}

func (r *activityRepository) activityCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_activity_marks"
	}
	return "activity_marks"
}

func (r *activityRepository) Record(ctx context.Context, mark *model.ActivityMark) error {
	m := &model.ActivityMark{
		AgentID:   mark.AgentID,
		Timestamp: mark.Timestamp,
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}

	if _, _, err := r.client.Collection(r.activityCollection()).Add(ctx, m); err != nil {
		return goerr.Wrap(err, "failed to record activity mark", goerr.V("agentID", m.AgentID))
	}
	return nil
}

func (r *activityRepository) HasActivitySince(ctx context.Context, agentID int64, since time.Time) (bool, error) {
	iter := r.client.Collection(r.activityCollection()).
		Where("AgentID", "==", agentID).
		Where("Timestamp", ">", since).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err == iterator.Done {
		return false, nil
	}
	if err != nil {
		return false, goerr.Wrap(err, "failed to query activity marks", goerr.V("agentID", agentID))
	}
	return true, nil
}
