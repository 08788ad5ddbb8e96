package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/portnet-lab/caseflow/pkg/domain/interfaces"
	"github.com/portnet-lab/caseflow/pkg/domain/model"
	"github.com/portnet-lab/caseflow/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// assignmentRepository keys assignment documents by case ID, so the
// one-assignment-per-case invariant is enforced by the store itself:
// concurrent claimers racing on one case hit the create precondition and
// exactly one wins, regardless of how many service instances run.
type assignmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAssignmentRepository(client *firestore.Client) *assignmentRepository {
	return &assignmentRepository{client: client}
}

func (r *assignmentRepository) assignmentsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_assignments"
	}
	return "assignments"
}

func (r *assignmentRepository) countersCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *assignmentRepository) Create(ctx context.Context, a *model.Assignment) (*model.Assignment, error) {
	id, err := nextID(ctx, r.client, r.countersCollection(), "assignment_counter")
	if err != nil {
		return nil, err
	}

	created := &model.Assignment{
		ID:        id,
		AgentID:   a.AgentID,
		CaseID:    a.CaseID,
		Status:    a.Status,
		CreatedAt: time.Now().UTC(),
	}
	if created.Status == "" {
		created.Status = types.AssignmentStatusAssigned
	}

	docRef := r.client.Collection(r.assignmentsCollection()).Doc(docID(a.CaseID))
	if _, err := docRef.Create(ctx, created); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return nil, goerr.Wrap(interfaces.ErrCaseAlreadyAssigned, "assignment already exists for case",
				goerr.V("caseID", a.CaseID))
		}
		return nil, goerr.Wrap(err, "failed to create assignment",
			goerr.V("caseID", a.CaseID), goerr.V("agentID", a.AgentID))
	}

	return created, nil
}

func (r *assignmentRepository) Get(ctx context.Context, id int64) (*model.Assignment, error) {
	iter := r.client.Collection(r.assignmentsCollection()).
		Where("ID", "==", id).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	docSnap, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "assignment not found", goerr.V("id", id))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get assignment", goerr.V("id", id))
	}

	var a model.Assignment
	if err := docSnap.DataTo(&a); err != nil {
		return nil, goerr.Wrap(err, "failed to decode assignment", goerr.V("id", id))
	}

	return &a, nil
}

func (r *assignmentRepository) GetByCaseID(ctx context.Context, caseID int64) (*model.Assignment, error) {
	docSnap, err := r.client.Collection(r.assignmentsCollection()).Doc(docID(caseID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get assignment by case", goerr.V("caseID", caseID))
	}

	var a model.Assignment
	if err := docSnap.DataTo(&a); err != nil {
		return nil, goerr.Wrap(err, "failed to decode assignment", goerr.V("caseID", caseID))
	}

	return &a, nil
}

func (r *assignmentRepository) ListByAgent(ctx context.Context, agentID int64, statuses []types.AssignmentStatus) ([]*model.Assignment, error) {
	query := r.client.Collection(r.assignmentsCollection()).
		Where("AgentID", "==", agentID)
	if len(statuses) > 0 {
		values := make([]string, len(statuses))
		for i, s := range statuses {
			values[i] = string(s)
		}
		query = query.Where("Status", "in", values)
	}
	iter := query.OrderBy("CreatedAt", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var assignments []*model.Assignment
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assignments", goerr.V("agentID", agentID))
		}

		var a model.Assignment
		if err := docSnap.DataTo(&a); err != nil {
			return nil, goerr.Wrap(err, "failed to decode assignment", goerr.V("doc_id", docSnap.Ref.ID))
		}
		assignments = append(assignments, &a)
	}

	return assignments, nil
}

func (r *assignmentRepository) CountActiveByAgent(ctx context.Context, agentID int64) (int64, error) {
	open := types.OpenAssignmentStatuses()
	values := make([]string, len(open))
	for i, s := range open {
		values[i] = string(s)
	}

	iter := r.client.Collection(r.assignmentsCollection()).
		Where("AgentID", "==", agentID).
		Where("Status", "in", values).
		Documents(ctx)
	defer iter.Stop()

	var count int64
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to count active assignments", goerr.V("agentID", agentID))
		}
		count++
	}

	return count, nil
}

func (r *assignmentRepository) Update(ctx context.Context, a *model.Assignment) (*model.Assignment, error) {
	docRef := r.client.Collection(r.assignmentsCollection()).Doc(docID(a.CaseID))

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "assignment not found", goerr.V("id", a.ID))
		}
		return nil, goerr.Wrap(err, "failed to check assignment existence", goerr.V("id", a.ID))
	}

	var existing model.Assignment
	if err := docSnap.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to decode assignment", goerr.V("id", a.ID))
	}
	if existing.ID != a.ID {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "assignment not found for case",
			goerr.V("id", a.ID), goerr.V("caseID", a.CaseID))
	}

	updated := &model.Assignment{
		ID:         a.ID,
		AgentID:    a.AgentID,
		CaseID:     a.CaseID,
		Status:     a.Status,
		CreatedAt:  existing.CreatedAt,
		StartedAt:  a.StartedAt,
		FinishedAt: a.FinishedAt,
	}

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update assignment", goerr.V("id", a.ID))
	}

	return updated, nil
}
