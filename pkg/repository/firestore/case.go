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

type caseRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newCaseRepository(client *firestore.Client) *caseRepository {
	return &caseRepository{client: client}
}

func (r *caseRepository) casesCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_cases"
	}
	return "cases"
}

func (r *caseRepository) countersCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *caseRepository) Create(ctx context.Context, c *model.Case) (*model.Case, error) {
	st := c.Status.Normalize()
	if !st.IsValid() {
		return nil, goerr.New("invalid case status", goerr.V("status", c.Status))
	}

	id, err := nextID(ctx, r.client, r.countersCollection(), "case_counter")
	if err != nil {
		return nil, err
	}

	created := &model.Case{
		ID:        id,
		Reference: c.Reference,
		Status:    st,
		CreatedAt: time.Now().UTC(),
	}
	if !c.CreatedAt.IsZero() {
		created.CreatedAt = c.CreatedAt
	}

	if _, err := r.client.Collection(r.casesCollection()).Doc(docID(id)).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create case", goerr.V("id", id))
	}

	return created, nil
}

func (r *caseRepository) Get(ctx context.Context, id int64) (*model.Case, error) {
	docSnap, err := r.client.Collection(r.casesCollection()).Doc(docID(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "case not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get case", goerr.V("id", id))
	}

	var c model.Case
	if err := docSnap.DataTo(&c); err != nil {
		return nil, goerr.Wrap(err, "failed to decode case", goerr.V("id", id))
	}

	return &c, nil
}

func (r *caseRepository) ListPendingOldestFirst(ctx context.Context) ([]*model.Case, error) {
	iter := r.client.Collection(r.casesCollection()).
		Where("Status", "==", string(types.CaseStatusPending)).
		OrderBy("CreatedAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var cases []*model.Case
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate pending cases")
		}

		var c model.Case
		if err := docSnap.DataTo(&c); err != nil {
			return nil, goerr.Wrap(err, "failed to decode case", goerr.V("doc_id", docSnap.Ref.ID))
		}
		cases = append(cases, &c)
	}

	return cases, nil
}

func (r *caseRepository) UpdateStatus(ctx context.Context, id int64, st types.CaseStatus) error {
	if !st.IsValid() {
		return goerr.New("invalid case status", goerr.V("status", st))
	}

	docRef := r.client.Collection(r.casesCollection()).Doc(docID(id))
	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "Status", Value: string(st)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(interfaces.ErrNotFound, "case not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to update case status", goerr.V("id", id))
	}

	return nil
}
