package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/portnet-lab/caseflow/pkg/domain/interfaces"
	"github.com/portnet-lab/caseflow/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type agentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAgentRepository(client *firestore.Client) *agentRepository {
	return &agentRepository{client: client}
}

func (r *agentRepository) agentsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_agents"
	}
	return "agents"
}

func (r *agentRepository) countersCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *agentRepository) Create(ctx context.Context, agent *model.Agent) (*model.Agent, error) {
	id, err := nextID(ctx, r.client, r.countersCollection(), "agent_counter")
	if err != nil {
		return nil, err
	}

	created := &model.Agent{
		ID:        id,
		Name:      agent.Name,
		Email:     agent.Email,
		Activated: agent.Activated,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := r.client.Collection(r.agentsCollection()).Doc(docID(id)).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create agent", goerr.V("id", id))
	}

	return created, nil
}

func (r *agentRepository) Get(ctx context.Context, id int64) (*model.Agent, error) {
	docSnap, err := r.client.Collection(r.agentsCollection()).Doc(docID(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "agent not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get agent", goerr.V("id", id))
	}

	var agent model.Agent
	if err := docSnap.DataTo(&agent); err != nil {
		return nil, goerr.Wrap(err, "failed to decode agent", goerr.V("id", id))
	}

	return &agent, nil
}

func (r *agentRepository) List(ctx context.Context) ([]*model.Agent, error) {
	return r.list(ctx, r.client.Collection(r.agentsCollection()).Query)
}

func (r *agentRepository) ListActivated(ctx context.Context) ([]*model.Agent, error) {
	query := r.client.Collection(r.agentsCollection()).
		Where("Activated", "==", true)
	return r.list(ctx, query)
}

func (r *agentRepository) list(ctx context.Context, query firestore.Query) ([]*model.Agent, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var agents []*model.Agent
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate agents")
		}

		var agent model.Agent
		if err := docSnap.DataTo(&agent); err != nil {
			return nil, goerr.Wrap(err, "failed to decode agent", goerr.V("doc_id", docSnap.Ref.ID))
		}
		agents = append(agents, &agent)
	}

	return agents, nil
}
