package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/portnet-lab/caseflow/pkg/domain/model"
	"github.com/portnet-lab/caseflow/pkg/domain/types"
)

// SubmitCase enters a new case into the queue in PENDING state. The
// caller is expected to trigger auto-assignment afterwards.
func (uc *UseCases) SubmitCase(ctx context.Context, reference string) (*model.Case, error) {
	if reference == "" {
		return nil, goerr.New("case reference is required")
	}

	created, err := uc.repo.Case().Create(ctx, &model.Case{
		Reference: reference,
		Status:    types.CaseStatusPending,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create case", goerr.V("reference", reference))
	}

	return created, nil
}
