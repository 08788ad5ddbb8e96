package usecase

import (
	"github.com/portnet-lab/caseflow/pkg/domain/interfaces"
	"github.com/portnet-lab/caseflow/pkg/domain/model/config"
)

type UseCases struct {
	repo   interfaces.Repository
	policy *config.ScoringPolicy
}

type Option func(*UseCases)

// WithScoringPolicy overrides the built-in scoring policy constants
func WithScoringPolicy(policy *config.ScoringPolicy) Option {
	return func(uc *UseCases) {
		uc.policy = policy
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:   repo,
		policy: config.DefaultScoringPolicy(),
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}
