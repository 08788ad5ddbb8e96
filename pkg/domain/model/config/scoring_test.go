package config_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/portnet-lab/caseflow/pkg/domain/model/config"
	"github.com/portnet-lab/caseflow/pkg/domain/types"
)

func TestScoringPolicy_SeverityWeight(t *testing.T) {
	policy := config.DefaultScoringPolicy()

	tests := []struct {
		name     string
		severity types.Severity
		want     float64
	}{
		{
			name:     "critical",
			severity: types.SeverityCritical,
			want:     3.0,
		},
		{
			name:     "high",
			severity: types.SeverityHigh,
			want:     2.0,
		},
		{
			name:     "medium",
			severity: types.SeverityMedium,
			want:     1.0,
		},
		{
			name:     "low falls back to default weight",
			severity: types.SeverityLow,
			want:     0.5,
		},
		{
			name:     "unknown falls back to default weight",
			severity: types.Severity("BIZARRE"),
			want:     0.5,
		},
		{
			name:     "lowercase critical",
			severity: types.Severity("critical"),
			want:     3.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, policy.SeverityWeight(tt.severity)).Equal(tt.want)
		})
	}
}

func TestScoringPolicy_Validate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		gt.NoError(t, config.DefaultScoringPolicy().Validate())
	})

	t.Run("zero availability cap is rejected", func(t *testing.T) {
		policy := config.DefaultScoringPolicy()
		policy.MaxAvailability = 0
		gt.Value(t, policy.Validate()).NotNil()
	})

	t.Run("negative weight is rejected", func(t *testing.T) {
		policy := config.DefaultScoringPolicy()
		policy.WeightHigh = -1
		gt.Value(t, policy.Validate()).NotNil()
	})

	t.Run("zero risk window is rejected", func(t *testing.T) {
		policy := config.DefaultScoringPolicy()
		policy.RiskWindow = 0
		gt.Value(t, policy.Validate()).NotNil()
	})
}
