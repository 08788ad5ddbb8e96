package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	scoring "github.com/portnet-lab/caseflow/pkg/domain/model/config"
	"github.com/urfave/cli/v3"
)

// Scoring holds the CLI flag for the scoring policy file
type Scoring struct {
	path string
}

// Flags returns CLI flags for scoring configuration
func (s *Scoring) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "scoring-config",
			Usage:       "Path to scoring policy TOML file (built-in defaults when empty)",
			Sources:     cli.EnvVars("CASEFLOW_SCORING_CONFIG"),
			Destination: &s.path,
		},
	}
}

type scoringFile struct {
	Scoring scoringPolicyTOML `toml:"scoring"`
}

type scoringPolicyTOML struct {
	MaxAvailability      *float64 `toml:"max_availability"`
	RecencyBonus         *float64 `toml:"recency_bonus"`
	RecencyWindowMinutes *int64   `toml:"recency_window_minutes"`
	RiskWindowMinutes    *int64   `toml:"risk_window_minutes"`
	WeightCritical       *float64 `toml:"weight_critical"`
	WeightHigh           *float64 `toml:"weight_high"`
	WeightMedium         *float64 `toml:"weight_medium"`
	WeightDefault        *float64 `toml:"weight_default"`
}

// Build loads the scoring policy, starting from defaults and applying
// any value set in the TOML file.
func (s *Scoring) Build() (*scoring.ScoringPolicy, error) {
	policy := scoring.DefaultScoringPolicy()
	if s.path == "" {
		return policy, nil
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return policy, goerr.Wrap(err, "failed to read scoring config", goerr.V("path", s.path))
	}

	var file scoringFile
	if err := toml.Unmarshal(raw, &file); err != nil {
		return policy, goerr.Wrap(err, "failed to parse scoring config", goerr.V("path", s.path))
	}

	applyScoringTOML(policy, file.Scoring)

	if err := policy.Validate(); err != nil {
		return policy, goerr.Wrap(err, "invalid scoring config", goerr.V("path", s.path))
	}
	return policy, nil
}

func applyScoringTOML(policy *scoring.ScoringPolicy, v scoringPolicyTOML) {
	if v.MaxAvailability != nil {
		policy.MaxAvailability = *v.MaxAvailability
	}
	if v.RecencyBonus != nil {
		policy.RecencyBonus = *v.RecencyBonus
	}
	if v.RecencyWindowMinutes != nil {
		policy.RecencyWindow = minutes(*v.RecencyWindowMinutes)
	}
	if v.RiskWindowMinutes != nil {
		policy.RiskWindow = minutes(*v.RiskWindowMinutes)
	}
	if v.WeightCritical != nil {
		policy.WeightCritical = *v.WeightCritical
	}
	if v.WeightHigh != nil {
		policy.WeightHigh = *v.WeightHigh
	}
	if v.WeightMedium != nil {
		policy.WeightMedium = *v.WeightMedium
	}
	if v.WeightDefault != nil {
		policy.WeightDefault = *v.WeightDefault
	}
}

func minutes(n int64) time.Duration {
	return time.Duration(n) * time.Minute
}

// LogValue renders the configuration for the startup log line
func (s *Scoring) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", s.path),
	)
}
