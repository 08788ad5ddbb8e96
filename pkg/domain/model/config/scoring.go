package config

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/portnet-lab/caseflow/pkg/domain/types"
)

// ScoringPolicy holds the policy constants of the agent scoring formula.
// The magnitudes are operational policy, not code, and can be overridden
// from a TOML file at startup.
type ScoringPolicy struct {
	// MaxAvailability caps the availability term: availability is
	// MaxAvailability minus the agent's open assignment count, floored
	// at zero.
	MaxAvailability float64

	// RecencyBonus is added when the agent showed activity within
	// RecencyWindow.
	RecencyBonus  float64
	RecencyWindow time.Duration

	// RiskWindow bounds how far back risk events count against the agent.
	RiskWindow time.Duration

	// Severity weights of the risk penalty. WeightDefault applies to any
	// severity outside the known set.
	WeightCritical float64
	WeightHigh     float64
	WeightMedium   float64
	WeightDefault  float64
}

// DefaultScoringPolicy returns the built-in policy constants
func DefaultScoringPolicy() *ScoringPolicy {
	return &ScoringPolicy{
		MaxAvailability: 10,
		RecencyBonus:    2.0,
		RecencyWindow:   60 * time.Minute,
		RiskWindow:      3 * time.Hour,
		WeightCritical:  3.0,
		WeightHigh:      2.0,
		WeightMedium:    1.0,
		WeightDefault:   0.5,
	}
}

// SeverityWeight returns the penalty weight of one risk event severity
func (p *ScoringPolicy) SeverityWeight(sev types.Severity) float64 {
	switch sev.Normalize() {
	case types.SeverityCritical:
		return p.WeightCritical
	case types.SeverityHigh:
		return p.WeightHigh
	case types.SeverityMedium:
		return p.WeightMedium
	default:
		return p.WeightDefault
	}
}

// Validate checks the policy for usable values
func (p *ScoringPolicy) Validate() error {
	if p.MaxAvailability <= 0 {
		return goerr.New("max availability must be positive",
			goerr.V("value", p.MaxAvailability))
	}
	if p.RecencyWindow <= 0 {
		return goerr.New("recency window must be positive",
			goerr.V("value", p.RecencyWindow))
	}
	if p.RiskWindow <= 0 {
		return goerr.New("risk window must be positive",
			goerr.V("value", p.RiskWindow))
	}
	for name, w := range map[string]float64{
		"critical": p.WeightCritical,
		"high":     p.WeightHigh,
		"medium":   p.WeightMedium,
		"default":  p.WeightDefault,
	} {
		if w < 0 {
			return goerr.New("severity weight must not be negative",
				goerr.V("severity", name), goerr.V("weight", w))
		}
	}
	return nil
}
