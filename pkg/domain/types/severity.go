package types

import "strings"

// Severity represents the severity of a risk event reported by the
// anomaly detector. Values outside the known set are tolerated and
// weighted as "other" by the scoring policy.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
)

// Normalize returns the severity folded to upper case
func (s Severity) Normalize() Severity {
	return Severity(strings.ToUpper(string(s)))
}

// IsCritical returns true for CRITICAL severity, case-insensitively
func (s Severity) IsCritical() bool {
	return s.Normalize() == SeverityCritical
}

// String returns the string representation of the severity
func (s Severity) String() string {
	return string(s)
}
