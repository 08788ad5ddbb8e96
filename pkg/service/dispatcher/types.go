package dispatcher

import "context"

// Report is the summary returned by the external dispatch service for
// one cycle.
type Report struct {
	Assigned int `json:"assigned"`
	Skipped  int `json:"skipped"`
	Errors   int `json:"errors"`
}

// Service abstracts the external dispatch microservice invoked on a
// schedule. It is unrelated in mechanism to the internal scoring engine
// and serves a separate workflow.
type Service interface {
	// RunOnce triggers one dispatch cycle, processing at most limit
	// cases. A non-positive limit applies the server default.
	RunOnce(ctx context.Context, limit int) (*Report, error)
}
