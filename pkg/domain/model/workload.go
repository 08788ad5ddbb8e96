package model

// AgentWorkload aggregates per-agent assignment statistics over a time
// window.
type AgentWorkload struct {
	AgentID           int64
	AgentName         string
	Total             int
	InProgress        int
	Overdue           int
	AvgDurationMin    int
	MedianDurationMin int
	Throughput        int
}

// BulkReassignResult reports the outcome of a bulk reassignment batch.
// Failures on individual tokens never abort the batch.
type BulkReassignResult struct {
	Updated  int
	NotFound []string
}
