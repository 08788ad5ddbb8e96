package usecase

import "errors"

// Sentinel errors for use case layer
var (
	ErrAgentNotFound      = errors.New("agent not found")
	ErrCaseNotFound       = errors.New("case not found")
	ErrAssignmentNotFound = errors.New("assignment not found")
)

// Context keys for error values
const (
	AgentIDKey      = "agent_id"
	CaseIDKey       = "case_id"
	AssignmentIDKey = "assignment_id"
)
