package types

import "fmt"

// AssignmentStatus represents the lifecycle status of a task assignment
type AssignmentStatus string

const (
	AssignmentStatusAssigned   AssignmentStatus = "ASSIGNED"
	AssignmentStatusInProgress AssignmentStatus = "IN_PROGRESS"
	AssignmentStatusDone       AssignmentStatus = "DONE"
	AssignmentStatusCancelled  AssignmentStatus = "CANCELLED"
)

// AllAssignmentStatuses returns all valid assignment statuses
func AllAssignmentStatuses() []AssignmentStatus {
	return []AssignmentStatus{
		AssignmentStatusAssigned,
		AssignmentStatusInProgress,
		AssignmentStatusDone,
		AssignmentStatusCancelled,
	}
}

// OpenAssignmentStatuses returns the statuses of an assignment that still
// occupies its agent
func OpenAssignmentStatuses() []AssignmentStatus {
	return []AssignmentStatus{
		AssignmentStatusAssigned,
		AssignmentStatusInProgress,
	}
}

// IsValid checks if the assignment status is valid
func (s AssignmentStatus) IsValid() bool {
	switch s {
	case AssignmentStatusAssigned,
		AssignmentStatusInProgress,
		AssignmentStatusDone,
		AssignmentStatusCancelled:
		return true
	default:
		return false
	}
}

// IsOpen returns true while the assignment still occupies its agent
func (s AssignmentStatus) IsOpen() bool {
	return s == AssignmentStatusAssigned || s == AssignmentStatusInProgress
}

// IsTerminal returns true for statuses with no further transitions
func (s AssignmentStatus) IsTerminal() bool {
	return s == AssignmentStatusDone || s == AssignmentStatusCancelled
}

// String returns the string representation of the assignment status
func (s AssignmentStatus) String() string {
	return string(s)
}

// ParseAssignmentStatus parses a string into an AssignmentStatus
func ParseAssignmentStatus(s string) (AssignmentStatus, error) {
	status := AssignmentStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid assignment status: %s", s)
	}
	return status, nil
}
