package types

import "fmt"

// CaseStatus represents the processing status of a case
type CaseStatus string

const (
	CaseStatusPending   CaseStatus = "PENDING"
	CaseStatusAccepted  CaseStatus = "ACCEPTED"
	CaseStatusRefused   CaseStatus = "REFUSED"
	CaseStatusCancelled CaseStatus = "CANCELLED"
)

// AllCaseStatuses returns all valid case statuses
func AllCaseStatuses() []CaseStatus {
	return []CaseStatus{
		CaseStatusPending,
		CaseStatusAccepted,
		CaseStatusRefused,
		CaseStatusCancelled,
	}
}

// IsValid checks if the case status is valid
func (s CaseStatus) IsValid() bool {
	switch s {
	case CaseStatusPending,
		CaseStatusAccepted,
		CaseStatusRefused,
		CaseStatusCancelled:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as CaseStatusPending
func (s CaseStatus) Normalize() CaseStatus {
	if s == "" {
		return CaseStatusPending
	}
	return s
}

// String returns the string representation of the case status
func (s CaseStatus) String() string {
	return string(s)
}

// ParseCaseStatus parses a string into a CaseStatus
func ParseCaseStatus(s string) (CaseStatus, error) {
	status := CaseStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid case status: %s", s)
	}
	return status, nil
}
