package types

import "fmt"

// DispatchTrigger identifies which flow produced an assignment decision
type DispatchTrigger string

const (
	DispatchTriggerPull     DispatchTrigger = "PULL"
	DispatchTriggerPush     DispatchTrigger = "PUSH"
	DispatchTriggerAuto     DispatchTrigger = "AUTO"
	DispatchTriggerReassign DispatchTrigger = "REASSIGN"
)

// IsValid checks if the dispatch trigger is valid
func (t DispatchTrigger) IsValid() bool {
	switch t {
	case DispatchTriggerPull,
		DispatchTriggerPush,
		DispatchTriggerAuto,
		DispatchTriggerReassign:
		return true
	default:
		return false
	}
}

// String returns the string representation of the dispatch trigger
func (t DispatchTrigger) String() string {
	return string(t)
}

// ParseDispatchTrigger parses a string into a DispatchTrigger
func ParseDispatchTrigger(s string) (DispatchTrigger, error) {
	trigger := DispatchTrigger(s)
	if !trigger.IsValid() {
		return "", fmt.Errorf("invalid dispatch trigger: %s", s)
	}
	return trigger, nil
}
