package interfaces

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors shared by all repository backends. Callers match them
// with errors.Is regardless of the configured backend.
var (
	// ErrNotFound indicates a referenced record does not exist
	ErrNotFound = goerr.New("record not found")

	// ErrCaseAlreadyAssigned indicates a concurrent or earlier claim
	// already bound the case to an agent
	ErrCaseAlreadyAssigned = goerr.New("case already has an assignment")
)
