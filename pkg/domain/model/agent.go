package model

import "time"

// Agent represents a back-office operator. Only activated agents are
// eligible for assignment.
type Agent struct {
	ID        int64
	Name      string
	Email     string
	Activated bool
	CreatedAt time.Time
}
