package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Agent() AgentRepository
	Case() CaseRepository
	Assignment() AssignmentRepository
	Risk() RiskRepository
	Activity() ActivityRepository
	Journal() JournalRepository

	Close() error
}
