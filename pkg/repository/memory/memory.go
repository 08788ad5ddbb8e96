package memory

import (
	"github.com/portnet-lab/caseflow/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	agent      *agentRepository
	caseRepo   *caseRepository
	assignment *assignmentRepository
	risk       *riskRepository
	activity   *activityRepository
	journal    *journalRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		agent:      newAgentRepository(),
		caseRepo:   newCaseRepository(),
		assignment: newAssignmentRepository(),
		risk:       newRiskRepository(),
		activity:   newActivityRepository(),
		journal:    newJournalRepository(),
	}
}

func (m *Memory) Agent() interfaces.AgentRepository {
	return m.agent
}

func (m *Memory) Case() interfaces.CaseRepository {
	return m.caseRepo
}

func (m *Memory) Assignment() interfaces.AssignmentRepository {
	return m.assignment
}

func (m *Memory) Risk() interfaces.RiskRepository {
	return m.risk
}

func (m *Memory) Activity() interfaces.ActivityRepository {
	return m.activity
}

func (m *Memory) Journal() interfaces.JournalRepository {
	return m.journal
}

func (m *Memory) Close() error {
	return nil
}
