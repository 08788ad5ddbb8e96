package usecase

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/portnet-lab/caseflow/pkg/domain/model"
	"github.com/portnet-lab/caseflow/pkg/domain/types"
)

const overdueAge = 48 * time.Hour

// ComputeWorkload aggregates per-agent assignment statistics over a time
// window. Zero from/to default to the current day. The query filters
// agents by case-insensitive substring match on name or email.
func (uc *UseCases) ComputeWorkload(ctx context.Context, query string, from, to time.Time) ([]*model.AgentWorkload, error) {
	now := time.Now().UTC()
	if from.IsZero() {
		from = now
	}
	if to.IsZero() {
		to = now
	}
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, time.UTC)

	agents, err := uc.repo.Agent().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list agents")
	}

	if q := strings.ToLower(strings.TrimSpace(query)); q != "" {
		filtered := agents[:0]
		for _, a := range agents {
			if strings.Contains(strings.ToLower(a.Name), q) ||
				strings.Contains(strings.ToLower(a.Email), q) {
				filtered = append(filtered, a)
			}
		}
		agents = filtered
	}

	result := make([]*model.AgentWorkload, 0, len(agents))
	for _, agent := range agents {
		all, err := uc.repo.Assignment().ListByAgent(ctx, agent.ID, nil)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to list assignments", goerr.V(AgentIDKey, agent.ID))
		}

		w := &model.AgentWorkload{
			AgentID:   agent.ID,
			AgentName: agent.Name,
		}

		var durations []int64
		for _, a := range all {
			if a.CreatedAt.Before(start) || a.CreatedAt.After(end) {
				continue
			}

			w.Total++
			if a.Status.IsOpen() {
				w.InProgress++
			}
			if a.Status != types.AssignmentStatusDone && a.CreatedAt.Before(now.Add(-overdueAge)) {
				w.Overdue++
			}
			if d, ok := a.Duration(); ok {
				durations = append(durations, int64(d/time.Minute))
			}
			if a.Status == types.AssignmentStatusDone && a.FinishedAt != nil &&
				!a.FinishedAt.Before(start) && !a.FinishedAt.After(end) {
				w.Throughput++
			}
		}

		w.AvgDurationMin = meanMinutes(durations)
		w.MedianDurationMin = medianMinutes(durations)

		result = append(result, w)
	}

	return result, nil
}

func meanMinutes(durations []int64) int {
	if len(durations) == 0 {
		return 0
	}
	var sum int64
	for _, d := range durations {
		sum += d
	}
	return int(math.Round(float64(sum) / float64(len(durations))))
}

func medianMinutes(durations []int64) int {
	if len(durations) == 0 {
		return 0
	}
	sorted := make([]int64, len(durations))
	copy(sorted, durations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	m := len(sorted)
	if m%2 == 1 {
		return int(sorted[m/2])
	}
	return int(math.Round(float64(sorted[m/2-1]+sorted[m/2]) / 2.0))
}
