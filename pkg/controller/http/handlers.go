package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/portnet-lab/caseflow/pkg/domain/model"
	"github.com/portnet-lab/caseflow/pkg/usecase"
	"github.com/portnet-lab/caseflow/pkg/utils/async"
	"github.com/portnet-lab/caseflow/pkg/utils/errutil"
	"github.com/portnet-lab/caseflow/pkg/utils/safe"
)

type assignmentResponse struct {
	ID         int64      `json:"id"`
	AgentID    int64      `json:"agentId"`
	CaseID     int64      `json:"caseId"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	StartedAt  *time.Time `json:"startedAt,omitempty"`
	FinishedAt *time.Time `json:"finishedAt,omitempty"`
}

func toAssignmentResponse(a *model.Assignment) assignmentResponse {
	return assignmentResponse{
		ID:         a.ID,
		AgentID:    a.AgentID,
		CaseID:     a.CaseID,
		Status:     a.Status.String(),
		CreatedAt:  a.CreatedAt,
		StartedAt:  a.StartedAt,
		FinishedAt: a.FinishedAt,
	}
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

func handleUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrAgentNotFound),
		errors.Is(err, usecase.ErrCaseNotFound),
		errors.Is(err, usecase.ErrAssignmentNotFound):
		errutil.HandleHTTP(r.Context(), w, err, http.StatusNotFound)
	default:
		errutil.HandleHTTP(r.Context(), w, err, http.StatusInternalServerError)
	}
}

func queryAgentID(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("agent_id")
	if raw == "" {
		return 0, goerr.New("agent_id is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, goerr.Wrap(err, "invalid agent_id", goerr.V("agent_id", raw))
	}
	return id, nil
}

func (s *Server) handleSubmitCase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reference string `json:"reference"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	created, err := s.uc.SubmitCase(r.Context(), req.Reference)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	// Fire the auto-assignment hook without blocking the submission.
	caseID := created.ID
	async.Dispatch(r.Context(), func(ctx context.Context) error {
		return s.uc.AutoAssignOnPending(ctx, caseID)
	})

	respondJSON(w, r, http.StatusCreated, map[string]any{
		"id":        created.ID,
		"reference": created.Reference,
		"status":    created.Status.String(),
		"createdAt": created.CreatedAt,
	})
}

// handleMyTasks lists the agent's open assignments without claiming new
// work.
func (s *Server) handleMyTasks(w http.ResponseWriter, r *http.Request) {
	agentID, err := queryAgentID(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	mine, err := s.uc.MyAssignments(r.Context(), agentID)
	if err != nil {
		handleUseCaseError(w, r, err)
		return
	}

	items := make([]assignmentResponse, 0, len(mine))
	for _, a := range mine {
		items = append(items, toAssignmentResponse(a))
	}
	respondJSON(w, r, http.StatusOK, items)
}

func (s *Server) handleNextTask(w http.ResponseWriter, r *http.Request) {
	agentID, err := queryAgentID(r)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, err, http.StatusBadRequest)
		return
	}

	a, err := s.uc.PullForAgent(r.Context(), agentID)
	if err != nil {
		handleUseCaseError(w, r, err)
		return
	}
	if a == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, r, http.StatusOK, toAssignmentResponse(a))
}

func (s *Server) handlePushDispatch(w http.ResponseWriter, r *http.Request) {
	a, err := s.uc.PushBestForOldestPending(r.Context())
	if err != nil {
		handleUseCaseError(w, r, err)
		return
	}
	if a == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	respondJSON(w, r, http.StatusOK, toAssignmentResponse(a))
}

func (s *Server) assignmentTransition(w http.ResponseWriter, r *http.Request,
	apply func(ctx context.Context, id int64) (*model.Assignment, error)) {

	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid assignment id", goerr.V("id", raw)), http.StatusBadRequest)
		return
	}

	a, err := apply(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrAssignmentNotFound) {
			errutil.HandleHTTP(r.Context(), w, err, http.StatusNotFound)
			return
		}
		errutil.HandleHTTP(r.Context(), w, err, http.StatusConflict)
		return
	}
	respondJSON(w, r, http.StatusOK, toAssignmentResponse(a))
}

func (s *Server) handleStartAssignment(w http.ResponseWriter, r *http.Request) {
	s.assignmentTransition(w, r, s.uc.StartAssignment)
}

func (s *Server) handleFinishAssignment(w http.ResponseWriter, r *http.Request) {
	s.assignmentTransition(w, r, s.uc.FinishAssignment)
}

func (s *Server) handleCancelAssignment(w http.ResponseWriter, r *http.Request) {
	s.assignmentTransition(w, r, s.uc.CancelAssignment)
}

func (s *Server) handleWorkload(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	var from, to time.Time
	if raw := r.URL.Query().Get("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid from date", goerr.V("from", raw)), http.StatusBadRequest)
			return
		}
		from = t
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid to date", goerr.V("to", raw)), http.StatusBadRequest)
			return
		}
		to = t
	}

	stats, err := s.uc.ComputeWorkload(r.Context(), q, from, to)
	if err != nil {
		handleUseCaseError(w, r, err)
		return
	}

	type workloadResponse struct {
		AgentID           int64  `json:"agentId"`
		Agent             string `json:"agent"`
		Total             int    `json:"total"`
		InProgress        int    `json:"inProgress"`
		Overdue           int    `json:"overdue"`
		AvgDurationMin    int    `json:"avgDurationMin"`
		MedianDurationMin int    `json:"medianDurationMin"`
		Throughput        int    `json:"throughput"`
	}

	items := make([]workloadResponse, len(stats))
	for i, st := range stats {
		items[i] = workloadResponse{
			AgentID:           st.AgentID,
			Agent:             st.AgentName,
			Total:             st.Total,
			InProgress:        st.InProgress,
			Overdue:           st.Overdue,
			AvgDurationMin:    st.AvgDurationMin,
			MedianDurationMin: st.MedianDurationMin,
			Throughput:        st.Throughput,
		}
	}
	respondJSON(w, r, http.StatusOK, items)
}

func (s *Server) handleBulkReassign(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CaseTokens    []string `json:"caseTokens"`
		TargetAgentID int64    `json:"targetAgentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "invalid request body"), http.StatusBadRequest)
		return
	}

	result, err := s.uc.BulkReassign(r.Context(), req.CaseTokens, req.TargetAgentID)
	if err != nil {
		handleUseCaseError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"updated":  result.Updated,
		"notFound": result.NotFound,
	})
}

func (s *Server) handleJournal(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			errutil.HandleHTTP(r.Context(), w, goerr.New("invalid limit", goerr.V("limit", raw)), http.StatusBadRequest)
			return
		}
		limit = n
	}

	entries, err := s.uc.DispatchJournal(r.Context(), limit)
	if err != nil {
		handleUseCaseError(w, r, err)
		return
	}

	type journalResponse struct {
		ID           string    `json:"id"`
		CaseID       int64     `json:"caseId"`
		AgentID      int64     `json:"agentId"`
		AssignmentID int64     `json:"assignmentId"`
		Trigger      string    `json:"trigger"`
		Score        float64   `json:"score"`
		CreatedAt    time.Time `json:"createdAt"`
	}

	items := make([]journalResponse, len(entries))
	for i, e := range entries {
		items[i] = journalResponse{
			ID:           string(e.ID),
			CaseID:       e.CaseID,
			AgentID:      e.AgentID,
			AssignmentID: e.AssignmentID,
			Trigger:      e.Trigger.String(),
			Score:        e.Score,
			CreatedAt:    e.CreatedAt,
		}
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"items": items,
		"total": len(items),
	})
}
