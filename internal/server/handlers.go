package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/affan/hiring-agent/internal/types"
	"github.com/affan/hiring-agent/internal/workflow"
)

// StartWorkflowRequest is the payload for starting a hiring workflow.
type StartWorkflowRequest struct {
	Request string `json:"request"`
}

// WorkflowResponse is the snapshot returned by workflow endpoints.
type WorkflowResponse struct {
	JobID       string                  `json:"job_id"`
	Status      string                  `json:"status"`
	NextNode    string                  `json:"next_node,omitempty"`
	State       *types.WorkflowState    `json:"state"`
	Checkpoints []workflow.HistoryEntry `json:"checkpoints,omitempty"`
}

// handleStartWorkflow creates a workflow and runs it to the first interrupt.
func (s *Server) handleStartWorkflow(w http.ResponseWriter, r *http.Request) {
	var req StartWorkflowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Request) == "" {
		s.errorFrom(w, &ErrValidation{Field: "request", Message: "hiring request is required"})
		return
	}

	jobID, snap, err := s.scheduler.Start(r.Context(), req.Request)
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	s.jsonResponse(w, http.StatusCreated, WorkflowResponse{
		JobID:    jobID,
		Status:   snap.State.Status,
		NextNode: snap.NextNode,
		State:    snap.State,
	})
}

// handleGetWorkflow returns the current snapshot and checkpoint history.
func (s *Server) handleGetWorkflow(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("job_id")

	snap, err := s.scheduler.GetState(r.Context(), jobID)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	history, err := s.scheduler.History(r.Context(), jobID)
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, WorkflowResponse{
		JobID:       jobID,
		Status:      snap.State.Status,
		NextNode:    snap.NextNode,
		State:       snap.State,
		Checkpoints: history,
	})
}

// ApprovalRequest is the payload for a human approval gate.
type ApprovalRequest struct {
	Gate     string `json:"gate"`
	Approved *bool  `json:"approved"`
}

// handleApproval injects an approval decision and resumes the workflow.
func (s *Server) handleApproval(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("job_id")

	var req ApprovalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.Approved == nil {
		s.errorFrom(w, &ErrValidation{Field: "approved", Message: "approved is required"})
		return
	}

	var delta workflow.Delta
	switch req.Gate {
	case types.GateJobDescription:
		delta.JobApproval = req.Approved
	case types.GateShortlist:
		delta.ShortlistApproval = req.Approved
	default:
		s.errorFrom(w, &ErrValidation{Field: "gate", Message: "gate must be job_description or shortlist"})
		return
	}

	snap, err := s.scheduler.Resume(r.Context(), jobID, delta)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, WorkflowResponse{
		JobID:    jobID,
		Status:   snap.State.Status,
		NextNode: snap.NextNode,
		State:    snap.State,
	})
}

// InterviewFeedbackRequest is the payload for recording interview feedback.
type InterviewFeedbackRequest struct {
	Candidate      string `json:"candidate"`
	Disposition    string `json:"disposition"`
	Evaluation     string `json:"evaluation,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`
}

// handleInterviewFeedback records an HR disposition and resumes the workflow.
func (s *Server) handleInterviewFeedback(w http.ResponseWriter, r *http.Request) {
	jobID := r.PathValue("job_id")

	var req InterviewFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if req.Candidate == "" {
		s.errorFrom(w, &ErrValidation{Field: "candidate", Message: "candidate is required"})
		return
	}
	switch req.Disposition {
	case types.DispositionApprove, types.DispositionReject, types.DispositionSkip:
	default:
		s.errorFrom(w, &ErrValidation{Field: "disposition", Message: "disposition must be approve, reject, or skip"})
		return
	}

	delta := workflow.Delta{
		InterviewFeedback: []types.InterviewFeedback{{
			CandidateName:  req.Candidate,
			Disposition:    req.Disposition,
			Evaluation:     req.Evaluation,
			Recommendation: req.Recommendation,
		}},
	}

	snap, err := s.scheduler.Resume(r.Context(), jobID, delta)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, WorkflowResponse{
		JobID:    jobID,
		Status:   snap.State.Status,
		NextNode: snap.NextNode,
		State:    snap.State,
	})
}
