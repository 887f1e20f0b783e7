package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/affan/hiring-agent/internal/agents"
	"github.com/affan/hiring-agent/internal/config"
	"github.com/affan/hiring-agent/internal/email"
	"github.com/affan/hiring-agent/internal/types"
	"github.com/affan/hiring-agent/internal/workflow"
)

type stubAnalyst struct{ jd *types.JobDescription }

func (s *stubAnalyst) DraftJobDescription(context.Context, string) (*types.JobDescription, error) {
	return s.jd, nil
}

type stubScreener struct{ result *agents.ScreeningResult }

func (s *stubScreener) Screen(context.Context, *types.JobDescription, []types.Candidate) (*agents.ScreeningResult, error) {
	return s.result, nil
}

type stubInterviewer struct{}

func (s *stubInterviewer) PrepareKits(_ context.Context, _ *types.JobDescription, candidates []types.Candidate) ([]types.InterviewKit, error) {
	kits := make([]types.InterviewKit, len(candidates))
	for i, c := range candidates {
		kits[i] = types.InterviewKit{
			CandidateName: c.Name,
			Questions:     []string{fmt.Sprintf("Question for %s", c.Name)},
			Evaluation:    "looks promising",
		}
	}
	return kits, nil
}

type stubDecision struct{ names []string }

func (s *stubDecision) Shortlist(context.Context, *types.JobDescription, []types.InterviewResult) ([]string, error) {
	return s.names, nil
}

type dropNotifier struct{}

func (dropNotifier) Send(context.Context, email.Message) error { return nil }

func newTestServer(t *testing.T) *Server {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("BCRYPT_COST", "10")

	jd := &types.JobDescription{
		Title:            "Senior Go Engineer",
		Company:          "Acme",
		Responsibilities: []string{"a", "b", "c"},
		Qualifications:   []string{"d", "e", "f"},
		Offerings:        []string{"g", "h"},
	}

	graph, err := workflow.NewHiringGraph(&workflow.Stages{
		Analyst: &stubAnalyst{jd: jd},
		Screener: &stubScreener{result: &agents.ScreeningResult{
			Passed:    []string{"Alice Johnson", "Bob Brown"},
			Reasoning: "both match the stack",
		}},
		Interviewer: &stubInterviewer{},
		Decision:    &stubDecision{names: []string{"Alice Johnson", "Bob Brown"}},
		Notifier:    dropNotifier{},
		FormBaseURL: "https://forms.example.com",
	})
	require.NoError(t, err)

	passwords := &config.PasswordConfig{BcryptCost: 10}
	hash, err := passwords.HashPassword("operator-password")
	require.NoError(t, err)

	srv, err := New(Config{
		Port:                 0,
		Scheduler:            workflow.NewScheduler(graph, workflow.NewMemoryStore()),
		OperatorEmail:        "hr@example.com",
		OperatorPasswordHash: hash,
	})
	require.NoError(t, err)
	return srv
}

func doJSON(t *testing.T, srv *Server, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeWorkflow(t *testing.T, rec *httptest.ResponseRecorder) WorkflowResponse {
	t.Helper()
	var resp WorkflowResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func login(t *testing.T, srv *Server) string {
	t.Helper()
	rec := doJSON(t, srv, "POST", "/auth/login", "", LoginRequest{
		Email:    "hr@example.com",
		Password: "operator-password",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp LoginResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func applyAsCandidate(t *testing.T, srv *Server, jobID, name, email string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("job_id", jobID))
	require.NoError(t, form.WriteField("name", name))
	require.NoError(t, form.WriteField("email", email))
	part, err := form.CreateFormFile("resume", "resume.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("Go, Postgres, five years of backend work"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest("POST", "/webhook/application", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStartWorkflowPausesAtJobApproval(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, "POST", "/workflows", "", StartWorkflowRequest{Request: "Hire a senior Go engineer"})
	require.Equal(t, http.StatusCreated, rec.Code)

	resp := decodeWorkflow(t, rec)
	assert.NotEmpty(t, resp.JobID)
	assert.Equal(t, types.StatusPaused, resp.Status)
	assert.Equal(t, workflow.NodeApproveJobDescription, resp.NextNode)
	require.NotNil(t, resp.State.JobDescription)
	assert.Equal(t, "Senior Go Engineer", resp.State.JobDescription.Title)
}

func TestStartWorkflowRequiresRequest(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, "POST", "/workflows", "", StartWorkflowRequest{Request: "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetWorkflowNotFound(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, "GET", "/workflows/unknown-id", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestApprovalRequiresToken(t *testing.T) {
	srv := newTestServer(t)

	rec := doJSON(t, srv, "POST", "/workflows", "", StartWorkflowRequest{Request: "Hire someone"})
	require.Equal(t, http.StatusCreated, rec.Code)
	jobID := decodeWorkflow(t, rec).JobID

	approved := true
	rec = doJSON(t, srv, "POST", "/workflows/"+jobID+"/approvals", "",
		ApprovalRequest{Gate: types.GateJobDescription, Approved: &approved})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, srv, "POST", "/workflows/"+jobID+"/approvals", "not-a-token",
		ApprovalRequest{Gate: types.GateJobDescription, Approved: &approved})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	srv := newTestServer(t)
	rec := doJSON(t, srv, "POST", "/auth/login", "", LoginRequest{
		Email:    "hr@example.com",
		Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestApprovalRejectsUnknownGate(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	rec := doJSON(t, srv, "POST", "/workflows", "", StartWorkflowRequest{Request: "Hire someone"})
	require.Equal(t, http.StatusCreated, rec.Code)
	jobID := decodeWorkflow(t, rec).JobID

	approved := true
	rec = doJSON(t, srv, "POST", "/workflows/"+jobID+"/approvals", token,
		ApprovalRequest{Gate: "budget", Approved: &approved})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplicationWebhookRejectsBadUpload(t *testing.T) {
	srv := newTestServer(t)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("job_id", "some-job"))
	require.NoError(t, form.WriteField("name", "Eve"))
	require.NoError(t, form.WriteField("email", "eve@example.com"))
	part, err := form.CreateFormFile("resume", "resume.exe")
	require.NoError(t, err)
	_, err = part.Write([]byte("binary"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest("POST", "/webhook/application", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplicationWebhookExtractionFailureIsNotClientError(t *testing.T) {
	srv := newTestServer(t)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	require.NoError(t, form.WriteField("job_id", "some-job"))
	require.NoError(t, form.WriteField("name", "Eve"))
	require.NoError(t, form.WriteField("email", "eve@example.com"))
	part, err := form.CreateFormFile("resume", "resume.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("not a real pdf"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest("POST", "/webhook/application", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code,
		"a well-formed upload the converter chokes on is not a validation failure")
}

func TestOfferReplyRejectsInvalidStatus(t *testing.T) {
	srv := newTestServer(t)

	form := url.Values{}
	form.Set("job_id", "some-job")
	form.Set("candidate", "Alice Johnson")
	form.Set("reply", "Maybe")

	req := httptest.NewRequest("POST", "/webhook/offer-reply", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFullHiringFlowOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv)

	rec := doJSON(t, srv, "POST", "/workflows", "", StartWorkflowRequest{Request: "Hire a senior Go engineer"})
	require.Equal(t, http.StatusCreated, rec.Code)
	jobID := decodeWorkflow(t, rec).JobID

	approved := true
	rec = doJSON(t, srv, "POST", "/workflows/"+jobID+"/approvals", token,
		ApprovalRequest{Gate: types.GateJobDescription, Approved: &approved})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeWorkflow(t, rec)
	assert.Equal(t, workflow.NodeSourceCandidates, resp.NextNode)
	assert.Equal(t, types.StatusPaused, resp.Status)

	// The first application closes the sourcing interrupt and drives the
	// workflow through screening; Bob applies too late to be screened but
	// his record is still absorbed into the candidate pool.
	rec = applyAsCandidate(t, srv, jobID, "Alice Johnson", "alice@example.com")
	require.Equal(t, http.StatusOK, rec.Code)
	rec = applyAsCandidate(t, srv, jobID, "Bob Brown", "bob@example.com")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, "GET", "/workflows/"+jobID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeWorkflow(t, rec)
	assert.Equal(t, workflow.NodeConductInterviews, resp.NextNode)
	assert.Len(t, resp.State.Candidates, 2)
	require.Len(t, resp.State.ScreenedCandidates, 1)
	assert.Equal(t, "Alice Johnson", resp.State.ScreenedCandidates[0].Name)
	assert.NotEmpty(t, resp.Checkpoints)

	rec = doJSON(t, srv, "POST", "/workflows/"+jobID+"/interview-feedback", token,
		InterviewFeedbackRequest{Candidate: "Alice Johnson", Disposition: types.DispositionApprove})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, srv, "POST", "/workflows/"+jobID+"/approvals", token,
		ApprovalRequest{Gate: types.GateShortlist, Approved: &approved})
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeWorkflow(t, rec)
	assert.Equal(t, workflow.NodeAwaitOfferResponses, resp.NextNode)
	assert.Equal(t, []string{"Alice Johnson"}, resp.State.OffersSent)

	reply := func(candidate, status, joiningDate string) {
		form := url.Values{}
		form.Set("job_id", jobID)
		form.Set("candidate", candidate)
		form.Set("reply", status)
		if joiningDate != "" {
			form.Set("joining_date", joiningDate)
		}
		req := httptest.NewRequest("POST", "/webhook/offer-reply", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rr := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
	}
	reply("Alice Johnson", "Accepted", "2026-10-01")

	rec = doJSON(t, srv, "GET", "/workflows/"+jobID, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeWorkflow(t, rec)
	assert.Equal(t, types.StatusComplete, resp.Status)
	assert.Equal(t, []string{"Alice Johnson"}, resp.State.ConfirmationsSent)
}
