package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindCandidate(t *testing.T) {
	candidates := []Candidate{
		{Name: "Jane Doe", Email: "jane@example.com"},
		{Name: "John Smith", Email: "john@example.com"},
	}

	c, ok := FindCandidate(candidates, "John Smith")
	require.True(t, ok)
	assert.Equal(t, "john@example.com", c.Email)

	_, ok = FindCandidate(candidates, "john smith")
	assert.False(t, ok, "matching is case sensitive")

	_, ok = FindCandidate(nil, "Jane Doe")
	assert.False(t, ok)
}

func TestValidOfferStatus(t *testing.T) {
	assert.True(t, ValidOfferStatus(OfferAccepted))
	assert.True(t, ValidOfferStatus(OfferRejected))
	assert.True(t, ValidOfferStatus(OfferNegotiation))
	assert.False(t, ValidOfferStatus("accepted"))
	assert.False(t, ValidOfferStatus(""))
	assert.False(t, ValidOfferStatus("Declined"))
}

func TestHasResponded(t *testing.T) {
	responses := []OfferResponse{
		{CandidateName: "Jane Doe", Status: OfferAccepted},
	}

	assert.True(t, HasResponded(responses, "Jane Doe"))
	assert.False(t, HasResponded(responses, "John Smith"))
	assert.False(t, HasResponded(nil, "Jane Doe"))
}

func TestHasSubmitted(t *testing.T) {
	submissions := []OnboardingSubmission{
		{CandidateName: "Jane Doe", JoiningDate: "2025-09-01"},
	}

	assert.True(t, HasSubmitted(submissions, "Jane Doe"))
	assert.False(t, HasSubmitted(submissions, "John Smith"))
}

func TestWorkflowStateClone(t *testing.T) {
	approved := true
	state := &WorkflowState{
		InitialRequest: "Hire a senior Go engineer",
		JobDescription: &JobDescription{
			Title:            "Senior Go Engineer",
			Company:          "Acme",
			Responsibilities: []string{"a", "b", "c"},
			Qualifications:   []string{"d", "e", "f"},
			Offerings:        []string{"g", "h"},
		},
		JobID:       "job-123",
		JobApproval: &approved,
		Candidates: []Candidate{
			{Name: "Jane Doe", Email: "jane@example.com"},
		},
		InterviewKits: []InterviewKit{
			{CandidateName: "Jane Doe", Questions: []string{"q1"}, Evaluation: "eval"},
		},
		OffersSent: []string{"Jane Doe"},
		Status:     StatusRunning,
	}

	clone := state.Clone()
	require.NotNil(t, clone)
	assert.Equal(t, state, clone)

	clone.JobDescription.Title = "Staff Go Engineer"
	clone.Candidates[0].Email = "changed@example.com"
	clone.InterviewKits[0].Questions[0] = "changed"
	clone.OffersSent[0] = "changed"
	*clone.JobApproval = false

	assert.Equal(t, "Senior Go Engineer", state.JobDescription.Title)
	assert.Equal(t, "jane@example.com", state.Candidates[0].Email)
	assert.Equal(t, "q1", state.InterviewKits[0].Questions[0])
	assert.Equal(t, "Jane Doe", state.OffersSent[0])
	assert.True(t, *state.JobApproval)
}

func TestWorkflowStateCloneNil(t *testing.T) {
	var state *WorkflowState
	assert.Nil(t, state.Clone())
}
