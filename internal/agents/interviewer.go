package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/affan/hiring-agent/internal/llm"
	"github.com/affan/hiring-agent/internal/schemas"
	"github.com/affan/hiring-agent/internal/types"
)

// Interviewer prepares interview kits for screened candidates.
type Interviewer struct {
	client llm.Client
}

// NewInterviewer creates the interviewer agent
func NewInterviewer(client llm.Client) *Interviewer {
	return &Interviewer{client: client}
}

const interviewerPrompt = `You are a senior hiring manager. Your task is to prepare an interview for each candidate below. Based on the job description and each candidate's resume, generate relevant interview questions and an evaluation of their fit for the role.

Job Description:
%s

Candidates:
%s

Respond with a JSON object with a "kits" array; each kit has these fields:
- "candidate_name": the candidate's name, exactly as given
- "questions": a list of 3-5 technical and behavioral questions
- "evaluation": a summary of the candidate's strengths and weaknesses based on their resume`

// PrepareKits generates one interview kit per screened candidate.
func (i *Interviewer) PrepareKits(ctx context.Context, jd *types.JobDescription, candidates []types.Candidate) ([]types.InterviewKit, error) {
	jdJSON, err := json.Marshal(jd)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job description: %w", err)
	}

	profiles, err := json.Marshal(candidates)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal candidates: %w", err)
	}

	raw, err := i.client.GenerateJSON(ctx, fmt.Sprintf(interviewerPrompt, jdJSON, profiles), llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare interview kits: %w", err)
	}

	if err := schemas.Validate(schemas.InterviewKits, raw); err != nil {
		return nil, fmt.Errorf("interview kit output rejected: %w", err)
	}

	var out struct {
		Kits []types.InterviewKit `json:"kits"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to parse interview kits: %w", err)
	}
	for idx := range out.Kits {
		if err := validate.Struct(&out.Kits[idx]); err != nil {
			return nil, fmt.Errorf("interview kit output rejected: %w", err)
		}
	}
	return out.Kits, nil
}
