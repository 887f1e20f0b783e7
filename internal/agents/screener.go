package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/affan/hiring-agent/internal/llm"
	"github.com/affan/hiring-agent/internal/schemas"
	"github.com/affan/hiring-agent/internal/types"
)

// ScreeningResult is the structured output of the resume screener.
type ScreeningResult struct {
	Passed    []string `json:"passed"`
	Failed    []string `json:"failed"`
	Reasoning string   `json:"reasoning"`
}

// Screener evaluates candidate resumes against a job description.
type Screener struct {
	client llm.Client
}

// NewScreener creates the resume screener agent
func NewScreener(client llm.Client) *Screener {
	return &Screener{client: client}
}

const screenerPrompt = `You are an expert technical recruiter with years of experience in candidate screening. Your task is to screen candidate resumes against a job description and decide who is a good fit.

SCREENING CRITERIA:
- Match technical skills and qualifications listed in the job description
- Evaluate relevant experience and years in the field
- Consider cultural fit indicators and soft skills
- Be fair and unbiased in your assessment

IMPORTANT GUIDELINES:
1. A candidate PASSES if they meet at least 70%% of the required qualifications
2. Consider transferable skills and growth potential
3. Don't be overly strict on exact keyword matches
4. Focus on core competencies rather than every minor requirement

Job Description:
%s

Candidates to Screen:
%s

Respond with a JSON object with these fields:
- "passed": names of candidates who passed the screening
- "failed": names of candidates who did not pass
- "reasoning": a brief explanation of the screening decisions`

// Screen evaluates candidates and returns the screening result.
func (s *Screener) Screen(ctx context.Context, jd *types.JobDescription, candidates []types.Candidate) (*ScreeningResult, error) {
	jdJSON, err := json.Marshal(jd)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job description: %w", err)
	}

	var sb strings.Builder
	for _, c := range candidates {
		fmt.Fprintf(&sb, "Candidate: %s\nResume:\n%s\n\n", c.Name, c.Resume)
	}

	raw, err := s.client.GenerateJSON(ctx, fmt.Sprintf(screenerPrompt, jdJSON, sb.String()), llm.TierStandard)
	if err != nil {
		return nil, fmt.Errorf("failed to screen candidates: %w", err)
	}

	if err := schemas.Validate(schemas.Screening, raw); err != nil {
		return nil, fmt.Errorf("screening output rejected: %w", err)
	}

	var result ScreeningResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("failed to parse screening result: %w", err)
	}
	return &result, nil
}
