// Package agents implements the LLM-backed roles of the hiring pipeline.
// Each agent builds a prompt, requests JSON output, and validates the result
// against an embedded schema before handing it to the workflow.
package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/affan/hiring-agent/internal/llm"
	"github.com/affan/hiring-agent/internal/schemas"
	"github.com/affan/hiring-agent/internal/types"
)

var validate = validator.New()

// Analyst drafts a structured job description from a hiring request.
type Analyst struct {
	client llm.Client
}

// NewAnalyst creates the job analyst agent
func NewAnalyst(client llm.Client) *Analyst {
	return &Analyst{client: client}
}

const analystPrompt = `You are an expert HR analyst. Your task is to create a detailed, professional job description based on a user's request.

User's request: %s

Respond with a JSON object with these fields:
- "title": a clear job title
- "company": the company name (use a placeholder if not specified)
- "responsibilities": a comprehensive list of responsibilities (at least 3-5 items)
- "qualifications": detailed qualifications and required skills (at least 3-5 items)
- "offerings": benefits and offerings (at least 2-3 items)`

// DraftJobDescription generates a job description for the given request.
func (a *Analyst) DraftJobDescription(ctx context.Context, request string) (*types.JobDescription, error) {
	raw, err := a.client.GenerateJSON(ctx, fmt.Sprintf(analystPrompt, request), llm.TierAdvanced)
	if err != nil {
		return nil, fmt.Errorf("failed to draft job description: %w", err)
	}

	if err := schemas.Validate(schemas.JobDescription, raw); err != nil {
		return nil, fmt.Errorf("job description output rejected: %w", err)
	}

	var jd types.JobDescription
	if err := json.Unmarshal([]byte(raw), &jd); err != nil {
		return nil, fmt.Errorf("failed to parse job description: %w", err)
	}
	if err := validate.Struct(&jd); err != nil {
		return nil, fmt.Errorf("job description output rejected: %w", err)
	}
	return &jd, nil
}
