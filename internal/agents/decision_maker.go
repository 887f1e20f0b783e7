package agents

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/affan/hiring-agent/internal/llm"
	"github.com/affan/hiring-agent/internal/schemas"
	"github.com/affan/hiring-agent/internal/types"
)

// DecisionMaker reviews interview results and produces the final shortlist.
type DecisionMaker struct {
	client llm.Client
}

// NewDecisionMaker creates the decision maker agent
func NewDecisionMaker(client llm.Client) *DecisionMaker {
	return &DecisionMaker{client: client}
}

const decisionPrompt = `You are the head of HR. Your task is to review the interview results and create a final shortlist of candidates. Only include candidates who were recommended to 'Progress' in the interview stage. Synthesize all the information and provide the final list of names.

Job Description:
%s

Interview Results:
%s

Respond with a JSON object with these fields:
- "final_shortlist": the final list of candidate names to be presented to the hiring manager
- "reasoning": a brief justification for the selection`

// Shortlist selects the candidates to receive offers.
func (d *DecisionMaker) Shortlist(ctx context.Context, jd *types.JobDescription, results []types.InterviewResult) ([]string, error) {
	jdJSON, err := json.Marshal(jd)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal job description: %w", err)
	}

	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal interview results: %w", err)
	}

	raw, err := d.client.GenerateJSON(ctx, fmt.Sprintf(decisionPrompt, jdJSON, resultsJSON), llm.TierAdvanced)
	if err != nil {
		return nil, fmt.Errorf("failed to build shortlist: %w", err)
	}

	if err := schemas.Validate(schemas.Shortlist, raw); err != nil {
		return nil, fmt.Errorf("shortlist output rejected: %w", err)
	}

	var out struct {
		FinalShortlist []string `json:"final_shortlist"`
		Reasoning      string   `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to parse shortlist: %w", err)
	}
	return out.FinalShortlist, nil
}
