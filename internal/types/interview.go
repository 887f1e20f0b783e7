package types

// Recommendation values recorded after an interview.
const (
	RecommendProgress = "Progress"
	RecommendReject   = "Reject"
)

// InterviewKit is the structured output of the interviewer agent for one candidate.
type InterviewKit struct {
	CandidateName string   `json:"candidate_name" validate:"required"`
	Questions     []string `json:"questions" validate:"min=1,dive,required"`
	Evaluation    string   `json:"evaluation" validate:"required"`
}

// InterviewResult captures the HR feedback recorded after an interview.
// A candidate who was skipped has no result at all; that is what keeps the
// interview stage interrupt armed.
type InterviewResult struct {
	CandidateName  string   `json:"candidate_name"`
	Questions      []string `json:"interview_questions"`
	Evaluation     string   `json:"evaluation"`
	Recommendation string   `json:"recommendation"`
}

// Interview feedback dispositions accepted from the HR operator.
const (
	DispositionApprove = "approve"
	DispositionReject  = "reject"
	DispositionSkip    = "skip"
)

// InterviewFeedback is a single HR disposition for a screened candidate.
type InterviewFeedback struct {
	CandidateName  string `json:"candidate_name"`
	Disposition    string `json:"disposition"`
	Evaluation     string `json:"evaluation,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`
}
