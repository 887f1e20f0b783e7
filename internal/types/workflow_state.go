package types

// Workflow status values. A workflow is created as StatusRunning and ends in
// StatusComplete or StatusFailed; StatusPaused marks a persisted interrupt.
const (
	StatusRunning  = "running"
	StatusPaused   = "paused"
	StatusComplete = "complete"
	StatusFailed   = "failed"
)

// Approval gate names used by the human-approval stages.
const (
	GateJobDescription = "job_description"
	GateShortlist      = "shortlist"
)

// WorkflowState is the single mutable record for one hiring process.
// Stages only append to or overwrite fields; nothing is ever deleted.
// Optional scalars use pointers so "not yet provided" is distinguishable
// from a zero value (an approval of false is a rejection, not absence).
type WorkflowState struct {
	InitialRequest string `json:"initial_request,omitempty"`

	// Job description stage
	JobDescription *JobDescription `json:"job_description,omitempty"`
	JobID          string          `json:"job_id,omitempty"`
	ApplicationURL string          `json:"application_url,omitempty"`

	// Human approval gates, injected via the approvals endpoint.
	JobApproval       *bool `json:"job_approval,omitempty"`
	ShortlistApproval *bool `json:"shortlist_approval,omitempty"`

	// Sourcing and screening
	Candidates         []Candidate `json:"candidates,omitempty"`
	ScreenedCandidates []Candidate `json:"screened_candidates,omitempty"`
	ScreeningReasoning string      `json:"screening_reasoning,omitempty"`

	// Interview stage
	InterviewKits     []InterviewKit      `json:"interview_kits,omitempty"`
	InterviewFeedback []InterviewFeedback `json:"interview_feedback,omitempty"`
	InterviewResults  []InterviewResult   `json:"interview_results,omitempty"`

	// Decision and offers
	FinalShortlist        []string               `json:"final_shortlist,omitempty"`
	OffersSent            []string               `json:"offers_sent,omitempty"`
	OfferResponses        []OfferResponse        `json:"offer_responses,omitempty"`
	OnboardingSubmissions []OnboardingSubmission `json:"onboarding_submissions,omitempty"`
	ConfirmationsSent     []string               `json:"confirmations_sent,omitempty"`

	// Terminal bookkeeping
	Error  string `json:"error,omitempty"`
	Status string `json:"status,omitempty"`
}

// Clone returns a deep copy of the state. Slices of value types are copied;
// the JobDescription record is duplicated so callers can mutate freely.
func (s *WorkflowState) Clone() *WorkflowState {
	if s == nil {
		return nil
	}
	out := *s
	if s.JobDescription != nil {
		jd := *s.JobDescription
		jd.Responsibilities = append([]string(nil), s.JobDescription.Responsibilities...)
		jd.Qualifications = append([]string(nil), s.JobDescription.Qualifications...)
		jd.Offerings = append([]string(nil), s.JobDescription.Offerings...)
		out.JobDescription = &jd
	}
	if s.JobApproval != nil {
		v := *s.JobApproval
		out.JobApproval = &v
	}
	if s.ShortlistApproval != nil {
		v := *s.ShortlistApproval
		out.ShortlistApproval = &v
	}
	out.Candidates = append([]Candidate(nil), s.Candidates...)
	out.ScreenedCandidates = append([]Candidate(nil), s.ScreenedCandidates...)
	out.InterviewKits = cloneKits(s.InterviewKits)
	out.InterviewFeedback = append([]InterviewFeedback(nil), s.InterviewFeedback...)
	out.InterviewResults = cloneResults(s.InterviewResults)
	out.FinalShortlist = append([]string(nil), s.FinalShortlist...)
	out.OffersSent = append([]string(nil), s.OffersSent...)
	out.OfferResponses = append([]OfferResponse(nil), s.OfferResponses...)
	out.OnboardingSubmissions = append([]OnboardingSubmission(nil), s.OnboardingSubmissions...)
	out.ConfirmationsSent = append([]string(nil), s.ConfirmationsSent...)
	return &out
}

func cloneKits(kits []InterviewKit) []InterviewKit {
	if kits == nil {
		return nil
	}
	out := make([]InterviewKit, len(kits))
	for i, k := range kits {
		k.Questions = append([]string(nil), k.Questions...)
		out[i] = k
	}
	return out
}

func cloneResults(results []InterviewResult) []InterviewResult {
	if results == nil {
		return nil
	}
	out := make([]InterviewResult, len(results))
	for i, r := range results {
		r.Questions = append([]string(nil), r.Questions...)
		out[i] = r
	}
	return out
}
