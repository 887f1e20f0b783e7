package workflow

import "github.com/affan/hiring-agent/internal/types"

// Delta is a partial state update. Scalar fields use pointers so "unset"
// never clobbers existing data. Candidate, response, feedback, and
// submission lists append with duplicate suppression by candidate name;
// the remaining lists overwrite because their stage recomputes them whole.
type Delta struct {
	JobDescription     *types.JobDescription
	ApplicationURL     *string
	JobApproval        *bool
	ShortlistApproval  *bool
	ScreeningReasoning *string
	Error              *string
	Status             *string

	// Append with dedupe by candidate name
	Candidates            []types.Candidate
	OfferResponses        []types.OfferResponse
	OnboardingSubmissions []types.OnboardingSubmission

	// Append; the latest entry per candidate wins when read
	InterviewFeedback []types.InterviewFeedback

	// Overwrite when non-nil
	ScreenedCandidates []types.Candidate
	InterviewKits      []types.InterviewKit
	InterviewResults   []types.InterviewResult
	FinalShortlist     []string
	OffersSent         []string
	ConfirmationsSent  []string

	// ResetOfferResponses clears recorded responses; used when offers go out
	// so a fresh response window starts empty.
	ResetOfferResponses bool
}

// Apply merges the delta into the state in place.
func (d Delta) Apply(s *types.WorkflowState) {
	if d.JobDescription != nil {
		s.JobDescription = d.JobDescription
	}
	if d.ApplicationURL != nil {
		s.ApplicationURL = *d.ApplicationURL
	}
	if d.JobApproval != nil {
		v := *d.JobApproval
		s.JobApproval = &v
	}
	if d.ShortlistApproval != nil {
		v := *d.ShortlistApproval
		s.ShortlistApproval = &v
	}
	if d.ScreeningReasoning != nil {
		s.ScreeningReasoning = *d.ScreeningReasoning
	}
	if d.Error != nil {
		s.Error = *d.Error
	}
	if d.Status != nil {
		s.Status = *d.Status
	}

	for _, c := range d.Candidates {
		if _, exists := types.FindCandidate(s.Candidates, c.Name); !exists {
			s.Candidates = append(s.Candidates, c)
		}
	}
	for _, r := range d.OfferResponses {
		// Only candidates who actually received an offer may reply; a stray
		// reply never counts toward the response window, keeping
		// len(offer_responses) <= len(offers_sent).
		if !offerSent(s.OffersSent, r.CandidateName) {
			continue
		}
		if !types.HasResponded(s.OfferResponses, r.CandidateName) {
			s.OfferResponses = append(s.OfferResponses, r)
		}
	}
	for _, sub := range d.OnboardingSubmissions {
		if !types.HasSubmitted(s.OnboardingSubmissions, sub.CandidateName) {
			s.OnboardingSubmissions = append(s.OnboardingSubmissions, sub)
		}
	}

	s.InterviewFeedback = append(s.InterviewFeedback, d.InterviewFeedback...)

	if d.ScreenedCandidates != nil {
		s.ScreenedCandidates = d.ScreenedCandidates
	}
	if d.InterviewKits != nil {
		s.InterviewKits = d.InterviewKits
	}
	if d.InterviewResults != nil {
		s.InterviewResults = d.InterviewResults
	}
	if d.FinalShortlist != nil {
		s.FinalShortlist = d.FinalShortlist
	}
	if d.OffersSent != nil {
		s.OffersSent = d.OffersSent
	}
	if d.ConfirmationsSent != nil {
		s.ConfirmationsSent = d.ConfirmationsSent
	}
	if d.ResetOfferResponses {
		s.OfferResponses = nil
	}
}

func offerSent(sent []string, name string) bool {
	for _, n := range sent {
		if n == name {
			return true
		}
	}
	return false
}

// IsZero reports whether the delta carries no update at all.
func (d Delta) IsZero() bool {
	return d.JobDescription == nil && d.ApplicationURL == nil &&
		d.JobApproval == nil && d.ShortlistApproval == nil &&
		d.ScreeningReasoning == nil && d.Error == nil && d.Status == nil &&
		len(d.Candidates) == 0 && len(d.OfferResponses) == 0 &&
		len(d.OnboardingSubmissions) == 0 && len(d.InterviewFeedback) == 0 &&
		d.ScreenedCandidates == nil && d.InterviewKits == nil &&
		d.InterviewResults == nil && d.FinalShortlist == nil &&
		d.OffersSent == nil && d.ConfirmationsSent == nil &&
		!d.ResetOfferResponses
}
