package types

// Offer reply statuses a candidate may return.
const (
	OfferAccepted    = "Accepted"
	OfferRejected    = "Rejected"
	OfferNegotiation = "Negotiation"
)

// ValidOfferStatus reports whether s is one of the accepted reply statuses.
func ValidOfferStatus(s string) bool {
	switch s {
	case OfferAccepted, OfferRejected, OfferNegotiation:
		return true
	}
	return false
}

// OfferResponse records a candidate's reply to a job offer.
// At most one response exists per candidate name; later replies for the
// same name are dropped as duplicates.
type OfferResponse struct {
	CandidateName     string `json:"candidate"`
	Status            string `json:"status"`
	SalaryExpectation string `json:"salary_expectation,omitempty"`
	Comments          string `json:"comments,omitempty"`
}

// OnboardingSubmission is the post-acceptance form data supplied by a candidate.
type OnboardingSubmission struct {
	CandidateName string `json:"candidate"`
	JoiningDate   string `json:"joining_date"`
	Comments      string `json:"comments,omitempty"`
}

// HasResponded reports whether a response from the named candidate is already recorded.
func HasResponded(responses []OfferResponse, name string) bool {
	for _, r := range responses {
		if r.CandidateName == name {
			return true
		}
	}
	return false
}

// HasSubmitted reports whether an onboarding submission from the named candidate exists.
func HasSubmitted(submissions []OnboardingSubmission, name string) bool {
	for _, s := range submissions {
		if s.CandidateName == name {
			return true
		}
	}
	return false
}
