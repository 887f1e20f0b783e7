// Package types provides type definitions for structured data used throughout the hiring-agent system.
package types

// Candidate represents an applicant sourced for a job posting.
// Records are created on application intake and treated as immutable once
// screened; downstream lists copy candidates by value.
type Candidate struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Resume      string `json:"resume"`
	Phone       string `json:"phone,omitempty"`
	CoverLetter string `json:"cover_letter,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	AppliedAt   string `json:"applied_at,omitempty"`
}

// FindCandidate returns the candidate with the given name, matched exactly.
func FindCandidate(candidates []Candidate, name string) (Candidate, bool) {
	for _, c := range candidates {
		if c.Name == name {
			return c, true
		}
	}
	return Candidate{}, false
}
