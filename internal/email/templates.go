package email

import (
	"fmt"

	"github.com/affan/hiring-agent/internal/types"
)

// InterviewInvite builds the interview scheduling email for a candidate.
func InterviewInvite(c types.Candidate, jd *types.JobDescription, slot string) Message {
	body := fmt.Sprintf(
		"Dear %s,\n\nThank you for applying for the %s position at %s. "+
			"We would like to invite you to an interview.\n\nProposed slot: %s\n\n"+
			"Please reply to this email if the slot does not work for you.\n\nBest regards,\nHR Department",
		c.Name, jd.Title, jd.Company, slot)
	return Message{
		To:      c.Email,
		Subject: fmt.Sprintf("Interview Invitation: %s at %s", jd.Title, jd.Company),
		Body:    body,
	}
}

// OfferMessage builds the offer email, pointing the candidate at the offer
// response form for the job.
func OfferMessage(c types.Candidate, jd *types.JobDescription, formURL string) Message {
	body := fmt.Sprintf(
		"Dear %s,\n\nCongratulations! We are pleased to offer you the position of %s at %s.\n\n"+
			"Please record your decision using the form below:\n%s\n\nBest regards,\nHR Department",
		c.Name, jd.Title, jd.Company, formURL)
	return Message{
		To:      c.Email,
		Subject: fmt.Sprintf("Job Offer: %s at %s", jd.Title, jd.Company),
		Body:    body,
	}
}

// OnboardingMessage builds the acceptance confirmation email with the
// onboarding form link.
func OnboardingMessage(c types.Candidate, jd *types.JobDescription, formURL string) Message {
	body := fmt.Sprintf(
		"Dear %s,\n\nWelcome aboard! We are delighted you accepted the %s position at %s.\n\n"+
			"To get you started, please fill in the onboarding form:\n%s\n\nBest regards,\nHR Department",
		c.Name, jd.Title, jd.Company, formURL)
	return Message{
		To:      c.Email,
		Subject: fmt.Sprintf("Welcome to %s!", jd.Company),
		Body:    body,
	}
}
