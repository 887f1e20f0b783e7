package server

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/affan/hiring-agent/internal/intake"
	"github.com/affan/hiring-agent/internal/types"
	"github.com/affan/hiring-agent/internal/workflow"
)

// handleApplicationWebhook ingests a candidate application with a resume
// upload. Validation failures are rejected before any state is touched;
// a duplicate application for the same name is absorbed by the merge.
func (s *Server) handleApplicationWebhook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(intake.MaxFileSize + 1<<20); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	jobID := r.FormValue("job_id")
	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))
	phone := strings.TrimSpace(r.FormValue("phone"))

	if jobID == "" || name == "" || email == "" {
		s.errorFrom(w, &ErrValidation{Field: "form", Message: "job_id, name, and email are required"})
		return
	}
	if err := intake.ValidatePhoneNumber(phone); err != nil {
		s.errorFrom(w, &ErrValidation{Field: "phone", Message: err.Error()})
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorFrom(w, &ErrValidation{Field: "resume", Message: "resume file is required"})
		return
	}
	defer file.Close()

	if err := intake.ValidateResumeFile(header.Filename, header.Size); err != nil {
		s.errorFrom(w, &ErrValidation{Field: "resume", Message: err.Error()})
		return
	}
	data, err := io.ReadAll(io.LimitReader(file, intake.MaxFileSize))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to read resume upload")
		return
	}
	resumeText, err := intake.ExtractText(header.Filename, data)
	if err != nil {
		// An unsupported upload is the caller's fault; a converter failure on
		// an accepted file type is not.
		var ve *intake.ValidationError
		if errors.As(err, &ve) {
			s.errorFrom(w, &ErrValidation{Field: "resume", Message: ve.Message})
			return
		}
		log.Printf("resume extraction failed for %q: %v", header.Filename, err)
		s.errorResponse(w, http.StatusUnprocessableEntity, "failed to extract resume text")
		return
	}

	delta := workflow.Delta{
		Candidates: []types.Candidate{{
			Name:        name,
			Email:       email,
			Resume:      resumeText,
			Phone:       phone,
			CoverLetter: strings.TrimSpace(r.FormValue("cover_letter")),
			LinkedInURL: strings.TrimSpace(r.FormValue("linkedin_url")),
			AppliedAt:   time.Now().UTC().Format(time.RFC3339),
		}},
	}

	snap, err := s.scheduler.Resume(r.Context(), jobID, delta)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"message": "application received",
		"status":  snap.State.Status,
	})
}

// handleOfferReplyWebhook records a candidate's reply to an offer. The reply
// status is validated before any state is touched; an accepted reply that
// already carries a joining date doubles as the onboarding submission.
func (s *Server) handleOfferReplyWebhook(w http.ResponseWriter, r *http.Request) {
	jobID := r.FormValue("job_id")
	candidate := strings.TrimSpace(r.FormValue("candidate"))
	reply := strings.TrimSpace(r.FormValue("reply"))

	if jobID == "" || candidate == "" {
		s.errorFrom(w, &ErrValidation{Field: "form", Message: "job_id and candidate are required"})
		return
	}
	status, ok := normalizeOfferStatus(reply)
	if !ok {
		s.errorFrom(w, &ErrValidation{Field: "reply", Message: "reply must be Accepted, Rejected, or Negotiation"})
		return
	}

	delta := workflow.Delta{
		OfferResponses: []types.OfferResponse{{
			CandidateName:     candidate,
			Status:            status,
			SalaryExpectation: strings.TrimSpace(r.FormValue("salary_expectation")),
			Comments:          strings.TrimSpace(r.FormValue("comments")),
		}},
	}
	if joiningDate := strings.TrimSpace(r.FormValue("joining_date")); status == types.OfferAccepted && joiningDate != "" {
		delta.OnboardingSubmissions = []types.OnboardingSubmission{{
			CandidateName: candidate,
			JoiningDate:   joiningDate,
			Comments:      strings.TrimSpace(r.FormValue("comments")),
		}}
	}

	snap, err := s.scheduler.Resume(r.Context(), jobID, delta)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"message": "reply recorded",
		"status":  snap.State.Status,
	})
}

// handleOnboardingWebhook records a hired candidate's onboarding form.
func (s *Server) handleOnboardingWebhook(w http.ResponseWriter, r *http.Request) {
	jobID := r.FormValue("job_id")
	candidate := strings.TrimSpace(r.FormValue("candidate"))
	joiningDate := strings.TrimSpace(r.FormValue("joining_date"))

	if jobID == "" || candidate == "" {
		s.errorFrom(w, &ErrValidation{Field: "form", Message: "job_id and candidate are required"})
		return
	}
	if joiningDate == "" {
		s.errorFrom(w, &ErrValidation{Field: "joining_date", Message: "joining_date is required"})
		return
	}

	delta := workflow.Delta{
		OnboardingSubmissions: []types.OnboardingSubmission{{
			CandidateName: candidate,
			JoiningDate:   joiningDate,
			Comments:      strings.TrimSpace(r.FormValue("comments")),
		}},
	}

	snap, err := s.scheduler.Resume(r.Context(), jobID, delta)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{
		"message": "onboarding details recorded",
		"status":  snap.State.Status,
	})
}

// normalizeOfferStatus canonicalizes a reply to one of the offer statuses.
func normalizeOfferStatus(reply string) (string, bool) {
	for _, status := range []string{types.OfferAccepted, types.OfferRejected, types.OfferNegotiation} {
		if strings.EqualFold(reply, status) {
			return status, true
		}
	}
	return "", false
}
