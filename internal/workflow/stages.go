package workflow

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/affan/hiring-agent/internal/agents"
	"github.com/affan/hiring-agent/internal/email"
	"github.com/affan/hiring-agent/internal/types"
)

// JobAnalyst drafts a structured job description from a hiring request.
type JobAnalyst interface {
	DraftJobDescription(ctx context.Context, request string) (*types.JobDescription, error)
}

// ResumeScreener partitions candidates into passed and failed.
type ResumeScreener interface {
	Screen(ctx context.Context, jd *types.JobDescription, candidates []types.Candidate) (*agents.ScreeningResult, error)
}

// KitBuilder prepares interview kits for candidates.
type KitBuilder interface {
	PrepareKits(ctx context.Context, jd *types.JobDescription, candidates []types.Candidate) ([]types.InterviewKit, error)
}

// ShortlistBuilder selects the final shortlist from interview results.
type ShortlistBuilder interface {
	Shortlist(ctx context.Context, jd *types.JobDescription, results []types.InterviewResult) ([]string, error)
}

// Stages bundles the collaborators the stage functions depend on.
type Stages struct {
	Analyst     JobAnalyst
	Screener    ResumeScreener
	Interviewer KitBuilder
	Decision    ShortlistBuilder
	Notifier    email.Notifier
	FormBaseURL string
}

// NewHiringGraph wires the full hiring graph over the given collaborators.
func NewHiringGraph(st *Stages) (*Graph, error) {
	return NewGraph(NodeDraftJobDescription,
		Node{Name: NodeDraftJobDescription, Run: st.draftJobDescription, Next: toEnd(NodeApproveJobDescription)},
		Node{Name: NodeApproveJobDescription, Run: st.approveJobDescription, Next: toEnd(NodePostJob)},
		Node{Name: NodePostJob, Run: st.postJob, Next: toEnd(NodeSourceCandidates)},
		Node{Name: NodeSourceCandidates, Run: st.sourceCandidates, Next: toEnd(NodeScreenCandidates)},
		Node{Name: NodeScreenCandidates, Run: st.screenCandidates, Next: toEnd(NodeScheduleInterviews)},
		Node{Name: NodeScheduleInterviews, Run: st.scheduleInterviews, Next: toEnd(NodeConductInterviews)},
		Node{Name: NodeConductInterviews, Run: st.conductInterviews, Next: toEnd(NodeMakeDecision)},
		Node{Name: NodeMakeDecision, Run: st.makeDecision, Next: toEnd(NodeApproveShortlist)},
		Node{Name: NodeApproveShortlist, Run: st.approveShortlist, Next: toEnd(NodeSendOffers)},
		Node{Name: NodeSendOffers, Run: st.sendOffers, Next: toEnd(NodeAwaitOfferResponses)},
		Node{Name: NodeAwaitOfferResponses, Run: st.awaitOfferResponses, Next: toEnd(NodeRouteDecision)},
		Node{Name: NodeRouteDecision, Run: st.routeDecision, Next: routeAcceptance},
		Node{Name: NodeProcessAcceptances, Run: st.processAcceptances, Next: func(*types.WorkflowState) string { return End }},
		Node{Name: NodeAllRejected, Run: st.allRejected, Next: func(*types.WorkflowState) string { return End }},
	)
}

func errDelta(format string, args ...any) StageResult {
	msg := fmt.Sprintf(format, args...)
	return Completed(Delta{Error: &msg})
}

func (st *Stages) draftJobDescription(ctx context.Context, s *types.WorkflowState) StageResult {
	if s.InitialRequest == "" {
		return errDelta("no hiring request provided")
	}

	jd, err := st.Analyst.DraftJobDescription(ctx, s.InitialRequest)
	if err != nil {
		return errDelta("failed to draft job description: %v", err)
	}
	return Completed(Delta{JobDescription: jd})
}

func (st *Stages) approveJobDescription(_ context.Context, s *types.WorkflowState) StageResult {
	if s.JobDescription == nil {
		return errDelta("no job description to approve")
	}
	if s.JobApproval == nil {
		return Pending("waiting for job description approval")
	}
	if !*s.JobApproval {
		return errDelta("job description rejected by approver")
	}
	return Completed(Delta{})
}

func (st *Stages) postJob(_ context.Context, s *types.WorkflowState) StageResult {
	if s.JobDescription == nil {
		return errDelta("no job description to post")
	}

	url := fmt.Sprintf("%s/apply?job_id=%s", st.FormBaseURL, s.JobID)
	log.Printf("job %s: posted %q, applications at %s", s.JobID, s.JobDescription.Title, url)
	return Completed(Delta{ApplicationURL: &url})
}

func (st *Stages) sourceCandidates(_ context.Context, s *types.WorkflowState) StageResult {
	// An empty intake means "not ready yet", never an error.
	if len(s.Candidates) == 0 {
		return Pending("waiting for applications")
	}
	return Completed(Delta{})
}

func (st *Stages) screenCandidates(ctx context.Context, s *types.WorkflowState) StageResult {
	if s.JobDescription == nil || len(s.Candidates) == 0 {
		return errDelta("cannot screen without a job description and candidates")
	}

	result, err := st.Screener.Screen(ctx, s.JobDescription, s.Candidates)
	if err != nil {
		return errDelta("failed to screen candidates: %v", err)
	}

	// Re-hydrate passed names against the sourced set; unknown names are
	// dropped, never fabricated.
	var screened []types.Candidate
	for _, name := range result.Passed {
		if c, ok := types.FindCandidate(s.Candidates, name); ok {
			screened = append(screened, c)
		} else {
			log.Printf("job %s: screener returned unknown candidate %q, dropped", s.JobID, name)
		}
	}
	if len(screened) == 0 {
		return errDelta("no candidates passed screening")
	}
	return Completed(Delta{ScreenedCandidates: screened, ScreeningReasoning: &result.Reasoning})
}

func (st *Stages) scheduleInterviews(ctx context.Context, s *types.WorkflowState) StageResult {
	if len(s.ScreenedCandidates) == 0 {
		return errDelta("no screened candidates to schedule")
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range s.ScreenedCandidates {
		if c.Email == "" {
			log.Printf("job %s: candidate %q has no email, skipping invite", s.JobID, c.Name)
			continue
		}
		candidate := c
		g.Go(func() error {
			msg := email.InterviewInvite(candidate, s.JobDescription, "to be confirmed by the scheduling team")
			if err := st.Notifier.Send(gctx, msg); err != nil {
				// Delivery failures never abort the stage.
				log.Printf("job %s: failed to send interview invite to %q: %v", s.JobID, candidate.Name, err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return Completed(Delta{})
}

func (st *Stages) conductInterviews(ctx context.Context, s *types.WorkflowState) StageResult {
	if len(s.ScreenedCandidates) == 0 {
		return errDelta("no screened candidates to interview")
	}

	kits := s.InterviewKits
	var missing []types.Candidate
	for _, c := range s.ScreenedCandidates {
		if !hasKit(kits, c.Name) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		generated, err := st.Interviewer.PrepareKits(ctx, s.JobDescription, missing)
		if err != nil {
			// Generation failures skip those candidates for this pass.
			log.Printf("job %s: failed to prepare interview kits: %v", s.JobID, err)
		} else {
			kits = append(kits, generated...)
		}
	}

	feedback := latestFeedback(s.InterviewFeedback)
	var results []types.InterviewResult
	for _, c := range s.ScreenedCandidates {
		fb, ok := feedback[c.Name]
		if !ok {
			// A skipped or unreviewed candidate keeps the interrupt armed.
			return PendingWith("waiting for interview feedback", Delta{InterviewKits: kits})
		}
		results = append(results, resultFromFeedback(c.Name, fb, kits))
	}
	return Completed(Delta{InterviewKits: kits, InterviewResults: results})
}

// latestFeedback keeps the most recent disposition per candidate; skip
// removes the candidate so the interview interrupt stays open for them.
func latestFeedback(entries []types.InterviewFeedback) map[string]types.InterviewFeedback {
	latest := make(map[string]types.InterviewFeedback)
	for _, fb := range entries {
		if fb.Disposition == types.DispositionSkip {
			delete(latest, fb.CandidateName)
			continue
		}
		latest[fb.CandidateName] = fb
	}
	return latest
}

func resultFromFeedback(name string, fb types.InterviewFeedback, kits []types.InterviewKit) types.InterviewResult {
	result := types.InterviewResult{CandidateName: name}
	for _, kit := range kits {
		if kit.CandidateName == name {
			result.Questions = kit.Questions
			result.Evaluation = kit.Evaluation
			break
		}
	}
	if fb.Evaluation != "" {
		result.Evaluation = fb.Evaluation
	}
	switch fb.Disposition {
	case types.DispositionApprove:
		result.Recommendation = types.RecommendProgress
		if fb.Recommendation != "" {
			result.Recommendation = fb.Recommendation
		}
	default:
		result.Recommendation = types.RecommendReject
	}
	return result
}

func hasKit(kits []types.InterviewKit, name string) bool {
	for _, kit := range kits {
		if kit.CandidateName == name {
			return true
		}
	}
	return false
}

func (st *Stages) makeDecision(ctx context.Context, s *types.WorkflowState) StageResult {
	var progressed []types.InterviewResult
	for _, r := range s.InterviewResults {
		if r.Recommendation == types.RecommendProgress {
			progressed = append(progressed, r)
		}
	}
	if len(progressed) == 0 {
		return errDelta("no candidates recommended to progress")
	}

	shortlist, err := st.Decision.Shortlist(ctx, s.JobDescription, progressed)
	if err != nil {
		return errDelta("failed to build shortlist: %v", err)
	}

	// Names must come from the interview results; anything else is dropped.
	var validated []string
	for _, name := range shortlist {
		for _, r := range progressed {
			if r.CandidateName == name {
				validated = append(validated, name)
				break
			}
		}
	}
	if len(validated) == 0 {
		return errDelta("decision agent returned an empty shortlist")
	}
	return Completed(Delta{FinalShortlist: validated})
}

func (st *Stages) approveShortlist(_ context.Context, s *types.WorkflowState) StageResult {
	if len(s.FinalShortlist) == 0 {
		return errDelta("no shortlist to approve")
	}
	if s.ShortlistApproval == nil {
		return Pending("waiting for shortlist approval")
	}
	if !*s.ShortlistApproval {
		return errDelta("shortlist rejected by approver")
	}
	return Completed(Delta{})
}

func (st *Stages) sendOffers(ctx context.Context, s *types.WorkflowState) StageResult {
	formURL := fmt.Sprintf("%s/offer-reply?job_id=%s", st.FormBaseURL, s.JobID)

	var sent []string
	for _, name := range s.FinalShortlist {
		c, ok := types.FindCandidate(s.ScreenedCandidates, name)
		if !ok || c.Email == "" {
			log.Printf("job %s: no email for shortlisted candidate %q, offer skipped", s.JobID, name)
			continue
		}
		if err := st.Notifier.Send(ctx, email.OfferMessage(c, s.JobDescription, formURL)); err != nil {
			log.Printf("job %s: failed to send offer to %q: %v", s.JobID, name, err)
			continue
		}
		sent = append(sent, name)
	}

	// offers_sent records only candidates actually emailed; the response
	// window starts empty.
	return Completed(Delta{OffersSent: sent, ResetOfferResponses: true})
}

func (st *Stages) awaitOfferResponses(_ context.Context, s *types.WorkflowState) StageResult {
	if len(s.OfferResponses) < len(s.OffersSent) {
		return Pending(fmt.Sprintf("waiting for offer responses (%d of %d)", len(s.OfferResponses), len(s.OffersSent)))
	}
	return Completed(Delta{})
}

func (st *Stages) routeDecision(_ context.Context, _ *types.WorkflowState) StageResult {
	return Completed(Delta{})
}

func routeAcceptance(s *types.WorkflowState) string {
	for _, r := range s.OfferResponses {
		if r.Status == types.OfferAccepted {
			return NodeProcessAcceptances
		}
	}
	return NodeAllRejected
}

func (st *Stages) processAcceptances(ctx context.Context, s *types.WorkflowState) StageResult {
	formURL := fmt.Sprintf("%s/onboarding?job_id=%s", st.FormBaseURL, s.JobID)

	var confirmed []string
	for _, r := range s.OfferResponses {
		if r.Status != types.OfferAccepted {
			continue
		}

		c, ok := ResolveCandidate(s.ScreenedCandidates, r.CandidateName)
		if !ok || c.Email == "" {
			log.Printf("job %s: no email resolved for accepted candidate %q, confirmation skipped", s.JobID, r.CandidateName)
			continue
		}

		joiningDate := "To be confirmed"
		if sub, ok := resolveSubmission(s.OnboardingSubmissions, r.CandidateName); ok && sub.JoiningDate != "" {
			joiningDate = sub.JoiningDate
		}

		msg := email.OnboardingMessage(c, s.JobDescription, formURL)
		msg.Body = fmt.Sprintf("%s\n\nJoining date: %s", msg.Body, joiningDate)
		if err := st.Notifier.Send(ctx, msg); err != nil {
			log.Printf("job %s: failed to send confirmation to %q: %v", s.JobID, c.Name, err)
			continue
		}
		confirmed = append(confirmed, c.Name)
	}

	status := types.StatusComplete
	return Completed(Delta{ConfirmationsSent: confirmed, Status: &status})
}

// resolveSubmission applies the same exact-then-first-token precedence used
// for candidates to the onboarding submissions.
func resolveSubmission(subs []types.OnboardingSubmission, name string) (types.OnboardingSubmission, bool) {
	for _, sub := range subs {
		if sub.CandidateName == name {
			return sub, true
		}
	}
	first := firstToken(name)
	if first == "" {
		return types.OnboardingSubmission{}, false
	}
	for _, sub := range subs {
		if strings.EqualFold(firstToken(sub.CandidateName), first) {
			return sub, true
		}
	}
	return types.OnboardingSubmission{}, false
}

func (st *Stages) allRejected(_ context.Context, s *types.WorkflowState) StageResult {
	log.Printf("job %s: all offers rejected", s.JobID)
	msg := "all candidates rejected the offer"
	status := types.StatusFailed
	return Completed(Delta{Error: &msg, Status: &status})
}
