package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/affan/hiring-agent/internal/intake"
	"github.com/affan/hiring-agent/internal/observability"
	"github.com/affan/hiring-agent/internal/types"
	"github.com/affan/hiring-agent/internal/workflow"
)

var runConfigPath string

var runCmd = &cobra.Command{
	Use:   "run [hiring request]",
	Short: "Run one hiring workflow interactively",
	Long: `Run a single hiring workflow from the terminal. Approvals, applications,
interview feedback, and offer replies are collected via prompts instead of
the HTTP endpoints.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runConfigPath, "config", "", "Path to JSON config file")
	rootCmd.AddCommand(runCmd)
}

func runRun(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig(runConfigPath)
	if err != nil {
		return err
	}

	ctx := context.Background()

	notifier, err := buildNotifier(cfg)
	if err != nil {
		return err
	}
	stages, closeLLM, err := buildStages(ctx, cfg, notifier)
	if err != nil {
		return err
	}
	defer closeLLM()

	store, database, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if database != nil {
		defer database.Close()
	}

	graph, err := workflow.NewHiringGraph(stages)
	if err != nil {
		return fmt.Errorf("failed to build workflow graph: %w", err)
	}
	scheduler := workflow.NewScheduler(graph, store)

	printer := observability.NewPrinter(os.Stdout)
	reader := bufio.NewReader(os.Stdin)

	request := strings.Join(args, " ")
	jobID, snap, err := scheduler.Start(ctx, request)
	if err != nil {
		return fmt.Errorf("failed to start workflow: %w", err)
	}
	fmt.Printf("Started workflow %s\n", jobID)

	for snap.State.Status == types.StatusPaused {
		delta, ok, err := promptForInterrupt(reader, printer, snap)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Leaving workflow paused; resume later via the HTTP API or another run.")
			break
		}
		snap, err = scheduler.Resume(ctx, jobID, delta)
		if err != nil {
			return fmt.Errorf("failed to resume workflow: %w", err)
		}
	}

	printer.PrintWorkflowStatus(snap.State, snap.NextNode)
	printer.PrintOfferBoard(snap.State)
	return nil
}

// promptForInterrupt collects the operator input the paused node is waiting
// for. Returns ok=false when the operator declines to provide it.
func promptForInterrupt(reader *bufio.Reader, printer *observability.Printer, snap *workflow.Snapshot) (workflow.Delta, bool, error) {
	state := snap.State

	switch snap.NextNode {
	case workflow.NodeApproveJobDescription:
		printer.PrintJobDescription(state.JobDescription)
		approved := promptYesNo(reader, "Approve this job description?")
		return workflow.Delta{JobApproval: &approved}, true, nil

	case workflow.NodeSourceCandidates:
		candidates, err := promptForCandidates(reader)
		if err != nil {
			return workflow.Delta{}, false, err
		}
		if len(candidates) == 0 {
			return workflow.Delta{}, false, nil
		}
		return workflow.Delta{Candidates: candidates}, true, nil

	case workflow.NodeConductInterviews:
		feedback := promptForFeedback(reader, state)
		if len(feedback) == 0 {
			return workflow.Delta{}, false, nil
		}
		return workflow.Delta{InterviewFeedback: feedback}, true, nil

	case workflow.NodeApproveShortlist:
		fmt.Printf("Proposed shortlist: %s\n", strings.Join(state.FinalShortlist, ", "))
		approved := promptYesNo(reader, "Approve this shortlist?")
		return workflow.Delta{ShortlistApproval: &approved}, true, nil

	case workflow.NodeAwaitOfferResponses:
		responses, submissions := promptForOfferReplies(reader, state)
		if len(responses) == 0 {
			return workflow.Delta{}, false, nil
		}
		return workflow.Delta{OfferResponses: responses, OnboardingSubmissions: submissions}, true, nil
	}

	fmt.Printf("No interactive input available for %q.\n", snap.NextNode)
	return workflow.Delta{}, false, nil
}

func promptForCandidates(reader *bufio.Reader) ([]types.Candidate, error) {
	fmt.Println("Enter applicants. Leave the name blank to finish.")

	var candidates []types.Candidate
	for {
		name := prompt(reader, "Candidate name")
		if name == "" {
			return candidates, nil
		}
		email := prompt(reader, "Email")
		phone := prompt(reader, "Phone (optional)")
		if err := intake.ValidatePhoneNumber(phone); err != nil {
			fmt.Printf("  %v\n", err)
			continue
		}

		path := prompt(reader, "Path to resume file")
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Printf("  failed to read resume: %v\n", err)
			continue
		}
		if err := intake.ValidateResumeFile(path, int64(len(data))); err != nil {
			fmt.Printf("  %v\n", err)
			continue
		}
		resume, err := intake.ExtractText(path, data)
		if err != nil {
			fmt.Printf("  %v\n", err)
			continue
		}

		candidates = append(candidates, types.Candidate{
			Name:      name,
			Email:     email,
			Phone:     phone,
			Resume:    resume,
			AppliedAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
}

func promptForFeedback(reader *bufio.Reader, state *types.WorkflowState) []types.InterviewFeedback {
	var feedback []types.InterviewFeedback
	for _, c := range state.ScreenedCandidates {
		fmt.Printf("\nInterview kit for %s:\n", c.Name)
		for _, kit := range state.InterviewKits {
			if kit.CandidateName != c.Name {
				continue
			}
			for _, q := range kit.Questions {
				fmt.Printf("  • %s\n", q)
			}
			if kit.Evaluation != "" {
				fmt.Printf("  Evaluation guide: %s\n", kit.Evaluation)
			}
		}

		disposition := prompt(reader, "Disposition for "+c.Name+" (approve/reject/skip)")
		switch disposition {
		case types.DispositionApprove, types.DispositionReject:
			feedback = append(feedback, types.InterviewFeedback{
				CandidateName: c.Name,
				Disposition:   disposition,
				Evaluation:    prompt(reader, "Evaluation notes (optional)"),
			})
		default:
			fmt.Printf("  skipping %s for now\n", c.Name)
		}
	}
	return feedback
}

func promptForOfferReplies(reader *bufio.Reader, state *types.WorkflowState) ([]types.OfferResponse, []types.OnboardingSubmission) {
	var responses []types.OfferResponse
	var submissions []types.OnboardingSubmission
	for _, name := range state.OffersSent {
		if types.HasResponded(state.OfferResponses, name) {
			continue
		}
		reply := prompt(reader, "Reply from "+name+" (Accepted/Rejected/Negotiation, blank to skip)")
		if reply == "" {
			continue
		}
		if !types.ValidOfferStatus(reply) {
			fmt.Printf("  unknown reply %q, skipped\n", reply)
			continue
		}
		responses = append(responses, types.OfferResponse{CandidateName: name, Status: reply})
		if reply == types.OfferAccepted {
			if joiningDate := prompt(reader, "Joining date"); joiningDate != "" {
				submissions = append(submissions, types.OnboardingSubmission{
					CandidateName: name,
					JoiningDate:   joiningDate,
				})
			}
		}
	}
	return responses, submissions
}

func prompt(reader *bufio.Reader, label string) string {
	fmt.Printf("%s: ", label)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func promptYesNo(reader *bufio.Reader, label string) bool {
	answer := strings.ToLower(prompt(reader, label+" [y/N]"))
	return answer == "y" || answer == "yes"
}
