// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/affan/hiring-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintJobDescription outputs a human-readable summary of the drafted posting.
func (p *Printer) PrintJobDescription(jd *types.JobDescription) {
	if jd == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:    %s\n", jd.Title))
	sb.WriteString(fmt.Sprintf("Company:  %s\n", jd.Company))
	sb.WriteString("\n")

	writeList(&sb, "Responsibilities:", jd.Responsibilities)
	writeList(&sb, "Qualifications:", jd.Qualifications)
	writeList(&sb, "Offerings:", jd.Offerings)

	p.printBox("DRAFT JOB DESCRIPTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintWorkflowStatus outputs the scheduler view of one workflow.
func (p *Printer) PrintWorkflowStatus(state *types.WorkflowState, nextNode string) {
	if state == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Job ID:   %s\n", state.JobID))
	sb.WriteString(fmt.Sprintf("Status:   %s\n", state.Status))
	if nextNode != "" {
		sb.WriteString(fmt.Sprintf("Waiting:  %s\n", nextNode))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Applications:  %d\n", len(state.Candidates)))
	sb.WriteString(fmt.Sprintf("Screened:      %d\n", len(state.ScreenedCandidates)))
	sb.WriteString(fmt.Sprintf("Shortlisted:   %d\n", len(state.FinalShortlist)))
	sb.WriteString(fmt.Sprintf("Offers sent:   %d\n", len(state.OffersSent)))
	sb.WriteString(fmt.Sprintf("Replies:       %d\n", len(state.OfferResponses)))
	if state.Error != "" {
		sb.WriteString(fmt.Sprintf("\nError: %s\n", state.Error))
	}

	p.printBox("WORKFLOW STATUS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintOfferBoard outputs offer replies as they stand.
func (p *Printer) PrintOfferBoard(state *types.WorkflowState) {
	if state == nil || len(state.OffersSent) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Offers out: %d, replies: %d\n\n", len(state.OffersSent), len(state.OfferResponses)))

	for _, name := range state.OffersSent {
		status := "awaiting reply"
		for _, r := range state.OfferResponses {
			if r.CandidateName == name {
				status = r.Status
				break
			}
		}
		sb.WriteString(fmt.Sprintf("• %s: %s\n", name, status))
	}

	p.printBox("OFFER BOARD", strings.TrimSuffix(sb.String(), "\n"))
}

func writeList(sb *strings.Builder, header string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(header + "\n")
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	sb.WriteString("\n")
}
