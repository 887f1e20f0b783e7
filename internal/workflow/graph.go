package workflow

import (
	"context"
	"fmt"

	"github.com/affan/hiring-agent/internal/types"
)

// Node names of the hiring graph.
const (
	NodeDraftJobDescription   = "draft_job_description"
	NodeApproveJobDescription = "approve_job_description"
	NodePostJob               = "post_job"
	NodeSourceCandidates      = "source_candidates"
	NodeScreenCandidates      = "screen_candidates"
	NodeScheduleInterviews    = "schedule_interviews"
	NodeConductInterviews     = "conduct_interviews"
	NodeMakeDecision          = "make_decision"
	NodeApproveShortlist      = "approve_shortlist"
	NodeSendOffers            = "send_offers"
	NodeAwaitOfferResponses   = "await_offer_responses"
	NodeRouteDecision         = "route_decision"
	NodeProcessAcceptances    = "process_acceptances"
	NodeAllRejected           = "all_rejected"
)

// End marks the terminal successor.
const End = ""

// StageFunc runs one stage against the current state.
type StageFunc func(ctx context.Context, s *types.WorkflowState) StageResult

// Node is one stage in the graph: its transition function plus a successor
// function evaluated on post-stage state. Next returning End terminates.
type Node struct {
	Name string
	Run  StageFunc
	Next func(s *types.WorkflowState) string
}

// Graph is the directed stage graph with a single entry node.
type Graph struct {
	Entry string
	nodes map[string]Node
}

// NewGraph builds a graph from the given nodes.
func NewGraph(entry string, nodes ...Node) (*Graph, error) {
	g := &Graph{Entry: entry, nodes: make(map[string]Node, len(nodes))}
	for _, n := range nodes {
		if _, dup := g.nodes[n.Name]; dup {
			return nil, fmt.Errorf("duplicate node: %s", n.Name)
		}
		g.nodes[n.Name] = n
	}
	if _, ok := g.nodes[entry]; !ok {
		return nil, fmt.Errorf("entry node not defined: %s", entry)
	}
	return g, nil
}

// Node looks up a node by name.
func (g *Graph) Node(name string) (Node, bool) {
	n, ok := g.nodes[name]
	return n, ok
}

// toEnd routes to the terminal node when the state carries an error,
// otherwise to the given successor.
func toEnd(next string) func(s *types.WorkflowState) string {
	return func(s *types.WorkflowState) string {
		if s.Error != "" {
			return End
		}
		return next
	}
}
