package workflow

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/affan/hiring-agent/internal/types"
)

// Scheduler drives workflows through the stage graph. Execution is
// single-threaded per job: a keyed mutex serializes Start/Resume/webhook
// deliveries for the same job ID so concurrent read-modify-write cycles
// cannot lose updates. Different jobs run fully independently.
type Scheduler struct {
	graph *Graph
	store Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewScheduler creates a scheduler over the given graph and store.
func NewScheduler(graph *Graph, store Store) *Scheduler {
	return &Scheduler{
		graph: graph,
		store: store,
		locks: make(map[string]*sync.Mutex),
	}
}

func (sch *Scheduler) jobLock(jobID string) *sync.Mutex {
	sch.mu.Lock()
	defer sch.mu.Unlock()
	lock, ok := sch.locks[jobID]
	if !ok {
		lock = &sync.Mutex{}
		sch.locks[jobID] = lock
	}
	return lock
}

// Start creates a new workflow for the hiring request and runs it until the
// first interrupt or a terminal node. Returns the job ID and the resulting
// snapshot.
func (sch *Scheduler) Start(ctx context.Context, request string) (string, *Snapshot, error) {
	jobID := uuid.New().String()

	lock := sch.jobLock(jobID)
	lock.Lock()
	defer lock.Unlock()

	state := &types.WorkflowState{
		InitialRequest: request,
		JobID:          jobID,
		Status:         types.StatusRunning,
	}
	snap := &Snapshot{State: state, NextNode: sch.graph.Entry}
	if err := sch.store.Save(ctx, jobID, snap); err != nil {
		return "", nil, err
	}

	snap, err := sch.run(ctx, jobID, snap)
	if err != nil {
		return "", nil, err
	}
	return jobID, snap, nil
}

// Resume merges the injected partial state into the checkpointed state and
// continues from the node the checkpoint says is next. An empty delta is a
// no-op returning the current snapshot, so idle polls never re-execute the
// pending node or grow the checkpoint history.
func (sch *Scheduler) Resume(ctx context.Context, jobID string, delta Delta) (*Snapshot, error) {
	lock := sch.jobLock(jobID)
	lock.Lock()
	defer lock.Unlock()

	snap, err := sch.store.Load(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if snap.NextNode == End {
		// Terminal workflow: webhook data may still be recorded, but no
		// stage runs again.
		if !delta.IsZero() {
			delta.Apply(snap.State)
			if err := sch.store.Save(ctx, jobID, snap); err != nil {
				return nil, err
			}
		}
		return snap, nil
	}

	if delta.IsZero() {
		return snap, nil
	}

	delta.Apply(snap.State)
	if err := sch.store.Save(ctx, jobID, snap); err != nil {
		return nil, err
	}

	return sch.run(ctx, jobID, snap)
}

// GetState returns the current snapshot for a job ID.
func (sch *Scheduler) GetState(ctx context.Context, jobID string) (*Snapshot, error) {
	return sch.store.Load(ctx, jobID)
}

// History returns checkpoint metadata for a job ID.
func (sch *Scheduler) History(ctx context.Context, jobID string) ([]HistoryEntry, error) {
	if _, err := sch.store.Load(ctx, jobID); err != nil {
		return nil, err
	}
	return sch.store.History(ctx, jobID)
}

// run executes nodes from the snapshot's next-node pointer until the graph
// terminates or a stage reports Pending. A checkpoint is persisted after
// every node; no partial-stage state is ever stored.
func (sch *Scheduler) run(ctx context.Context, jobID string, snap *Snapshot) (*Snapshot, error) {
	state := snap.State
	current := snap.NextNode

	for current != End {
		node, ok := sch.graph.Node(current)
		if !ok {
			return nil, fmt.Errorf("unknown node in checkpoint: %s", current)
		}

		result := node.Run(ctx, state)
		result.Delta().Apply(state)

		if result.IsPending() {
			state.Status = types.StatusPaused
			snap = &Snapshot{State: state, NextNode: current}
			if err := sch.checkpoint(ctx, jobID, current, snap); err != nil {
				return nil, err
			}
			log.Printf("job %s: paused at %s: %s", jobID, current, result.Reason())
			return snap, nil
		}

		state.Status = types.StatusRunning
		next := node.Next(state)
		snap = &Snapshot{State: state, NextNode: next}
		if next == End {
			sch.finalize(state)
		}
		if err := sch.checkpoint(ctx, jobID, current, snap); err != nil {
			return nil, err
		}
		current = next
	}
	return snap, nil
}

// finalize stamps the terminal status when a stage has not already done so.
func (sch *Scheduler) finalize(state *types.WorkflowState) {
	if state.Status == types.StatusComplete || state.Status == types.StatusFailed {
		return
	}
	if state.Error != "" {
		state.Status = types.StatusFailed
	} else {
		state.Status = types.StatusComplete
	}
}

func (sch *Scheduler) checkpoint(ctx context.Context, jobID, node string, snap *Snapshot) error {
	if err := sch.store.Save(ctx, jobID, snap); err != nil {
		return err
	}
	if err := sch.store.AppendCheckpoint(ctx, jobID, node, snap.State); err != nil {
		return err
	}
	return nil
}
