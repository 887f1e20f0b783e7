package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/affan/hiring-agent/internal/types"
)

// MemoryStore is an in-process Store used by tests and DB-less CLI runs.
// Snapshots are deep-copied on both save and load so callers never share
// mutable state with the store.
type MemoryStore struct {
	mu          sync.RWMutex
	snapshots   map[string]*Snapshot
	checkpoints map[string][]memCheckpoint
}

type memCheckpoint struct {
	node      string
	state     *types.WorkflowState
	createdAt time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots:   make(map[string]*Snapshot),
		checkpoints: make(map[string][]memCheckpoint),
	}
}

// Save overwrites the snapshot for a job ID
func (s *MemoryStore) Save(_ context.Context, jobID string, snap *Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshots[jobID] = &Snapshot{State: snap.State.Clone(), NextNode: snap.NextNode}
	return nil
}

// Load returns the snapshot for a job ID, or ErrNotFound
func (s *MemoryStore) Load(_ context.Context, jobID string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snapshots[jobID]
	if !ok {
		return nil, ErrNotFound
	}
	return &Snapshot{State: snap.State.Clone(), NextNode: snap.NextNode}, nil
}

// AppendCheckpoint records an immutable stage-boundary snapshot
func (s *MemoryStore) AppendCheckpoint(_ context.Context, jobID, node string, state *types.WorkflowState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checkpoints[jobID] = append(s.checkpoints[jobID], memCheckpoint{
		node:      node,
		state:     state.Clone(),
		createdAt: time.Now(),
	})
	return nil
}

// History lists checkpoint metadata in sequence order
func (s *MemoryStore) History(_ context.Context, jobID string) ([]HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	checkpoints := s.checkpoints[jobID]
	entries := make([]HistoryEntry, len(checkpoints))
	for i, cp := range checkpoints {
		entries[i] = HistoryEntry{Seq: i + 1, Node: cp.node, CreatedAt: cp.createdAt}
	}
	return entries, nil
}
