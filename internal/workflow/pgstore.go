package workflow

import (
	"context"

	"github.com/affan/hiring-agent/internal/db"
	"github.com/affan/hiring-agent/internal/types"
)

// PostgresStore adapts the pgx-backed database to the Store interface.
type PostgresStore struct {
	db *db.DB
}

// NewPostgresStore wraps an open database connection
func NewPostgresStore(database *db.DB) *PostgresStore {
	return &PostgresStore{db: database}
}

// Save overwrites the snapshot for a job ID
func (s *PostgresStore) Save(ctx context.Context, jobID string, snap *Snapshot) error {
	if err := s.db.SaveWorkflow(ctx, jobID, snap.State, snap.NextNode); err != nil {
		return &StorageError{Op: "save", Cause: err}
	}
	return nil
}

// Load returns the snapshot for a job ID, or ErrNotFound
func (s *PostgresStore) Load(ctx context.Context, jobID string) (*Snapshot, error) {
	state, nextNode, err := s.db.GetWorkflow(ctx, jobID)
	if err != nil {
		return nil, &StorageError{Op: "load", Cause: err}
	}
	if state == nil {
		return nil, ErrNotFound
	}
	return &Snapshot{State: state, NextNode: nextNode}, nil
}

// AppendCheckpoint records an immutable stage-boundary snapshot
func (s *PostgresStore) AppendCheckpoint(ctx context.Context, jobID, node string, state *types.WorkflowState) error {
	if _, err := s.db.CreateCheckpoint(ctx, jobID, node, state); err != nil {
		return &StorageError{Op: "checkpoint", Cause: err}
	}
	return nil
}

// History lists checkpoint metadata in sequence order
func (s *PostgresStore) History(ctx context.Context, jobID string) ([]HistoryEntry, error) {
	checkpoints, err := s.db.ListCheckpoints(ctx, jobID)
	if err != nil {
		return nil, &StorageError{Op: "history", Cause: err}
	}
	entries := make([]HistoryEntry, len(checkpoints))
	for i, cp := range checkpoints {
		entries[i] = HistoryEntry{Seq: cp.Seq, Node: cp.Node, CreatedAt: cp.CreatedAt}
	}
	return entries, nil
}
