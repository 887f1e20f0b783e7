// Package workflow implements the durable hiring state machine: a directed
// stage graph executed by a scheduler that checkpoints after every node and
// pauses at interrupt points until webhooks inject the missing data.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/affan/hiring-agent/internal/types"
)

// ErrNotFound is returned when no workflow exists for a job ID.
var ErrNotFound = errors.New("workflow not found")

// StorageError wraps an I/O failure from the backing store. Callers may retry.
type StorageError struct {
	Op    string
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Cause)
}

func (e *StorageError) Unwrap() error {
	return e.Cause
}

// Snapshot is the persisted view of one workflow: the full state plus the
// scheduler's next-node pointer. NextNode is empty for terminal workflows.
type Snapshot struct {
	State    *types.WorkflowState `json:"state"`
	NextNode string               `json:"next_node,omitempty"`
}

// HistoryEntry is checkpoint metadata for the status endpoint.
type HistoryEntry struct {
	Seq       int       `json:"seq"`
	Node      string    `json:"node"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists workflow snapshots and their checkpoint history.
// Save overwrites the whole record atomically; field-level merge semantics
// belong to the scheduler, never to the store.
type Store interface {
	// Save overwrites the snapshot for a job ID
	Save(ctx context.Context, jobID string, snap *Snapshot) error
	// Load returns the snapshot for a job ID, or ErrNotFound
	Load(ctx context.Context, jobID string) (*Snapshot, error)
	// AppendCheckpoint records an immutable stage-boundary snapshot
	AppendCheckpoint(ctx context.Context, jobID, node string, state *types.WorkflowState) error
	// History lists checkpoint metadata in sequence order
	History(ctx context.Context, jobID string) ([]HistoryEntry, error)
}
