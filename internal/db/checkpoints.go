package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/affan/hiring-agent/internal/types"
)

// Checkpoint is one append-only history record, written after every node of
// a workflow run. Seq orders checkpoints within a workflow.
type Checkpoint struct {
	ID        int64                `json:"id"`
	JobID     string               `json:"job_id"`
	Seq       int                  `json:"seq"`
	Node      string               `json:"node"`
	State     *types.WorkflowState `json:"state"`
	CreatedAt time.Time            `json:"created_at"`
}

// CreateCheckpoint appends a checkpoint for a workflow. The sequence number
// is assigned inside the insert so concurrent writers cannot collide.
func (db *DB) CreateCheckpoint(ctx context.Context, jobID, node string, state *types.WorkflowState) (*Checkpoint, error) {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal checkpoint state: %w", err)
	}

	var checkpoint Checkpoint
	err = db.pool.QueryRow(ctx,
		`INSERT INTO workflow_checkpoints (job_id, seq, node, state)
		 VALUES ($1,
		         (SELECT COALESCE(MAX(seq), 0) + 1 FROM workflow_checkpoints WHERE job_id = $1),
		         $2, $3)
		 RETURNING id, job_id, seq, node, created_at`,
		jobID, node, stateJSON,
	).Scan(&checkpoint.ID, &checkpoint.JobID, &checkpoint.Seq, &checkpoint.Node, &checkpoint.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkpoint: %w", err)
	}

	checkpoint.State = state
	return &checkpoint, nil
}

// GetLatestCheckpoint retrieves the most recent checkpoint for a workflow.
// Returns nil, nil when the workflow has no checkpoints.
func (db *DB) GetLatestCheckpoint(ctx context.Context, jobID string) (*Checkpoint, error) {
	var checkpoint Checkpoint
	var stateJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, job_id, seq, node, state, created_at
		 FROM workflow_checkpoints
		 WHERE job_id = $1
		 ORDER BY seq DESC
		 LIMIT 1`,
		jobID,
	).Scan(&checkpoint.ID, &checkpoint.JobID, &checkpoint.Seq, &checkpoint.Node, &stateJSON, &checkpoint.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get checkpoint: %w", err)
	}

	var state types.WorkflowState
	if err := json.Unmarshal(stateJSON, &state); err != nil {
		return nil, fmt.Errorf("failed to parse checkpoint state: %w", err)
	}
	checkpoint.State = &state
	return &checkpoint, nil
}

// ListCheckpoints retrieves all checkpoints for a workflow in sequence order.
func (db *DB) ListCheckpoints(ctx context.Context, jobID string) ([]Checkpoint, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, job_id, seq, node, state, created_at
		 FROM workflow_checkpoints
		 WHERE job_id = $1
		 ORDER BY seq`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}
	defer rows.Close()

	var checkpoints []Checkpoint
	for rows.Next() {
		var checkpoint Checkpoint
		var stateJSON []byte
		if err := rows.Scan(&checkpoint.ID, &checkpoint.JobID, &checkpoint.Seq, &checkpoint.Node, &stateJSON, &checkpoint.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan checkpoint: %w", err)
		}

		var state types.WorkflowState
		if err := json.Unmarshal(stateJSON, &state); err != nil {
			return nil, fmt.Errorf("failed to parse checkpoint state: %w", err)
		}
		checkpoint.State = &state
		checkpoints = append(checkpoints, checkpoint)
	}
	return checkpoints, nil
}
