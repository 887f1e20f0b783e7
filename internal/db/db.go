// Package db provides PostgreSQL persistence for workflow state.
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/affan/hiring-agent/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// SaveWorkflow upserts the current snapshot of a workflow keyed by job ID.
// next_node is empty for terminal workflows.
func (db *DB) SaveWorkflow(ctx context.Context, jobID string, state *types.WorkflowState, nextNode string) error {
	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal workflow state: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO workflows (job_id, state, next_node, status)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (job_id) DO UPDATE
		 SET state = EXCLUDED.state, next_node = EXCLUDED.next_node,
		     status = EXCLUDED.status, updated_at = NOW()`,
		jobID, stateJSON, nextNode, state.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to save workflow %s: %w", jobID, err)
	}
	return nil
}

// GetWorkflow retrieves a workflow snapshot by job ID. Returns nil, nil when
// no workflow exists.
func (db *DB) GetWorkflow(ctx context.Context, jobID string) (*types.WorkflowState, string, error) {
	var stateJSON []byte
	var nextNode string

	err := db.pool.QueryRow(ctx,
		`SELECT state, next_node FROM workflows WHERE job_id = $1`,
		jobID,
	).Scan(&stateJSON, &nextNode)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to get workflow %s: %w", jobID, err)
	}

	var state types.WorkflowState
	if err := json.Unmarshal(stateJSON, &state); err != nil {
		return nil, "", fmt.Errorf("failed to parse workflow state %s: %w", jobID, err)
	}
	return &state, nextNode, nil
}

// WorkflowSummary is a lightweight view of a workflow for listing
type WorkflowSummary struct {
	JobID     string `json:"job_id"`
	Status    string `json:"status"`
	NextNode  string `json:"next_node,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ListWorkflows retrieves recent workflows, optionally filtered by status
func (db *DB) ListWorkflows(ctx context.Context, status string, limit int) ([]WorkflowSummary, error) {
	if limit == 0 {
		limit = 50
	}

	query := `SELECT job_id, status, next_node, created_at::text, updated_at::text
		FROM workflows WHERE 1=1`
	args := []any{}
	argNum := 1

	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, status)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY updated_at DESC LIMIT $%d", argNum)
	args = append(args, limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}
	defer rows.Close()

	var workflows []WorkflowSummary
	for rows.Next() {
		var w WorkflowSummary
		if err := rows.Scan(&w.JobID, &w.Status, &w.NextNode, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan workflow: %w", err)
		}
		workflows = append(workflows, w)
	}
	return workflows, nil
}

// DeleteWorkflow deletes a workflow and its checkpoints (via cascade)
func (db *DB) DeleteWorkflow(ctx context.Context, jobID string) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM workflows WHERE job_id = $1`, jobID)
	if err != nil {
		return fmt.Errorf("failed to delete workflow: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("workflow not found: %s", jobID)
	}
	return nil
}
