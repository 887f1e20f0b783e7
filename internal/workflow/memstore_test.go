package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/affan/hiring-agent/internal/types"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	state := &types.WorkflowState{JobID: "j1", Status: types.StatusRunning}
	require.NoError(t, store.Save(ctx, "j1", &Snapshot{State: state, NextNode: NodePostJob}))

	snap, err := store.Load(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, NodePostJob, snap.NextNode)
	assert.Equal(t, "j1", snap.State.JobID)
}

func TestMemoryStoreIsolatesCallers(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	state := &types.WorkflowState{JobID: "j1", OffersSent: []string{"Jane Doe"}}
	require.NoError(t, store.Save(ctx, "j1", &Snapshot{State: state}))

	// Mutating the saved state or a loaded copy never leaks into the store
	state.OffersSent[0] = "changed"

	snap, err := store.Load(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", snap.State.OffersSent[0])

	snap.State.OffersSent[0] = "changed again"
	snap2, err := store.Load(ctx, "j1")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", snap2.State.OffersSent[0])
}

func TestMemoryStoreHistory(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	state := &types.WorkflowState{JobID: "j1"}
	require.NoError(t, store.AppendCheckpoint(ctx, "j1", NodeDraftJobDescription, state))
	require.NoError(t, store.AppendCheckpoint(ctx, "j1", NodePostJob, state))

	history, err := store.History(ctx, "j1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 1, history[0].Seq)
	assert.Equal(t, NodeDraftJobDescription, history[0].Node)
	assert.Equal(t, NodePostJob, history[1].Node)
}
