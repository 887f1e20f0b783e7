package workflow

// StageResult is the outcome of running one stage: either the stage completed
// and produced a partial state update, or it cannot complete yet and the
// scheduler must checkpoint and wait for external input.
type StageResult struct {
	delta   Delta
	pending bool
	reason  string
}

// Completed marks the stage done with the given partial state update.
func Completed(delta Delta) StageResult {
	return StageResult{delta: delta}
}

// Pending marks the stage as waiting for external input.
func Pending(reason string) StageResult {
	return StageResult{pending: true, reason: reason}
}

// PendingWith marks the stage as waiting but still carries a partial update,
// so work already done (generated interview kits, for example) survives the
// interrupt instead of being redone on resume.
func PendingWith(reason string, delta Delta) StageResult {
	return StageResult{pending: true, reason: reason, delta: delta}
}

// IsPending reports whether the stage is waiting for external input.
func (r StageResult) IsPending() bool {
	return r.pending
}

// Reason returns the pending reason, empty for completed results.
func (r StageResult) Reason() string {
	return r.reason
}

// Delta returns the partial state update of a completed result.
func (r StageResult) Delta() Delta {
	return r.delta
}
