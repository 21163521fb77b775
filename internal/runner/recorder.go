package runner

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Recorder is an Executor that records invocations instead of running them.
type Recorder struct {
	// Out, if set, receives one "would run" line per invocation.
	Out io.Writer
	// FailWith, if set, is consulted for every invocation; a non-nil result is
	// returned from Run after the invocation is recorded.
	FailWith func(inv Invocation) error

	mu          sync.Mutex
	invocations []Invocation
}

// Run records inv.
func (r *Recorder) Run(_ context.Context, inv Invocation) error {
	r.mu.Lock()
	r.invocations = append(r.invocations, inv)
	r.mu.Unlock()

	if r.Out != nil {
		fmt.Fprintf(r.Out, "  would run: %s (in %s)\n", inv, inv.Dir)
	}
	if r.FailWith != nil {
		return r.FailWith(inv)
	}
	return nil
}

// Invocations returns a copy of everything recorded so far.
func (r *Recorder) Invocations() []Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Invocation, len(r.invocations))
	copy(out, r.invocations)
	return out
}
