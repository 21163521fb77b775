package runner

import (
	"context"
	"fmt"
	"strings"
)

// Invocation is a single external command.
type Invocation struct {
	Dir      string   // Working directory
	Program  string   // e.g., "npm"
	Args     []string // e.g., ["install"]
	Required bool     // A failed required invocation aborts the caller
}

// Command returns a new required invocation of program in dir.
func Command(dir, program string, args ...string) Invocation {
	return Invocation{Dir: dir, Program: program, Args: args, Required: true}
}

// Optional returns a copy of inv whose failure is not fatal.
func (inv Invocation) Optional() Invocation {
	inv.Required = false
	return inv
}

// String renders the command line, quoting arguments that contain spaces
// or quotes.
func (inv Invocation) String() string {
	parts := make([]string, 0, len(inv.Args)+1)
	parts = append(parts, quote(inv.Program))
	for _, a := range inv.Args {
		parts = append(parts, quote(a))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s == "" {
		return `""`
	}
	if !strings.ContainsAny(s, " \t\"'") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}

// Executor runs invocations.
type Executor interface {
	// Run executes inv and blocks until it finishes. A non-zero exit status
	// is reported as an *ExitError.
	Run(ctx context.Context, inv Invocation) error
}

// ExitError reports a command that ran but exited with a non-zero status.
type ExitError struct {
	Invocation Invocation
	Code       int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d (in %s)", e.Invocation, e.Code, e.Invocation.Dir)
}
