package toolchain

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// DefaultNodeConstraint is the Node.js range required by current Vite releases.
const DefaultNodeConstraint = ">=20.19.0"

// Requirement describes one external tool.
type Requirement struct {
	Name       string
	Constraint string // semver range; empty means any version
	Optional   bool   // a missing optional tool is a warning, not a failure
}

// Status is the outcome of checking one requirement.
type Status string

const (
	StatusOK       Status = "ok"
	StatusMissing  Status = "missing"
	StatusOutdated Status = "outdated"
	StatusUnknown  Status = "unknown" // found, but the version could not be determined
)

// Result is the outcome of checking one requirement.
type Result struct {
	Requirement
	Path    string
	Version string
	Status  Status
	Detail  string
}

// Failed reports whether the result should block scaffolding.
func (r Result) Failed() bool {
	if r.Optional {
		return false
	}
	return r.Status == StatusMissing || r.Status == StatusOutdated
}

// LookupFunc resolves a binary name to a path.
type LookupFunc func(name string) (string, error)

// ProbeFunc returns the raw output of "<path> --version".
type ProbeFunc func(ctx context.Context, path string) (string, error)

// Checker evaluates requirements.
type Checker struct {
	Lookup LookupFunc // defaults to exec.LookPath
	Probe  ProbeFunc  // defaults to running "<path> --version"
}

// Requirements returns the default tool list. nodeConstraint overrides
// DefaultNodeConstraint when non-empty.
func Requirements(nodeConstraint string) []Requirement {
	if nodeConstraint == "" {
		nodeConstraint = DefaultNodeConstraint
	}
	return []Requirement{
		{Name: "node", Constraint: nodeConstraint},
		{Name: "npm"},
		{Name: "npx"},
		{Name: "java", Optional: true},
		{Name: "gradle", Optional: true},
	}
}

// Check evaluates every requirement in order.
func (c *Checker) Check(ctx context.Context, reqs []Requirement) []Result {
	lookup := c.Lookup
	if lookup == nil {
		lookup = exec.LookPath
	}
	probe := c.Probe
	if probe == nil {
		probe = probeVersion
	}

	results := make([]Result, 0, len(reqs))
	for _, req := range reqs {
		results = append(results, checkOne(ctx, req, lookup, probe))
	}
	return results
}

func checkOne(ctx context.Context, req Requirement, lookup LookupFunc, probe ProbeFunc) Result {
	res := Result{Requirement: req}

	path, err := lookup(req.Name)
	if err != nil {
		res.Status = StatusMissing
		res.Detail = fmt.Sprintf("%s not found on PATH", req.Name)
		return res
	}
	res.Path = path

	if req.Constraint == "" {
		res.Status = StatusOK
		return res
	}

	out, err := probe(ctx, path)
	if err != nil {
		res.Status = StatusUnknown
		res.Detail = fmt.Sprintf("could not run %s --version: %v", req.Name, err)
		return res
	}

	v, err := ParseVersion(out)
	if err != nil {
		res.Status = StatusUnknown
		res.Detail = err.Error()
		return res
	}
	res.Version = v.String()

	constraint, err := semver.NewConstraint(req.Constraint)
	if err != nil {
		res.Status = StatusUnknown
		res.Detail = fmt.Sprintf("invalid constraint %q: %v", req.Constraint, err)
		return res
	}
	if !constraint.Check(v) {
		res.Status = StatusOutdated
		res.Detail = fmt.Sprintf("%s %s does not satisfy %s", req.Name, res.Version, req.Constraint)
		return res
	}

	res.Status = StatusOK
	return res
}

var versionPattern = regexp.MustCompile(`v?(\d+)(\.\d+)?(\.\d+)?`)

// ParseVersion extracts the first version number from tool output such as
// "v20.11.1" or "openjdk 17.0.2 2022-01-18".
func ParseVersion(out string) (*semver.Version, error) {
	m := versionPattern.FindString(strings.TrimSpace(out))
	if m == "" {
		return nil, fmt.Errorf("no version number in %q", strings.TrimSpace(out))
	}
	v, err := semver.NewVersion(strings.TrimPrefix(m, "v"))
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", m, err)
	}
	return v, nil
}

// probeVersion runs "<path> --version" with a short timeout.
func probeVersion(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "--version")
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return out.String(), nil
}
