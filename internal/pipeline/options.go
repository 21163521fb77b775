package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mohammadFeiz/cordova-react-vite/internal/manifest"
	"github.com/mohammadFeiz/cordova-react-vite/internal/naming"
	"github.com/mohammadFeiz/cordova-react-vite/internal/scaffold"
)

// ErrTargetExists is returned when the project directory already has content
// and the existing policy is PolicyFail.
var ErrTargetExists = errors.New("target directory already exists and is not empty")

// ExistingPolicy decides what happens when the project directory exists.
type ExistingPolicy string

const (
	// PolicyFail refuses to touch a non-empty project directory.
	PolicyFail ExistingPolicy = "fail"
	// PolicySkip reuses the directory and skips every external step whose
	// output is already present. Nothing is deleted.
	PolicySkip ExistingPolicy = "skip"
)

// ParsePolicy maps a config value to an ExistingPolicy. Empty means PolicyFail.
func ParsePolicy(s string) (ExistingPolicy, error) {
	switch ExistingPolicy(strings.ToLower(s)) {
	case "", PolicyFail:
		return PolicyFail, nil
	case PolicySkip:
		return PolicySkip, nil
	default:
		return "", fmt.Errorf("invalid existing-directory policy %q: must be %q or %q", s, PolicyFail, PolicySkip)
	}
}

// Options configures one run.
type Options struct {
	BaseDir      string // Directory the project folder is created in
	IDs          naming.Identifiers
	Preset       *scaffold.Preset
	Platform     string   // Cordova platform; defaults to manifest.DefaultPlatform
	ExtraPlugins []string // Added after the preset's plugins
	Shell        manifest.Shell
	Existing     ExistingPolicy
}

func (o *Options) validate() error {
	if o.IDs.PackageName == "" {
		return errors.New("package name is empty")
	}
	if o.IDs.NativeID == "" {
		return errors.New("native id is empty")
	}
	if o.Preset == nil {
		return errors.New("no preset selected")
	}
	if o.Platform == "" {
		o.Platform = manifest.DefaultPlatform
	}
	if o.Shell == "" {
		o.Shell = manifest.DefaultShell()
	}
	if o.Existing == "" {
		o.Existing = PolicyFail
	}
	return nil
}

// plugins returns the preset plugins followed by the extra ones, without duplicates.
func (o *Options) plugins() []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range [][]string{o.Preset.Plugins, o.ExtraPlugins} {
		for _, p := range list {
			p = strings.TrimSpace(p)
			if p == "" || seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
