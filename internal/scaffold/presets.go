package scaffold

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"

	"go.yaml.in/yaml/v3"
)

// Preset is one flavour of generated web app.
type Preset struct {
	Name         string     `yaml:"-"`
	Description  string     `yaml:"description"`
	Dependencies []string   `yaml:"dependencies"` // npm packages added to the web app
	Plugins      []string   `yaml:"plugins"`      // Cordova plugins added to the native project
	Files        []FileSpec `yaml:"files"`
}

// FileSpec maps an embedded template to its output path under the web app.
type FileSpec struct {
	Template string `yaml:"template"`
	Path     string `yaml:"path"`
}

type presetFile struct {
	Default string             `yaml:"default"`
	Presets map[string]*Preset `yaml:"presets"`
}

var (
	presetsOnce sync.Once
	presets     presetFile
	presetsErr  error
)

func loadPresets() (*presetFile, error) {
	presetsOnce.Do(func() {
		data, err := fs.ReadFile(scaffoldFS, path.Join(scaffoldRoot, "presets.yaml"))
		if err != nil {
			presetsErr = fmt.Errorf("reading presets: %w", err)
			return
		}
		if err := yaml.Unmarshal(data, &presets); err != nil {
			presetsErr = fmt.Errorf("parsing presets: %w", err)
			return
		}
		for name, p := range presets.Presets {
			p.Name = name
		}
	})
	return &presets, presetsErr
}

// DefaultPreset returns the name of the preset used when none is configured.
func DefaultPreset() string {
	pf, err := loadPresets()
	if err != nil {
		return ""
	}
	return pf.Default
}

// PresetNames returns all preset names in sorted order.
func PresetNames() []string {
	pf, err := loadPresets()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(pf.Presets))
	for name := range pf.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadPreset returns the named preset. An empty name selects the default.
// The returned value is a copy and may be modified by the caller.
func LoadPreset(name string) (*Preset, error) {
	pf, err := loadPresets()
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = pf.Default
	}
	p, ok := pf.Presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q: available presets are %v", name, PresetNames())
	}
	cp := *p
	cp.Dependencies = append([]string(nil), p.Dependencies...)
	cp.Plugins = append([]string(nil), p.Plugins...)
	cp.Files = append([]FileSpec(nil), p.Files...)
	return &cp, nil
}
