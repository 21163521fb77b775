// Package branding provides compile-time identity values for the CLI.
//
// Values come from the embedded branding.yaml, so a fork can rename the tool
// without touching code.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	ExampleArgs string `yaml:"example_args"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:     "cordova-react-vite",
			DisplayName: "Cordova React Vite",
			Description: "Scaffold a React (Vite) + Cordova hybrid mobile project",
			HomeDir:     ".cordova-react-vite",
			EnvPrefix:   "CRV",
			ExampleArgs: "Boxit Tracker boxitsoft.ir",
		}

		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "cordova-react-vite").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".cordova-react-vite").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "CRV").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// Example returns a complete sample invocation used in usage messages.
func Example() string { load(); return defaults.CLIName + " " + defaults.ExampleArgs }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "CRV_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
