package manifest

import (
	goruntime "runtime"
	"strings"
)

// Shell selects the command syntax used inside npm scripts.
type Shell string

// Supported shells.
const (
	ShellWindows Shell = "windows"
	ShellPosix   Shell = "posix"
)

// DefaultShell returns the shell flavor matching the host OS.
func DefaultShell() Shell {
	if goruntime.GOOS == "windows" {
		return ShellWindows
	}
	return ShellPosix
}

// ParseShell maps a config value to a Shell. Empty or "auto" means the host default.
func ParseShell(s string) (Shell, bool) {
	switch strings.ToLower(s) {
	case "", "auto":
		return DefaultShell(), true
	case string(ShellWindows):
		return ShellWindows, true
	case string(ShellPosix):
		return ShellPosix, true
	default:
		return "", false
	}
}

// DefaultPlatform is the Cordova platform added when none is configured.
const DefaultPlatform = "android"

// BuildOptions tunes the generated scripts.
type BuildOptions struct {
	Shell    Shell  // defaults to DefaultShell()
	Platform string // defaults to DefaultPlatform
}

// artifacts lists the build output copied to the project root per platform.
// Platforms not listed get no artifact script.
var artifacts = map[string][]string{
	"android": {NativeDir, "platforms", "android", "app", "build", "outputs", "apk", "debug", "app-debug.apk"},
}

// Build returns the root manifest for a project. The script set is fixed;
// only the package name and description vary.
func Build(packageName, displayName string, opts BuildOptions) *Manifest {
	shell := opts.Shell
	if shell == "" {
		shell = DefaultShell()
	}
	platform := opts.Platform
	if platform == "" {
		platform = DefaultPlatform
	}

	www := join(shell, NativeDir, "www")
	dist := join(shell, WebDir, "dist")

	scripts := Scripts{
		{ScriptWebBuild, "cd " + WebDir + " && npm run build"},
	}
	if shell == ShellWindows {
		scripts = append(scripts, Script{ScriptSync, "rimraf " + www + " && xcopy " + dist + " " + www + " /E /H /C /I"})
	} else {
		scripts = append(scripts, Script{ScriptSync, "rimraf " + www + " && cp -R " + dist + " " + www})
	}
	scripts = append(scripts, Script{ScriptNativeBuild, "cd " + NativeDir + " && npx cordova build " + platform})

	chain := []string{ScriptWebBuild, ScriptSync, ScriptNativeBuild}
	if parts, ok := artifacts[platform]; ok {
		src := join(shell, parts...)
		if shell == ShellWindows {
			scripts = append(scripts, Script{ScriptArtifact, "xcopy " + src + " . /Y"})
		} else {
			scripts = append(scripts, Script{ScriptArtifact, "cp " + src + " ."})
		}
		chain = append(chain, ScriptArtifact)
	}

	runs := make([]string, len(chain))
	for i, name := range chain {
		runs[i] = "npm run " + name
	}
	scripts = append(scripts,
		Script{ScriptBuild, strings.Join(runs, " && ")},
		Script{ScriptStart, "cd " + WebDir + " && npm run dev"},
	)

	return &Manifest{
		Name:        packageName,
		Version:     DefaultVersion,
		Description: displayName + descriptionSuffix,
		Scripts:     scripts,
		DevDependencies: map[string]string{
			"rimraf": "^5.0.0",
		},
	}
}

func join(shell Shell, parts ...string) string {
	sep := "/"
	if shell == ShellWindows {
		sep = `\`
	}
	return strings.Join(parts, sep)
}
