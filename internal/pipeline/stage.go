package pipeline

import (
	"errors"
	"fmt"
)

// Stage is one state of the scaffolding run.
type Stage int

const (
	StageInit Stage = iota
	StageScaffoldWeb
	StagePatchWebEntry
	StageOverwriteTemplates
	StageScaffoldNative
	StageAddPlatform
	StageAddPlugins
	StageWriteManifest
	StageInstallManifestDeps
	StageDone
)

var stageNames = [...]string{
	StageInit:                "init",
	StageScaffoldWeb:         "scaffold-web",
	StagePatchWebEntry:       "patch-web-entry",
	StageOverwriteTemplates:  "overwrite-templates",
	StageScaffoldNative:      "scaffold-native",
	StageAddPlatform:         "add-platform",
	StageAddPlugins:          "add-plugins",
	StageWriteManifest:       "write-manifest",
	StageInstallManifestDeps: "install-manifest-deps",
	StageDone:                "done",
}

var stageTitles = [...]string{
	StageInit:                "prepare project directory",
	StageScaffoldWeb:         "create React (Vite) project",
	StagePatchWebEntry:       "load cordova.js from index.html",
	StageOverwriteTemplates:  "write template files",
	StageScaffoldNative:      "create Cordova project",
	StageAddPlatform:         "add Cordova platform",
	StageAddPlugins:          "add Cordova plugins",
	StageWriteManifest:       "create root package.json",
	StageInstallManifestDeps: "install root package.json dependencies",
	StageDone:                "project is ready",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// Title is the human-readable description reported when the stage starts.
func (s Stage) Title() string {
	if s < 0 || int(s) >= len(stageTitles) {
		return s.String()
	}
	return stageTitles[s]
}

// Stages returns the working stages in execution order. StageDone is not
// included; it is the terminal state after the last one succeeds.
func Stages() []Stage {
	return []Stage{
		StageInit,
		StageScaffoldWeb,
		StagePatchWebEntry,
		StageOverwriteTemplates,
		StageScaffoldNative,
		StageAddPlatform,
		StageAddPlugins,
		StageWriteManifest,
		StageInstallManifestDeps,
	}
}

// StageError is the terminal Failed state: the stage that failed and why.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// FailedStage returns the stage recorded in err, if any.
func FailedStage(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return 0, false
}
