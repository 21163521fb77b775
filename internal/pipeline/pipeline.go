package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/mohammadFeiz/cordova-react-vite/internal/manifest"
	"github.com/mohammadFeiz/cordova-react-vite/internal/report"
	"github.com/mohammadFeiz/cordova-react-vite/internal/runner"
	"github.com/mohammadFeiz/cordova-react-vite/internal/scaffold"
)

// Pipeline scaffolds one project using injected capabilities.
type Pipeline struct {
	fs     afero.Fs
	exec   runner.Executor
	report report.Reporter
}

// New returns a Pipeline. A nil reporter discards messages.
func New(fsys afero.Fs, exec runner.Executor, rep report.Reporter) *Pipeline {
	if rep == nil {
		rep = report.Discard
	}
	return &Pipeline{fs: fsys, exec: exec, report: rep}
}

// Result describes a run, complete or not.
type Result struct {
	Root      string
	Completed []Stage
	Skipped   []string // Steps skipped because their output already existed
	Warnings  []string
	Manifest  *manifest.Manifest
}

// run carries the state of one execution through the stages.
type run struct {
	opts      Options
	root      string
	webDir    string
	nativeDir string
	result    *Result
}

// Run executes every stage in order. On failure it returns the partial
// result and a *StageError naming the stage; earlier output is left in place.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, &StageError{Stage: StageInit, Err: err}
	}

	root := filepath.Join(opts.BaseDir, opts.IDs.PackageName)
	r := &run{
		opts:      opts,
		root:      root,
		webDir:    filepath.Join(root, manifest.WebDir),
		nativeDir: filepath.Join(root, manifest.NativeDir),
		result:    &Result{Root: root},
	}

	for _, stage := range Stages() {
		if err := ctx.Err(); err != nil {
			return r.result, &StageError{Stage: stage, Err: err}
		}
		p.report.Report(report.Step, stage.Title())
		if err := p.runStage(ctx, stage, r); err != nil {
			p.report.Report(report.Error, fmt.Sprintf("%s: %v", stage, err))
			return r.result, &StageError{Stage: stage, Err: err}
		}
		r.result.Completed = append(r.result.Completed, stage)
	}

	p.report.Report(report.OK, StageDone.Title())
	return r.result, nil
}

func (p *Pipeline) runStage(ctx context.Context, stage Stage, r *run) error {
	switch stage {
	case StageInit:
		return p.prepareRoot(r)
	case StageScaffoldWeb:
		return p.scaffoldWeb(ctx, r)
	case StagePatchWebEntry:
		return p.patchWebEntry(r)
	case StageOverwriteTemplates:
		return p.writeTemplates(r)
	case StageScaffoldNative:
		return p.scaffoldNative(ctx, r)
	case StageAddPlatform:
		return p.addPlatform(ctx, r)
	case StageAddPlugins:
		return p.addPlugins(ctx, r)
	case StageWriteManifest:
		return p.writeManifest(r)
	case StageInstallManifestDeps:
		return p.invoke(ctx, r, runner.Command(r.root, "npm", "install"))
	default:
		return fmt.Errorf("unknown stage %s", stage)
	}
}

func (p *Pipeline) prepareRoot(r *run) error {
	info, err := p.fs.Stat(r.root)
	switch {
	case err == nil && !info.IsDir():
		return fmt.Errorf("%s exists and is not a directory", r.root)
	case err == nil:
		empty, err := afero.IsEmpty(p.fs, r.root)
		if err != nil {
			return fmt.Errorf("inspecting %s: %w", r.root, err)
		}
		if !empty {
			if r.opts.Existing != PolicySkip {
				return fmt.Errorf("%s: %w (use --existing=skip to resume)", r.root, ErrTargetExists)
			}
			p.warn(r, fmt.Sprintf("reusing existing directory %s", r.root))
		}
		return nil
	case os.IsNotExist(err):
		if err := p.fs.MkdirAll(r.root, 0755); err != nil {
			return fmt.Errorf("creating project directory: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("inspecting %s: %w", r.root, err)
	}
}

func (p *Pipeline) scaffoldWeb(ctx context.Context, r *run) error {
	if !p.skipIfExists(r, filepath.Join(r.webDir, "package.json"), "Vite project") {
		create := runner.Command(r.root, "npm", "create", "vite@latest", manifest.WebDir, "--", "--template", "react-ts")
		if err := p.invoke(ctx, r, create); err != nil {
			return err
		}
	}
	if err := p.invoke(ctx, r, runner.Command(r.webDir, "npm", "install")); err != nil {
		return err
	}
	deps := r.opts.Preset.Dependencies
	if len(deps) == 0 {
		return nil
	}
	return p.invoke(ctx, r, runner.Command(r.webDir, "npm", append([]string{"install"}, deps...)...))
}

func (p *Pipeline) patchWebEntry(r *run) error {
	indexPath := filepath.Join(r.webDir, "index.html")
	data, err := afero.ReadFile(p.fs, indexPath)
	if os.IsNotExist(err) {
		p.warn(r, fmt.Sprintf("%s not found; add %s manually", p.rel(r, indexPath), scaffold.CordovaScript))
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", indexPath, err)
	}

	patched, changed := scaffold.PatchIndexHTML(string(data))
	if !changed {
		if !strings.Contains(string(data), "cordova.js") {
			p.warn(r, fmt.Sprintf("%s has no </body>; add %s manually", p.rel(r, indexPath), scaffold.CordovaScript))
			return nil
		}
		p.report.Report(report.Info, fmt.Sprintf("%s already loads cordova.js", p.rel(r, indexPath)))
		return nil
	}
	if err := afero.WriteFile(p.fs, indexPath, []byte(patched), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", indexPath, err)
	}
	p.report.Report(report.OK, fmt.Sprintf("%s added to %s", scaffold.CordovaScript, p.rel(r, indexPath)))
	return nil
}

func (p *Pipeline) writeTemplates(r *run) error {
	files, err := scaffold.Render(r.opts.Preset, scaffold.NewData(r.opts.IDs))
	if err != nil {
		return err
	}
	for _, f := range files {
		dest := filepath.Join(r.webDir, filepath.FromSlash(f.Path))
		if err := p.fs.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Dir(dest), err)
		}
		if err := afero.WriteFile(p.fs, dest, f.Content, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", dest, err)
		}
		p.report.Report(report.OK, fmt.Sprintf("%s written", p.rel(r, dest)))
	}
	return nil
}

func (p *Pipeline) scaffoldNative(ctx context.Context, r *run) error {
	if p.skipIfExists(r, filepath.Join(r.nativeDir, "config.xml"), "Cordova project") {
		return nil
	}
	ids := r.opts.IDs
	return p.invoke(ctx, r, runner.Command(r.root, "npx", "cordova", "create", manifest.NativeDir, ids.NativeID, ids.DisplayName))
}

func (p *Pipeline) addPlatform(ctx context.Context, r *run) error {
	platform := r.opts.Platform
	if p.skipIfExists(r, filepath.Join(r.nativeDir, "platforms", platform), "platform "+platform) {
		return nil
	}
	return p.invoke(ctx, r, runner.Command(r.nativeDir, "npx", "cordova", "platform", "add", platform))
}

func (p *Pipeline) addPlugins(ctx context.Context, r *run) error {
	plugins := r.opts.plugins()
	if len(plugins) == 0 {
		p.report.Report(report.Info, "no plugins to add")
		return nil
	}
	for _, plugin := range plugins {
		if p.skipIfExists(r, filepath.Join(r.nativeDir, "plugins", plugin), "plugin "+plugin) {
			continue
		}
		if err := p.invoke(ctx, r, runner.Command(r.nativeDir, "npx", "cordova", "plugin", "add", plugin)); err != nil {
			return err
		}
	}
	return nil
}

func (p *Pipeline) writeManifest(r *run) error {
	ids := r.opts.IDs
	m := manifest.Build(ids.PackageName, ids.DisplayName, manifest.BuildOptions{
		Shell:    r.opts.Shell,
		Platform: r.opts.Platform,
	})

	result, err := manifest.ValidateManifest(m)
	if err != nil {
		return fmt.Errorf("validating manifest: %w", err)
	}
	// Schema issues are reported but never block writing the manifest.
	for _, issue := range result.Issues {
		p.warn(r, fmt.Sprintf("%s: %s", manifest.FileName, issue))
	}

	path := filepath.Join(r.root, manifest.FileName)
	if err := manifest.Write(p.fs, path, m); err != nil {
		return err
	}
	r.result.Manifest = m
	p.report.Report(report.OK, fmt.Sprintf("%s written", manifest.FileName))
	return nil
}

// invoke runs inv. Failures of optional invocations become warnings.
func (p *Pipeline) invoke(ctx context.Context, r *run, inv runner.Invocation) error {
	p.report.Report(report.Info, "$ "+inv.String())
	err := p.exec.Run(ctx, inv)
	if err == nil {
		return nil
	}
	if !inv.Required {
		p.warn(r, fmt.Sprintf("ignoring failure of optional step: %v", err))
		return nil
	}
	return err
}

// skipIfExists reports whether a step can be skipped under PolicySkip
// because path already exists.
func (p *Pipeline) skipIfExists(r *run, path, what string) bool {
	if r.opts.Existing != PolicySkip {
		return false
	}
	exists, err := afero.Exists(p.fs, path)
	if err != nil || !exists {
		return false
	}
	msg := fmt.Sprintf("%s already present (%s), skipping", what, p.rel(r, path))
	r.result.Skipped = append(r.result.Skipped, msg)
	p.report.Report(report.Info, msg)
	return true
}

func (p *Pipeline) warn(r *run, msg string) {
	r.result.Warnings = append(r.result.Warnings, msg)
	p.report.Report(report.Warn, msg)
}

func (p *Pipeline) rel(r *run, path string) string {
	if rel, err := filepath.Rel(r.root, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return path
}
