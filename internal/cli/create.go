package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mohammadFeiz/cordova-react-vite/internal/branding"
	"github.com/mohammadFeiz/cordova-react-vite/internal/config"
	"github.com/mohammadFeiz/cordova-react-vite/internal/manifest"
	"github.com/mohammadFeiz/cordova-react-vite/internal/naming"
	"github.com/mohammadFeiz/cordova-react-vite/internal/pipeline"
	"github.com/mohammadFeiz/cordova-react-vite/internal/report"
	"github.com/mohammadFeiz/cordova-react-vite/internal/runner"
	"github.com/mohammadFeiz/cordova-react-vite/internal/scaffold"
	"github.com/mohammadFeiz/cordova-react-vite/internal/toolchain"
)

var (
	createDir     string
	createDryRun  bool
	createLogJSON bool
)

func init() {
	f := rootCmd.Flags()
	f.String("variant", "", "Project preset: aio, tailwind or minimal (default from config: aio)")
	f.String("platform", "", "Cordova platform to add (default from config: android)")
	f.StringSlice("plugin", nil, "Extra Cordova plugin to add (repeatable)")
	f.String("shell", "", "Script syntax in package.json: auto, windows or posix (default from config: auto)")
	f.String("existing", "", "When the project directory exists: fail or skip (default from config: fail)")
	f.StringVar(&createDir, "dir", "", "Directory to create the project in (default: current directory)")
	f.BoolVar(&createDryRun, "dry-run", false, "Print the commands and files without running or writing anything")
	f.BoolVar(&createLogJSON, "log-json", false, "Report progress as JSON lines")

	for key, flag := range map[string]string{
		config.KeyVariant:  "variant",
		config.KeyPlatform: "platform",
		config.KeyPlugins:  "plugin",
		config.KeyShell:    "shell",
		config.KeyExisting: "existing",
	} {
		_ = viper.BindPFlag(key, f.Lookup(flag))
	}
}

func runCreate(cmd *cobra.Command, args []string) error {
	tokens, domain, err := naming.SplitArgs(args)
	if err != nil {
		return &usageError{msg: err.Error()}
	}
	ids := naming.Derive(tokens, domain)

	out := cmd.OutOrStdout()
	var rep report.Reporter = &report.Console{Out: out, Err: cmd.ErrOrStderr()}
	if createLogJSON {
		rep = report.NewJSON(out)
	}

	rep.Report(report.Step, "create project "+ids.DisplayName)
	rep.Report(report.Info, "npm name: "+ids.PackageName)
	rep.Report(report.Info, "cordova id: "+ids.NativeID)
	rep.Report(report.Info, "cordova name: "+ids.DisplayName)
	if err := naming.ValidateNativeID(ids.NativeID); err != nil {
		rep.Report(report.Warn, err.Error()+"; cordova may reject it")
	}
	if err := naming.ValidatePackageName(ids.PackageName); err != nil {
		rep.Report(report.Warn, err.Error()+"; npm may reject it")
	}

	opts, err := createOptions(ids)
	if err != nil {
		return err
	}

	var (
		fsys afero.Fs
		exec runner.Executor
	)
	if createDryRun {
		// Reads see the real disk; writes land in memory.
		fsys = afero.NewCopyOnWriteFs(afero.NewReadOnlyFs(afero.NewOsFs()), afero.NewMemMapFs())
		exec = &runner.Recorder{Out: out}
		rep.Report(report.Info, "dry run: nothing will be executed or written")
	} else {
		if err := preflight(cmd.Context(), rep); err != nil {
			return err
		}
		fsys = afero.NewOsFs()
		exec = &runner.ProcessExecutor{}
	}

	result, err := pipeline.New(fsys, exec, rep).Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	if !createLogJSON {
		printNextSteps(out, result)
	}
	return nil
}

// createOptions resolves the pipeline options from flags, env and config.
func createOptions(ids naming.Identifiers) (pipeline.Options, error) {
	preset, err := scaffold.LoadPreset(config.Get(config.KeyVariant))
	if err != nil {
		return pipeline.Options{}, err
	}

	shell, ok := manifest.ParseShell(config.Get(config.KeyShell))
	if !ok {
		return pipeline.Options{}, fmt.Errorf("invalid shell %q: must be auto, windows or posix", config.Get(config.KeyShell))
	}

	policy, err := pipeline.ParsePolicy(config.Get(config.KeyExisting))
	if err != nil {
		return pipeline.Options{}, err
	}

	baseDir := createDir
	if baseDir == "" {
		if baseDir, err = os.Getwd(); err != nil {
			return pipeline.Options{}, fmt.Errorf("resolving working directory: %w", err)
		}
	}

	return pipeline.Options{
		BaseDir:      baseDir,
		IDs:          ids,
		Preset:       preset,
		Platform:     config.Get(config.KeyPlatform),
		ExtraPlugins: config.GetStrings(config.KeyPlugins),
		Shell:        shell,
		Existing:     policy,
	}, nil
}

// preflight fails before any side effect when a required tool is missing or
// too old.
func preflight(ctx context.Context, rep report.Reporter) error {
	checker := &toolchain.Checker{}
	var failed []string
	for _, res := range checker.Check(ctx, toolchain.Requirements(config.Get(config.KeyNodeConstraint))) {
		switch {
		case res.Failed():
			failed = append(failed, res.Detail)
		case res.Status != toolchain.StatusOK && !res.Optional:
			rep.Report(report.Warn, res.Detail)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("toolchain check failed: %s (run '%s doctor' for details)", strings.Join(failed, "; "), branding.CLIName())
	}
	return nil
}

func printNextSteps(w io.Writer, result *pipeline.Result) {
	fmt.Fprintf(w, "\nCreated project at %s/\n", result.Root)
	if len(result.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings:")
		for _, warn := range result.Warnings {
			fmt.Fprintf(w, "  - %s\n", warn)
		}
	}
	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintf(w, "  1. cd %s\n", result.Root)
	fmt.Fprintln(w, "  2. npm start        # Vite dev server")
	fmt.Fprintln(w, "  3. npm run build    # web build, sync into cordova/www, native build")
}
