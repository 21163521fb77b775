package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/mohammadFeiz/cordova-react-vite/internal/branding"
	"github.com/mohammadFeiz/cordova-react-vite/internal/config"
	"github.com/mohammadFeiz/cordova-react-vite/internal/naming"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " <name words...> <domain>",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates a React (Vite) web app and a Cordova wrapper side by side,
wires the web build into the Cordova www folder, and writes a root package.json
whose scripts build the web app, sync it, and build the native app.

The last argument is the publisher domain; every argument before it is part of
the application name. The Cordova id is the reversed domain followed by the
name with spaces removed.`,
	Example:           "  " + branding.Example(),
	Args:              projectArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return config.Load() },
	RunE:              runCreate,
}

// usageError marks errors caused by how the command was invoked.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

// projectArgs requires one or more name words followed by a domain.
func projectArgs(cmd *cobra.Command, args []string) error {
	if _, _, err := naming.SplitArgs(args); err != nil {
		return &usageError{msg: "wrong statement, example: " + branding.Example()}
	}
	return nil
}

// IsUsageError reports whether err was caused by invalid arguments.
func IsUsageError(err error) bool {
	var ue *usageError
	return errors.As(err, &ue)
}

// Execute runs the root command with build info injected via ldflags.
// Errors are printed to stderr; the caller decides the exit code.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := execute(ctx, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// execute dispatches args. A subcommand only runs when args match its usage;
// otherwise a first name word that happens to equal a subcommand name
// ("help desk example.com") is part of the project name.
func execute(ctx context.Context, args []string) error {
	if selectsSubcommand(args) == nil {
		return createProject(ctx, args)
	}
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}

// selectsSubcommand resolves args against the command tree. It returns nil
// when args name a subcommand that would reject them, and rootCmd when no
// subcommand is named.
func selectsSubcommand(args []string) *cobra.Command {
	rootCmd.InitDefaultHelpCmd()
	rootCmd.InitDefaultCompletionCmd()

	cmd, rest, err := rootCmd.Find(args)
	if err != nil || cmd == rootCmd {
		return rootCmd
	}

	cmd.InitDefaultHelpFlag()
	if err := cmd.ParseFlags(rest); err != nil {
		return nil
	}
	if help, _ := cmd.Flags().GetBool("help"); help {
		return cmd
	}
	positional := cmd.Flags().Args()

	switch {
	case cmd.Name() == "help" && cmd.Parent() == rootCmd:
		if len(positional) == 0 {
			return cmd
		}
		topic, left, err := rootCmd.Find(positional)
		if err != nil || topic == rootCmd || len(left) > 0 {
			return nil
		}
	case !cmd.Runnable():
		if len(positional) > 0 {
			return nil
		}
	default:
		if cmd.ValidateArgs(positional) != nil {
			return nil
		}
	}
	return cmd
}

// createProject runs the root command on args without subcommand lookup.
func createProject(ctx context.Context, args []string) error {
	rootCmd.InitDefaultHelpFlag()
	flags := rootCmd.Flags()
	if err := flags.Parse(args); err != nil {
		return &usageError{msg: err.Error() + "; wrong statement, example: " + branding.Example()}
	}
	if help, _ := flags.GetBool("help"); help {
		return rootCmd.Help()
	}
	positional := flags.Args()
	if err := projectArgs(rootCmd, positional); err != nil {
		return err
	}
	rootCmd.SetContext(ctx)
	if err := rootCmd.PersistentPreRunE(rootCmd, positional); err != nil {
		return err
	}
	return runCreate(rootCmd, positional)
}
