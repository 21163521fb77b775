package cli

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/mohammadFeiz/cordova-react-vite/internal/config"
	"github.com/mohammadFeiz/cordova-react-vite/internal/manifest"
	"github.com/mohammadFeiz/cordova-react-vite/internal/toolchain"
)

var checkManifest string

func init() {
	doctorCmd.Flags().StringVar(&checkManifest, "check-manifest", "", "Validate a generated package.json at the given path")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the tools needed to scaffold and build a project",
	Long: `Verify that node, npm and npx are installed (and node is recent enough for
Vite), and report whether the optional Android build tools are present.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if checkManifest != "" {
			return runManifestCheck(out, afero.NewOsFs(), checkManifest)
		}

		checker := &toolchain.Checker{}
		results := checker.Check(cmd.Context(), toolchain.Requirements(config.Get(config.KeyNodeConstraint)))
		printToolchain(out, results)
		return nil
	},
}

func printToolchain(w io.Writer, results []toolchain.Result) {
	fmt.Fprintln(w, "Toolchain check:")
	for _, r := range results {
		switch r.Status {
		case toolchain.StatusOK:
			if r.Version != "" {
				fmt.Fprintf(w, "  [ OK ] %s %s found at %s\n", r.Name, r.Version, r.Path)
			} else {
				fmt.Fprintf(w, "  [ OK ] %s found at %s\n", r.Name, r.Path)
			}
		case toolchain.StatusMissing:
			if r.Optional {
				fmt.Fprintf(w, "  [WARN] %s not found (needed for native builds)\n", r.Name)
			} else {
				fmt.Fprintf(w, "  [MISS] %s not found\n", r.Name)
			}
		case toolchain.StatusOutdated:
			fmt.Fprintf(w, "  [FAIL] %s\n", r.Detail)
		default:
			fmt.Fprintf(w, "  [WARN] %s\n", r.Detail)
		}
	}
}

func runManifestCheck(w io.Writer, fsys afero.Fs, path string) error {
	fmt.Fprintf(w, "Manifest validation: %s\n", path)

	result, err := manifest.ValidateFile(fsys, path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return fmt.Errorf("manifest validation failed: %w", err)
	}

	if result.Valid {
		m, err := manifest.Read(fsys, path)
		if err != nil {
			fmt.Fprintf(w, "  [ OK ] Valid manifest\n")
			return nil
		}
		fmt.Fprintf(w, "  [ OK ] Valid manifest: %s (v%s), %d scripts\n", m.Name, m.Version, len(m.Scripts))
		return nil
	}

	fmt.Fprintf(w, "  [FAIL] %d validation issue(s):\n", len(result.Issues))
	for _, issue := range result.Issues {
		fmt.Fprintf(w, "    - %s\n", issue)
	}
	return fmt.Errorf("manifest %s has %d validation issue(s)", path, len(result.Issues))
}
