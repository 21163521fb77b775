package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mohammadFeiz/cordova-react-vite/internal/naming"
)

var namesJSON bool

func init() {
	namesCmd.Flags().BoolVar(&namesJSON, "json", false, "Print identifiers as JSON")
	rootCmd.AddCommand(namesCmd)
}

var namesCmd = &cobra.Command{
	Use:   "names <name words...> <domain>",
	Short: "Print the identifiers a project would get, without creating anything",
	Example: `  cordova-react-vite names Boxit Tracker boxitsoft.ir
  cordova-react-vite names Boxit Tracker boxitsoft.ir --json`,
	Args: projectArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tokens, domain, err := naming.SplitArgs(args)
		if err != nil {
			return &usageError{msg: err.Error()}
		}
		ids := naming.Derive(tokens, domain)
		out := cmd.OutOrStdout()

		if namesJSON {
			data, err := json.MarshalIndent(ids, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling identifiers: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "display name: %s\n", ids.DisplayName)
		fmt.Fprintf(out, "npm name:     %s\n", ids.PackageName)
		fmt.Fprintf(out, "cordova id:   %s\n", ids.NativeID)
		if err := naming.ValidateNativeID(ids.NativeID); err != nil {
			fmt.Fprintf(out, "\n[WARN] %v\n", err)
		}
		return nil
	},
}
