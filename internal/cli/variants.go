package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mohammadFeiz/cordova-react-vite/internal/config"
	"github.com/mohammadFeiz/cordova-react-vite/internal/scaffold"
)

func init() {
	rootCmd.AddCommand(variantsCmd)
}

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List the project presets selectable with --variant",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		current := config.Get(config.KeyVariant)
		for _, name := range scaffold.PresetNames() {
			p, err := scaffold.LoadPreset(name)
			if err != nil {
				return err
			}
			marker := " "
			if name == current {
				marker = "*"
			}
			fmt.Fprintf(out, "%s %-9s %s\n", marker, name, p.Description)
			if len(p.Dependencies) > 0 {
				fmt.Fprintf(out, "    npm:     %s\n", strings.Join(p.Dependencies, " "))
			}
			if len(p.Plugins) > 0 {
				fmt.Fprintf(out, "    plugins: %s\n", strings.Join(p.Plugins, " "))
			}
		}
		return nil
	},
}
