package cli

import (
	"github.com/spf13/cobra"

	"github.com/astrokit/seqedit/internal/catalog"
)

func init() {
	catalogCmd.AddCommand(catalogItemsCmd)
	catalogCmd.AddCommand(catalogConditionsCmd)
	catalogCmd.AddCommand(catalogTriggersCmd)
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List known instruction, condition and trigger types",
}

var catalogItemsCmd = &cobra.Command{
	Use:   "items",
	Short: "List instruction types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeDefinitions(cmd, catalog.Items())
	},
}

var catalogConditionsCmd = &cobra.Command{
	Use:   "conditions",
	Short: "List condition types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeDefinitions(cmd, catalog.Conditions())
	},
}

var catalogTriggersCmd = &cobra.Command{
	Use:   "triggers",
	Short: "List trigger types",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeDefinitions(cmd, catalog.Triggers())
	},
}

func writeDefinitions(cmd *cobra.Command, defs []catalog.Definition) error {
	rows := make([][]string, 0, len(defs))
	for _, d := range defs {
		rows = append(rows, []string{d.Name, d.Category, string(d.Kind), d.Type})
	}
	return writeTable(cmd.OutOrStdout(), []string{"NAME", "CATEGORY", "KIND", "TYPE"}, rows)
}
