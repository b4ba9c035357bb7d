package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/astrokit/seqedit/internal/wire"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <sequence.json>",
	Short: "Validate a sequence file",
	Long:  "Check that a file is a well-formed sequencer document. Warnings do not fail the check.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		result := wire.Validate(raw)
		for _, w := range result.Warnings {
			fmt.Fprintln(cmd.OutOrStdout(), "warning:", w)
		}
		for _, e := range result.Errors {
			fmt.Fprintln(cmd.OutOrStdout(), "error:", e)
		}
		if !result.Valid {
			return fmt.Errorf("%s is not a valid sequence", args[0])
		}

		doc, err := wire.Import(raw)
		if err != nil {
			return fmt.Errorf("failed to import %s: %w", args[0], err)
		}
		for _, finding := range doc.Validate() {
			fmt.Fprintln(cmd.OutOrStdout(), "warning:", finding)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: OK (%q)\n", args[0], doc.Title)
		return nil
	},
}
