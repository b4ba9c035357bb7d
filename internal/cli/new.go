package cli

import (
	"github.com/spf13/cobra"

	"github.com/astrokit/seqedit/internal/models"
	"github.com/astrokit/seqedit/internal/wire"
)

var newOut string

func init() {
	newCmd.Flags().StringVarP(&newOut, "out", "o", "", "write sequencer JSON to file instead of stdout")
	rootCmd.AddCommand(newCmd)
}

var newCmd = &cobra.Command{
	Use:   "new <title>",
	Short: "Create an empty sequence",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc := models.NewSequence(args[0])
		out, err := wire.Export(doc)
		if err != nil {
			return err
		}
		return writeOutput(cmd, newOut, out)
	},
}
