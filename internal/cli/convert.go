package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/astrokit/seqedit/internal/models"
	"github.com/astrokit/seqedit/internal/wire"
)

var (
	importOut string
	exportOut string
)

func init() {
	importCmd.Flags().StringVarP(&importOut, "out", "o", "", "write editor JSON to file instead of stdout")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "write sequencer JSON to file instead of stdout")
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <sequence.json>",
	Short: "Convert a sequencer file to editor JSON",
	Long:  "Import a sequencer document (full sequence or single-container template) and emit the editor representation.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		doc, err := wire.Import(raw)
		if err != nil {
			return err
		}
		logger.Debug().Str("title", doc.Title).Msg("sequence imported")

		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize sequence: %w", err)
		}
		return writeOutput(cmd, importOut, out)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export <editor.json>",
	Short: "Convert editor JSON to a sequencer file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		var doc models.Sequence
		if err := json.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("failed to parse editor JSON: %w", err)
		}

		out, err := wire.Export(&doc)
		if err != nil {
			return err
		}
		return writeOutput(cmd, exportOut, out)
	},
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Info().Str("path", path).Msg("file written")
	return nil
}
