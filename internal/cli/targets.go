package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/astrokit/seqedit/internal/catalog"
	"github.com/astrokit/seqedit/internal/editor"
	"github.com/astrokit/seqedit/internal/models"
	"github.com/astrokit/seqedit/internal/targets"
	"github.com/astrokit/seqedit/internal/wire"
)

const dsoContainerType = "NINA.Sequencer.Container.DeepSkyObjectContainer, NINA.Sequencer"

var (
	targetsFormat   string
	targetsSequence string
	targetsOut      string
)

func init() {
	targetsImportCmd.Flags().StringVar(&targetsFormat, "format", "", "input format: csv or stellarium (default: by file extension)")
	targetsImportCmd.Flags().StringVar(&targetsSequence, "sequence", "", "build a sequence with one target container per row, using the given title")
	targetsImportCmd.Flags().StringVarP(&targetsOut, "out", "o", "", "write sequencer JSON to file instead of stdout (with --sequence)")
	targetsCmd.AddCommand(targetsImportCmd)
	rootCmd.AddCommand(targetsCmd)
}

var targetsCmd = &cobra.Command{
	Use:   "targets",
	Short: "Work with target lists",
}

var targetsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a target list",
	Long:  "Import targets from a Telescopius/AstroPlanner/generic CSV export or a Stellarium skylist.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		format := targetsFormat
		if format == "" {
			if ext := strings.ToLower(filepath.Ext(args[0])); ext == ".csv" {
				format = "csv"
			} else {
				format = "stellarium"
			}
		}

		var result targets.ImportResult
		switch format {
		case "csv":
			result = targets.ImportCSV(string(raw))
		case "stellarium":
			result = targets.ImportStellarium(string(raw))
		default:
			return fmt.Errorf("unknown format %q", format)
		}

		for _, w := range result.Warnings {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
		}
		for _, e := range result.Errors {
			fmt.Fprintln(cmd.ErrOrStderr(), "error:", e)
		}
		if len(result.Errors) > 0 {
			return fmt.Errorf("import of %s failed", args[0])
		}

		if targetsSequence != "" {
			doc, err := buildTargetSequence(targetsSequence, result.Targets, cfg.HistoryLimit)
			if err != nil {
				return err
			}
			out, err := wire.Export(doc)
			if err != nil {
				return err
			}
			return writeOutput(cmd, targetsOut, out)
		}

		rows := make([][]string, 0, len(result.Targets))
		for _, t := range result.Targets {
			rows = append(rows, []string{
				t.Name,
				t.RA.String(),
				t.Dec.String(),
				fmt.Sprintf("%.1f", t.Rotation),
			})
		}
		if err := writeTable(cmd.OutOrStdout(), []string{"NAME", "RA", "DEC", "PA"}, rows); err != nil {
			return err
		}

		logger.Info().
			Str("format", string(result.SourceFormat)).
			Int("imported", result.ImportedCount).
			Int("skipped", result.SkippedCount).
			Msg("targets imported")
		return nil
	},
}

// buildTargetSequence assembles a fresh sequence with one deep sky object
// container per imported target.
func buildTargetSequence(title string, ts []models.Target, historyLimit int) (*models.Sequence, error) {
	store := editor.NewStoreWithLimit(title, historyLimit)
	for n, target := range ts {
		it, err := store.AddItem(models.AreaTarget, "", n, dsoContainerType, catalog.Overrides{Name: target.Name})
		if err != nil {
			return nil, err
		}
		if err := store.SetTarget(it.ID, target); err != nil {
			return nil, err
		}
	}
	return store.Document(), nil
}
