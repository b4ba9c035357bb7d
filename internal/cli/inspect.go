package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/astrokit/seqedit/internal/catalog"
	"github.com/astrokit/seqedit/internal/models"
	"github.com/astrokit/seqedit/internal/wire"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <sequence.json>",
	Short: "Print the instruction tree of a sequence file",
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
		fmt.Fprint(cmd.OutOrStdout(), renderSequence(doc))
		return nil
	},
}

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	areaStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	containerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	disabledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	triggerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

var areaLabels = map[models.Area]string{
	models.AreaStart:  "Start",
	models.AreaTarget: "Target",
	models.AreaEnd:    "End",
}

func renderSequence(doc *models.Sequence) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(doc.Title) + "\n")

	for _, t := range doc.GlobalTriggers {
		b.WriteString(triggerStyle.Render("! "+t.Name) + "\n")
	}

	for _, area := range models.Areas() {
		b.WriteString(areaStyle.Render(areaLabels[area]) + "\n")
		forest := doc.Forest(area)
		if len(forest) == 0 {
			b.WriteString(mutedStyle.Render("  (empty)") + "\n")
			continue
		}
		for _, it := range forest {
			renderItem(&b, it, 1)
		}
	}
	return b.String()
}

func renderItem(b *strings.Builder, it *models.Item, depth int) {
	indent := strings.Repeat("  ", depth)

	label := it.Name
	style := lipgloss.NewStyle()
	switch {
	case it.Status == models.StatusDisabled:
		style = disabledStyle
	case it.IsContainer():
		style = containerStyle
	}
	b.WriteString(indent + style.Render(label) + " " + mutedStyle.Render(catalog.ShortName(it.Type)) + "\n")

	for _, c := range it.Conditions {
		b.WriteString(indent + "  " + triggerStyle.Render("? "+c.Name) + "\n")
	}
	for _, t := range it.Triggers {
		b.WriteString(indent + "  " + triggerStyle.Render("! "+t.Name) + "\n")
		for _, runner := range t.Items {
			renderItem(b, runner, depth+2)
		}
	}
	for _, child := range it.Items {
		renderItem(b, child, depth+1)
	}
}
