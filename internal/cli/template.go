package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/astrokit/seqedit/internal/db"
	"github.com/astrokit/seqedit/internal/wire"
)

var (
	templateName        string
	templateDescription string
	templateCategory    string
	templateTags        []string
	templateShowOut     string
)

func init() {
	templateSaveCmd.Flags().StringVar(&templateName, "name", "", "template name (defaults to the container name)")
	templateSaveCmd.Flags().StringVar(&templateDescription, "description", "", "template description")
	templateSaveCmd.Flags().StringVar(&templateCategory, "category", "", "template category")
	templateSaveCmd.Flags().StringSliceVar(&templateTags, "tag", nil, "template tag (repeatable)")
	templateShowCmd.Flags().StringVarP(&templateShowOut, "out", "o", "", "write template JSON to file instead of stdout")

	templateCmd.AddCommand(templateSaveCmd)
	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateShowCmd)
	templateCmd.AddCommand(templateDeleteCmd)
	rootCmd.AddCommand(templateCmd)
}

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage the template library",
	Long:  "Store, list and retrieve reusable single-container sequence templates.",
}

var templateSaveCmd = &cobra.Command{
	Use:   "save <template.json>",
	Short: "Save a template file into the library",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		name, items, err := wire.ImportTemplate(raw)
		if err != nil {
			return err
		}
		if templateName != "" {
			name = templateName
		}
		logger.Debug().Str("name", name).Int("items", len(items)).Msg("template parsed")

		database, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer database.Close()

		tpl := &db.Template{
			Name:        name,
			Description: templateDescription,
			Category:    templateCategory,
			Tags:        templateTags,
			Payload:     raw,
		}
		if err := db.NewTemplateRepository(database).Save(ctx, tpl); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "saved template", tpl.ID)
		return nil
	},
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		database, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer database.Close()

		templates, err := db.NewTemplateRepository(database).List(ctx)
		if err != nil {
			return err
		}

		rows := make([][]string, 0, len(templates))
		for _, t := range templates {
			rows = append(rows, []string{
				t.ID,
				t.Name,
				t.Category,
				formatYesNo(t.Builtin),
				strconv.Itoa(len(t.Payload)),
			})
		}
		return writeTable(cmd.OutOrStdout(), []string{"ID", "NAME", "CATEGORY", "BUILTIN", "BYTES"}, rows)
	},
}

var templateShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		database, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer database.Close()

		tpl, err := db.NewTemplateRepository(database).Get(ctx, args[0])
		if err != nil {
			return err
		}
		return writeOutput(cmd, templateShowOut, tpl.Payload)
	},
}

var templateDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		database, err := openDatabase(ctx)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := db.NewTemplateRepository(database).Delete(ctx, args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "deleted template", args[0])
		return nil
	},
}
