// Package main provides the entry point for the mason CLI.
package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/masonhq/mason/internal/export"
	"github.com/masonhq/mason/internal/output"
	"github.com/masonhq/mason/internal/prompt"
	"github.com/masonhq/mason/internal/resource"
	"github.com/masonhq/mason/internal/template"
)

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	var formatFlag string
	var dirFlag string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export resource catalogs",
		Long: `Export catalogs of templates, components, and prompts.

Without --dir, catalogs are written to stdout as JSON. With --dir, one file
per resource kind is written in the chosen format (<kind>.json or <kind>.md).

Examples:
  mason export                            # JSON catalogs to stdout
  mason export --dir ./docs               # JSON files per kind
  mason export --dir ./docs --format markdown`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

			if formatFlag != "json" && formatFlag != "markdown" {
				err := output.NewUserError("unsupported format: " + formatFlag + " (use json or markdown)")
				printer.Error(err)
				return err
			}

			_, templates, prompts, err := buildManagers(cmd)
			if err != nil {
				printer.Error(err)
				return err
			}

			catalogs := buildCatalogs(templates, prompts)

			if dirFlag == "" {
				return export.FormatJSON(printer, catalogs)
			}

			if err := os.MkdirAll(dirFlag, 0o755); err != nil {
				sysErr := output.NewSystemErrorWithCause("creating export directory", err)
				printer.Error(sysErr)
				return sysErr
			}

			now := time.Now().UTC()
			if formatFlag == "markdown" {
				err = export.WriteMarkdownFiles(catalogs, dirFlag, now)
			} else {
				err = export.WriteJSONFiles(catalogs, dirFlag)
			}
			if err != nil {
				printer.Error(err)
				return err
			}

			return printer.Success(map[string]any{
				"message":  "Exported " + dirFlag,
				"dir":      dirFlag,
				"format":   formatFlag,
				"catalogs": len(catalogs),
			})
		},
	}
	cmd.Flags().StringVar(&formatFlag, "format", "json", "Export format: json or markdown")
	cmd.Flags().StringVar(&dirFlag, "dir", "", "Directory to write catalog files into")
	return cmd
}

// buildCatalogs snapshots every resource kind.
func buildCatalogs(templates *template.Manager, prompts *prompt.Manager) []export.Catalog {
	return []export.Catalog{
		catalogOf("templates", templates.Projects()),
		catalogOf("components", templates.Components()),
		catalogOf("prompts", prompts.Store()),
	}
}

// catalogOf snapshots one store's resources into a catalog.
func catalogOf[T resource.Resource](kind string, store *resource.Store[T]) export.Catalog {
	names := store.List("", nil)
	items := make([]T, 0, len(names))
	for _, name := range names {
		res, err := store.Get(name)
		if err != nil {
			continue
		}
		items = append(items, res)
	}
	return export.MetadataOf(kind, items)
}
