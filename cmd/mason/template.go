// Package main provides the entry point for the mason CLI.
package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/masonhq/mason/internal/output"
	"github.com/masonhq/mason/internal/resource"
	"github.com/masonhq/mason/internal/template"
)

// newTemplateCmd creates the template command with its subcommands.
func newTemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "List, inspect, and apply templates",
	}
	cmd.AddCommand(newTemplateListCmd())
	cmd.AddCommand(newTemplateShowCmd())
	cmd.AddCommand(newTemplateApplyCmd())
	return cmd
}

// newTemplateListCmd creates the template list command.
func newTemplateListCmd() *cobra.Command {
	var categoryFlag string
	var tagsFlag []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available templates",
		Long: `List project and component templates from the resource base directory.

Examples:
  mason template list                     # All templates
  mason template list --category backend # Only one category
  mason template list --tags go,http     # Only templates with a matching tag`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, templates, _, err := buildManagers(cmd)
			printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())
			if err != nil {
				printer.Error(err)
				return err
			}

			projects := templates.Projects().List(categoryFlag, tagsFlag)
			components := templates.Components().List(categoryFlag, tagsFlag)

			if printer.IsJSON() {
				return printer.Success(map[string]any{
					"projects":   projects,
					"components": components,
				})
			}

			printStoreTable(printer, "Project Templates", templates.Projects(), projects)
			printStoreTable(printer, "Component Templates", templates.Components(), components)
			return nil
		},
	}
	cmd.Flags().StringVar(&categoryFlag, "category", "", "Filter by category")
	cmd.Flags().StringSliceVar(&tagsFlag, "tags", nil, "Filter by tags (any may match)")
	return cmd
}

// printStoreTable renders one store's resources as a table section.
func printStoreTable(printer *output.Printer, title string, store *resource.Store[*template.Template], names []string) {
	printer.Section(title)
	if len(names) == 0 {
		printer.Println("(none)")
		return
	}

	rows := make([][]string, 0, len(names))
	for _, name := range names {
		tmpl, err := store.Get(name)
		if err != nil {
			continue
		}
		rows = append(rows, []string{
			tmpl.Name,
			tmpl.Category,
			strings.Join(tmpl.Tags, ","),
			tmpl.Description,
		})
	}
	printer.Table([]string{"NAME", "CATEGORY", "TAGS", "DESCRIPTION"}, rows)
}

// newTemplateShowCmd creates the template show command.
func newTemplateShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Display a template's metadata and files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, templates, _, err := buildManagers(cmd)
			printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())
			if err != nil {
				printer.Error(err)
				return err
			}

			tmpl, err := templates.Get(args[0])
			if err != nil {
				userErr := output.NewUserError(err.Error())
				printer.Error(userErr)
				return userErr
			}

			if printer.IsJSON() {
				return printer.WriteJSON(tmpl)
			}

			printer.Section(tmpl.Name)
			printer.KeyValue("Description", tmpl.Description)
			printer.KeyValue("Category", tmpl.Category)
			printer.KeyValue("Tags", strings.Join(tmpl.Tags, ", "))
			if tmpl.Version != "" {
				printer.KeyValue("Version", tmpl.Version)
			}
			if len(tmpl.Components) > 0 {
				printer.KeyValue("Components", strings.Join(tmpl.Components, ", "))
			}

			printer.Section("Files")
			for _, f := range tmpl.Files {
				printer.Println(f.Path)
			}
			return nil
		},
	}
}

// newTemplateApplyCmd creates the template apply command.
func newTemplateApplyCmd() *cobra.Command {
	var targetFlag string
	var varFlags []string

	cmd := &cobra.Command{
		Use:   "apply <name>",
		Short: "Apply a template to a target directory",
		Long: `Apply a template: render every file path and content with the given
variables and write the results under the target directory.

Variables are passed as repeated --var key=value flags. File paths and
contents share one variable set. Referenced components are applied in
declaration order after the template's own files.

Examples:
  mason template apply go-service --target ./out --var name=payments
  mason template apply go-service --target . --var name=api --var port=8080`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, templates, _, err := buildManagers(cmd)
			printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())
			if err != nil {
				printer.Error(err)
				return err
			}

			variables, err := parseVarFlags(varFlags)
			if err != nil {
				printer.Error(err)
				return err
			}

			result, err := templates.Apply(args[0], variables, targetFlag)
			if err != nil {
				userErr := output.NewUserError(err.Error())
				printer.Error(userErr)
				return userErr
			}

			if printer.IsJSON() {
				return printer.WriteJSON(result)
			}

			printer.Success(map[string]any{
				"message": "Applied " + result.Template + " to " + result.Target,
			})
			for _, path := range result.Written {
				printer.Println("  " + path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&targetFlag, "target", ".", "Target directory")
	cmd.Flags().StringArrayVar(&varFlags, "var", nil, "Template variable as key=value (repeatable)")
	return cmd
}

// parseVarFlags parses repeated key=value flags into a variable map.
func parseVarFlags(flags []string) (map[string]string, error) {
	variables := make(map[string]string, len(flags))
	for _, raw := range flags {
		key, value, ok := strings.Cut(raw, "=")
		if !ok || key == "" {
			return nil, output.NewUserError("invalid --var " + raw + ": expected key=value")
		}
		variables[key] = value
	}
	return variables, nil
}
