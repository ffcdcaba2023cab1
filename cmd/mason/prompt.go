// Package main provides the entry point for the mason CLI.
package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/masonhq/mason/internal/output"
)

// newPromptCmd creates the prompt command with its subcommands.
func newPromptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "List, inspect, and render prompt templates",
	}
	cmd.AddCommand(newPromptListCmd())
	cmd.AddCommand(newPromptShowCmd())
	cmd.AddCommand(newPromptRenderCmd())
	cmd.AddCommand(newPromptDeleteCmd())
	return cmd
}

// newPromptListCmd creates the prompt list command.
func newPromptListCmd() *cobra.Command {
	var categoryFlag string
	var tagsFlag []string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List available prompts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _, prompts, err := buildManagers(cmd)
			printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())
			if err != nil {
				printer.Error(err)
				return err
			}

			names := prompts.List(categoryFlag, tagsFlag)

			if printer.IsJSON() {
				return printer.Success(map[string]any{"prompts": names})
			}

			printer.Section("Prompts")
			if len(names) == 0 {
				printer.Println("(none)")
				return nil
			}
			rows := make([][]string, 0, len(names))
			for _, name := range names {
				p, err := prompts.Get(name)
				if err != nil {
					continue
				}
				rows = append(rows, []string{
					p.Name,
					p.Category,
					strings.Join(p.Tags, ","),
					p.Description,
				})
			}
			printer.Table([]string{"NAME", "CATEGORY", "TAGS", "DESCRIPTION"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&categoryFlag, "category", "", "Filter by category")
	cmd.Flags().StringSliceVar(&tagsFlag, "tags", nil, "Filter by tags (any may match)")
	return cmd
}

// newPromptShowCmd creates the prompt show command.
func newPromptShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Display a prompt's metadata and raw content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, prompts, err := buildManagers(cmd)
			printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())
			if err != nil {
				printer.Error(err)
				return err
			}

			p, err := prompts.Get(args[0])
			if err != nil {
				userErr := output.NewUserError(err.Error())
				printer.Error(userErr)
				return userErr
			}

			if printer.IsJSON() {
				return printer.WriteJSON(p)
			}

			printer.Section(p.Name)
			printer.KeyValue("Description", p.Description)
			printer.KeyValue("Category", p.Category)
			printer.KeyValue("Tags", strings.Join(p.Tags, ", "))
			printer.KeyValue("Variables", strings.Join(p.Variables, ", "))
			printer.Section("Content")
			printer.Println(p.Content)
			return nil
		},
	}
}

// newPromptRenderCmd creates the prompt render command.
func newPromptRenderCmd() *cobra.Command {
	var varFlags []string

	cmd := &cobra.Command{
		Use:   "render <name>",
		Short: "Render a prompt with variables",
		Long: `Render a prompt template by substituting {{variable}} placeholders.

Every placeholder in the content must be supplied; declared variables that
never appear in the content only produce a warning.

Examples:
  mason prompt render code-review --var diff="$(git diff)" --var language=Go`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, prompts, err := buildManagers(cmd)
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

			content, err := prompts.Render(args[0], variables)
			if err != nil {
				userErr := output.NewUserError(err.Error())
				printer.Error(userErr)
				return userErr
			}

			if printer.IsJSON() {
				return printer.Success(map[string]any{
					"name":    args[0],
					"content": content,
				})
			}

			printer.Println(content)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&varFlags, "var", nil, "Prompt variable as key=value (repeatable)")
	return cmd
}

// newPromptDeleteCmd creates the prompt delete command.
func newPromptDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a prompt from the registry and disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, prompts, err := buildManagers(cmd)
			printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())
			if err != nil {
				printer.Error(err)
				return err
			}

			if err := prompts.Remove(args[0]); err != nil {
				userErr := output.NewUserError(err.Error())
				printer.Error(userErr)
				return userErr
			}

			return printer.Success(map[string]any{
				"message": "Deleted prompt " + args[0],
			})
		},
	}
}
