// Package main provides the entry point for the mason CLI.
package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/masonhq/mason/internal/diagram"
	"github.com/masonhq/mason/internal/output"
)

// statusResult holds the data for status output.
type statusResult struct {
	BaseDir           string `json:"base_dir"`
	BaseDirExists     bool   `json:"base_dir_exists"`
	ProjectCount      int    `json:"project_count"`
	ComponentCount    int    `json:"component_count"`
	PromptCount       int    `json:"prompt_count"`
	WarningCount      int    `json:"warning_count"`
	RendererBinary    string `json:"renderer_binary"`
	RendererAvailable bool   `json:"renderer_available"`
}

// newStatusCmd creates the status command.
func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show resource and renderer state",
		Long: `Show the current state of the resource base directory and renderer.

Displays the base directory, per-kind resource counts, discovery warnings,
and whether the configured diagram compiler is available.

Examples:
  mason status         # Show human-readable status
  mason status --json  # Output status as JSON for scripting`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printer := output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).WithStderr(cmd.ErrOrStderr())

			settings, templates, prompts, err := buildManagers(cmd)
			if err != nil {
				printer.Error(err)
				return err
			}

			dirInfo, statErr := os.Stat(settings.BaseDir)
			renderer := diagram.NewRenderer(settings.Renderer, newLogger(cmd))

			warnings := len(templates.Projects().Warnings()) +
				len(templates.Components().Warnings()) +
				len(prompts.Store().Warnings())

			result := &statusResult{
				BaseDir:           settings.BaseDir,
				BaseDirExists:     statErr == nil && dirInfo.IsDir(),
				ProjectCount:      len(templates.Projects().List("", nil)),
				ComponentCount:    len(templates.Components().List("", nil)),
				PromptCount:       len(prompts.List("", nil)),
				WarningCount:      warnings,
				RendererBinary:    settings.Renderer.Binary,
				RendererAvailable: renderer.Available(),
			}

			if printer.IsJSON() {
				return printer.WriteJSON(result)
			}

			printHumanStatus(printer, result)
			return nil
		},
	}
}

// printHumanStatus outputs status in human-readable format.
func printHumanStatus(printer *output.Printer, status *statusResult) {
	printer.Section("Resources")
	printer.KeyValue("Base Directory", status.BaseDir)
	printer.KeyValue("Initialized", formatBool(status.BaseDirExists))
	printer.KeyValue("Project Templates", strconv.Itoa(status.ProjectCount))
	printer.KeyValue("Component Templates", strconv.Itoa(status.ComponentCount))
	printer.KeyValue("Prompts", strconv.Itoa(status.PromptCount))
	if status.WarningCount > 0 {
		printer.KeyValue("Discovery Warnings", strconv.Itoa(status.WarningCount))
	}

	printer.Section("Renderer")
	printer.KeyValue("Binary", status.RendererBinary)
	printer.KeyValue("Available", formatBool(status.RendererAvailable))
}

// formatBool returns a human-readable boolean string.
func formatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
