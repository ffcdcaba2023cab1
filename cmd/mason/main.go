// Package main provides the entry point for the mason CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/masonhq/mason/internal/config"
	"github.com/masonhq/mason/internal/envfile"
	"github.com/masonhq/mason/internal/output"
	"github.com/masonhq/mason/internal/prompt"
	"github.com/masonhq/mason/internal/template"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor reports whether human output should be styled.
func useColor(cmd *cobra.Command) bool {
	return !isJSONMode(cmd) && output.IsTTY(cmd.OutOrStdout())
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the mason CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mason",
		Short: "Project scaffolding, prompts, and diagrams",
		Long: `Mason - resource discovery, templating, and diagram generation.

Mason manages three resource kinds from a base directory:
  - Project and component templates (YAML) applied onto target directories
  - Prompt templates (Markdown with YAML frontmatter) rendered with variables
  - Mermaid diagrams generated from structured specs, validated, and
    optionally rendered to images via an external compiler

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// If --json flag is set but no subcommand, output JSON error
			if isJSONMode(cmd) {
				printer := output.NewPrinter(cmd.OutOrStdout(), true, false)
				err := output.NewUserError("no command specified. Run 'mason --help' for usage")
				printer.Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	// Load env files for MASON_ overrides that can't live in shell config.
	// Environment variables already set always take precedence.
	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loadEnvFiles()
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("config", "", "Config file path (default .mason/config.yaml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	// Configure lipgloss for TTY detection
	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order. Variables already set in
// the environment always take precedence; only MASON_ keys are applied.
//
// Resolution order:
//  1. $CWD/.mason/env       (per-project, gitignored)
//  2. <config dir>/env      (global fallback)
func loadEnvFiles() {
	_ = envfile.Load(filepath.Join(".mason", "env"))

	if dir := config.Dir(); dir != "" {
		_ = envfile.Load(filepath.Join(dir, "env"))
	}
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "resource", Title: "Resource Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "diagram", Title: "Diagram Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "admin", Title: "Admin Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newTemplateCmd(), "resource")
	addGroupedCommand(cmd, newPromptCmd(), "resource")
	addGroupedCommand(cmd, newExportCmd(), "resource")

	addGroupedCommand(cmd, newDiagramCmd(), "diagram")

	addGroupedCommand(cmd, newServeCmd(), "agent")

	addGroupedCommand(cmd, newStatusCmd(), "admin")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}

// newLogger builds the CLI logger, honoring the --verbose persistent flag.
// Logs go to stderr so they never interleave with structured output.
func newLogger(cmd *cobra.Command) *log.Logger {
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{
		ReportTimestamp: false,
	})
	if flag := cmd.Root().PersistentFlags().Lookup("verbose"); flag != nil && flag.Value.String() == "true" {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

// loadSettings reads settings honoring the --config persistent flag.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	cfgFile := ""
	if flag := cmd.Root().PersistentFlags().Lookup("config"); flag != nil {
		cfgFile = flag.Value.String()
	}
	settings, err := config.Load(cfgFile)
	if err != nil {
		return config.Settings{}, output.NewSystemErrorWithCause("loading configuration", err)
	}
	return settings, nil
}

// buildManagers loads settings and discovers templates and prompts.
func buildManagers(cmd *cobra.Command) (config.Settings, *template.Manager, *prompt.Manager, error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return config.Settings{}, nil, nil, err
	}

	logger := newLogger(cmd)

	templates := template.NewManager(settings.BaseDir, logger)
	if err := templates.Discover(); err != nil {
		return config.Settings{}, nil, nil, output.NewSystemErrorWithCause("discovering templates", err)
	}

	prompts := prompt.NewManager(settings.BaseDir, logger)
	if err := prompts.Discover(); err != nil {
		return config.Settings{}, nil, nil, output.NewSystemErrorWithCause("discovering prompts", err)
	}

	return settings, templates, prompts, nil
}
