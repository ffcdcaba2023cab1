// Package main provides the entry point for the mason CLI.
package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/masonhq/mason/internal/diagram"
	masonmcp "github.com/masonhq/mason/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run mason as a Model Context Protocol (MCP) server over stdio.

This exposes mason operations as MCP tools that any MCP-capable agent
environment can use (Claude Code, Cursor, Windsurf, Gemini CLI, etc).

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "mason": {
        "command": "mason",
        "args": ["serve"]
      }
    }
  }

Available tools: list_templates, apply_template, list_prompts,
render_prompt, generate_flowchart, generate_sequence_diagram,
generate_class_diagram, validate_diagram, render_diagram`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, templates, prompts, err := buildManagers(cmd)
			if err != nil {
				return err
			}

			server := masonmcp.NewServer(buildVersion(), masonmcp.Deps{
				Templates: templates,
				Prompts:   prompts,
				Renderer:  diagram.NewRenderer(settings.Renderer, newLogger(cmd)),
			})
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
