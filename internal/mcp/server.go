// Package mcp provides a Model Context Protocol server for mason.
// It exposes template, prompt, and diagram operations as MCP tools that any
// MCP-capable agent can use.
package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/masonhq/mason/internal/diagram"
	"github.com/masonhq/mason/internal/prompt"
	"github.com/masonhq/mason/internal/template"
)

// Deps holds the managers the MCP tools operate on.
type Deps struct {
	Templates *template.Manager
	Prompts   *prompt.Manager
	Renderer  *diagram.Renderer
}

// NewServer creates an MCP server with all mason tools registered.
func NewServer(version string, deps Deps) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "mason",
		Version: version,
	}, nil)
	registerTools(server, deps)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// writeAnnotations returns annotations for tools that write files
// (additive, not destructive).
func writeAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(false),
	}
}

// registerTools adds all mason tools to the server.
func registerTools(server *mcp.Server, deps Deps) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_templates",
		Description: "List available project and component templates, optionally filtered by category and tags.",
		Annotations: readOnlyAnnotations(),
	}, handleListTemplates(deps.Templates))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "apply_template",
		Description: "Apply a template to a target directory, rendering file paths and contents with the given variables. Returns the list of files written.",
		Annotations: writeAnnotations(),
	}, handleApplyTemplate(deps.Templates))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_prompts",
		Description: "List available prompt templates, optionally filtered by category and tags.",
		Annotations: readOnlyAnnotations(),
	}, handleListPrompts(deps.Prompts))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_prompt",
		Description: "Render a prompt template with the given variables and return the final text.",
		Annotations: readOnlyAnnotations(),
	}, handleRenderPrompt(deps.Prompts))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_flowchart",
		Description: "Generate mermaid flowchart source from nodes and edges.",
		Annotations: readOnlyAnnotations(),
	}, handleGenerateFlowchart())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_sequence_diagram",
		Description: "Generate mermaid sequence diagram source from participants and messages.",
		Annotations: readOnlyAnnotations(),
	}, handleGenerateSequence())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate_class_diagram",
		Description: "Generate mermaid class diagram source from classes and relationships.",
		Annotations: readOnlyAnnotations(),
	}, handleGenerateClass())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate_diagram",
		Description: "Validate mermaid diagram source against the supported grammar subset. Returns all violations found.",
		Annotations: readOnlyAnnotations(),
	}, handleValidateDiagram())

	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_diagram",
		Description: "Render mermaid diagram source to an image file using the configured compiler. Returns the output path.",
		Annotations: writeAnnotations(),
	}, handleRenderDiagram(deps.Renderer))
}
