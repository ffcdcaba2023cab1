package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/masonhq/mason/internal/prompt"
	"github.com/masonhq/mason/internal/resource"
	"github.com/masonhq/mason/internal/template"
)

// --- Shared types ---

// ResourceSummary is a simplified resource listing for output.
type ResourceSummary struct {
	Name        string   `json:"name"                  jsonschema:"resource name"`
	Description string   `json:"description,omitempty" jsonschema:"one-line description"`
	Category    string   `json:"category,omitempty"    jsonschema:"resource category"`
	Tags        []string `json:"tags,omitempty"        jsonschema:"resource tags"`
	Version     string   `json:"version,omitempty"     jsonschema:"resource version"`
}

// toSummary converts resource metadata to a summary.
func toSummary(meta *resource.Metadata) ResourceSummary {
	return ResourceSummary{
		Name:        meta.Name,
		Description: meta.Description,
		Category:    meta.Category,
		Tags:        meta.Tags,
		Version:     meta.Version,
	}
}

// --- list_templates tool ---

// ListTemplatesInput is the input for the list_templates tool.
type ListTemplatesInput struct {
	Category string   `json:"category,omitempty" jsonschema:"only templates in this category"`
	Tags     []string `json:"tags,omitempty"     jsonschema:"only templates carrying at least one of these tags"`
}

// ListTemplatesOutput is the output for the list_templates tool.
type ListTemplatesOutput struct {
	Projects   []ResourceSummary `json:"projects"   jsonschema:"matching project templates"`
	Components []ResourceSummary `json:"components" jsonschema:"matching component templates"`
}

func handleListTemplates(templates *template.Manager) mcp.ToolHandlerFor[ListTemplatesInput, ListTemplatesOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ListTemplatesInput) (*mcp.CallToolResult, ListTemplatesOutput, error) {
		out := ListTemplatesOutput{
			Projects:   summarizeStore(templates.Projects(), input.Category, input.Tags),
			Components: summarizeStore(templates.Components(), input.Category, input.Tags),
		}
		return nil, out, nil
	}
}

// summarizeStore lists a store's matching resources as summaries.
func summarizeStore[T resource.Resource](store *resource.Store[T], category string, tags []string) []ResourceSummary {
	names := store.List(category, tags)
	summaries := make([]ResourceSummary, 0, len(names))
	for _, name := range names {
		res, err := store.Get(name)
		if err != nil {
			continue
		}
		summaries = append(summaries, toSummary(res.Meta()))
	}
	return summaries
}

// --- apply_template tool ---

// ApplyTemplateInput is the input for the apply_template tool.
type ApplyTemplateInput struct {
	Name      string            `json:"name"                jsonschema:"template name"`
	Target    string            `json:"target"              jsonschema:"target directory to write files under"`
	Variables map[string]string `json:"variables,omitempty" jsonschema:"variable values substituted into paths and contents"`
}

// ApplyTemplateOutput is the output for the apply_template tool.
type ApplyTemplateOutput struct {
	Template string   `json:"template" jsonschema:"template name"`
	Target   string   `json:"target"   jsonschema:"target directory"`
	Written  []string `json:"written"  jsonschema:"relative paths of files written"`
}

func handleApplyTemplate(templates *template.Manager) mcp.ToolHandlerFor[ApplyTemplateInput, ApplyTemplateOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ApplyTemplateInput) (*mcp.CallToolResult, ApplyTemplateOutput, error) {
		if input.Name == "" {
			return nil, ApplyTemplateOutput{}, errors.New("name is required")
		}
		if input.Target == "" {
			return nil, ApplyTemplateOutput{}, errors.New("target is required")
		}

		result, err := templates.Apply(input.Name, input.Variables, input.Target)
		if err != nil {
			return nil, ApplyTemplateOutput{}, fmt.Errorf("applying template: %w", err)
		}

		out := ApplyTemplateOutput{
			Template: result.Template,
			Target:   result.Target,
			Written:  result.Written,
		}
		return nil, out, nil
	}
}

// --- list_prompts tool ---

// ListPromptsInput is the input for the list_prompts tool.
type ListPromptsInput struct {
	Category string   `json:"category,omitempty" jsonschema:"only prompts in this category"`
	Tags     []string `json:"tags,omitempty"     jsonschema:"only prompts carrying at least one of these tags"`
}

// ListPromptsOutput is the output for the list_prompts tool.
type ListPromptsOutput struct {
	Prompts []ResourceSummary `json:"prompts" jsonschema:"matching prompts"`
}

func handleListPrompts(prompts *prompt.Manager) mcp.ToolHandlerFor[ListPromptsInput, ListPromptsOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ListPromptsInput) (*mcp.CallToolResult, ListPromptsOutput, error) {
		out := ListPromptsOutput{
			Prompts: summarizeStore(prompts.Store(), input.Category, input.Tags),
		}
		return nil, out, nil
	}
}

// --- render_prompt tool ---

// RenderPromptInput is the input for the render_prompt tool.
type RenderPromptInput struct {
	Name      string            `json:"name"                jsonschema:"prompt name"`
	Variables map[string]string `json:"variables,omitempty" jsonschema:"variable values substituted into the prompt"`
}

// RenderPromptOutput is the output for the render_prompt tool.
type RenderPromptOutput struct {
	Name    string `json:"name"    jsonschema:"prompt name"`
	Content string `json:"content" jsonschema:"rendered prompt text"`
}

func handleRenderPrompt(prompts *prompt.Manager) mcp.ToolHandlerFor[RenderPromptInput, RenderPromptOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input RenderPromptInput) (*mcp.CallToolResult, RenderPromptOutput, error) {
		if input.Name == "" {
			return nil, RenderPromptOutput{}, errors.New("name is required")
		}

		content, err := prompts.Render(input.Name, input.Variables)
		if err != nil {
			return nil, RenderPromptOutput{}, fmt.Errorf("rendering prompt: %w", err)
		}

		return nil, RenderPromptOutput{Name: input.Name, Content: content}, nil
	}
}
