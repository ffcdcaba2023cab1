package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/masonhq/mason/internal/diagram"
	"github.com/masonhq/mason/internal/prompt"
	"github.com/masonhq/mason/internal/template"
)

// --- Test helpers ---

// makeBaseDir seeds a resource base directory with templates, components,
// and prompts.
func makeBaseDir(t *testing.T) string {
	t.Helper()
	base := t.TempDir()

	write := func(rel, content string) {
		path := filepath.Join(base, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}

	write("templates/go-service.yaml", `name: go-service
description: Scaffold for a Go service
category: backend
tags: [go]
files:
  - path: "{{name}}/main.go"
    content: "package main // {{name}}"
components: [readme]
`)
	write("components/readme.yaml", `name: readme
category: docs
files:
  - path: "{{name}}/README.md"
    content: "# {{name}}"
`)
	write("prompts/code-review.md", `---
description: Reviews a diff
category: engineering
variables: [diff]
---
Review this:

{{diff}}
`)

	return base
}

func makeDeps(t *testing.T) Deps {
	t.Helper()
	base := makeBaseDir(t)

	templates := template.NewManager(base, nil)
	if err := templates.Discover(); err != nil {
		t.Fatalf("discovering templates: %v", err)
	}

	prompts := prompt.NewManager(base, nil)
	if err := prompts.Discover(); err != nil {
		t.Fatalf("discovering prompts: %v", err)
	}

	return Deps{Templates: templates, Prompts: prompts}
}

// --- list_templates handler tests ---

func TestHandleListTemplates(t *testing.T) {
	deps := makeDeps(t)
	handler := handleListTemplates(deps.Templates)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, ListTemplatesInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Projects) != 1 || out.Projects[0].Name != "go-service" {
		t.Errorf("Projects = %+v, want [go-service]", out.Projects)
	}
	if len(out.Components) != 1 || out.Components[0].Name != "readme" {
		t.Errorf("Components = %+v, want [readme]", out.Components)
	}
}

func TestHandleListTemplates_CategoryFilter(t *testing.T) {
	deps := makeDeps(t)
	handler := handleListTemplates(deps.Templates)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, ListTemplatesInput{Category: "docs"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Projects) != 0 {
		t.Errorf("Projects = %+v, want none", out.Projects)
	}
	if len(out.Components) != 1 {
		t.Errorf("Components = %+v, want [readme]", out.Components)
	}
}

// --- apply_template handler tests ---

func TestHandleApplyTemplate(t *testing.T) {
	deps := makeDeps(t)
	handler := handleApplyTemplate(deps.Templates)
	target := t.TempDir()

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, ApplyTemplateInput{
		Name:      "go-service",
		Target:    target,
		Variables: map[string]string{"name": "demo"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Written) != 2 {
		t.Fatalf("Written = %v, want 2 files", out.Written)
	}

	data, err := os.ReadFile(filepath.Join(target, "demo", "main.go"))
	if err != nil {
		t.Fatalf("reading applied file: %v", err)
	}
	if !strings.Contains(string(data), "// demo") {
		t.Errorf("applied content = %q, want rendered variable", data)
	}
}

func TestHandleApplyTemplate_Validation(t *testing.T) {
	deps := makeDeps(t)
	handler := handleApplyTemplate(deps.Templates)

	if _, _, err := handler(context.Background(), &mcp.CallToolRequest{}, ApplyTemplateInput{Target: "x"}); err == nil {
		t.Error("expected error for missing name")
	}
	if _, _, err := handler(context.Background(), &mcp.CallToolRequest{}, ApplyTemplateInput{Name: "go-service"}); err == nil {
		t.Error("expected error for missing target")
	}
	if _, _, err := handler(context.Background(), &mcp.CallToolRequest{}, ApplyTemplateInput{Name: "ghost", Target: t.TempDir()}); err == nil {
		t.Error("expected error for unknown template")
	}
}

// --- prompt handler tests ---

func TestHandleListPrompts(t *testing.T) {
	deps := makeDeps(t)
	handler := handleListPrompts(deps.Prompts)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, ListPromptsInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Prompts) != 1 || out.Prompts[0].Name != "code-review" {
		t.Errorf("Prompts = %+v, want [code-review]", out.Prompts)
	}
}

func TestHandleRenderPrompt(t *testing.T) {
	deps := makeDeps(t)
	handler := handleRenderPrompt(deps.Prompts)

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, RenderPromptInput{
		Name:      "code-review",
		Variables: map[string]string{"diff": "+1 -1"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.Content, "+1 -1") {
		t.Errorf("Content = %q, want substituted diff", out.Content)
	}
}

func TestHandleRenderPrompt_MissingVariable(t *testing.T) {
	deps := makeDeps(t)
	handler := handleRenderPrompt(deps.Prompts)

	if _, _, err := handler(context.Background(), &mcp.CallToolRequest{}, RenderPromptInput{Name: "code-review"}); err == nil {
		t.Error("expected error for missing variable")
	}
}

// --- diagram handler tests ---

func TestHandleGenerateFlowchart(t *testing.T) {
	handler := handleGenerateFlowchart()

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, FlowchartInput{
		Nodes: []diagram.Node{{ID: "A"}, {ID: "B"}},
		Edges: []diagram.Edge{{From: "A", To: "B"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out.Source, "flowchart TB") {
		t.Errorf("Source = %q, want flowchart header", out.Source)
	}
}

func TestHandleGenerateSequence(t *testing.T) {
	handler := handleGenerateSequence()

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, SequenceInput{
		Participants: []string{"A", "B"},
		Messages:     []diagram.Message{{From: "A", To: "B", Label: "hi"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.Source, "A->>B: hi") {
		t.Errorf("Source = %q, want message line", out.Source)
	}
}

func TestHandleGenerateClass_UnknownEndpoint(t *testing.T) {
	handler := handleGenerateClass()

	_, _, err := handler(context.Background(), &mcp.CallToolRequest{}, ClassInput{
		Classes:       []diagram.Class{{Name: "A"}},
		Relationships: []diagram.Relationship{{From: "A", To: "Ghost", Kind: diagram.RelAssociation}},
	})
	if err == nil {
		t.Error("expected error for unknown class")
	}
}

func TestHandleValidateDiagram(t *testing.T) {
	handler := handleValidateDiagram()

	_, out, err := handler(context.Background(), &mcp.CallToolRequest{}, ValidateDiagramInput{
		Source: "flowchart TB\n    A[\"A\"]\n",
		Type:   "flowchart",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Valid {
		t.Errorf("Valid = false, violations = %v", out.Violations)
	}

	_, out, err = handler(context.Background(), &mcp.CallToolRequest{}, ValidateDiagramInput{
		Source: "sequenceDiagram\n",
		Type:   "flowchart",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Valid || len(out.Violations) == 0 {
		t.Error("expected violations for mismatched header")
	}
}

func TestHandleRenderDiagram_NotConfigured(t *testing.T) {
	handler := handleRenderDiagram(nil)

	if _, _, err := handler(context.Background(), &mcp.CallToolRequest{}, RenderDiagramInput{Source: "flowchart TB\n"}); err == nil {
		t.Error("expected error when renderer is not configured")
	}
}
