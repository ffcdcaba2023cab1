package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/masonhq/mason/internal/diagram"
)

// --- generate_flowchart tool ---

// FlowchartInput is the input for the generate_flowchart tool.
type FlowchartInput struct {
	Nodes     []diagram.Node `json:"nodes"               jsonschema:"flowchart nodes"`
	Edges     []diagram.Edge `json:"edges,omitempty"     jsonschema:"edges between declared nodes"`
	Direction string         `json:"direction,omitempty" jsonschema:"layout direction: TB, BT, LR, RL, or top-down, bottom-up, left-right, right-left (default TB)"`
}

// DiagramOutput is the output for all diagram generation tools.
type DiagramOutput struct {
	Source string `json:"source" jsonschema:"mermaid diagram source text"`
}

func handleGenerateFlowchart() mcp.ToolHandlerFor[FlowchartInput, DiagramOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input FlowchartInput) (*mcp.CallToolResult, DiagramOutput, error) {
		source, err := diagram.Flowchart(input.Nodes, input.Edges, input.Direction)
		if err != nil {
			return nil, DiagramOutput{}, fmt.Errorf("generating flowchart: %w", err)
		}
		return nil, DiagramOutput{Source: source}, nil
	}
}

// --- generate_sequence_diagram tool ---

// SequenceInput is the input for the generate_sequence_diagram tool.
type SequenceInput struct {
	Participants []string          `json:"participants"       jsonschema:"sequence participants in display order"`
	Messages     []diagram.Message `json:"messages,omitempty" jsonschema:"messages between declared participants"`
}

func handleGenerateSequence() mcp.ToolHandlerFor[SequenceInput, DiagramOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input SequenceInput) (*mcp.CallToolResult, DiagramOutput, error) {
		source, err := diagram.Sequence(input.Participants, input.Messages)
		if err != nil {
			return nil, DiagramOutput{}, fmt.Errorf("generating sequence diagram: %w", err)
		}
		return nil, DiagramOutput{Source: source}, nil
	}
}

// --- generate_class_diagram tool ---

// ClassInput is the input for the generate_class_diagram tool.
type ClassInput struct {
	Classes       []diagram.Class        `json:"classes"                 jsonschema:"classes with attributes and methods"`
	Relationships []diagram.Relationship `json:"relationships,omitempty" jsonschema:"relationships between declared classes: inheritance, composition, aggregation, association, dependency, realization"`
}

func handleGenerateClass() mcp.ToolHandlerFor[ClassInput, DiagramOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ClassInput) (*mcp.CallToolResult, DiagramOutput, error) {
		source, err := diagram.ClassDiagram(input.Classes, input.Relationships)
		if err != nil {
			return nil, DiagramOutput{}, fmt.Errorf("generating class diagram: %w", err)
		}
		return nil, DiagramOutput{Source: source}, nil
	}
}

// --- validate_diagram tool ---

// ValidateDiagramInput is the input for the validate_diagram tool.
type ValidateDiagramInput struct {
	Source string `json:"source" jsonschema:"mermaid diagram source text"`
	Type   string `json:"type"   jsonschema:"diagram type: flowchart, sequence, class, or state"`
}

// ValidateDiagramOutput is the output for the validate_diagram tool.
type ValidateDiagramOutput struct {
	Valid      bool     `json:"valid"                jsonschema:"whether the source passed every check"`
	Violations []string `json:"violations,omitempty" jsonschema:"violations found, with line numbers where known"`
}

func handleValidateDiagram() mcp.ToolHandlerFor[ValidateDiagramInput, ValidateDiagramOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ValidateDiagramInput) (*mcp.CallToolResult, ValidateDiagramOutput, error) {
		violations := diagram.Validate(input.Source, diagram.Type(input.Type))

		out := ValidateDiagramOutput{Valid: len(violations) == 0}
		for _, v := range violations {
			out.Violations = append(out.Violations, v.String())
		}
		return nil, out, nil
	}
}

// --- render_diagram tool ---

// RenderDiagramInput is the input for the render_diagram tool.
type RenderDiagramInput struct {
	Source     string `json:"source"                jsonschema:"mermaid diagram source text"`
	OutputPath string `json:"output_path,omitempty" jsonschema:"output file path; defaults to a generated name under the configured output directory"`
}

// RenderDiagramOutput is the output for the render_diagram tool.
type RenderDiagramOutput struct {
	Path string `json:"path" jsonschema:"path of the rendered image file"`
}

func handleRenderDiagram(renderer *diagram.Renderer) mcp.ToolHandlerFor[RenderDiagramInput, RenderDiagramOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input RenderDiagramInput) (*mcp.CallToolResult, RenderDiagramOutput, error) {
		if renderer == nil {
			return nil, RenderDiagramOutput{}, errors.New("rendering is not configured")
		}

		path, err := renderer.Render(ctx, input.Source, input.OutputPath)
		if err != nil {
			return nil, RenderDiagramOutput{}, fmt.Errorf("rendering diagram: %w", err)
		}
		return nil, RenderDiagramOutput{Path: path}, nil
	}
}
