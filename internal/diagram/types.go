// Package diagram generates, validates, and renders mermaid diagram source.
//
// Generation is pure dispatch over diagram kinds: identical structured input
// yields byte-identical source text. Validation checks the generator's own
// grammar subset; it does not guarantee acceptance by an external compiler.
// Rendering shells out to a mermaid-compatible CLI and carries no diagram
// knowledge of its own.
package diagram

import (
	"fmt"

	"github.com/masonhq/mason/internal/resource"
)

// Type identifies a diagram kind.
type Type string

// Supported diagram kinds.
const (
	TypeFlowchart Type = "flowchart"
	TypeSequence  Type = "sequence"
	TypeClass     Type = "class"
	TypeState     Type = "state"
)

// headerKeywords maps each diagram kind to the declaration keyword its
// source must open with.
var headerKeywords = map[Type]string{
	TypeFlowchart: "flowchart",
	TypeSequence:  "sequenceDiagram",
	TypeClass:     "classDiagram",
	TypeState:     "stateDiagram-v2",
}

// Node is one flowchart node.
type Node struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Edge connects two flowchart nodes, optionally labeled.
type Edge struct {
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Message is one sequence diagram message. Arrow defaults to "->>".
type Message struct {
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
	Label string `json:"label" yaml:"label"`
	Arrow string `json:"arrow,omitempty" yaml:"arrow,omitempty"`
}

// Class is one class diagram class with its members.
type Class struct {
	Name       string   `json:"name" yaml:"name"`
	Attributes []string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Methods    []string `json:"methods,omitempty" yaml:"methods,omitempty"`
}

// RelKind names a class relationship kind.
type RelKind string

// Class relationship kinds.
const (
	RelInheritance RelKind = "inheritance"
	RelComposition RelKind = "composition"
	RelAggregation RelKind = "aggregation"
	RelAssociation RelKind = "association"
	RelDependency  RelKind = "dependency"
	RelRealization RelKind = "realization"
)

// relSymbols maps relationship kinds onto mermaid connector symbols.
var relSymbols = map[RelKind]string{
	RelInheritance: "<|--",
	RelComposition: "*--",
	RelAggregation: "o--",
	RelAssociation: "-->",
	RelDependency:  "..>",
	RelRealization: "..|>",
}

// Relationship connects two classes.
type Relationship struct {
	From string  `json:"from" yaml:"from"`
	To   string  `json:"to" yaml:"to"`
	Kind RelKind `json:"kind" yaml:"kind"`
}

// Spec is a structured diagram description: a kind plus the fields that kind
// consumes. Generate dispatches on Type.
type Spec struct {
	resource.Metadata `yaml:",inline" json:",inline"`

	Type      Type   `json:"type" yaml:"type"`
	Direction string `json:"direction,omitempty" yaml:"direction,omitempty"`

	Nodes []Node `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	Edges []Edge `json:"edges,omitempty" yaml:"edges,omitempty"`

	Participants []string  `json:"participants,omitempty" yaml:"participants,omitempty"`
	Messages     []Message `json:"messages,omitempty" yaml:"messages,omitempty"`

	Classes       []Class        `json:"classes,omitempty" yaml:"classes,omitempty"`
	Relationships []Relationship `json:"relationships,omitempty" yaml:"relationships,omitempty"`
}

// Generate dispatches the spec to the generator for its kind.
func Generate(spec *Spec) (string, error) {
	switch spec.Type {
	case TypeFlowchart:
		return Flowchart(spec.Nodes, spec.Edges, spec.Direction)
	case TypeSequence:
		return Sequence(spec.Participants, spec.Messages)
	case TypeClass:
		return ClassDiagram(spec.Classes, spec.Relationships)
	default:
		return "", fmt.Errorf("unsupported diagram type: %q", spec.Type)
	}
}
