package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGeneratedSourcePasses(t *testing.T) {
	flow, err := Flowchart(
		[]Node{{ID: "A", Label: "Start"}, {ID: "B"}},
		[]Edge{{From: "A", To: "B", Label: "go"}},
		"LR",
	)
	require.NoError(t, err)
	assert.Empty(t, Validate(flow, TypeFlowchart))

	seq, err := Sequence([]string{"A", "B"}, []Message{{From: "A", To: "B", Label: "hi"}})
	require.NoError(t, err)
	assert.Empty(t, Validate(seq, TypeSequence))

	cls, err := ClassDiagram(
		[]Class{{Name: "A", Methods: []string{"+Do()"}}, {Name: "B"}},
		[]Relationship{{From: "A", To: "B", Kind: RelComposition}},
	)
	require.NoError(t, err)
	assert.Empty(t, Validate(cls, TypeClass))
}

func TestValidateEmptySource(t *testing.T) {
	violations := Validate("   \n ", TypeFlowchart)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Message, "empty")
}

func TestValidateWrongHeader(t *testing.T) {
	violations := Validate("sequenceDiagram\n", TypeFlowchart)
	require.NotEmpty(t, violations)
	assert.Equal(t, 1, violations[0].Line)
	assert.Contains(t, violations[0].Message, `"flowchart"`)
}

func TestValidateUnsupportedType(t *testing.T) {
	violations := Validate("pie\n", Type("pie"))
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Message, "unsupported diagram type")
}

func TestValidateUnbalancedBlocks(t *testing.T) {
	source := "classDiagram\n    class A {\n        +x int\n"
	violations := Validate(source, TypeClass)
	require.Len(t, violations, 1)
	assert.Contains(t, violations[0].Message, "unclosed block")

	source = "classDiagram\n    }\n"
	violations = Validate(source, TypeClass)
	require.Len(t, violations, 1)
	assert.Equal(t, 2, violations[0].Line)
	assert.Contains(t, violations[0].Message, "unmatched closing brace")
}

func TestValidateFlowchartUndeclaredNode(t *testing.T) {
	source := "flowchart TB\n    A[\"Start\"]\n    A --> B\n"
	violations := Validate(source, TypeFlowchart)
	require.Len(t, violations, 1)
	assert.Equal(t, 3, violations[0].Line)
	assert.Contains(t, violations[0].Message, `"B"`)
}

func TestValidateClassUndeclaredReference(t *testing.T) {
	source := "classDiagram\n    class A {\n    }\n    A <|-- Ghost\n"
	violations := Validate(source, TypeClass)
	require.Len(t, violations, 1)
	assert.Equal(t, 4, violations[0].Line)
	assert.Contains(t, violations[0].Message, `"Ghost"`)
}

func TestValidateClassRelationshipSymbols(t *testing.T) {
	for _, symbol := range []string{"<|--", "*--", "o--", "-->", "..>", "..|>"} {
		source := "classDiagram\n    class A {\n    }\n    class B {\n    }\n    A " + symbol + " B\n"
		assert.Empty(t, Validate(source, TypeClass), "symbol %s", symbol)
	}
}

func TestValidateSequenceUndeclaredParticipant(t *testing.T) {
	source := "sequenceDiagram\n    participant A\n    A->>B: hello\n"
	violations := Validate(source, TypeSequence)
	require.Len(t, violations, 1)
	assert.Equal(t, 3, violations[0].Line)
	assert.Contains(t, violations[0].Message, `"B"`)
}

func TestViolationString(t *testing.T) {
	assert.Equal(t, "line 3: boom", Violation{Line: 3, Message: "boom"}.String())
	assert.Equal(t, "boom", Violation{Message: "boom"}.String())
}
