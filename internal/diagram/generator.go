package diagram

import (
	"fmt"
	"strings"
)

// UnknownNodeError reports an edge endpoint with no matching node declaration.
type UnknownNodeError struct {
	ID string
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("edge references unknown node %q", e.ID)
}

// UnknownParticipantError reports a message endpoint with no matching
// participant declaration.
type UnknownParticipantError struct {
	Name string
}

func (e *UnknownParticipantError) Error() string {
	return fmt.Sprintf("message references unknown participant %q", e.Name)
}

// UnknownClassError reports a relationship endpoint with no matching class.
type UnknownClassError struct {
	Name string
}

func (e *UnknownClassError) Error() string {
	return fmt.Sprintf("relationship references unknown class %q", e.Name)
}

// directions maps accepted direction spellings onto mermaid direction codes.
var directions = map[string]string{
	"TB":         "TB",
	"TD":         "TB",
	"BT":         "BT",
	"LR":         "LR",
	"RL":         "RL",
	"top-down":   "TB",
	"bottom-up":  "BT",
	"left-right": "LR",
	"right-left": "RL",
}

// Flowchart generates mermaid flowchart source from nodes and edges.
// Direction accepts mermaid codes (TB, BT, LR, RL) or long spellings
// (top-down, bottom-up, left-right, right-left); empty means TB. Every edge
// endpoint must name a declared node. Output order follows input order, so
// identical input yields identical source.
func Flowchart(nodes []Node, edges []Edge, direction string) (string, error) {
	dir := "TB"
	if direction != "" {
		var ok bool
		dir, ok = directions[direction]
		if !ok {
			return "", fmt.Errorf("unsupported flowchart direction: %q", direction)
		}
	}

	declared := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		declared[n.ID] = true
	}
	for _, e := range edges {
		if !declared[e.From] {
			return "", &UnknownNodeError{ID: e.From}
		}
		if !declared[e.To] {
			return "", &UnknownNodeError{ID: e.To}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "flowchart %s\n", dir)
	for _, n := range nodes {
		label := n.Label
		if label == "" {
			label = n.ID
		}
		fmt.Fprintf(&b, "    %s[\"%s\"]\n", n.ID, escapeLabel(label))
	}
	for _, e := range edges {
		if e.Label != "" {
			fmt.Fprintf(&b, "    %s -->|%s| %s\n", e.From, e.Label, e.To)
		} else {
			fmt.Fprintf(&b, "    %s --> %s\n", e.From, e.To)
		}
	}
	return b.String(), nil
}

// escapeLabel replaces double quotes with the mermaid #quot; entity so a
// label cannot terminate its own ["..."] quoting.
func escapeLabel(label string) string {
	return strings.ReplaceAll(label, `"`, "#quot;")
}

// Sequence generates mermaid sequence diagram source. Every message endpoint
// must name a declared participant. A message with no arrow uses "->>".
func Sequence(participants []string, messages []Message) (string, error) {
	declared := make(map[string]bool, len(participants))
	for _, p := range participants {
		declared[p] = true
	}
	for _, msg := range messages {
		if !declared[msg.From] {
			return "", &UnknownParticipantError{Name: msg.From}
		}
		if !declared[msg.To] {
			return "", &UnknownParticipantError{Name: msg.To}
		}
	}

	var b strings.Builder
	b.WriteString("sequenceDiagram\n")
	for _, p := range participants {
		fmt.Fprintf(&b, "    participant %s\n", p)
	}
	for _, msg := range messages {
		arrow := msg.Arrow
		if arrow == "" {
			arrow = "->>"
		}
		fmt.Fprintf(&b, "    %s%s%s: %s\n", msg.From, arrow, msg.To, msg.Label)
	}
	return b.String(), nil
}

// ClassDiagram generates mermaid class diagram source. Every relationship
// endpoint must name a declared class.
func ClassDiagram(classes []Class, relationships []Relationship) (string, error) {
	declared := make(map[string]bool, len(classes))
	for _, c := range classes {
		declared[c.Name] = true
	}
	for _, r := range relationships {
		if !declared[r.From] {
			return "", &UnknownClassError{Name: r.From}
		}
		if !declared[r.To] {
			return "", &UnknownClassError{Name: r.To}
		}
		if _, ok := relSymbols[r.Kind]; !ok {
			return "", fmt.Errorf("unsupported relationship kind: %q", r.Kind)
		}
	}

	var b strings.Builder
	b.WriteString("classDiagram\n")
	for _, c := range classes {
		fmt.Fprintf(&b, "    class %s {\n", c.Name)
		for _, attr := range c.Attributes {
			fmt.Fprintf(&b, "        %s\n", attr)
		}
		for _, method := range c.Methods {
			fmt.Fprintf(&b, "        %s\n", method)
		}
		b.WriteString("    }\n")
	}
	for _, r := range relationships {
		fmt.Fprintf(&b, "    %s %s %s\n", r.From, relSymbols[r.Kind], r.To)
	}
	return b.String(), nil
}
