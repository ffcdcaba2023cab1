package diagram

import (
	"fmt"
	"strings"
)

// Violation is one validation finding against diagram source.
type Violation struct {
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	if v.Line > 0 {
		return fmt.Sprintf("line %d: %s", v.Line, v.Message)
	}
	return v.Message
}

// Validate checks diagram source against the generator's grammar subset and
// returns all findings. An empty slice means the source passed every check.
// Passing validation does not guarantee acceptance by an external compiler.
func Validate(source string, typ Type) []Violation {
	var violations []Violation

	trimmed := strings.TrimSpace(source)
	if trimmed == "" {
		return []Violation{{Message: "diagram source is empty"}}
	}

	keyword, ok := headerKeywords[typ]
	if !ok {
		return []Violation{{Message: fmt.Sprintf("unsupported diagram type: %q", typ)}}
	}

	lines := strings.Split(trimmed, "\n")
	header := strings.TrimSpace(lines[0])
	if !strings.HasPrefix(header, keyword) {
		violations = append(violations, Violation{
			Line:    1,
			Message: fmt.Sprintf("source must start with %q, got %q", keyword, header),
		})
	}

	violations = append(violations, checkBlockBalance(lines)...)

	switch typ {
	case TypeFlowchart:
		violations = append(violations, checkFlowchartRefs(lines)...)
	case TypeSequence:
		violations = append(violations, checkSequenceRefs(lines)...)
	case TypeClass:
		violations = append(violations, checkClassRefs(lines)...)
	}

	return violations
}

// checkBlockBalance verifies braces open and close in matched pairs.
func checkBlockBalance(lines []string) []Violation {
	var violations []Violation
	depth := 0
	for i, line := range lines {
		for _, r := range line {
			switch r {
			case '{':
				depth++
			case '}':
				depth--
				if depth < 0 {
					violations = append(violations, Violation{
						Line:    i + 1,
						Message: "unmatched closing brace",
					})
					depth = 0
				}
			}
		}
	}
	if depth > 0 {
		violations = append(violations, Violation{Message: "unclosed block"})
	}
	return violations
}

// checkFlowchartRefs verifies every edge endpoint is a declared node.
// Declarations look like `id["label"]`, edges like `a --> b` or `a -->|l| b`.
func checkFlowchartRefs(lines []string) []Violation {
	declared := make(map[string]bool)
	type edgeRef struct {
		line int
		id   string
	}
	var refs []edgeRef

	for i, raw := range lines[1:] {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if open := strings.Index(line, "["); open > 0 && strings.HasSuffix(line, "]") {
			declared[line[:open]] = true
			continue
		}
		if from, rest, ok := strings.Cut(line, "-->"); ok {
			to := rest
			if strings.HasPrefix(strings.TrimSpace(rest), "|") {
				if _, after, ok := strings.Cut(rest[strings.Index(rest, "|")+1:], "|"); ok {
					to = after
				}
			}
			refs = append(refs,
				edgeRef{line: i + 2, id: strings.TrimSpace(from)},
				edgeRef{line: i + 2, id: strings.TrimSpace(to)})
		}
	}

	var violations []Violation
	for _, ref := range refs {
		if ref.id != "" && !declared[ref.id] {
			violations = append(violations, Violation{
				Line:    ref.line,
				Message: fmt.Sprintf("edge references undeclared node %q", ref.id),
			})
		}
	}
	return violations
}

// checkSequenceRefs verifies every message endpoint is a declared participant.
func checkSequenceRefs(lines []string) []Violation {
	declared := make(map[string]bool)
	var violations []Violation

	for i, raw := range lines[1:] {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if name, ok := strings.CutPrefix(line, "participant "); ok {
			declared[strings.TrimSpace(name)] = true
			continue
		}
		head, _, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		from, to, ok := splitArrow(head)
		if !ok {
			continue
		}
		for _, name := range []string{from, to} {
			if name != "" && !declared[name] {
				violations = append(violations, Violation{
					Line:    i + 2,
					Message: fmt.Sprintf("message references undeclared participant %q", name),
				})
			}
		}
	}
	return violations
}

// checkClassRefs verifies every relationship endpoint is a declared class.
// Declarations look like `class X {` or `class X`, relationships like
// `A <|-- B`. Member lines inside class blocks are skipped.
func checkClassRefs(lines []string) []Violation {
	declared := make(map[string]bool)
	type classRef struct {
		line int
		name string
	}
	var refs []classRef

	depth := 0
	for i, raw := range lines[1:] {
		line := strings.TrimSpace(raw)
		inBlock := depth > 0
		depth += strings.Count(line, "{") - strings.Count(line, "}")
		if line == "" || inBlock {
			continue
		}
		if name, ok := strings.CutPrefix(line, "class "); ok {
			name = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(name), "{"))
			declared[name] = true
			continue
		}
		if from, to, ok := splitRelationship(line); ok {
			refs = append(refs,
				classRef{line: i + 2, name: from},
				classRef{line: i + 2, name: to})
		}
	}

	var violations []Violation
	for _, ref := range refs {
		if ref.name != "" && !declared[ref.name] {
			violations = append(violations, Violation{
				Line:    ref.line,
				Message: fmt.Sprintf("relationship references undeclared class %q", ref.name),
			})
		}
	}
	return violations
}

// splitRelationship splits "A <|-- B" style lines on the first connector.
// Longer connectors are tried first so `<|--` never splits as `--`.
func splitRelationship(line string) (from, to string, ok bool) {
	for _, symbol := range []string{"<|--", "..|>", "-->", "..>", "*--", "o--"} {
		if f, t, found := strings.Cut(line, symbol); found {
			return strings.TrimSpace(f), strings.TrimSpace(t), true
		}
	}
	return "", "", false
}

// splitArrow splits "A->>B" style message heads on the first arrow token.
func splitArrow(head string) (from, to string, ok bool) {
	for _, arrow := range []string{"-->>", "->>", "-->", "->", "-x", "--x"} {
		if f, t, found := strings.Cut(head, arrow); found {
			return strings.TrimSpace(f), strings.TrimSpace(t), true
		}
	}
	return "", "", false
}
