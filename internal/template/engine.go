// Package template provides placeholder substitution and the project/component
// template manager for mason.
//
// Placeholders are delimited by double braces and tolerate internal
// whitespace: {{name}} and {{ name }} reference the same variable. The same
// rule applies to file contents and to relative file paths.
package template

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// placeholderPattern matches {{name}} with arbitrary whitespace inside the
// braces. One pattern covers both spellings; there is no separate code path
// per spelling.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// MissingVariableError is returned when rendered text references a variable
// absent from the provided variable map.
type MissingVariableError struct {
	Name string
}

// Error implements the error interface.
func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("missing variable: %s", e.Name)
}

// ExtractVariables returns the distinct variable names referenced by text,
// sorted. {{x}} and {{ x }} yield the same name.
func ExtractVariables(text string) []string {
	seen := make(map[string]bool)
	for _, match := range placeholderPattern.FindAllStringSubmatch(text, -1) {
		seen[match[1]] = true
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render replaces every placeholder in text with its value from variables.
// A placeholder whose name is absent fails with a MissingVariableError for
// the first missing name in document order. No defaults are substituted.
func Render(text string, variables map[string]string) (string, error) {
	var missing *MissingVariableError

	rendered := placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		name := strings.TrimSpace(match[2 : len(match)-2])
		value, ok := variables[name]
		if !ok {
			if missing == nil {
				missing = &MissingVariableError{Name: name}
			}
			return match
		}
		return value
	})

	if missing != nil {
		return "", missing
	}
	return rendered, nil
}
