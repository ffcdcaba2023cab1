// Package prompt provides prompt templates and their manager for mason.
//
// A prompt is stored as a Markdown file with YAML frontmatter holding its
// metadata (name, description, category, tags, version, declared variables)
// followed by the prompt content.
package prompt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/masonhq/mason/internal/resource"
)

// Prompt represents a prompt template with metadata and content.
type Prompt struct {
	resource.Metadata `yaml:",inline"`

	// Variables lists the variable names the prompt declares. Declared
	// names that never appear in the content are tolerated with a warning
	// at render time; undeclared placeholders in the content still count.
	Variables []string `yaml:"variables,omitempty" json:"variables,omitempty"`

	// Content is the prompt body (after frontmatter).
	Content string `yaml:"-" json:"content"`
}

// Meta returns the prompt's metadata.
func (p *Prompt) Meta() *resource.Metadata { return &p.Metadata }

// Parse reads one prompt definition from a Markdown file with YAML frontmatter.
// A missing name falls back to the file stem.
func Parse(path string) (*Prompt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading prompt %s: %w", path, err)
	}

	p, err := parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing prompt %s: %w", path, err)
	}

	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// parse parses a prompt from raw file content.
func parse(raw string) (*Prompt, error) {
	frontmatter, content := splitFrontmatter(raw)

	var p Prompt
	if frontmatter != "" {
		if err := yaml.Unmarshal([]byte(frontmatter), &p); err != nil {
			return nil, fmt.Errorf("invalid frontmatter: %w", err)
		}
	}

	p.Content = strings.TrimSpace(content)
	return &p, nil
}

// Marshal serializes the prompt to its stable textual form: YAML frontmatter
// between --- delimiters, a blank line, then the content. Parse(Marshal(p))
// yields a prompt equal to p.
func (p *Prompt) Marshal() ([]byte, error) {
	frontmatter, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("serializing prompt frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(frontmatter)
	b.WriteString("---\n\n")
	b.WriteString(strings.TrimSpace(p.Content))
	b.WriteString("\n")
	return []byte(b.String()), nil
}

// Validate checks the prompt invariants: non-empty name and content.
func Validate(p *Prompt) error {
	var problems []string
	if p.Name == "" {
		problems = append(problems, "name must not be empty")
	}
	if strings.TrimSpace(p.Content) == "" {
		problems = append(problems, "content must not be empty")
	}

	if len(problems) > 0 {
		return &resource.ValidationError{Name: p.Name, Problems: problems}
	}
	return nil
}

// splitFrontmatter separates YAML frontmatter from content.
// Frontmatter is delimited by --- at the start and end.
func splitFrontmatter(raw string) (frontmatter, content string) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "---") {
		return "", raw
	}

	rest := raw[3:] // skip opening ---
	before, after, ok := strings.Cut(rest, "\n---")
	if !ok {
		return "", raw
	}

	return strings.TrimSpace(before), strings.TrimSpace(after)
}
