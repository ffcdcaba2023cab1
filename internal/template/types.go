package template

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/masonhq/mason/internal/resource"
)

// File is one file materialized by a template. Path and Content may contain
// placeholders; Path is always relative to the apply target directory.
type File struct {
	Path    string `yaml:"path" json:"path"`
	Content string `yaml:"content,omitempty" json:"content,omitempty"`

	// Binary marks Content as base64-encoded data that is written verbatim
	// (no placeholder substitution in the content; the path is still rendered).
	Binary bool `yaml:"binary,omitempty" json:"binary,omitempty"`
}

// Template is a project or component template: metadata, an ordered list of
// files, and references to component templates whose files are pulled in
// transitively at apply time.
type Template struct {
	resource.Metadata `yaml:",inline"`

	Files      []File   `yaml:"files,omitempty" json:"files,omitempty"`
	Components []string `yaml:"components,omitempty" json:"components,omitempty"`
}

// Meta returns the template's metadata.
func (t *Template) Meta() *resource.Metadata { return &t.Metadata }

// Parse reads one template definition from a YAML file.
func Parse(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", path, err)
	}

	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", path, err)
	}

	if tmpl.Name == "" {
		tmpl.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return &tmpl, nil
}

// Validate checks the template invariants: a non-empty name, at least one
// file or component reference, safe relative paths, and decodable binary
// content.
func Validate(t *Template) error {
	var problems []string

	if t.Name == "" {
		problems = append(problems, "name must not be empty")
	}
	if len(t.Files) == 0 && len(t.Components) == 0 {
		problems = append(problems, "template must declare at least one file or component reference")
	}

	for _, f := range t.Files {
		if err := checkRelativePath(f.Path); err != nil {
			problems = append(problems, fmt.Sprintf("file %q: %v", f.Path, err))
		}
		if f.Binary {
			if _, err := base64.StdEncoding.DecodeString(f.Content); err != nil {
				problems = append(problems, fmt.Sprintf("file %q: content is not valid base64", f.Path))
			}
		}
	}

	if len(problems) > 0 {
		return &resource.ValidationError{Name: t.Name, Problems: problems}
	}
	return nil
}

// checkRelativePath rejects empty, absolute, and parent-escaping paths.
// It is applied to raw template paths and again to rendered paths, since a
// placeholder value could introduce a traversal.
func checkRelativePath(path string) error {
	if path == "" {
		return fmt.Errorf("path must not be empty")
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return fmt.Errorf("path must be relative")
	}
	clean := filepath.ToSlash(filepath.Clean(path))
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return fmt.Errorf("path must not escape the target directory")
	}
	return nil
}
