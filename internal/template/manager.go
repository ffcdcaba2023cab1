package template

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/masonhq/mason/internal/resource"
)

// ApplicationError wraps the first failure encountered while applying a
// template, naming the offending file. Files written before the failure
// remain on disk; apply is not transactional.
type ApplicationError struct {
	Template string
	File     string
	Err      error
}

// Error implements the error interface.
func (e *ApplicationError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("applying template %q: %v", e.Template, e.Err)
	}
	return fmt.Sprintf("applying template %q, file %q: %v", e.Template, e.File, e.Err)
}

// Unwrap returns the underlying failure.
func (e *ApplicationError) Unwrap() error { return e.Err }

// CyclicReferenceError is returned when a component template transitively
// references itself.
type CyclicReferenceError struct {
	Name string
}

// Error implements the error interface.
func (e *CyclicReferenceError) Error() string {
	return fmt.Sprintf("cyclic component reference through %q", e.Name)
}

// Manager holds the project and component template stores and materializes
// templates onto disk.
type Manager struct {
	projects   *resource.Store[*Template]
	components *resource.Store[*Template]
	logger     *log.Logger
}

// NewManager creates a manager over baseDir/templates (project templates)
// and baseDir/components (component templates).
func NewManager(baseDir string, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		projects:   resource.NewStore("project template", filepath.Join(baseDir, "templates"), ".yaml", Parse, Validate, logger),
		components: resource.NewStore("component template", filepath.Join(baseDir, "components"), ".yaml", Parse, Validate, logger),
		logger:     logger,
	}
}

// Discover scans both template directories.
func (m *Manager) Discover() error {
	if _, err := m.projects.Discover(); err != nil {
		return err
	}
	if _, err := m.components.Discover(); err != nil {
		return err
	}
	return nil
}

// Projects returns the project template store.
func (m *Manager) Projects() *resource.Store[*Template] { return m.projects }

// Components returns the component template store.
func (m *Manager) Components() *resource.Store[*Template] { return m.components }

// Get returns the named template, checking project templates first and
// component templates second.
func (m *Manager) Get(name string) (*Template, error) {
	if tmpl, err := m.projects.Get(name); err == nil {
		return tmpl, nil
	}
	return m.components.Get(name)
}

// ApplyResult reports the files written by one Apply call.
type ApplyResult struct {
	Template string   `json:"template"`
	Target   string   `json:"target"`
	Written  []string `json:"written"`
}

// Apply materializes the named template under targetDir: every file of the
// template and of its transitively referenced components has its path and
// content rendered with variables and is written to disk, creating parent
// directories as needed.
//
// The first render or write failure aborts the apply with an
// ApplicationError naming the offending file. Files already written stay on
// disk; there is no rollback.
func (m *Manager) Apply(name string, variables map[string]string, targetDir string) (*ApplyResult, error) {
	tmpl, err := m.Get(name)
	if err != nil {
		return nil, err
	}

	files, err := m.collectFiles(tmpl, make(map[string]bool))
	if err != nil {
		return nil, &ApplicationError{Template: name, Err: err}
	}

	result := &ApplyResult{Template: name, Target: targetDir}
	for _, f := range files {
		written, err := m.applyFile(f, variables, targetDir)
		if err != nil {
			return nil, &ApplicationError{Template: name, File: f.Path, Err: err}
		}
		result.Written = append(result.Written, written)
	}

	m.logger.Info("applied template", "template", name, "target", targetDir, "files", len(result.Written))
	return result, nil
}

// collectFiles gathers the template's files plus those of its referenced
// components, depth-first in declaration order. The visiting set detects
// reference cycles.
func (m *Manager) collectFiles(tmpl *Template, visiting map[string]bool) ([]File, error) {
	if visiting[tmpl.Name] {
		return nil, &CyclicReferenceError{Name: tmpl.Name}
	}
	visiting[tmpl.Name] = true
	defer delete(visiting, tmpl.Name)

	files := append([]File(nil), tmpl.Files...)
	for _, ref := range tmpl.Components {
		comp, err := m.components.Get(ref)
		if err != nil {
			return nil, err
		}
		compFiles, err := m.collectFiles(comp, visiting)
		if err != nil {
			return nil, err
		}
		files = append(files, compFiles...)
	}
	return files, nil
}

// applyFile renders one file's path and content and writes it under targetDir.
// Returns the rendered relative path.
func (m *Manager) applyFile(f File, variables map[string]string, targetDir string) (string, error) {
	renderedPath, err := Render(f.Path, variables)
	if err != nil {
		return "", err
	}
	if err := checkRelativePath(renderedPath); err != nil {
		return "", err
	}

	var data []byte
	if f.Binary {
		data, err = base64.StdEncoding.DecodeString(f.Content)
		if err != nil {
			return "", fmt.Errorf("decoding binary content: %w", err)
		}
	} else {
		content, err := Render(f.Content, variables)
		if err != nil {
			return "", err
		}
		data = []byte(content)
	}

	dest := filepath.Join(targetDir, filepath.FromSlash(renderedPath))
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return "", fmt.Errorf("creating directory: %w", err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	return renderedPath, nil
}
