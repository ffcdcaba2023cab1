package prompt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	gocache "github.com/patrickmn/go-cache"

	"github.com/masonhq/mason/internal/resource"
	"github.com/masonhq/mason/internal/template"
)

// cacheTTL bounds how long a loaded prompt is served without re-reading disk.
const cacheTTL = 5 * time.Minute

// Manager holds the prompt store and renders, persists, and loads prompts.
type Manager struct {
	store  *resource.Store[*Prompt]
	dir    string
	cache  *gocache.Cache
	logger *log.Logger
}

// NewManager creates a manager over baseDir/prompts.
func NewManager(baseDir string, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	dir := filepath.Join(baseDir, "prompts")
	return &Manager{
		store:  resource.NewStore("prompt", dir, ".md", Parse, Validate, logger),
		dir:    dir,
		cache:  gocache.New(cacheTTL, 2*cacheTTL),
		logger: logger,
	}
}

// Discover scans the prompt directory.
func (m *Manager) Discover() error {
	_, err := m.store.Discover()
	return err
}

// Store returns the underlying prompt store.
func (m *Manager) Store() *resource.Store[*Prompt] { return m.store }

// List returns prompt names filtered by category and tags (see resource.Store.List).
func (m *Manager) List(category string, tags []string) []string {
	return m.store.List(category, tags)
}

// Get returns the named prompt from the registry.
func (m *Manager) Get(name string) (*Prompt, error) {
	return m.store.Get(name)
}

// Render renders the named prompt with variables. The effective variable set
// is the union of the prompt's declared variables and the placeholders
// extracted from its content: declared names absent from the content only
// produce a warning, while content placeholders absent from variables fail
// with a MissingVariableError.
func (m *Manager) Render(name string, variables map[string]string) (string, error) {
	p, err := m.store.Get(name)
	if err != nil {
		return "", err
	}

	extracted := make(map[string]bool)
	for _, v := range template.ExtractVariables(p.Content) {
		extracted[v] = true
	}
	for _, declared := range p.Variables {
		if !extracted[declared] {
			m.logger.Warn("declared variable not used in prompt content",
				"prompt", name, "variable", declared)
		}
	}

	return template.Render(p.Content, variables)
}

// path returns the definition file path for a prompt name.
func (m *Manager) path(name string) string {
	return filepath.Join(m.dir, name+".md")
}

// Save validates and persists a prompt under name, registers it (replacing
// any previous version), and refreshes the load cache. Load(name) after
// Save(name, p) returns a prompt equal to p.
func (m *Manager) Save(name string, p *Prompt) error {
	p.Name = name
	if err := Validate(p); err != nil {
		return err
	}

	data, err := p.Marshal()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return fmt.Errorf("creating prompt directory: %w", err)
	}
	if err := atomicWrite(m.path(name), data); err != nil {
		return fmt.Errorf("writing prompt %s: %w", name, err)
	}

	if err := m.store.Add(name, p, true); err != nil {
		return err
	}
	m.cache.Set(name, p, gocache.DefaultExpiration)
	return nil
}

// Load reads the named prompt from its persisted form. Recently loaded or
// saved prompts are served from an in-memory cache.
func (m *Manager) Load(name string) (*Prompt, error) {
	if cached, ok := m.cache.Get(name); ok {
		return cached.(*Prompt), nil
	}

	p, err := Parse(m.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &resource.NotFoundError{Kind: "prompt", Name: name}
		}
		return nil, err
	}

	m.cache.Set(name, p, gocache.DefaultExpiration)
	return p, nil
}

// Remove deletes the named prompt from the registry, the cache, and disk.
func (m *Manager) Remove(name string) error {
	if err := m.store.Remove(name); err != nil {
		return err
	}
	m.cache.Delete(name)

	if err := os.Remove(m.path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing prompt file: %w", err)
	}
	return nil
}

// atomicWrite writes data to path using write-to-temp-then-rename.
// The temp file is created in the same directory as path.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*.md")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("write data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
