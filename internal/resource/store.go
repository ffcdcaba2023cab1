package resource

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
)

// ParseFunc parses one resource definition file into a resource.
type ParseFunc[T Resource] func(path string) (T, error)

// ValidateFunc checks a resource against its kind's invariants.
type ValidateFunc[T Resource] func(T) error

// Store is a registry for one kind of resource backed by one directory of
// definition files. Parsing and validation are pluggable per kind; the
// registry mechanics (discovery, lookup, filtering, aggregates) are shared.
type Store[T Resource] struct {
	kind      string
	dir       string
	ext       string
	parse     ParseFunc[T]
	validate  ValidateFunc[T]
	resources map[string]T
	warnings  []string
	logger    *log.Logger
}

// NewStore creates a store for definition files with the given extension
// (e.g. ".yaml", ".md") under dir. The kind names the resource in errors
// and log lines.
func NewStore[T Resource](kind, dir, ext string, parse ParseFunc[T], validate ValidateFunc[T], logger *log.Logger) *Store[T] {
	if logger == nil {
		logger = log.Default()
	}
	return &Store[T]{
		kind:      kind,
		dir:       dir,
		ext:       ext,
		parse:     parse,
		validate:  validate,
		resources: make(map[string]T),
		logger:    logger,
	}
}

// Kind returns the resource kind name.
func (s *Store[T]) Kind() string { return s.kind }

// Dir returns the directory scanned by Discover.
func (s *Store[T]) Dir() string { return s.dir }

// Len returns the number of held resources.
func (s *Store[T]) Len() int { return len(s.resources) }

// Warnings returns the warnings recorded by the last Discover call.
func (s *Store[T]) Warnings() []string { return s.warnings }

// Discover scans the store directory (non-recursively) and registers every
// definition that parses and validates. A file that fails either step is
// skipped with a recorded warning; discovery itself only fails when the
// directory cannot be read. A missing directory yields an empty store.
// Returns the number of resources registered.
func (s *Store[T]) Discover() (int, error) {
	s.resources = make(map[string]T)
	s.warnings = nil

	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading %s directory %s: %w", s.kind, s.dir, err)
	}

	for _, entry := range dirEntries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), s.ext) {
			continue
		}

		path := filepath.Join(s.dir, entry.Name())
		res, err := s.parse(path)
		if err != nil {
			s.warn("skipping %s: %v", path, err)
			continue
		}

		meta := res.Meta()
		if meta.Name == "" {
			meta.Name = strings.TrimSuffix(entry.Name(), s.ext)
		}

		if err := s.validate(res); err != nil {
			s.warn("skipping %s: %v", path, err)
			continue
		}

		if _, exists := s.resources[meta.Name]; exists {
			s.warn("skipping %s: duplicate %s name %q", path, s.kind, meta.Name)
			continue
		}

		s.resources[meta.Name] = res
	}

	return len(s.resources), nil
}

// warn records a discovery warning and logs it.
func (s *Store[T]) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.warnings = append(s.warnings, msg)
	s.logger.Warn(msg, "kind", s.kind)
}

// List returns the names of held resources, sorted. The category filter is
// an exact match; the tags filter matches when the resource's tag set
// intersects the requested tags. Both filters combine with AND.
func (s *Store[T]) List(category string, tags []string) []string {
	names := make([]string, 0, len(s.resources))
	for name, res := range s.resources {
		meta := res.Meta()
		if category != "" && meta.Category != category {
			continue
		}
		if !meta.HasAnyTag(tags) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns the resource with the given name.
func (s *Store[T]) Get(name string) (T, error) {
	res, ok := s.resources[name]
	if !ok {
		var zero T
		return zero, &NotFoundError{Kind: s.kind, Name: name}
	}
	return res, nil
}

// Add registers a resource under name. Fails with a DuplicateError when the
// name is taken, unless overwrite is set. The resource is validated first.
func (s *Store[T]) Add(name string, res T, overwrite bool) error {
	if name == "" {
		return &ValidationError{Name: name, Problems: []string{"name must not be empty"}}
	}
	if err := s.validate(res); err != nil {
		return err
	}
	if _, exists := s.resources[name]; exists && !overwrite {
		return &DuplicateError{Kind: s.kind, Name: name}
	}

	res.Meta().Name = name
	s.resources[name] = res
	return nil
}

// Update replaces the resource under name after re-validating it.
// Fails with a NotFoundError when the name is absent.
func (s *Store[T]) Update(name string, res T) error {
	if _, exists := s.resources[name]; !exists {
		return &NotFoundError{Kind: s.kind, Name: name}
	}
	if err := s.validate(res); err != nil {
		return err
	}

	res.Meta().Name = name
	s.resources[name] = res
	return nil
}

// Remove deletes the resource under name.
// Fails with a NotFoundError when the name is absent.
func (s *Store[T]) Remove(name string) error {
	if _, exists := s.resources[name]; !exists {
		return &NotFoundError{Kind: s.kind, Name: name}
	}
	delete(s.resources, name)
	return nil
}

// Categories returns the distinct categories across all held resources, sorted.
func (s *Store[T]) Categories() []string {
	seen := make(map[string]bool)
	for _, res := range s.resources {
		if cat := res.Meta().Category; cat != "" {
			seen[cat] = true
		}
	}
	return sortedKeys(seen)
}

// Tags returns the distinct tags across all held resources, sorted.
func (s *Store[T]) Tags() []string {
	seen := make(map[string]bool)
	for _, res := range s.resources {
		for _, tag := range res.Meta().Tags {
			seen[tag] = true
		}
	}
	return sortedKeys(seen)
}

// sortedKeys returns the keys of set in sorted order.
func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
