// Package resource provides the generic discovery and registry layer shared
// by all mason resource kinds (project templates, component templates, prompts).
//
// A Store holds one kind of resource, discovered from one directory, with
// parsing and validation supplied by the specialization. Stores are
// single-writer: concurrent reads are safe to interleave, but writers must
// be serialized externally.
package resource

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Metadata is the common descriptive header carried by every resource.
type Metadata struct {
	Name        string    `yaml:"name" json:"name"`
	Description string    `yaml:"description,omitempty" json:"description,omitempty"`
	Category    string    `yaml:"category,omitempty" json:"category,omitempty"`
	Tags        []string  `yaml:"tags,omitempty" json:"tags,omitempty"`
	Version     string    `yaml:"version,omitempty" json:"version,omitempty"`
	CreatedAt   time.Time `yaml:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt   time.Time `yaml:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// HasAnyTag reports whether the resource's tag set intersects tags.
// An empty tags argument matches everything.
func (m *Metadata) HasAnyTag(tags []string) bool {
	if len(tags) == 0 {
		return true
	}
	for _, want := range tags {
		for _, have := range m.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Resource is any named, validated unit managed by a Store.
type Resource interface {
	Meta() *Metadata
}

// NotFoundError is returned when a named resource is absent from a store.
type NotFoundError struct {
	Kind string
	Name string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Name)
}

// DuplicateError is returned when adding a resource whose name is taken
// and overwrite was not requested.
type DuplicateError struct {
	Kind string
	Name string
}

// Error implements the error interface.
func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Kind, e.Name)
}

// ValidationError is returned when a resource fails its kind's invariant check.
type ValidationError struct {
	Name     string
	Problems []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return fmt.Sprintf("invalid resource %q", e.Name)
	}
	return fmt.Sprintf("invalid resource %q: %s", e.Name, strings.Join(e.Problems, "; "))
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
