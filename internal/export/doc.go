// Package export provides formatting and file output for resource catalogs.
//
// A catalog is a snapshot of one resource kind (templates, components,
// prompts) as its metadata entries. Catalogs can be written to the printer,
// to local files, or uploaded to an object store.
//
// # Supported Formats
//
//   - JSON: machine-readable, preserving the full metadata schema
//   - Markdown: human-readable index with YAML frontmatter
//
// # File Naming
//
// When writing to files, catalogs are named by their kind:
//   - JSON: <kind>.json
//   - Markdown: <kind>.md
package export
