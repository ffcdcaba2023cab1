package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/masonhq/mason/internal/output"
	"github.com/masonhq/mason/internal/resource"
)

// FormatMarkdown formats a catalog as a markdown index document.
func FormatMarkdown(catalog Catalog, now time.Time) string {
	var builder strings.Builder

	writeFrontmatter(&builder, catalog, now)
	writeIndex(&builder, catalog)

	return builder.String()
}

// writeFrontmatter writes the YAML frontmatter section.
func writeFrontmatter(builder *strings.Builder, catalog Catalog, now time.Time) {
	builder.WriteString("---\n")
	builder.WriteString("schema: mason.export/v1\n")
	fmt.Fprintf(builder, "kind: %s\n", catalog.Kind)
	fmt.Fprintf(builder, "date: %s\n", now.Format("2006-01-02"))
	fmt.Fprintf(builder, "count: %d\n", len(catalog.Items))
	builder.WriteString("---\n\n")
}

// writeIndex writes the title and one section per item.
func writeIndex(builder *strings.Builder, catalog Catalog) {
	fmt.Fprintf(builder, "# %s catalog\n\n", catalog.Kind)

	for _, item := range catalog.Items {
		fmt.Fprintf(builder, "## %s\n\n", item.Name)
		if item.Description != "" {
			fmt.Fprintf(builder, "%s\n\n", item.Description)
		}
		if item.Category != "" {
			fmt.Fprintf(builder, "- Category: %s\n", item.Category)
		}
		if len(item.Tags) > 0 {
			fmt.Fprintf(builder, "- Tags: %s\n", strings.Join(item.Tags, ", "))
		}
		if item.Version != "" {
			fmt.Fprintf(builder, "- Version: %s\n", item.Version)
		}
		builder.WriteString("\n")
	}
}

// WriteMarkdownFiles writes each catalog as a separate markdown file to the
// output directory. Files are named <kind>.md.
func WriteMarkdownFiles(catalogs []Catalog, dir string, now time.Time) error {
	for _, catalog := range catalogs {
		filename := filepath.Join(dir, catalog.Kind+".md")

		content := FormatMarkdown(catalog, now)

		if err := os.WriteFile(filename, []byte(content), 0600); err != nil {
			return output.NewSystemError(fmt.Sprintf("failed to write file %s: %v", filename, err))
		}
	}

	return nil
}

// MetadataOf assembles a catalog from resources of one kind.
func MetadataOf[T resource.Resource](kind string, items []T) Catalog {
	catalog := Catalog{Kind: kind, Items: make([]resource.Metadata, 0, len(items))}
	for _, item := range items {
		catalog.Items = append(catalog.Items, *item.Meta())
	}
	return catalog
}
