package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/masonhq/mason/internal/output"
	"github.com/masonhq/mason/internal/resource"
)

// Catalog is a snapshot of one resource kind.
type Catalog struct {
	Kind  string              `json:"kind"`
	Items []resource.Metadata `json:"items"`
}

// FormatJSON outputs the catalogs as a JSON array to the printer.
func FormatJSON(printer *output.Printer, catalogs []Catalog) error {
	return printer.WriteJSON(catalogs)
}

// WriteJSONFiles writes each catalog as a separate JSON file to the output
// directory. Files are named <kind>.json.
func WriteJSONFiles(catalogs []Catalog, dir string) error {
	for _, catalog := range catalogs {
		filename := filepath.Join(dir, catalog.Kind+".json")

		data, err := json.MarshalIndent(catalog, "", "  ")
		if err != nil {
			return output.NewSystemError(fmt.Sprintf("failed to marshal catalog %s: %v", catalog.Kind, err))
		}

		if err := os.WriteFile(filename, data, 0600); err != nil {
			return output.NewSystemError(fmt.Sprintf("failed to write file %s: %v", filename, err))
		}
	}

	return nil
}

// marshalCatalog renders a catalog to indented JSON.
func marshalCatalog(catalog Catalog) ([]byte, error) {
	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling catalog %s: %w", catalog.Kind, err)
	}
	return data, nil
}
