package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/masonhq/mason/internal/output"
	"github.com/masonhq/mason/internal/resource"
)

// testCatalogs creates catalogs for two resource kinds.
func testCatalogs() []Catalog {
	return []Catalog{
		{
			Kind: "templates",
			Items: []resource.Metadata{
				{
					Name:        "go-service",
					Description: "Scaffold for a Go HTTP service",
					Category:    "backend",
					Tags:        []string{"go", "http"},
					Version:     "1.2.0",
				},
				{Name: "cli-tool", Category: "tooling"},
			},
		},
		{
			Kind:  "prompts",
			Items: []resource.Metadata{{Name: "code-review", Category: "engineering"}},
		},
	}
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	printer := output.NewPrinter(&buf, true, false)

	if err := FormatJSON(printer, testCatalogs()); err != nil {
		t.Fatalf("FormatJSON() error = %v", err)
	}

	var got []Catalog
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d catalogs, want 2", len(got))
	}
	if got[0].Kind != "templates" || len(got[0].Items) != 2 {
		t.Errorf("first catalog = %+v, want templates with 2 items", got[0])
	}
}

func TestWriteJSONFiles(t *testing.T) {
	dir := t.TempDir()

	if err := WriteJSONFiles(testCatalogs(), dir); err != nil {
		t.Fatalf("WriteJSONFiles() error = %v", err)
	}

	for _, name := range []string{"templates.json", "prompts.json"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		var catalog Catalog
		if err := json.Unmarshal(data, &catalog); err != nil {
			t.Errorf("%s is not valid JSON: %v", name, err)
		}
	}
}

func TestWriteJSONFilesBadDir(t *testing.T) {
	err := WriteJSONFiles(testCatalogs(), filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("expected error writing to missing directory")
	}
	if output.GetExitCode(err) != output.ExitSystemError {
		t.Errorf("exit code = %d, want %d", output.GetExitCode(err), output.ExitSystemError)
	}
}
