package main

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestStatus(t *testing.T) {
	setupBaseDir(t)

	out, err := runCommand(t, "status")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, expected := range []string{"Resources", "Project Templates", "Prompts", "Renderer"} {
		if !strings.Contains(out, expected) {
			t.Errorf("output should contain %q: %q", expected, out)
		}
	}
}

func TestStatus_JSON(t *testing.T) {
	setupBaseDir(t)

	out, err := runCommand(t, "status", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var result statusResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output should be valid JSON: %v\nOutput: %s", err, out)
	}

	if !result.BaseDirExists {
		t.Error("base_dir_exists should be true")
	}
	if result.ProjectCount != 1 {
		t.Errorf("project_count = %d, want 1", result.ProjectCount)
	}
	if result.ComponentCount != 1 {
		t.Errorf("component_count = %d, want 1", result.ComponentCount)
	}
	if result.PromptCount != 1 {
		t.Errorf("prompt_count = %d, want 1", result.PromptCount)
	}
}

func TestStatus_EmptyBaseDir(t *testing.T) {
	t.Setenv("MASON_BASE_DIR", t.TempDir())

	out, err := runCommand(t, "status", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var result statusResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output should be valid JSON: %v", err)
	}
	if result.ProjectCount != 0 || result.PromptCount != 0 {
		t.Errorf("counts should be zero for empty base dir: %+v", result)
	}
}
