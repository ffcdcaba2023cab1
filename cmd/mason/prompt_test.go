package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPromptList(t *testing.T) {
	setupBaseDir(t)

	out, err := runCommand(t, "prompt", "list")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "code-review") {
		t.Errorf("output should list code-review: %q", out)
	}
}

func TestPromptList_JSON(t *testing.T) {
	setupBaseDir(t)

	out, err := runCommand(t, "prompt", "list", "--json")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var result map[string][]string
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("output should be valid JSON: %v\nOutput: %s", err, out)
	}
	if len(result["prompts"]) != 1 || result["prompts"][0] != "code-review" {
		t.Errorf("prompts = %v, want [code-review]", result["prompts"])
	}
}

func TestPromptShow(t *testing.T) {
	setupBaseDir(t)

	out, err := runCommand(t, "prompt", "show", "code-review")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, expected := range []string{"code-review", "Reviews a diff", "{{diff}}"} {
		if !strings.Contains(out, expected) {
			t.Errorf("output should contain %q: %q", expected, out)
		}
	}
}

func TestPromptRender(t *testing.T) {
	setupBaseDir(t)

	out, err := runCommand(t, "prompt", "render", "code-review", "--var", "diff=+1 -1")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(out, "+1 -1") {
		t.Errorf("output should contain substituted diff: %q", out)
	}
	if strings.Contains(out, "{{diff}}") {
		t.Errorf("output should not contain unrendered placeholder: %q", out)
	}
}

func TestPromptRender_MissingVariable(t *testing.T) {
	setupBaseDir(t)

	_, err := runCommand(t, "prompt", "render", "code-review")
	if err == nil {
		t.Fatal("expected error for missing variable")
	}
}

func TestPromptRender_Unknown(t *testing.T) {
	setupBaseDir(t)

	_, err := runCommand(t, "prompt", "render", "ghost")
	if err == nil {
		t.Fatal("expected error for unknown prompt")
	}
}

func TestPromptDelete(t *testing.T) {
	base := setupBaseDir(t)

	_, err := runCommand(t, "prompt", "delete", "code-review")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(base, "prompts", "code-review.md")); !os.IsNotExist(err) {
		t.Error("prompt file should be deleted")
	}

	if _, err := runCommand(t, "prompt", "delete", "code-review"); err == nil {
		t.Error("expected error deleting unknown prompt")
	}
}
