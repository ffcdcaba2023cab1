package envfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_NonexistentFile(t *testing.T) {
	err := Load("/nonexistent/env")
	if err != nil {
		t.Fatalf("expected nil for nonexistent file, got %v", err)
	}
}

func TestLoad_SetsUnsetVars(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env")
	content := "MASON_TEST_A=hello\nMASON_TEST_B=world\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	// Ensure vars are unset
	t.Setenv("MASON_TEST_A", "")
	t.Setenv("MASON_TEST_B", "")
	_ = os.Unsetenv("MASON_TEST_A") //nolint:errcheck
	_ = os.Unsetenv("MASON_TEST_B") //nolint:errcheck

	if err := Load(path); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("MASON_TEST_A"); got != "hello" {
		t.Errorf("MASON_TEST_A = %q, want %q", got, "hello")
	}
	if got := os.Getenv("MASON_TEST_B"); got != "world" {
		t.Errorf("MASON_TEST_B = %q, want %q", got, "world")
	}
}

func TestLoad_DoesNotOverrideExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env")
	content := "MASON_TEST_C=from_file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MASON_TEST_C", "from_env")

	if err := Load(path); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("MASON_TEST_C"); got != "from_env" {
		t.Errorf("MASON_TEST_C = %q, want %q (env should take precedence)", got, "from_env")
	}
}

func TestLoad_IgnoresUnprefixedKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env")
	content := "OTHER_TOOL_KEY=secret\nMASON_TEST_D=yes\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("OTHER_TOOL_KEY", "")
	t.Setenv("MASON_TEST_D", "")
	_ = os.Unsetenv("OTHER_TOOL_KEY") //nolint:errcheck
	_ = os.Unsetenv("MASON_TEST_D")   //nolint:errcheck

	if err := Load(path); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("OTHER_TOOL_KEY"); got != "" {
		t.Errorf("OTHER_TOOL_KEY = %q, want unset (no MASON_ prefix)", got)
	}
	if got := os.Getenv("MASON_TEST_D"); got != "yes" {
		t.Errorf("MASON_TEST_D = %q, want %q", got, "yes")
	}
}

func TestLoad_SkipsCommentsAndBlanks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env")
	content := "# This is a comment\n\nMASON_TEST_E=yes\n  # indented comment\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MASON_TEST_E", "")
	_ = os.Unsetenv("MASON_TEST_E") //nolint:errcheck

	if err := Load(path); err != nil {
		t.Fatal(err)
	}

	if got := os.Getenv("MASON_TEST_E"); got != "yes" {
		t.Errorf("MASON_TEST_E = %q, want %q", got, "yes")
	}
}

func TestParseEnvLine(t *testing.T) {
	tests := []struct {
		line    string
		wantKey string
		wantVal string
		wantOK  bool
	}{
		{"KEY=value", "KEY", "value", true},
		{"KEY=\"quoted value\"", "KEY", "quoted value", true},
		{"KEY='single quoted'", "KEY", "single quoted", true},
		{"export KEY=value", "KEY", "value", true},
		{"  KEY = value  ", "KEY", "value", true},
		{"no-equals-sign", "", "", false},
		{"=no-key", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		key, val, ok := parseEnvLine(tt.line)
		if ok != tt.wantOK || key != tt.wantKey || val != tt.wantVal {
			t.Errorf("parseEnvLine(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.line, key, val, ok, tt.wantKey, tt.wantVal, tt.wantOK)
		}
	}
}
