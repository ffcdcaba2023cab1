package diagram

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masonhq/mason/internal/config"
)

// installFakeCompiler drops a shell script named bin on a fresh PATH entry.
func installFakeCompiler(t *testing.T, bin, script string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake compiler scripts require a POSIX shell")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, bin)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func newTestRenderer(t *testing.T, bin string) *Renderer {
	t.Helper()
	return NewRenderer(config.RendererSettings{
		Binary:         bin,
		TimeoutSeconds: 5,
		OutputDir:      filepath.Join(t.TempDir(), "rendered"),
		Format:         "svg",
	}, nil)
}

func TestRenderWritesOutput(t *testing.T) {
	// The fake compiler copies the source file to the output path.
	installFakeCompiler(t, "fake-mmdc", `
while [ "$#" -gt 0 ]; do
  case "$1" in
    -i) src="$2"; shift 2 ;;
    -o) out="$2"; shift 2 ;;
    *) shift ;;
  esac
done
cp "$src" "$out"
`)

	r := newTestRenderer(t, "fake-mmdc")
	out, err := r.Render(context.Background(), "flowchart TB\n    A[\"A\"]\n", "")
	require.NoError(t, err)

	assert.Contains(t, filepath.Base(out), "diagram_")
	assert.Equal(t, ".svg", filepath.Ext(out))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "flowchart TB")
}

func TestRenderHonorsExplicitOutputPath(t *testing.T) {
	installFakeCompiler(t, "fake-mmdc", `echo rendered > "$4"`)

	r := newTestRenderer(t, "fake-mmdc")
	want := filepath.Join(t.TempDir(), "out", "diagram.svg")
	got, err := r.Render(context.Background(), "flowchart TB\n", want)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRenderUnavailableBinary(t *testing.T) {
	r := newTestRenderer(t, "definitely-not-installed-compiler")
	assert.False(t, r.Available())

	out := filepath.Join(t.TempDir(), "diagram.svg")
	_, err := r.Render(context.Background(), "flowchart TB\n", out)

	var unavailable *UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "definitely-not-installed-compiler", unavailable.Binary)

	// No output file is left behind when the binary is missing.
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRenderEmptySource(t *testing.T) {
	r := newTestRenderer(t, "fake-mmdc")
	_, err := r.Render(context.Background(), "   ", "")
	assert.Error(t, err)
}

func TestRenderCompilerFailureCapturesStderr(t *testing.T) {
	installFakeCompiler(t, "fake-mmdc", `echo "parse error at line 2" >&2; exit 1`)

	r := newTestRenderer(t, "fake-mmdc")
	_, err := r.Render(context.Background(), "flowchart TB\n", "")

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Contains(t, renderErr.Stderr, "parse error at line 2")
}

func TestRenderRemovesPartialOutputOnFailure(t *testing.T) {
	installFakeCompiler(t, "fake-mmdc", `echo partial > "$4"; exit 1`)

	r := newTestRenderer(t, "fake-mmdc")
	out := filepath.Join(t.TempDir(), "diagram.svg")
	_, err := r.Render(context.Background(), "flowchart TB\n", out)
	require.Error(t, err)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRenderFailureKeepsPreexistingOutput(t *testing.T) {
	installFakeCompiler(t, "fake-mmdc", `exit 1`)

	// The caller points at a file that already exists; a failed run must
	// not delete it.
	out := filepath.Join(t.TempDir(), "diagram.svg")
	require.NoError(t, os.WriteFile(out, []byte("earlier render"), 0o644))

	r := newTestRenderer(t, "fake-mmdc")
	_, err := r.Render(context.Background(), "flowchart TB\n", out)
	require.Error(t, err)

	data, readErr := os.ReadFile(out)
	require.NoError(t, readErr)
	assert.Equal(t, "earlier render", string(data))
}

func TestRenderRejectsEmptyOutput(t *testing.T) {
	installFakeCompiler(t, "fake-mmdc", `: > "$4"`)

	r := newTestRenderer(t, "fake-mmdc")
	_, err := r.Render(context.Background(), "flowchart TB\n", "")

	var renderErr *RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Contains(t, renderErr.Error(), "empty output")
}

func TestRenderTimeout(t *testing.T) {
	installFakeCompiler(t, "fake-mmdc", `sleep 10`)

	r := NewRenderer(config.RendererSettings{
		Binary:         "fake-mmdc",
		TimeoutSeconds: 1,
		OutputDir:      t.TempDir(),
		Format:         "svg",
	}, nil)

	_, err := r.Render(context.Background(), "flowchart TB\n", "")

	var timeout *TimeoutError
	require.ErrorAs(t, err, &timeout)
}
