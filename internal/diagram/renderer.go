package diagram

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/masonhq/mason/internal/config"
)

// UnavailableError reports that the configured rendering binary is not on PATH.
type UnavailableError struct {
	Binary string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("rendering unavailable: %q not found on PATH", e.Binary)
}

// TimeoutError reports a render exceeding its configured time budget.
type TimeoutError struct {
	Binary  string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("rendering with %q timed out after %s", e.Binary, e.Timeout)
}

// RenderError reports a failed render invocation with the compiler's stderr.
type RenderError struct {
	Binary string
	Stderr string
	Err    error
}

func (e *RenderError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("rendering with %q failed: %v: %s", e.Binary, e.Err, e.Stderr)
	}
	return fmt.Sprintf("rendering with %q failed: %v", e.Binary, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Renderer invokes an external mermaid-compatible compiler to turn diagram
// source into an image file. The compiler is called as
// binary -i <source> -o <output>.
type Renderer struct {
	binary    string
	timeout   time.Duration
	outputDir string
	format    string
	logger    *log.Logger
}

// NewRenderer builds a renderer from settings.
func NewRenderer(settings config.RendererSettings, logger *log.Logger) *Renderer {
	if logger == nil {
		logger = log.Default()
	}
	return &Renderer{
		binary:    settings.Binary,
		timeout:   time.Duration(settings.TimeoutSeconds) * time.Second,
		outputDir: settings.OutputDir,
		format:    settings.Format,
		logger:    logger,
	}
}

// Available reports whether the rendering binary can be resolved on PATH.
func (r *Renderer) Available() bool {
	_, err := exec.LookPath(r.binary)
	return err == nil
}

// Render compiles diagram source to an image. An empty outputPath picks
// diagram_<uuid>.<format> under the configured output directory. The returned
// path is the written file. A partial output file from a failed invocation
// is removed, unless a file already existed at the output path before the
// run, in which case it is left in place.
func (r *Renderer) Render(ctx context.Context, source, outputPath string) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", errors.New("diagram source is empty")
	}
	if _, err := exec.LookPath(r.binary); err != nil {
		return "", &UnavailableError{Binary: r.binary}
	}

	if outputPath == "" {
		outputPath = filepath.Join(r.outputDir, fmt.Sprintf("diagram_%s.%s", uuid.NewString(), r.format))
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	// A failed run must not delete a file the caller already had at the
	// output path; remember whether one existed before the compiler ran.
	_, statErr := os.Stat(outputPath)
	preExisting := statErr == nil

	srcPath, err := writeScratchSource(source)
	if err != nil {
		return "", err
	}
	defer func() { _ = os.Remove(srcPath) }()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	r.logger.Debug("rendering diagram", "binary", r.binary, "output", outputPath)

	cmd := exec.CommandContext(ctx, r.binary, "-i", srcPath, "-o", outputPath)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if !preExisting {
			_ = os.Remove(outputPath)
		}
		if ctx.Err() == context.DeadlineExceeded {
			return "", &TimeoutError{Binary: r.binary, Timeout: r.timeout}
		}
		return "", &RenderError{
			Binary: r.binary,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return "", &RenderError{Binary: r.binary, Err: fmt.Errorf("no output produced: %w", err)}
	}
	if info.Size() == 0 {
		if !preExisting {
			_ = os.Remove(outputPath)
		}
		return "", &RenderError{Binary: r.binary, Err: errors.New("empty output produced")}
	}

	return outputPath, nil
}

// writeScratchSource writes diagram source to a uniquely named temp file.
func writeScratchSource(source string) (string, error) {
	path := filepath.Join(os.TempDir(), fmt.Sprintf("mason-%s.mmd", uuid.NewString()))
	if err := os.WriteFile(path, []byte(source), 0o644); err != nil {
		return "", fmt.Errorf("writing diagram source: %w", err)
	}
	return path, nil
}
