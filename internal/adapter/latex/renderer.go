package latex

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/couchcryptid/forecast-report/internal/domain"
	"github.com/couchcryptid/forecast-report/internal/observability"
)

// logTailLines is how much engine output is quoted when compilation fails.
const logTailLines = 20

// Renderer writes a report as LaTeX source and compiles it to PDF with an
// external engine such as xelatex.
type Renderer struct {
	engine  string
	dir     string
	name    string
	timeout time.Duration
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewRenderer creates a Renderer that writes <dir>/<name>.tex and <dir>/<name>.pdf.
func NewRenderer(engine, dir, name string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Renderer {
	return &Renderer{
		engine:  engine,
		dir:     dir,
		name:    name,
		timeout: timeout,
		metrics: metrics,
		logger:  logger.With("component", "latex"),
	}
}

// Render writes the source file and compiles it. The engine runs in a
// scratch directory and the PDF is moved into place only after a clean
// compile, so a failed run never leaves a truncated PDF at the final path.
// The source file is kept either way. Errors wrap domain.ErrDocumentGeneration.
func (r *Renderer) Render(ctx context.Context, doc domain.ReportDocument) (domain.Artifact, error) {
	start := time.Now()
	defer func() { r.metrics.RenderDuration.Observe(time.Since(start).Seconds()) }()

	art, err := r.render(ctx, doc)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("%w: %w", domain.ErrDocumentGeneration, err)
	}
	r.logger.Info("report rendered", "pdf", art.PDFPath, "duration", time.Since(start))
	return art, nil
}

func (r *Renderer) render(ctx context.Context, doc domain.ReportDocument) (domain.Artifact, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return domain.Artifact{}, fmt.Errorf("create output dir: %w", err)
	}

	var src bytes.Buffer
	if err := WriteSource(&src, doc); err != nil {
		return domain.Artifact{}, err
	}

	art := domain.Artifact{
		SourcePath: filepath.Join(r.dir, r.name+".tex"),
		PDFPath:    filepath.Join(r.dir, r.name+".pdf"),
	}
	if err := os.WriteFile(art.SourcePath, src.Bytes(), 0o644); err != nil {
		return domain.Artifact{}, fmt.Errorf("write source: %w", err)
	}

	scratch, err := os.MkdirTemp(r.dir, r.name+"-render-")
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(scratch)

	if err := r.compile(ctx, art.SourcePath, scratch); err != nil {
		return domain.Artifact{}, err
	}

	built := filepath.Join(scratch, r.name+".pdf")
	if _, err := os.Stat(built); err != nil {
		return domain.Artifact{}, fmt.Errorf("%s produced no PDF: %w", r.engine, err)
	}
	if err := os.Rename(built, art.PDFPath); err != nil {
		return domain.Artifact{}, fmt.Errorf("move PDF into place: %w", err)
	}
	return art, nil
}

func (r *Renderer) compile(ctx context.Context, source, outDir string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.engine,
		"-interaction=nonstopmode",
		"-halt-on-error",
		"-output-directory="+outDir,
		source,
	)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	cmd.WaitDelay = time.Second

	r.logger.Debug("running latex engine", "engine", r.engine, "source", source)
	if err := cmd.Run(); err != nil {
		tail := lastLines(out.String(), logTailLines)
		r.logger.Error("latex engine failed", "engine", r.engine, "error", err, "output", tail)
		if ctx.Err() != nil {
			return fmt.Errorf("%s: %w", r.engine, ctx.Err())
		}
		return fmt.Errorf("%s: %w\n%s", r.engine, err, tail)
	}
	return nil
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
