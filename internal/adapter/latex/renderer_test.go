package latex

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/couchcryptid/forecast-report/internal/domain"
	"github.com/couchcryptid/forecast-report/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine copies the .tex argument to <output-directory>/<name>.pdf.
const fakeEngine = `#!/bin/sh
for arg in "$@"; do
  case "$arg" in
    -output-directory=*) out="${arg#-output-directory=}" ;;
    *.tex) src="$arg" ;;
  esac
done
cp "$src" "$out/$(basename "$src" .tex).pdf"
`

// brokenEngine leaves a partial PDF behind and fails like a missing package would.
const brokenEngine = `#!/bin/sh
for arg in "$@"; do
  case "$arg" in
    -output-directory=*) out="${arg#-output-directory=}" ;;
  esac
done
printf 'partial' > "$out/output.pdf"
echo "! LaTeX Error: File ctex.sty not found."
exit 1
`

const slowEngine = `#!/bin/sh
exec sleep 5
`

func writeEngine(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script engines need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "engine.sh")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))
	return path
}

func testRenderer(engine, dir string, timeout time.Duration) *Renderer {
	return NewRenderer(engine, dir, "output", timeout, observability.NewMetrics(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRenderer_Render_Success(t *testing.T) {
	dir := t.TempDir()
	r := testRenderer(writeEngine(t, fakeEngine), dir, 10*time.Second)

	art, err := r.Render(context.Background(), testDocument())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "output.tex"), art.SourcePath)
	assert.Equal(t, filepath.Join(dir, "output.pdf"), art.PDFPath)

	src, err := os.ReadFile(art.SourcePath)
	require.NoError(t, err)
	assert.Contains(t, string(src), `\section{溫度}`)

	pdf, err := os.ReadFile(art.PDFPath)
	require.NoError(t, err)
	assert.Equal(t, src, pdf, "fake engine copies the source")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "scratch directory must be removed")
}

func TestRenderer_Render_EngineFailure(t *testing.T) {
	dir := t.TempDir()
	r := testRenderer(writeEngine(t, brokenEngine), dir, 10*time.Second)

	_, err := r.Render(context.Background(), testDocument())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDocumentGeneration)
	assert.Contains(t, err.Error(), "ctex.sty not found")

	assert.NoFileExists(t, filepath.Join(dir, "output.pdf"))
	assert.FileExists(t, filepath.Join(dir, "output.tex"), "source is kept for diagnosis")
}

func TestRenderer_Render_MissingEngine(t *testing.T) {
	dir := t.TempDir()
	r := testRenderer("definitely-not-a-latex-engine", dir, 10*time.Second)

	_, err := r.Render(context.Background(), testDocument())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDocumentGeneration)
	assert.NoFileExists(t, filepath.Join(dir, "output.pdf"))
}

func TestRenderer_Render_Timeout(t *testing.T) {
	dir := t.TempDir()
	r := testRenderer(writeEngine(t, slowEngine), dir, 100*time.Millisecond)

	_, err := r.Render(context.Background(), testDocument())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDocumentGeneration)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NoFileExists(t, filepath.Join(dir, "output.pdf"))
}

func TestRenderer_Render_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports", "taipei")
	r := testRenderer(writeEngine(t, fakeEngine), dir, 10*time.Second)

	art, err := r.Render(context.Background(), testDocument())
	require.NoError(t, err)
	assert.FileExists(t, art.PDFPath)
}

func TestLastLines(t *testing.T) {
	assert.Equal(t, "c\nd", lastLines("a\nb\nc\nd\n", 2))
	assert.Equal(t, "a", lastLines("a", 5))
}
