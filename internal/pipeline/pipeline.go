package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/forecast-report/internal/domain"
	"github.com/couchcryptid/forecast-report/internal/observability"
	"github.com/google/uuid"
)

// Fetcher retrieves the raw forecast for one county.
type Fetcher interface {
	Fetch(ctx context.Context, region string) (domain.ForecastResponse, error)
}

// Renderer turns a report into output files.
type Renderer interface {
	Render(ctx context.Context, doc domain.ReportDocument) (domain.Artifact, error)
}

// Publisher delivers a rendered report to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, runID string, doc domain.ReportDocument) error
}

// Result summarizes a successful run.
type Result struct {
	RunID    string
	Region   string
	Sections int
	Artifact domain.Artifact
}

// Pipeline runs validate, fetch, build, render, and publish in that order.
// Each stage runs only after the previous one succeeded.
type Pipeline struct {
	fetcher   Fetcher
	renderer  Renderer
	publisher Publisher
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a Pipeline. Pass a nil publisher to skip delivery.
func New(f Fetcher, r Renderer, p Publisher, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		fetcher:   f,
		renderer:  r,
		publisher: p,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run produces the report for region. An illegal region fails with
// domain.ErrInvalidRegion before any network or file work.
func (p *Pipeline) Run(ctx context.Context, region string) (Result, error) {
	if !domain.IsLegal(region) {
		return Result{}, fmt.Errorf("%w: %q", domain.ErrInvalidRegion, region)
	}

	start := time.Now()
	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID, "region", region)
	logger.Info("report run started")

	resp, err := p.fetcher.Fetch(ctx, region)
	if err != nil {
		return Result{}, err
	}

	doc, err := domain.BuildReport(resp)
	if err != nil {
		return Result{}, err
	}
	if doc.Region != region {
		logger.Warn("forecast location differs from requested region", "location", doc.Region)
	}

	art, err := p.renderer.Render(ctx, doc)
	if err != nil {
		return Result{}, err
	}
	p.metrics.ReportSections.Add(float64(len(doc.Sections)))

	if p.publisher != nil {
		if err := p.publisher.Publish(ctx, runID, doc); err != nil {
			return Result{}, err
		}
	}

	p.metrics.LastSuccessSeconds.SetToCurrentTime()
	logger.Info("report run complete",
		"sections", len(doc.Sections),
		"pdf", art.PDFPath,
		"duration", time.Since(start),
	)

	return Result{
		RunID:    runID,
		Region:   doc.Region,
		Sections: len(doc.Sections),
		Artifact: art,
	}, nil
}
