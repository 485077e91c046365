// Command forecast-report renders the one-week, 12-hourly CWB forecast for
// one county as a LaTeX/PDF report.
//
// Usage:
//
//	CWA_API_KEY=CWB-... forecast-report --county 臺北市
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/couchcryptid/forecast-report/internal/adapter/cwa"
	"github.com/couchcryptid/forecast-report/internal/adapter/kafka"
	"github.com/couchcryptid/forecast-report/internal/adapter/latex"
	"github.com/couchcryptid/forecast-report/internal/config"
	"github.com/couchcryptid/forecast-report/internal/domain"
	"github.com/couchcryptid/forecast-report/internal/observability"
	"github.com/couchcryptid/forecast-report/internal/pipeline"
	"github.com/spf13/cobra"
)

var county string

var rootCmd = &cobra.Command{
	Use:   "forecast-report",
	Short: "Render a county's one-week weather forecast as a PDF report",
	Long: `forecast-report fetches the one-week, 12-hourly forecast for a county from
the Central Weather Bureau open-data API and typesets it as output.tex/output.pdf,
one table per forecast element.

Legal counties: ` + strings.Join(domain.Regions(), " "),
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runReport,
}

func init() {
	rootCmd.Flags().StringVarP(&county, "county", "c", "", "the county or city to generate the weather report for")
	_ = rootCmd.MarkFlagRequired("county")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, domain.ErrInvalidRegion) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}

func runReport(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if !domain.IsLegal(county) {
		fmt.Fprintf(cmd.ErrOrStderr(), "輸入的縣市名稱不合法: %s\n", county)
		if hint, ok := domain.SuggestRegion(county); ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "是否為: %s\n", hint)
		}
		return fmt.Errorf("%w: %q", domain.ErrInvalidRegion, county)
	}
	fmt.Fprintf(out, "產生的縣市為: %s\n", county)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	fetcher := cwa.NewClient(cfg.BaseURL, cfg.APIKey, cfg.Dataset, cfg.FetchTimeout, metrics, logger)
	renderer := latex.NewRenderer(cfg.LatexEngine, cfg.OutputDir, cfg.OutputName, cfg.RenderTimeout, metrics, logger)

	var publisher pipeline.Publisher
	if cfg.PublishEnabled() {
		writer := kafka.NewWriter(cfg, metrics, logger)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		publisher = writer
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaTopic)
	}

	p := pipeline.New(fetcher, renderer, publisher, logger, metrics)
	res, runErr := p.Run(cmd.Context(), county)

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Error("write metrics textfile", "path", cfg.MetricsTextfile, "error", err)
		}
	}
	if runErr != nil {
		logger.Error("report run failed", "error", runErr)
		return runErr
	}

	fmt.Fprintf(out, "%s\n%s\n", res.Artifact.SourcePath, res.Artifact.PDFPath)
	return nil
}
