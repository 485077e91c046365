package cwa

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/forecast-report/internal/domain"
	"github.com/couchcryptid/forecast-report/internal/observability"
)

// maxErrorBody caps how much of a failed response is quoted in the error.
const maxErrorBody = 512

// Client fetches county forecasts from the CWB open-data REST API.
type Client struct {
	apiKey     string
	dataset    string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a forecast client for the given dataset. The timeout
// bounds the whole request, body included.
func NewClient(baseURL, apiKey, dataset string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		dataset: dataset,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger.With("component", "cwa"),
	}
}

// Fetch requests the forecast for one county. Transport failures, non-2xx
// statuses, bodies that do not decode, and responses without success "true"
// all wrap domain.ErrFetch. There is no retry.
func (c *Client) Fetch(ctx context.Context, region string) (domain.ForecastResponse, error) {
	start := time.Now()
	resp, err := c.fetch(ctx, region)
	c.metrics.FetchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		c.metrics.FetchRequests.WithLabelValues("error").Inc()
		c.logger.Warn("forecast request failed", "region", region, "error", err)
		return domain.ForecastResponse{}, fmt.Errorf("%w: %w", domain.ErrFetch, err)
	}

	c.metrics.FetchRequests.WithLabelValues("success").Inc()
	c.logger.Debug("forecast fetched", "region", region, "duration", time.Since(start))
	return resp, nil
}

func (c *Client) fetch(ctx context.Context, region string) (domain.ForecastResponse, error) {
	params := url.Values{
		"Authorization": {c.apiKey},
		"locationName":  {region},
	}
	u := fmt.Sprintf("%s/%s?%s", c.baseURL, url.PathEscape(c.dataset), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.ForecastResponse{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error quotes the full URL, which carries the API key.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return domain.ForecastResponse{}, fmt.Errorf("forecast request %s: %w", c.dataset, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return domain.ForecastResponse{}, fmt.Errorf("cwb API error: status %d: %s", resp.StatusCode, body)
	}

	var forecast domain.ForecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return domain.ForecastResponse{}, fmt.Errorf("decode response: %w", err)
	}
	if forecast.Success != "true" {
		return domain.ForecastResponse{}, fmt.Errorf("cwb API reported success=%q", forecast.Success)
	}

	return forecast, nil
}
