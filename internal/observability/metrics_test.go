package observability

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics_IndependentRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.ReportSections.Add(3)

	assert.Equal(t, 3.0, testutil.ToFloat64(a.ReportSections))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.ReportSections))
}

func TestWriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.FetchRequests.WithLabelValues("success").Inc()
	m.ReportSections.Add(9)
	m.LastSuccessSeconds.Set(1704067200)

	path := filepath.Join(t.TempDir(), "forecast.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `forecast_report_fetch_requests_total{outcome="success"} 1`)
	assert.Contains(t, out, "forecast_report_report_sections_total 9")
	assert.Contains(t, out, "forecast_report_last_success_timestamp_seconds 1.7040672e+09")
}
