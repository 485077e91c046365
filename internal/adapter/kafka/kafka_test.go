package kafka

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/forecast-report/internal/config"
	"github.com/couchcryptid/forecast-report/internal/domain"
	"github.com/couchcryptid/forecast-report/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRunID = "3f1c9a52-0d7e-4a55-9a39-2b1f6f0e8c11"

func testDocument() domain.ReportDocument {
	return domain.ReportDocument{
		Title:       "未來1週逐12小時天氣預報 - 臺北市",
		Author:      domain.ReportAuthor,
		Region:      "臺北市",
		GeneratedAt: time.Date(2024, time.January, 1, 8, 30, 0, 0, time.UTC),
		Sections: []domain.Section{{
			Title: "溫度",
			Table: domain.Table{
				Headers: []string{"Start Time", "End Time", "C"},
				Rows:    [][]string{{"2024-01-01T00:00:00", "2024-01-01T12:00:00", "18"}},
			},
		}},
	}
}

func TestSerializeToMessage(t *testing.T) {
	doc := testDocument()

	msg, err := serializeToMessage(testRunID, doc, doc.Sections[0])
	require.NoError(t, err)

	assert.Equal(t, []byte("臺北市/溫度"), msg.Key)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "run_id", msg.Headers[0].Key)
	assert.Equal(t, []byte(testRunID), msg.Headers[0].Value)
	assert.Equal(t, "region", msg.Headers[1].Key)
	assert.Equal(t, []byte("臺北市"), msg.Headers[1].Value)

	var got SectionMessage
	require.NoError(t, json.Unmarshal(msg.Value, &got))
	assert.Equal(t, testRunID, got.RunID)
	assert.Equal(t, "臺北市", got.Region)
	assert.Equal(t, "溫度", got.Title)
	assert.True(t, doc.GeneratedAt.Equal(got.GeneratedAt))
	assert.Equal(t, []string{"Start Time", "End Time", "C"}, got.Headers)
	assert.Equal(t, [][]string{{"2024-01-01T00:00:00", "2024-01-01T12:00:00", "18"}}, got.Rows)
}

func TestWriter_Publish_NoSections(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: []string{"127.0.0.1:1"}, KafkaTopic: "forecast-reports"}
	w := NewWriter(cfg, observability.NewMetrics(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = w.Close() })

	doc := testDocument()
	doc.Sections = nil

	require.NoError(t, w.Publish(context.Background(), testRunID, doc))
}

func TestWriter_Publish_UnreachableBroker(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: []string{"127.0.0.1:1"}, KafkaTopic: "forecast-reports"}
	w := NewWriter(cfg, observability.NewMetrics(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err := w.Publish(ctx, testRunID, testDocument())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPublish)
}
