package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/forecast-report/internal/config"
	"github.com/couchcryptid/forecast-report/internal/domain"
	"github.com/couchcryptid/forecast-report/internal/observability"
	kafkago "github.com/segmentio/kafka-go"
)

// SectionMessage is the JSON value published for each report section.
type SectionMessage struct {
	RunID       string     `json:"run_id"`
	Region      string     `json:"region"`
	Title       string     `json:"title"`
	GeneratedAt time.Time  `json:"generated_at"`
	Headers     []string   `json:"headers"`
	Rows        [][]string `json:"rows"`
}

// Writer publishes rendered report sections to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer  *kafkago.Writer
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewWriter creates a Kafka producer for the configured report topic.
func NewWriter(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, metrics: metrics, logger: logger.With("component", "kafka")}
}

// Publish sends every section of doc in a single WriteMessages call, keyed
// by region and section title so one county's elements share a partition.
// Errors wrap domain.ErrPublish.
func (w *Writer) Publish(ctx context.Context, runID string, doc domain.ReportDocument) error {
	if len(doc.Sections) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(doc.Sections))
	for i := range doc.Sections {
		msg, err := serializeToMessage(runID, doc, doc.Sections[i])
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrPublish, err)
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPublish, err)
	}
	w.metrics.PublishedMessages.Add(float64(len(msgs)))
	w.logger.Info("report sections published", "topic", w.writer.Topic, "count", len(msgs))
	return nil
}

// Close flushes any buffered messages and closes the underlying producer.
func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals one report section into a Kafka message.
func serializeToMessage(runID string, doc domain.ReportDocument, sec domain.Section) (kafkago.Message, error) {
	data, err := json.Marshal(SectionMessage{
		RunID:       runID,
		Region:      doc.Region,
		Title:       sec.Title,
		GeneratedAt: doc.GeneratedAt,
		Headers:     sec.Table.Headers,
		Rows:        sec.Table.Rows,
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize section %q: %w", sec.Title, err)
	}
	return kafkago.Message{
		Key:   []byte(doc.Region + "/" + sec.Title),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "run_id", Value: []byte(runID)},
			{Key: "region", Value: []byte(doc.Region)},
		},
	}, nil
}
