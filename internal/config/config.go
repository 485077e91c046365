package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all report settings, populated from environment variables.
type Config struct {
	// Forecast service.
	APIKey       string
	BaseURL      string
	Dataset      string
	FetchTimeout time.Duration

	// Output artifacts.
	OutputDir     string
	OutputName    string
	LatexEngine   string
	RenderTimeout time.Duration

	LogLevel        string
	LogFormat       string
	MetricsTextfile string

	// Optional Kafka delivery of rendered sections.
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	fetchTimeout, err := parsePositiveDuration("FETCH_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	renderTimeout, err := parsePositiveDuration("RENDER_TIMEOUT", "2m")
	if err != nil {
		return nil, err
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		APIKey:       os.Getenv("CWA_API_KEY"),
		BaseURL:      strings.TrimRight(sharedcfg.EnvOrDefault("CWA_BASE_URL", "https://opendata.cwb.gov.tw/api/v1/rest/datastore"), "/"),
		Dataset:      sharedcfg.EnvOrDefault("CWA_DATASET", "F-D0047-091"),
		FetchTimeout: fetchTimeout,

		OutputDir:     sharedcfg.EnvOrDefault("OUTPUT_DIR", "."),
		OutputName:    sharedcfg.EnvOrDefault("OUTPUT_NAME", "output"),
		LatexEngine:   sharedcfg.EnvOrDefault("LATEX_ENGINE", "xelatex"),
		RenderTimeout: renderTimeout,

		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		MetricsTextfile: os.Getenv("METRICS_TEXTFILE"),

		KafkaBrokers: brokers,
		KafkaTopic:   sharedcfg.EnvOrDefault("KAFKA_TOPIC", "forecast-reports"),
	}

	if cfg.APIKey == "" {
		return nil, errors.New("CWA_API_KEY is required")
	}
	if cfg.Dataset == "" {
		return nil, errors.New("CWA_DATASET is required")
	}
	if strings.ContainsAny(cfg.OutputName, `/\`) || cfg.OutputName == "" {
		return nil, errors.New("OUTPUT_NAME must be a bare file name")
	}
	if cfg.LatexEngine == "" {
		return nil, errors.New("LATEX_ENGINE is required")
	}
	if cfg.PublishEnabled() && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_BROKERS is set but KAFKA_TOPIC is empty")
	}

	return cfg, nil
}

// PublishEnabled reports whether rendered sections should be sent to Kafka.
func (c *Config) PublishEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}
