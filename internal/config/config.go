package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, read once at startup from the
// environment and immutable thereafter.
type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	MaxRequestBodySize int64

	// Model identity and placement. The classifier runs behind a remote
	// inference endpoint; OCR runs locally through Tesseract.
	ClassifierModel string
	ClassifierURL   string
	OCRModel        string
	OCRLanguages    []string
	DetectorURL     string
	Device          string
	Precision       string

	// Candidate document-type labels for zero-shot classification.
	CandidateLabels []string

	// PDF handling.
	OCRMaxPDFPages int
	PDFRenderDPI   int
}

func (c *Config) ServerAddress() string {
	// Trim any whitespace from host and port
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

func LoadFromEnv() (*Config, error) {
	// Set defaults
	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8080"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 120*time.Second),
		MaxRequestBodySize: parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 50*1024*1024), // 50MB
		ClassifierModel:    getEnvOrDefault("CLASSIFIER_MODEL", "MoritzLaurer/DeBERTa-v3-large-mnli-fever-anli-ling-wanli"),
		ClassifierURL:      getEnvOrDefault("CLASSIFIER_URL", "http://localhost:8081"),
		OCRModel:           getEnvOrDefault("OCR_MODEL", "tesseract"),
		OCRLanguages:       parseList(getEnvOrDefault("OCR_LANGUAGES", "eng")),
		DetectorURL:        os.Getenv("DETECTOR_URL"),
		Device:             getEnvOrDefault("DEVICE", "cpu"),
		Precision:          getEnvOrDefault("PRECISION", "float32"),
		CandidateLabels:    parseList(getEnvOrDefault("CANDIDATE_LABELS", "invoice,contract,report,letter,receipt,form,memo,resume,specification,manual")),
		OCRMaxPDFPages:     int(parseIntOrDefault("OCR_MAX_PDF_PAGES", 10)),
		PDFRenderDPI:       int(parseIntOrDefault("PDF_RENDER_DPI", 200)),
	}

	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxRequestBodySize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", cfg.MaxRequestBodySize)
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT must be > 0 (got %s)", cfg.RequestTimeout)
	}
	if len(cfg.CandidateLabels) == 0 {
		return nil, fmt.Errorf("CANDIDATE_LABELS must not be empty")
	}
	if dup := firstDuplicate(cfg.CandidateLabels); dup != "" {
		return nil, fmt.Errorf("CANDIDATE_LABELS contains duplicate label %q", dup)
	}
	if cfg.OCRMaxPDFPages <= 0 {
		return nil, fmt.Errorf("OCR_MAX_PDF_PAGES must be > 0 (got %d)", cfg.OCRMaxPDFPages)
	}
	if cfg.PDFRenderDPI <= 0 {
		return nil, fmt.Errorf("PDF_RENDER_DPI must be > 0 (got %d)", cfg.PDFRenderDPI)
	}
	if strings.TrimSpace(cfg.ClassifierURL) == "" {
		return nil, fmt.Errorf("CLASSIFIER_URL must not be empty")
	}
	return cfg, nil
}

// parseList splits a comma-separated string, trimming whitespace and
// dropping empty entries.
func parseList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func firstDuplicate(labels []string) string {
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			return l
		}
		seen[l] = struct{}{}
	}
	return ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
