package config

import (
	"strings"
	"testing"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}

	if cfg.OCRMaxPDFPages != 10 {
		t.Errorf("Expected default OCRMaxPDFPages 10, got %d", cfg.OCRMaxPDFPages)
	}
	if cfg.PDFRenderDPI != 200 {
		t.Errorf("Expected default PDFRenderDPI 200, got %d", cfg.PDFRenderDPI)
	}
	if len(cfg.CandidateLabels) != 10 {
		t.Errorf("Expected 10 default candidate labels, got %d", len(cfg.CandidateLabels))
	}
	if cfg.CandidateLabels[0] != "invoice" {
		t.Errorf("Expected first default label 'invoice', got %q", cfg.CandidateLabels[0])
	}
	if cfg.ServerAddress() != "0.0.0.0:8080" {
		t.Errorf("Expected default address 0.0.0.0:8080, got %s", cfg.ServerAddress())
	}
}

func TestCandidateLabelsParsing(t *testing.T) {
	t.Setenv("CANDIDATE_LABELS", " invoice , receipt,contract ,, ")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}

	expected := []string{"invoice", "receipt", "contract"}
	if len(cfg.CandidateLabels) != len(expected) {
		t.Fatalf("Expected %d labels, got %d: %v", len(expected), len(cfg.CandidateLabels), cfg.CandidateLabels)
	}
	for i, label := range expected {
		if cfg.CandidateLabels[i] != label {
			t.Errorf("Label %d: expected %q, got %q", i, label, cfg.CandidateLabels[i])
		}
	}
}

func TestDuplicateLabelsRejected(t *testing.T) {
	t.Setenv("CANDIDATE_LABELS", "invoice,receipt,invoice")

	if _, err := LoadFromEnv(); err == nil {
		t.Error("Expected error for duplicate candidate labels")
	} else if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("Expected duplicate-label error, got: %v", err)
	}
}

func TestInvalidPort(t *testing.T) {
	tests := []struct {
		name string
		port string
	}{
		{"Non-numeric", "not-a-port"},
		{"Zero", "0"},
		{"Out of range", "70000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", tt.port)
			if _, err := LoadFromEnv(); err == nil {
				t.Errorf("Expected error for PORT=%q", tt.port)
			}
		})
	}
}

func TestInvalidPageLimit(t *testing.T) {
	t.Setenv("OCR_MAX_PDF_PAGES", "-3")

	if _, err := LoadFromEnv(); err == nil {
		t.Error("Expected error for negative OCR_MAX_PDF_PAGES")
	}
}
