// Package classifier adapts a remote zero-shot classification model behind
// the pipeline's TextClassifier contract.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"go-doc-classifier/internal/logger"
	"go-doc-classifier/internal/metrics"
	"go-doc-classifier/pkg/models"
)

// MaxTextChars caps the text length submitted for inference. Longer
// documents classify on their prefix.
const MaxTextChars = 10_000

// zeroShotRequest mirrors the HuggingFace zero-shot inference JSON contract.
type zeroShotRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters zeroShotParameters `json:"parameters"`
}

type zeroShotParameters struct {
	CandidateLabels []string `json:"candidate_labels"`
	MultiLabel      bool     `json:"multi_label"`
}

type zeroShotResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

// HTTPZeroShot classifies text against a candidate label set by calling a
// remote zero-shot inference endpoint in single-label mode.
type HTTPZeroShot struct {
	client  *http.Client
	baseURL string
	model   string
}

// NewHTTPZeroShot creates a classifier adapter for the given endpoint.
func NewHTTPZeroShot(baseURL, model string) *HTTPZeroShot {
	return &HTTPZeroShot{
		client:  &http.Client{Timeout: 60 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
	}
}

// Load issues a warmup inference so readiness reflects a reachable model.
// It is called once at startup before the pipeline accepts requests.
func (c *HTTPZeroShot) Load(ctx context.Context) error {
	timer := prometheus.NewTimer(metrics.ModelLoadDuration.WithLabelValues(c.model))
	defer timer.ObserveDuration()

	logger.WithFields(logrus.Fields{"model": c.model, "url": c.baseURL}).Info("Warming up classifier model")
	if _, err := c.infer(ctx, "warmup", []string{"document"}); err != nil {
		return fmt.Errorf("classifier warmup: %w", err)
	}
	logger.WithField("model", c.model).Info("Classifier model ready")
	return nil
}

// Classify returns the winning label, its confidence and the full score
// distribution over labels. Empty or whitespace-only text yields the
// degenerate result without touching the model.
func (c *HTTPZeroShot) Classify(ctx context.Context, text string, labels []string) (models.ClassificationResult, error) {
	if strings.TrimSpace(text) == "" {
		return models.UnknownClassification(), nil
	}
	if len(text) > MaxTextChars {
		text = text[:MaxTextChars]
	}

	timer := prometheus.NewTimer(metrics.ClassifierInferenceDuration)
	defer timer.ObserveDuration()

	resp, err := c.infer(ctx, text, labels)
	if err != nil {
		return models.ClassificationResult{}, err
	}
	if len(resp.Labels) == 0 || len(resp.Labels) != len(resp.Scores) {
		return models.ClassificationResult{}, fmt.Errorf("classifier returned %d labels and %d scores", len(resp.Labels), len(resp.Scores))
	}

	scores := make(map[string]float64, len(resp.Labels))
	for i, label := range resp.Labels {
		scores[label] = resp.Scores[i]
	}
	// The endpoint orders candidates by descending score; the first entry is
	// the winner.
	return models.ClassificationResult{
		Label:      resp.Labels[0],
		Confidence: resp.Scores[0],
		Scores:     scores,
	}, nil
}

func (c *HTTPZeroShot) infer(ctx context.Context, text string, labels []string) (*zeroShotResponse, error) {
	body, err := json.Marshal(zeroShotRequest{
		Inputs: text,
		Parameters: zeroShotParameters{
			CandidateLabels: labels,
			MultiLabel:      false,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode classify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/classify", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build classify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classifier request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("classifier endpoint returned %d: %s", resp.StatusCode, payload)
	}

	var out zeroShotResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode classify response: %w", err)
	}
	return &out, nil
}
