package container

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"

	"github.com/sirupsen/logrus"

	"go-doc-classifier/internal/classifier"
	"go-doc-classifier/internal/config"
	"go-doc-classifier/internal/decoder"
	"go-doc-classifier/internal/logger"
	"go-doc-classifier/internal/metrics"
	"go-doc-classifier/internal/ocr"
	"go-doc-classifier/internal/pipeline"
	"go-doc-classifier/internal/transport"
)

// ModelLoader is the one-time startup contract every model adapter honors.
// Load is called exactly once, before the pipeline accepts requests.
type ModelLoader interface {
	Load(ctx context.Context) error
}

// Container is the application-lifetime context object: it owns the adapter
// graph, the pipeline, and the readiness state gating all requests.
type Container struct {
	config   *config.Config
	pipeline *pipeline.DocumentPipeline
	loaders  []ModelLoader
	handler  http.Handler
	ready    atomic.Bool
}

// NewContainer builds the dependency graph from configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}

	zeroShot := classifier.NewHTTPZeroShot(cfg.ClassifierURL, cfg.ClassifierModel)
	engine := ocr.NewTesseractEngine(cfg.OCRLanguages)
	dec := decoder.New(cfg.OCRMaxPDFPages, cfg.PDFRenderDPI)

	// The region detector is optional: a configured remote endpoint wins,
	// otherwise the local Tesseract engine doubles as the detector.
	var detector pipeline.RegionDetector = engine
	if cfg.DetectorURL != "" {
		detector = ocr.NewHTTPRegionDetector(cfg.DetectorURL)
	}

	c := &Container{
		config:  cfg,
		loaders: []ModelLoader{zeroShot, engine},
	}
	c.pipeline = pipeline.New(zeroShot, engine, detector, dec, cfg.CandidateLabels)
	c.handler = transport.NewHandler(c.pipeline, c, cfg)
	return c, nil
}

// LoadModels runs every adapter's one-time load and flips readiness. Until
// it completes, the transport layer rejects pipeline requests with 503.
func (c *Container) LoadModels(ctx context.Context) error {
	logger.WithFields(logrus.Fields{
		"classifier_model": c.config.ClassifierModel,
		"ocr_model":        c.config.OCRModel,
		"device":           c.config.Device,
		"precision":        c.config.Precision,
	}).Info("Loading models")

	for _, loader := range c.loaders {
		if err := loader.Load(ctx); err != nil {
			return fmt.Errorf("load models: %w", err)
		}
	}

	c.ready.Store(true)
	metrics.ModelsLoaded.Set(1)
	logger.Info("All models loaded")
	return nil
}

// Ready reports whether model loading has completed.
func (c *Container) Ready() bool {
	return c.ready.Load()
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}
