// Package metrics defines the Prometheus collectors for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ClassifierInferenceDuration tracks zero-shot classification latency.
	ClassifierInferenceDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "ml_classifier_inference_duration_seconds",
		Help: "Time spent on zero-shot classification inference",
	})

	// OCRInferenceDuration tracks OCR text extraction latency per image.
	OCRInferenceDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "ml_ocr_inference_duration_seconds",
		Help: "Time spent on OCR text extraction",
	})

	// BBoxDetectionDuration tracks text region detection latency per image.
	BBoxDetectionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "ml_bbox_detection_duration_seconds",
		Help: "Time spent on bounding box detection",
	})

	// ModelsLoaded is 1 once all models are loaded and ready, 0 while loading.
	ModelsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "ml_models_loaded",
		Help: "Whether all ML models are loaded and ready (1=ready, 0=loading)",
	})

	// ModelLoadDuration tracks one-time model load cost per model.
	ModelLoadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "ml_model_load_duration_seconds",
		Help: "Time to load a model",
	}, []string{"model_name"})

	// PipelineRequestsTotal counts pipeline requests by endpoint and outcome.
	PipelineRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ml_pipeline_requests_total",
		Help: "Total pipeline requests",
	}, []string{"endpoint", "status"})

	// PipelineDuration tracks end-to-end pipeline request latency.
	PipelineDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name: "ml_pipeline_duration_seconds",
		Help: "End-to-end pipeline request duration",
	}, []string{"endpoint"})
)
