package transport

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"go-doc-classifier/internal/config"
	"go-doc-classifier/internal/correlation"
	apperrors "go-doc-classifier/internal/errors"
	"go-doc-classifier/internal/logger"
	"go-doc-classifier/internal/metrics"
	"go-doc-classifier/pkg/models"
)

// DocumentPipeline is the orchestration surface the handlers depend on.
type DocumentPipeline interface {
	Classify(ctx context.Context, contentB64, mimeType string) (models.ClassificationResult, error)
	ClassifyWithOCR(ctx context.Context, contentB64, mimeType string) (models.ClassificationResult, *models.OcrResult, error)
}

// ReadinessReporter reports whether model loading has completed. Requests
// arriving earlier are rejected with 503 rather than queued.
type ReadinessReporter interface {
	Ready() bool
}

// NewHandler wires the HTTP routes for the document classification service.
func NewHandler(pipeline DocumentPipeline, ready ReadinessReporter, cfg *config.Config) http.Handler {
	r := gin.New()

	// Add middleware
	r.Use(
		gin.Recovery(),
		correlation.Middleware(),
		requestSizeLimiter(cfg.MaxRequestBodySize),
	)

	// Configure routes
	r.GET("/health", healthCheck(ready, cfg))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.POST("/classify", classify(pipeline, ready, cfg))
	r.POST("/classify-with-ocr", classifyWithOCR(pipeline, ready, cfg))

	return r
}

func classify(p DocumentPipeline, ready ReadinessReporter, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		const endpoint = "classify"
		start := time.Now()
		defer func() {
			metrics.PipelineDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		}()

		req, ok := bindClassifyRequest(c, endpoint, ready)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		result, err := p.Classify(ctx, req.Content, req.MimeType)
		if err != nil {
			respondPipelineError(c, endpoint, "Classification inference failed", err)
			return
		}

		logRequestDone(ctx, c, endpoint, req.MimeType, result.Label, start)
		metrics.PipelineRequestsTotal.WithLabelValues(endpoint, "success").Inc()
		c.JSON(http.StatusOK, models.ClassifyResponse{
			Classification: result.Label,
			Confidence:     result.Confidence,
			Scores:         result.Scores,
		})
	}
}

func classifyWithOCR(p DocumentPipeline, ready ReadinessReporter, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		const endpoint = "classify-with-ocr"
		start := time.Now()
		defer func() {
			metrics.PipelineDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		}()

		req, ok := bindClassifyRequest(c, endpoint, ready)
		if !ok {
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.RequestTimeout)
		defer cancel()

		result, ocr, err := p.ClassifyWithOCR(ctx, req.Content, req.MimeType)
		if err != nil {
			respondPipelineError(c, endpoint, "Classification inference failed", err)
			return
		}

		logRequestDone(ctx, c, endpoint, req.MimeType, result.Label, start)
		metrics.PipelineRequestsTotal.WithLabelValues(endpoint, "success").Inc()
		c.JSON(http.StatusOK, models.ClassifyWithOcrResponse{
			Classification: result.Label,
			Confidence:     result.Confidence,
			Scores:         result.Scores,
			Ocr:            ocr,
		})
	}
}

// bindClassifyRequest enforces the readiness gate and body contract shared by
// both classification endpoints.
func bindClassifyRequest(c *gin.Context, endpoint string, ready ReadinessReporter) (models.ClassifyRequest, bool) {
	var req models.ClassifyRequest

	if !ready.Ready() {
		metrics.PipelineRequestsTotal.WithLabelValues(endpoint, "unavailable").Inc()
		respondError(c, http.StatusServiceUnavailable, "Models are still loading", nil)
		return req, false
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.PipelineRequestsTotal.WithLabelValues(endpoint, "invalid").Inc()
		respondError(c, http.StatusUnprocessableEntity, "Invalid request body: content and mimeType are required", err)
		return req, false
	}
	return req, true
}

func respondPipelineError(c *gin.Context, endpoint, message string, err error) {
	metrics.PipelineRequestsTotal.WithLabelValues(endpoint, "error").Inc()
	respondError(c, apperrors.GetStatusCode(err), message, err)
}

func healthCheck(ready ReadinessReporter, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := "healthy"
		if !ready.Ready() {
			status = "loading"
		}
		c.JSON(http.StatusOK, models.HealthResponse{
			Status:          status,
			ModelsLoaded:    ready.Ready(),
			ClassifierModel: cfg.ClassifierModel,
			OcrModel:        cfg.OCRModel,
		})
	}
}

func logRequestDone(ctx context.Context, c *gin.Context, endpoint, mimeType, label string, start time.Time) {
	logger.FromContext(ctx).WithFields(logrus.Fields{
		"endpoint":           endpoint,
		"mime_type":          mimeType,
		"classification":     label,
		"processing_time_ms": time.Since(start).Milliseconds(),
		"ip":                 c.ClientIP(),
	}).Info("Document request completed")
}

// Middleware and helper functions
func requestSizeLimiter(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// respondError logs the full failure detail server-side and returns only a
// generic message to the caller.
func respondError(c *gin.Context, code int, message string, err error) {
	logger.FromContext(c.Request.Context()).WithError(err).WithFields(logrus.Fields{
		"status_code": code,
		"message":     message,
		"path":        c.Request.URL.Path,
		"method":      c.Request.Method,
		"ip":          c.ClientIP(),
	}).Error("Request failed")

	c.AbortWithStatusJSON(code, models.ErrorResponse{
		Error:   http.StatusText(code),
		Message: message,
	})
}
