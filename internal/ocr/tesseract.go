// Package ocr provides text extraction and text-region detection over
// document page images.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"go-doc-classifier/internal/logger"
	"go-doc-classifier/internal/metrics"
	"go-doc-classifier/pkg/models"
)

// TesseractEngine extracts text and text-line regions from images using a
// local Tesseract installation. Recognition is deterministic: the same image
// always yields the same text.
type TesseractEngine struct {
	languages     []string
	clientFactory func() *gosseract.Client

	// recognize is the single-image extraction seam, overridable in tests.
	recognize func(ctx context.Context, img image.Image) (string, error)
}

// NewTesseractEngine creates a Tesseract-backed engine for the given
// language hints (e.g. "eng").
func NewTesseractEngine(languages []string) *TesseractEngine {
	e := &TesseractEngine{
		languages:     languages,
		clientFactory: gosseract.NewClient,
	}
	e.recognize = e.recognizeTesseract
	return e
}

// Load runs a tiny recognition once so the trained data is resident before
// the pipeline accepts requests.
func (e *TesseractEngine) Load(ctx context.Context) error {
	timer := prometheus.NewTimer(metrics.ModelLoadDuration.WithLabelValues("tesseract"))
	defer timer.ObserveDuration()

	logger.WithField("languages", strings.Join(e.languages, "+")).Info("Warming up OCR engine")
	warmup := image.NewRGBA(image.Rect(0, 0, 8, 8))
	if _, err := e.recognize(ctx, warmup); err != nil {
		return fmt.Errorf("ocr warmup: %w", err)
	}
	logger.Info("OCR engine ready")
	return nil
}

// ExtractText runs OCR on a single image and returns the recognized text
// stripped of leading and trailing whitespace.
func (e *TesseractEngine) ExtractText(ctx context.Context, img image.Image) (string, error) {
	timer := prometheus.NewTimer(metrics.OCRInferenceDuration)
	defer timer.ObserveDuration()

	text, err := e.recognize(ctx, img)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// ExtractTextFromImages extracts each image sequentially, in order, and
// joins the non-empty results with a blank-line separator.
func (e *TesseractEngine) ExtractTextFromImages(ctx context.Context, images []image.Image) (string, error) {
	texts := make([]string, 0, len(images))
	for i, img := range images {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}
		logger.WithFields(logrus.Fields{"page": i + 1, "total": len(images)}).Debug("OCR processing page")
		text, err := e.ExtractText(ctx, img)
		if err != nil {
			return "", fmt.Errorf("extract page %d: %w", i, err)
		}
		texts = append(texts, text)
	}
	return models.JoinPageTexts(texts), nil
}

// DetectRegions returns the axis-aligned pixel-space boxes of detected text
// lines. An image with no detectable text yields an empty slice.
func (e *TesseractEngine) DetectRegions(ctx context.Context, img image.Image) ([]models.BoundingBox, error) {
	timer := prometheus.NewTimer(metrics.BBoxDetectionDuration)
	defer timer.ObserveDuration()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	client := e.clientFactory()
	defer client.Close()

	if err := e.configure(client, img); err != nil {
		return nil, err
	}
	raw, err := client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("detect regions: %w", err)
	}

	boxes := make([]models.BoundingBox, 0, len(raw))
	for _, b := range raw {
		w := float64(b.Box.Dx())
		h := float64(b.Box.Dy())
		if w <= 0 || h <= 0 {
			continue
		}
		boxes = append(boxes, models.BoundingBox{
			X:      float64(b.Box.Min.X),
			Y:      float64(b.Box.Min.Y),
			Width:  w,
			Height: h,
		})
	}
	return boxes, nil
}

func (e *TesseractEngine) recognizeTesseract(ctx context.Context, img image.Image) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	client := e.clientFactory()
	defer client.Close()

	if err := e.configure(client, img); err != nil {
		return "", err
	}
	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract recognize: %w", err)
	}
	return text, nil
}

func (e *TesseractEngine) configure(client *gosseract.Client, img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode image for ocr: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return fmt.Errorf("set ocr image: %w", err)
	}
	if len(e.languages) > 0 {
		if err := client.SetLanguage(e.languages...); err != nil {
			return fmt.Errorf("set ocr languages: %w", err)
		}
	}
	return nil
}
