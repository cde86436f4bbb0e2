// Package pipeline orchestrates content decoding, OCR, text-region detection
// and zero-shot classification into the two document-understanding
// operations the service exposes.
package pipeline

import (
	"context"
	"encoding/base64"
	"image"
	"strings"

	"github.com/sirupsen/logrus"

	apperrors "go-doc-classifier/internal/errors"
	"go-doc-classifier/internal/logger"
	"go-doc-classifier/pkg/models"
)

const mimePDF = "application/pdf"

// DocumentPipeline routes documents by MIME type through the extraction
// adapters and shapes a uniform result. Pages of multi-page documents are
// processed strictly sequentially, in document order.
type DocumentPipeline struct {
	classifier TextClassifier
	extractor  TextExtractor
	detector   RegionDetector // optional; nil substitutes empty block lists
	decoder    ContentDecoder
	labels     []string
}

// New creates a DocumentPipeline. detector may be nil, in which case every
// page gets an empty block list.
func New(classifier TextClassifier, extractor TextExtractor, detector RegionDetector, dec ContentDecoder, labels []string) *DocumentPipeline {
	return &DocumentPipeline{
		classifier: classifier,
		extractor:  extractor,
		detector:   detector,
		decoder:    dec,
		labels:     labels,
	}
}

// Classify decodes the document, extracts its text and classifies it. A
// document yielding no text returns the degenerate unknown result and the
// classifier model is never invoked.
func (p *DocumentPipeline) Classify(ctx context.Context, contentB64, mimeType string) (models.ClassificationResult, error) {
	raw, err := base64.StdEncoding.DecodeString(contentB64)
	if err != nil {
		return models.ClassificationResult{}, apperrors.NewDecodeError("invalid base64 content", err)
	}

	text, err := p.extractText(ctx, raw, mimeType)
	if err != nil {
		return models.ClassificationResult{}, err
	}
	if strings.TrimSpace(text) == "" {
		logger.FromContext(ctx).WithField("mime_type", mimeType).Warn("No text extracted from document")
		return models.UnknownClassification(), nil
	}

	result, err := p.classifier.Classify(ctx, text, p.labels)
	if err != nil {
		return models.ClassificationResult{}, apperrors.NewInferenceError("classification inference failed", err)
	}
	return result, nil
}

// ClassifyWithOCR classifies the document and, for visual input (PDF or
// image), returns the per-page OCR structure. The OCR result is nil when no
// visual pipeline ran (text-typed or unknown MIME input); it is non-nil with
// empty fullText when OCR ran but recognized nothing.
func (p *DocumentPipeline) ClassifyWithOCR(ctx context.Context, contentB64, mimeType string) (models.ClassificationResult, *models.OcrResult, error) {
	raw, err := base64.StdEncoding.DecodeString(contentB64)
	if err != nil {
		return models.ClassificationResult{}, nil, apperrors.NewDecodeError("invalid base64 content", err)
	}

	mime := strings.ToLower(mimeType)
	switch {
	case mime == mimePDF:
		return p.classifyPDF(ctx, raw)
	case strings.HasPrefix(mime, "image/"):
		return p.classifyImage(ctx, raw)
	default:
		// Text and unknown types never run the visual pipeline.
		text := p.decoder.Text(raw)
		if strings.TrimSpace(text) == "" {
			return models.UnknownClassification(), nil, nil
		}
		result, err := p.classifier.Classify(ctx, text, p.labels)
		if err != nil {
			return models.ClassificationResult{}, nil, apperrors.NewInferenceError("classification inference failed", err)
		}
		return result, nil, nil
	}
}

func (p *DocumentPipeline) classifyPDF(ctx context.Context, raw []byte) (models.ClassificationResult, *models.OcrResult, error) {
	pages, err := p.decoder.Pages(raw)
	if err != nil {
		return models.ClassificationResult{}, nil, apperrors.NewDecodeError("failed to rasterize PDF", err)
	}
	if len(pages) == 0 {
		return models.UnknownClassification(), nil, nil
	}

	ocrPages := make([]models.OcrPage, 0, len(pages))
	texts := make([]string, 0, len(pages))
	for i, page := range pages {
		pageText, err := p.extractor.ExtractText(ctx, page.Image)
		if err != nil {
			return models.ClassificationResult{}, nil, apperrors.NewInferenceError("OCR extraction failed", err)
		}
		texts = append(texts, pageText)
		ocrPages = append(ocrPages, models.OcrPage{
			PageIndex: i,
			Width:     page.Width,
			Height:    page.Height,
			Text:      pageText,
			Blocks:    p.detectBlocks(ctx, page.Image, i),
		})
	}

	fullText := models.JoinPageTexts(texts)
	ocr := &models.OcrResult{Pages: ocrPages, FullText: fullText}
	if strings.TrimSpace(fullText) == "" {
		// Keep the page structure so callers can inspect geometry even when
		// nothing was recognized.
		return models.UnknownClassification(), ocr, nil
	}

	result, err := p.classifier.Classify(ctx, fullText, p.labels)
	if err != nil {
		return models.ClassificationResult{}, nil, apperrors.NewInferenceError("classification inference failed", err)
	}
	return result, ocr, nil
}

func (p *DocumentPipeline) classifyImage(ctx context.Context, raw []byte) (models.ClassificationResult, *models.OcrResult, error) {
	img, width, height, err := p.decoder.Image(raw)
	if err != nil {
		return models.ClassificationResult{}, nil, apperrors.NewDecodeError("failed to decode image", err)
	}

	pageText, err := p.extractor.ExtractText(ctx, img)
	if err != nil {
		return models.ClassificationResult{}, nil, apperrors.NewInferenceError("OCR extraction failed", err)
	}

	ocr := &models.OcrResult{
		Pages: []models.OcrPage{{
			PageIndex: 0,
			Width:     width,
			Height:    height,
			Text:      pageText,
			Blocks:    p.detectBlocks(ctx, img, 0),
		}},
		FullText: pageText,
	}

	if strings.TrimSpace(pageText) == "" {
		return models.UnknownClassification(), ocr, nil
	}

	result, err := p.classifier.Classify(ctx, pageText, p.labels)
	if err != nil {
		return models.ClassificationResult{}, nil, apperrors.NewInferenceError("classification inference failed", err)
	}
	return result, ocr, nil
}

// detectBlocks runs region detection for one page. Detection failures are
// absorbed per page: the page gets an empty block list and the request
// continues.
func (p *DocumentPipeline) detectBlocks(ctx context.Context, img image.Image, pageIndex int) []models.TextBlock {
	blocks := []models.TextBlock{}
	if p.detector == nil {
		return blocks
	}

	boxes, err := p.detector.DetectRegions(ctx, img)
	if err != nil {
		logger.FromContext(ctx).WithError(err).WithFields(logrus.Fields{
			"page_index": pageIndex,
		}).Error("Region detection failed, returning empty blocks")
		return blocks
	}
	for _, box := range boxes {
		blocks = append(blocks, models.TextBlock{Text: "", BBox: box})
	}
	return blocks
}

// extractText resolves a document to plain text for classify-only requests.
// Text-typed and unknown MIME inputs decode directly; PDFs and images go
// through OCR.
func (p *DocumentPipeline) extractText(ctx context.Context, raw []byte, mimeType string) (string, error) {
	mime := strings.ToLower(mimeType)

	switch {
	case strings.HasPrefix(mime, "text/"):
		return p.decoder.Text(raw), nil

	case mime == mimePDF:
		pages, err := p.decoder.Pages(raw)
		if err != nil {
			return "", apperrors.NewDecodeError("failed to rasterize PDF", err)
		}
		if len(pages) == 0 {
			return "", nil
		}
		images := make([]image.Image, len(pages))
		for i, page := range pages {
			images[i] = page.Image
		}
		text, err := p.extractor.ExtractTextFromImages(ctx, images)
		if err != nil {
			return "", apperrors.NewInferenceError("OCR extraction failed", err)
		}
		return text, nil

	case strings.HasPrefix(mime, "image/"):
		img, _, _, err := p.decoder.Image(raw)
		if err != nil {
			return "", apperrors.NewDecodeError("failed to decode image", err)
		}
		text, err := p.extractor.ExtractText(ctx, img)
		if err != nil {
			return "", apperrors.NewInferenceError("OCR extraction failed", err)
		}
		return text, nil

	default:
		logger.FromContext(ctx).WithField("mime_type", mimeType).Info("Unknown MIME type, attempting text decode")
		return p.decoder.Text(raw), nil
	}
}
