package pipeline

import (
	"context"
	"image"

	"go-doc-classifier/internal/decoder"
	"go-doc-classifier/pkg/models"
)

// TextClassifier labels text against an arbitrary candidate label set.
type TextClassifier interface {
	Classify(ctx context.Context, text string, labels []string) (models.ClassificationResult, error)
}

// TextExtractor turns page images into text.
type TextExtractor interface {
	ExtractText(ctx context.Context, img image.Image) (string, error)
	ExtractTextFromImages(ctx context.Context, images []image.Image) (string, error)
}

// RegionDetector finds axis-aligned text regions in an image. It carries no
// text content, only geometry.
type RegionDetector interface {
	DetectRegions(ctx context.Context, img image.Image) ([]models.BoundingBox, error)
}

// ContentDecoder turns raw payload bytes into text or page images.
type ContentDecoder interface {
	Text(raw []byte) string
	Image(raw []byte) (image.Image, int, int, error)
	Pages(raw []byte) ([]decoder.Page, error)
}
