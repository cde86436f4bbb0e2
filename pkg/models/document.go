package models

import "strings"

// UnknownLabel is the label returned when no usable text could be extracted
// from a document. It is paired with zero confidence and an empty score map.
const UnknownLabel = "unknown"

// ClassificationResult holds the outcome of classifying a document against a
// candidate label set. Scores is either empty (degenerate input) or contains
// every candidate label exactly once, with values summing to 1.0 within
// floating-point tolerance; Scores[Label] equals Confidence.
type ClassificationResult struct {
	Label      string             `json:"label"`
	Confidence float64            `json:"confidence"`
	Scores     map[string]float64 `json:"scores"`
}

// UnknownClassification returns the canonical degenerate result used when a
// document yields no text. The classifier model is never consulted for it.
func UnknownClassification() ClassificationResult {
	return ClassificationResult{
		Label:      UnknownLabel,
		Confidence: 0.0,
		Scores:     map[string]float64{},
	}
}

// BoundingBox is an axis-aligned rectangle in the pixel space of the image
// that produced it. Width and Height are always positive for detected boxes.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BoxFromPolygon converts an arbitrary polygon (detection models commonly
// emit 4-point quadrilaterals) to its axis-aligned bounding rectangle.
// The second return value is false when the polygon has fewer than two
// points or zero area.
func BoxFromPolygon(points [][2]float64) (BoundingBox, bool) {
	if len(points) < 2 {
		return BoundingBox{}, false
	}
	minX, minY := points[0][0], points[0][1]
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		if p[0] < minX {
			minX = p[0]
		}
		if p[0] > maxX {
			maxX = p[0]
		}
		if p[1] < minY {
			minY = p[1]
		}
		if p[1] > maxY {
			maxY = p[1]
		}
	}
	box := BoundingBox{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
	if box.Width <= 0 || box.Height <= 0 {
		return BoundingBox{}, false
	}
	return box, true
}

// TextBlock is a detected text region. Text is empty for detection-only
// blocks; Confidence is nil when the detector does not report one.
type TextBlock struct {
	Text       string      `json:"text"`
	BBox       BoundingBox `json:"bbox"`
	Confidence *float64    `json:"confidence,omitempty"`
}

// OcrPage holds OCR output for a single page. PageIndex is zero-based and
// matches the page's position in the source document.
type OcrPage struct {
	PageIndex int         `json:"pageIndex"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Text      string      `json:"text"`
	Blocks    []TextBlock `json:"blocks"`
}

// OcrResult is the complete OCR output for a document. Pages preserves
// document order even for pages with empty text; FullText is the non-empty
// page texts joined with a blank line.
type OcrResult struct {
	Pages    []OcrPage `json:"pages"`
	FullText string    `json:"fullText"`
}

// JoinPageTexts joins non-empty texts with a blank-line separator, keeping
// relative order. Empty entries contribute nothing to the join.
func JoinPageTexts(texts []string) string {
	parts := make([]string, 0, len(texts))
	for _, t := range texts {
		if t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}
