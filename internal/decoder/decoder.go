// Package decoder turns raw document bytes into text or page images,
// depending on the declared MIME type.
package decoder

import (
	"bytes"
	"fmt"
	"image"
	"unicode/utf8"

	// Register stdlib and extended image formats for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/gen2brain/go-fitz"
	"github.com/sirupsen/logrus"

	"go-doc-classifier/internal/logger"
)

// Page is a single rasterized document page with its pixel dimensions.
type Page struct {
	Image  image.Image
	Width  int
	Height int
}

// Decoder converts raw payload bytes into text or page images. PDF pages are
// rasterized at DPI, capped at MaxPages; pages beyond the cap are dropped.
type Decoder struct {
	MaxPages int
	DPI      int
}

// New creates a Decoder with the given page cap and render resolution.
func New(maxPages, dpi int) *Decoder {
	return &Decoder{MaxPages: maxPages, DPI: dpi}
}

// Text decodes raw bytes as UTF-8, falling back to a byte-preserving
// Latin-1 decode for invalid sequences. It never fails.
func (d *Decoder) Text(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	// Latin-1: every byte maps 1:1 onto the corresponding code point, so no
	// input can be rejected.
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return string(runes)
}

// Image decodes raw bytes as a single raster image and returns it with its
// pixel dimensions.
func (d *Decoder) Image(raw []byte) (image.Image, int, int, error) {
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("decode image: %w", err)
	}
	bounds := img.Bounds()
	logger.WithFields(logrus.Fields{
		"format": format,
		"width":  bounds.Dx(),
		"height": bounds.Dy(),
	}).Debug("Decoded image")
	return img, bounds.Dx(), bounds.Dy(), nil
}

// Pages rasterizes up to MaxPages PDF pages at the configured DPI, in
// document order. A valid PDF with zero pages yields an empty slice, not an
// error; truncation past MaxPages is logged but not an error.
func (d *Decoder) Pages(raw []byte) ([]Page, error) {
	doc, err := fitz.NewFromMemory(raw)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	total := doc.NumPage()
	count := total
	if count > d.MaxPages {
		logger.WithFields(logrus.Fields{
			"total_pages": total,
			"max_pages":   d.MaxPages,
		}).Warn("PDF exceeds page limit, truncating")
		count = d.MaxPages
	}

	pages := make([]Page, 0, count)
	for i := 0; i < count; i++ {
		img, err := doc.ImageDPI(i, float64(d.DPI))
		if err != nil {
			return nil, fmt.Errorf("rasterize pdf page %d: %w", i, err)
		}
		bounds := img.Bounds()
		pages = append(pages, Page{Image: img, Width: bounds.Dx(), Height: bounds.Dy()})
	}
	return pages, nil
}
