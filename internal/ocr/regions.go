package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"go-doc-classifier/internal/metrics"
	"go-doc-classifier/pkg/models"
)

// detectRequest is the payload sent to a remote text-detection endpoint.
type detectRequest struct {
	Image string `json:"image"`
}

// detectResponse carries the detector's raw polygons. Detection models
// commonly emit 4-point quadrilaterals, one per text region.
type detectResponse struct {
	Polygons [][][2]float64 `json:"polygons"`
}

// HTTPRegionDetector consumes a remote text-detection model that returns
// arbitrary polygons and converts each one to its axis-aligned bounding
// rectangle in pixel space.
type HTTPRegionDetector struct {
	client  *http.Client
	baseURL string
}

// NewHTTPRegionDetector creates a detector adapter for the given endpoint.
func NewHTTPRegionDetector(baseURL string) *HTTPRegionDetector {
	return &HTTPRegionDetector{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// DetectRegions posts the image to the detection endpoint and returns the
// axis-aligned boxes of its polygons. An empty, null or absent polygon set
// yields an empty slice, never an error.
func (d *HTTPRegionDetector) DetectRegions(ctx context.Context, img image.Image) ([]models.BoundingBox, error) {
	timer := prometheus.NewTimer(metrics.BBoxDetectionDuration)
	defer timer.ObserveDuration()

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode image for detection: %w", err)
	}
	body, err := json.Marshal(detectRequest{Image: base64.StdEncoding.EncodeToString(buf.Bytes())})
	if err != nil {
		return nil, fmt.Errorf("encode detect request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+"/detect", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build detect request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("detector request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("detector endpoint returned %d: %s", resp.StatusCode, payload)
	}

	var out detectResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode detect response: %w", err)
	}

	boxes := make([]models.BoundingBox, 0, len(out.Polygons))
	for _, poly := range out.Polygons {
		if box, ok := models.BoxFromPolygon(poly); ok {
			boxes = append(boxes, box)
		}
	}
	return boxes, nil
}
