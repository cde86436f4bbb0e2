package models

import "testing"

func TestBoxFromPolygon(t *testing.T) {
	tests := []struct {
		name     string
		points   [][2]float64
		expected BoundingBox
		ok       bool
	}{
		{
			name:     "Quadrilateral",
			points:   [][2]float64{{10, 20}, {100, 20}, {100, 50}, {10, 50}},
			expected: BoundingBox{X: 10, Y: 20, Width: 90, Height: 30},
			ok:       true,
		},
		{
			name:     "Rotated quadrilateral",
			points:   [][2]float64{{50, 10}, {90, 40}, {50, 70}, {10, 40}},
			expected: BoundingBox{X: 10, Y: 10, Width: 80, Height: 60},
			ok:       true,
		},
		{
			name:   "Single point",
			points: [][2]float64{{5, 5}},
			ok:     false,
		},
		{
			name:   "Degenerate horizontal line",
			points: [][2]float64{{0, 10}, {50, 10}},
			ok:     false,
		},
		{
			name:   "Empty polygon",
			points: nil,
			ok:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box, ok := BoxFromPolygon(tt.points)
			if ok != tt.ok {
				t.Fatalf("BoxFromPolygon ok = %v, want %v", ok, tt.ok)
			}
			if ok && box != tt.expected {
				t.Errorf("BoxFromPolygon = %+v, want %+v", box, tt.expected)
			}
		})
	}
}

func TestJoinPageTexts(t *testing.T) {
	tests := []struct {
		name     string
		texts    []string
		expected string
	}{
		{"All pages have text", []string{"one", "two", "three"}, "one\n\ntwo\n\nthree"},
		{"Empty page in the middle", []string{"one", "", "three"}, "one\n\nthree"},
		{"Only empty pages", []string{"", "", ""}, ""},
		{"No pages", nil, ""},
		{"Single page", []string{"solo"}, "solo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinPageTexts(tt.texts); got != tt.expected {
				t.Errorf("JoinPageTexts(%q) = %q, want %q", tt.texts, got, tt.expected)
			}
		})
	}
}

func TestUnknownClassification(t *testing.T) {
	result := UnknownClassification()

	if result.Label != UnknownLabel {
		t.Errorf("Expected label %q, got %q", UnknownLabel, result.Label)
	}
	if result.Confidence != 0.0 {
		t.Errorf("Expected zero confidence, got %f", result.Confidence)
	}
	if result.Scores == nil || len(result.Scores) != 0 {
		t.Errorf("Expected empty non-nil score map, got %v", result.Scores)
	}
}
