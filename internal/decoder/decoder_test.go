package decoder

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestTextDecodesUTF8(t *testing.T) {
	d := New(10, 200)

	text := d.Text([]byte("Invoice #123, total €500"))
	if text != "Invoice #123, total €500" {
		t.Errorf("Unexpected UTF-8 decode: %q", text)
	}
}

func TestTextFallsBackToLatin1(t *testing.T) {
	d := New(10, 200)

	// 0xE9 is 'é' in Latin-1 but an invalid standalone byte in UTF-8.
	raw := []byte{'c', 'a', 'f', 0xE9}
	text := d.Text(raw)
	if text != "café" {
		t.Errorf("Expected Latin-1 fallback to yield %q, got %q", "café", text)
	}
}

func TestTextNeverFails(t *testing.T) {
	d := New(10, 200)

	inputs := [][]byte{
		nil,
		{},
		{0xFF, 0xFE, 0x00, 0x80},
		{0xC0, 0xC1}, // overlong-encoding lead bytes, invalid UTF-8
	}
	for _, in := range inputs {
		text := d.Text(in)
		if len(in) > 0 && len(text) == 0 {
			t.Errorf("Expected non-empty decode for %v", in)
		}
	}
}

func TestImageDecode(t *testing.T) {
	d := New(10, 200)

	img := image.NewRGBA(image.Rect(0, 0, 24, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 24; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test PNG: %v", err)
	}

	decoded, w, h, err := d.Image(buf.Bytes())
	if err != nil {
		t.Fatalf("Image decode failed: %v", err)
	}
	if decoded == nil {
		t.Fatal("Expected a decoded image")
	}
	if w != 24 || h != 16 {
		t.Errorf("Expected 24x16, got %dx%d", w, h)
	}
}

func TestImageDecodeRejectsGarbage(t *testing.T) {
	d := New(10, 200)

	if _, _, _, err := d.Image([]byte("definitely not an image")); err == nil {
		t.Error("Expected error for undecodable image bytes")
	}
}

func TestPagesRejectsCorruptPDF(t *testing.T) {
	d := New(10, 200)

	if _, err := d.Pages([]byte("%PDF-garbage")); err == nil {
		t.Error("Expected error for corrupt PDF bytes")
	}
}
