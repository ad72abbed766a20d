package thumbnail

import (
	"bytes"
	"image"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestGenerateShrinksOversizedImages(t *testing.T) {
	g := NewGenerator()
	thumb, err := g.Generate(encodePNG(t, 800, 600), 200)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("format = %q, want jpeg", format)
	}
	if cfg.Width > 200 || cfg.Height > 200 {
		t.Errorf("thumbnail is %dx%d, want both sides within 200", cfg.Width, cfg.Height)
	}
	// Aspect ratio preserved: 800x600 fit into 200 gives 200x150.
	if cfg.Width != 200 || cfg.Height != 150 {
		t.Errorf("thumbnail is %dx%d, want 200x150", cfg.Width, cfg.Height)
	}
}

func TestGenerateDoesNotUpscale(t *testing.T) {
	g := NewGenerator()
	thumb, err := g.Generate(encodePNG(t, 100, 80), 400)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if cfg.Width != 100 || cfg.Height != 80 {
		t.Errorf("thumbnail is %dx%d, want the original 100x80", cfg.Width, cfg.Height)
	}
}

func TestGenerateRejectsBadInput(t *testing.T) {
	g := NewGenerator()
	if _, err := g.Generate([]byte("not an image"), 200); err == nil {
		t.Errorf("expected error for non-image bytes")
	}
	if _, err := g.Generate(encodePNG(t, 10, 10), 0); err == nil {
		t.Errorf("expected error for non-positive dimension")
	}
}

func TestProbe(t *testing.T) {
	g := NewGenerator()
	dims, err := g.Probe(encodePNG(t, 640, 480))
	if err != nil {
		t.Fatalf("probe: %v", err)
	}
	if dims.Width != 640 || dims.Height != 480 {
		t.Errorf("dims = %dx%d, want 640x480", dims.Width, dims.Height)
	}
	if _, err := g.Probe([]byte("garbage")); err == nil {
		t.Errorf("expected error for non-image bytes")
	}
}
