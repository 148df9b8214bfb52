package utils

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := map[string]color.RGBA{
		"#E74C3C":   {0xE7, 0x4C, 0x3C, 255},
		"#00000080": {0, 0, 0, 0x80},
		"bogus":     {0, 0, 0, 255},
	}
	for in, want := range tests {
		if got := ParseHexColor(in); got != want {
			t.Fatalf("ParseHexColor(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestTintSkipsTransparentPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{0, 0, 255, 255})
	img.Set(1, 0, color.RGBA{0, 0, 0, 0})

	out := TintImage(img, color.RGBA{255, 0, 0, 255})
	if r, _, b, _ := out.At(0, 0).RGBA(); r>>8 != 255 || b>>8 != 0 {
		t.Fatalf("opaque pixel not tinted: %v", out.At(0, 0))
	}
	if _, _, _, a := out.At(1, 0).RGBA(); a != 0 {
		t.Fatalf("transparent pixel changed: %v", out.At(1, 0))
	}
}

func TestAssetsImageCache(t *testing.T) {
	dir := t.TempDir()
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	b, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sprite.png"), b, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	a := NewAssets(dir)
	got, err := a.Image("sprite.png")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Bounds().Dx() != 3 || got.Bounds().Dy() != 2 {
		t.Fatalf("unexpected bounds %v", got.Bounds())
	}

	// Served from cache once the file is gone.
	if err := os.Remove(filepath.Join(dir, "sprite.png")); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := a.Image("sprite.png"); err != nil {
		t.Fatalf("expected cached image, got %v", err)
	}
	if _, err := a.Image("missing.png"); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := a.Font(12, "missing.ttf"); err == nil {
		t.Fatalf("expected error for missing font")
	}
}
