package img

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// Writes a small solid-color PNG and returns its path.
func screenshot(t *testing.T, width, height int) string {
	t.Helper()

	m := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			m.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}

	path := filepath.Join(t.TempDir(), "screenshot.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, m); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func decode(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	m, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestResize(t *testing.T) {
	src := screenshot(t, 64, 42)
	dest := filepath.Join(t.TempDir(), "thumb.png")

	if err := Resize(src, dest, 128, 84); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := decode(t, dest)
	if got := m.Bounds().Size(); got.X != 128 || got.Y != 84 {
		t.Fatalf("size = %v, want 128x84", got)
	}
}

func TestSocialCard(t *testing.T) {
	src := screenshot(t, 64, 42)
	dest := filepath.Join(t.TempDir(), "card.png")

	if err := SocialCard(src, dest, 800, 418); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := decode(t, dest)
	if got := m.Bounds().Size(); got.X != 800 || got.Y != 418 {
		t.Fatalf("size = %v, want 800x418", got)
	}

	// Letterbox margins stay background-colored.
	r, g, b, _ := m.At(1, 1).RGBA()
	if r != 0 || g != 0 || b != 0 {
		t.Fatalf("corner = %v, want black letterbox", m.At(1, 1))
	}
}

func TestResizeMissingSource(t *testing.T) {
	if err := Resize(filepath.Join(t.TempDir(), "absent.png"), "out.png", 10, 10); err == nil {
		t.Fatal("expected error for missing source, got nil")
	}
}

func TestResizeInvalidPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(path, []byte("not a png"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := Resize(path, "out.png", 10, 10); err == nil {
		t.Fatal("expected error for invalid PNG, got nil")
	}
}
