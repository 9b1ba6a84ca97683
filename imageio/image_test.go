package imageio

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/avluzzati/swraster/raster"
)

// S6: a 2x2 RGBA texture round-trips through PNG within ±1/255 per
// channel when gamma correction is disabled on both ends.
func TestSeedPNGRoundTrip(t *testing.T) {
	pixels := []raster.Color{
		{R: 1, G: 0, B: 0, A: 1},
		{R: 0, G: 1, B: 0, A: 1},
		{R: 0, G: 0, B: 1, A: 1},
		{R: 0.5, G: 0.5, B: 0.5, A: 0.5},
	}
	tex := raster.NewTextureFromPixels(2, 2, pixels)

	path := filepath.Join(t.TempDir(), "roundtrip.png")
	if err := SaveImage(path, tex, 0); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}

	reloaded, err := LoadImage(path, false)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}

	const tol = 1.0 / 255.0
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			want := pixels[y*2+x]
			got := reloaded.Read(x, y)
			if diff(got.R, want.R) > tol || diff(got.G, want.G) > tol ||
				diff(got.B, want.B) > tol || diff(got.A, want.A) > tol {
				t.Fatalf("pixel (%d,%d): got %v, want %v within %v", x, y, got, want, tol)
			}
		}
	}
}

func diff(a, b float64) float64 {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}

func TestSaveImageBMPExtensionWritesOpaqueThreeChannel(t *testing.T) {
	tex := raster.NewSolidTexture(2, 2, raster.Color{R: 0.2, G: 0.4, B: 0.6, A: 0.1})
	path := filepath.Join(t.TempDir(), "out.bmp")
	if err := SaveImage(path, tex, 0); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected non-empty BMP file")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	// Bits per pixel sit at byte 28 (14-byte file header + 14 bytes into
	// the info header); an opaque 3-channel BMP stores 24.
	if len(data) < 30 || binary.LittleEndian.Uint16(data[28:30]) != 24 {
		t.Fatalf("expected a 24-bit (opaque 3-channel) BMP")
	}
}
