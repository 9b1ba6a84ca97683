// Package imageio bridges raster.Texture to on-disk image formats: any
// stdlib-decodable format (plus BMP via golang.org/x/image/bmp) on load,
// and BMP/PNG on save, per spec.md §6.
package imageio

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/avluzzati/swraster/raster"
)

// LoadImage decodes any image format registered with the stdlib image
// package, plus BMP, into a level-0 raster.Texture. When gammaCorrect is
// set, each channel is decoded from sRGB to linear with the 2.2-power
// curve of spec.md §4.1 before being stored.
func LoadImage(path string, gammaCorrect bool) (*raster.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: open %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode %s: %w", path, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]raster.Color, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			n := color.NRGBA64Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA64)
			c := raster.Color{
				R: float64(n.R) / 65535,
				G: float64(n.G) / 65535,
				B: float64(n.B) / 65535,
				A: float64(n.A) / 65535,
			}
			if gammaCorrect {
				c = c.GammaDecode()
			}
			pixels[y*w+x] = c
		}
	}
	return raster.NewTextureFromPixels(w, h, pixels), nil
}

// SaveImage encodes one mip level of tex to path: a ".bmp" extension
// (case-insensitive) writes 3-channel BMP (alpha forced opaque), anything
// else writes 4-channel PNG (spec.md §6). Values are clamped to [0,1] and
// quantized to 8 bits per channel; no gamma step is applied here — a
// shader that wants sRGB output (PBR) encodes it itself before the color
// ever reaches the backbuffer.
func SaveImage(path string, tex *raster.Texture, mipLevel int) error {
	w, h := tex.Width(), tex.Height()
	bmpOut := strings.EqualFold(filepath.Ext(path), ".bmp")

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", path, err)
	}
	defer f.Close()

	if bmpOut {
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.Set(x, y, encodedColor(tex, x, y, w, h, mipLevel, true))
			}
		}
		return bmp.Encode(f, img)
	}

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, encodedColor(tex, x, y, w, h, mipLevel, false))
		}
	}
	return png.Encode(f, img)
}

func encodedColor(tex *raster.Texture, x, y, w, h, mipLevel int, forceOpaque bool) color.NRGBA {
	c := tex.SampleMip(
		(float64(x)+0.5)/float64(w),
		(float64(y)+0.5)/float64(h),
		false, false, mipLevel,
	).Clamp01()
	a := c.A
	if forceOpaque {
		a = 1
	}
	return color.NRGBA{
		R: uint8(c.R * 255),
		G: uint8(c.G * 255),
		B: uint8(c.B * 255),
		A: uint8(a * 255),
	}
}
