package imageio

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/nfnt/resize"

	"github.com/avluzzati/swraster/raster"
)

// SaveThumbnail downsamples tex's level 0 to maxWidth (preserving aspect
// ratio) via github.com/nfnt/resize and writes it as PNG, for a quick
// contact-sheet preview alongside the full-resolution render. This is
// kept deliberately separate from raster.Texture.GenerateMipmaps, which
// owns the exact 2x2 box-filter chain the sampler's math depends on —
// resize is never used to produce a mip level.
func SaveThumbnail(path string, tex *raster.Texture, maxWidth int) error {
	w, h := tex.Width(), tex.Height()
	src := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src.Set(x, y, encodedColor(tex, x, y, w, h, 0, false))
		}
	}

	thumb := resize.Resize(uint(maxWidth), 0, src, resize.Bilinear)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageio: create thumbnail %s: %w", path, err)
	}
	defer f.Close()

	return png.Encode(f, thumb)
}
