package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/avluzzati/swraster/raster"
)

// LoadRawBuffer reads a headerless little-endian float32, row-major,
// channels-per-pixel `.buff` file (spec.md §6) into a level-0 Texture.
// Channels the file does not carry default to 0, alpha included: a file
// with fewer than 4 channels per pixel decodes to alpha 0.
func LoadRawBuffer(path string, width, height, channels int) (*raster.Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: open raw buffer: %w", err)
	}
	defer f.Close()

	pixels, err := readRawPixels(f, width, height, channels)
	if err != nil {
		return nil, fmt.Errorf("loader: read raw buffer %s: %w", path, err)
	}
	return raster.NewTextureFromPixels(width, height, pixels), nil
}

// LoadCubemapFace reads one face of one mip level of a cubemap from a
// 3-channel-per-pixel `.buff` file (spec.md §6: "same format, 3 channels
// per pixel") and installs it on tex via SetCubemapFace.
func LoadCubemapFace(tex *raster.Texture, path string, level int, face raster.CubemapFace, width, height int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("loader: open cubemap face: %w", err)
	}
	defer f.Close()

	pixels, err := readRawPixels(f, width, height, 3)
	if err != nil {
		return fmt.Errorf("loader: read cubemap face %s: %w", path, err)
	}
	tex.SetCubemapFace(level, face, width, height, pixels)
	return nil
}

func readRawPixels(r io.Reader, width, height, channels int) ([]raster.Color, error) {
	count := width * height
	buf := make([]byte, count*channels*4)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}

	pixels := make([]raster.Color, count)
	for i := 0; i < count; i++ {
		c := raster.Color{}
		base := i * channels * 4
		for ch := 0; ch < channels && ch < 4; ch++ {
			v := readF32(buf, base+ch*4)
			switch ch {
			case 0:
				c.R = v
			case 1:
				c.G = v
			case 2:
				c.B = v
			case 3:
				c.A = v
			}
		}
		pixels[i] = c
	}
	return pixels, nil
}
