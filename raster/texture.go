package raster

import "math"

// mipLevel is one level of a 2D image: width x height Color pixels,
// row-major, origin at top-left.
type mipLevel struct {
	width, height int
	pixels        []Color
}

func newMipLevel(w, h int) mipLevel {
	return mipLevel{width: w, height: h, pixels: make([]Color, w*h)}
}

func (m mipLevel) at(x, y int) Color {
	return m.pixels[y*m.width+x]
}

func (m *mipLevel) set(x, y int, c Color) {
	m.pixels[y*m.width+x] = c
}

// Texture is a rectangular float4 pixel grid with an on-demand mip chain,
// or (when used as a cubemap) six such grids per mip level. See spec.md
// §3/§4.1.
type Texture struct {
	mips []mipLevel

	// cubeMips[level][face] holds one cubemap face at one mip level.
	// Faces of different levels are loaded independently (spec.md §3
	// invariant) so this is populated lazily, one SetCubemapFace call
	// at a time, rather than derived from level 0.
	cubeMips [][6]*mipLevel

	// trilinearCoefficient is mutated by the rasterizer between pixels
	// (spec.md §5): it is valid only for the fragment program call that
	// immediately follows its computation.
	trilinearCoefficient float64
}

// CubemapFace indexes the six faces of a cubemap.
type CubemapFace int

const (
	FaceFront CubemapFace = iota
	FaceBack
	FaceRight
	FaceLeft
	FaceTop
	FaceBottom
)

// NewSolidTexture allocates a level-0 w x h buffer filled with color.
func NewSolidTexture(w, h int, color Color) *Texture {
	t := &Texture{}
	lvl := newMipLevel(w, h)
	for i := range lvl.pixels {
		lvl.pixels[i] = color
	}
	t.mips = []mipLevel{lvl}
	return t
}

// NewTextureFromPixels builds a level-0 texture from caller-supplied
// row-major pixel data. Used by loaders (image decode, raw buffer read).
func NewTextureFromPixels(w, h int, pixels []Color) *Texture {
	return &Texture{mips: []mipLevel{{width: w, height: h, pixels: pixels}}}
}

// NewEmptyCubemap returns a texture with no level-0 2D image, ready to
// receive cubemap faces via SetCubemapFace.
func NewEmptyCubemap() *Texture {
	return &Texture{}
}

func (t *Texture) Width() int {
	if len(t.mips) == 0 {
		return 0
	}
	return t.mips[0].width
}

func (t *Texture) Height() int {
	if len(t.mips) == 0 {
		return 0
	}
	return t.mips[0].height
}

func (t *Texture) MipCount() int {
	return len(t.mips)
}

func (t *Texture) TrilinearCoefficient() float64 {
	return t.trilinearCoefficient
}

// Clear overwrites every level-0 pixel. Mips are left untouched; per
// spec.md §4.1 the design does not auto-regenerate them.
func (t *Texture) Clear(color Color) {
	if len(t.mips) == 0 {
		return
	}
	lvl := &t.mips[0]
	for i := range lvl.pixels {
		lvl.pixels[i] = color
	}
}

// Read is raw level-0 access; the caller is responsible for bounds
// (spec.md §7: out-of-range access is a contract violation).
func (t *Texture) Read(x, y int) Color {
	return t.mips[0].at(x, y)
}

func (t *Texture) Write(x, y int, v Color) {
	t.mips[0].set(x, y, v)
}

// SetCubemapFace populates one face of one mip level from row-major
// pixel data, growing the mip vector to cover the requested level.
func (t *Texture) SetCubemapFace(level int, face CubemapFace, w, h int, pixels []Color) {
	for level >= len(t.cubeMips) {
		t.cubeMips = append(t.cubeMips, [6]*mipLevel{})
	}
	lvl := &mipLevel{width: w, height: h, pixels: pixels}
	t.cubeMips[level][face] = lvl
}

func (t *Texture) CubemapMipCount() int {
	return len(t.cubeMips)
}

// GenerateMipmaps builds the chain above level 0 by repeated 2x2 box
// filtering: a new half-size level is added while the last level is at
// least 2x2, so the chain ends with the first level that has a dimension
// below 2 (e.g. 2x2 -> 1x1, 4x2 -> 2x1). See spec.md §4.1, invariant in
// §3. It is a no-op if mips beyond level 0 already exist.
func (t *Texture) GenerateMipmaps() {
	if len(t.mips) != 1 {
		return
	}
	for {
		cur := t.mips[len(t.mips)-1]
		if cur.width < 2 || cur.height < 2 {
			break
		}
		nw, nh := cur.width/2, cur.height/2
		next := newMipLevel(nw, nh)
		for y := 0; y < nh; y++ {
			for x := 0; x < nw; x++ {
				p00 := cur.at(x*2, y*2)
				p10 := cur.at(x*2+1, y*2)
				p01 := cur.at(x*2, y*2+1)
				p11 := cur.at(x*2+1, y*2+1)
				next.set(x, y, Color{
					R: (p00.R + p10.R + p01.R + p11.R) * 0.25,
					G: (p00.G + p10.G + p01.G + p11.G) * 0.25,
					B: (p00.B + p10.B + p01.B + p11.B) * 0.25,
					A: (p00.A + p10.A + p01.A + p11.A) * 0.25,
				})
			}
		}
		t.mips = append(t.mips, next)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func fract(v float64) float64 {
	return v - math.Floor(v)
}

// sampleLevel implements the §4.1 sampling algorithm against one 2D
// image (a Texture's own level, or a cubemap face treated as one).
func sampleLevel(lvl *mipLevel, u, v float64, repeat, bilinear bool) Color {
	w, h := lvl.width, lvl.height
	if repeat {
		u = fract(u)
		v = fract(v)
		if u < 0 {
			u += 1
		}
		if v < 0 {
			v += 1
		}
	} else {
		u = clamp01(u)
		v = clamp01(v)
	}

	px := u * float64(w)
	py := v * float64(h)

	if !bilinear {
		x := clampInt(int(math.Round(px)), 0, w-1)
		y := clampInt(int(math.Round(py)), 0, h-1)
		return lvl.at(x, y)
	}

	x0 := clampInt(int(math.Floor(px)), 0, w-1)
	y0 := clampInt(int(math.Floor(py)), 0, h-1)
	x1 := clampInt(x0+1, 0, w-1)
	y1 := clampInt(y0+1, 0, h-1)

	fx := fract(px)
	fy := fract(py)

	q11 := lvl.at(x0, y0)
	q21 := lvl.at(x1, y0)
	q12 := lvl.at(x0, y1)
	q22 := lvl.at(x1, y1)

	top := q11.Lerp(q21, fx)
	bottom := q12.Lerp(q22, fx)
	return top.Lerp(bottom, fy)
}

// SampleMip samples exactly one mip level, clamping the requested level
// to the available chain (spec.md §7: missing mip levels clamp, never
// error).
func (t *Texture) SampleMip(u, v float64, repeat, bilinear bool, level int) Color {
	if len(t.mips) == 0 {
		return Color{}
	}
	level = clampInt(level, 0, len(t.mips)-1)
	return sampleLevel(&t.mips[level], u, v, repeat, bilinear)
}

// Sample implements trilinear sampling per spec.md §4.1: blend between
// floor(c) and floor(c)+1 using the texture's own trilinear coefficient,
// clamped to the available chain.
func (t *Texture) Sample(u, v float64, repeat, bilinear, trilinear bool) Color {
	if len(t.mips) == 0 {
		return Color{}
	}
	c := clampFloat(t.trilinearCoefficient, 0, float64(len(t.mips)-1))
	low := int(math.Floor(c))
	if !trilinear {
		return t.SampleMip(u, v, repeat, bilinear, low)
	}
	high := low + 1
	if high > len(t.mips)-1 {
		high = len(t.mips) - 1
	}
	lo := t.SampleMip(u, v, repeat, bilinear, low)
	hi := t.SampleMip(u, v, repeat, bilinear, high)
	return lo.Lerp(hi, fract(c))
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// CalculateTrilinearCoefficient is the mip-level selector of spec.md
// §4.1: given the estimated UV-area a screen pixel covers, it walks the
// 2D mip chain to find the continuous level whose footprint matches, and
// stores the result on the texture for the next Sample call.
//
// It always operates on the 2D mip chain (t.mips), even for a texture
// used purely as a cubemap — a pure cubemap has an empty 2D chain, so
// this yields coefficient -1 in that case. That's harmless in practice:
// cubemap sampling always takes an explicit coefficient override (see
// SampleCubemap) rather than reading this field.
func (t *Texture) CalculateTrilinearCoefficient(puvac float64) {
	n := len(t.mips)
	if n == 1 {
		t.trilinearCoefficient = 0
		return
	}
	var prevArea float64
	for l := 0; l < n; l++ {
		area := 1.0 / float64(t.mips[l].width*t.mips[l].height)
		if puvac <= area {
			if l == 0 {
				t.trilinearCoefficient = 0
				return
			}
			t.trilinearCoefficient = float64(l-1) + (puvac-prevArea)/(area-prevArea)
			return
		}
		prevArea = area
	}
	t.trilinearCoefficient = float64(n - 1)
}
