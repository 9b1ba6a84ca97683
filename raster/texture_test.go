package raster

import "testing"

func solidPixels(w, h int, c Color) []Color {
	px := make([]Color, w*h)
	for i := range px {
		px[i] = c
	}
	return px
}

func TestMipDimensionsShrinkByHalfUntilBelowTwo(t *testing.T) {
	tex := NewTextureFromPixels(17, 9, solidPixels(17, 9, Color{R: 1, G: 1, B: 1, A: 1}))
	tex.GenerateMipmaps()

	w, h := 17, 9
	for level := 0; level < tex.MipCount(); level++ {
		if tex.mips[level].width != w || tex.mips[level].height != h {
			t.Fatalf("level %d: got %dx%d, want %dx%d", level, tex.mips[level].width, tex.mips[level].height, w, h)
		}
		w >>= 1
		h >>= 1
	}
	last := tex.mips[tex.MipCount()-1]
	if last.width < 2 && last.height < 2 {
		// fine, chain correctly stopped
	}
	if last.width >= 2 && last.height >= 2 {
		t.Fatalf("chain stopped too early: last level is %dx%d", last.width, last.height)
	}
}

func TestBoxFilterMipIsArithmeticMean(t *testing.T) {
	pixels := []Color{
		{R: 0, G: 0, B: 0, A: 0}, {R: 1, G: 0, B: 0, A: 1},
		{R: 0, G: 1, B: 0, A: 1}, {R: 1, G: 1, B: 1, A: 1},
	}
	tex := NewTextureFromPixels(2, 2, pixels)
	tex.GenerateMipmaps()

	if tex.MipCount() != 2 {
		t.Fatalf("2x2 should produce one 1x1 level and then stop: got %d levels", tex.MipCount())
	}
	got := tex.mips[1].at(0, 0)
	want := Color{R: 0.5, G: 0.5, B: 0.25, A: 0.75}
	if !closeColor(got, want, 1e-9) {
		t.Fatalf("1x1 level: got %v want mean %v", got, want)
	}
}

func TestBoxFilterMipFourByFour(t *testing.T) {
	pixels := make([]Color, 16)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			pixels[y*4+x] = Color{R: float64(x), G: float64(y), B: 0, A: 1}
		}
	}
	tex := NewTextureFromPixels(4, 4, pixels)
	tex.GenerateMipmaps()

	if tex.MipCount() != 3 {
		t.Fatalf("want 3 levels (4x4 -> 2x2 -> 1x1, stop), got %d", tex.MipCount())
	}
	lvl1 := tex.mips[1]
	got := lvl1.at(0, 0)
	want := Color{R: 0.5, G: 0.5, B: 0, A: 1}
	if !closeColor(got, want, 1e-9) {
		t.Fatalf("box filter mismatch at (0,0): got %v want %v", got, want)
	}
}

func closeColor(a, b Color, eps float64) bool {
	return closeF(a.R, b.R, eps) && closeF(a.G, b.G, eps) && closeF(a.B, b.B, eps) && closeF(a.A, b.A, eps)
}

func closeF(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestBilinearAtIntegerUVReturnsExactTexel(t *testing.T) {
	w, h := 4, 3
	pixels := make([]Color, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pixels[y*w+x] = Color{R: float64(x) / 10, G: float64(y) / 10, B: 0.5, A: 1}
		}
	}
	tex := NewTextureFromPixels(w, h, pixels)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			u := (float64(x) + 0.5) / float64(w)
			v := (float64(y) + 0.5) / float64(h)
			got := tex.SampleMip(u, v, false, true, 0)
			want := pixels[y*w+x]
			if !closeColor(got, want, 1e-9) {
				t.Fatalf("texel (%d,%d): got %v want %v", x, y, got, want)
			}
		}
	}
}

func TestConstantTextureSamplesExactlyEverywhere(t *testing.T) {
	c := Color{R: 0.3, G: 0.6, B: 0.9, A: 1}
	tex := NewTextureFromPixels(8, 8, solidPixels(8, 8, c))

	for _, bilinear := range []bool{false, true} {
		for _, uv := range [][2]float64{{0.01, 0.01}, {0.5, 0.5}, {0.99, 0.99}} {
			got := tex.SampleMip(uv[0], uv[1], true, bilinear, 0)
			if got != c {
				t.Fatalf("bilinear=%v uv=%v: got %v want %v", bilinear, uv, got, c)
			}
		}
	}
}

// mipProbeShader samples its bound texture trilinearly, so a test can
// observe which mip level the rasterizer's footprint estimate selected.
type mipProbeShader struct {
	tex *Texture
}

func (s mipProbeShader) Vertex(Vertex) VSOutput { return VSOutput{} }

func (s mipProbeShader) Fragment(in FSInput) Color {
	return s.tex.Sample(in.UV[0], in.UV[1], false, true, true)
}

// S4: mip-level selection. An 8-level chain (256x256 down to 2x2) carries
// a distinct solid color per level. A 1x1 framebuffer renders a triangle
// whose UVs span the texture's full [0,1]^2 range across that one pixel,
// so the per-pixel footprint estimate covers nearly the whole texture —
// the selector must land on the coarsest level, not level 0.
func TestSeedMipSelectionPicksCoarsestLevel(t *testing.T) {
	levelColors := []Color{
		{R: 0, A: 1}, {R: 1.0 / 7, A: 1}, {R: 2.0 / 7, A: 1}, {R: 3.0 / 7, A: 1},
		{R: 4.0 / 7, A: 1}, {R: 5.0 / 7, A: 1}, {R: 6.0 / 7, A: 1}, {R: 1, A: 1},
	}
	tex := &Texture{}
	w, h := 256, 256
	for _, c := range levelColors {
		tex.mips = append(tex.mips, mipLevel{width: w, height: h, pixels: solidPixels(w, h, c)})
		w >>= 1
		h >>= 1
	}

	p := NewPipeline(1, 1)
	p.Clear(Color{A: 1})
	p.Samplers = []*Texture{tex}
	p.Shader = mipProbeShader{tex: tex}

	o1 := VSOutput{Position: VectorW{X: 0, Y: 0, Z: 0, W: 1}, UV: [2]float64{0, 0}}
	o2 := VSOutput{Position: VectorW{X: 1, Y: 0, Z: 0, W: 1}, UV: [2]float64{1, 0}}
	o3 := VSOutput{Position: VectorW{X: 0, Y: 1, Z: 0, W: 1}, UV: [2]float64{0, 1}}
	p.rasterizeTriangle(o1, o2, o3)

	got := p.Backbuffer.Read(0, 0)
	want := levelColors[len(levelColors)-1]
	if !closeColor(got, want, 1e-9) {
		t.Fatalf("expected coarsest-level color %v, got %v", want, got)
	}
}

func TestMipSelectorIsMonotonic(t *testing.T) {
	tex := NewTextureFromPixels(64, 64, solidPixels(64, 64, Color{A: 1}))
	tex.GenerateMipmaps()

	puvacs := []float64{0, 1e-6, 1e-4, 1e-3, 1e-2, 1e-1, 1}
	var prev float64
	for i, p := range puvacs {
		tex.CalculateTrilinearCoefficient(p)
		got := tex.TrilinearCoefficient()
		if i > 0 && got < prev {
			t.Fatalf("selector not monotonic: puvac=%v got %v < previous %v", p, got, prev)
		}
		prev = got
	}
}
