package raster

import "testing"

// flatColorShader is a minimal Shader used by the rasterizer tests: it
// passes position through untouched and ignores everything else,
// returning a fixed Color from the fragment program.
type flatColorShader struct {
	color Color
}

func (s flatColorShader) Vertex(v Vertex) VSOutput {
	return VSOutput{Position: v.Position.W(1), Color: s.color, UV: v.UV}
}

func (s flatColorShader) Fragment(FSInput) Color {
	return s.color
}

func clipTriangle(p1, p2, p3 Vector, z float64) *Mesh {
	mk := func(p Vector) Vertex {
		return Vertex{Position: V(p.X, p.Y, z)}
	}
	return NewMesh([]Triangle{{mk(p1), mk(p2), mk(p3)}})
}

// S1: solid triangle on a 4x4 backbuffer.
func TestSeedSolidTriangle(t *testing.T) {
	p := NewPipeline(4, 4)
	p.Clear(Color{A: 1})
	p.Shader = flatColorShader{color: Color{R: 1, A: 1}}

	mesh := clipTriangle(V(-1, -1, 0), V(1, -1, 0), V(-1, 1, 0), 0)
	p.SubmitMesh(mesh, CullNone)

	if p.Backbuffer.Read(0, 0).R != 1 {
		t.Fatalf("expected pixel (0,0) to be covered (red), got %v", p.Backbuffer.Read(0, 0))
	}
	if p.Backbuffer.Read(3, 3).R == 1 {
		t.Fatalf("pixel (3,3) should be outside the triangle's hypotenuse")
	}
}

// S2: depth test — the nearer (smaller z) triangle wins regardless of
// submission order, and the depth buffer ends up holding its z.
func TestSeedDepthTestKeepsNearer(t *testing.T) {
	p := NewPipeline(4, 4)
	p.Clear(Color{A: 1})

	back := clipTriangle(V(-1, -1, 0), V(1, -1, 0), V(-1, 1, 0), 0.9)
	back = meshWithSecondTriangle(back, V(1, -1, 0), V(1, 1, 0), V(-1, 1, 0), 0.9)
	front := clipTriangle(V(-1, -1, 0), V(1, -1, 0), V(-1, 1, 0), 0.1)
	front = meshWithSecondTriangle(front, V(1, -1, 0), V(1, 1, 0), V(-1, 1, 0), 0.1)

	p.Shader = flatColorShader{color: Color{B: 1, A: 1}}
	p.SubmitMesh(back, CullNone)
	p.Shader = flatColorShader{color: Color{R: 1, A: 1}}
	p.SubmitMesh(front, CullNone)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := p.Backbuffer.Read(x, y)
			if c.R != 1 || c.B != 0 {
				t.Fatalf("pixel (%d,%d): want red (front), got %v", x, y, c)
			}
			d := p.DepthBuffer.Read(x, y).R
			if !closeF(d, 0.1, 1e-9) {
				t.Fatalf("pixel (%d,%d): depth want 0.1, got %v", x, y, d)
			}
		}
	}
}

func meshWithSecondTriangle(m *Mesh, p1, p2, p3 Vector, z float64) *Mesh {
	second := clipTriangle(p1, p2, p3, z)
	m.Append(second)
	return m
}

// Invariant 6: culling symmetry. A triangle drawn with one winding
// produces pixels under exactly one of CW/CCW, and under both with NONE.
func TestCullingSymmetry(t *testing.T) {
	tri := NewMesh([]Triangle{{
		Vertex{Position: V(-1, -1, 0)},
		Vertex{Position: V(1, -1, 0)},
		Vertex{Position: V(-1, 1, 0)},
	}})

	countCovered := func(cull CullMode) int {
		p := NewPipeline(4, 4)
		p.Clear(Color{A: 1})
		p.Shader = flatColorShader{color: Color{R: 1, A: 1}}
		p.SubmitMesh(tri, cull)
		n := 0
		for y := 0; y < 4; y++ {
			for x := 0; x < 4; x++ {
				if p.Backbuffer.Read(x, y).R == 1 {
					n++
				}
			}
		}
		return n
	}

	none := countCovered(CullNone)
	cw := countCovered(CullClockwise)
	ccw := countCovered(CullCounterClockwise)

	if none == 0 {
		t.Fatalf("CullNone should always produce pixels")
	}
	if (cw == 0) == (ccw == 0) {
		t.Fatalf("exactly one of CW/CCW should cull this winding: cw=%d ccw=%d", cw, ccw)
	}
}

// Invariant 7: NDC round-trip. A vertex at clip-space (x,y,0,1) ends up
// at the expected viewport pixel after mapping.
func TestNDCRoundTrip(t *testing.T) {
	size := [2]float64{8, 8}
	p := VectorW{X: 0.5, Y: -0.25, Z: 0, W: 1}
	got := toViewport(p, size)

	wantX := (p.X + 1) * 0.5 * size[0]
	wantY := (p.Y + 1) * 0.5 * size[1]
	if !closeF(got.X, wantX, 1e-9) || !closeF(got.Y, wantY, 1e-9) {
		t.Fatalf("toViewport(%v) = %v, want (%v,%v)", p, got, wantX, wantY)
	}
}

// uvProbeShader writes its fragment's interpolated UV.u straight into
// the red channel, so a test can read back what perspective correction
// actually produced without needing a texture in the loop.
type uvProbeShader struct{}

func (uvProbeShader) Vertex(Vertex) VSOutput { return VSOutput{} }

func (uvProbeShader) Fragment(in FSInput) Color {
	return Color{R: in.UV[0], A: 1}
}

// S3: perspective-correct interpolation. near and far share a screen row
// but carry very different w (1 vs 9); a thin apex sits far outside that
// row so every sampled pixel's barycentric weight for it is exactly
// zero, leaving a pure two-vertex interpolation along the row. Dividing
// by w before blending (as perspectiveCorrect does) makes the UV step
// between equally spaced pixels grow across the row instead of staying
// constant, which is what a plain screen-space lerp would produce.
func TestSeedPerspectiveCorrectInterpolation(t *testing.T) {
	p := NewPipeline(4, 1)
	p.Clear(Color{A: 1})
	p.Shader = uvProbeShader{}

	near := VSOutput{Position: VectorW{X: 0, Y: 0.5, Z: 0, W: 1}, UV: [2]float64{0, 0}}
	far := VSOutput{Position: VectorW{X: 4, Y: 0.5, Z: 0, W: 9}, UV: [2]float64{1, 0}}
	apex := VSOutput{Position: VectorW{X: 2, Y: 5, Z: 0, W: 1}, UV: [2]float64{0.5, 1}}
	p.rasterizeTriangle(near, far, apex)

	got := [4]float64{
		p.Backbuffer.Read(0, 0).R,
		p.Backbuffer.Read(1, 0).R,
		p.Backbuffer.Read(2, 0).R,
		p.Backbuffer.Read(3, 0).R,
	}
	want := [4]float64{0.015625, 0.0625, 0.15625, 0.4375}
	for i := range got {
		if !closeF(got[i], want[i], 1e-9) {
			t.Fatalf("pixel %d: got %v want %v (full row %v)", i, got[i], want[i], got)
		}
	}

	for i := 0; i < 2; i++ {
		step, next := got[i+1]-got[i], got[i+2]-got[i+1]
		if next <= step {
			t.Fatalf("perspective-correct steps should grow across the row (not stay constant like a linear lerp), got %v", got)
		}
	}
}

// Degenerate (zero-area) triangles must be skipped, never write NaN.
func TestDegenerateTriangleSkipped(t *testing.T) {
	p := NewPipeline(4, 4)
	p.Clear(Color{A: 1})
	p.Shader = flatColorShader{color: Color{R: 1, A: 1}}

	mesh := NewMesh([]Triangle{{
		Vertex{Position: V(-1, -1, 0)},
		Vertex{Position: V(1, 1, 0)},
		Vertex{Position: V(-1, -1, 0)},
	}})
	p.SubmitMesh(mesh, CullNone)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := p.Backbuffer.Read(x, y)
			if c.R != 0 {
				t.Fatalf("degenerate triangle should draw nothing, got %v at (%d,%d)", c, x, y)
			}
		}
	}
}
