package raster

// VSOutput is the vertex program's output and the rasterizer's input
// (spec.md §3). After Pipeline.SubmitMesh's post-processing, Position's
// xyz has been divided by w, but w itself is retained for perspective
// correction — never reset to 1 (spec.md §9 open question).
type VSOutput struct {
	Position      VectorW
	WorldPosition VectorW
	WorldNormal   VectorW
	WorldTangent  VectorW
	Color         Color
	UV            [2]float64
}

// FSInput is the fragment program's input (spec.md §3): interpolated
// world-space position/normal/tangent, the NDC-mapped screen position,
// UV and color.
type FSInput struct {
	WorldPosition Vector
	WorldNormal   Vector
	WorldTangent  Vector
	Position      [2]float64 // NDC, in [-1,1]^2
	UV            [2]float64
	Color         Color
}

// Shader is the programmable pipeline contract (spec.md §9): a
// vertex/fragment program pair implemented by a user-supplied object,
// passed explicitly into the pipeline rather than bound through a global.
type Shader interface {
	Vertex(Vertex) VSOutput
	Fragment(FSInput) Color
}

// CullMode selects which triangle winding (as seen after the perspective
// divide) is discarded.
type CullMode int

const (
	CullNone CullMode = iota
	CullClockwise
	CullCounterClockwise
)

// Pipeline owns the backbuffer and depth buffer and drives triangle
// submission. Sampler references are non-owning (spec.md §5).
type Pipeline struct {
	Backbuffer  *Texture
	DepthBuffer *Texture
	Samplers    []*Texture
	Shader      Shader

	width, height int
}

// NewPipeline allocates the backbuffer/depth buffer pair at the given
// viewport size. Depth is cleared to maxFloat, the largest finite
// float64 (spec.md §3 invariant).
func NewPipeline(width, height int) *Pipeline {
	p := &Pipeline{width: width, height: height}
	p.Backbuffer = NewSolidTexture(width, height, Color{0, 0, 0, 1})
	p.DepthBuffer = NewSolidTexture(width, height, Color{R: maxFloat})
	return p
}

func (p *Pipeline) Width() int  { return p.width }
func (p *Pipeline) Height() int { return p.height }

// Clear resets both buffers for a new frame.
func (p *Pipeline) Clear(color Color) {
	p.Backbuffer.Clear(color)
	p.DepthBuffer.Clear(Color{R: maxFloat})
}

// SubmitMesh runs the full per-triangle pipeline of spec.md §4.2: vertex
// program, perspective divide (keeping w), back/front-face cull, viewport
// mapping, then rasterization.
func (p *Pipeline) SubmitMesh(mesh *Mesh, cull CullMode) {
	if mesh == nil {
		return
	}
	size := [2]float64{float64(p.width), float64(p.height)}
	for _, tri := range mesh.Triangles {
		o1 := p.Shader.Vertex(tri.V1)
		o2 := p.Shader.Vertex(tri.V2)
		o3 := p.Shader.Vertex(tri.V3)

		o1.Position = perspectiveDivide(o1.Position)
		o2.Position = perspectiveDivide(o2.Position)
		o3.Position = perspectiveDivide(o3.Position)

		if cull != CullNone {
			viewZ := 1.0
			if cull == CullCounterClockwise {
				viewZ = -1.0
			}
			viewRay := Vector{0, 0, viewZ}
			normal := o3.Position.XYZ().Sub(o1.Position.XYZ()).Cross(
				o2.Position.XYZ().Sub(o1.Position.XYZ()),
			)
			if viewRay.Dot(normal) < 0 {
				continue
			}
		}

		o1.Position = toViewport(o1.Position, size)
		o2.Position = toViewport(o2.Position, size)
		o3.Position = toViewport(o3.Position, size)

		p.rasterizeTriangle(o1, o2, o3)
	}
}

// maxFloat is the depth-clear sentinel (spec.md §3: "largest finite
// float representable").
const maxFloat = 1.7976931348623157e+308

func perspectiveDivide(p VectorW) VectorW {
	if p.W == 0 {
		return p
	}
	inv := 1 / p.W
	return VectorW{p.X * inv, p.Y * inv, p.Z * inv, p.W}
}

func toViewport(p VectorW, size [2]float64) VectorW {
	return VectorW{
		X: (p.X + 1) * 0.5 * size[0],
		Y: (p.Y + 1) * 0.5 * size[1],
		Z: p.Z,
		W: p.W,
	}
}

// DrawFillQuad runs the fragment program once per pixel with a default
// FSInput (spec.md §4.4) — used to paint environment backgrounds or
// post-process effects.
func (p *Pipeline) DrawFillQuad() {
	w, h := p.width, p.height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			in := FSInput{
				UV:       [2]float64{float64(x) / float64(w), float64(y) / float64(h)},
				Position: [2]float64{float64(x) / float64(w) * 2, float64(y) / float64(h) * 2},
				Color:    Color{1, 1, 1, 1},
			}
			in.Position[0] -= 1
			in.Position[1] -= 1
			p.Backbuffer.Write(x, y, p.Shader.Fragment(in))
		}
	}
}
