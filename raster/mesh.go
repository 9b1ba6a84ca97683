package raster

// Vertex is the input to a vertex program: model-space position, normal,
// tangent, bitangent, vertex color and UV. See spec.md §3.
type Vertex struct {
	Position  Vector
	Normal    VectorW
	Tangent   VectorW
	Bitangent VectorW
	Color     Color
	UV        [2]float64
}

// Triangle is three Vertices, processed in the order the Mesh stores
// them (spec.md §3: "geometry processed in that order").
type Triangle struct {
	V1, V2, V3 Vertex
}

// Mesh is an ordered sequence of triangles. Insertion order is preserved.
type Mesh struct {
	Triangles []Triangle
}

func NewMesh(triangles []Triangle) *Mesh {
	return &Mesh{Triangles: triangles}
}

func NewEmptyMesh() *Mesh {
	return &Mesh{}
}

func (m *Mesh) Add(t Triangle) {
	m.Triangles = append(m.Triangles, t)
}

func (m *Mesh) Append(other *Mesh) {
	if other == nil {
		return
	}
	m.Triangles = append(m.Triangles, other.Triangles...)
}

// ComputeTangent computes the tangent vector of a triangle from its
// edge/UV deltas, the same cross-edge method as the reference's
// trisComputeTangent helper. The determinant is assumed nonzero (callers
// own meshes with degenerate UVs; this mirrors the reference, which never
// guards against it either).
func ComputeTangent(v1, v2, v3 Vertex) Vector {
	p1, p2, p3 := v1.Position, v2.Position, v3.Position
	u1, u2 := v1.UV, v2.UV
	u3 := v3.UV

	e1 := p2.Sub(p1)
	e2 := p3.Sub(p2)

	duv1 := [2]float64{u2[0] - u1[0], u2[1] - u1[1]}
	duv2 := [2]float64{u3[0] - u2[0], u3[1] - u2[1]}

	det := duv1[0]*duv2[1] - duv1[1]*duv2[0]
	f := 1 / det

	return e1.MulScalar(f * duv2[1]).Sub(e2.MulScalar(f * duv1[1]))
}

// RemoveParallelComponent returns a without the component parallel to b.
func RemoveParallelComponent(a, b Vector) Vector {
	denom := b.Dot(b)
	if denom == 0 {
		return a
	}
	coeff := a.Dot(b) / denom
	return a.Sub(b.MulScalar(coeff))
}

// FaceTangentBitangent computes a tangent/bitangent basis for a vertex
// given its normal and the triangle it belongs to, matching the
// orthogonalization the reference's loadCube helper performs per vertex:
// tangent is the raw UV-derived tangent with the normal's parallel
// component removed and renormalized, bitangent completes the basis.
func FaceTangentBitangent(v1, v2, v3 Vertex, normal Vector) (tangent, bitangent Vector) {
	raw := ComputeTangent(v1, v2, v3)
	tangent = RemoveParallelComponent(raw, normal).Normalize()
	bitangent = tangent.Cross(normal).Normalize()
	return
}
