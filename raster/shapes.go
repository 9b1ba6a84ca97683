package raster

// NewTriangleFromPositions builds a single-triangle Mesh from three
// positions sharing one color and a flat normal, computing tangent and
// bitangent the way the reference's loadCube helper does per vertex.
func NewTriangleFromPositions(p1, p2, p3 Vector, uv1, uv2, uv3 [2]float64, color Color) *Mesh {
	normal := p2.Sub(p1).Cross(p3.Sub(p1)).Normalize()

	v1 := Vertex{Position: p1, Normal: normal.W(0), Color: color, UV: uv1}
	v2 := Vertex{Position: p2, Normal: normal.W(0), Color: color, UV: uv2}
	v3 := Vertex{Position: p3, Normal: normal.W(0), Color: color, UV: uv3}

	tangent, bitangent := FaceTangentBitangent(v1, v2, v3, normal)
	v1.Tangent, v2.Tangent, v3.Tangent = tangent.W(0), tangent.W(0), tangent.W(0)
	v1.Bitangent, v2.Bitangent, v3.Bitangent = bitangent.W(0), bitangent.W(0), bitangent.W(0)

	return NewMesh([]Triangle{{v1, v2, v3}})
}

// NewQuad builds a two-triangle unit quad in the XY plane (z=0); its
// winding gives flat vertex normals of (0,0,-1). UVs span [0,1]^2 — the basic test surface for S3/S4-style
// perspective/mip scenarios.
func NewQuad(color Color) *Mesh {
	m := NewEmptyMesh()
	m.Append(NewTriangleFromPositions(
		Vector{-0.5, 0.5, 0}, Vector{0.5, 0.5, 0}, Vector{-0.5, -0.5, 0},
		[2]float64{0, 0}, [2]float64{1, 0}, [2]float64{0, 1},
		color,
	))
	m.Append(NewTriangleFromPositions(
		Vector{0.5, 0.5, 0}, Vector{0.5, -0.5, 0}, Vector{-0.5, -0.5, 0},
		[2]float64{1, 0}, [2]float64{1, 1}, [2]float64{0, 1},
		color,
	))
	return m
}

// NewCube builds a unit cube centered at the origin, one color per face,
// matching the layout of the reference's loadCube test helper (front,
// back, left/right, top/bottom each a distinct flat-shaded quad).
func NewCube() *Mesh {
	m := NewEmptyMesh()
	faces := []struct {
		normal      Vector
		a, b, c, d  Vector
		color       Color
	}{
		{Vector{0, 0, 1}, V(-.5, .5, .5), V(.5, .5, .5), V(.5, -.5, .5), V(-.5, -.5, .5), Color{1, 0, 0, 1}},
		{Vector{0, 0, -1}, V(.5, .5, -.5), V(-.5, .5, -.5), V(-.5, -.5, -.5), V(.5, -.5, -.5), Color{1, 1, 0, 1}},
		{Vector{1, 0, 0}, V(.5, .5, .5), V(.5, .5, -.5), V(.5, -.5, -.5), V(.5, -.5, .5), Color{0, 1, 0, 1}},
		{Vector{-1, 0, 0}, V(-.5, .5, -.5), V(-.5, .5, .5), V(-.5, -.5, .5), V(-.5, -.5, -.5), Color{0, 1, 1, 1}},
		{Vector{0, 1, 0}, V(-.5, .5, -.5), V(.5, .5, -.5), V(.5, .5, .5), V(-.5, .5, .5), Color{0, 0, 1, 1}},
		{Vector{0, -1, 0}, V(-.5, -.5, .5), V(.5, -.5, .5), V(.5, -.5, -.5), V(-.5, -.5, -.5), Color{1, 0, 1, 1}},
	}
	for _, f := range faces {
		m.Append(NewTriangleFromPositions(f.a, f.b, f.c, [2]float64{0, 0}, [2]float64{1, 0}, [2]float64{1, 1}, f.color))
		m.Append(NewTriangleFromPositions(f.a, f.c, f.d, [2]float64{0, 0}, [2]float64{1, 1}, [2]float64{0, 1}, f.color))
	}
	return m
}
