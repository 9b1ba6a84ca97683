package loader

import (
	fsimplify "github.com/fogleman/simplify"

	"github.com/avluzzati/swraster/raster"
)

// Simplify decimates mesh to approximately factor of its original
// triangle count (0 < factor < 1) using github.com/fogleman/simplify's
// quadric-error-metric reduction, for producing a cheaper preview mesh
// ahead of a full-resolution render (spec.md's distilled version has no
// LOD concept; this supplements it per the --lod CLI flag). Vertex
// color/UV/tangent data does not survive simplification — the library
// operates on bare geometry — so the result carries flat per-triangle
// normals, zeroed UV/tangent and white vertex color, matching what a decimated preview
// mesh needs for a depth/silhouette pass rather than a textured one.
func Simplify(mesh *raster.Mesh, factor float64) *raster.Mesh {
	if factor <= 0 || factor >= 1 || len(mesh.Triangles) == 0 {
		return mesh
	}

	src := &fsimplify.Mesh{}
	for _, t := range mesh.Triangles {
		src.Triangles = append(src.Triangles, &fsimplify.Triangle{
			V1: &fsimplify.Vertex{Position: fsimplify.Vector{X: t.V1.Position.X, Y: t.V1.Position.Y, Z: t.V1.Position.Z}},
			V2: &fsimplify.Vertex{Position: fsimplify.Vector{X: t.V2.Position.X, Y: t.V2.Position.Y, Z: t.V2.Position.Z}},
			V3: &fsimplify.Vertex{Position: fsimplify.Vector{X: t.V3.Position.X, Y: t.V3.Position.Y, Z: t.V3.Position.Z}},
		})
	}

	reduced := src.Simplify(factor)

	out := raster.NewEmptyMesh()
	for _, t := range reduced.Triangles {
		p1 := raster.V(t.V1.Position.X, t.V1.Position.Y, t.V1.Position.Z)
		p2 := raster.V(t.V2.Position.X, t.V2.Position.Y, t.V2.Position.Z)
		p3 := raster.V(t.V3.Position.X, t.V3.Position.Y, t.V3.Position.Z)
		normal := p2.Sub(p1).Cross(p3.Sub(p1)).Normalize()
		v1 := raster.Vertex{Position: p1, Normal: normal.W(0), Color: raster.Color{R: 1, G: 1, B: 1, A: 1}}
		v2 := raster.Vertex{Position: p2, Normal: normal.W(0), Color: raster.Color{R: 1, G: 1, B: 1, A: 1}}
		v3 := raster.Vertex{Position: p3, Normal: normal.W(0), Color: raster.Color{R: 1, G: 1, B: 1, A: 1}}
		out.Add(raster.Triangle{V1: v1, V2: v2, V3: v3})
	}
	return out
}
