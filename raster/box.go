package raster

import "math"

// Box is an axis-aligned bounding box, as returned by Mesh.BoundingBox.
// Adapted from the teacher repo's Box type.
type Box struct {
	Min, Max Vector
}

func (b Box) Center() Vector {
	return b.Min.Add(b.Max).MulScalar(0.5)
}

func (b Box) Size() Vector {
	return b.Max.Sub(b.Min)
}

func minComponents(a, b Vector) Vector {
	return Vector{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}

func maxComponents(a, b Vector) Vector {
	return Vector{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

// BoundingBox computes the axis-aligned bounding box of every vertex
// position in the mesh.
func (m *Mesh) BoundingBox() Box {
	if len(m.Triangles) == 0 {
		return Box{}
	}
	first := m.Triangles[0].V1.Position
	box := Box{Min: first, Max: first}
	for _, t := range m.Triangles {
		for _, v := range [3]Vertex{t.V1, t.V2, t.V3} {
			box.Min = minComponents(box.Min, v.Position)
			box.Max = maxComponents(box.Max, v.Position)
		}
	}
	return box
}
