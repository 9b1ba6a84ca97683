// Package shader provides concrete Shader implementations consumed by
// raster.Pipeline: the engine itself has no knowledge of any of this
// math, it only calls Vertex/Fragment (spec.md §9).
package shader

import "github.com/avluzzati/swraster/raster"

// SolidColorShader renders every pixel with a single flat color.
type SolidColorShader struct {
	Matrix raster.Matrix
	Color  raster.Color
}

func NewSolidColorShader(matrix raster.Matrix, color raster.Color) *SolidColorShader {
	return &SolidColorShader{matrix, color}
}

func (s *SolidColorShader) Vertex(v raster.Vertex) raster.VSOutput {
	return raster.VSOutput{
		Position: s.Matrix.MulPositionW(v.Position),
		Color:    s.Color,
		UV:       v.UV,
	}
}

func (s *SolidColorShader) Fragment(raster.FSInput) raster.Color {
	return s.Color
}
