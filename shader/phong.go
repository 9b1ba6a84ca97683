package shader

import (
	"math"

	"github.com/avluzzati/swraster/raster"
)

// PhongShader implements Phong shading with an optional base-color
// texture, matching the teacher repo's PhongShader.
type PhongShader struct {
	ModelMatrix    raster.Matrix
	MVPMatrix      raster.Matrix
	LightDirection raster.Vector
	CameraPosition raster.Vector
	AmbientColor   raster.Color
	DiffuseColor   raster.Color
	SpecularColor  raster.Color
	Texture        *raster.Texture
	SpecularPower  float64
}

func NewPhongShader(model, mvp raster.Matrix, lightDir, cameraPos raster.Vector) *PhongShader {
	return &PhongShader{
		ModelMatrix:    model,
		MVPMatrix:      mvp,
		LightDirection: lightDir,
		CameraPosition: cameraPos,
		AmbientColor:   raster.Color{R: 0.2, G: 0.2, B: 0.2, A: 1},
		DiffuseColor:   raster.Color{R: 0.8, G: 0.8, B: 0.8, A: 1},
		SpecularColor:  raster.Color{R: 1, G: 1, B: 1, A: 1},
		SpecularPower:  32,
	}
}

func (s *PhongShader) Vertex(v raster.Vertex) raster.VSOutput {
	worldPos := s.ModelMatrix.MulPositionW(v.Position)
	return raster.VSOutput{
		Position:      s.MVPMatrix.MulPositionW(v.Position),
		WorldPosition: worldPos,
		WorldNormal:   s.ModelMatrix.MulDirectionW(v.Normal),
		WorldTangent:  s.ModelMatrix.MulDirectionW(v.Tangent),
		Color:         v.Color,
		UV:            v.UV,
	}
}

func (s *PhongShader) Fragment(in raster.FSInput) raster.Color {
	n := in.WorldNormal.Normalize()
	l := s.LightDirection.Negate().Normalize()
	viewDir := s.CameraPosition.Sub(in.WorldPosition).Normalize()

	diffuseTerm := clampPositive(n.Dot(l))
	reflectDir := l.Negate().Reflect(n)
	specTerm := 0.0
	if diffuseTerm > 0 {
		specTerm = math.Pow(clampPositive(reflectDir.Dot(viewDir)), s.SpecularPower)
	}

	base := in.Color
	if s.Texture != nil {
		base = s.Texture.Sample(in.UV[0], in.UV[1], true, true, true)
	}

	color := s.AmbientColor.Add(s.DiffuseColor.MulScalar(diffuseTerm)).Mul(base)
	color = color.Add(s.SpecularColor.MulScalar(specTerm))
	color.A = base.A
	return color
}

func clampPositive(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
