package shader

import "github.com/avluzzati/swraster/raster"

// UnlitTextureShader renders with a single bound texture and no lighting,
// matching the teacher repo's TextureShader.
type UnlitTextureShader struct {
	Matrix  raster.Matrix
	Texture *raster.Texture
}

func NewUnlitTextureShader(matrix raster.Matrix, tex *raster.Texture) *UnlitTextureShader {
	return &UnlitTextureShader{matrix, tex}
}

func (s *UnlitTextureShader) Vertex(v raster.Vertex) raster.VSOutput {
	return raster.VSOutput{
		Position: s.Matrix.MulPositionW(v.Position),
		Color:    v.Color,
		UV:       v.UV,
	}
}

func (s *UnlitTextureShader) Fragment(in raster.FSInput) raster.Color {
	return s.Texture.Sample(in.UV[0], in.UV[1], true, true, true)
}
