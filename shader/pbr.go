package shader

import (
	"math"

	"github.com/avluzzati/swraster/raster"
)

// PBRMaterial groups the textures and factors a PBRShader samples for
// one surface, trimmed from the teacher repo's much larger PBRMaterial
// (glTF extension fields removed — not exercised by the reference
// PBRFragmentShader this shader is grounded on) down to the
// metallic-roughness core plus normal/occlusion mapping.
type PBRMaterial struct {
	BaseColorFactor raster.Color
	BaseColorMap    *raster.Texture

	NormalMap *raster.Texture

	// MetallicRoughnessOcclusionMap packs metallic (R), roughness (G),
	// occlusion (B) in one texture, mirroring the reference's "mro" map.
	MetallicRoughnessOcclusionMap *raster.Texture
	MetallicFactor                float64
	RoughnessFactor               float64
}

// PBRShader reimplements the reference's PBRFragmentShader: per-pixel
// view-ray reconstruction, tangent-space normal mapping, Fresnel-Schlick with
// roughness, and split-sum image-based lighting via a radiance/irradiance
// cubemap pair plus a BRDF LUT. The Shader interface knows nothing of
// this; raster.Pipeline only calls Vertex/Fragment.
type PBRShader struct {
	Model      raster.Matrix
	View       raster.Matrix
	Projection raster.Matrix

	CameraPosition raster.Vector
	Forward        raster.Vector
	Up             raster.Vector
	Right          raster.Vector
	NearPlane      float64
	FovX, FovY     float64

	Material PBRMaterial

	RadianceMap   *raster.Texture // environment specular cubemap
	IrradianceMap *raster.Texture // environment diffuse cubemap
	BRDFLUT       *raster.Texture // split-sum BRDF lookup, 2 channels used

	// DrawingBackground switches the fragment program to paint the
	// radiance cubemap directly, for use with Pipeline.DrawFillQuad
	// (mirrors the reference's global drawingBackground flag, made an
	// explicit field instead).
	DrawingBackground bool
}

func (s *PBRShader) mvp() raster.Matrix {
	return s.Projection.Mul(s.View.Mul(s.Model))
}

func (s *PBRShader) Vertex(v raster.Vertex) raster.VSOutput {
	return raster.VSOutput{
		Position:      s.mvp().MulPositionW(v.Position),
		WorldPosition: s.Model.MulPositionW(v.Position),
		WorldNormal:   s.Model.MulDirectionW(v.Normal),
		WorldTangent:  s.Model.MulDirectionW(v.Tangent),
		Color:         v.Color,
		UV:            v.UV,
	}
}

func tonemapReinhard(c raster.Vector) raster.Vector {
	return raster.Vector{X: 1 - math.Exp(-c.X), Y: 1 - math.Exp(-c.Y), Z: 1 - math.Exp(-c.Z)}
}

func linearToSRGB(c raster.Vector) raster.Vector {
	const invGamma = 1 / 2.2
	return raster.Vector{X: math.Pow(c.X, invGamma), Y: math.Pow(c.Y, invGamma), Z: math.Pow(c.Z, invGamma)}
}

func fresnelSchlickRoughness(cosTheta float64, f0 raster.Vector, roughness float64) raster.Vector {
	oneMinusR := 1 - roughness
	maxTerm := raster.Vector{
		X: math.Max(oneMinusR, f0.X),
		Y: math.Max(oneMinusR, f0.Y),
		Z: math.Max(oneMinusR, f0.Z),
	}
	scale := math.Pow(1-cosTheta, 5)
	return f0.Add(maxTerm.Sub(f0).MulScalar(scale))
}

func toVec3(c raster.Color) raster.Vector {
	return raster.Vector{X: c.R, Y: c.G, Z: c.B}
}

func colorFromVec3(v raster.Vector) raster.Color {
	return raster.Color{R: v.X, G: v.Y, B: v.Z, A: 1}
}

// viewRay reconstructs the per-pixel world-space view direction from NDC
// position the same way the reference does: it re-derives the camera
// frustum's half-extents at the near plane from fovx/fovy rather than
// inverting the projection matrix.
func (s *PBRShader) viewRay(ndcX, ndcY float64) raster.Vector {
	x := s.NearPlane / math.Cos(s.FovX*0.5)
	y := s.NearPlane / math.Cos(s.FovY*0.5)
	w := math.Sin(s.FovX*0.5) * x
	h := math.Sin(s.FovY*0.5) * y
	return s.Forward.Negate().MulScalar(s.NearPlane).
		Add(s.Up.MulScalar(ndcY * h)).
		Add(s.Right.MulScalar(ndcX * w)).
		Normalize()
}

func (s *PBRShader) Fragment(in raster.FSInput) raster.Color {
	v := s.viewRay(in.Position[0], in.Position[1])

	if s.DrawingBackground {
		radiance := toVec3(s.RadianceMap.SampleCubemap(v, true, true, 0))
		return colorFromVec3(linearToSRGB(tonemapReinhard(radiance)))
	}

	n := in.WorldNormal.Normalize()

	albedo := toVec3(s.Material.BaseColorMap.Sample(in.UV[0], in.UV[1], true, true, true)).Mul(toVec3(s.Material.BaseColorFactor))
	mro := toVec3(s.Material.MetallicRoughnessOcclusionMap.Sample(in.UV[0], in.UV[1], true, true, true))
	metallic := mro.X * s.Material.MetallicFactor
	roughness := mro.Y * s.Material.RoughnessFactor
	occlusion := mro.Z

	tangentNormal := toVec3(s.Material.NormalMap.Sample(in.UV[0], in.UV[1], true, true, true)).
		MulScalar(2).Sub(raster.Vector{X: 1, Y: 1, Z: 1})
	tangentNormal = tangentNormal.Mul(raster.Vector{X: 1, Y: -1, Z: 1})

	t := raster.RemoveParallelComponent(in.WorldTangent, n).Normalize()
	b := t.Cross(n).Normalize()
	n = t.MulScalar(tangentNormal.X).
		Add(b.MulScalar(tangentNormal.Y)).
		Add(n.MulScalar(tangentNormal.Z)).
		Normalize()
	r := v.Reflect(n)

	f0 := raster.Vector{X: 0.04, Y: 0.04, Z: 0.04}.MulScalar(1 - metallic).Add(albedo.MulScalar(metallic))
	ndv := math.Max(n.Dot(v), 0)
	ks := fresnelSchlickRoughness(ndv, f0, roughness)
	kd := raster.Vector{X: 1, Y: 1, Z: 1}.Sub(ks).MulScalar(1 - metallic)

	irradiance := toVec3(s.IrradianceMap.SampleCubemap(n.Negate(), true, true, 0))
	diffuse := irradiance.Mul(albedo)

	trilinear := float64(s.RadianceMap.CubemapMipCount()-1) * roughness
	radiance := toVec3(s.RadianceMap.SampleCubemap(r, true, true, trilinear))

	brdfXY := s.Material.sampleBRDF(s.BRDFLUT, ndv, roughness)

	specular := radiance.Mul(ks.MulScalar(brdfXY[0]).Add(raster.Vector{X: brdfXY[1], Y: brdfXY[1], Z: brdfXY[1]}))
	ambient := kd.Mul(diffuse).Add(specular).MulScalar(occlusion)

	return colorFromVec3(linearToSRGB(tonemapReinhard(ambient)))
}

// sampleBRDF reproduces the reference's two-lookup BRDF-LUT read: the
// scale term comes from sampling at (1-NdotV, 1-roughness), the bias
// term from (NdotV, roughness) — an asymmetry the reference itself
// flags as "fishy" but which this module preserves rather than "fixes"
// (spec.md §9: preserve undocumented reference quirks unless a
// regression suite pins the corrected behavior).
func (m *PBRMaterial) sampleBRDF(lut *raster.Texture, ndv, roughness float64) [2]float64 {
	scale := lut.Sample(1-ndv, 1-roughness, true, true, false)
	bias := lut.Sample(ndv, roughness, true, true, false)
	return [2]float64{scale.R, bias.G}
}
