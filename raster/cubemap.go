package raster

import "math"

// cubemapFaceUV derives the cubemap face and UV from a 3D direction per
// spec.md §4.1. The branch structure and the TOP/BOTTOM fixup are kept
// byte-for-byte in semantics from the reference (which itself documents
// them as a convention, not a derivation) — see the cubemap-face-fixup
// design note in spec.md §9.
func cubemapFaceUV(d Vector) (CubemapFace, float64, float64) {
	ax, ay, az := math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z)

	var face CubemapFace
	var u, v float64

	switch {
	case ax >= ay && ax >= az:
		if d.X > 0 {
			face = FaceLeft
			u = 0.5 - d.Y/d.X
			v = 0.5 - d.Z/d.X
		} else {
			face = FaceRight
			u = 0.5 - d.Y/d.X
			v = 0.5 + d.Z/d.X
		}
	case ay > ax && ay >= az:
		if d.Y > 0 {
			face = FaceBack
			u = 0.5 + d.X/d.Y
			v = 0.5 - d.Z/d.Y
		} else {
			face = FaceFront
			u = 0.5 + d.X/d.Y
			v = 0.5 + d.Z/d.Y
		}
	default:
		if d.Z > 0 {
			face = FaceTop
			u = 0.5 - d.X/d.Z
			v = 0.5 - d.Y/d.Z
		} else {
			face = FaceBottom
			u = 0.5 + d.X/d.Z
			v = 0.5 - d.Y/d.Z
		}
	}

	u = (u + 0.5) * 0.5
	v = (v + 0.5) * 0.5

	// Fixed post-fixup: swap TOP/BOTTOM, then rotate non-pole-face UVs;
	// the TOP face (post-swap) gets a different rotation. Preserved
	// exactly per spec.md §4.1/§9 even though its derivation isn't
	// obvious from first principles.
	if face == FaceBottom {
		face = FaceTop
	} else if face == FaceTop {
		face = FaceBottom
	}
	if face != FaceBottom && face != FaceTop {
		u, v = 1-v, u
	}
	if face == FaceTop {
		u, v = 1-u, 1-v
	}

	return face, u, v
}

// SampleCubemap samples a cubemap along direction d. trilinearCoefficient
// is an explicit override (spec.md §4.1: "the passed-in coefficient
// argument overrides the texture's stored coefficient") rather than the
// texture's own mutable field, so callers that rely on a specific
// roughness-to-mip mapping (as the PBR shader does for the radiance
// cubemap) get it regardless of what the rasterizer's mip selector last
// wrote.
func (t *Texture) SampleCubemap(d Vector, bilinear, trilinear bool, trilinearCoefficient float64) Color {
	face, u, v := cubemapFaceUV(d)
	n := len(t.cubeMips)
	if n == 0 {
		return Color{}
	}

	low := clampInt(int(math.Floor(math.Max(trilinearCoefficient, 0))), 0, n-1)
	if !trilinear {
		return t.sampleCubemapLevel(u, v, face, bilinear, low)
	}
	high := clampInt(low+1, 0, n-1)
	lo := t.sampleCubemapLevel(u, v, face, bilinear, low)
	hi := t.sampleCubemapLevel(u, v, face, bilinear, high)
	return lo.Lerp(hi, fract(trilinearCoefficient))
}

func (t *Texture) sampleCubemapLevel(u, v float64, face CubemapFace, bilinear bool, level int) Color {
	lvl := t.cubeMips[level][face]
	if lvl == nil {
		return Color{}
	}
	return sampleLevel(lvl, u, v, false, bilinear)
}
