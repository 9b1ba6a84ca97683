package raster

import "math"

// Color is a float4 RGBA value in [0,1] per channel (not clamped on
// construction — intermediate shader math routinely overshoots before a
// final tonemap/clamp). It is the element type of every Texture pixel and
// the return type of fragment programs.
type Color struct {
	R, G, B, A float64
}

func NewColor(r, g, b, a float64) Color {
	return Color{r, g, b, a}
}

func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B, c.A + o.A}
}

func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

func (c Color) MulScalar(s float64) Color {
	return Color{c.R * s, c.G * s, c.B * s, c.A * s}
}

// Lerp linearly interpolates each channel toward o by t. This is the
// primitive bilinear/trilinear texture filtering and barycentric
// attribute blending are both built from.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		c.R + (o.R-c.R)*t,
		c.G + (o.G-c.G)*t,
		c.B + (o.B-c.B)*t,
		c.A + (o.A-c.A)*t,
	}
}

func (c Color) Channel(i int) float64 {
	switch i {
	case 0:
		return c.R
	case 1:
		return c.G
	case 2:
		return c.B
	default:
		return c.A
	}
}

func (c Color) RGB() Vector {
	return Vector{c.X(), c.Y(), c.Z()}
}

// X/Y/Z alias R/G/B for callers that treat a color as a direction-ish
// triple (normal maps, PBR math sampled straight out of a texture).
func (c Color) X() float64 { return c.R }
func (c Color) Y() float64 { return c.G }
func (c Color) Z() float64 { return c.B }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (c Color) Clamp01() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B), clamp01(c.A)}
}

// GammaDecode raises each color channel to 2.2, approximating sRGB to
// linear. Alpha is left untouched.
func (c Color) GammaDecode() Color {
	return Color{
		math.Pow(c.R, 2.2),
		math.Pow(c.G, 2.2),
		math.Pow(c.B, 2.2),
		c.A,
	}
}

// GammaEncode is the inverse of GammaDecode.
func (c Color) GammaEncode() Color {
	return Color{
		math.Pow(c.R, 1/2.2),
		math.Pow(c.G, 1/2.2),
		math.Pow(c.B, 1/2.2),
		c.A,
	}
}
