package raster

import "math"

// edgeFunction is twice the signed area of triangle (a,b,c), i.e. the
// side of edge (a,b) that point c lies on: edge(a,b,c) = (c-a) x (b-a) in 2D.
func edgeFunction(a, b, c [2]float64) float64 {
	return (c[0]-a[0])*(b[1]-a[1]) - (c[1]-a[1])*(b[0]-a[0])
}

func xy(p VectorW) [2]float64 {
	return [2]float64{p.X, p.Y}
}

// barycentric computes the barycentric coordinates of p with respect to
// triangle (p1,p2,p3), each edge function divided by the triangle's signed
// twice-area so the three sum to 1.
func barycentric(p1, p2, p3, p [2]float64, area float64) (l1, l2, l3 float64) {
	l1 = edgeFunction(p2, p3, p) / area
	l2 = edgeFunction(p3, p1, p) / area
	l3 = edgeFunction(p1, p2, p) / area
	return
}

// perspectiveCorrect turns screen-space barycentrics into
// perspective-correct ones using each vertex's retained w.
func perspectiveCorrect(l1, l2, l3, w1, w2, w3 float64) (p1, p2, p3 float64) {
	denom := l1/w1 + l2/w2 + l3/w3
	p1 = (l1 / w1) / denom
	p2 = (l2 / w2) / denom
	p3 = (l3 / w3) / denom
	return
}

func lerpUV(u1, u2, u3 [2]float64, w1, w2, w3 float64) [2]float64 {
	return [2]float64{
		u1[0]*w1 + u2[0]*w2 + u3[0]*w3,
		u1[1]*w1 + u2[1]*w2 + u3[1]*w3,
	}
}

func lerpVectorW(a, b, c VectorW, wa, wb, wc float64) VectorW {
	return VectorW{
		X: a.X*wa + b.X*wb + c.X*wc,
		Y: a.Y*wa + b.Y*wb + c.Y*wc,
		Z: a.Z*wa + b.Z*wb + c.Z*wc,
		W: a.W*wa + b.W*wb + c.W*wc,
	}
}

func lerpColor(a, b, c Color, wa, wb, wc float64) Color {
	return Color{
		R: a.R*wa + b.R*wb + c.R*wc,
		G: a.G*wa + b.G*wb + c.G*wc,
		B: a.B*wa + b.B*wb + c.B*wc,
		A: a.A*wa + b.A*wb + c.A*wc,
	}
}

// rasterizeTriangle implements spec.md §4.3: bounding-box scan, signed
// area, per-pixel barycentrics with a strict-include edge test, depth
// test with a strict overwrite rule, perspective-correct attribute
// interpolation, mip selection via a 2-pixel diagonal UV sample, and the
// fragment program call.
func (p *Pipeline) rasterizeTriangle(o1, o2, o3 VSOutput) {
	p1, p2, p3 := xy(o1.Position), xy(o2.Position), xy(o3.Position)

	minX := int(math.Min(math.Min(p1[0], p2[0]), p3[0])) - 1
	minY := int(math.Min(math.Min(p1[1], p2[1]), p3[1])) - 1
	maxX := int(math.Max(math.Max(p1[0], p2[0]), p3[0])) + 1
	maxY := int(math.Max(math.Max(p1[1], p2[1]), p3[1])) + 1

	if maxX < 0 || minX >= p.width || maxY < 0 || minY >= p.height {
		return
	}
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > p.width {
		maxX = p.width
	}
	if maxY > p.height {
		maxY = p.height
	}

	area := edgeFunction(p1, p2, p3)
	if area == 0 {
		// Degenerate triangle: every barycentric coordinate would be a
		// division by zero. Skip rather than produce NaNs (spec.md §7).
		return
	}

	w1, w2, w3 := o1.Position.W, o2.Position.W, o3.Position.W

	for j := minY; j < maxY; j++ {
		for i := minX; i < maxX; i++ {
			px := [2]float64{float64(i) + 0.5, float64(j) + 0.5}
			l1, l2, l3 := barycentric(p1, p2, p3, px, area)
			if l1 < 0 || l2 < 0 || l3 < 0 {
				continue
			}

			z := l1*o1.Position.Z + l2*o2.Position.Z + l3*o3.Position.Z
			if p.DepthBuffer.Read(i, j).R <= z {
				continue
			}
			p.DepthBuffer.Write(i, j, Color{R: z, G: z, B: z, A: 1})

			pi1, pi2, pi3 := perspectiveCorrect(l1, l2, l3, w1, w2, w3)

			uv0, uv1 := p.mipFootprint(p1, p2, p3, px, area, w1, w2, w3, o1.UV, o2.UV, o3.UV)
			puvac := math.Abs((uv1[0]-uv0[0])*(uv1[1]-uv0[1])) * 0.25
			for _, s := range p.Samplers {
				s.CalculateTrilinearCoefficient(puvac)
			}

			in := FSInput{
				UV:            lerpUV(o1.UV, o2.UV, o3.UV, pi1, pi2, pi3),
				WorldPosition: lerpVectorW(o1.WorldPosition, o2.WorldPosition, o3.WorldPosition, pi1, pi2, pi3).XYZ(),
				WorldNormal:   lerpVectorW(o1.WorldNormal, o2.WorldNormal, o3.WorldNormal, pi1, pi2, pi3).XYZ(),
				WorldTangent:  lerpVectorW(o1.WorldTangent, o2.WorldTangent, o3.WorldTangent, pi1, pi2, pi3).XYZ(),
				Color:         lerpColor(o1.Color, o2.Color, o3.Color, pi1, pi2, pi3),
				Position: [2]float64{
					px[0]/float64(p.width)*2 - 1,
					px[1]/float64(p.height)*2 - 1,
				},
			}
			p.Backbuffer.Write(i, j, p.Shader.Fragment(in))
		}
	}
}

// mipFootprint estimates the UV area a single pixel covers by sampling
// perspective-corrected UV at the pixel center offset by (-1,-1) and
// (+1,+1) along the 2-pixel diagonal (spec.md §4.3 step 6).
func (p *Pipeline) mipFootprint(p1, p2, p3, px [2]float64, area, w1, w2, w3 float64, uv1, uv2, uv3 [2]float64) (uv0, uv1out [2]float64) {
	pMinus := [2]float64{px[0] - 1, px[1] - 1}
	pPlus := [2]float64{px[0] + 1, px[1] + 1}

	l1, l2, l3 := barycentric(p1, p2, p3, pMinus, area)
	c1, c2, c3 := perspectiveCorrect(l1, l2, l3, w1, w2, w3)
	uv0 = lerpUV(uv1, uv2, uv3, c1, c2, c3)

	l1, l2, l3 = barycentric(p1, p2, p3, pPlus, area)
	c1, c2, c3 = perspectiveCorrect(l1, l2, l3, w1, w2, w3)
	uv1out = lerpUV(uv1, uv2, uv3, c1, c2, c3)
	return
}
