package raster

// useScanlineRasterizer is always false, and nothing in the package reads
// it: SubmitMesh always uses the bounding-box edge-function rasterizer
// (rasterizeTriangle), and the horizontal scanline rasterizer below has
// no caller. The reference implementation it was ported from carries its
// scanline rasterizers behind a dead branch as well (spec.md §9, "dead
// code: alternative scanline rasterizers"); the code is kept rather than
// deleted. Only the horizontal variant exists here.
const useScanlineRasterizer = false

// horizontalScanlineRasterize rasterizes a triangle by sweeping
// horizontal scanlines from its horizontal edge toward the opposite
// vertex. It handles only triangles with two vertices on the same row and
// returns false for any other triangle; it does not split a triangle in
// two. Unlike rasterizeTriangle, scanRow samples at integer pixel
// coordinates and applies no inside-the-triangle test. It is not called
// from SubmitMesh (see useScanlineRasterizer).
func (p *Pipeline) horizontalScanlineRasterize(o1, o2, o3 VSOutput) bool {
	a, b, c := xy(o1.Position), xy(o2.Position), xy(o3.Position)
	svoA, svoB, svoC := o1, o2, o3

	switch {
	case a[1] == b[1]:
		if a[0] > b[0] {
			a, b = b, a
			svoA, svoB = svoB, svoA
		}
	case a[1] == c[1]:
		a, b, c = a, c, b
		svoA, svoB, svoC = svoA, svoC, svoB
		if a[0] > b[0] {
			a, b = b, a
			svoA, svoB = svoB, svoA
		}
	case b[1] == c[1]:
		a, b, c = b, c, a
		svoA, svoB, svoC = svoB, svoC, svoA
		if a[0] > b[0] {
			a, b = b, a
			svoA, svoB = svoB, svoA
		}
	default:
		return false
	}

	l := [2]float64{c[0] - a[0], c[1] - a[1]}
	m := [2]float64{c[0] - b[0], c[1] - b[1]}
	if abs64(l[1]) < 1e-5 || abs64(m[1]) < 1e-5 {
		return false
	}

	area := edgeFunction(a, b, c)
	if area == 0 {
		return true
	}

	steps := int((c[1] - a[1]) / l[1])
	sign := 1.0
	if steps < 0 {
		sign = -1.0
	}
	e0, e1 := a, b
	for i := 0; i < absInt(steps); i++ {
		p.scanRow(int(e0[1]), int(e0[0])-1, int(e1[0])+1, a, b, c, area, svoA, svoB, svoC)
		e0[0] += sign * l[0]
		e0[1] += sign * l[1]
		e1[0] += sign * m[0]
		e1[1] += sign * m[1]
	}
	return true
}

func (p *Pipeline) scanRow(row, x0, x1 int, a, b, c [2]float64, area float64, svoA, svoB, svoC VSOutput) {
	if row < 0 || row >= p.height {
		return
	}
	x0 = clampInt(x0, 0, p.width-1)
	x1 = clampInt(x1, 0, p.width-1)
	w1, w2, w3 := svoA.Position.W, svoB.Position.W, svoC.Position.W
	for x := x0; x <= x1; x++ {
		px := [2]float64{float64(x), float64(row)}
		l1, l2, l3 := barycentric(a, b, c, px, area)
		z := l1*svoA.Position.Z + l2*svoB.Position.Z + l3*svoC.Position.Z
		if p.DepthBuffer.Read(x, row).R <= z {
			continue
		}
		p.DepthBuffer.Write(x, row, Color{R: z, G: z, B: z, A: 1})
		pi1, pi2, pi3 := perspectiveCorrect(l1, l2, l3, w1, w2, w3)
		in := FSInput{
			UV:            lerpUV(svoA.UV, svoB.UV, svoC.UV, pi1, pi2, pi3),
			WorldPosition: lerpVectorW(svoA.WorldPosition, svoB.WorldPosition, svoC.WorldPosition, pi1, pi2, pi3).XYZ(),
			WorldNormal:   lerpVectorW(svoA.WorldNormal, svoB.WorldNormal, svoC.WorldNormal, pi1, pi2, pi3).XYZ(),
			WorldTangent:  lerpVectorW(svoA.WorldTangent, svoB.WorldTangent, svoC.WorldTangent, pi1, pi2, pi3).XYZ(),
			Color:         lerpColor(svoA.Color, svoB.Color, svoC.Color, pi1, pi2, pi3),
			Position: [2]float64{
				px[0]/float64(p.width)*2 - 1,
				px[1]/float64(p.height)*2 - 1,
			},
		}
		p.Backbuffer.Write(x, row, p.Shader.Fragment(in))
	}
}

func abs64(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
