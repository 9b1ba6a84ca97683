package raster

import "math"

// Matrix is a row-major 4x4 matrix. Adapted from the teacher repo's
// Matrix type, trimmed to the operations the pipeline and the PBR shader
// actually exercise.
type Matrix struct {
	X00, X01, X02, X03 float64
	X10, X11, X12, X13 float64
	X20, X21, X22, X23 float64
	X30, X31, X32, X33 float64
}

func Identity() Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func Translate(v Vector) Matrix {
	return Matrix{
		1, 0, 0, v.X,
		0, 1, 0, v.Y,
		0, 0, 1, v.Z,
		0, 0, 0, 1,
	}
}

func Scale(v Vector) Matrix {
	return Matrix{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

func Rotate(axis Vector, angle float64) Matrix {
	v := axis.Normalize()
	s := math.Sin(angle)
	c := math.Cos(angle)
	m := 1 - c
	return Matrix{
		m*v.X*v.X + c, m*v.X*v.Y - v.Z*s, m*v.Z*v.X + v.Y*s, 0,
		m*v.X*v.Y + v.Z*s, m*v.Y*v.Y + c, m*v.Y*v.Z - v.X*s, 0,
		m*v.Z*v.X - v.Y*s, m*v.Y*v.Z + v.X*s, m*v.Z*v.Z + c, 0,
		0, 0, 0, 1,
	}
}

// Frustum builds a perspective projection from explicit clip planes.
func Frustum(l, r, b, t, n, f float64) Matrix {
	t1 := 2 * n
	t2 := r - l
	t3 := t - b
	t4 := f - n
	return Matrix{
		t1 / t2, 0, (r + l) / t2, 0,
		0, t1 / t3, (t + b) / t3, 0,
		0, 0, (-f - n) / t4, (-t1 * f) / t4,
		0, 0, -1, 0,
	}
}

// Perspective builds a perspective projection from a vertical field of
// view (radians), aspect ratio, and near/far planes.
func Perspective(fovy, aspect, near, far float64) Matrix {
	ymax := near * math.Tan(fovy/2)
	xmax := ymax * aspect
	return Frustum(-xmax, xmax, -ymax, ymax, near, far)
}

// Orthographic builds an orthographic projection from explicit clip planes.
func Orthographic(l, r, b, t, n, f float64) Matrix {
	return Matrix{
		2 / (r - l), 0, 0, -(r + l) / (r - l),
		0, 2 / (t - b), 0, -(t + b) / (t - b),
		0, 0, -2 / (f - n), -(f + n) / (f - n),
		0, 0, 0, 1,
	}
}

// LookAt builds a view matrix placing the camera at eye, looking at
// center, with the given up direction.
func LookAt(eye, center, up Vector) Matrix {
	f := center.Sub(eye).Normalize()
	s := f.Cross(up).Normalize()
	u := s.Cross(f)
	m := Matrix{
		s.X, s.Y, s.Z, 0,
		u.X, u.Y, u.Z, 0,
		-f.X, -f.Y, -f.Z, 0,
		0, 0, 0, 1,
	}
	return m.Mul(Translate(eye.Negate()))
}

func (a Matrix) Mul(b Matrix) Matrix {
	var m Matrix
	m.X00 = a.X00*b.X00 + a.X01*b.X10 + a.X02*b.X20 + a.X03*b.X30
	m.X10 = a.X10*b.X00 + a.X11*b.X10 + a.X12*b.X20 + a.X13*b.X30
	m.X20 = a.X20*b.X00 + a.X21*b.X10 + a.X22*b.X20 + a.X23*b.X30
	m.X30 = a.X30*b.X00 + a.X31*b.X10 + a.X32*b.X20 + a.X33*b.X30
	m.X01 = a.X00*b.X01 + a.X01*b.X11 + a.X02*b.X21 + a.X03*b.X31
	m.X11 = a.X10*b.X01 + a.X11*b.X11 + a.X12*b.X21 + a.X13*b.X31
	m.X21 = a.X20*b.X01 + a.X21*b.X11 + a.X22*b.X21 + a.X23*b.X31
	m.X31 = a.X30*b.X01 + a.X31*b.X11 + a.X32*b.X21 + a.X33*b.X31
	m.X02 = a.X00*b.X02 + a.X01*b.X12 + a.X02*b.X22 + a.X03*b.X32
	m.X12 = a.X10*b.X02 + a.X11*b.X12 + a.X12*b.X22 + a.X13*b.X32
	m.X22 = a.X20*b.X02 + a.X21*b.X12 + a.X22*b.X22 + a.X23*b.X32
	m.X32 = a.X30*b.X02 + a.X31*b.X12 + a.X32*b.X22 + a.X33*b.X32
	m.X03 = a.X00*b.X03 + a.X01*b.X13 + a.X02*b.X23 + a.X03*b.X33
	m.X13 = a.X10*b.X03 + a.X11*b.X13 + a.X12*b.X23 + a.X13*b.X33
	m.X23 = a.X20*b.X03 + a.X21*b.X13 + a.X22*b.X23 + a.X23*b.X33
	m.X33 = a.X30*b.X03 + a.X31*b.X13 + a.X32*b.X23 + a.X33*b.X33
	return m
}

// MulPosition transforms b as a position (w=1) and returns the xyz
// result, dividing by w.
func (a Matrix) MulPosition(b Vector) Vector {
	r := a.MulPositionW(b)
	if r.W != 0 {
		return Vector{r.X / r.W, r.Y / r.W, r.Z / r.W}
	}
	return Vector{r.X, r.Y, r.Z}
}

// MulPositionW transforms b as a position (w=1), keeping w unnormalized.
// This is the vertex program's job per spec.md §3/§4.2: the pipeline (not
// this function) performs the divide so it can retain the original w.
func (a Matrix) MulPositionW(b Vector) VectorW {
	x := a.X00*b.X + a.X01*b.Y + a.X02*b.Z + a.X03
	y := a.X10*b.X + a.X11*b.Y + a.X12*b.Z + a.X13
	z := a.X20*b.X + a.X21*b.Y + a.X22*b.Z + a.X23
	w := a.X30*b.X + a.X31*b.Y + a.X32*b.Z + a.X33
	return VectorW{x, y, z, w}
}

// MulDirection transforms b as a direction (w=0); no translation applied.
func (a Matrix) MulDirection(b Vector) Vector {
	x := a.X00*b.X + a.X01*b.Y + a.X02*b.Z
	y := a.X10*b.X + a.X11*b.Y + a.X12*b.Z
	z := a.X20*b.X + a.X21*b.Y + a.X22*b.Z
	return Vector{x, y, z}
}

// MulDirectionW transforms b as a 4-vector with an explicit w (0 for
// normals/tangents carried in VSOutput, which are stored as VectorW).
func (a Matrix) MulDirectionW(b VectorW) VectorW {
	x := a.X00*b.X + a.X01*b.Y + a.X02*b.Z + a.X03*b.W
	y := a.X10*b.X + a.X11*b.Y + a.X12*b.Z + a.X13*b.W
	z := a.X20*b.X + a.X21*b.Y + a.X22*b.Z + a.X23*b.W
	w := a.X30*b.X + a.X31*b.Y + a.X32*b.Z + a.X33*b.W
	return VectorW{x, y, z, w}
}
