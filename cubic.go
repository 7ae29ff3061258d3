package lookupcurve

import (
	"math"
	"sort"
)

// CubicBez is a cubic Bézier described by its control points.
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

func (cb CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec2(cb.P0).Mul(mt * mt * mt)
	b := Vec2(cb.P1).Mul(mt * mt * 3.0)
	c := Vec2(cb.P2).Mul(mt * 3.0)
	d := Vec2(cb.P3)
	v := a.Add(b.Add(c.Add(d.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}

// Segment returns the polynomial form of the cubic.
func (c CubicBez) Segment() CubicSegment {
	return NewCubicSegment([4]Point{c.P0, c.P1, c.P2, c.P3})
}

// ExtremaY returns the parameters in (0, 1), in increasing order, at which
// the cubic's y coordinate has a local extremum.
func (c CubicBez) ExtremaY() ([2]float64, int) {
	var out [2]float64
	var outN int

	d0 := c.P1.Y - c.P0.Y
	d1 := c.P2.Y - c.P1.Y
	d2 := c.P3.Y - c.P2.Y
	roots, n := SolveQuadratic(d0, 2*(d1-d0), d0-2*d1+d2)
	for _, t := range roots[:n] {
		if t > 0.0 && t < 1.0 {
			out[outN] = t
			outN++
		}
	}
	sort.Float64s(out[:outN])
	return out, outN
}

// bezierCharMatrix maps Bézier control points to polynomial coefficients.
var bezierCharMatrix = [4][4]float64{
	{1, 0, 0, 0},
	{-3, 3, 0, 0},
	{3, -6, 3, 0},
	{-1, 3, -3, 1},
}

// CubicSegment is a cubic curve in polynomial form,
// position(t) = a + b·t + c·t² + d·t³.
type CubicSegment struct {
	Coeff [4]Vec2
}

// NewCubicSegment returns the polynomial form of the cubic Bézier with the
// control points p.
func NewCubicSegment(p [4]Point) CubicSegment {
	var seg CubicSegment
	for i, row := range bezierCharMatrix {
		var v Vec2
		for j, f := range row {
			v = v.Add(Vec2(p[j]).Mul(f))
		}
		seg.Coeff[i] = v
	}
	return seg
}

// Position returns the point at parameter t.
func (s CubicSegment) Position(t float64) Point {
	a, b, c, d := s.Coeff[0], s.Coeff[1], s.Coeff[2], s.Coeff[3]
	return Point(a.Add(b.Mul(t)).Add(c.Mul(t * t)).Add(d.Mul(t * t * t)))
}

// Velocity returns the derivative of [CubicSegment.Position] at t.
func (s CubicSegment) Velocity(t float64) Vec2 {
	b, c, d := s.Coeff[1], s.Coeff[2], s.Coeff[3]
	return b.Add(c.Mul(2 * t)).Add(d.Mul(3 * t * t))
}

const (
	// NewtonMaxError is the largest x error accepted by
	// [CubicSegment.FindYGivenX].
	NewtonMaxError = 1e-5
	// NewtonMaxIterations bounds the work done by [CubicSegment.FindYGivenX].
	NewtonMaxIterations = 8

	// newtonParamSlack is how far outside [0, 1] a parameter found by
	// Newton's method may lie and still count as on the segment.
	newtonParamSlack = 1e-9
)

// FindYGivenX returns the segment's y at x, using Newton's method to find
// the parameter t whose x matches. The initial guess is t = x.
//
// The second return value reports whether the x error reached
// [NewtonMaxError] within [NewtonMaxIterations] iterations at a t in
// [0, 1]. If it didn't, y is the best effort from the last iteration and may
// not be finite. Iteration stops early at points where the segment's x
// velocity is zero or not finite.
//
// Outside of [0, 1], x(t) may take the same value again, so a root found
// there isn't on the segment.
func (s CubicSegment) FindYGivenX(x float64) (float64, bool) {
	t := x
	var pos Point
	for range NewtonMaxIterations {
		pos = s.Position(t)
		err := pos.X - x
		if math.Abs(err) <= NewtonMaxError {
			return pos.Y, t >= -newtonParamSlack && t <= 1+newtonParamSlack
		}
		// Use the tangent line to estimate a better guess.
		slope := s.Velocity(t).X
		if slope == 0 || math.IsNaN(slope) || math.IsInf(slope, 0) {
			return pos.Y, false
		}
		t -= err / slope
	}
	return pos.Y, false
}

// bracketEpsilon is the parameter accuracy of [CubicSegment.BracketYGivenX].
const bracketEpsilon = 1e-12

// BracketYGivenX returns the segment's y at x by bracketing the parameter t
// in [0, 1].
//
// It requires x(t) to be non-decreasing on [0, 1]. x outside of
// [x(0), x(1)] is clamped to the segment's endpoints.
func (s CubicSegment) BracketYGivenX(x float64) float64 {
	f := func(t float64) float64 { return s.Position(t).X - x }
	ya, yb := f(0), f(1)
	if ya >= 0 {
		return s.Position(0).Y
	}
	if yb <= 0 {
		return s.Position(1).Y
	}
	t := SolveITP(f, 0, 1, bracketEpsilon, ya, yb)
	return s.Position(t).Y
}
