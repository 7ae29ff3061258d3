package lookupcurve

import (
	"fmt"
)

// Interpolation selects how a curve is evaluated between a knot and the knot
// that follows it.
type Interpolation int

const (
	// Linear interpolates linearly between the two knots' positions.
	Linear Interpolation = iota
	// Constant holds the knot's y value until the next knot.
	Constant
	// Bezier follows a cubic Bézier shaped by the knot's right tangent and the
	// next knot's left tangent.
	Bezier
)

func (ip Interpolation) String() string {
	switch ip {
	case Linear:
		return "linear"
	case Constant:
		return "constant"
	case Bezier:
		return "bezier"
	default:
		return fmt.Sprintf("Interpolation(%d)", int(ip))
	}
}

// ParseInterpolation parses the names returned by [Interpolation.String].
func ParseInterpolation(s string) (Interpolation, error) {
	switch s {
	case "linear":
		return Linear, nil
	case "constant":
		return Constant, nil
	case "bezier":
		return Bezier, nil
	default:
		return 0, fmt.Errorf("unknown interpolation %q", s)
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (ip Interpolation) MarshalText() ([]byte, error) {
	switch ip {
	case Linear, Constant, Bezier:
		return []byte(ip.String()), nil
	default:
		return nil, fmt.Errorf("invalid interpolation %d", int(ip))
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (ip *Interpolation) UnmarshalText(b []byte) error {
	v, err := ParseInterpolation(string(b))
	if err != nil {
		return err
	}
	*ip = v
	return nil
}

// Knot is a control point of a [LookupCurve].
type Knot struct {
	// Position of the knot in curve space.
	Position Point
	// Interpolation used between this knot and the next one.
	Interpolation Interpolation
	// ID identifies the knot across modifications that change its index. It
	// is chosen by whoever creates the knot and never derived from the
	// knot's position.
	ID int
	// LeftTangent is relative to Position. A positive x is treated as 0.
	LeftTangent Vec2
	// RightTangent is relative to Position. A negative x is treated as 0.
	RightTangent Vec2
}

// DefaultKnot returns a linear knot at the origin with short horizontal
// tangents.
func DefaultKnot() Knot {
	return Knot{
		Interpolation: Linear,
		LeftTangent:   Vec(-0.1, 0),
		RightTangent:  Vec(0.1, 0),
	}
}

// LeftTangentCorrected returns the left tangent of k, corrected so that it
// points left and doesn't reach past prev. prev may be nil.
//
// A tangent that reaches past prev is scaled down, preserving its direction,
// until its x extent ends exactly at prev. This keeps a Bézier segment
// between prev and k from going backwards in x.
func (k Knot) LeftTangentCorrected(prev *Knot) Vec2 {
	if k.LeftTangent.X >= 0 {
		return Vec(0, k.LeftTangent.Y)
	}

	if prev != nil {
		minX := prev.Position.X - k.Position.X
		if k.LeftTangent.X < minX {
			return Vec(minX, k.LeftTangent.Y*(minX/k.LeftTangent.X))
		}
	}

	return k.LeftTangent
}

// RightTangentCorrected returns the right tangent of k, corrected so that it
// points right and doesn't reach past next. next may be nil.
//
// See [Knot.LeftTangentCorrected].
func (k Knot) RightTangentCorrected(next *Knot) Vec2 {
	if k.RightTangent.X <= 0 {
		return Vec(0, k.RightTangent.Y)
	}

	if next != nil {
		maxX := next.Position.X - k.Position.X
		if k.RightTangent.X > maxX {
			return Vec(maxX, k.RightTangent.Y*(maxX/k.RightTangent.X))
		}
	}

	return k.RightTangent
}

func (k Knot) String() string {
	return fmt.Sprintf("Knot{id=%d %s %s in=%s out=%s}",
		k.ID, k.Position, k.Interpolation, k.LeftTangent, k.RightTangent)
}
