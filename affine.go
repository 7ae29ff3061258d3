package lookupcurve

import (
	"iter"
)

// Affine describes an affine transform via coefficients.
//
// If the coefficients are (a, b, c, d, e, f), then the resulting
// transformation represents this augmented matrix:
//
//	| a c e |
//	| b d f |
//	| 0 0 1 |
//
// The idea is that (A * B) * v == A * (B * v).
type Affine struct {
	N0, N1, N2, N3, N4, N5 float64
}

// Scale creates an affine transform representing non-uniform scaling with
// different scale values for x and y
func Scale(x, y float64) Affine {
	return Affine{x, 0, 0, y, 0, 0}
}

// Translate creates an affine transform representing translation.
func Translate(v Vec2) Affine {
	return Affine{1, 0, 0, 1, v.X, v.Y}
}

func (aff Affine) Mul(o Affine) Affine {
	return Affine{
		aff.N0*o.N0 + aff.N2*o.N1,
		aff.N1*o.N0 + aff.N3*o.N1,
		aff.N0*o.N2 + aff.N2*o.N3,
		aff.N1*o.N2 + aff.N3*o.N3,
		aff.N0*o.N4 + aff.N2*o.N5 + aff.N4,
		aff.N1*o.N4 + aff.N3*o.N5 + aff.N5,
	}
}

// ThenScale returns a transform that applies aff, then scales.
func (aff Affine) ThenScale(x, y float64) Affine {
	return Scale(x, y).Mul(aff)
}

// ThenTranslate returns a transform that applies aff, then translates by v.
func (aff Affine) ThenTranslate(v Vec2) Affine {
	aff.N4 += v.X
	aff.N5 += v.Y
	return aff
}

// FitRect returns a transform that maps the curve-space rectangle src onto
// the image-space rectangle dst, flipping y so that larger curve values end
// up higher in the image. Aspect ratio is not preserved.
func FitRect(src, dst Rect) Affine {
	sx, sy := 1.0, 1.0
	if w := src.Width(); w != 0 {
		sx = dst.Width() / w
	}
	if h := src.Height(); h != 0 {
		sy = dst.Height() / h
	}
	return Translate(Vec(-src.X0, -src.Y1)).
		ThenScale(sx, -sy).
		ThenTranslate(Vec(dst.X0, dst.Y0))
}

// TransformElements applies aff to every element of seq.
func TransformElements(seq iter.Seq[PathElement], aff Affine) iter.Seq[PathElement] {
	return func(yield func(PathElement) bool) {
		for el := range seq {
			if !yield(el.Transform(aff)) {
				return
			}
		}
	}
}
