package lookupcurve

import (
	"math"
)

// SolveQuadratic finds real roots of a quadratic equation.
//
// Returns values of x for which c0 + c1 x + c2 x² = 0.0, in increasing order.
//
// If the equation is nearly linear, the root of the linear part is returned
// and the other root is dropped. If all coefficients are zero, a single 0.0 is
// returned.
func SolveQuadratic(c0, c1, c2 float64) ([2]float64, int) {
	sc0 := c0 / c2
	sc1 := c1 / c2
	if math.IsInf(sc0, 0) || math.IsInf(sc1, 0) || math.IsNaN(sc0) || math.IsNaN(sc1) {
		// c2 is zero or very small, treat as linear eqn
		root := -c0 / c1
		switch {
		case !math.IsInf(root, 0) && !math.IsNaN(root):
			return [2]float64{root}, 1
		case c0 == 0.0 && c1 == 0.0:
			return [2]float64{0}, 1
		default:
			return [2]float64{}, 0
		}
	}
	arg := sc1*sc1 - 4.0*sc0
	var root1 float64
	if math.IsInf(arg, 0) {
		// sc1 * sc1 overflowed. Find one root using sc1 x + x² = 0, the
		// other as sc0 / root1.
		root1 = -sc1
	} else {
		if arg < 0.0 {
			return [2]float64{}, 0
		} else if arg == 0.0 {
			return [2]float64{-0.5 * sc1}, 1
		}
		// See https://math.stackexchange.com/questions/866331
		root1 = -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	}
	root2 := sc0 / root1
	if math.IsInf(root2, 0) || math.IsNaN(root2) {
		return [2]float64{root1}, 1
	}
	if root2 > root1 {
		return [2]float64{root1, root2}, 2
	}
	return [2]float64{root2, root1}, 2
}

// SolveITP finds a zero crossing of f in [a, b] using the [ITP method].
//
// f must be monotonic with ya = f(a) < 0 and yb = f(b) > 0. The result is
// then within epsilon of the zero crossing. epsilon must be larger than
// 2⁻⁶³·(b − a).
//
// The tuning parameters are fixed to n0 = 1, k1 = 0.2 / (b − a) and k2 = 2.
//
// [ITP method]: https://en.wikipedia.org/wiki/ITP_Method
func SolveITP(f func(float64) float64, a, b, epsilon, ya, yb float64) float64 {
	const n0 = 1
	k1 := 0.2 / (b - a)

	nHalf := max(math.Ceil(math.Log2((b-a)/epsilon))-1, 0)
	// slack is epsilon·2^(n½+n0−j) in iteration j.
	slack := epsilon * math.Exp2(nHalf+n0)
	for b-a > 2*epsilon {
		mid := 0.5 * (a + b)
		r := slack - 0.5*(b-a)

		xf := (yb*a - ya*b) / (yb - ya)
		sigma := mid - xf
		delta := k1 * (b - a) * (b - a)
		xt := mid
		if delta <= math.Abs(sigma) {
			xt = xf + math.Copysign(delta, sigma)
		}
		x := xt
		if math.Abs(xt-mid) > r {
			x = mid - math.Copysign(r, sigma)
		}

		switch y := f(x); {
		case y > 0:
			b, yb = x, y
		case y < 0:
			a, ya = x, y
		default:
			return x
		}
		slack *= 0.5
	}
	return 0.5 * (a + b)
}
