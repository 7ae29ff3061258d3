package lookupcurve

import (
	"math"
	"sort"
	"testing"
)

func checkRoots(t *testing.T, roots, expected []float64) {
	t.Helper()
	if len(roots) != len(expected) {
		t.Fatalf("got %d roots, expected %d", len(roots), len(expected))
	}
	const epsilon = 1e-12
	sort.Float64s(roots)
	sort.Float64s(expected)
	for i := range roots {
		if math.Abs(roots[i]-expected[i]) > epsilon {
			t.Errorf("root %d is %v but we expected %v", i, roots[i], expected[i])
		}
	}
}

func TestSolveQuadratic(t *testing.T) {
	slice := func(roots [2]float64, n int) []float64 {
		return roots[:n]
	}
	checkRoots(t, slice(SolveQuadratic(-5.0, 0.0, 1.0)), []float64{-math.Sqrt(5), math.Sqrt(5)})
	checkRoots(t, slice(SolveQuadratic(-1.0, 0.0, 1.0)), []float64{-1, 1})
	checkRoots(t, slice(SolveQuadratic(5.0, 0.0, 1.0)), []float64{})
	checkRoots(t, slice(SolveQuadratic(5.0, 1.0, 0.0)), []float64{-5.0})
	checkRoots(t, slice(SolveQuadratic(1.0, 2.0, 1.0)), []float64{-1.0})
	checkRoots(t, slice(SolveQuadratic(0, 0, 0)), []float64{0})
	checkRoots(t, slice(SolveQuadratic(1, 0, 0)), []float64{})
}

func TestSolveITP(t *testing.T) {
	f := func(x float64) float64 { return x*x*x - x - 2.0 }
	x := SolveITP(f, 1.0, 2.0, 1e-12, f(1.0), f(2.0))
	if n := math.Abs(f(x)); n > 1e-11 {
		t.Errorf("%v > 1e-11", n)
	}

	g := func(x float64) float64 { return x*x - 2 }
	x = SolveITP(g, 0, 2, 1e-12, g(0), g(2))
	if d := math.Abs(x - math.Sqrt2); d > 1e-12 {
		t.Errorf("got %v, want %v", x, math.Sqrt2)
	}
}
