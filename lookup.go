package lookupcurve

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"
	"sort"
)

// ErrNaNPosition is returned by [New] for knots whose x position is NaN.
var ErrNaNPosition = errors.New("knot x position is NaN")

// LookupCurve is a 2D curve that has exactly one y value for every x.
//
// The curve is defined by knots sorted by their x position. Knots with equal
// x positions keep their relative order. Between knots, the curve is
// evaluated according to the left knot's [Interpolation]. Outside of the
// knots' range, the curve continues with the y value of the first or last
// knot.
//
// The zero value is an empty curve. Reading from a curve concurrently is
// safe, modifying it requires exclusive access.
type LookupCurve struct {
	knots []Knot
}

// New returns a curve made of knots, which may be in any order. The slice is
// copied.
//
// It returns an error wrapping [ErrNaNPosition] if any knot's x position is
// NaN.
func New(knots []Knot) (*LookupCurve, error) {
	for i, k := range knots {
		if math.IsNaN(k.Position.X) {
			return nil, fmt.Errorf("knot %d (id %d): %w", i, k.ID, ErrNaNPosition)
		}
	}
	ks := slices.Clone(knots)
	slices.SortStableFunc(ks, func(a, b Knot) int {
		return cmp.Compare(a.Position.X, b.Position.X)
	})
	return &LookupCurve{knots: ks}, nil
}

// MustNew is like [New] but panics on error.
func MustNew(knots ...Knot) *LookupCurve {
	c, err := New(knots)
	if err != nil {
		panic(err)
	}
	return c
}

// Knots returns the curve's knots in sorted order. The returned slice must
// not be modified; use [LookupCurve.ModifyKnot] instead.
func (c *LookupCurve) Knots() []Knot {
	return c.knots
}

// Len returns the number of knots.
func (c *LookupCurve) Len() int {
	return len(c.knots)
}

// Knot returns the knot at index i.
func (c *LookupCurve) Knot(i int) Knot {
	return c.knots[i]
}

// Clone returns a deep copy of the curve.
func (c *LookupCurve) Clone() *LookupCurve {
	return &LookupCurve{knots: slices.Clone(c.knots)}
}

// IndexOfID returns the index of the knot with the given ID.
func (c *LookupCurve) IndexOfID(id int) (int, bool) {
	for i, k := range c.knots {
		if k.ID == id {
			return i, true
		}
	}
	return -1, false
}

// NextID returns an ID that no knot of the curve uses.
func (c *LookupCurve) NextID() int {
	if len(c.knots) == 0 {
		return 0
	}
	id := c.knots[0].ID
	for _, k := range c.knots[1:] {
		id = max(id, k.ID)
	}
	return id + 1
}

// partition returns the index of the first knot whose x position is at least x.
func (c *LookupCurve) partition(x float64) int {
	return sort.Search(len(c.knots), func(i int) bool {
		return c.knots[i].Position.X >= x
	})
}

func (c *LookupCurve) checkIndex(i int) {
	if i < 0 || i >= len(c.knots) {
		panic(fmt.Sprintf("knot index %d out of range [0, %d)", i, len(c.knots)))
	}
}

func checkKnot(k Knot) {
	if math.IsNaN(k.Position.X) {
		panic(fmt.Sprintf("knot %d: %s", k.ID, ErrNaNPosition))
	}
}

// ModifyKnot replaces the knot at index i with v and moves it to keep the
// knots sorted. It returns the knot's new index, which differs from i if the
// knot moved past one of its neighbors.
//
// ModifyKnot panics if i is out of range or if v's x position is NaN.
func (c *LookupCurve) ModifyKnot(i int, v Knot) int {
	c.checkIndex(i)
	checkKnot(v)

	if c.knots[i].Position == v.Position {
		c.knots[i] = v
		return i
	}

	newI := c.partition(v.Position.X)
	if newI == i {
		// Moved, but not past a neighbor.
		c.knots[i] = v
		return i
	}

	c.knots = slices.Delete(c.knots, i, i+1)
	insertI := newI
	if i < newI {
		insertI--
	}
	c.knots = slices.Insert(c.knots, insertI, v)
	return insertI
}

// DeleteKnot removes the knot at index i. Knots after it shift down by one.
//
// DeleteKnot panics if i is out of range.
func (c *LookupCurve) DeleteKnot(i int) {
	c.checkIndex(i)
	c.knots = slices.Delete(c.knots, i, i+1)
}

// InsertKnot adds k to the curve and returns its index. A knot with the same
// x position as existing knots is placed after them.
//
// InsertKnot panics if k's x position is NaN.
func (c *LookupCurve) InsertKnot(k Knot) int {
	checkKnot(k)
	i := sort.Search(len(c.knots), func(i int) bool {
		return c.knots[i].Position.X > k.Position.X
	})
	c.knots = slices.Insert(c.knots, i, k)
	return i
}

// FindYGivenX returns the curve's y value at x.
//
// An empty curve is 0 everywhere. On curves with more than one knot, a NaN x
// yields NaN. Bézier segments are first solved with Newton's method; if that
// doesn't converge, the segment is solved by bracketing instead, so the
// result is finite for all finite knots.
func (c *LookupCurve) FindYGivenX(x float64) float64 {
	y, _ := c.FindYGivenXConverged(x)
	return y
}

// FindYGivenXConverged is like [LookupCurve.FindYGivenX] but also reports
// whether Newton's method converged. It is always true outside of Bézier
// segments.
func (c *LookupCurve) FindYGivenXConverged(x float64) (float64, bool) {
	n := len(c.knots)
	if n == 0 {
		return 0, true
	}
	if n == 1 {
		return c.knots[0].Position.Y, true
	}
	if math.IsNaN(x) {
		return math.NaN(), false
	}
	if x <= c.knots[0].Position.X {
		return c.knots[0].Position.Y, true
	}
	if x >= c.knots[n-1].Position.X {
		return c.knots[n-1].Position.Y, true
	}

	i := c.partition(x)
	if c.knots[i].Position.X == x {
		// Exactly on a knot; a constant segment ending here would otherwise
		// report the previous knot's value.
		return c.knots[i].Position.Y, true
	}
	return c.Segment(i - 1).FindYGivenX(x)
}

// Segment returns the segment between the knots at index i and i+1.
func (c *LookupCurve) Segment(i int) Segment {
	return Segment{
		Index: i,
		A:     c.knots[i],
		B:     c.knots[i+1],
	}
}

// Segments returns an iterator over the curve's segments, in order.
func (c *LookupCurve) Segments() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for i := 0; i+1 < len(c.knots); i++ {
			if !yield(c.Segment(i)) {
				return
			}
		}
	}
}

// BoundingBox returns the smallest rectangle that contains the curve between
// its first and last knot. It returns the zero Rect for empty curves.
func (c *LookupCurve) BoundingBox() Rect {
	if len(c.knots) == 0 {
		return Rect{}
	}
	p := c.knots[0].Position
	bbox := NewRectFromPoints(p, p)
	for _, k := range c.knots[1:] {
		bbox = bbox.UnionPoint(k.Position)
	}
	for seg := range c.Segments() {
		if seg.A.Interpolation != Bezier {
			continue
		}
		bez := seg.Bez()
		ex, n := bez.ExtremaY()
		for _, t := range ex[:n] {
			bbox = bbox.UnionPoint(bez.Eval(t))
		}
	}
	return bbox
}

// Segment is the part of a curve between two consecutive knots.
type Segment struct {
	// Index is the index of A in the curve.
	Index int
	A     Knot
	B     Knot
}

// Interpolation returns the interpolation of the segment, which is that of
// its left knot.
func (seg Segment) Interpolation() Interpolation {
	return seg.A.Interpolation
}

// Bez returns the segment as a cubic Bézier, using the knots' corrected
// tangents as control points.
func (seg Segment) Bez() CubicBez {
	return CubicBez{
		P0: seg.A.Position,
		P1: seg.A.Position.Translate(seg.A.RightTangentCorrected(&seg.B)),
		P2: seg.B.Position.Translate(seg.B.LeftTangentCorrected(&seg.A)),
		P3: seg.B.Position,
	}
}

// FindYGivenX returns the segment's y value at x, which must be between the
// x positions of A and B, and whether Newton's method converged for Bézier
// segments.
func (seg Segment) FindYGivenX(x float64) (float64, bool) {
	a, b := seg.A, seg.B
	switch a.Interpolation {
	case Constant:
		return a.Position.Y, true
	case Linear:
		s := (x - a.Position.X) / (b.Position.X - a.Position.X)
		return a.Position.Lerp(b.Position, s).Y, true
	case Bezier:
		// TODO: cache coefficients per segment, they only change when a knot
		// is modified.
		cs := seg.Bez().Segment()
		if y, ok := cs.FindYGivenX(x); ok {
			return y, true
		}
		return cs.BracketYGivenX(x), false
	default:
		panic(fmt.Sprintf("unhandled case %v", a.Interpolation))
	}
}
