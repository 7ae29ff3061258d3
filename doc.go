// Package lookupcurve provides single-valued 2D lookup curves: curves that map
// every x to exactly one y. They are meant for designer-tunable responses such
// as easing functions, gain curves, and envelopes.
//
// # Knots and segments
//
// A [LookupCurve] is defined by [Knot] values kept sorted by their x position.
// The part of the curve between two consecutive knots is a [Segment], and the
// left knot's [Interpolation] decides its shape:
//
//   - [Constant] holds the left knot's y until the next knot.
//   - [Linear] interpolates linearly between the knots.
//   - [Bezier] follows a cubic Bézier whose inner control points are the left
//     knot's right tangent and the right knot's left tangent.
//
// Before x of the first knot and after x of the last knot, the curve continues
// flat. An empty curve is 0 everywhere.
//
// # Tangent correction
//
// Tangents are stored as the user provides them, but read through
// [Knot.LeftTangentCorrected] and [Knot.RightTangentCorrected]. Left tangents
// must point left and right tangents must point right, and neither may reach
// past the neighboring knot; tangents that do are scaled down while keeping
// their direction. This guarantees that x is monotonic along every Bézier
// segment, so that each x has a single y.
//
// # Evaluation
//
// [LookupCurve.FindYGivenX] binary searches for the segment containing x. For
// Bézier segments, the parameter t at which the segment reaches x is found with
// Newton's method on the segment's polynomial form, [CubicSegment]. Newton's
// method is capped at [NewtonMaxIterations] iterations; when it doesn't
// converge, for example at vertical tangents, the parameter is bracketed on
// [0, 1] using the ITP method instead. [LookupCurve.FindYGivenXConverged]
// reports which of the two happened.
//
// # Editing
//
// [LookupCurve.ModifyKnot], [LookupCurve.InsertKnot], and
// [LookupCurve.DeleteKnot] keep the knots sorted. Because modifying a knot may
// move it to a different index, ModifyKnot returns the new index. For
// references that outlive a single modification, knots carry an ID chosen by
// their creator, see [LookupCurve.IndexOfID] and [LookupCurve.NextID].
//
// None of the methods are safe for concurrent use with a modification of the
// same curve. Callers that share a curve between goroutines must synchronize
// modifications themselves.
//
// # Previews
//
// [LookupCurve.PathElements] describes the curve as a path of lines and cubic
// Béziers, which [SVG] and [WriteSVG] turn into SVG path data. [FitRect] maps
// the curve's [LookupCurve.BoundingBox] onto an image.
//
// Encoding curves as files is provided by the curvefile subpackage.
package lookupcurve
