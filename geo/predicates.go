package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// epsilon is the absolute tolerance used for collinearity and boundary
// tests.
const epsilon = 1e-12

// Contains reports whether p lies inside poly or on its boundary.
//
// Points within epsilon of an edge or vertex are contained; everything else
// is decided by an even-odd ray cast over the ring.
func Contains(poly Polygon, p orb.Point) bool {
	if len(poly.ring) == 0 || !poly.bound.Pad(epsilon).Contains(p) {
		return false
	}

	for i := 0; i < poly.numEdges(); i++ {
		if a, b := poly.edge(i); onSegment(p, a, b) {
			return true
		}
	}
	return planar.RingContains(poly.ring, p)
}

// Intersects reports whether line shares at least one point with poly,
// counting both the interior and the boundary. A line that only touches
// the boundary intersects.
func Intersects(line Line, poly Polygon) bool {
	if len(line.ls) == 0 || len(poly.ring) == 0 {
		return false
	}
	if !line.bound.Intersects(poly.bound.Pad(epsilon)) {
		return false
	}

	for _, p := range line.ls {
		if Contains(poly, p) {
			return true
		}
	}

	// No vertex is inside, so the line can only meet the polygon by
	// crossing or touching one of its edges.
	for i := 0; i+1 < len(line.ls); i++ {
		a0, a1 := line.ls[i], line.ls[i+1]
		for j := 0; j < poly.numEdges(); j++ {
			b0, b1 := poly.edge(j)
			if SegmentsIntersect(a0, a1, b0, b1) {
				return true
			}
		}
	}
	return false
}

// CrossingCount returns how many times line enters poly, sampling only the
// line's vertices: it counts the maximal runs of consecutive vertices that
// Contains reports as inside. A line that starts inside counts one run from
// its first vertex.
//
// This is an approximation. A segment that passes through the polygon
// between two outside vertices is not counted.
func CrossingCount(line Line, poly Polygon) int {
	n := 0
	inside := false
	for _, p := range line.ls {
		if Contains(poly, p) {
			if !inside {
				n++
				inside = true
			}
		} else {
			inside = false
		}
	}
	return n
}

// SegmentsIntersect reports whether the closed segments (a0, a1) and
// (b0, b1) share at least one point. Touching endpoints and collinear
// overlaps count; zero-length segments behave as points.
func SegmentsIntersect(a0, a1, b0, b1 orb.Point) bool {
	d1 := orientation(b0, b1, a0)
	d2 := orientation(b0, b1, a1)
	d3 := orientation(a0, a1, b0)
	d4 := orientation(a0, a1, b1)

	if d1*d2 < 0 && d3*d4 < 0 {
		return true
	}

	return (d1 == 0 && onSegment(a0, b0, b1)) ||
		(d2 == 0 && onSegment(a1, b0, b1)) ||
		(d3 == 0 && onSegment(b0, a0, a1)) ||
		(d4 == 0 && onSegment(b1, a0, a1))
}

// orientation returns 1 if c is to the left of the directed line a->b, -1
// if it is to the right and 0 if the three points are collinear.
func orientation(a, b, c orb.Point) int {
	v := cross(a, b, c)
	switch {
	case v > epsilon:
		return 1
	case v < -epsilon:
		return -1
	default:
		return 0
	}
}

func cross(a, b, c orb.Point) float64 {
	return (b.X()-a.X())*(c.Y()-a.Y()) - (b.Y()-a.Y())*(c.X()-a.X())
}

// onSegment reports whether p lies on the closed segment (a, b).
func onSegment(p, a, b orb.Point) bool {
	if math.Abs(cross(a, b, p)) > epsilon {
		return false
	}
	return p.X() >= min(a.X(), b.X())-epsilon && p.X() <= max(a.X(), b.X())+epsilon &&
		p.Y() >= min(a.Y(), b.Y())-epsilon && p.Y() <= max(a.Y(), b.Y())+epsilon
}
