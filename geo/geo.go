// Package geo implements the planar geometry used to relate flight tracks to
// airspace boundaries, on top of orb's point, line string and ring types.
//
// Coordinates are treated as planar (x, y) = (longitude, latitude) pairs. No
// reprojection is done, so results near the poles or across the antimeridian
// are approximations.
package geo

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

var (
	ErrEmptyLine    = errors.New("line has no points")
	ErrShortRing    = errors.New("ring has fewer than three distinct vertices")
	ErrZeroArea     = errors.New("ring has zero area")
	ErrGeometryType = errors.New("unexpected geometry type")
)

///////////////////////////////////////////////////////////////////////////
// Line

// Line is an ordered, non-empty sequence of points, e.g. a flight track in
// temporal order.
type Line struct {
	ls    orb.LineString
	bound orb.Bound
}

// NewLine copies ls into a Line. A single point is a valid (degenerate) line.
func NewLine(ls orb.LineString) (Line, error) {
	if len(ls) == 0 {
		return Line{}, ErrEmptyLine
	}
	cp := ls.Clone()
	return Line{ls: cp, bound: cp.Bound()}, nil
}

func (l Line) Len() int {
	return len(l.ls)
}

// First returns the origin of the line. It panics on the zero Line.
func (l Line) First() orb.Point {
	return l.ls[0]
}

// Last returns the destination of the line. It panics on the zero Line.
func (l Line) Last() orb.Point {
	return l.ls[len(l.ls)-1]
}

// LineString returns a copy of the line's vertices.
func (l Line) LineString() orb.LineString {
	return l.ls.Clone()
}

func (l Line) Bound() orb.Bound {
	return l.bound
}

///////////////////////////////////////////////////////////////////////////
// Polygon

// Polygon is a simple polygon given by its outer ring. The ring is always
// stored closed, its last vertex repeating the first.
type Polygon struct {
	ring  orb.Ring
	bound orb.Bound
}

// NewPolygon builds a Polygon from a ring, which may or may not be closed.
func NewPolygon(ring orb.Ring) (Polygon, error) {
	r := make(orb.Ring, 0, len(ring)+1)
	for _, p := range ring {
		// Consecutive duplicates add zero-length edges and nothing else.
		if len(r) > 0 && r[len(r)-1] == p {
			continue
		}
		r = append(r, p)
	}
	if len(r) > 1 && r[0] == r[len(r)-1] {
		r = r[:len(r)-1]
	}
	if len(r) < 3 {
		return Polygon{}, fmt.Errorf("%w: got %d", ErrShortRing, len(r))
	}
	r = append(r, r[0])

	if r.Orientation() == 0 {
		return Polygon{}, ErrZeroArea
	}
	return Polygon{ring: r, bound: r.Bound()}, nil
}

// Ring returns a copy of the closed ring.
func (p Polygon) Ring() orb.Ring {
	return p.ring.Clone()
}

func (p Polygon) Bound() orb.Bound {
	return p.bound
}

// Area returns the unsigned planar area of the ring.
func (p Polygon) Area() float64 {
	return planar.Area(p.ring)
}

func (p Polygon) numEdges() int {
	return max(len(p.ring)-1, 0)
}

// edge returns the i-th edge of the ring.
func (p Polygon) edge(i int) (orb.Point, orb.Point) {
	return p.ring[i], p.ring[i+1]
}
