// github.com/Ioloboss/tapestry - TrueType outlines to GPU triangle meshes
// Copyright (C) 2026  Ioloboss
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package mesh

import (
	"math"

	"seehuhn.de/go/postscript/funit"
)

// Geometric predicates.  All tests use integer arithmetic, with the
// coordinate differences promoted to 64 bits before multiplying:
// cross products of 16-bit coordinates need up to 33 bits.  Floating
// point appears only in intersectionPoint.

// toRightOf reports whether r lies to the right of the directed line
// through p and q.  With orEqual, points on the line count as right.
func toRightOf(p, q, r Vertex, orEqual bool) bool {
	x1 := int64(q.X) - int64(p.X)
	y1 := int64(q.Y) - int64(p.Y)

	x2 := int64(q.X) - int64(r.X)
	y2 := int64(q.Y) - int64(r.Y)

	if orEqual {
		return x1*y2 >= y1*x2
	}
	return x1*y2 > y1*x2
}

// segmentsIntersect reports whether the segments a-b and c-d cross.
// Segments which share an endpoint never intersect under this
// predicate.  Collinear segments intersect when they overlap in more
// than a single point; such segments only occur in buggy fonts.
func segmentsIntersect(a, b, c, d Vertex) bool {
	if a == c || a == d || b == c || b == d {
		return false
	}

	o1 := toRightOf(a, b, c, true)
	o2 := toRightOf(a, b, d, true)
	o3 := toRightOf(c, d, a, true)
	o4 := toRightOf(c, d, b, true)

	if o1 != o2 && o3 != o4 {
		return true
	}

	if cross(a, b, c) == 0 && cross(a, b, d) == 0 {
		return collinearOverlap(a, b, c, d)
	}
	return false
}

func cross(p, q, r Vertex) int64 {
	x1 := int64(q.X) - int64(p.X)
	y1 := int64(q.Y) - int64(p.Y)
	x2 := int64(r.X) - int64(p.X)
	y2 := int64(r.Y) - int64(p.Y)
	return x1*y2 - y1*x2
}

// collinearOverlap reports whether the collinear segments a-b and c-d
// share more than one point.
func collinearOverlap(a, b, c, d Vertex) bool {
	p1, p2 := int64(a.X), int64(b.X)
	p3, p4 := int64(c.X), int64(d.X)
	if a.X == b.X { // vertical: compare along y instead
		p1, p2 = int64(a.Y), int64(b.Y)
		p3, p4 = int64(c.Y), int64(d.Y)
	}
	if p1 > p2 {
		p1, p2 = p2, p1
	}
	if p3 > p4 {
		p3, p4 = p4, p3
	}
	lo := max(p1, p3)
	hi := min(p2, p4)
	return lo < hi
}

// intersectionPoint computes the crossing point of the segments a-b
// and c-d, rounded to the nearest font unit.  Only meaningful when
// segmentsIntersect is true; when both segments are vertical the
// slopes are infinite and an arbitrary midpoint on the shared line is
// returned.
func intersectionPoint(a, b, c, d Vertex) Vertex {
	if a.X == b.X && c.X == d.X {
		return Vertex{
			X:       a.X,
			Y:       (a.Y + c.Y) / 2,
			OnCurve: true,
		}
	}
	if a.Y == b.Y && c.Y == d.Y {
		return Vertex{
			X:       (a.X + c.X) / 2,
			Y:       a.Y,
			OnCurve: true,
		}
	}

	m1 := (float64(a.Y) - float64(b.Y)) / (float64(a.X) - float64(b.X))
	m2 := (float64(c.Y) - float64(d.Y)) / (float64(c.X) - float64(d.X))

	var x, y float64
	switch {
	case a.X == b.X:
		x = float64(a.X)
		y = m2*(x-float64(c.X)) + float64(c.Y)
	case c.X == d.X:
		x = float64(c.X)
		y = m1*(x-float64(a.X)) + float64(a.Y)
	default:
		x = (m1*float64(a.X) - m2*float64(c.X) + float64(c.Y) - float64(a.Y)) / (m1 - m2)
		y = m1*(x-float64(a.X)) + float64(a.Y)
	}

	return Vertex{
		X:       roundToInt16(x),
		Y:       roundToInt16(y),
		OnCurve: true,
	}
}

func roundToInt16(v float64) funit.Int16 {
	r := math.Round(v)
	if math.IsNaN(r) {
		return 0
	}
	if r > math.MaxInt16 {
		return math.MaxInt16
	}
	if r < math.MinInt16 {
		return math.MinInt16
	}
	return funit.Int16(r)
}

// insideTriangle reports whether p lies inside or on the triangle
// a, b, c.  The test is inclusive on all three edges.
func insideTriangle(a, b, c, p Vertex) bool {
	// p is inside when no edge has it strictly on the other side from
	// the rest: all three orientations are non-negative, or all three
	// are non-positive (the reversed edges are all non-negative).
	if crossNonNegative(a, b, p) && crossNonNegative(b, c, p) && crossNonNegative(c, a, p) {
		return true
	}
	return crossNonNegative(b, a, p) && crossNonNegative(c, b, p) && crossNonNegative(a, c, p)
}

// crossNonNegative is the orientation of p relative to the edge from
// u to v, with the differences taken at v.
func crossNonNegative(u, v, p Vertex) bool {
	x1 := int64(u.X) - int64(v.X)
	y1 := int64(u.Y) - int64(v.Y)
	x2 := int64(p.X) - int64(v.X)
	y2 := int64(p.Y) - int64(v.Y)
	return x1*y2 >= y1*x2
}

// segmentsEquivalent reports whether two segments consist of the same
// two vertices, in either order.
func segmentsEquivalent(a1, a2, b1, b2 Vertex) bool {
	return a1 == b1 && a2 == b2 || a1 == b2 && a2 == b1
}

type segment struct {
	first, second Vertex
}

// segmentPairsEquivalent reports whether the unordered segment pair
// {s1, s2} equals the unordered pair {o1, o2}.
func segmentPairsEquivalent(s1, s2, o1, o2 segment) bool {
	c1 := segmentsEquivalent(s1.first, s1.second, o1.first, o1.second)
	c2 := segmentsEquivalent(s2.first, s2.second, o2.first, o2.second)
	c3 := segmentsEquivalent(s1.first, s1.second, o2.first, o2.second)
	c4 := segmentsEquivalent(s2.first, s2.second, o1.first, o1.second)
	return c1 && c2 || c3 && c4
}
