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

	"golang.org/x/exp/slices"

	"github.com/Ioloboss/tapestry/glyf"
)

// FromOutline converts the decoded contours of a simple glyph into a
// triangle mesh.  On failure the returned error is a [GlyphError].
func FromOutline(o *glyf.SimpleOutline) (*Mesh, error) {
	b := newBuilder(o.Contours)
	return b.build()
}

// builder holds the growing vertex list and the per-contour working
// state while a glyph is processed.  New vertices are appended as
// curve midpoints, intersection points and Bézier triangle corners
// are minted; existing vertices are never moved.
type builder struct {
	vertices []Vertex
	contours []*contour
}

func newBuilder(cc []glyf.Contour) *builder {
	b := &builder{}
	for _, points := range cc {
		start := len(b.vertices)
		for _, pt := range points {
			b.vertices = append(b.vertices, Vertex{X: pt.X, Y: pt.Y, OnCurve: pt.OnCurve})
		}
		indices := make([]int, len(points))
		for i := range indices {
			indices[i] = start + i
		}
		c := &contour{indices: indices}
		c.dir = directionOf(indices, b.vertices, false)
		b.contours = append(b.contours, c)
	}
	return b
}

func (b *builder) build() (*Mesh, error) {
	m := &Mesh{}

	b.reconcileDirections()
	b.insertMidpoints()
	b.resolveOffCurve(m)
	b.splitSelfIntersections()
	if err := b.channelHoles(); err != nil {
		return nil, err
	}
	b.dropCoincident()
	b.recount()
	if err := b.earClip(m); err != nil {
		return nil, err
	}

	m.Vertices = b.vertices
	return m, nil
}

// findParent returns the index of the innermost contour enclosing
// contour ci, or -1.  If cwOnly, only clockwise contours are
// considered as candidates.
func (b *builder) findParent(ci int, cwOnly bool) int {
	c := b.contours[ci]
	parent := -1
	for j, candidate := range b.contours {
		if j == ci || cwOnly && candidate.dir != clockwise {
			continue
		}
		if !c.inside(candidate, b.vertices) {
			continue
		}
		if parent < 0 || candidate.inside(b.contours[parent], b.vertices) {
			parent = j
		}
	}
	return parent
}

// reconcileDirections fixes the winding of contours in fonts which do
// not follow the alternating fill/hole convention.  The expected
// direction follows the nesting depth: outermost contours are
// clockwise, their children counter-clockwise, and so on.  A contour
// which geometrically intersects another keeps its declared winding,
// since nesting depth is not well defined for it.
func (b *builder) reconcileDirections() {
	n := len(b.contours)

	parents := make([]int, n)
	for i := range parents {
		parents[i] = b.findParent(i, false)
	}

	expected := make([]direction, n)
	assigned := make([]bool, n)
	remaining := n
	for remaining > 0 {
		progress := false
		for i, c := range b.contours {
			if assigned[i] {
				continue
			}
			p := parents[i]
			switch {
			case p < 0:
				expected[i] = clockwise
			case assigned[p]:
				if c.intersectsAny(i, b.contours, b.vertices) {
					expected[i] = c.dir
				} else {
					expected[i] = expected[p].opposite()
				}
			default:
				continue
			}
			assigned[i] = true
			remaining--
			progress = true
		}
		if !progress {
			// parent cycles can only come from degenerate duplicate
			// contours; keep their declared winding
			for i, c := range b.contours {
				if !assigned[i] {
					expected[i] = c.dir
					assigned[i] = true
					remaining--
				}
			}
		}
	}

	for i, c := range b.contours {
		if expected[i] != c.dir {
			slices.Reverse(c.indices)
			c.dir = directionOf(c.indices, b.vertices, true)
		}
	}
}

// insertMidpoints splices a synthetic on-curve vertex between every
// pair of adjacent off-curve points.  TrueType outlines leave these
// on-curve midpoints implicit.
func (b *builder) insertMidpoints() {
	for _, c := range b.contours {
		for pos := 0; pos < len(c.indices); pos++ {
			idx := c.indices[pos]
			if idx == tombstone {
				continue
			}
			prevIdx, ok := ringPrev(c.indices, pos)
			if !ok {
				continue
			}
			v := b.vertices[idx]
			pv := b.vertices[prevIdx]
			if v.OnCurve || pv.OnCurve {
				continue
			}
			mid := Vertex{
				X:       (v.X + pv.X) / 2,
				Y:       (v.Y + pv.Y) / 2,
				OnCurve: true,
			}
			midIdx := len(b.vertices)
			b.vertices = append(b.vertices, mid)
			c.indices = slices.Insert(c.indices, pos, midIdx)
		}
	}
}

// resolveOffCurve removes off-curve control points from the contours
// and emits one Bézier triangle per control point.  The triangle
// corners are fresh vertex copies carrying the Loop–Blinn UVs
// P→(1,1), V→(0.5,0), N→(0,0).
//
// A convex control point bulges away from the filled region, so the
// chord P-N replaces the two curve segments in the contour polygon.
// If the chord would cross the contour elsewhere, the control point
// is instead pulled inward by a quarter of each neighbour delta to
// keep the polygon simple.  A concave control point leaves the chord
// inside the filled region and the contour is left unchanged.
func (b *builder) resolveOffCurve(m *Mesh) {
	for _, c := range b.contours {
		length := len(c.indices)
		for pos := 0; pos < length; pos++ {
			idx := c.indices[pos]
			if idx == tombstone {
				continue
			}
			v := b.vertices[idx].withUV(0.5, 0)
			if v.OnCurve {
				continue
			}
			prevIdx, ok := ringPrev(c.indices, pos)
			if !ok {
				continue
			}
			nextIdx, ok := ringNext(c.indices, pos)
			if !ok {
				continue
			}
			pv := b.vertices[prevIdx].withUV(1, 1)
			nv := b.vertices[nextIdx].withUV(0, 0)

			if toRightOf(pv, v, nv, true) { // convex
				intersects := false
				for inPos, inIdx := range c.indices {
					if inIdx == tombstone {
						continue
					}
					inNextIdx, ok := ringNext(c.indices, inPos)
					if !ok {
						continue
					}
					if segmentsIntersect(b.vertices[inIdx], b.vertices[inNextIdx], pv, nv) {
						intersects = true
					}
				}

				newIdx := len(b.vertices)
				if intersects {
					nx := float64(v.X) + 0.25*(float64(pv.X)-float64(v.X)) + 0.25*(float64(nv.X)-float64(v.X))
					ny := float64(v.Y) + 0.25*(float64(pv.Y)-float64(v.Y)) + 0.25*(float64(nv.Y)-float64(v.Y))
					b.vertices = append(b.vertices, Vertex{
						X:       roundToInt16(nx),
						Y:       roundToInt16(ny),
						OnCurve: true,
					})
				}

				m.Convex = append(m.Convex, uint32(len(b.vertices)))
				b.vertices = append(b.vertices, nv)
				m.Convex = append(m.Convex, uint32(len(b.vertices)))
				b.vertices = append(b.vertices, v)
				m.Convex = append(m.Convex, uint32(len(b.vertices)))
				b.vertices = append(b.vertices, pv)

				if intersects {
					c.indices[pos] = newIdx
				} else {
					c.indices[pos] = tombstone
					c.removed++
				}
			} else { // concave
				m.Concave = append(m.Concave, uint32(len(b.vertices)))
				b.vertices = append(b.vertices, pv)
				m.Concave = append(m.Concave, uint32(len(b.vertices)))
				b.vertices = append(b.vertices, v)
				m.Concave = append(m.Concave, uint32(len(b.vertices)))
				b.vertices = append(b.vertices, nv)
			}
		}
	}
}

// splitSelfIntersections repairs contours which cross themselves.  A
// crossing pair of segments shows up twice in the quadratic scan; on
// the second sighting a vertex is minted at the intersection point,
// the loop between the two crossing positions is cut out into a new
// contour, and the remaining contour is closed through the new
// vertex.  The scan restarts on the modified contour until no
// crossing remains.
func (b *builder) splitSelfIntersections() {
	ci := 0
	for ci < len(b.contours) {
		c := b.contours[ci]
		if !b.splitFirstIntersection(c) {
			ci++
		}
	}
}

func (b *builder) splitFirstIntersection(c *contour) bool {
	var firstPos int
	var firstSeg1, firstSeg2 segment
	haveFirst := false

	for pos, idx := range c.indices {
		if idx == tombstone {
			continue
		}
		v1 := b.vertices[idx]
		nextIdx, ok := ringNext(c.indices, pos)
		if !ok {
			continue
		}
		v2 := b.vertices[nextIdx]

		for inPos, inIdx := range c.indices {
			if inIdx == tombstone {
				continue
			}
			v3 := b.vertices[inIdx]
			inNextIdx, ok := ringNext(c.indices, inPos)
			if !ok {
				continue
			}
			v4 := b.vertices[inNextIdx]

			if !segmentsIntersect(v1, v2, v3, v4) {
				continue
			}
			if !haveFirst {
				haveFirst = true
				firstPos = pos + 1
				firstSeg1 = segment{v1, v2}
				firstSeg2 = segment{v3, v4}
				continue
			}
			if !segmentPairsEquivalent(segment{v1, v2}, segment{v3, v4}, firstSeg1, firstSeg2) {
				continue
			}

			secondPos := pos + 1
			ip := intersectionPoint(v1, v2, v3, v4)
			ipIdx := len(b.vertices)
			b.vertices = append(b.vertices, ip)

			endPart := slices.Clone(c.indices[secondPos:])
			midPart := slices.Clone(c.indices[firstPos:secondPos])

			c.indices = slices.Clone(c.indices[:firstPos])
			c.indices = append(c.indices, ipIdx)
			c.indices = append(c.indices, endPart...)
			c.dir = directionOf(c.indices, b.vertices, true)

			midPart = append(midPart, ipIdx)
			b.contours = append(b.contours, &contour{
				indices: midPart,
				dir:     directionOf(midPart, b.vertices, true),
			})
			return true
		}
	}
	return false
}

// channelHoles merges every hole into its parent contour through a
// zero-width bridge, so that ear clipping sees a single simply
// connected polygon.  A hole whose parent cannot be found is reversed
// once; if that does not make it clockwise the glyph fails.
func (b *builder) channelHoles() error {
	n := len(b.contours)

	parents := make([]int, n)
	for i := range parents {
		parents[i] = -1
	}
	for i, c := range b.contours {
		if c.dir != counterClockwise {
			continue
		}
		parent := b.findParent(i, true)
		if parent < 0 {
			slices.Reverse(c.indices)
			c.dir = directionOf(c.indices, b.vertices, true)
			if c.dir == counterClockwise {
				return HoleWithoutParent
			}
			continue
		}
		parents[i] = parent
	}

	channeled := make([]bool, len(b.vertices))
	for ci := 0; ci < n; ci++ {
		c := b.contours[ci]
		if c.dir != counterClockwise {
			continue
		}
		parent := b.contours[parents[ci]]

		bestDist := int64(math.MaxInt64)
		bestHolePos := -1
		bestParentPos := -1
		for holePos, holeIdx := range c.indices {
			if holeIdx == tombstone {
				continue
			}
			hv := b.vertices[holeIdx]
			if !hv.OnCurve || channeled[holeIdx] {
				continue
			}
			for parentPos, parentIdx := range parent.indices {
				if parentIdx == tombstone {
					continue
				}
				pv := b.vertices[parentIdx]
				if !pv.OnCurve || channeled[parentIdx] {
					continue
				}
				dx := int64(hv.X) - int64(pv.X)
				dy := int64(hv.Y) - int64(pv.Y)
				dist := dx*dx + dy*dy
				if dist >= bestDist {
					continue
				}
				if b.channelBlocked(hv, pv, ci, parents) {
					continue
				}
				bestDist = dist
				bestHolePos = holePos
				bestParentPos = parentPos
			}
		}
		if bestHolePos < 0 {
			return NoValidChannel
		}

		holeIdx := c.indices[bestHolePos]
		parentIdx := parent.indices[bestParentPos]
		channeled[holeIdx] = true
		channeled[parentIdx] = true

		// re-root the hole at the channel vertex and close it
		hole := slices.Clone(c.indices[bestHolePos:])
		hole = append(hole, c.indices[:bestHolePos]...)
		if first, ok := ringNext(hole, len(hole)-1); ok {
			hole = append(hole, first)
		}

		// splice: parent prefix, P, hole loop, P, parent rest
		after := slices.Clone(parent.indices[bestParentPos:])
		spliced := slices.Clone(parent.indices[:bestParentPos])
		if first, ok := ringNext(after, len(after)-1); ok {
			spliced = append(spliced, first)
		}
		spliced = append(spliced, hole...)
		spliced = append(spliced, after...)

		parent.indices = spliced
		parent.removed += c.removed
	}
	return nil
}

// channelBlocked reports whether the candidate bridge from hv to pv
// crosses a segment of the hole itself, a sibling hole with the same
// parent, or the parent contour.
func (b *builder) channelBlocked(hv, pv Vertex, ci int, parents []int) bool {
	for otherIdx, other := range b.contours {
		if otherIdx != parents[ci] && parents[otherIdx] != parents[ci] {
			continue
		}
		for pos, idx := range other.indices {
			if idx == tombstone {
				continue
			}
			nextIdx, ok := ringNext(other.indices, pos)
			if !ok {
				continue
			}
			if segmentsIntersect(hv, pv, b.vertices[idx], b.vertices[nextIdx]) {
				return true
			}
		}
	}
	return false
}

// dropCoincident tombstones every vertex which has the same position
// as its immediate live predecessor.
func (b *builder) dropCoincident() {
	for _, c := range b.contours {
		for pos := 0; pos < len(c.indices); pos++ {
			idx := c.indices[pos]
			if idx == tombstone {
				continue
			}
			prevIdx, ok := ringPrev(c.indices, pos)
			if !ok {
				continue
			}
			if b.vertices[idx].samePosition(b.vertices[prevIdx]) {
				c.indices[pos] = tombstone
				c.removed++
			}
		}
	}
}

// recount re-derives the removed counters from the tombstones, after
// channeling has spliced index lists around.
func (b *builder) recount() {
	for _, c := range b.contours {
		nones := 0
		for _, idx := range c.indices {
			if idx == tombstone {
				nones++
			}
		}
		c.removed = nones
	}
}

// earClip triangulates every clockwise contour.  Counter-clockwise
// contours have been folded into their parents by channeling and are
// skipped.  A triangle P,C,N is an ear when the corner at C turns
// clockwise and no other contour vertex lies inside it or on its
// edges (vertices at the position of P, C or N are ignored); accepted
// ears are emitted as (N,C,P), which has non-negative signed area in
// font units, i.e. counter-clockwise with y pointing up.
func (b *builder) earClip(m *Mesh) error {
	for _, c := range b.contours {
		if c.dir == counterClockwise {
			continue
		}
		length := len(c.indices)
		current := 0
		last := -1
		for c.removed < length-2 {
			if current == last {
				return StuckInTriangulation
			}
			centreIdx := c.indices[current]
			if centreIdx == tombstone {
				current = (current + 1) % length
				continue
			}
			prevIdx, ok := ringPrev(c.indices, current)
			if !ok {
				return StuckInTriangulation
			}
			nextIdx, ok := ringNext(c.indices, current)
			if !ok {
				return StuckInTriangulation
			}

			centrePt := b.vertices[centreIdx]
			prevPt := b.vertices[prevIdx]
			nextPt := b.vertices[nextIdx]

			if toRightOf(prevPt, centrePt, nextPt, true) { // clockwise corner
				allOutside := true
				for _, idx := range c.indices {
					if idx == tombstone {
						continue
					}
					pt := b.vertices[idx]
					if pt.samePosition(prevPt) || pt.samePosition(centrePt) || pt.samePosition(nextPt) {
						continue
					}
					if insideTriangle(prevPt, centrePt, nextPt, pt) {
						allOutside = false
						break
					}
				}
				if allOutside {
					m.Interior = append(m.Interior, uint32(nextIdx), uint32(centreIdx), uint32(prevIdx))
					c.removed++
					last = current
					c.indices[current] = tombstone
				}
			}

			current = (current + 1) % length
			if last == -1 {
				last = 0
			}
		}
	}
	return nil
}
