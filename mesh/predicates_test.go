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
	"testing"

	"seehuhn.de/go/postscript/funit"
)

func vtx(x, y funit.Int16) Vertex {
	return Vertex{X: x, Y: y, OnCurve: true}
}

func TestToRightOf(t *testing.T) {
	p := vtx(10, 0)
	q := vtx(15, 100)

	if !toRightOf(p, q, vtx(20, 20), true) {
		t.Error("(20,20) should be to the right of the line (10,0)-(15,100)")
	}
	if toRightOf(p, q, vtx(5, 20), true) {
		t.Error("(5,20) should not be to the right of the line (10,0)-(15,100)")
	}
}

func TestSegmentsIntersect(t *testing.T) {
	type testCase struct {
		a, b, c, d Vertex
		want       bool
	}
	cases := []testCase{
		// vertical line crossing a horizontal line
		{vtx(186, 350), vtx(186, 0), vtx(522, 306), vtx(142, 306), true},
		// shared endpoint
		{vtx(0, 0), vtx(100, 0), vtx(100, 0), vtx(100, 100), false},
		// parallel, no crossing
		{vtx(0, 0), vtx(100, 0), vtx(0, 50), vtx(100, 50), false},
		// collinear with overlap
		{vtx(329, 50), vtx(329, 100), vtx(329, 75), vtx(329, 125), true},
		// collinear, touching in one point only
		{vtx(0, 0), vtx(50, 0), vtx(50, 0), vtx(100, 0), false},
	}
	for i, c := range cases {
		if got := segmentsIntersect(c.a, c.b, c.c, c.d); got != c.want {
			t.Errorf("case %d: segmentsIntersect = %v, want %v", i, got, c.want)
		}
	}
}

func TestIntersectionPoint(t *testing.T) {
	got := intersectionPoint(vtx(186, 350), vtx(186, 0), vtx(522, 306), vtx(142, 306))
	if got.X != 186 || got.Y != 306 {
		t.Errorf("intersection = (%d,%d), want (186,306)", got.X, got.Y)
	}

	got = intersectionPoint(vtx(540, 628), vtx(142, 628), vtx(186, 670), vtx(186, 344))
	if got.X != 186 || got.Y != 628 {
		t.Errorf("intersection = (%d,%d), want (186,628)", got.X, got.Y)
	}
}

func TestIntersectionPointBothVertical(t *testing.T) {
	a, b := vtx(329, 50), vtx(329, 100)
	c, d := vtx(329, 75), vtx(329, 125)

	if !segmentsIntersect(a, b, c, d) {
		t.Fatal("overlapping vertical segments should intersect")
	}
	got := intersectionPoint(a, b, c, d)
	if got.X != 329 || got.Y != 62 {
		t.Errorf("intersection = (%d,%d), want (329,62)", got.X, got.Y)
	}
}

func TestInsideTriangle(t *testing.T) {
	a, b, c := vtx(0, 0), vtx(100, 0), vtx(50, 100)

	if !insideTriangle(a, b, c, vtx(50, 30)) {
		t.Error("(50,30) should be inside the triangle")
	}
	if insideTriangle(a, b, c, vtx(0, 100)) {
		t.Error("(0,100) should be outside the triangle")
	}
	// vertices count as inside (the test is inclusive)
	if !insideTriangle(a, b, c, a) {
		t.Error("a triangle corner should pass the inclusive test")
	}
}

func TestSegmentPairsEquivalent(t *testing.T) {
	s1 := segment{vtx(186, 670), vtx(186, 344)}
	s2 := segment{vtx(540, 628), vtx(142, 628)}

	if !segmentPairsEquivalent(s1, s2, s2, s1) {
		t.Error("swapped segment pairs should be equivalent")
	}
	if !segmentPairsEquivalent(s1, s2, s1, s2) {
		t.Error("identical segment pairs should be equivalent")
	}
	s3 := segment{vtx(0, 0), vtx(1, 1)}
	if segmentPairsEquivalent(s1, s2, s1, s3) {
		t.Error("different segment pairs should not be equivalent")
	}
}

func TestDirectionOf(t *testing.T) {
	// y-down clockwise square, listed counter-clockwise for y-up
	vertices := []Vertex{vtx(0, 0), vtx(100, 0), vtx(100, 100), vtx(0, 100)}
	indices := []int{0, 1, 2, 3}

	if got := directionOf(indices, vertices, true); got != counterClockwise {
		t.Errorf("direction = %v, want counterClockwise", got)
	}

	reversed := []int{3, 2, 1, 0}
	if got := directionOf(reversed, vertices, true); got != clockwise {
		t.Errorf("direction of reversed = %v, want clockwise", got)
	}
}

func TestContainsVertex(t *testing.T) {
	vertices := []Vertex{vtx(0, 0), vtx(100, 0), vtx(100, 100), vtx(0, 100)}
	c := &contour{indices: []int{0, 1, 2, 3}}

	if !c.containsVertex(vertices, vtx(50, 50)) {
		t.Error("(50,50) should be inside the square")
	}
	if c.containsVertex(vertices, vtx(150, 50)) {
		t.Error("(150,50) should be outside the square")
	}
	if c.containsVertex(vertices, vtx(-1, 50)) {
		t.Error("(-1,50) should be outside the square")
	}
}
