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

// Package mesh converts TrueType glyph outlines into triangle meshes
// for GPU rendering.
//
// The interior of a glyph is triangulated by ear clipping; the curved
// parts are emitted as Bézier triangles whose UV coordinates drive a
// Loop–Blinn style fragment shader: the shader evaluates u²−v and
// discards fragments on one side of the curve, positive for convex
// triangles and negative for concave ones.
package mesh

import (
	"seehuhn.de/go/postscript/funit"
)

// A Vertex is a point of a glyph mesh, in font design units.
// UV carries the Loop–Blinn curve coordinates; vertices which are not
// part of a Bézier triangle have UV = {0, 0}.
type Vertex struct {
	X, Y    funit.Int16
	OnCurve bool
	UV      [2]float32
}

func (v Vertex) samePosition(w Vertex) bool {
	return v.X == w.X && v.Y == w.Y
}

func (v Vertex) withUV(u, w float32) Vertex {
	v.UV = [2]float32{u, w}
	return v
}

// A Mesh is the triangulated form of a glyph outline.
//
// Interior triangles cover the straight-edged inside of the glyph and
// are front-facing under the counter-clockwise-is-front convention.
// Convex and Concave contain the Bézier triangles for the curved
// parts; their winding is encoded by UV assignment, not orientation.
// All three index lists refer to Vertices in groups of three.
type Mesh struct {
	Vertices []Vertex
	Interior []uint32
	Convex   []uint32
	Concave  []uint32
}

// GlyphError describes why a glyph outline could not be converted
// into a mesh.  These errors are per-glyph and recoverable: a font
// containing such a glyph still loads.
type GlyphError int

// The ways in which outline conversion can fail.
const (
	// HoleWithoutParent means a counter-clockwise contour has no
	// enclosing clockwise contour, and reversing it did not make it
	// clockwise either.
	HoleWithoutParent GlyphError = iota + 1

	// StuckInTriangulation means a full pass over a contour removed
	// no ear.
	StuckInTriangulation

	// NoValidChannel means no bridge between a hole and its parent
	// contour could be found.
	NoValidChannel
)

func (e GlyphError) Error() string {
	switch e {
	case HoleWithoutParent:
		return "mesh: hole without parent contour"
	case StuckInTriangulation:
		return "mesh: stuck in triangulation"
	case NoValidChannel:
		return "mesh: no valid channel between hole and parent"
	default:
		return "mesh: unknown error"
	}
}
