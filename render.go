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

package tapestry

import (
	"seehuhn.de/go/geom/matrix"

	"github.com/Ioloboss/tapestry/glyph"
)

// VertexRaw is the vertex layout consumed by the text shader.  The
// three index lists returned by [Font.Triangles] are drawn as
// triangle lists in three passes, with the shader's mode uniform set
// to 0 (interior), 1 (convex Bézier) and 2 (concave Bézier);
// front-face is counter-clockwise and back faces are culled.
type VertexRaw struct {
	Position [2]float32
	UV       [2]float32
	Colour   [4]float32
}

// Triangles returns the triangles of a glyph, with every vertex
// position mapped through trf.  The transform takes font design units
// to the caller's target space:
//
//	x' = trf[0]*x + trf[2]*y + trf[4]
//	y' = trf[1]*x + trf[3]*y + trf[5]
//
// Composite glyphs are assembled from their children, with index
// values offset by the running vertex count.  Glyphs without an
// outline, and glyphs whose triangulation failed, yield a single
// degenerate triangle so that a text run never stalls the pipeline.
// The returned slices are freshly allocated; the caller owns them.
func (f *Font) Triangles(gid glyph.ID, trf matrix.Matrix, colour [4]float32) (verts []VertexRaw, interior, convex, concave []uint32) {
	st := &renderState{font: f, trf: trf, colour: colour, active: make(map[glyph.ID]bool)}
	st.emit(gid, Offset{})
	if len(st.verts) == 0 {
		st.emitPlaceholder()
	}
	return st.verts, st.interior, st.convex, st.concave
}

type renderState struct {
	font   *Font
	trf    matrix.Matrix
	colour [4]float32

	// active guards against component cycles; it holds the composite
	// glyphs on the current expansion path.
	active map[glyph.ID]bool

	verts    []VertexRaw
	interior []uint32
	convex   []uint32
	concave  []uint32
}

func (st *renderState) emit(gid glyph.ID, offset Offset) {
	if int(gid) >= len(st.font.Glyphs) {
		st.emitPlaceholder()
		return
	}

	switch o := st.font.Glyphs[gid].Outline.(type) {
	case *MeshOutline:
		start := uint32(len(st.verts))
		for _, v := range o.Mesh.Vertices {
			x := float64(int32(v.X) + offset.X)
			y := float64(int32(v.Y) + offset.Y)
			st.verts = append(st.verts, VertexRaw{
				Position: [2]float32{
					float32(st.trf[0]*x + st.trf[2]*y + st.trf[4]),
					float32(st.trf[1]*x + st.trf[3]*y + st.trf[5]),
				},
				UV:     v.UV,
				Colour: st.colour,
			})
		}
		for _, i := range o.Mesh.Interior {
			st.interior = append(st.interior, i+start)
		}
		for _, i := range o.Mesh.Convex {
			st.convex = append(st.convex, i+start)
		}
		for _, i := range o.Mesh.Concave {
			st.concave = append(st.concave, i+start)
		}

	case *CompositeOutline:
		// The format forbids component cycles, but fonts in the wild
		// contain them; a glyph already on the current expansion path
		// contributes nothing.
		if st.active[gid] {
			return
		}
		st.active[gid] = true
		for _, comp := range o.Components {
			st.emit(comp.Child, Offset{
				X: offset.X + comp.Offset.X,
				Y: offset.Y + comp.Offset.Y,
			})
		}
		delete(st.active, gid)

	default: // empty or failed glyph
		st.emitPlaceholder()
	}
}

// emitPlaceholder appends a degenerate zero-area triangle.
func (st *renderState) emitPlaceholder() {
	start := uint32(len(st.verts))
	v := VertexRaw{Colour: st.colour}
	st.verts = append(st.verts, v, v, v)
	st.interior = append(st.interior, start, start+1, start+2)
}
