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

// Package tapestry loads TrueType fonts and converts their glyph
// outlines into triangle meshes for GPU rendering.
//
// A Font is constructed once by [Read] or [ReadFile] and is read-only
// afterwards, so it may be shared between goroutines without
// synchronisation.  Every simple glyph is triangulated during load;
// composite glyphs are assembled from their children at render time.
package tapestry

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/postscript/funit"

	"github.com/Ioloboss/tapestry/cmap"
	"github.com/Ioloboss/tapestry/glyph"
	"github.com/Ioloboss/tapestry/mesh"
)

// Font contains the processed glyphs and character mappings of a
// TrueType font.  The Font owns its glyphs; composite glyphs refer to
// their children by glyph ID within the same Glyphs slice.
type Font struct {
	// Glyphs is indexed by glyph ID.
	Glyphs []*Glyph

	// Mappings are the character-to-glyph mappings of the font, with
	// the primary (best Unicode) mapping at index 0.
	Mappings []cmap.Subtable

	FamilyName string
	Subfamily  string

	UnitsPerEm uint16

	// Ascent and Descent are the typographic values from the OS/2
	// table when present, otherwise the hhea values.  Descent is
	// negative.
	Ascent  funit.Int16
	Descent funit.Int16
	LineGap funit.Int16

	// WinAscent and WinDescent are the Windows clipping metrics;
	// WinDescent is positive.
	WinAscent  funit.Int16
	WinDescent funit.Int16
}

// A Glyph is one glyph of a font, triangulated if it is simple.
type Glyph struct {
	// Bounds is the bounding box from the glyph header, in font
	// design units.
	Bounds funit.Rect16

	// Outline is one of [*MeshOutline], [*CompositeOutline],
	// [*FailedOutline], or nil for a glyph without an outline.
	Outline Outline

	LeftSideBearing funit.Int16
	AdvanceWidth    funit.Int16
}

// Outline is the render-side data of a glyph.
type Outline interface {
	isOutline()
}

// MeshOutline is the triangulated outline of a simple glyph.
type MeshOutline struct {
	Mesh *mesh.Mesh
}

// CompositeOutline assembles a glyph from translated child glyphs.
type CompositeOutline struct {
	Components []Component
}

// Component is one child of a composite glyph.
type Component struct {
	Child glyph.ID

	// Offset is the translation of the child, in font design units.
	Offset Offset

	// Trfm is the full transform of the child.  Only translations are
	// applied during rendering; a non-trivial 2x2 part is recorded
	// here and the child is rendered as if the matrix were identity.
	Trfm matrix.Matrix
}

// Offset is a translation in font design units.
type Offset struct {
	X, Y int32
}

// FailedOutline marks a glyph whose outline could not be
// triangulated.  Such glyphs render as a degenerate placeholder
// triangle.
type FailedOutline struct {
	Err mesh.GlyphError
}

func (*MeshOutline) isOutline()      {}
func (*CompositeOutline) isOutline() {}
func (*FailedOutline) isOutline()    {}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return len(f.Glyphs)
}

// GlyphFor returns the glyph ID for a character, using the primary
// mapping.  Unmapped characters yield glyph 0 (".notdef").
func (f *Font) GlyphFor(r rune) glyph.ID {
	if len(f.Mappings) == 0 {
		return 0
	}
	gid := f.Mappings[0].Lookup(r)
	if int(gid) >= len(f.Glyphs) {
		return 0
	}
	return gid
}

// CharsForGlyph returns all character codes of the primary mapping
// which map to the given glyph.
func (f *Font) CharsForGlyph(gid glyph.ID) []rune {
	if len(f.Mappings) == 0 {
		return nil
	}
	return f.Mappings[0].CodesForGlyph(gid)
}

// FailedGlyphs counts the glyphs whose triangulation failed, by
// failure kind.
func (f *Font) FailedGlyphs() map[mesh.GlyphError]int {
	counts := make(map[mesh.GlyphError]int)
	for _, g := range f.Glyphs {
		if fo, ok := g.Outline.(*FailedOutline); ok {
			counts[fo.Err]++
		}
	}
	return counts
}

// NumFailedGlyphs returns the total number of glyphs whose
// triangulation failed.
func (f *Font) NumFailedGlyphs() int {
	total := 0
	for _, n := range f.FailedGlyphs() {
		total += n
	}
	return total
}
