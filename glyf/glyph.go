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

package glyf

import (
	"seehuhn.de/go/postscript/funit"

	"github.com/Ioloboss/tapestry/parser"
)

// A Glyph is a single glyph outline, either simple or composite.
// The embedded rectangle is the bounding box from the glyph header.
type Glyph struct {
	funit.Rect16
	Data GlyphData
}

// GlyphData is either a [SimpleGlyph] or a [CompositeGlyph].
type GlyphData interface {
	isGlyphData()
}

func (SimpleGlyph) isGlyphData()    {}
func (CompositeGlyph) isGlyphData() {}

// decodeGlyph decodes a single glyph record from the "glyf" table.
// An empty record (offset equal to the next glyph's offset in "loca")
// yields a nil glyph.
func decodeGlyph(data []byte) (*Glyph, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < 10 {
		return nil, errIncompleteGlyph
	}

	numContours := int16(data[0])<<8 | int16(data[1])
	g := &Glyph{
		Rect16: funit.Rect16{
			LLx: funit.Int16(data[2])<<8 | funit.Int16(data[3]),
			LLy: funit.Int16(data[4])<<8 | funit.Int16(data[5]),
			URx: funit.Int16(data[6])<<8 | funit.Int16(data[7]),
			URy: funit.Int16(data[8])<<8 | funit.Int16(data[9]),
		},
	}

	if numContours >= 0 {
		simple := SimpleGlyph{
			NumContours: numContours,
			Encoded:     data[10:],
		}
		if err := simple.removePadding(); err != nil {
			return nil, err
		}
		g.Data = simple
	} else {
		composite, err := decodeGlyphComposite(data[10:])
		if err != nil {
			return nil, err
		}
		g.Data = *composite
	}
	return g, nil
}

// encodeLen returns the number of bytes needed to encode the glyph,
// including the glyph header and padding to an even length.
func (g *Glyph) encodeLen() int {
	if g == nil {
		return 0
	}
	var l int
	switch d := g.Data.(type) {
	case SimpleGlyph:
		l = 10 + len(d.Encoded)
	case CompositeGlyph:
		l = 10 + d.encodeLen()
	}
	return (l + 1) / 2 * 2
}

// append appends the binary representation of the glyph to buf.
func (g *Glyph) append(buf []byte) []byte {
	if g == nil {
		return buf
	}

	var numContours int16
	switch d := g.Data.(type) {
	case SimpleGlyph:
		numContours = d.NumContours
	case CompositeGlyph:
		numContours = -1
	}

	buf = append(buf,
		byte(numContours>>8), byte(numContours),
		byte(g.LLx>>8), byte(g.LLx),
		byte(g.LLy>>8), byte(g.LLy),
		byte(g.URx>>8), byte(g.URx),
		byte(g.URy>>8), byte(g.URy))

	switch d := g.Data.(type) {
	case SimpleGlyph:
		buf = append(buf, d.Encoded...)
	case CompositeGlyph:
		buf = d.append(buf)
	}

	if len(buf)%2 != 0 {
		buf = append(buf, 0)
	}
	return buf
}

var errIncompleteGlyph = &parser.InvalidFontError{
	SubSystem: "tapestry/glyf",
	Reason:    "incomplete glyph",
}
