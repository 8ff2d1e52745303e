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
	"seehuhn.de/go/geom/matrix"

	"github.com/Ioloboss/tapestry/glyph"
)

// CompositeGlyph represents a glyph that is built from one or more
// component glyphs.  Each component references another glyph by ID and
// carries its positioning data in binary form.
type CompositeGlyph struct {
	Components   []GlyphComponent
	Instructions []byte
}

// GlyphComponent is a single component of a composite glyph.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/glyf#composite-glyph-description
type GlyphComponent struct {
	Flags      ComponentFlag
	GlyphIndex glyph.ID
	Data       []byte // raw arguments and transform values
}

// ComponentFlag controls how a component glyph is processed within a
// composite.
type ComponentFlag uint16

// The recognized values for the ComponentFlag field.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/glyf#compositeGlyphFlags
const (
	FlagArg1And2AreWords        ComponentFlag = 0x0001 // arguments are 16-bit values
	FlagArgsAreXYValues         ComponentFlag = 0x0002 // arguments are x,y offsets rather than point numbers
	FlagRoundXYToGrid           ComponentFlag = 0x0004
	FlagWeHaveAScale            ComponentFlag = 0x0008
	FlagMoreComponents          ComponentFlag = 0x0020
	FlagWeHaveAnXAndYScale      ComponentFlag = 0x0040
	FlagWeHaveATwoByTwo         ComponentFlag = 0x0080
	FlagWeHaveInstructions      ComponentFlag = 0x0100
	FlagUseMyMetrics            ComponentFlag = 0x0200
	FlagOverlapCompound         ComponentFlag = 0x0400
	FlagScaledComponentOffset   ComponentFlag = 0x0800
	FlagUnscaledComponentOffset ComponentFlag = 0x1000
)

// decodeGlyphComposite decodes a composite glyph from binary data.
func decodeGlyphComposite(data []byte) (*CompositeGlyph, error) {
	var components []GlyphComponent
	done := false
	weHaveInstructions := false
	for !done {
		if len(data) < 4 {
			return nil, errIncompleteGlyph
		}

		flags := ComponentFlag(data[0])<<8 | ComponentFlag(data[1])
		glyphIndex := uint16(data[2])<<8 | uint16(data[3])
		data = data[4:]

		if flags&FlagWeHaveInstructions != 0 {
			weHaveInstructions = true
		}

		skip := 0
		if flags&FlagArg1And2AreWords != 0 {
			skip += 4
		} else {
			skip += 2
		}
		if flags&FlagWeHaveAScale != 0 {
			skip += 2
		} else if flags&FlagWeHaveAnXAndYScale != 0 {
			skip += 4
		} else if flags&FlagWeHaveATwoByTwo != 0 {
			skip += 8
		}
		if len(data) < skip {
			return nil, errIncompleteGlyph
		}
		args := data[:skip]
		data = data[skip:]

		components = append(components, GlyphComponent{
			Flags:      flags,
			GlyphIndex: glyph.ID(glyphIndex),
			Data:       args,
		})

		done = flags&FlagMoreComponents == 0
	}

	if weHaveInstructions && len(data) >= 2 {
		L := int(data[0])<<8 | int(data[1])
		data = data[2:]
		if len(data) > L {
			data = data[:L]
		}
	} else {
		data = nil
	}

	res := &CompositeGlyph{
		Components:   components,
		Instructions: data,
	}
	return res, nil
}

func (g CompositeGlyph) encodeLen() int {
	l := 0
	for _, c := range g.Components {
		l += 4 + len(c.Data)
	}
	if len(g.Instructions) > 0 {
		l += 2 + len(g.Instructions)
	}
	return l
}

func (g CompositeGlyph) append(buf []byte) []byte {
	for i, c := range g.Components {
		flags := c.Flags &^ (FlagMoreComponents | FlagWeHaveInstructions)
		if i < len(g.Components)-1 {
			flags |= FlagMoreComponents
		}
		if len(g.Instructions) > 0 {
			flags |= FlagWeHaveInstructions
		}
		buf = append(buf,
			byte(flags>>8), byte(flags),
			byte(c.GlyphIndex>>8), byte(c.GlyphIndex))
		buf = append(buf, c.Data...)
	}
	if len(g.Instructions) > 0 {
		L := len(g.Instructions)
		buf = append(buf, byte(L>>8), byte(L))
		buf = append(buf, g.Instructions...)
	}
	return buf
}

// Components returns the component glyph IDs of a composite glyph.
// Returns nil if the glyph is simple or empty.
func (g *Glyph) Components() []glyph.ID {
	if g == nil {
		return nil
	}
	d, ok := g.Data.(CompositeGlyph)
	if !ok {
		return nil
	}
	res := make([]glyph.ID, len(d.Components))
	for i, comp := range d.Components {
		res[i] = comp.GlyphIndex
	}
	return res
}

// ComponentUnpacked provides a structured view of a glyph component.
type ComponentUnpacked struct {
	// Child is the glyph ID of the component glyph to include.
	Child glyph.ID

	// Trfm is the 2D affine transformation applied to the component.
	// Format: [xx, xy, yx, yy, dx, dy].
	Trfm matrix.Matrix

	// AlignPoints indicates that the arguments are point indices for
	// point matching rather than x,y offsets.  In this case OurPoint
	// and TheirPoint are set and Trfm carries no translation.
	AlignPoints bool

	OurPoint, TheirPoint int16

	UseMyMetrics bool
}

// HasNontrivialTransform reports whether the component carries a
// scale, flip or shear, as opposed to a pure translation.
func (cu *ComponentUnpacked) HasNontrivialTransform() bool {
	return cu.Trfm[0] != 1 || cu.Trfm[1] != 0 || cu.Trfm[2] != 0 || cu.Trfm[3] != 1
}

// f2dot14Factor is the scaling factor for F2.14 fixed-point numbers.
const f2dot14Factor = 1 << 14

func f2dot14ToFloat(i int16) float64 {
	return float64(i) / f2dot14Factor
}

// Unpack extracts the component positioning data.
func (gc GlyphComponent) Unpack() (*ComponentUnpacked, error) {
	res := &ComponentUnpacked{
		Child:        gc.GlyphIndex,
		UseMyMetrics: gc.Flags&FlagUseMyMetrics != 0,
		Trfm:         matrix.Matrix{1, 0, 0, 1, 0, 0},
	}

	data := gc.Data
	need := 2
	if gc.Flags&FlagArg1And2AreWords != 0 {
		need = 4
	}
	if len(data) < need {
		return nil, errIncompleteGlyph
	}

	var arg1, arg2 int16
	if gc.Flags&FlagArg1And2AreWords != 0 {
		arg1 = int16(data[0])<<8 | int16(data[1])
		arg2 = int16(data[2])<<8 | int16(data[3])
		data = data[4:]
	} else {
		arg1 = int16(int8(data[0]))
		arg2 = int16(int8(data[1]))
		data = data[2:]
	}

	readF2dot14 := func() (float64, error) {
		if len(data) < 2 {
			return 0, errIncompleteGlyph
		}
		v := int16(data[0])<<8 | int16(data[1])
		data = data[2:]
		return f2dot14ToFloat(v), nil
	}

	var err error
	if gc.Flags&FlagWeHaveAScale != 0 {
		var scale float64
		if scale, err = readF2dot14(); err != nil {
			return nil, err
		}
		res.Trfm[0] = scale
		res.Trfm[3] = scale
	} else if gc.Flags&FlagWeHaveAnXAndYScale != 0 {
		if res.Trfm[0], err = readF2dot14(); err != nil {
			return nil, err
		}
		if res.Trfm[3], err = readF2dot14(); err != nil {
			return nil, err
		}
	} else if gc.Flags&FlagWeHaveATwoByTwo != 0 {
		for _, i := range []int{0, 1, 2, 3} {
			if res.Trfm[i], err = readF2dot14(); err != nil {
				return nil, err
			}
		}
	}

	if gc.Flags&FlagArgsAreXYValues != 0 {
		res.Trfm[4] = float64(arg1)
		res.Trfm[5] = float64(arg2)
	} else {
		res.OurPoint = arg1
		res.TheirPoint = arg2
		res.AlignPoints = true
	}

	return res, nil
}
