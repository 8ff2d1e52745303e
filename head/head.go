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

// Package head reads "head" tables.
// https://docs.microsoft.com/en-us/typography/opentype/spec/head
package head

import (
	"fmt"
	"io"
	"time"

	"seehuhn.de/go/postscript/funit"

	"github.com/Ioloboss/tapestry/parser"
)

// Info contains information from the "head" table.
type Info struct {
	FontRevision uint32 // Fixed 16.16

	UnitsPerEm uint16

	Created  time.Time
	Modified time.Time

	FontBBox funit.Rect16

	IsBold   bool
	IsItalic bool

	LowestRecPPEM uint16

	// LocaFormat is the format of the "loca" table, either 0 (short
	// offsets) or 1 (long offsets).
	LocaFormat int16
}

const headMagic = 0x5F0F3CF5

// macEpoch is 1904-01-01T00:00:00Z, the zero point of LONGDATETIME values.
var macEpoch = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

// Read reads the "head" table from r.
func Read(r io.Reader) (*Info, error) {
	p, err := parser.FromReader(r)
	if err != nil {
		return nil, err
	}

	majorVersion, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	minorVersion, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	if majorVersion != 1 || minorVersion != 0 {
		return nil, &parser.NotSupportedError{
			SubSystem: "tapestry/head",
			Feature:   fmt.Sprintf("head table version %d.%d", majorVersion, minorVersion),
		}
	}

	fontRevision, err := p.ReadUint32()
	if err != nil {
		return nil, err
	}
	p.Skip(4) // checksumAdjustment
	magic, err := p.ReadUint32()
	if err != nil {
		return nil, err
	}
	if magic != headMagic {
		return nil, &parser.InvalidFontError{
			SubSystem: "tapestry/head",
			Reason:    "wrong magic number",
		}
	}
	p.Skip(2) // flags
	unitsPerEm, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	created, err := p.ReadInt64()
	if err != nil {
		return nil, err
	}
	modified, err := p.ReadInt64()
	if err != nil {
		return nil, err
	}

	var bbox funit.Rect16
	xMin, err := p.ReadInt16()
	if err != nil {
		return nil, err
	}
	yMin, err := p.ReadInt16()
	if err != nil {
		return nil, err
	}
	xMax, err := p.ReadInt16()
	if err != nil {
		return nil, err
	}
	yMax, err := p.ReadInt16()
	if err != nil {
		return nil, err
	}
	bbox.LLx = funit.Int16(xMin)
	bbox.LLy = funit.Int16(yMin)
	bbox.URx = funit.Int16(xMax)
	bbox.URy = funit.Int16(yMax)

	macStyle, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	lowestRecPPEM, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}
	p.Skip(2) // fontDirectionHint (deprecated)
	locaFormat, err := p.ReadInt16()
	if err != nil {
		return nil, err
	}
	if locaFormat != 0 && locaFormat != 1 {
		return nil, &parser.NotSupportedError{
			SubSystem: "tapestry/head",
			Feature:   fmt.Sprintf("indexToLocFormat %d", locaFormat),
		}
	}
	glyphDataFormat, err := p.ReadInt16()
	if err != nil {
		return nil, err
	}
	if glyphDataFormat != 0 {
		return nil, &parser.NotSupportedError{
			SubSystem: "tapestry/head",
			Feature:   fmt.Sprintf("glyphDataFormat %d", glyphDataFormat),
		}
	}

	info := &Info{
		FontRevision:  fontRevision,
		UnitsPerEm:    unitsPerEm,
		Created:       macEpoch.Add(time.Duration(created) * time.Second),
		Modified:      macEpoch.Add(time.Duration(modified) * time.Second),
		FontBBox:      bbox,
		IsBold:        macStyle&0x0001 != 0,
		IsItalic:      macStyle&0x0002 != 0,
		LowestRecPPEM: lowestRecPPEM,
		LocaFormat:    locaFormat,
	}
	return info, nil
}
