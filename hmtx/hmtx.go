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

// Package hmtx reads "hhea" and "hmtx" tables.
// https://docs.microsoft.com/en-us/typography/opentype/spec/hhea
// https://docs.microsoft.com/en-us/typography/opentype/spec/hmtx
package hmtx

import (
	"fmt"

	"seehuhn.de/go/postscript/funit"

	"github.com/Ioloboss/tapestry/parser"
)

// Info contains the horizontal metrics of all glyphs in a font.
type Info struct {
	// Widths are the advance widths of the glyphs, in font design units.
	Widths []funit.Int16

	// LSBs are the left side bearings of the glyphs, in font design units.
	LSBs []funit.Int16

	Ascent  funit.Int16
	Descent funit.Int16 // negative
	LineGap funit.Int16

	CaretSlopeRise int16
	CaretSlopeRun  int16
	CaretOffset    funit.Int16
}

// Decode decodes the horizontal metrics of a font from the "hhea" and
// "hmtx" tables.
func Decode(hheaData, hmtxData []byte) (*Info, error) {
	if len(hheaData) < 36 {
		return nil, &parser.InvalidFontError{
			SubSystem: "tapestry/hmtx",
			Reason:    "hhea table too short",
		}
	}

	version := uint32(hheaData[0])<<24 | uint32(hheaData[1])<<16 |
		uint32(hheaData[2])<<8 | uint32(hheaData[3])
	if version != 0x00010000 {
		return nil, &parser.NotSupportedError{
			SubSystem: "tapestry/hmtx",
			Feature:   fmt.Sprintf("hhea table version 0x%08x", version),
		}
	}

	metricDataFormat := int16(hheaData[32])<<8 | int16(hheaData[33])
	if metricDataFormat != 0 {
		return nil, &parser.NotSupportedError{
			SubSystem: "tapestry/hmtx",
			Feature:   fmt.Sprintf("metric data format %d", metricDataFormat),
		}
	}

	info := &Info{
		Ascent:         funit.Int16(hheaData[4])<<8 | funit.Int16(hheaData[5]),
		Descent:        funit.Int16(hheaData[6])<<8 | funit.Int16(hheaData[7]),
		LineGap:        funit.Int16(hheaData[8])<<8 | funit.Int16(hheaData[9]),
		CaretSlopeRise: int16(hheaData[18])<<8 | int16(hheaData[19]),
		CaretSlopeRun:  int16(hheaData[20])<<8 | int16(hheaData[21]),
		CaretOffset:    funit.Int16(hheaData[22])<<8 | funit.Int16(hheaData[23]),
	}

	numHMetrics := int(hheaData[34])<<8 | int(hheaData[35])

	// The "hmtx" table contains numHMetrics pairs of advance width and
	// left side bearing, followed by bare left side bearings for any
	// remaining glyphs.  Those remaining glyphs share the last advance
	// width of the first block.
	numLeftOver := (len(hmtxData) - 4*numHMetrics) / 2
	if numLeftOver < 0 {
		numLeftOver = 0
	}
	numGlyphs := numHMetrics + numLeftOver

	widths := make([]funit.Int16, 0, numGlyphs)
	lsbs := make([]funit.Int16, 0, numGlyphs)

	var lastWidth funit.Int16
	pos := 0
	for i := 0; i < numHMetrics && pos+4 <= len(hmtxData); i++ {
		lastWidth = funit.Int16(hmtxData[pos])<<8 | funit.Int16(hmtxData[pos+1])
		lsb := funit.Int16(hmtxData[pos+2])<<8 | funit.Int16(hmtxData[pos+3])
		widths = append(widths, lastWidth)
		lsbs = append(lsbs, lsb)
		pos += 4
	}
	for pos+2 <= len(hmtxData) {
		lsb := funit.Int16(hmtxData[pos])<<8 | funit.Int16(hmtxData[pos+1])
		widths = append(widths, lastWidth)
		lsbs = append(lsbs, lsb)
		pos += 2
	}

	info.Widths = widths
	info.LSBs = lsbs
	return info, nil
}
