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

package cmap

import (
	"math/bits"

	"github.com/Ioloboss/tapestry/glyph"
)

// Format4 represents a format 4 cmap subtable, which maps 16-bit
// character codes to glyph IDs via sorted segments.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-4-segment-mapping-to-delta-values
type Format4 struct {
	Language       uint16
	EndCodes       []uint16
	StartCodes     []uint16
	IDDeltas       []int16
	IDRangeOffsets []uint16
	GlyphIDArray   []uint16
}

func decodeFormat4(data []byte) (Subtable, error) {
	if len(data) < 14 {
		return nil, errMalformedSubtable
	}
	length := int(data[2])<<8 | int(data[3])
	if length > len(data) {
		return nil, errMalformedSubtable
	}
	data = data[:length]

	language := uint16(data[4])<<8 | uint16(data[5])
	segCountX2 := int(data[6])<<8 | int(data[7])
	segCount := segCountX2 / 2
	if segCountX2%2 != 0 || len(data) < 16+8*segCount {
		return nil, errMalformedSubtable
	}

	u16 := func(pos int) uint16 {
		return uint16(data[pos])<<8 | uint16(data[pos+1])
	}

	endBase := 14
	padBase := endBase + 2*segCount
	if u16(padBase) != 0 {
		return nil, errMalformedSubtable
	}
	startBase := padBase + 2
	deltaBase := startBase + 2*segCount
	rangeBase := deltaBase + 2*segCount
	glyphIDBase := rangeBase + 2*segCount

	sub := &Format4{
		Language:       language,
		EndCodes:       make([]uint16, segCount),
		StartCodes:     make([]uint16, segCount),
		IDDeltas:       make([]int16, segCount),
		IDRangeOffsets: make([]uint16, segCount),
	}
	for i := 0; i < segCount; i++ {
		sub.EndCodes[i] = u16(endBase + 2*i)
		sub.StartCodes[i] = u16(startBase + 2*i)
		sub.IDDeltas[i] = int16(u16(deltaBase + 2*i))
		sub.IDRangeOffsets[i] = u16(rangeBase + 2*i)
	}

	numGlyphIDs := (length - glyphIDBase) / 2
	sub.GlyphIDArray = make([]uint16, numGlyphIDs)
	for i := range sub.GlyphIDArray {
		sub.GlyphIDArray[i] = u16(glyphIDBase + 2*i)
	}

	return sub, nil
}

// lookupSegment returns the glyph ID for a code known to lie in
// segment i, or 0 if the code is unmapped.
func (sub *Format4) lookupSegment(i int, code uint16) glyph.ID {
	if sub.IDRangeOffsets[i] == 0 {
		return glyph.ID(uint16(int(code) + int(sub.IDDeltas[i])))
	}
	k := int(code-sub.StartCodes[i]) + int(sub.IDRangeOffsets[i])/2 + i - len(sub.StartCodes)
	if k < 0 || k >= len(sub.GlyphIDArray) {
		return 0
	}
	gid := sub.GlyphIDArray[k]
	if gid == 0 {
		return 0
	}
	return glyph.ID(uint16(int(gid) + int(sub.IDDeltas[i])))
}

// Lookup implements the [Subtable] interface.
func (sub *Format4) Lookup(code rune) glyph.ID {
	if code < 0 || code > 0xFFFF {
		return 0
	}
	c := uint16(code)
	for i := range sub.StartCodes {
		if c >= sub.StartCodes[i] && c <= sub.EndCodes[i] {
			return sub.lookupSegment(i, c)
		}
	}
	return 0
}

// CodesForGlyph implements the [Subtable] interface.
func (sub *Format4) CodesForGlyph(gid glyph.ID) []rune {
	if gid == 0 {
		return nil
	}
	var codes []rune
	for i := range sub.StartCodes {
		start := int(sub.StartCodes[i])
		end := int(sub.EndCodes[i])
		for c := start; c <= end; c++ {
			if sub.lookupSegment(i, uint16(c)) == gid {
				codes = append(codes, rune(c))
			}
		}
	}
	return codes
}

// CodeRange implements the [Subtable] interface.
func (sub *Format4) CodeRange() (low, high rune) {
	first := true
	for i := range sub.StartCodes {
		if sub.StartCodes[i] == 0xFFFF && sub.EndCodes[i] == 0xFFFF {
			continue // the final sentinel segment
		}
		if first || rune(sub.StartCodes[i]) < low {
			low = rune(sub.StartCodes[i])
		}
		if first || rune(sub.EndCodes[i]) > high {
			high = rune(sub.EndCodes[i])
		}
		first = false
	}
	return
}

// Encode implements the [Subtable] interface.
func (sub *Format4) Encode(language uint16) []byte {
	segCount := len(sub.EndCodes)
	length := 16 + 8*segCount + 2*len(sub.GlyphIDArray)

	// the binary-search helpers required by the format
	entrySelector := bits.Len(uint(segCount)) - 1
	searchRange := 2 << entrySelector
	rangeShift := 2*segCount - searchRange

	buf := make([]byte, 0, length)
	appendU16 := func(v uint16) {
		buf = append(buf, byte(v>>8), byte(v))
	}

	appendU16(4)
	appendU16(uint16(length))
	appendU16(language)
	appendU16(uint16(2 * segCount))
	appendU16(uint16(searchRange))
	appendU16(uint16(entrySelector))
	appendU16(uint16(rangeShift))
	for _, v := range sub.EndCodes {
		appendU16(v)
	}
	appendU16(0) // reservedPad
	for _, v := range sub.StartCodes {
		appendU16(v)
	}
	for _, v := range sub.IDDeltas {
		appendU16(uint16(v))
	}
	for _, v := range sub.IDRangeOffsets {
		appendU16(v)
	}
	for _, v := range sub.GlyphIDArray {
		appendU16(v)
	}
	return buf
}
