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
	"github.com/Ioloboss/tapestry/parser"
)

// decodeLoca converts the "loca" table into a list of numGlyphs+1
// offsets into the "glyf" table.  In format 0 the table stores
// offset/2, so the stored values are doubled here.
func decodeLoca(enc *Encoded) ([]int, error) {
	var offs []int
	switch enc.LocaFormat {
	case 0:
		if len(enc.LocaData) < 2 || len(enc.LocaData)%2 != 0 {
			return nil, errInvalidLoca
		}
		offs = make([]int, len(enc.LocaData)/2)
		for i := range offs {
			offs[i] = (int(enc.LocaData[2*i])<<8 | int(enc.LocaData[2*i+1])) * 2
		}
	case 1:
		if len(enc.LocaData) < 4 || len(enc.LocaData)%4 != 0 {
			return nil, errInvalidLoca
		}
		offs = make([]int, len(enc.LocaData)/4)
		for i := range offs {
			offs[i] = int(enc.LocaData[4*i])<<24 | int(enc.LocaData[4*i+1])<<16 |
				int(enc.LocaData[4*i+2])<<8 | int(enc.LocaData[4*i+3])
		}
	default:
		return nil, &parser.NotSupportedError{
			SubSystem: "tapestry/glyf",
			Feature:   "loca table format != 0, 1",
		}
	}

	prev := 0
	for _, off := range offs {
		if off < prev || off > len(enc.GlyfData) {
			return nil, errInvalidLoca
		}
		prev = off
	}

	return offs, nil
}

// encodeLoca encodes a list of offsets into a "loca" table, choosing
// the short format when all offsets fit.
func encodeLoca(offs []int) ([]byte, int16) {
	last := offs[len(offs)-1]
	if last <= 0xFFFF*2 && last%2 == 0 {
		ok := true
		for _, off := range offs {
			if off%2 != 0 {
				ok = false
				break
			}
		}
		if ok {
			buf := make([]byte, 0, 2*len(offs))
			for _, off := range offs {
				half := off / 2
				buf = append(buf, byte(half>>8), byte(half))
			}
			return buf, 0
		}
	}

	buf := make([]byte, 0, 4*len(offs))
	for _, off := range offs {
		buf = append(buf, byte(off>>24), byte(off>>16), byte(off>>8), byte(off))
	}
	return buf, 1
}

var errInvalidLoca = &parser.InvalidFontError{
	SubSystem: "tapestry/glyf",
	Reason:    "invalid loca table",
}
