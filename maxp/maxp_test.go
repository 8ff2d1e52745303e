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

package maxp

import (
	"bytes"
	"testing"

	"github.com/Ioloboss/tapestry/parser"
)

func TestReadMaxp(t *testing.T) {
	var buf []byte
	u16 := func(v uint16) { buf = append(buf, byte(v>>8), byte(v)) }
	buf = append(buf, 0x00, 0x01, 0x00, 0x00) // version 1.0
	u16(1234)                                 // numGlyphs
	for i := 0; i < 13; i++ {
		u16(uint16(i))
	}

	info, err := Read(bytes.NewReader(buf))
	if err != nil {
		t.Fatal(err)
	}
	if info.NumGlyphs != 1234 {
		t.Errorf("NumGlyphs = %d, want 1234", info.NumGlyphs)
	}
	if info.MaxPoints != 0 || info.MaxComponentDepth != 12 {
		t.Errorf("profile fields decoded incorrectly: %+v", info)
	}
}

func TestRejectMaxpVersion05(t *testing.T) {
	// version 0.5 is used by CFF-flavoured fonts and has no glyf data
	buf := []byte{0x00, 0x00, 0x50, 0x00, 0x00, 0x10}
	_, err := Read(bytes.NewReader(buf))
	if _, ok := err.(*parser.NotSupportedError); !ok {
		t.Errorf("got %v, want NotSupportedError", err)
	}
}
