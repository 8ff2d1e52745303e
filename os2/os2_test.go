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

package os2

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/Ioloboss/tapestry/parser"
)

func buildV4Table() []byte {
	buf := &bytes.Buffer{}
	v0 := v0Data{
		Version:        4,
		AvgCharWidth:   500,
		WeightClass:    uint16(WeightBold),
		WidthClass:     uint16(WidthNormal),
		Selection:      0x0020, // bold
		FirstCharIndex: 0x20,
		LastCharIndex:  0x7E,
		VendID:         [4]byte{'T', 'E', 'S', 'T'},
	}
	binary.Write(buf, binary.BigEndian, v0)
	binary.Write(buf, binary.BigEndian, v0MsData{
		TypoAscender:  750,
		TypoDescender: -250,
		TypoLineGap:   200,
		WinAscent:     950,
		WinDescent:    250,
	})
	binary.Write(buf, binary.BigEndian, [8]byte{}) // code page ranges
	binary.Write(buf, binary.BigEndian, v2Data{
		XHeight:   460,
		CapHeight: 660,
	})
	return buf.Bytes()
}

func TestReadV4(t *testing.T) {
	info, err := Read(bytes.NewReader(buildV4Table()))
	if err != nil {
		t.Fatal(err)
	}

	if info.WeightClass != WeightBold {
		t.Errorf("WeightClass = %d, want %d", info.WeightClass, WeightBold)
	}
	if !info.IsBold || info.IsItalic || info.IsRegular {
		t.Errorf("style flags wrong: %+v", info)
	}
	if info.Ascent != 750 || info.Descent != -250 || info.LineGap != 200 {
		t.Errorf("typographic metrics = %d/%d/%d", info.Ascent, info.Descent, info.LineGap)
	}
	if info.WinAscent != 950 || info.WinDescent != 250 {
		t.Errorf("windows metrics = %d/%d", info.WinAscent, info.WinDescent)
	}
	if info.XHeight != 460 || info.CapHeight != 660 {
		t.Errorf("x-height/cap-height = %d/%d", info.XHeight, info.CapHeight)
	}
	if info.Vendor != "TEST" {
		t.Errorf("Vendor = %q", info.Vendor)
	}
}

func TestReadV0TruncatedAfterBase(t *testing.T) {
	// a version 0 table may end after the base fields
	data := buildV4Table()[:68]
	data[1] = 0 // version 0

	info, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if info.Ascent != 0 {
		t.Error("missing extension fields must stay zero")
	}
}

func TestRejectFutureVersion(t *testing.T) {
	data := buildV4Table()
	data[1] = 6
	_, err := Read(bytes.NewReader(data))
	if _, ok := err.(*parser.NotSupportedError); !ok {
		t.Errorf("got %v, want NotSupportedError", err)
	}
}

func TestWeightString(t *testing.T) {
	if WeightBold.String() != "Bold" {
		t.Errorf("WeightBold.String() = %q", WeightBold.String())
	}
	if Weight(450).String() != "450" {
		t.Errorf("Weight(450).String() = %q", Weight(450).String())
	}
}
