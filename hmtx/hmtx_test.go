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

package hmtx

import (
	"testing"
)

func buildHhea(numHMetrics uint16) []byte {
	buf := make([]byte, 36)
	buf[0] = 0x00
	buf[1] = 0x01 // version 1.0
	buf[4] = 0x02
	buf[5] = 0xEE // ascender = 750
	buf[6] = 0xFF
	buf[7] = 0x06 // descender = -250
	buf[8] = 0x00
	buf[9] = 0x64 // lineGap = 100
	buf[34] = byte(numHMetrics >> 8)
	buf[35] = byte(numHMetrics)
	return buf
}

func TestDecode(t *testing.T) {
	// two full metrics, then two bare left side bearings
	hmtxData := []byte{
		0x02, 0x00, 0x00, 0x0A, // width 512, lsb 10
		0x01, 0x00, 0xFF, 0xF6, // width 256, lsb -10
		0x00, 0x14, // lsb 20
		0x00, 0x1E, // lsb 30
	}

	info, err := Decode(buildHhea(2), hmtxData)
	if err != nil {
		t.Fatal(err)
	}

	if info.Ascent != 750 || info.Descent != -250 || info.LineGap != 100 {
		t.Errorf("metrics = %d/%d/%d, want 750/-250/100",
			info.Ascent, info.Descent, info.LineGap)
	}

	wantWidths := []int16{512, 256, 256, 256}
	wantLSBs := []int16{10, -10, 20, 30}
	if len(info.Widths) != len(wantWidths) {
		t.Fatalf("got %d widths, want %d", len(info.Widths), len(wantWidths))
	}
	for i := range wantWidths {
		if int16(info.Widths[i]) != wantWidths[i] {
			t.Errorf("Widths[%d] = %d, want %d", i, info.Widths[i], wantWidths[i])
		}
		if int16(info.LSBs[i]) != wantLSBs[i] {
			t.Errorf("LSBs[%d] = %d, want %d", i, info.LSBs[i], wantLSBs[i])
		}
	}
}

func TestRejectShortHhea(t *testing.T) {
	if _, err := Decode([]byte{0, 1}, nil); err == nil {
		t.Error("expected an error for a truncated hhea table")
	}
}

func TestRejectBadVersion(t *testing.T) {
	hhea := buildHhea(1)
	hhea[1] = 2
	if _, err := Decode(hhea, nil); err == nil {
		t.Error("expected an error for hhea version 2.0")
	}
}
