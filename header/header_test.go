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

package header

import (
	"bytes"
	"testing"

	"github.com/Ioloboss/tapestry/parser"
)

// buildFile assembles an sfnt file with the given scaler type and one
// table per entry of tables, in order.
func buildFile(scalerType uint32, tables map[string][]byte) []byte {
	var names []string
	for name := range tables {
		names = append(names, name)
	}

	numTables := len(names)
	var buf []byte
	u16 := func(v uint16) { buf = append(buf, byte(v>>8), byte(v)) }
	u32 := func(v uint32) {
		buf = append(buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}

	u32(scalerType)
	u16(uint16(numTables))
	u16(0) // searchRange
	u16(0) // entrySelector
	u16(0) // rangeShift

	offset := uint32(12 + 16*numTables)
	for _, name := range names {
		buf = append(buf, name...)
		u32(0) // checksum
		u32(offset)
		u32(uint32(len(tables[name])))
		offset += uint32(len(tables[name]))
	}
	for _, name := range names {
		buf = append(buf, tables[name]...)
	}
	return buf
}

func TestReadDirectory(t *testing.T) {
	data := buildFile(ScalerTypeTrueType, map[string][]byte{
		"glyf": {1, 2, 3, 4},
	})

	info, err := Read(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if !info.Has("glyf") {
		t.Error("glyf table not found")
	}
	if info.Has("loca") {
		t.Error("loca table should be missing")
	}

	payload, err := info.ReadTableBytes(bytes.NewReader(data), "glyf")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(payload, []byte{1, 2, 3, 4}) {
		t.Errorf("table contents = %v", payload)
	}

	if _, err := info.TableReader(bytes.NewReader(data), "loca"); !IsMissing(err) {
		t.Errorf("got %v, want ErrMissing", err)
	}
}

func TestRejectOtherScalerTypes(t *testing.T) {
	for _, scaler := range []uint32{
		0x4F54544F, // "OTTO", CFF outlines
		0x74727565, // Apple "true"
		0xDEADBEEF,
	} {
		data := buildFile(scaler, map[string][]byte{"CFF ": {0}})
		_, err := Read(bytes.NewReader(data))
		if _, ok := err.(*parser.NotSupportedError); !ok {
			t.Errorf("scaler %#x: got %v, want NotSupportedError", scaler, err)
		}
	}
}

func TestRejectTruncatedFile(t *testing.T) {
	data := buildFile(ScalerTypeTrueType, map[string][]byte{
		"glyf": {1, 2, 3, 4},
	})
	if _, err := Read(bytes.NewReader(data[:len(data)-2])); err == nil {
		t.Error("expected an error for a table extending beyond EOF")
	}
}

func TestRejectBadTableName(t *testing.T) {
	data := buildFile(ScalerTypeTrueType, map[string][]byte{
		"b\x01d!": {1},
	})
	if _, err := Read(bytes.NewReader(data)); err == nil {
		t.Error("expected an error for a non-printable table tag")
	}
}
