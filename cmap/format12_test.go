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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func cjkFormat12() *Format12 {
	return &Format12{
		Groups: []SequentialGroup{
			{StartCharCode: 0x41, EndCharCode: 0x5A, StartGlyphID: 36},
			{StartCharCode: 0x4E00, EndCharCode: 0x9FFF, StartGlyphID: 1000},
		},
	}
}

func TestFormat12Lookup(t *testing.T) {
	sub := cjkFormat12()

	// U+4E2D in the group (0x4E00, 0x9FFF, 1000)
	if gid := sub.Lookup(0x4E2D); gid != 1000+(0x4E2D-0x4E00) {
		t.Errorf("Lookup(U+4E2D) = %d, want %d", gid, 1000+(0x4E2D-0x4E00))
	}
	if gid := sub.Lookup('A'); gid != 36 {
		t.Errorf("Lookup('A') = %d, want 36", gid)
	}
	if gid := sub.Lookup(0x40); gid != 0 {
		t.Errorf("Lookup(0x40) = %d, want 0", gid)
	}
}

func TestFormat12Reverse(t *testing.T) {
	sub := cjkFormat12()

	for _, c := range []rune{'A', 'Z', 0x4E00, 0x4E2D} {
		gid := sub.Lookup(c)
		codes := sub.CodesForGlyph(gid)
		found := false
		for _, code := range codes {
			if code == c {
				found = true
			}
		}
		if !found {
			t.Errorf("CodesForGlyph(%d) does not contain %#x", gid, c)
		}
	}
}

func TestFormat12RoundTrip(t *testing.T) {
	sub := cjkFormat12()

	decoded, err := decodeFormat12(sub.Encode(0))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Subtable(sub), decoded, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip failed:\n%s", diff)
	}
}

func TestFormat12Malformed(t *testing.T) {
	// overlapping groups must be rejected
	bad := &Format12{
		Groups: []SequentialGroup{
			{StartCharCode: 0x41, EndCharCode: 0x5A, StartGlyphID: 1},
			{StartCharCode: 0x50, EndCharCode: 0x60, StartGlyphID: 2},
		},
	}
	if _, err := decodeFormat12(bad.Encode(0)); err == nil {
		t.Error("expected an error for overlapping groups")
	}
}

func TestTableDecode(t *testing.T) {
	sub4 := asciiFormat4()
	sub4Data := sub4.Encode(0)
	sub12Data := cjkFormat12().Encode(0)

	// cmap header with three encoding records: a Windows BMP record, a
	// Windows full-repertoire record, and a Mac record sharing the BMP
	// subtable's offset
	var data []byte
	u16 := func(v uint16) { data = append(data, byte(v>>8), byte(v)) }
	u32 := func(v uint32) {
		data = append(data, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}

	offset4 := uint32(4 + 3*8)
	offset12 := offset4 + uint32(len(sub4Data))

	u16(0) // version
	u16(3) // numTables
	u16(3)
	u16(1)
	u32(offset4)
	u16(3)
	u16(10)
	u32(offset12)
	u16(1)
	u16(0)
	u32(offset4)
	data = append(data, sub4Data...)
	data = append(data, sub12Data...)

	table, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(table) != 3 {
		t.Fatalf("got %d records, want 3", len(table))
	}

	best, ok := table.GetBest()
	if !ok {
		t.Fatal("no best subtable")
	}
	// the full-repertoire subtable wins
	if _, isF12 := best.(*Format12); !isF12 {
		t.Errorf("best subtable has type %T, want *Format12", best)
	}

	subs := table.Subtables()
	if len(subs) != 2 {
		t.Fatalf("got %d distinct subtables, want 2", len(subs))
	}
	if subs[0] != best {
		t.Error("the best subtable must come first")
	}
}

func TestTableDecodeRejectsBadVersion(t *testing.T) {
	data := []byte{0, 1, 0, 0}
	if _, err := Decode(data); err == nil {
		t.Error("expected an error for cmap version 1")
	}
}
