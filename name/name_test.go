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

package name

import (
	"testing"
	"unicode/utf16"

	"golang.org/x/text/language"
)

type record struct {
	languageID uint16
	nameID     uint16
	value      string
}

func buildNameTable(records []record) []byte {
	var storage []byte
	var buf []byte
	u16 := func(v uint16) { buf = append(buf, byte(v>>8), byte(v)) }

	u16(0)                    // version
	u16(uint16(len(records))) // count
	u16(uint16(6 + 12*len(records)))

	for _, rec := range records {
		var encoded []byte
		for _, u := range utf16.Encode([]rune(rec.value)) {
			encoded = append(encoded, byte(u>>8), byte(u))
		}

		u16(3) // Windows platform
		u16(1) // Unicode BMP
		u16(rec.languageID)
		u16(rec.nameID)
		u16(uint16(len(encoded)))
		u16(uint16(len(storage)))
		storage = append(storage, encoded...)
	}

	return append(buf, storage...)
}

func TestDecode(t *testing.T) {
	data := buildNameTable([]record{
		{0x0409, 1, "Tapestry Sans"},
		{0x0409, 2, "Bold Italic"},
		{0x0409, 4, "Tapestry Sans Bold Italic"},
		{0x0407, 1, "Tapestry Grotesk"},
	})

	info, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}

	english, conf := info.Choose(language.AmericanEnglish)
	if english == nil || conf == language.No {
		t.Fatal("no English table found")
	}
	if english.Family != "Tapestry Sans" {
		t.Errorf("Family = %q, want %q", english.Family, "Tapestry Sans")
	}
	if english.Subfamily != "Bold Italic" {
		t.Errorf("Subfamily = %q", english.Subfamily)
	}
	if english.FullName != "Tapestry Sans Bold Italic" {
		t.Errorf("FullName = %q", english.FullName)
	}

	german, _ := info.Choose(language.German)
	if german == nil || german.Family != "Tapestry Grotesk" {
		t.Errorf("German family lookup failed: %+v", german)
	}
}

func TestDecodeSkipsUnknownPlatforms(t *testing.T) {
	data := buildNameTable([]record{{0x0409, 1, "Ok"}})
	// turn the only record into one of an unknown platform by
	// rewriting its platform ID; the decoder must skip it without error
	data[6] = 0
	data[7] = 9 // platform 9 does not exist

	info, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(info.Tables) != 0 {
		t.Errorf("expected no decoded tables, got %d", len(info.Tables))
	}
}

func TestChooseEmpty(t *testing.T) {
	info := &Info{}
	if table, _ := info.Choose(language.French); table != nil {
		t.Error("Choose on an empty table should return nil")
	}
}
