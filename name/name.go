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

// Package name reads "name" tables.
// https://docs.microsoft.com/en-us/typography/opentype/spec/name
package name

import (
	"unicode/utf16"

	"golang.org/x/text/language"

	"github.com/Ioloboss/tapestry/parser"
)

// Name IDs used by this library.
const (
	idCopyright  = 0
	idFamily     = 1
	idSubfamily  = 2
	idFullName   = 4
	idVersion    = 5
	idTrademark  = 7
	idLicense    = 13
	idLicenseURL = 14
)

// A Table contains the name strings for one language.
type Table struct {
	Copyright  string
	Trademark  string
	Family     string
	Subfamily  string
	FullName   string
	Version    string
	License    string
	LicenseURL string
}

// Info contains the decoded "name" table, grouped by language.
type Info struct {
	Tables map[language.Tag]*Table
}

// Decode decodes a "name" table.  Only Unicode and Windows platform
// records (which use UTF-16BE strings) are decoded; records of other
// platforms are skipped.
func Decode(data []byte) (*Info, error) {
	if len(data) < 6 {
		return nil, errMalformed
	}
	version := uint16(data[0])<<8 | uint16(data[1])
	if version > 1 {
		return nil, &parser.NotSupportedError{
			SubSystem: "tapestry/name",
			Feature:   "name table version > 1",
		}
	}
	count := int(data[2])<<8 | int(data[3])
	storageOffset := int(data[4])<<8 | int(data[5])
	if len(data) < 6+12*count {
		return nil, errMalformed
	}

	info := &Info{Tables: make(map[language.Tag]*Table)}
	for i := 0; i < count; i++ {
		base := 6 + 12*i
		platformID := uint16(data[base])<<8 | uint16(data[base+1])
		encodingID := uint16(data[base+2])<<8 | uint16(data[base+3])
		languageID := uint16(data[base+4])<<8 | uint16(data[base+5])
		nameID := uint16(data[base+6])<<8 | uint16(data[base+7])
		length := int(data[base+8])<<8 | int(data[base+9])
		offset := int(data[base+10])<<8 | int(data[base+11])

		var tag language.Tag
		switch platformID {
		case 0: // Unicode
			tag = language.Und
		case 3: // Windows
			if encodingID != 1 && encodingID != 10 {
				continue
			}
			var ok bool
			tag, ok = windowsLanguage[languageID]
			if !ok {
				continue
			}
		default:
			continue
		}

		start := storageOffset + offset
		end := start + length
		if end > len(data) || length%2 != 0 {
			continue
		}
		val := decodeUTF16BE(data[start:end])

		t := info.Tables[tag]
		if t == nil {
			t = &Table{}
			info.Tables[tag] = t
		}
		switch nameID {
		case idCopyright:
			t.Copyright = val
		case idTrademark:
			t.Trademark = val
		case idFamily:
			t.Family = val
		case idSubfamily:
			t.Subfamily = val
		case idFullName:
			t.FullName = val
		case idVersion:
			t.Version = val
		case idLicense:
			t.License = val
		case idLicenseURL:
			t.LicenseURL = val
		}
	}

	return info, nil
}

// Choose returns the table which best matches the given language,
// together with the confidence of the match.
func (info *Info) Choose(tag language.Tag) (*Table, language.Confidence) {
	if info == nil || len(info.Tables) == 0 {
		return nil, language.No
	}

	candidates := make([]language.Tag, 0, len(info.Tables))
	for t := range info.Tables {
		candidates = append(candidates, t)
	}
	matcher := language.NewMatcher(candidates)
	_, idx, conf := matcher.Match(tag)
	return info.Tables[candidates[idx]], conf
}

func decodeUTF16BE(data []byte) string {
	codes := make([]uint16, len(data)/2)
	for i := range codes {
		codes[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return string(utf16.Decode(codes))
}

// windowsLanguage maps the most common Windows language IDs to BCP 47
// language tags.
var windowsLanguage = map[uint16]language.Tag{
	0x0401: language.Arabic,
	0x0404: language.TraditionalChinese,
	0x0405: language.Czech,
	0x0406: language.Danish,
	0x0407: language.German,
	0x0408: language.Greek,
	0x0409: language.AmericanEnglish,
	0x0809: language.BritishEnglish,
	0x040A: language.Spanish,
	0x040B: language.Finnish,
	0x040C: language.French,
	0x040E: language.Hungarian,
	0x0410: language.Italian,
	0x0411: language.Japanese,
	0x0412: language.Korean,
	0x0413: language.Dutch,
	0x0414: language.Norwegian,
	0x0415: language.Polish,
	0x0416: language.BrazilianPortuguese,
	0x0816: language.EuropeanPortuguese,
	0x0419: language.Russian,
	0x041D: language.Swedish,
	0x041F: language.Turkish,
	0x0804: language.SimplifiedChinese,
}

var errMalformed = &parser.InvalidFontError{
	SubSystem: "tapestry/name",
	Reason:    "malformed name table",
}
