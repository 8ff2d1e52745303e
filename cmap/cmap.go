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

// Package cmap reads "cmap" tables.
// https://docs.microsoft.com/en-us/typography/opentype/spec/cmap
package cmap

import (
	"fmt"

	"github.com/Ioloboss/tapestry/parser"
)

// A Record is one encoding record of a "cmap" table, together with its
// decoded subtable.
type Record struct {
	PlatformID uint16
	EncodingID uint16
	Subtable   Subtable
}

// Table is a decoded "cmap" table, with the encoding records in file
// order.
type Table []Record

// Decode decodes a "cmap" table.  Only subtable formats 4 and 12 are
// supported; subtables of any other format are skipped, and the table
// is rejected only when none of its subtables can be decoded.
func Decode(data []byte) (Table, error) {
	if len(data) < 4 {
		return nil, errMalformedTable
	}
	version := uint16(data[0])<<8 | uint16(data[1])
	if version != 0 {
		return nil, &parser.NotSupportedError{
			SubSystem: "tapestry/cmap",
			Feature:   fmt.Sprintf("cmap table version %d", version),
		}
	}
	numTables := int(data[2])<<8 | int(data[3])
	if len(data) < 4+8*numTables {
		return nil, errMalformedTable
	}

	// identical subtables are often shared between encoding records
	seen := make(map[uint32]Subtable)

	var table Table
	var firstErr error
	for i := 0; i < numTables; i++ {
		base := 4 + 8*i
		platformID := uint16(data[base])<<8 | uint16(data[base+1])
		encodingID := uint16(data[base+2])<<8 | uint16(data[base+3])
		offset := uint32(data[base+4])<<24 | uint32(data[base+5])<<16 |
			uint32(data[base+6])<<8 | uint32(data[base+7])

		subtable, ok := seen[offset]
		if !ok {
			if int64(offset)+2 > int64(len(data)) {
				return nil, errMalformedTable
			}
			var err error
			subtable, err = decodeSubtable(data[offset:])
			if err != nil {
				// fonts often carry legacy subtables next to the
				// Unicode ones; reject the font only if no subtable
				// can be decoded at all
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			seen[offset] = subtable
		}

		table = append(table, Record{
			PlatformID: platformID,
			EncodingID: encodingID,
			Subtable:   subtable,
		})
	}
	if len(table) == 0 {
		if firstErr != nil {
			return nil, firstErr
		}
		return nil, errMalformedTable
	}

	return table, nil
}

func decodeSubtable(data []byte) (Subtable, error) {
	format := uint16(data[0])<<8 | uint16(data[1])
	switch format {
	case 4:
		return decodeFormat4(data)
	case 12:
		return decodeFormat12(data)
	default:
		return nil, &parser.NotSupportedError{
			SubSystem: "tapestry/cmap",
			Feature:   fmt.Sprintf("cmap subtable format %d", format),
		}
	}
}

// GetBest returns the preferred subtable for character lookups:
// a Unicode full-repertoire subtable if present, otherwise a Unicode
// BMP subtable, otherwise the first subtable of the font.
func (t Table) GetBest() (Subtable, bool) {
	if len(t) == 0 {
		return nil, false
	}

	unicodeFull := func(r Record) bool {
		return r.PlatformID == 0 && r.EncodingID == 4 ||
			r.PlatformID == 3 && r.EncodingID == 10
	}
	unicodeBMP := func(r Record) bool {
		return r.PlatformID == 0 ||
			r.PlatformID == 3 && r.EncodingID == 1
	}

	for _, cond := range []func(Record) bool{unicodeFull, unicodeBMP} {
		for _, rec := range t {
			if cond(rec) {
				return rec.Subtable, true
			}
		}
	}
	return t[0].Subtable, true
}

// Subtables returns the decoded subtables, with the best subtable
// first and every distinct subtable listed exactly once.
func (t Table) Subtables() []Subtable {
	best, ok := t.GetBest()
	if !ok {
		return nil
	}
	res := []Subtable{best}
	for _, rec := range t {
		dup := false
		for _, s := range res {
			if s == rec.Subtable {
				dup = true
				break
			}
		}
		if !dup {
			res = append(res, rec.Subtable)
		}
	}
	return res
}

var errMalformedTable = &parser.InvalidFontError{
	SubSystem: "tapestry/cmap",
	Reason:    "malformed cmap table",
}

var errMalformedSubtable = &parser.InvalidFontError{
	SubSystem: "tapestry/cmap",
	Reason:    "malformed cmap subtable",
}
