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

// Package maxp reads "maxp" tables.
// https://docs.microsoft.com/en-us/typography/opentype/spec/maxp
package maxp

import (
	"fmt"
	"io"

	"github.com/Ioloboss/tapestry/parser"
)

// Version is the only maxp table version allowed for TrueType outlines.
const Version = 0x00010000

// Info contains information from the "maxp" table.
type Info struct {
	NumGlyphs int

	MaxPoints             uint16
	MaxContours           uint16
	MaxCompositePoints    uint16
	MaxCompositeContours  uint16
	MaxZones              uint16
	MaxTwilightPoints     uint16
	MaxStorage            uint16
	MaxFunctionDefs       uint16
	MaxInstructionDefs    uint16
	MaxStackElements      uint16
	MaxSizeOfInstructions uint16
	MaxComponentElements  uint16
	MaxComponentDepth     uint16
}

// Read reads the "maxp" table from r.
func Read(r io.Reader) (*Info, error) {
	p, err := parser.FromReader(r)
	if err != nil {
		return nil, err
	}

	version, err := p.ReadUint32()
	if err != nil {
		return nil, err
	}
	if version != Version {
		return nil, &parser.NotSupportedError{
			SubSystem: "tapestry/maxp",
			Feature:   fmt.Sprintf("maxp table version 0x%08x", version),
		}
	}

	numGlyphs, err := p.ReadUint16()
	if err != nil {
		return nil, err
	}

	info := &Info{NumGlyphs: int(numGlyphs)}
	fields := []*uint16{
		&info.MaxPoints,
		&info.MaxContours,
		&info.MaxCompositePoints,
		&info.MaxCompositeContours,
		&info.MaxZones,
		&info.MaxTwilightPoints,
		&info.MaxStorage,
		&info.MaxFunctionDefs,
		&info.MaxInstructionDefs,
		&info.MaxStackElements,
		&info.MaxSizeOfInstructions,
		&info.MaxComponentElements,
		&info.MaxComponentDepth,
	}
	for _, f := range fields {
		*f, err = p.ReadUint16()
		if err != nil {
			return nil, err
		}
	}

	return info, nil
}
