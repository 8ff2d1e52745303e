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

package tapestry

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/language"

	"github.com/Ioloboss/tapestry/cmap"
	"github.com/Ioloboss/tapestry/glyf"
	"github.com/Ioloboss/tapestry/head"
	"github.com/Ioloboss/tapestry/header"
	"github.com/Ioloboss/tapestry/hmtx"
	"github.com/Ioloboss/tapestry/maxp"
	"github.com/Ioloboss/tapestry/mesh"
	"github.com/Ioloboss/tapestry/name"
	"github.com/Ioloboss/tapestry/os2"
)

// ReadFile reads a TrueType font from a file.
func ReadFile(fname string) (*Font, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return Read(fd)
}

// Read reads a TrueType font from an io.Reader.  If r does not
// implement the io.ReaderAt interface, the whole font file is read
// into memory.
//
// The tables "glyf", "loca", "maxp", "head" and "cmap" are required;
// "hhea", "hmtx", "OS/2" and "name" are used when present.  Every
// simple glyph is triangulated before Read returns; per-glyph
// triangulation failures do not abort the load and can be inspected
// via [Font.FailedGlyphs].
func Read(r io.Reader) (*Font, error) {
	rr, ok := r.(io.ReaderAt)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, err
		}
		rr = bytes.NewReader(data)
	}

	dir, err := header.Read(rr)
	if err != nil {
		return nil, fmt.Errorf("sfnt header: %w", err)
	}

	for _, required := range []string{"glyf", "loca", "maxp", "head", "cmap"} {
		if _, ok := dir.Toc[required]; !ok {
			return nil, &header.ErrMissing{TableName: required}
		}
	}

	headFd, err := dir.TableReader(rr, "head")
	if err != nil {
		return nil, err
	}
	headInfo, err := head.Read(headFd)
	if err != nil {
		return nil, fmt.Errorf("head table: %w", err)
	}

	maxpFd, err := dir.TableReader(rr, "maxp")
	if err != nil {
		return nil, err
	}
	maxpInfo, err := maxp.Read(maxpFd)
	if err != nil {
		return nil, fmt.Errorf("maxp table: %w", err)
	}

	var hmtxInfo *hmtx.Info
	if dir.Has("hhea", "hmtx") {
		hheaData, err := dir.ReadTableBytes(rr, "hhea")
		if err != nil {
			return nil, err
		}
		hmtxData, err := dir.ReadTableBytes(rr, "hmtx")
		if err != nil {
			return nil, err
		}
		hmtxInfo, err = hmtx.Decode(hheaData, hmtxData)
		if err != nil {
			return nil, fmt.Errorf("hmtx table: %w", err)
		}
	}

	var os2Info *os2.Info
	if dir.Has("OS/2") {
		os2Fd, err := dir.TableReader(rr, "OS/2")
		if err != nil {
			return nil, err
		}
		os2Info, err = os2.Read(os2Fd)
		if err != nil {
			return nil, fmt.Errorf("OS/2 table: %w", err)
		}
	}

	var nameTable *name.Table
	if dir.Has("name") {
		nameData, err := dir.ReadTableBytes(rr, "name")
		if err != nil {
			return nil, err
		}
		nameInfo, err := name.Decode(nameData)
		if err != nil {
			return nil, fmt.Errorf("name table: %w", err)
		}
		nameTable, _ = nameInfo.Choose(language.AmericanEnglish)
	}

	cmapData, err := dir.ReadTableBytes(rr, "cmap")
	if err != nil {
		return nil, err
	}
	cmapTable, err := cmap.Decode(cmapData)
	if err != nil {
		return nil, fmt.Errorf("cmap table: %w", err)
	}

	locaData, err := dir.ReadTableBytes(rr, "loca")
	if err != nil {
		return nil, err
	}
	glyfData, err := dir.ReadTableBytes(rr, "glyf")
	if err != nil {
		return nil, err
	}
	rawGlyphs, err := glyf.Decode(&glyf.Encoded{
		GlyfData:   glyfData,
		LocaData:   locaData,
		LocaFormat: headInfo.LocaFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("glyf table: %w", err)
	}
	if len(rawGlyphs) != maxpInfo.NumGlyphs {
		return nil, errors.New("tapestry: loca and maxp glyph count mismatch")
	}

	glyphs := make([]*Glyph, len(rawGlyphs))
	for gid, raw := range rawGlyphs {
		g, err := processGlyph(raw)
		if err != nil {
			return nil, fmt.Errorf("glyph %d: %w", gid, err)
		}
		if hmtxInfo != nil {
			if gid < len(hmtxInfo.Widths) {
				g.AdvanceWidth = hmtxInfo.Widths[gid]
			}
			if gid < len(hmtxInfo.LSBs) {
				g.LeftSideBearing = hmtxInfo.LSBs[gid]
			}
		}
		glyphs[gid] = g
	}

	font := &Font{
		Glyphs:     glyphs,
		Mappings:   cmapTable.Subtables(),
		UnitsPerEm: headInfo.UnitsPerEm,
	}

	if os2Info != nil {
		font.Ascent = os2Info.Ascent
		font.Descent = os2Info.Descent
		font.LineGap = os2Info.LineGap
		font.WinAscent = os2Info.WinAscent
		font.WinDescent = os2Info.WinDescent
	} else if hmtxInfo != nil {
		font.Ascent = hmtxInfo.Ascent
		font.Descent = hmtxInfo.Descent
		font.LineGap = hmtxInfo.LineGap
	}

	if nameTable != nil {
		font.FamilyName = nameTable.Family
		font.Subfamily = nameTable.Subfamily
	}

	return font, nil
}

// processGlyph converts one decoded glyph into its render-side form.
// Triangulation failures are captured in the glyph slot instead of
// being returned as errors.
func processGlyph(raw *glyf.Glyph) (*Glyph, error) {
	if raw == nil {
		return &Glyph{}, nil
	}

	g := &Glyph{Bounds: raw.Rect16}

	switch data := raw.Data.(type) {
	case glyf.SimpleGlyph:
		outline, err := data.Outline()
		if err != nil {
			return nil, err
		}
		m, err := mesh.FromOutline(outline)
		if err != nil {
			var ge mesh.GlyphError
			if errors.As(err, &ge) {
				g.Outline = &FailedOutline{Err: ge}
				return g, nil
			}
			return nil, err
		}
		g.Outline = &MeshOutline{Mesh: m}

	case glyf.CompositeGlyph:
		components := make([]Component, 0, len(data.Components))
		for _, rawComp := range data.Components {
			cu, err := rawComp.Unpack()
			if err != nil {
				return nil, err
			}
			comp := Component{
				Child: cu.Child,
				Trfm:  cu.Trfm,
			}
			if !cu.AlignPoints {
				comp.Offset = Offset{
					X: int32(cu.Trfm[4]),
					Y: int32(cu.Trfm[5]),
				}
			}
			components = append(components, comp)
		}
		g.Outline = &CompositeOutline{Components: components}
	}

	return g, nil
}
