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

package glyf

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSimpleRoundTrip(t *testing.T) {
	outline := &SimpleOutline{
		Contours: []Contour{
			{
				{X: 100, Y: 100, OnCurve: true},
				{X: 200, Y: 100, OnCurve: true},
				{X: 150, Y: 200, OnCurve: true},
			},
			{
				{X: 300, Y: 100, OnCurve: true},
				{X: 350, Y: 150, OnCurve: false},
				{X: 300, Y: 200, OnCurve: true},
				{X: 250, Y: 150, OnCurve: false},
			},
		},
		Instructions: []byte{0x01, 0x02, 0x03},
	}

	decoded, err := outline.Pack().Outline()
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if diff := cmp.Diff(outline, decoded); diff != "" {
		t.Errorf("round trip failed:\n%s", diff)
	}
}

func TestSimpleRoundTripEmpty(t *testing.T) {
	outline := &SimpleOutline{}

	decoded, err := outline.Pack().Outline()
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if diff := cmp.Diff(outline, decoded); diff != "" {
		t.Errorf("round trip failed:\n%s", diff)
	}
}

func TestSimpleRoundTripRepetition(t *testing.T) {
	// identical flag runs are stored with the repeat flag
	outline := &SimpleOutline{
		Contours: []Contour{
			{
				{X: 0, Y: 100, OnCurve: true},
				{X: 100, Y: 100, OnCurve: true},
				{X: 200, Y: 100, OnCurve: true},
				{X: 300, Y: 100, OnCurve: true},
			},
		},
	}

	decoded, err := outline.Pack().Outline()
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if diff := cmp.Diff(outline, decoded); diff != "" {
		t.Errorf("round trip failed:\n%s", diff)
	}
}

func TestSimpleNegativeCoords(t *testing.T) {
	outline := &SimpleOutline{
		Contours: []Contour{
			{
				{X: -100, Y: -200, OnCurve: true},
				{X: 300, Y: -1000, OnCurve: false},
				{X: -32768, Y: 32767, OnCurve: true},
			},
		},
	}

	decoded, err := outline.Pack().Outline()
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if diff := cmp.Diff(outline, decoded); diff != "" {
		t.Errorf("round trip failed:\n%s", diff)
	}
}

func TestGlyphsRoundTrip(t *testing.T) {
	square := &SimpleOutline{
		Contours: []Contour{
			{
				{X: 0, Y: 0, OnCurve: true},
				{X: 100, Y: 0, OnCurve: true},
				{X: 100, Y: 100, OnCurve: true},
				{X: 0, Y: 100, OnCurve: true},
			},
		},
	}

	glyphs := Glyphs{
		nil, // .notdef without outline
		square.AsGlyph(),
	}

	enc := glyphs.Encode()
	decoded, err := Decode(enc)
	if err != nil {
		t.Fatal(err)
	}

	if len(decoded) != 2 {
		t.Fatalf("got %d glyphs, want 2", len(decoded))
	}
	if decoded[0] != nil {
		t.Error("glyph 0 should be empty")
	}
	if decoded[1] == nil {
		t.Fatal("glyph 1 should not be empty")
	}
	if decoded[1].LLx != 0 || decoded[1].URx != 100 {
		t.Errorf("wrong bounding box: %v", decoded[1].Rect16)
	}

	data, ok := decoded[1].Data.(SimpleGlyph)
	if !ok {
		t.Fatalf("glyph 1 has type %T, want SimpleGlyph", decoded[1].Data)
	}
	outline, err := data.Outline()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(square.Contours, outline.Contours); diff != "" {
		t.Errorf("contours differ:\n%s", diff)
	}
}

func TestLocaFormat0(t *testing.T) {
	// format 0 stores offset/2; decoding must double the values
	square := &SimpleOutline{
		Contours: []Contour{
			{
				{X: 0, Y: 0, OnCurve: true},
				{X: 10, Y: 0, OnCurve: true},
				{X: 10, Y: 10, OnCurve: true},
			},
		},
	}
	glyphs := Glyphs{square.AsGlyph(), nil, square.AsGlyph()}

	enc := glyphs.Encode()
	if enc.LocaFormat != 0 {
		t.Fatalf("expected short loca format, got %d", enc.LocaFormat)
	}

	offs, err := decodeLoca(enc)
	if err != nil {
		t.Fatal(err)
	}
	if len(offs) != 4 {
		t.Fatalf("got %d offsets, want 4", len(offs))
	}
	// the empty glyph occupies no space
	if offs[1] != offs[2] {
		t.Errorf("empty glyph should have equal offsets, got %d and %d", offs[1], offs[2])
	}
	for i := 1; i < len(offs); i++ {
		if offs[i] < offs[i-1] {
			t.Errorf("offsets must not decrease: %v", offs)
		}
	}
}
