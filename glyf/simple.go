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
	"seehuhn.de/go/postscript/funit"

	"github.com/Ioloboss/tapestry/parser"
)

// SimpleGlyph is a glyph which stores its own outline, as opposed to a
// composite glyph which references other glyphs.  The outline is kept
// in its binary form and unpacked on demand.
type SimpleGlyph struct {
	NumContours int16
	Encoded     []byte
}

// A Point is a point in a glyph outline.  Off-curve points are the
// control points of quadratic Bézier segments.
type Point struct {
	X, Y    funit.Int16
	OnCurve bool
}

// A Contour is one closed loop of a glyph outline.  The contour is
// implicitly closed from the last point back to the first.
type Contour []Point

// SimpleOutline contains the decoded contours of a SimpleGlyph.
type SimpleOutline struct {
	Contours     []Contour
	Instructions []byte
}

// https://docs.microsoft.com/en-us/typography/opentype/spec/glyf#simpleGlyphFlags
const (
	flagOnCurve    = 0x01 // ON_CURVE_POINT
	flagXShortVec  = 0x02 // X_SHORT_VECTOR
	flagYShortVec  = 0x04 // Y_SHORT_VECTOR
	flagRepeat     = 0x08 // REPEAT_FLAG
	flagXSameOrPos = 0x10 // X_IS_SAME_OR_POSITIVE_X_SHORT_VECTOR
	flagYSameOrPos = 0x20 // Y_IS_SAME_OR_POSITIVE_Y_SHORT_VECTOR
)

// Outline decodes the contours of the glyph.
func (sg SimpleGlyph) Outline() (*SimpleOutline, error) {
	buf := sg.Encoded

	numContours := int(sg.NumContours)
	if len(buf) < 2*numContours+2 {
		return nil, errInvalidGlyphData
	}

	endPtsOfContours := make([]uint16, numContours)
	for i := range endPtsOfContours {
		endPtsOfContours[i] = uint16(buf[2*i])<<8 | uint16(buf[2*i+1])
	}
	buf = buf[2*numContours:]

	var numPoints int
	if numContours > 0 {
		numPoints = int(endPtsOfContours[numContours-1]) + 1
	}

	instructionLength := int(buf[0])<<8 | int(buf[1])
	if len(buf) < 2+instructionLength {
		return nil, errInvalidGlyphData
	}
	var instructions []byte
	if instructionLength > 0 {
		instructions = make([]byte, instructionLength)
		copy(instructions, buf[2:2+instructionLength])
	}
	buf = buf[2+instructionLength:]

	flags := make([]byte, numPoints)
	for i := 0; i < numPoints; {
		if len(buf) < 1 {
			return nil, errInvalidGlyphData
		}
		flag := buf[0]
		buf = buf[1:]
		flags[i] = flag
		i++
		if flag&flagRepeat != 0 {
			if len(buf) < 1 {
				return nil, errInvalidGlyphData
			}
			count := int(buf[0])
			buf = buf[1:]
			for count > 0 && i < numPoints {
				flags[i] = flag
				i++
				count--
			}
		}
	}

	xx, buf, err := decodeCoords(flags, buf, flagXShortVec, flagXSameOrPos)
	if err != nil {
		return nil, err
	}
	yy, _, err := decodeCoords(flags, buf, flagYShortVec, flagYSameOrPos)
	if err != nil {
		return nil, err
	}

	var cc []Contour
	if numContours > 0 {
		cc = make([]Contour, numContours)
		start := 0
		for i := 0; i < numContours; i++ {
			end := int(endPtsOfContours[i]) + 1
			if end < start || end > numPoints {
				return nil, errInvalidGlyphData
			}
			contour := make([]Point, end-start)
			for j := start; j < end; j++ {
				contour[j-start] = Point{xx[j], yy[j], flags[j]&flagOnCurve != 0}
			}
			cc[i] = contour
			start = end
		}
	}

	return &SimpleOutline{
		Contours:     cc,
		Instructions: instructions,
	}, nil
}

// decodeCoords decodes one coordinate stream.  Each delta is a signed
// short, an unsigned byte with the sign in sameOrPosFlag, or zero
// ("same as previous"); the deltas accumulate into absolute values.
func decodeCoords(flags []byte, buf []byte, shortFlag, sameOrPosFlag byte) ([]funit.Int16, []byte, error) {
	vv := make([]funit.Int16, len(flags))
	var v funit.Int16
	for i, flag := range flags {
		if flag&shortFlag != 0 {
			if len(buf) < 1 {
				return nil, nil, errInvalidGlyphData
			}
			d := funit.Int16(buf[0])
			buf = buf[1:]
			if flag&sameOrPosFlag != 0 {
				v += d
			} else {
				v -= d
			}
		} else if flag&sameOrPosFlag == 0 {
			if len(buf) < 2 {
				return nil, nil, errInvalidGlyphData
			}
			v += funit.Int16(buf[0])<<8 | funit.Int16(buf[1])
			buf = buf[2:]
		}
		vv[i] = v
	}
	return vv, buf, nil
}

// removePadding truncates the encoded data to the exact length of the
// glyph description, so that re-encoding is byte-identical.
func (sg *SimpleGlyph) removePadding() error {
	buf := sg.Encoded
	numContours := int(sg.NumContours)

	if len(buf) < 2*numContours+2 {
		return errInvalidGlyphData
	}
	pos := 2 * numContours

	var numPoints int
	if numContours > 0 {
		numPoints = (int(buf[pos-2])<<8 | int(buf[pos-1])) + 1
	}

	instructionLength := int(buf[pos])<<8 | int(buf[pos+1])
	pos += 2 + instructionLength

	coordBytes := 0
	for i := 0; i < numPoints; {
		if pos >= len(buf) {
			return errInvalidGlyphData
		}
		flag := buf[pos]
		pos++

		repeat := 1
		if flag&flagRepeat != 0 {
			if pos >= len(buf) {
				return errInvalidGlyphData
			}
			repeat = int(buf[pos]) + 1
			pos++
		}

		var xBytes, yBytes int
		if flag&flagXShortVec != 0 {
			xBytes = 1
		} else if flag&flagXSameOrPos == 0 {
			xBytes = 2
		}
		if flag&flagYShortVec != 0 {
			yBytes = 1
		} else if flag&flagYSameOrPos == 0 {
			yBytes = 2
		}

		coordBytes += (xBytes + yBytes) * repeat
		i += repeat
	}

	pos += coordBytes
	if pos > len(buf) {
		return errInvalidGlyphData
	}

	sg.Encoded = buf[:pos]
	return nil
}

// Pack encodes the outline back into the binary format.
func (o *SimpleOutline) Pack() SimpleGlyph {
	var numContours int
	var endPtsOfContours []uint16
	var totalPoints int

	if o.Contours != nil {
		numContours = len(o.Contours)
		endPtsOfContours = make([]uint16, numContours)
		for i, contour := range o.Contours {
			totalPoints += len(contour)
			endPtsOfContours[i] = uint16(totalPoints - 1)
		}
	}

	points := make([]Point, 0, totalPoints)
	for _, contour := range o.Contours {
		points = append(points, contour...)
	}

	flags := make([]byte, totalPoints)
	xDeltas := make([]funit.Int16, totalPoints)
	yDeltas := make([]funit.Int16, totalPoints)

	var prevX, prevY funit.Int16
	for i, pt := range points {
		xDeltas[i] = pt.X - prevX
		yDeltas[i] = pt.Y - prevY
		prevX = pt.X
		prevY = pt.Y

		if pt.OnCurve {
			flags[i] |= flagOnCurve
		}

		if xDeltas[i] == 0 {
			flags[i] |= flagXSameOrPos
		} else if -255 <= xDeltas[i] && xDeltas[i] <= 255 {
			flags[i] |= flagXShortVec
			if xDeltas[i] > 0 {
				flags[i] |= flagXSameOrPos
			}
		}

		if yDeltas[i] == 0 {
			flags[i] |= flagYSameOrPos
		} else if -255 <= yDeltas[i] && yDeltas[i] <= 255 {
			flags[i] |= flagYShortVec
			if yDeltas[i] > 0 {
				flags[i] |= flagYSameOrPos
			}
		}
	}

	var buf []byte

	for _, endPt := range endPtsOfContours {
		buf = append(buf, byte(endPt>>8), byte(endPt))
	}

	instructionLength := len(o.Instructions)
	buf = append(buf, byte(instructionLength>>8), byte(instructionLength))
	buf = append(buf, o.Instructions...)

	// flags, with run-length compression
	i := 0
	for i < totalPoints {
		flag := flags[i]
		runLength := 1
		for j := i + 1; j < totalPoints && flags[j] == flag && runLength < 256; j++ {
			runLength++
		}
		if runLength > 1 {
			buf = append(buf, flag|flagRepeat, byte(runLength-1))
		} else {
			buf = append(buf, flag)
		}
		i += runLength
	}

	buf = appendCoords(buf, flags, xDeltas, flagXShortVec, flagXSameOrPos)
	buf = appendCoords(buf, flags, yDeltas, flagYShortVec, flagYSameOrPos)

	return SimpleGlyph{
		NumContours: int16(numContours),
		Encoded:     buf,
	}
}

// appendCoords appends one coordinate delta stream to buf.
func appendCoords(buf []byte, flags []byte, deltas []funit.Int16, shortFlag, sameOrPosFlag byte) []byte {
	for i, flag := range flags {
		if flag&shortFlag != 0 {
			if flag&sameOrPosFlag != 0 {
				buf = append(buf, byte(deltas[i]))
			} else {
				buf = append(buf, byte(-deltas[i]))
			}
		} else if flag&sameOrPosFlag == 0 {
			buf = append(buf, byte(deltas[i]>>8), byte(deltas[i]))
		}
	}
	return buf
}

// AsGlyph wraps the outline in a Glyph, computing the bounding box
// from the points.
func (o *SimpleOutline) AsGlyph() *Glyph {
	var bbox funit.Rect16
	first := true
	for _, contour := range o.Contours {
		for _, pt := range contour {
			if first || pt.X < bbox.LLx {
				bbox.LLx = pt.X
			}
			if first || pt.X > bbox.URx {
				bbox.URx = pt.X
			}
			if first || pt.Y < bbox.LLy {
				bbox.LLy = pt.Y
			}
			if first || pt.Y > bbox.URy {
				bbox.URy = pt.Y
			}
			first = false
		}
	}
	return &Glyph{
		Rect16: bbox,
		Data:   o.Pack(),
	}
}

var errInvalidGlyphData = &parser.InvalidFontError{
	SubSystem: "tapestry/glyf",
	Reason:    "invalid glyph data",
}
