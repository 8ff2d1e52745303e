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

// Package parser provides sequential big-endian reads over a seekable
// byte source, together with the error types shared by all table
// parsers.  All multi-byte values in an sfnt file are big-endian.
package parser

import (
	"bytes"
	"io"
)

// Parser reads big-endian primitives from an io.ReaderAt, keeping
// track of the current read position.
type Parser struct {
	r   io.ReaderAt
	pos int64
}

// New creates a new Parser reading from r, starting at offset 0.
func New(r io.ReaderAt) *Parser {
	return &Parser{r: r}
}

// FromReader creates a new Parser from an io.Reader.  If r does not
// implement io.ReaderAt, the remaining data is read into memory.
func FromReader(r io.Reader) (*Parser, error) {
	if ra, ok := r.(io.ReaderAt); ok {
		return New(ra), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return New(bytes.NewReader(data)), nil
}

// Pos returns the current read position.
func (p *Parser) Pos() int64 {
	return p.pos
}

// SeekPos moves the read position to the given absolute offset.
func (p *Parser) SeekPos(pos int64) {
	p.pos = pos
}

// Skip advances the read position by delta bytes.
func (p *Parser) Skip(delta int64) {
	p.pos += delta
}

// ReadBytes reads the next n bytes.
func (p *Parser) ReadBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	_, err := p.r.ReadAt(buf, p.pos)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	if err != nil {
		return nil, err
	}
	p.pos += int64(n)
	return buf, nil
}

// ReadUint8 reads a single byte.
func (p *Parser) ReadUint8() (uint8, error) {
	buf, err := p.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadUint16 reads an unsigned 16-bit integer.
func (p *Parser) ReadUint16() (uint16, error) {
	buf, err := p.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

// ReadUint32 reads an unsigned 32-bit integer.
func (p *Parser) ReadUint32() (uint32, error) {
	buf, err := p.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3]), nil
}

// ReadInt8 reads a signed byte.
func (p *Parser) ReadInt8() (int8, error) {
	val, err := p.ReadUint8()
	return int8(val), err
}

// ReadInt16 reads a signed 16-bit integer.
func (p *Parser) ReadInt16() (int16, error) {
	val, err := p.ReadUint16()
	return int16(val), err
}

// ReadInt64 reads a signed 64-bit integer.  The sfnt format uses this
// only for the LONGDATETIME fields of the "head" table.
func (p *Parser) ReadInt64() (int64, error) {
	buf, err := p.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	var val uint64
	for _, b := range buf {
		val = val<<8 | uint64(b)
	}
	return int64(val), nil
}

// ReadTag reads a four-byte table tag.
func (p *Parser) ReadTag() ([4]byte, error) {
	var tag [4]byte
	buf, err := p.ReadBytes(4)
	if err != nil {
		return tag, err
	}
	copy(tag[:], buf)
	return tag, nil
}
