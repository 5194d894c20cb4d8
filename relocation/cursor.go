// This file is part of relocdump.
//
// relocdump is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// relocdump is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with relocdump.  If not, see <https://www.gnu.org/licenses/>.

package relocation

import (
	"encoding/binary"
	"fmt"

	"relocdump/curated"
	"relocdump/relocation/leb128"
)

// TruncatedError is returned whenever a read runs out of bytes mid-field.
// The cursor is not advanced by a failed read.
const TruncatedError = "relocation: truncated table: %v"

// Width is the size in bytes of the fixed-width relocation fields, as
// selected by the bitness of the target binary.
type Width int

// Valid Width values.
const (
	Width32 Width = 4
	Width64 Width = 8
)

// Cursor is a positioned view of the byte source containing a relocation
// table. All reads advance the position; a failed read advances nothing.
//
// A cursor must not be shared between readers. The cost of giving every
// table its own copy of the underlying bytes is preferred to the cost of
// synchronising access.
type Cursor struct {
	data  []byte
	order binary.ByteOrder
	pos   int
}

// NewCursor is the preferred method of initialisation for the Cursor type.
// The byte order is the byte order declared by the containing file.
func NewCursor(data []byte, order binary.ByteOrder) *Cursor {
	return &Cursor{
		data:  data,
		order: order,
	}
}

// Pos returns the current cursor position.
func (c *Cursor) Pos() uint64 {
	return uint64(c.pos)
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.data) - c.pos
}

// Seek moves the cursor to an absolute position. Seeking to the very end of
// the data is allowed; seeking beyond it is not.
func (c *Cursor) Seek(pos uint64) error {
	if pos > uint64(len(c.data)) {
		return curated.Errorf(TruncatedError,
			fmt.Sprintf("seek to %#x in %d bytes", pos, len(c.data)))
	}
	c.pos = int(pos)
	return nil
}

// ReadBytes returns the next n bytes.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if c.Remaining() < n {
		return nil, curated.Errorf(TruncatedError,
			fmt.Sprintf("%d bytes required, %d remaining", n, c.Remaining()))
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// ReadUint returns the next unsigned integer of the specified width, in the
// cursor's byte order.
func (c *Cursor) ReadUint(width Width) (uint64, error) {
	b, err := c.ReadBytes(int(width))
	if err != nil {
		return 0, err
	}
	if width == Width32 {
		return uint64(c.order.Uint32(b)), nil
	}
	return c.order.Uint64(b), nil
}

// ReadULEB128 returns the next unsigned LEB128 encoded value. The leb128
// error patterns distinguish a truncated value from one that exceeds the
// length bound.
func (c *Cursor) ReadULEB128() (uint64, error) {
	v, n, err := leb128.DecodeULEB128(c.data[c.pos:])
	if err != nil {
		return 0, err
	}
	c.pos += n
	return v, nil
}

// ReadSLEB128 returns the next signed LEB128 encoded value. The leb128
// error patterns distinguish a truncated value from one that exceeds the
// length bound.
func (c *Cursor) ReadSLEB128() (int64, error) {
	v, n, err := leb128.DecodeSLEB128(c.data[c.pos:])
	if err != nil {
		return 0, err
	}
	c.pos += n
	return v, nil
}
