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

package leb128_test

import (
	"testing"

	"relocdump/relocation/leb128"
	"relocdump/test"
)

func TestULEB128(t *testing.T) {
	v, n, err := leb128.DecodeULEB128([]uint8{0x00})
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 0)
	test.Equate(t, n, 1)

	v, n, err = leb128.DecodeULEB128([]uint8{0x7f})
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 127)
	test.Equate(t, n, 1)

	// the worked example from the DWARF standard
	v, n, err = leb128.DecodeULEB128([]uint8{0xe5, 0x8e, 0x26})
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 624485)
	test.Equate(t, n, 3)

	// decoding stops at the terminating byte, whatever follows
	v, n, err = leb128.DecodeULEB128([]uint8{0x02, 0xff, 0xff})
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, 2)
	test.Equate(t, n, 1)
}

func TestSLEB128(t *testing.T) {
	v, n, err := leb128.DecodeSLEB128([]uint8{0x3f})
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, int64(63))
	test.Equate(t, n, 1)

	v, n, err = leb128.DecodeSLEB128([]uint8{0x40})
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, int64(-64))
	test.Equate(t, n, 1)

	v, n, err = leb128.DecodeSLEB128([]uint8{0x7f})
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, int64(-1))
	test.Equate(t, n, 1)

	// the worked example from the DWARF standard
	v, n, err = leb128.DecodeSLEB128([]uint8{0x9b, 0xf1, 0x59})
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, int64(-624485))
	test.Equate(t, n, 3)
}

func TestTruncation(t *testing.T) {
	_, _, err := leb128.DecodeULEB128([]uint8{})
	test.ExpectCuratedError(t, err, leb128.TruncatedError)

	_, _, err = leb128.DecodeULEB128([]uint8{0x80})
	test.ExpectCuratedError(t, err, leb128.TruncatedError)

	_, _, err = leb128.DecodeSLEB128([]uint8{0xff, 0xff})
	test.ExpectCuratedError(t, err, leb128.TruncatedError)
}

func TestLengthBound(t *testing.T) {
	// ten bytes is enough for a full 64-bit value
	encoded := []uint8{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	v, n, err := leb128.DecodeULEB128(encoded)
	test.ExpectedSuccess(t, err)
	test.Equate(t, v, uint64(1)<<63)
	test.Equate(t, n, 10)

	// an eleventh byte is not
	encoded = []uint8{0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x01}
	_, _, err = leb128.DecodeULEB128(encoded)
	test.ExpectCuratedError(t, err, leb128.OverflowError)

	_, _, err = leb128.DecodeSLEB128(encoded)
	test.ExpectCuratedError(t, err, leb128.OverflowError)
}
