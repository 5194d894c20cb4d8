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

package leb128

import "relocdump/curated"

// error patterns returned by the decode functions.
const (
	TruncatedError = "leb128: truncated value"
	OverflowError  = "leb128: value longer than %d bytes"
)

// MaxLength is the maximum number of bytes a single encoded value may
// occupy. Ten 7-bit groups are sufficient for a full 64-bit value.
const MaxLength = 10

// DecodeULEB128 decodes a single unsigned LEB128 value from the start of the
// encoded slice. Returns the value and the number of bytes consumed.
func DecodeULEB128(encoded []uint8) (uint64, int, error) {
	var result uint64
	var shift uint64

	var n int
	for _, v := range encoded {
		n++
		if n > MaxLength {
			return 0, n, curated.Errorf(OverflowError, MaxLength)
		}
		result |= uint64(v&0x7f) << shift
		if v&0x80 == 0x00 {
			return result, n, nil
		}
		shift += 7
	}

	// ran out of bytes without seeing a terminating byte
	return 0, n, curated.Errorf(TruncatedError)
}

// DecodeSLEB128 decodes a single signed LEB128 value from the start of the
// encoded slice. Returns the value and the number of bytes consumed.
func DecodeSLEB128(encoded []uint8) (int64, int, error) {
	const size = 64

	var result int64
	var shift uint64

	var v uint8
	var n int
	for _, v = range encoded {
		n++
		if n > MaxLength {
			return 0, n, curated.Errorf(OverflowError, MaxLength)
		}
		result |= int64(v&0x7f) << shift
		shift += 7
		if v&0x80 == 0x00 {
			// sign extend from the final byte
			if shift < size && v&0x40 != 0x00 {
				result |= -(1 << shift)
			}
			return result, n, nil
		}
	}

	return 0, n, curated.Errorf(TruncatedError)
}
