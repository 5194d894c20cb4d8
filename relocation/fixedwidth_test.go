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

package relocation_test

import (
	"bytes"
	"encoding/binary"
	"testing"

	"relocdump/relocation"
	"relocdump/test"
)

func TestRel32(t *testing.T) {
	// one REL entry: offset 0x00001000, info 0x00000101
	data := make([]byte, 8)
	binary.LittleEndian.PutUint32(data, 0x00001000)
	binary.LittleEndian.PutUint32(data[4:], 0x00000101)

	cur := relocation.NewCursor(data, binary.LittleEndian)
	rd, err := relocation.NewReader(relocation.EncodingRel, cur, relocation.Width32)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, rd.Begin(0, 8))
	test.Equate(t, rd.ShouldMarkup(), true)

	more, err := rd.HasMoreRelocations()
	test.ExpectedSuccess(t, err)
	test.Equate(t, more, true)

	e, err := rd.Next()
	test.ExpectedSuccess(t, err)
	test.Equate(t, e.Offset, 0x1000)
	test.Equate(t, uint64(e.SymbolIndex()), 1)
	test.Equate(t, uint64(e.Type()), 1)
	test.Equate(t, e.Addend, 0)
	test.Equate(t, e.HasAddend(), false)
	test.Equate(t, e.Index(), 0)
	test.Equate(t, e.Size(), 8)

	more, err = rd.HasMoreRelocations()
	test.ExpectedSuccess(t, err)
	test.Equate(t, more, false)
}

func TestRela64RoundTrip(t *testing.T) {
	data := make([]byte, 24)
	binary.LittleEndian.PutUint64(data, 0x0000000000403fe0)
	binary.LittleEndian.PutUint64(data[8:], 0x0000000500000001)
	binary.LittleEndian.PutUint64(data[16:], 0xfffffffffffffff8)

	cur := relocation.NewCursor(data, binary.LittleEndian)
	rd, err := relocation.NewReader(relocation.EncodingRela, cur, relocation.Width64)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, rd.Begin(0, 24))

	e, err := rd.Next()
	test.ExpectedSuccess(t, err)
	test.Equate(t, e.Offset, 0x403fe0)
	test.Equate(t, uint64(e.SymbolIndex()), 5)
	test.Equate(t, uint64(e.Type()), 1)
	test.Equate(t, e.Addend, -8)
	test.Equate(t, e.HasAddend(), true)
	test.Equate(t, e.Size(), 24)

	// serialising the decoded entry reproduces the input bytes exactly
	if !bytes.Equal(e.Bytes(binary.LittleEndian), data) {
		t.Errorf("round trip failed: % 02x", e.Bytes(binary.LittleEndian))
	}
}

func TestRela32RoundTrip(t *testing.T) {
	data := make([]byte, 12)
	binary.BigEndian.PutUint32(data, 0x00002000)
	binary.BigEndian.PutUint32(data[4:], 0x00000316)
	binary.BigEndian.PutUint32(data[8:], 0xfffffffc)

	cur := relocation.NewCursor(data, binary.BigEndian)
	rd, err := relocation.NewReader(relocation.EncodingRela, cur, relocation.Width32)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, rd.Begin(0, 12))

	e, err := rd.Next()
	test.ExpectedSuccess(t, err)
	test.Equate(t, e.Offset, 0x2000)
	test.Equate(t, uint64(e.SymbolIndex()), 3)
	test.Equate(t, uint64(e.Type()), 0x16)
	test.Equate(t, e.Addend, -4)
	test.Equate(t, e.Size(), 12)

	if !bytes.Equal(e.Bytes(binary.BigEndian), data) {
		t.Errorf("round trip failed: % 02x", e.Bytes(binary.BigEndian))
	}
}

func TestExtent(t *testing.T) {
	// three REL entries at 64-bit width, decoded from the middle of a
	// larger byte range
	const numEntries = 3
	const entrySize = 16
	const tableOffset = 8

	data := make([]byte, tableOffset+numEntries*entrySize+4)
	for i := 0; i < numEntries; i++ {
		o := tableOffset + i*entrySize
		binary.BigEndian.PutUint64(data[o:], uint64(0x1000+i*8))
		binary.BigEndian.PutUint64(data[o+8:], uint64(i)<<32|0x2a)
	}

	cur := relocation.NewCursor(data, binary.BigEndian)
	rd, err := relocation.NewReader(relocation.EncodingRel, cur, relocation.Width64)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, rd.Begin(tableOffset, numEntries*entrySize))

	var decoded int
	for {
		more, err := rd.HasMoreRelocations()
		test.ExpectedSuccess(t, err)
		if !more {
			break // decode loop
		}

		e, err := rd.Next()
		test.ExpectedSuccess(t, err)
		test.Equate(t, e.Index(), decoded)
		test.Equate(t, e.Offset, 0x1000+decoded*8)
		test.Equate(t, uint64(e.SymbolIndex()), decoded)
		test.Equate(t, uint64(e.Type()), 0x2a)
		decoded++
	}

	test.Equate(t, decoded, numEntries)

	// the cursor finishes exactly at the end of the declared extent
	test.Equate(t, cur.Pos(), tableOffset+numEntries*entrySize)
}

func TestLifecycle(t *testing.T) {
	data := make([]byte, 16)

	cur := relocation.NewCursor(data, binary.LittleEndian)
	rd, err := relocation.NewReader(relocation.EncodingRel, cur, relocation.Width64)
	test.ExpectedSuccess(t, err)

	// use before Begin()
	_, err = rd.HasMoreRelocations()
	test.ExpectCuratedError(t, err, relocation.NotBegunError)
	_, err = rd.Next()
	test.ExpectCuratedError(t, err, relocation.NotBegunError)

	// Begin() twice
	test.ExpectedSuccess(t, rd.Begin(0, 16))
	err = rd.Begin(0, 16)
	test.ExpectCuratedError(t, err, relocation.AlreadyBegunError)
}

func TestTruncatedFixedWidth(t *testing.T) {
	// six bytes is not enough for even one 32-bit REL entry
	data := make([]byte, 6)

	cur := relocation.NewCursor(data, binary.LittleEndian)
	rd, err := relocation.NewReader(relocation.EncodingRel, cur, relocation.Width32)
	test.ExpectedSuccess(t, err)
	test.ExpectedSuccess(t, rd.Begin(0, 8))

	_, err = rd.Next()
	test.ExpectCuratedError(t, err, relocation.TruncatedError)
}

func TestUnknownEncoding(t *testing.T) {
	cur := relocation.NewCursor(nil, binary.LittleEndian)
	_, err := relocation.NewReader(relocation.Encoding(99), cur, relocation.Width64)
	test.ExpectCuratedError(t, err, relocation.UnknownEncodingError)
}
