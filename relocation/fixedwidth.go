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

import "relocdump/curated"

// fixedWidthReader decodes the REL and RELA layouts. The two differ only in
// whether a third field, the addend, follows the offset and info fields.
// Every entry is 2 or 3 unsigned integers of the table's width, read
// straight from the cursor with no lookahead.
type fixedWidthReader struct {
	table
	hasAddend bool
}

func newFixedWidthReader(cur *Cursor, width Width, hasAddend bool) *fixedWidthReader {
	return &fixedWidthReader{
		table: table{
			cur:   cur,
			width: width,
		},
		hasAddend: hasAddend,
	}
}

func (rd *fixedWidthReader) Begin(offset uint64, length uint64) error {
	return rd.begin(offset, length)
}

// HasMoreRelocations is purely extent based: the table holds more entries
// while the cursor remains inside the length declared to Begin.
func (rd *fixedWidthReader) HasMoreRelocations() (bool, error) {
	if !rd.begun {
		return false, curated.Errorf(NotBegunError)
	}
	return rd.cur.Pos() < rd.offset+rd.length, nil
}

func (rd *fixedWidthReader) Next() (*Entry, error) {
	if !rd.begun {
		return nil, curated.Errorf(NotBegunError)
	}

	offset, err := rd.cur.ReadUint(rd.width)
	if err != nil {
		return nil, err
	}
	info, err := rd.cur.ReadUint(rd.width)
	if err != nil {
		return nil, err
	}

	var addend int64
	if rd.hasAddend {
		v, err := rd.cur.ReadUint(rd.width)
		if err != nil {
			return nil, err
		}
		if rd.width == Width32 {
			addend = int64(int32(v))
		} else {
			addend = int64(v)
		}
	}

	e := &Entry{
		Offset:    offset,
		Info:      info,
		Addend:    addend,
		index:     rd.index,
		width:     rd.width,
		hasAddend: rd.hasAddend,
	}
	rd.index++

	return e, nil
}

func (rd *fixedWidthReader) ShouldMarkup() bool {
	return true
}
