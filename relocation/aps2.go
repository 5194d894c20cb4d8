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
	"fmt"

	"relocdump/curated"
	"relocdump/logger"
)

// error patterns particular to the packed format.
const (
	// the table does not start with the APS2 magic. failed before any entry
	// was produced
	BadMagicError = "aps2: invalid magic: %v"

	// a group carries addend data but the table's encoding defines no
	// addend
	UnexpectedAddendError = "aps2: unexpected addend in non-addend table"
)

// the 4 byte literal at the start of every packed table.
const aps2Magic = "APS2"

// group flag bits. a group header declares which of its parameters are
// shared by every entry in the group.
const (
	groupedByInfo        = 0x01
	groupedByOffsetDelta = 0x02
	groupedByAddend      = 0x04
	groupHasAddend       = 0x08
)

// aps2Reader decodes the packed relocation stream. Entries arrive in groups
// sharing some combination of info value, offset delta and addend delta;
// everything not fixed by the group header is a signed LEB128 delta per
// entry.
//
// The running offset, info and addend accumulate across the whole table,
// not per group. The addend resets to zero at any group that declares it
// has no addend data.
type aps2Reader struct {
	table
	hasAddend bool

	// totalCount is declared by the stream header and is the authoritative
	// exhaustion test. the length given to Begin is advisory only
	totalCount int64
	decoded    int64

	// position within the current group. a new group header is read when
	// groupIndex reaches groupSize
	groupSize        int64
	groupIndex       int64
	groupFlags       int64
	groupOffsetDelta int64

	// running state
	rOffset int64
	rInfo   int64
	rAddend int64
}

func newAps2Reader(cur *Cursor, width Width, hasAddend bool) *aps2Reader {
	return &aps2Reader{
		table: table{
			cur:   cur,
			width: width,
		},
		hasAddend: hasAddend,
	}
}

// Begin reads the stream header: the magic literal, the entry count and the
// seed for the running offset.
func (rd *aps2Reader) Begin(offset uint64, length uint64) error {
	if err := rd.begin(offset, length); err != nil {
		return err
	}

	magic, err := rd.cur.ReadBytes(len(aps2Magic))
	if err != nil {
		return err
	}
	if string(magic) != aps2Magic {
		return curated.Errorf(BadMagicError, fmt.Sprintf("% 02x", magic))
	}

	rd.totalCount, err = rd.cur.ReadSLEB128()
	if err != nil {
		return err
	}
	rd.rOffset, err = rd.cur.ReadSLEB128()
	if err != nil {
		return err
	}

	logger.Logf("aps2", "table at %#x: %d relocations, initial offset %#x",
		offset, rd.totalCount, rd.rOffset)

	return nil
}

// HasMoreRelocations is count based, unlike the fixed-width readers. The
// stream header says how many entries there are and trailing bytes beyond
// the final entry are never inspected.
func (rd *aps2Reader) HasMoreRelocations() (bool, error) {
	if !rd.begun {
		return false, curated.Errorf(NotBegunError)
	}
	return rd.decoded < rd.totalCount, nil
}

func (rd *aps2Reader) Next() (*Entry, error) {
	if !rd.begun {
		return nil, curated.Errorf(NotBegunError)
	}

	if rd.groupIndex == rd.groupSize {
		if err := rd.readGroupFields(); err != nil {
			return nil, err
		}
	}

	if rd.groupFlags&groupedByOffsetDelta != 0 {
		rd.rOffset += rd.groupOffsetDelta
	} else {
		d, err := rd.cur.ReadSLEB128()
		if err != nil {
			return nil, err
		}
		rd.rOffset += d
	}

	if rd.groupFlags&groupedByInfo == 0 {
		v, err := rd.cur.ReadSLEB128()
		if err != nil {
			return nil, err
		}
		rd.rInfo = v
	}

	if rd.hasAddend && rd.groupFlags&groupHasAddend != 0 && rd.groupFlags&groupedByAddend == 0 {
		d, err := rd.cur.ReadSLEB128()
		if err != nil {
			return nil, err
		}
		rd.rAddend += d
	}

	e := &Entry{
		Offset:    uint64(rd.rOffset),
		Info:      uint64(rd.rInfo),
		index:     rd.index,
		width:     rd.width,
		hasAddend: rd.hasAddend,
	}
	if rd.hasAddend {
		e.Addend = rd.rAddend
	}
	rd.index++

	logger.Logf("aps2", "read reloc [%#016x, %#016x, %#016x]",
		e.Offset, e.Info, e.Addend)

	rd.decoded++
	rd.groupIndex++

	// the byte length declared for the table plays no part in the
	// exhaustion test but a disagreement with the bytes actually consumed
	// is worth knowing about
	if rd.decoded == rd.totalCount {
		if consumed := rd.cur.Pos() - rd.offset; consumed != rd.length {
			logger.Logf("aps2", "declared table length %d but %d bytes consumed",
				rd.length, consumed)
		}
	}

	return e, nil
}

// readGroupFields decodes one group header and resets the group position.
func (rd *aps2Reader) readGroupFields() error {
	var err error

	rd.groupSize, err = rd.cur.ReadSLEB128()
	if err != nil {
		return err
	}
	rd.groupFlags, err = rd.cur.ReadSLEB128()
	if err != nil {
		return err
	}

	// addend data in a table whose encoding defines no addend is not
	// recoverable. without knowing whether the group or the entries carry
	// the addend bytes the stream cannot even be skipped reliably
	if rd.groupFlags&groupHasAddend != 0 && !rd.hasAddend {
		return curated.Errorf(UnexpectedAddendError)
	}

	if rd.groupFlags&groupedByOffsetDelta != 0 {
		rd.groupOffsetDelta, err = rd.cur.ReadSLEB128()
		if err != nil {
			return err
		}
	}

	if rd.groupFlags&groupedByInfo != 0 {
		rd.rInfo, err = rd.cur.ReadSLEB128()
		if err != nil {
			return err
		}
	}

	if rd.groupFlags&groupHasAddend != 0 && rd.groupFlags&groupedByAddend != 0 {
		d, err := rd.cur.ReadSLEB128()
		if err != nil {
			return err
		}
		rd.rAddend += d
	} else if rd.groupFlags&groupHasAddend == 0 {
		rd.rAddend = 0
	}

	rd.groupIndex = 0

	logger.Logf("aps2", "new group (begins at %d, size %d, flags %#x)",
		rd.decoded, rd.groupSize, rd.groupFlags)

	return nil
}

// ShouldMarkup returns false: packed entry offsets are derived values and
// the bytes they were derived from are not independently addressable.
func (rd *aps2Reader) ShouldMarkup() bool {
	return false
}
