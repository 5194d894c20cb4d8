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
	"strings"
)

// Entry is one decoded relocation: an instruction to patch the location at
// Offset using the symbol and relocation type packed into Info, optionally
// with the constant Addend.
//
// The wire layouts being represented:
//
//	REL entry:
//
//	typedef struct {
//	    Elf32_Addr   r_offset;
//	    Elf32_Word   r_info;
//	} Elf32_Rel;
//
//	typedef struct {
//	    Elf64_Addr   r_offset;
//	    Elf64_Xword  r_info;
//	} Elf64_Rel;
//
//	RELA entry with addend:
//
//	typedef struct {
//	    Elf32_Addr    r_offset;
//	    Elf32_Word    r_info;
//	    Elf32_Sword   r_addend;
//	} Elf32_Rela;
//
//	typedef struct {
//	    Elf64_Addr    r_offset;
//	    Elf64_Xword   r_info;
//	    Elf64_Sxword  r_addend;
//	} Elf64_Rela;
//
// Entries produced by the packed APS2 reader use the same representation
// once their deltas have been resolved.
type Entry struct {
	// the location at which to apply the relocation action. for a
	// relocatable file this is a byte offset from the beginning of the
	// section; for an executable or shared object it is a virtual address.
	//
	// exported as a field because a downstream collaborator may rebase it
	// after decoding.
	Offset uint64

	// the symbol table index and the type of relocation, packed together.
	// unpacking depends on the width of the target. use SymbolIndex() and
	// Type()
	Info uint64

	// a constant addend used to compute the value stored at the relocated
	// location. always zero for entries from a format without addends
	Addend int64

	index     int
	width     Width
	hasAddend bool
}

// Index returns the ordinal position of the entry within its table.
func (e *Entry) Index() int {
	return e.index
}

// Width returns the field width inherited from the owning table.
func (e *Entry) Width() Width {
	return e.width
}

// HasAddend returns true if the entry's format defines an addend. This is a
// property of the format, not of the decoded bytes.
func (e *Entry) HasAddend() bool {
	return e.hasAddend
}

// SymbolIndex returns the symbol table index packed into the Info field.
func (e *Entry) SymbolIndex() uint32 {
	if e.width == Width32 {
		return uint32(e.Info >> 8)
	}
	return uint32(e.Info >> 32)
}

// Type returns the relocation type packed into the Info field. Relocation
// types are processor-specific.
func (e *Entry) Type() uint32 {
	if e.width == Width32 {
		return uint32(e.Info & 0xff)
	}
	return uint32(e.Info & 0xffffffff)
}

// Size returns the number of bytes the entry occupies in its fixed-width
// serialisation: 8 or 12 bytes on a 32-bit target, 16 or 24 on a 64-bit
// target, depending on whether the format carries an addend.
func (e *Entry) Size() int {
	if e.hasAddend {
		if e.width == Width32 {
			return 12
		}
		return 24
	}
	if e.width == Width32 {
		return 8
	}
	return 16
}

// Bytes serialises the entry in its fixed-width layout. For an entry decoded
// from a fixed-width table this reproduces the input bytes exactly.
func (e *Entry) Bytes(order binary.ByteOrder) []byte {
	b := make([]byte, e.Size())
	if e.width == Width32 {
		order.PutUint32(b, uint32(e.Offset))
		order.PutUint32(b[4:], uint32(e.Info))
		if e.hasAddend {
			order.PutUint32(b[8:], uint32(e.Addend))
		}
	} else {
		order.PutUint64(b, e.Offset)
		order.PutUint64(b[8:], e.Info)
		if e.hasAddend {
			order.PutUint64(b[16:], uint64(e.Addend))
		}
	}
	return b
}

func (e *Entry) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("offset: %#x - type: %#x - symbol: %#x",
		e.Offset, e.Type(), e.SymbolIndex()))
	if e.hasAddend {
		s.WriteString(fmt.Sprintf(" - addend: %#x", e.Addend))
	}
	return s.String()
}
