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

package elffile_test

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"testing"

	"relocdump/elffile"
	"relocdump/relocation"
	"relocdump/test"
)

func TestEncodingForSectionType(t *testing.T) {
	type trial struct {
		typ elf.SectionType
		enc relocation.Encoding
		ok  bool
	}

	for _, tr := range []trial{
		{elf.SHT_REL, relocation.EncodingRel, true},
		{elf.SHT_RELA, relocation.EncodingRela, true},
		{elf.SectionType(0x60000001), relocation.EncodingAndroidRel, true},
		{elf.SectionType(0x60000002), relocation.EncodingAndroidRela, true},
		{elf.SHT_PROGBITS, 0, false},
		{elf.SHT_SYMTAB, 0, false},
	} {
		enc, ok := elffile.EncodingForSectionType(tr.typ)
		test.Equate(t, ok, tr.ok)
		if ok {
			test.Equate(t, enc == tr.enc, true)
		}
	}
}

// offsets within the hand-built image below.
const (
	relOffset    = 64
	relaOffset   = 80
	strtabOffset = 104
	shOffset     = 136
)

// buildImage returns a minimal 64-bit little-endian ELF binary with two
// relocation sections. The section header order deliberately disagrees with
// the file offset order.
//
// .rel.plt holds one REL entry at file offset 64: {0x2000, (3<<32)|2}
// .rela.dyn holds one RELA entry at file offset 80: {0x1000, (2<<32)|1, 8}
func buildImage() []byte {
	var img []byte

	u16 := func(v uint16) { img = binary.LittleEndian.AppendUint16(img, v) }
	u32 := func(v uint32) { img = binary.LittleEndian.AppendUint32(img, v) }
	u64 := func(v uint64) { img = binary.LittleEndian.AppendUint64(img, v) }

	// e_ident
	img = append(img, 0x7f, 'E', 'L', 'F')
	img = append(img, byte(elf.ELFCLASS64), byte(elf.ELFDATA2LSB), byte(elf.EV_CURRENT))
	img = append(img, make([]byte, 9)...)

	u16(uint16(elf.ET_DYN))
	u16(uint16(elf.EM_X86_64))
	u32(1)         // e_version
	u64(0)         // e_entry
	u64(0)         // e_phoff
	u64(shOffset)  // e_shoff
	u32(0)         // e_flags
	u16(64)        // e_ehsize
	u16(0)         // e_phentsize
	u16(0)         // e_phnum
	u16(64)        // e_shentsize
	u16(4)         // e_shnum
	u16(3)         // e_shstrndx

	// .rel.plt data
	u64(0x2000)
	u64((3 << 32) | 2)

	// .rela.dyn data
	u64(0x1000)
	u64((2 << 32) | 1)
	u64(8)

	// section name string table
	names := []byte("\x00.rela.dyn\x00.rel.plt\x00.shstrtab\x00")
	img = append(img, names...)

	// pad to the section header offset
	img = append(img, make([]byte, shOffset-strtabOffset-len(names))...)

	shdr := func(name uint32, typ elf.SectionType, offset uint64, size uint64, entsize uint64) {
		u32(name)
		u32(uint32(typ))
		u64(uint64(elf.SHF_ALLOC))
		u64(0) // sh_addr
		u64(offset)
		u64(size)
		u32(0) // sh_link
		u32(0) // sh_info
		u64(8) // sh_addralign
		u64(entsize)
	}

	// index 0 is the null section
	img = append(img, make([]byte, 64)...)

	shdr(1, elf.SHT_RELA, relaOffset, 24, 24) // .rela.dyn
	shdr(11, elf.SHT_REL, relOffset, 16, 16)  // .rel.plt
	shdr(20, elf.SHT_STRTAB, strtabOffset, uint64(len(names)), 0)

	return img
}

func TestFileProperties(t *testing.T) {
	f, err := elffile.NewFile(bytes.NewReader(buildImage()))
	test.ExpectedSuccess(t, err)
	defer f.Close()

	test.Equate(t, f.Width() == relocation.Width64, true)
	test.Equate(t, f.ByteOrder() == binary.ByteOrder(binary.LittleEndian), true)
	test.Equate(t, f.Machine() == elf.EM_X86_64, true)
}

func TestRelocationTables(t *testing.T) {
	f, err := elffile.NewFile(bytes.NewReader(buildImage()))
	test.ExpectedSuccess(t, err)
	defer f.Close()

	tables := f.RelocationTables()
	test.Equate(t, len(tables), 2)

	// file offset order, not section header order
	test.Equate(t, tables[0].Name, ".rel.plt")
	test.Equate(t, tables[0].Encoding == relocation.EncodingRel, true)
	test.Equate(t, tables[0].FileOffset, relOffset)
	test.Equate(t, tables[0].Length, 16)

	test.Equate(t, tables[1].Name, ".rela.dyn")
	test.Equate(t, tables[1].Encoding == relocation.EncodingRela, true)
	test.Equate(t, tables[1].FileOffset, relaOffset)
	test.Equate(t, tables[1].Length, 24)
}

func TestReader(t *testing.T) {
	f, err := elffile.NewFile(bytes.NewReader(buildImage()))
	test.ExpectedSuccess(t, err)
	defer f.Close()

	tables := f.RelocationTables()
	test.Equate(t, len(tables), 2)

	rd, err := f.Reader(tables[1])
	test.ExpectedSuccess(t, err)
	test.Equate(t, rd.ShouldMarkup(), true)

	more, err := rd.HasMoreRelocations()
	test.ExpectedSuccess(t, err)
	test.Equate(t, more, true)

	e, err := rd.Next()
	test.ExpectedSuccess(t, err)
	test.Equate(t, e.Offset, 0x1000)
	test.Equate(t, uint64(e.SymbolIndex()), 2)
	test.Equate(t, uint64(e.Type()), 1)
	test.Equate(t, e.Addend, 8)

	more, err = rd.HasMoreRelocations()
	test.ExpectedSuccess(t, err)
	test.Equate(t, more, false)

	// each call to Reader() is independent of any other
	rd2, err := f.Reader(tables[1])
	test.ExpectedSuccess(t, err)

	e, err = rd2.Next()
	test.ExpectedSuccess(t, err)
	test.Equate(t, e.Offset, 0x1000)
}

func TestNotElf(t *testing.T) {
	_, err := elffile.NewFile(bytes.NewReader([]byte("not an elf binary")))
	test.ExpectedFailure(t, err)
	test.ExpectCuratedError(t, err, elffile.Error)
}
