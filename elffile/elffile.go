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

// Package elffile is the container side of relocation decoding: it opens an
// ELF binary, answers the questions the relocation readers need answering
// (field width, byte order) and locates the relocation tables among the
// file's sections.
//
// Parsing of the ELF container itself is left to the debug/elf package.
// This package adds only what debug/elf does not provide: the Android
// packed relocation section types and the handover to a relocation.Reader.
package elffile

import (
	"debug/elf"
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/exp/slices"

	"relocdump/curated"
	"relocdump/relocation"
)

// Error is the pattern used for all failures originating in this package.
const Error = "elffile: %v"

// the Android packed relocation section types. debug/elf does not name
// them.
const (
	shtAndroidRel  = elf.SectionType(0x60000001)
	shtAndroidRela = elf.SectionType(0x60000002)
)

// File is an open ELF binary.
type File struct {
	elf    *elf.File
	closer io.Closer
}

// Open an ELF binary by filename.
func Open(filename string) (*File, error) {
	ef, err := elf.Open(filename)
	if err != nil {
		return nil, curated.Errorf(Error, err)
	}
	return &File{elf: ef, closer: ef}, nil
}

// NewFile reads an ELF binary from an io.ReaderAt.
func NewFile(r io.ReaderAt) (*File, error) {
	ef, err := elf.NewFile(r)
	if err != nil {
		return nil, curated.Errorf(Error, err)
	}
	return &File{elf: ef}, nil
}

// Close the underlying file, if Open() was used.
func (f *File) Close() error {
	if f.closer == nil {
		return nil
	}
	return f.closer.Close()
}

// Width of the relocation fields for this binary, per the ELF class.
func (f *File) Width() relocation.Width {
	if f.elf.Class == elf.ELFCLASS32 {
		return relocation.Width32
	}
	return relocation.Width64
}

// ByteOrder declared by the binary.
func (f *File) ByteOrder() binary.ByteOrder {
	return f.elf.ByteOrder
}

// Machine is the target architecture declared by the binary. Relocation
// types are only meaningful with respect to this value.
func (f *File) Machine() elf.Machine {
	return f.elf.Machine
}

// Table describes one relocation table found in the binary.
type Table struct {
	Name       string
	Encoding   relocation.Encoding
	FileOffset uint64
	Length     uint64

	section *elf.Section
}

func (t Table) String() string {
	return fmt.Sprintf("%s (%v) at %#x, %d bytes", t.Name, t.Encoding, t.FileOffset, t.Length)
}

// EncodingForSectionType maps an ELF section type to a relocation table
// encoding. The second return value is false for section types that do not
// hold relocations.
func EncodingForSectionType(typ elf.SectionType) (relocation.Encoding, bool) {
	switch typ {
	case elf.SHT_REL:
		return relocation.EncodingRel, true
	case elf.SHT_RELA:
		return relocation.EncodingRela, true
	case shtAndroidRel:
		return relocation.EncodingAndroidRel, true
	case shtAndroidRela:
		return relocation.EncodingAndroidRela, true
	}
	return 0, false
}

// RelocationTables returns every relocation table in the binary, in file
// offset order.
func (f *File) RelocationTables() []Table {
	var tables []Table

	for _, sec := range f.elf.Sections {
		enc, ok := EncodingForSectionType(sec.Type)
		if !ok {
			continue
		}
		tables = append(tables, Table{
			Name:       sec.Name,
			Encoding:   enc,
			FileOffset: sec.Offset,
			Length:     sec.Size,
			section:    sec,
		})
	}

	slices.SortFunc(tables, func(a, b Table) int {
		switch {
		case a.FileOffset < b.FileOffset:
			return -1
		case a.FileOffset > b.FileOffset:
			return 1
		}
		return 0
	})

	return tables
}

// Reader returns a begun relocation.Reader over a private copy of the
// table's bytes. Each call returns an independent reader; tables can be
// decoded concurrently as long as every goroutine uses its own.
func (f *File) Reader(t Table) (relocation.Reader, error) {
	data, err := t.section.Data()
	if err != nil {
		return nil, curated.Errorf(Error, err)
	}

	cur := relocation.NewCursor(data, f.ByteOrder())
	rd, err := relocation.NewReader(t.Encoding, cur, f.Width())
	if err != nil {
		return nil, err
	}
	if err := rd.Begin(0, uint64(len(data))); err != nil {
		return nil, err
	}

	return rd, nil
}
