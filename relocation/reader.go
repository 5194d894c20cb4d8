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

// usage error patterns. both indicate a caller breaking the reader
// lifecycle, not a problem with the table bytes.
const (
	NotBegunError     = "relocation: reader not begun"
	AlreadyBegunError = "relocation: reader already begun"
)

// UnknownEncodingError is returned by NewReader() for an Encoding value it
// does not recognise.
const UnknownEncodingError = "relocation: unknown encoding (%v)"

// Encoding identifies the wire format of a relocation table. The packed
// APS2 format exists in an addend-less and an addend-carrying flavour, so
// there are four tags for three layouts.
type Encoding int

// Valid Encoding values.
const (
	EncodingRel Encoding = iota
	EncodingRela
	EncodingAndroidRel
	EncodingAndroidRela
)

func (enc Encoding) String() string {
	switch enc {
	case EncodingRel:
		return "REL"
	case EncodingRela:
		return "RELA"
	case EncodingAndroidRel:
		return "ANDROID_REL"
	case EncodingAndroidRela:
		return "ANDROID_RELA"
	}
	return "unknown"
}

// HasAddend returns true if tables of this encoding define an addend for
// every entry.
func (enc Encoding) HasAddend() bool {
	return enc == EncodingRela || enc == EncodingAndroidRela
}

// Reader is the one contract shared by all relocation table decoders.
//
// Begin positions the cursor at the start of the table and may be called
// exactly once. HasMoreRelocations and Next fail with NotBegunError until
// Begin has been called.
//
// For the fixed-width encodings HasMoreRelocations is extent based: it
// reports true while the cursor is inside the length given to Begin. The
// packed encoding counts entries instead and treats the length as advisory.
//
// ShouldMarkup is a hint to annotation layers. Entries from a fixed-width
// table sit at addressable file locations and are worth commenting
// individually; entries from the packed format do not and are not.
type Reader interface {
	Begin(offset uint64, length uint64) error
	HasMoreRelocations() (bool, error)
	Next() (*Entry, error)
	ShouldMarkup() bool
}

// NewReader returns the Reader variant for the specified encoding. The
// cursor is the reader's alone from Begin until the table is exhausted.
func NewReader(enc Encoding, cur *Cursor, width Width) (Reader, error) {
	switch enc {
	case EncodingRel:
		return newFixedWidthReader(cur, width, false), nil
	case EncodingRela:
		return newFixedWidthReader(cur, width, true), nil
	case EncodingAndroidRel:
		return newAps2Reader(cur, width, false), nil
	case EncodingAndroidRela:
		return newAps2Reader(cur, width, true), nil
	}
	return nil, curated.Errorf(UnknownEncodingError, int(enc))
}

// table is the state common to every reader variant: the cursor, the extent
// given to Begin and the lifecycle guard.
type table struct {
	cur    *Cursor
	width  Width
	begun  bool
	offset uint64
	length uint64

	// ordinal of the next entry to be produced
	index int
}

func (tab *table) begin(offset uint64, length uint64) error {
	if tab.begun {
		return curated.Errorf(AlreadyBegunError)
	}
	if err := tab.cur.Seek(offset); err != nil {
		return err
	}
	tab.offset = offset
	tab.length = length
	tab.begun = true
	return nil
}
