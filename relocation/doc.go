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

// Package relocation decodes ELF relocation tables into a stream of
// normalised Entry values.
//
// Three wire encodings are supported through the one Reader contract: the
// fixed-width REL and RELA layouts, and the packed "APS2" layout used by
// Android binaries where relocation tables dominate file size. A Reader is
// selected from the table's Encoding with NewReader() and then driven with
// the Begin / HasMoreRelocations / Next protocol:
//
//	rd, _ := relocation.NewReader(enc, cur, width)
//	err := rd.Begin(tableOffset, tableLength)
//	for {
//		more, err := rd.HasMoreRelocations()
//		if err != nil || !more {
//			break
//		}
//		e, err := rd.Next()
//		...
//	}
//
// Begin may be called once per reader. Calling any other operation before
// Begin, or Begin a second time, fails with a usage error. A decode failure
// (truncation, bad magic, a protocol violation in the packed stream) is
// fatal to the table but entries already produced remain valid; the caller
// decides whether the prefix is worth keeping.
//
// Readers are plain sequential values. A reader owns its cursor between
// Begin and exhaustion; decoding several tables concurrently requires one
// reader and one cursor per table.
//
// The packed reader traces group headers and decoded entries through the
// logger package under the "aps2" tag. The trace is buffered and silent
// unless the application chooses to echo or dump the log.
package relocation
