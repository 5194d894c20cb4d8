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

// Package leb128 implements the Variable Length Data encoding method used by
// the packed relocation format (and, elsewhere, by the DWARF debugging
// format).
//
// We only need to decode LEB128 numbers, not encode them.
//
// Each byte of an encoded value contributes its low 7 bits, least
// significant group first. The high bit of each byte indicates that another
// byte follows. The signed variant sign-extends from bit 6 of the final
// byte.
//
// The encoding itself places no limit on the number of bytes a value can
// occupy, which is a problem for decoders fed hostile input. Both decode
// functions therefore refuse values longer than MaxLength bytes, which is
// enough for any 64-bit value.
package leb128
