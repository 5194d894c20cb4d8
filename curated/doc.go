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

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface and are created with the
// Errorf() function.
//
// The advantage of a curated error over a plain error is that the pattern
// used to create it can be recovered later. The decoder packages in this
// repository define their error patterns as string constants; callers can
// then test for a specific failure without string matching on the formatted
// message:
//
//	_, err := rd.Next()
//	if curated.Is(err, relocation.TruncatedError) {
//		// keep the prefix of entries decoded so far
//	}
//
// The Has() function is the same test applied to every error in the chain,
// which is useful when a low level error (a leb128 failure for instance) has
// been wrapped by a higher level pattern.
//
// The Error() function normalises the message chain by removing duplicate
// adjacent parts. Wrapping a curated error in the same pattern twice is
// therefore harmless, which keeps propagation code free of worry about when
// to wrap and when not to.
package curated
