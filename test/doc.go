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

// Package test contains helper functions to remove common boilerplate and
// make testing easier.
//
// The ExpectedFailure and ExpectedSuccess functions test for failure and
// success under generic conditions. A nil value is treated as a success,
// which is how we want to interpret a nil error.
//
// The Equate() function compares like-typed variables for equality. Some
// types (eg. uint64) can be compared against int for convenience, because a
// literal number value is of type int and it's tiresome to have to cast the
// expected value at every call site.
//
// ExpectCuratedError() ties the helpers to the curated package: it asserts
// that an error carries a specific curated pattern somewhere in its chain.
package test
