// This file is part of Playfun.
//
// Playfun is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Playfun is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Playfun.  If not, see <https://www.gnu.org/licenses/>.

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. Unlike the similarly
// named function in the fmt package, the formatting pattern is kept alongside
// the values. The pattern can then be used to identify the error after the
// fact:
//
//	e := curated.Errorf("rom: %v", filename)
//
//	if curated.Is(e, "rom: %v") {
//		...
//	}
//
// Wrapping a curated error inside another curated error builds a chain that
// can be probed with the Has() function:
//
//	a := curated.Errorf("inner: %v", 10)
//	b := curated.Errorf("outer: %v", a)
//
//	curated.Has(b, "inner: %v") == true
//
// Duplicate adjacent message parts are removed when the error is printed.
// This keeps messages tidy when an error is passed back up through several
// functions of the same package.
package curated
