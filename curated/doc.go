// This file is part of GopherAVR.
//
// GopherAVR is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherAVR is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherAVR.  If not, see <https://www.gnu.org/licenses/>.

// Package curated is a helper package for the plain Go language error type.
// Curated errors implement the error interface.
//
// Curated errors are created with the Errorf() function. This is similar to
// the Errorf() function in the fmt package. It takes a formatting pattern,
// placeholder values and returns an error. The pattern is kept with the error
// and is the means by which errors are differentiated.
//
// The pattern strings are usually exported constants of the package that
// creates the error. For example, the cpu package defines:
//
//	const IllegalOpcode = "cpu: illegal opcode %#04x at %#05x"
//
// and callers can test for the condition with:
//
//	if curated.Is(err, cpu.IllegalOpcode) {
//		...
//	}
//
// The Has() function is similar but checks if a pattern occurs somewhere in
// the error chain.
//
//	e := curated.Errorf(cpu.IllegalOpcode, 0xffff, 0x100)
//	f := curated.Errorf("avr: %v", e)
//
//	curated.Has(f, cpu.IllegalOpcode) // true
//	curated.Is(f, cpu.IllegalOpcode)  // false
//
// The IsAny() function answers whether the error was created by
// curated.Errorf() at all. Uncurated errors are those that come from outside
// the project (the os package for instance) and are generally unexpected.
//
// The Error() implementation normalises the error message by removing
// duplicate adjacent parts. For example, "cpu: cpu: illegal opcode" is
// reported as "cpu: illegal opcode".
//
// Curated errors that wrap other errors also implement the multiple-error
// form of Unwrap(), so errors.Is() and errors.As() from the standard library
// can see through them.
package curated
