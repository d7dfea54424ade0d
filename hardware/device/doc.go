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

// Package device contains the descriptors of the supported AVR parts. A
// Descriptor is immutable once it has been returned by Lookup() and can be
// shared by any number of simulated instances.
//
// Register locations are described by value types rather than by constants.
// An IOBit is a single bit at a data memory address; a BitField is an ordered
// list of IOBits that together form a multi-bit value (the clock select bits
// of a timer for example, which need not be contiguous or even in the same
// register). Register16 is a pair of addresses forming a 16-bit register.
//
// Descriptors are constructed declaratively by a family builder and are
// validated by Validate() before they are added to the registry. Validation
// checks that every location is inside the I/O space of the part, that named
// registers do not overlap, that waveform mode tables are complete and that
// the compare action table of every output compare channel is exhaustive.
package device
