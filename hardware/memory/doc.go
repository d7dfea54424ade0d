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

// Package memory implements the data memory and program memory of an AVR
// part.
//
// Data memory is a single byte buffer covering the register file, the I/O
// space and SRAM. It is accessed in two ways. The CPU accesses memory through
// the cpubus.Memory interface, which applies the side effects of the I/O
// registers. Interrupt flags are cleared by writing a one, read only bits are
// preserved, and the 16-bit registers are accessed through the shared TEMP
// register. Writes to registers that the peripherals are interested in are
// recorded and collected with ChipChanges().
//
// Peripherals and the hardware package itself access memory through the
// chipbus.Memory interface, which has no side effects.
//
// Program memory is a byte buffer holding little-endian instruction words.
package memory
