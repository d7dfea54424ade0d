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

// Package registers implements the status register and the program counter of
// the AVR CPU.
//
// The status register lives in data memory (the SREG address in I/O space).
// The CPU loads the Status type from data memory at the start of every
// instruction and writes it back when the instruction affects the flags. In
// this way writes to SREG by the OUT and ST instructions are seen by the next
// instruction.
//
// The general purpose registers and the stack pointer also live in data
// memory and have no type of their own.
package registers
