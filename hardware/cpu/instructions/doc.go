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

// Package instructions defines the AVR instruction set. Each instruction is
// described by a Definition, which includes the bit pattern used to
// recognise the instruction, the number of words and cycles, and the format
// of the operands encoded in the opcode.
//
// Decode() returns the Definition for any 16-bit opcode word. Opcodes that do
// not match any definition decode to nil.
package instructions
