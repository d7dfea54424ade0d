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

// Package disassembly produces a linear disassembly of the firmware in
// program memory.
//
// A linear disassembly decodes every word of program memory in turn. Data
// embedded in program memory will therefore be shown as instructions when the
// data happens to be a valid opcode. Words that are not valid instructions for
// the part are shown as data.
//
// Erased flash at the end of program memory is not included.
package disassembly
