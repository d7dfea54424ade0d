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

// Package regression verifies the behaviour of firmware against golden data
// memory dumps, and verifies that the simulation itself is deterministic.
//
// A checkpoint list is a text file of lines in the form:
//
//	<pc> <dumpfile>
//
// where the program counter is a word address in hexadecimal and the dump
// file is a raw binary of data memory. Dump file names are relative to the
// checkpoint list. Blank lines and lines starting with # are ignored.
//
// The first checkpoint, if it is for the reset vector, is used to initialise
// data memory. All other checkpoints are compared with data memory when the
// program counter first reaches the checkpoint address after the previous
// checkpoint.
package regression
