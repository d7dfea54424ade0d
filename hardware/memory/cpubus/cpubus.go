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

// Package cpubus defines the memory interface used by the CPU.
package cpubus

// Memory defines the operations for the memory system when accessed from the
// CPU.
//
// Read(), Write() and WriteBits() apply the side effects of the I/O
// registers. ChipRefer() and ChipWrite() do not and are used by the CPU for
// the register file and for the CPU registers in I/O space (SREG, SPL and
// SPH).
type Memory interface {
	Read(address uint16) (uint8, error)
	Write(address uint16, data uint8) error

	// WriteBits is the write used by the SBI and CBI instructions. only the
	// bits in mask are written
	WriteBits(address uint16, data uint8, mask uint8) error

	ChipRefer(address uint16) uint8
	ChipWrite(address uint16, data uint8)

	// Fetch returns the instruction word at the word address
	Fetch(address uint32) (uint16, error)

	// ReadProgram returns the byte at the program memory byte address. Used
	// by the LPM instruction
	ReadProgram(address uint32) (uint8, error)
}
