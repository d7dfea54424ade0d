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

// Package chipbus defines the memory interface used by the peripherals.
package chipbus

// ChangedRegister packages together the address of a register that has been
// written by the CPU along with the value written and the value of the
// register before the write. The Value field is the value presented to the
// register and not necessarily the value stored.
type ChangedRegister struct {
	Address  uint16
	Value    uint8
	Previous uint8
}

// Memory defines the operations for the memory system when accessed from the
// peripherals.
type Memory interface {
	// ChipRefer reads the data from data memory without side effects
	ChipRefer(address uint16) uint8

	// ChipWrite writes the data to data memory without side effects
	ChipWrite(address uint16, data uint8)

	// ChipChanges returns the registers written by the CPU since the
	// previous call to ChipChanges, in the order they were written
	ChipChanges() []ChangedRegister
}
