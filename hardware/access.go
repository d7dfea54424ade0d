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

package hardware

import (
	"slices"

	"github.com/jetsetilly/gopheravr/curated"
)

// The functions in this file access the memory of the part without any of
// the side effects of a CPU access. Flags are not cleared and the 16-bit
// TEMP register is not involved.

// ReadRegister returns the value of the named register. Register names are
// the names used in the datasheet (eg. TCNT0, SREG, R16) and are case
// insensitive.
func (avr *AVR) ReadRegister(name string) (uint8, error) {
	a, ok := avr.Desc.Register(name)
	if !ok {
		return 0, curated.Errorf(UnknownRegister, name)
	}
	return avr.Mem.ChipRefer(a), nil
}

// WriteRegister changes the value of the named register.
func (avr *AVR) WriteRegister(name string, value uint8) error {
	a, ok := avr.Desc.Register(name)
	if !ok {
		return curated.Errorf(UnknownRegister, name)
	}
	avr.Mem.ChipWrite(a, value)
	return nil
}

// LoadDataMemory replaces the entire contents of data memory. The length of
// the data must be the size of data memory.
func (avr *AVR) LoadDataMemory(data []uint8) error {
	if len(data) != len(avr.Mem.Data) {
		return curated.Errorf(SizeMismatch, "data", len(data), len(avr.Mem.Data))
	}
	copy(avr.Mem.Data, data)
	return nil
}

// DumpDataMemory returns a copy of data memory.
func (avr *AVR) DumpDataMemory() []uint8 {
	return slices.Clone(avr.Mem.Data)
}

// LoadProgramMemory replaces the entire contents of program memory. The
// length of the program must be the size of flash.
func (avr *AVR) LoadProgramMemory(program []uint8) error {
	if len(program) != len(avr.Mem.Program) {
		return curated.Errorf(SizeMismatch, "program", len(program), len(avr.Mem.Program))
	}
	copy(avr.Mem.Program, program)
	return nil
}

// DumpProgramMemory returns a copy of program memory.
func (avr *AVR) DumpProgramMemory() []uint8 {
	return slices.Clone(avr.Mem.Program)
}
