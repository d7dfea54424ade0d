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

package registers

import "fmt"

// ProgramCounter represents the PC register of the AVR CPU. The PC is a word
// address into program memory.
type ProgramCounter struct {
	value uint32
}

// NewProgramCounter is the preferred method of initialisation for
// ProgramCounter.
func NewProgramCounter(val uint32) *ProgramCounter {
	return &ProgramCounter{value: val}
}

// Label returns an identifying string for the PC.
func (pc ProgramCounter) Label() string {
	return "PC"
}

func (pc ProgramCounter) String() string {
	return fmt.Sprintf("%#05x", pc.value)
}

// Address returns the current value of the PC.
func (pc ProgramCounter) Address() uint32 {
	return pc.value
}

// Load a value into the PC.
func (pc *ProgramCounter) Load(val uint32) {
	pc.value = val
}

// Add a number of words to the PC.
func (pc *ProgramCounter) Add(words uint32) {
	pc.value += words
}

// Relative moves the PC by a signed offset. The result wraps around the size
// of program memory, which is the behaviour of RJMP and RCALL on parts where
// they can reach the whole of flash.
func (pc *ProgramCounter) Relative(offset int, flashWords uint32) {
	v := int64(pc.value) + int64(offset)
	if flashWords > 0 {
		v %= int64(flashWords)
		if v < 0 {
			v += int64(flashWords)
		}
	}
	pc.value = uint32(v)
}
