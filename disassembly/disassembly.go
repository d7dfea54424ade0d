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

package disassembly

import (
	"fmt"

	"github.com/jetsetilly/gopheravr/hardware/cpu/instructions"
	"github.com/jetsetilly/gopheravr/hardware/device"
)

// Entry is a single disassembled instruction.
type Entry struct {
	// word address of the instruction
	Address uint32

	Opcode  uint16
	Operand uint16
	Words   int

	// nil if the word is not a valid instruction for the part
	Defn *instructions.Definition

	Instruction string
}

func (e Entry) String() string {
	return e.Instruction
}

// Disassembly of a firmware image.
type Disassembly struct {
	Part    string
	Entries []Entry
}

// FromProgram disassembles the program memory image for the part.
func FromProgram(desc *device.Descriptor, program []uint8) *Disassembly {
	dsm := &Disassembly{
		Part: desc.Name,
	}

	words := uint32(len(program) / 2)
	word := func(a uint32) uint16 {
		return uint16(program[a*2]) | uint16(program[a*2+1])<<8
	}

	// ignore erased flash at the end of the image
	for words > 0 && word(words-1) == 0xffff {
		words--
	}

	for a := uint32(0); a < words; {
		e := Entry{
			Address: a,
			Opcode:  word(a),
			Words:   1,
		}

		defn := instructions.Decode(e.Opcode)
		if defn != nil && (defn.Feature == 0 || desc.Features&defn.Feature != 0) {
			if defn.Words == 2 && a+1 < words {
				e.Operand = word(a + 1)
				e.Words = 2
			}
			if defn.Words == e.Words {
				e.Defn = defn
				e.Instruction = defn.Disassemble(a, e.Opcode, e.Operand)
			}
		}

		if e.Defn == nil {
			e.Words = 1
			e.Operand = 0
			e.Instruction = fmt.Sprintf(".dw %#04x", e.Opcode)
		}

		dsm.Entries = append(dsm.Entries, e)
		a += uint32(e.Words)
	}

	return dsm
}

// Entry returns the entry at the word address. Returns false if no entry
// begins at the address.
func (dsm *Disassembly) Entry(address uint32) (Entry, bool) {
	lo, hi := 0, len(dsm.Entries)
	for lo < hi {
		m := (lo + hi) / 2
		switch a := dsm.Entries[m].Address; {
		case a == address:
			return dsm.Entries[m], true
		case a < address:
			lo = m + 1
		default:
			hi = m
		}
	}
	return Entry{}, false
}
