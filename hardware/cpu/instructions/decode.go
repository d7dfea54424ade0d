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

package instructions

import (
	"math/bits"
	"sort"
	"sync"
)

var decodeTable [0x10000]*Definition
var decodeOnce sync.Once

// build the decode table. definitions with more fixed bits are tried first
func buildDecodeTable() {
	defns := make([]*Definition, len(Definitions))
	for i := range Definitions {
		defns[i] = &Definitions[i]
	}
	sort.SliceStable(defns, func(i, j int) bool {
		return bits.OnesCount16(defns[i].Mask) > bits.OnesCount16(defns[j].Mask)
	})

	for op := 0; op <= 0xffff; op++ {
		for _, d := range defns {
			if uint16(op)&d.Mask == d.Match {
				decodeTable[op] = d
				break
			}
		}
	}
}

// Decode returns the Definition for the opcode. Returns nil if the opcode is
// not a valid instruction.
func Decode(opcode uint16) *Definition {
	decodeOnce.Do(buildDecodeTable)
	return decodeTable[opcode]
}

// Operands are the values encoded in an instruction. Which fields are
// meaningful depends on the Form of the instruction.
type Operands struct {
	// register numbers
	D uint8
	R uint8

	// immediate value, data address or program address
	K uint32

	// I/O address. this is the address in I/O space and not the data memory
	// address
	A uint8

	// bit number
	B uint8

	// displacement
	Q uint8

	// signed offset in words for relative instructions
	Offset int
}

// Operands extracts the operands from the opcode. The operand word is the
// second word of two word instructions.
func (defn *Definition) Operands(opcode uint16, operand uint16) Operands {
	var o Operands

	rd := uint8(opcode>>4) & 0x1f
	rr := uint8(opcode&0x0f) | uint8(opcode>>5)&0x10

	switch defn.Form {
	case Rd:
		o.D = rd
	case RdRr:
		o.D = rd
		o.R = rr
	case RdK:
		o.D = 16 + uint8(opcode>>4)&0x0f
		o.K = uint32(opcode&0x0f) | uint32(opcode>>4)&0xf0
	case RegisterPair:
		o.D = uint8(opcode>>4) & 0x0f * 2
		o.R = uint8(opcode) & 0x0f * 2
	case UpperPair:
		o.D = 16 + uint8(opcode>>4)&0x0f
		o.R = 16 + uint8(opcode)&0x0f
	case MultiplyPair:
		o.D = 16 + uint8(opcode>>4)&0x07
		o.R = 16 + uint8(opcode)&0x07
	case WordImmediate:
		o.D = 24 + uint8(opcode>>4)&0x03*2
		o.K = uint32(opcode&0x0f) | uint32(opcode>>2)&0x30
	case Branch:
		o.B = uint8(opcode) & 0x07
		o.Offset = signExtend(uint32(opcode>>3)&0x7f, 7)
	case Relative:
		o.Offset = signExtend(uint32(opcode)&0x0fff, 12)
	case Absolute:
		o.K = (uint32(opcode>>3)&0x3e|uint32(opcode)&0x01)<<16 | uint32(operand)
	case IOBit:
		o.A = uint8(opcode>>3) & 0x1f
		o.B = uint8(opcode) & 0x07
	case IO:
		o.D = rd
		o.A = uint8(opcode&0x0f) | uint8(opcode>>5)&0x30
	case RegisterBit:
		o.D = rd
		o.B = uint8(opcode) & 0x07
	case StatusBit:
		o.B = uint8(opcode>>4) & 0x07
	case Displacement:
		o.D = rd
		o.Q = uint8(opcode&0x07) | uint8(opcode>>7)&0x18 | uint8(opcode>>8)&0x20
	case Direct:
		o.D = rd
		o.K = uint32(operand)
	case Round:
		o.K = uint32(opcode>>4) & 0x0f
	}

	return o
}

func signExtend(v uint32, width int) int {
	if v&(1<<(width-1)) != 0 {
		return int(v) - (1 << width)
	}
	return int(v)
}
