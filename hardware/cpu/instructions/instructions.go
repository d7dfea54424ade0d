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
	"fmt"

	"github.com/jetsetilly/gopheravr/hardware/device"
)

// Operator identifies the operation performed by an instruction.
type Operator int

// List of valid Operator values.
const (
	Nop Operator = iota
	Movw
	Muls
	Mulsu
	Fmul
	Fmuls
	Fmulsu
	Cpc
	Sbc
	Add
	Cpse
	Cp
	Sub
	Adc
	And
	Eor
	Or
	Mov
	Cpi
	Sbci
	Subi
	Ori
	Andi
	Ldd
	Std
	Lds
	Sts
	Ld
	St
	Lpm
	Elpm
	Pop
	Push
	Xch
	Las
	Lac
	Lat
	Com
	Neg
	Swap
	Inc
	Asr
	Lsr
	Ror
	Dec
	Bset
	Bclr
	Ret
	Reti
	Sleep
	Break
	Wdr
	Spm
	Ijmp
	Eijmp
	Icall
	Eicall
	Des
	Jmp
	Call
	Adiw
	Sbiw
	Cbi
	Sbic
	Sbi
	Sbis
	Mul
	In
	Out
	Rjmp
	Rcall
	Ldi
	Brbs
	Brbc
	Bld
	Bst
	Sbrc
	Sbrs
)

// Form describes how the operands are encoded in the opcode word.
type Form int

// List of valid Form values.
const (
	// no operands
	None Form = iota

	// Rd in bits 8..4
	Rd

	// Rd in bits 8..4 and Rr in bits 9,3..0
	RdRr

	// Rd (16..31) in bits 7..4 and K in bits 11..8,3..0
	RdK

	// register pairs. Rd in bits 7..4 and Rr in bits 3..0
	RegisterPair

	// Rd and Rr (16..31) in bits 7..4 and 3..0
	UpperPair

	// Rd and Rr (16..23) in bits 6..4 and 2..0
	MultiplyPair

	// Rd (24,26,28,30) in bits 5..4 and K in bits 7..6,3..0
	WordImmediate

	// SREG bit in bits 2..0 and signed offset in bits 9..3
	Branch

	// signed offset in bits 11..0
	Relative

	// 22-bit address in bits 8..4,0 and the following word
	Absolute

	// I/O address (0..31) in bits 7..3 and bit in bits 2..0
	IOBit

	// I/O address (0..63) in bits 10..9,3..0 and Rd in bits 8..4
	IO

	// Rd in bits 8..4 and bit in bits 2..0
	RegisterBit

	// SREG bit in bits 6..4
	StatusBit

	// Rd in bits 8..4 and displacement in bits 13,11..10,2..0
	Displacement

	// Rd in bits 8..4 and data address in the following word
	Direct

	// K in bits 7..4
	Round
)

// Pointer is the pointer register used by indirect load and store
// instructions.
type Pointer int

// List of valid Pointer values.
const (
	NoPointer Pointer = iota
	X
	Y
	Z
)

// address of the low byte of each pointer register in the register file
func (p Pointer) Register() uint16 {
	switch p {
	case X:
		return 26
	case Y:
		return 28
	case Z:
		return 30
	}
	return 0
}

func (p Pointer) String() string {
	switch p {
	case X:
		return "X"
	case Y:
		return "Y"
	case Z:
		return "Z"
	}
	return ""
}

// Adjust specifies how an indirect instruction changes the pointer.
type Adjust int

// List of valid Adjust values.
const (
	Unchanged Adjust = iota
	PostIncrement
	PreDecrement
)

// Effect categorises an instruction by its effect on the program counter.
type Effect int

// List of valid Effect values.
const (
	Sequential Effect = iota

	// conditional relative branch. one extra cycle when taken
	Conditional

	// the next instruction is skipped conditionally. one extra cycle for each
	// word skipped
	Skip

	// unconditional change of program counter
	Flow

	Subroutine
	Return
)

// Definition defines each instruction in the instruction set.
type Definition struct {
	Operator Operator
	Mnemonic string

	// the opcode matches the instruction if opcode&Mask == Match
	Mask  uint16
	Match uint16

	Words  int
	Cycles int

	Form   Form
	Effect Effect

	// pointer and pointer adjustment for indirect load/store instructions
	Pointer Pointer
	Adjust  Adjust

	// the instruction writes to the status register
	Flags bool

	// the instruction is only available on parts with the feature. zero
	// for the core instructions
	Feature device.Feature
}

// String returns a single instruction definition as a string.
func (defn Definition) String() string {
	if defn.Mnemonic == "" {
		return "undecoded instruction"
	}
	return fmt.Sprintf("%04x/%04x %s +%dwords (%d cycles) [form=%d effect=%d]",
		defn.Match, defn.Mask, defn.Mnemonic, defn.Words, defn.Cycles, defn.Form, defn.Effect)
}

// IsBranch returns true if instruction is a conditional branch instruction.
func (defn Definition) IsBranch() bool {
	return defn.Effect == Conditional
}

// IsSkip returns true if instruction conditionally skips the next
// instruction.
func (defn Definition) IsSkip() bool {
	return defn.Effect == Skip
}
