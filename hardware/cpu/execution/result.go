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

package execution

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopheravr/hardware/cpu/instructions"
)

// Result records the state/result of each instruction executed on the CPU.
// Including the address it was read from, a reference to the instruction
// definition, and other execution details.
type Result struct {
	// the word address at which the instruction began
	Address uint32

	// a reference to the instruction definition. nil if the opcode was not
	// recognised
	Defn *instructions.Definition

	Opcode  uint16
	Operand uint16

	// the number of words read during instruction decode
	Words int

	// the actual number of cycles taken by the instruction
	Cycles int

	// the conditional instruction caused the next instruction to be skipped
	Skipped bool

	// the conditional branch was taken
	BranchTaken bool

	// the instruction postpones interrupt servicing until after the next
	// instruction (SEI and RETI)
	InterruptDelay bool

	// a non-fatal error encountered during execution. for example, a data
	// memory access outside of data memory
	Error error

	// whether this data has been finalised
	Final bool
}

// Reset nullifies all members of the Result instance.
func (r *Result) Reset() {
	*r = Result{}
}

func (r Result) String() string {
	if r.Defn == nil {
		return fmt.Sprintf("%#05x: %04x  ??", r.Address, r.Opcode)
	}

	s := strings.Builder{}
	if r.Words == 2 {
		s.WriteString(fmt.Sprintf("%#05x: %04x %04x  ", r.Address, r.Opcode, r.Operand))
	} else {
		s.WriteString(fmt.Sprintf("%#05x: %04x       ", r.Address, r.Opcode))
	}
	s.WriteString(r.Defn.Disassemble(r.Address, r.Opcode, r.Operand))

	if r.Final {
		s.WriteString(fmt.Sprintf(" [%d]", r.Cycles))
	}

	return s.String()
}
