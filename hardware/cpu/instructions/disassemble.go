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
)

// names of the conditional branches and status bit instructions, indexed by
// SREG bit number
var (
	branchSet   = [8]string{"BRCS", "BREQ", "BRMI", "BRVS", "BRLT", "BRHS", "BRTS", "BRIE"}
	branchClear = [8]string{"BRCC", "BRNE", "BRPL", "BRVC", "BRGE", "BRHC", "BRTC", "BRID"}
	statusSet   = [8]string{"SEC", "SEZ", "SEN", "SEV", "SES", "SEH", "SET", "SEI"}
	statusClear = [8]string{"CLC", "CLZ", "CLN", "CLV", "CLS", "CLH", "CLT", "CLI"}
)

func pointer(defn *Definition) string {
	switch defn.Adjust {
	case PostIncrement:
		return defn.Pointer.String() + "+"
	case PreDecrement:
		return "-" + defn.Pointer.String()
	}
	return defn.Pointer.String()
}

// Disassemble returns the assembly language for an instruction. The address
// is the word address of the instruction and is used to show the destination
// of relative jumps.
func (defn *Definition) Disassemble(address uint32, opcode uint16, operand uint16) string {
	o := defn.Operands(opcode, operand)

	switch defn.Operator {
	case Brbs:
		return fmt.Sprintf("%s .%+d ; %#05x", branchSet[o.B], o.Offset*2, int(address)+1+o.Offset)
	case Brbc:
		return fmt.Sprintf("%s .%+d ; %#05x", branchClear[o.B], o.Offset*2, int(address)+1+o.Offset)
	case Bset:
		return statusSet[o.B]
	case Bclr:
		return statusClear[o.B]
	case Ld, Elpm, Xch, Las, Lac, Lat:
		return fmt.Sprintf("%s r%d, %s", defn.Mnemonic, o.D, pointer(defn))
	case Lpm:
		if defn.Form == None {
			return defn.Mnemonic
		}
		return fmt.Sprintf("%s r%d, %s", defn.Mnemonic, o.D, pointer(defn))
	case St:
		return fmt.Sprintf("%s %s, r%d", defn.Mnemonic, pointer(defn), o.D)
	case Ldd:
		if o.Q == 0 {
			return fmt.Sprintf("LD r%d, %s", o.D, defn.Pointer)
		}
		return fmt.Sprintf("%s r%d, %s+%d", defn.Mnemonic, o.D, defn.Pointer, o.Q)
	case Std:
		if o.Q == 0 {
			return fmt.Sprintf("ST %s, r%d", defn.Pointer, o.D)
		}
		return fmt.Sprintf("%s %s+%d, r%d", defn.Mnemonic, defn.Pointer, o.Q, o.D)
	case Lds:
		return fmt.Sprintf("%s r%d, %#04x", defn.Mnemonic, o.D, o.K)
	case Sts:
		return fmt.Sprintf("%s %#04x, r%d", defn.Mnemonic, o.K, o.D)
	case In:
		return fmt.Sprintf("%s r%d, %#02x", defn.Mnemonic, o.D, o.A)
	case Out:
		return fmt.Sprintf("%s %#02x, r%d", defn.Mnemonic, o.A, o.D)
	}

	switch defn.Form {
	case None:
		return defn.Mnemonic
	case Rd:
		return fmt.Sprintf("%s r%d", defn.Mnemonic, o.D)
	case RdRr, UpperPair, MultiplyPair:
		return fmt.Sprintf("%s r%d, r%d", defn.Mnemonic, o.D, o.R)
	case RegisterPair:
		return fmt.Sprintf("%s r%d:r%d, r%d:r%d", defn.Mnemonic, o.D+1, o.D, o.R+1, o.R)
	case RdK:
		return fmt.Sprintf("%s r%d, %#02x", defn.Mnemonic, o.D, o.K)
	case WordImmediate:
		return fmt.Sprintf("%s r%d:r%d, %d", defn.Mnemonic, o.D+1, o.D, o.K)
	case Relative:
		return fmt.Sprintf("%s .%+d ; %#05x", defn.Mnemonic, o.Offset*2, int(address)+1+o.Offset)
	case Absolute:
		return fmt.Sprintf("%s %#05x", defn.Mnemonic, o.K)
	case IOBit:
		return fmt.Sprintf("%s %#02x, %d", defn.Mnemonic, o.A, o.B)
	case RegisterBit:
		return fmt.Sprintf("%s r%d, %d", defn.Mnemonic, o.D, o.B)
	case Round:
		return fmt.Sprintf("%s %d", defn.Mnemonic, o.K)
	}

	return defn.Mnemonic
}
