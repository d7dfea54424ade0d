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

package cpu

func (mc *CPU) add(d uint8, r uint8, carry bool) uint8 {
	var c uint8
	if carry {
		c = 1
	}
	res := d + r + c

	cc := (d & r) | (r &^ res) | (^res & d)
	mc.Status.HalfCarry = cc&0x08 != 0
	mc.Status.Carry = cc&0x80 != 0
	mc.Status.Overflow = ((d&r&^res)|(^d&^r&res))&0x80 != 0
	mc.Status.Negative = res&0x80 != 0
	mc.Status.Zero = res == 0
	mc.Status.SignFromNV()

	return res
}

// subtraction and comparison. if keepZero is true the zero flag is only
// cleared and never set, which allows multi-byte comparisons with CPC and
// SBC
func (mc *CPU) subtract(d uint8, r uint8, carry bool, keepZero bool) uint8 {
	var c uint8
	if carry {
		c = 1
	}
	res := d - r - c

	cc := (^d & r) | (r & res) | (res &^ d)
	mc.Status.HalfCarry = cc&0x08 != 0
	mc.Status.Carry = cc&0x80 != 0
	mc.Status.Overflow = ((d&^r&^res)|(^d&r&res))&0x80 != 0
	mc.Status.Negative = res&0x80 != 0
	if keepZero {
		mc.Status.Zero = mc.Status.Zero && res == 0
	} else {
		mc.Status.Zero = res == 0
	}
	mc.Status.SignFromNV()

	return res
}

func (mc *CPU) logical(res uint8) uint8 {
	mc.Status.Overflow = false
	mc.Status.Negative = res&0x80 != 0
	mc.Status.Zero = res == 0
	mc.Status.SignFromNV()
	return res
}

// shift right by one bit with top as the new bit seven. used by ASR, LSR and
// ROR
func (mc *CPU) shiftRight(d uint8, top uint8) uint8 {
	res := d>>1 | top
	mc.Status.Carry = d&0x01 != 0
	mc.Status.Negative = res&0x80 != 0
	mc.Status.Zero = res == 0
	mc.Status.Overflow = mc.Status.Negative != mc.Status.Carry
	mc.Status.SignFromNV()
	return res
}

// the result of all multiply instructions is placed in r1:r0. the fractional
// forms shift the result left by one bit
func (mc *CPU) multiply(res uint16, fractional bool) {
	mc.Status.Carry = res&0x8000 != 0
	if fractional {
		res <<= 1
	}
	mc.Status.Zero = res == 0
	mc.setPair(0, res)
}
