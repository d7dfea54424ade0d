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

import (
	"strings"
)

// Status is the special purpose register that stores the flags of the CPU.
type Status struct {
	Interrupt bool
	Transfer  bool
	HalfCarry bool
	Sign      bool
	Overflow  bool
	Negative  bool
	Zero      bool
	Carry     bool
}

// Label returns the canonical name for the status register.
func (sr Status) Label() string {
	return "SREG"
}

func (sr Status) String() string {
	s := strings.Builder{}

	flag := func(f bool, r rune) {
		if f {
			s.WriteRune(r)
		} else {
			s.WriteRune(r + ('a' - 'A'))
		}
	}

	flag(sr.Interrupt, 'I')
	flag(sr.Transfer, 'T')
	flag(sr.HalfCarry, 'H')
	flag(sr.Sign, 'S')
	flag(sr.Overflow, 'V')
	flag(sr.Negative, 'N')
	flag(sr.Zero, 'Z')
	flag(sr.Carry, 'C')

	return s.String()
}

// Reset status flags to initial state.
func (sr *Status) Reset() {
	sr.FromValue(0)
}

// Value converts the Status struct into the value stored in SREG.
func (sr Status) Value() uint8 {
	var v uint8

	if sr.Interrupt {
		v |= 0x80
	}
	if sr.Transfer {
		v |= 0x40
	}
	if sr.HalfCarry {
		v |= 0x20
	}
	if sr.Sign {
		v |= 0x10
	}
	if sr.Overflow {
		v |= 0x08
	}
	if sr.Negative {
		v |= 0x04
	}
	if sr.Zero {
		v |= 0x02
	}
	if sr.Carry {
		v |= 0x01
	}

	return v
}

// FromValue converts the value stored in SREG to the Status struct receiver.
func (sr *Status) FromValue(v uint8) {
	sr.Interrupt = v&0x80 == 0x80
	sr.Transfer = v&0x40 == 0x40
	sr.HalfCarry = v&0x20 == 0x20
	sr.Sign = v&0x10 == 0x10
	sr.Overflow = v&0x08 == 0x08
	sr.Negative = v&0x04 == 0x04
	sr.Zero = v&0x02 == 0x02
	sr.Carry = v&0x01 == 0x01
}

// Bit returns the state of the flag in bit position n of SREG.
func (sr Status) Bit(n uint8) bool {
	return sr.Value()&(0x01<<(n&0x07)) != 0
}

// SetBit changes the flag in bit position n of SREG.
func (sr *Status) SetBit(n uint8, v bool) {
	d := sr.Value()
	if v {
		d |= 0x01 << (n & 0x07)
	} else {
		d &^= 0x01 << (n & 0x07)
	}
	sr.FromValue(d)
}

// SignFromNV sets the sign flag from the negative and overflow flags. Almost
// every arithmetic instruction finishes by doing this.
func (sr *Status) SignFromNV() {
	sr.Sign = sr.Negative != sr.Overflow
}
