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

package device

import (
	"fmt"
	"math/bits"
)

// NoAddress indicates that a location is not present.
const NoAddress = uint16(0xffff)

// Bus is the access to data memory required by the location types. Accesses
// through this interface never have side effects.
type Bus interface {
	ChipRefer(address uint16) uint8
	ChipWrite(address uint16, data uint8)
}

// IOBit is a single bit in data memory.
type IOBit struct {
	Address uint16
	Mask    uint8
}

// Bit is the preferred method of initialisation for the IOBit type.
func Bit(address uint16, bit int) IOBit {
	return IOBit{Address: address, Mask: 0x01 << bit}
}

// Present returns false if the IOBit is the zero value.
func (b IOBit) Present() bool {
	return b.Mask != 0
}

func (b IOBit) String() string {
	if !b.Present() {
		return "-"
	}
	return fmt.Sprintf("%#04x:%d", b.Address, bits.TrailingZeros8(b.Mask))
}

// Get returns the state of the bit.
func (b IOBit) Get(mem Bus) bool {
	if !b.Present() {
		return false
	}
	return mem.ChipRefer(b.Address)&b.Mask == b.Mask
}

// Set changes the state of the bit.
func (b IOBit) Set(mem Bus, v bool) {
	if !b.Present() {
		return
	}
	d := mem.ChipRefer(b.Address)
	if v {
		d |= b.Mask
	} else {
		d &^= b.Mask
	}
	mem.ChipWrite(b.Address, d)
}

// BitField is an ordered list of IOBits. The first entry is the least
// significant bit of the value.
type BitField []IOBit

// Field is a helper function that creates a contiguous BitField of n bits,
// starting at bit lsb of the register at address.
func Field(address uint16, lsb int, n int) BitField {
	f := make(BitField, n)
	for i := range f {
		f[i] = Bit(address, lsb+i)
	}
	return f
}

// Value returns the value of the field.
func (f BitField) Value(mem Bus) uint8 {
	var v uint8
	for i, b := range f {
		if b.Get(mem) {
			v |= 0x01 << i
		}
	}
	return v
}

// SetValue changes the value of the field. Bits of v beyond the width of the
// field are ignored.
func (f BitField) SetValue(mem Bus, v uint8) {
	for i, b := range f {
		b.Set(mem, v&(0x01<<i) != 0)
	}
}

// Register16 is a 16-bit register formed from two data memory locations.
// Eight bit registers have a Hi value of NoAddress.
type Register16 struct {
	Lo uint16
	Hi uint16
}

// Reg8 is a helper function that creates an 8-bit Register16.
func Reg8(address uint16) Register16 {
	return Register16{Lo: address, Hi: NoAddress}
}

// Reg16 is a helper function that creates a 16-bit Register16 from a low byte
// address. The high byte is at the following address.
func Reg16(address uint16) Register16 {
	return Register16{Lo: address, Hi: address + 1}
}

// Present returns false if the register is not present.
func (r Register16) Present() bool {
	return r.Lo != NoAddress && r.Lo != 0
}

// Wide returns true if the register is 16 bits.
func (r Register16) Wide() bool {
	return r.Hi != NoAddress
}

// Value returns the value of the register.
func (r Register16) Value(mem Bus) uint16 {
	v := uint16(mem.ChipRefer(r.Lo))
	if r.Wide() {
		v |= uint16(mem.ChipRefer(r.Hi)) << 8
	}
	return v
}

// SetValue changes the value of the register.
func (r Register16) SetValue(mem Bus, v uint16) {
	mem.ChipWrite(r.Lo, uint8(v))
	if r.Wide() {
		mem.ChipWrite(r.Hi, uint8(v>>8))
	}
}

// FuseBit is a single bit in one of the fuse bytes. Fuse bits are programmed
// when they are zero.
type FuseBit struct {
	Fuse int
	Mask uint8
}

// Programmed returns true if the fuse bit is programmed (zero).
func (f FuseBit) Programmed(fuses [3]uint8) bool {
	if f.Mask == 0 {
		return false
	}
	return fuses[f.Fuse]&f.Mask == 0
}

// FuseField is a multi-bit value in one of the fuse bytes.
type FuseField struct {
	Fuse  int
	Mask  uint8
	Shift int
}

// Value returns the raw (unprogrammed is one) value of the field.
func (f FuseField) Value(fuses [3]uint8) uint8 {
	return (fuses[f.Fuse] & f.Mask) >> f.Shift
}
