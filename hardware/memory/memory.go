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

package memory

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jetsetilly/gopheravr/curated"
	"github.com/jetsetilly/gopheravr/hardware/device"
	"github.com/jetsetilly/gopheravr/hardware/memory/chipbus"
)

// AddressError is the pattern for errors caused by an access outside of data
// memory or program memory.
const AddressError = "memory: address %#04x out of range"

// the wide table entry for an address that is the high byte of a 16-bit
// register
const highByte = 0xffff

// Memory is the data memory and program memory of an AVR part. It implements
// the cpubus.Memory and chipbus.Memory interfaces.
type Memory struct {
	desc *device.Descriptor

	// the buffers are those supplied to NewMemory() and are never reallocated
	Data    []uint8
	Program []uint8

	// per address tables derived from the descriptor
	flags    []uint8
	readOnly []uint8
	wide     []uint16
	watched  []bool

	// the TEMP register shared by all 16-bit registers
	temp uint8

	changes []chipbus.ChangedRegister
}

// NewMemory is the preferred method of initialisation for the Memory type. The
// program and data buffers should be the sizes required by the descriptor.
func NewMemory(desc *device.Descriptor, program []uint8, data []uint8) *Memory {
	mem := &Memory{
		desc:     desc,
		Data:     data,
		Program:  program,
		flags:    make([]uint8, len(data)),
		readOnly: make([]uint8, len(data)),
		wide:     make([]uint16, len(data)),
		watched:  make([]bool, len(data)),
		changes:  make([]chipbus.ChangedRegister, 0, 8),
	}

	for a := range data {
		mem.flags[a] = desc.FlagMask(uint16(a))
		mem.readOnly[a] = desc.ReadOnlyMask(uint16(a))
	}
	for a := range data {
		if hi, ok := desc.WideHigh(uint16(a)); ok && int(hi) < len(data) {
			mem.wide[a] = hi
			mem.wide[hi] = highByte
		}
	}

	return mem
}

func (mem *Memory) String() string {
	return fmt.Sprintf("%s: %d bytes data, %d bytes program", mem.desc.Name, len(mem.Data), len(mem.Program))
}

// Watch causes CPU writes to the address to be recorded. Recorded writes are
// returned by ChipChanges().
func (mem *Memory) Watch(address uint16) {
	if int(address) < len(mem.watched) {
		mem.watched[address] = true
	}
}

// Reset the I/O space to the power-on values. The register file and SRAM are
// not affected.
func (mem *Memory) Reset() {
	io := mem.desc.Memory.IOStart
	ram := mem.desc.Memory.RAMStart
	clear(mem.Data[io:ram])

	for a, v := range mem.desc.Defaults {
		mem.Data[a] = v
	}

	ramEnd := mem.desc.Memory.RAMEnd
	mem.Data[mem.desc.SPL] = uint8(ramEnd)
	mem.Data[mem.desc.SPH] = uint8(ramEnd >> 8)

	mem.temp = 0
	mem.changes = mem.changes[:0]
}

// Read implements the cpubus.Memory interface.
func (mem *Memory) Read(address uint16) (uint8, error) {
	if int(address) >= len(mem.Data) {
		return 0, curated.Errorf(AddressError, address)
	}

	switch w := mem.wide[address]; w {
	case 0:
	case highByte:
		return mem.temp, nil
	default:
		// reading the low byte latches the high byte into TEMP
		mem.temp = mem.Data[w]
	}

	return mem.Data[address], nil
}

// Write implements the cpubus.Memory interface.
func (mem *Memory) Write(address uint16, data uint8) error {
	return mem.WriteBits(address, data, 0xff)
}

// WriteBits implements the cpubus.Memory interface.
func (mem *Memory) WriteBits(address uint16, data uint8, mask uint8) error {
	if int(address) >= len(mem.Data) {
		return curated.Errorf(AddressError, address)
	}

	switch w := mem.wide[address]; w {
	case 0:
	case highByte:
		// writing the high byte only writes TEMP
		mem.temp = data
		return nil
	default:
		// writing the low byte commits both bytes
		mem.Data[w] = mem.temp
	}

	prev := mem.Data[address]

	// bits that are written normally
	plain := mask &^ mem.flags[address] &^ mem.readOnly[address]
	v := (prev &^ plain) | (data & plain)

	// flags are cleared by writing a one
	v &^= data & mask & mem.flags[address]

	mem.Data[address] = v

	if mem.watched[address] {
		mem.changes = append(mem.changes, chipbus.ChangedRegister{
			Address:  address,
			Value:    data,
			Previous: prev,
		})
	}

	return nil
}

// ChipRefer implements the chipbus.Memory interface. Addresses outside of
// data memory return zero.
func (mem *Memory) ChipRefer(address uint16) uint8 {
	if int(address) >= len(mem.Data) {
		return 0
	}
	return mem.Data[address]
}

// ChipWrite implements the chipbus.Memory interface. Addresses outside of
// data memory are ignored.
func (mem *Memory) ChipWrite(address uint16, data uint8) {
	if int(address) >= len(mem.Data) {
		return
	}
	mem.Data[address] = data
}

// ChipChanges implements the chipbus.Memory interface. The returned slice is
// only valid until the next CPU write.
func (mem *Memory) ChipChanges() []chipbus.ChangedRegister {
	c := mem.changes
	mem.changes = mem.changes[:0]
	return c
}

// Fetch implements the cpubus.Memory interface.
func (mem *Memory) Fetch(address uint32) (uint16, error) {
	a := uint64(address) * 2
	if a+1 >= uint64(len(mem.Program)) {
		return 0, curated.Errorf(AddressError, address)
	}
	return uint16(mem.Program[a]) | uint16(mem.Program[a+1])<<8, nil
}

// ReadProgram implements the cpubus.Memory interface.
func (mem *Memory) ReadProgram(address uint32) (uint8, error) {
	if uint64(address) >= uint64(len(mem.Program)) {
		return 0, curated.Errorf(AddressError, address)
	}
	return mem.Program[address], nil
}

// Dump returns a hex dump of data memory between the two addresses.
func (mem *Memory) Dump(from, to uint16) string {
	s := strings.Builder{}
	for a := int(from) &^ 0x0f; a <= int(to) && a < len(mem.Data); a += 16 {
		s.WriteString(fmt.Sprintf("%04x ", a))
		for i := 0; i < 16 && a+i < len(mem.Data); i++ {
			s.WriteString(fmt.Sprintf(" %02x", mem.Data[a+i]))
		}
		s.WriteString("\n")
	}
	return s.String()
}

// Snapshot creates a copy of data memory and the TEMP register. Program
// memory is not copied and is shared with the snapshot.
func (mem *Memory) Snapshot() *Memory {
	n := *mem
	n.Data = slices.Clone(mem.Data)
	n.changes = slices.Clone(mem.changes)
	return &n
}

// Restore data memory and the TEMP register from a snapshot. The data buffer
// of the memory is not replaced. The contents of the snapshot are copied into
// it.
func (mem *Memory) Restore(snapshot *Memory) {
	copy(mem.Data, snapshot.Data)
	mem.temp = snapshot.temp
	mem.changes = append(mem.changes[:0], snapshot.changes...)
}
