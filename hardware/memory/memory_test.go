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

package memory_test

import (
	"testing"

	"github.com/jetsetilly/gopheravr/curated"
	"github.com/jetsetilly/gopheravr/hardware/device"
	"github.com/jetsetilly/gopheravr/hardware/memory"
	"github.com/jetsetilly/gopheravr/test"
)

func newMemory(t *testing.T) *memory.Memory {
	t.Helper()
	desc, err := device.Lookup("m328p")
	test.DemandSuccess(t, err)
	mem := memory.NewMemory(desc,
		make([]uint8, desc.Memory.FlashSize),
		make([]uint8, desc.Memory.DataSize()))
	mem.Reset()
	return mem
}

func TestReset(t *testing.T) {
	mem := newMemory(t)
	test.ExpectEquality(t, mem.ChipRefer(device.SPL), 0xff)
	test.ExpectEquality(t, mem.ChipRefer(device.SPH), 0x08)
	test.ExpectEquality(t, mem.ChipRefer(device.UCSR0A), 0x20)
	test.ExpectEquality(t, mem.ChipRefer(device.UCSR0C), 0x06)

	// register file and SRAM survive a reset
	mem.ChipWrite(0x05, 0x12)
	mem.ChipWrite(0x200, 0x34)
	mem.ChipWrite(device.GPIOR0, 0x56)
	mem.Reset()
	test.ExpectEquality(t, mem.ChipRefer(0x05), 0x12)
	test.ExpectEquality(t, mem.ChipRefer(0x200), 0x34)
	test.ExpectEquality(t, mem.ChipRefer(device.GPIOR0), 0x00)
}

func TestPlainAccess(t *testing.T) {
	mem := newMemory(t)

	test.ExpectSuccess(t, mem.Write(0x300, 0xaa))
	v, err := mem.Read(0x300)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0xaa)

	test.ExpectSuccess(t, mem.WriteBits(device.PORTB, 0xff, 0x04))
	test.ExpectEquality(t, mem.ChipRefer(device.PORTB), 0x04)
	test.ExpectSuccess(t, mem.WriteBits(device.PORTB, 0x00, 0x04))
	test.ExpectEquality(t, mem.ChipRefer(device.PORTB), 0x00)
}

func TestOutOfRange(t *testing.T) {
	mem := newMemory(t)

	v, err := mem.Read(0x900)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, memory.AddressError))
	test.ExpectEquality(t, v, 0)

	err = mem.Write(0xffff, 0x01)
	test.ExpectSuccess(t, curated.Is(err, memory.AddressError))

	test.ExpectEquality(t, mem.ChipRefer(0x900), 0)
	mem.ChipWrite(0x900, 0x01)

	_, err = mem.Fetch(0x4000)
	test.ExpectFailure(t, err)
	_, err = mem.ReadProgram(0x8000)
	test.ExpectFailure(t, err)
}

func TestFlagClear(t *testing.T) {
	mem := newMemory(t)

	// TOV0, OCF0A and OCF0B are set by the timer
	mem.ChipWrite(device.TIFR0, 0x07)

	// writing zero has no effect
	test.ExpectSuccess(t, mem.Write(device.TIFR0, 0x00))
	test.ExpectEquality(t, mem.ChipRefer(device.TIFR0), 0x07)

	// writing one clears the flag
	test.ExpectSuccess(t, mem.Write(device.TIFR0, 0x02))
	test.ExpectEquality(t, mem.ChipRefer(device.TIFR0), 0x05)

	// SBI on a flag register clears only the flag being addressed
	test.ExpectSuccess(t, mem.WriteBits(device.TIFR0, 0xff, 0x01))
	test.ExpectEquality(t, mem.ChipRefer(device.TIFR0), 0x04)
}

func TestReadOnlyFlags(t *testing.T) {
	mem := newMemory(t)

	// UDRE0 is set after reset and can not be changed by the CPU
	test.ExpectSuccess(t, mem.Write(device.UCSR0A, 0x00))
	test.ExpectEquality(t, mem.ChipRefer(device.UCSR0A)&0x20, 0x20)
}

func TestTemp(t *testing.T) {
	mem := newMemory(t)

	// high byte then low byte
	test.ExpectSuccess(t, mem.Write(device.TCNT1H, 0x12))
	test.ExpectEquality(t, mem.ChipRefer(device.TCNT1H), 0x00)
	test.ExpectSuccess(t, mem.Write(device.TCNT1L, 0x34))
	test.ExpectEquality(t, mem.ChipRefer(device.TCNT1L), 0x34)
	test.ExpectEquality(t, mem.ChipRefer(device.TCNT1H), 0x12)

	// the low byte read latches the high byte
	v, err := mem.Read(device.TCNT1L)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0x34)
	mem.ChipWrite(device.TCNT1H, 0x99)
	v, err = mem.Read(device.TCNT1H)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, 0x12)

	// OCR1A shares TEMP with TCNT1
	test.ExpectSuccess(t, mem.Write(device.OCR1AH, 0x01))
	test.ExpectSuccess(t, mem.Write(device.OCR1AL, 0xf4))
	test.ExpectEquality(t, mem.ChipRefer(device.OCR1AH), 0x01)
	test.ExpectEquality(t, mem.ChipRefer(device.OCR1AL), 0xf4)
}

func TestChanges(t *testing.T) {
	mem := newMemory(t)
	mem.Watch(device.TCNT0)

	test.ExpectSuccess(t, mem.Write(device.TCNT0, 0x10))
	test.ExpectSuccess(t, mem.Write(device.OCR0A, 0x20))
	test.ExpectSuccess(t, mem.Write(device.TCNT0, 0x30))

	c := mem.ChipChanges()
	test.ExpectEquality(t, len(c), 2)
	test.ExpectEquality(t, c[0].Address, device.TCNT0)
	test.ExpectEquality(t, c[0].Value, 0x10)
	test.ExpectEquality(t, c[0].Previous, 0x00)
	test.ExpectEquality(t, c[1].Value, 0x30)
	test.ExpectEquality(t, c[1].Previous, 0x10)

	test.ExpectEquality(t, len(mem.ChipChanges()), 0)

	// chip writes are never recorded
	mem.ChipWrite(device.TCNT0, 0x40)
	test.ExpectEquality(t, len(mem.ChipChanges()), 0)
}

func TestFetch(t *testing.T) {
	mem := newMemory(t)
	mem.Program[0] = 0x0c
	mem.Program[1] = 0x94
	mem.Program[2] = 0x34
	mem.Program[3] = 0x00

	w, err := mem.Fetch(0)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, w, 0x940c)
	w, err = mem.Fetch(1)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, w, 0x0034)

	b, err := mem.ReadProgram(1)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, b, 0x94)
}
