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

package cpu_test

import (
	"errors"
	"testing"

	"github.com/jetsetilly/gopheravr/hardware/cpu"
	"github.com/jetsetilly/gopheravr/hardware/cpu/execution"
	"github.com/jetsetilly/gopheravr/hardware/device"
)

type mockMem struct {
	desc    *device.Descriptor
	data    []uint8
	program []uint8
}

func newMockMem(t *testing.T) *mockMem {
	t.Helper()
	desc, err := device.Lookup("atmega328p")
	if err != nil {
		t.Fatal(err)
	}
	return &mockMem{
		desc:    desc,
		data:    make([]uint8, desc.Memory.DataSize()),
		program: make([]uint8, desc.Memory.FlashSize),
	}
}

var errAddress = errors.New("address out of range")

// putInstructions writes opcode words into program memory starting at the
// word address origin. returns the word address following the last word
func (mem *mockMem) putInstructions(origin uint32, words ...uint16) uint32 {
	for i, w := range words {
		a := (origin + uint32(i)) * 2
		mem.program[a] = uint8(w)
		mem.program[a+1] = uint8(w >> 8)
	}
	return origin + uint32(len(words))
}

// Clear sets all bytes in memory to zero and the stack pointer to the end of
// RAM
func (mem *mockMem) Clear() {
	clear(mem.data)
	clear(mem.program)
	mem.data[device.SPL] = uint8(mem.desc.Memory.RAMEnd)
	mem.data[device.SPH] = uint8(mem.desc.Memory.RAMEnd >> 8)
}

func (mem *mockMem) Read(address uint16) (uint8, error) {
	if int(address) >= len(mem.data) {
		return 0, errAddress
	}
	return mem.data[address], nil
}

func (mem *mockMem) Write(address uint16, data uint8) error {
	return mem.WriteBits(address, data, 0xff)
}

func (mem *mockMem) WriteBits(address uint16, data uint8, mask uint8) error {
	if int(address) >= len(mem.data) {
		return errAddress
	}
	mem.data[address] = mem.data[address]&^mask | data&mask
	return nil
}

func (mem *mockMem) ChipRefer(address uint16) uint8 {
	if int(address) >= len(mem.data) {
		return 0
	}
	return mem.data[address]
}

func (mem *mockMem) ChipWrite(address uint16, data uint8) {
	if int(address) < len(mem.data) {
		mem.data[address] = data
	}
}

func (mem *mockMem) Fetch(address uint32) (uint16, error) {
	a := int(address) * 2
	if a+1 >= len(mem.program) {
		return 0, errAddress
	}
	return uint16(mem.program[a]) | uint16(mem.program[a+1])<<8, nil
}

func (mem *mockMem) ReadProgram(address uint32) (uint8, error) {
	if int(address) >= len(mem.program) {
		return 0, errAddress
	}
	return mem.program[address], nil
}

type mockControl struct {
	sleep    int
	wdr      int
	advisory []string
}

func (ctrl *mockControl) Sleep() {
	ctrl.sleep++
}

func (ctrl *mockControl) WatchdogReset() {
	ctrl.wdr++
}

func (ctrl *mockControl) Advisory(detail string) {
	ctrl.advisory = append(ctrl.advisory, detail)
}

func step(t *testing.T, mc *cpu.CPU) execution.Result {
	t.Helper()
	err := mc.ExecuteInstruction()
	if err != nil {
		t.Fatal(err)
	}
	err = mc.LastResult.IsValid()
	if err != nil {
		t.Fatal(err)
	}
	return mc.LastResult
}

// instruction encoders for the instructions used most often in the tests

func ldi(d uint8, k uint8) uint16 {
	return 0xe000 | uint16(k&0xf0)<<4 | uint16(d-16)<<4 | uint16(k&0x0f)
}

func cpi(d uint8, k uint8) uint16 {
	return 0x3000 | uint16(k&0xf0)<<4 | uint16(d-16)<<4 | uint16(k&0x0f)
}

// two register instructions. op is the opcode with zero operands
func rdrr(op uint16, d uint8, r uint8) uint16 {
	return op | uint16(r&0x10)<<5 | uint16(d)<<4 | uint16(r&0x0f)
}

// one register instructions
func rd(op uint16, d uint8) uint16 {
	return op | uint16(d)<<4
}

func relative(op uint16, k int) uint16 {
	return op | uint16(k)&0x0fff
}

func branch(op uint16, s uint8, k int) uint16 {
	return op | (uint16(k)&0x7f)<<3 | uint16(s)
}

func io(op uint16, a uint8, d uint8) uint16 {
	return op | uint16(a&0x30)<<5 | uint16(d)<<4 | uint16(a&0x0f)
}

func regBit(op uint16, d uint8, b uint8) uint16 {
	return op | uint16(d)<<4 | uint16(b)
}

func ioBit(op uint16, a uint8, b uint8) uint16 {
	return op | uint16(a)<<3 | uint16(b)
}

const (
	opADD  = 0x0c00
	opADC  = 0x1c00
	opSUB  = 0x1800
	opSBC  = 0x0800
	opCP   = 0x1400
	opCPC  = 0x0400
	opCPSE = 0x1000
	opAND  = 0x2000
	opEOR  = 0x2400
	opOR   = 0x2800
	opMOV  = 0x2c00
	opMUL  = 0x9c00
	opCOM  = 0x9400
	opNEG  = 0x9401
	opSWAP = 0x9402
	opINC  = 0x9403
	opASR  = 0x9405
	opLSR  = 0x9406
	opROR  = 0x9407
	opDEC  = 0x940a
	opPUSH = 0x920f
	opPOP  = 0x900f
	opRJMP = 0xc000
	opRCAL = 0xd000
	opBRBS = 0xf000
	opBRBC = 0xf400
	opIN   = 0xb000
	opOUT  = 0xb800
	opCBI  = 0x9800
	opSBIC = 0x9900
	opSBI  = 0x9a00
	opSBIS = 0x9b00
	opBLD  = 0xf800
	opBST  = 0xfa00
	opSBRC = 0xfc00
	opSBRS = 0xfe00

	opNOP   = 0x0000
	opSEC   = 0x9408
	opCLC   = 0x9488
	opSET   = 0x9468
	opSEI   = 0x9478
	opCLI   = 0x94f8
	opRET   = 0x9508
	opRETI  = 0x9518
	opSLEEP = 0x9588
	opBREAK = 0x9598
	opWDR   = 0x95a8
	opLPM   = 0x95c8
	opELPM  = 0x95d8
	opIJMP  = 0x9409
	opICALL = 0x9509
	opJMP   = 0x940c
	opCALL  = 0x940e
)
