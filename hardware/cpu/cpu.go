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

import (
	"fmt"

	"github.com/jetsetilly/gopheravr/curated"
	"github.com/jetsetilly/gopheravr/hardware/cpu/execution"
	"github.com/jetsetilly/gopheravr/hardware/cpu/instructions"
	"github.com/jetsetilly/gopheravr/hardware/cpu/registers"
	"github.com/jetsetilly/gopheravr/hardware/device"
	"github.com/jetsetilly/gopheravr/hardware/memory/cpubus"
)

// Error patterns returned by ExecuteInstruction().
const (
	IllegalOpcode    = "cpu: illegal opcode (%04x) at %#05x"
	FetchOutOfBounds = "cpu: fetch out of bounds (%#05x)"
)

// Control is the connection between the CPU and the rest of the part, for the
// instructions that have an effect outside of the CPU.
type Control interface {
	// the SLEEP instruction. the sleep enable bit should be checked by the
	// implementation
	Sleep()

	// the WDR instruction
	WatchdogReset()

	// an instruction was executed with a best-effort fallback
	Advisory(detail string)
}

// the data memory address of I/O space address zero
const ioOffset = 0x20

// CPU implements the AVR CPU.
type CPU struct {
	desc *device.Descriptor
	mem  cpubus.Memory
	ctrl Control

	PC     *registers.ProgramCounter
	Status registers.Status

	// the result of the most recent instruction
	LastResult execution.Result

	flashWords uint32
}

// NewCPU is the preferred method of initialisation for the CPU structure.
func NewCPU(desc *device.Descriptor, mem cpubus.Memory, ctrl Control) *CPU {
	return &CPU{
		desc:       desc,
		mem:        mem,
		ctrl:       ctrl,
		PC:         registers.NewProgramCounter(0),
		flashWords: desc.Memory.FlashWords(),
	}
}

func (mc *CPU) String() string {
	return fmt.Sprintf("%s=%s %s=%s SP=%#04x", mc.PC.Label(), mc.PC, mc.Status.Label(), mc.Status, mc.SP())
}

// Reset the CPU. The program counter is set to the reset vector. Data memory,
// including the status register and stack pointer, is reset by the memory
// package.
func (mc *CPU) Reset(resetVector uint32) {
	mc.PC.Load(resetVector)
	mc.Status.FromValue(mc.mem.ChipRefer(mc.desc.SREG))
	mc.LastResult.Reset()
}

// Register returns the value of the general purpose register.
func (mc *CPU) Register(n uint8) uint8 {
	return mc.mem.ChipRefer(uint16(n & 0x1f))
}

// SetRegister changes the value of the general purpose register.
func (mc *CPU) SetRegister(n uint8, v uint8) {
	mc.mem.ChipWrite(uint16(n&0x1f), v)
}

// the 16-bit value in a register pair
func (mc *CPU) pair(n uint8) uint16 {
	return uint16(mc.Register(n)) | uint16(mc.Register(n+1))<<8
}

func (mc *CPU) setPair(n uint8, v uint16) {
	mc.SetRegister(n, uint8(v))
	mc.SetRegister(n+1, uint8(v>>8))
}

// SP returns the value of the stack pointer.
func (mc *CPU) SP() uint16 {
	return uint16(mc.mem.ChipRefer(mc.desc.SPL)) | uint16(mc.mem.ChipRefer(mc.desc.SPH))<<8
}

// SetSP changes the value of the stack pointer.
func (mc *CPU) SetSP(v uint16) {
	mc.mem.ChipWrite(mc.desc.SPL, uint8(v))
	mc.mem.ChipWrite(mc.desc.SPH, uint8(v>>8))
}

// record the first non-fatal error of the instruction
func (mc *CPU) nonFatal(err error) {
	if err != nil && mc.LastResult.Error == nil {
		mc.LastResult.Error = err
	}
}

func (mc *CPU) read(address uint16) uint8 {
	v, err := mc.mem.Read(address)
	mc.nonFatal(err)
	return v
}

func (mc *CPU) write(address uint16, v uint8) {
	mc.nonFatal(mc.mem.Write(address, v))
}

func (mc *CPU) push(v uint8) {
	sp := mc.SP()
	mc.write(sp, v)
	mc.SetSP(sp - 1)
}

func (mc *CPU) pop() uint8 {
	sp := mc.SP() + 1
	mc.SetSP(sp)
	return mc.read(sp)
}

// the return address is pushed low byte first
func (mc *CPU) pushPC(pc uint32) {
	mc.push(uint8(pc))
	mc.push(uint8(pc >> 8))
}

func (mc *CPU) popPC() uint32 {
	hi := mc.pop()
	lo := mc.pop()
	return uint32(hi)<<8 | uint32(lo)
}

// Interrupt pushes the program counter and jumps to the vector. Global
// interrupts are disabled. Any error is the result of a stack access outside
// of data memory and is not fatal.
func (mc *CPU) Interrupt(vector uint32) error {
	mc.LastResult.Reset()
	mc.pushPC(mc.PC.Address())
	mc.PC.Load(vector)

	sreg := mc.mem.ChipRefer(mc.desc.SREG) &^ 0x80
	mc.mem.ChipWrite(mc.desc.SREG, sreg)
	mc.Status.FromValue(sreg)

	return mc.LastResult.Error
}

// the value of a pointer register
func (mc *CPU) pointer(p instructions.Pointer) uint16 {
	return mc.pair(uint8(p.Register()))
}

func (mc *CPU) setPointer(p instructions.Pointer, v uint16) {
	mc.setPair(uint8(p.Register()), v)
}

// the address used by an indirect instruction, after adjusting the pointer
// for pre-decrement and post-increment
func (mc *CPU) indirect(defn *instructions.Definition) uint16 {
	p := mc.pointer(defn.Pointer)
	switch defn.Adjust {
	case instructions.PreDecrement:
		p--
		mc.setPointer(defn.Pointer, p)
	case instructions.PostIncrement:
		mc.setPointer(defn.Pointer, p+1)
	}
	return p
}

// skip the next instruction. the length of the next instruction decides how
// many words are skipped
func (mc *CPU) skip() {
	words := 1
	if next, err := mc.mem.Fetch(mc.PC.Address()); err == nil {
		if d := instructions.Decode(next); d != nil {
			words = d.Words
		}
	}
	mc.PC.Add(uint32(words))
	mc.LastResult.Cycles += words
	mc.LastResult.Skipped = true
}

func (mc *CPU) branch(offset int) {
	mc.PC.Relative(offset, mc.flashWords)
	mc.LastResult.Cycles++
	mc.LastResult.BranchTaken = true
}

// ExecuteInstruction steps the CPU forward one instruction. The returned
// error is fatal and the CPU state is undefined. The error will be one of
// the IllegalOpcode or FetchOutOfBounds patterns.
func (mc *CPU) ExecuteInstruction() error {
	mc.LastResult.Reset()

	pc := mc.PC.Address()
	mc.LastResult.Address = pc

	if pc >= mc.flashWords {
		return curated.Errorf(FetchOutOfBounds, pc)
	}

	opcode, err := mc.mem.Fetch(pc)
	if err != nil {
		return curated.Errorf(FetchOutOfBounds, pc)
	}
	mc.LastResult.Opcode = opcode

	defn := instructions.Decode(opcode)
	if defn == nil || (defn.Feature != 0 && mc.desc.Features&defn.Feature == 0) {
		return curated.Errorf(IllegalOpcode, opcode, pc)
	}
	mc.LastResult.Defn = defn
	mc.LastResult.Words = 1

	var operand uint16
	if defn.Words == 2 {
		if pc+1 >= mc.flashWords {
			return curated.Errorf(FetchOutOfBounds, pc+1)
		}
		operand, err = mc.mem.Fetch(pc + 1)
		if err != nil {
			return curated.Errorf(FetchOutOfBounds, pc+1)
		}
		mc.LastResult.Operand = operand
		mc.LastResult.Words = 2
	}

	mc.PC.Add(uint32(defn.Words))
	mc.LastResult.Cycles = defn.Cycles

	mc.Status.FromValue(mc.mem.ChipRefer(mc.desc.SREG))

	o := defn.Operands(opcode, operand)

	switch defn.Operator {
	case instructions.Nop:

	case instructions.Movw:
		mc.setPair(o.D, mc.pair(o.R))

	case instructions.Mul:
		mc.multiply(uint16(mc.Register(o.D))*uint16(mc.Register(o.R)), false)
	case instructions.Muls:
		mc.multiply(uint16(int16(int8(mc.Register(o.D)))*int16(int8(mc.Register(o.R)))), false)
	case instructions.Mulsu:
		mc.multiply(uint16(int16(int8(mc.Register(o.D)))*int16(mc.Register(o.R))), false)
	case instructions.Fmul:
		mc.multiply(uint16(mc.Register(o.D))*uint16(mc.Register(o.R)), true)
	case instructions.Fmuls:
		mc.multiply(uint16(int16(int8(mc.Register(o.D)))*int16(int8(mc.Register(o.R)))), true)
	case instructions.Fmulsu:
		mc.multiply(uint16(int16(int8(mc.Register(o.D)))*int16(mc.Register(o.R))), true)

	case instructions.Add:
		mc.SetRegister(o.D, mc.add(mc.Register(o.D), mc.Register(o.R), false))
	case instructions.Adc:
		mc.SetRegister(o.D, mc.add(mc.Register(o.D), mc.Register(o.R), mc.Status.Carry))
	case instructions.Sub:
		mc.SetRegister(o.D, mc.subtract(mc.Register(o.D), mc.Register(o.R), false, false))
	case instructions.Sbc:
		mc.SetRegister(o.D, mc.subtract(mc.Register(o.D), mc.Register(o.R), mc.Status.Carry, true))
	case instructions.Cp:
		mc.subtract(mc.Register(o.D), mc.Register(o.R), false, false)
	case instructions.Cpc:
		mc.subtract(mc.Register(o.D), mc.Register(o.R), mc.Status.Carry, true)
	case instructions.Cpse:
		if mc.Register(o.D) == mc.Register(o.R) {
			mc.skip()
		}
	case instructions.And:
		mc.SetRegister(o.D, mc.logical(mc.Register(o.D)&mc.Register(o.R)))
	case instructions.Or:
		mc.SetRegister(o.D, mc.logical(mc.Register(o.D)|mc.Register(o.R)))
	case instructions.Eor:
		mc.SetRegister(o.D, mc.logical(mc.Register(o.D)^mc.Register(o.R)))
	case instructions.Mov:
		mc.SetRegister(o.D, mc.Register(o.R))

	case instructions.Ldi:
		mc.SetRegister(o.D, uint8(o.K))
	case instructions.Cpi:
		mc.subtract(mc.Register(o.D), uint8(o.K), false, false)
	case instructions.Subi:
		mc.SetRegister(o.D, mc.subtract(mc.Register(o.D), uint8(o.K), false, false))
	case instructions.Sbci:
		mc.SetRegister(o.D, mc.subtract(mc.Register(o.D), uint8(o.K), mc.Status.Carry, true))
	case instructions.Ori:
		mc.SetRegister(o.D, mc.logical(mc.Register(o.D)|uint8(o.K)))
	case instructions.Andi:
		mc.SetRegister(o.D, mc.logical(mc.Register(o.D)&uint8(o.K)))

	case instructions.Ldd:
		mc.SetRegister(o.D, mc.read(mc.pointer(defn.Pointer)+uint16(o.Q)))
	case instructions.Std:
		mc.write(mc.pointer(defn.Pointer)+uint16(o.Q), mc.Register(o.D))
	case instructions.Ld:
		mc.SetRegister(o.D, mc.read(mc.indirect(defn)))
	case instructions.St:
		// the register is read before the pointer is adjusted
		v := mc.Register(o.D)
		mc.write(mc.indirect(defn), v)
	case instructions.Lds:
		mc.SetRegister(o.D, mc.read(uint16(o.K)))
	case instructions.Sts:
		mc.write(uint16(o.K), mc.Register(o.D))

	case instructions.Lpm:
		v, err := mc.mem.ReadProgram(uint32(mc.indirect(defn)))
		mc.nonFatal(err)
		if defn.Form == instructions.None {
			mc.SetRegister(0, v)
		} else {
			mc.SetRegister(o.D, v)
		}

	case instructions.Push:
		mc.push(mc.Register(o.D))
	case instructions.Pop:
		mc.SetRegister(o.D, mc.pop())

	case instructions.Com:
		r := ^mc.Register(o.D)
		mc.logical(r)
		mc.Status.Carry = true
		mc.SetRegister(o.D, r)
	case instructions.Neg:
		d := mc.Register(o.D)
		r := -d
		mc.Status.HalfCarry = (r|d)&0x08 != 0
		mc.Status.Overflow = r == 0x80
		mc.Status.Carry = r != 0
		mc.Status.Negative = r&0x80 != 0
		mc.Status.Zero = r == 0
		mc.Status.SignFromNV()
		mc.SetRegister(o.D, r)
	case instructions.Swap:
		d := mc.Register(o.D)
		mc.SetRegister(o.D, d<<4|d>>4)
	case instructions.Inc:
		r := mc.Register(o.D) + 1
		mc.Status.Overflow = r == 0x80
		mc.Status.Negative = r&0x80 != 0
		mc.Status.Zero = r == 0
		mc.Status.SignFromNV()
		mc.SetRegister(o.D, r)
	case instructions.Dec:
		r := mc.Register(o.D) - 1
		mc.Status.Overflow = r == 0x7f
		mc.Status.Negative = r&0x80 != 0
		mc.Status.Zero = r == 0
		mc.Status.SignFromNV()
		mc.SetRegister(o.D, r)
	case instructions.Asr:
		d := mc.Register(o.D)
		mc.SetRegister(o.D, mc.shiftRight(d, d&0x80))
	case instructions.Lsr:
		mc.SetRegister(o.D, mc.shiftRight(mc.Register(o.D), 0))
	case instructions.Ror:
		var c uint8
		if mc.Status.Carry {
			c = 0x80
		}
		mc.SetRegister(o.D, mc.shiftRight(mc.Register(o.D), c))

	case instructions.Bset:
		mc.Status.SetBit(o.B, true)
		if o.B == 7 {
			mc.LastResult.InterruptDelay = true
		}
	case instructions.Bclr:
		mc.Status.SetBit(o.B, false)
	case instructions.Bst:
		mc.Status.Transfer = mc.Register(o.D)&(0x01<<o.B) != 0
	case instructions.Bld:
		d := mc.Register(o.D)
		if mc.Status.Transfer {
			d |= 0x01 << o.B
		} else {
			d &^= 0x01 << o.B
		}
		mc.SetRegister(o.D, d)

	case instructions.Adiw:
		d := mc.pair(o.D)
		r := d + uint16(o.K)
		mc.Status.Overflow = d&0x8000 == 0 && r&0x8000 != 0
		mc.Status.Carry = d&0x8000 != 0 && r&0x8000 == 0
		mc.Status.Negative = r&0x8000 != 0
		mc.Status.Zero = r == 0
		mc.Status.SignFromNV()
		mc.setPair(o.D, r)
	case instructions.Sbiw:
		d := mc.pair(o.D)
		r := d - uint16(o.K)
		mc.Status.Overflow = d&0x8000 != 0 && r&0x8000 == 0
		mc.Status.Carry = d&0x8000 == 0 && r&0x8000 != 0
		mc.Status.Negative = r&0x8000 != 0
		mc.Status.Zero = r == 0
		mc.Status.SignFromNV()
		mc.setPair(o.D, r)

	case instructions.Sbi:
		mc.nonFatal(mc.mem.WriteBits(uint16(o.A)+ioOffset, 0xff, 0x01<<o.B))
	case instructions.Cbi:
		mc.nonFatal(mc.mem.WriteBits(uint16(o.A)+ioOffset, 0x00, 0x01<<o.B))
	case instructions.Sbis:
		if mc.read(uint16(o.A)+ioOffset)&(0x01<<o.B) != 0 {
			mc.skip()
		}
	case instructions.Sbic:
		if mc.read(uint16(o.A)+ioOffset)&(0x01<<o.B) == 0 {
			mc.skip()
		}
	case instructions.Sbrs:
		if mc.Register(o.D)&(0x01<<o.B) != 0 {
			mc.skip()
		}
	case instructions.Sbrc:
		if mc.Register(o.D)&(0x01<<o.B) == 0 {
			mc.skip()
		}

	case instructions.In:
		mc.SetRegister(o.D, mc.read(uint16(o.A)+ioOffset))
	case instructions.Out:
		mc.write(uint16(o.A)+ioOffset, mc.Register(o.D))

	case instructions.Brbs:
		if mc.Status.Bit(o.B) {
			mc.branch(o.Offset)
		}
	case instructions.Brbc:
		if !mc.Status.Bit(o.B) {
			mc.branch(o.Offset)
		}

	case instructions.Rjmp:
		mc.PC.Relative(o.Offset, mc.flashWords)
	case instructions.Rcall:
		mc.pushPC(mc.PC.Address())
		mc.PC.Relative(o.Offset, mc.flashWords)
	case instructions.Jmp:
		mc.PC.Load(o.K)
	case instructions.Call:
		mc.pushPC(mc.PC.Address())
		mc.PC.Load(o.K)
	case instructions.Ijmp:
		mc.PC.Load(uint32(mc.pointer(instructions.Z)))
	case instructions.Icall:
		mc.pushPC(mc.PC.Address())
		mc.PC.Load(uint32(mc.pointer(instructions.Z)))
	case instructions.Ret:
		mc.PC.Load(mc.popPC())
	case instructions.Reti:
		mc.PC.Load(mc.popPC())
		mc.Status.Interrupt = true
		mc.LastResult.InterruptDelay = true

	case instructions.Sleep:
		mc.ctrl.Sleep()
	case instructions.Wdr:
		mc.ctrl.WatchdogReset()
	case instructions.Break:
		mc.ctrl.Advisory("BREAK: no debugger attached, executed as NOP")
	case instructions.Spm:
		mc.ctrl.Advisory("SPM: self-programming is not supported, executed as NOP")

	default:
		// instructions that are defined but not available on any supported
		// part. the feature check above should make this unreachable
		return curated.Errorf(IllegalOpcode, opcode, pc)
	}

	if defn.Flags {
		mc.mem.ChipWrite(mc.desc.SREG, mc.Status.Value())
	}

	mc.LastResult.Final = true

	return nil
}

// Snapshot creates a copy of the CPU in its current state.
func (mc *CPU) Snapshot() *CPU {
	n := *mc
	pc := *mc.PC
	n.PC = &pc
	return &n
}

// Plumb a new memory and control into the CPU. Used after restoring a
// snapshot.
func (mc *CPU) Plumb(mem cpubus.Memory, ctrl Control) {
	mc.mem = mem
	mc.ctrl = ctrl
}
