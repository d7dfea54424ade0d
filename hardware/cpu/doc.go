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

// Package cpu emulates the AVR CPU found in the megaAVR parts. The
// CPU is instantiated with NewCPU() and an instruction executed with
// ExecuteInstruction():
//
//	mc := cpu.NewCPU(desc, mem, ctrl)
//	mc.Reset(0)
//	err := mc.ExecuteInstruction()
//
// The general purpose registers, the status register and the stack pointer
// all live in data memory and are accessed by the CPU without side effects.
// The Status field of the CPU type is a decoded copy of the status register
// and is current only during and immediately after an instruction.
//
// Once an instruction has been executed, the LastResult field contains the
// details of the instruction. The result can be checked for consistency with
// the IsValid() function of the execution.Result type.
//
// Errors returned by ExecuteInstruction() are fatal and are either
// IllegalOpcode or FetchOutOfBounds. Errors caused by data memory accesses
// are not fatal and are recorded in the Error field of LastResult.
//
// Instructions that have an effect outside the CPU (SLEEP, WDR, BREAK and SPM)
// are passed to the Control interface.
package cpu
