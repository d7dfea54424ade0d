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

// Package hardware is the base package for the AVR simulation. It and its
// sub-packages contain everything required for a headless simulation of a
// megaAVR microcontroller.
//
// The AVR type is the root of the simulation. It is created with NewAVR(),
// which looks up the descriptor for the named part and loads the firmware
// image into program memory. The caller supplies the program memory and data
// memory buffers and they are used directly by the simulation.
//
// The simulation is driven by calling Step(), or Run() for a loop of Step()
// calls. Each Step() happens in the following order:
//
//	peripherals consume the cycles of the previous instruction
//	the interrupt controller services the highest priority pending interrupt
//	otherwise the CPU executes the next instruction
//
// A watchdog timeout in system reset mode resets the part during the first
// stage and no instruction is executed for that Step().
package hardware
