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

// Package interrupts implements the interrupt controller of an AVR part.
//
// Interrupt sources are scanned in vector order, which is the priority order
// of the hardware. A source is pending when both its enable bit and its flag
// are set. The controller doesn't change the program counter itself; that is
// the job of the CPU. The controller only decides which vector, if any,
// should be serviced at a step boundary.
package interrupts
