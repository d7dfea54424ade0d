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

// Package timer implements the timer/counters of an AVR part, including the
// waveform generation modes and the output compare units.
//
// A Timer is driven by the cycle counter of the part. Each call to Step()
// advances the counter by the number of timer ticks that have occurred since
// the previous tick. A tick occurs every N CPU cycles where N is the divider
// selected by the clock select bits. A divider of zero stops the timer.
//
// The counter value lives in data memory and is read and written by the
// timer without side effects. The output compare registers in data memory are
// the values written by the CPU. In the PWM modes these values are buffered
// and only copied to the active compare value used by the timer at the point
// specified by the waveform mode.
//
// On each tick the following happens, in this order:
//
//	compare match against the pre-tick counter value
//	commit of buffered compare values (at TOP or BOTTOM)
//	overflow flag
//	change of direction or wrap around
//	BOTTOM pin action
//
// CPU writes to the timer registers that have side effects (the counter and
// the force output compare strobes) are passed to the timer with Update().
package timer
