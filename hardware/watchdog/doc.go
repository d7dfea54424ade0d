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

// Package watchdog implements the watchdog timer of an AVR part.
//
// The watchdog counts cycles of its own oscillator. The number of CPU cycles
// that have passed since the previous step are scaled to the oscillator
// frequency, with the remainder carried forward so that no time is lost to
// rounding.
//
// On timeout the watchdog either raises its interrupt flag or requests a
// reset of the part, depending on the mode. The mode is selected by the WDTON
// fuse and the WDE and WDIE bits of the control register. The WDR
// instruction restarts the count.
//
// Clearing WDE and changing the prescaler requires the timed sequence: WDCE
// and WDE are written as one together, after which the change is permitted
// for four cycles.
package watchdog
