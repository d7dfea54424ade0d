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

// Package limiter provides a rough and ready way of limiting a simulation to
// the real-time speed of the part.
//
// A new Limiter can be created with:
//
//	lim := limiter.NewLimiter(avr.Frequency, 100)
//	defer lim.End()
//
// The simulation is then stalled with the Wait() function, called after every
// step with the cycle count:
//
//	for {
//		avr.Step()
//		lim.Wait(avr.Cycles)
//	}
package limiter

import (
	"time"
)

// Limiter stalls the simulation so that it runs no faster than the clock
// frequency of the part.
type Limiter struct {
	// number of cycles that should elapse between each tick
	cyclesPerTick uint64

	// the cycle count at which the next wait will occur
	next uint64

	tick chan bool
	quit chan bool
}

// NewLimiter is the preferred method of initialisation for the Limiter type.
// The frequency is the clock frequency of the part and ticksPerSecond is the
// granularity of the limiting.
func NewLimiter(frequency uint32, ticksPerSecond int) *Limiter {
	if ticksPerSecond <= 0 {
		ticksPerSecond = 100
	}

	lim := &Limiter{
		cyclesPerTick: max(uint64(frequency)/uint64(ticksPerSecond), 1),
		tick:          make(chan bool),
		quit:          make(chan bool),
	}
	lim.next = lim.cyclesPerTick

	period := time.Second / time.Duration(ticksPerSecond)

	// run ticker concurrently. the period is adjusted to compensate for drift
	go func() {
		adjusted := period
		t := time.Now()
		for {
			select {
			case lim.tick <- true:
			case <-lim.quit:
				return
			}
			time.Sleep(adjusted)
			nt := time.Now()
			adjusted -= nt.Sub(t) - period
			t = nt
		}
	}()

	return lim
}

// End the ticker. The limiter can not be used after End().
func (lim *Limiter) End() {
	close(lim.quit)
}

// Wait will block until the next tick if the cycle count has passed the
// number of cycles allowed for the current tick.
func (lim *Limiter) Wait(cycles uint64) {
	if cycles < lim.next {
		return
	}
	<-lim.tick
	lim.next = cycles + lim.cyclesPerTick
}

// HasWaited will return true if the tick has already happened and false if it
// is still yet to happen.
func (lim *Limiter) HasWaited() bool {
	select {
	case <-lim.tick:
		return true
	default:
		return false
	}
}
