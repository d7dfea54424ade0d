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

package watchdog

import (
	"fmt"

	"github.com/jetsetilly/gopheravr/hardware/device"
	"github.com/jetsetilly/gopheravr/hardware/memory/chipbus"
)

// Mode of the watchdog.
type Mode int

// List of valid Mode values.
const (
	Stopped Mode = iota
	Interrupt
	SystemReset
	InterruptAndReset
)

func (m Mode) String() string {
	switch m {
	case Stopped:
		return "stopped"
	case Interrupt:
		return "interrupt"
	case SystemReset:
		return "reset"
	case InterruptAndReset:
		return "interrupt and reset"
	}
	return "unknown"
}

// the number of cycles after WDCE is set during which protected bits can be
// changed
const changeWindow = 4

// Watchdog is the runtime state of the watchdog timer.
type Watchdog struct {
	desc *device.Watchdog
	mem  chipbus.Memory

	fuses     [3]uint8
	frequency uint64

	// the count of oscillator cycles since the watchdog was last restarted
	count uint64

	// CPU cycles multiplied by the oscillator frequency that have not yet
	// amounted to a whole oscillator cycle
	remainder uint64

	// the cycle count at the previous call to Step()
	last uint64

	// the cycle by which the timed sequence must be completed. only valid if
	// window is true
	window    bool
	windowEnd uint64
}

// NewWatchdog is the preferred method of initialisation for the Watchdog type.
// The frequency argument is the frequency of the CPU clock.
func NewWatchdog(desc *device.Watchdog, mem chipbus.Memory, fuses [3]uint8, frequency uint32) *Watchdog {
	return &Watchdog{
		desc:      desc,
		mem:       mem,
		fuses:     fuses,
		frequency: uint64(max(frequency, 1)),
	}
}

func (wd *Watchdog) String() string {
	return fmt.Sprintf("WDT: %s %d/%d", wd.Mode(), wd.count, wd.Timeout())
}

// Reset the watchdog. The control register in data memory is reset by the
// memory package. If the watchdog reset flag is still set then the WDE bit is
// forced on.
func (wd *Watchdog) Reset(now uint64) {
	wd.count = 0
	wd.remainder = 0
	wd.last = now
	wd.window = false
	wd.overrideWDE()
}

// WDE always reads as set while the watchdog reset flag is set
func (wd *Watchdog) overrideWDE() {
	if wd.desc.ResetFlag.Get(wd.mem) {
		wd.desc.WDE.Set(wd.mem, true)
	}
}

// Mode returns the current mode of the watchdog.
func (wd *Watchdog) Mode() Mode {
	if wd.desc.WDTON.Programmed(wd.fuses) {
		return SystemReset
	}

	wde := wd.desc.WDE.Get(wd.mem) || wd.desc.ResetFlag.Get(wd.mem)
	wdie := wd.desc.WDIE.Get(wd.mem)

	switch {
	case wde && wdie:
		return InterruptAndReset
	case wde:
		return SystemReset
	case wdie:
		return Interrupt
	}
	return Stopped
}

// Timeout returns the number of oscillator cycles before a timeout occurs.
func (wd *Watchdog) Timeout() uint32 {
	p := int(wd.desc.Prescaler.Value(wd.mem))
	if p >= len(wd.desc.Timeouts) {
		// reserved prescaler values. use the longest timeout
		p = len(wd.desc.Timeouts) - 1
	}
	return wd.desc.Timeouts[p]
}

// Count returns the number of oscillator cycles since the watchdog was last
// restarted.
func (wd *Watchdog) Count() uint64 {
	return wd.count
}

// Ping restarts the watchdog count. Called on execution of the WDR
// instruction.
func (wd *Watchdog) Ping() {
	wd.count = 0
}

// Watched returns the addresses of the registers that the watchdog should be
// informed about when written by the CPU.
func (wd *Watchdog) Watched() []uint16 {
	return []uint16{wd.desc.Control}
}

// Update is called with CPU writes to the control register. Returns true if
// the watchdog was interested in the write.
func (wd *Watchdog) Update(change chipbus.ChangedRegister, now uint64) bool {
	if change.Address != wd.desc.Control {
		return false
	}

	open := wd.window && now <= wd.windowEnd
	wd.window = false

	v := wd.mem.ChipRefer(wd.desc.Control)
	prev := change.Previous

	if !open {
		// outside of the timed sequence WDE can be set but not cleared and
		// the prescaler can not be changed
		if prev&wd.desc.WDE.Mask != 0 {
			v |= wd.desc.WDE.Mask
		}
		for _, b := range wd.desc.Prescaler {
			v = (v &^ b.Mask) | (prev & b.Mask)
		}
	}

	// writing WDCE and WDE together starts the timed sequence
	if v&wd.desc.WDCE.Mask != 0 {
		if v&wd.desc.WDE.Mask != 0 && !open {
			wd.window = true
			wd.windowEnd = now + changeWindow
		} else {
			v &^= wd.desc.WDCE.Mask
		}
	}

	wd.mem.ChipWrite(wd.desc.Control, v)
	wd.overrideWDE()

	return true
}

// Serviced is called when the watchdog interrupt is executed. In interrupt
// and reset mode WDIE is cleared by hardware so that the next timeout causes
// a reset.
func (wd *Watchdog) Serviced() {
	if wd.Mode() == InterruptAndReset {
		wd.desc.WDIE.Set(wd.mem, false)
	}
}

// Step the watchdog forward to the cycle count. Returns true if the watchdog
// requests a reset of the part.
func (wd *Watchdog) Step(now uint64, running device.Domain) bool {
	elapsed := now - wd.last
	wd.last = now

	// WDCE is cleared by hardware after the change window
	if wd.window && now > wd.windowEnd {
		wd.window = false
		wd.desc.WDCE.Set(wd.mem, false)
	}

	mode := wd.Mode()
	// the count is kept while stopped. firmware issues WDR before enabling
	if mode == Stopped || running&device.DomainWatchdog == 0 {
		wd.remainder = 0
		return false
	}

	wd.remainder += elapsed * uint64(wd.desc.Oscillator)
	wd.count += wd.remainder / wd.frequency
	wd.remainder %= wd.frequency

	if wd.count < uint64(wd.Timeout()) {
		return false
	}
	wd.count = 0

	switch mode {
	case Interrupt, InterruptAndReset:
		wd.desc.Vector.Flag.Set(wd.mem, true)
	case SystemReset:
		return true
	}

	return false
}

// Snapshot creates a copy of the watchdog in its current state.
func (wd *Watchdog) Snapshot() *Watchdog {
	n := *wd
	return &n
}

// Plumb a new memory into the watchdog. Used after restoring a snapshot.
func (wd *Watchdog) Plumb(mem chipbus.Memory) {
	wd.mem = mem
}
