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

package hardware

import (
	"github.com/jetsetilly/gopheravr/hardware/cpu"
	"github.com/jetsetilly/gopheravr/hardware/device"
	"github.com/jetsetilly/gopheravr/hardware/interrupts"
	"github.com/jetsetilly/gopheravr/hardware/memory"
	"github.com/jetsetilly/gopheravr/hardware/timer"
	"github.com/jetsetilly/gopheravr/hardware/watchdog"
)

// Snapshot stores the runtime state of the AVR sub-systems. It is produced by
// the Snapshot() function and can be restored with the Plumb() function.
//
// Program memory is not part of the snapshot.
type Snapshot struct {
	Part       string
	Mem        *memory.Memory
	CPU        *cpu.CPU
	Timers     []*timer.Timer
	Interrupts *interrupts.Controller
	Watchdog   *watchdog.Watchdog

	Cycles    uint64
	State     State
	sleepMode device.SleepMode
}

// Snapshot the state of the AVR sub-systems.
func (avr *AVR) Snapshot() *Snapshot {
	s := &Snapshot{
		Part:       avr.Desc.Name,
		Mem:        avr.Mem.Snapshot(),
		CPU:        avr.CPU.Snapshot(),
		Interrupts: avr.Interrupts.Snapshot(),
		Watchdog:   avr.Watchdog.Snapshot(),
		Cycles:     avr.Cycles,
		State:      avr.state,
		sleepMode:  avr.sleepMode,
	}
	for _, tmr := range avr.Timers {
		s.Timers = append(s.Timers, tmr.Snapshot())
	}
	return s
}

// Plumb a previously snapshotted state. The snapshot can come from a
// different AVR instance but it must be of the same part.
func (avr *AVR) Plumb(s *Snapshot) {
	if s == nil {
		panic("avr: cannot plumb in a nil snapshot")
	}
	if s.Part != avr.Desc.Name {
		panic("avr: cannot plumb in a snapshot of a different part")
	}

	// take another snapshot of each component. we don't want the simulation
	// to change what is stored in the snapshot
	avr.Mem.Restore(s.Mem)

	avr.CPU = s.CPU.Snapshot()
	avr.CPU.Plumb(avr.Mem, control{avr: avr})

	avr.Interrupts = s.Interrupts.Snapshot()
	avr.Interrupts.Plumb(avr.Mem)

	avr.Watchdog = s.Watchdog.Snapshot()
	avr.Watchdog.Plumb(avr.Mem)

	for i := range avr.Timers {
		avr.Timers[i] = s.Timers[i].Snapshot()
		avr.Timers[i].Plumb(avr.Mem)
	}

	avr.Cycles = s.Cycles
	avr.state = s.State
	avr.sleepMode = s.sleepMode
	avr.LastInterrupt = nil
}
