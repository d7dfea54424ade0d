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
	"github.com/jetsetilly/gopheravr/hardware/device"
	"github.com/jetsetilly/gopheravr/logger"
	"github.com/jetsetilly/gopheravr/notifications"
)

// the number of cycles taken to respond to an interrupt. waking from sleep
// takes longer
const (
	interruptResponse = 4
	wakeResponse      = 4
)

// the clock domains that are running
func (avr *AVR) running() device.Domain {
	if avr.state == Sleeping {
		return avr.sleepMode.Running
	}
	return device.DomainAll
}

// catchUp brings the peripherals up to date with the cycle count. Returns
// true if the watchdog has requested a reset.
func (avr *AVR) catchUp() bool {
	for _, c := range avr.Mem.ChipChanges() {
		if avr.Watchdog.Update(c, avr.Cycles) {
			continue
		}
		for _, tmr := range avr.Timers {
			if tmr.Update(c) {
				break
			}
		}
	}

	running := avr.running()
	for _, tmr := range avr.Timers {
		tmr.Step(avr.Cycles, running)
	}

	return avr.Watchdog.Step(avr.Cycles, running)
}

// Step the simulation forward by one instruction. Returns the number of
// cycles consumed.
//
// A sleeping part consumes one cycle per Step() until it is woken by an
// interrupt. A stopped part consumes nothing and Step() returns without
// error. The only way out of the stopped state is Reset().
//
// A returned error is fatal and the part will be in the stopped state. The
// error will be one of the cpu.IllegalOpcode or cpu.FetchOutOfBounds
// patterns.
func (avr *AVR) Step() (int, error) {
	if avr.state == Stopped {
		return 0, nil
	}

	avr.LastInterrupt = nil

	if avr.catchUp() {
		avr.watchdogReset()
		avr.observe()
		return 0, nil
	}

	// a pending interrupt always wakes the part but will only be serviced if
	// global interrupts are enabled. the instruction following SEI and RETI
	// is always executed before an interrupt is serviced
	if v := avr.Interrupts.Pending(avr.running()); v != nil {
		wake := avr.state == Sleeping
		avr.state = Running
		if avr.Interrupts.Enabled() && !avr.CPU.LastResult.InterruptDelay {
			cycles := avr.service(v, wake)
			avr.Cycles += uint64(cycles)
			avr.observe()
			return cycles, nil
		}
	}

	if avr.state == Sleeping {
		avr.Cycles++
		avr.observe()
		return 1, nil
	}

	if err := avr.CPU.ExecuteInstruction(); err != nil {
		avr.state = Stopped
		logger.Log(avr.env, "cpu", err)
		avr.env.Notify(notifications.NotifyStopped, "avr", err.Error())
		avr.observe()
		return 0, err
	}

	if err := avr.CPU.LastResult.Error; err != nil {
		logger.Logf(avr.env, "memory", "%v (%s)", err, &avr.CPU.LastResult)
	}

	cycles := avr.CPU.LastResult.Cycles
	avr.Cycles += uint64(cycles)
	avr.observe()

	return cycles, nil
}

// service the interrupt. returns the number of cycles taken
func (avr *AVR) service(v *device.Vector, wake bool) int {
	avr.Interrupts.Acknowledge(v)
	if v.Number == avr.Desc.Watchdog.Vector.Number {
		avr.Watchdog.Serviced()
	}

	address := v.Address
	if avr.Desc.IVSEL.Get(avr.Mem) {
		address += avr.Desc.BootStart(avr.Fuses)
	}

	// an error is the result of a stack push outside of data memory
	if err := avr.CPU.Interrupt(address); err != nil {
		logger.Logf(avr.env, "interrupts", "%s: %v", v.Name, err)
	}

	avr.LastInterrupt = v

	cycles := interruptResponse
	if wake {
		cycles += wakeResponse
	}
	return cycles
}

func (avr *AVR) observe() {
	if avr.observer != nil {
		avr.observer(avr.CPU.PC.Address(), avr.state)
	}
}
