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
	"fmt"
	"io"

	"github.com/jetsetilly/gopheravr/curated"
	"github.com/jetsetilly/gopheravr/environment"
	"github.com/jetsetilly/gopheravr/hardware/cpu"
	"github.com/jetsetilly/gopheravr/hardware/device"
	"github.com/jetsetilly/gopheravr/hardware/interrupts"
	"github.com/jetsetilly/gopheravr/hardware/memory"
	"github.com/jetsetilly/gopheravr/hardware/timer"
	"github.com/jetsetilly/gopheravr/hardware/watchdog"
	"github.com/jetsetilly/gopheravr/logger"
	"github.com/jetsetilly/gopheravr/notifications"
)

// Error patterns returned by NewAVR() and the memory access functions.
const (
	UnknownPart       = "avr: %v"
	SizeMismatch      = "avr: %s memory is %d bytes but the part requires %d bytes"
	BadImage          = "avr: firmware image: %v"
	InvalidDescriptor = "avr: descriptor for %s: %v"
	UnknownRegister   = "avr: unknown register (%s)"
)

// State is the execution state of the part.
type State int

// List of valid State values.
const (
	Running State = iota
	Stopped
	Sleeping
)

func (s State) String() string {
	switch s {
	case Running:
		return "RUNNING"
	case Stopped:
		return "STOPPED"
	case Sleeping:
		return "SLEEPING"
	}
	return "unknown state"
}

// Observer is called at the end of every Step() with the program counter and
// execution state.
type Observer func(pc uint32, state State)

// AVR is the main container for the simulated components of the part.
type AVR struct {
	env *environment.Environment

	Desc       *device.Descriptor
	Mem        *memory.Memory
	CPU        *cpu.CPU
	Timers     []*timer.Timer
	Interrupts *interrupts.Controller
	Watchdog   *watchdog.Watchdog

	// fuse bytes and CPU clock frequency in use by the simulation
	Fuses     [3]uint8
	Frequency uint32

	// number of CPU cycles since the last power-on reset. a watchdog reset
	// does not reset the count
	Cycles uint64

	// the interrupt serviced by the most recent Step(). nil if no interrupt
	// was serviced
	LastInterrupt *device.Vector

	state     State
	sleepMode device.SleepMode
	observer  Observer
}

// NewAVR creates a new instance of the named part. The program and data
// buffers must be the sizes required by the part and are used as the memory
// of the simulation.
//
// The firmware image is read into program memory. Program memory not
// covered by the image is filled with 0xff, the value of erased flash. A nil
// image leaves program memory completely erased.
//
// The arguments are checked before any change is made to the buffers. If an
// error is returned the buffers are untouched.
func NewAVR(env *environment.Environment, part string, program []uint8, data []uint8, image io.Reader) (*AVR, error) {
	if env == nil {
		env = environment.NewEnvironment(environment.MainEmulation)
	}

	desc, err := device.Lookup(part)
	if err != nil {
		if curated.Is(err, device.UnknownPart) {
			return nil, curated.Errorf(UnknownPart, err)
		}
		return nil, curated.Errorf(InvalidDescriptor, part, err)
	}

	flash := int(desc.Memory.FlashSize)
	if len(program) != flash {
		return nil, curated.Errorf(SizeMismatch, "program", len(program), flash)
	}
	if len(data) != desc.Memory.DataSize() {
		return nil, curated.Errorf(SizeMismatch, "data", len(data), desc.Memory.DataSize())
	}

	var firmware []uint8
	if image != nil {
		firmware, err = io.ReadAll(io.LimitReader(image, int64(flash)+1))
		if err != nil {
			return nil, curated.Errorf(BadImage, err)
		}
		if len(firmware) == 0 {
			return nil, curated.Errorf(BadImage, "image is empty")
		}
		if len(firmware) > flash {
			return nil, curated.Errorf(BadImage, fmt.Sprintf("image is larger than the %d bytes of flash", flash))
		}
	}

	// nothing can fail from this point

	n := copy(program, firmware)
	for i := n; i < len(program); i++ {
		program[i] = 0xff
	}

	avr := &AVR{
		env:   env,
		Desc:  desc,
		Fuses: desc.Fuses,
	}

	if env.Fuses != nil {
		avr.Fuses = *env.Fuses
	}

	avr.Frequency = env.Frequency
	if avr.Frequency == 0 {
		avr.Frequency = desc.Frequency
		if desc.CKDIV8.Programmed(avr.Fuses) {
			avr.Frequency /= 8
		}
	}

	avr.Mem = memory.NewMemory(desc, program, data)
	avr.CPU = cpu.NewCPU(desc, avr.Mem, control{avr: avr})
	avr.Interrupts = interrupts.NewController(desc, avr.Mem)

	for i := range desc.Timers {
		tmr := timer.NewTimer(&desc.Timers[i], avr.Mem, func(detail string) {
			env.Notify(notifications.NotifyUnsupported, "timer", detail)
		})
		avr.Timers = append(avr.Timers, tmr)
		for _, a := range tmr.Watched() {
			avr.Mem.Watch(a)
		}
	}

	avr.Watchdog = watchdog.NewWatchdog(&desc.Watchdog, avr.Mem, avr.Fuses, avr.Frequency)
	for _, a := range avr.Watchdog.Watched() {
		avr.Mem.Watch(a)
	}

	avr.Reset()

	logger.Logf(env, "avr", "%s at %dHz (%d bytes of firmware)", desc.Name, avr.Frequency, len(firmware))

	return avr, nil
}

func (avr *AVR) String() string {
	return fmt.Sprintf("%s %s %s cycles=%d", avr.Desc.Name, avr.state, avr.CPU, avr.Cycles)
}

// Env returns the environment of the simulation.
func (avr *AVR) Env() *environment.Environment {
	return avr.env
}

// State returns the current execution state.
func (avr *AVR) State() State {
	return avr.state
}

// PC returns the current value of the program counter.
func (avr *AVR) PC() uint32 {
	return avr.CPU.PC.Address()
}

// SetObserver sets the function to be called at the end of every Step(). A
// nil value removes the observer.
func (avr *AVR) SetObserver(observer Observer) {
	avr.observer = observer
}

// Reset the part to the power-on state. The cycle count is reset to zero and
// the power-on reset flag is set in MCUSR.
//
// The register file and SRAM are not changed.
func (avr *AVR) Reset() {
	avr.Cycles = 0
	avr.reset(avr.Desc.PowerOnReset.Mask)
}

// reset the part with the reset flags set to the value of mcusr
func (avr *AVR) reset(mcusr uint8) {
	avr.Mem.Reset()
	avr.Mem.ChipWrite(avr.Desc.MCUSR, mcusr)

	avr.CPU.Reset(avr.Desc.ResetVector(avr.Fuses))
	for _, tmr := range avr.Timers {
		tmr.Reset(avr.Cycles)
	}
	avr.Interrupts.Reset()

	// the watchdog is reset after MCUSR has been written because the reset
	// flag affects the watchdog mode
	avr.Watchdog.Reset(avr.Cycles)

	avr.state = Running
	avr.LastInterrupt = nil
}

// watchdogReset is a reset caused by a watchdog timeout. The reset flags
// are kept and the watchdog reset flag is set
func (avr *AVR) watchdogReset() {
	mcusr := avr.Mem.ChipRefer(avr.Desc.MCUSR) | avr.Desc.Watchdog.ResetFlag.Mask
	avr.reset(mcusr)
	avr.env.Notify(notifications.NotifyWatchdogReset, "watchdog", fmt.Sprintf("reset at cycle %d", avr.Cycles))
}
