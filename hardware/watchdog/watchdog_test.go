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

package watchdog_test

import (
	"testing"

	"github.com/jetsetilly/gopheravr/hardware/device"
	"github.com/jetsetilly/gopheravr/hardware/memory"
	"github.com/jetsetilly/gopheravr/hardware/watchdog"
	"github.com/jetsetilly/gopheravr/test"
)

type fixture struct {
	mem *memory.Memory
	wd  *watchdog.Watchdog
	now uint64
}

func newFixture(t *testing.T, fuses [3]uint8, frequency uint32) *fixture {
	t.Helper()
	desc, err := device.Lookup("m328p")
	test.DemandSuccess(t, err)

	f := &fixture{}
	f.mem = memory.NewMemory(desc,
		make([]uint8, desc.Memory.FlashSize),
		make([]uint8, desc.Memory.DataSize()))
	f.mem.Reset()
	f.mem.Watch(device.WDTCSR)
	f.wd = watchdog.NewWatchdog(&desc.Watchdog, f.mem, fuses, frequency)
	f.wd.Reset(0)
	return f
}

// runTo returns true if a reset was requested on the final step
func (f *fixture) runTo(to uint64) bool {
	var reset bool
	for f.now < to {
		f.now++
		reset = f.wd.Step(f.now, device.DomainAll)
	}
	return reset
}

// write to the control register as the CPU would
func (f *fixture) write(v uint8) {
	_ = f.mem.Write(device.WDTCSR, v)
	for _, c := range f.mem.ChipChanges() {
		f.wd.Update(c, f.now)
	}
}

func (f *fixture) wdif() bool {
	return device.Bit(device.WDTCSR, 7).Get(f.mem)
}

var unprogrammed = [3]uint8{0xff, 0xff, 0xff}

func TestStopped(t *testing.T) {
	f := newFixture(t, unprogrammed, 128000)
	test.ExpectEquality(t, f.wd.Mode(), watchdog.Stopped)
	test.ExpectFailure(t, f.runTo(100000))
	test.ExpectFailure(t, f.wdif())
	test.ExpectEquality(t, f.wd.Count(), 0)
}

func TestInterruptMode(t *testing.T) {
	f := newFixture(t, unprogrammed, 128000)
	f.write(0x40)
	test.ExpectEquality(t, f.wd.Mode(), watchdog.Interrupt)

	test.ExpectFailure(t, f.runTo(2047))
	test.ExpectFailure(t, f.wdif())
	test.ExpectFailure(t, f.runTo(2048))
	test.ExpectSuccess(t, f.wdif())
	test.ExpectEquality(t, f.wd.Count(), 0)
}

func TestOscillatorScaling(t *testing.T) {
	// 8MHz CPU clock. 2048 watchdog cycles is 128000 CPU cycles
	f := newFixture(t, unprogrammed, 8000000)
	f.write(0x40)
	f.runTo(127999)
	test.ExpectFailure(t, f.wdif())
	f.runTo(128000)
	test.ExpectSuccess(t, f.wdif())

	// the same result stepping in large increments
	f = newFixture(t, unprogrammed, 8000000)
	f.write(0x40)
	for f.now < 128000 {
		f.now += 7
		f.wd.Step(f.now, device.DomainAll)
		if f.now < 128000 {
			test.DemandFailure(t, f.wdif())
		}
	}
	test.ExpectSuccess(t, f.wdif())
}

func TestResetMode(t *testing.T) {
	f := newFixture(t, unprogrammed, 128000)
	f.write(0x08)
	test.ExpectEquality(t, f.wd.Mode(), watchdog.SystemReset)
	test.ExpectFailure(t, f.runTo(2047))
	test.ExpectSuccess(t, f.runTo(2048))
}

func TestWDTONFuse(t *testing.T) {
	// WDTON is bit 4 of the high fuse. programmed is zero
	f := newFixture(t, [3]uint8{0xff, 0xef, 0xff}, 128000)
	test.ExpectEquality(t, f.wd.Mode(), watchdog.SystemReset)
	test.ExpectFailure(t, f.runTo(2047))
	test.ExpectSuccess(t, f.runTo(2048))
}

func TestInterruptAndReset(t *testing.T) {
	f := newFixture(t, unprogrammed, 128000)
	f.write(0x48)
	test.ExpectEquality(t, f.wd.Mode(), watchdog.InterruptAndReset)

	// first timeout raises the interrupt
	test.ExpectFailure(t, f.runTo(2048))
	test.ExpectSuccess(t, f.wdif())

	// servicing the interrupt clears WDIE. the next timeout resets
	f.wd.Serviced()
	test.ExpectEquality(t, f.wd.Mode(), watchdog.SystemReset)
	test.ExpectFailure(t, f.runTo(4095))
	test.ExpectSuccess(t, f.runTo(4096))
}

func TestPing(t *testing.T) {
	f := newFixture(t, unprogrammed, 128000)
	f.write(0x08)
	f.runTo(2000)
	f.wd.Ping()
	test.ExpectEquality(t, f.wd.Count(), 0)
	test.ExpectFailure(t, f.runTo(4047))
	test.ExpectSuccess(t, f.runTo(4048))
}

func TestChangeProtection(t *testing.T) {
	f := newFixture(t, unprogrammed, 128000)
	f.write(0x08)

	// WDE can't be cleared and the prescaler can't be changed without the
	// timed sequence
	f.runTo(10)
	f.write(0x07)
	test.ExpectEquality(t, f.mem.ChipRefer(device.WDTCSR), 0x08)

	// timed sequence
	f.runTo(20)
	f.write(0x18)
	test.ExpectEquality(t, f.mem.ChipRefer(device.WDTCSR), 0x18)
	f.runTo(22)
	f.write(0x07)
	test.ExpectEquality(t, f.mem.ChipRefer(device.WDTCSR), 0x07)
	test.ExpectEquality(t, f.wd.Mode(), watchdog.Stopped)
	test.ExpectEquality(t, f.wd.Timeout(), 262144)

	// timed sequence that is too slow. WDCE is cleared by hardware
	f.write(0x08)
	f.write(0x18)
	f.runTo(40)
	test.ExpectEquality(t, f.mem.ChipRefer(device.WDTCSR), 0x0f)
	f.write(0x00)
	test.ExpectEquality(t, f.mem.ChipRefer(device.WDTCSR), 0x0f)
}

func TestResetFlag(t *testing.T) {
	f := newFixture(t, unprogrammed, 128000)
	device.Bit(device.MCUSR, 3).Set(f.mem, true)
	f.wd.Reset(0)
	test.ExpectEquality(t, f.mem.ChipRefer(device.WDTCSR), 0x08)
	test.ExpectEquality(t, f.wd.Mode(), watchdog.SystemReset)
}
