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

package hardware_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jetsetilly/gopheravr/curated"
	"github.com/jetsetilly/gopheravr/hardware"
	"github.com/jetsetilly/gopheravr/hardware/cpu"
	"github.com/jetsetilly/gopheravr/hardware/device"
	"github.com/jetsetilly/gopheravr/notifications"
	"github.com/jetsetilly/gopheravr/test"
)

type failingReader struct{}

func (failingReader) Read(_ []byte) (int, error) {
	return 0, errors.New("read failed")
}

func TestInitErrors(t *testing.T) {
	desc, err := device.Lookup("m328p")
	test.DemandSuccess(t, err)

	program := bytes.Repeat([]byte{0xaa}, int(desc.Memory.FlashSize))
	data := bytes.Repeat([]byte{0x55}, desc.Memory.DataSize())
	untouched := func() {
		t.Helper()
		test.ExpectEquality(t, bytes.Count(program, []byte{0xaa}), len(program))
		test.ExpectEquality(t, bytes.Count(data, []byte{0x55}), len(data))
	}

	_, err = hardware.NewAVR(nil, "m999", program, data, nil)
	test.ExpectSuccess(t, curated.Is(err, hardware.UnknownPart))
	test.ExpectSuccess(t, curated.Has(err, device.UnknownPart))
	untouched()

	_, err = hardware.NewAVR(nil, "m328p", program[1:], data, nil)
	test.ExpectSuccess(t, curated.Is(err, hardware.SizeMismatch))
	untouched()

	_, err = hardware.NewAVR(nil, "m328p", program, data[:100], nil)
	test.ExpectSuccess(t, curated.Is(err, hardware.SizeMismatch))
	untouched()

	// the 88P has a different geometry
	_, err = hardware.NewAVR(nil, "m88p", program, data, nil)
	test.ExpectSuccess(t, curated.Is(err, hardware.SizeMismatch))
	untouched()

	large := bytes.NewReader(make([]byte, desc.Memory.FlashSize+1))
	_, err = hardware.NewAVR(nil, "m328p", program, data, large)
	test.ExpectSuccess(t, curated.Is(err, hardware.BadImage))
	untouched()

	_, err = hardware.NewAVR(nil, "m328p", program, data, bytes.NewReader(nil))
	test.ExpectSuccess(t, curated.Is(err, hardware.BadImage))
	untouched()

	_, err = hardware.NewAVR(nil, "m328p", program, data, failingReader{})
	test.ExpectSuccess(t, curated.Is(err, hardware.BadImage))
	untouched()
}

func TestInitImage(t *testing.T) {
	desc, err := device.Lookup("m328p")
	test.DemandSuccess(t, err)

	program := make([]byte, desc.Memory.FlashSize)
	data := make([]byte, desc.Memory.DataSize())

	// odd length image. the remainder of flash is erased
	avr, err := hardware.NewAVR(nil, "ATmega328P", program, data, bytes.NewReader([]byte{0x01, 0x02, 0x03}))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, program[0], 0x01)
	test.ExpectEquality(t, program[2], 0x03)
	test.ExpectEquality(t, program[3], 0xff)
	test.ExpectEquality(t, program[len(program)-1], 0xff)

	// the buffers are used directly
	program[10] = 0x42
	test.ExpectEquality(t, avr.DumpProgramMemory()[10], 0x42)
	test.ExpectEquality(t, avr.State(), hardware.Running)
	test.ExpectEquality(t, avr.PC(), 0)
}

func TestFrequency(t *testing.T) {
	// the default fuses of the 328P have CKDIV8 programmed
	avr := newAVR(t, newEnv(nil), nil)
	test.ExpectEquality(t, avr.Frequency, 1000000)

	env := newEnv(nil)
	fuses := [3]uint8{0xe2, 0xd9, 0xff}
	env.Fuses = &fuses
	avr = newAVR(t, env, nil)
	test.ExpectEquality(t, avr.Frequency, 8000000)

	env = newEnv(nil)
	env.Frequency = 16000000
	avr = newAVR(t, env, nil)
	test.ExpectEquality(t, avr.Frequency, 16000000)
}

func TestBootReset(t *testing.T) {
	// BOOTRST programmed with the largest boot section
	env := newEnv(nil)
	fuses := [3]uint8{0x62, 0xd8, 0xff}
	env.Fuses = &fuses
	avr := newAVR(t, env, nil)
	test.ExpectEquality(t, avr.PC(), 0x3800)
}

func TestRoundTrip(t *testing.T) {
	avr := newAVR(t, newEnv(nil), firmware{}.put(0, ldi(16, 0x12), ldi(17, 0x34), rjmp(-1)))
	for range 10 {
		step(t, avr)
	}

	before := avr.DumpDataMemory()
	test.DemandSuccess(t, avr.LoadDataMemory(avr.DumpDataMemory()))
	test.ExpectSuccess(t, bytes.Equal(before, avr.DumpDataMemory()))

	err := avr.LoadDataMemory(before[1:])
	test.ExpectSuccess(t, curated.Is(err, hardware.SizeMismatch))

	program := avr.DumpProgramMemory()
	test.DemandSuccess(t, avr.LoadProgramMemory(program))
	test.ExpectSuccess(t, bytes.Equal(program, avr.DumpProgramMemory()))
	err = avr.LoadProgramMemory(program[2:])
	test.ExpectSuccess(t, curated.Is(err, hardware.SizeMismatch))
}

func TestRegisterAccess(t *testing.T) {
	avr := newAVR(t, newEnv(nil), nil)

	test.DemandSuccess(t, avr.WriteRegister("tifr0", 0x01))
	v, err := avr.ReadRegister("TIFR0")
	test.DemandSuccess(t, err)

	// debug access does not clear flags
	test.ExpectEquality(t, v, 0x01)

	test.DemandSuccess(t, avr.WriteRegister("r16", 0x99))
	test.ExpectEquality(t, avr.CPU.Register(16), 0x99)

	_, err = avr.ReadRegister("NOSUCHREG")
	test.ExpectSuccess(t, curated.Is(err, hardware.UnknownRegister))
	err = avr.WriteRegister("NOSUCHREG", 0)
	test.ExpectSuccess(t, curated.Is(err, hardware.UnknownRegister))
}

func TestResetIdempotence(t *testing.T) {
	fw := firmware{}.put(0, ldi(16, 0x01), out(device.TCCR0B, 16), rjmp(-1))
	avr := newAVR(t, newEnv(nil), fw)
	for range 100 {
		step(t, avr)
	}

	avr.Reset()
	once := avr.DumpDataMemory()
	pc, cycles := avr.PC(), avr.Cycles

	avr.Reset()
	test.ExpectSuccess(t, bytes.Equal(once, avr.DumpDataMemory()))
	test.ExpectEquality(t, avr.PC(), pc)
	test.ExpectEquality(t, avr.Cycles, cycles)
	test.ExpectEquality(t, avr.Cycles, 0)
	test.ExpectEquality(t, avr.State(), hardware.Running)

	// power-on reset flag
	v, _ := avr.ReadRegister("MCUSR")
	test.ExpectEquality(t, v, 0x01)
}

// a firmware that runs timer 0 with the overflow interrupt incrementing r17
func timerFirmware() firmware {
	fw := firmware{}
	w0, w1 := sts(device.TIMSK0, 16)
	fw.put(0, ldi(16, 0x01), out(device.TCCR0B, 16), w0, w1, opSEI, rjmp(-1))
	fw.put(32, inc(17), opRETI)
	return fw
}

func TestDeterminism(t *testing.T) {
	a := newAVR(t, newEnv(nil), timerFirmware())
	b := newAVR(t, newEnv(nil), timerFirmware())

	for i := range 2000 {
		step(t, a)
		step(t, b)
		test.DemandEquality(t, a.PC(), b.PC(), i)
		test.DemandEquality(t, a.Cycles, b.Cycles, i)
		test.DemandSuccess(t, bytes.Equal(a.DumpDataMemory(), b.DumpDataMemory()), i)
	}
}

func TestTimerInterrupt(t *testing.T) {
	avr := newAVR(t, newEnv(nil), timerFirmware())
	test.DemandSuccess(t, avr.RunForCycles(1000, nil))

	// overflows at cycles 258, 514 and 770
	test.ExpectEquality(t, avr.CPU.Register(17), 3)
	test.ExpectEquality(t, avr.Interrupts.Serviced[16], 3)

	// the overflow flag is cleared on entry to the vector
	v, _ := avr.ReadRegister("TIFR0")
	test.ExpectEquality(t, v&0x01, 0x00)
}

func TestInterruptPriority(t *testing.T) {
	fw := firmware{}
	fw.put(0, opNOP, rjmp(-2))
	fw.put(22, opRETI)
	fw.put(32, opRETI)
	avr := newAVR(t, newEnv(nil), fw)

	// TIMER1_COMPA and TIMER0_OVF pending at the same time
	test.DemandSuccess(t, avr.WriteRegister("TIMSK0", 0x01))
	test.DemandSuccess(t, avr.WriteRegister("TIFR0", 0x01))
	test.DemandSuccess(t, avr.WriteRegister("TIMSK1", 0x02))
	test.DemandSuccess(t, avr.WriteRegister("TIFR1", 0x02))
	test.DemandSuccess(t, avr.WriteRegister("SREG", 0x80))

	var serviced []string
	for range 6 {
		cycles := step(t, avr)
		if avr.LastInterrupt != nil {
			serviced = append(serviced, avr.LastInterrupt.Name)
			test.ExpectEquality(t, cycles, 4)
		}
	}

	// TIMER0_OVF is not serviced on the boundary after the RETI of the first
	// handler. one instruction of the main line runs after RETI before the
	// next pending vector is taken
	test.DemandEquality(t, len(serviced), 2)
	test.ExpectEquality(t, serviced[0], "TIMER1_COMPA")
	test.ExpectEquality(t, serviced[1], "TIMER0_OVF")
}

func TestInterruptDelay(t *testing.T) {
	fw := firmware{}
	fw.put(0, opSEI, inc(18), rjmp(-1))
	fw.put(32, opRETI)
	avr := newAVR(t, newEnv(nil), fw)
	test.DemandSuccess(t, avr.WriteRegister("TIMSK0", 0x01))
	test.DemandSuccess(t, avr.WriteRegister("TIFR0", 0x01))

	// SEI then the instruction following it
	step(t, avr)
	step(t, avr)
	test.ExpectEquality(t, avr.CPU.Register(18), 1)
	test.ExpectEquality(t, avr.LastInterrupt == nil, true)

	step(t, avr)
	test.DemandSuccess(t, avr.LastInterrupt != nil)
	test.ExpectEquality(t, avr.PC(), 32)
}

func TestWatchdogReset(t *testing.T) {
	desc, err := device.Lookup("m328p")
	test.DemandSuccess(t, err)

	// WDTON programmed so the watchdog is always in system reset mode. the
	// frequency matches the watchdog oscillator so the 2048 cycle timeout is
	// also 2048 CPU cycles
	var n notices
	env := newEnv(&n)
	fuses := desc.Fuses
	fuses[1] &^= 0x10
	env.Fuses = &fuses
	env.Frequency = 128000

	// RJMP to a three cycle loop. the loop reaches cycle 2048 exactly
	fw := firmware{}.put(0, rjmp(0), opNOP, rjmp(-2))
	avr := newAVR(t, env, fw)

	for {
		step(t, avr)
		mcusr, _ := avr.ReadRegister("MCUSR")
		if mcusr&0x08 == 0x08 {
			break
		}
		test.DemandSuccess(t, avr.PC() != 0)
		test.DemandSuccess(t, avr.Cycles <= 2048)
	}

	test.ExpectEquality(t, avr.Cycles, 2048)
	test.ExpectEquality(t, avr.PC(), 0)
	test.ExpectEquality(t, avr.State(), hardware.Running)
	test.ExpectEquality(t, len(n), 1)
	test.ExpectEquality(t, n[0], notifications.NotifyWatchdogReset)
}

func TestWatchdogPing(t *testing.T) {
	desc, err := device.Lookup("m328p")
	test.DemandSuccess(t, err)

	env := newEnv(nil)
	fuses := desc.Fuses
	fuses[1] &^= 0x10
	env.Fuses = &fuses
	env.Frequency = 128000

	fw := firmware{}.put(0, opWDR, rjmp(-2))
	avr := newAVR(t, env, fw)
	test.DemandSuccess(t, avr.RunForCycles(10000, nil))

	mcusr, _ := avr.ReadRegister("MCUSR")
	test.ExpectEquality(t, mcusr&0x08, 0x00)
}

func TestSleep(t *testing.T) {
	fw := firmware{}
	fw.put(0, opSLEEP, rjmp(-1))
	fw.put(32, opRETI)

	avr := newAVR(t, newEnv(nil), fw)
	test.DemandSuccess(t, avr.WriteRegister("SMCR", 0x01))
	test.DemandSuccess(t, avr.WriteRegister("TCCR0B", 0x01))
	test.DemandSuccess(t, avr.WriteRegister("TIMSK0", 0x01))
	test.DemandSuccess(t, avr.WriteRegister("SREG", 0x80))

	step(t, avr)
	test.ExpectEquality(t, avr.State(), hardware.Sleeping)

	for {
		cycles := step(t, avr)
		if avr.LastInterrupt != nil {
			test.ExpectEquality(t, cycles, 8)
			break
		}
		test.DemandEquality(t, cycles, 1)
		test.DemandSuccess(t, avr.Cycles < 1000)
	}

	// the overflow at cycle 256 wakes the part. waking adds four cycles to
	// the interrupt response
	test.ExpectEquality(t, avr.Cycles, 264)
	test.ExpectEquality(t, avr.State(), hardware.Running)
	test.ExpectEquality(t, avr.PC(), 32)
}

func TestSleepPowerDown(t *testing.T) {
	fw := firmware{}
	fw.put(0, opSLEEP, rjmp(-1))
	fw.put(32, opRETI)

	avr := newAVR(t, newEnv(nil), fw)
	test.DemandSuccess(t, avr.WriteRegister("SMCR", 0x05))
	test.DemandSuccess(t, avr.WriteRegister("TCCR0B", 0x01))
	test.DemandSuccess(t, avr.WriteRegister("TIMSK0", 0x01))
	test.DemandSuccess(t, avr.WriteRegister("SREG", 0x80))

	// timer 0 is stopped in power-down mode and nothing wakes the part
	test.DemandSuccess(t, avr.RunForCycles(2000, nil))
	test.ExpectEquality(t, avr.State(), hardware.Sleeping)
	v, _ := avr.ReadRegister("TCNT0")
	test.ExpectEquality(t, v, 0)
}

func TestStopped(t *testing.T) {
	var n notices
	avr := newAVR(t, newEnv(&n), nil)

	// erased flash is an illegal opcode
	_, err := avr.Step()
	test.ExpectSuccess(t, curated.Is(err, cpu.IllegalOpcode))
	test.ExpectEquality(t, avr.State(), hardware.Stopped)
	test.ExpectEquality(t, len(n), 1)
	test.ExpectEquality(t, n[0], notifications.NotifyStopped)

	cycles, err := avr.Step()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, cycles, 0)

	avr.Reset()
	test.ExpectEquality(t, avr.State(), hardware.Running)
}

func TestFetchOutOfBounds(t *testing.T) {
	fw := firmware{}
	fw.put(0x3fff, opNOP)
	avr := newAVR(t, newEnv(nil), fw)

	// the NOP in the last word of flash moves the program counter beyond the
	// end of flash
	avr.CPU.PC.Load(0x3fff)
	step(t, avr)
	_, err := avr.Step()
	test.ExpectSuccess(t, curated.Is(err, cpu.FetchOutOfBounds))
	test.ExpectEquality(t, avr.State(), hardware.Stopped)
}

func TestObserver(t *testing.T) {
	fw := firmware{}.put(0, opNOP, opNOP, rjmp(-3))
	avr := newAVR(t, newEnv(nil), fw)

	var pcs []uint32
	avr.SetObserver(func(pc uint32, state hardware.State) {
		pcs = append(pcs, pc)
		test.ExpectEquality(t, state, hardware.Running)
	})
	for range 4 {
		step(t, avr)
	}
	test.ExpectEquality(t, len(pcs), 4)
	test.ExpectEquality(t, pcs[0], 1)
	test.ExpectEquality(t, pcs[2], 0)
	test.ExpectEquality(t, pcs[3], 1)

	avr.SetObserver(nil)
	step(t, avr)
	test.ExpectEquality(t, len(pcs), 4)
}

func TestSnapshot(t *testing.T) {
	avr := newAVR(t, newEnv(nil), timerFirmware())
	test.DemandSuccess(t, avr.RunForCycles(300, nil))

	s := avr.Snapshot()
	test.DemandSuccess(t, avr.RunForCycles(700, nil))
	want := avr.DumpDataMemory()
	wantCycles := avr.Cycles
	wantPC := avr.PC()

	avr.Plumb(s)
	test.ExpectEquality(t, avr.Cycles, s.Cycles)
	test.DemandSuccess(t, avr.RunForCycles(700, nil))
	test.ExpectSuccess(t, bytes.Equal(want, avr.DumpDataMemory()))
	test.ExpectEquality(t, avr.Cycles, wantCycles)
	test.ExpectEquality(t, avr.PC(), wantPC)

	// the snapshot can be plumbed into a different instance
	other := newAVR(t, newEnv(nil), timerFirmware())
	other.Plumb(s)
	test.DemandSuccess(t, other.RunForCycles(700, nil))
	test.ExpectSuccess(t, bytes.Equal(want, other.DumpDataMemory()))
}
