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

package wavwriter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/jetsetilly/gopheravr/curated"
	"github.com/jetsetilly/gopheravr/hardware/device"
	"github.com/jetsetilly/gopheravr/hardware/memory"
	"github.com/jetsetilly/gopheravr/hardware/timer"
	"github.com/jetsetilly/gopheravr/test"
	"github.com/jetsetilly/gopheravr/wavwriter"
)

func TestAveraging(t *testing.T) {
	level := true
	aw, err := wavwriter.New(filepath.Join(t.TempDir(), "a.wav"), 1000, 100, func() bool {
		return level
	})
	test.DemandSuccess(t, err)

	// ten cycles per sample
	aw.Sample(20)
	test.DemandEquality(t, len(aw.Samples()), 2)
	test.ExpectEquality(t, aw.Samples()[0], 0xff)

	aw.Sample(25)
	level = false
	aw.Sample(30)
	test.DemandEquality(t, len(aw.Samples()), 3)
	test.ExpectEquality(t, aw.Samples()[2], 0x7f)

	// steps longer than a sample period produce more than one sample
	aw.Sample(65)
	test.ExpectEquality(t, len(aw.Samples()), 6)
	test.ExpectEquality(t, aw.Samples()[5], 0)
}

func TestFractionalPeriod(t *testing.T) {
	aw, err := wavwriter.New(filepath.Join(t.TempDir(), "a.wav"), 1000, 300, func() bool {
		return true
	})
	test.DemandSuccess(t, err)

	// 3.33 cycles per sample
	aw.Sample(1000)
	test.ExpectEquality(t, len(aw.Samples()), 300)
}

func TestBadParameters(t *testing.T) {
	_, err := wavwriter.New("a.wav", 0, 100, nil)
	test.ExpectFailure(t, err)
	_, err = wavwriter.New("a.wav", 100, 1000, nil)
	test.ExpectFailure(t, err)
}

func TestPWM(t *testing.T) {
	desc, err := device.Lookup("m328p")
	test.DemandSuccess(t, err)
	mem := memory.NewMemory(desc,
		make([]uint8, desc.Memory.FlashSize),
		make([]uint8, desc.Memory.DataSize()))
	mem.Reset()

	var timers []*timer.Timer
	for i := range desc.Timers {
		tmr := timer.NewTimer(&desc.Timers[i], mem, nil)
		tmr.Reset(0)
		tmr.Step(0, device.DomainAll)
		timers = append(timers, tmr)
	}

	_, err = wavwriter.PinSource(timers, "OC3A")
	test.ExpectSuccess(t, curated.Is(err, wavwriter.UnknownPin))

	src, err := wavwriter.PinSource(timers, "oc0a")
	test.DemandSuccess(t, err)

	// one sample per PWM period
	fn := filepath.Join(t.TempDir(), "pwm.wav")
	aw, err := wavwriter.New(fn, 25600, 100, src)
	test.DemandSuccess(t, err)

	// fast PWM, non-inverting on OC0A with a quarter duty cycle
	mem.ChipWrite(device.OCR0A, 63)
	mem.ChipWrite(device.TCCR0A, 0x83)
	mem.ChipWrite(device.TCCR0B, 0x01)

	for now := uint64(1); now <= 256*10; now++ {
		timers[0].Step(now, device.DomainAll)
		aw.Sample(now)
	}

	s := aw.Samples()
	test.DemandEquality(t, len(s), 10)
	for _, v := range s[2:] {
		test.ExpectEquality(t, v, 63)
	}

	test.DemandSuccess(t, aw.Close())

	f, err := os.Open(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.ExpectSuccess(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, buf.Format.SampleRate, 100)
	test.ExpectEquality(t, buf.Format.NumChannels, 1)
	test.ExpectEquality(t, len(buf.Data), 10)
}
