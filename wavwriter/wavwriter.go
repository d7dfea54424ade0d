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

// Package wavwriter records the level of an output pin to disk as a WAV file.
// The pin level is averaged over each sample period so that a PWM output
// becomes the analogue level it would produce through a low-pass filter.
//
// Note that audio data is buffered in memory in its entirity, and written to
// disk when Close() is called. It is therefore probably only suitable for
// testing purposes.
package wavwriter

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/gopheravr/curated"
	"github.com/jetsetilly/gopheravr/hardware/timer"
	"github.com/jetsetilly/gopheravr/logger"
)

// DefaultSampleRate is the sample rate used if none is specified.
const DefaultSampleRate = 44100

// UnknownPin is the pattern for errors returned by PinSource().
const UnknownPin = "wavwriter: no timer has an output compare pin named %s"

// Source returns the current level of a pin.
type Source func() bool

// PinSource returns a Source for the named output compare pin of one of the
// timers.
func PinSource(timers []*timer.Timer, name string) (Source, error) {
	for _, tmr := range timers {
		if ch := tmr.Channel(name); ch >= 0 {
			return func() bool {
				return tmr.Pin(ch)
			}, nil
		}
	}
	return nil, curated.Errorf(UnknownPin, name)
}

// WavWriter samples a Source over simulated time.
type WavWriter struct {
	filename string
	source   Source

	// clock frequency of the simulation and the sample rate of the output
	frequency uint64
	rate      uint64

	buffer []int

	// the cycle count at the previous call to Sample()
	last uint64

	// number of cycles in the current sample period and the number of those
	// cycles for which the pin was high
	period uint64
	high   uint64

	// the sample period in cycles is frequency/rate. the fractional part is
	// carried between samples
	remainder uint64
}

// New is the preferred method of initialisation for the WavWriter type.
func New(filename string, frequency uint32, rate uint32, source Source) (*WavWriter, error) {
	if frequency == 0 {
		return nil, curated.Errorf("wavwriter: %v", "clock frequency is zero")
	}
	if rate == 0 {
		rate = DefaultSampleRate
	}
	if rate > frequency {
		return nil, curated.Errorf("wavwriter: %v", fmt.Sprintf("sample rate %d is above the clock frequency", rate))
	}

	aw := &WavWriter{
		filename:  filename,
		source:    source,
		frequency: uint64(frequency),
		rate:      uint64(rate),
		buffer:    make([]int, 0, rate),
	}

	return aw, nil
}

func (aw *WavWriter) String() string {
	return fmt.Sprintf("%s: %d samples at %dHz", aw.filename, len(aw.buffer), aw.rate)
}

// Sample should be called after every step of the simulation with the cycle
// count of the simulation. The level of the source is assumed to have been
// constant since the previous call.
func (aw *WavWriter) Sample(now uint64) {
	if now <= aw.last {
		aw.last = now
		return
	}

	level := aw.source()
	elapsed := now - aw.last
	aw.last = now

	for elapsed > 0 {
		// cycles needed to complete the current sample period
		need := (aw.frequency+aw.remainder)/aw.rate - aw.period
		n := min(need, elapsed)

		aw.period += n
		if level {
			aw.high += n
		}
		elapsed -= n

		if n == need {
			aw.buffer = append(aw.buffer, int(aw.high*0xff/aw.period))
			aw.remainder = (aw.frequency + aw.remainder) % aw.rate
			aw.period = 0
			aw.high = 0
		}
	}
}

// Samples returns the samples recorded so far. Samples are unsigned 8-bit
// values.
func (aw *WavWriter) Samples() []int {
	return aw.buffer
}

// Close writes the recorded samples to disk.
func (aw *WavWriter) Close() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := wav.NewEncoder(f, int(aw.rate), 8, 1, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  int(aw.rate),
		},
		Data:           aw.buffer,
		SourceBitDepth: 8,
	}

	logger.Logf(logger.Allow, "wavwriter", "writing audio to %s", aw.filename)

	if err := enc.Write(buf); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	if err := enc.Close(); err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	return nil
}
