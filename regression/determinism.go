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

package regression

import (
	"bytes"
	"fmt"

	"github.com/jetsetilly/gopheravr/curated"
	"github.com/jetsetilly/gopheravr/digest"
	"github.com/jetsetilly/gopheravr/environment"
	"github.com/jetsetilly/gopheravr/hardware"
	"github.com/jetsetilly/gopheravr/hardware/device"
)

// DeterminismFailure is the pattern for errors returned by Determinism() when
// the two instances diverge.
const DeterminismFailure = "regression: determinism: %s digests differ at step %d"

// the number of steps between memory digests
const memoryInterval = 1000

type instance struct {
	avr    *hardware.AVR
	trace  *digest.Trace
	memory *digest.Memory
}

func newInstance(label environment.Label, part string, desc *device.Descriptor, image []uint8) (*instance, error) {
	env := environment.NewEnvironment(label)
	env.Quiet = true

	avr, err := hardware.NewAVR(env, part,
		make([]uint8, desc.Memory.FlashSize),
		make([]uint8, desc.Memory.DataSize()),
		bytes.NewReader(image))
	if err != nil {
		return nil, err
	}

	ins := &instance{
		avr:    avr,
		trace:  digest.NewTrace(),
		memory: digest.NewMemory(),
	}

	avr.SetObserver(func(pc uint32, state hardware.State) {
		ins.trace.Step(pc, int(state), avr.Cycles)
	})

	return ins, nil
}

// compare the digests of the two instances. returns the name of the digest
// that differs
func compare(mode DigestMode, a *instance, b *instance) (string, bool) {
	if mode == DigestTraceOnly || mode == DigestBoth {
		if a.trace.Hash() != b.trace.Hash() {
			return "trace", false
		}
	}
	if mode == DigestMemoryOnly || mode == DigestBoth {
		a.memory.Snapshot(a.avr.DumpDataMemory())
		b.memory.Snapshot(b.avr.DumpDataMemory())
		if a.memory.Hash() != b.memory.Hash() {
			return "memory", false
		}
	}
	return "", true
}

// Determinism runs two independent instances of the part with the same
// firmware image for the specified number of steps. The digests of both
// instances are compared at regular intervals and the combined digest of the
// first instance is returned.
//
// Execution errors in the firmware are not a failure so long as both instances
// fail in the same way.
func Determinism(part string, image []uint8, steps int, mode DigestMode) (string, error) {
	if mode == DigestUndefined {
		mode = DigestBoth
	}

	desc, err := device.Lookup(part)
	if err != nil {
		return "", err
	}

	a, err := newInstance("determinism A", part, desc, image)
	if err != nil {
		return "", err
	}
	b, err := newInstance("determinism B", part, desc, image)
	if err != nil {
		return "", err
	}

	var i int
	for i = 1; i <= steps; i++ {
		_, errA := a.avr.Step()
		_, errB := b.avr.Step()
		if fmt.Sprint(errA) != fmt.Sprint(errB) {
			return "", curated.Errorf(DeterminismFailure, "error", i)
		}

		if i%memoryInterval == 0 {
			if which, ok := compare(mode, a, b); !ok {
				return "", curated.Errorf(DeterminismFailure, which, i)
			}
		}

		if a.avr.State() == hardware.Stopped {
			break
		}
	}
	i = min(i, steps)

	if which, ok := compare(mode, a, b); !ok {
		return "", curated.Errorf(DeterminismFailure, which, i)
	}

	switch mode {
	case DigestTraceOnly:
		return a.trace.Hash(), nil
	case DigestMemoryOnly:
		return a.memory.Hash(), nil
	}
	return fmt.Sprintf("%s%s", a.trace.Hash(), a.memory.Hash()), nil
}
