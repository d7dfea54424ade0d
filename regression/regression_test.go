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

package regression_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gopheravr/curated"
	"github.com/jetsetilly/gopheravr/environment"
	"github.com/jetsetilly/gopheravr/hardware"
	"github.com/jetsetilly/gopheravr/hardware/device"
	"github.com/jetsetilly/gopheravr/regression"
	"github.com/jetsetilly/gopheravr/test"
)

// ldi r16, 0x55
// sts 0x0100, r16
// nop
// rjmp .-2
var program = []uint8{
	0x05, 0xe5,
	0x00, 0x93, 0x00, 0x01,
	0x00, 0x00,
	0xff, 0xcf,
}

func newAVR(t *testing.T) *hardware.AVR {
	t.Helper()
	desc, err := device.Lookup("m328p")
	test.DemandSuccess(t, err)

	env := environment.NewEnvironment("test")
	env.Quiet = true

	avr, err := hardware.NewAVR(env, "m328p",
		make([]uint8, desc.Memory.FlashSize),
		make([]uint8, desc.Memory.DataSize()),
		bytes.NewReader(program))
	test.DemandSuccess(t, err)
	return avr
}

// checkpoints for the test program. the initial dump is taken from the
// part after reset and the expected dump is derived from it
func checkpoints(avr *hardware.AVR, value uint8) []regression.Checkpoint {
	initial := avr.DumpDataMemory()
	expected := bytes.Clone(initial)
	expected[16] = 0x55
	expected[0x100] = value

	return []regression.Checkpoint{
		{PC: 0, Filename: "initial.bin", Data: initial},
		{PC: 3, Filename: "expected.bin", Data: expected},
	}
}

func TestParseCheckpoints(t *testing.T) {
	list := `
# comment
0 reset.bin
0x1a2 loop.bin
`
	var loaded []string
	cps, err := regression.ParseCheckpoints(strings.NewReader(list), func(fn string) ([]uint8, error) {
		loaded = append(loaded, fn)
		return []uint8{uint8(len(loaded))}, nil
	})
	test.ExpectSuccess(t, err)
	test.DemandEquality(t, len(cps), 2)
	test.ExpectEquality(t, cps[0].PC, 0)
	test.ExpectEquality(t, cps[1].PC, 0x1a2)
	test.ExpectEquality(t, cps[1].Filename, "loop.bin")
	test.ExpectEquality(t, cps[1].Data[0], 2)
	test.ExpectEquality(t, len(loaded), 2)

	_, err = regression.ParseCheckpoints(strings.NewReader("0\n"), nil)
	test.ExpectSuccess(t, curated.Is(err, regression.CheckpointFormat))

	_, err = regression.ParseCheckpoints(strings.NewReader("xyz a.bin\n"), nil)
	test.ExpectSuccess(t, curated.Is(err, regression.CheckpointFormat))

	_, err = regression.ParseCheckpoints(strings.NewReader("10 missing.bin\n"), func(string) ([]uint8, error) {
		return nil, fmt.Errorf("missing")
	})
	test.ExpectSuccess(t, curated.Is(err, regression.CheckpointFormat))
}

func TestLoadCheckpoints(t *testing.T) {
	dir := t.TempDir()
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, "a.bin"), []uint8{1, 2, 3}, 0o644))
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, "list"), []uint8("0 a.bin\n"), 0o644))

	cps, err := regression.LoadCheckpoints(filepath.Join(dir, "list"))
	test.ExpectSuccess(t, err)
	test.DemandEquality(t, len(cps), 1)
	test.ExpectEquality(t, len(cps[0].Data), 3)

	_, err = regression.LoadCheckpoints(filepath.Join(dir, "nothing"))
	test.ExpectFailure(t, err)
}

func TestCheckpointPass(t *testing.T) {
	avr := newAVR(t)
	cps := checkpoints(avr, 0x55)

	w := &strings.Builder{}
	res, err := regression.RunCheckpoints(avr, cps, 100, w)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, res.Compared, 1)
	test.ExpectEquality(t, res.Steps, 2)
	test.ExpectEquality(t, res.Cycles, 3)
	test.ExpectInequality(t, res.Digest, "")
	test.ExpectSuccess(t, strings.Contains(w.String(), "checkpoint 1"))
}

func TestCheckpointLoadsInitialMemory(t *testing.T) {
	avr := newAVR(t)
	cps := checkpoints(avr, 0x55)

	// the initial dump sets a byte in SRAM that the program never touches
	cps[0].Data[0x200] = 0x77
	cps[1].Data[0x200] = 0x77

	_, err := regression.RunCheckpoints(avr, cps, 100, nil)
	test.ExpectSuccess(t, err)
}

func TestCheckpointMismatch(t *testing.T) {
	avr := newAVR(t)
	cps := checkpoints(avr, 0xaa)

	w := &strings.Builder{}
	_, err := regression.RunCheckpoints(avr, cps, 100, w)
	test.ExpectFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, regression.CheckpointMismatch))
	test.ExpectSuccess(t, strings.Contains(w.String(), "mismatch at 0x100"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "expected:"))
}

func TestCheckpointNotReached(t *testing.T) {
	avr := newAVR(t)
	cps := checkpoints(avr, 0x55)
	cps[1].PC = 0x10

	res, err := regression.RunCheckpoints(avr, cps, 50, nil)
	test.ExpectSuccess(t, curated.Is(err, regression.CheckpointNotReached))
	test.ExpectEquality(t, res.Steps, 50)
}

func TestCheckpointSize(t *testing.T) {
	avr := newAVR(t)
	cps := checkpoints(avr, 0x55)
	cps[1].Data = cps[1].Data[:100]

	_, err := regression.RunCheckpoints(avr, cps, 100, nil)
	test.ExpectSuccess(t, curated.Is(err, regression.CheckpointSize))
}

func TestDeterminism(t *testing.T) {
	for _, mode := range []string{"trace", "memory", "both"} {
		m, err := regression.ParseDigestMode(mode)
		test.DemandSuccess(t, err)
		test.ExpectEquality(t, m.String(), mode)

		a, err := regression.Determinism("m328p", program, 2500, m)
		test.ExpectSuccess(t, err)
		b, err := regression.Determinism("m328p", program, 2500, m)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, a, b)
	}

	_, err := regression.ParseDigestMode("screen")
	test.ExpectFailure(t, err)

	_, err = regression.Determinism("m32u4", program, 10, regression.DigestBoth)
	test.ExpectFailure(t, err)
}
