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

package performance_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jetsetilly/gopheravr/environment"
	"github.com/jetsetilly/gopheravr/hardware"
	"github.com/jetsetilly/gopheravr/hardware/device"
	"github.com/jetsetilly/gopheravr/performance"
	"github.com/jetsetilly/gopheravr/test"
)

func TestCalcThroughput(t *testing.T) {
	rate, accuracy := performance.CalcThroughput(16000000, 2, 16000000)
	test.ExpectEquality(t, rate, 8000000.0)
	test.ExpectEquality(t, accuracy, 50.0)

	rate, accuracy = performance.CalcThroughput(100, 0, 16000000)
	test.ExpectEquality(t, rate, 0.0)
	test.ExpectEquality(t, accuracy, 0.0)
}

func TestParseProfile(t *testing.T) {
	for _, s := range []string{"none", "cpu", "mem", "trace", "block", "mutex"} {
		p, err := performance.ParseProfile(s)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, p.String(), s)
	}
	_, err := performance.ParseProfile("heap")
	test.ExpectFailure(t, err)
}

func TestRunProfilerNone(t *testing.T) {
	called := false
	err := performance.RunProfiler(performance.ProfileNone, "", func() error {
		called = true
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, called)
}

func TestCheck(t *testing.T) {
	if testing.Short() {
		t.Skip("performance check takes longer than two seconds")
	}

	desc, err := device.Lookup("m328p")
	test.DemandSuccess(t, err)
	env := environment.NewEnvironment("test")
	env.Quiet = true

	// rjmp .-2
	avr, err := hardware.NewAVR(env, "m328p",
		make([]uint8, desc.Memory.FlashSize),
		make([]uint8, desc.Memory.DataSize()),
		bytes.NewReader([]uint8{0xff, 0xcf}))
	test.DemandSuccess(t, err)

	w := &strings.Builder{}
	test.ExpectSuccess(t, performance.Check(w, performance.ProfileNone, avr, "100ms"))
	test.ExpectSuccess(t, strings.Contains(w.String(), "MHz"))

	test.ExpectFailure(t, performance.Check(w, performance.ProfileNone, avr, "ten seconds"))
}
