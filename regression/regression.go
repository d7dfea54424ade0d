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
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/jetsetilly/gopheravr/curated"
	"github.com/jetsetilly/gopheravr/digest"
	"github.com/jetsetilly/gopheravr/hardware"
	"github.com/jetsetilly/gopheravr/logger"
)

// Error patterns returned by RunCheckpoints().
const (
	CheckpointMismatch   = "regression: checkpoint %d (pc %#05x): data memory differs at %#04x"
	CheckpointNotReached = "regression: checkpoint %d (pc %#05x) not reached after %d steps"
	CheckpointSize       = "regression: checkpoint %d (pc %#05x): dump is %d bytes but data memory is %d bytes"
)

// the number of bytes either side of a mismatch that are included in the
// failure report
const mismatchContext = 16

// Result is the result of a successful call to RunCheckpoints().
type Result struct {
	// number of checkpoints compared. the initial checkpoint is not counted
	Compared int

	// steps and cycles taken to reach the final checkpoint
	Steps  int
	Cycles uint64

	// chained hash of data memory at each checkpoint
	Digest string
}

func (r Result) String() string {
	return fmt.Sprintf("%d checkpoints in %d steps (%d cycles) digest=%s", r.Compared, r.Steps, r.Cycles, r.Digest)
}

// RunCheckpoints runs the simulation and compares data memory at each
// checkpoint. The simulation is stopped after maxSteps if the final checkpoint
// has not been reached.
//
// A description of each checkpoint is written to output as it is passed. On
// failure a dump of the differing region of data memory is also written to
// output.
func RunCheckpoints(avr *hardware.AVR, checkpoints []Checkpoint, maxSteps int, output io.Writer) (Result, error) {
	if output == nil {
		output = io.Discard
	}

	var res Result
	dig := digest.NewMemory()

	next := 0
	if len(checkpoints) > 0 && checkpoints[0].PC == avr.PC() && avr.Cycles == 0 {
		if err := avr.LoadDataMemory(checkpoints[0].Data); err != nil {
			return res, err
		}
		dig.Snapshot(checkpoints[0].Data)
		fmt.Fprintf(output, "checkpoint 0: loaded %s\n", checkpoints[0].Filename)
		next++
	}

	for next < len(checkpoints) {
		if res.Steps >= maxSteps || avr.State() == hardware.Stopped {
			return res, curated.Errorf(CheckpointNotReached, next, checkpoints[next].PC, res.Steps)
		}

		if _, err := avr.Step(); err != nil {
			return res, err
		}
		res.Steps++

		cp := checkpoints[next]
		if avr.PC() != cp.PC {
			continue
		}

		data := avr.DumpDataMemory()
		if len(data) != len(cp.Data) {
			return res, curated.Errorf(CheckpointSize, next, cp.PC, len(cp.Data), len(data))
		}

		if a, ok := firstDifference(data, cp.Data); ok {
			lo := max(a-mismatchContext, 0)
			hi := min(a+mismatchContext, len(data))
			fmt.Fprintf(output, "checkpoint %d: mismatch at %#04x (cycle %d)\n", next, a, avr.Cycles)
			fmt.Fprintf(output, "expected:\n%s", spew.Sdump(cp.Data[lo:hi]))
			fmt.Fprintf(output, "actual:\n%s", spew.Sdump(data[lo:hi]))
			logger.Logf(avr.Env(), "regression", "checkpoint %d (%s) failed", next, cp.Filename)
			return res, curated.Errorf(CheckpointMismatch, next, cp.PC, a)
		}

		dig.Snapshot(data)
		res.Compared++
		fmt.Fprintf(output, "checkpoint %d: %s ok (cycle %d)\n", next, cp, avr.Cycles)
		next++
	}

	res.Cycles = avr.Cycles
	res.Digest = dig.Hash()

	return res, nil
}

func firstDifference(a []uint8, b []uint8) (int, bool) {
	for i := range a {
		if a[i] != b[i] {
			return i, true
		}
	}
	return 0, false
}
