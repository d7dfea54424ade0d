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

package performance

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/gopheravr/hardware"
)

// sentinal error returned by Run() loop.
var timedOut = errors.New("performance timed out")

// the period at the start of a check that is not included in the measurement
const leadTime = 2 * time.Second

// Check the performance of the simulation of the part.
//
// The simulation will run for the specified duration and will create a cpu or
// memory profile, or a trace, as defined by the Profile argument. Profile
// files are written to the current directory.
func Check(output io.Writer, p Profile, avr *hardware.AVR, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	var startCycles uint64
	var startTime time.Time

	runner := func() error {
		// the lead time puts false on the timerChan. the conclusion of the
		// measurement period puts true on the timerChan
		timerChan := make(chan bool, 2)
		time.AfterFunc(leadTime, func() {
			timerChan <- false
			time.AfterFunc(dur, func() {
				timerChan <- true
			})
		})

		// only check for end of measurement period every PerformanceBrake
		// steps. checking the timerChan is relatively expensive
		performanceBrake := 0

		return avr.Run(func() (bool, error) {
			performanceBrake++
			if performanceBrake < hardware.PerformanceBrake {
				return true, nil
			}
			performanceBrake = 0

			select {
			case v := <-timerChan:
				if v {
					return false, timedOut
				}
				startCycles = avr.Cycles
				startTime = time.Now()
			default:
			}

			return true, nil
		})
	}

	err = RunProfiler(p, "", runner)
	if err != nil && !errors.Is(err, timedOut) {
		return fmt.Errorf("performance: %w", err)
	}

	if avr.State() == hardware.Stopped {
		return fmt.Errorf("performance: part stopped before the end of the measurement period")
	}

	numCycles := avr.Cycles - startCycles
	secs := time.Since(startTime).Seconds()
	rate, accuracy := CalcThroughput(numCycles, secs, avr.Frequency)
	fmt.Fprintf(output, "%.2f MHz (%d cycles in %.2f seconds) %.1f%%\n", rate/1000000, numCycles, secs, accuracy)

	return nil
}
