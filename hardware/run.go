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

// While the continueCheck() function only runs at the end of a Step(), it
// can still be expensive to do a full continue check every time.
//
// The PerformanceBrake is a standard value that can be used to filter out
// expensive code paths within a continueCheck() implementation. For example:
//
//	performanceFilter++
//	if performanceFilter >= hardware.PerformanceBrake {
//		performanceFilter = 0
//		if end_condition == true {
//			return false, nil
//		}
//	}
//	return true, nil
const PerformanceBrake = 100

// Run sets the simulation running as quickly as possible. The continueCheck
// function is called after every Step() and the simulation ends when it
// returns false or an error. The simulation also ends if the part enters the
// stopped state.
//
// A nil continueCheck will run the simulation until the part stops.
func (avr *AVR) Run(continueCheck func() (bool, error)) error {
	if continueCheck == nil {
		continueCheck = func() (bool, error) { return true, nil }
	}

	for avr.state != Stopped {
		if _, err := avr.Step(); err != nil {
			return err
		}

		ok, err := continueCheck()
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}

	return nil
}

// RunForCycles runs the simulation until the cycle count has advanced by at
// least the number of cycles. The continueCheck function can end the
// simulation early and can be nil.
func (avr *AVR) RunForCycles(cycles uint64, continueCheck func() (bool, error)) error {
	target := avr.Cycles + cycles
	return avr.Run(func() (bool, error) {
		if avr.Cycles >= target {
			return false, nil
		}
		if continueCheck != nil {
			return continueCheck()
		}
		return true, nil
	})
}
