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

// CalcThroughput takes the number of cycles simulated and the duration (in
// seconds) and returns the simulated clock rate in Hz and the accuracy of that
// value, as a percentage of the clock frequency of the part.
func CalcThroughput(cycles uint64, duration float64, frequency uint32) (rate float64, accuracy float64) {
	if duration <= 0 || frequency == 0 {
		return 0, 0
	}
	rate = float64(cycles) / duration
	accuracy = 100 * rate / float64(frequency)
	return rate, accuracy
}
