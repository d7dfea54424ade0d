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

// Package performance measures how fast the simulation runs on the host.
//
// Check() runs a part for a fixed wall-clock duration and reports the
// simulated clock rate, optionally while collecting a profile with
// RunProfiler(). CalcThroughput() turns a cycle count and a duration into a
// rate and a fraction of the part's nominal frequency.
//
// The limiter sub-package does the opposite job and holds the simulation back
// to the nominal frequency.
package performance
