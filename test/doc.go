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

// Package test contains assertion helpers for the tests of the other
// packages.
//
// ExpectSuccess and ExpectFailure accept nil, bool and error values. A nil
// value is always a success, which matches the convention of a nil error.
//
// ExpectEquality, ExpectInequality and ExpectApproximate compare like-typed
// values. Every Expect function returns the result of the test so that
// further testing can be skipped.
//
// The Demand functions stop the test on failure.
//
// CompareWriter and RingWriter capture output for comparison.
package test
