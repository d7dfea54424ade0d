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

package test

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

// the optional tags of a test are prefixed to the failure message
func id(tags ...any) string {
	if len(tags) == 0 {
		return ""
	}
	s := make([]string, len(tags))
	for i, t := range tags {
		s[i] = fmt.Sprint(t)
	}
	return strings.Join(s, " ") + ": "
}

// success classifies v. only nil, bool and error values can be classified
func success(t *testing.T, v any, tags ...any) bool {
	t.Helper()

	switch v := v.(type) {
	case nil:
		return true
	case bool:
		return v
	case error:
		return v == nil
	}

	t.Fatalf("%scannot test type %T for success or failure", id(tags...), v)
	return false
}

// ExpectSuccess tests v for success:
//
//	nil    always a success
//	bool   true is a success
//	error  nil is a success
func ExpectSuccess(t *testing.T, v any, tags ...any) bool {
	t.Helper()
	if success(t, v, tags...) {
		return true
	}
	if err, ok := v.(error); ok {
		t.Errorf("%sunexpected error: %v", id(tags...), err)
	} else {
		t.Errorf("%sexpected success (%T)", id(tags...), v)
	}
	return false
}

// ExpectFailure is the inverse of ExpectSuccess. Note that a nil value can
// never be a failure.
func ExpectFailure(t *testing.T, v any, tags ...any) bool {
	t.Helper()
	if !success(t, v, tags...) {
		return true
	}
	t.Errorf("%sexpected failure (%T)", id(tags...), v)
	return false
}

// ExpectEquality tests that v is equal to the expected value.
func ExpectEquality[T comparable](t *testing.T, v T, expected T, tags ...any) bool {
	t.Helper()
	if v == expected {
		return true
	}
	t.Errorf("%s%T: got %v, expected %v", id(tags...), v, v, expected)
	return false
}

// ExpectInequality tests that v is not equal to the value.
func ExpectInequality[T comparable](t *testing.T, v T, value T, tags ...any) bool {
	t.Helper()
	if v != value {
		return true
	}
	t.Errorf("%s%T: got %v, expected anything else", id(tags...), v, v)
	return false
}

type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// ExpectApproximate tests that v is within tolerance of the expected value.
// The tolerance is a fraction of the expected value.
func ExpectApproximate[T number](t *testing.T, v T, expected T, tolerance float64, tags ...any) bool {
	t.Helper()
	if math.Abs(float64(v)-float64(expected)) <= math.Abs(float64(expected))*tolerance {
		return true
	}
	t.Errorf("%s%T: got %v, expected %v (within %.2f%%)", id(tags...), v, v, expected, tolerance*100)
	return false
}
