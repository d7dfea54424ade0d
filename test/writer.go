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
	"strings"
)

// CompareWriter collects everything written to it for comparison with an
// expected string.
type CompareWriter struct {
	strings.Builder
}

// Compare the collected output with the string.
func (cw *CompareWriter) Compare(s string) bool {
	return cw.String() == s
}

// Clear the collected output.
func (cw *CompareWriter) Clear() {
	cw.Reset()
}

// RingWriter keeps only the most recent output written to it. Useful for
// testing output that is expected to be long running, such as log echoing.
type RingWriter struct {
	buffer []byte
	size   int
}

// NewRingWriter is the preferred method of initialisation for the RingWriter
// type.
func NewRingWriter(size int) (*RingWriter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("test: invalid size for RingWriter (%d)", size)
	}
	return &RingWriter{
		buffer: make([]byte, 0, size*2),
		size:   size,
	}, nil
}

func (r *RingWriter) String() string {
	return string(r.buffer)
}

// Reset the contents of the ring.
func (r *RingWriter) Reset() {
	r.buffer = r.buffer[:0]
}

// Write implements the io.Writer interface.
func (r *RingWriter) Write(p []byte) (int, error) {
	if len(p) >= r.size {
		r.buffer = append(r.buffer[:0], p[len(p)-r.size:]...)
		return len(p), nil
	}
	r.buffer = append(r.buffer, p...)
	if n := len(r.buffer) - r.size; n > 0 {
		r.buffer = append(r.buffer[:0], r.buffer[n:]...)
	}
	return len(p), nil
}
