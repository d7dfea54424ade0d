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

package digest

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
)

// the number of bytes in a trace record
const traceRecord = 9

// traceBufferLength is the number of records collected before the hash is
// updated
const traceBufferLength = 1024

// Trace produces a chained hash of the program counter and execution state
// after every step. It is intended to be used as the observer of an AVR
// instance.
type Trace struct {
	digest [sha1.Size]byte
	buffer []uint8
	ct     int
}

// NewTrace is the preferred method of initialisation for the Trace type.
func NewTrace() *Trace {
	dig := &Trace{
		buffer: make([]uint8, sha1.Size+traceBufferLength*traceRecord),
	}
	dig.ct = sha1.Size
	return dig
}

// Hash implements digest.Digest interface. Any records that have not yet been
// included in the hash are flushed first.
func (dig *Trace) Hash() string {
	dig.flush()
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements digest.Digest interface.
func (dig *Trace) ResetDigest() {
	clear(dig.digest[:])
	dig.ct = sha1.Size
}

// Step adds a record to the trace. The cycle count is included so that
// differences in timing are detected as well as differences in flow.
func (dig *Trace) Step(pc uint32, state int, cycles uint64) {
	binary.LittleEndian.PutUint32(dig.buffer[dig.ct:], pc)
	dig.buffer[dig.ct+4] = uint8(state)
	binary.LittleEndian.PutUint32(dig.buffer[dig.ct+5:], uint32(cycles))
	dig.ct += traceRecord
	if dig.ct >= len(dig.buffer) {
		dig.flush()
	}
}

func (dig *Trace) flush() {
	if dig.ct == sha1.Size {
		return
	}
	copy(dig.buffer, dig.digest[:])
	dig.digest = sha1.Sum(dig.buffer[:dig.ct])
	dig.ct = sha1.Size
}
