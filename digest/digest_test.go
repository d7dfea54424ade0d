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

package digest_test

import (
	"testing"

	"github.com/jetsetilly/gopheravr/digest"
	"github.com/jetsetilly/gopheravr/test"
)

func TestMemoryChaining(t *testing.T) {
	a := digest.NewMemory()
	b := digest.NewMemory()
	test.DemandImplements[digest.Digest](t, a, nil)

	a.Snapshot([]uint8{1, 2, 3})
	a.Snapshot([]uint8{4, 5, 6})
	b.Snapshot([]uint8{4, 5, 6})

	// the same final snapshot but a different history
	test.ExpectInequality(t, a.Hash(), b.Hash())

	b.ResetDigest()
	b.Snapshot([]uint8{1, 2, 3})
	b.Snapshot([]uint8{4, 5, 6})
	test.ExpectEquality(t, a.Hash(), b.Hash())
	test.ExpectEquality(t, b.Count, 2)
}

func TestTrace(t *testing.T) {
	a := digest.NewTrace()
	b := digest.NewTrace()
	test.ExpectEquality(t, a.Hash(), b.Hash())

	for i := range 5000 {
		a.Step(uint32(i), 0, uint64(i*2))
		b.Step(uint32(i), 0, uint64(i*2))
	}
	test.ExpectEquality(t, a.Hash(), b.Hash())

	// a difference in timing only
	a.Step(1, 0, 100)
	b.Step(1, 0, 101)
	test.ExpectInequality(t, a.Hash(), b.Hash())
}
