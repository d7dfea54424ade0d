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

package execution

import (
	"github.com/jetsetilly/gopheravr/curated"
)

// IsValid checks whether the instance of Result contains information
// consistent with the instruction definition.
func (r Result) IsValid() error {
	if !r.Final {
		return curated.Errorf("cpu: execution not finalised (bad opcode?)")
	}

	if r.Defn == nil {
		return curated.Errorf("cpu: no definition for opcode %04x", r.Opcode)
	}

	// word count
	if r.Words != r.Defn.Words {
		return curated.Errorf("cpu: unexpected number of words read during decode (%d instead of %d)", r.Words, r.Defn.Words)
	}

	if r.Skipped && !r.Defn.IsSkip() {
		return curated.Errorf("cpu: unexpected skip for %s", r.Defn.Mnemonic)
	}

	if r.BranchTaken && !r.Defn.IsBranch() {
		return curated.Errorf("cpu: unexpected branch for %s", r.Defn.Mnemonic)
	}

	switch {
	case r.Defn.IsBranch():
		if r.Cycles != r.Defn.Cycles && r.Cycles != r.Defn.Cycles+1 {
			return curated.Errorf("cpu: number of cycles wrong for opcode %04x [%s] (%d instead of %d or %d)",
				r.Opcode, r.Defn.Mnemonic, r.Cycles, r.Defn.Cycles, r.Defn.Cycles+1)
		}
	case r.Defn.IsSkip():
		if r.Cycles != r.Defn.Cycles && r.Cycles != r.Defn.Cycles+1 && r.Cycles != r.Defn.Cycles+2 {
			return curated.Errorf("cpu: number of cycles wrong for opcode %04x [%s] (%d instead of %d, %d or %d)",
				r.Opcode, r.Defn.Mnemonic, r.Cycles, r.Defn.Cycles, r.Defn.Cycles+1, r.Defn.Cycles+2)
		}
	default:
		if r.Cycles != r.Defn.Cycles {
			return curated.Errorf("cpu: number of cycles wrong for opcode %04x [%s] (%d instead of %d)",
				r.Opcode, r.Defn.Mnemonic, r.Cycles, r.Defn.Cycles)
		}
	}

	return nil
}
