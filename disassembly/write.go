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

package disassembly

import (
	"fmt"
	"io"
)

// WriteAttr controls what is printed by the Write*() functions.
type WriteAttr struct {
	ByteCode bool
	Cycles   bool
}

// Write the entire disassembly to io.Writer.
func (dsm *Disassembly) Write(output io.Writer, attr WriteAttr) {
	fmt.Fprintf(output, "--- %s ---\n", dsm.Part)
	for _, e := range dsm.Entries {
		dsm.WriteLine(output, attr, e)
	}
}

// WriteLine writes a single Entry to io.Writer.
func (dsm *Disassembly) WriteLine(output io.Writer, attr WriteAttr, e Entry) {
	fmt.Fprintf(output, "%05x", e.Address)

	if attr.ByteCode {
		if e.Words == 2 {
			fmt.Fprintf(output, " %04x %04x", e.Opcode, e.Operand)
		} else {
			fmt.Fprintf(output, " %04x     ", e.Opcode)
		}
	}

	fmt.Fprintf(output, "  %s", e.Instruction)

	if attr.Cycles && e.Defn != nil {
		fmt.Fprintf(output, " (%d)", e.Defn.Cycles)
	}

	fmt.Fprintln(output)
}
