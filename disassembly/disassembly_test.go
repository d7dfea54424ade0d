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

package disassembly_test

import (
	"strings"
	"testing"

	"github.com/jetsetilly/gopheravr/disassembly"
	"github.com/jetsetilly/gopheravr/hardware/device"
	"github.com/jetsetilly/gopheravr/test"
)

func image(words ...uint16) []uint8 {
	b := make([]uint8, 64)
	for i := range b {
		b[i] = 0xff
	}
	for i, w := range words {
		b[i*2] = uint8(w)
		b[i*2+1] = uint8(w >> 8)
	}
	return b
}

func TestLinear(t *testing.T) {
	desc, err := device.Lookup("m328p")
	test.DemandSuccess(t, err)

	// ldi r16, 0x55
	// sts 0x0100, r16
	// nop
	// rjmp .-2
	dsm := disassembly.FromProgram(desc, image(0xe505, 0x9300, 0x0100, 0x0000, 0xcfff))
	test.DemandEquality(t, len(dsm.Entries), 4)

	test.ExpectEquality(t, dsm.Entries[0].Instruction, "LDI r16, 0x55")
	test.ExpectEquality(t, dsm.Entries[1].Words, 2)
	test.ExpectEquality(t, dsm.Entries[1].Instruction, "STS 0x100, r16")
	test.ExpectEquality(t, dsm.Entries[2].Address, 3)
	test.ExpectEquality(t, dsm.Entries[2].Instruction, "NOP")

	e, ok := dsm.Entry(4)
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, e.Opcode, 0xcfff)

	// the operand of STS is not the start of an entry
	_, ok = dsm.Entry(2)
	test.ExpectFailure(t, ok)
}

func TestFeatures(t *testing.T) {
	// JMP is not available on the ATmega88P
	desc, err := device.Lookup("m88p")
	test.DemandSuccess(t, err)
	dsm := disassembly.FromProgram(desc, image(0x940c, 0x0034))
	test.DemandEquality(t, len(dsm.Entries), 2)
	test.ExpectEquality(t, dsm.Entries[0].Defn == nil, true)
	test.ExpectEquality(t, dsm.Entries[0].Instruction, ".dw 0x940c")

	desc, err = device.Lookup("m328p")
	test.DemandSuccess(t, err)
	dsm = disassembly.FromProgram(desc, image(0x940c, 0x0034))
	test.DemandEquality(t, len(dsm.Entries), 1)
	test.ExpectEquality(t, dsm.Entries[0].Words, 2)
}

func TestWrite(t *testing.T) {
	desc, err := device.Lookup("m328p")
	test.DemandSuccess(t, err)
	dsm := disassembly.FromProgram(desc, image(0x0000, 0x9478))

	w := &strings.Builder{}
	dsm.Write(w, disassembly.WriteAttr{ByteCode: true, Cycles: true})

	expected := "--- ATmega328P ---\n" +
		"00000 0000       NOP (1)\n" +
		"00001 9478       SEI (1)\n"
	test.ExpectEquality(t, w.String(), expected)
}
