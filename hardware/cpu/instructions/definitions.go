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

package instructions

import "github.com/jetsetilly/gopheravr/hardware/device"

// Definitions is the list of all instructions. Cycle counts are those of the
// megaAVR parts with a 16-bit program counter.
var Definitions = []Definition{
	{Operator: Nop, Mnemonic: "NOP", Mask: 0xffff, Match: 0x0000, Words: 1, Cycles: 1, Form: None},
	{Operator: Movw, Mnemonic: "MOVW", Mask: 0xff00, Match: 0x0100, Words: 1, Cycles: 1, Form: RegisterPair, Feature: device.FeatureMOVW},
	{Operator: Muls, Mnemonic: "MULS", Mask: 0xff00, Match: 0x0200, Words: 1, Cycles: 2, Form: UpperPair, Flags: true, Feature: device.FeatureMUL},
	{Operator: Mulsu, Mnemonic: "MULSU", Mask: 0xff88, Match: 0x0300, Words: 1, Cycles: 2, Form: MultiplyPair, Flags: true, Feature: device.FeatureMUL},
	{Operator: Fmul, Mnemonic: "FMUL", Mask: 0xff88, Match: 0x0308, Words: 1, Cycles: 2, Form: MultiplyPair, Flags: true, Feature: device.FeatureMUL},
	{Operator: Fmuls, Mnemonic: "FMULS", Mask: 0xff88, Match: 0x0380, Words: 1, Cycles: 2, Form: MultiplyPair, Flags: true, Feature: device.FeatureMUL},
	{Operator: Fmulsu, Mnemonic: "FMULSU", Mask: 0xff88, Match: 0x0388, Words: 1, Cycles: 2, Form: MultiplyPair, Flags: true, Feature: device.FeatureMUL},

	{Operator: Cpc, Mnemonic: "CPC", Mask: 0xfc00, Match: 0x0400, Words: 1, Cycles: 1, Form: RdRr, Flags: true},
	{Operator: Sbc, Mnemonic: "SBC", Mask: 0xfc00, Match: 0x0800, Words: 1, Cycles: 1, Form: RdRr, Flags: true},
	{Operator: Add, Mnemonic: "ADD", Mask: 0xfc00, Match: 0x0c00, Words: 1, Cycles: 1, Form: RdRr, Flags: true},
	{Operator: Cpse, Mnemonic: "CPSE", Mask: 0xfc00, Match: 0x1000, Words: 1, Cycles: 1, Form: RdRr, Effect: Skip},
	{Operator: Cp, Mnemonic: "CP", Mask: 0xfc00, Match: 0x1400, Words: 1, Cycles: 1, Form: RdRr, Flags: true},
	{Operator: Sub, Mnemonic: "SUB", Mask: 0xfc00, Match: 0x1800, Words: 1, Cycles: 1, Form: RdRr, Flags: true},
	{Operator: Adc, Mnemonic: "ADC", Mask: 0xfc00, Match: 0x1c00, Words: 1, Cycles: 1, Form: RdRr, Flags: true},
	{Operator: And, Mnemonic: "AND", Mask: 0xfc00, Match: 0x2000, Words: 1, Cycles: 1, Form: RdRr, Flags: true},
	{Operator: Eor, Mnemonic: "EOR", Mask: 0xfc00, Match: 0x2400, Words: 1, Cycles: 1, Form: RdRr, Flags: true},
	{Operator: Or, Mnemonic: "OR", Mask: 0xfc00, Match: 0x2800, Words: 1, Cycles: 1, Form: RdRr, Flags: true},
	{Operator: Mov, Mnemonic: "MOV", Mask: 0xfc00, Match: 0x2c00, Words: 1, Cycles: 1, Form: RdRr},

	{Operator: Cpi, Mnemonic: "CPI", Mask: 0xf000, Match: 0x3000, Words: 1, Cycles: 1, Form: RdK, Flags: true},
	{Operator: Sbci, Mnemonic: "SBCI", Mask: 0xf000, Match: 0x4000, Words: 1, Cycles: 1, Form: RdK, Flags: true},
	{Operator: Subi, Mnemonic: "SUBI", Mask: 0xf000, Match: 0x5000, Words: 1, Cycles: 1, Form: RdK, Flags: true},
	{Operator: Ori, Mnemonic: "ORI", Mask: 0xf000, Match: 0x6000, Words: 1, Cycles: 1, Form: RdK, Flags: true},
	{Operator: Andi, Mnemonic: "ANDI", Mask: 0xf000, Match: 0x7000, Words: 1, Cycles: 1, Form: RdK, Flags: true},

	// LD Rd, Y and LD Rd, Z are the zero displacement forms of LDD and ST Y
	// and ST Z are the zero displacement forms of STD
	{Operator: Ldd, Mnemonic: "LDD", Mask: 0xd208, Match: 0x8000, Words: 1, Cycles: 2, Form: Displacement, Pointer: Z},
	{Operator: Ldd, Mnemonic: "LDD", Mask: 0xd208, Match: 0x8008, Words: 1, Cycles: 2, Form: Displacement, Pointer: Y},
	{Operator: Std, Mnemonic: "STD", Mask: 0xd208, Match: 0x8200, Words: 1, Cycles: 2, Form: Displacement, Pointer: Z},
	{Operator: Std, Mnemonic: "STD", Mask: 0xd208, Match: 0x8208, Words: 1, Cycles: 2, Form: Displacement, Pointer: Y},

	{Operator: Lds, Mnemonic: "LDS", Mask: 0xfe0f, Match: 0x9000, Words: 2, Cycles: 2, Form: Direct},
	{Operator: Ld, Mnemonic: "LD", Mask: 0xfe0f, Match: 0x9001, Words: 1, Cycles: 2, Form: Rd, Pointer: Z, Adjust: PostIncrement},
	{Operator: Ld, Mnemonic: "LD", Mask: 0xfe0f, Match: 0x9002, Words: 1, Cycles: 2, Form: Rd, Pointer: Z, Adjust: PreDecrement},
	{Operator: Lpm, Mnemonic: "LPM", Mask: 0xfe0f, Match: 0x9004, Words: 1, Cycles: 3, Form: Rd, Pointer: Z, Feature: device.FeatureLPMX},
	{Operator: Lpm, Mnemonic: "LPM", Mask: 0xfe0f, Match: 0x9005, Words: 1, Cycles: 3, Form: Rd, Pointer: Z, Adjust: PostIncrement, Feature: device.FeatureLPMX},
	{Operator: Elpm, Mnemonic: "ELPM", Mask: 0xfe0f, Match: 0x9006, Words: 1, Cycles: 3, Form: Rd, Pointer: Z, Feature: device.FeatureELPM},
	{Operator: Elpm, Mnemonic: "ELPM", Mask: 0xfe0f, Match: 0x9007, Words: 1, Cycles: 3, Form: Rd, Pointer: Z, Adjust: PostIncrement, Feature: device.FeatureELPM},
	{Operator: Ld, Mnemonic: "LD", Mask: 0xfe0f, Match: 0x9009, Words: 1, Cycles: 2, Form: Rd, Pointer: Y, Adjust: PostIncrement},
	{Operator: Ld, Mnemonic: "LD", Mask: 0xfe0f, Match: 0x900a, Words: 1, Cycles: 2, Form: Rd, Pointer: Y, Adjust: PreDecrement},
	{Operator: Ld, Mnemonic: "LD", Mask: 0xfe0f, Match: 0x900c, Words: 1, Cycles: 2, Form: Rd, Pointer: X},
	{Operator: Ld, Mnemonic: "LD", Mask: 0xfe0f, Match: 0x900d, Words: 1, Cycles: 2, Form: Rd, Pointer: X, Adjust: PostIncrement},
	{Operator: Ld, Mnemonic: "LD", Mask: 0xfe0f, Match: 0x900e, Words: 1, Cycles: 2, Form: Rd, Pointer: X, Adjust: PreDecrement},
	{Operator: Pop, Mnemonic: "POP", Mask: 0xfe0f, Match: 0x900f, Words: 1, Cycles: 2, Form: Rd},

	{Operator: Sts, Mnemonic: "STS", Mask: 0xfe0f, Match: 0x9200, Words: 2, Cycles: 2, Form: Direct},
	{Operator: St, Mnemonic: "ST", Mask: 0xfe0f, Match: 0x9201, Words: 1, Cycles: 2, Form: Rd, Pointer: Z, Adjust: PostIncrement},
	{Operator: St, Mnemonic: "ST", Mask: 0xfe0f, Match: 0x9202, Words: 1, Cycles: 2, Form: Rd, Pointer: Z, Adjust: PreDecrement},
	{Operator: Xch, Mnemonic: "XCH", Mask: 0xfe0f, Match: 0x9204, Words: 1, Cycles: 2, Form: Rd, Pointer: Z, Feature: device.FeatureRMW},
	{Operator: Las, Mnemonic: "LAS", Mask: 0xfe0f, Match: 0x9205, Words: 1, Cycles: 2, Form: Rd, Pointer: Z, Feature: device.FeatureRMW},
	{Operator: Lac, Mnemonic: "LAC", Mask: 0xfe0f, Match: 0x9206, Words: 1, Cycles: 2, Form: Rd, Pointer: Z, Feature: device.FeatureRMW},
	{Operator: Lat, Mnemonic: "LAT", Mask: 0xfe0f, Match: 0x9207, Words: 1, Cycles: 2, Form: Rd, Pointer: Z, Feature: device.FeatureRMW},
	{Operator: St, Mnemonic: "ST", Mask: 0xfe0f, Match: 0x9209, Words: 1, Cycles: 2, Form: Rd, Pointer: Y, Adjust: PostIncrement},
	{Operator: St, Mnemonic: "ST", Mask: 0xfe0f, Match: 0x920a, Words: 1, Cycles: 2, Form: Rd, Pointer: Y, Adjust: PreDecrement},
	{Operator: St, Mnemonic: "ST", Mask: 0xfe0f, Match: 0x920c, Words: 1, Cycles: 2, Form: Rd, Pointer: X},
	{Operator: St, Mnemonic: "ST", Mask: 0xfe0f, Match: 0x920d, Words: 1, Cycles: 2, Form: Rd, Pointer: X, Adjust: PostIncrement},
	{Operator: St, Mnemonic: "ST", Mask: 0xfe0f, Match: 0x920e, Words: 1, Cycles: 2, Form: Rd, Pointer: X, Adjust: PreDecrement},
	{Operator: Push, Mnemonic: "PUSH", Mask: 0xfe0f, Match: 0x920f, Words: 1, Cycles: 2, Form: Rd},

	{Operator: Com, Mnemonic: "COM", Mask: 0xfe0f, Match: 0x9400, Words: 1, Cycles: 1, Form: Rd, Flags: true},
	{Operator: Neg, Mnemonic: "NEG", Mask: 0xfe0f, Match: 0x9401, Words: 1, Cycles: 1, Form: Rd, Flags: true},
	{Operator: Swap, Mnemonic: "SWAP", Mask: 0xfe0f, Match: 0x9402, Words: 1, Cycles: 1, Form: Rd},
	{Operator: Inc, Mnemonic: "INC", Mask: 0xfe0f, Match: 0x9403, Words: 1, Cycles: 1, Form: Rd, Flags: true},
	{Operator: Asr, Mnemonic: "ASR", Mask: 0xfe0f, Match: 0x9405, Words: 1, Cycles: 1, Form: Rd, Flags: true},
	{Operator: Lsr, Mnemonic: "LSR", Mask: 0xfe0f, Match: 0x9406, Words: 1, Cycles: 1, Form: Rd, Flags: true},
	{Operator: Ror, Mnemonic: "ROR", Mask: 0xfe0f, Match: 0x9407, Words: 1, Cycles: 1, Form: Rd, Flags: true},
	{Operator: Dec, Mnemonic: "DEC", Mask: 0xfe0f, Match: 0x940a, Words: 1, Cycles: 1, Form: Rd, Flags: true},

	{Operator: Bset, Mnemonic: "BSET", Mask: 0xff8f, Match: 0x9408, Words: 1, Cycles: 1, Form: StatusBit, Flags: true},
	{Operator: Bclr, Mnemonic: "BCLR", Mask: 0xff8f, Match: 0x9488, Words: 1, Cycles: 1, Form: StatusBit, Flags: true},
	{Operator: Des, Mnemonic: "DES", Mask: 0xff0f, Match: 0x940b, Words: 1, Cycles: 1, Form: Round, Feature: device.FeatureDES},

	{Operator: Ijmp, Mnemonic: "IJMP", Mask: 0xffff, Match: 0x9409, Words: 1, Cycles: 2, Form: None, Effect: Flow},
	{Operator: Eijmp, Mnemonic: "EIJMP", Mask: 0xffff, Match: 0x9419, Words: 1, Cycles: 2, Form: None, Effect: Flow, Feature: device.FeatureEIJMP},
	{Operator: Ret, Mnemonic: "RET", Mask: 0xffff, Match: 0x9508, Words: 1, Cycles: 4, Form: None, Effect: Return},
	{Operator: Icall, Mnemonic: "ICALL", Mask: 0xffff, Match: 0x9509, Words: 1, Cycles: 3, Form: None, Effect: Subroutine},
	{Operator: Reti, Mnemonic: "RETI", Mask: 0xffff, Match: 0x9518, Words: 1, Cycles: 4, Form: None, Effect: Return, Flags: true},
	{Operator: Eicall, Mnemonic: "EICALL", Mask: 0xffff, Match: 0x9519, Words: 1, Cycles: 4, Form: None, Effect: Subroutine, Feature: device.FeatureEIJMP},
	{Operator: Sleep, Mnemonic: "SLEEP", Mask: 0xffff, Match: 0x9588, Words: 1, Cycles: 1, Form: None},
	{Operator: Break, Mnemonic: "BREAK", Mask: 0xffff, Match: 0x9598, Words: 1, Cycles: 1, Form: None, Feature: device.FeatureBREAK},
	{Operator: Wdr, Mnemonic: "WDR", Mask: 0xffff, Match: 0x95a8, Words: 1, Cycles: 1, Form: None},
	{Operator: Lpm, Mnemonic: "LPM", Mask: 0xffff, Match: 0x95c8, Words: 1, Cycles: 3, Form: None, Pointer: Z},
	{Operator: Elpm, Mnemonic: "ELPM", Mask: 0xffff, Match: 0x95d8, Words: 1, Cycles: 3, Form: None, Pointer: Z, Feature: device.FeatureELPM},
	{Operator: Spm, Mnemonic: "SPM", Mask: 0xffff, Match: 0x95e8, Words: 1, Cycles: 1, Form: None, Feature: device.FeatureSPM},

	{Operator: Jmp, Mnemonic: "JMP", Mask: 0xfe0e, Match: 0x940c, Words: 2, Cycles: 3, Form: Absolute, Effect: Flow, Feature: device.FeatureJMP},
	{Operator: Call, Mnemonic: "CALL", Mask: 0xfe0e, Match: 0x940e, Words: 2, Cycles: 4, Form: Absolute, Effect: Subroutine, Feature: device.FeatureJMP},

	{Operator: Adiw, Mnemonic: "ADIW", Mask: 0xff00, Match: 0x9600, Words: 1, Cycles: 2, Form: WordImmediate, Flags: true},
	{Operator: Sbiw, Mnemonic: "SBIW", Mask: 0xff00, Match: 0x9700, Words: 1, Cycles: 2, Form: WordImmediate, Flags: true},

	{Operator: Cbi, Mnemonic: "CBI", Mask: 0xff00, Match: 0x9800, Words: 1, Cycles: 2, Form: IOBit},
	{Operator: Sbic, Mnemonic: "SBIC", Mask: 0xff00, Match: 0x9900, Words: 1, Cycles: 1, Form: IOBit, Effect: Skip},
	{Operator: Sbi, Mnemonic: "SBI", Mask: 0xff00, Match: 0x9a00, Words: 1, Cycles: 2, Form: IOBit},
	{Operator: Sbis, Mnemonic: "SBIS", Mask: 0xff00, Match: 0x9b00, Words: 1, Cycles: 1, Form: IOBit, Effect: Skip},

	{Operator: Mul, Mnemonic: "MUL", Mask: 0xfc00, Match: 0x9c00, Words: 1, Cycles: 2, Form: RdRr, Flags: true, Feature: device.FeatureMUL},

	{Operator: In, Mnemonic: "IN", Mask: 0xf800, Match: 0xb000, Words: 1, Cycles: 1, Form: IO},
	{Operator: Out, Mnemonic: "OUT", Mask: 0xf800, Match: 0xb800, Words: 1, Cycles: 1, Form: IO},

	{Operator: Rjmp, Mnemonic: "RJMP", Mask: 0xf000, Match: 0xc000, Words: 1, Cycles: 2, Form: Relative, Effect: Flow},
	{Operator: Rcall, Mnemonic: "RCALL", Mask: 0xf000, Match: 0xd000, Words: 1, Cycles: 3, Form: Relative, Effect: Subroutine},
	{Operator: Ldi, Mnemonic: "LDI", Mask: 0xf000, Match: 0xe000, Words: 1, Cycles: 1, Form: RdK},

	{Operator: Brbs, Mnemonic: "BRBS", Mask: 0xfc00, Match: 0xf000, Words: 1, Cycles: 1, Form: Branch, Effect: Conditional},
	{Operator: Brbc, Mnemonic: "BRBC", Mask: 0xfc00, Match: 0xf400, Words: 1, Cycles: 1, Form: Branch, Effect: Conditional},
	{Operator: Bld, Mnemonic: "BLD", Mask: 0xfe08, Match: 0xf800, Words: 1, Cycles: 1, Form: RegisterBit},
	{Operator: Bst, Mnemonic: "BST", Mask: 0xfe08, Match: 0xfa00, Words: 1, Cycles: 1, Form: RegisterBit, Flags: true},
	{Operator: Sbrc, Mnemonic: "SBRC", Mask: 0xfe08, Match: 0xfc00, Words: 1, Cycles: 1, Form: RegisterBit, Effect: Skip},
	{Operator: Sbrs, Mnemonic: "SBRS", Mask: 0xfe08, Match: 0xfe00, Words: 1, Cycles: 1, Form: RegisterBit, Effect: Skip},
}
