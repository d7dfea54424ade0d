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

package device

import "fmt"

// data memory addresses of the I/O registers of the megaAVR x8 family
const (
	PINB   = 0x23
	DDRB   = 0x24
	PORTB  = 0x25
	PINC   = 0x26
	DDRC   = 0x27
	PORTC  = 0x28
	PIND   = 0x29
	DDRD   = 0x2a
	PORTD  = 0x2b
	TIFR0  = 0x35
	TIFR1  = 0x36
	TIFR2  = 0x37
	PCIFR  = 0x3b
	EIFR   = 0x3c
	EIMSK  = 0x3d
	GPIOR0 = 0x3e
	EECR   = 0x3f
	EEDR   = 0x40
	EEARL  = 0x41
	EEARH  = 0x42
	GTCCR  = 0x43
	TCCR0A = 0x44
	TCCR0B = 0x45
	TCNT0  = 0x46
	OCR0A  = 0x47
	OCR0B  = 0x48
	GPIOR1 = 0x4a
	GPIOR2 = 0x4b
	SPCR   = 0x4c
	SPSR   = 0x4d
	SPDR   = 0x4e
	ACSR   = 0x50
	SMCR   = 0x53
	MCUSR  = 0x54
	MCUCR  = 0x55
	SPMCSR = 0x57
	SPL    = 0x5d
	SPH    = 0x5e
	SREG   = 0x5f
	WDTCSR = 0x60
	CLKPR  = 0x61
	PRR    = 0x64
	OSCCAL = 0x66
	PCICR  = 0x68
	EICRA  = 0x69
	PCMSK0 = 0x6b
	PCMSK1 = 0x6c
	PCMSK2 = 0x6d
	TIMSK0 = 0x6e
	TIMSK1 = 0x6f
	TIMSK2 = 0x70
	ADCL   = 0x78
	ADCH   = 0x79
	ADCSRA = 0x7a
	ADCSRB = 0x7b
	ADMUX  = 0x7c
	DIDR0  = 0x7e
	DIDR1  = 0x7f
	TCCR1A = 0x80
	TCCR1B = 0x81
	TCCR1C = 0x82
	TCNT1L = 0x84
	TCNT1H = 0x85
	ICR1L  = 0x86
	ICR1H  = 0x87
	OCR1AL = 0x88
	OCR1AH = 0x89
	OCR1BL = 0x8a
	OCR1BH = 0x8b
	TCCR2A = 0xb0
	TCCR2B = 0xb1
	TCNT2  = 0xb2
	OCR2A  = 0xb3
	OCR2B  = 0xb4
	ASSR   = 0xb6
	TWBR   = 0xb8
	TWSR   = 0xb9
	TWAR   = 0xba
	TWDR   = 0xbb
	TWCR   = 0xbc
	TWAMR  = 0xbd
	UCSR0A = 0xc0
	UCSR0B = 0xc1
	UCSR0C = 0xc2
	UBRR0L = 0xc4
	UBRR0H = 0xc5
	UDR0   = 0xc6
)

// names of the I/O registers
var megaX8Registers = map[string]uint16{
	"PINB": PINB, "DDRB": DDRB, "PORTB": PORTB,
	"PINC": PINC, "DDRC": DDRC, "PORTC": PORTC,
	"PIND": PIND, "DDRD": DDRD, "PORTD": PORTD,
	"TIFR0": TIFR0, "TIFR1": TIFR1, "TIFR2": TIFR2,
	"PCIFR": PCIFR, "EIFR": EIFR, "EIMSK": EIMSK,
	"GPIOR0": GPIOR0, "GPIOR1": GPIOR1, "GPIOR2": GPIOR2,
	"EECR": EECR, "EEDR": EEDR, "EEARL": EEARL, "EEARH": EEARH,
	"GTCCR":  GTCCR,
	"TCCR0A": TCCR0A, "TCCR0B": TCCR0B, "TCNT0": TCNT0, "OCR0A": OCR0A, "OCR0B": OCR0B,
	"SPCR": SPCR, "SPSR": SPSR, "SPDR": SPDR,
	"ACSR": ACSR, "SMCR": SMCR, "MCUSR": MCUSR, "MCUCR": MCUCR, "SPMCSR": SPMCSR,
	"SPL": SPL, "SPH": SPH, "SREG": SREG,
	"WDTCSR": WDTCSR, "CLKPR": CLKPR, "PRR": PRR, "OSCCAL": OSCCAL,
	"PCICR": PCICR, "EICRA": EICRA, "PCMSK0": PCMSK0, "PCMSK1": PCMSK1, "PCMSK2": PCMSK2,
	"TIMSK0": TIMSK0, "TIMSK1": TIMSK1, "TIMSK2": TIMSK2,
	"ADCL": ADCL, "ADCH": ADCH, "ADCSRA": ADCSRA, "ADCSRB": ADCSRB, "ADMUX": ADMUX,
	"DIDR0": DIDR0, "DIDR1": DIDR1,
	"TCCR1A": TCCR1A, "TCCR1B": TCCR1B, "TCCR1C": TCCR1C,
	"TCNT1L": TCNT1L, "TCNT1H": TCNT1H, "ICR1L": ICR1L, "ICR1H": ICR1H,
	"OCR1AL": OCR1AL, "OCR1AH": OCR1AH, "OCR1BL": OCR1BL, "OCR1BH": OCR1BH,
	"TCCR2A": TCCR2A, "TCCR2B": TCCR2B, "TCNT2": TCNT2, "OCR2A": OCR2A, "OCR2B": OCR2B,
	"ASSR": ASSR,
	"TWBR": TWBR, "TWSR": TWSR, "TWAR": TWAR, "TWDR": TWDR, "TWCR": TWCR, "TWAMR": TWAMR,
	"UCSR0A": UCSR0A, "UCSR0B": UCSR0B, "UCSR0C": UCSR0C,
	"UBRR0L": UBRR0L, "UBRR0H": UBRR0H, "UDR0": UDR0,
}

// parameters that differ between members of the family
type megaX8 struct {
	name      string
	signature [3]uint8
	flash     uint32
	pageSize  uint16
	ramEnd    uint16
	eeprom    uint16
	fuses     [3]uint8

	// word addresses of the boot sections indexed by BOOTSZ
	boot []uint32

	// BOOTRST and BOOTSZ are in the high fuse of the 328P and in the extended
	// fuse of the smaller parts
	bootFuse int

	// parts with 8K of flash have one word vectors and no JMP/CALL
	vectorSize int
	features   Feature
}

// COM tables for the 8-bit timers. mode 5 and mode 7 use OCRA as TOP and
// allow channel A to toggle on match
func timer8COM(channelA bool) map[int][]COM {
	toggle := ComDisconnect
	if channelA {
		toggle = ComToggle
	}
	return map[int][]COM{
		0: {ComDisconnect, ComToggle, ComClear, ComSet},
		1: {ComDisconnect, ComDisconnect, ComClearUpSetDown, ComSetUpClearDown},
		2: {ComDisconnect, ComToggle, ComClear, ComSet},
		3: {ComDisconnect, ComDisconnect, ComClearSetBottom, ComSetClearBottom},
		5: {ComDisconnect, toggle, ComClearUpSetDown, ComSetUpClearDown},
		7: {ComDisconnect, toggle, ComClearSetBottom, ComSetClearBottom},
	}
}

var timer8Modes = []WaveformMode{
	{Kind: Normal, Top: 0xff, Update: UpdateImmediate, Overflow: OverflowAtMax},
	{Kind: PhaseCorrectPWM, Top: 0xff, Update: UpdateAtTop, Overflow: OverflowAtBottom},
	{Kind: CTC, TopSource: TopOCRA, Update: UpdateImmediate, Overflow: OverflowAtMax},
	{Kind: FastPWM, Top: 0xff, Update: UpdateAtBottom, Overflow: OverflowAtMax},
	{Kind: Disabled},
	{Kind: PhaseCorrectPWM, TopSource: TopOCRA, Update: UpdateAtTop, Overflow: OverflowAtBottom},
	{Kind: Disabled},
	{Kind: FastPWM, TopSource: TopOCRA, Update: UpdateAtBottom, Overflow: OverflowAtTop},
}

// COM tables for timer1. channel A can toggle on match in the modes that use
// OCR1A as TOP
func timer16COM(channelA bool) map[int][]COM {
	toggle := ComDisconnect
	if channelA {
		toggle = ComToggle
	}
	c := make(map[int][]COM)
	for m := range timer16Modes {
		switch timer16Modes[m].Kind {
		case Normal, CTC:
			c[m] = []COM{ComDisconnect, ComToggle, ComClear, ComSet}
		case FastPWM:
			t := ComDisconnect
			if m == 14 || m == 15 {
				t = toggle
			}
			c[m] = []COM{ComDisconnect, t, ComClearSetBottom, ComSetClearBottom}
		case PhaseCorrectPWM, PhaseFrequencyCorrectPWM:
			t := ComDisconnect
			if m == 9 || m == 11 {
				t = toggle
			}
			c[m] = []COM{ComDisconnect, t, ComClearUpSetDown, ComSetUpClearDown}
		}
	}
	return c
}

var timer16Modes = []WaveformMode{
	{Kind: Normal, Top: 0xffff, Update: UpdateImmediate, Overflow: OverflowAtMax},
	{Kind: PhaseCorrectPWM, Top: 0x00ff, Update: UpdateAtTop, Overflow: OverflowAtBottom},
	{Kind: PhaseCorrectPWM, Top: 0x01ff, Update: UpdateAtTop, Overflow: OverflowAtBottom},
	{Kind: PhaseCorrectPWM, Top: 0x03ff, Update: UpdateAtTop, Overflow: OverflowAtBottom},
	{Kind: CTC, TopSource: TopOCRA, Update: UpdateImmediate, Overflow: OverflowAtMax},
	{Kind: FastPWM, Top: 0x00ff, Update: UpdateAtBottom, Overflow: OverflowAtTop},
	{Kind: FastPWM, Top: 0x01ff, Update: UpdateAtBottom, Overflow: OverflowAtTop},
	{Kind: FastPWM, Top: 0x03ff, Update: UpdateAtBottom, Overflow: OverflowAtTop},
	{Kind: PhaseFrequencyCorrectPWM, TopSource: TopICR, Update: UpdateAtBottom, Overflow: OverflowAtBottom},
	{Kind: PhaseFrequencyCorrectPWM, TopSource: TopOCRA, Update: UpdateAtBottom, Overflow: OverflowAtBottom},
	{Kind: PhaseCorrectPWM, TopSource: TopICR, Update: UpdateAtTop, Overflow: OverflowAtBottom},
	{Kind: PhaseCorrectPWM, TopSource: TopOCRA, Update: UpdateAtTop, Overflow: OverflowAtBottom},
	{Kind: CTC, TopSource: TopICR, Update: UpdateImmediate, Overflow: OverflowAtMax},
	{Kind: Disabled},
	{Kind: FastPWM, TopSource: TopICR, Update: UpdateAtBottom, Overflow: OverflowAtTop},
	{Kind: FastPWM, TopSource: TopOCRA, Update: UpdateAtBottom, Overflow: OverflowAtTop},
}

// vector numbers are the same for all members of the family. the address
// depends on the vector size
const (
	vecINT0 = iota + 1
	vecINT1
	vecPCINT0
	vecPCINT1
	vecPCINT2
	vecWDT
	vecTIMER2COMPA
	vecTIMER2COMPB
	vecTIMER2OVF
	vecTIMER1CAPT
	vecTIMER1COMPA
	vecTIMER1COMPB
	vecTIMER1OVF
	vecTIMER0COMPA
	vecTIMER0COMPB
	vecTIMER0OVF
	vecSPISTC
	vecUSARTRX
	vecUSARTUDRE
	vecUSARTTX
	vecADC
	vecEEREADY
	vecANALOGCOMP
	vecTWI
	vecSPMREADY
)

// flagVector is a helper for the common case of a vector with a flag that is
// cleared on vector entry and by writing a one
func flagVector(name string, number int, enable IOBit, flag IOBit, domain Domain) Vector {
	return Vector{
		Name:         name,
		Number:       number,
		Enable:       enable,
		Flag:         flag,
		AutoClear:    true,
		ClearOnWrite: true,
		Domain:       domain,
	}
}

func (p megaX8) timer8(n int, tccra, tccrb, tcnt, ocra, ocrb, timsk, tifr uint16, prr int, dividers []uint,
	pinA, ddrA, pinB, ddrB IOBit, vecA, vecB, vecOvf int, domain Domain) Timer {
	name := fmt.Sprintf("TIMER%d", n)
	return Timer{
		Name:           name,
		Width:          8,
		Counter:        Reg8(tcnt),
		PowerReduction: Bit(PRR, prr),
		ClockSelect:    Field(tccrb, 0, 3),
		Dividers:       dividers,
		Domain:         domain,
		WGM:            BitField{Bit(tccra, 0), Bit(tccra, 1), Bit(tccrb, 3)},
		Modes:          timer8Modes,
		Overflow:       flagVector(name+"_OVF", vecOvf, Bit(timsk, 0), Bit(tifr, 0), domain),
		Channels: []Channel{
			{
				Name:    fmt.Sprintf("OC%dA", n),
				OCR:     Reg8(ocra),
				COM:     Field(tccra, 6, 2),
				Force:   Bit(tccrb, 7),
				Pin:     pinA,
				DDR:     ddrA,
				Vector:  flagVector(name+"_COMPA", vecA, Bit(timsk, 1), Bit(tifr, 1), domain),
				Actions: expandActions(timer8Modes, timer8COM(true)),
			},
			{
				Name:    fmt.Sprintf("OC%dB", n),
				OCR:     Reg8(ocrb),
				COM:     Field(tccra, 4, 2),
				Force:   Bit(tccrb, 6),
				Pin:     pinB,
				DDR:     ddrB,
				Vector:  flagVector(name+"_COMPB", vecB, Bit(timsk, 2), Bit(tifr, 2), domain),
				Actions: expandActions(timer8Modes, timer8COM(false)),
			},
		},
	}
}

func (p megaX8) timer1() Timer {
	dividers := []uint{0, 1, 8, 64, 256, 1024, ExternalClock, ExternalClock}
	return Timer{
		Name:           "TIMER1",
		Width:          16,
		Counter:        Reg16(TCNT1L),
		PowerReduction: Bit(PRR, 3),
		ClockSelect:    Field(TCCR1B, 0, 3),
		Dividers:       dividers,
		Domain:         DomainIO,
		WGM:            BitField{Bit(TCCR1A, 0), Bit(TCCR1A, 1), Bit(TCCR1B, 3), Bit(TCCR1B, 4)},
		Modes:          timer16Modes,
		Overflow:       flagVector("TIMER1_OVF", vecTIMER1OVF, Bit(TIMSK1, 0), Bit(TIFR1, 0), DomainIO),
		Capture: &Capture{
			Register: Reg16(ICR1L),
			Pin:      Bit(PINB, 0),
			Edge:     Bit(TCCR1B, 6),
			Vector:   flagVector("TIMER1_CAPT", vecTIMER1CAPT, Bit(TIMSK1, 5), Bit(TIFR1, 5), DomainIO),
		},
		Channels: []Channel{
			{
				Name:    "OC1A",
				OCR:     Reg16(OCR1AL),
				COM:     Field(TCCR1A, 6, 2),
				Force:   Bit(TCCR1C, 7),
				Pin:     Bit(PINB, 1),
				DDR:     Bit(DDRB, 1),
				Vector:  flagVector("TIMER1_COMPA", vecTIMER1COMPA, Bit(TIMSK1, 1), Bit(TIFR1, 1), DomainIO),
				Actions: expandActions(timer16Modes, timer16COM(true)),
			},
			{
				Name:    "OC1B",
				OCR:     Reg16(OCR1BL),
				COM:     Field(TCCR1A, 4, 2),
				Force:   Bit(TCCR1C, 6),
				Pin:     Bit(PINB, 2),
				DDR:     Bit(DDRB, 2),
				Vector:  flagVector("TIMER1_COMPB", vecTIMER1COMPB, Bit(TIMSK1, 2), Bit(TIFR1, 2), DomainIO),
				Actions: expandActions(timer16Modes, timer16COM(false)),
			},
		},
	}
}

func (p megaX8) descriptor() *Descriptor {
	d := &Descriptor{
		Name:      p.name,
		Signature: p.signature,
		Frequency: 8000000,
		Features:  p.features,
		Memory: Memory{
			FlashSize:      p.flash,
			FlashPageSize:  p.pageSize,
			IOStart:        0x20,
			RAMStart:       0x100,
			RAMEnd:         p.ramEnd,
			EEPROMSize:     p.eeprom,
			EEPROMPageSize: 4,
		},
		Fuses:        p.fuses,
		Lock:         0xff,
		CKDIV8:       FuseBit{Fuse: 0, Mask: 0x80},
		BOOTRST:      FuseBit{Fuse: p.bootFuse, Mask: 0x01},
		BOOTSZ:       FuseField{Fuse: p.bootFuse, Mask: 0x06, Shift: 1},
		BootSections: p.boot,
		VectorSize:   p.vectorSize,
		IVSEL:        Bit(MCUCR, 1),
		SREG:         SREG,
		SPL:          SPL,
		SPH:          SPH,
		MCUSR:        MCUSR,
		PowerOnReset: Bit(MCUSR, 0),
		Registers:    make(map[string]uint16),
		Defaults: map[uint16]uint8{
			UCSR0A: 0x20,
			UCSR0C: 0x06,
		},
	}

	for r := 0; r < 32; r++ {
		d.Registers[fmt.Sprintf("R%d", r)] = uint16(r)
	}
	for k, v := range megaX8Registers {
		d.Registers[k] = v
	}

	d.Timers = []Timer{
		p.timer8(0, TCCR0A, TCCR0B, TCNT0, OCR0A, OCR0B, TIMSK0, TIFR0, 5,
			[]uint{0, 1, 8, 64, 256, 1024, ExternalClock, ExternalClock},
			Bit(PIND, 6), Bit(DDRD, 6), Bit(PIND, 5), Bit(DDRD, 5),
			vecTIMER0COMPA, vecTIMER0COMPB, vecTIMER0OVF, DomainIO),
		p.timer1(),
		p.timer8(2, TCCR2A, TCCR2B, TCNT2, OCR2A, OCR2B, TIMSK2, TIFR2, 6,
			[]uint{0, 1, 8, 32, 64, 128, 256, 1024},
			Bit(PINB, 3), Bit(DDRB, 3), Bit(PIND, 3), Bit(DDRD, 3),
			vecTIMER2COMPA, vecTIMER2COMPB, vecTIMER2OVF, DomainAsync),
	}

	d.Watchdog = Watchdog{
		Control:    WDTCSR,
		WDTON:      FuseBit{Fuse: 1, Mask: 0x10},
		WDE:        Bit(WDTCSR, 3),
		WDIE:       Bit(WDTCSR, 6),
		WDCE:       Bit(WDTCSR, 4),
		Prescaler:  BitField{Bit(WDTCSR, 0), Bit(WDTCSR, 1), Bit(WDTCSR, 2), Bit(WDTCSR, 5)},
		Oscillator: 128000,
		Timeouts:   []uint32{2048, 4096, 8192, 16384, 32768, 65536, 131072, 262144, 524288, 1048576},
		Vector:     flagVector("WDT", vecWDT, Bit(WDTCSR, 6), Bit(WDTCSR, 7), DomainWatchdog),
		ResetFlag:  Bit(MCUSR, 3),
	}

	d.Sleep = Sleep{
		Enable: Bit(SMCR, 0),
		Mode:   Field(SMCR, 1, 3),
		Modes: []SleepMode{
			{Name: "Idle", Running: DomainAll},
			{Name: "ADC Noise Reduction", Running: DomainAsync | DomainADC | DomainWatchdog | DomainExternal},
			{Name: "Power-down", Running: DomainWatchdog | DomainExternal},
			{Name: "Power-save", Running: DomainAsync | DomainWatchdog | DomainExternal},
			{Name: "Reserved", Reserved: true},
			{Name: "Reserved", Reserved: true},
			{Name: "Standby", Running: DomainWatchdog | DomainExternal},
			{Name: "Extended Standby", Running: DomainAsync | DomainWatchdog | DomainExternal},
		},
	}

	// interrupt sources that are not attached to a modelled peripheral. the
	// flags of these sources are only ever set by the firmware or by debug
	// access but their vectors are still serviced
	d.Vectors = []Vector{
		flagVector("INT0", vecINT0, Bit(EIMSK, 0), Bit(EIFR, 0), DomainExternal),
		flagVector("INT1", vecINT1, Bit(EIMSK, 1), Bit(EIFR, 1), DomainExternal),
		flagVector("PCINT0", vecPCINT0, Bit(PCICR, 0), Bit(PCIFR, 0), DomainExternal),
		flagVector("PCINT1", vecPCINT1, Bit(PCICR, 1), Bit(PCIFR, 1), DomainExternal),
		flagVector("PCINT2", vecPCINT2, Bit(PCICR, 2), Bit(PCIFR, 2), DomainExternal),
		{Name: "SPI_STC", Number: vecSPISTC, Enable: Bit(SPCR, 7), Flag: Bit(SPSR, 7), AutoClear: true, Domain: DomainIO},
		{Name: "USART_RX", Number: vecUSARTRX, Enable: Bit(UCSR0B, 7), Flag: Bit(UCSR0A, 7), Domain: DomainIO},
		{Name: "USART_UDRE", Number: vecUSARTUDRE, Enable: Bit(UCSR0B, 5), Flag: Bit(UCSR0A, 5), Domain: DomainIO},
		flagVector("USART_TX", vecUSARTTX, Bit(UCSR0B, 6), Bit(UCSR0A, 6), DomainIO),
		flagVector("ADC", vecADC, Bit(ADCSRA, 3), Bit(ADCSRA, 4), DomainADC),
		flagVector("ANALOG_COMP", vecANALOGCOMP, Bit(ACSR, 3), Bit(ACSR, 4), DomainIO),
		{Name: "TWI", Number: vecTWI, Enable: Bit(TWCR, 0), Flag: Bit(TWCR, 7), ClearOnWrite: true, Domain: DomainExternal},
	}

	d.finalise()

	return d
}

var atmega88p = megaX8{
	name:       "ATmega88P",
	signature:  [3]uint8{0x1e, 0x93, 0x0f},
	flash:      8 * 1024,
	pageSize:   64,
	ramEnd:     0x4ff,
	eeprom:     512,
	fuses:      [3]uint8{0x62, 0xdf, 0xf9},
	boot:       []uint32{0xc00, 0xe00, 0xf00, 0xf80},
	bootFuse:   2,
	vectorSize: 1,
	features:   megaFeatures &^ FeatureJMP,
}

var atmega168p = megaX8{
	name:       "ATmega168P",
	signature:  [3]uint8{0x1e, 0x94, 0x0b},
	flash:      16 * 1024,
	pageSize:   128,
	ramEnd:     0x4ff,
	eeprom:     512,
	fuses:      [3]uint8{0x62, 0xdf, 0xf9},
	boot:       []uint32{0x1c00, 0x1e00, 0x1f00, 0x1f80},
	bootFuse:   2,
	vectorSize: 2,
	features:   megaFeatures,
}

var atmega328p = megaX8{
	name:       "ATmega328P",
	signature:  [3]uint8{0x1e, 0x95, 0x0f},
	flash:      32 * 1024,
	pageSize:   128,
	ramEnd:     0x8ff,
	eeprom:     1024,
	fuses:      [3]uint8{0x62, 0xd9, 0xff},
	boot:       []uint32{0x3800, 0x3c00, 0x3e00, 0x3f00},
	bootFuse:   1,
	vectorSize: 2,
	features:   megaFeatures,
}
