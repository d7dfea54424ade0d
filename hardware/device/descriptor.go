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

import (
	"sort"
	"strings"
)

// Feature flags the optional parts of the AVR instruction set.
type Feature int

// List of valid Feature values.
const (
	FeatureMUL Feature = 1 << iota
	FeatureJMP
	FeatureMOVW
	FeatureLPMX
	FeatureSPM
	FeatureBREAK
	FeatureELPM
	FeatureEIJMP
	FeatureDES
	FeatureRMW
)

// the features of the megaAVR parts with more than 8K of flash
const megaFeatures = FeatureMUL | FeatureJMP | FeatureMOVW | FeatureLPMX | FeatureSPM | FeatureBREAK

// Memory is the memory geometry of a part.
type Memory struct {
	// flash in bytes
	FlashSize     uint32
	FlashPageSize uint16

	// data memory. general purpose registers and I/O space come before
	// RAMStart. the size of data memory is RAMEnd+1
	IOStart  uint16
	RAMStart uint16
	RAMEnd   uint16

	EEPROMSize     uint16
	EEPROMPageSize uint16
}

// DataSize is the number of bytes in data memory.
func (m Memory) DataSize() int {
	return int(m.RAMEnd) + 1
}

// FlashWords is the number of instruction words in program memory.
func (m Memory) FlashWords() uint32 {
	return m.FlashSize / 2
}

// SRAMSize is the number of bytes of SRAM.
func (m Memory) SRAMSize() int {
	return int(m.RAMEnd) - int(m.RAMStart) + 1
}

// Domain is a bit field of clock domains. Sleep modes stop some domains and
// interrupt sources are tied to a domain.
type Domain uint8

// List of valid Domain values.
const (
	DomainIO Domain = 1 << iota
	DomainAsync
	DomainADC
	DomainWatchdog
	DomainExternal

	DomainAll = DomainIO | DomainAsync | DomainADC | DomainWatchdog | DomainExternal
)

// Vector describes an interrupt source.
type Vector struct {
	Name   string
	Number int

	// word address in program memory. calculated from the vector number
	Address uint32

	Enable IOBit
	Flag   IOBit

	// the flag is cleared automatically when the vector is executed
	AutoClear bool

	// the flag is cleared by writing a one to it. if false the flag is read
	// only
	ClearOnWrite bool

	Domain Domain
}

// Capture describes the input capture unit of a timer.
type Capture struct {
	Register Register16
	Pin      IOBit
	Edge     IOBit
	Vector   Vector
}

// Channel describes an output compare unit of a timer.
type Channel struct {
	Name string

	// the buffered register. the CPU visible value is the buffer
	OCR Register16

	COM   BitField
	Force IOBit

	// the PINx and DDRx bits of the pin driven by the channel
	Pin IOBit
	DDR IOBit

	Vector  Vector
	Actions Actions
}

// ExternalClock is the value in the Dividers table of a timer for clock select
// values that select an external clock source.
const ExternalClock = ^uint(0)

// Timer describes a timer/counter.
type Timer struct {
	Name  string
	Width int

	Counter Register16

	// the timer is stopped when the power reduction bit is set
	PowerReduction IOBit

	// Dividers is indexed by the ClockSelect value. zero means the clock is
	// stopped
	ClockSelect BitField
	Dividers    []uint

	// the clock domain of the timer
	Domain Domain

	// Modes is indexed by the WGM value
	WGM   BitField
	Modes []WaveformMode

	Overflow Vector
	Capture  *Capture
	Channels []Channel
}

// Max returns the maximum value of the counter.
func (t Timer) Max() uint16 {
	if t.Width == 16 {
		return 0xffff
	}
	return 0xff
}

// Watchdog describes the watchdog timer.
type Watchdog struct {
	// the address of the control register
	Control uint16

	// the watchdog is always on in system reset mode if WDTON is programmed
	WDTON FuseBit

	WDE  IOBit
	WDIE IOBit
	WDCE IOBit

	Prescaler BitField

	// frequency of the watchdog oscillator
	Oscillator uint32

	// number of oscillator cycles before timeout, indexed by the Prescaler
	// value
	Timeouts []uint32

	Vector Vector

	// the watchdog reset flag in MCUSR
	ResetFlag IOBit
}

// SleepMode is an entry in the sleep mode table.
type SleepMode struct {
	Name string

	// the clock domains that keep running in the sleep mode
	Running Domain

	Reserved bool
}

// Sleep describes the sleep controller.
type Sleep struct {
	Enable IOBit
	Mode   BitField

	// Modes is indexed by the Mode value
	Modes []SleepMode
}

// Descriptor describes a single AVR part. It must not be altered once it has
// been returned from the registry.
type Descriptor struct {
	Name      string
	Signature [3]uint8

	// the frequency of the default clock source before the CKDIV8 divider
	Frequency uint32

	Features Feature
	Memory   Memory

	// default fuse bytes (low, high, extended) and lock byte
	Fuses [3]uint8
	Lock  uint8

	CKDIV8  FuseBit
	BOOTRST FuseBit
	BOOTSZ  FuseField

	// start of the boot section (word address), indexed by BOOTSZ
	BootSections []uint32

	// size of an interrupt vector in words
	VectorSize int

	// the interrupt vectors are moved to the boot section when IVSEL is set
	IVSEL IOBit

	// addresses of CPU registers in data memory
	SREG uint16
	SPL  uint16
	SPH  uint16

	// reset flags in MCUSR
	MCUSR        uint16
	PowerOnReset IOBit

	// named registers, keyed by upper case name
	Registers map[string]uint16

	// values of I/O registers after reset. registers not listed are zero
	Defaults map[uint16]uint8

	// interrupt sources in ascending vector address order. calculated by
	// finalise()
	Vectors []Vector

	Timers   []Timer
	Watchdog Watchdog
	Sleep    Sleep

	// derived tables. calculated by finalise()
	flags    map[uint16]uint8
	readOnly map[uint16]uint8
	wide     map[uint16]uint16
}

// Register returns the address of a named register. The name is case
// insensitive.
func (d *Descriptor) Register(name string) (uint16, bool) {
	a, ok := d.Registers[strings.ToUpper(name)]
	return a, ok
}

// RegisterNames returns a sorted list of all named registers.
func (d *Descriptor) RegisterNames() []string {
	n := make([]string, 0, len(d.Registers))
	for k := range d.Registers {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

// ResetVector returns the word address of the reset vector for the fuse
// settings.
func (d *Descriptor) ResetVector(fuses [3]uint8) uint32 {
	if d.BOOTRST.Programmed(fuses) {
		return d.BootStart(fuses)
	}
	return 0
}

// BootStart returns the word address of the boot section.
func (d *Descriptor) BootStart(fuses [3]uint8) uint32 {
	if len(d.BootSections) == 0 {
		return 0
	}
	return d.BootSections[int(d.BOOTSZ.Value(fuses))%len(d.BootSections)]
}

// FlagMask returns the bits at address that are interrupt flags cleared by
// writing a one.
func (d *Descriptor) FlagMask(address uint16) uint8 {
	return d.flags[address]
}

// ReadOnlyMask returns the bits at address that can not be written by the
// CPU.
func (d *Descriptor) ReadOnlyMask(address uint16) uint8 {
	return d.readOnly[address]
}

// WideHigh returns the high byte address of the 16-bit register with the low
// byte at address.
func (d *Descriptor) WideHigh(address uint16) (uint16, bool) {
	a, ok := d.wide[address]
	return a, ok
}

// IsHighByte returns true if address is the high byte of a 16-bit register.
func (d *Descriptor) IsHighByte(address uint16) bool {
	for _, hi := range d.wide {
		if hi == address {
			return true
		}
	}
	return false
}

// finalise calculates the derived tables of the descriptor
func (d *Descriptor) finalise() {
	var vectors []Vector
	add := func(v Vector) {
		if v.Number > 0 {
			v.Address = uint32(v.Number * d.VectorSize)
			vectors = append(vectors, v)
		}
	}

	for ti := range d.Timers {
		t := &d.Timers[ti]
		t.Overflow.Address = uint32(t.Overflow.Number * d.VectorSize)
		add(t.Overflow)
		if t.Capture != nil {
			t.Capture.Vector.Address = uint32(t.Capture.Vector.Number * d.VectorSize)
			add(t.Capture.Vector)
		}
		for ci := range t.Channels {
			c := &t.Channels[ci]
			c.Vector.Address = uint32(c.Vector.Number * d.VectorSize)
			add(c.Vector)
		}
	}
	d.Watchdog.Vector.Address = uint32(d.Watchdog.Vector.Number * d.VectorSize)
	add(d.Watchdog.Vector)

	for _, v := range d.Vectors {
		add(v)
	}

	sort.SliceStable(vectors, func(i, j int) bool {
		return vectors[i].Address < vectors[j].Address
	})

	// remove duplicates. a vector listed in Vectors and also attached to a
	// peripheral is only included once
	d.Vectors = vectors[:0:0]
	for _, v := range vectors {
		if len(d.Vectors) > 0 && d.Vectors[len(d.Vectors)-1].Number == v.Number && d.Vectors[len(d.Vectors)-1].Name == v.Name {
			continue
		}
		d.Vectors = append(d.Vectors, v)
	}

	d.flags = make(map[uint16]uint8)
	d.readOnly = make(map[uint16]uint8)
	for _, v := range d.Vectors {
		if !v.Flag.Present() {
			continue
		}
		if v.ClearOnWrite {
			d.flags[v.Flag.Address] |= v.Flag.Mask
		} else {
			d.readOnly[v.Flag.Address] |= v.Flag.Mask
		}
	}

	d.wide = make(map[uint16]uint16)
	for _, t := range d.Timers {
		if t.Counter.Wide() {
			d.wide[t.Counter.Lo] = t.Counter.Hi
		}
		if t.Capture != nil && t.Capture.Register.Wide() {
			d.wide[t.Capture.Register.Lo] = t.Capture.Register.Hi
		}
		for _, c := range t.Channels {
			if c.OCR.Wide() {
				d.wide[c.OCR.Lo] = c.OCR.Hi
			}
		}
	}
}
