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
	"fmt"
	"math/bits"

	"github.com/jetsetilly/gopheravr/curated"
)

// ValidationError is the pattern for all errors returned by Validate().
const ValidationError = "device: %s: %s"

// validator accumulates the first error found during validation
type validator struct {
	d   *Descriptor
	err error
}

func (v *validator) fail(format string, args ...any) {
	if v.err == nil {
		v.err = curated.Errorf(ValidationError, v.d.Name, fmt.Sprintf(format, args...))
	}
}

func (v *validator) io(what string, address uint16) {
	if address < v.d.Memory.IOStart || address >= v.d.Memory.RAMStart {
		v.fail("%s address %#04x is outside I/O space", what, address)
	}
}

func (v *validator) bit(what string, b IOBit) {
	if !b.Present() {
		v.fail("%s is missing", what)
		return
	}
	if bits.OnesCount8(b.Mask) != 1 {
		v.fail("%s has a mask (%#02x) that is not a single bit", what, b.Mask)
	}
	v.io(what, b.Address)
}

func (v *validator) field(what string, f BitField) {
	if len(f) == 0 {
		v.fail("%s is empty", what)
	}
	for i, b := range f {
		v.bit(fmt.Sprintf("%s bit %d", what, i), b)
	}
}

func (v *validator) register(what string, r Register16, width int) {
	v.io(what, r.Lo)
	if width == 16 {
		if !r.Wide() {
			v.fail("%s is not a 16-bit register", what)
			return
		}
		v.io(what, r.Hi)
	} else if r.Wide() {
		v.fail("%s is not an 8-bit register", what)
	}
}

func (v *validator) vector(what string, vec Vector) {
	if vec.Number <= 0 {
		v.fail("%s vector number (%d) is invalid", what, vec.Number)
		return
	}
	if vec.Address >= v.d.Memory.FlashWords() {
		v.fail("%s vector address (%#x) is outside flash", what, vec.Address)
	}
	v.bit(what+" enable", vec.Enable)
	v.bit(what+" flag", vec.Flag)
}

// Validate checks the descriptor for consistency. The descriptor must have
// been finalised.
func Validate(d *Descriptor) error {
	v := &validator{d: d}

	m := d.Memory
	if m.FlashSize == 0 || m.FlashSize%2 != 0 {
		v.fail("flash size (%d) is invalid", m.FlashSize)
	}
	if m.IOStart != 0x20 {
		v.fail("I/O space does not start at %#02x", 0x20)
	}
	if m.RAMStart <= m.IOStart || m.RAMEnd < m.RAMStart {
		v.fail("data memory layout is invalid")
	}
	if d.VectorSize != 1 && d.VectorSize != 2 {
		v.fail("vector size (%d) is invalid", d.VectorSize)
	}
	if d.Frequency == 0 {
		v.fail("default frequency is zero")
	}
	for i, b := range d.BootSections {
		if b >= m.FlashWords() {
			v.fail("boot section %d is outside flash", i)
		}
	}

	v.io("SREG", d.SREG)
	v.io("SPL", d.SPL)
	v.io("SPH", d.SPH)
	v.io("MCUSR", d.MCUSR)
	v.bit("PORF", d.PowerOnReset)

	// named registers must not overlap and must be inside data memory. the
	// register file is outside I/O space so is checked separately
	seen := make(map[uint16]string)
	for _, name := range d.RegisterNames() {
		a := d.Registers[name]
		if a >= m.RAMStart {
			v.fail("register %s (%#04x) is outside register and I/O space", name, a)
		}
		if o, ok := seen[a]; ok {
			v.fail("registers %s and %s overlap at %#04x", o, name, a)
		}
		seen[a] = name
	}
	for a := range d.Defaults {
		v.io("default", a)
	}

	// vectors must be unique
	addresses := make(map[uint32]string)
	for _, vec := range d.Vectors {
		v.vector(vec.Name, vec)
		if o, ok := addresses[vec.Address]; ok {
			v.fail("vectors %s and %s share address %#x", o, vec.Name, vec.Address)
		}
		addresses[vec.Address] = vec.Name
	}

	for _, t := range d.Timers {
		validateTimer(v, t)
	}

	w := d.Watchdog
	v.io("WDTCSR", w.Control)
	v.bit("WDE", w.WDE)
	v.bit("WDIE", w.WDIE)
	v.bit("WDCE", w.WDCE)
	v.bit("WDRF", w.ResetFlag)
	v.field("WDP", w.Prescaler)
	v.vector("watchdog", w.Vector)
	if w.Oscillator == 0 {
		v.fail("watchdog oscillator frequency is zero")
	}
	if len(w.Timeouts) == 0 || len(w.Timeouts) > 1<<len(w.Prescaler) {
		v.fail("watchdog timeout table has %d entries", len(w.Timeouts))
	}
	for i, t := range w.Timeouts {
		if t == 0 {
			v.fail("watchdog timeout %d is zero", i)
		}
	}

	s := d.Sleep
	v.bit("SE", s.Enable)
	v.field("SM", s.Mode)
	if len(s.Modes) != 1<<len(s.Mode) {
		v.fail("sleep mode table has %d entries, wanted %d", len(s.Modes), 1<<len(s.Mode))
	}

	return v.err
}

func validateTimer(v *validator, t Timer) {
	if t.Width != 8 && t.Width != 16 {
		v.fail("%s: counter width (%d) is invalid", t.Name, t.Width)
	}
	v.register(t.Name+" counter", t.Counter, t.Width)
	v.bit(t.Name+" power reduction", t.PowerReduction)
	v.field(t.Name+" clock select", t.ClockSelect)
	v.field(t.Name+" WGM", t.WGM)
	v.vector(t.Name+" overflow", t.Overflow)

	if len(t.Dividers) > 1<<len(t.ClockSelect) {
		v.fail("%s: divider table has %d entries", t.Name, len(t.Dividers))
	}
	for i, d := range t.Dividers {
		if d != 0 && d != ExternalClock && bits.OnesCount(d) != 1 {
			v.fail("%s: divider %d (%d) is not a power of two", t.Name, i, d)
		}
	}

	if len(t.Modes) != 1<<len(t.WGM) {
		v.fail("%s: waveform table has %d entries, wanted %d", t.Name, len(t.Modes), 1<<len(t.WGM))
	}

	usesICR := false
	for i, mode := range t.Modes {
		if mode.Kind == Disabled {
			continue
		}
		switch mode.TopSource {
		case TopFixed:
			if mode.Top == 0 || mode.Top > t.Max() {
				v.fail("%s: mode %d has invalid TOP (%#x)", t.Name, i, mode.Top)
			}
		case TopOCRA:
			if len(t.Channels) == 0 {
				v.fail("%s: mode %d uses OCRA but there are no channels", t.Name, i)
			}
		case TopICR:
			usesICR = true
		}
		if mode.Kind.DualSlope() && mode.Overflow == OverflowAtMax {
			v.fail("%s: mode %d is dual slope with overflow at MAX", t.Name, i)
		}
	}
	if usesICR && t.Capture == nil {
		v.fail("%s: ICR used as TOP but there is no input capture unit", t.Name)
	}

	if t.Capture != nil {
		v.register(t.Name+" ICR", t.Capture.Register, t.Width)
		v.bit(t.Name+" ICP", t.Capture.Pin)
		v.bit(t.Name+" ICES", t.Capture.Edge)
		v.vector(t.Name+" capture", t.Capture.Vector)
	}

	for _, c := range t.Channels {
		what := fmt.Sprintf("%s %s", t.Name, c.Name)
		v.register(what+" OCR", c.OCR, t.Width)
		v.field(what+" COM", c.COM)
		v.bit(what+" pin", c.Pin)
		v.bit(what+" DDR", c.DDR)
		v.vector(what, c.Vector)

		// the action table must be exhaustive for every mode the timer can
		// run in
		for i, mode := range t.Modes {
			if mode.Kind == Disabled {
				continue
			}
			dirs := []Direction{Up}
			if mode.Kind.DualSlope() {
				dirs = append(dirs, Down)
			}
			for com := 0; com < 1<<len(c.COM); com++ {
				for _, dir := range dirs {
					if _, ok := c.Actions[ActionKey{Mode: i, COM: uint8(com), Direction: dir}]; !ok {
						v.fail("%s: no compare action for mode %d, COM %d, counting %s", what, i, com, dir)
					}
				}
			}
		}
	}
}
