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

package timer

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/gopheravr/hardware/device"
	"github.com/jetsetilly/gopheravr/hardware/memory/chipbus"
)

// Advisory is called when the timer applies a fallback for an unsupported
// feature.
type Advisory func(detail string)

// channel is the runtime state of an output compare unit.
type channel struct {
	desc *device.Channel

	// the compare value used by the timer. in modes with buffered updates
	// this will differ from the value in data memory until the commit point
	active uint16

	// the level of the output compare pin
	level bool
}

// Timer is the runtime state of a single timer/counter.
type Timer struct {
	desc *device.Timer
	mem  chipbus.Memory

	advisory Advisory

	channels []channel

	// counting direction. only changes in the dual slope modes
	Direction device.Direction

	// the cycle count of the most recent tick
	LastTick uint64

	// the timer was not counting at the previous call to Step()
	stopped bool

	// a CPU write to the counter blocks compare match on the next tick
	blockCompare bool

	// the previous level of the input capture pin
	captureLevel bool

	// the waveform mode of the previous tick. used to report changes of mode
	mode int

	// advisory conditions are reported once until the condition changes
	advised string
}

// NewTimer is the preferred method of initialisation for the Timer type.
func NewTimer(desc *device.Timer, mem chipbus.Memory, advisory Advisory) *Timer {
	tmr := &Timer{
		desc:     desc,
		mem:      mem,
		advisory: advisory,
		channels: make([]channel, len(desc.Channels)),
	}
	for i := range desc.Channels {
		tmr.channels[i].desc = &desc.Channels[i]
	}
	return tmr
}

// Label returns the name of the timer.
func (tmr *Timer) Label() string {
	return tmr.desc.Name
}

func (tmr *Timer) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %#04x %s [%s]", tmr.desc.Name, tmr.Counter(), tmr.Direction, tmr.Mode()))
	for _, c := range tmr.channels {
		lvl := 0
		if c.level {
			lvl = 1
		}
		s.WriteString(fmt.Sprintf(" %s=%#04x:%d", c.desc.Name, c.active, lvl))
	}
	return s.String()
}

// Reset the timer to the power-on state. The registers in data memory are
// reset by the memory package.
func (tmr *Timer) Reset(now uint64) {
	tmr.Direction = device.Up
	tmr.LastTick = now
	tmr.stopped = true
	tmr.blockCompare = false
	tmr.captureLevel = false
	tmr.mode = 0
	tmr.advised = ""
	for i := range tmr.channels {
		tmr.channels[i].active = 0
		tmr.channels[i].level = false
	}
}

// Watched returns the addresses of the registers that the timer should be
// informed about when written by the CPU.
func (tmr *Timer) Watched() []uint16 {
	w := []uint16{tmr.desc.Counter.Lo}
	for _, c := range tmr.desc.Channels {
		if c.Force.Present() {
			w = append(w, c.Force.Address)
		}
	}
	return w
}

// Counter returns the current value of the counter.
func (tmr *Timer) Counter() uint16 {
	return tmr.desc.Counter.Value(tmr.mem)
}

// Mode returns the active waveform generation mode.
func (tmr *Timer) Mode() device.WaveformMode {
	return tmr.desc.Modes[tmr.modeIndex()]
}

func (tmr *Timer) modeIndex() int {
	return int(tmr.desc.WGM.Value(tmr.mem)) % len(tmr.desc.Modes)
}

// Pin returns the level of the output compare pin of the channel.
func (tmr *Timer) Pin(ch int) bool {
	if ch < 0 || ch >= len(tmr.channels) {
		return false
	}
	return tmr.channels[ch].level
}

// Channel returns the index of the named channel. Returns -1 if the timer has
// no channel by that name.
func (tmr *Timer) Channel(name string) int {
	for i, c := range tmr.channels {
		if strings.EqualFold(c.desc.Name, name) {
			return i
		}
	}
	return -1
}

// Active returns the compare value being used by the channel. This can differ
// from the value in data memory in the modes with buffered updates.
func (tmr *Timer) Active(ch int) uint16 {
	if ch < 0 || ch >= len(tmr.channels) {
		return 0
	}
	return tmr.channels[ch].active
}

func (tmr *Timer) advise(detail string) {
	if tmr.advised == detail {
		return
	}
	tmr.advised = detail
	if tmr.advisory != nil {
		tmr.advisory(detail)
	}
}

// Update is called with the CPU writes to the registers returned by
// Watched(). Returns true if the timer was interested in the write.
func (tmr *Timer) Update(change chipbus.ChangedRegister) bool {
	if change.Address == tmr.desc.Counter.Lo {
		tmr.blockCompare = true
		return true
	}

	handled := false
	mode := tmr.Mode()
	for i := range tmr.channels {
		c := &tmr.channels[i]
		f := c.desc.Force
		if !f.Present() || change.Address != f.Address {
			continue
		}
		handled = true
		if change.Value&f.Mask == 0 {
			continue
		}

		// the force strobe always reads as zero
		f.Set(tmr.mem, false)

		// force output compare only has an effect in the non-PWM modes. the
		// compare match flag is not set and the timer is not cleared
		if !mode.Kind.PWM() {
			tmr.matchAction(c, tmr.modeIndex(), tmr.Direction)
		}
	}

	return handled
}

// the clock divider for the timer. zero if the timer is stopped
func (tmr *Timer) divider(running device.Domain) uint {
	if tmr.desc.PowerReduction.Get(tmr.mem) {
		return 0
	}

	if running&tmr.desc.Domain == 0 {
		return 0
	}

	cs := int(tmr.desc.ClockSelect.Value(tmr.mem))
	if cs >= len(tmr.desc.Dividers) {
		return 0
	}
	div := tmr.desc.Dividers[cs]
	if div == device.ExternalClock {
		tmr.advise(fmt.Sprintf("%s: external clock source is not supported. timer stopped", tmr.desc.Name))
		return 0
	}

	if tmr.Mode().Kind == device.Disabled {
		tmr.advise(fmt.Sprintf("%s: reserved waveform mode %d. timer stopped", tmr.desc.Name, tmr.modeIndex()))
		return 0
	}

	return div
}

// Step the timer forward to the cycle count. The running argument is the set
// of clock domains that are running. A timer in a stopped domain does not
// count.
func (tmr *Timer) Step(now uint64, running device.Domain) {
	tmr.capture()

	div := tmr.divider(running)
	if div == 0 {
		tmr.stopped = true
		tmr.LastTick = now
		return
	}

	if tmr.stopped {
		tmr.stopped = false
		tmr.advised = ""
		tmr.LastTick = now
		return
	}

	for tmr.LastTick+uint64(div) <= now {
		tmr.LastTick += uint64(div)
		tmr.tick()
	}
}

// the TOP value of the waveform mode
func (tmr *Timer) top(mode device.WaveformMode) uint16 {
	switch mode.TopSource {
	case device.TopOCRA:
		if len(tmr.channels) > 0 {
			if mode.Update == device.UpdateImmediate {
				return tmr.channels[0].desc.OCR.Value(tmr.mem)
			}
			return tmr.channels[0].active
		}
	case device.TopICR:
		if tmr.desc.Capture != nil {
			return tmr.desc.Capture.Register.Value(tmr.mem)
		}
	}
	return mode.Top
}

// copy the buffered compare values to the active compare values
func (tmr *Timer) commit() {
	for i := range tmr.channels {
		c := &tmr.channels[i]
		c.active = c.desc.OCR.Value(tmr.mem)
	}
}

func (tmr *Timer) setPin(c *channel, level bool) {
	c.level = level
	if c.desc.DDR.Get(tmr.mem) {
		c.desc.Pin.Set(tmr.mem, level)
	}
}

func (tmr *Timer) matchAction(c *channel, mode int, dir device.Direction) {
	com := c.desc.COM.Value(tmr.mem)
	a := c.desc.Actions.Lookup(mode, com, dir)
	if a.Connected() {
		tmr.setPin(c, a.Match.Apply(c.level))
	}
}

func (tmr *Timer) bottomAction(mode int) {
	for i := range tmr.channels {
		c := &tmr.channels[i]
		com := c.desc.COM.Value(tmr.mem)
		a := c.desc.Actions.Lookup(mode, com, tmr.Direction)
		if a.Connected() {
			tmr.setPin(c, a.Bottom.Apply(c.level))
		}
	}
}

// a single tick of the timer
func (tmr *Timer) tick() {
	m := tmr.modeIndex()
	mode := tmr.desc.Modes[m]

	if m != tmr.mode {
		tmr.mode = m
		tmr.Direction = device.Up
	}

	// immediate update modes use the value in data memory directly
	if mode.Update == device.UpdateImmediate {
		tmr.commit()
	}

	top := tmr.top(mode)
	max := tmr.desc.Max()
	old := tmr.Counter()

	// compare match on the value before the tick. in dual slope modes a match
	// at TOP or BOTTOM takes the action for the direction the counter leaves
	// in, so a compare value at either extreme holds the pin at one level
	dir := tmr.Direction
	if mode.Kind.DualSlope() {
		if dir == device.Up && old >= top {
			dir = device.Down
		} else if dir == device.Down && old == 0 {
			dir = device.Up
		}
	}

	if !tmr.blockCompare {
		for i := range tmr.channels {
			c := &tmr.channels[i]
			if old == c.active {
				c.desc.Vector.Flag.Set(tmr.mem, true)
				tmr.matchAction(c, m, dir)
			}
		}
	}
	tmr.blockCompare = false

	var next uint16
	var bottom bool

	if mode.Kind.DualSlope() {
		if tmr.Direction == device.Up {
			if old >= top {
				if mode.Update == device.UpdateAtTop {
					tmr.commit()
				}
				if mode.Overflow == device.OverflowAtTop {
					tmr.desc.Overflow.Flag.Set(tmr.mem, true)
				}
				tmr.Direction = device.Down
				if top > 0 {
					next = top - 1
				}
			} else {
				next = old + 1
			}
		} else {
			if old == 0 {
				if mode.Update == device.UpdateAtBottom {
					tmr.commit()
				}
				if mode.Overflow == device.OverflowAtBottom {
					tmr.desc.Overflow.Flag.Set(tmr.mem, true)
				}
				tmr.Direction = device.Up
				bottom = true
				if top > 0 {
					next = 1
				}
			} else {
				next = old - 1
			}
		}
	} else {
		if old == top || old == max {
			if old == top && mode.Update == device.UpdateAtTop {
				tmr.commit()
			}
			if (old == top && mode.Overflow == device.OverflowAtTop) || (old == max && mode.Overflow == device.OverflowAtMax) {
				tmr.desc.Overflow.Flag.Set(tmr.mem, true)
			}
			next = 0
			if mode.Update == device.UpdateAtBottom {
				tmr.commit()
			}
			if mode.Overflow == device.OverflowAtBottom {
				tmr.desc.Overflow.Flag.Set(tmr.mem, true)
			}
			bottom = true
		} else {
			next = old + 1
		}
	}

	tmr.desc.Counter.SetValue(tmr.mem, next)

	if bottom {
		tmr.bottomAction(m)
	}
}

// check the input capture pin for the selected edge
func (tmr *Timer) capture() {
	cp := tmr.desc.Capture
	if cp == nil {
		return
	}

	level := cp.Pin.Get(tmr.mem)
	edge := level != tmr.captureLevel
	tmr.captureLevel = level
	if !edge {
		return
	}

	// rising edge if the edge select bit is set, otherwise falling edge
	if level != cp.Edge.Get(tmr.mem) {
		return
	}

	// the input capture unit is disabled when ICR is used as TOP
	if tmr.Mode().TopSource == device.TopICR {
		return
	}

	cp.Register.SetValue(tmr.mem, tmr.Counter())
	cp.Vector.Flag.Set(tmr.mem, true)
}

// Snapshot creates a copy of the timer in its current state.
func (tmr *Timer) Snapshot() *Timer {
	n := *tmr
	n.channels = make([]channel, len(tmr.channels))
	copy(n.channels, tmr.channels)
	return &n
}

// Plumb a new memory into the timer. Used after restoring a snapshot.
func (tmr *Timer) Plumb(mem chipbus.Memory) {
	tmr.mem = mem
}
