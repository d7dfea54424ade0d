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

// WaveformKind is the type of a waveform generation mode.
type WaveformKind int

// List of valid WaveformKind values.
const (
	Normal WaveformKind = iota
	CTC
	FastPWM
	PhaseCorrectPWM
	PhaseFrequencyCorrectPWM

	// a reserved mode. the timer does not count
	Disabled
)

func (k WaveformKind) String() string {
	switch k {
	case Normal:
		return "Normal"
	case CTC:
		return "CTC"
	case FastPWM:
		return "Fast PWM"
	case PhaseCorrectPWM:
		return "Phase Correct PWM"
	case PhaseFrequencyCorrectPWM:
		return "Phase & Frequency Correct PWM"
	case Disabled:
		return "Disabled"
	}
	return fmt.Sprintf("unknown waveform kind (%d)", int(k))
}

// DualSlope returns true if counters count up and then down.
func (k WaveformKind) DualSlope() bool {
	return k == PhaseCorrectPWM || k == PhaseFrequencyCorrectPWM
}

// PWM returns true for all pulse width modulation kinds.
func (k WaveformKind) PWM() bool {
	return k == FastPWM || k.DualSlope()
}

// TopSource specifies where the TOP value of a waveform mode comes from.
type TopSource int

// List of valid TopSource values.
const (
	TopFixed TopSource = iota
	TopOCRA
	TopICR
)

func (t TopSource) String() string {
	switch t {
	case TopFixed:
		return "fixed"
	case TopOCRA:
		return "OCRA"
	case TopICR:
		return "ICR"
	}
	return "unknown"
}

// Update specifies when buffered output compare registers are committed.
type Update int

// List of valid Update values.
const (
	UpdateImmediate Update = iota
	UpdateAtTop
	UpdateAtBottom
)

func (u Update) String() string {
	switch u {
	case UpdateImmediate:
		return "immediate"
	case UpdateAtTop:
		return "TOP"
	case UpdateAtBottom:
		return "BOTTOM"
	}
	return "unknown"
}

// Overflow specifies when the overflow flag is set.
type Overflow int

// List of valid Overflow values.
const (
	OverflowAtMax Overflow = iota
	OverflowAtTop
	OverflowAtBottom
)

func (o Overflow) String() string {
	switch o {
	case OverflowAtMax:
		return "MAX"
	case OverflowAtTop:
		return "TOP"
	case OverflowAtBottom:
		return "BOTTOM"
	}
	return "unknown"
}

// WaveformMode is one entry in the waveform generation table of a timer.
type WaveformMode struct {
	Kind WaveformKind

	// TOP value if TopSource is TopFixed
	Top       uint16
	TopSource TopSource

	Update   Update
	Overflow Overflow
}

func (m WaveformMode) String() string {
	if m.Kind == Disabled {
		return m.Kind.String()
	}
	top := m.TopSource.String()
	if m.TopSource == TopFixed {
		top = fmt.Sprintf("%#x", m.Top)
	}
	return fmt.Sprintf("%s top=%s update=%s tov=%s", m.Kind, top, m.Update, m.Overflow)
}

// Direction is the counting direction of a timer.
type Direction int

// List of valid Direction values.
const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// PinAction is the effect on an output compare pin.
type PinAction int

// List of valid PinAction values.
const (
	// the pin is not driven by the timer
	Disconnected PinAction = iota

	Toggle
	Clear
	Set

	// the pin is driven by the timer but the event has no effect
	NoAction
)

func (a PinAction) String() string {
	switch a {
	case Disconnected:
		return "disconnected"
	case Toggle:
		return "toggle"
	case Clear:
		return "clear"
	case Set:
		return "set"
	case NoAction:
		return "none"
	}
	return "unknown"
}

// Apply the action to a pin level.
func (a PinAction) Apply(level bool) bool {
	switch a {
	case Toggle:
		return !level
	case Clear:
		return false
	case Set:
		return true
	}
	return level
}

// Action is the entry in a compare action table. Match is applied on compare
// match and Bottom is applied when the counter wraps or turns at BOTTOM.
type Action struct {
	Match  PinAction
	Bottom PinAction
}

// Connected returns true if the pin is driven by the timer.
func (a Action) Connected() bool {
	return a.Match != Disconnected
}

// ActionKey is the key for the compare action table.
type ActionKey struct {
	Mode      int
	COM       uint8
	Direction Direction
}

// Actions is the compare action table for an output compare channel. It is
// exhaustive for every mode that isn't disabled.
type Actions map[ActionKey]Action

// Lookup returns the action for the key. Missing entries, which can only
// occur for disabled modes of a validated descriptor, are disconnected.
func (a Actions) Lookup(mode int, com uint8, dir Direction) Action {
	return a[ActionKey{Mode: mode, COM: com, Direction: dir}]
}

// COM is the compact description of the pin behaviour for a single COM
// setting. COM codes are expanded into Action entries for each direction by
// expandActions().
type COM int

// List of valid COM codes.
const (
	ComDisconnect COM = iota
	ComToggle
	ComClear
	ComSet

	// clear when counting up, set when counting down
	ComClearUpSetDown

	// set when counting up, clear when counting down
	ComSetUpClearDown

	// clear on match, set at bottom
	ComClearSetBottom

	// set on match, clear at bottom
	ComSetClearBottom
)

func (c COM) action(dir Direction) Action {
	switch c {
	case ComToggle:
		return Action{Match: Toggle, Bottom: NoAction}
	case ComClear:
		return Action{Match: Clear, Bottom: NoAction}
	case ComSet:
		return Action{Match: Set, Bottom: NoAction}
	case ComClearUpSetDown:
		if dir == Down {
			return Action{Match: Set, Bottom: NoAction}
		}
		return Action{Match: Clear, Bottom: NoAction}
	case ComSetUpClearDown:
		if dir == Down {
			return Action{Match: Clear, Bottom: NoAction}
		}
		return Action{Match: Set, Bottom: NoAction}
	case ComClearSetBottom:
		return Action{Match: Clear, Bottom: Set}
	case ComSetClearBottom:
		return Action{Match: Set, Bottom: Clear}
	}
	return Action{Match: Disconnected, Bottom: Disconnected}
}

// expandActions creates an Actions table from a table of COM codes for each
// mode. A mode with no row in the coms table has no entries.
func expandActions(modes []WaveformMode, coms map[int][]COM) Actions {
	a := make(Actions)
	for m, mode := range modes {
		row, ok := coms[m]
		if !ok {
			continue
		}
		for com, c := range row {
			a[ActionKey{Mode: m, COM: uint8(com), Direction: Up}] = c.action(Up)
			if mode.Kind.DualSlope() {
				a[ActionKey{Mode: m, COM: uint8(com), Direction: Down}] = c.action(Down)
			}
		}
	}
	return a
}
