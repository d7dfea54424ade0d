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

package hardware

import (
	"fmt"

	"github.com/jetsetilly/gopheravr/hardware/cpu/instructions"
	"github.com/jetsetilly/gopheravr/notifications"
)

// control implements the cpu.Control interface
type control struct {
	avr *AVR
}

// Sleep implements the cpu.Control interface.
func (ctrl control) Sleep() {
	avr := ctrl.avr
	if !avr.Desc.Sleep.Enable.Get(avr.Mem) {
		return
	}

	m := int(avr.Desc.Sleep.Mode.Value(avr.Mem))
	if m >= len(avr.Desc.Sleep.Modes) || avr.Desc.Sleep.Modes[m].Reserved {
		avr.env.Notify(notifications.NotifyUnsupported, "avr", fmt.Sprintf("reserved sleep mode %d. SLEEP executed as NOP", m))
		return
	}

	avr.sleepMode = avr.Desc.Sleep.Modes[m]
	avr.state = Sleeping
}

// WatchdogReset implements the cpu.Control interface.
func (ctrl control) WatchdogReset() {
	ctrl.avr.Watchdog.Ping()
}

// Advisory implements the cpu.Control interface.
func (ctrl control) Advisory(detail string) {
	notice := notifications.NotifyUnsupported
	if d := ctrl.avr.CPU.LastResult.Defn; d != nil && d.Operator == instructions.Break {
		notice = notifications.NotifyBreak
	}
	ctrl.avr.env.Notify(notice, "cpu", detail)
}
