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

package interrupts

import (
	"slices"

	"github.com/jetsetilly/gopheravr/hardware/device"
	"github.com/jetsetilly/gopheravr/hardware/memory/chipbus"
)

// the global interrupt enable bit in SREG
const globalEnable = 0x80

// Controller decides which interrupt, if any, should be serviced.
type Controller struct {
	desc *device.Descriptor
	mem  chipbus.Memory

	// number of interrupts serviced since the last reset, indexed by vector
	// number
	Serviced []uint64
}

// NewController is the preferred method of initialisation for the Controller
// type.
func NewController(desc *device.Descriptor, mem chipbus.Memory) *Controller {
	n := 0
	for _, v := range desc.Vectors {
		n = max(n, v.Number+1)
	}
	return &Controller{
		desc:     desc,
		mem:      mem,
		Serviced: make([]uint64, n),
	}
}

// Reset the serviced counts.
func (ctl *Controller) Reset() {
	clear(ctl.Serviced)
}

// Enabled returns true if the global interrupt enable flag is set.
func (ctl *Controller) Enabled() bool {
	return ctl.mem.ChipRefer(ctl.desc.SREG)&globalEnable == globalEnable
}

// Pending returns the highest priority interrupt source that has both its
// enable bit and its flag set. Only sources in one of the running clock
// domains are considered. Returns nil if no interrupt is pending.
//
// Pending does not consider the global interrupt enable flag. A pending
// interrupt wakes a sleeping CPU even if it cannot be serviced.
func (ctl *Controller) Pending(running device.Domain) *device.Vector {
	for i := range ctl.desc.Vectors {
		v := &ctl.desc.Vectors[i]
		if v.Domain&running == 0 {
			continue
		}
		if v.Enable.Get(ctl.mem) && v.Flag.Get(ctl.mem) {
			return v
		}
	}
	return nil
}

// Acknowledge is called when the vector is about to be executed. Flags that
// are cleared by hardware on vector entry are cleared.
func (ctl *Controller) Acknowledge(v *device.Vector) {
	if v.AutoClear {
		v.Flag.Set(ctl.mem, false)
	}
	if v.Number < len(ctl.Serviced) {
		ctl.Serviced[v.Number]++
	}
}

// Snapshot creates a copy of the controller in its current state.
func (ctl *Controller) Snapshot() *Controller {
	n := *ctl
	n.Serviced = slices.Clone(ctl.Serviced)
	return &n
}

// Plumb a new memory into the controller. Used after restoring a snapshot.
func (ctl *Controller) Plumb(mem chipbus.Memory) {
	ctl.mem = mem
}
