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

package notifications

// Notice describes events that are of interest to the user of the simulation
// but which are not errors. Advisory conditions, where the simulation has
// applied a best-effort fallback for a feature that it does not support, are
// the most common type of notice.
type Notice string

// List of defined notifications.
const (
	// a feature of the part is not supported and a documented fallback has
	// been applied. the timer is stopped for an external clock source, for
	// example
	NotifyUnsupported Notice = "NotifyUnsupported"

	// the BREAK instruction was executed
	NotifyBreak Notice = "NotifyBreak"

	// the watchdog has reset the part
	NotifyWatchdogReset Notice = "NotifyWatchdogReset"

	// the part has entered the STOPPED state because of a fatal execution
	// error
	NotifyStopped Notice = "NotifyStopped"
)

// Notify is used for communication between the hardware and the driver of the
// simulation. The detail string is a human readable description of the event.
//
// Returning an error does not stop the simulation. The error is logged.
type Notify interface {
	Notify(notice Notice, detail string) error
}
