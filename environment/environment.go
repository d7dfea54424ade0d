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

package environment

import (
	"github.com/jetsetilly/gopheravr/logger"
	"github.com/jetsetilly/gopheravr/notifications"
)

// Label is used to name the environment
type Label string

// MainEmulation is the label used for the main simulation
const MainEmulation = Label("")

// Environment is used to provide context for a simulation. Particularly useful
// when using multiple simulations
type Environment struct {
	Label Label

	// clock frequency in Hz. a value of zero means that the frequency is
	// derived from the part's default clock source and the CKDIV8 fuse
	Frequency uint32

	// fuse bytes (low, high, extended). nil means the part's default fuse
	// settings
	Fuses *[3]uint8

	// notifications are sent to this interface. can be nil
	Notifications notifications.Notify

	// logging is suppressed for the environment
	Quiet bool
}

// NewEnvironment is the preferred method of initialisation for the Environment
// type.
func NewEnvironment(label Label) *Environment {
	return &Environment{
		Label: label,
	}
}

// Normalise ensures the environment is in an known default state. Useful for
// regression testing where the initial state must be the same for every run of
// the test.
func (env *Environment) Normalise() {
	env.Frequency = 0
	env.Fuses = nil
}

// IsMainEmulation returns true if the environment is intended for the main
// simulation in the system
func (env *Environment) IsMainEmulation() bool {
	return env.Label == MainEmulation
}

// IsEmulation checks the environment label and returns true if it matches
func (env *Environment) IsEmulation(label Label) bool {
	return env.Label == label
}

// AllowLogging implements the logger.Permission interface.
func (env *Environment) AllowLogging() bool {
	return env != nil && !env.Quiet
}

// Notify logs the notice and forwards it to the Notifications interface, if
// there is one.
func (env *Environment) Notify(notice notifications.Notice, tag string, detail string) {
	logger.Logf(env, tag, "%s: %s", notice, detail)
	if env == nil || env.Notifications == nil {
		return
	}
	if err := env.Notifications.Notify(notice, detail); err != nil {
		logger.Log(env, tag, err)
	}
}
