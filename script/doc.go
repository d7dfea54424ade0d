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

// Package script allows a simulation to be extended by a Lua script.
//
// The script is loaded before the part is created. Two optional global
// functions are recognised:
//
//	pre_init(part)          called with the part name before the part is created
//	post_step(pc, state)    called after every step of the simulation
//
// Once the part has been attached to the session, the avr table provides
// access to it:
//
//	avr.pc()                the program counter as a word address
//	avr.cycles()            the number of cycles since the last reset
//	avr.state()             the execution state ("RUNNING", "SLEEPING" or "STOPPED")
//	avr.read(name)          the value of the named I/O register
//	avr.write(name, value)  write to the named I/O register
//	avr.log(message)        add a message to the log
//	avr.stop()              request that the simulation end
package script
