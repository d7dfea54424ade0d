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

package logger

import (
	"io"
)

// the log used by the package level functions. a simulation of a single part
// rarely needs more entries than this to explain a failure
const centralEntries = 256

var central = NewLogger(centralEntries)

// Log adds an entry to the package log.
func Log(perm Permission, tag string, detail any) {
	central.Log(perm, tag, detail)
}

// Logf is the formatted variant of Log().
func Logf(perm Permission, tag string, format string, args ...any) {
	central.Logf(perm, tag, format, args...)
}

// Clear removes every entry from the package log.
func Clear() {
	central.Clear()
}

// Write every entry in the package log to output.
func Write(output io.Writer) {
	central.Write(output)
}

// Tail writes the most recent entries to output.
func Tail(output io.Writer, number int) {
	central.Tail(output, number)
}

// SetEcho writes new entries to output as they are added. A nil output
// stops the echo.
func SetEcho(output io.Writer) {
	central.SetEcho(output)
}
