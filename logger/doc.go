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

// Package logger is the central log for the simulator. All components log
// through the package level Log() and Logf() functions. The central log is a
// bounded list of entries; when full the oldest entries are dropped.
//
// Every log request names a Permission. The Environment type of an instance
// implements the Permission interface so that, for example, the secondary
// instances of a determinism comparison can be kept out of the log. Use Allow
// when an entry should always be made.
//
// Consecutive identical entries are collapsed into a single entry with a
// repeat count.
//
// NewLogger() creates a private Logger, which is mostly useful for testing.
package logger
