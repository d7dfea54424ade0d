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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Arguments are supplied with NewArgs() and then parsed with Parse(), which
// takes no arguments. This allows the arguments to be parsed in layers, one
// layer for each mode:
//
//	md = Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "PARTS")
//	_, _ = md.Parse()
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		part := md.AddString("part", "m328p", "part to simulate")
//		fuse := md.AddHex("hfuse", 0xd9, "high fuse byte")
//		p, err := md.Parse()
//		...
//	}
//
// The first sub-mode in the list is the default mode. Sub-mode comparisons are
// case insensitive and the value returned by Mode() is always upper case.
//
// Non-flag arguments that follow the flags (and the mode selector) are
// retrieved with RemainingArgs() or GetArg().
//
// Help is handled automatically. The -help flag causes Parse() to print the
// flags and sub-modes for the current mode to the Output field and to return
// ParseHelp.
package modalflag
