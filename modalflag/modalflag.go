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

package modalflag

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Modes parses a command line that is made up of a chain of modes, each with
// its own flags. For example:
//
//	gopheravr RUN -part m328p -cycles 1000 blink.bin
//
// The caller declares the sub-modes and flags of a layer and calls Parse().
// NewMode() then begins the next layer from the point where the previous
// Parse() stopped.
//
// Help text is written to Output. A nil Output means help is discarded.
type Modes struct {
	Output io.Writer

	flags *flag.FlagSet

	args []string
	next int

	// sub-modes for the current layer. the first entry is the default
	subModes []string

	// every mode selected since NewArgs()
	path []string

	additionalHelp string
}

// ParseResult is the outcome of a call to Parse().
type ParseResult int

// List of valid ParseResult values.
const (
	// ParseContinue means the caller should act on Mode() and any flags.
	ParseContinue ParseResult = iota

	// ParseHelp means help was requested and has already been written to
	// Output. The caller should stop without further output.
	ParseHelp

	// ParseError means the arguments were wrong. The error is returned
	// alongside.
	ParseError
)

const pathSeparator = "/"

func (md *Modes) String() string {
	return md.Path()
}

// Path lists the modes selected so far, outermost first.
func (md *Modes) Path() string {
	return strings.Join(md.path, pathSeparator)
}

// Mode is the most recently selected mode. Empty if no mode has been selected.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// NewArgs sets the argument list and starts the first layer.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.next = 0
	md.path = md.path[:0]
	md.NewMode()
}

// NewMode starts a new layer. Flags and sub-modes added before the previous
// Parse() are forgotten.
func (md *Modes) NewMode() {
	md.subModes = md.subModes[:0]
	md.additionalHelp = ""
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
}

// AdditionalHelp is printed after the flag and sub-mode summary when help is
// requested for the current layer.
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// AddSubModes adds to the sub-modes of the current layer. Sub-modes are case
// insensitive and the first one added is the default unless
// AddDefaultSubMode() is used.
func (md *Modes) AddSubModes(subModes ...string) {
	for _, m := range subModes {
		md.subModes = append(md.subModes, strings.ToUpper(m))
	}
}

// AddDefaultSubMode adds a sub-mode and makes it the default.
func (md *Modes) AddDefaultSubMode(subMode string) {
	md.subModes = append([]string{strings.ToUpper(subMode)}, md.subModes...)
}

// Parse the current layer of the argument list.
//
// When the layer has sub-modes the first non-flag argument is compared with
// them. A match is consumed and becomes Mode(). Otherwise the default
// sub-mode is selected and the argument is left for the next layer.
func (md *Modes) Parse() (ParseResult, error) {
	hw := &helpWriter{}
	md.flags.SetOutput(hw)

	err := md.flags.Parse(md.args[md.next:])

	switch {
	case errors.Is(err, flag.ErrHelp):
		hw.Help(md.output(), md.Path(), md.subModes, md.additionalHelp)
		return ParseHelp, nil

	case err != nil:
		// an unknown flag may belong to the default sub-mode
		if len(md.subModes) == 0 {
			return ParseError, err
		}
		md.path = append(md.path, md.subModes[0])

	case len(md.subModes) > 0:
		mode := md.subModes[0]
		arg := strings.ToUpper(md.flags.Arg(0))
		for _, m := range md.subModes {
			if m == arg {
				mode = m
				md.next++
				break // for loop
			}
		}
		md.path = append(md.path, mode)
	}

	return ParseContinue, nil
}

func (md *Modes) output() io.Writer {
	if md.Output == nil {
		return io.Discard
	}
	return md.Output
}

// RemainingArgs are the arguments left after the flags of the current layer.
func (md *Modes) RemainingArgs() []string {
	return md.flags.Args()
}

// GetArg returns the numbered argument from RemainingArgs(). Empty if there is
// no such argument.
func (md *Modes) GetArg(i int) string {
	return md.flags.Arg(i)
}

// Set is true if the named flag appeared in the argument list.
func (md *Modes) Set(name string) bool {
	var found bool
	md.flags.Visit(func(f *flag.Flag) {
		found = found || f.Name == name
	})
	return found
}

// AddBool adds a flag to the current layer.
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddInt adds a flag to the current layer.
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddUint64 adds a flag to the current layer.
func (md *Modes) AddUint64(name string, value uint64, usage string) *uint64 {
	return md.flags.Uint64(name, value, usage)
}

// AddString adds a flag to the current layer.
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// AddHex adds a flag to the current layer. The flag takes a single byte in
// hexadecimal, with or without the 0x prefix.
func (md *Modes) AddHex(name string, value uint8, usage string) *uint8 {
	h := hexByte(value)
	md.flags.Var(&h, name, usage)
	return (*uint8)(&h)
}

type hexByte uint8

func (h *hexByte) String() string {
	if h == nil {
		return "0x00"
	}
	return fmt.Sprintf("%#02x", uint8(*h))
}

func (h *hexByte) Set(s string) error {
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 8)
	if err != nil {
		return fmt.Errorf("%s is not a hexadecimal byte", s)
	}
	*h = hexByte(v)
	return nil
}
