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

package script

import (
	"fmt"
	"io"
	"os"

	"github.com/jetsetilly/gopheravr/curated"
	"github.com/jetsetilly/gopheravr/hardware"
	"github.com/jetsetilly/gopheravr/logger"
	lua "github.com/yuin/gopher-lua"
)

// ScriptError is the pattern for errors in the loading or running of a
// script.
const ScriptError = "script: %v"

// names of the optional global functions
const (
	preInit  = "pre_init"
	postStep = "post_step"
)

// Session is a running Lua script.
type Session struct {
	name string
	L    *lua.LState
	avr  *hardware.AVR

	// stop has been requested by the script
	stop bool
}

// NewSession loads and runs the script read from r. The name is used in log
// entries and error messages.
func NewSession(name string, r io.Reader) (*Session, error) {
	ses := &Session{
		name: name,
		L:    lua.NewState(),
	}
	ses.L.SetGlobal("avr", ses.L.SetFuncs(ses.L.NewTable(), map[string]lua.LGFunction{
		"pc":     ses.pc,
		"cycles": ses.cycles,
		"state":  ses.state,
		"read":   ses.read,
		"write":  ses.write,
		"log":    ses.log,
		"stop":   ses.requestStop,
	}))

	fn, err := ses.L.Load(r, name)
	if err != nil {
		ses.L.Close()
		return nil, curated.Errorf(ScriptError, err)
	}
	ses.L.Push(fn)
	if err := ses.L.PCall(0, lua.MultRet, nil); err != nil {
		ses.L.Close()
		return nil, curated.Errorf(ScriptError, err)
	}

	logger.Logf(logger.Allow, "script", "loaded %s", name)

	return ses, nil
}

// LoadSession loads the script from the named file.
func LoadSession(filename string) (*Session, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, curated.Errorf(ScriptError, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return NewSession(filename, f)
}

func (ses *Session) String() string {
	return ses.name
}

// Close the Lua state. The session can not be used after Close().
func (ses *Session) Close() {
	ses.L.Close()
}

// PreInit calls the pre_init() function of the script, if it has one.
func (ses *Session) PreInit(part string) error {
	return ses.call(preInit, lua.LString(part))
}

// Attach the part to the session. The avr table functions that access the
// part raise an error in the script until a part is attached.
func (ses *Session) Attach(avr *hardware.AVR) {
	ses.avr = avr
}

// PostStep calls the post_step() function of the script, if it has one. It
// has the signature of hardware.Observer except that it returns an error.
func (ses *Session) PostStep(pc uint32, state hardware.State) error {
	return ses.call(postStep, lua.LNumber(pc), lua.LString(state.String()))
}

// StopRequested returns true if the script has called avr.stop().
func (ses *Session) StopRequested() bool {
	return ses.stop
}

func (ses *Session) call(name string, args ...lua.LValue) error {
	fn := ses.L.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return nil
	}
	err := ses.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, args...)
	if err != nil {
		return curated.Errorf(ScriptError, fmt.Errorf("%s: %w", name, err))
	}
	return nil
}

func (ses *Session) attached(L *lua.LState) *hardware.AVR {
	if ses.avr == nil {
		L.RaiseError("no part attached")
	}
	return ses.avr
}

func (ses *Session) pc(L *lua.LState) int {
	L.Push(lua.LNumber(ses.attached(L).PC()))
	return 1
}

func (ses *Session) cycles(L *lua.LState) int {
	L.Push(lua.LNumber(ses.attached(L).Cycles))
	return 1
}

func (ses *Session) state(L *lua.LState) int {
	L.Push(lua.LString(ses.attached(L).State().String()))
	return 1
}

func (ses *Session) read(L *lua.LState) int {
	v, err := ses.attached(L).ReadRegister(L.CheckString(1))
	if err != nil {
		L.RaiseError("%v", err)
	}
	L.Push(lua.LNumber(v))
	return 1
}

func (ses *Session) write(L *lua.LState) int {
	name := L.CheckString(1)
	v := L.CheckInt(2)
	if v < 0 || v > 0xff {
		L.ArgError(2, "value out of range")
	}
	if err := ses.attached(L).WriteRegister(name, uint8(v)); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (ses *Session) log(L *lua.LState) int {
	var perm logger.Permission = logger.Allow
	if ses.avr != nil {
		perm = ses.avr.Env()
	}
	logger.Log(perm, "script", L.CheckString(1))
	return 0
}

func (ses *Session) requestStop(L *lua.LState) int {
	ses.stop = true
	return 0
}
