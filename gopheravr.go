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

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/gopheravr/digest"
	"github.com/jetsetilly/gopheravr/disassembly"
	"github.com/jetsetilly/gopheravr/environment"
	"github.com/jetsetilly/gopheravr/hardware"
	"github.com/jetsetilly/gopheravr/hardware/device"
	"github.com/jetsetilly/gopheravr/logger"
	"github.com/jetsetilly/gopheravr/modalflag"
	"github.com/jetsetilly/gopheravr/notifications"
	"github.com/jetsetilly/gopheravr/performance"
	"github.com/jetsetilly/gopheravr/performance/limiter"
	"github.com/jetsetilly/gopheravr/regression"
	"github.com/jetsetilly/gopheravr/script"
	"github.com/jetsetilly/gopheravr/statsview"
	"github.com/jetsetilly/gopheravr/wavwriter"
	"github.com/k0kubun/pp/v3"
	"golang.org/x/term"
)

type stateReq = string

const (
	// main thread should end as soon as possible.
	//
	// takes optional int argument, indicating the status code.
	reqQuit stateReq = "QUIT"
)

type stateRequest struct {
	req  stateReq
	args any
}

// communication between the main() function and the launch() function
type mainSync struct {
	state chan stateRequest

	// an interrupt signal has been received. the simulation should end at the
	// next opportunity
	interrupt chan bool
}

func main() {
	sync := &mainSync{
		state:     make(chan stateRequest),
		interrupt: make(chan bool, 1),
	}

	// the value to use with os.Exit(). can be changed with reqQuit
	// stateRequest
	exitVal := 0

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	go launch(sync, os.Args[1:])

	done := false
	for !done {
		select {
		case <-intChan:
			// the first interrupt asks the simulation to end. a second
			// interrupt ends the program immediately
			select {
			case sync.interrupt <- true:
			default:
				fmt.Println("\r")
				done = true
			}

		case state := <-sync.state:
			switch state.req {
			case reqQuit:
				done = true
				if state.args != nil {
					if v, ok := state.args.(int); ok {
						exitVal = v
					} else {
						panic(fmt.Sprintf("cannot convert %s arguments into int", reqQuit))
					}
				}
			}
		}
	}

	os.Exit(exitVal)
}

// launch is called from main() as a goroutine. uses mainSync instance to
// indicate when to quit.
func launch(sync *mainSync, args []string) {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(args)

	err := dispatch(md, sync.interrupt)
	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		sync.state <- stateRequest{req: reqQuit, args: 20}
		return
	}

	sync.state <- stateRequest{req: reqQuit}
}

// dispatch selects the mode from the arguments in md. the simulation in RUN
// mode ends early if a value is received on the interrupt channel
func dispatch(md *modalflag.Modes, interrupt chan bool) error {
	md.AddSubModes("RUN", "PARTS", "DISASM", "PERFORMANCE", "CHECKPOINT")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch md.Mode() {
	case "RUN":
		return run(md, interrupt)
	case "PARTS":
		return parts(md)
	case "DISASM":
		return disasm(md)
	case "PERFORMANCE":
		return perform(md)
	case "CHECKPOINT":
		return checkpoint(md)
	}

	return nil
}

// isTerminal returns true if the output is a terminal
func isTerminal(output io.Writer) bool {
	if f, ok := output.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

// set logging echo. coloured output is only used when the output is a
// terminal
func setEcho(output io.Writer, echo bool) {
	if !echo {
		logger.SetEcho(nil)
		return
	}
	if isTerminal(output) {
		logger.SetEcho(logger.NewColorizer(output))
	} else {
		logger.SetEcho(output)
	}
}

// printer implements the notifications.Notify interface
type printer struct {
	output io.Writer
}

func (p printer) Notify(notice notifications.Notice, detail string) error {
	switch notice {
	case notifications.NotifyBreak:
		fmt.Fprintf(p.output, "* break: %s\n", detail)
	case notifications.NotifyWatchdogReset:
		fmt.Fprintf(p.output, "* watchdog reset: %s\n", detail)
	case notifications.NotifyStopped:
		fmt.Fprintf(p.output, "* stopped: %s\n", detail)
	}
	return nil
}

// fuse flags common to the modes that create a simulation
type fuseFlags struct {
	low  *uint8
	high *uint8
	ext  *uint8
}

func addFuseFlags(md *modalflag.Modes) fuseFlags {
	return fuseFlags{
		low:  md.AddHex("lfuse", 0, "low fuse byte (default for part if not specified)"),
		high: md.AddHex("hfuse", 0, "high fuse byte (default for part if not specified)"),
		ext:  md.AddHex("efuse", 0, "extended fuse byte (default for part if not specified)"),
	}
}

// apply the fuse flags to the environment. fuses that have not been specified
// keep the default value for the part
func (ff fuseFlags) apply(md *modalflag.Modes, env *environment.Environment, desc *device.Descriptor) {
	if !md.Set("lfuse") && !md.Set("hfuse") && !md.Set("efuse") {
		return
	}
	fuses := desc.Fuses
	if md.Set("lfuse") {
		fuses[0] = *ff.low
	}
	if md.Set("hfuse") {
		fuses[1] = *ff.high
	}
	if md.Set("efuse") {
		fuses[2] = *ff.ext
	}
	env.Fuses = &fuses
}

// create a new simulation of the part with the firmware in the named file
func newAVR(env *environment.Environment, part string, filename string) (*hardware.AVR, error) {
	desc, err := device.Lookup(part)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	return hardware.NewAVR(env, part,
		make([]uint8, desc.Memory.FlashSize),
		make([]uint8, desc.Memory.DataSize()),
		f)
}

func run(md *modalflag.Modes, interrupt chan bool) error {
	md.NewMode()

	part := md.AddString("part", "m328p", "part to simulate")
	freq := md.AddUint64("freq", 0, "clock frequency in Hz (default for part and fuses if zero)")
	fuses := addFuseFlags(md)
	cycles := md.AddUint64("cycles", 0, "number of cycles to run for (run until stopped if zero)")
	steps := md.AddInt("steps", 0, "number of steps to run for (run until stopped if zero)")
	realtime := md.AddBool("realtime", false, "limit the simulation to the clock frequency of the part")
	scriptFile := md.AddString("script", "", "lua script to run alongside the simulation")
	wav := md.AddString("wav", "", "record output compare pin to wav file")
	wavPin := md.AddString("wavpin", "OC0A", "output compare pin to record")
	wavRate := md.AddInt("wavrate", wavwriter.DefaultSampleRate, "sample rate of wav file")
	memvizFile := md.AddString("memviz", "", "write graphviz file of the simulation state on completion")
	dump := md.AddString("dump", "", "write data memory to file on completion")
	trace := md.AddBool("trace", false, "print digest of execution trace on completion")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setEcho(md.Output, *log)

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("firmware image required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	var ses *script.Session
	if *scriptFile != "" {
		ses, err = script.LoadSession(*scriptFile)
		if err != nil {
			return err
		}
		defer ses.Close()

		err = ses.PreInit(*part)
		if err != nil {
			return err
		}
	}

	desc, err := device.Lookup(*part)
	if err != nil {
		return err
	}

	env := environment.NewEnvironment(environment.MainEmulation)
	env.Frequency = uint32(*freq)
	env.Notifications = printer{output: md.Output}
	fuses.apply(md, env, desc)

	avr, err := newAVR(env, *part, md.GetArg(0))
	if err != nil {
		return err
	}

	if ses != nil {
		ses.Attach(avr)
	}

	var dig *digest.Trace
	if *trace {
		dig = digest.NewTrace()
		avr.SetObserver(func(pc uint32, state hardware.State) {
			dig.Step(pc, int(state), avr.Cycles)
		})
	}

	var aw *wavwriter.WavWriter
	if *wav != "" {
		src, err := wavwriter.PinSource(avr.Timers, *wavPin)
		if err != nil {
			return err
		}
		aw, err = wavwriter.New(*wav, avr.Frequency, uint32(*wavRate), src)
		if err != nil {
			return err
		}
	}

	var lim *limiter.Limiter
	if *realtime {
		lim = limiter.NewLimiter(avr.Frequency, 100)
		defer lim.End()
	}

	stepCount := 0
	performanceBrake := 0

	err = avr.Run(func() (bool, error) {
		stepCount++

		if aw != nil {
			aw.Sample(avr.Cycles)
		}

		if ses != nil {
			if err := ses.PostStep(avr.PC(), avr.State()); err != nil {
				return false, err
			}
			if ses.StopRequested() {
				return false, nil
			}
		}

		if lim != nil {
			lim.Wait(avr.Cycles)
		}

		if *steps > 0 && stepCount >= *steps {
			return false, nil
		}
		if *cycles > 0 && avr.Cycles >= *cycles {
			return false, nil
		}

		performanceBrake++
		if performanceBrake >= hardware.PerformanceBrake {
			performanceBrake = 0
			select {
			case <-interrupt:
				return false, nil
			default:
			}
		}

		return true, nil
	})

	fmt.Fprintf(md.Output, "%s: %s at pc %#05x after %d cycles (%d steps)\n", avr.Desc.Name, avr.State(), avr.PC(), avr.Cycles, stepCount)

	// a simulation that has stopped because of an execution error still
	// produces the requested output files
	if aw != nil {
		if err := aw.Close(); err != nil {
			return err
		}
	}

	if *dump != "" {
		if err := os.WriteFile(*dump, avr.DumpDataMemory(), 0o644); err != nil {
			return err
		}
	}

	if *memvizFile != "" {
		if err := writeMemviz(*memvizFile, avr); err != nil {
			return err
		}
	}

	if dig != nil {
		fmt.Fprintf(md.Output, "trace: %s\n", dig.Hash())
	}

	return err
}

// the state of the simulation as presented to memviz. the complete AVR type
// is impractical because of the size of the memory buffers
type vizState struct {
	Part      string
	State     string
	PC        uint32
	Cycles    uint64
	Registers [32]uint8
	Timers    []vizTimer
	Watchdog  string
	Serviced  []uint64
}

type vizTimer struct {
	Label     string
	Counter   uint16
	Mode      string
	Direction string
}

func writeMemviz(filename string, avr *hardware.AVR) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	s := &vizState{
		Part:     avr.Desc.Name,
		State:    avr.State().String(),
		PC:       avr.PC(),
		Cycles:   avr.Cycles,
		Watchdog: avr.Watchdog.Mode().String(),
		Serviced: avr.Interrupts.Serviced,
	}
	for i := range s.Registers {
		s.Registers[i] = avr.CPU.Register(uint8(i))
	}
	for _, tmr := range avr.Timers {
		s.Timers = append(s.Timers, vizTimer{
			Label:     tmr.Label(),
			Counter:   tmr.Counter(),
			Mode:      fmt.Sprint(tmr.Mode()),
			Direction: fmt.Sprint(tmr.Direction),
		})
	}

	w := &bytes.Buffer{}
	memviz.Map(w, s)
	_, err = f.Write(w.Bytes())
	return err
}

func parts(md *modalflag.Modes) error {
	md.NewMode()

	verbose := md.AddBool("v", false, "print the complete descriptor of each part")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	names := md.RemainingArgs()
	if len(names) == 0 {
		names = device.Parts()
	}

	pr := pp.New()
	pr.SetOutput(md.Output)
	pr.SetColoringEnabled(isTerminal(md.Output))

	for _, n := range names {
		desc, err := device.Lookup(n)
		if err != nil {
			return err
		}

		if *verbose {
			pr.Println(desc)
			continue
		}

		fmt.Fprintf(md.Output, "%-12s %d KiB flash, %d bytes RAM, %d bytes EEPROM, %d vectors, %d timers, signature %02x %02x %02x\n",
			desc.Name, desc.Memory.FlashSize/1024, desc.Memory.RAMEnd-desc.Memory.RAMStart+1,
			desc.Memory.EEPROMSize, len(desc.Vectors)+1, len(desc.Timers),
			desc.Signature[0], desc.Signature[1], desc.Signature[2])
	}

	return nil
}

func disasm(md *modalflag.Modes) error {
	md.NewMode()

	part := md.AddString("part", "m328p", "part the firmware is for")
	bytecode := md.AddBool("bytecode", false, "include bytecode in disassembly")
	cycles := md.AddBool("cycles", false, "include cycle count in disassembly")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("firmware image required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	env := environment.NewEnvironment(environment.MainEmulation)
	env.Quiet = true
	avr, err := newAVR(env, *part, md.GetArg(0))
	if err != nil {
		return err
	}

	dsm := disassembly.FromProgram(avr.Desc, avr.DumpProgramMemory())
	dsm.Write(md.Output, disassembly.WriteAttr{
		ByteCode: *bytecode,
		Cycles:   *cycles,
	})

	return nil
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	part := md.AddString("part", "m328p", "part to simulate")
	duration := md.AddString("duration", "5s", "run duration (note: there is a 2s overhead)")
	profile := md.AddString("profile", "none", "run with profiling: cpu, mem, trace, block, mutex")
	stats := md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsviewAddress()))
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setEcho(md.Output, *log)

	prof, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("firmware image required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	if *stats {
		if !statsview.Available() {
			return fmt.Errorf("statsview server is not available in this build")
		}
		defer statsview.Launch(md.Output)()
	}

	env := environment.NewEnvironment(environment.MainEmulation)
	avr, err := newAVR(env, *part, md.GetArg(0))
	if err != nil {
		return err
	}

	return performance.Check(md.Output, prof, avr, *duration)
}

func statsviewAddress() string {
	if statsview.Available() {
		return statsview.Address
	}
	return "not available in this build"
}

func checkpoint(md *modalflag.Modes) error {
	md.NewMode()

	part := md.AddString("part", "m328p", "part to simulate")
	steps := md.AddInt("steps", 10000000, "maximum number of steps before failure")
	determinism := md.AddInt("determinism", 0, "also check that the simulation is deterministic for the number of steps")
	digestMode := md.AddString("digest", "both", "digest used for determinism check: trace, memory, both")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	md.AdditionalHelp(strings.TrimSpace(`
The checkpoint list is a text file of lines in the form:

  <pc> <dumpfile>

The program counter is a word address in hexadecimal. The dump file is a raw
binary of data memory. A checkpoint for the reset vector at the start of the
list initialises data memory.`))

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	setEcho(md.Output, *log)

	if len(md.RemainingArgs()) != 2 {
		return fmt.Errorf("firmware image and checkpoint list required for %s mode", md)
	}

	cps, err := regression.LoadCheckpoints(md.GetArg(1))
	if err != nil {
		return err
	}

	env := environment.NewEnvironment(environment.MainEmulation)
	avr, err := newAVR(env, *part, md.GetArg(0))
	if err != nil {
		return err
	}

	res, err := regression.RunCheckpoints(avr, cps, *steps, md.Output)
	if err != nil {
		return err
	}
	fmt.Fprintf(md.Output, "passed: %s\n", res)

	if *determinism > 0 {
		mode, err := regression.ParseDigestMode(*digestMode)
		if err != nil {
			return err
		}

		image, err := os.ReadFile(md.GetArg(0))
		if err != nil {
			return err
		}

		hash, err := regression.Determinism(*part, image, *determinism, mode)
		if err != nil {
			return err
		}
		fmt.Fprintf(md.Output, "deterministic: %s\n", hash)
	}

	return nil
}
