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

package hardware_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/jetsetilly/gopheravr/environment"
	"github.com/jetsetilly/gopheravr/hardware"
	"github.com/jetsetilly/gopheravr/hardware/device"
	"github.com/jetsetilly/gopheravr/notifications"
	"github.com/jetsetilly/gopheravr/test"
)

// firmware is built from opcode words placed at word addresses
type firmware map[uint32]uint16

// put the words starting at the word address origin
func (fw firmware) put(origin uint32, words ...uint16) firmware {
	for i, w := range words {
		fw[origin+uint32(i)] = w
	}
	return fw
}

// image returns the firmware as a little-endian binary. gaps are filled with
// zero, which is the NOP instruction
func (fw firmware) image() io.Reader {
	var top uint32
	for a := range fw {
		top = max(top, a+1)
	}
	b := make([]byte, top*2)
	for a, w := range fw {
		b[a*2] = uint8(w)
		b[a*2+1] = uint8(w >> 8)
	}
	return bytes.NewReader(b)
}

// notices records the notifications sent by the simulation
type notices []notifications.Notice

func (n *notices) Notify(notice notifications.Notice, _ string) error {
	*n = append(*n, notice)
	return nil
}

func newEnv(n *notices) *environment.Environment {
	env := environment.NewEnvironment("test")
	env.Quiet = true
	if n != nil {
		env.Notifications = n
	}
	return env
}

func newAVR(t *testing.T, env *environment.Environment, fw firmware) *hardware.AVR {
	t.Helper()
	desc, err := device.Lookup("m328p")
	test.DemandSuccess(t, err)

	var image io.Reader
	if fw != nil {
		image = fw.image()
	}

	avr, err := hardware.NewAVR(env, "m328p",
		make([]uint8, desc.Memory.FlashSize),
		make([]uint8, desc.Memory.DataSize()),
		image)
	test.DemandSuccess(t, err)
	return avr
}

func step(t *testing.T, avr *hardware.AVR) int {
	t.Helper()
	cycles, err := avr.Step()
	test.DemandSuccess(t, err)
	return cycles
}

// instruction encoders

const (
	opNOP   = 0x0000
	opSEI   = 0x9478
	opRETI  = 0x9518
	opSLEEP = 0x9588
	opWDR   = 0x95a8
)

func ldi(d uint8, k uint8) uint16 {
	return 0xe000 | uint16(k&0xf0)<<4 | uint16(d-16)<<4 | uint16(k&0x0f)
}

func inc(d uint8) uint16 {
	return 0x9403 | uint16(d)<<4
}

// out takes the data memory address of the I/O register
func out(address uint16, r uint8) uint16 {
	a := address - 0x20
	return 0xb800 | (a&0x30)<<5 | uint16(r)<<4 | a&0x0f
}

func sts(address uint16, r uint8) (uint16, uint16) {
	return 0x9200 | uint16(r)<<4, address
}

func rjmp(k int) uint16 {
	return 0xc000 | uint16(k)&0x0fff
}
