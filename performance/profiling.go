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

package performance

import (
	"fmt"
	"strings"

	"github.com/pkg/profile"
)

// Profile specifies which profile to generate with RunProfiler().
type Profile int

// List of valid Profile values.
const (
	ProfileNone Profile = iota
	ProfileCPU
	ProfileMem
	ProfileTrace
	ProfileBlock
	ProfileMutex
)

func (p Profile) String() string {
	switch p {
	case ProfileCPU:
		return "cpu"
	case ProfileMem:
		return "mem"
	case ProfileTrace:
		return "trace"
	case ProfileBlock:
		return "block"
	case ProfileMutex:
		return "mutex"
	}
	return "none"
}

// ParseProfile converts a string to a Profile value.
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return ProfileNone, nil
	case "cpu":
		return ProfileCPU, nil
	case "mem":
		return ProfileMem, nil
	case "trace":
		return ProfileTrace, nil
	case "block":
		return ProfileBlock, nil
	case "mutex":
		return ProfileMutex, nil
	}
	return ProfileNone, fmt.Errorf("performance: unknown profile type (%s)", s)
}

func (p Profile) mode() func(*profile.Profile) {
	switch p {
	case ProfileCPU:
		return profile.CPUProfile
	case ProfileMem:
		return profile.MemProfile
	case ProfileTrace:
		return profile.TraceProfile
	case ProfileBlock:
		return profile.BlockProfile
	case ProfileMutex:
		return profile.MutexProfile
	}
	return nil
}

// RunProfiler runs the supplied function with the profile running. Profile
// files are written to the path. An empty path is the current directory.
func RunProfiler(p Profile, path string, run func() error) error {
	mode := p.mode()
	if mode == nil {
		return run()
	}

	if path == "" {
		path = "."
	}

	defer profile.Start(mode, profile.ProfilePath(path), profile.NoShutdownHook, profile.Quiet).Stop()

	return run()
}
