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

package regression

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jetsetilly/gopheravr/curated"
)

// CheckpointFormat is the pattern for errors in the checkpoint list.
const CheckpointFormat = "regression: checkpoint list: line %d: %v"

// Checkpoint is a single entry in a checkpoint list.
type Checkpoint struct {
	PC       uint32
	Filename string
	Data     []uint8
}

func (cp Checkpoint) String() string {
	return fmt.Sprintf("%#05x %s", cp.PC, cp.Filename)
}

// ParseCheckpoints reads a checkpoint list. The load function is called for
// every dump file named in the list.
func ParseCheckpoints(r io.Reader, load func(filename string) ([]uint8, error)) ([]Checkpoint, error) {
	var cps []Checkpoint

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		s := strings.TrimSpace(scanner.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}

		f := strings.Fields(s)
		if len(f) != 2 {
			return nil, curated.Errorf(CheckpointFormat, line, "expected <pc> <dumpfile>")
		}

		pc, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(f[0]), "0x"), 16, 32)
		if err != nil {
			return nil, curated.Errorf(CheckpointFormat, line, err)
		}

		data, err := load(f[1])
		if err != nil {
			return nil, curated.Errorf(CheckpointFormat, line, err)
		}

		cps = append(cps, Checkpoint{
			PC:       uint32(pc),
			Filename: f[1],
			Data:     data,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, curated.Errorf(CheckpointFormat, line, err)
	}

	return cps, nil
}

// LoadCheckpoints reads the checkpoint list from the named file. Dump files
// are loaded relative to the directory of the list.
func LoadCheckpoints(filename string) ([]Checkpoint, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("regression: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	dir := filepath.Dir(filename)
	return ParseCheckpoints(f, func(dump string) ([]uint8, error) {
		if !filepath.IsAbs(dump) {
			dump = filepath.Join(dir, dump)
		}
		return os.ReadFile(dump)
	})
}
