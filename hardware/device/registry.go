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

package device

import (
	"strings"
	"sync"

	"github.com/jetsetilly/gopheravr/curated"
)

// UnknownPart is the pattern for errors returned by Lookup() when the part
// name is not recognised.
const UnknownPart = "device: unknown part (%s)"

// the family builders for each registered part, in the order they are
// listed by Parts()
var builders = []struct {
	name    string
	aliases []string
	build   func() *Descriptor
}{
	{name: "ATmega88P", aliases: []string{"m88p"}, build: atmega88p.descriptor},
	{name: "ATmega168P", aliases: []string{"m168p"}, build: atmega168p.descriptor},
	{name: "ATmega328P", aliases: []string{"m328p"}, build: atmega328p.descriptor},
}

type entry struct {
	once sync.Once
	desc *Descriptor
	err  error
}

var registry map[string]*entry

func init() {
	registry = make(map[string]*entry)
	for _, b := range builders {
		e := &entry{}
		registry[strings.ToLower(b.name)] = e
		for _, a := range b.aliases {
			registry[strings.ToLower(a)] = e
		}
	}
}

// Parts returns the names of the registered parts.
func Parts() []string {
	p := make([]string, len(builders))
	for i, b := range builders {
		p[i] = b.name
	}
	return p
}

// Lookup returns the validated descriptor for the named part. The name is
// case insensitive and can be the full part name or the short avrdude style
// name (eg. m328p).
//
// The descriptor is built on first use and the same instance is returned on
// subsequent calls. It is safe to call Lookup() from more than one goroutine.
func Lookup(name string) (*Descriptor, error) {
	e, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, curated.Errorf(UnknownPart, name)
	}

	e.once.Do(func() {
		for _, b := range builders {
			if registry[strings.ToLower(b.name)] == e {
				e.desc = b.build()
				e.err = Validate(e.desc)
				return
			}
		}
	})

	return e.desc, e.err
}
