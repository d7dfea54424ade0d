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
	"strings"

	"github.com/jetsetilly/gopheravr/curated"
)

// UnknownDigestMode is the error pattern returned by ParseDigestMode().
const UnknownDigestMode = "regression: unknown digest mode %q"

// DigestMode selects the state that is hashed during a determinism check.
type DigestMode int

// List of valid DigestMode values.
const (
	DigestUndefined DigestMode = iota
	DigestTraceOnly
	DigestMemoryOnly
	DigestBoth
)

func (m DigestMode) String() string {
	switch m {
	case DigestTraceOnly:
		return "trace"
	case DigestMemoryOnly:
		return "memory"
	case DigestBoth:
		return "both"
	default:
		return "undefined"
	}
}

// ParseDigestMode is the inverse of String(). The comparison is case
// insensitive.
func ParseDigestMode(s string) (DigestMode, error) {
	switch strings.ToLower(s) {
	case "trace":
		return DigestTraceOnly, nil
	case "memory":
		return DigestMemoryOnly, nil
	case "both":
		return DigestBoth, nil
	}

	return DigestUndefined, curated.Errorf(UnknownDigestMode, s)
}
