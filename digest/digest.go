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

// Package digest contains implementations of the Digest interface that
// produce a cryptographic hash of the state of a simulation. The hash can be
// used to compare the output of subsequent simulations. If a new hash differs
// from a previously recorded value then something has changed. We use this as
// the basis for regression tests and for determinism checks.
//
// Hashes are chained. Each new hash value includes the previous hash value so
// that the final hash describes the entire history of the simulation and not
// just the final state.
//
// Note that the use of sha1 is fine for this application because this is not
// a cryptographic task.
package digest

// Digest implementations should return a cryptographic hash in response to a
// Hash() request. Generation of the hash achieved via another interface.
type Digest interface {
	Hash() string
	ResetDigest()
}
