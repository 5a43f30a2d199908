// This file is part of Denise.
//
// Denise is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Denise is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Denise.  If not, see <https://www.gnu.org/licenses/>.

// Package digest contains implementations of the host display and audio
// interfaces that produce a cryptographic hash of the output. The hash can be
// used to compare the output of subsequent emulation runs. If a new hash
// differs from a previously recorded value then something has changed.
//
// Each new hash is chained with the previous hash, so the final value depends
// on every frame (or every block of audio) that has been seen.
package digest

// Digest implementations return a cryptographic hash in response to a Hash()
// request.
type Digest interface {
	Hash() string
	ResetDigest()
}
