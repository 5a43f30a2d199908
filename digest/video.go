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

package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/jetsetilly/denise/hardware/display/vidbuf"
)

// Video implements the vidbuf.Host interface. A new digest is calculated
// every time the screen is unlocked.
type Video struct {
	buf    *vidbuf.Buffer
	digest [sha1.Size]byte

	// the previous digest followed by the contents of the buffer
	data []byte

	frames int
	rows   int
}

// NewVideo is the preferred method of initialisation for the Video type.
func NewVideo(width int, height int, pixBytes int) *Video {
	dig := &Video{
		buf: vidbuf.NewBuffer(width, height, pixBytes),
	}
	dig.data = make([]byte, len(dig.digest)+len(dig.buf.Mem))
	return dig
}

func (dig *Video) String() string {
	return fmt.Sprintf("%d frames, %d rows", dig.frames, dig.rows)
}

// Hash implements the Digest interface.
func (dig *Video) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Video) ResetDigest() {
	clear(dig.digest[:])
	dig.frames = 0
	dig.rows = 0
}

// Frames returns the number of frames included in the digest.
func (dig *Video) Frames() int {
	return dig.frames
}

// Rows returns the number of rows that have been drawn.
func (dig *Video) Rows() int {
	return dig.rows
}

// Buffer implements the vidbuf.Host interface.
func (dig *Video) Buffer() *vidbuf.Buffer {
	return dig.buf
}

// LockScreen implements the vidbuf.Host interface.
func (dig *Video) LockScreen() bool {
	return true
}

// UnlockScreen implements the vidbuf.Host interface.
func (dig *Video) UnlockScreen() {
	n := copy(dig.data, dig.digest[:])
	copy(dig.data[n:], dig.buf.Mem)
	dig.digest = sha1.Sum(dig.data)
	dig.frames++
}

// FlushLine implements the vidbuf.Host interface.
func (dig *Video) FlushLine(_ int) {
	dig.rows++
}

// FlushBlock implements the vidbuf.Host interface.
func (dig *Video) FlushBlock(first int, last int) {
	dig.rows += last - first + 1
}

// FlushScreen implements the vidbuf.Host interface.
func (dig *Video) FlushScreen(_ int, _ int) {
}
