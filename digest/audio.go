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
	"encoding/binary"
	"fmt"
)

// the number of samples to collect before a new digest is calculated
const audioBufferSamples = 4096

// the digest of the previous block is stored at the beginning of the buffer
const audioBufferStart = sha1.Size

const audioBufferLength = audioBufferStart + audioBufferSamples*2

// Audio implements the chipset.AudioSink interface.
type Audio struct {
	digest   [sha1.Size]byte
	buffer   []uint8
	bufferCt int
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() *Audio {
	dig := &Audio{
		buffer:   make([]uint8, audioBufferLength),
		bufferCt: audioBufferStart,
	}
	return dig
}

// Hash implements the Digest interface. Samples that have not been flushed
// are not included.
func (dig *Audio) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Audio) ResetDigest() {
	clear(dig.digest[:])
	dig.bufferCt = audioBufferStart
}

// SetAudio implements the chipset.AudioSink interface.
func (dig *Audio) SetAudio(sample int16) {
	binary.LittleEndian.PutUint16(dig.buffer[dig.bufferCt:], uint16(sample))
	dig.bufferCt += 2
	if dig.bufferCt >= audioBufferLength {
		dig.Flush()
	}
}

// Flush includes any pending samples in the digest.
func (dig *Audio) Flush() {
	if dig.bufferCt == audioBufferStart {
		return
	}
	dig.digest = sha1.Sum(dig.buffer[:dig.bufferCt])
	copy(dig.buffer, dig.digest[:])
	dig.bufferCt = audioBufferStart
}
