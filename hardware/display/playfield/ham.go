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

package playfield

import "github.com/jetsetilly/denise/hardware/display/decision"

// hold-and-modify operations, selected by bits 4 and 5 of the pixel
const (
	hamLoad   = 0x00
	hamBlue   = 0x10
	hamRed    = 0x20
	hamGreen  = 0x30
	hamOpMask = 0x30
)

// DecodeHAM decodes hold-and-modify pixels. The colour of each pixel depends
// on the colour of the pixel before it, so the pixels must be decoded in
// order. The colour of the pixel before the first pixel in src is last.
//
// The 12bit colour of each pixel is written to dst, which must be at least as
// long as src. Returns the colour of the final pixel.
func DecodeHAM(dst []uint16, src []byte, regs *decision.ColorTable, last uint16) uint16 {
	for i, pv := range src {
		v := uint16(pv & 0x0f)
		switch pv & hamOpMask {
		case hamLoad:
			last = regs[v]
		case hamBlue:
			last = last&0xff0 | v
		case hamRed:
			last = last&0x0ff | v<<8
		case hamGreen:
			last = last&0xf0f | v<<4
		}
		dst[i] = last
	}
	return last
}
