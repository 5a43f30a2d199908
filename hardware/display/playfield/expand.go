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

import "encoding/binary"

// expander converts n bytes of each bitplane into n*8 pixels.
type expander func(dst []byte, planes *[8][]byte, n int)

// one expander for every bitplane depth
var expanders [9]expander

func init() {
	expanders[0] = func(dst []byte, _ *[8][]byte, n int) {
		clear(dst[:n*8])
	}
	for depth := 1; depth <= 8; depth++ {
		expanders[depth] = func(dst []byte, planes *[8][]byte, n int) {
			for i := range n {
				var x uint64
				for p := range depth {
					x |= uint64(planes[p][i]) << (p * 8)
				}
				binary.BigEndian.PutUint64(dst[i*8:], transpose(x))
			}
		}
	}
}

// transpose an 8x8 matrix of bits. The most significant byte of the result is
// formed from the most significant bit of each byte of x, and so on.
//
// With plane zero in the least significant byte of x, the most significant
// byte of the result is the left most pixel.
func transpose(x uint64) uint64 {
	t := (x ^ (x >> 7)) & 0x00aa00aa00aa00aa
	x = x ^ t ^ (t << 7)
	t = (x ^ (x >> 14)) & 0x0000cccc0000cccc
	x = x ^ t ^ (t << 14)
	t = (x ^ (x >> 28)) & 0x00000000f0f0f0f0
	x = x ^ t ^ (t << 28)
	return x
}

// Expand converts planar data into one byte per pixel. The number of bytes of
// each plane to use is n. dst must be at least n*8 bytes long.
func Expand(dst []byte, planes *[8][]byte, depth int, n int) {
	expanders[depth](dst, planes, n)
}
