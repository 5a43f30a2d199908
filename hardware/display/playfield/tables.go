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

// Tables are the per-pixel lookup tables. Each table is indexed by the value
// of a pixel after planar expansion.
type Tables struct {
	// playfield resolution for dual playfield mode. the index is the colour
	// register of the pixel that is visible. DualPFInd1 is used when
	// playfield one has priority and DualPFInd2 when playfield two has
	// priority. sprite colours, which have bit 7 set, resolve to the sprite
	// colour register
	DualPFInd1 [256]uint8
	DualPFInd2 [256]uint8

	// amount by which the sprite mask should be shifted (twice) so that
	// sprites behind the visible playfield are hidden. DualPFMS1 and DualPFMS2
	// are used in dual playfield mode, depending on priority. SinglePFMS is
	// used otherwise
	DualPFMS1  [256]uint8
	DualPFMS2  [256]uint8
	SinglePFMS [256]uint8

	// sprite number of the first sprite pair with a non-zero pixel. indexed
	// by the lower or upper byte of the sprite pixel data
	SpriteOffs [256]uint8

	// sprite to sprite collision bits. indexed by a value with one bit set for
	// each sprite with a non-zero pixel. the bits correspond to bits 9 to 14
	// of the CLXDAT register
	Collision [256]uint16
}

// the tables are the same for every compositor
var tables = newTables()

func newTables() *Tables {
	t := &Tables{}

	for i := range 256 {
		var plane1, plane2 int
		if i&1 != 0 {
			plane1 |= 1
		}
		if i&2 != 0 {
			plane2 |= 1
		}
		if i&4 != 0 {
			plane1 |= 2
		}
		if i&8 != 0 {
			plane2 |= 2
		}
		if i&16 != 0 {
			plane1 |= 4
		}
		if i&32 != 0 {
			plane2 |= 4
		}
		if i&64 != 0 {
			plane1 |= 8
		}
		if i&128 != 0 {
			plane2 |= 8
		}

		switch {
		case plane1 == 0 && plane2 == 0:
			t.DualPFMS1[i] = 16
			t.DualPFMS2[i] = 16
		case plane1 == 0:
			t.DualPFMS1[i] = 8
			t.DualPFMS2[i] = 8
		case plane2 == 0:
			t.DualPFMS1[i] = 0
			t.DualPFMS2[i] = 0
		default:
			t.DualPFMS1[i] = 0
			t.DualPFMS2[i] = 8
		}

		if i == 0 {
			t.SinglePFMS[i] = 16
		} else {
			t.SinglePFMS[i] = 8
		}

		if plane2 > 0 {
			plane2 += 8
		}

		if i >= 128 {
			t.DualPFInd1[i] = uint8(i & 0x7f)
			t.DualPFInd2[i] = uint8(i & 0x7f)
		} else {
			if plane1 == 0 {
				t.DualPFInd1[i] = uint8(plane2)
			} else {
				t.DualPFInd1[i] = uint8(plane1)
			}
			if plane2 == 0 {
				t.DualPFInd2[i] = uint8(plane1)
			} else {
				t.DualPFInd2[i] = uint8(plane2)
			}
		}

		if i&15 != 0 {
			t.SpriteOffs[i] = 0
		} else {
			t.SpriteOffs[i] = 2
		}

		var clx uint16
		if i&3 != 0 && i&12 != 0 {
			clx |= 1 << 9
		}
		if i&3 != 0 && i&48 != 0 {
			clx |= 1 << 10
		}
		if i&3 != 0 && i&192 != 0 {
			clx |= 1 << 11
		}
		if i&12 != 0 && i&48 != 0 {
			clx |= 1 << 12
		}
		if i&12 != 0 && i&192 != 0 {
			clx |= 1 << 13
		}
		if i&48 != 0 && i&192 != 0 {
			clx |= 1 << 14
		}
		t.Collision[i] = clx
	}

	return t
}

// LookupTables returns the lookup tables used by every compositor.
func LookupTables() *Tables {
	return tables
}
