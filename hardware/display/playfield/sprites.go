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

// colour register offset for sprite pixels. in dual playfield mode the offset
// has bit 7 set so that the dual playfield tables resolve the sprite colour
const (
	spriteColors       = 16
	spriteColorsDualPF = 128 + spriteColors
)

// one bit for each sprite with a non-zero pixel.
func spritePresence(v uint16) uint8 {
	var p uint8
	for s := range 8 {
		if (v>>(s*2))&3 != 0 {
			p |= 1 << s
		}
	}
	return p
}

// place sprite pixels over the playfield pixels, or over the decoded colours
// in hold-and-modify mode. sprite pixels behind a non-zero playfield pixel are
// not drawn.
func (c *Compositor) drawSprites(e *decision.SpriteEntry) {
	lookup := &tables.SinglePFMS
	if c.dualpf {
		if c.dualpfpri {
			lookup = &tables.DualPFMS2
		} else {
			lookup = &tables.DualPFMS1
		}
	}

	width := 1 << c.bplres

	for pos := e.Pos; pos < e.Max; pos++ {
		i := pos - e.Pos
		if i >= len(e.Pixels) {
			break
		}

		v := e.Pixels[i]
		if v == 0 {
			continue
		}
		c.collisions |= tables.Collision[spritePresence(v)]

		w := (pos << c.bplres) + c.pixelsOffset
		if w < 0 || w+width > len(c.apixels) {
			continue
		}

		maskShift := lookup[c.apixels[w]]
		v &^= uint16(c.spriteMask >> (maskShift * 2))
		if v == 0 {
			continue
		}

		// the sprite number of the first sprite pair with a visible pixel
		var offs uint8
		if v&0xff == 0 {
			offs = 4 + tables.SpriteOffs[v>>8]
		} else {
			offs = tables.SpriteOffs[v&0xff]
		}
		v = (v >> (offs * 2)) & 15

		var col int
		if e.HasAttached && i < len(e.Attach) && e.Attach[i]&(1<<offs) != 0 {
			col = int(v)
		} else {
			// the even sprite has priority over the odd sprite
			lo := v & 3
			hi := (v & (lo - 1)) >> 2
			col = int(lo|hi) + int(offs)*2
		}

		if c.ham {
			rgb := c.regs[(col+spriteColors)&(decision.NumColors-1)]
			for k := range width {
				c.hamBuf[w+k] = rgb
			}
			continue
		}

		if c.dualpf {
			col += spriteColorsDualPF
		} else {
			col += spriteColors
		}
		for k := range width {
			c.apixels[w+k] = uint8(col)
		}
	}
}
