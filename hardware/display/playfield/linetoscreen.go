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

import "github.com/jetsetilly/denise/hardware/display/vidbuf"

// lineToScreen converts pixels in apixels, starting at spix, to the pixel
// format of the host and writes them to the row. dpix and stop are window
// coordinates. Returns the next value of spix.
type lineToScreen func(c *Compositor, spix int, dpix int, stop int) int

// indexed by resolution shift plus one and by pixel depth index:
//
//	shift -1: the playfield is twice the resolution of the window. every
//	          other pixel is dropped
//	shift  0: the playfield and window are the same resolution
//	shift  1: the window is twice the resolution of the playfield. every
//	          pixel is doubled
var lineToScreens [3][3]lineToScreen

func init() {
	for d, w := range vidbuf.Writers {
		lineToScreens[0][d] = newLineToScreen(2, false, w)
		lineToScreens[1][d] = newLineToScreen(1, false, w)
		lineToScreens[2][d] = newLineToScreen(1, true, w)
	}
}

func newLineToScreen(step int, double bool, write vidbuf.Writer) lineToScreen {
	return func(c *Compositor, spix int, dpix int, stop int) int {
		row := c.row
		x := dpix - c.rowBase
		end := stop - c.rowBase

		put := func(v uint32) {
			write(row, x, v)
			x++
			if double && x < end {
				write(row, x, v)
				x++
			}
		}

		switch {
		case c.ham:
			for x < end {
				put(c.palette.XColor(c.hamBuf[spix]))
				spix += step
			}

		case c.dualpf:
			lookup := &tables.DualPFInd1
			if c.dualpfpri {
				lookup = &tables.DualPFInd2
			}
			for x < end {
				put(c.acolors[lookup[c.apixels[spix]]])
				spix += step
			}

		case c.ehb:
			for x < end {
				p := c.apixels[spix]
				if p >= 32 {
					put(c.palette.XColor((c.regs[p-32] >> 1) & 0x777))
				} else {
					put(c.acolors[p])
				}
				spix += step
			}

		default:
			for x < end {
				put(c.acolors[c.apixels[spix]])
				spix += step
			}
		}

		return spix
	}
}
