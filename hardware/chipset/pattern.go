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

package chipset

import (
	"fmt"

	"github.com/jetsetilly/denise/hardware/display/decision"
)

// Pattern selects the bitplane mode used by the test pattern.
type Pattern int

// List of valid Pattern values.
const (
	Normal Pattern = iota
	ExtraHalfBrite
	DualPlayfield
	HoldAndModify
)

// PatternList is the list of pattern names accepted by ParsePattern().
var PatternList = []string{"NORMAL", "EHB", "DUALPF", "HAM"}

func (p Pattern) String() string {
	if p >= 0 && int(p) < len(PatternList) {
		return PatternList[p]
	}
	return fmt.Sprintf("unknown pattern (%d)", int(p))
}

// ParsePattern returns the Pattern with the name. Returns false if the name
// is not recognised.
func ParsePattern(name string) (Pattern, bool) {
	for i, n := range PatternList {
		if n == name {
			return Pattern(i), true
		}
	}
	return Normal, false
}

// value of BPLCON0 for each pattern
func (p Pattern) bplcon0() uint16 {
	switch p {
	case ExtraHalfBrite:
		return 0x6200
	case DualPlayfield:
		return 0x6600
	case HoldAndModify:
		return 0x6a00
	}
	return 0x4200
}

// the colour of the pixel at x on scanline y.
func (p Pattern) pixel(x int, y int, scroll int) uint8 {
	sx := x + scroll
	switch p {
	case ExtraHalfBrite:
		return uint8((sx>>3)+(y>>4)) & 63

	case DualPlayfield:
		// playfield one in the odd planes, playfield two in the even planes
		pf1 := uint8(sx>>4) & 7
		var pf2 uint8
		if (y>>3)&1 == 1 {
			pf2 = uint8(x>>5) & 7
		}
		var v uint8
		for b := range 3 {
			v |= ((pf1 >> b) & 1) << (b * 2)
			v |= ((pf2 >> b) & 1) << (b*2 + 1)
		}
		return v

	case HoldAndModify:
		// a palette colour at the start of every run, then modify one
		// component for the rest of the run
		if sx&15 == 0 {
			return uint8(sx>>4) & 15
		}
		op := uint8(1 + (y>>4)%3)
		return op<<4 | uint8(sx&15)
	}

	return uint8((sx>>4)+(y>>4)) & 15
}

// fill the planes with the pattern for scanline y. every plane must be the
// same length.
func (p Pattern) fetch(planes *[8][]byte, depth int, y int, scroll int) {
	for i := range planes[0] {
		var bits [8]byte
		for b := range 8 {
			v := p.pixel(i*8+b, y, scroll)
			for pl := range depth {
				if v&(1<<pl) != 0 {
					bits[pl] |= 0x80 >> b
				}
			}
		}
		for pl := range depth {
			planes[pl][i] = bits[pl]
		}
	}
}

// the default colour registers
var palette = decision.ColorTable{
	0x000, 0xf00, 0xf80, 0xff0, 0x8f0, 0x0f0, 0x0f8, 0x0ff,
	0x08f, 0x00f, 0x80f, 0xf0f, 0xf08, 0x888, 0xccc, 0xfff,
	0x000, 0xfff, 0xf44, 0x44f, 0x000, 0xfa0, 0x0a0, 0xa0f,
	0x000, 0x0ff, 0xff0, 0xf0f, 0x000, 0x444, 0x888, 0xbbb,
}

// 16x16 sprite. two bits per pixel, most significant pixel first
var spriteImage = func() [16]uint32 {
	var img [16]uint32
	for y := range img {
		for x := range 16 {
			var v uint32
			switch {
			case y == 0 || y == 15 || x == 0 || x == 15:
				v = 1
			case y >= 4 && y < 12 && x >= 4 && x < 12:
				v = 3
			default:
				v = 2
			}
			img[y] |= v << ((15 - x) * 2)
		}
	}
	return img
}()
