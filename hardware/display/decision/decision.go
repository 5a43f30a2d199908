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

// Package decision defines the record that the hardware emulation produces for
// every scanline and that is used to draw the scanline at the end of the frame.
//
// The emulation of the chipset decides, as the beam passes, what a scanline
// will look like: the position of the display window, the bitplane data that
// was fetched, the colour registers at the start of the line and any changes
// to them made during the line, and the sprite pixels. Drawing happens later,
// once the frame is complete.
package decision

import (
	"fmt"

	"github.com/jetsetilly/denise/hardware/specification"
)

// Resolution of the bitplane data.
type Resolution int

// List of valid Resolution values. The value of a resolution is the number of
// pixels, as a power of two, for every lores pixel.
const (
	Lores      Resolution = 0
	Hires      Resolution = 1
	SuperHires Resolution = 2
)

func (r Resolution) String() string {
	switch r {
	case Lores:
		return "lores"
	case Hires:
		return "hires"
	case SuperHires:
		return "superhires"
	}
	return fmt.Sprintf("unknown resolution (%d)", int(r))
}

// bits in BPLCON0 and BPLCON2
const (
	bplcon0Hires      = 0x8000
	bplcon0Planes     = 0x7000
	bplcon0HAM        = 0x0800
	bplcon0DualPF     = 0x0400
	bplcon0SuperHires = 0x0040
	bplcon2PF2Pri     = 0x0040
)

// NumColors is the number of colour registers.
const NumColors = 32

// ColorTable is a copy of the colour registers. Each entry is a 12bit RGB
// value.
type ColorTable [NumColors]uint16

// ColorChange is a write to a colour register during a scanline.
type ColorChange struct {
	// horizontal position of the write, in colour clocks
	LinePos int

	// the register being written to. a value of -1 indicates that the change
	// has no effect on the colour registers
	RegNo int

	Value uint16
}

func (c ColorChange) String() string {
	return fmt.Sprintf("COLOR%02d=%03x @ %d", c.RegNo, c.Value, c.LinePos)
}

// SpriteEntry is a horizontal run of sprite pixels.
type SpriteEntry struct {
	// first and last (exclusive) horizontal position of the run, in lores
	// pixels, relative to specification.DisplayLeftShift
	Pos int
	Max int

	// sprite pixels for every position of the run. each entry contains two
	// bits for each of the eight sprites, with sprite zero in the lowest bits
	Pixels []uint16

	// attachment bits for every position of the run. bit n is set if sprite n
	// is attached to sprite n+1
	Attach []uint8

	// if HasAttached is false then the Attach field is ignored
	HasAttached bool
}

// Decision describes a single scanline.
type Decision struct {
	// left and right edge of bitplane data fetch, in colour clocks. a value
	// of -1 for PlfLeft indicates that no data was fetched and the line is
	// all border
	PlfLeft  int
	PlfRight int

	// horizontal extent of the display window, in hardware coordinates
	DIWFirst int
	DIWLast  int

	BplCon0 uint16
	BplCon2 uint16

	// index of the colour table in the Store for the state of the colour
	// registers at the start of the line
	ColorTable int

	// colour register writes, in order of increasing LinePos
	ColorChanges []ColorChange

	Sprites []SpriteEntry

	// bitplane data fetched between PlfLeft and PlfRight. each plane must be
	// the same length. only the number of planes indicated by BplCon0 are
	// used
	Bitplanes [8][]byte
}

func (d *Decision) String() string {
	if d.Border() {
		return fmt.Sprintf("border, %d colour changes", len(d.ColorChanges))
	}
	return fmt.Sprintf("plf %d-%d, diw %d-%d, %s %d planes, %d colour changes, %d sprites",
		d.PlfLeft, d.PlfRight, d.DIWFirst, d.DIWLast, d.Res(), d.Planes(),
		len(d.ColorChanges), len(d.Sprites))
}

// Border returns true if the line has no bitplane data.
func (d *Decision) Border() bool {
	return d.PlfLeft == -1
}

// Planes returns the number of bitplanes.
func (d *Decision) Planes() int {
	return int(d.BplCon0&bplcon0Planes) >> 12
}

// Res returns the resolution of the bitplane data.
func (d *Decision) Res() Resolution {
	if d.BplCon0&bplcon0Hires == bplcon0Hires {
		return Hires
	}
	if d.BplCon0&bplcon0SuperHires == bplcon0SuperHires {
		return SuperHires
	}
	return Lores
}

// HAM returns true if hold-and-modify is enabled.
func (d *Decision) HAM() bool {
	return d.BplCon0&bplcon0HAM == bplcon0HAM
}

// DualPlayfield returns true if the bitplanes form two playfields.
func (d *Decision) DualPlayfield() bool {
	return d.BplCon0&bplcon0DualPF == bplcon0DualPF
}

// DualPlayfieldPri returns true if playfield two has priority over playfield
// one.
func (d *Decision) DualPlayfieldPri() bool {
	return d.BplCon2&bplcon2PF2Pri == bplcon2PF2Pri
}

// EHB returns true if extra-half-brite is enabled. That is, six lores planes
// without HAM or dual playfield.
func (d *Decision) EHB() bool {
	return d.BplCon0&0xfc00 == 0x6000
}

// PlayfieldPriorities returns the priority of each playfield relative to the
// sprites.
func (d *Decision) PlayfieldPriorities() (int, int) {
	return int(d.BplCon2 & 7), int((d.BplCon2 >> 3) & 7)
}

// SpriteMask returns the mask used to hide sprite pixels that are behind a
// playfield. The lower 16 bits are used for playfield one and the upper 16 bits
// for playfield two.
func (d *Decision) SpriteMask() uint32 {
	plf1, plf2 := d.PlayfieldPriorities()
	return (0xffff0000 << (4 * plf2)) | ((0xffff << (4 * plf1)) & 0xffff)
}

// Store of decisions and colour tables for the frame.
type Store struct {
	Lines  []Decision
	Colors []ColorTable
}

// NewStore is the preferred method of initialisation for the Store type.
func NewStore() *Store {
	return &Store{
		Lines:  make([]Decision, specification.LineCount()),
		Colors: make([]ColorTable, 0, specification.LineCount()),
	}
}

// AddColorTable adds a copy of the colour registers and returns the index
// that a Decision should use to refer to it.
func (s *Store) AddColorTable(t ColorTable) int {
	s.Colors = append(s.Colors, t)
	return len(s.Colors) - 1
}

// NewFrame forgets the colour tables of the previous frame. Decisions are
// left in place because lines that are remembered from the previous frame may
// still refer to them.
func (s *Store) NewFrame() {
	s.Colors = s.Colors[:0]
}
