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

// Package specification contains the definitions of the PAL and NTSC video
// standards supported by the emulation, along with the horizontal constants
// that are common to both.
//
// Horizontal beam positions are measured in colour clocks. Display window
// positions are measured in lores pixels, of which there are two for every
// colour clock.
package specification

// SpecList is the list of specifications that the emulation may adopt.
var SpecList = []string{"PAL", "NTSC"}

// Horizontal constants common to both video standards.
const (
	// the last colour clock of a scanline
	MaxHPos = 227

	// the horizontal position that corresponds to the left most pixel of the
	// host window, before any centering is applied
	DisplayLeftShift = 0x40

	// the offset between the start of bitplane data fetch and the first
	// pixel of the bitplane data being displayed
	DIWDDFOffset = 9

	// the size of the pixel expansion buffer for a single line. big enough
	// for a superhires line and the margins either side of it
	MaxPixelsPerLine = 1760
)

// Spec is used to define the two video standards.
type Spec struct {
	ID string

	// the last scanline of a frame. a long frame has one extra line
	MaxVPos int

	// the first scanline that can contain visible data
	MinFirstLine int

	// the number of frames per second required by the specification
	RefreshRate float32

	// colour clock frequency in Hz
	ColorClock float64
}

// SpecPAL is the specification for PAL video.
var SpecPAL = Spec{
	ID:           "PAL",
	MaxVPos:      312,
	MinFirstLine: 29,
	RefreshRate:  50.0,
	ColorClock:   3546895,
}

// SpecNTSC is the specification for NTSC video.
var SpecNTSC = Spec{
	ID:           "NTSC",
	MaxVPos:      262,
	MinFirstLine: 21,
	RefreshRate:  60.0,
	ColorClock:   3579545,
}

// MaxVPos is the largest value for Spec.MaxVPos of any specification. Tables
// that are indexed by scanline should be sized with this value.
const MaxVPos = 312

// LineCount returns the number of entries required by a table holding one
// entry for every scanline of an interlaced frame, plus one spare entry so
// that the line after the last line can always be addressed.
func LineCount() int {
	return (MaxVPos+1)*2 + 1
}

// CyclesPerLine returns the number of colour clocks in a single scanline.
func (spec Spec) CyclesPerLine() uint64 {
	return MaxHPos + 1
}

// LinesPerFrame returns the number of scanlines in a short frame.
func (spec Spec) LinesPerFrame() int {
	return spec.MaxVPos
}

// Lookup returns the specification with the matching ID. Returns false if the
// ID is not recognised.
func Lookup(id string) (Spec, bool) {
	switch id {
	case SpecPAL.ID:
		return SpecPAL, true
	case SpecNTSC.ID:
		return SpecNTSC, true
	}
	return Spec{}, false
}
