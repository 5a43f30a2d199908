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

// Package geometry maps emulated display coordinates to host window
// coordinates.
//
// There are several coordinate systems in use:
//
//   - hardware coordinates, in lores pixels, as used by the display window
//     registers
//   - window coordinates, in the resolution of the host window. The left most
//     window coordinate that is visible is VisibleLeft and not zero
//   - native coordinates, which are window coordinates with the origin at
//     the top left corner of the host window
//
// Vertically, a virtual scanline is mapped to a host row with the
// AmigaToAspect table. The NativeToAmiga table performs the reverse
// mapping.
package geometry

import (
	"fmt"

	"github.com/jetsetilly/denise/hardware/specification"
)

// Centering mode for horizontal and vertical centering.
type Centering int

// List of valid Centering values.
const (
	CenterOff Centering = iota
	CenterFixed
	CenterSmart
)

func (c Centering) String() string {
	switch c {
	case CenterOff:
		return "off"
	case CenterFixed:
		return "fixed"
	case CenterSmart:
		return "smart"
	}
	return fmt.Sprintf("unknown centering (%d)", int(c))
}

// Config is the information required to build a Geometry.
type Config struct {
	// size of the host buffer in pixels
	Width  int
	Height int

	// if Lores is true then one window pixel is one lores pixel. otherwise
	// one window pixel is one hires pixel
	Lores bool

	XCenter Centering
	YCenter Centering

	CorrectAspect bool
	LineDbl       bool

	Spec specification.Spec
}

// values of minDIWStart and maxDIWStop after a reset
const (
	noDIWStart = 10000
	noDIWStop  = 0
)

// Geometry of the current frame.
type Geometry struct {
	cfg Config

	// zero if window coordinates are lores and one if they are hires
	LoresShift int

	// the visible part of the window, in window coordinates
	VisibleLeft  int
	VisibleRight int

	// the first virtual scanline to be displayed, before and after line
	// doubling is applied
	YAdjust     int
	YAdjustReal int

	// the number of virtual scanlines that can be displayed in this frame,
	// after line doubling is applied
	MaxYPos int

	// the first virtual scanline that can ever be displayed, after line
	// doubling is applied. used as the origin of AmigaToAspect
	MinYPos int

	// virtual scanline to host row. a value of -1 indicates that the virtual
	// scanline is not displayed
	AmigaToAspect []int

	// host row to virtual scanline. a value of -1 indicates that the row has
	// no associated scanline
	NativeToAmiga []int

	// the number of virtual scanlines, before line doubling, that fit into the
	// host buffer
	maxDrawnAmigaLine int

	// accumulated display window extents for this frame
	minDIWStart int
	maxDIWStop  int

	// first and last scanlines that contained bitplane data this frame
	firstDrawnLine int
	lastDrawnLine  int
}

// NewGeometry is the preferred method of initialisation for the Geometry
// type.
func NewGeometry(cfg Config) *Geometry {
	g := &Geometry{}
	g.Configure(cfg)
	g.minDIWStart = noDIWStart
	g.maxDIWStop = noDIWStop
	g.firstDrawnLine = -1
	g.lastDrawnLine = -1
	g.VisibleLeft = max(0, g.MaxDIWLastWord()-g.cfg.Width)
	g.VisibleRight = min(g.VisibleLeft+g.cfg.Width, g.MaxDIWLastWord())
	g.YAdjust = cfg.Spec.MinFirstLine
	g.YAdjustReal = g.YAdjust << g.lineDblShift()
	g.MaxYPos = (cfg.Spec.MaxVPos - g.YAdjust) << g.lineDblShift()
	return g
}

func (g *Geometry) String() string {
	return fmt.Sprintf("visible: %d-%d, y adjust: %d, max y: %d", g.VisibleLeft, g.VisibleRight, g.YAdjust, g.MaxYPos)
}

// Config returns the current configuration.
func (g *Geometry) Config() Config {
	return g.cfg
}

// Configure changes the configuration and rebuilds the aspect maps.
func (g *Geometry) Configure(cfg Config) {
	g.cfg = cfg
	if cfg.Lores {
		g.LoresShift = 0
	} else {
		g.LoresShift = 1
	}
	g.InitAspectMaps()
}

func (g *Geometry) lineDblShift() int {
	if g.cfg.LineDbl {
		return 1
	}
	return 0
}

// HWToWindowX converts a horizontal hardware coordinate to a window
// coordinate.
func (g *Geometry) HWToWindowX(x int) int {
	return (x - specification.DisplayLeftShift) << g.LoresShift
}

// MaxDIWLastWord is the right most window coordinate that the display window
// can reach.
func (g *Geometry) MaxDIWLastWord() int {
	return (specification.MaxHPos*2 - specification.DisplayLeftShift + specification.DIWDDFOffset - 1) << g.LoresShift
}

// ResShiftFromWindow converts a distance in window pixels to a distance in
// playfield pixels, for a playfield with the given shift between the window
// resolution and the playfield resolution.
func ResShiftFromWindow(x int, resShift int) int {
	if resShift >= 0 {
		return x >> resShift
	}
	return x << -resShift
}

// NativeToAmigaX converts a horizontal native coordinate to a hires hardware
// coordinate.
func (g *Geometry) NativeToAmigaX(x int) int {
	x += g.VisibleLeft
	x <<= 1 - g.LoresShift
	return x + 2*specification.DisplayLeftShift - 2*specification.DIWDDFOffset
}

// NativeToAmigaY converts a host row to a scanline. Returns -1 if the row has
// no associated scanline.
func (g *Geometry) NativeToAmigaY(y int) int {
	if y < 0 || y >= len(g.NativeToAmiga) || g.NativeToAmiga[y] == -1 {
		return -1
	}
	return g.NativeToAmiga[y] + g.YAdjust - g.cfg.Spec.MinFirstLine
}

// RecordDIW records the horizontal extent of the display window of a single
// scanline, in window coordinates.
func (g *Geometry) RecordDIW(first, last int) {
	g.maxDIWStop = max(g.maxDIWStop, last)
	g.minDIWStart = min(g.minDIWStart, first)
}

// RecordDrawnLine records that a scanline contained bitplane data.
func (g *Geometry) RecordDrawnLine(vpos int) {
	if g.firstDrawnLine == -1 || vpos < g.firstDrawnLine {
		g.firstDrawnLine = vpos
	}
	g.lastDrawnLine = max(g.lastDrawnLine, vpos)
}

// CenterImage calculates the visible part of the window and the vertical
// adjustment for the next frame from the information recorded during the
// current frame. The recorded information is reset.
//
// Returns true if the horizontal or vertical adjustment has changed.
func (g *Geometry) CenterImage() bool {
	prevX := g.VisibleLeft
	prevY := g.YAdjust
	width := g.cfg.Width

	if g.firstDrawnLine == -1 {
		g.firstDrawnLine = g.cfg.Spec.MinFirstLine
	}
	if g.firstDrawnLine > g.lastDrawnLine {
		g.lastDrawnLine = g.firstDrawnLine
	}

	// horizontal
	switch {
	case g.cfg.XCenter == CenterOff:
		g.VisibleLeft = g.MaxDIWLastWord() - width

	case g.maxDIWStop < g.minDIWStart:
		// no display window this frame. keep the previous value

	default:
		if g.cfg.XCenter == CenterSmart && g.maxDIWStop-g.minDIWStart < width {
			g.VisibleLeft = ((g.maxDIWStop-g.minDIWStart-width)/2 + g.minDIWStart) &^ 1
		} else {
			g.VisibleLeft = g.maxDIWStop - width
		}

		// keep the previous value if it is good enough
		if g.cfg.XCenter == CenterSmart {
			if g.VisibleLeft < prevX && prevX < g.minDIWStart {
				g.VisibleLeft = prevX
			}
		}
	}

	if g.VisibleLeft > g.MaxDIWLastWord() {
		g.VisibleLeft = g.MaxDIWLastWord() - width
	}
	g.VisibleLeft = max(g.VisibleLeft, 0)
	g.VisibleRight = min(g.VisibleLeft+width, g.MaxDIWLastWord())

	// vertical
	g.YAdjust = g.cfg.Spec.MinFirstLine
	if g.cfg.YCenter != CenterOff {
		first := g.firstDrawnLine
		last := g.lastDrawnLine

		if g.cfg.YCenter == CenterSmart && last-first < g.maxDrawnAmigaLine {
			g.YAdjust = (last-first-g.maxDrawnAmigaLine)/2 + first
		} else {
			g.YAdjust = first
		}

		// keep the previous value if it is good enough
		if g.cfg.YCenter == CenterSmart {
			if g.YAdjust != prevY && prevY <= first && prevY+g.maxDrawnAmigaLine > last {
				g.YAdjust = prevY
			}
		}

		if g.YAdjust+g.maxDrawnAmigaLine > g.cfg.Spec.MaxVPos {
			g.YAdjust = g.cfg.Spec.MaxVPos - g.maxDrawnAmigaLine
		}
		g.YAdjust = max(g.YAdjust, g.cfg.Spec.MinFirstLine)
	}

	g.YAdjustReal = g.YAdjust << g.lineDblShift()
	g.MaxYPos = (g.cfg.Spec.MaxVPos - g.YAdjust) << g.lineDblShift()

	g.maxDIWStop = noDIWStop
	g.minDIWStart = noDIWStart
	g.firstDrawnLine = -1
	g.lastDrawnLine = -1

	return prevX != g.VisibleLeft || prevY != g.YAdjust
}

// InitAspectMaps builds the AmigaToAspect and NativeToAmiga tables.
//
// If aspect correction is enabled the number of host rows for every virtual
// scanline is:
//
//	height * (lores ? 320 : 640) / (linedbl ? 512 : 256) / width
//
// When that ratio is less than one, some virtual scanlines will not be
// displayed. The second line of a doubled pair is dropped in preference to
// the first.
func (g *Geometry) InitAspectMaps() {
	height := g.cfg.Height
	dbl := g.lineDblShift()

	// ratio of host rows to virtual scanlines
	num, den := 1, 1
	if g.cfg.CorrectAspect && g.cfg.Width > 0 {
		num = height
		if g.cfg.Lores {
			num *= 320
		} else {
			num *= 640
		}
		den = g.cfg.Width
		if g.cfg.LineDbl {
			den *= 512
		} else {
			den *= 256
		}
	}

	g.AmigaToAspect = make([]int, specification.LineCount())
	g.NativeToAmiga = make([]int, height)
	for i := range g.AmigaToAspect {
		g.AmigaToAspect[i] = -1
	}
	for i := range g.NativeToAmiga {
		g.NativeToAmiga[i] = -1
	}

	maxl := (g.cfg.Spec.MaxVPos + 1) << dbl
	g.MinYPos = g.cfg.Spec.MinFirstLine << dbl
	g.maxDrawnAmigaLine = -1

	for i := g.MinYPos; i < maxl; i++ {
		v := (i - g.MinYPos) * num / den
		if v >= height {
			if g.maxDrawnAmigaLine == -1 {
				g.maxDrawnAmigaLine = i - g.MinYPos
			}
			continue
		}
		g.AmigaToAspect[i] = v
	}
	if g.maxDrawnAmigaLine == -1 {
		g.maxDrawnAmigaLine = maxl - g.MinYPos
	}
	g.maxDrawnAmigaLine >>= dbl

	// some lines must be omitted if there are fewer rows than lines
	if num < den {
		m := g.AmigaToAspect
		for i := maxl - 1; i > g.MinYPos; i-- {
			if m[i] != m[i-1] {
				continue
			}
			if g.cfg.LineDbl && i&1 == 0 && m[i+1] != -1 {
				m[i] = m[i+1]
				m[i+1] = -1
			} else {
				m[i] = -1
			}
		}
	}

	for i := maxl - 1; i >= g.MinYPos; i-- {
		if g.AmigaToAspect[i] == -1 {
			continue
		}
		for j := g.AmigaToAspect[i]; j < height && g.NativeToAmiga[j] == -1; j++ {
			g.NativeToAmiga[j] = i >> dbl
		}
	}
}
