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

// Package playfield draws a single scanline into the host display buffer.
//
// Drawing a line is a pipeline of several steps:
//
//   - the bitplane data is expanded into one byte per pixel
//   - the colour registers for the start of the line are loaded
//   - in hold-and-modify mode, the pixels are decoded into a buffer of 12bit
//     colours
//   - sprite pixels are placed over the playfield pixels
//   - the pixels are converted to the pixel format of the host and written to
//     the host buffer. the part of the line outside the display window is
//     filled with the background colour
//
// Changes to the colour registers during the line take effect at the
// horizontal position at which they were made.
//
// A line that is doubled is drawn only once and then copied to the row below.
package playfield

import (
	"github.com/jetsetilly/denise/curated"
	"github.com/jetsetilly/denise/hardware/display/decision"
	"github.com/jetsetilly/denise/hardware/display/geometry"
	"github.com/jetsetilly/denise/hardware/display/linestate"
	"github.com/jetsetilly/denise/hardware/display/vidbuf"
	"github.com/jetsetilly/denise/hardware/specification"
	"github.com/jetsetilly/denise/logger"
)

// UnsupportedShift is the pattern used when the difference between the
// resolution of the window and the resolution of the playfield can not be
// drawn.
const UnsupportedShift = "playfield: unsupported resolution shift (%d)"

// Output is the destination of the compositor.
type Output interface {
	Buffer() *vidbuf.Buffer

	// the row is complete
	FlushLine(row int)
}

// how the line is being drawn
type lineMem int

const (
	// directly into the row of the host buffer
	memBuf lineMem = iota

	// into the line memory of the host buffer
	memLine

	// into the emergency memory of the host buffer and then copied
	memEmerg
)

// the apixels buffer is large enough for pixels either side of the start of
// bitplane data
const apixelsLen = specification.MaxPixelsPerLine * 2

// Compositor draws scanlines.
type Compositor struct {
	lines *linestate.Table
	store *decision.Store
	geom  *geometry.Geometry
	out   Output

	palette *vidbuf.Palette
	depth   int
	write   vidbuf.Writer

	logPrevious  logger.Permission
	logBadColors logger.Permission

	// one byte per pixel. bitplane data starts at MaxPixelsPerLine
	apixels []byte

	// 12bit colour per pixel for hold-and-modify mode. indexed in the same way
	// as apixels
	hamBuf []uint16

	// colour registers and the pixel values for them
	regs    decision.ColorTable
	acolors [256]uint32

	// the index of the colour table that regs and acolors were loaded from. a
	// value of -1 means that they need to be loaded. if colorMatchFull is
	// false then regs has not been loaded
	colorMatch     int
	colorMatchFull bool

	// sprite to sprite collisions since the start of the frame
	collisions uint16

	// the line being drawn
	dec *decision.Decision

	bplres     int
	ham        bool
	dualpf     bool
	dualpfpri  bool
	ehb        bool
	spriteMask uint32

	// difference between the resolution of the window and the resolution of
	// the playfield
	resShift int

	// the part of the window that shows the playfield, in window coordinates
	playfieldStart int
	playfieldEnd   int

	nativeDDFLeft  int
	nativeDDFRight int

	// add to a lores sprite position (shifted by the resolution) to get the
	// index into apixels
	pixelsOffset int

	// the next pixel in apixels to be drawn
	srcPixel int

	// the next pixel to be decoded in hold-and-modify mode and the colour of
	// the previously decoded pixel
	hamPixel int
	hamLast  uint16

	// the destination of the line. index zero of the row is the window
	// coordinate rowBase
	row     []byte
	rowBase int
	draw    lineToScreen
}

// NewCompositor is the preferred method of initialisation for the Compositor
// type.
//
// Panics if the pixel depth of the output buffer is not supported.
func NewCompositor(lines *linestate.Table, store *decision.Store, geom *geometry.Geometry, out Output) *Compositor {
	c := &Compositor{
		lines:        lines,
		store:        store,
		geom:         geom,
		out:          out,
		logPrevious:  logger.Once(),
		logBadColors: logger.Once(),
		apixels:      make([]byte, apixelsLen),
		hamBuf:       make([]uint16, apixelsLen),
	}
	c.NewFrame()
	return c
}

// NewFrame must be called before the first line of a frame is drawn.
//
// Panics if the pixel depth of the output buffer is not supported.
func (c *Compositor) NewFrame() {
	c.colorMatch = -1
	c.collisions = 0

	pixBytes := c.out.Buffer().PixBytes
	if c.palette == nil || c.palette.PixBytes() != pixBytes {
		c.palette = vidbuf.NewPalette(pixBytes)
		c.depth = vidbuf.DepthIndex(pixBytes)
		c.write = vidbuf.Writers[c.depth]
	}
}

// Palette returns the palette for the current pixel depth.
func (c *Compositor) Palette() *vidbuf.Palette {
	return c.palette
}

// Collisions returns the sprite to sprite collisions that have been seen since
// the start of the frame. The bits correspond to bits 9 to 14 of the CLXDAT
// register.
func (c *Compositor) Collisions() uint16 {
	return c.collisions
}

// DrawLine draws the scanline into the host row gfxY. If the line is doubled
// then followY is the host row for the second line of the pair. A value of -1
// for followY means that the second line is not visible.
//
// Lines that have already been drawn, or that do not need to be drawn, are
// ignored.
func (c *Compositor) DrawLine(lineno int, gfxY int, followY int) {
	var border int
	var doDouble bool
	owner := lineno

	switch c.lines.Get(lineno) {
	case linestate.RememberedAsPrevious:
		logger.Logf(c.logPrevious, "playfield", "line %d is remembered as previous but was not drawn as previous", lineno)
		return

	case linestate.Black:
		c.lines.Set(lineno, linestate.RememberedAsBlack)
		border = 2

	case linestate.RememberedAsBlack, linestate.Done, linestate.DoneAsPrevious:
		return

	case linestate.AsPrevious:
		if lineno == 0 {
			return
		}
		owner = lineno - 1
		if c.store.Lines[owner].Border() {
			border = 1
		}
		c.lines.Set(lineno, linestate.DoneAsPrevious)

	case linestate.DecidedDouble:
		if followY != -1 {
			doDouble = true
			c.lines.Set(lineno+1, linestate.DoneAsPrevious)
		}
		fallthrough

	default:
		if c.store.Lines[lineno].Border() {
			border = 1
		}
		c.lines.Set(lineno, linestate.Done)
	}

	c.dec = &c.store.Lines[owner]
	buf := c.out.Buffer()

	var mem lineMem
	switch {
	case buf.LineMem != nil:
		mem = memLine
		c.row = buf.LineMem
	case doDouble && buf.EmergMem != nil && (border == 0 || (border != 1 && len(c.dec.ColorChanges) > 0)):
		mem = memEmerg
		c.row = buf.EmergMem
	default:
		mem = memBuf
		c.row = buf.Row(gfxY)
	}
	c.rowBase = c.geom.VisibleLeft

	switch border {
	case 0:
		c.expandBplCon()
		c.initLine()
		c.doLine()
		c.adjustColors(c.dec.ColorTable, c.ham || c.ehb)

		if c.ham {
			c.hamPixel = c.srcPixel
			c.hamLast = c.regs[0]
			if len(c.dec.ColorChanges) == 0 {
				c.decodeHAM(c.geom.VisibleLeft, c.geom.VisibleRight)
			} else {
				c.colorChanges(func(int, int) {}, c.decodeHAM)
				c.adjustColors(c.dec.ColorTable, true)
			}
		}

		for i := range c.dec.Sprites {
			c.drawSprites(&c.dec.Sprites[i])
		}

		c.colorChanges(c.fill, c.drawPlayfield)
		c.flush(buf, mem, gfxY, followY, doDouble)

	case 1:
		c.adjustColors(c.dec.ColorTable, false)

		if len(c.dec.ColorChanges) == 0 {
			c.fillLine()
			c.out.FlushLine(gfxY)
			if doDouble {
				if mem == memBuf {
					c.row = buf.Row(followY)
					c.fillLine()
				}

				// the host copies the line memory again for memLine
				c.out.FlushLine(followY)
			}
			return
		}

		c.playfieldStart = c.geom.VisibleRight
		c.playfieldEnd = c.geom.VisibleRight
		c.colorChanges(c.fill, c.fill)
		c.flush(buf, mem, gfxY, followY, doDouble)

	default:
		bg := c.acolors[0]
		c.acolors[0] = c.palette.XColor(0)
		c.fillLine()
		c.out.FlushLine(gfxY)
		c.acolors[0] = bg
	}
}

// copy the drawn line to its destinations and tell the output that the rows are
// complete.
func (c *Compositor) flush(buf *vidbuf.Buffer, mem lineMem, gfxY int, followY int, doDouble bool) {
	if mem == memEmerg {
		copy(buf.Row(gfxY), c.row)
	}
	c.out.FlushLine(gfxY)

	if doDouble {
		switch mem {
		case memEmerg:
			copy(buf.Row(followY), c.row)
		case memBuf:
			copy(buf.Row(followY), buf.Row(gfxY))
		}
		c.out.FlushLine(followY)
	}
}

// expand the bitplane control registers of the decision into the fields used
// while drawing.
func (c *Compositor) expandBplCon() {
	d := c.dec
	c.bplres = int(d.Res())
	c.ham = d.HAM() && d.Planes() == 6
	c.dualpf = d.DualPlayfield()
	c.dualpfpri = d.DualPlayfieldPri()
	c.ehb = d.EHB()
	c.spriteMask = d.SpriteMask()

	c.resShift = c.geom.LoresShift - c.bplres
	if c.resShift < -1 || c.resShift > 1 {
		panic(curated.Errorf(UnsupportedShift, c.resShift))
	}
	c.draw = lineToScreens[c.resShift+1][c.depth]
}

// the part of the window that shows the playfield and the offsets used to
// index apixels.
func (c *Compositor) initLine() {
	d := c.dec
	vlb := c.geom.VisibleLeft
	vrb := c.geom.VisibleRight

	ddfLeft := d.PlfLeft*2 + specification.DIWDDFOffset
	ddfRight := d.PlfRight*2 + specification.DIWDDFOffset
	c.nativeDDFLeft = c.geom.HWToWindowX(ddfLeft)
	c.nativeDDFRight = c.geom.HWToWindowX(ddfRight)

	diwStart := c.geom.HWToWindowX(d.DIWFirst)
	diwEnd := c.geom.HWToWindowX(d.DIWLast)

	// without sprites there is nothing to draw outside of the bitplane data
	if len(d.Sprites) == 0 {
		diwStart = max(diwStart, c.nativeDDFLeft)
		diwEnd = min(diwEnd, c.nativeDDFRight)
	}
	if diwEnd < diwStart {
		diwEnd = diwStart
	}

	c.playfieldStart = min(max(diwStart, vlb), vrb)
	c.playfieldEnd = min(max(diwEnd, vlb), vrb)

	c.pixelsOffset = specification.MaxPixelsPerLine - ((ddfLeft - specification.DisplayLeftShift) << c.bplres)
	c.srcPixel = specification.MaxPixelsPerLine + geometry.ResShiftFromWindow(c.playfieldStart-c.nativeDDFLeft, c.resShift)

	if len(d.Sprites) == 0 {
		return
	}

	// sprites may be visible where there is no bitplane data
	if diwStart < c.nativeDDFLeft {
		size := geometry.ResShiftFromWindow(c.nativeDDFLeft-diwStart, c.resShift)
		clear(c.apixels[max(0, specification.MaxPixelsPerLine-size):specification.MaxPixelsPerLine])
	}
	if diwEnd > c.nativeDDFRight {
		pos := specification.MaxPixelsPerLine + geometry.ResShiftFromWindow(c.nativeDDFRight-c.nativeDDFLeft, c.resShift)
		size := geometry.ResShiftFromWindow(diwEnd-c.nativeDDFRight, c.resShift)
		if pos < len(c.apixels) {
			clear(c.apixels[pos:min(pos+size, len(c.apixels))])
		}
	}
}

// expand the bitplane data into apixels.
func (c *Compositor) doLine() {
	d := c.dec
	depth := d.Planes()
	start := specification.MaxPixelsPerLine

	// the number of bytes fetched for each plane
	n := ((d.PlfRight - d.PlfLeft) * 2 << c.bplres) / 8
	for p := range depth {
		n = min(n, len(d.Bitplanes[p]))
	}
	n = max(0, min(n, (len(c.apixels)-start)/8))
	Expand(c.apixels[start:], &d.Bitplanes, depth, n)

	// pixels in the bitplane window for which no data was fetched
	end := start + n*8
	want := start + geometry.ResShiftFromWindow(c.nativeDDFRight-c.nativeDDFLeft, c.resShift)
	if want > end {
		clear(c.apixels[end:min(want, len(c.apixels))])
	}
}

// load the colour registers for the start of the line. regs is only loaded if
// full is true.
func (c *Compositor) adjustColors(ctable int, full bool) {
	if c.colorMatch != ctable {
		t := c.colorTable(ctable)
		if full {
			c.regs = *t
		}
		for i, v := range t {
			c.acolors[i] = c.palette.XColor(v)
		}
		c.colorMatch = ctable
		c.colorMatchFull = full
	} else if full && !c.colorMatchFull {
		c.regs = *c.colorTable(ctable)
		c.colorMatchFull = true
	}
}

var blankColors decision.ColorTable

func (c *Compositor) colorTable(idx int) *decision.ColorTable {
	if idx < 0 || idx >= len(c.store.Colors) {
		logger.Logf(c.logBadColors, "playfield", "colour table %d does not exist", idx)
		return &blankColors
	}
	return &c.store.Colors[idx]
}

func (c *Compositor) applyColorChange(ch decision.ColorChange) {
	if ch.RegNo < 0 || ch.RegNo >= decision.NumColors {
		return
	}
	c.regs[ch.RegNo] = ch.Value
	c.acolors[ch.RegNo] = c.palette.XColor(ch.Value)

	// the registers no longer match any colour table
	c.colorMatch = -1
}

// run the border and playfield workers over the visible part of the line,
// applying colour changes at the positions that they were made.
func (c *Compositor) colorChanges(border func(start, stop int), playfield func(start, stop int)) {
	last := c.geom.VisibleLeft
	vrb := c.geom.VisibleRight
	changes := c.dec.ColorChanges

	// the final iteration draws the remainder of the line
	for i := 0; i <= len(changes); i++ {
		var next int
		if i == len(changes) {
			next = c.geom.MaxDIWLastWord()
		} else {
			next = c.geom.HWToWindowX(changes[i].LinePos * 2)
		}
		next = min(next, vrb)

		if next > last && last < c.playfieldStart {
			t := min(next, c.playfieldStart)
			border(last, t)
			last = t
		}
		if next > last && last >= c.playfieldStart && last < c.playfieldEnd {
			t := min(next, c.playfieldEnd)
			playfield(last, t)
			last = t
		}
		if next > last {
			if last >= c.playfieldEnd {
				border(last, next)
			}
			last = next
		}

		if i < len(changes) {
			c.applyColorChange(changes[i])
		}

		if last >= vrb {
			break
		}
	}
}

// fill part of the line with the background colour. start and stop are window
// coordinates.
func (c *Compositor) fill(start int, stop int) {
	v := c.acolors[0]
	for x := start - c.rowBase; x < stop-c.rowBase; x++ {
		c.write(c.row, x, v)
	}
}

// fill the entire width of the row with the background colour.
func (c *Compositor) fillLine() {
	v := c.acolors[0]
	for x := range c.out.Buffer().Width {
		c.write(c.row, x, v)
	}
}

// draw the playfield between start and stop, which are window coordinates.
func (c *Compositor) drawPlayfield(start int, stop int) {
	c.srcPixel = c.draw(c, c.srcPixel, start, stop)
}

// decode the hold-and-modify pixels for the part of the window between start
// and stop.
func (c *Compositor) decodeHAM(start int, stop int) {
	n := geometry.ResShiftFromWindow(stop-start, c.resShift)
	n = max(0, min(n, len(c.apixels)-c.hamPixel))
	c.hamLast = DecodeHAM(c.hamBuf[c.hamPixel:c.hamPixel+n], c.apixels[c.hamPixel:c.hamPixel+n], &c.regs, c.hamLast)
	c.hamPixel += n
}
