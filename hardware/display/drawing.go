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

// Package display is the frame controller. It records how every scanline of
// the frame should be drawn and, at the end of the frame, draws the visible
// lines into the buffer of the host display.
//
// The hardware emulation calls RecordLine() once per scanline and
// VsyncHandleRedraw() at the end of every field. Everything else happens in
// response to those calls.
//
// Lines that have not changed since the previous frame are not drawn again.
// The NoticeScreenContentsLost() function forces every line to be drawn for
// the next two frames. This happens automatically if the host display cannot
// be locked at the end of a frame.
package display

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/bradleyjkemp/memviz"
	"github.com/jetsetilly/denise/curated"
	"github.com/jetsetilly/denise/hardware/display/decision"
	"github.com/jetsetilly/denise/hardware/display/geometry"
	"github.com/jetsetilly/denise/hardware/display/linestate"
	"github.com/jetsetilly/denise/hardware/display/playfield"
	"github.com/jetsetilly/denise/hardware/display/vidbuf"
	"github.com/jetsetilly/denise/hardware/specification"
	"github.com/jetsetilly/denise/logger"
	"github.com/jetsetilly/denise/prefs"
)

// UndecidedLine is the pattern used when the decision for a line is requested
// but the hardware has not reported on the line.
const UndecidedLine = "display: line %d is undecided"

// value of firstBlock and lastBlock when there is no block being accumulated
const noBlock = -3

// Drawing is the frame controller.
type Drawing struct {
	prefs *Preferences
	host  vidbuf.Host
	spec  specification.Spec

	lines *linestate.Table
	store *decision.Store
	geom  *geometry.Geometry
	comp  *playfield.Compositor

	logUndecided logger.Permission

	// greater than zero if every line must be drawn regardless of what the
	// hardware reports
	frameRedrawNecessary int

	// interlace handling. a frame is drawn at least every second field
	interlaceSeen   bool
	lastRedrawPoint int

	// the frame is drawn when frameCount is zero
	frameCount int
	inhibit    bool

	// set by preference hooks, which may be called from another goroutine
	prefsChanged atomic.Bool

	// first and last host rows drawn this frame
	firstDrawn int
	lastDrawn  int

	// host rows accumulated for the next call to FlushBlock()
	firstBlock int
	lastBlock  int

	// the number of frames drawn since the drawing was created
	framesDrawn int
}

// NewDrawing is the preferred method of initialisation for the Drawing type.
//
// Panics if the pixel depth of the host buffer is not supported.
func NewDrawing(host vidbuf.Host, spec specification.Spec, prefs *Preferences) *Drawing {
	d := &Drawing{
		prefs:        prefs,
		host:         host,
		spec:         spec,
		lines:        linestate.NewTable(),
		store:        decision.NewStore(),
		logUndecided: logger.Once(),
	}

	buf := host.Buffer()
	d.geom = geometry.NewGeometry(prefs.geometry(buf.Width, buf.Height, spec))
	d.comp = playfield.NewCompositor(d.lines, d.store, d.geom, d)

	prefs.setHooks(func(_ prefs.Value) error {
		d.prefsChanged.Store(true)
		return nil
	})

	d.Reset()

	return d
}

func (d *Drawing) String() string {
	return fmt.Sprintf("%s frame %d, %s", d.spec.ID, d.framesDrawn, d.geom)
}

// Geometry returns the geometry of the current frame. Used to translate host
// coordinates to emulated coordinates.
func (d *Drawing) Geometry() *geometry.Geometry {
	return d.geom
}

// Spec returns the video specification of the drawing.
func (d *Drawing) Spec() specification.Spec {
	return d.spec
}

// FramesDrawn returns the number of frames that have been drawn.
func (d *Drawing) FramesDrawn() int {
	return d.framesDrawn
}

// Collisions returns the sprite to sprite collisions seen while drawing the
// current frame.
func (d *Drawing) Collisions() uint16 {
	return d.comp.Collisions()
}

// Drawing returns true if the current frame will be drawn. The hardware may
// use this to skip work that is only needed for drawing.
func (d *Drawing) Drawing() bool {
	return d.frameCount == 0
}

// SetInhibit prevents frames from being drawn.
func (d *Drawing) SetInhibit(inhibit bool) {
	d.inhibit = inhibit
}

// AddColorTable adds a copy of the colour registers for use by the current
// frame and returns the index by which a Decision should refer to it.
func (d *Drawing) AddColorTable(t decision.ColorTable) int {
	return d.store.AddColorTable(t)
}

// RecordLine is called by the hardware once for every scanline. The line
// number is the index into the line table. If line doubling is enabled the
// line number should be twice the scanline number, plus one for the odd field
// of an interlaced frame.
//
// The changed argument should be true if the line is different to how it was
// in the previous frame.
func (d *Drawing) RecordLine(line int, dec decision.Decision, how linestate.How, changed bool) {
	if d.frameCount != 0 {
		return
	}
	if line < 0 || line >= d.lines.Len()-1 {
		return
	}

	changed = changed || d.frameRedrawNecessary > 0
	if !d.lines.Record(line, how, changed) {
		return
	}
	d.store.Lines[line] = dec

	if !dec.Border() {
		d.geom.RecordDIW(d.geom.HWToWindowX(dec.DIWFirst), d.geom.HWToWindowX(dec.DIWLast))
		if d.geom.Config().LineDbl {
			d.geom.RecordDrawnLine(line >> 1)
		} else {
			d.geom.RecordDrawnLine(line)
		}
	}
}

// Decision returns the decision for the line. Returns an error if the
// hardware has not reported on the line this frame.
func (d *Drawing) Decision(line int) (decision.Decision, error) {
	if line < 0 || line >= d.lines.Len() {
		return decision.Decision{}, curated.Errorf(UndecidedLine, line)
	}
	switch d.lines.Get(line) {
	case linestate.Decided, linestate.DecidedDouble, linestate.Done:
		return d.store.Lines[line], nil
	}
	return decision.Decision{}, curated.Errorf(UndecidedLine, line)
}

// LineState returns the state of the line.
func (d *Drawing) LineState(line int) linestate.State {
	return d.lines.Get(line)
}

// NoticeScreenContentsLost forces every line to be drawn for the next two
// frames.
func (d *Drawing) NoticeScreenContentsLost() {
	d.frameRedrawNecessary = 2
}

// NoticeInterlaceSeen should be called by the hardware when an interlaced
// field is seen.
func (d *Drawing) NoticeInterlaceSeen() {
	d.interlaceSeen = true
}

// PrefsChanged causes the preferences to be applied at the start of the next
// frame. It is not necessary to call this function for changes made through
// the Preferences type.
func (d *Drawing) PrefsChanged() {
	d.prefsChanged.Store(true)
}

// Reset the drawing to its initial state. Must be called whenever the state
// of the hardware is reloaded.
func (d *Drawing) Reset() {
	d.lines.Reset()
	d.geom.InitAspectMaps()
	d.lastRedrawPoint = 0
	d.frameCount = 0
	d.BeginFrame()
	d.NoticeScreenContentsLost()
}

// apply the preferences to the geometry.
func (d *Drawing) applyPrefs() {
	buf := d.host.Buffer()
	d.geom.Configure(d.prefs.geometry(buf.Width, buf.Height, d.spec))
	d.lines.Reset()
	d.lastRedrawPoint = 0
	logger.Logf(logger.Allow, "display", "preferences applied: %s", d.geom)
}

// BeginFrame prepares the drawing for a new frame. It is called by
// VsyncHandleRedraw() and should not normally be called directly.
func (d *Drawing) BeginFrame() {
	d.lines.NewFrame()

	d.firstDrawn = specification.MaxPixelsPerLine
	d.lastDrawn = 0
	d.firstBlock = noBlock
	d.lastBlock = noBlock

	if d.frameRedrawNecessary > 0 {
		d.frameRedrawNecessary--
	}

	if d.geom.CenterImage() {
		if d.interlaceSeen && d.geom.Config().LineDbl {
			d.frameRedrawNecessary |= 2
		} else {
			d.frameRedrawNecessary |= 1
		}
	}

	d.comp.NewFrame()
}

// EndFrame draws every visible line of the frame. It is called by
// VsyncHandleRedraw() and should not normally be called directly.
//
// If the host display can not be locked then nothing is drawn and every line
// will be drawn in the next frame.
func (d *Drawing) EndFrame() {
	if !d.host.LockScreen() {
		d.NoticeScreenContentsLost()
		logger.Log(logger.Allow, "display", "screen lock failed")
		return
	}

	d.drawLines()

	first, last := d.firstDrawn, d.lastDrawn
	d.framesDrawn++

	if first <= last {
		d.host.FlushScreen(first, last)
	}
}

// draw every visible line of the frame. the screen is unlocked on return.
func (d *Drawing) drawLines() {
	defer d.host.UnlockScreen()

	height := d.host.Buffer().Height

	for i := range d.geom.MaxYPos {
		line := i + d.geom.YAdjustReal
		if line >= d.lines.Len()-1 {
			break
		}

		if d.lines.Get(line) == linestate.Undecided {
			logger.Logf(d.logUndecided, "display", "undecided line %d in visible part of frame", line)
			break
		}

		where := d.geom.AmigaToAspect[i+d.geom.MinYPos]
		if where >= height {
			break
		}
		if where == -1 {
			continue
		}

		d.comp.DrawLine(line, where, d.geom.AmigaToAspect[i+d.geom.MinYPos+1])
	}

	if d.firstBlock != noBlock {
		d.host.FlushBlock(d.firstBlock, d.lastBlock)
		d.firstBlock = noBlock
		d.lastBlock = noBlock
	}
}

// VsyncHandleRedraw is called by the hardware at the end of every field.
//
// The longFrame argument is true if the field was a long frame. The
// lofChanged argument is true if the long frame bit has changed since the
// previous field.
func (d *Drawing) VsyncHandleRedraw(longFrame bool, lofChanged bool) {
	d.lastRedrawPoint++
	if !lofChanged && d.interlaceSeen && d.lastRedrawPoint < 2 && !longFrame {
		return
	}

	d.lastRedrawPoint = 0
	d.interlaceSeen = false

	if d.frameCount == 0 {
		d.EndFrame()
	}

	d.frameCount++
	if d.frameCount >= d.prefs.FrameRate.Get().(int) {
		d.frameCount = 0
	}

	d.store.NewFrame()

	if d.prefsChanged.Swap(false) {
		d.applyPrefs()
		d.NoticeScreenContentsLost()
	}

	if d.inhibit {
		d.frameCount = 1
	}

	if d.frameCount == 0 {
		d.BeginFrame()
	}
}

// Buffer implements the playfield.Output interface.
func (d *Drawing) Buffer() *vidbuf.Buffer {
	return d.host.Buffer()
}

// FlushLine implements the playfield.Output interface. Rows are passed to the
// host individually or in blocks, depending on the host buffer.
func (d *Drawing) FlushLine(row int) {
	d.firstDrawn = min(d.firstDrawn, row)
	d.lastDrawn = max(d.lastDrawn, row)

	buf := d.host.Buffer()
	if buf.MaxBlockLines == 0 || buf.LineMem != nil {
		d.host.FlushLine(row)
		return
	}

	// a gap of one row is allowed in a block
	if d.lastBlock+2 < row {
		if d.firstBlock != noBlock {
			d.host.FlushBlock(d.firstBlock, d.lastBlock)
		}
		d.firstBlock = row
	}
	d.lastBlock = row

	if d.lastBlock-d.firstBlock >= buf.MaxBlockLines {
		d.host.FlushBlock(d.firstBlock, d.lastBlock)
		d.firstBlock = noBlock
		d.lastBlock = noBlock
	}
}

// Visualise writes a graph of the state of the drawing, in the DOT format, to
// the writer.
func (d *Drawing) Visualise(w io.Writer) {
	type visibleLine struct {
		Line  int
		Row   int
		State string
	}

	v := struct {
		Spec         string
		VisibleLeft  int
		VisibleRight int
		YAdjust      int
		MaxYPos      int
		Lines        []visibleLine
	}{
		Spec:         d.spec.ID,
		VisibleLeft:  d.geom.VisibleLeft,
		VisibleRight: d.geom.VisibleRight,
		YAdjust:      d.geom.YAdjust,
		MaxYPos:      d.geom.MaxYPos,
	}

	for i := range d.geom.MaxYPos {
		line := i + d.geom.YAdjustReal
		if line >= d.lines.Len() {
			break
		}
		row := d.geom.AmigaToAspect[i+d.geom.MinYPos]
		if row == -1 {
			continue
		}
		v.Lines = append(v.Lines, visibleLine{
			Line:  line,
			Row:   row,
			State: d.lines.Get(line).String(),
		})
	}

	memviz.Map(w, &v)
}
