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

package display_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jetsetilly/denise/curated"
	"github.com/jetsetilly/denise/hardware/display"
	"github.com/jetsetilly/denise/hardware/display/decision"
	"github.com/jetsetilly/denise/hardware/display/linestate"
	"github.com/jetsetilly/denise/hardware/display/vidbuf"
	"github.com/jetsetilly/denise/hardware/specification"
	"github.com/jetsetilly/denise/logger"
	"github.com/jetsetilly/denise/test"
)

type block struct {
	first int
	last  int
}

type host struct {
	buf      *vidbuf.Buffer
	lockFail bool

	locked   int
	unlocked int

	rows    []int
	blocks  []block
	screens []block
}

func (h *host) Buffer() *vidbuf.Buffer {
	return h.buf
}

func (h *host) LockScreen() bool {
	if h.lockFail {
		return false
	}
	h.locked++
	return true
}

func (h *host) UnlockScreen() {
	h.unlocked++
}

func (h *host) FlushLine(row int) {
	h.rows = append(h.rows, row)
}

func (h *host) FlushBlock(first int, last int) {
	h.blocks = append(h.blocks, block{first, last})
}

func (h *host) FlushScreen(first int, last int) {
	h.screens = append(h.screens, block{first, last})
}

func (h *host) clear() {
	h.rows = h.rows[:0]
	h.blocks = h.blocks[:0]
	h.screens = h.screens[:0]
}

// the first scanline of the window before any centering
var firstLine = specification.SpecPAL.MinFirstLine

func newDrawing(t *testing.T, maxBlockLines int) (*display.Drawing, *host, *display.Preferences) {
	t.Helper()
	t.Chdir(t.TempDir())

	p, err := display.NewPreferences()
	test.DemandSuccess(t, err)

	h := &host{buf: vidbuf.NewBuffer(320, 256, 4)}
	h.buf.MaxBlockLines = maxBlockLines

	return display.NewDrawing(h, specification.SpecPAL, p), h, p
}

func border(d *display.Drawing, rgb uint16) decision.Decision {
	var colors decision.ColorTable
	colors[0] = rgb
	return decision.Decision{
		PlfLeft:    -1,
		ColorTable: d.AddColorTable(colors),
	}
}

// report the same decision for n lines starting at the first line of the
// window and end the frame
func frame(d *display.Drawing, n int, rgb uint16, changed bool) {
	dec := border(d, rgb)
	for i := range n {
		d.RecordLine(firstLine+i, dec, linestate.Normal, changed)
	}
	d.VsyncHandleRedraw(false, false)
}

func TestFrame(t *testing.T) {
	d, h, _ := newDrawing(t, 0)
	test.ExpectEquality(t, d.Drawing(), true)

	frame(d, 256, 0x00f, true)
	test.ExpectEquality(t, d.FramesDrawn(), 1)
	test.ExpectEquality(t, len(h.rows), 256)
	test.ExpectEquality(t, len(h.blocks), 0)
	if test.ExpectEquality(t, len(h.screens), 1) {
		test.ExpectEquality(t, h.screens[0], block{0, 255})
	}
	test.ExpectEquality(t, h.locked, 1)
	test.ExpectEquality(t, h.unlocked, 1)

	v := vidbuf.Encode(4, 0x00f)
	for _, y := range []int{0, 100, 255} {
		test.ExpectEquality(t, h.buf.Pixel(0, y), v, y)
		test.ExpectEquality(t, h.buf.Pixel(319, y), v, y)
	}
}

func TestIncrementalRedraw(t *testing.T) {
	d, h, _ := newDrawing(t, 0)

	// the first two frames after a reset are drawn in full even if nothing
	// has changed
	frame(d, 256, 0x00f, false)
	test.ExpectEquality(t, len(h.rows), 256)
	h.clear()

	frame(d, 256, 0x00f, false)
	test.ExpectEquality(t, len(h.rows), 256)
	h.clear()

	frame(d, 256, 0x00f, false)
	test.ExpectEquality(t, len(h.rows), 0)
	test.ExpectEquality(t, len(h.screens), 0)
	test.ExpectEquality(t, d.FramesDrawn(), 3)
	h.clear()

	// a single changed line
	dec := border(d, 0xf00)
	for i := range 256 {
		d.RecordLine(firstLine+i, dec, linestate.Normal, i == 10)
	}
	d.VsyncHandleRedraw(false, false)
	test.ExpectEquality(t, len(h.rows), 1)
	if test.ExpectEquality(t, len(h.screens), 1) {
		test.ExpectEquality(t, h.screens[0], block{10, 10})
	}
	test.ExpectEquality(t, h.buf.Pixel(0, 10), vidbuf.Encode(4, 0xf00))
	test.ExpectEquality(t, h.buf.Pixel(0, 11), vidbuf.Encode(4, 0x00f))
	h.clear()

	// after the contents of the screen are lost everything is drawn again
	d.NoticeScreenContentsLost()
	frame(d, 256, 0x00f, false)
	test.ExpectEquality(t, len(h.rows), 256)
}

func TestLockFailure(t *testing.T) {
	d, h, _ := newDrawing(t, 0)

	frame(d, 256, 0x00f, false)
	frame(d, 256, 0x00f, false)
	frame(d, 256, 0x00f, false)
	h.clear()

	h.lockFail = true
	frame(d, 256, 0x00f, false)
	test.ExpectEquality(t, len(h.rows), 0)
	test.ExpectEquality(t, len(h.screens), 0)
	test.ExpectEquality(t, d.FramesDrawn(), 3)

	// the frame after the failed lock is drawn in full
	h.lockFail = false
	frame(d, 256, 0x00f, false)
	test.ExpectEquality(t, len(h.rows), 256)
	test.ExpectEquality(t, d.FramesDrawn(), 4)
	test.ExpectEquality(t, h.locked, h.unlocked)
}

func TestUndecidedLine(t *testing.T) {
	d, h, _ := newDrawing(t, 0)

	logger.Clear()
	frame(d, 100, 0x00f, true)
	test.ExpectEquality(t, len(h.rows), 100)
	if test.ExpectEquality(t, len(h.screens), 1) {
		test.ExpectEquality(t, h.screens[0], block{0, 99})
	}
	test.ExpectEquality(t, h.locked, 1)
	test.ExpectEquality(t, h.unlocked, 1)

	var log bytes.Buffer
	logger.Write(&log)
	test.ExpectEquality(t, strings.Contains(log.String(), "undecided line"), true)
}

func TestDecision(t *testing.T) {
	d, _, _ := newDrawing(t, 0)

	_, err := d.Decision(100)
	test.ExpectEquality(t, curated.Is(err, display.UndecidedLine), true)

	dec := border(d, 0x123)
	d.RecordLine(100, dec, linestate.Normal, true)
	got, err := d.Decision(100)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, got.Border(), true)
	test.ExpectEquality(t, d.LineState(100), linestate.Decided)

	_, err = d.Decision(-1)
	test.ExpectFailure(t, err)
	_, err = d.Decision(specification.LineCount())
	test.ExpectFailure(t, err)

	// a doubled line makes the line below undecidable
	d.RecordLine(200, dec, linestate.Doubled, true)
	_, err = d.Decision(200)
	test.ExpectSuccess(t, err)
	_, err = d.Decision(201)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, d.LineState(201), linestate.AsPrevious)
}

func TestFrameSkip(t *testing.T) {
	d, _, p := newDrawing(t, 0)
	test.DemandSuccess(t, p.FrameRate.Set(2))

	frame(d, 256, 0x00f, true)
	test.ExpectEquality(t, d.FramesDrawn(), 1)
	test.ExpectEquality(t, d.Drawing(), false)

	// reports are ignored while the frame is not being drawn
	d.RecordLine(300, border(d, 0), linestate.Normal, true)
	test.ExpectEquality(t, d.LineState(300), linestate.Undecided)

	d.VsyncHandleRedraw(false, false)
	test.ExpectEquality(t, d.FramesDrawn(), 1)
	test.ExpectEquality(t, d.Drawing(), true)

	frame(d, 256, 0x00f, true)
	test.ExpectEquality(t, d.FramesDrawn(), 2)
}

func TestInhibit(t *testing.T) {
	d, _, _ := newDrawing(t, 0)
	d.SetInhibit(true)

	frame(d, 256, 0x00f, true)
	test.ExpectEquality(t, d.FramesDrawn(), 1)

	for range 5 {
		frame(d, 256, 0x00f, true)
	}
	test.ExpectEquality(t, d.FramesDrawn(), 1)
	test.ExpectEquality(t, d.Drawing(), false)

	d.SetInhibit(false)
	d.VsyncHandleRedraw(false, false)
	test.ExpectEquality(t, d.Drawing(), true)
	frame(d, 256, 0x00f, true)
	test.ExpectEquality(t, d.FramesDrawn(), 2)
}

func TestInterlace(t *testing.T) {
	d, _, _ := newDrawing(t, 0)

	// the first field of an interlaced frame is not drawn
	d.NoticeInterlaceSeen()
	d.VsyncHandleRedraw(false, false)
	test.ExpectEquality(t, d.FramesDrawn(), 0)

	d.NoticeInterlaceSeen()
	d.VsyncHandleRedraw(false, false)
	test.ExpectEquality(t, d.FramesDrawn(), 1)

	// a long frame is always drawn
	d.NoticeInterlaceSeen()
	d.VsyncHandleRedraw(true, false)
	test.ExpectEquality(t, d.FramesDrawn(), 2)

	// as is a change of the long frame bit
	d.NoticeInterlaceSeen()
	d.VsyncHandleRedraw(false, true)
	test.ExpectEquality(t, d.FramesDrawn(), 3)
}

func TestFlushBlocks(t *testing.T) {
	d, h, _ := newDrawing(t, 8)

	frame(d, 256, 0x00f, true)
	test.ExpectEquality(t, len(h.rows), 0)
	if test.ExpectEquality(t, len(h.blocks), 29) {
		test.ExpectEquality(t, h.blocks[0], block{0, 8})
		test.ExpectEquality(t, h.blocks[1], block{9, 17})
		test.ExpectEquality(t, h.blocks[28], block{252, 255})
	}
	if test.ExpectEquality(t, len(h.screens), 1) {
		test.ExpectEquality(t, h.screens[0], block{0, 255})
	}
}

func TestFlushBlockGaps(t *testing.T) {
	d, h, _ := newDrawing(t, 8)

	// a gap of one row is allowed within a block
	d.FlushLine(10)
	d.FlushLine(12)
	test.ExpectEquality(t, len(h.blocks), 0)

	d.FlushLine(15)
	if test.ExpectEquality(t, len(h.blocks), 1) {
		test.ExpectEquality(t, h.blocks[0], block{10, 12})
	}
}

func TestLineMemIgnoresBlocks(t *testing.T) {
	d, h, _ := newDrawing(t, 8)
	h.buf.LineMem = make([]byte, h.buf.RowBytes)

	frame(d, 256, 0x00f, true)
	test.ExpectEquality(t, len(h.rows), 256)
	test.ExpectEquality(t, len(h.blocks), 0)
}

func TestCentering(t *testing.T) {
	d, _, _ := newDrawing(t, 0)
	test.ExpectEquality(t, d.Geometry().VisibleLeft, 78)

	// a standard 320 pixel lores display
	dec := decision.Decision{
		PlfLeft:    0x38,
		PlfRight:   0xd8,
		DIWFirst:   0x38*2 + specification.DIWDDFOffset,
		DIWLast:    0xd8*2 + specification.DIWDDFOffset,
		BplCon0:    0x0200,
		ColorTable: d.AddColorTable(decision.ColorTable{}),
	}
	for i := range 256 {
		d.RecordLine(firstLine+i, dec, linestate.Normal, true)
	}
	d.VsyncHandleRedraw(false, false)

	test.ExpectEquality(t, d.Geometry().VisibleLeft, 57)
	test.ExpectEquality(t, d.Geometry().VisibleRight, 377)
	test.ExpectEquality(t, d.Geometry().YAdjust, firstLine)
}

func TestPreferencesChange(t *testing.T) {
	d, _, p := newDrawing(t, 0)
	test.ExpectEquality(t, d.Geometry().LoresShift, 0)

	test.DemandSuccess(t, p.Lores.Set(false))

	// preferences are applied at the end of the frame
	test.ExpectEquality(t, d.Geometry().LoresShift, 0)
	d.VsyncHandleRedraw(false, false)
	test.ExpectEquality(t, d.Geometry().LoresShift, 1)
	test.ExpectEquality(t, d.Geometry().Config().Lores, false)
}

func TestVisualise(t *testing.T) {
	d, _, _ := newDrawing(t, 0)
	frame(d, 256, 0x00f, true)

	var w bytes.Buffer
	d.Visualise(&w)
	test.ExpectEquality(t, strings.Contains(w.String(), "digraph"), true)
}
