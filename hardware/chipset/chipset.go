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

// Package chipset is a minimal stand-in for the custom chips. It drives the
// event scheduler and reports a moving test pattern to the display, one
// scanline at a time.
//
// Six event handlers are registered with the scheduler:
//
//	hsync:   reports the scanline to the display and handles the vertical blank
//	copper:  writes the colour of a raster bar in the middle of the scanline
//	audio:   produces one sample of a square wave
//	cia:     timer that moves the sprite
//	blitter: scrolls the bitplane pattern once per frame
//	disk:    reads one word from a spinning disk
package chipset

import (
	"context"
	"fmt"

	"github.com/jetsetilly/denise/hardware/display/decision"
	"github.com/jetsetilly/denise/hardware/display/linestate"
	"github.com/jetsetilly/denise/hardware/events"
	"github.com/jetsetilly/denise/hardware/events/limiter"
	"github.com/jetsetilly/denise/hardware/specification"
	"github.com/jetsetilly/denise/logger"
)

// Display is the part of the frame controller used by the chipset.
type Display interface {
	AddColorTable(t decision.ColorTable) int
	RecordLine(line int, dec decision.Decision, how linestate.How, changed bool)
	VsyncHandleRedraw(longFrame bool, lofChanged bool)
	NoticeInterlaceSeen()
	Drawing() bool
	Reset()
}

// AudioSink receives the samples produced by the audio event.
type AudioSink interface {
	SetAudio(sample int16)
}

// Config for the chipset.
type Config struct {
	Pattern Pattern
	Sprites bool

	// interlaced frames alternate between long and short frames
	Interlace bool

	// report two lines to the display for every scanline. should match the
	// line doubling preference of the display
	LineDbl bool

	// with line doubling and without interlace, leave every second line
	// black rather than doubling it
	Scanlines bool
}

// timing of events, in colour clocks
const (
	// bitplane fetch for a 320 pixel lores display
	plfLeft  = 0x38
	plfRight = 0xd8

	// copper waits for the raster bar
	copperBarStart = 0x50
	copperBarEnd   = 0xb0
	barHeight      = 8

	audioPeriod = 80
	audioPitch  = 440
	amplitude   = 8000

	// cia timer A underflow. E clock is one tenth of the colour clock
	ciaTimer = 1418 * 10

	// cycles for every word the blitter moves
	blitWordCycles = 4

	// a disk word arrives every 16 microseconds. an index pulse occurs once
	// per track
	diskPeriod = 56
	trackWords = 6300

	// first scanline of the display window
	diwTop    = 0x2c
	diwHeight = 256
)

// Stats counts the events that have been handled.
type Stats struct {
	Handled    [events.NumSlots]int
	Frames     int
	Blits      int
	DiskWords  int
	IndexPulse int
	Samples    int
}

// State of the chipset that can be saved and restored.
type State struct {
	Events    events.State
	VPos      int
	LineStart events.Cycle
	LOF       bool
	Stats     Stats

	Scroll      int
	SpriteX     int
	SpriteDX    int
	BarTop      int
	BarDY       int
	CopperStep  int
	BlitterBusy bool
	AudioCount  int
	AudioHigh   bool
}

// Chipset drives the scheduler and reports to the display.
type Chipset struct {
	sched *events.Scheduler
	disp  Display
	spec  specification.Spec
	cfg   Config

	audio AudioSink
	lmtr  *limiter.Limiter

	st State

	// colour registers and the colour table they were last stored as. -1 if
	// they have not been stored this frame
	regs   decision.ColorTable
	ctable int

	// colour changes made by the copper during the current scanline
	changes []decision.ColorChange

	// bitplane memory for every line of the line table
	bpl [][8][]byte

	// what was last reported for each line of the line table
	sig []uint64
}

// NewChipset is the preferred method of initialisation for the Chipset type.
// Event handlers are registered with the scheduler and the scheduler is
// reset.
func NewChipset(sched *events.Scheduler, disp Display, spec specification.Spec, cfg Config) *Chipset {
	c := &Chipset{
		sched: sched,
		disp:  disp,
		spec:  spec,
		cfg:   cfg,
		bpl:   make([][8][]byte, specification.LineCount()),
		sig:   make([]uint64, specification.LineCount()),
	}

	sched.Register(events.Hsync, events.HandlerFunc(c.hsync))
	sched.Register(events.Copper, events.HandlerFunc(c.copper))
	sched.Register(events.Audio, events.HandlerFunc(c.audioSample))
	sched.Register(events.CIA, events.HandlerFunc(c.cia))
	sched.Register(events.Blitter, events.HandlerFunc(c.blitter))
	sched.Register(events.Disk, events.HandlerFunc(c.disk))

	c.Reset()

	return c
}

func (c *Chipset) String() string {
	return fmt.Sprintf("%s %s frame %d vpos %d", c.spec.ID, c.cfg.Pattern, c.st.Stats.Frames, c.st.VPos)
}

// SetAudio sets the destination for audio samples. Can be nil.
func (c *Chipset) SetAudio(audio AudioSink) {
	c.audio = audio
}

// SampleRate returns the number of audio samples produced every second.
func (c *Chipset) SampleRate() int {
	return int(c.spec.ColorClock / audioPeriod)
}

// SetLimiter attaches a limiter to the scheduler. The limiter is told about
// every vsync.
func (c *Chipset) SetLimiter(lmtr *limiter.Limiter) {
	c.lmtr = lmtr
	lmtr.SetBeam(c)
	c.sched.SetPacer(lmtr)
}

// SetConfig changes the configuration. The change takes effect immediately.
func (c *Chipset) SetConfig(cfg Config) {
	c.cfg = cfg
	logger.Logf(logger.Allow, "chipset", "pattern: %s, interlace: %v, linedbl: %v", cfg.Pattern, cfg.Interlace, cfg.LineDbl)
}

// Config returns the current configuration.
func (c *Chipset) Config() Config {
	return c.cfg
}

// Stats returns the event counts.
func (c *Chipset) Stats() Stats {
	return c.st.Stats
}

// VPos returns the current scanline.
func (c *Chipset) VPos() int {
	return c.st.VPos
}

// LastLine implements the limiter.Beam interface.
func (c *Chipset) LastLine() bool {
	return c.st.VPos == c.linesThisFrame()-1
}

// Reset the chipset and the scheduler.
func (c *Chipset) Reset() {
	c.sched.Reset()

	c.st = State{
		LOF:      true,
		SpriteX:  0x60,
		SpriteDX: 1,
		BarTop:   diwTop,
		BarDY:    1,
	}
	c.regs = palette
	c.ctable = -1
	clear(c.sig)

	c.sched.Schedule(events.Hsync, events.Cycle(c.spec.CyclesPerLine()))
	c.sched.Schedule(events.Copper, copperBarStart)
	c.sched.Schedule(events.Audio, audioPeriod)
	c.sched.Schedule(events.CIA, ciaTimer)
	c.sched.Schedule(events.Disk, diskPeriod)
}

// Snapshot returns the state of the chipset and the scheduler.
func (c *Chipset) Snapshot() State {
	s := c.st
	s.Events = c.sched.Snapshot()
	return s
}

// Restore a previous snapshot. The display is reset because it no longer
// matches what has been reported.
func (c *Chipset) Restore(s State) {
	c.st = s
	c.sched.Restore(s.Events)
	c.regs = palette
	c.ctable = -1
	c.changes = nil
	clear(c.sig)
	c.disp.Reset()
	c.sched.HandleActiveEvents()
}

// Run the emulation until the number of frames have been completed or until
// the context is done. A value of zero or less for frames will run until the
// context is done.
func (c *Chipset) Run(ctx context.Context, frames int) error {
	target := c.st.Stats.Frames + frames
	for frames <= 0 || c.st.Stats.Frames < target {
		if ctx.Err() != nil {
			return nil
		}
		err := c.sched.AdvanceThrottled(ctx, events.Cycle(c.spec.CyclesPerLine()))
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
	return nil
}

func (c *Chipset) linesThisFrame() int {
	if c.st.LOF {
		return c.spec.MaxVPos + 1
	}
	return c.spec.MaxVPos
}

func (c *Chipset) hsync() {
	c.st.Stats.Handled[events.Hsync]++

	c.reportLine()

	c.st.VPos++
	if c.st.VPos >= c.linesThisFrame() {
		c.vsync()
	}

	c.st.LineStart = c.sched.Now()
	c.sched.ScheduleIn(events.Hsync, events.Cycle(c.spec.CyclesPerLine()))

	c.st.CopperStep = 0
	c.sched.ScheduleIn(events.Copper, copperBarStart)
}

func (c *Chipset) vsync() {
	long := c.st.LOF

	prev := c.st.LOF
	if c.cfg.Interlace {
		c.st.LOF = !c.st.LOF
		c.disp.NoticeInterlaceSeen()
	} else {
		c.st.LOF = true
	}
	lofChanged := prev != c.st.LOF && !c.cfg.Interlace

	c.disp.VsyncHandleRedraw(long, lofChanged)

	c.st.VPos = 0
	c.st.Stats.Frames++
	c.ctable = -1

	// raster bar bounces within the display window
	c.st.BarTop += c.st.BarDY
	if c.st.BarTop <= diwTop || c.st.BarTop+barHeight >= diwTop+c.diwHeight() {
		c.st.BarDY = -c.st.BarDY
	}

	if !c.st.BlitterBusy {
		c.st.BlitterBusy = true
		words := (plfRight - plfLeft) / 4 * c.diwHeight()
		c.sched.ScheduleIn(events.Blitter, events.Cycle(words*blitWordCycles))
	}

	if c.lmtr != nil {
		c.lmtr.Vsync()
	}
}

func (c *Chipset) diwHeight() int {
	return min(diwHeight, c.spec.MaxVPos-diwTop)
}

// the index in the line table for the current scanline and how the line
// should be drawn.
func (c *Chipset) line() (int, linestate.How) {
	if !c.cfg.LineDbl {
		return c.st.VPos, linestate.Normal
	}
	line := c.st.VPos << 1
	if c.cfg.Interlace {
		if !c.st.LOF {
			line++
		}
		return line, linestate.Normal
	}
	if c.cfg.Scanlines {
		return line, linestate.NoBlack
	}
	return line, linestate.Doubled
}

func (c *Chipset) reportLine() {
	changes := c.changes
	c.changes = nil

	if !c.disp.Drawing() {
		return
	}

	line, how := c.line()

	if c.ctable == -1 {
		c.ctable = c.disp.AddColorTable(c.regs)
	}

	dec := decision.Decision{
		PlfLeft:      -1,
		ColorTable:   c.ctable,
		ColorChanges: changes,
	}

	sig := uint64(1) << 63
	for _, ch := range changes {
		sig ^= uint64(ch.Value)<<4 | uint64(ch.LinePos)<<20
	}

	y := c.st.VPos - diwTop
	if y >= 0 && y < c.diwHeight() {
		dec.PlfLeft = plfLeft
		dec.PlfRight = plfRight
		dec.DIWFirst = plfLeft*2 + specification.DIWDDFOffset
		dec.DIWLast = plfRight*2 + specification.DIWDDFOffset
		dec.BplCon0 = c.cfg.Pattern.bplcon0()
		dec.BplCon2 = 0x24
		dec.Bitplanes = c.fetch(line, y)

		sig ^= uint64(c.cfg.Pattern+1)<<56 | uint64(c.st.Scroll)<<32

		if c.cfg.Sprites {
			if e, ok := c.sprite(y); ok {
				dec.Sprites = []decision.SpriteEntry{e}
				sig ^= uint64(c.st.SpriteX+1) << 40
			}
		}
	}

	changed := sig != c.sig[line]
	c.sig[line] = sig

	c.disp.RecordLine(line, dec, how, changed)
}

// bitplane data for the display window line y, stored against the line table
// index.
func (c *Chipset) fetch(line int, y int) [8][]byte {
	n := (plfRight - plfLeft) * 2 / 8
	planes := &c.bpl[line]
	if len(planes[0]) != n {
		for p := range planes {
			planes[p] = make([]byte, n)
		}
	}
	depth := int(c.cfg.Pattern.bplcon0()>>12) & 7
	c.cfg.Pattern.fetch(planes, depth, y, c.st.Scroll)
	return *planes
}

// sprite zero and one for display window line y. sprite one is attached to
// sprite zero.
func (c *Chipset) sprite(y int) (decision.SpriteEntry, bool) {
	sy := y - 32
	if sy < 0 || sy >= len(spriteImage) {
		return decision.SpriteEntry{}, false
	}

	e := decision.SpriteEntry{
		Pos:    c.st.SpriteX,
		Max:    c.st.SpriteX + 16,
		Pixels: make([]uint16, 16),
	}
	row := spriteImage[sy]
	for x := range 16 {
		e.Pixels[x] = uint16((row >> ((15 - x) * 2)) & 3)
	}
	return e, true
}

func (c *Chipset) copper() {
	c.st.Stats.Handled[events.Copper]++

	y := c.st.VPos - c.st.BarTop
	if y < 0 || y >= barHeight {
		return
	}

	switch c.st.CopperStep {
	case 0:
		v := uint16(y*2) << 8
		c.changes = append(c.changes, decision.ColorChange{LinePos: copperBarStart, RegNo: 0, Value: v})
		c.st.CopperStep++
		c.sched.Schedule(events.Copper, c.st.LineStart+copperBarEnd)
	case 1:
		c.changes = append(c.changes, decision.ColorChange{LinePos: copperBarEnd, RegNo: 0, Value: c.regs[0]})
		c.st.CopperStep++
	}
}

func (c *Chipset) audioSample() {
	c.st.Stats.Handled[events.Audio]++
	c.sched.ScheduleIn(events.Audio, audioPeriod)

	c.st.AudioCount++
	if c.st.AudioCount >= c.SampleRate()/(audioPitch*2) {
		c.st.AudioCount = 0
		c.st.AudioHigh = !c.st.AudioHigh
	}

	c.st.Stats.Samples++
	if c.audio == nil {
		return
	}
	if c.st.AudioHigh {
		c.audio.SetAudio(amplitude)
	} else {
		c.audio.SetAudio(-amplitude)
	}
}

func (c *Chipset) cia() {
	c.st.Stats.Handled[events.CIA]++
	c.sched.ScheduleIn(events.CIA, ciaTimer)

	// sprite bounces between the edges of the display window
	left := plfLeft*2 + specification.DIWDDFOffset - specification.DisplayLeftShift
	right := plfRight*2 + specification.DIWDDFOffset - specification.DisplayLeftShift - 16
	c.st.SpriteX += c.st.SpriteDX
	if c.st.SpriteX <= left || c.st.SpriteX >= right {
		c.st.SpriteDX = -c.st.SpriteDX
	}
}

func (c *Chipset) blitter() {
	c.st.Stats.Handled[events.Blitter]++
	c.st.Stats.Blits++
	c.st.BlitterBusy = false
	c.st.Scroll = (c.st.Scroll + 1) % 320
}

func (c *Chipset) disk() {
	c.st.Stats.Handled[events.Disk]++
	c.sched.ScheduleIn(events.Disk, diskPeriod)

	c.st.Stats.DiskWords++
	if c.st.Stats.DiskWords%trackWords == 0 {
		c.st.Stats.IndexPulse++
	}
}
