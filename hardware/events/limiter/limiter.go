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

// Package limiter converts the virtual time of the emulation into real time.
// The Limiter type implements the events.Pacer interface.
//
// The vsync deadline moves forward by one frame period every time Vsync() is
// called. If the emulation falls more than one frame behind the deadline, the
// deadline is moved to one frame period from the current time so that the
// emulation does not try to catch up.
package limiter

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jetsetilly/denise/logger"
)

// Beam implementations know the vertical position of the emulated raster.
type Beam interface {
	LastLine() bool
}

// MatchRefreshRate can be used with SetLimit() to indicate that the limit
// should equal the refresh rate.
const MatchRefreshRate float32 = -1.0

// Limiter implements the events.Pacer interface.
type Limiter struct {
	// whether to wait for the vsync deadline
	Active atomic.Bool

	// the refresh rate of the emulated display
	RefreshRate atomic.Value // float32

	// the frame rate the limiter is working towards
	IdealFPS atomic.Value // float32

	// the actual value sent to the SetLimit() function
	requestedFPS atomic.Value // float32

	// the measured number of frames per second
	Measured atomic.Value // float32

	// nudge the limiter so that it doesn't wait for the specified number of
	// frames
	Nudge atomic.Int32

	crit     sync.Mutex
	period   time.Duration
	deadline time.Time

	// the measured FPS is the number of frames divided by the amount of
	// elapsed time since the previous measurement
	measureTime time.Time
	measureCt   int

	beam Beam
}

// NewLimiter is the preferred method of initialisation for the Limiter type.
// The limit will match the refresh rate.
func NewLimiter(refreshRate float32) *Limiter {
	lmtr := &Limiter{}
	lmtr.Active.Store(true)
	lmtr.Measured.Store(float32(0.0))
	lmtr.RefreshRate.Store(refreshRate)
	lmtr.SetLimit(MatchRefreshRate)
	return lmtr
}

// SetBeam sets the Beam used to implement the LastLine() function.
func (lmtr *Limiter) SetBeam(beam Beam) {
	lmtr.beam = beam
}

// SetRefreshRate changes the refresh rate. If the limit has been set to
// MatchRefreshRate then the limit changes too.
func (lmtr *Limiter) SetRefreshRate(refreshRate float32) {
	lmtr.RefreshRate.Store(refreshRate)
	if lmtr.requestedFPS.Load().(float32) <= 0.0 {
		lmtr.SetLimit(MatchRefreshRate)
	}
}

// SetLimit sets the frame rate to aim for. A value of zero or less will cause
// the limit to match the refresh rate.
func (lmtr *Limiter) SetLimit(fps float32) {
	lmtr.requestedFPS.Store(fps)

	if fps <= 0.0 {
		fps = lmtr.RefreshRate.Load().(float32)
	}

	// if fps is still zero then the refresh rate hasn't been set
	if fps <= 0.0 {
		return
	}

	lmtr.IdealFPS.Store(fps)

	lmtr.crit.Lock()
	defer lmtr.crit.Unlock()

	now := time.Now()

	lmtr.period = time.Duration(float64(time.Second) / float64(fps))
	lmtr.deadline = now.Add(lmtr.period)

	// restart actual FPS rate measurement values
	lmtr.measureCt = 0
	lmtr.measureTime = now

	logger.Logf(logger.Allow, "limiter", "frame rate set to %.2f", fps)
}

// LastLine implements the events.Pacer interface.
func (lmtr *Limiter) LastLine() bool {
	return lmtr.beam != nil && lmtr.beam.LastLine()
}

// Wait implements the events.Pacer interface. It blocks until the vsync
// deadline is reached or until the context is done.
func (lmtr *Limiter) Wait(ctx context.Context) error {
	if !lmtr.Active.Load() || lmtr.Nudge.Load() > 0 {
		return nil
	}

	lmtr.crit.Lock()
	d := time.Until(lmtr.deadline)
	lmtr.crit.Unlock()

	if d <= 0 {
		return nil
	}

	tmr := time.NewTimer(d)
	defer tmr.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-tmr.C:
	}

	return nil
}

// Vsync should be called once per emulated frame. It moves the vsync deadline
// and measures the actual frame rate.
func (lmtr *Limiter) Vsync() {
	if n := lmtr.Nudge.Load(); n > 0 {
		lmtr.Nudge.Store(n - 1)
	}

	lmtr.crit.Lock()
	defer lmtr.crit.Unlock()

	now := time.Now()

	lmtr.deadline = lmtr.deadline.Add(lmtr.period)
	if now.Sub(lmtr.deadline) > lmtr.period {
		lmtr.deadline = now.Add(lmtr.period)
	}

	lmtr.measureCt++
	if el := now.Sub(lmtr.measureTime); el >= time.Second {
		lmtr.Measured.Store(float32(float64(lmtr.measureCt) / el.Seconds()))
		lmtr.measureTime = now
		lmtr.measureCt = 0
	}
}
