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

package events

import (
	"context"
	"fmt"
	"strings"

	"github.com/jetsetilly/denise/curated"
	"github.com/jetsetilly/denise/logger"
)

// Sentinal error patterns.
const (
	// the clock was advanced from inside an event handler
	Reentrant = "events: clock advanced by %s handler"

	// an active event was scheduled for a cycle that has already passed
	PastEvent = "events: %s scheduled for cycle %d but clock is at %d"

	// the real-time pacing stall was interrupted
	PacingInterrupted = "events: pacing interrupted: %v"
)

// Pacer implementations convert virtual cycles into real time. The Pacer is
// consulted by AdvanceThrottled() near the end of every frame.
type Pacer interface {
	// LastLine returns true if the emulation is on the last scanline of the
	// frame
	LastLine() bool

	// Wait blocks until the vsync deadline has been reached or until the
	// context is done, in which case the context's error should be returned
	Wait(ctx context.Context) error
}

// Scheduler is the virtual clock and the event table. The zero value is not
// usable, use NewScheduler().
type Scheduler struct {
	now    Cycle
	events [NumSlots]Event

	handlers [NumSlots]Handler

	// the cycle of the next event to trigger. only valid if pending is true
	nextEvent Cycle
	pending   bool

	pacer Pacer

	// the slot currently being handled. the clock can not be advanced while
	// firing is true
	firing  bool
	handled Slot
}

// NewScheduler is the preferred method of initialisation for the Scheduler
// type.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (s *Scheduler) String() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("cycle: %d", s.now))
	for slot := range NumSlots {
		b.WriteString(fmt.Sprintf(" %s: %s", slot, s.events[slot]))
	}
	return b.String()
}

// Register the handler for an event slot. Each slot can only have one handler
// and it is a programming error to register a second.
func (s *Scheduler) Register(slot Slot, h Handler) {
	if s.handlers[slot] != nil {
		panic(fmt.Sprintf("events: %s handler already registered", slot))
	}
	s.handlers[slot] = h
}

// SetPacer sets the Pacer used by AdvanceThrottled(). A nil Pacer means
// AdvanceThrottled() never stalls.
func (s *Scheduler) SetPacer(p Pacer) {
	s.pacer = p
}

// Now returns the current cycle.
func (s *Scheduler) Now() Cycle {
	return s.now
}

// NextEvent returns the cycle of the next event to trigger. Returns false if
// no events are active.
func (s *Scheduler) NextEvent() (Cycle, bool) {
	return s.nextEvent, s.pending
}

// Active returns true if the event in the slot is active.
func (s *Scheduler) Active(slot Slot) bool {
	return s.events[slot].Active
}

// Trigger returns the cycle at which the event in the slot will trigger. The
// value is meaningless if the event is not active.
func (s *Scheduler) Trigger(slot Slot) Cycle {
	return s.events[slot].Trigger
}

// Schedule activates the event in the slot so that it triggers at the
// specified cycle. Scheduling an event for a cycle that has already passed is
// a programming error and will cause a panic.
func (s *Scheduler) Schedule(slot Slot, at Cycle) {
	if at < s.now {
		panic(curated.Errorf(PastEvent, slot, at, s.now))
	}
	s.events[slot] = Event{Active: true, Trigger: at}
	s.schedule()
}

// ScheduleIn activates the event in the slot so that it triggers after delta
// cycles.
func (s *Scheduler) ScheduleIn(slot Slot, delta Cycle) {
	s.Schedule(slot, s.now+delta)
}

// Cancel deactivates the event in the slot.
func (s *Scheduler) Cancel(slot Slot) {
	s.events[slot].Active = false
	s.schedule()
}

// schedule recalculates the cycle of the next event.
func (s *Scheduler) schedule() {
	s.pending = false

	var nearest Cycle
	for _, ev := range s.events {
		if !ev.Active {
			continue
		}
		d := ev.Trigger - s.now
		if !s.pending || d < nearest {
			nearest = d
			s.pending = true
		}
	}

	if s.pending {
		s.nextEvent = s.now + nearest
	}
}

// handle all active events that trigger on the current cycle, in slot order.
func (s *Scheduler) handle() {
	s.firing = true
	defer func() {
		s.firing = false
	}()

	for slot := range NumSlots {
		ev := &s.events[slot]
		if !ev.Active || ev.Trigger != s.now {
			continue
		}
		ev.Active = false
		if h := s.handlers[slot]; h != nil {
			s.handled = slot
			h.Handle()
		}
	}
}

// the clock must not be advanced by an event handler.
func (s *Scheduler) checkReentry() {
	if s.firing {
		panic(curated.Errorf(Reentrant, s.handled))
	}
}

// Advance the clock by n cycles. Events that trigger during those cycles are
// handled in trigger order. Events that trigger on the same cycle are handled
// in slot order.
func (s *Scheduler) Advance(n Cycle) {
	s.checkReentry()
	s.advance(n)
}

func (s *Scheduler) advance(n Cycle) {
	for s.pending && s.nextEvent-s.now <= n {
		n -= s.nextEvent - s.now
		s.now = s.nextEvent
		s.handle()
		s.schedule()
	}
	s.now += n
}

// Step advances the clock by exactly one cycle. Events are only handled if the
// next event triggers on the new cycle.
func (s *Scheduler) Step() {
	s.checkReentry()
	s.now++
	if s.pending && s.nextEvent == s.now {
		s.handle()
		s.schedule()
	}
}

// AdvanceThrottled is the same as Advance() except that the Pacer is given the
// opportunity to stall the clock. If the emulation is on the last line of the
// frame and the hsync event will trigger during the n cycles, the clock does
// not advance until the Pacer allows it.
//
// If the context is cancelled during the stall, the clock is not advanced and
// an error wrapping the context's error is returned.
func (s *Scheduler) AdvanceThrottled(ctx context.Context, n Cycle) error {
	s.checkReentry()

	if s.pacer != nil && s.pacer.LastLine() {
		hsync := s.events[Hsync]
		if hsync.Active && hsync.Trigger-s.now <= n {
			if err := s.pacer.Wait(ctx); err != nil {
				return curated.Errorf(PacingInterrupted, err)
			}
		}
	}

	s.advance(n)
	return nil
}

// HandleActiveEvents handles any active events that trigger on the current
// cycle. Must be called after Restore() because the restored state may have
// events that are due immediately.
func (s *Scheduler) HandleActiveEvents() {
	s.checkReentry()
	s.handle()
	s.schedule()
}

// Snapshot returns a copy of the clock and event table.
func (s *Scheduler) Snapshot() State {
	return State{
		Now:    s.now,
		Events: s.events,
	}
}

// Restore the clock and event table from a previous snapshot. Events that
// trigger on the restored cycle are not handled until HandleActiveEvents() is
// called.
func (s *Scheduler) Restore(state State) {
	s.checkReentry()
	s.now = state.Now
	s.events = state.Events
	s.schedule()
	logger.Logf(logger.Allow, "events", "restored to cycle %d", s.now)
}

// Reset the clock to zero and deactivate all events. Handlers remain
// registered.
func (s *Scheduler) Reset() {
	s.checkReentry()
	s.now = 0
	s.events = [NumSlots]Event{}
	s.schedule()
}
