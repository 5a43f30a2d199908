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

import "fmt"

// Cycle is a count of colour clocks since the last reset of the Scheduler.
type Cycle uint64

// Slot identifies an entry in the event table. The order of the slots is the
// order in which events on the same cycle are handled.
type Slot int

// List of valid Slot values.
const (
	Hsync Slot = iota
	Copper
	Audio
	CIA
	Blitter
	Disk

	// the number of event slots
	NumSlots
)

func (s Slot) String() string {
	switch s {
	case Hsync:
		return "hsync"
	case Copper:
		return "copper"
	case Audio:
		return "audio"
	case CIA:
		return "cia"
	case Blitter:
		return "blitter"
	case Disk:
		return "disk"
	}
	return fmt.Sprintf("unknown slot (%d)", int(s))
}

// Handler implementations are called when an event triggers.
type Handler interface {
	Handle()
}

// HandlerFunc allows an ordinary function to be used as a Handler.
type HandlerFunc func()

// Handle implements the Handler interface.
func (f HandlerFunc) Handle() {
	f()
}

// Event is a single entry in the event table.
type Event struct {
	Active  bool
	Trigger Cycle
}

func (ev Event) String() string {
	if !ev.Active {
		return "inactive"
	}
	return fmt.Sprintf("@%d", ev.Trigger)
}

// State is a copy of the clock and of the event table. It does not include the
// event handlers.
type State struct {
	Now    Cycle
	Events [NumSlots]Event
}
