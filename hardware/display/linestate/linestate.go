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

// Package linestate records, for every scanline of the frame, whether the line
// needs to be drawn.
//
// Lines that are unchanged since the previous frame are not drawn again. A
// line that is black, or that is a copy of the line above it, is remembered
// between frames so that it is only drawn once.
package linestate

import (
	"fmt"

	"github.com/jetsetilly/denise/hardware/specification"
)

// State of a single scanline.
type State int

// List of valid State values.
const (
	// the hardware has not yet reported on the line
	Undecided State = iota

	// the line is to be drawn
	Decided

	// the line is to be drawn and the result copied to the line below
	DecidedDouble

	// the line is the second line of a doubled pair and should be drawn
	// using the decision of the line above
	AsPrevious

	// the line is to be filled with black
	Black

	// the line was filled with black and does not need to be drawn again
	RememberedAsBlack

	// the line has been drawn or does not need to be drawn
	Done

	// the line has been drawn as the second line of a doubled pair
	DoneAsPrevious

	// the line was drawn as the second line of a doubled pair in the previous
	// frame
	RememberedAsPrevious
)

func (s State) String() string {
	switch s {
	case Undecided:
		return "undecided"
	case Decided:
		return "decided"
	case DecidedDouble:
		return "decided double"
	case AsPrevious:
		return "as previous"
	case Black:
		return "black"
	case RememberedAsBlack:
		return "remembered as black"
	case Done:
		return "done"
	case DoneAsPrevious:
		return "done as previous"
	case RememberedAsPrevious:
		return "remembered as previous"
	}
	return fmt.Sprintf("unknown state (%d)", int(s))
}

// Terminal returns true if the state requires no drawing for the remainder of
// the frame.
func Terminal(s State) bool {
	switch s {
	case RememberedAsBlack, RememberedAsPrevious, Done, DoneAsPrevious:
		return true
	}
	return false
}

// How the hardware reports a line.
type How int

// List of valid How values.
const (
	// a single line
	Normal How = iota

	// the line is the first of a doubled pair
	Doubled

	// the line below should be black unless it is already remembered as black
	NoBlack

	// the line above should be black if it has not been reported
	Lower

	// the line below should be black if it is not otherwise going to be drawn
	Upper
)

func (h How) String() string {
	switch h {
	case Normal:
		return "normal"
	case Doubled:
		return "doubled"
	case NoBlack:
		return "no black"
	case Lower:
		return "lower"
	case Upper:
		return "upper"
	}
	return fmt.Sprintf("unknown how (%d)", int(h))
}

// Table of line states. Accessing a line outside of the table is a
// programming error and will cause a panic.
type Table struct {
	states []State
}

// NewTable is the preferred method of initialisation for the Table type. The
// table is large enough for an interlaced frame of the largest
// specification.
func NewTable() *Table {
	return &Table{
		states: make([]State, specification.LineCount()),
	}
}

// Len returns the number of lines in the table.
func (t *Table) Len() int {
	return len(t.states)
}

func (t *Table) check(line int) {
	if line < 0 || line >= len(t.states) {
		panic(fmt.Sprintf("linestate: line %d out of range", line))
	}
}

// Get the state of a line.
func (t *Table) Get(line int) State {
	t.check(line)
	return t.states[line]
}

// Set the state of a line.
func (t *Table) Set(line int, s State) {
	t.check(line)
	t.states[line] = s
}

// Prev returns the state of the line above. Returns false if there is no line
// above.
func (t *Table) Prev(line int) (State, bool) {
	t.check(line)
	if line == 0 {
		return Undecided, false
	}
	return t.states[line-1], true
}

// Next returns the state of the line below. Returns false if there is no line
// below.
func (t *Table) Next(line int) (State, bool) {
	t.check(line)
	if line+1 >= len(t.states) {
		return Undecided, false
	}
	return t.states[line+1], true
}

// Reset every line to the undecided state.
func (t *Table) Reset() {
	clear(t.states)
}

// NewFrame prepares the table for a new frame. Lines that were drawn as the
// second of a doubled pair, and lines that are remembered as black, keep that
// knowledge. Every other line becomes undecided.
func (t *Table) NewFrame() {
	for i, s := range t.states {
		switch s {
		case DoneAsPrevious:
			t.states[i] = RememberedAsPrevious
		case RememberedAsBlack:
		default:
			t.states[i] = Undecided
		}
	}
}

// Record the hardware's report for a line. The changed argument should be true
// if the line differs from the same line in the previous frame or if the whole
// frame needs to be redrawn.
//
// Reports for the second line of a doubled pair are ignored, in which case the
// function returns false.
func (t *Table) Record(line int, how How, changed bool) bool {
	t.check(line)

	switch t.states[line] {
	case AsPrevious, DoneAsPrevious:
		return false
	}

	decided := Done
	if changed {
		decided = Decided
	}

	switch how {
	case Normal:
		t.states[line] = decided

	case Doubled:
		if changed {
			t.states[line] = DecidedDouble
		} else {
			t.states[line] = Done
		}
		if next, ok := t.Next(line); ok {
			if changed || next != RememberedAsPrevious {
				t.states[line+1] = AsPrevious
			} else {
				t.states[line+1] = DoneAsPrevious
			}
		}

	case NoBlack:
		t.states[line] = decided
		if next, ok := t.Next(line); ok && next != RememberedAsBlack {
			t.states[line+1] = Black
		}

	case Lower:
		if prev, ok := t.Prev(line); ok && prev == Undecided {
			t.states[line-1] = Black
		}
		t.states[line] = decided

	case Upper:
		t.states[line] = decided
		if next, ok := t.Next(line); ok {
			switch next {
			case Undecided, RememberedAsPrevious, AsPrevious:
				t.states[line+1] = Black
			}
		}
	}

	return true
}
