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

package linestate_test

import (
	"testing"

	"github.com/jetsetilly/denise/hardware/display/linestate"
	"github.com/jetsetilly/denise/test"
)

func TestNormal(t *testing.T) {
	tab := linestate.NewTable()
	test.ExpectEquality(t, tab.Get(100), linestate.Undecided)

	test.ExpectSuccess(t, tab.Record(100, linestate.Normal, true))
	test.ExpectEquality(t, tab.Get(100), linestate.Decided)

	test.ExpectSuccess(t, tab.Record(101, linestate.Normal, false))
	test.ExpectEquality(t, tab.Get(101), linestate.Done)
}

func TestDoubled(t *testing.T) {
	tab := linestate.NewTable()

	// a changed doubled line forces the following line to be drawn as a copy
	test.ExpectSuccess(t, tab.Record(50, linestate.Doubled, true))
	test.ExpectEquality(t, tab.Get(50), linestate.DecidedDouble)
	test.ExpectEquality(t, tab.Get(51), linestate.AsPrevious)

	// the paired line can not be decided independently
	test.ExpectFailure(t, tab.Record(51, linestate.Normal, true))
	test.ExpectEquality(t, tab.Get(51), linestate.AsPrevious)

	// an unchanged doubled line still needs the pair to be drawn unless the
	// pair was remembered from the previous frame
	test.ExpectSuccess(t, tab.Record(60, linestate.Doubled, false))
	test.ExpectEquality(t, tab.Get(60), linestate.Done)
	test.ExpectEquality(t, tab.Get(61), linestate.AsPrevious)

	tab.Set(71, linestate.RememberedAsPrevious)
	test.ExpectSuccess(t, tab.Record(70, linestate.Doubled, false))
	test.ExpectEquality(t, tab.Get(70), linestate.Done)
	test.ExpectEquality(t, tab.Get(71), linestate.DoneAsPrevious)
	test.ExpectFailure(t, tab.Record(71, linestate.Doubled, true))
}

func TestDoubledPairNeverDecided(t *testing.T) {
	tab := linestate.NewTable()

	for frame := range 4 {
		changed := frame%2 == 0
		for line := 40; line < 80; line += 2 {
			tab.Record(line, linestate.Doubled, changed)

			// a misbehaving hardware report for the pair
			tab.Record(line+1, linestate.Normal, true)
		}

		for line := 41; line < 80; line += 2 {
			s := tab.Get(line)
			ok := s == linestate.AsPrevious || s == linestate.DoneAsPrevious
			test.ExpectSuccess(t, ok, line, s)
		}

		// simulate drawing of the frame
		for line := 41; line < 80; line += 2 {
			tab.Set(line, linestate.DoneAsPrevious)
		}
		tab.NewFrame()
	}
}

func TestBlackNeighbours(t *testing.T) {
	tab := linestate.NewTable()

	test.ExpectSuccess(t, tab.Record(10, linestate.NoBlack, true))
	test.ExpectEquality(t, tab.Get(10), linestate.Decided)
	test.ExpectEquality(t, tab.Get(11), linestate.Black)

	// a line already remembered as black stays that way
	tab.Set(21, linestate.RememberedAsBlack)
	tab.Record(20, linestate.NoBlack, false)
	test.ExpectEquality(t, tab.Get(21), linestate.RememberedAsBlack)

	// lower only affects an undecided line above
	tab.Record(31, linestate.Lower, true)
	test.ExpectEquality(t, tab.Get(30), linestate.Black)
	tab.Set(40, linestate.Done)
	tab.Record(41, linestate.Lower, true)
	test.ExpectEquality(t, tab.Get(40), linestate.Done)

	// upper
	tab.Record(50, linestate.Upper, false)
	test.ExpectEquality(t, tab.Get(50), linestate.Done)
	test.ExpectEquality(t, tab.Get(51), linestate.Black)
	tab.Set(61, linestate.Decided)
	tab.Record(60, linestate.Upper, false)
	test.ExpectEquality(t, tab.Get(61), linestate.Decided)

	// there is no line above the first line
	test.ExpectSuccess(t, tab.Record(0, linestate.Lower, true))
	test.ExpectEquality(t, tab.Get(0), linestate.Decided)

	// nor is there a line below the last line
	last := tab.Len() - 1
	test.ExpectSuccess(t, tab.Record(last, linestate.Upper, true))
}

func TestNewFrame(t *testing.T) {
	tab := linestate.NewTable()
	tab.Set(1, linestate.DoneAsPrevious)
	tab.Set(2, linestate.RememberedAsBlack)
	tab.Set(3, linestate.Done)
	tab.Set(4, linestate.AsPrevious)
	tab.Set(5, linestate.RememberedAsPrevious)

	tab.NewFrame()
	test.ExpectEquality(t, tab.Get(1), linestate.RememberedAsPrevious)
	test.ExpectEquality(t, tab.Get(2), linestate.RememberedAsBlack)
	test.ExpectEquality(t, tab.Get(3), linestate.Undecided)
	test.ExpectEquality(t, tab.Get(4), linestate.Undecided)
	test.ExpectEquality(t, tab.Get(5), linestate.Undecided)

	tab.Reset()
	test.ExpectEquality(t, tab.Get(1), linestate.Undecided)
	test.ExpectEquality(t, tab.Get(2), linestate.Undecided)
}

func TestTerminal(t *testing.T) {
	test.ExpectSuccess(t, linestate.Terminal(linestate.Done))
	test.ExpectSuccess(t, linestate.Terminal(linestate.DoneAsPrevious))
	test.ExpectSuccess(t, linestate.Terminal(linestate.RememberedAsBlack))
	test.ExpectSuccess(t, linestate.Terminal(linestate.RememberedAsPrevious))
	test.ExpectFailure(t, linestate.Terminal(linestate.Decided))
	test.ExpectFailure(t, linestate.Terminal(linestate.Black))
	test.ExpectFailure(t, linestate.Terminal(linestate.AsPrevious))
}

func TestBounds(t *testing.T) {
	tab := linestate.NewTable()
	test.ExpectPanic(t, func() { tab.Get(-1) })
	test.ExpectPanic(t, func() { tab.Set(tab.Len(), linestate.Done) })
}
