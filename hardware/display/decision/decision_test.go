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

package decision_test

import (
	"testing"

	"github.com/jetsetilly/denise/hardware/display/decision"
	"github.com/jetsetilly/denise/test"
)

func TestBplCon(t *testing.T) {
	var d decision.Decision

	d.BplCon0 = 0x4200
	test.ExpectEquality(t, d.Planes(), 4)
	test.ExpectEquality(t, d.Res(), decision.Lores)
	test.ExpectFailure(t, d.HAM())
	test.ExpectFailure(t, d.DualPlayfield())
	test.ExpectFailure(t, d.EHB())

	d.BplCon0 = 0xc200
	test.ExpectEquality(t, d.Planes(), 4)
	test.ExpectEquality(t, d.Res(), decision.Hires)

	d.BplCon0 = 0x6a00
	test.ExpectEquality(t, d.Planes(), 6)
	test.ExpectSuccess(t, d.HAM())
	test.ExpectFailure(t, d.EHB())

	d.BplCon0 = 0x6600
	test.ExpectSuccess(t, d.DualPlayfield())
	test.ExpectFailure(t, d.EHB())

	d.BplCon0 = 0x6200
	test.ExpectSuccess(t, d.EHB())

	d.BplCon0 = 0x1240
	test.ExpectEquality(t, d.Planes(), 1)
	test.ExpectEquality(t, d.Res(), decision.SuperHires)
}

func TestSpriteMask(t *testing.T) {
	var d decision.Decision

	// sprites are behind both playfields
	d.BplCon2 = 0x00
	test.ExpectEquality(t, d.SpriteMask(), uint32(0xffffffff))

	// sprites are in front of both playfields
	d.BplCon2 = 0x24
	p1, p2 := d.PlayfieldPriorities()
	test.ExpectEquality(t, p1, 4)
	test.ExpectEquality(t, p2, 4)
	test.ExpectEquality(t, d.SpriteMask(), uint32(0))

	// first sprite pair is in front of playfield one. all sprites are in front
	// of playfield two
	d.BplCon2 = 0x21
	test.ExpectEquality(t, d.SpriteMask(), uint32(0x0000fff0))

	test.ExpectFailure(t, d.DualPlayfieldPri())
	d.BplCon2 |= 0x40
	test.ExpectSuccess(t, d.DualPlayfieldPri())
}

func TestBorder(t *testing.T) {
	d := decision.Decision{PlfLeft: -1}
	test.ExpectSuccess(t, d.Border())
	test.ExpectEquality(t, d.String(), "border, 0 colour changes")

	d.PlfLeft = 0x38
	test.ExpectFailure(t, d.Border())
}

func TestStore(t *testing.T) {
	s := decision.NewStore()

	var c decision.ColorTable
	c[0] = 0x123
	test.ExpectEquality(t, s.AddColorTable(c), 0)
	c[0] = 0x456
	test.ExpectEquality(t, s.AddColorTable(c), 1)
	test.ExpectEquality(t, s.Colors[0][0], uint16(0x123))
	test.ExpectEquality(t, s.Colors[1][0], uint16(0x456))

	s.NewFrame()
	test.ExpectEquality(t, len(s.Colors), 0)
	test.ExpectEquality(t, s.AddColorTable(c), 0)
}
