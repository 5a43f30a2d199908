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

package performance_test

import (
	"strings"
	"testing"
	"time"

	"github.com/jetsetilly/denise/digest"
	"github.com/jetsetilly/denise/hardware/chipset"
	"github.com/jetsetilly/denise/hardware/display"
	"github.com/jetsetilly/denise/hardware/events"
	"github.com/jetsetilly/denise/hardware/specification"
	"github.com/jetsetilly/denise/performance"
	"github.com/jetsetilly/denise/test"
)

func TestCalcFPS(t *testing.T) {
	fps, accuracy := performance.CalcFPS(specification.SpecPAL, 100, 2.0)
	test.ExpectApproximate(t, fps, 50.0, 0.001)
	test.ExpectApproximate(t, accuracy, 100.0, 0.001)

	fps, accuracy = performance.CalcFPS(specification.SpecNTSC, 30, 1.0)
	test.ExpectApproximate(t, fps, 30.0, 0.001)
	test.ExpectApproximate(t, accuracy, 50.0, 0.001)

	fps, accuracy = performance.CalcFPS(specification.SpecPAL, 30, 0)
	test.ExpectEquality(t, fps, 0.0)
	test.ExpectEquality(t, accuracy, 0.0)
}

func TestParseProfile(t *testing.T) {
	p, err := performance.ParseProfile("none")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)
	test.ExpectEquality(t, p.String(), "NONE")

	p, err = performance.ParseProfile("cpu, trace")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileTrace)
	test.ExpectEquality(t, p.String(), "CPU,TRACE")

	p, err = performance.ParseProfile("ALL")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p.String(), "CPU,MEM,TRACE")

	_, err = performance.ParseProfile("cpu,disk")
	test.ExpectFailure(t, err)
}

func TestRunProfiler(t *testing.T) {
	t.Chdir(t.TempDir())

	var ran bool
	err := performance.RunProfiler(performance.ProfileNone, "test", func() error {
		ran = true
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, ran)
}

func TestCheck(t *testing.T) {
	t.Chdir(t.TempDir())

	prefs, err := display.NewPreferences()
	test.DemandSuccess(t, err)

	spec := specification.SpecPAL
	disp := display.NewDrawing(digest.NewVideo(320, 256, 4), spec, prefs)
	chip := chipset.NewChipset(events.NewScheduler(), disp, spec, chipset.Config{})

	var s strings.Builder
	err = performance.Check(&s, performance.ProfileNone, chip, spec, 0, 50*time.Millisecond)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(s.String(), "fps"))

	err = performance.Check(&s, performance.ProfileNone, chip, spec, 0, 0)
	test.ExpectFailure(t, err)
}
