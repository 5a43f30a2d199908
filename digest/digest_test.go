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

package digest_test

import (
	"context"
	"testing"

	"github.com/jetsetilly/denise/digest"
	"github.com/jetsetilly/denise/hardware/chipset"
	"github.com/jetsetilly/denise/hardware/display"
	"github.com/jetsetilly/denise/hardware/events"
	"github.com/jetsetilly/denise/hardware/specification"
	"github.com/jetsetilly/denise/test"
)

// run the demo chipset for a number of frames and return the digests
func run(t *testing.T, cfg chipset.Config, frames int) (string, string) {
	t.Helper()

	prefs, err := display.NewPreferences()
	test.DemandSuccess(t, err)

	vid := digest.NewVideo(320, 256, 4)
	aud := digest.NewAudio()

	d := display.NewDrawing(vid, specification.SpecPAL, prefs)
	c := chipset.NewChipset(events.NewScheduler(), d, specification.SpecPAL, cfg)
	c.SetAudio(aud)

	test.DemandSuccess(t, c.Run(context.Background(), frames))
	test.ExpectEquality(t, vid.Frames(), frames)
	aud.Flush()

	return vid.Hash(), aud.Hash()
}

func TestDigest(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg := chipset.Config{Sprites: true}
	v1, a1 := run(t, cfg, 5)
	v2, a2 := run(t, cfg, 5)
	test.ExpectEquality(t, v1, v2)
	test.ExpectEquality(t, a1, a2)

	// a different number of frames
	v3, _ := run(t, cfg, 6)
	test.ExpectInequality(t, v1, v3)

	// a different pattern
	cfg.Pattern = chipset.HoldAndModify
	v4, a4 := run(t, cfg, 5)
	test.ExpectInequality(t, v1, v4)
	test.ExpectEquality(t, a1, a4)
}

func TestVideo(t *testing.T) {
	vid := digest.NewVideo(16, 16, 4)
	empty := vid.Hash()

	vid.LockScreen()
	vid.UnlockScreen()
	first := vid.Hash()
	test.ExpectInequality(t, first, empty)

	// the same buffer contents give a different hash because the digests
	// are chained
	vid.LockScreen()
	vid.UnlockScreen()
	test.ExpectInequality(t, vid.Hash(), first)
	test.ExpectEquality(t, vid.Frames(), 2)

	vid.ResetDigest()
	test.ExpectEquality(t, vid.Hash(), empty)
	vid.LockScreen()
	vid.UnlockScreen()
	test.ExpectEquality(t, vid.Hash(), first)

	vid.FlushLine(0)
	vid.FlushBlock(1, 4)
	test.ExpectEquality(t, vid.Rows(), 5)
}

func TestAudio(t *testing.T) {
	aud := digest.NewAudio()
	empty := aud.Hash()

	// nothing to flush
	aud.Flush()
	test.ExpectEquality(t, aud.Hash(), empty)

	aud.SetAudio(100)
	test.ExpectEquality(t, aud.Hash(), empty)
	aud.Flush()
	test.ExpectInequality(t, aud.Hash(), empty)

	// a full buffer is flushed automatically
	aud.ResetDigest()
	for range 4096 {
		aud.SetAudio(-100)
	}
	test.ExpectInequality(t, aud.Hash(), empty)
}
