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

package imagehost_test

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/denise/hardware/chipset"
	"github.com/jetsetilly/denise/hardware/display"
	"github.com/jetsetilly/denise/hardware/display/vidbuf"
	"github.com/jetsetilly/denise/hardware/events"
	"github.com/jetsetilly/denise/hardware/specification"
	"github.com/jetsetilly/denise/host/imagehost"
	"github.com/jetsetilly/denise/test"
)

func TestImage(t *testing.T) {
	h := imagehost.NewHost(4, 2, 4)
	w := vidbuf.Writers[vidbuf.DepthIndex(4)]
	w(h.Buffer().Row(1), 2, vidbuf.Encode(4, 0xf00))

	img := h.Image(1)
	test.ExpectEquality(t, img.Bounds().Dx(), 4)
	test.ExpectEquality(t, img.At(2, 1), color.Color(color.RGBA{R: 0xff, A: 0xff}))

	img = h.Image(3)
	test.ExpectEquality(t, img.Bounds().Dx(), 12)
	test.ExpectEquality(t, img.Bounds().Dy(), 6)
	test.ExpectEquality(t, img.At(6, 3), color.Color(color.RGBA{R: 0xff, A: 0xff}))
	test.ExpectEquality(t, img.At(8, 5), color.Color(color.RGBA{R: 0xff, A: 0xff}))
	test.ExpectEquality(t, img.At(9, 3), color.Color(color.RGBA{A: 0xff}))

	var b bytes.Buffer
	test.DemandSuccess(t, h.Encode(&b, 2))
	dec, err := png.Decode(&b)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, dec.Bounds().Dx(), 8)
}

func TestFrames(t *testing.T) {
	t.Chdir(t.TempDir())

	prefs, err := display.NewPreferences()
	test.DemandSuccess(t, err)

	h := imagehost.NewHost(320, 256, 4)
	d := display.NewDrawing(h, specification.SpecPAL, prefs)
	c := chipset.NewChipset(events.NewScheduler(), d, specification.SpecPAL, chipset.Config{})
	test.DemandSuccess(t, c.Run(context.Background(), 2))

	n, first, last := h.Presented()
	test.ExpectEquality(t, n, 2)
	test.ExpectEquality(t, first, 0)
	test.ExpectEquality(t, last, 255)

	fn := filepath.Join(t.TempDir(), "frame.png")
	test.ExpectSuccess(t, h.Save(fn, 2))
}
