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

package vidbuf_test

import (
	"image/color"
	"testing"

	"github.com/jetsetilly/denise/curated"
	"github.com/jetsetilly/denise/hardware/display/vidbuf"
	"github.com/jetsetilly/denise/test"
)

func TestEncode(t *testing.T) {
	test.ExpectEquality(t, vidbuf.Encode(4, 0xf80), 0xffff8800)
	test.ExpectEquality(t, vidbuf.Decode(4, 0xffff8800), color.RGBA{R: 255, G: 136, B: 0, A: 255})

	test.ExpectEquality(t, vidbuf.Decode(2, vidbuf.Encode(2, 0xf80)), color.RGBA{R: 255, G: 138, B: 0, A: 255})
	test.ExpectEquality(t, vidbuf.Decode(2, vidbuf.Encode(2, 0xfff)), color.RGBA{R: 255, G: 255, B: 255, A: 255})

	test.ExpectEquality(t, vidbuf.Encode(1, 0xfff), 0xff)
	test.ExpectEquality(t, vidbuf.Decode(1, 0xff), color.RGBA{R: 255, G: 255, B: 255, A: 255})

	for _, pb := range []int{1, 2, 4} {
		test.ExpectEquality(t, vidbuf.Decode(pb, vidbuf.Encode(pb, 0x000)), color.RGBA{A: 255}, pb)
	}
}

func TestPalette(t *testing.T) {
	p := vidbuf.NewPalette(2)
	test.ExpectEquality(t, p.PixBytes(), 2)
	test.ExpectEquality(t, p.XColor(0x123), vidbuf.Encode(2, 0x123))

	// only the lower 12 bits are used
	test.ExpectEquality(t, p.XColor(0xf123), p.XColor(0x123))
}

func TestBuffer(t *testing.T) {
	for _, pb := range []int{1, 2, 4} {
		b := vidbuf.NewBuffer(16, 4, pb)
		test.ExpectEquality(t, b.RowBytes, 16*pb)
		test.ExpectEquality(t, len(b.Row(3)), 16*pb)
		test.ExpectEquality(t, len(b.EmergMem), b.RowBytes)

		v := vidbuf.Encode(pb, 0x0f0)
		vidbuf.Writers[vidbuf.DepthIndex(pb)](b.Row(2), 5, v)
		test.ExpectEquality(t, b.Pixel(5, 2), v)
		test.ExpectEquality(t, b.Pixel(4, 2), 0)
		test.ExpectEquality(t, b.Pixel(5, 1), 0)

		img := b.Image()
		test.ExpectEquality(t, img.RGBAAt(5, 2), vidbuf.Decode(pb, v))

		b.Clear()
		test.ExpectEquality(t, b.Pixel(5, 2), 0)
	}
}

func TestBadDepth(t *testing.T) {
	r := test.ExpectPanic(t, func() {
		_ = vidbuf.NewBuffer(16, 4, 3)
	})
	err, ok := r.(error)
	test.DemandSuccess(t, ok)
	test.ExpectSuccess(t, curated.Is(err, vidbuf.BadDepth))

	test.ExpectPanic(t, func() {
		_ = vidbuf.DepthIndex(8)
	})
	test.ExpectPanic(t, func() {
		_ = vidbuf.NewPalette(0)
	})
}
