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

package wavwriter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/jetsetilly/denise/test"
	"github.com/jetsetilly/denise/wavwriter"
)

func TestWavWriter(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "out.wav")

	aw, err := wavwriter.New(fn, 22050)
	test.DemandSuccess(t, err)

	for i := range 1000 {
		if i&16 == 0 {
			aw.SetAudio(8000)
		} else {
			aw.SetAudio(-8000)
		}
	}
	test.ExpectEquality(t, aw.Len(), 1000)
	test.DemandSuccess(t, aw.EndMixing())

	f, err := os.Open(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.ExpectEquality(t, dec.IsValidFile(), true)

	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, int(dec.SampleRate), 22050)
	test.ExpectEquality(t, int(dec.NumChans), 1)
	if test.ExpectEquality(t, len(buf.Data), 1000) {
		test.ExpectEquality(t, buf.Data[0], 8000)
		test.ExpectEquality(t, buf.Data[16], -8000)
	}

	aw.Reset()
	test.ExpectEquality(t, aw.Len(), 0)
}

func TestBadSampleRate(t *testing.T) {
	_, err := wavwriter.New("out.wav", 0)
	test.ExpectFailure(t, err)
}
