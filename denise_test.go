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

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/denise/test"
)

func TestDigestMode(t *testing.T) {
	t.Chdir(t.TempDir())

	var a strings.Builder
	test.ExpectEquality(t, launch([]string{"DIGEST", "-frames", "3"}, &a), exitOK)
	test.ExpectSuccess(t, strings.Contains(a.String(), "video: "))
	test.ExpectSuccess(t, strings.Contains(a.String(), "(3 frames)"))
	test.ExpectSuccess(t, strings.Contains(a.String(), "audio: "))

	var b strings.Builder
	test.ExpectEquality(t, launch([]string{"DIGEST", "-frames", "3"}, &b), exitOK)
	test.ExpectEquality(t, a.String(), b.String())

	var c strings.Builder
	test.ExpectEquality(t, launch([]string{"DIGEST", "-frames", "3", "-pattern", "ham"}, &c), exitOK)
	test.ExpectInequality(t, a.String(), c.String())
}

func TestDigestWav(t *testing.T) {
	t.Chdir(t.TempDir())

	var s strings.Builder
	test.ExpectEquality(t, launch([]string{"DIGEST", "-frames", "1", "-wav", "out.wav"}, &s), exitOK)

	info, err := os.Stat("out.wav")
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, info.Size() > 44)
}

func TestImageMode(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	var s strings.Builder
	test.ExpectEquality(t, launch([]string{"IMAGE", "-frames", "2", "-visualise", "display.dot", "frame.png"}, &s), exitOK)
	test.ExpectSuccess(t, strings.Contains(s.String(), "frame.png: 2 frames presented"))

	_, err := os.Stat(filepath.Join(dir, "frame.png"))
	test.ExpectSuccess(t, err)

	dot, err := os.ReadFile(filepath.Join(dir, "display.dot"))
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(string(dot), "digraph"))

	s.Reset()
	test.ExpectEquality(t, launch([]string{"IMAGE"}, &s), exitMode)
	test.ExpectSuccess(t, strings.Contains(s.String(), "PNG filename required"))
}

func TestBadArguments(t *testing.T) {
	t.Chdir(t.TempDir())

	var s strings.Builder
	test.ExpectEquality(t, launch([]string{"DIGEST", "-spec", "SECAM"}, &s), exitMode)
	test.ExpectSuccess(t, strings.Contains(s.String(), "unknown video specification: SECAM"))

	s.Reset()
	test.ExpectEquality(t, launch([]string{"DIGEST", "-pattern", "stripes"}, &s), exitMode)
	test.ExpectSuccess(t, strings.Contains(s.String(), "unknown test pattern: stripes"))

	s.Reset()
	test.ExpectEquality(t, launch([]string{"PERFORMANCE", "-profile", "disk"}, &s), exitMode)

	s.Reset()
	test.ExpectEquality(t, launch([]string{"DIGEST", "extra"}, &s), exitMode)
	test.ExpectSuccess(t, strings.Contains(s.String(), "too many arguments"))
}

func TestPrefsOverride(t *testing.T) {
	t.Chdir(t.TempDir())

	var a strings.Builder
	test.ExpectEquality(t, launch([]string{"DIGEST", "-frames", "2"}, &a), exitOK)

	var b strings.Builder
	test.ExpectEquality(t, launch([]string{"DIGEST", "-frames", "2", "-prefs", "display.lores::false"}, &b), exitOK)
	test.ExpectInequality(t, a.String(), b.String())
}

func TestHelp(t *testing.T) {
	var s strings.Builder
	test.ExpectEquality(t, launch([]string{"-help"}, &s), exitOK)
	test.ExpectSuccess(t, strings.Contains(s.String(), "DIGEST"))

	s.Reset()
	test.ExpectEquality(t, launch([]string{"IMAGE", "-help"}, &s), exitOK)
	test.ExpectSuccess(t, strings.Contains(s.String(), "-pattern"))
}
