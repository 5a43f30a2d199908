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

package termquit

import (
	"context"
	"io"
	"testing"

	"github.com/jetsetilly/denise/test"
)

// reader returns each byte of the string in turn and then returns io.EOF
// forever, like a terminal with a read timeout
type reader struct {
	s string
}

func (r *reader) Read(b []byte) (int, error) {
	if len(r.s) == 0 {
		return 0, io.EOF
	}
	b[0] = r.s[0]
	r.s = r.s[1:]
	return 1, nil
}

func TestIsQuit(t *testing.T) {
	test.ExpectEquality(t, IsQuit('q'), true)
	test.ExpectEquality(t, IsQuit('Q'), true)
	test.ExpectEquality(t, IsQuit(0x1b), true)
	test.ExpectEquality(t, IsQuit('a'), false)
}

func TestWatchQuitKey(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := &Watcher{done: make(chan bool)}
	w.watch(ctx, &reader{s: "abq"}, cancel)

	test.ExpectFailure(t, ctx.Err())
}

func TestWatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	w := &Watcher{done: make(chan bool)}
	go w.watch(ctx, &reader{}, func() {})
	cancel()

	// watch() returns once the context is done
	<-w.done
	test.ExpectFailure(t, ctx.Err())
}
