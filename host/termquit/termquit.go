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

// Package termquit watches the terminal for the quit key while the emulation
// is running headlessly. The terminal is put into cbreak mode so that key
// presses are seen without the return key being pressed.
package termquit

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/jetsetilly/denise/curated"
	"github.com/jetsetilly/denise/logger"
	"github.com/pkg/term"
)

// the terminal device to watch
const device = "/dev/tty"

// how often the watcher checks for the context being done
const pollInterval = 100 * time.Millisecond

// Watcher cancels a context when the quit key is pressed.
type Watcher struct {
	t    *term.Term
	done chan bool
}

// IsQuit returns true if the key should cause the emulation to quit.
func IsQuit(b byte) bool {
	switch b {
	case 'q', 'Q', 0x1b:
		return true
	}
	return false
}

// Watch the terminal for the quit key. The cancel function is called when the
// key is pressed. The terminal is restored with Stop().
func Watch(ctx context.Context, cancel context.CancelFunc) (*Watcher, error) {
	t, err := term.Open(device, term.CBreakMode)
	if err != nil {
		return nil, curated.Errorf("termquit: %v", err)
	}

	err = t.SetReadTimeout(pollInterval)
	if err != nil {
		t.Restore()
		t.Close()
		return nil, curated.Errorf("termquit: %v", err)
	}

	w := &Watcher{
		t:    t,
		done: make(chan bool),
	}

	go w.watch(ctx, t, cancel)

	return w, nil
}

func (w *Watcher) watch(ctx context.Context, r io.Reader, cancel context.CancelFunc) {
	defer close(w.done)

	b := make([]byte, 1)
	for ctx.Err() == nil {
		n, err := r.Read(b)
		if err != nil && !errors.Is(err, io.EOF) {
			logger.Logf(logger.Allow, "termquit", "%v", err)
			return
		}
		if n > 0 && IsQuit(b[0]) {
			logger.Log(logger.Allow, "termquit", "quit key pressed")
			cancel()
			return
		}
	}
}

// Stop watching the terminal and restore it to its original mode. The context
// passed to Watch() should be cancelled before calling Stop().
func (w *Watcher) Stop() {
	<-w.done
	w.t.Restore()
	w.t.Close()
}
