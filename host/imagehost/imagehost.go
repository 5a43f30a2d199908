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

// Package imagehost is a headless host display. The contents of the buffer
// can be saved as a PNG image at any time.
package imagehost

import (
	"image"
	"image/png"
	"io"
	"os"

	"github.com/jetsetilly/denise/curated"
	"github.com/jetsetilly/denise/hardware/display/vidbuf"
	"github.com/jetsetilly/denise/logger"
	"golang.org/x/image/draw"
)

// Host implements the vidbuf.Host interface.
type Host struct {
	buf *vidbuf.Buffer

	// the host rows that were last presented
	first int
	last  int

	presented int
}

// NewHost is the preferred method of initialisation for the Host type. The
// buffer allows rows to be flushed in blocks.
func NewHost(width int, height int, pixBytes int) *Host {
	h := &Host{
		buf: vidbuf.NewBuffer(width, height, pixBytes),
	}
	h.buf.MaxBlockLines = height / 4
	return h
}

// Buffer implements the vidbuf.Host interface.
func (h *Host) Buffer() *vidbuf.Buffer {
	return h.buf
}

// LockScreen implements the vidbuf.Host interface.
func (h *Host) LockScreen() bool {
	return true
}

// UnlockScreen implements the vidbuf.Host interface.
func (h *Host) UnlockScreen() {
}

// FlushLine implements the vidbuf.Host interface.
func (h *Host) FlushLine(_ int) {
}

// FlushBlock implements the vidbuf.Host interface.
func (h *Host) FlushBlock(_ int, _ int) {
}

// FlushScreen implements the vidbuf.Host interface.
func (h *Host) FlushScreen(first int, last int) {
	h.first = first
	h.last = last
	h.presented++
}

// Presented returns the number of frames that have been presented and the
// range of rows presented in the most recent frame.
func (h *Host) Presented() (int, int, int) {
	return h.presented, h.first, h.last
}

// Image returns the contents of the buffer scaled by the scale factor. A
// scale of one or less returns an unscaled image.
func (h *Host) Image(scale int) image.Image {
	src := h.buf.Image()
	if scale <= 1 {
		return src
	}

	r := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx()*scale, r.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, r, draw.Src, nil)
	return dst
}

// Encode writes the scaled image to the writer in the PNG format.
func (h *Host) Encode(w io.Writer, scale int) error {
	err := png.Encode(w, h.Image(scale))
	if err != nil {
		return curated.Errorf("imagehost: %v", err)
	}
	return nil
}

// Save the scaled image to a PNG file.
func (h *Host) Save(filename string, scale int) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return curated.Errorf("imagehost: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = curated.Errorf("imagehost: %v", err)
		}
	}()

	err = h.Encode(f, scale)
	if err != nil {
		return err
	}

	logger.Logf(logger.Allow, "imagehost", "saved image to %s", filename)

	return nil
}
