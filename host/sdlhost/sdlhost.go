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

// Package sdlhost is a host display using SDL. The buffer is copied to a
// streaming texture when the screen is unlocked and the texture is presented
// at the end of every frame.
//
// SDL functions must be called from the main thread. The emulation should be
// run in the main thread and Service() called between frames.
package sdlhost

import (
	"github.com/jetsetilly/denise/curated"
	"github.com/jetsetilly/denise/hardware/display/vidbuf"
	"github.com/jetsetilly/denise/logger"
	"github.com/veandco/go-sdl2/sdl"
)

// Host implements the vidbuf.Host interface.
type Host struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	buf   *vidbuf.Buffer
	scale int

	// the texture memory while the screen is locked
	pixels []byte
	pitch  int

	// OnClick is called when the left mouse button is pressed, with the
	// coordinates of the click in the buffer
	OnClick func(x int, y int)
}

// the SDL texture format for each pixel depth, indexed by vidbuf.DepthIndex()
var pixelFormats = [3]uint32{
	uint32(sdl.PIXELFORMAT_RGB332),
	uint32(sdl.PIXELFORMAT_RGB565),
	uint32(sdl.PIXELFORMAT_ARGB8888),
}

// NewHost is the preferred method of initialisation for the Host type. The
// window is scaled by the scale value.
func NewHost(title string, width int, height int, pixBytes int, scale int) (*Host, error) {
	vidbuf.CheckDepth(pixBytes)
	scale = max(1, scale)

	h := &Host{
		buf:   vidbuf.NewBuffer(width, height, pixBytes),
		scale: scale,
	}

	err := sdl.Init(sdl.INIT_VIDEO)
	if err != nil {
		return nil, curated.Errorf("sdl: %v", err)
	}

	h.window, err = sdl.CreateWindow(title,
		int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED),
		int32(width*scale), int32(height*scale),
		uint32(sdl.WINDOW_SHOWN))
	if err != nil {
		sdl.Quit()
		return nil, curated.Errorf("sdl: %v", err)
	}

	h.renderer, err = sdl.CreateRenderer(h.window, -1, uint32(sdl.RENDERER_ACCELERATED))
	if err != nil {
		h.Destroy()
		return nil, curated.Errorf("sdl: %v", err)
	}

	h.texture, err = h.renderer.CreateTexture(pixelFormats[vidbuf.DepthIndex(pixBytes)],
		int(sdl.TEXTUREACCESS_STREAMING), int32(width), int32(height))
	if err != nil {
		h.Destroy()
		return nil, curated.Errorf("sdl: %v", err)
	}

	logger.Logf(logger.Allow, "sdl", "window %dx%d (scale %d)", width, height, scale)

	return h, nil
}

// Destroy SDL resources. Must be called before the program ends.
func (h *Host) Destroy() {
	if h.texture != nil {
		h.texture.Destroy()
		h.texture = nil
	}
	if h.renderer != nil {
		h.renderer.Destroy()
		h.renderer = nil
	}
	if h.window != nil {
		h.window.Destroy()
		h.window = nil
	}
	sdl.Quit()
}

// Service SDL events. Returns false if the window has been closed or if the
// escape key has been pressed.
func (h *Host) Service() bool {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			return false

		case *sdl.KeyboardEvent:
			if ev.Type == sdl.KEYDOWN && ev.Keysym.Sym == sdl.K_ESCAPE {
				return false
			}

		case *sdl.MouseButtonEvent:
			if ev.Type == sdl.MOUSEBUTTONDOWN && ev.Button == sdl.BUTTON_LEFT && h.OnClick != nil {
				h.OnClick(int(ev.X)/h.scale, int(ev.Y)/h.scale)
			}
		}
	}
	return true
}

// Buffer implements the vidbuf.Host interface.
func (h *Host) Buffer() *vidbuf.Buffer {
	return h.buf
}

// LockScreen implements the vidbuf.Host interface.
func (h *Host) LockScreen() bool {
	var err error
	h.pixels, h.pitch, err = h.texture.Lock(nil)
	if err != nil {
		logger.Logf(logger.Allow, "sdl", "texture lock: %v", err)
		return false
	}
	return true
}

// UnlockScreen implements the vidbuf.Host interface. The entire buffer is
// copied because the contents of locked texture memory are undefined.
func (h *Host) UnlockScreen() {
	for y := range h.buf.Height {
		copy(h.pixels[y*h.pitch:], h.buf.Row(y))
	}
	h.texture.Unlock()
	h.pixels = nil
}

// FlushLine implements the vidbuf.Host interface.
func (h *Host) FlushLine(_ int) {
}

// FlushBlock implements the vidbuf.Host interface.
func (h *Host) FlushBlock(_ int, _ int) {
}

// FlushScreen implements the vidbuf.Host interface.
func (h *Host) FlushScreen(_ int, _ int) {
	err := h.renderer.Clear()
	if err != nil {
		logger.Logf(logger.Allow, "sdl", "clear: %v", err)
		return
	}
	err = h.renderer.Copy(h.texture, nil, nil)
	if err != nil {
		logger.Logf(logger.Allow, "sdl", "copy: %v", err)
		return
	}
	h.renderer.Present()
}
