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

// Package vidbuf describes the pixel buffer of the host display and the
// interface that a host must implement for the buffer to be drawn to.
//
// Pixels are stored in one of three formats, depending on the depth of the
// buffer:
//
//	1 byte:  RGB332
//	2 bytes: RGB565, little endian
//	4 bytes: ARGB8888, little endian
package vidbuf

import (
	"encoding/binary"
	"image"
	"image/color"

	"github.com/jetsetilly/denise/curated"
)

// BadDepth is the pattern used for errors caused by an unsupported pixel depth.
const BadDepth = "vidbuf: unsupported pixel depth (%d bytes)"

// Host is implemented by the host display.
type Host interface {
	// the buffer that will be drawn into. the buffer must not change between
	// calls to LockScreen() and UnlockScreen()
	Buffer() *Buffer

	// LockScreen returns false if the buffer is not available for drawing.
	// UnlockScreen() is only called if LockScreen() returned true
	LockScreen() bool
	UnlockScreen()

	// the pixels in the row, or rows, are final
	FlushLine(row int)
	FlushBlock(first, last int)

	// the frame is complete. first and last are the first and last rows that
	// were drawn. if no rows were drawn then first will be greater than last
	FlushScreen(first, last int)
}

// Buffer is the memory that the host display is drawn from.
type Buffer struct {
	Mem      []byte
	RowBytes int
	PixBytes int

	// size of the buffer in pixels
	Width  int
	Height int

	// the maximum number of rows that can be flushed with a single call to
	// FlushBlock(). if zero then FlushLine() is called for each row
	MaxBlockLines int

	// if LineMem is not nil then lines are drawn into LineMem rather than Mem
	// and it is the responsibility of the host to copy LineMem to the row
	// indicated by FlushLine(). MaxBlockLines is ignored when LineMem is used
	LineMem []byte

	// scratch memory of at least RowBytes in size. used to draw doubled lines
	// when LineMem is not used. can be nil
	EmergMem []byte
}

// NewBuffer is the preferred method of initialisation for the Buffer type.
// The emergency memory is allocated but line memory is not.
//
// Panics if pixBytes is not 1, 2 or 4.
func NewBuffer(width int, height int, pixBytes int) *Buffer {
	CheckDepth(pixBytes)
	b := &Buffer{
		RowBytes: width * pixBytes,
		PixBytes: pixBytes,
		Width:    width,
		Height:   height,
	}
	b.Mem = make([]byte, b.RowBytes*height)
	b.EmergMem = make([]byte, b.RowBytes)
	return b
}

// CheckDepth panics if the number of bytes per pixel is not supported.
func CheckDepth(pixBytes int) {
	switch pixBytes {
	case 1, 2, 4:
	default:
		panic(curated.Errorf(BadDepth, pixBytes))
	}
}

// DepthIndex returns 0, 1 or 2 for depths of 1, 2 and 4 bytes.
//
// Panics if pixBytes is not 1, 2 or 4.
func DepthIndex(pixBytes int) int {
	CheckDepth(pixBytes)
	return pixBytes >> 1
}

// Row returns the memory for the row. The length of the slice is exactly the
// width of the buffer.
func (b *Buffer) Row(y int) []byte {
	o := y * b.RowBytes
	return b.Mem[o : o+b.Width*b.PixBytes]
}

// Pixel returns the raw pixel value at the coordinates.
func (b *Buffer) Pixel(x, y int) uint32 {
	return Read(b.PixBytes, b.Row(y), x)
}

// Clear sets every pixel in the buffer to zero.
func (b *Buffer) Clear() {
	clear(b.Mem)
}

// Image converts the buffer to an RGBA image.
func (b *Buffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := range b.Height {
		row := b.Row(y)
		for x := range b.Width {
			img.SetRGBA(x, y, Decode(b.PixBytes, Read(b.PixBytes, row, x)))
		}
	}
	return img
}

// Writer writes a single pixel value to the row at position x.
type Writer func(row []byte, x int, v uint32)

// Writers for each pixel depth, indexed by the value returned by DepthIndex().
var Writers = [3]Writer{write8, write16, write32}

func write8(row []byte, x int, v uint32) {
	row[x] = uint8(v)
}

func write16(row []byte, x int, v uint32) {
	binary.LittleEndian.PutUint16(row[x*2:], uint16(v))
}

func write32(row []byte, x int, v uint32) {
	binary.LittleEndian.PutUint32(row[x*4:], v)
}

// Read returns the raw pixel value at position x of the row.
func Read(pixBytes int, row []byte, x int) uint32 {
	switch pixBytes {
	case 1:
		return uint32(row[x])
	case 2:
		return uint32(binary.LittleEndian.Uint16(row[x*2:]))
	case 4:
		return binary.LittleEndian.Uint32(row[x*4:])
	}
	panic(curated.Errorf(BadDepth, pixBytes))
}

// Palette converts 12bit RGB values to pixel values of a single depth.
type Palette struct {
	pixBytes int
	colors   [4096]uint32
}

// NewPalette is the preferred method of initialisation for the Palette type.
//
// Panics if pixBytes is not 1, 2 or 4.
func NewPalette(pixBytes int) *Palette {
	CheckDepth(pixBytes)
	p := &Palette{pixBytes: pixBytes}
	for rgb := range p.colors {
		p.colors[rgb] = Encode(pixBytes, uint16(rgb))
	}
	return p
}

// PixBytes returns the depth of the palette.
func (p *Palette) PixBytes() int {
	return p.pixBytes
}

// XColor returns the pixel value for the 12bit RGB value.
func (p *Palette) XColor(rgb uint16) uint32 {
	return p.colors[rgb&0xfff]
}

// Encode converts a 12bit RGB value to a pixel value.
func Encode(pixBytes int, rgb uint16) uint32 {
	r := uint32(rgb>>8) & 0x0f
	g := uint32(rgb>>4) & 0x0f
	b := uint32(rgb) & 0x0f

	switch pixBytes {
	case 1:
		return (r>>1)<<5 | (g>>1)<<2 | b>>2
	case 2:
		return (r<<1|r>>3)<<11 | (g<<2|g>>2)<<5 | (b<<1 | b>>3)
	case 4:
		return 0xff000000 | (r*0x11)<<16 | (g*0x11)<<8 | b*0x11
	}
	panic(curated.Errorf(BadDepth, pixBytes))
}

// Decode converts a pixel value to a colour.
func Decode(pixBytes int, v uint32) color.RGBA {
	switch pixBytes {
	case 1:
		r := (v >> 5) & 0x07
		g := (v >> 2) & 0x07
		b := v & 0x03
		return color.RGBA{R: uint8(r * 255 / 7), G: uint8(g * 255 / 7), B: uint8(b * 255 / 3), A: 255}
	case 2:
		r := uint8(v>>11) & 0x1f
		g := uint8(v>>5) & 0x3f
		b := uint8(v) & 0x1f
		return color.RGBA{R: r<<3 | r>>2, G: g<<2 | g>>4, B: b<<3 | b>>2, A: 255}
	case 4:
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
	}
	panic(curated.Errorf(BadDepth, pixBytes))
}
