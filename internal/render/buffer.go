// Package render is the software rasterizer. It paints into a flat pixel
// Buffer that the platform copies to its output surface once per frame.
package render

import (
	"github.com/vovakirdan/tile-hero/internal/core"
)

// Buffer is a flat row-major pixel array. Row 0 is the top of the screen
// and the row pitch equals the width.
type Buffer struct {
	width  int
	height int
	pixels []core.Pixel
}

// NewBuffer creates a cleared buffer with the given dimensions.
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Width returns the buffer width in pixels, which is also the pitch.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int {
	return b.height
}

// Bounds returns the window rectangle in y-up space.
func (b *Buffer) Bounds() core.Rectangle {
	return core.NewRect(0, 0, float64(b.height), float64(b.width))
}

// Resize changes the buffer dimensions, preserving content where possible.
func (b *Buffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == b.width && height == b.height && b.pixels != nil {
		return
	}

	old := b.pixels
	oldW, oldH := b.width, b.height

	b.width = width
	b.height = height
	b.pixels = make([]core.Pixel, width*height)

	copyW := min(oldW, width)
	copyH := min(oldH, height)
	for y := 0; y < copyH; y++ {
		copy(b.pixels[y*width:y*width+copyW], old[y*oldW:y*oldW+copyW])
	}
}

// Clear zeroes every pixel.
func (b *Buffer) Clear() {
	clear(b.pixels)
}

// Fill paints every pixel with one color.
func (b *Buffer) Fill(c core.Color) {
	p := core.PixelOf(c)
	for i := range b.pixels {
		b.pixels[i] = p
	}
}

// Set stores a pixel at column x, row y. Out-of-bounds writes are ignored.
func (b *Buffer) Set(x, y int, p core.Pixel) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.pixels[y*b.width+x] = p
}

// At returns the pixel at column x, row y, or the zero pixel out of bounds.
func (b *Buffer) At(x, y int) core.Pixel {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return core.Pixel{}
	}
	return b.pixels[y*b.width+x]
}

// Pixels exposes the backing slice, length width*height.
func (b *Buffer) Pixels() []core.Pixel {
	return b.pixels
}

// Bytes returns the buffer in blit order: blue, green, red, alpha per pixel.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, 0, len(b.pixels)*4)
	for _, p := range b.pixels {
		out = append(out, p.B, p.G, p.R, p.A)
	}
	return out
}
