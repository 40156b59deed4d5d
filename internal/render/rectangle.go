package render

import (
	"github.com/vovakirdan/tile-hero/internal/core"
)

// RenderRectangle fills rect with a solid color. The rectangle is clipped to
// window, rounded to whole pixels and flipped from y-up space into buffer
// rows. Rounding failures are returned untouched so callers can drop the
// rectangle for this frame.
func RenderRectangle(window, rect core.Rectangle, color core.Color, dst *Buffer) error {
	clipped, err := rect.BoundTo(window).Round()
	if err != nil {
		return err
	}
	if clipped.Width() == 0 {
		return nil
	}
	win, err := window.Round()
	if err != nil {
		return err
	}

	pitch := dst.Width()
	firstRow := win.Top - clipped.Top
	lastRow := win.Top - clipped.Bottom
	left := min(clipped.Left, pitch)
	right := min(clipped.Right, pitch)
	if firstRow < 0 {
		firstRow = 0
	}
	if lastRow > dst.Height() {
		lastRow = dst.Height()
	}
	if left >= right {
		return nil
	}

	p := core.PixelOf(color)
	pixels := dst.Pixels()
	for row := firstRow; row < lastRow; row++ {
		line := pixels[row*pitch+left : row*pitch+right]
		for i := range line {
			line[i] = p
		}
	}
	return nil
}
