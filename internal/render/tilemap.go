package render

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tile-hero/internal/core"
	"github.com/vovakirdan/tile-hero/internal/world"
)

// ErrFellOutOfWorld is returned when the map to draw is not loaded.
var ErrFellOutOfWorld = errors.New("fell out of the world")

// Tile colors.
var (
	FloorColor = core.ColorGrey
	WallColor  = core.ColorWhite
)

// RenderTileMap clears the window to black and draws every tile of the map
// under key, shifted by the world's render offset. A tile that fails to
// rasterize is skipped; a missing map returns ErrFellOutOfWorld after the clear.
func RenderTileMap(window core.Rectangle, w *world.World, key world.TileMapKey, dst *Buffer) error {
	_ = RenderRectangle(window, window, core.ColorBlack, dst)

	m, ok := w.TileMap(key)
	if !ok {
		return fmt.Errorf("render map %v: %w", key, ErrFellOutOfWorld)
	}

	originX := -w.OffsetX
	originY := -w.OffsetY
	for row := 0; row < m.Rows(); row++ {
		for column := 0; column < m.Columns(); column++ {
			color := WallColor
			if m.Traversable(row, column) {
				color = FloorColor
			}
			tile := core.NewRect(
				float64(row)*w.TileHeight+originY,
				float64(column)*w.TileWidth+originX,
				w.TileHeight,
				w.TileWidth,
			)
			_ = RenderRectangle(window, tile, color, dst)
		}
	}
	return nil
}
