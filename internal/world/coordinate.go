package world

import (
	"math"

	"github.com/vovakirdan/tile-hero/internal/core"
)

// Coordinate is a world position decomposed into a tile map key, a tile
// inside that map and a sub-tile pixel offset in [0, tile size) per axis.
// Keeping the float part small avoids drift in large worlds.
//
// The grid shape travels with the coordinate so Shifted needs no World.
// All fields are fixed-size so coordinates can be written to recordings.
type Coordinate struct {
	Key          TileMapKey
	TileX, TileY int64
	Offset       core.Point2D

	Columns, Rows         int64
	TileWidth, TileHeight float64
}

// Shifted moves the coordinate by (dx, dy) pixels, carrying into the tile
// and then into the tile map key on each axis independently.
func (c Coordinate) Shifted(dx, dy float64) Coordinate {
	next := c
	next.Key.X, next.TileX, next.Offset.X = shiftAxis(c.Key.X, c.TileX, c.Offset.X, dx, c.TileWidth, c.Columns)
	next.Key.Y, next.TileY, next.Offset.Y = shiftAxis(c.Key.Y, c.TileY, c.Offset.Y, dy, c.TileHeight, c.Rows)
	return next
}

func shiftAxis(tileMap, tile int64, offset, delta, tileSize float64, maxTiles int64) (int64, int64, float64) {
	if tileSize <= 0 || maxTiles <= 0 {
		return tileMap, tile, offset + delta
	}

	offset += delta
	t := tile
	if offset < 0 || offset >= tileSize {
		carry := math.Floor(offset / tileSize)
		t += int64(carry)
		offset -= carry * tileSize
		// Rounding can leave the offset a hair outside the range.
		if offset >= tileSize {
			offset -= tileSize
			t++
		} else if offset < 0 {
			offset += tileSize
			t--
			if offset >= tileSize {
				offset = 0
				t++
			}
		}
	}

	m := tileMap
	if t < 0 || t >= maxTiles {
		carry := floorDiv(t, maxTiles)
		m += carry
		t -= carry * maxTiles
	}
	return m, t, offset
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Point returns the position inside the current tile map in pixels,
// measured from the map's bottom-left corner.
func (c Coordinate) Point() core.Point2D {
	return core.Point2D{
		X: float64(c.TileX)*c.TileWidth + c.Offset.X,
		Y: float64(c.TileY)*c.TileHeight + c.Offset.Y,
	}
}

// Absolute returns the position in unbounded world pixels.
func (c Coordinate) Absolute() core.Point2D {
	p := c.Point()
	return core.Point2D{
		X: float64(c.Key.X)*float64(c.Columns)*c.TileWidth + p.X,
		Y: float64(c.Key.Y)*float64(c.Rows)*c.TileHeight + p.Y,
	}
}
