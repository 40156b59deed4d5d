package world

import (
	"math"
	"sort"

	"github.com/vovakirdan/tile-hero/internal/core"
)

// Default grid shape of a tile map.
const (
	TileRows    = 9
	TileColumns = 17
)

// World owns the grid shape, tile size, render offset and every loaded tile map.
// Keys that are not loaded are walls: lookups against them fail closed.
type World struct {
	Rows       int
	Columns    int
	TileWidth  float64
	TileHeight float64
	// OffsetX and OffsetY shift the render origin of every map.
	OffsetX float64
	OffsetY float64

	maps map[TileMapKey]*TileMap
}

// New creates an empty world.
func New(rows, columns int, tileWidth, tileHeight float64) *World {
	return &World{
		Rows:       rows,
		Columns:    columns,
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
		maps:       make(map[TileMapKey]*TileMap),
	}
}

// AddTileMap returns the map stored under key, creating an empty one first
// if the key is new.
func (w *World) AddTileMap(key TileMapKey) *TileMap {
	if m, ok := w.maps[key]; ok {
		return m
	}
	m := NewTileMap(w.Rows, w.Columns)
	w.maps[key] = m
	return m
}

// TileMap looks up the map stored under key.
func (w *World) TileMap(key TileMapKey) (*TileMap, bool) {
	m, ok := w.maps[key]
	return m, ok
}

// Keys returns every loaded key, sorted by Y then X.
func (w *World) Keys() []TileMapKey {
	keys := make([]TileMapKey, 0, len(w.maps))
	for k := range w.maps {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Y != keys[j].Y {
			return keys[i].Y < keys[j].Y
		}
		return keys[i].X < keys[j].X
	})
	return keys
}

// CoordinateAt builds a coordinate on this world's grid.
func (w *World) CoordinateAt(key TileMapKey, tileX, tileY int, offset core.Point2D) Coordinate {
	return Coordinate{
		Key:        key,
		TileX:      int64(tileX),
		TileY:      int64(tileY),
		Offset:     offset,
		Columns:    int64(w.Columns),
		Rows:       int64(w.Rows),
		TileWidth:  w.TileWidth,
		TileHeight: w.TileHeight,
	}
}

// IsTraversable reports whether every corner of bounds, placed relative to
// the coordinate, lands on a floor tile. Corners that fall in a map that is
// not loaded are not traversable.
func (w *World) IsTraversable(c Coordinate, bounds core.Rectangle) bool {
	origin := c.Shifted(bounds.Left, bounds.Bottom)
	width, height := bounds.Width(), bounds.Height()

	if !w.traversableCoordinate(origin) {
		return false
	}
	if !w.traversableCoordinate(origin.Shifted(0, height)) {
		return false
	}
	if !w.traversableCoordinate(origin.Shifted(width, 0)) {
		return false
	}
	return w.traversableCoordinate(origin.Shifted(width, height))
}

func (w *World) traversableCoordinate(c Coordinate) bool {
	m, ok := w.maps[c.Key]
	if !ok {
		return false
	}
	return m.Traversable(int(c.TileY), int(c.TileX))
}

// IsTraversablePoint checks a single pixel position inside the map under key.
// Positions outside the map clamp to its border tiles.
func (w *World) IsTraversablePoint(key TileMapKey, p core.Point2D) bool {
	m, ok := w.maps[key]
	if !ok {
		return false
	}
	if math.IsNaN(p.X) || math.IsNaN(p.Y) {
		return false
	}
	tileX, tileY := w.TileXY(p)
	return m.Traversable(tileY, tileX)
}

// TileXY returns the tile under a map-local pixel position, clamped to the grid.
func (w *World) TileXY(p core.Point2D) (tileX, tileY int) {
	return clampTile(p.X, w.TileWidth, w.Columns), clampTile(p.Y, w.TileHeight, w.Rows)
}

func clampTile(v, size float64, count int) int {
	if count <= 0 || size <= 0 {
		return 0
	}
	t := math.Floor(v / size)
	if t < 0 || math.IsNaN(t) {
		return 0
	}
	if t > float64(count-1) {
		return count - 1
	}
	return int(t)
}

// TileCoordinate converts a map-local pixel position into a coordinate whose
// offset is measured from the clamped tile's origin.
func (w *World) TileCoordinate(key TileMapKey, p core.Point2D) Coordinate {
	tileX, tileY := w.TileXY(p)
	offset := core.Point2D{
		X: p.X - float64(tileX)*w.TileWidth,
		Y: p.Y - float64(tileY)*w.TileHeight,
	}
	return w.CoordinateAt(key, tileX, tileY, offset)
}

// PixelWidth returns the width of one map in pixels.
func (w *World) PixelWidth() float64 {
	return float64(w.Columns) * w.TileWidth
}

// PixelHeight returns the height of one map in pixels.
func (w *World) PixelHeight() float64 {
	return float64(w.Rows) * w.TileHeight
}
