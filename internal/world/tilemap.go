// Package world models the tile grid the player walks on: individual tile
// maps, the map-of-maps addressed by TileMapKey, world coordinates that carry
// across map seams, and level loading.
//
// Rows count upwards: row 0 is the bottom row of a map.
package world

import "fmt"

// TileMap is a fixed-size rows x columns grid of tile codes.
// A code of 0 is traversable; anything else is a wall.
type TileMap struct {
	rows    int
	columns int
	tiles   []uint32
}

// NewTileMap creates an all-floor tile map.
func NewTileMap(rows, columns int) *TileMap {
	if rows < 0 {
		rows = 0
	}
	if columns < 0 {
		columns = 0
	}
	return &TileMap{
		rows:    rows,
		columns: columns,
		tiles:   make([]uint32, rows*columns),
	}
}

// Rows returns the number of rows.
func (m *TileMap) Rows() int { return m.rows }

// Columns returns the number of columns.
func (m *TileMap) Columns() int { return m.columns }

func (m *TileMap) inBounds(row, column int) bool {
	return row >= 0 && row < m.rows && column >= 0 && column < m.columns
}

// Get returns the tile code at (row, column); ok is false outside the grid.
func (m *TileMap) Get(row, column int) (tile uint32, ok bool) {
	if !m.inBounds(row, column) {
		return 0, false
	}
	return m.tiles[row*m.columns+column], true
}

// Set stores a tile code. It reports false when (row, column) is outside the grid.
func (m *TileMap) Set(row, column int, tile uint32) bool {
	if !m.inBounds(row, column) {
		return false
	}
	m.tiles[row*m.columns+column] = tile
	return true
}

// Traversable reports whether (row, column) is inside the grid and a floor tile.
func (m *TileMap) Traversable(row, column int) bool {
	tile, ok := m.Get(row, column)
	return ok && tile == 0
}

// String draws the map top row first, '#' for walls and '.' for floor.
func (m *TileMap) String() string {
	buf := make([]byte, 0, (m.columns+1)*m.rows)
	for row := m.rows - 1; row >= 0; row-- {
		for column := 0; column < m.columns; column++ {
			if m.tiles[row*m.columns+column] == 0 {
				buf = append(buf, '.')
			} else {
				buf = append(buf, '#')
			}
		}
		if row > 0 {
			buf = append(buf, '\n')
		}
	}
	return string(buf)
}

// TileMapKey addresses a tile map in the world. X grows east, Y grows north.
type TileMapKey struct {
	X, Y int64
}

// Add returns the key offset by (dx, dy).
func (k TileMapKey) Add(dx, dy int64) TileMapKey {
	return TileMapKey{X: k.X + dx, Y: k.Y + dy}
}

func (k TileMapKey) String() string {
	return fmt.Sprintf("(%d,%d)", k.X, k.Y)
}
