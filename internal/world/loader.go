package world

import (
	"errors"
	"fmt"
)

// ErrShape is returned when level data does not match the tile map's grid.
var ErrShape = errors.New("world: tile data does not match grid shape")

// Load copies a row-major grid into dst. Source row 0 is the top of the
// picture, so it lands in the highest destination row: tile maps count rows
// upwards from the bottom.
func Load(dst *TileMap, src [][]uint32) error {
	if len(src) != dst.Rows() {
		return fmt.Errorf("%w: %d rows, expected %d", ErrShape, len(src), dst.Rows())
	}
	for sourceRow, row := range src {
		if len(row) != dst.Columns() {
			return fmt.Errorf("%w: row %d has %d columns, expected %d", ErrShape, sourceRow, len(row), dst.Columns())
		}
		destinationRow := dst.Rows() - sourceRow - 1
		for column, tile := range row {
			dst.Set(destinationRow, column, tile)
		}
	}
	return nil
}
