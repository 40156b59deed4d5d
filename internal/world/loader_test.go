package world

import (
	"errors"
	"testing"
)

func TestLoadFlipsRows(t *testing.T) {
	// An "L": wall down the left side and along the bottom.
	src := [][]uint32{
		{1, 0, 0},
		{1, 0, 0},
		{1, 1, 1},
	}
	m := NewTileMap(3, 3)
	if err := Load(m, src); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Row 0 is the bottom of the map, so it holds the last source row.
	for column := 0; column < 3; column++ {
		if tile, _ := m.Get(0, column); tile != 1 {
			t.Errorf("bottom row column %d = %d, expected wall", column, tile)
		}
	}
	if tile, _ := m.Get(2, 2); tile != 0 {
		t.Errorf("top-right = %d, expected floor", tile)
	}
	if tile, _ := m.Get(2, 0); tile != 1 {
		t.Errorf("top-left = %d, expected wall", tile)
	}

	expected := "#..\n#..\n###"
	if m.String() != expected {
		t.Errorf("String() = %q, expected %q", m.String(), expected)
	}
}

func TestLoadShapeMismatch(t *testing.T) {
	m := NewTileMap(2, 2)

	if err := Load(m, [][]uint32{{0, 0}}); !errors.Is(err, ErrShape) {
		t.Errorf("Load() short rows error = %v, expected ErrShape", err)
	}
	if err := Load(m, [][]uint32{{0, 0}, {0}}); !errors.Is(err, ErrShape) {
		t.Errorf("Load() short column error = %v, expected ErrShape", err)
	}
}
