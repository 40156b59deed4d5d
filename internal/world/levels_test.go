package world

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultLevels(t *testing.T) {
	ls, err := LoadLevels("")
	if err != nil {
		t.Fatalf("LoadLevels() failed: %v", err)
	}
	w, err := ls.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	if w.Rows != TileRows || w.Columns != TileColumns {
		t.Errorf("grid = %dx%d, expected %dx%d", w.Rows, w.Columns, TileRows, TileColumns)
	}
	for _, id := range []MapID{South, Hub, West, East, North} {
		if _, ok := w.TileMap(id.Key()); !ok {
			t.Errorf("map %s missing", id)
		}
	}
	if ls.Start.Key() != South.Key() {
		t.Errorf("start = %v, expected south", ls.Start.Key())
	}
}

func TestDefaultLevelsOrientation(t *testing.T) {
	ls, err := LoadLevels("")
	if err != nil {
		t.Fatalf("LoadLevels() failed: %v", err)
	}
	w, err := ls.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	south, _ := w.TileMap(South.Key())
	// The opening to the hub is in the top row, the bottom row is solid.
	if !south.Traversable(TileRows-1, 8) {
		t.Error("south top row should be open in the middle")
	}
	if south.Traversable(0, 8) {
		t.Error("south bottom row should be a wall")
	}

	hub, _ := w.TileMap(Hub.Key())
	if !hub.Traversable(0, 8) || !hub.Traversable(TileRows-1, 8) {
		t.Error("hub should open north and south")
	}
	if !hub.Traversable(4, 0) || !hub.Traversable(4, TileColumns-1) {
		t.Error("hub should open west and east")
	}
}

func TestParseLevelsErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad yaml", "rows: [1"},
		{"no grid", "name: x\nmaps: [{name: a}]"},
		{"no tile size", "rows: 1\ncolumns: 1\nmaps: [{name: a, tiles: ['.']}]"},
		{"no maps", "rows: 1\ncolumns: 1\ntile_width: 1\ntile_height: 1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseLevels([]byte(tc.data)); err == nil {
				t.Error("ParseLevels() should fail")
			}
		})
	}
}

func TestBuildRejectsUnknownTile(t *testing.T) {
	ls, err := ParseLevels([]byte("rows: 1\ncolumns: 2\ntile_width: 1\ntile_height: 1\nmaps:\n  - name: a\n    tiles: ['.x']\n"))
	if err != nil {
		t.Fatalf("ParseLevels() failed: %v", err)
	}
	if _, err := ls.Build(); err == nil {
		t.Error("Build() should reject an unknown tile character")
	}
}

func TestLoadLevelsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiny.yaml")
	data := "name: tiny\nrows: 2\ncolumns: 2\ntile_width: 8\ntile_height: 8\nmaps:\n  - name: only\n    key: {x: 3, y: 4}\n    tiles:\n      - '#.'\n      - '..'\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	ls, err := LoadLevels(path)
	if err != nil {
		t.Fatalf("LoadLevels() failed: %v", err)
	}
	w, err := ls.Build()
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	m, ok := w.TileMap(TileMapKey{X: 3, Y: 4})
	if !ok {
		t.Fatal("map (3,4) missing")
	}
	if m.Traversable(1, 0) {
		t.Error("top-left should be a wall after the row flip")
	}
	if !m.Traversable(0, 0) {
		t.Error("bottom-left should be floor")
	}
}

func TestNeighbor(t *testing.T) {
	tests := []struct {
		from     MapID
		dir      Direction
		expected MapID
		ok       bool
	}{
		{Hub, DirNorth, North, true},
		{Hub, DirSouth, South, true},
		{Hub, DirWest, West, true},
		{Hub, DirEast, East, true},
		{South, DirNorth, Hub, true},
		{North, DirSouth, Hub, true},
		{West, DirEast, Hub, true},
		{East, DirWest, Hub, true},
		{South, DirSouth, 0, false},
		{North, DirNorth, 0, false},
		{West, DirNorth, 0, false},
	}

	for _, tc := range tests {
		got, ok := Neighbor(tc.from, tc.dir)
		if ok != tc.ok || (ok && got != tc.expected) {
			t.Errorf("Neighbor(%s, %s) = %s, %v, expected %s, %v", tc.from, tc.dir, got, ok, tc.expected, tc.ok)
		}
	}

	for _, id := range []MapID{South, Hub, West, East, North} {
		back, ok := MapIDOf(id.Key())
		if !ok || back != id {
			t.Errorf("MapIDOf(%s.Key()) = %s, %v", id, back, ok)
		}
	}
}
