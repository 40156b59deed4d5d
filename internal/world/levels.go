package world

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed levels/*.yaml
var levelFiles embed.FS

// DefaultLevelFile is the embedded level set used when no path is configured.
const DefaultLevelFile = "levels/plus.yaml"

// levelsPath is the level file applications load; empty means the embedded default.
var levelsPath string

// SetLevelsPath selects the level file loaded by ConfiguredLevels.
func SetLevelsPath(path string) {
	levelsPath = path
}

// ConfiguredLevels loads the level set chosen with SetLevelsPath.
func ConfiguredLevels() (LevelSet, error) {
	return LoadLevels(levelsPath)
}

// LevelSet is the YAML description of a world.
type LevelSet struct {
	Name       string     `yaml:"name"`
	Rows       int        `yaml:"rows"`
	Columns    int        `yaml:"columns"`
	TileWidth  float64    `yaml:"tile_width"`
	TileHeight float64    `yaml:"tile_height"`
	OffsetX    float64    `yaml:"offset_x"`
	OffsetY    float64    `yaml:"offset_y"`
	Start      YAMLKey    `yaml:"start"`
	Maps       []LevelMap `yaml:"maps"`
}

// YAMLKey is a tile map key as written in level files.
type YAMLKey struct {
	X int64 `yaml:"x"`
	Y int64 `yaml:"y"`
}

// Key converts to a TileMapKey.
func (k YAMLKey) Key() TileMapKey {
	return TileMapKey{X: k.X, Y: k.Y}
}

// LevelMap is one tile map. Tiles are listed top row first; '0' or '.' is
// floor, '#' is a wall and other digits are wall codes.
type LevelMap struct {
	Name  string   `yaml:"name"`
	Key   YAMLKey  `yaml:"key"`
	Tiles []string `yaml:"tiles"`
}

// ParseLevels parses a YAML level set.
func ParseLevels(data []byte) (LevelSet, error) {
	var ls LevelSet
	if err := yaml.Unmarshal(data, &ls); err != nil {
		return LevelSet{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if ls.Rows <= 0 || ls.Columns <= 0 {
		return LevelSet{}, fmt.Errorf("%w: %dx%d grid", ErrShape, ls.Rows, ls.Columns)
	}
	if ls.TileWidth <= 0 || ls.TileHeight <= 0 {
		return LevelSet{}, fmt.Errorf("level set %q: tile size must be positive", ls.Name)
	}
	if len(ls.Maps) == 0 {
		return LevelSet{}, fmt.Errorf("level set %q has no maps", ls.Name)
	}
	return ls, nil
}

// LoadLevels reads a level set from path, or the embedded default when path is empty.
func LoadLevels(path string) (LevelSet, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = levelFiles.ReadFile(DefaultLevelFile)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return LevelSet{}, fmt.Errorf("failed to read levels %s: %w", path, err)
	}
	ls, err := ParseLevels(data)
	if err != nil {
		return LevelSet{}, fmt.Errorf("failed to parse levels %s: %w", path, err)
	}
	return ls, nil
}

// Build creates a World containing every map of the set.
func (ls LevelSet) Build() (*World, error) {
	w := New(ls.Rows, ls.Columns, ls.TileWidth, ls.TileHeight)
	w.OffsetX = ls.OffsetX
	w.OffsetY = ls.OffsetY

	for _, lm := range ls.Maps {
		grid, err := parseTiles(lm.Tiles)
		if err != nil {
			return nil, fmt.Errorf("map %q: %w", lm.Name, err)
		}
		if err := Load(w.AddTileMap(lm.Key.Key()), grid); err != nil {
			return nil, fmt.Errorf("map %q: %w", lm.Name, err)
		}
	}
	return w, nil
}

func parseTiles(rows []string) ([][]uint32, error) {
	grid := make([][]uint32, len(rows))
	for i, row := range rows {
		row = strings.TrimSpace(row)
		grid[i] = make([]uint32, 0, len(row))
		for _, ch := range row {
			switch {
			case ch == '.':
				grid[i] = append(grid[i], 0)
			case ch == '#':
				grid[i] = append(grid[i], 1)
			case ch >= '0' && ch <= '9':
				grid[i] = append(grid[i], uint32(ch-'0'))
			default:
				return nil, fmt.Errorf("row %d: unknown tile %q", i, ch)
			}
		}
	}
	return grid, nil
}
