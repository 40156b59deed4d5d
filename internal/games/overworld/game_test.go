package overworld

import (
	"testing"
	"time"

	"github.com/vovakirdan/tile-hero/internal/core"
	"github.com/vovakirdan/tile-hero/internal/game"
	"github.com/vovakirdan/tile-hero/internal/render"
	"github.com/vovakirdan/tile-hero/internal/world"
)

// walledWorld is a single 3x3 map of 10 px tiles with a wall in the middle.
func walledWorld() *world.World {
	w := world.New(3, 3, 10, 10)
	w.AddTileMap(world.TileMapKey{}).Set(1, 1, 1)
	return w
}

// sixPixels makes the player move 6 px per frame at the default speed.
const sixPixels = 46875 * time.Microsecond

func TestBlockedByWall(t *testing.T) {
	w := walledWorld()
	g := NewWithWorld(w)
	state := game.NewState(0, 0)
	if err := g.Initialize(&state); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	state.FrameDuration = sixPixels
	start := w.CoordinateAt(world.TileMapKey{}, 0, 1, core.Pt(1, 4))
	state.Coordinate = start

	in := core.NewInputState()
	in.Keyboard.Right.Set(true)
	g.ProcessInput(&in, &state)

	if state.Coordinate != start {
		t.Errorf("Coordinate = %+v, expected unchanged %+v", state.Coordinate, start)
	}

	// Moving down stays in column 0 and is allowed.
	in = core.NewInputState()
	in.Keyboard.Down.Set(true)
	g.ProcessInput(&in, &state)

	if got := state.Coordinate.Point(); got != core.Pt(1, 8) {
		t.Errorf("Point() = %+v, expected (1, 8)", got)
	}
}

func TestMissingMapFailsClosed(t *testing.T) {
	w := world.New(3, 3, 10, 10)
	w.AddTileMap(world.TileMapKey{})
	g := NewWithWorld(w)
	state := game.NewState(0, 0)
	if err := g.Initialize(&state); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	state.FrameDuration = sixPixels
	start := w.CoordinateAt(world.TileMapKey{}, 2, 1, core.Pt(1, 4))
	state.Coordinate = start

	in := core.NewInputState()
	in.Keyboard.Right.Set(true)
	g.ProcessInput(&in, &state)

	if state.Coordinate != start {
		t.Errorf("walked into an unloaded map: %+v", state.Coordinate)
	}
}

func TestCrossesSeam(t *testing.T) {
	w := world.New(3, 3, 10, 10)
	w.AddTileMap(world.TileMapKey{})
	w.AddTileMap(world.TileMapKey{X: 1})
	g := NewWithWorld(w)
	state := game.NewState(0, 0)
	if err := g.Initialize(&state); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	state.FrameDuration = sixPixels
	state.Coordinate = w.CoordinateAt(world.TileMapKey{}, 2, 1, core.Pt(5, 4))

	in := core.NewInputState()
	in.Keyboard.Right.Set(true)
	g.ProcessInput(&in, &state)

	if state.CurrentMap != (world.TileMapKey{X: 1}) {
		t.Fatalf("CurrentMap = %v, expected {1 0}", state.CurrentMap)
	}
	if state.Coordinate.TileX != 0 || state.Coordinate.Offset.X != 1 {
		t.Errorf("Coordinate = %+v, expected tile 0 offset 1", state.Coordinate)
	}
}

func TestInitializeDefaultLevels(t *testing.T) {
	g := New()
	state := game.NewState(0, 0)
	if err := g.Initialize(&state); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	if state.CurrentMap != world.South.Key() {
		t.Errorf("CurrentMap = %v, expected south", state.CurrentMap)
	}
	if !g.World().IsTraversable(state.Coordinate, g.Bounds()) {
		t.Error("start position is inside a wall")
	}
}

func TestInitializeViewport(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		expectW       uint16
		expectH       uint16
	}{
		{"configured", 320, 200, 320, 200},
		{"unsized", 0, 0, 30, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := world.New(3, 3, 10, 10)
			w.AddTileMap(world.TileMapKey{})
			state := game.NewState(tt.width, tt.height)
			if err := NewWithWorld(w).Initialize(&state); err != nil {
				t.Fatalf("Initialize() failed: %v", err)
			}
			if state.Width != tt.expectW || state.Height != tt.expectH {
				t.Errorf("viewport = %dx%d, expected %dx%d", state.Width, state.Height, tt.expectW, tt.expectH)
			}
		})
	}
}

func TestRenderPlayer(t *testing.T) {
	w := world.New(3, 3, 10, 10)
	w.AddTileMap(world.TileMapKey{})
	g := NewWithWorld(w)
	state := game.NewState(0, 0)
	if err := g.Initialize(&state); err != nil {
		t.Fatalf("Initialize() failed: %v", err)
	}
	state.Coordinate = w.CoordinateAt(world.TileMapKey{}, 0, 0, core.Pt(0, 0))

	dst := render.NewBuffer(int(state.Width), int(state.Height))
	in := core.NewInputState()
	g.Render(&in, &state, dst)

	yellow := core.PixelOf(core.ColorYellow)
	if dst.At(0, 29) != yellow {
		t.Errorf("bottom-left = %+v, expected the player", dst.At(0, 29))
	}
	if dst.At(8, 29) != core.PixelOf(render.FloorColor) {
		t.Errorf("At(8, 29) = %+v, expected floor right of the player", dst.At(8, 29))
	}
}
