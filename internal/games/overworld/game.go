// Package overworld walks the player across an unbounded grid of tile maps
// addressed by TileMapKey. Positions are world coordinates, so crossing a
// map seam needs no special handling.
package overworld

import (
	"fmt"

	"github.com/vovakirdan/tile-hero/internal/audio"
	"github.com/vovakirdan/tile-hero/internal/core"
	"github.com/vovakirdan/tile-hero/internal/game"
	"github.com/vovakirdan/tile-hero/internal/registry"
	"github.com/vovakirdan/tile-hero/internal/render"
	"github.com/vovakirdan/tile-hero/internal/world"
)

// Player size relative to the tile.
const (
	PlayerHeightRatio = 0.9
	PlayerWidthRatio  = 0.75
)

// Game implements the overworld.
type Game struct {
	world *world.World
}

// New creates an overworld game that loads the configured level set on Initialize.
func New() *Game {
	return &Game{}
}

// NewWithWorld creates an overworld game over an already built world.
func NewWithWorld(w *world.World) *Game {
	return &Game{world: w}
}

func init() {
	registry.Register("overworld", func() registry.Application {
		return New()
	})
}

// ID returns the application identifier.
func (g *Game) ID() string {
	return "overworld"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Overworld"
}

// World exposes the loaded world.
func (g *Game) World() *world.World {
	return g.world
}

// Initialize loads the maps and places the player at the centre of the
// starting map. The configured viewport is kept; an unsized state gets the
// map's pixel size.
func (g *Game) Initialize(state *game.State) error {
	start := world.TileMapKey{}
	if g.world == nil {
		ls, err := world.ConfiguredLevels()
		if err != nil {
			return fmt.Errorf("overworld: %w", err)
		}
		w, err := ls.Build()
		if err != nil {
			return fmt.Errorf("overworld: %w", err)
		}
		g.world = w
		start = ls.Start.Key()
	}
	if _, ok := g.world.TileMap(start); !ok {
		return fmt.Errorf("overworld: start map %v: %w", start, render.ErrFellOutOfWorld)
	}

	if state.Width == 0 || state.Height == 0 {
		state.Resize(
			int(g.world.PixelWidth()-g.world.OffsetX),
			int(g.world.PixelHeight()-g.world.OffsetY),
		)
	}
	state.CurrentMap = start
	state.Coordinate = g.world.TileCoordinate(start, core.Pt(
		g.world.PixelWidth()/2,
		g.world.PixelHeight()/2,
	))
	return nil
}

// PlayerSize returns the sprite size for the world's tiles.
func (g *Game) PlayerSize() (width, height float64) {
	return PlayerWidthRatio * g.world.TileWidth, PlayerHeightRatio * g.world.TileHeight
}

// Bounds is the collision box relative to the player's coordinate: the
// bottom quarter of the sprite.
func (g *Game) Bounds() core.Rectangle {
	width, height := g.PlayerSize()
	return core.NewRect(0, 0, height/4, width)
}

// ProcessInput moves the player if the whole collision box lands on floor.
func (g *Game) ProcessInput(in *core.InputState, state *game.State) {
	state.UpdateJump(game.JumpPressed(in))
	state.UpdateTone(in)

	delta := game.Delta(in)
	if delta == (core.Point2D{}) {
		return
	}
	speed := state.Speed()
	next := state.Coordinate.Shifted(delta.X*speed, delta.Y*speed)
	if !g.world.IsTraversable(next, g.Bounds()) {
		return
	}
	state.Coordinate = next
	state.CurrentMap = next.Key
	state.Scroll(delta.X*speed, delta.Y*speed)
}

// Render draws the map the player stands in and the player on top.
func (g *Game) Render(_ *core.InputState, state *game.State, dst *render.Buffer) {
	view := dst.Bounds()
	//nolint:errcheck // A missing map leaves a black frame; the player is still drawn.
	render.RenderTileMap(view, g.world, state.Coordinate.Key, dst)

	width, height := g.PlayerSize()
	p := state.Coordinate.Point()
	sprite := core.NewRect(
		p.Y-g.world.OffsetY+state.JumpOffset(g.world.TileHeight/4),
		p.X-g.world.OffsetX,
		height,
		width,
	)
	//nolint:errcheck // Dropped for this frame.
	render.RenderRectangle(view, sprite, core.ColorYellow, dst)
}

// WriteSound synthesizes the tone.
func (g *Game) WriteSound(state *game.State, samples []audio.StereoSample) {
	audio.Synthesize(&state.Sound, samples)
}
