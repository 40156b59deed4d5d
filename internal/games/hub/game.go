// Package hub is the fixed five-map world: a hub with one neighbour on each
// side. Walking off a viewport edge swaps to the neighbouring map and puts
// the player on its opposite edge.
package hub

import (
	"fmt"

	"github.com/vovakirdan/tile-hero/internal/audio"
	"github.com/vovakirdan/tile-hero/internal/core"
	"github.com/vovakirdan/tile-hero/internal/game"
	"github.com/vovakirdan/tile-hero/internal/registry"
	"github.com/vovakirdan/tile-hero/internal/render"
	"github.com/vovakirdan/tile-hero/internal/world"
)

// Player sprite size in pixels.
const (
	PlayerWidth  = 30
	PlayerHeight = 40
)

// JumpAmplitude is the height of the cosmetic jump arc.
const JumpAmplitude = 10

// Game implements the hub world.
type Game struct {
	world *world.World
}

// New creates a hub game that loads the configured level set on Initialize.
func New() *Game {
	return &Game{}
}

// NewWithWorld creates a hub game over an already built world.
func NewWithWorld(w *world.World) *Game {
	return &Game{world: w}
}

func init() {
	registry.Register("hub", func() registry.Application {
		return New()
	})
}

// ID returns the application identifier.
func (g *Game) ID() string {
	return "hub"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Hub (five maps)"
}

// World exposes the loaded world.
func (g *Game) World() *world.World {
	return g.world
}

// Initialize loads the maps, sizes the viewport to one map and places the
// player in the middle of the starting map.
func (g *Game) Initialize(state *game.State) error {
	start := world.South.Key()
	if g.world == nil {
		ls, err := world.ConfiguredLevels()
		if err != nil {
			return fmt.Errorf("hub: %w", err)
		}
		w, err := ls.Build()
		if err != nil {
			return fmt.Errorf("hub: %w", err)
		}
		g.world = w
		start = ls.Start.Key()
	}
	if _, ok := world.MapIDOf(start); !ok {
		return fmt.Errorf("hub: start map %v is not part of the five-map world", start)
	}

	state.Resize(int(g.viewWidth()), int(g.viewHeight()))
	state.CurrentMap = start
	state.Player = core.Pt(
		g.viewWidth()/2-PlayerWidth/2,
		g.viewHeight()/2-PlayerHeight/2,
	)
	return nil
}

func (g *Game) viewWidth() float64 {
	return g.world.PixelWidth() - g.world.OffsetX
}

func (g *Game) viewHeight() float64 {
	return g.world.PixelHeight() - g.world.OffsetY
}

// collisionBox is the bottom quarter of the sprite, inset by one pixel.
func collisionBox(p core.Point2D) core.Rectangle {
	return core.NewRect(p.Y+1, p.X+1, PlayerHeight/4-2, PlayerWidth-2)
}

// ProcessInput moves the player, navigating between maps at the viewport
// edges. The move is taken whole or not at all.
func (g *Game) ProcessInput(in *core.InputState, state *game.State) {
	state.UpdateJump(game.JumpPressed(in))
	state.UpdateTone(in)

	delta := game.Delta(in)
	if delta == (core.Point2D{}) {
		return
	}
	speed := state.Speed()
	next := state.Player.Add(delta.X*speed, delta.Y*speed)

	key, next := g.navigate(state.CurrentMap, next)
	if !g.traversable(key, next) {
		return
	}
	state.CurrentMap = key
	state.Player = next
	state.Scroll(delta.X*speed, delta.Y*speed)
}

// navigate resolves a position that left the viewport. Vertical edges are
// checked before horizontal ones. Without a neighbour the position is
// clamped to the viewport instead.
func (g *Game) navigate(key world.TileMapKey, p core.Point2D) (world.TileMapKey, core.Point2D) {
	w, h := g.viewWidth(), g.viewHeight()
	id, ok := world.MapIDOf(key)
	if !ok {
		return key, p
	}

	switch {
	case p.Y+PlayerHeight > h:
		if next, ok := world.Neighbor(id, world.DirNorth); ok {
			p.Y = 0
			p.X = core.ClampF(p.X, 0, w-PlayerWidth)
			return next.Key(), p
		}
	case p.Y < 0:
		if next, ok := world.Neighbor(id, world.DirSouth); ok {
			p.Y = h - PlayerHeight
			p.X = core.ClampF(p.X, 0, w-PlayerWidth)
			return next.Key(), p
		}
	}

	switch {
	case p.X < 0:
		if next, ok := world.Neighbor(id, world.DirWest); ok {
			p.X = w - PlayerWidth
			p.Y = core.ClampF(p.Y, 0, h-PlayerHeight)
			return next.Key(), p
		}
	case p.X+PlayerWidth > w:
		if next, ok := world.Neighbor(id, world.DirEast); ok {
			p.X = 0
			p.Y = core.ClampF(p.Y, 0, h-PlayerHeight)
			return next.Key(), p
		}
	}

	p.X = core.ClampF(p.X, 0, w-PlayerWidth)
	p.Y = core.ClampF(p.Y, 0, h-PlayerHeight)
	return key, p
}

// traversable tests the four collision corners against the map under key.
// Viewport pixels are shifted by the render offset into map pixels.
func (g *Game) traversable(key world.TileMapKey, p core.Point2D) bool {
	box := collisionBox(p).Shifted(g.world.OffsetX, g.world.OffsetY)
	for _, c := range box.Corners() {
		if !g.world.IsTraversablePoint(key, c) {
			return false
		}
	}
	return true
}

// Render draws the current map and the player.
func (g *Game) Render(_ *core.InputState, state *game.State, dst *render.Buffer) {
	view := dst.Bounds()
	//nolint:errcheck // A missing map leaves a black frame; the player is still drawn.
	render.RenderTileMap(view, g.world, state.CurrentMap, dst)

	sprite := core.NewRect(
		state.Player.Y+state.JumpOffset(JumpAmplitude),
		state.Player.X,
		PlayerHeight,
		PlayerWidth,
	)
	//nolint:errcheck // Dropped for this frame.
	render.RenderRectangle(view, sprite, core.ColorYellow, dst)
}

// WriteSound synthesizes the tone.
func (g *Game) WriteSound(state *game.State, samples []audio.StereoSample) {
	audio.Synthesize(&state.Sound, samples)
}
