// Package registry provides a global registry for application factories.
// Applications register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tile-hero/internal/audio"
	"github.com/vovakirdan/tile-hero/internal/core"
	"github.com/vovakirdan/tile-hero/internal/game"
	"github.com/vovakirdan/tile-hero/internal/render"
)

// Application is the game logic the platform drives once per frame.
// An application keeps no state the platform does not own: everything that
// must survive lives in game.State, so an instance can be dropped and
// recreated between frames.
type Application interface {
	// ID returns a unique identifier, used by the CLI and session storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Initialize is called once before the first ProcessInput. The state
	// already carries the viewport size.
	Initialize(state *game.State) error

	// ProcessInput advances the simulation by one frame.
	ProcessInput(in *core.InputState, state *game.State)

	// Render paints the frame into dst.
	Render(in *core.InputState, state *game.State, dst *render.Buffer)

	// WriteSound fills the sample window the platform asks for.
	WriteSound(state *game.State, samples []audio.StereoSample)
}

// AppInfo contains metadata about a registered application.
type AppInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of an application.
type Factory func() Application

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a factory to the registry.
// Panics if an application with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: application %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered applications, sorted by ID.
func List() []AppInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]AppInfo, 0, len(factories))
	for id := range factories {
		result = append(result, AppInfo{ID: id, Title: titles[id]})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Create instantiates an application by its ID.
func Create(id string) (Application, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown application %q", id)
	}
	return f(), nil
}

// Exists checks if an application with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
