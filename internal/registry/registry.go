// Package registry provides a global registry of playable levels.
// Level games register themselves in init() functions, allowing the
// platform to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// ErrDuplicate is returned by TryRegister when the ID is taken.
var ErrDuplicate = errors.New("registry: already registered")

// ErrUnknown is returned by Create for an unregistered ID.
var ErrUnknown = errors.New("registry: unknown game")

// Game is the interface the platform drives once per frame.
// Games contain pure logic with no external dependencies (especially no Bubble Tea).
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier, the level ID (e.g. "reference").
	// Used for CLI commands and run storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset puts the player back at the spawn, unlocked and at rest.
	// The RuntimeConfig provides screen dimensions.
	Reset(cfg core.RuntimeConfig)

	// Step applies one frame of collected input and advances the
	// simulation by in.Delta seconds.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current run state.
	State() core.GameState
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a game.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from an init() function.
// Panics if a game with the same ID is already registered.
func Register(id string, f Factory) {
	if err := TryRegister(id, f); err != nil {
		panic(err.Error())
	}
}

// TryRegister is Register for levels found at run time.
func TryRegister(id string, f Factory) error {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicate, id)
	}

	factories[id] = f

	// Get title by creating a temporary instance
	g := f()
	titles[id] = g.Title()
	return nil
}

// List returns information about all registered games, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by its ID.
// Returns an error if the game ID is not registered.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknown, id)
	}

	return f(), nil
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
