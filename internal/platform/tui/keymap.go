package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// Turn directions, as the sign applied to yaw. Yaw grows counter-clockwise
// seen from above, so turning left is positive.
const (
	TurnNone  = 0
	TurnLeft  = 1
	TurnRight = -1
)

// KeyResult is what a single key press means in game.
type KeyResult struct {
	Action    core.Action
	Direction core.Direction
	Move      bool // Direction is set
	Turn      int  // TurnLeft, TurnRight or TurnNone
	Quit      bool
}

// KeyMapper translates Bubble Tea key messages to game input.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to in-game input.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) KeyResult {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q", "Q":
		return KeyResult{Action: core.ActionQuit, Quit: true}
	}

	// Letters arrive upper case with shift or caps lock held.
	if len(key) == 1 {
		key = strings.ToLower(key)
	}

	switch key {
	case "w", "up":
		return KeyResult{Direction: core.DirForward, Move: true}
	case "s", "down":
		return KeyResult{Direction: core.DirBackward, Move: true}
	case "a":
		return KeyResult{Direction: core.DirLeft, Move: true}
	case "d":
		return KeyResult{Direction: core.DirRight, Move: true}
	case ",", "left":
		return KeyResult{Turn: TurnLeft}
	case ".", "right":
		return KeyResult{Turn: TurnRight}
	case "enter":
		return KeyResult{Action: core.ActionCapture}
	case "esc":
		return KeyResult{Action: core.ActionRelease}
	case "r":
		return KeyResult{Action: core.ActionRestart}
	case "b":
		return KeyResult{Action: core.ActionBack}
	}

	return KeyResult{}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionRuns
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionRuns
	}

	return MenuActionNone
}
