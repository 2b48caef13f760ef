package mud

import "github.com/gdamore/tcell/v2"

// Action represents a terminal-view key action.
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveN
	ActionMoveS
	ActionMoveE
	ActionMoveW
	ActionDig
	ActionToggleFlag
	ActionLook
	ActionHelp
	ActionQuit
)

// keyToAction maps a tcell key event to a view action.
func keyToAction(ev *tcell.EventKey) Action {
	return keyAction(ev.Key(), ev.Rune())
}

func keyAction(key tcell.Key, r rune) Action {
	switch key {
	case tcell.KeyUp:
		return ActionMoveN
	case tcell.KeyDown:
		return ActionMoveS
	case tcell.KeyRight:
		return ActionMoveE
	case tcell.KeyLeft:
		return ActionMoveW
	case tcell.KeyEnter:
		return ActionDig
	case tcell.KeyEscape:
		return ActionQuit
	}
	switch r {
	case 'k', 'K':
		return ActionMoveN
	case 'j', 'J':
		return ActionMoveS
	case 'l', 'L':
		return ActionMoveE
	case 'h', 'H':
		return ActionMoveW
	case 'd', 'D', ' ':
		return ActionDig
	case 'f', 'F':
		return ActionToggleFlag
	case 'r', 'R':
		return ActionLook
	case '?':
		return ActionHelp
	case 'q', 'Q':
		return ActionQuit
	}
	return ActionNone
}

// actionToDelta converts a movement action to a (row, column) step.
func actionToDelta(a Action) (int, int) {
	switch a {
	case ActionMoveN:
		return -1, 0
	case ActionMoveS:
		return 1, 0
	case ActionMoveE:
		return 0, 1
	case ActionMoveW:
		return 0, -1
	}
	return 0, 0
}
