package core

// Action represents a semantic game command, abstracted from physical key presses.
// The set is closed: every key the platform understands maps to one of these.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionSpeedSlow   // 1 - start a round at slow speed
	ActionSpeedMedium // 2 - start a round at medium speed
	ActionSpeedFast   // 3 - start a round at fast speed
	ActionRestart     // R - back to the speed menu after game over
	ActionQuit        // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionSpeedSlow:
		return "SpeedSlow"
	case ActionSpeedMedium:
		return "SpeedMedium"
	case ActionSpeedFast:
		return "SpeedFast"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsDirection reports whether the action steers the snake.
func (a Action) IsDirection() bool {
	return a >= ActionUp && a <= ActionRight
}

// IsSpeed reports whether the action picks a speed from the menu.
func (a Action) IsSpeed() bool {
	return a >= ActionSpeedSlow && a <= ActionSpeedFast
}
