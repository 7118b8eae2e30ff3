package snake

import (
	"fmt"
	"strings"
	"time"
)

// Position is a board coordinate in board units, aligned to the cell size.
type Position struct {
	X, Y int
}

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// delta returns the unit step for the direction.
func (d Direction) delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Phase is the top-level game mode. Exactly one is active at a time.
type Phase int

const (
	PhaseSpeedSelect Phase = iota
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSpeedSelect:
		return "speed_select"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Speed is one entry of the fixed speed table.
type Speed int

const (
	SpeedSlow Speed = iota
	SpeedMedium
	SpeedFast
)

// Speeds lists the selectable speeds in menu order.
var Speeds = []Speed{SpeedSlow, SpeedMedium, SpeedFast}

func (s Speed) String() string {
	switch s {
	case SpeedSlow:
		return "slow"
	case SpeedMedium:
		return "medium"
	case SpeedFast:
		return "fast"
	default:
		return "unknown"
	}
}

// Title returns the menu label for the speed.
func (s Speed) Title() string {
	name := s.String()
	return strings.ToUpper(name[:1]) + name[1:]
}

// ParseSpeed converts a speed name (as stored with runs) back to a Speed.
func ParseSpeed(name string) (Speed, error) {
	for _, s := range Speeds {
		if strings.EqualFold(name, s.String()) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("snake: unknown speed %q", name)
}

// Clock schedules the periodic tick while a round is in progress.
// The game starts it when a speed is selected and stops it on collision.
type Clock interface {
	Start(interval time.Duration)
	Stop()
}

// TickResult reports what happened during one Tick.
type TickResult struct {
	Ate     bool // Head reached the food; a sound collaborator may react
	Crashed bool // Head hit the body; the round is over
}
