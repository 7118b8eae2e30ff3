// Package config provides YAML-based configuration loading for the snake
// board, body limits and the speed table.
package config

import (
	"errors"
	"fmt"
	"time"
)

// SnakeConfig contains all tunable constants of the game.
type SnakeConfig struct {
	Board  BoardConfig `yaml:"board"`
	Snake  BodyConfig  `yaml:"snake"`
	Speeds SpeedTable  `yaml:"speeds"`
}

// BoardConfig defines the playing field in board units.
type BoardConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	CellSize int `yaml:"cell_size"`
}

// Columns returns the number of grid columns.
func (b BoardConfig) Columns() int {
	return b.Width / b.CellSize
}

// Rows returns the number of grid rows.
func (b BoardConfig) Rows() int {
	return b.Height / b.CellSize
}

// BodyConfig defines the snake's starting layout and limits.
type BodyConfig struct {
	InitialLength int `yaml:"initial_length"`
	MaxLength     int `yaml:"max_length"`
	StartX        int `yaml:"start_x"`
	StartY        int `yaml:"start_y"`
	// CollisionExempt is the highest body index that is never tested
	// against the head.
	CollisionExempt int `yaml:"collision_exempt"`
}

// SpeedTable maps each selectable speed to its tick interval.
type SpeedTable struct {
	Slow   time.Duration `yaml:"slow"`
	Medium time.Duration `yaml:"medium"`
	Fast   time.Duration `yaml:"fast"`
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Validate checks that the configuration describes a playable board.
func (c SnakeConfig) Validate() error {
	b, s := c.Board, c.Snake

	switch {
	case b.CellSize <= 0:
		return fmt.Errorf("%w: cell_size must be positive, got %d", ErrInvalid, b.CellSize)
	case b.Width <= 0 || b.Height <= 0:
		return fmt.Errorf("%w: board must be positive, got %dx%d", ErrInvalid, b.Width, b.Height)
	case b.Width%b.CellSize != 0 || b.Height%b.CellSize != 0:
		return fmt.Errorf("%w: board %dx%d is not a multiple of cell_size %d", ErrInvalid, b.Width, b.Height, b.CellSize)
	}

	if s.InitialLength < 1 {
		return fmt.Errorf("%w: initial_length must be at least 1, got %d", ErrInvalid, s.InitialLength)
	}
	if s.MaxLength < s.InitialLength {
		return fmt.Errorf("%w: max_length %d is below initial_length %d", ErrInvalid, s.MaxLength, s.InitialLength)
	}
	if s.CollisionExempt < 0 {
		return fmt.Errorf("%w: collision_exempt must not be negative, got %d", ErrInvalid, s.CollisionExempt)
	}
	if s.StartX%b.CellSize != 0 || s.StartY%b.CellSize != 0 {
		return fmt.Errorf("%w: start (%d,%d) is not aligned to cell_size %d", ErrInvalid, s.StartX, s.StartY, b.CellSize)
	}

	// The initial body extends left of the start position.
	tailX := s.StartX - (s.InitialLength-1)*b.CellSize
	if s.StartY < 0 || s.StartY >= b.Height || s.StartX >= b.Width || tailX < 0 {
		return fmt.Errorf("%w: initial snake at (%d,%d) does not fit the board", ErrInvalid, s.StartX, s.StartY)
	}

	for name, d := range map[string]time.Duration{
		"slow":   c.Speeds.Slow,
		"medium": c.Speeds.Medium,
		"fast":   c.Speeds.Fast,
	} {
		if d <= 0 {
			return fmt.Errorf("%w: speed %s must be positive, got %s", ErrInvalid, name, d)
		}
	}

	return nil
}
