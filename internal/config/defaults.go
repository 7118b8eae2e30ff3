package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/snake.yaml
var defaultSnakeYAML []byte

// DefaultSnakeConfig returns the built-in configuration: a 300x300 board of
// 10-unit cells, a 3-segment snake at (50,50) and 200/140/80ms speeds.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Board: BoardConfig{
			Width:    300,
			Height:   300,
			CellSize: 10,
		},
		Snake: BodyConfig{
			InitialLength:   3,
			MaxLength:       900,
			StartX:          50,
			StartY:          50,
			CollisionExempt: 4,
		},
		Speeds: SpeedTable{
			Slow:   200 * time.Millisecond,
			Medium: 140 * time.Millisecond,
			Fast:   80 * time.Millisecond,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultSnakeYAML
}
