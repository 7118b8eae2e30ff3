package core

import "time"

// RuntimeConfig contains configuration passed to the game front end.
// The platform fills it from the terminal or the SSH PTY.
type RuntimeConfig struct {
	ScreenW int    // Screen width in characters
	ScreenH int    // Screen height in characters
	Seed    int64  // RNG seed for food placement (0 = time based)
	Player  string // Name recorded with finished runs
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 40,
		Seed:    0,
		Player:  "anonymous",
	}
}

// ResolveSeed returns cfg.Seed, or a time-derived seed when it is zero.
func (cfg RuntimeConfig) ResolveSeed() int64 {
	if cfg.Seed == 0 {
		return time.Now().UnixNano()
	}
	return cfg.Seed
}
