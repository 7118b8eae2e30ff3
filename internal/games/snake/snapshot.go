package snake

import "time"

// Snapshot captures the renderable game state for renderers, persistence
// and determinism testing.
type Snapshot struct {
	Phase    Phase
	Speed    Speed
	Interval time.Duration
	Tick     uint64
	Score    int
	Length   int
	Body     []Position // Head first
	Dir      Direction
	Food     Position
	Elapsed  time.Duration
}

// Head returns the head position, or the zero position for an empty body.
func (s Snapshot) Head() Position {
	if len(s.Body) == 0 {
		return Position{}
	}
	return s.Body[0]
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Phase:    g.phase,
		Speed:    g.speed,
		Interval: g.interval,
		Tick:     g.tick,
		Score:    g.score,
		Length:   g.length,
		Body:     g.Body(),
		Dir:      g.direction,
		Food:     g.food,
		Elapsed:  g.Elapsed(),
	}
}
