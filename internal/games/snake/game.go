// Package snake implements the game state of a single-player snake: a
// fixed-capacity body that shifts one cell per tick, toroidal wrapping,
// food relocation and the speed-select / playing / game-over phases.
//
// The package is pure logic. A platform delivers actions through Handle,
// drives Tick from the Clock it supplies, and draws with Render.
package snake

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
)

// Game holds the complete state of one player's session.
type Game struct {
	cfg   config.SnakeConfig
	rng   *rand.Rand
	clock Clock
	now   func() time.Time

	phase    Phase
	speed    Speed
	interval time.Duration
	tick     uint64
	score    int

	// body has room for the maximum length; only the first length cells
	// are meaningful, the rest is scratch space for the shift.
	body      []Position
	length    int
	direction Direction // Requested direction for the next move
	moved     Direction // Direction the last move was made in
	food      Position

	startedAt time.Time
	endedAt   time.Time
}

// New creates a game in the speed-select phase.
// The configuration must have passed config.Validate.
func New(cfg config.SnakeConfig, seed int64) *Game {
	g := &Game{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed)),
		now:   time.Now,
		phase: PhaseSpeedSelect,
		speed: SpeedMedium,
		body:  make([]Position, cfg.Snake.MaxLength),
	}
	g.interval = g.intervalFor(g.speed)
	g.resetRound()
	return g
}

// SetClock attaches the scheduler that drives Tick. A nil clock is allowed.
func (g *Game) SetClock(c Clock) {
	g.clock = c
}

// SetTimeSource replaces the wall clock used for elapsed time.
func (g *Game) SetTimeSource(now func() time.Time) {
	g.now = now
}

// Config returns the configuration the game was created with.
func (g *Game) Config() config.SnakeConfig {
	return g.cfg
}

// Handle applies one input command. Commands that are not valid in the
// current phase are ignored. Returns true if the state changed.
func (g *Game) Handle(a core.Action) bool {
	switch {
	case a.IsDirection():
		return g.SetDirection(directionFor(a))
	case a.IsSpeed():
		return g.SelectSpeed(speedFor(a))
	case a == core.ActionRestart:
		return g.Restart()
	}
	return false
}

// SelectSpeed starts a new round at the given speed. Only valid while the
// speed menu is shown.
func (g *Game) SelectSpeed(s Speed) bool {
	if g.phase != PhaseSpeedSelect {
		return false
	}

	g.speed = s
	g.interval = g.intervalFor(s)
	g.resetRound()
	g.startedAt = g.now()
	g.endedAt = time.Time{}
	g.phase = PhasePlaying

	if g.clock != nil {
		g.clock.Start(g.interval)
	}
	return true
}

// SetDirection steers the snake. A turn straight back onto the neck is
// rejected. Only valid while playing.
func (g *Game) SetDirection(d Direction) bool {
	if g.phase != PhasePlaying {
		return false
	}
	if d == g.direction.Opposite() || d == g.moved.Opposite() {
		return false
	}
	g.direction = d
	return true
}

// Restart returns from the game-over screen to the speed menu. The round
// itself is reset by the next SelectSpeed.
func (g *Game) Restart() bool {
	if g.phase != PhaseGameOver {
		return false
	}
	g.phase = PhaseSpeedSelect
	return true
}

// Tick advances the round by one step. It has no effect outside the
// playing phase.
func (g *Game) Tick() TickResult {
	if g.phase != PhasePlaying {
		return TickResult{}
	}

	g.tick++
	g.move()

	var res TickResult
	if g.checkFood() {
		res.Ate = true
	}
	if g.checkCollision() {
		res.Crashed = true
		g.gameOver()
	}
	return res
}

// resetRound lays out the initial snake, zeroes the score and places food.
func (g *Game) resetRound() {
	cell := g.cfg.Board.CellSize
	g.length = g.cfg.Snake.InitialLength
	for i := 0; i < g.length; i++ {
		g.body[i] = Position{X: g.cfg.Snake.StartX - i*cell, Y: g.cfg.Snake.StartY}
	}
	g.direction = DirRight
	g.moved = DirRight
	g.score = 0
	g.tick = 0
	g.locateFood()
}

// move shifts every segment onto its predecessor and steps the head.
func (g *Game) move() {
	// Shifting into index length keeps the old tail around, so growth
	// after eating only needs to bump the counter.
	last := min(g.length, len(g.body)-1)
	for z := last; z > 0; z-- {
		g.body[z] = g.body[z-1]
	}

	cell := g.cfg.Board.CellSize
	dx, dy := g.direction.delta()
	head := g.body[0]
	head.X = core.Wrap(head.X+dx*cell, g.cfg.Board.Width, cell)
	head.Y = core.Wrap(head.Y+dy*cell, g.cfg.Board.Height, cell)
	g.body[0] = head
	g.moved = g.direction
}

// checkFood grows the snake when the head reached the food.
func (g *Game) checkFood() bool {
	if g.body[0] != g.food {
		return false
	}
	if g.length < len(g.body) {
		g.length++
	}
	g.score++
	g.locateFood()
	return true
}

// checkCollision reports whether the head overlaps a non-exempt segment.
func (g *Game) checkCollision() bool {
	head := g.body[0]
	for z := g.length - 1; z > g.cfg.Snake.CollisionExempt; z-- {
		if g.body[z] == head {
			return true
		}
	}
	return false
}

func (g *Game) gameOver() {
	g.phase = PhaseGameOver
	g.endedAt = g.now()
	if g.clock != nil {
		g.clock.Stop()
	}
}

// locateFood picks a uniformly random cell. The snake's own cells are not
// excluded.
func (g *Game) locateFood() {
	cell := g.cfg.Board.CellSize
	g.food = Position{
		X: g.rng.Intn(g.cfg.Board.Columns()) * cell,
		Y: g.rng.Intn(g.cfg.Board.Rows()) * cell,
	}
}

func (g *Game) intervalFor(s Speed) time.Duration {
	switch s {
	case SpeedSlow:
		return g.cfg.Speeds.Slow
	case SpeedFast:
		return g.cfg.Speeds.Fast
	default:
		return g.cfg.Speeds.Medium
	}
}

func directionFor(a core.Action) Direction {
	switch a {
	case core.ActionUp:
		return DirUp
	case core.ActionDown:
		return DirDown
	case core.ActionLeft:
		return DirLeft
	default:
		return DirRight
	}
}

func speedFor(a core.Action) Speed {
	switch a {
	case core.ActionSpeedSlow:
		return SpeedSlow
	case core.ActionSpeedFast:
		return SpeedFast
	default:
		return SpeedMedium
	}
}

// Phase returns the active phase.
func (g *Game) Phase() Phase { return g.phase }

// Score returns the number of food items eaten this round.
func (g *Game) Score() int { return g.score }

// Length returns the number of meaningful body segments.
func (g *Game) Length() int { return g.length }

// Head returns the head position.
func (g *Game) Head() Position { return g.body[0] }

// Food returns the food position.
func (g *Game) Food() Position { return g.food }

// Direction returns the direction the next move will take.
func (g *Game) Direction() Direction { return g.direction }

// Speed returns the speed of the current or last round.
func (g *Game) Speed() Speed { return g.speed }

// Interval returns the tick interval of the current or last round.
func (g *Game) Interval() time.Duration { return g.interval }

// Body returns a copy of the meaningful body segments, head first.
func (g *Game) Body() []Position {
	out := make([]Position, g.length)
	copy(out, g.body[:g.length])
	return out
}

// Elapsed returns the time since the round began. It freezes when the
// round ends and reads zero on the speed menu.
func (g *Game) Elapsed() time.Duration {
	switch g.phase {
	case PhasePlaying:
		return g.now().Sub(g.startedAt)
	case PhaseGameOver:
		return g.endedAt.Sub(g.startedAt)
	default:
		return 0
	}
}
