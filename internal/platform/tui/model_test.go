package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/sound"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

type fakeRecorder struct {
	runs []storage.Run
	err  error
}

func (f *fakeRecorder) SaveRun(r storage.Run) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.runs = append(f.runs, r)
	return "run-1", nil
}

type countingPlayer struct {
	plays int
	err   error
}

func (p *countingPlayer) Play(sound.Effect) error {
	p.plays++
	return p.err
}

// crashConfig lets a five-segment snake bite itself by turning in a square.
func crashConfig() config.SnakeConfig {
	cfg := config.DefaultSnakeConfig()
	cfg.Snake.InitialLength = 5
	cfg.Snake.CollisionExempt = 0
	return cfg
}

// stripConfig is a single row of four cells, so moving right visits every
// cell, the food's included, within four ticks.
func stripConfig() config.SnakeConfig {
	cfg := config.DefaultSnakeConfig()
	cfg.Board = config.BoardConfig{Width: 40, Height: 10, CellSize: 10}
	cfg.Snake = config.BodyConfig{InitialLength: 1, MaxLength: 8, StartX: 0, StartY: 0}
	return cfg
}

func newTestModel(t *testing.T, cfg config.SnakeConfig, svc Services) Model {
	t.Helper()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}
	rc := core.DefaultConfig()
	rc.Player = "tester"
	return NewModel(snake.New(cfg, 42), rc, svc)
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func tick(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	return send(t, m, TickMsg{Gen: m.clock.gen, Time: time.Now()})
}

func TestModelSpeedKeyStartsClock(t *testing.T) {
	m := newTestModel(t, config.DefaultSnakeConfig(), Services{})

	if cmd := m.Init(); cmd != nil {
		t.Error("Init() should not tick before a speed is chosen")
	}

	m, cmd := send(t, m, runeKey("3"))
	if cmd == nil {
		t.Fatal("speed key should schedule the first tick")
	}
	if m.Game().Phase() != snake.PhasePlaying {
		t.Errorf("phase = %v, want playing", m.Game().Phase())
	}
	if m.clock.interval != 80*time.Millisecond {
		t.Errorf("clock interval = %v, want 80ms", m.clock.interval)
	}

	// Steering does not schedule more ticks.
	if _, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyDown}); cmd != nil {
		t.Error("direction key should not schedule a tick")
	}
}

func TestModelTickAdvancesGame(t *testing.T) {
	m := newTestModel(t, config.DefaultSnakeConfig(), Services{})
	m, _ = send(t, m, runeKey("2"))

	head := m.Game().Head()
	m, cmd := tick(t, m)
	if cmd == nil {
		t.Error("tick while playing should schedule the next one")
	}
	if got := m.Game().Head(); got.X != head.X+10 || got.Y != head.Y {
		t.Errorf("head = %+v, want one cell right of %+v", got, head)
	}
}

func TestModelDropsStaleTicks(t *testing.T) {
	m := newTestModel(t, config.DefaultSnakeConfig(), Services{})
	m, _ = send(t, m, runeKey("1"))

	stale := TickMsg{Gen: m.clock.gen - 1}
	head := m.Game().Head()
	m, cmd := send(t, m, stale)
	if cmd != nil {
		t.Error("stale tick should not reschedule")
	}
	if m.Game().Head() != head {
		t.Error("stale tick moved the snake")
	}
}

func TestModelPlaysSoundOnEat(t *testing.T) {
	player := &countingPlayer{err: errors.New("no speaker")}
	m := newTestModel(t, stripConfig(), Services{Sound: player})
	m, _ = send(t, m, runeKey("2"))

	for i := 0; i < 4 && m.Game().Score() == 0; i++ {
		m, _ = tick(t, m)
	}

	if m.Game().Score() != 1 {
		t.Fatalf("score = %d, want 1 after sweeping the strip", m.Game().Score())
	}
	if player.plays != 1 {
		t.Errorf("sound played %d times, want 1", player.plays)
	}
	// A failing player is logged, the round goes on.
	if m.Game().Phase() != snake.PhasePlaying {
		t.Errorf("phase = %v, want playing", m.Game().Phase())
	}
}

func TestModelSavesRunOnCrash(t *testing.T) {
	rec := &fakeRecorder{}
	m := newTestModel(t, crashConfig(), Services{Runs: rec})
	m, _ = send(t, m, runeKey("2"))

	m, _ = tick(t, m) // right
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = tick(t, m)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m, _ = tick(t, m)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, cmd := tick(t, m)

	if m.Game().Phase() != snake.PhaseGameOver {
		t.Fatalf("phase = %v, want game_over", m.Game().Phase())
	}
	if cmd != nil {
		t.Error("no tick should follow a crash")
	}
	if m.clock.Running() {
		t.Error("clock still running after crash")
	}

	if len(rec.runs) != 1 {
		t.Fatalf("saved %d runs, want 1", len(rec.runs))
	}
	run := rec.runs[0]
	if run.Player != "tester" || run.Speed != "medium" {
		t.Errorf("saved run = %+v", run)
	}
	if run.Length != m.Game().Length() {
		t.Errorf("run length = %d, want %d", run.Length, m.Game().Length())
	}
	if m.LastRunID() != "run-1" {
		t.Errorf("LastRunID() = %q, want run-1", m.LastRunID())
	}

	// Restart goes back to the menu without ticking.
	m, cmd = send(t, m, runeKey("r"))
	if cmd != nil {
		t.Error("restart should not schedule a tick")
	}
	if m.Game().Phase() != snake.PhaseSpeedSelect {
		t.Errorf("phase = %v, want speed_select", m.Game().Phase())
	}
}

func TestModelSaveFailureKeepsGame(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("disk full")}
	m := newTestModel(t, crashConfig(), Services{Runs: rec})
	m, _ = send(t, m, runeKey("2"))

	for _, k := range []tea.KeyType{tea.KeyRight, tea.KeyDown, tea.KeyLeft, tea.KeyUp} {
		m, _ = send(t, m, tea.KeyMsg{Type: k})
		m, _ = tick(t, m)
	}

	if m.Game().Phase() != snake.PhaseGameOver {
		t.Fatalf("phase = %v, want game_over", m.Game().Phase())
	}
	if m.LastRunID() != "" {
		t.Errorf("LastRunID() = %q after failed save", m.LastRunID())
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, config.DefaultSnakeConfig(), Services{})
	m, _ = send(t, m, runeKey("1"))

	m, cmd := send(t, m, runeKey("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if m.clock.Running() {
		t.Error("clock still running after quit")
	}
	if m.View() != "" {
		t.Error("View() after quit should be empty")
	}
}

func TestModelResizeAndView(t *testing.T) {
	m := newTestModel(t, config.DefaultSnakeConfig(), Services{})

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 50})
	if m.screen.Width() != 100 || m.screen.Height() != 50-statusHeight {
		t.Errorf("screen = %dx%d, want 100x%d", m.screen.Width(), m.screen.Height(), 50-statusHeight)
	}

	view := m.View()
	if !strings.Contains(view, "Select Speed") {
		t.Error("menu view missing 'Select Speed'")
	}
	if !strings.Contains(view, "quit") {
		t.Error("view missing help line")
	}

	m, _ = send(t, m, runeKey("?"))
	if !m.help.ShowAll {
		t.Error("? should expand the help")
	}
}

func TestMinTerminalSize(t *testing.T) {
	game := snake.New(config.DefaultSnakeConfig(), 1)
	w, h := MinTerminalSize(game)
	if w != 62 || h != 34 {
		t.Errorf("MinTerminalSize() = %dx%d, want 62x34", w, h)
	}

	// At exactly that size the board is drawn instead of the notice.
	m := newTestModel(t, config.DefaultSnakeConfig(), Services{})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: w, Height: h})
	m, _ = send(t, m, runeKey("1"))
	if view := m.View(); strings.Contains(view, "Window too small") {
		t.Errorf("board does not fit in %dx%d", w, h)
	}
}

func screenshotFiles(t *testing.T, home string) []os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(home, ".snake", "screenshots"))
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("ReadDir failed: %v", err)
	}
	return entries
}

func TestModelScreenshot(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	m := newTestModel(t, config.DefaultSnakeConfig(), Services{})
	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if n := len(screenshotFiles(t, home)); n != 1 {
		t.Errorf("got %d screenshots, want 1", n)
	}
}

func TestModelScreenshotDisabled(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	m := newTestModel(t, config.DefaultSnakeConfig(), Services{NoScreenshots: true})
	if m.keys.Screenshot.Enabled() {
		t.Error("screenshot binding should be disabled")
	}
	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	if n := len(screenshotFiles(t, home)); n != 0 {
		t.Errorf("got %d screenshots with screenshots disabled", n)
	}
	m.help.ShowAll = true
	if strings.Contains(m.help.View(m.keys), "screenshot") {
		t.Error("help should not list a disabled binding")
	}
}
