package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/sound"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// statusHeight is the number of rows reserved under the board for help.
const statusHeight = 1

// RunRecorder stores finished runs. *storage.Store satisfies it.
type RunRecorder interface {
	SaveRun(r storage.Run) (string, error)
}

// Services are the collaborators of a Model. Nil fields are allowed.
type Services struct {
	Runs   RunRecorder
	Sound  sound.Player
	Logger *log.Logger

	// NoScreenshots turns off ctrl+s. Remote sessions must not write
	// files on the host.
	NoScreenshots bool
}

// Model is the Bubble Tea model for one snake session.
type Model struct {
	game     *snake.Game
	clock    *tickClock
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	runs     RunRecorder
	sound    sound.Player
	logger   *log.Logger
	config   core.RuntimeConfig
	lastRun  string // ID of the last saved run
	quitting bool
}

// NewModel creates a Bubble Tea model around game. The model installs its
// own clock on the game.
func NewModel(game *snake.Game, cfg core.RuntimeConfig, svc Services) Model {
	if svc.Sound == nil {
		svc.Sound = sound.Mute{}
	}
	if svc.Logger == nil {
		svc.Logger = log.New(io.Discard)
	}

	clock := newTickClock()
	game.SetClock(clock)

	h := help.New()
	h.Width = cfg.ScreenW

	keys := DefaultKeyMap()
	keys.Screenshot.SetEnabled(!svc.NoScreenshots)

	return Model{
		game:   game,
		clock:  clock,
		screen: core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-statusHeight, 0)),
		keys:   keys,
		help:   h,
		runs:   svc.Runs,
		sound:  svc.Sound,
		logger: svc.Logger,
		config: cfg,
	}
}

// Init waits for the first key; ticks begin once a speed is picked.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionQuit {
		m.quitting = true
		m.clock.Stop()
		return m, tea.Quit
	}

	if m.game.Handle(action) {
		m.logger.Debug("action", "action", action, "phase", m.game.Phase())
	}

	// SelectSpeed starts the clock; hand its first tick to Bubble Tea.
	return m, m.clock.Cmd()
}

// handleResize processes window resize events. The round keeps running;
// the renderer shows a notice while the board does not fit.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-statusHeight, 0))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick advances the game and schedules the next tick.
func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	if !m.clock.accept(msg) {
		return m, nil
	}

	res := m.game.Tick()
	if res.Ate {
		if err := m.sound.Play(sound.EffectEat); err != nil {
			m.logger.Warn("sound failed", "error", err)
		}
	}
	if res.Crashed {
		m.saveRun()
	}

	return m, m.clock.next()
}

// saveRun records the finished round. Failures are logged, the game
// continues regardless.
func (m *Model) saveRun() {
	if m.runs == nil {
		return
	}

	run := storage.Run{
		Player:   m.config.Player,
		Speed:    m.game.Speed().String(),
		Score:    m.game.Score(),
		Length:   m.game.Length(),
		Duration: m.game.Elapsed(),
	}
	id, err := m.runs.SaveRun(run)
	if err != nil {
		m.logger.Warn("could not save run", "error", err)
		return
	}
	m.lastRun = id
	m.logger.Info("run saved", "id", id, "player", run.Player, "speed", run.Speed, "score", run.Score)
}

// saveScreenshot saves the current screen to ~/.snake/screenshots.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	dir := filepath.Join(home, ".snake", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}

	filename := fmt.Sprintf("snake_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + statusStyle.Render(m.help.View(m.keys))
}

// Game returns the game driven by the model.
func (m Model) Game() *snake.Game {
	return m.game
}

// LastRunID returns the ID of the most recently saved run, if any.
func (m Model) LastRunID() string {
	return m.lastRun
}

// MinTerminalSize returns the terminal size needed to show the whole board
// of game together with the help line.
func MinTerminalSize(game *snake.Game) (w, h int) {
	w, h = game.BoardSize()
	return w, h + statusHeight
}

// Run starts the Bubble Tea program on the local terminal and returns the
// model as it was when the program exited.
func Run(game *snake.Game, cfg core.RuntimeConfig, svc Services) (Model, error) {
	model := NewModel(game, cfg, svc)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		model = m
	}
	return model, err
}
