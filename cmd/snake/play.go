package main

import (
	"fmt"
	"io"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/platform/tui"
	"github.com/vovakirdan/tui-snake/internal/sound"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagMute   bool
	flagPlayer string
)

const playLong = `Start a game in this terminal.

The default 30x30 board needs a terminal of at least %dx%d.
Smaller windows show a notice until they are enlarged.

Controls:
  1/2/3              - Pick speed (slow 200ms, medium 140ms, fast 80ms)
  Arrows/WASD/HJKL   - Steer
  R                  - Back to speed menu (after game over)
  ?                  - Show all keys
  Ctrl+S             - Save a screenshot to ~/.snake/screenshots
  Q/Ctrl+C           - Quit

Examples:
  snake play
  snake play --mute
  snake play --seed 42 --player alice
  snake play --config ./my-snake.yaml --log-file snake.log`

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play snake in this terminal",
	Args:  cobra.NoArgs,
	RunE:  runPlay,
}

func init() {
	w, h := tui.MinTerminalSize(snake.New(config.DefaultSnakeConfig(), 1))
	playCmd.Long = fmt.Sprintf(playLong, w, h)

	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Don't ring the terminal bell on eating")
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Player name stored with runs (default: current user)")
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, logCloser, err := newLogger("snake")
	if err != nil {
		return err
	}
	defer logCloser.Close()

	snakeCfg, err := config.Load(flagConfig)
	if err != nil {
		logger.Error("could not load config", "error", err)
		return fmt.Errorf("loading config: %w", err)
	}

	cfg := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	cfg.Player = playerName()

	svc := tui.Services{
		Sound:  sound.NewBell(os.Stdout),
		Logger: logger,
	}
	if flagMute {
		svc.Sound = sound.Mute{}
	}

	// Continue without storage - game still works
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		logger.Warn("could not open runs database", "error", err)
	} else {
		svc.Runs = store
		defer store.Close()
	}

	game := snake.New(snakeCfg, cfg.ResolveSeed())
	logger.Info("starting", "player", cfg.Player, "cols", snakeCfg.Board.Columns(), "rows", snakeCfg.Board.Rows())

	final, err := tui.Run(game, cfg, svc)
	if err != nil {
		logger.Error("game exited with error", "error", err)
		return fmt.Errorf("running game: %w", err)
	}

	if store != nil && final.LastRunID() != "" {
		reportLastRun(os.Stdout, store, final.LastRunID())
	}
	return nil
}

// reportLastRun prints the last saved run and the best score at its speed.
// Lookup failures only skip the report.
func reportLastRun(w io.Writer, store *storage.Store, id string) {
	run, err := store.RunByID(id)
	if err != nil || run == nil {
		return
	}
	best, err := store.HighScore(run.Speed)
	if err != nil {
		best = run.Score
	}
	printRunSummary(w, run, best)
}

func printRunSummary(w io.Writer, r *storage.Run, best int) {
	titleColor.Fprintln(w, "Last run")
	fmt.Fprintf(w, "  %s at %s: score %d, length %d, time %s\n",
		r.Player, speedTitle(r.Speed), r.Score, r.Length, durationOrDash(r.Duration))
	if r.Score >= best {
		bestColor.Fprintf(w, "  Best score at %s so far!\n", speedTitle(r.Speed))
		return
	}
	fmt.Fprintf(w, "  Best at %s: %d\n", speedTitle(r.Speed), best)
}

// playerName resolves --player, falling back to the OS user.
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return core.DefaultConfig().Player
}
