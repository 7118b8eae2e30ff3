package main

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagLimit       int
	flagScoresUser  string
	flagScoresStats bool
	flagClear       string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [slow|medium|fast]",
	Short: "Show the best runs",
	Long: `Display the best runs, optionally for a single speed.

Runs are ranked by score; ties go to the faster run.

Examples:
  snake scores
  snake scores fast
  snake scores --player alice
  snake scores --stats
  snake scores --clear slow`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().StringVar(&flagScoresUser, "player", "", "Show the latest runs of one player instead")
	scoresCmd.Flags().BoolVar(&flagScoresStats, "stats", false, "Show per-speed statistics")
	scoresCmd.Flags().StringVar(&flagClear, "clear", "", "Delete all runs of the given speed")
}

var (
	titleColor  = color.New(color.FgGreen, color.Bold)
	headerColor = color.New(color.FgHiBlack)
	bestColor   = color.New(color.FgHiYellow, color.Bold)
	dimColor    = color.New(color.FgHiBlack)
)

func runScores(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	speed := ""
	if len(args) == 1 {
		s, err := snake.ParseSpeed(args[0])
		if err != nil {
			return err
		}
		speed = s.String()
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	switch {
	case flagClear != "":
		s, err := snake.ParseSpeed(flagClear)
		if err != nil {
			return err
		}
		if err := store.ClearRuns(s.String()); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared all %s runs.\n", s.Title())
		return nil

	case flagScoresStats:
		stats, err := store.Stats()
		if err != nil {
			return fmt.Errorf("retrieving stats: %w", err)
		}
		printStats(out, stats)
		return nil
	}

	var (
		runs  []storage.Run
		title string
	)
	if flagScoresUser != "" {
		runs, err = store.PlayerRuns(flagScoresUser, flagLimit)
		title = "Latest Runs - " + flagScoresUser
	} else {
		runs, err = store.TopRuns(speed, flagLimit)
		title = "High Scores - " + speedTitle(speed)
	}
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	printRuns(out, title, runs)

	// Show high score
	if speed != "" && len(runs) > 0 {
		if best, err := store.HighScore(speed); err == nil {
			fmt.Fprintln(out)
			bestColor.Fprintf(out, "Best: %d\n", best)
		}
	}
	return nil
}

func speedTitle(speed string) string {
	if speed == "" {
		return "All Speeds"
	}
	s, err := snake.ParseSpeed(speed)
	if err != nil {
		return speed
	}
	return s.Title()
}

// printRuns writes a ranked table of runs. The first row is highlighted.
func printRuns(w io.Writer, title string, runs []storage.Run) {
	titleColor.Fprintln(w, title)
	fmt.Fprintln(w)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'snake play' to set the first high score!")
		return
	}

	headerColor.Fprintf(w, "  %-4s  %-12s  %-6s  %5s  %6s  %5s  %s\n", "Rank", "Player", "Speed", "Score", "Length", "Time", "Date")
	headerColor.Fprintf(w, "  %-4s  %-12s  %-6s  %5s  %6s  %5s  %s\n", "----", "------", "-----", "-----", "------", "----", "----")

	for i, r := range runs {
		line := fmt.Sprintf("  %-4d  %-12s  %-6s  %5d  %6d  %5s  %s\n",
			i+1, truncate(r.Player, 12), r.Speed, r.Score, r.Length,
			durationOrDash(r.Duration), r.CreatedAt.Format("2006-01-02 15:04"))
		if i == 0 {
			bestColor.Fprint(w, line)
		} else {
			fmt.Fprint(w, line)
		}
	}
}

// printStats writes one line per speed in menu order.
func printStats(w io.Writer, stats map[string]*storage.SpeedStats) {
	titleColor.Fprintln(w, "Statistics")
	fmt.Fprintln(w)

	if len(stats) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		return
	}

	order := make([]string, 0, len(stats))
	for name := range stats {
		order = append(order, name)
	}
	sort.Slice(order, func(i, j int) bool {
		return speedRank(order[i]) < speedRank(order[j])
	})

	headerColor.Fprintf(w, "  %-6s  %4s  %4s  %6s  %7s  %s\n", "Speed", "Runs", "Best", "Avg", "Longest", "Last played")
	for _, name := range order {
		st := stats[name]
		last := "-"
		if !st.LastPlayed.IsZero() {
			last = st.LastPlayed.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "  %-6s  %4d  %4d  %6.1f  %7s  ", st.Speed, st.Runs, st.HighScore, st.AvgScore, snake.FormatElapsed(st.LongestRun))
		dimColor.Fprintln(w, last)
	}
}

func speedRank(name string) int {
	s, err := snake.ParseSpeed(name)
	if err != nil {
		return len(snake.Speeds)
	}
	return int(s)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// durationOrDash is used where a zero duration means "not recorded".
func durationOrDash(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return snake.FormatElapsed(d)
}
