package snake

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Each grid cell is drawn two columns wide so the board looks square.
const cellCols = 2

const hudHeight = 1

// BoardSize returns the screen area (in characters) needed to show the
// board with its border and HUD line.
func (g *Game) BoardSize() (w, h int) {
	return g.cfg.Board.Columns()*cellCols + 2, g.cfg.Board.Rows() + 2 + hudHeight
}

// Render draws the current phase into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.phase == PhaseSpeedSelect {
		g.renderSpeedSelect(dst)
		return
	}

	w, h := g.BoardSize()
	if dst.Width() < w || dst.Height() < h {
		g.renderTooSmall(dst, w, h)
		return
	}

	board := core.NewRect((dst.Width()-w)/2, (dst.Height()-h)/2+hudHeight, w, h-hudHeight)
	g.renderHUD(dst, board)
	dst.DrawBox(board, core.ColorGray)
	g.renderFood(dst, board)
	g.renderSnake(dst, board)

	if g.phase == PhaseGameOver {
		renderOverlay(dst,
			"Game Over!",
			fmt.Sprintf("Score: %d", g.score),
			"Time: "+FormatElapsed(g.Elapsed()),
			"Press 'R' to Restart",
		)
	}
}

func (g *Game) renderSpeedSelect(dst *core.Screen) {
	lines := []string{"Select Speed", ""}
	for i, s := range Speeds {
		lines = append(lines, fmt.Sprintf("%d: %-6s", i+1, s.Title()))
	}

	top := (dst.Height() - len(lines)) / 2
	for i, line := range lines {
		dst.DrawTextCentered(top+i, line, core.ColorWhite)
	}
}

func (g *Game) renderTooSmall(dst *core.Screen, w, h int) {
	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-1, "Window too small", core.ColorWhite)
	dst.DrawTextCentered(mid+1, fmt.Sprintf("Need %dx%d", w, h), core.ColorGray)
}

// renderHUD draws score and time on the line above the board.
func (g *Game) renderHUD(dst *core.Screen, board core.Rect) {
	y := board.Y - 1
	dst.DrawTextColored(board.X+1, y, fmt.Sprintf("Score: %d", g.score), core.ColorWhite)

	timeText := "Time: " + FormatElapsed(g.Elapsed())
	dst.DrawTextColored(board.Right()-1-len(timeText), y, timeText, core.ColorWhite)
}

func (g *Game) renderFood(dst *core.Screen, board core.Rect) {
	x, y := g.screenPos(board, g.food)
	dst.SetColored(x, y, '(', core.ColorRed)
	dst.SetColored(x+1, y, ')', core.ColorRed)
}

func (g *Game) renderSnake(dst *core.Screen, board core.Rect) {
	// Draw tail first so the head stays visible where segments overlap.
	for i := g.length - 1; i >= 0; i-- {
		x, y := g.screenPos(board, g.body[i])
		glyph, color := '▓', core.ColorBrightYellow
		if i == 0 {
			glyph, color = '█', core.ColorDarkYellow
		}
		dst.SetColored(x, y, glyph, color)
		dst.SetColored(x+1, y, glyph, color)
	}
}

// screenPos converts a board position to the left screen column of its cell.
func (g *Game) screenPos(board core.Rect, p Position) (int, int) {
	cell := g.cfg.Board.CellSize
	return board.X + 1 + (p.X/cell)*cellCols, board.Y + 1 + p.Y/cell
}

// renderOverlay draws a centered box holding the given lines.
func renderOverlay(dst *core.Screen, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.NewRect((dst.Width()-maxLen-4)/2, (dst.Height()-len(lines)-2)/2, maxLen+4, len(lines)+2)
	for y := box.Y + 1; y < box.Bottom()-1; y++ {
		for x := box.X + 1; x < box.Right()-1; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, core.ColorWhite)

	for i, line := range lines {
		dst.DrawTextCentered(box.Y+1+i, line, core.ColorWhite)
	}
}

// FormatElapsed formats a duration as MM:SS.
func FormatElapsed(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
