package puzzler

import (
	"fmt"
	"math"
	"strings"

	platformcore "github.com/vovakirdan/tui-puzzler/internal/core"
	"github.com/vovakirdan/tui-puzzler/internal/games/puzzler/core"
)

// Cell sizes tried in order until the board fits the screen.
var cellSizes = [][2]int{{4, 2}, {2, 1}}

// footerHeight is the status line, the message lines and the controls hint.
const footerHeight = 4

// calculateLayout picks a cell size and centers the board, then points the
// board's placement mapping at screen cells so clicks can be mapped back.
func (g *Game) calculateLayout() {
	b := g.puzzle.Board()
	w, h := b.Width(), b.Height()

	g.tooSmall = true
	for _, size := range cellSizes {
		needW := w*size[0] + 2
		needH := g.hudHeight + h*size[1] + 2 + footerHeight
		if g.runtime.ScreenW >= needW && g.runtime.ScreenH >= needH {
			g.cellW, g.cellH = size[0], size[1]
			g.tooSmall = false
			break
		}
	}
	if g.tooSmall {
		g.cellW, g.cellH = cellSizes[len(cellSizes)-1][0], cellSizes[len(cellSizes)-1][1]
	}

	g.boardLeft = (g.runtime.ScreenW - w*g.cellW) / 2
	g.boardTop = g.hudHeight + 1

	// Placement space is measured in cells with y pointing up. A screen
	// column c maps to c/cellW and a screen row r to -(r+1)/cellH.
	g.puzzle.SetPlacement(core.Point{
		X: float64(g.boardLeft)/float64(g.cellW) + float64(w)/2,
		Y: -float64(g.boardTop)/float64(g.cellH) - float64(h)/2,
	}, 1)
}

// CellAtScreen maps a screen position to the board cell drawn there.
func (g *Game) CellAtScreen(col, row int) (core.Coord, bool) {
	return g.puzzle.CellAt(core.Point{
		X: float64(col) / float64(g.cellW),
		Y: -float64(row+1) / float64(g.cellH),
	})
}

// cellRect returns the screen rectangle of a board cell.
func (g *Game) cellRect(b *core.Board, x, y int) platformcore.Rect {
	p := b.WorldPosition(x, y, false)
	col := int(math.Round(p.X * float64(g.cellW)))
	bottom := int(math.Round(-p.Y*float64(g.cellH))) - 1
	return platformcore.NewRect(col, bottom-g.cellH+1, g.cellW, g.cellH)
}

// Render draws the game to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	g.renderHUD(dst)

	if g.tooSmall {
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	b := g.puzzle.Board()
	g.renderBoard(dst, b)
	g.renderFooter(dst, b)

	switch {
	case g.won && g.outcome == platformcore.OutcomeStalemate:
		g.renderOverlay(dst, "Stalemate! You win", "Press R to restart")
	case g.won:
		g.renderOverlay(dst, "You survived!", "Press R to restart")
	case g.gameOver:
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	st := g.puzzle.Player()
	lives := strings.Repeat("♥", max(st.Lives, 0)) + strings.Repeat("♡", max(st.MaxLives-max(st.Lives, 0), 0))

	hud := fmt.Sprintf(" %s | Score: %d | Turn: %d/%d | Lives: %s | Mana: %d/%d",
		g.Title(), g.score, g.puzzle.Turn(), g.puzzle.Rules().TurnsToWin, lives, st.Mana, st.MaxMana)
	dst.DrawTextColored(0, 0, hud, platformcore.ColorCyan)

	for x := 0; x < dst.Width(); x++ {
		dst.SetColored(x, 1, '─', platformcore.ColorGray)
	}
}

func (g *Game) renderBoard(dst *platformcore.Screen, b *core.Board) {
	w, h := b.Width(), b.Height()
	dst.DrawBox(platformcore.NewRect(g.boardLeft-1, g.boardTop-1, w*g.cellW+2, h*g.cellH+2), platformcore.ColorGray)

	st := g.puzzle.Player()
	awaiting := g.puzzle.AwaitingPlayer()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := core.C(x, y)
			r := g.cellRect(b, x, y)
			t := b.Get(x, y)

			bg := platformcore.ColorDefault
			if !t.IsEmpty() {
				bg = platformcore.Color(t.Hex())
			}
			dst.FillRect(r, bg)

			cx := r.X + (g.cellW-1)/2
			cy := r.Y + (g.cellH-1)/2
			switch {
			case st.Alive && c == st.Pos:
				dst.SetCell(cx, cy, platformcore.Cell{Rune: '@', FG: platformcore.ColorBrightWhite, BG: bg, Bold: true})
			case t.IsEmpty():
				dst.SetColored(cx, cy, '·', platformcore.ColorGray)
			default:
				dst.SetCell(cx, cy, platformcore.Cell{Rune: t.Rune(), FG: platformcore.ColorDarkGray, BG: bg})
			}

			if g.highlights[c] && awaiting && g.cellH > 1 {
				dst.SetCell(r.X, r.Bottom()-1, platformcore.Cell{Rune: '•', FG: platformcore.ColorBrightWhite, BG: bg})
			}
			if g.lastSwap != nil && (c == g.lastSwap.From || c == g.lastSwap.To) && g.cellH > 1 {
				dst.SetCell(r.Right()-1, r.Bottom()-1, platformcore.Cell{Rune: '↔', FG: platformcore.ColorBrightRed, BG: bg, Bold: true})
			}
			if c == g.cursor && awaiting {
				if g.cellW >= 4 {
					dst.SetCell(r.X, cy, platformcore.Cell{Rune: '[', FG: platformcore.ColorBrightWhite, BG: bg, Bold: true})
					dst.SetCell(r.Right()-1, cy, platformcore.Cell{Rune: ']', FG: platformcore.ColorBrightWhite, BG: bg, Bold: true})
				} else {
					cell := dst.GetCell(cx, cy)
					cell.FG = platformcore.ColorYellow
					cell.Bold = true
					dst.SetCell(cx, cy, cell)
				}
			}
		}
	}
}

func (g *Game) renderFooter(dst *platformcore.Screen, b *core.Board) {
	y := g.boardTop + b.Height()*g.cellH + 1

	dst.DrawTextColored(1, y, g.statusLine(), platformcore.ColorYellow)
	for i, msg := range g.messages {
		dst.DrawTextColored(1, y+1+i, msg, platformcore.ColorWhite)
	}
	dst.DrawTextColored(1, y+3,
		"Arrows/click: move | Enter: go | T: teleport | E: heal | P: pause | Esc: back",
		platformcore.ColorGray)
}

func (g *Game) statusLine() string {
	if g.puzzle.Player().Teleport && g.puzzle.AwaitingPlayer() {
		return "Teleport armed: move anywhere."
	}
	switch g.puzzle.State() {
	case core.PuzzleStarted:
		return "Setting up the board..."
	case core.PlayerTurnStart:
		if g.puzzle.AwaitingPlayer() {
			return "Your move."
		}
		return "Get ready..."
	case core.PlayerTurnEnd, core.PuzzlerTurnStart:
		return "The Puzzler is thinking..."
	case core.PuzzlerTurnEnd:
		return "The dust settles."
	}
	return ""
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *platformcore.Screen, line1, line2 string) {
	boxW := platformcore.Max(len([]rune(line1)), len([]rune(line2))) + 4
	box := platformcore.NewRect(0, 0, dst.Width(), dst.Height()).CenteredIn(boxW, 5)

	dst.FillRect(box, platformcore.ColorDefault)
	dst.DrawBox(box, platformcore.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1, platformcore.ColorBrightWhite)
	dst.DrawTextCentered(box.Y+3, line2, platformcore.ColorGray)
}
