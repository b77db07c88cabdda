package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-puzzler/internal/core"
)

// cellStyle is the part of a cell that affects styling.
type cellStyle struct {
	fg   core.Color
	bg   core.Color
	bold bool
}

func styleOf(c core.Cell) cellStyle {
	return cellStyle{fg: c.FG, bg: c.BG, bold: c.Bold}
}

// styleCache holds lipgloss styles per cell style. Not safe for concurrent use.
type styleCache map[cellStyle]lipgloss.Style

func (sc styleCache) get(k cellStyle) lipgloss.Style {
	if st, ok := sc[k]; ok {
		return st
	}
	st := lipgloss.NewStyle()
	if k.fg != core.ColorDefault {
		st = st.Foreground(lipgloss.Color(string(k.fg)))
	}
	if k.bg != core.ColorDefault {
		st = st.Background(lipgloss.Color(string(k.bg)))
	}
	if k.bold {
		st = st.Bold(true)
	}
	sc[k] = st
	return st
}

// Renderer converts screens to styled strings.
type Renderer struct {
	styles styleCache
}

// NewRenderer creates a renderer with an empty style cache.
func NewRenderer() *Renderer {
	return &Renderer{styles: make(styleCache)}
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func (r *Renderer) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := styleOf(s.GetCell(x, y))

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if styleOf(cell) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start == (cellStyle{}) {
				sb.WriteString(run.String())
				continue
			}
			sb.WriteString(r.styles.get(start).Render(run.String()))
		}
	}
	return sb.String()
}

// RenderScreen renders s with a throwaway renderer.
func RenderScreen(s *core.Screen) string {
	return NewRenderer().Render(s)
}
