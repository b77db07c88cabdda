package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-puzzler/internal/core"
	"github.com/vovakirdan/tui-puzzler/internal/registry"
	"github.com/vovakirdan/tui-puzzler/internal/storage"
)

const (
	maxScores = 100
	maxRuns   = 50
)

type scoreView int

const (
	viewScores scoreView = iota
	viewRuns
)

var (
	boardFrameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	modeTabStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	modeActiveStyle = menuSelectedStyle.Padding(0, 1)
	emptyStyle      = menuDimStyle.Italic(true).Padding(1, 2)
)

type scoreboardKeys struct {
	Scroll key.Binding
	Mode   key.Binding
	View   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k scoreboardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Mode, k.View, k.Back, k.Quit}
}

func (k scoreboardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newScoreboardKeys() scoreboardKeys {
	return scoreboardKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "k", "down", "j"), key.WithHelp("↑/↓", "scroll")),
		Mode:   key.NewBinding(key.WithKeys("left", "h", "right", "l", "tab", "shift+tab"), key.WithHelp("←/→", "mode")),
		View:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "scores/runs")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the high scores and recent runs of each game mode,
// with the mode's aggregate stats underneath.
type ScoreboardModel struct {
	store  *storage.Store
	modes  []registry.GameInfo
	mode   int
	view   scoreView
	scores []storage.ScoreEntry
	runs   []core.RunSummary
	stats  *storage.GameStats

	table table.Model
	help  help.Model
	keys  scoreboardKeys

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard opened on the first game mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		modes:  registry.List(),
		help:   help.New(),
		keys:   newScoreboardKeys(),
		width:  width,
		height: height,
	}
	m.rebuild()
	m.load()
	return m
}

func (m *ScoreboardModel) gameID() string {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.mode].ID
}

func (m *ScoreboardModel) rebuild() {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 8},
		{Title: "Date", Width: 16},
	}
	if m.view == viewRuns {
		columns = []table.Column{
			{Title: "Outcome", Width: 10},
			{Title: "Score", Width: 7},
			{Title: "Turns", Width: 5},
			{Title: "Lives", Width: 5},
			{Title: "Favorite", Width: 8},
			{Title: "Date", Width: 12},
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	m.table = t
	m.fillRows()
}

func (m *ScoreboardModel) load() {
	m.scores, m.runs, m.stats = nil, nil, nil
	if id := m.gameID(); m.store != nil && id != "" {
		if scores, err := m.store.TopScores(id, maxScores); err == nil {
			m.scores = scores
		}
		if runs, err := m.store.RecentRuns(id, maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GetGameStats(id); err == nil {
			m.stats = stats
		}
	}
	m.fillRows()
}

func (m *ScoreboardModel) fillRows() {
	var rows []table.Row
	switch m.view {
	case viewRuns:
		for _, r := range m.runs {
			fav := r.Favorite
			if fav == "" {
				fav = "-"
			}
			rows = append(rows, table.Row{
				r.Outcome,
				strconv.Itoa(r.Score),
				strconv.Itoa(r.Turns),
				strconv.Itoa(r.LivesLeft),
				fav,
				r.CreatedAt.Local().Format("Jan 02 15:04"),
			})
		}
	default:
		for i, s := range m.scores {
			rows = append(rows, table.Row{
				strconv.Itoa(i + 1),
				strconv.Itoa(s.Score),
				s.CreatedAt.Local().Format("Jan 02 15:04"),
			})
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) switchMode(delta int) {
	if len(m.modes) < 2 {
		return
	}
	m.mode = wrap(m.mode+delta, len(m.modes))
	m.load()
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.View):
			m.view = 1 - m.view
			m.rebuild()
			return m, nil
		case key.Matches(msg, m.keys.Mode):
			switch msg.String() {
			case "left", "h", "shift+tab":
				m.switchMode(-1)
			default:
				m.switchMode(1)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.rebuild()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	title := "HIGH SCORES"
	if m.view == viewRuns {
		title = "RECENT RUNS"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render(title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderModes(), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(boardFrameStyle.Render(m.renderTable()), m.width))
	b.WriteString("\n")
	if line := m.renderStats(); line != "" {
		b.WriteString(centerText(menuDimStyle.Render(line), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	return b.String()
}

func (m ScoreboardModel) renderModes() string {
	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.mode {
			tabs[i] = modeActiveStyle.Render(g.Title)
		} else {
			tabs[i] = modeTabStyle.Render(g.Title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m ScoreboardModel) renderTable() string {
	switch {
	case m.view == viewRuns && len(m.runs) == 0:
		return emptyStyle.Render("No runs recorded yet.")
	case m.view == viewScores && len(m.scores) == 0:
		return emptyStyle.Render("No scores yet. Survive a few turns!")
	}
	return m.table.View()
}

func (m ScoreboardModel) renderStats() string {
	st := m.stats
	if st == nil || st.Runs == 0 {
		return ""
	}
	line := fmt.Sprintf("Runs %d  Wins %d  Stalemates %d  Avg turns %.1f",
		st.Runs, st.Wins, st.Stalemates, st.AvgTurns)
	if st.TopFavorite != "" {
		line += "  Favorite " + st.TopFavorite
	}
	return line
}

// IsGoingBack reports whether the player left for the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen. It reports whether the player
// went back to the menu rather than quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
