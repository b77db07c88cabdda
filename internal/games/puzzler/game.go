// Package puzzler provides the puzzler match-3 duel for the platform: the
// player moves a piece across the board while the Puzzler swaps tokens to
// land matches on it.
package puzzler

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-puzzler/internal/config"
	platformcore "github.com/vovakirdan/tui-puzzler/internal/core"
	"github.com/vovakirdan/tui-puzzler/internal/games/puzzler/core"
	"github.com/vovakirdan/tui-puzzler/internal/games/puzzler/layouts"
	"github.com/vovakirdan/tui-puzzler/internal/registry"
)

// Mode selects the game variant.
type Mode int

const (
	ModeClassic Mode = iota // Fixed board, survive TurnsToWin turns
	ModeShrink              // Board loses a row and a column every few turns
)

// Scoring.
const (
	pointsPerTurn = 100
	pointsPerMana = 5
	pointsPerLife = 250
)

const maxMessages = 2

// Package-level settings applied on the next Reset.
var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	layoutRef        string
	layoutDir        string
	eventLogger      *log.Logger
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, err := config.ParseDifficulty(preset)
	if err != nil {
		p = ""
	}
	difficultyPreset = p
}

// SetLayout selects a starting layout by ID or file path. Empty means a
// random board.
func SetLayout(ref string) {
	layoutRef = ref
}

// SetLayoutDir sets the directory searched for layouts by ID before the
// builtin ones.
func SetLayoutDir(dir string) {
	layoutDir = dir
}

// SetEventLogger makes every new game log its simulation events to l.
// nil disables event logging.
func SetEventLogger(l *log.Logger) {
	eventLogger = l
}

// Game implements the puzzler game for the platform registry.
type Game struct {
	mode     Mode
	options  *registry.Options
	runtime  platformcore.RuntimeConfig
	cfg      config.PuzzlerConfig
	pressure *config.DifficultyManager
	layout   *layouts.Layout

	rng    *rand.Rand
	seed   int64
	puzzle *core.Puzzle

	// Status
	tick     uint64
	score    int
	outcome  string
	gameOver bool
	won      bool
	paused   bool
	tooSmall bool

	// Interaction
	cursor     core.Coord
	highlights map[core.Coord]bool
	lastSwap   *core.Move
	messages   []string

	// Rendering layout
	cellW     int
	cellH     int
	boardLeft int
	boardTop  int
	hudHeight int
}

func init() {
	registry.Register("puzzler", func() registry.Game {
		return New()
	})
	registry.Register("puzzler_shrink", func() registry.Game {
		return NewShrink()
	})
}

// New creates a classic puzzler game.
func New() *Game {
	return &Game{mode: ModeClassic, hudHeight: 2}
}

// NewShrink creates a puzzler game on a shrinking board.
func NewShrink() *Game {
	return &Game{mode: ModeShrink, hudHeight: 2}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeShrink {
		return "puzzler_shrink"
	}
	return "puzzler"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeShrink {
		return "Puzzler (Shrinking Board)"
	}
	return "Puzzler"
}

// Configure overrides the package-level difficulty and layout for this
// instance.
func (g *Game) Configure(opts registry.Options) {
	g.options = &opts
}

// Reset initializes or restarts the game.
func (g *Game) Reset(rc platformcore.RuntimeConfig) {
	g.runtime = rc
	g.seed = rc.Seed
	g.rng = rand.New(rand.NewSource(rc.Seed))

	g.tick = 0
	g.score = 0
	g.outcome = ""
	g.gameOver = false
	g.won = false
	g.paused = false
	g.highlights = make(map[core.Coord]bool)
	g.lastSwap = nil
	g.messages = nil

	cfg, err := config.Load(configPath)
	if err != nil {
		cfg = config.DefaultPuzzlerConfig()
		g.notice("Config ignored: " + err.Error())
	}
	preset, ref := difficultyPreset, layoutRef
	if g.options != nil {
		if p, err := config.ParseDifficulty(g.options.Difficulty); err == nil {
			preset = p
		}
		ref = g.options.Layout
	}
	if preset != "" {
		config.ApplyPreset(&cfg, preset)
	}
	g.cfg = cfg
	g.pressure = config.NewDifficultyManager(cfg.Pressure)

	var opts []core.Option
	g.layout = nil
	if ref != "" {
		l, err := layouts.Resolve(ref, layoutDir)
		if err != nil {
			g.notice("Layout ignored: " + err.Error())
		} else {
			g.layout = &l
			opts = append(opts, l.Options()...)
		}
	}

	g.puzzle = core.NewPuzzle(RulesFromConfig(cfg, g.mode == ModeShrink), g.rng, opts...)
	g.puzzle.Subscribe(g.applyPressure)
	if eventLogger != nil {
		g.puzzle.Subscribe(NewEventLogger(eventLogger.With("game", g.ID(), "seed", rc.Seed)).Listen)
	}
	g.puzzle.Start()

	g.cursor = g.puzzle.Player().Pos
	g.calculateLayout()
}

// Resize adopts new screen dimensions without restarting the run.
func (g *Game) Resize(width, height int) {
	g.runtime.ScreenW = width
	g.runtime.ScreenH = height
	if g.puzzle != nil {
		g.calculateLayout()
	}
}

// applyPressure shortens the opponent's delay as turns pass.
func (g *Game) applyPressure(e core.Event) {
	ev, ok := e.(core.PhaseEntered)
	if !ok || ev.State != core.PlayerTurnStart || !g.pressure.IsEnabled() {
		return
	}
	g.puzzle.SetOpponentDelay(
		g.pressure.OpponentDelay(g.cfg.Opponent.DelayMin, ev.Turn),
		g.pressure.OpponentDelay(g.cfg.Opponent.DelayMax, ev.Turn),
	)
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if in.Has(platformcore.ActionRestart) && g.gameOver {
		g.Reset(platformcore.RuntimeConfig{
			ScreenW:  g.runtime.ScreenW,
			ScreenH:  g.runtime.ScreenH,
			TickRate: g.runtime.TickRate,
			Seed:     g.rng.Int63(),
		})
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) && !g.gameOver {
		g.paused = !g.paused
	}

	if g.gameOver || g.paused || g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	g.handleInput(in)
	g.puzzle.Advance(g.runtime.TickInterval())
	g.consumeEvents()
	g.checkEnd()

	return platformcore.StepResult{State: g.State()}
}

func (g *Game) handleInput(in platformcore.InputFrame) {
	b := g.puzzle.Board()
	move := func(dx, dy int) {
		g.cursor = core.C(
			platformcore.Clamp(g.cursor.X+dx, 0, b.Width()-1),
			platformcore.Clamp(g.cursor.Y+dy, 0, b.Height()-1),
		)
	}
	if in.Has(platformcore.ActionUp) {
		move(0, 1)
	}
	if in.Has(platformcore.ActionDown) {
		move(0, -1)
	}
	if in.Has(platformcore.ActionLeft) {
		move(-1, 0)
	}
	if in.Has(platformcore.ActionRight) {
		move(1, 0)
	}

	if in.Has(platformcore.ActionTeleport) {
		g.useSkill(core.SkillTeleport)
	}
	if in.Has(platformcore.ActionHeal) {
		g.useSkill(core.SkillHeal)
	}

	for _, c := range in.Clicks {
		cell, ok := g.CellAtScreen(c.Col, c.Row)
		if !ok {
			continue
		}
		g.cursor = cell
		g.movePlayer(cell)
	}

	if in.Has(platformcore.ActionConfirm) {
		g.movePlayer(g.cursor)
	}
}

func (g *Game) movePlayer(c core.Coord) {
	if !g.puzzle.AwaitingPlayer() {
		return
	}
	err := g.puzzle.MovePlayer(c)
	switch {
	case err == nil:
	case errors.Is(err, core.ErrOutOfReach):
		g.notice("Too far. Arm teleport to jump there.")
	default:
		g.notice(err.Error())
	}
}

func (g *Game) useSkill(s core.Skill) {
	err := g.puzzle.UseSkill(s)
	switch {
	case err == nil:
	case errors.Is(err, core.ErrNotPlayerTurn):
		g.notice("Wait for your turn.")
	case errors.Is(err, core.ErrNotEnoughMana):
		g.notice(fmt.Sprintf("Not enough mana for %v.", s))
	case errors.Is(err, core.ErrLivesFull):
		g.notice("Lives are already full.")
	case errors.Is(err, core.ErrSkillActive):
		g.notice("Teleport is already armed.")
	default:
		g.notice(err.Error())
	}
}

// consumeEvents drains the puzzle's event queue into score, highlights
// and messages.
func (g *Game) consumeEvents() {
	for _, e := range g.puzzle.Events() {
		switch ev := e.(type) {
		case core.PhaseEntered:
			switch ev.State {
			case core.PlayerTurnStart, core.PlayerTurnEnd:
				clear(g.highlights)
			case core.PuzzlerTurnEnd:
				g.score += pointsPerTurn
			}
		case core.Highlight:
			g.highlights[ev.Cell] = true
		case core.PlayerMoved:
			g.cursor = ev.To
			g.lastSwap = nil
		case core.ManaChanged:
			if ev.Delta > 0 {
				g.score += ev.Delta * pointsPerMana
			}
		case core.LivesChanged:
			if ev.Delta < 0 {
				g.notice(fmt.Sprintf("Hit! %d lives left.", max(ev.Lives, 0)))
			}
		case core.SkillUsed:
			g.notice(fmt.Sprintf("%v used.", ev.Skill))
		case core.OpponentMoved:
			m := ev.Move
			g.lastSwap = &m
			g.notice(fmt.Sprintf("The Puzzler swaps %v and %v.", m.From, m.To))
		case core.BoardResized:
			g.notice(fmt.Sprintf("The board shrinks to %dx%d.", ev.Width, ev.Height))
			g.cursor = core.C(platformcore.Min(g.cursor.X, ev.Width-1), platformcore.Min(g.cursor.Y, ev.Height-1))
			g.calculateLayout()
		case core.Stalemate:
			g.notice("No playable board. The Puzzler gives up.")
		}
	}
}

func (g *Game) checkEnd() {
	if g.gameOver || !g.puzzle.Finished() {
		return
	}
	g.gameOver = true

	switch g.puzzle.State() {
	case core.Win:
		g.won = true
		g.score += max(g.puzzle.Player().Lives, 0) * pointsPerLife
		g.outcome = platformcore.OutcomeWin
		if errors.Is(g.puzzle.Err(), core.ErrUnplayable) {
			g.outcome = platformcore.OutcomeStalemate
		}
	default:
		g.outcome = platformcore.OutcomeGameOver
	}
}

func (g *Game) notice(msg string) {
	g.messages = append(g.messages, msg)
	if len(g.messages) > maxMessages {
		g.messages = g.messages[len(g.messages)-maxMessages:]
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
}

// Snapshot returns the simulation snapshot.
func (g *Game) Snapshot() core.Snapshot {
	return g.puzzle.Snapshot()
}

// Summary describes the run for persistence. A run that has not ended is
// reported as abandoned.
func (g *Game) Summary() platformcore.RunSummary {
	snap := g.puzzle.Snapshot()
	outcome := g.outcome
	if outcome == "" {
		outcome = platformcore.OutcomeAbandoned
	}
	favorite := ""
	if snap.Favorite != core.Empty {
		favorite = snap.Favorite.String()
	}

	return platformcore.RunSummary{
		GameID:       g.ID(),
		Seed:         g.seed,
		Outcome:      outcome,
		Score:        g.score,
		Turns:        snap.Turn,
		LivesLeft:    max(snap.Player.Lives, 0),
		ManaLeft:     snap.Player.Mana,
		Favorite:     favorite,
		Reshuffles:   snap.Stats.Reshuffles,
		CellsCleared: snap.Stats.CellsCleared,
		Duration:     snap.Elapsed,
		CreatedAt:    time.Now(),
	}
}

// Layouts returns the IDs of the layouts available without a layout
// directory.
func Layouts() []string {
	builtin, err := layouts.Builtin()
	if err != nil {
		return nil
	}
	ids := make([]string, len(builtin))
	for i, l := range builtin {
		ids[i] = l.ID
	}
	return ids
}
