package puzzler

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-puzzler/internal/config"
	platformcore "github.com/vovakirdan/tui-puzzler/internal/core"
	"github.com/vovakirdan/tui-puzzler/internal/games/puzzler/core"
	"github.com/vovakirdan/tui-puzzler/internal/registry"
)

func testRuntime(seed int64) platformcore.RuntimeConfig {
	return platformcore.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     seed,
	}
}

// newReadyGame resets a game and steps it until the player may move.
func newReadyGame(t *testing.T, g *Game, seed int64) *Game {
	t.Helper()
	g.Reset(testRuntime(seed))
	for i := 0; i < 600 && !g.puzzle.AwaitingPlayer(); i++ {
		g.Step(platformcore.NewInputFrame())
	}
	if !g.puzzle.AwaitingPlayer() {
		t.Fatalf("game never reached the player's turn, state %v", g.puzzle.State())
	}
	return g
}

func TestGameRegistered(t *testing.T) {
	for _, id := range []string{"puzzler", "puzzler_shrink"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("Create(%q).ID() = %q", id, g.ID())
		}
	}
}

func TestGameDeterminism(t *testing.T) {
	inputs := make([]platformcore.InputFrame, 900)
	for i := range inputs {
		inputs[i] = platformcore.NewInputFrame()
		switch {
		case i%97 == 50:
			inputs[i].Set(platformcore.ActionRight)
		case i%97 == 60:
			inputs[i].Set(platformcore.ActionConfirm)
		case i%97 == 70:
			inputs[i].Set(platformcore.ActionUp)
		}
	}

	run := func() (core.Snapshot, platformcore.GameState) {
		g := New()
		g.Reset(testRuntime(12345))
		for _, in := range inputs {
			if g.Step(in).State.GameOver {
				break
			}
		}
		return g.Snapshot(), g.State()
	}

	snap1, state1 := run()
	snap2, state2 := run()
	if !reflect.DeepEqual(snap1, snap2) {
		t.Errorf("snapshots differ:\n%+v\n%+v", snap1, snap2)
	}
	if state1 != state2 {
		t.Errorf("states differ: %+v vs %+v", state1, state2)
	}
}

func TestGameMouseMapsToRenderedCells(t *testing.T) {
	g := New()
	g.Reset(testRuntime(7))
	if g.tooSmall {
		t.Fatal("80x24 should fit the board")
	}
	if g.cellW != 4 || g.cellH != 2 {
		t.Fatalf("expected 4x2 cells, got %dx%d", g.cellW, g.cellH)
	}

	b := g.puzzle.Board()
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			r := g.cellRect(b, x, y)
			for row := r.Y; row < r.Bottom(); row++ {
				for col := r.X; col < r.Right(); col++ {
					got, ok := g.CellAtScreen(col, row)
					if !ok || got != core.C(x, y) {
						t.Fatalf("screen (%d,%d) maps to %v ok=%v, want (%d,%d)", col, row, got, ok, x, y)
					}
				}
			}
		}
	}

	// The top-left cell sits at the board origin on screen and y points up.
	if r := g.cellRect(b, 0, b.Height()-1); r.X != g.boardLeft || r.Y != g.boardTop {
		t.Errorf("top-left cell at (%d,%d), want (%d,%d)", r.X, r.Y, g.boardLeft, g.boardTop)
	}

	// The frame around the board is outside.
	if _, ok := g.CellAtScreen(g.boardLeft-1, g.boardTop); ok {
		t.Error("left border mapped to a cell")
	}
	if _, ok := g.CellAtScreen(g.boardLeft, g.boardTop-1); ok {
		t.Error("top border mapped to a cell")
	}
}

func TestGameRenderDrawsPlayer(t *testing.T) {
	g := newReadyGame(t, New(), 7)

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)

	b := g.puzzle.Board()
	pos := g.puzzle.Player().Pos
	r := g.cellRect(b, pos.X, pos.Y)
	cx, cy := r.X+(g.cellW-1)/2, r.Y+(g.cellH-1)/2
	if got := screen.Get(cx, cy); got != '@' {
		t.Errorf("expected player at (%d,%d), got %q", cx, cy, got)
	}
	if !strings.Contains(screen.Row(0), "Puzzler") {
		t.Errorf("HUD missing title: %q", screen.Row(0))
	}

	// Token cells carry their palette color.
	other := core.C((pos.X+1)%b.Width(), pos.Y)
	r = g.cellRect(b, other.X, other.Y)
	want := platformcore.Color(b.Get(other.X, other.Y).Hex())
	if got := screen.GetCell(r.X+1, r.Y).BG; got != want {
		t.Errorf("cell %v background %q, want %q", other, got, want)
	}
}

func TestGameClickMovesPlayer(t *testing.T) {
	g := newReadyGame(t, New(), 3)

	start := g.puzzle.Player().Pos
	target := core.C(start.X+1, start.Y+1)
	r := g.cellRect(g.puzzle.Board(), target.X, target.Y)

	in := platformcore.NewInputFrame()
	in.Click(r.X+1, r.Y+1)
	g.Step(in)

	if got := g.puzzle.Player().Pos; got != target {
		t.Errorf("player at %v, want %v", got, target)
	}
	if g.cursor != target {
		t.Errorf("cursor at %v, want %v", g.cursor, target)
	}
	if g.puzzle.Stats().PlayerMoves != 1 {
		t.Errorf("expected 1 player move, got %d", g.puzzle.Stats().PlayerMoves)
	}
}

func TestGameCursorConfirm(t *testing.T) {
	g := newReadyGame(t, New(), 3)
	start := g.puzzle.Player().Pos

	in := platformcore.NewInputFrame()
	in.Set(platformcore.ActionRight)
	in.Set(platformcore.ActionConfirm)
	g.Step(in)

	if got, want := g.puzzle.Player().Pos, core.C(start.X+1, start.Y); got != want {
		t.Errorf("player at %v, want %v", got, want)
	}
}

func TestGameSkillNotices(t *testing.T) {
	g := newReadyGame(t, New(), 3)

	in := platformcore.NewInputFrame()
	in.Set(platformcore.ActionHeal)
	g.Step(in)

	if len(g.messages) == 0 || g.messages[len(g.messages)-1] != "Lives are already full." {
		t.Errorf("unexpected messages %v", g.messages)
	}

	in = platformcore.NewInputFrame()
	in.Set(platformcore.ActionTeleport)
	g.Step(in)
	if !g.puzzle.Player().Teleport {
		t.Error("teleport not armed")
	}
	if got := len(g.highlights); got != 24 {
		t.Errorf("expected every other cell highlighted, got %d", got)
	}
}

func TestGamePauseStopsClock(t *testing.T) {
	g := New()
	g.Reset(testRuntime(1))

	pause := platformcore.NewInputFrame()
	pause.Set(platformcore.ActionPause)
	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("expected paused")
	}

	before := g.puzzle.Elapsed()
	for i := 0; i < 100; i++ {
		g.Step(platformcore.NewInputFrame())
	}
	if g.puzzle.Elapsed() != before {
		t.Errorf("clock advanced while paused: %v -> %v", before, g.puzzle.Elapsed())
	}

	g.Step(pause)
	g.Step(platformcore.NewInputFrame())
	if g.puzzle.Elapsed() <= before {
		t.Error("clock did not resume")
	}
}

func TestGameTooSmall(t *testing.T) {
	g := New()
	g.Reset(platformcore.RuntimeConfig{ScreenW: 10, ScreenH: 8, TickRate: 60, Seed: 1})
	if !g.tooSmall {
		t.Fatal("expected tooSmall")
	}

	g.Step(platformcore.NewInputFrame())
	if g.puzzle.Elapsed() != 0 {
		t.Error("game advanced on a screen that is too small")
	}

	screen := platformcore.NewScreen(10, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "too") {
		t.Errorf("expected too-small notice:\n%s", screen.String())
	}
}

func TestGameCompactCells(t *testing.T) {
	g := New()
	g.Reset(platformcore.RuntimeConfig{ScreenW: 40, ScreenH: 16, TickRate: 60, Seed: 1})
	if g.tooSmall {
		t.Fatal("40x16 should fit compact cells")
	}
	if g.cellW != 2 || g.cellH != 1 {
		t.Errorf("expected 2x1 cells, got %dx%d", g.cellW, g.cellH)
	}
	if got, ok := g.CellAtScreen(g.boardLeft, g.boardTop); !ok || got != core.C(0, 4) {
		t.Errorf("top-left screen cell maps to %v ok=%v", got, ok)
	}
}

func TestGamePlaysToEnd(t *testing.T) {
	g := New()
	g.Reset(testRuntime(99))

	pilot := core.Autopilot{Heal: true}
	for i := 0; i < 60*60*10 && !g.State().GameOver; i++ {
		if err := pilot.Act(g.puzzle); err != nil {
			t.Fatalf("autopilot: %v", err)
		}
		g.Step(platformcore.NewInputFrame())
	}

	if !g.State().GameOver {
		t.Fatalf("game did not finish, state %v turn %d", g.puzzle.State(), g.puzzle.Turn())
	}

	sum := g.Summary()
	if sum.GameID != "puzzler" || sum.Seed != 99 {
		t.Errorf("unexpected summary identity %+v", sum)
	}
	switch sum.Outcome {
	case platformcore.OutcomeWin, platformcore.OutcomeGameOver, platformcore.OutcomeStalemate:
	default:
		t.Errorf("unexpected outcome %q", sum.Outcome)
	}
	if sum.Score < sum.Turns*pointsPerTurn {
		t.Errorf("score %d lower than %d turns survived", sum.Score, sum.Turns)
	}
	if sum.Duration <= 0 {
		t.Error("duration not recorded")
	}
	if g.State().Won != (sum.Outcome != platformcore.OutcomeGameOver) {
		t.Errorf("Won=%v does not match outcome %q", g.State().Won, sum.Outcome)
	}
}

func TestGameRestartAfterEnd(t *testing.T) {
	g := newReadyGame(t, New(), 5)
	g.puzzle.Halt()
	g.gameOver = true

	restart := platformcore.NewInputFrame()
	restart.Set(platformcore.ActionRestart)
	g.Step(restart)

	if g.State().GameOver {
		t.Error("game still over after restart")
	}
	if g.puzzle.State() != core.PuzzleStarted {
		t.Errorf("restarted puzzle in %v", g.puzzle.State())
	}
}

func TestSummaryAbandoned(t *testing.T) {
	g := New()
	g.Reset(testRuntime(4))

	sum := g.Summary()
	if sum.Outcome != platformcore.OutcomeAbandoned {
		t.Errorf("Outcome = %q, want abandoned", sum.Outcome)
	}
	if sum.Favorite != "" {
		t.Errorf("Favorite = %q, want empty", sum.Favorite)
	}
}

func TestGameLayout(t *testing.T) {
	SetLayout("crossfire")
	defer SetLayout("")

	g := New()
	g.Reset(testRuntime(1))

	snap := g.Snapshot()
	want := []string{"GYPOR", "RBGYP", "PORBG", "GYPOR", "RRBRP"}
	if !reflect.DeepEqual(snap.Rows, want) {
		t.Errorf("rows %v, want %v", snap.Rows, want)
	}
	if snap.Player.Pos != core.C(2, 1) {
		t.Errorf("player at %v, want (2,1)", snap.Player.Pos)
	}
}

func TestGameUnknownLayoutFallsBack(t *testing.T) {
	SetLayout("no-such-layout")
	defer SetLayout("")

	g := New()
	g.Reset(testRuntime(1))

	if g.layout != nil {
		t.Error("expected no layout")
	}
	if len(g.messages) == 0 || !strings.HasPrefix(g.messages[0], "Layout ignored") {
		t.Errorf("expected a layout notice, got %v", g.messages)
	}
}

func TestGamePressure(t *testing.T) {
	SetDifficultyPreset("hard")
	defer SetDifficultyPreset("")

	g := newReadyGame(t, New(), 1)

	base := g.cfg.Opponent.DelayMin
	got := g.puzzle.Rules().OpponentDelayMin
	if got >= base {
		t.Errorf("pressure did not shorten the delay: %v >= %v", got, base)
	}
	if got < 1200*time.Millisecond {
		t.Errorf("delay %v shorter than the first-turn pressure allows", got)
	}
}

func TestRulesFromConfig(t *testing.T) {
	cfg := config.DefaultPuzzlerConfig()

	rules := RulesFromConfig(cfg, false)
	if rules.ShrinkEvery != 0 {
		t.Errorf("classic ShrinkEvery = %d", rules.ShrinkEvery)
	}
	if rules.Width != cfg.Board.Width || rules.TurnsToWin != cfg.Board.TurnsToWin {
		t.Errorf("board not copied: %+v", rules)
	}
	if rules.Player.MaxLives != cfg.Player.Lives || rules.Player.HealCost != cfg.Player.HealCost {
		t.Errorf("player not copied: %+v", rules.Player)
	}
	if rules.CascadeDepth != cfg.Search.CascadeDepth || rules.OpponentDelayMax != cfg.Opponent.DelayMax {
		t.Errorf("search/opponent not copied: %+v", rules)
	}

	if got := RulesFromConfig(cfg, true).ShrinkEvery; got != defaultShrinkEvery {
		t.Errorf("shrink ShrinkEvery = %d, want %d", got, defaultShrinkEvery)
	}
	cfg.Shrink.Every = 5
	if got := RulesFromConfig(cfg, true).ShrinkEvery; got != 5 {
		t.Errorf("shrink ShrinkEvery = %d, want 5", got)
	}

	cfg.Shrink.MinSize = 0
	if got := RulesFromConfig(cfg, true).MinSize; got != core.MinShrinkSize {
		t.Errorf("shrink MinSize = %d, want %d", got, core.MinShrinkSize)
	}
}

func TestEventLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	p := core.NewPuzzle(core.DefaultRules(), core.NewRandom(1))
	p.Subscribe(NewEventLogger(logger).Listen)
	p.Start()
	p.Advance(time.Second)

	out := buf.String()
	for _, want := range []string{"phase", "state=PuzzleStarted", "state=PlayerTurnStart", "lives", "highlight"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestGameAutoplay(t *testing.T) {
	play := func() platformcore.RunSummary {
		g := New()
		g.Reset(testRuntime(11))
		sum, err := g.Autoplay(core.Autopilot{Heal: true}, 100000)
		if err != nil {
			t.Fatalf("autoplay: %v", err)
		}
		if !g.State().GameOver {
			t.Fatal("autoplay returned before the game ended")
		}
		return sum
	}

	a, b := play(), play()
	if a.Outcome == platformcore.OutcomeAbandoned {
		t.Errorf("finished run reported as %q", a.Outcome)
	}
	a.CreatedAt, b.CreatedAt = time.Time{}, time.Time{}
	if a != b {
		t.Errorf("same seed gave different runs:\n%+v\n%+v", a, b)
	}
}

func TestGameConfigure(t *testing.T) {
	g := New()
	g.Configure(registry.Options{Difficulty: "hard", Layout: "crossfire"})
	g.Reset(testRuntime(1))

	if g.layout == nil || g.layout.ID != "crossfire" {
		t.Fatalf("expected crossfire layout, got %+v", g.layout)
	}
	if g.Snapshot().Player.Pos != core.C(2, 1) {
		t.Errorf("player at %v, want (2,1)", g.Snapshot().Player.Pos)
	}

	// Package-level settings stay untouched.
	other := New()
	other.Reset(testRuntime(1))
	if other.layout != nil {
		t.Error("configured options leaked into another game")
	}
}
