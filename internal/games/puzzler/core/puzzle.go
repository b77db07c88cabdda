package core

import (
	"errors"
	"fmt"
	"time"
)

// Rules configures a puzzle.
type Rules struct {
	Width  int
	Height int

	TurnsToWin int

	SetupDelay   time.Duration
	PhaseDelay   time.Duration
	CascadeDelay time.Duration
	ComboDelay   time.Duration

	OpponentDelayMin time.Duration
	OpponentDelayMax time.Duration

	// CascadeDepth bounds the opponent's lookahead.
	CascadeDepth int

	// MaxReshuffles caps the playability repair loop.
	MaxReshuffles int
	// ReshufflePreventMatches redraws every cell that would form a match
	// while the board is drawn. Without it the board is drawn freely and
	// only the cells of incidental matches are redrawn afterwards.
	ReshufflePreventMatches bool

	// ShrinkEvery removes one column and one row every N completed turns.
	// Zero disables shrinking. The board never shrinks below MinSize or
	// MinShrinkSize, whichever is larger.
	ShrinkEvery int
	MinSize     int

	Player PlayerRules
}

// DefaultRules returns the stock 5x5 rules.
func DefaultRules() Rules {
	return Rules{
		Width:            5,
		Height:           5,
		TurnsToWin:       DefaultTurnsToWin,
		SetupDelay:       250 * time.Millisecond,
		PhaseDelay:       DefaultPhaseDelay,
		CascadeDelay:     250 * time.Millisecond,
		ComboDelay:       500 * time.Millisecond,
		OpponentDelayMin: 3 * time.Second,
		OpponentDelayMax: 4 * time.Second,
		CascadeDepth:     DefaultCascadeDepth,
		MaxReshuffles:    100,
		MinSize:          3,
		Player:           DefaultPlayerRules(),
	}
}

// MinShrinkSize is the smallest board a shrinking puzzle is cut down to.
const MinShrinkSize = 3

// Stats counts what happened during a puzzle.
type Stats struct {
	PlayerMoves    int
	OpponentMoves  int
	ResolvePasses  int
	Matches        int
	CellsCleared   int
	Reshuffles     int
	DamageTaken    int
	ManaGained     int
	SkillsUsed     int
	BoardsResized  int
	LongestCascade int
}

// Option customizes a Puzzle.
type Option func(*Puzzle)

// WithLayout starts from fixed rows of token codes, top row first, instead
// of a random board. Empty cells in the layout are filled at setup.
func WithLayout(rows []string) Option {
	return func(p *Puzzle) {
		p.layout = append([]string(nil), rows...)
	}
}

// WithPlayerStart places the player on c instead of the board center.
func WithPlayerStart(c Coord) Option {
	return func(p *Puzzle) {
		start := c
		p.start = &start
	}
}

// WithoutOpponent disables the automatic opponent move. The driver must
// call PlayBestMove or MakeMatch during PuzzlerTurnStart.
func WithoutOpponent() Option {
	return func(p *Puzzle) {
		p.opponent = false
	}
}

// WithRecorderLimit bounds the outgoing event queue.
func WithRecorderLimit(n int) Option {
	return func(p *Puzzle) {
		p.recorder = NewRecorder(n)
	}
}

// Puzzle owns one game: board, turn machine, player, opponent and the
// timed resolution of matches. All of it runs on a virtual clock that the
// driver advances.
type Puzzle struct {
	rules    Rules
	rng      Random
	sched    *Scheduler
	bus      *Bus
	recorder *Recorder
	machine  *TurnMachine
	board    *Board
	player   *player

	chosen   map[Token]int
	stats    Stats
	cascade  int
	opponent bool
	layout   []string
	start    *Coord
	err      error
}

// NewPuzzle creates a puzzle in the None state. Call Start to begin.
func NewPuzzle(rules Rules, rng Random, opts ...Option) *Puzzle {
	p := &Puzzle{
		rules:    rules,
		rng:      rng,
		sched:    NewScheduler(),
		bus:      NewBus(),
		recorder: NewRecorder(1024),
		chosen:   make(map[Token]int),
		opponent: true,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.bus.Subscribe(p.recorder.Emit)
	p.bus.Subscribe(p.handle)

	p.machine = NewTurnMachine(p.sched, p.bus, rules.PhaseDelay, rules.TurnsToWin)
	if p.layout != nil {
		p.board = BoardFromRows(p.layout, rng, p.bus)
	} else {
		p.board = NewBoard(rules.Width, rules.Height, rng, p.bus)
	}
	p.player = newPlayer(rules.Player, p.startCell())
	return p
}

// Start enters PuzzleStarted and schedules board setup.
func (p *Puzzle) Start() {
	p.machine.Set(PuzzleStarted)
	p.sched.After(p.rules.SetupDelay, p.setup)
}

func (p *Puzzle) setup() {
	p.board.FillEmpty(true)

	p.player = newPlayer(p.rules.Player, p.startCell())
	p.emit(LivesChanged{Lives: p.player.lives})
	p.emit(ManaChanged{Mana: p.player.mana})

	p.machine.Set(PlayerTurnStart)
}

func (p *Puzzle) startCell() Coord {
	if p.start != nil && p.board.IsValidCell(p.start.X, p.start.Y) {
		return *p.start
	}
	return C(p.board.Width()/2, p.board.Height()/2)
}

// Subscribe registers an observer for every event the puzzle emits.
func (p *Puzzle) Subscribe(fn Listener) (unsubscribe func()) {
	return p.bus.Subscribe(fn)
}

// Events drains the outgoing event queue.
func (p *Puzzle) Events() []Event {
	return p.recorder.Drain()
}

// Advance moves the virtual clock forward by dt.
func (p *Puzzle) Advance(dt time.Duration) {
	p.sched.Advance(dt)
}

// RunNext jumps to the next scheduled step and runs it. It returns false
// when nothing is scheduled.
func (p *Puzzle) RunNext() bool {
	return p.sched.RunNext()
}

// Halt drops all scheduled work.
func (p *Puzzle) Halt() {
	p.sched.Halt()
}

// Elapsed returns the virtual time since the puzzle was created.
func (p *Puzzle) Elapsed() time.Duration {
	return p.sched.Now()
}

// State returns the active turn phase.
func (p *Puzzle) State() TurnState {
	return p.machine.State()
}

// Finished reports whether a terminal phase has been entered.
func (p *Puzzle) Finished() bool {
	return p.machine.State().Terminal() && p.machine.Entered()
}

// AwaitingPlayer reports whether the puzzle is waiting for player input.
func (p *Puzzle) AwaitingPlayer() bool {
	return p.machine.State() == PlayerTurnStart && p.machine.Entered()
}

// Turn returns the number of completed opponent turns.
func (p *Puzzle) Turn() int {
	return p.machine.Turn()
}

// Rules returns the rules the puzzle was built with.
func (p *Puzzle) Rules() Rules {
	return p.rules
}

// Err returns the failure that ended the puzzle, if any.
func (p *Puzzle) Err() error {
	return p.err
}

// Board returns a detached copy of the live board.
func (p *Puzzle) Board() *Board {
	return p.board.Clone()
}

// Player returns the player's status.
func (p *Puzzle) Player() PlayerStatus {
	return p.player.status()
}

// Stats returns the running counters.
func (p *Puzzle) Stats() Stats {
	return p.stats
}

// SetPlacement changes the board's placement mapping.
func (p *Puzzle) SetPlacement(origin Point, cellSize float64) {
	p.board.SetOriginAndCellSize(origin, cellSize)
}

// SetOpponentDelay changes the opponent's think time for turns scheduled
// from now on. A range with hi below lo always waits lo.
func (p *Puzzle) SetOpponentDelay(lo, hi time.Duration) {
	p.rules.OpponentDelayMin = lo
	p.rules.OpponentDelayMax = hi
}

// CellAt maps a placement coordinate to a board cell. ok is false when the
// point falls outside the board.
func (p *Puzzle) CellAt(pt Point) (c Coord, ok bool) {
	x, y := p.board.Coordinates(pt)
	return C(x, y), p.board.IsValidCell(x, y)
}

func (p *Puzzle) emit(e Event) {
	p.bus.Emit(e)
}

func (p *Puzzle) handle(e Event) {
	switch ev := e.(type) {
	case PhaseEntered:
		p.onPhase(ev.State)
	case Matched:
		p.onMatched(ev.Cell)
	case Moved:
		if p.player.alive {
			p.player.follow(ev.From, ev.To)
		}
	case SwapOccurred:
		p.cascade = 0
		p.resolve()
	case BoardResized:
		pos := p.player.pos
		if p.player.alive && !p.board.IsValidCell(pos.X, pos.Y) {
			p.die()
		}
	}
}

func (p *Puzzle) onPhase(state TurnState) {
	switch state {
	case PuzzleStarted:
		p.chosen = make(map[Token]int)
		p.stats = Stats{}
	case PlayerTurnStart:
		p.highlight(p.player.rules.MoveRange)
	case PuzzlerTurnStart:
		if p.opponent {
			p.scheduleOpponent()
		}
	case PuzzlerTurnEnd:
		if err := p.maybeShrink(); err != nil {
			p.err = err
			p.machine.Set(Win)
			return
		}
		if p.machine.State() != PuzzlerTurnEnd {
			return
		}
		if _, err := p.EnsurePlayable(); err != nil {
			p.err = err
			p.machine.Set(Win)
		}
	}
}

func (p *Puzzle) highlight(rng int) {
	pos := p.player.pos
	for _, c := range p.board.Adjacent(pos.X, pos.Y, false, rng) {
		p.emit(Highlight{Cell: c})
	}
}

func (p *Puzzle) onMatched(c Coord) {
	if !p.player.alive {
		return
	}
	pos := p.player.pos
	switch {
	case c == pos:
		p.damage(p.player.lives)
	case p.board.IsAdjacent(pos.X, pos.Y, c.X, c.Y, true, 1):
		p.damage(1)
	}
}

func (p *Puzzle) damage(n int) {
	p.player.lives -= n
	p.stats.DamageTaken += n
	p.emit(LivesChanged{Lives: p.player.lives, Delta: -n})
	if p.player.lives <= 0 {
		p.die()
	}
}

func (p *Puzzle) die() {
	p.player.alive = false
	p.machine.Set(GameOver)
}

func (p *Puzzle) gainMana(n int) {
	delta := p.player.gainMana(n)
	if delta > 0 {
		p.stats.ManaGained += delta
	}
	p.emit(ManaChanged{Mana: p.player.mana, Delta: delta})
}

// MovePlayer moves the player to c and ends the player's turn. The
// destination token is tallied as a chosen color and the player gains
// mana equal to the most frequent token count around c.
func (p *Puzzle) MovePlayer(c Coord) error {
	if !p.AwaitingPlayer() {
		return ErrNotPlayerTurn
	}
	if !p.board.IsValidCell(c.X, c.Y) {
		return fmt.Errorf("move to %v: %w", c, ErrInvalidCell)
	}
	if !p.player.canReach(p.board, c) {
		return fmt.Errorf("move to %v: %w", c, ErrOutOfReach)
	}

	from := p.player.pos
	chosen := p.board.Get(c.X, c.Y)
	p.player.pos = c
	p.player.teleport = false
	p.chosen[chosen]++
	p.stats.PlayerMoves++

	p.emit(PlayerMoved{From: from, To: c, Chosen: chosen})
	p.gainMana(manaFromNeighbors(p.board, c))
	p.machine.Set(PlayerTurnEnd)
	return nil
}

// CanReach reports whether the player may move to c right now.
func (p *Puzzle) CanReach(c Coord) bool {
	return p.player.canReach(p.board, c)
}

// UseSkill spends mana on a skill during the player's turn.
func (p *Puzzle) UseSkill(s Skill) error {
	if !p.AwaitingPlayer() {
		return ErrNotPlayerTurn
	}

	pl := p.player
	switch s {
	case SkillTeleport:
		if pl.teleport {
			return ErrSkillActive
		}
		if pl.mana < pl.rules.TeleportCost {
			return fmt.Errorf("%v needs %d: %w", s, pl.rules.TeleportCost, ErrNotEnoughMana)
		}
		p.gainMana(-pl.rules.TeleportCost)
		pl.teleport = true
		p.highlight(max(p.board.Width(), p.board.Height()))
	case SkillHeal:
		if pl.lives >= pl.rules.MaxLives {
			return ErrLivesFull
		}
		if pl.mana < pl.rules.HealCost {
			return fmt.Errorf("%v needs %d: %w", s, pl.rules.HealCost, ErrNotEnoughMana)
		}
		p.gainMana(-pl.rules.HealCost)
		pl.lives = min(pl.lives+1, pl.rules.MaxLives)
		p.emit(LivesChanged{Lives: pl.lives, Delta: 1})
	default:
		return ErrUnknownSkill
	}

	p.stats.SkillsUsed++
	p.emit(SkillUsed{Skill: s})
	return nil
}

// FindMoves runs the move search on a copy of the live board, scoring
// proximity against the player's cell.
func (p *Puzzle) FindMoves() []Move {
	return FindMoves(p.board, SearchOptions{
		Priority:     p.player.pos,
		CascadeDepth: p.rules.CascadeDepth,
	})
}

// MakeMatch commits a swap on the live board if it produces a match. The
// committed swap starts match resolution. Swaps are only accepted once
// PuzzlerTurnStart has been entered.
func (p *Puzzle) MakeMatch(a, b Coord) bool {
	if !p.opponentTurn() {
		return false
	}
	if !p.board.TrySwap(a.X, a.Y, b.X, b.Y) {
		return false
	}
	p.board.Swap(a.X, a.Y, b.X, b.Y, true)
	return true
}

func (p *Puzzle) opponentTurn() bool {
	return p.machine.State() == PuzzlerTurnStart && p.machine.Entered()
}

// PlayBestMove makes the opponent's best swap. It returns false outside the
// opponent's turn or when no move could be made.
func (p *Puzzle) PlayBestMove() (Move, bool) {
	if !p.opponentTurn() {
		return Move{}, false
	}
	moves := p.FindMoves()
	if len(moves) == 0 {
		if _, err := p.EnsurePlayable(); err != nil {
			p.err = err
			p.machine.Set(Win)
			return Move{}, false
		}
		moves = p.FindMoves()
	}

	best := BestMove(moves)
	p.stats.OpponentMoves++
	p.emit(OpponentMoved{Move: best, At: p.sched.Now()})
	return best, p.MakeMatch(best.From, best.To)
}

func (p *Puzzle) scheduleOpponent() {
	epoch := p.machine.Epoch()
	p.sched.After(p.opponentDelay(), func() {
		if p.machine.Epoch() != epoch {
			return
		}
		p.PlayBestMove()
	})
}

func (p *Puzzle) opponentDelay() time.Duration {
	lo, hi := p.rules.OpponentDelayMin, p.rules.OpponentDelayMax
	if hi <= lo {
		return lo
	}
	span := int((hi - lo) / time.Millisecond)
	return lo + time.Duration(p.rng.Intn(span+1))*time.Millisecond
}

// resolve runs one resolution pass: find matches, wait, then either end
// the opponent's turn or clear them one by one, apply gravity, refill and
// go again.
func (p *Puzzle) resolve() {
	matches := p.board.GetMatches()
	p.sched.After(p.rules.CascadeDelay, func() {
		if len(matches) == 0 {
			p.machine.Set(PuzzlerTurnEnd)
			return
		}
		p.stats.ResolvePasses++
		p.cascade++
		p.stats.LongestCascade = max(p.stats.LongestCascade, p.cascade)
		p.clearMatches(matches)
	})
}

func (p *Puzzle) clearMatches(matches []Match) {
	if len(matches) == 0 {
		p.sched.After(p.rules.CascadeDelay/2, func() {
			p.board.ApplyGravity()
			p.sched.After(p.rules.CascadeDelay, func() {
				p.board.FillEmpty(false)
				p.resolve()
			})
		})
		return
	}

	m := matches[0]
	p.board.Match(m.Origin.X, m.Origin.Y, m.Shape)
	p.stats.Matches++
	p.stats.CellsCleared += m.Size()
	p.sched.After(p.rules.ComboDelay, func() {
		p.clearMatches(matches[1:])
	})
}

// EnsurePlayable re-randomizes the whole board until the move search finds
// at least one candidate. A reshuffled board never holds a live match. It
// returns the number of reshuffles, or ErrUnplayable once MaxReshuffles is
// exhausted.
func (p *Puzzle) EnsurePlayable() (int, error) {
	n := 0
	for len(p.FindMoves()) == 0 {
		if n >= p.rules.MaxReshuffles {
			p.emit(Stalemate{Reshuffles: n})
			return n, fmt.Errorf("after %d reshuffles: %w", n, ErrUnplayable)
		}
		p.reshuffle()
		n++
		p.stats.Reshuffles++
	}
	return n, nil
}

func (p *Puzzle) reshuffle() {
	p.board.Randomize(0, 0, p.board.FullShape(), p.rules.ReshufflePreventMatches)
	for matches := p.board.GetMatches(); len(matches) > 0; matches = p.board.GetMatches() {
		for _, m := range matches {
			p.board.Randomize(m.Origin.X, m.Origin.Y, m.Shape, true)
		}
	}
}

// ResizeBoard changes the board dimensions, kills the player if it ends
// up outside, and fills new cells without creating matches.
func (p *Puzzle) ResizeBoard(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("resize to %dx%d: %w", width, height, ErrInvalidSize)
	}
	p.board.Resize(width, height)
	p.stats.BoardsResized++
	p.emit(BoardResized{Width: width, Height: height})
	p.board.FillEmpty(true)
	return nil
}

func (p *Puzzle) maybeShrink() error {
	every := p.rules.ShrinkEvery
	if every <= 0 || p.Turn()%every != 0 {
		return nil
	}
	floor := max(p.rules.MinSize, MinShrinkSize)
	w, h := p.board.Width(), p.board.Height()
	if w-1 < floor || h-1 < floor {
		return nil
	}
	if err := p.ResizeBoard(w-1, h-1); err != nil {
		return fmt.Errorf("shrink: %w", err)
	}
	return nil
}

// FavoriteColor returns the token the player has chosen most often. Ties
// go to palette order; Empty means nothing has been chosen.
func (p *Puzzle) FavoriteColor() Token {
	best, most := Empty, 0
	for _, t := range Palette() {
		if n := p.chosen[t]; n > most {
			best, most = t, n
		}
	}
	return best
}

// ChosenColors returns a copy of the chosen-color tally.
func (p *Puzzle) ChosenColors() map[Token]int {
	out := make(map[Token]int, len(p.chosen))
	for t, n := range p.chosen {
		out[t] = n
	}
	return out
}

// Snapshot captures the puzzle state for rendering, persistence and
// determinism checks.
type Snapshot struct {
	State      TurnState
	Entered    bool
	Turn       int
	TurnsToWin int
	Width      int
	Height     int
	Rows       []string
	Player     PlayerStatus
	Favorite   Token
	Stats      Stats
	Elapsed    time.Duration
	Stalemate  bool
}

// Snapshot returns the current puzzle snapshot.
func (p *Puzzle) Snapshot() Snapshot {
	return Snapshot{
		State:      p.machine.State(),
		Entered:    p.machine.Entered(),
		Turn:       p.machine.Turn(),
		TurnsToWin: p.machine.TurnsToWin(),
		Width:      p.board.Width(),
		Height:     p.board.Height(),
		Rows:       p.board.Rows(),
		Player:     p.player.status(),
		Favorite:   p.FavoriteColor(),
		Stats:      p.stats,
		Elapsed:    p.sched.Now(),
		Stalemate:  errors.Is(p.err, ErrUnplayable),
	}
}
