package core

// Skill is a mana-paid player ability.
type Skill int

const (
	SkillTeleport Skill = iota
	SkillHeal
)

// String returns the skill name.
func (s Skill) String() string {
	switch s {
	case SkillTeleport:
		return "Teleport"
	case SkillHeal:
		return "Heal"
	default:
		return "Unknown"
	}
}

// PlayerRules configures the player piece.
type PlayerRules struct {
	MaxLives     int
	StartMana    int
	MaxMana      int
	MoveRange    int
	TeleportCost int
	HealCost     int
}

// DefaultPlayerRules returns the stock player configuration.
func DefaultPlayerRules() PlayerRules {
	return PlayerRules{
		MaxLives:     3,
		StartMana:    5,
		MaxMana:      20,
		MoveRange:    2,
		TeleportCost: 5,
		HealCost:     10,
	}
}

// PlayerStatus is a read-only view of the player.
type PlayerStatus struct {
	Pos      Coord
	Lives    int
	MaxLives int
	Mana     int
	MaxMana  int
	Teleport bool
	Alive    bool
}

// player is the piece the human controls. It sits on a board cell and is
// hurt by matches on or next to that cell.
type player struct {
	rules    PlayerRules
	pos      Coord
	lives    int
	mana     int
	teleport bool
	alive    bool
}

func newPlayer(rules PlayerRules, pos Coord) *player {
	return &player{
		rules: rules,
		pos:   pos,
		lives: rules.MaxLives,
		mana:  rules.StartMana,
		alive: true,
	}
}

func (p *player) status() PlayerStatus {
	return PlayerStatus{
		Pos:      p.pos,
		Lives:    p.lives,
		MaxLives: p.rules.MaxLives,
		Mana:     p.mana,
		MaxMana:  p.rules.MaxMana,
		Teleport: p.teleport,
		Alive:    p.alive,
	}
}

// canReach reports whether the player may move to c this turn.
func (p *player) canReach(b *Board, c Coord) bool {
	if !b.IsValidCell(c.X, c.Y) {
		return false
	}
	if p.teleport {
		return true
	}
	return b.IsAdjacent(p.pos.X, p.pos.Y, c.X, c.Y, false, p.rules.MoveRange)
}

// gainMana adds n (possibly negative) clamped to [0, MaxMana] and returns
// the applied delta.
func (p *player) gainMana(n int) int {
	next := min(max(p.mana+n, 0), p.rules.MaxMana)
	delta := next - p.mana
	p.mana = next
	return delta
}

// follow re-associates the player with content that moved.
func (p *player) follow(from, to Coord) bool {
	switch p.pos {
	case from:
		p.pos = to
	case to:
		p.pos = from
	default:
		return false
	}
	return from != to
}

// manaFromNeighbors returns the count of the most frequent token among the
// eight cells around c.
func manaFromNeighbors(b *Board, c Coord) int {
	counts := make(map[Token]int)
	best := 0
	for _, n := range b.Adjacent(c.X, c.Y, false, 1) {
		t := b.Get(n.X, n.Y)
		counts[t]++
		best = max(best, counts[t])
	}
	return best
}
