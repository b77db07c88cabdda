package core

import "time"

// Event is a notification emitted by the simulation. Consumers switch on
// the concrete type.
type Event interface {
	event()
}

// CellChanged reports that a token at a cell was set.
type CellChanged struct {
	Cell Coord
}

// Matched reports that a cell was cleared as part of a match.
type Matched struct {
	Cell  Coord
	Token Token
}

// Moved reports that the content at From is now at To. Swaps and gravity
// both emit it; anything bound to a cell should follow it.
type Moved struct {
	From Coord
	To   Coord
}

// SwapOccurred reports a committed live swap.
type SwapOccurred struct {
	A Coord
	B Coord
}

// BoardResized reports new board dimensions.
type BoardResized struct {
	Width  int
	Height int
}

// PhaseEntered is emitted once per turn phase entry.
type PhaseEntered struct {
	State TurnState
	Turn  int
}

// Highlight is advisory emphasis for a cell.
type Highlight struct {
	Cell Coord
}

// LivesChanged reports the player's current lives.
type LivesChanged struct {
	Lives int
	Delta int
}

// ManaChanged reports the player's current mana.
type ManaChanged struct {
	Mana  int
	Delta int
}

// PlayerMoved reports a completed player move.
type PlayerMoved struct {
	From   Coord
	To     Coord
	Chosen Token
}

// SkillUsed reports a successful skill activation.
type SkillUsed struct {
	Skill Skill
}

// Stalemate reports that no playable board could be produced.
type Stalemate struct {
	Reshuffles int
}

// OpponentMoved reports the swap chosen by the opponent.
type OpponentMoved struct {
	Move Move
	At   time.Duration
}

func (CellChanged) event()   {}
func (Matched) event()       {}
func (Moved) event()         {}
func (SwapOccurred) event()  {}
func (BoardResized) event()  {}
func (PhaseEntered) event()  {}
func (Highlight) event()     {}
func (LivesChanged) event()  {}
func (ManaChanged) event()   {}
func (PlayerMoved) event()   {}
func (SkillUsed) event()     {}
func (Stalemate) event()     {}
func (OpponentMoved) event() {}

// Emitter receives events.
type Emitter interface {
	Emit(e Event)
}

// Listener handles one event.
type Listener func(e Event)

// Bus delivers events synchronously to its listeners in subscription
// order. Events emitted from inside a listener are delivered immediately.
type Bus struct {
	nextID    int
	listeners []subscription
}

type subscription struct {
	id int
	fn Listener
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a listener and returns a function that removes it.
func (b *Bus) Subscribe(fn Listener) (unsubscribe func()) {
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, subscription{id: id, fn: fn})
	return func() {
		for i, s := range b.listeners {
			if s.id == id {
				b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers e to every listener.
func (b *Bus) Emit(e Event) {
	// Snapshot so listeners may unsubscribe while handling.
	subs := b.listeners
	for _, s := range subs {
		s.fn(e)
	}
}

// Recorder queues events until a driver drains them.
type Recorder struct {
	events []Event
	limit  int
}

// NewRecorder creates a recorder that keeps at most limit pending events.
// A limit of 0 means unbounded.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

// Emit appends e, dropping the oldest pending event when full.
func (r *Recorder) Emit(e Event) {
	if r.limit > 0 && len(r.events) >= r.limit {
		r.events = r.events[1:]
	}
	r.events = append(r.events, e)
}

// Drain returns the pending events and empties the queue.
func (r *Recorder) Drain() []Event {
	out := r.events
	r.events = nil
	return out
}

// Len returns the number of pending events.
func (r *Recorder) Len() int {
	return len(r.events)
}
