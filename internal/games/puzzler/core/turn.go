package core

import "time"

// TurnState is a phase of the turn cycle.
type TurnState int

const (
	PuzzleStarted TurnState = iota
	PlayerTurnStart
	PlayerTurnEnd
	PuzzlerTurnStart
	PuzzlerTurnEnd
	GameOver
	Win
	None
)

// String returns the phase name.
func (s TurnState) String() string {
	switch s {
	case PuzzleStarted:
		return "PuzzleStarted"
	case PlayerTurnStart:
		return "PlayerTurnStart"
	case PlayerTurnEnd:
		return "PlayerTurnEnd"
	case PuzzlerTurnStart:
		return "PuzzlerTurnStart"
	case PuzzlerTurnEnd:
		return "PuzzlerTurnEnd"
	case GameOver:
		return "GameOver"
	case Win:
		return "Win"
	case None:
		return "None"
	default:
		return "Unknown"
	}
}

// Terminal reports whether no transition can leave the state.
func (s TurnState) Terminal() bool {
	return s == GameOver || s == Win
}

// Default turn pacing.
const (
	DefaultPhaseDelay = 500 * time.Millisecond
	DefaultTurnsToWin = 12
)

// TurnMachine sequences turn phases on a Scheduler.
//
// Entering PlayerTurnStart, PuzzlerTurnStart, GameOver or Win waits one
// phase delay before emitting PhaseEntered. PlayerTurnEnd and
// PuzzlerTurnEnd emit at once, then advance to the next phase after one
// phase delay. PuzzlerTurnEnd first counts the turn and moves to Win when
// the threshold is reached. Delayed work belongs to the transition that
// scheduled it and is dropped if another transition happens first.
type TurnMachine struct {
	sched      *Scheduler
	events     Emitter
	delay      time.Duration
	turnsToWin int

	state   TurnState
	entered bool
	turn    int
	epoch   uint64
}

// NewTurnMachine creates a machine in the None state.
func NewTurnMachine(sched *Scheduler, events Emitter, delay time.Duration, turnsToWin int) *TurnMachine {
	return &TurnMachine{
		sched:      sched,
		events:     events,
		delay:      delay,
		turnsToWin: turnsToWin,
		state:      None,
	}
}

// State returns the active phase.
func (m *TurnMachine) State() TurnState { return m.state }

// Entered reports whether PhaseEntered has been emitted for the active phase.
func (m *TurnMachine) Entered() bool { return m.entered }

// Turn returns the number of completed opponent turns.
func (m *TurnMachine) Turn() int { return m.turn }

// TurnsToWin returns the win threshold.
func (m *TurnMachine) TurnsToWin() int { return m.turnsToWin }

// Epoch changes on every transition. Callers can compare it to detect
// that the phase they scheduled work for is gone.
func (m *TurnMachine) Epoch() uint64 { return m.epoch }

// Set transitions to state. Re-entering the active state and leaving a
// terminal state are no-ops.
func (m *TurnMachine) Set(state TurnState) {
	if state == m.state || m.state.Terminal() {
		return
	}

	m.state = state
	m.entered = false
	m.epoch++
	epoch := m.epoch

	switch state {
	case PuzzleStarted:
		m.turn = 0
		m.enter()
	case PlayerTurnStart, PuzzlerTurnStart, GameOver, Win:
		m.later(epoch, m.enter)
	case PlayerTurnEnd:
		m.enter()
		m.later(epoch, func() { m.Set(PuzzlerTurnStart) })
	case PuzzlerTurnEnd:
		m.turn++
		if m.turn >= m.turnsToWin {
			m.Set(Win)
			return
		}
		m.enter()
		m.later(epoch, func() { m.Set(PlayerTurnStart) })
	case None:
		m.entered = true
	}
}

func (m *TurnMachine) enter() {
	m.entered = true
	if m.events != nil {
		m.events.Emit(PhaseEntered{State: m.state, Turn: m.turn})
	}
}

func (m *TurnMachine) later(epoch uint64, fn func()) {
	m.sched.After(m.delay, func() {
		if m.epoch != epoch {
			return
		}
		fn()
	})
}
