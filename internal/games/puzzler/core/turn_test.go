package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPhaseDelay = 500 * time.Millisecond

func newTestMachine(turnsToWin int) (*TurnMachine, *Scheduler, *Recorder) {
	s := NewScheduler()
	rec := NewRecorder(0)
	return NewTurnMachine(s, rec, testPhaseDelay, turnsToWin), s, rec
}

func phases(events []Event) []TurnState {
	var out []TurnState
	for _, e := range events {
		if pe, ok := e.(PhaseEntered); ok {
			out = append(out, pe.State)
		}
	}
	return out
}

func TestTurnMachineStartsInNone(t *testing.T) {
	m, _, _ := newTestMachine(3)
	assert.Equal(t, None, m.State())
	assert.Zero(t, m.Turn())
}

func TestTurnMachineCycle(t *testing.T) {
	m, s, rec := newTestMachine(3)

	m.Set(PuzzleStarted)
	assert.True(t, m.Entered())

	m.Set(PlayerTurnStart)
	assert.False(t, m.Entered())
	s.Advance(testPhaseDelay - time.Millisecond)
	assert.False(t, m.Entered())
	s.Advance(time.Millisecond)
	assert.True(t, m.Entered())

	m.Set(PlayerTurnEnd)
	assert.True(t, m.Entered())
	s.Advance(testPhaseDelay)
	assert.Equal(t, PuzzlerTurnStart, m.State())
	assert.False(t, m.Entered())
	s.Advance(testPhaseDelay)
	assert.True(t, m.Entered())

	m.Set(PuzzlerTurnEnd)
	assert.Equal(t, 1, m.Turn())
	s.Advance(testPhaseDelay)
	assert.Equal(t, PlayerTurnStart, m.State())
	s.Advance(testPhaseDelay)

	assert.Equal(t, []TurnState{
		PuzzleStarted,
		PlayerTurnStart,
		PlayerTurnEnd,
		PuzzlerTurnStart,
		PuzzlerTurnEnd,
		PlayerTurnStart,
	}, phases(rec.Drain()))
}

func TestTurnMachineWinAtThreshold(t *testing.T) {
	m, s, rec := newTestMachine(1)
	m.Set(PuzzleStarted)
	m.Set(PuzzlerTurnEnd)

	assert.Equal(t, Win, m.State())
	assert.Equal(t, 1, m.Turn())
	assert.False(t, m.Entered())

	s.Advance(testPhaseDelay)
	assert.True(t, m.Entered())
	assert.Equal(t, []TurnState{PuzzleStarted, Win}, phases(rec.Drain()))
}

func TestTurnMachineTerminalIsFinal(t *testing.T) {
	m, s, _ := newTestMachine(3)
	m.Set(PuzzleStarted)
	m.Set(GameOver)
	epoch := m.Epoch()

	m.Set(PlayerTurnStart)
	m.Set(Win)
	s.Advance(10 * testPhaseDelay)
	assert.Equal(t, GameOver, m.State())
	assert.Equal(t, epoch, m.Epoch())
}

func TestTurnMachineSelfTransitionIsNoop(t *testing.T) {
	m, s, rec := newTestMachine(3)
	m.Set(PuzzleStarted)
	m.Set(PlayerTurnStart)
	epoch := m.Epoch()

	m.Set(PlayerTurnStart)
	assert.Equal(t, epoch, m.Epoch())
	s.Advance(testPhaseDelay)
	assert.Equal(t, []TurnState{PuzzleStarted, PlayerTurnStart}, phases(rec.Drain()))
}

func TestTurnMachineDropsStaleWork(t *testing.T) {
	m, s, rec := newTestMachine(3)
	m.Set(PuzzleStarted)
	m.Set(PlayerTurnEnd)
	m.Set(GameOver)

	s.Advance(10 * testPhaseDelay)
	require.Equal(t, GameOver, m.State())
	assert.Equal(t, []TurnState{PuzzleStarted, PlayerTurnEnd, GameOver}, phases(rec.Drain()))
}

func TestTurnMachineRestartResetsTurn(t *testing.T) {
	m, _, _ := newTestMachine(5)
	m.Set(PuzzleStarted)
	m.Set(PuzzlerTurnEnd)
	m.Set(PuzzlerTurnStart)
	m.Set(PuzzlerTurnEnd)
	require.Equal(t, 2, m.Turn())

	m.Set(PuzzleStarted)
	assert.Zero(t, m.Turn())
}
