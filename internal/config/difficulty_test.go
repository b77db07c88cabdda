package config

import (
	"testing"
	"time"
)

func TestDifficultyLevel(t *testing.T) {
	d := NewDifficultyManager(PressureConfig{
		Enabled:        true,
		InitialLevel:   0.2,
		MaxAtTurn:      10,
		DelayReduction: 0.5,
	})

	tests := []struct {
		turn     int
		expected float64
	}{
		{0, 0.2},
		{5, 0.6},
		{10, 1.0},
		{50, 1.0},
	}

	for _, tc := range tests {
		if got := d.Level(tc.turn); got < tc.expected-1e-9 || got > tc.expected+1e-9 {
			t.Errorf("Level(%d) = %f, expected %f", tc.turn, got, tc.expected)
		}
	}
}

func TestDifficultyDisabled(t *testing.T) {
	d := NewDifficultyManager(PressureConfig{InitialLevel: 0.4, MaxAtTurn: 10, DelayReduction: 0.5})
	if d.IsEnabled() {
		t.Error("IsEnabled() = true for a disabled config")
	}
	if got := d.Level(100); got != 0.4 {
		t.Errorf("Level() = %f, expected the initial level", got)
	}
	if got := d.OpponentDelay(3*time.Second, 100); got != 3*time.Second {
		t.Errorf("OpponentDelay() = %s, expected base delay", got)
	}
}

func TestDifficultyOpponentDelay(t *testing.T) {
	d := NewDifficultyManager(PressureConfig{Enabled: true, MaxAtTurn: 4, DelayReduction: 0.5})

	if got := d.OpponentDelay(4*time.Second, 0); got != 4*time.Second {
		t.Errorf("OpponentDelay(turn 0) = %s, expected 4s", got)
	}
	if got := d.OpponentDelay(4*time.Second, 4); got != 2*time.Second {
		t.Errorf("OpponentDelay(turn 4) = %s, expected 2s", got)
	}

	d.SetInitialLevel(1.0)
	d.cfg.DelayReduction = 1.0
	if got := d.OpponentDelay(time.Second, 0); got != minOpponentDelay {
		t.Errorf("OpponentDelay() = %s, expected the floor %s", got, minOpponentDelay)
	}
	if got := d.OpponentDelay(100*time.Millisecond, 0); got != 100*time.Millisecond {
		t.Errorf("OpponentDelay() = %s, expected short base kept", got)
	}
}
