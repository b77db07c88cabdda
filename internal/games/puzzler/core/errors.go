package core

import "errors"

// Sentinel errors returned by Puzzle operations.
var (
	ErrNotPlayerTurn = errors.New("not the player's turn")
	ErrInvalidCell   = errors.New("cell is outside the board")
	ErrOutOfReach    = errors.New("cell is out of reach")
	ErrNotEnoughMana = errors.New("not enough mana")
	ErrSkillActive   = errors.New("skill is already active")
	ErrLivesFull     = errors.New("lives are already full")
	ErrUnknownSkill  = errors.New("unknown skill")
	ErrInvalidSize   = errors.New("invalid board size")
	ErrUnplayable    = errors.New("no playable board found")
	ErrStepLimit     = errors.New("step limit reached before the puzzle ended")
)
