package game

import (
	"errors"
	"fmt"
)

// Sentinels for the engine's failure taxonomy. Typed errors below report
// detail; errors.Is against these sentinels classifies them.
var (
	// ErrIllegalMove covers every rejected operation: wrong turn, occupied
	// tile, unknown hand index, out-of-phase call. The match state is
	// untouched when it is returned.
	ErrIllegalMove = errors.New("illegal move")

	// ErrEmptyHand is returned when the evaluator is asked to pick from an
	// empty hand.
	ErrEmptyHand = errors.New("empty hand")

	// ErrDeckExhausted reports a budgeted deal that ran out of attempts
	// and fell back to an unconstrained draw. It is never fatal to a
	// match.
	ErrDeckExhausted = errors.New("deck generation exhausted")
)

// IllegalMoveReason says which precondition a rejected operation violated.
type IllegalMoveReason int

const (
	ReasonWrongPhase IllegalMoveReason = iota
	ReasonWrongTurn
	ReasonTileOutOfRange
	ReasonTileOccupied
	ReasonNotInHand
)

func (r IllegalMoveReason) String() string {
	switch r {
	case ReasonWrongPhase:
		return "operation not legal in current phase"
	case ReasonWrongTurn:
		return "not this player's turn"
	case ReasonTileOutOfRange:
		return "tile index out of range"
	case ReasonTileOccupied:
		return "tile already occupied"
	case ReasonNotInHand:
		return "no such card in hand"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// IllegalMoveError is the rejected-move error. Tile and Hand are -1 when
// the violation is not about a specific index.
type IllegalMoveError struct {
	Player Player
	Tile   int
	Hand   int
	Reason IllegalMoveReason
}

func (e *IllegalMoveError) Error() string {
	msg := fmt.Sprintf("illegal move by player %s: %s", e.Player, e.Reason)
	if e.Tile >= 0 {
		msg += fmt.Sprintf(" (tile %d)", e.Tile)
	}
	if e.Hand >= 0 {
		msg += fmt.Sprintf(" (hand %d)", e.Hand)
	}
	return msg
}

// Is matches the ErrIllegalMove sentinel.
func (e *IllegalMoveError) Is(target error) bool {
	return target == ErrIllegalMove
}

func illegalMove(p Player, reason IllegalMoveReason) *IllegalMoveError {
	return &IllegalMoveError{Player: p, Tile: -1, Hand: -1, Reason: reason}
}

// DeckExhaustedError carries the budget parameters of a failed
// constrained deal. The hand returned alongside it is the relaxed
// fallback draw and is valid to play.
type DeckExhaustedError struct {
	Budget   int
	Attempts int
}

func (e *DeckExhaustedError) Error() string {
	return fmt.Sprintf("deck generation exhausted: no hand within level budget %d after %d attempts",
		e.Budget, e.Attempts)
}

// Is matches the ErrDeckExhausted sentinel.
func (e *DeckExhaustedError) Is(target error) bool {
	return target == ErrDeckExhausted
}
