// internal/game/errors.go
package game

import (
	"errors"
	"fmt"

	"github.com/masin009/hokm-asli/internal/models"
)

// Sentinel errors returned by session operations. Callers distinguish them
// with errors.Is; none of them leave the session mutated.
var (
	// ErrRosterFull is returned by AddPlayer once four players are seated.
	ErrRosterFull = errors.New("table already seats four players")

	// ErrDuplicatePlayer is returned by AddPlayer when the id is already seated.
	ErrDuplicatePlayer = errors.New("player is already seated at this table")

	// ErrNotEnoughPlayers is returned by StartHand before the table is full.
	ErrNotEnoughPlayers = errors.New("four players are required to start a hand")

	// ErrInvalidState is returned by any operation invoked in a phase that
	// does not permit it.
	ErrInvalidState = errors.New("operation not allowed in the current phase")

	// ErrNotYourTurn is returned when the wrong seat attempts the trump
	// choice or a card play.
	ErrNotYourTurn = errors.New("it is not this player's turn")

	// ErrInvalidCard is returned when a card index is out of range for the
	// player's hand.
	ErrInvalidCard = errors.New("card index is out of range")

	// ErrUnknownPlayer is returned when the acting id is not seated at the
	// table at all.
	ErrUnknownPlayer = errors.New("player is not seated at this table")

	// ErrInvalidSuit is returned by ChooseTrump for a suit value outside the
	// four playing suits.
	ErrInvalidSuit = errors.New("suit is not one of the four playing suits")
)

// SuitViolationError reports a broken follow-suit rule. It carries the led
// suit and the indices of the cards the player may legally play instead, so
// the adapter can re-prompt with exactly those choices.
type SuitViolationError struct {
	LedSuit      models.Suit
	LegalIndices []int
}

func (e *SuitViolationError) Error() string {
	return fmt.Sprintf("must follow the led suit %s; legal card indices: %v", e.LedSuit, e.LegalIndices)
}
