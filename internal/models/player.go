// internal/models/player.go
package models

import "github.com/google/uuid"

// Player is one seat at a Hokm table. The seat index is assigned on join and
// fixed for the whole match once four players are seated; partners share seat
// parity. The engine never stores connection objects here, so the model stays
// independent of whatever transport the presentation adapter uses.
type Player struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Seat      int       `json:"seat"`
	Hand      []Card    `json:"-"`
	TricksWon int       `json:"tricksWon"`
}

// Team returns the player's team index. Seats 0 and 2 form team 0, seats 1
// and 3 form team 1.
func (p *Player) Team() int {
	return p.Seat % 2
}

// HoldsSuit reports whether the player still holds at least one card of s.
func (p *Player) HoldsSuit(s Suit) bool {
	for _, c := range p.Hand {
		if c.Suit == s {
			return true
		}
	}
	return false
}
