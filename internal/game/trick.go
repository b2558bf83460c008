// internal/game/trick.go
package game

import "github.com/masin009/hokm-asli/internal/models"

// PlayedCard records a card together with the seat that played it.
type PlayedCard struct {
	Seat int         `json:"seat"`
	Card models.Card `json:"card"`
}

// Trick is one exchange of up to four cards, one per seat, played in turn
// order. The suit of the first card is the led suit; once all four cards are
// down, Winner resolves the unique winning seat.
type Trick struct {
	Plays      []PlayedCard
	WinnerSeat int
}

// NewTrick returns an empty trick with no winner resolved yet.
func NewTrick() *Trick {
	return &Trick{WinnerSeat: -1}
}

// LedSuit returns the suit of the first card played, if any card has been
// played yet.
func (t *Trick) LedSuit() (models.Suit, bool) {
	if len(t.Plays) == 0 {
		return 0, false
	}
	return t.Plays[0].Card.Suit, true
}

// Add appends a play to the trick in turn order.
func (t *Trick) Add(seat int, c models.Card) {
	t.Plays = append(t.Plays, PlayedCard{Seat: seat, Card: c})
}

// Complete reports whether all four seats have played.
func (t *Trick) Complete() bool {
	return len(t.Plays) == 4
}

// Winner resolves the winning seat under the given trump suit and records
// it. A trump card outranks any non-trump card; among trumps, higher rank
// wins; with no trump played, the highest card of the led suit wins. A card
// that is neither trump nor led suit can never win, so the order is total
// and the winner unique.
func (t *Trick) Winner(trump models.Suit) int {
	best := t.Plays[0]
	led := t.Plays[0].Card.Suit
	for _, pc := range t.Plays[1:] {
		if beats(pc.Card, best.Card, trump, led) {
			best = pc
		}
	}
	t.WinnerSeat = best.Seat
	return best.Seat
}

// beats reports whether the challenger outranks the current best card.
func beats(c, best models.Card, trump, led models.Suit) bool {
	if c.Suit == best.Suit {
		return c.Rank > best.Rank
	}
	if c.Suit == trump {
		return true
	}
	if best.Suit == trump {
		return false
	}
	return c.Suit == led
}
