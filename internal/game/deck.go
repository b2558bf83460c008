// internal/game/deck.go
package game

import (
	"math/rand/v2"

	"github.com/masin009/hokm-asli/internal/models"
)

// NewShuffledDeck returns a fresh, uniformly random permutation of the
// 52-card universe. Each hand gets its own deck; a deck is never reused
// across hands.
func NewShuffledDeck() []models.Card {
	deck := make([]models.Card, 0, 52)
	for _, suit := range models.Suits {
		for r := models.Two; r <= models.Ace; r++ {
			deck = append(deck, models.Card{Suit: suit, Rank: r})
		}
	}
	rand.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}
