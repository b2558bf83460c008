// internal/game/trick_test.go
package game

import (
	"testing"

	"github.com/masin009/hokm-asli/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func card(s models.Suit, r models.Rank) models.Card {
	return models.Card{Suit: s, Rank: r}
}

func TestTrickWinner(t *testing.T) {
	tests := []struct {
		name   string
		trump  models.Suit
		plays  []models.Card
		winner int // seat index, plays are seats 0..3 in order
	}{
		{
			name:  "highest led suit wins without trump",
			trump: models.Spades,
			plays: []models.Card{
				card(models.Diamonds, models.Five),
				card(models.Clubs, models.Nine),
				card(models.Diamonds, models.Queen),
				card(models.Diamonds, models.Two),
			},
			winner: 2,
		},
		{
			name:  "lone low trump beats every non-trump",
			trump: models.Spades,
			plays: []models.Card{
				card(models.Hearts, models.Ten),
				card(models.Spades, models.Two),
				card(models.Hearts, models.King),
				card(models.Hearts, models.Ace),
			},
			winner: 1,
		},
		{
			name:  "higher trump beats lower trump",
			trump: models.Clubs,
			plays: []models.Card{
				card(models.Hearts, models.Ace),
				card(models.Clubs, models.Three),
				card(models.Clubs, models.Jack),
				card(models.Hearts, models.King),
			},
			winner: 2,
		},
		{
			name:  "off-suit non-trump can never win",
			trump: models.Spades,
			plays: []models.Card{
				card(models.Diamonds, models.Two),
				card(models.Hearts, models.Ace),
				card(models.Clubs, models.Ace),
				card(models.Diamonds, models.Three),
			},
			winner: 3,
		},
		{
			name:  "leader wins an all-trump trick with the top rank",
			trump: models.Hearts,
			plays: []models.Card{
				card(models.Hearts, models.Ace),
				card(models.Hearts, models.King),
				card(models.Hearts, models.Queen),
				card(models.Hearts, models.Jack),
			},
			winner: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trick := NewTrick()
			for seat, c := range tt.plays {
				trick.Add(seat, c)
			}
			require.True(t, trick.Complete())
			assert.Equal(t, tt.winner, trick.Winner(tt.trump))
			assert.Equal(t, tt.winner, trick.WinnerSeat)
		})
	}
}

func TestTrickLedSuit(t *testing.T) {
	trick := NewTrick()
	_, ok := trick.LedSuit()
	assert.False(t, ok)

	trick.Add(0, card(models.Clubs, models.Seven))
	led, ok := trick.LedSuit()
	require.True(t, ok)
	assert.Equal(t, models.Clubs, led)

	trick.Add(1, card(models.Hearts, models.Ace))
	led, _ = trick.LedSuit()
	assert.Equal(t, models.Clubs, led, "led suit is fixed by the first card")
}
