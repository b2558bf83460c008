// internal/game/deck_test.go
package game

import (
	"testing"

	"github.com/masin009/hokm-asli/internal/models"
	"github.com/stretchr/testify/require"
)

// TestNewShuffledDeckCoversUniverse verifies that every deal produces the
// full 52-card universe with no duplicates and no omissions.
func TestNewShuffledDeckCoversUniverse(t *testing.T) {
	for i := 0; i < 25; i++ {
		deck := NewShuffledDeck()
		require.Len(t, deck, 52)

		seen := make(map[models.Card]bool, 52)
		suitCounts := make(map[models.Suit]int, 4)
		for _, c := range deck {
			require.False(t, seen[c], "card %s dealt twice", c)
			seen[c] = true
			suitCounts[c.Suit]++
			require.GreaterOrEqual(t, c.Rank, models.Two)
			require.LessOrEqual(t, c.Rank, models.Ace)
		}
		for _, suit := range models.Suits {
			require.Equal(t, 13, suitCounts[suit], "suit %s incomplete", suit)
		}
	}
}
