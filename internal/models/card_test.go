// internal/models/card_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankOrdering(t *testing.T) {
	assert.True(t, Two < Three)
	assert.True(t, Ten < Jack)
	assert.True(t, King < Ace)
	assert.Equal(t, 2, int(Two))
	assert.Equal(t, 14, int(Ace))
}

func TestParseSuit(t *testing.T) {
	for _, s := range Suits {
		parsed, err := ParseSuit(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)

		parsed, err = ParseSuit(s.Symbol())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}
	_, err := ParseSuit("X")
	assert.Error(t, err)
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "♠A", Card{Suit: Spades, Rank: Ace}.String())
	assert.Equal(t, "♥10", Card{Suit: Hearts, Rank: Ten}.String())
}
