// internal/models/player_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayerTeamParity(t *testing.T) {
	for seat := 0; seat < 4; seat++ {
		p := &Player{Seat: seat}
		assert.Equal(t, seat%2, p.Team())
	}
}

func TestHoldsSuit(t *testing.T) {
	p := &Player{Hand: []Card{{Suit: Clubs, Rank: Nine}, {Suit: Hearts, Rank: Two}}}
	assert.True(t, p.HoldsSuit(Clubs))
	assert.False(t, p.HoldsSuit(Spades))
}
