// internal/game/session_store_test.go
package game

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/masin009/hokm-asli/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreLifecycle(t *testing.T) {
	store := NewSessionStore()
	owner := uuid.New()

	s := store.Create(owner)
	require.NotEqual(t, uuid.Nil, s.ID)
	assert.Equal(t, owner, s.OwnerID)

	got, ok := store.Get(s.ID)
	require.True(t, ok)
	assert.Same(t, s, got)

	_, ok = store.Get(uuid.New())
	assert.False(t, ok)

	assert.Len(t, store.Sessions(), 1)

	store.Delete(s.ID)
	_, ok = store.Get(s.ID)
	assert.False(t, ok)
}

func TestSessionStorePlayerBinding(t *testing.T) {
	store := NewSessionStore()
	a := store.Create(uuid.New())
	b := store.Create(uuid.New())
	player := uuid.New()

	require.NoError(t, store.Bind(player, a.ID))

	found, ok := store.GetByPlayer(player)
	require.True(t, ok)
	assert.Same(t, a, found)

	// Re-binding to the same table is idempotent; a second live table is not.
	assert.NoError(t, store.Bind(player, a.ID))
	assert.ErrorIs(t, store.Bind(player, b.ID), ErrPlayerBusy)

	store.Unbind(player)
	require.NoError(t, store.Bind(player, b.ID))

	// Deleting a session releases every binding pointing at it.
	store.Delete(b.ID)
	_, ok = store.GetByPlayer(player)
	assert.False(t, ok)
	require.NoError(t, store.Bind(player, a.ID))
}

// TestStoreReleasesFinishedMatch plays the final trick of a match and checks
// that the table removes itself from the store, freeing its players to sit
// at a new one.
func TestStoreReleasesFinishedMatch(t *testing.T) {
	store := NewSessionStore()
	owner := uuid.New()
	s := store.Create(owner)

	ids := []uuid.UUID{owner, uuid.New(), uuid.New(), uuid.New()}
	for i, id := range ids {
		_, err := s.AddPlayer(id, fmt.Sprintf("player-%d", i))
		require.NoError(t, err)
		require.NoError(t, store.Bind(id, s.ID))
	}

	// Last trick of the deciding hand: team 0 is one trick and one hand
	// away from taking the match.
	hands := [4][]models.Card{
		{card(models.Spades, models.Ace)},
		{card(models.Hearts, models.Nine)},
		{card(models.Clubs, models.Queen)},
		{card(models.Diamonds, models.Two)},
	}
	for i, p := range s.Players {
		p.Hand = append([]models.Card(nil), hands[i]...)
	}
	s.Phase = PhasePlaying
	s.Trump = models.Spades
	s.TrumpChosen = true
	s.ChooserSeat = 0
	s.TurnSeat = 0
	s.CurrentTrick = NewTrick()
	s.HandNumber = 12
	s.TrickNumber = 13
	s.TeamTricks = [2]int{6, 6}
	s.HandWins = [2]int{6, 5}

	for seat := 0; seat < 4; seat++ {
		_, err := s.PlayCard(ids[seat], 0)
		require.NoError(t, err)
	}
	require.Equal(t, PhaseFinished, s.Phase)

	// The finished table is gone from the registry.
	_, ok := store.Get(s.ID)
	assert.False(t, ok)
	assert.Empty(t, store.Sessions())

	// Every participant is free again: they can open or join a new table.
	other := store.Create(ids[1])
	for _, id := range ids {
		_, bound := store.GetByPlayer(id)
		assert.False(t, bound)
		require.NoError(t, store.Bind(id, other.ID))
		store.Unbind(id)
	}
}
