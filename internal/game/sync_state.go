// internal/game/sync_state.go
package game

import (
	"github.com/google/uuid"
	"github.com/masin009/hokm-asli/internal/models"
)

// SeatView is one seat of the table from the perspective of a requesting
// player. Other players' cards are never revealed, only their hand sizes.
type SeatView struct {
	Seat      int       `json:"seat"`
	PlayerID  uuid.UUID `json:"playerId"`
	Name      string    `json:"name"`
	Team      int       `json:"team"`
	HandSize  int       `json:"handSize"`
	TricksWon int       `json:"tricksWon"`
	IsTurn    bool      `json:"isTurn"`

	// Hand and LegalIndices are populated for the requesting player only.
	// LegalIndices is present while it is that player's turn to play.
	Hand         []models.Card `json:"hand,omitempty"`
	LegalIndices []int         `json:"legalIndices,omitempty"`
}

// SessionView is the read-only snapshot consumed by the presentation
// adapter to render the table.
type SessionView struct {
	SessionID   uuid.UUID    `json:"sessionId"`
	OwnerID     uuid.UUID    `json:"ownerId"`
	Phase       string       `json:"phase"`
	Trump       *string      `json:"trump,omitempty"`
	ChooserSeat int          `json:"chooserSeat"`
	TurnSeat    int          `json:"turnSeat"`
	HandNumber  int          `json:"handNumber"`
	TrickNumber int          `json:"trickNumber"`
	TeamTricks  [2]int       `json:"teamTricks"`
	HandWins    [2]int       `json:"handWins"`
	Trick       []PlayedCard `json:"trick,omitempty"`
	Seats       []SeatView   `json:"seats"`
}

// Snapshot generates a point-in-time view of the session for the requesting
// player. Passing uuid.Nil yields a fully obfuscated spectator view.
func (s *Session) Snapshot(forPlayer uuid.UUID) SessionView {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	view := SessionView{
		SessionID:   s.ID,
		OwnerID:     s.OwnerID,
		Phase:       s.Phase.String(),
		ChooserSeat: s.ChooserSeat,
		TurnSeat:    s.TurnSeat,
		HandNumber:  s.HandNumber,
		TrickNumber: s.TrickNumber,
		TeamTricks:  s.TeamTricks,
		HandWins:    s.HandWins,
	}
	if s.TrumpChosen {
		trump := s.Trump.String()
		view.Trump = &trump
	}
	if s.CurrentTrick != nil {
		view.Trick = append([]PlayedCard(nil), s.CurrentTrick.Plays...)
	}

	for _, p := range s.Players {
		sv := SeatView{
			Seat:      p.Seat,
			PlayerID:  p.ID,
			Name:      p.Name,
			Team:      p.Team(),
			HandSize:  len(p.Hand),
			TricksWon: p.TricksWon,
			IsTurn:    s.Phase == PhasePlaying && p.Seat == s.TurnSeat,
		}
		if p.ID == forPlayer {
			sv.Hand = append([]models.Card(nil), p.Hand...)
			if sv.IsTurn {
				sv.LegalIndices = s.legalIndices(p)
			}
		}
		view.Seats = append(view.Seats, sv)
	}
	return view
}

// legalIndices returns the indices the player on turn may legally play:
// cards of the led suit if they hold any, otherwise the whole hand.
// Assumes the lock is held.
func (s *Session) legalIndices(p *models.Player) []int {
	if led, ok := s.CurrentTrick.LedSuit(); ok && p.HoldsSuit(led) {
		return suitIndices(p.Hand, led)
	}
	all := make([]int, len(p.Hand))
	for i := range p.Hand {
		all[i] = i
	}
	return all
}
