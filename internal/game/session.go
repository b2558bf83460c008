// internal/game/session.go
package game

import (
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/masin009/hokm-asli/internal/models"
)

const (
	// MaxPlayers is the fixed table size; Hokm is a four-player game.
	MaxPlayers = 4

	// TricksPerHand is the number of tricks a full hand would run.
	TricksPerHand = 13

	// HandWinThreshold is the trick count at which a team takes the hand.
	// 13 tricks cannot split 7/7, so exactly one team reaches it.
	HandWinThreshold = 7

	// MatchWinThreshold is the hand count at which a team takes the match.
	MatchWinThreshold = 7

	firstDealCount  = 5
	secondDealCount = 8
)

// OnMatchEndFunc handles a finished match, typically by removing the session
// from its registry.
type OnMatchEndFunc func(sessionID uuid.UUID, winningTeam int)

// SessionEventType is an enum-like type for broadcasting session transitions.
type SessionEventType string

const (
	EventPlayerJoined   SessionEventType = "player_joined"
	EventPlayerLeft     SessionEventType = "player_left"
	EventHandStarted    SessionEventType = "hand_started"
	EventTrumpChosen    SessionEventType = "trump_chosen"
	EventTurnAdvanced   SessionEventType = "turn_advanced"
	EventTrickCompleted SessionEventType = "trick_completed"
	EventHandCompleted  SessionEventType = "hand_completed"
	EventMatchCompleted SessionEventType = "match_completed"

	// EventPrivateHand reveals a player's own cards after each deal.
	EventPrivateHand SessionEventType = "private_hand"
)

// SessionEvent holds data about a state transition, broadcast to the
// presentation adapter in a consistent format.
type SessionEvent struct {
	Type    SessionEventType       `json:"type"`
	Seat    *int                   `json:"seat,omitempty"`
	Team    *int                   `json:"team,omitempty"`
	Suit    *string                `json:"suit,omitempty"`
	Card    *models.Card           `json:"card,omitempty"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// Session holds the entire state for a single Hokm table in memory: the
// roster, the active hand, and the match counters. All mutating operations
// take the session mutex, apply atomically, and leave the state untouched on
// failure.
type Session struct {
	ID      uuid.UUID
	OwnerID uuid.UUID

	// Players in seat order; once the table is full the slice index is the
	// seat index for the rest of the match.
	Players []*models.Player

	Phase       Phase
	Trump       models.Suit
	TrumpChosen bool
	ChooserSeat int // -1 until the first hand is dealt
	TurnSeat    int

	CurrentTrick *Trick
	TrickNumber  int    // 1-based within the hand
	HandNumber   int    // 1-based within the match
	TeamTricks   [2]int // tricks taken this hand
	HandWins     [2]int // hands taken this match

	// stock holds the 32 undealt cards between the five-card deal and the
	// trump choice.
	stock []models.Card

	Mu sync.Mutex

	// BroadcastFn is used to send events to the whole table. If nil, events
	// are dropped.
	BroadcastFn func(ev SessionEvent)

	// BroadcastToPlayerFn sends an event to a single specific player.
	BroadcastToPlayerFn func(playerID uuid.UUID, ev SessionEvent)

	// OnMatchEnd is invoked once when the match reaches the finished phase,
	// after the completion event is emitted. It runs with the session lock
	// held, so it must not call back into session operations.
	OnMatchEnd OnMatchEndFunc
}

// NewSession builds an empty table owned by ownerID, waiting for players.
func NewSession(ownerID uuid.UUID) *Session {
	id, _ := uuid.NewRandom()
	return &Session{
		ID:          id,
		OwnerID:     ownerID,
		Phase:       PhaseWaiting,
		ChooserSeat: -1,
		TurnSeat:    -1,
	}
}

// AddPlayer seats a player at the next free seat. Only permitted while the
// session is waiting; returns the assigned seat index.
func (s *Session) AddPlayer(id uuid.UUID, name string) (int, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if s.Phase != PhaseWaiting {
		return 0, ErrInvalidState
	}
	if len(s.Players) >= MaxPlayers {
		return 0, ErrRosterFull
	}
	for _, p := range s.Players {
		if p.ID == id {
			return 0, ErrDuplicatePlayer
		}
	}

	seat := len(s.Players)
	s.Players = append(s.Players, &models.Player{ID: id, Name: name, Seat: seat})

	s.emit(SessionEvent{
		Type: EventPlayerJoined,
		Seat: &seat,
		Payload: map[string]interface{}{
			"player": id.String(),
			"name":   name,
			"seated": len(s.Players),
		},
	})
	return seat, nil
}

// RemovePlayer unseats a player. Departure is only supported while waiting;
// once a hand is active the operation fails with ErrInvalidState and the
// roster is untouched.
func (s *Session) RemovePlayer(id uuid.UUID) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if s.Phase != PhaseWaiting {
		return ErrInvalidState
	}
	for i, p := range s.Players {
		if p.ID == id {
			seat := p.Seat
			s.Players = append(s.Players[:i], s.Players[i+1:]...)
			// Seats stay contiguous during the waiting phase.
			for j, rest := range s.Players {
				rest.Seat = j
			}
			s.emit(SessionEvent{
				Type: EventPlayerLeft,
				Seat: &seat,
				Payload: map[string]interface{}{
					"player": id.String(),
					"seated": len(s.Players),
				},
			})
			return nil
		}
	}
	return ErrUnknownPlayer
}

// StartHand begins the first hand of the match once four players are seated.
// Subsequent hands start automatically when the previous hand is scored, so
// calling this in any phase other than waiting fails with ErrInvalidState.
func (s *Session) StartHand() error {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if s.Phase != PhaseWaiting {
		return ErrInvalidState
	}
	if len(s.Players) != MaxPlayers {
		return ErrNotEnoughPlayers
	}

	// The first chooser is a uniformly random seat; later hands rotate.
	s.beginHand(rand.IntN(MaxPlayers))
	return nil
}

// ChooseTrump records the chooser's suit, deals the remaining 32 cards, and
// opens play with the chooser leading the first trick.
func (s *Session) ChooseTrump(playerID uuid.UUID, suit models.Suit) error {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	if s.Phase != PhaseChoosingTrump {
		return ErrInvalidState
	}
	p := s.playerByID(playerID)
	if p == nil {
		return ErrUnknownPlayer
	}
	if p.Seat != s.ChooserSeat {
		return ErrNotYourTurn
	}
	if suit < models.Hearts || suit > models.Spades {
		return ErrInvalidSuit
	}

	s.Trump = suit
	s.TrumpChosen = true

	// Second deal: eight cards each, so every player holds thirteen.
	for i, pl := range s.Players {
		pl.Hand = append(pl.Hand, s.stock[i*secondDealCount:(i+1)*secondDealCount]...)
		sortHand(pl.Hand)
		s.emitHand(pl)
	}
	s.stock = nil

	s.Phase = PhasePlaying
	s.TurnSeat = s.ChooserSeat
	s.CurrentTrick = NewTrick()
	s.TrickNumber = 1

	suitName := suit.String()
	s.emit(SessionEvent{Type: EventTrumpChosen, Suit: &suitName, Seat: &p.Seat})
	s.emitTurn()
	return nil
}

// PlayCard plays the card at cardIndex from the acting player's hand. It
// enforces turn order and the follow-suit rule, records the play, and
// resolves the trick, the hand, and the match as their conditions are met.
// The played card is returned on success.
func (s *Session) PlayCard(playerID uuid.UUID, cardIndex int) (models.Card, error) {
	s.Mu.Lock()
	defer s.Mu.Unlock()

	var none models.Card
	if s.Phase != PhasePlaying {
		return none, ErrInvalidState
	}
	p := s.playerByID(playerID)
	if p == nil {
		return none, ErrUnknownPlayer
	}
	if p.Seat != s.TurnSeat {
		return none, ErrNotYourTurn
	}
	if cardIndex < 0 || cardIndex >= len(p.Hand) {
		return none, ErrInvalidCard
	}

	card := p.Hand[cardIndex]
	if led, ok := s.CurrentTrick.LedSuit(); ok && card.Suit != led && p.HoldsSuit(led) {
		return none, &SuitViolationError{LedSuit: led, LegalIndices: suitIndices(p.Hand, led)}
	}

	p.Hand = append(p.Hand[:cardIndex], p.Hand[cardIndex+1:]...)
	s.CurrentTrick.Add(p.Seat, card)

	if !s.CurrentTrick.Complete() {
		s.TurnSeat = (s.TurnSeat + 1) % MaxPlayers
		s.emitTurn()
		return card, nil
	}

	winner := s.CurrentTrick.Winner(s.Trump)
	winningPlayer := s.Players[winner]
	winningPlayer.TricksWon++
	team := winningPlayer.Team()
	s.TeamTricks[team]++

	s.emit(SessionEvent{
		Type: EventTrickCompleted,
		Seat: &winner,
		Team: &team,
		Payload: map[string]interface{}{
			"trick":      s.TrickNumber,
			"teamTricks": []int{s.TeamTricks[0], s.TeamTricks[1]},
		},
	})

	if s.TeamTricks[team] >= HandWinThreshold {
		// Remaining tricks of this hand are never played.
		s.finishHand(team)
		return card, nil
	}

	s.CurrentTrick = NewTrick()
	s.TrickNumber++
	s.TurnSeat = winner
	s.emitTurn()
	return card, nil
}

// beginHand resets per-hand state, shuffles a fresh deck, deals five cards
// to each seat, and hands the trump choice to the chooser seat.
// Assumes the lock is held.
func (s *Session) beginHand(chooser int) {
	deck := NewShuffledDeck()

	s.HandNumber++
	s.TeamTricks = [2]int{}
	s.TrickNumber = 0
	s.CurrentTrick = nil
	s.TrumpChosen = false

	for i, p := range s.Players {
		p.TricksWon = 0
		p.Hand = append([]models.Card(nil), deck[i*firstDealCount:(i+1)*firstDealCount]...)
		sortHand(p.Hand)
		s.emitHand(p)
	}
	s.stock = deck[MaxPlayers*firstDealCount:]

	s.ChooserSeat = chooser
	s.TurnSeat = chooser
	s.Phase = PhaseChoosingTrump

	s.emit(SessionEvent{
		Type: EventHandStarted,
		Seat: &chooser,
		Payload: map[string]interface{}{
			"hand":     s.HandNumber,
			"handWins": []int{s.HandWins[0], s.HandWins[1]},
		},
	})
}

// finishHand scores the completed hand for the winning team and either
// starts the next hand with the rotated chooser or ends the match.
// Assumes the lock is held.
func (s *Session) finishHand(team int) {
	s.Phase = PhaseHandFinished
	s.HandWins[team]++

	s.emit(SessionEvent{
		Type: EventHandCompleted,
		Team: &team,
		Payload: map[string]interface{}{
			"hand":       s.HandNumber,
			"teamTricks": []int{s.TeamTricks[0], s.TeamTricks[1]},
			"handWins":   []int{s.HandWins[0], s.HandWins[1]},
		},
	})

	if s.HandWins[team] >= MatchWinThreshold {
		s.Phase = PhaseFinished
		s.CurrentTrick = nil
		s.TurnSeat = -1
		s.emit(SessionEvent{
			Type: EventMatchCompleted,
			Team: &team,
			Payload: map[string]interface{}{
				"handWins": []int{s.HandWins[0], s.HandWins[1]},
			},
		})
		if s.OnMatchEnd != nil {
			s.OnMatchEnd(s.ID, team)
		}
		return
	}

	s.beginHand((s.ChooserSeat + 1) % MaxPlayers)
}

// emitTurn announces the seat currently on turn.
// Assumes the lock is held.
func (s *Session) emitTurn() {
	seat := s.TurnSeat
	s.emit(SessionEvent{Type: EventTurnAdvanced, Seat: &seat})
}

// emit broadcasts an event to the table.
// Assumes the lock is held.
func (s *Session) emit(ev SessionEvent) {
	if s.BroadcastFn != nil {
		s.BroadcastFn(ev)
	}
}

// emitTo sends an event only to a specific player.
// Assumes the lock is held.
func (s *Session) emitTo(playerID uuid.UUID, ev SessionEvent) {
	if s.BroadcastToPlayerFn != nil {
		s.BroadcastToPlayerFn(playerID, ev)
	}
}

// emitHand privately reveals a player's current hand to them.
// Assumes the lock is held.
func (s *Session) emitHand(p *models.Player) {
	cards := make([]models.Card, len(p.Hand))
	copy(cards, p.Hand)
	s.emitTo(p.ID, SessionEvent{
		Type:    EventPrivateHand,
		Seat:    &p.Seat,
		Payload: map[string]interface{}{"cards": cards},
	})
}

// playerByID returns the seated player with the given id, or nil.
// Assumes the lock is held.
func (s *Session) playerByID(id uuid.UUID) *models.Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// sortHand orders a hand by suit then rank so card indices stay stable and
// predictable for adapter prompts between plays.
func sortHand(hand []models.Card) {
	sort.Slice(hand, func(i, j int) bool {
		if hand[i].Suit != hand[j].Suit {
			return hand[i].Suit < hand[j].Suit
		}
		return hand[i].Rank < hand[j].Rank
	})
}

// suitIndices returns the hand indices holding the given suit.
func suitIndices(hand []models.Card, suit models.Suit) []int {
	var idx []int
	for i, c := range hand {
		if c.Suit == suit {
			idx = append(idx, i)
		}
	}
	return idx
}
