// internal/models/card.go
package models

import "fmt"

// Suit is one of the four French suits. Suits carry no intrinsic ordering;
// only the hand's trump suit outranks the others during trick resolution.
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

// Suits lists every suit in a stable order, used for deck construction and
// adapter prompts.
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

func (s Suit) String() string {
	switch s {
	case Hearts:
		return "H"
	case Diamonds:
		return "D"
	case Clubs:
		return "C"
	case Spades:
		return "S"
	default:
		return "?"
	}
}

// Symbol returns the pip glyph for display purposes.
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	default:
		return "?"
	}
}

// ParseSuit converts a client-supplied suit string ("H", "hearts", "♥", ...)
// into a Suit.
func ParseSuit(s string) (Suit, error) {
	switch s {
	case "H", "h", "hearts", "♥", "♥️":
		return Hearts, nil
	case "D", "d", "diamonds", "♦", "♦️":
		return Diamonds, nil
	case "C", "c", "clubs", "♣", "♣️":
		return Clubs, nil
	case "S", "s", "spades", "♠", "♠️":
		return Spades, nil
	default:
		return 0, fmt.Errorf("unknown suit %q", s)
	}
}

// Rank is the face value of a card. The numeric value doubles as the strict
// ordering used when comparing cards of the same suit: Two is lowest, Ace
// highest.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		return fmt.Sprintf("%d", int(r))
	}
}

// Card is an immutable (suit, rank) pair. Equality is structural; the
// 52-card universe holds each combination exactly once.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func (c Card) String() string {
	return c.Suit.Symbol() + c.Rank.String()
}
