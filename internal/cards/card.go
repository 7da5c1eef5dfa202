// Package cards implements the playing-card and multi-deck shoe primitives
// shared by the evaluator, the betting state machine and the wire protocol.
package cards

import (
	"encoding/json"
	"fmt"
)

// Suit is one of the four standard suits.
type Suit uint8

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
)

var suitNames = [4]string{"Hearts", "Diamonds", "Clubs", "Spades"}
var suitShort = [4]byte{'H', 'D', 'C', 'S'}

// String returns the canonical long name ("Hearts", "Clubs", ...).
func (s Suit) String() string {
	if int(s) >= len(suitNames) {
		return "Unknown"
	}
	return suitNames[s]
}

// Rank is a card rank, 2 through Ace. Internally ranks are stored 0-indexed
// (Rank(0) == "2") so they can also serve as array indices.
type Rank uint8

const (
	Two Rank = iota
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

var rankNames = [13]string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "Jack", "Queen", "King", "Ace"}
var rankShort = [13]byte{'2', '3', '4', '5', '6', '7', '8', '9', 'T', 'J', 'Q', 'K', 'A'}

// String returns the canonical long name ("2", "Jack", "Ace", ...).
func (r Rank) String() string {
	if int(r) >= len(rankNames) {
		return "Unknown"
	}
	return rankNames[r]
}

// Card is a single playing card.
type Card struct {
	Rank Rank
	Suit Suit
}

// ErrInvalidCard is returned when a card cannot be constructed from the
// given input.
type ErrInvalidCard struct {
	Input string
}

func (e ErrInvalidCard) Error() string {
	return fmt.Sprintf("cards: invalid card %q", e.Input)
}

var longSuitByName = map[string]Suit{"Hearts": Hearts, "Diamonds": Diamonds, "Clubs": Clubs, "Spades": Spades}

var longRankByName = map[string]Rank{
	"2": Two, "3": Three, "4": Four, "5": Five, "6": Six, "7": Seven, "8": Eight,
	"9": Nine, "10": Ten, "Jack": Jack, "Queen": Queen, "King": King, "Ace": Ace,
}

var shortSuitByChar = map[byte]Suit{'H': Hearts, 'D': Diamonds, 'C': Clubs, 'S': Spades}

var shortRankByChar = map[byte]Rank{
	'2': Two, '3': Three, '4': Four, '5': Five, '6': Six, '7': Seven, '8': Eight,
	'9': Nine, 'T': Ten, 'J': Jack, 'Q': Queen, 'K': King, 'A': Ace,
}

// NewCard constructs a Card directly from a Rank and Suit.
func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

// FromNames constructs a Card from the canonical long names used on the
// wire, e.g. FromNames("Ace", "Spades").
func FromNames(rank, suit string) (Card, error) {
	r, ok := longRankByName[rank]
	if !ok {
		return Card{}, ErrInvalidCard{Input: rank + "/" + suit}
	}
	s, ok := longSuitByName[suit]
	if !ok {
		return Card{}, ErrInvalidCard{Input: rank + "/" + suit}
	}
	return Card{Rank: r, Suit: s}, nil
}

// FromShort constructs a Card from its canonical two-character short form,
// rank-char then suit-char (T=10), e.g. "AS" for the ace of spades.
func FromShort(short string) (Card, error) {
	if len(short) != 2 {
		return Card{}, ErrInvalidCard{Input: short}
	}
	r, ok := shortRankByChar[short[0]]
	if !ok {
		return Card{}, ErrInvalidCard{Input: short}
	}
	s, ok := shortSuitByChar[short[1]]
	if !ok {
		return Card{}, ErrInvalidCard{Input: short}
	}
	return Card{Rank: r, Suit: s}, nil
}

// Short returns the canonical two-character short form.
func (c Card) Short() string {
	return string([]byte{rankShort[c.Rank], suitShort[c.Suit]})
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// wireCard mirrors the {"suit":..., "rank":...} shape used on the bot
// channel (spec §6 STATE object).
type wireCard struct {
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

// MarshalJSON emits the long-name {"suit","rank"} object used on the wire.
func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireCard{Suit: c.Suit.String(), Rank: c.Rank.String()})
}

// UnmarshalJSON accepts the long-name {"suit","rank"} object.
func (c *Card) UnmarshalJSON(data []byte) error {
	var wc wireCard
	if err := json.Unmarshal(data, &wc); err != nil {
		return err
	}
	card, err := FromNames(wc.Rank, wc.Suit)
	if err != nil {
		return err
	}
	*c = card
	return nil
}
