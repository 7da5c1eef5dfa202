// Package player holds the per-seat state the betting and round drivers
// mutate over the course of a hand.
package player

import "github.com/jyoder/pokerbracket/internal/cards"

// Action is a tagged variant of the four legal player moves. Amount is only
// meaningful for Raise, and is a raise-to (absolute) target, not a delta.
type Action struct {
	Kind   Kind
	Amount int
}

// Kind enumerates the action variants.
type Kind int

const (
	Fold Kind = iota
	Check
	Call
	Raise
)

func (k Kind) String() string {
	switch k {
	case Fold:
		return "fold"
	case Check:
		return "check"
	case Call:
		return "call"
	case Raise:
		return "raise"
	default:
		return "unknown"
	}
}

// FoldAction, CheckAction and CallAction are convenience constructors for
// the argument-less actions.
func FoldAction() Action  { return Action{Kind: Fold} }
func CheckAction() Action { return Action{Kind: Check} }
func CallAction() Action  { return Action{Kind: Call} }

// RaiseTo constructs a Raise action with the given absolute target.
func RaiseTo(amount int) Action { return Action{Kind: Raise, Amount: amount} }

// Player is one tournament seat. Name is unique within the tournament; Host
// and Port address the seat's bot over TCP.
type Player struct {
	Name string
	Host string
	Port int

	Chips      int
	Hand       []cards.Card
	InHand     bool
	CurrBet    int
	Ready      bool
	LastAction Action
}

// AllIn reports whether the seat has zero chips but is still in the hand —
// an involuntary all-in that stays permanently ready for the rest of it.
func (p *Player) AllIn() bool {
	return p.InHand && p.Chips == 0
}

// ResetForHand clears per-hand state at the start of a new hand. Chips and
// Name/Host/Port persist across hands.
func (p *Player) ResetForHand() {
	p.Hand = nil
	p.InHand = true
	p.CurrBet = 0
	p.Ready = false
	p.LastAction = Action{}
}
