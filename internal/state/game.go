// Package state holds the per-hand game state shared by the betting, round
// and transport layers, and its wire-format projections (spec §6).
package state

import (
	"github.com/jyoder/pokerbracket/internal/cards"
	"github.com/jyoder/pokerbracket/internal/player"
)

// Game is the per-hand table state. Pot and CurrBet are mutated only by the
// round/betting drivers between bot round-trips; no locking is required
// because at most one bot is ever being polled at a time.
type Game struct {
	Pot        int
	CurrBet    int
	SmallBlind int
	BigBlind   int
	Deck       *cards.Deck
	Players    []*player.Player
}

// InHandCount returns how many seats are still in the hand.
func (g *Game) InHandCount() int {
	n := 0
	for _, p := range g.Players {
		if p.InHand {
			n++
		}
	}
	return n
}

// SoleSurvivor returns the single remaining in-hand seat, or nil if zero or
// more than one seat remains in the hand.
func (g *Game) SoleSurvivor() *player.Player {
	var found *player.Player
	for _, p := range g.Players {
		if p.InHand {
			if found != nil {
				return nil
			}
			found = p
		}
	}
	return found
}

// TotalChips sums every seat's chips plus the pot — the conserved quantity
// the chip-accounting invariant is checked against.
func (g *Game) TotalChips() int {
	total := g.Pot
	for _, p := range g.Players {
		total += p.Chips
	}
	return total
}
