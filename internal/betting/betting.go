// Package betting implements the per-street betting state machine (spec
// §4.4): action order, legality checks, chip accounting, and the ready-flag
// exit condition that ends a street.
package betting

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/jyoder/pokerbracket/internal/player"
	"github.com/jyoder/pokerbracket/internal/state"
	"github.com/jyoder/pokerbracket/internal/transport"
)

// Asker solicits one action from a seat. It is satisfied by
// transport.Ask; tests substitute a stub.
type Asker func(log zerolog.Logger, bot transport.Bot, st state.ActState, timeout time.Duration) player.Action

// Street runs one betting round to completion: it repeatedly visits seats
// in ring order until every in-hand seat is ready, applying each seat's
// action to the shared game state. It returns the sole surviving seat if
// every other seat folded, or nil if the street finished with more than
// one seat still in the hand.
func Street(log zerolog.Logger, g *state.Game, ask Asker, timeout time.Duration) *player.Player {
	clearReady(g)
	order := actionOrder(g.Players)

	for {
		if winner := g.SoleSurvivor(); winner != nil {
			return winner
		}
		if allReady(g.Players) {
			return nil
		}

		for _, idx := range order {
			seat := g.Players[idx]

			if winner := g.SoleSurvivor(); winner != nil {
				return winner
			}
			if seat.Ready || !seat.InHand || seat.AllIn() {
				continue
			}

			st := g.BuildActState(idx)
			action := ask(log, transport.Bot{Host: seat.Host, Port: seat.Port}, st, timeout)
			apply(log, g, seat, action)
		}
	}
}

// clearReady zeroes Ready on every in-hand seat, except a seat that is
// already all-in: it has nothing left to contribute and stays permanently
// ready for the rest of the hand. Called at the start of every street,
// including preflop.
func clearReady(g *state.Game) {
	for _, p := range g.Players {
		if !p.InHand {
			continue
		}
		p.Ready = p.AllIn()
	}
}

// ResetStreet zeroes game.CurrBet and every in-hand seat's CurrBet. The
// round driver calls this before the flop, turn and river — but not before
// preflop, where CurrBet already reflects the posted blinds (spec §4.4).
func ResetStreet(g *state.Game) {
	g.CurrBet = 0
	for _, p := range g.Players {
		if p.InHand {
			p.CurrBet = 0
		}
	}
}

// actionOrder returns seat indices in players[2:]+players[:2] order (spec
// §4.4): UTG first, reused unchanged on every street.
func actionOrder(players []*player.Player) []int {
	n := len(players)
	order := make([]int, 0, n)
	for i := 2; i < n; i++ {
		order = append(order, i)
	}
	for i := 0; i < 2 && i < n; i++ {
		order = append(order, i)
	}
	return order
}

func allReady(players []*player.Player) bool {
	for _, p := range players {
		if p.InHand && !p.Ready {
			return false
		}
	}
	return true
}

// apply mutates game/seat state according to the action semantics in spec
// §4.4. Illegal or missing actions are converted to Fold.
func apply(log zerolog.Logger, g *state.Game, seat *player.Player, action player.Action) {
	switch action.Kind {
	case player.Check:
		if seat.CurrBet != g.CurrBet {
			log.Warn().Str("seat", seat.Name).Msg("illegal check while facing a bet, folding")
			fold(seat)
			return
		}
		seat.LastAction = action
		seat.Ready = true

	case player.Call:
		owe := g.CurrBet - seat.CurrBet
		commit := min(seat.Chips, owe)
		seat.Chips -= commit
		seat.CurrBet += commit
		g.Pot += commit
		seat.LastAction = action
		seat.Ready = true

	case player.Raise:
		need := action.Amount - seat.CurrBet
		if need <= 0 || action.Amount <= g.CurrBet {
			log.Warn().Str("seat", seat.Name).Int("amount", action.Amount).Msg("illegal raise, folding")
			fold(seat)
			return
		}
		commit := min(need, seat.Chips)
		seat.Chips -= commit
		seat.CurrBet += commit
		g.Pot += commit
		if seat.CurrBet > g.CurrBet {
			g.CurrBet = seat.CurrBet
		}
		for _, other := range g.Players {
			if other != seat && other.InHand && !other.AllIn() {
				other.Ready = false
			}
		}
		seat.LastAction = action
		seat.Ready = true

	case player.Fold:
		fold(seat)

	default:
		fold(seat)
	}
}

func fold(seat *player.Player) {
	seat.InHand = false
	seat.LastAction = player.FoldAction()
	seat.Ready = true
}
