// Package round implements the per-hand driver (spec §4.5): blind posting,
// the street sequence, showdown scoring and pot award, and deck
// verification/reset signaling.
package round

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/jyoder/pokerbracket/internal/betting"
	"github.com/jyoder/pokerbracket/internal/cards"
	"github.com/jyoder/pokerbracket/internal/eval"
	"github.com/jyoder/pokerbracket/internal/player"
	"github.com/jyoder/pokerbracket/internal/state"
	"github.com/jyoder/pokerbracket/internal/transport"
)

// Timeouts bundles the per-call deadlines threaded through a hand.
type Timeouts struct {
	Act    time.Duration
	End    time.Duration
	Notify bool // when false, NotifyEnd is skipped (used by tests)
}

// Result summarizes the outcome of one hand, for the tournament driver's
// bookkeeping and logging.
type Result struct {
	Winners   map[string]bool
	ResetDeck bool
	Played    bool // false if the hand was skipped (fewer than 2 could post BB)
}

// Play runs one complete hand: blinds, streets, showdown and award, then
// notifies every seat of the end state. g.Players must already be arranged
// with the small blind at index 0 and the big blind at index 1.
func Play(log zerolog.Logger, g *state.Game, ask betting.Asker, tm Timeouts) Result {
	resetForHand(g)

	if !postBlinds(g) {
		return Result{Played: false}
	}

	winner := dealAndBet(log, g, ask, tm.Act, 2) // preflop
	winners := map[string]bool{}

	if winner == nil {
		winner = burnAndBetStreet(log, g, ask, tm.Act, 3) // flop
	}
	if winner == nil {
		winner = burnAndBetStreet(log, g, ask, tm.Act, 1) // turn
	}
	if winner == nil {
		winner = burnAndBetStreet(log, g, ask, tm.Act, 1) // river
	}

	if winner != nil {
		winners[winner.Name] = true
		winner.Chips += g.Pot
		g.Pot = 0
	} else {
		winners = showdown(g)
	}

	resetDeck := g.Deck.Verify(len(g.Players))

	if tm.Notify {
		notifyEnd(log, g, resetDeck, winners, tm.End)
	}

	return Result{Winners: winners, ResetDeck: resetDeck, Played: true}
}

func resetForHand(g *state.Game) {
	g.Pot = 0
	g.CurrBet = 0
	for _, p := range g.Players {
		p.ResetForHand()
	}
}

// postBlinds posts small and big blind from seats 0 and 1. It returns false
// if fewer than two seats could afford the big blind, in which case the
// hand is skipped entirely (spec §4.5).
func postBlinds(g *state.Game) bool {
	if len(g.Players) < 2 {
		return false
	}
	sb, bb := g.Players[0], g.Players[1]

	affordBB := func(p *player.Player) bool { return p.Chips >= g.BigBlind }
	eligible := 0
	for _, p := range g.Players {
		if affordBB(p) {
			eligible++
		}
	}
	if eligible < 2 {
		return false
	}

	if sb.Chips > 0 {
		post := min(sb.Chips, g.SmallBlind)
		sb.Chips -= post
		sb.CurrBet += post
		g.Pot += post
	} else {
		sb.InHand = false
	}

	post := min(bb.Chips, g.BigBlind)
	bb.Chips -= post
	bb.CurrBet += post
	g.Pot += post

	g.CurrBet = g.BigBlind
	return true
}

// dealAndBet deals `holeCards` hole cards to every in-hand seat, then runs a
// betting street.
func dealAndBet(log zerolog.Logger, g *state.Game, ask betting.Asker, timeout time.Duration, holeCards int) *player.Player {
	for _, p := range g.Players {
		if p.InHand {
			p.Hand = g.Deck.Deal(holeCards)
		}
	}
	return betting.Street(log, g, ask, timeout)
}

// burnAndBetStreet burns one card, deals n to the community board, then
// runs a betting street.
func burnAndBetStreet(log zerolog.Logger, g *state.Game, ask betting.Asker, timeout time.Duration, n int) *player.Player {
	g.Deck.Burn(1)
	g.Deck.DealToTable(n)
	betting.ResetStreet(g)
	return betting.Street(log, g, ask, timeout)
}

// showdown scores every in-hand seat's 7-card holding and splits the pot
// among the tied best hands, with any integer remainder going to the first
// winner in seat order.
func showdown(g *state.Game) map[string]bool {
	type contender struct {
		p     *player.Player
		score eval.Score
	}

	board := g.Deck.Community()
	var contenders []contender
	for _, p := range g.Players {
		if !p.InHand {
			continue
		}
		holding := make([]cards.Card, 0, len(p.Hand)+len(board))
		holding = append(holding, p.Hand...)
		holding = append(holding, board...)
		score, _ := eval.Evaluate(holding)
		contenders = append(contenders, contender{p: p, score: score})
	}

	if len(contenders) == 0 {
		return defensiveAward(g)
	}

	best := contenders[0].score
	for _, c := range contenders[1:] {
		if eval.Less(best, c.score) {
			best = c.score
		}
	}

	var winners []*player.Player
	for _, c := range contenders {
		if eval.Compare(c.score, best) == 0 {
			winners = append(winners, c.p)
		}
	}

	share := g.Pot / len(winners)
	remainder := g.Pot % len(winners)
	result := make(map[string]bool, len(winners))
	for i, w := range winners {
		amount := share
		if i == 0 {
			amount += remainder
		}
		w.Chips += amount
		result[w.Name] = true
	}
	g.Pot = 0
	return result
}

func defensiveAward(g *state.Game) map[string]bool {
	for _, p := range g.Players {
		if p.InHand {
			p.Chips += g.Pot
			g.Pot = 0
			return map[string]bool{p.Name: true}
		}
	}
	lowest := g.Players[0]
	for _, p := range g.Players[1:] {
		if p.Chips < lowest.Chips {
			lowest = p
		}
	}
	lowest.Chips += g.Pot
	g.Pot = 0
	return map[string]bool{lowest.Name: true}
}

func notifyEnd(log zerolog.Logger, g *state.Game, resetDeck bool, winners map[string]bool, timeout time.Duration) {
	for _, p := range g.Players {
		end := g.BuildEndState(resetDeck, winners, p.Name)
		transport.NotifyEnd(log, transport.Bot{Host: p.Host, Port: p.Port}, end, timeout)
	}
}
