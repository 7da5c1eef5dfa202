package betting

import (
	"math/rand"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jyoder/pokerbracket/internal/cards"
	"github.com/jyoder/pokerbracket/internal/player"
	"github.com/jyoder/pokerbracket/internal/state"
	"github.com/jyoder/pokerbracket/internal/transport"
)

func newGame(t *testing.T, chips ...int) *state.Game {
	t.Helper()
	g := &state.Game{
		SmallBlind: 5,
		BigBlind:   10,
		CurrBet:    10,
		Deck:       cards.New(1, rand.New(rand.NewSource(1))),
	}
	for i, c := range chips {
		g.Players = append(g.Players, &player.Player{
			Name:   seatName(i),
			Chips:  c,
			InHand: true,
		})
	}
	return g
}

func seatName(i int) string {
	return string(rune('A' + i))
}

// askByIndex builds an Asker that maps each incoming Bot address back to a
// seat index (via Host/Port, set by setPorts) and replays a scripted
// sequence of actions for that seat, falling back to Check once exhausted.
func askByIndex(t *testing.T, g *state.Game, plan map[int][]player.Action) Asker {
	t.Helper()
	calls := map[int]int{}
	return func(log zerolog.Logger, bot transport.Bot, st state.ActState, timeout time.Duration) player.Action {
		idx := -1
		for i, p := range g.Players {
			if p.Host == bot.Host && p.Port == bot.Port {
				idx = i
				break
			}
		}
		require.NotEqual(t, -1, idx, "could not map bot back to seat")
		seq := plan[idx]
		i := calls[idx]
		calls[idx] = i + 1
		if i >= len(seq) {
			return player.CheckAction()
		}
		return seq[i]
	}
}

func setPorts(g *state.Game) {
	for i, p := range g.Players {
		p.Host = "seat"
		p.Port = i + 1
	}
}

func TestAllCheckEndsStreetNoWinner(t *testing.T) {
	g := newGame(t, 100, 100, 100)
	g.CurrBet = 0
	setPorts(g)
	ask := askByIndex(t, g, map[int][]player.Action{
		0: {player.CheckAction()},
		1: {player.CheckAction()},
		2: {player.CheckAction()},
	})

	winner := Street(zerolog.Nop(), g, ask, time.Second)
	assert.Nil(t, winner)
	assert.Equal(t, 3, g.InHandCount())
}

func TestRaiseResetsOthersReadyExactlyOnce(t *testing.T) {
	g := newGame(t, 100, 100, 100)
	g.CurrBet = 10
	setPorts(g)
	ask := askByIndex(t, g, map[int][]player.Action{
		0: {player.RaiseTo(20), player.CheckAction()},
		1: {player.CallAction()},
		2: {player.CallAction(), player.CallAction()}, // acts first, re-polled once after A's raise
	})

	winner := Street(zerolog.Nop(), g, ask, time.Second)
	assert.Nil(t, winner)
	for _, p := range g.Players {
		assert.Equal(t, 20, p.CurrBet)
		assert.True(t, p.Ready)
	}
	assert.Equal(t, 20, g.CurrBet)
	assert.Equal(t, 60, g.Pot)
}

func TestFoldsToSoleSurvivor(t *testing.T) {
	g := newGame(t, 100, 100, 100)
	g.CurrBet = 10
	setPorts(g)
	ask := askByIndex(t, g, map[int][]player.Action{
		0: {player.FoldAction()},
		1: {player.FoldAction()},
		2: {player.CallAction()},
	})

	winner := Street(zerolog.Nop(), g, ask, time.Second)
	require.NotNil(t, winner)
	assert.Equal(t, "C", winner.Name)
	assert.Equal(t, 1, g.InHandCount())
}

func TestCallWithInsufficientChipsDoesNotFold(t *testing.T) {
	g := newGame(t, 5, 100)
	g.CurrBet = 10
	setPorts(g)
	ask := askByIndex(t, g, map[int][]player.Action{
		0: {player.CallAction()},
		1: {player.CallAction()},
	})

	winner := Street(zerolog.Nop(), g, ask, time.Second)
	assert.Nil(t, winner)
	a := g.Players[0]
	assert.True(t, a.InHand)
	assert.Equal(t, 0, a.Chips)
	assert.Equal(t, 5, a.CurrBet)
	assert.True(t, a.Ready)
}

func TestBadCheckFoldsSeat(t *testing.T) {
	g := newGame(t, 100, 100)
	g.CurrBet = 10
	setPorts(g)
	ask := askByIndex(t, g, map[int][]player.Action{
		0: {player.CheckAction()}, // facing a bet, illegal -> folds
		1: {player.CallAction()},
	})

	Street(zerolog.Nop(), g, ask, time.Second)
	assert.False(t, g.Players[0].InHand)
	assert.Equal(t, player.Fold, g.Players[0].LastAction.Kind)
}

func TestNonPositiveRaiseFolds(t *testing.T) {
	g := newGame(t, 100, 100)
	g.CurrBet = 10
	setPorts(g)
	ask := askByIndex(t, g, map[int][]player.Action{
		0: {player.RaiseTo(5)}, // amount <= curr_bet -> illegal, folds
		1: {player.CheckAction()},
	})

	Street(zerolog.Nop(), g, ask, time.Second)
	assert.False(t, g.Players[0].InHand)
}

// TestAllInSeatStaysReadyAcrossStreets grounds spec.md's invariant that a
// seat with chips==0 mid-hand stays in_hand and permanently ready: it must
// never be polled again, and a later street must leave it untouched.
func TestAllInSeatStaysReadyAcrossStreets(t *testing.T) {
	g := newGame(t, 0, 100, 100) // seat A already all-in from a prior street
	g.CurrBet = 0
	setPorts(g)

	calls := map[int]int{}
	countingAsk := func(log zerolog.Logger, bot transport.Bot, st state.ActState, timeout time.Duration) player.Action {
		for i, p := range g.Players {
			if p.Host == bot.Host && p.Port == bot.Port {
				calls[i]++
			}
		}
		return player.CheckAction()
	}

	winner := Street(zerolog.Nop(), g, countingAsk, time.Second)
	assert.Nil(t, winner)
	assert.Zero(t, calls[0], "all-in seat must never be polled")
	assert.True(t, g.Players[0].Ready)
	assert.True(t, g.Players[0].InHand)

	ResetStreet(g)
	calls = map[int]int{}
	winner = Street(zerolog.Nop(), g, countingAsk, time.Second)
	assert.Nil(t, winner)
	assert.Zero(t, calls[0], "all-in seat must stay untouched across a later street too")
	assert.True(t, g.Players[0].Ready)
}

func TestRaiseAllInAdvancesCurrBetAndResetsReady(t *testing.T) {
	g := newGame(t, 15, 100, 100)
	g.CurrBet = 10
	setPorts(g)
	ask := askByIndex(t, g, map[int][]player.Action{
		0: {player.RaiseTo(100)}, // only has 15 chips total, all-in
		1: {player.CallAction()},
		2: {player.CallAction()},
	})

	Street(zerolog.Nop(), g, ask, time.Second)
	assert.Equal(t, 0, g.Players[0].Chips)
	assert.Equal(t, 15, g.Players[0].CurrBet)
	assert.Equal(t, 15, g.CurrBet)
}
