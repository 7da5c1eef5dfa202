package state

import (
	"github.com/jyoder/pokerbracket/internal/cards"
)

// PlayerInfo is one seat's entry in STATE.players.
type PlayerInfo struct {
	Chips      int    `json:"chips"`
	LastAction string `json:"last_action"`
	Position   int    `json:"position"`
}

// PlayerEndInfo is one seat's entry in END_STATE.players.
type PlayerEndInfo struct {
	Chips      int      `json:"chips"`
	LastAction string   `json:"last_action"`
	Position   int      `json:"position"`
	Winner     bool     `json:"winner"`
	Hand       []string `json:"hand"`
}

// ActState is the STATE object sent to the seat whose turn it is (spec §6).
type ActState struct {
	Board         []cards.Card          `json:"board"`
	NumDecks      int                   `json:"num_decks"`
	Pot           int                   `json:"pot"`
	CurrBet       int                   `json:"curr_bet"`
	SmallBlind    int                   `json:"small_blind"`
	BigBlind      int                   `json:"big_blind"`
	Hand          []cards.Card          `json:"hand"`
	PlayerCurrBet int                   `json:"player_curr_bet"`
	Players       map[string]PlayerInfo `json:"players"`
}

// EndState is the END_STATE object broadcast after a hand concludes.
type EndState struct {
	Board      []cards.Card             `json:"board"`
	NumDecks   int                      `json:"num_decks"`
	Pot        int                      `json:"pot"`
	CurrBet    int                      `json:"curr_bet"`
	SmallBlind int                      `json:"small_blind"`
	BigBlind   int                      `json:"big_blind"`
	IsEndState bool                     `json:"is_end_state"`
	ResetDeck  bool                     `json:"reset_deck"`
	Players    map[string]PlayerEndInfo `json:"players"`
}

// BuildActState builds the STATE object for the seat at position seatIdx.
func (g *Game) BuildActState(seatIdx int) ActState {
	seat := g.Players[seatIdx]
	players := make(map[string]PlayerInfo, len(g.Players))
	for i, p := range g.Players {
		players[p.Name] = PlayerInfo{
			Chips:      p.Chips,
			LastAction: p.LastAction.Kind.String(),
			Position:   i,
		}
	}
	return ActState{
		Board:         g.Deck.Community(),
		NumDecks:      g.Deck.NumDecks,
		Pot:           g.Pot,
		CurrBet:       g.CurrBet,
		SmallBlind:    g.SmallBlind,
		BigBlind:      g.BigBlind,
		Hand:          seat.Hand,
		PlayerCurrBet: seat.CurrBet,
		Players:       players,
	}
}

// BuildEndState builds the END_STATE object sent to the seat named
// receiver after a hand concludes. winners identifies the seats (by name)
// that were awarded part of the pot. Every seat's hand is revealed as [] in
// this copy unless that seat is still in the hand or is the receiver
// itself, who always sees their own hole cards back.
func (g *Game) BuildEndState(resetDeck bool, winners map[string]bool, receiver string) EndState {
	players := make(map[string]PlayerEndInfo, len(g.Players))
	for i, p := range g.Players {
		hand := []string{}
		if p.InHand || p.Name == receiver {
			for _, c := range p.Hand {
				hand = append(hand, c.Short())
			}
		}
		players[p.Name] = PlayerEndInfo{
			Chips:      p.Chips,
			LastAction: p.LastAction.Kind.String(),
			Position:   i,
			Winner:     winners[p.Name],
			Hand:       hand,
		}
	}
	return EndState{
		Board:      g.Deck.Community(),
		NumDecks:   g.Deck.NumDecks,
		Pot:        g.Pot,
		CurrBet:    g.CurrBet,
		SmallBlind: g.SmallBlind,
		BigBlind:   g.BigBlind,
		IsEndState: true,
		ResetDeck:  resetDeck,
		Players:    players,
	}
}
