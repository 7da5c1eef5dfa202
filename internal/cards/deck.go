package cards

import "math/rand"

// Deck is a multi-deck shoe: a draw pile, a discard pile and the community
// cards dealt face-up this hand. The invariant
// |draw| + |discard| + |community| == 52*NumDecks holds after every
// operation.
type Deck struct {
	draw      []Card
	discard   []Card
	community []Card
	NumDecks  int
	rng       *rand.Rand
}

// New builds a fresh, shuffled shoe of NumDecks standard 52-card decks using
// rng as the source of randomness (pass a seeded *rand.Rand for
// reproducible tests).
func New(numDecks int, rng *rand.Rand) *Deck {
	if numDecks < 1 {
		numDecks = 1
	}
	d := &Deck{NumDecks: numDecks, rng: rng}
	d.Reset()
	return d
}

// Reset regenerates a fresh, shuffled shoe, discarding any in-progress hand
// state (draw/discard/community are all rebuilt from scratch).
func (d *Deck) Reset() {
	d.draw = make([]Card, 0, 52*d.NumDecks)
	for n := 0; n < d.NumDecks; n++ {
		for suit := Hearts; suit <= Spades; suit++ {
			for rank := Two; rank <= Ace; rank++ {
				d.draw = append(d.draw, NewCard(rank, suit))
			}
		}
	}
	d.discard = nil
	d.community = nil
	d.Shuffle()
}

// Shuffle moves the discard pile back into the draw pile and applies a
// uniform random permutation (Fisher-Yates).
func (d *Deck) Shuffle() {
	d.draw = append(d.draw, d.discard...)
	d.discard = nil

	for i := len(d.draw) - 1; i > 0; i-- {
		j := d.intn(i + 1)
		d.draw[i], d.draw[j] = d.draw[j], d.draw[i]
	}
}

func (d *Deck) intn(n int) int {
	if d.rng != nil {
		return d.rng.Intn(n)
	}
	return rand.Intn(n)
}

// Deal pops n cards from the draw pile into the discard pile and returns
// them. If fewer than n cards remain, it deals as many as are available.
func (d *Deck) Deal(n int) []Card {
	n = min(n, len(d.draw))
	dealt := append([]Card(nil), d.draw[:n]...)
	d.discard = append(d.discard, dealt...)
	d.draw = d.draw[n:]
	return dealt
}

// Burn pops n cards from the draw pile into the discard pile without
// returning them.
func (d *Deck) Burn(n int) {
	d.Deal(n)
}

// DealToTable pops n cards from the draw pile into the community cards and
// returns the updated community card list.
func (d *Deck) DealToTable(n int) []Card {
	n = min(n, len(d.draw))
	dealt := d.draw[:n]
	d.community = append(d.community, dealt...)
	d.draw = d.draw[n:]
	return d.community
}

// Community returns the current community cards.
func (d *Deck) Community() []Card {
	return d.community
}

// DrawRemaining returns the number of cards left in the draw pile.
func (d *Deck) DrawRemaining() int {
	return len(d.draw)
}

// total returns |draw| + |discard| + |community|, which must always equal
// 52*NumDecks.
func (d *Deck) total() int {
	return len(d.draw) + len(d.discard) + len(d.community)
}

// Verify checks the total-card invariant and ensures the draw pile is large
// enough to deal a fresh hand to the given number of players (2 hole cards
// each, 5 community cards, plus a 3-burn-card margin). If either check
// fails, it resets and reshuffles the shoe and reports reset=true so the
// round driver can signal bots to resync any counting models.
func (d *Deck) Verify(players int) (reset bool) {
	minDraw := 2*players + 5 + 3
	if d.total() != 52*d.NumDecks || d.DrawRemaining() < minDraw {
		d.Reset()
		return true
	}
	return false
}
