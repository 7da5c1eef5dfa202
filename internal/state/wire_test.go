package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jyoder/pokerbracket/internal/cards"
	"github.com/jyoder/pokerbracket/internal/player"
)

// TestBuildEndStateRevealsReceiverHandEvenWhenFolded grounds spec.md's
// exception: a folded seat's own copy of END_STATE must still show its
// hand, even though every other recipient sees [] for that seat.
func TestBuildEndStateRevealsReceiverHandEvenWhenFolded(t *testing.T) {
	folded := &player.Player{
		Name:   "A",
		InHand: false,
		Hand:   []cards.Card{{Suit: cards.Hearts, Rank: cards.Two}, {Suit: cards.Clubs, Rank: cards.Seven}},
	}
	active := &player.Player{
		Name:   "B",
		InHand: true,
		Hand:   []cards.Card{{Suit: cards.Spades, Rank: cards.Ace}, {Suit: cards.Diamonds, Rank: cards.King}},
	}
	g := &Game{Players: []*player.Player{folded, active}, Deck: cards.New(1, nil)}

	toFolded := g.BuildEndState(false, map[string]bool{}, "A")
	assert.Equal(t, []string{"2H", "7C"}, toFolded.Players["A"].Hand, "receiver sees its own folded hand")
	assert.Equal(t, []string{"AS", "KD"}, toFolded.Players["B"].Hand, "still-in-hand seat is visible to everyone")

	toActive := g.BuildEndState(false, map[string]bool{}, "B")
	assert.Equal(t, []string{}, toActive.Players["A"].Hand, "a different recipient does not see A's folded hand")
}
