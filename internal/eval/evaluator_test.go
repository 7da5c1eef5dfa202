package eval

import (
	"math/bits"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jyoder/pokerbracket/internal/cards"
)

func mustCards(t *testing.T, shorts ...string) []cards.Card {
	t.Helper()
	out := make([]cards.Card, len(shorts))
	for i, s := range shorts {
		c, err := cards.FromShort(s)
		require.NoError(t, err)
		out[i] = c
	}
	return out
}

func TestWheelIsLowStraight(t *testing.T) {
	wheel, _ := Evaluate(mustCards(t, "AS", "2D", "3C", "4H", "5S"))
	assert.Equal(t, Straight, wheel.Category)
	assert.Equal(t, []int{int(cards.Five)}, wheel.Tiebreakers)

	sixHigh, _ := Evaluate(mustCards(t, "2S", "3D", "4C", "5H", "6S"))
	assert.Equal(t, Straight, sixHigh.Category)
	assert.True(t, Less(wheel, sixHigh))
}

func TestCategoryOrdering(t *testing.T) {
	quad, _ := Evaluate(mustCards(t, "7H", "7D", "7C", "7S", "2H"))
	full, _ := Evaluate(mustCards(t, "7H", "7D", "7C", "2S", "2H"))
	flush, _ := Evaluate(mustCards(t, "2H", "5H", "9H", "JH", "KH"))
	straight, _ := Evaluate(mustCards(t, "4H", "5D", "6C", "7S", "8H"))

	assert.True(t, Less(full, quad))
	assert.True(t, Less(flush, full))
	assert.True(t, Less(straight, flush))
}

func TestSevenCardTotalityAndPermutationInvariance(t *testing.T) {
	hand := mustCards(t, "2H", "7D", "3H", "8S", "JD", "QC", "AH")
	best, _ := Evaluate(hand)

	// The 7-card best score must be >= every 5-card subset's score.
	forEachCombo(hand, 5, func(combo []cards.Card) {
		score := categorizeFive(combo)
		assert.GreaterOrEqual(t, Compare(best, score), 0)
	})

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := append([]cards.Card(nil), hand...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got, _ := Evaluate(shuffled)
		assert.Equal(t, best, got)
	}
}

func TestOrderConsistencyTransitivity(t *testing.T) {
	a, _ := Evaluate(mustCards(t, "AH", "AD", "AC", "AS", "2H"))
	b, _ := Evaluate(mustCards(t, "KH", "KD", "KC", "KS", "2H"))
	c, _ := Evaluate(mustCards(t, "QH", "QD", "QC", "2S", "2H"))

	assert.True(t, Less(b, a))
	assert.True(t, Less(c, b))
	assert.True(t, Less(c, a))
}

func TestTwoPairKickerOrdering(t *testing.T) {
	a, _ := Evaluate(mustCards(t, "2H", "2D", "7D", "7C", "AH"))
	assert.Equal(t, TwoPair, a.Category)
	assert.Equal(t, []int{int(cards.Seven), int(cards.Two), int(cards.Ace)}, a.Tiebreakers)
}

func TestStraightFlushBeatsFourOfAKind(t *testing.T) {
	sf, _ := Evaluate(mustCards(t, "5H", "6H", "7H", "8H", "9H"))
	quad, _ := Evaluate(mustCards(t, "AH", "AD", "AC", "AS", "2H"))
	assert.True(t, Less(quad, sf))
}

// bruteForceStraightHigh independently re-derives the high card of the
// straight present in a rank-presence mask, without the bit-cascade trick
// straightHighMask uses, by checking each of the nine consecutive 5-rank
// windows plus the wheel directly.
func bruteForceStraightHigh(mask uint16) int {
	if mask&wheelMask == wheelMask {
		return int(cards.Five)
	}
	for low := 0; low <= 8; low++ {
		window := uint16(0)
		for r := low; r < low+5; r++ {
			window |= 1 << uint(r)
		}
		if mask&window == window {
			return low + 4
		}
	}
	return -1
}

// TestStraightHighMaskAgreesWithBruteForce exhaustively checks every one of
// the C(13,5)=1287 five-distinct-rank masks: the bit-cascade straight check
// must agree with an independently-derived brute-force check on every one.
func TestStraightHighMaskAgreesWithBruteForce(t *testing.T) {
	checked := 0
	for mask := 0; mask < 1<<13; mask++ {
		if bits.OnesCount16(uint16(mask)) != 5 {
			continue
		}
		checked++
		assert.Equal(t, bruteForceStraightHigh(uint16(mask)), straightHighMask(uint16(mask)), "mask %013b", mask)
	}
	require.Equal(t, 1287, checked)
}
