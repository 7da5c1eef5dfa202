package eval

import (
	"math/bits"
	"sort"

	"github.com/jyoder/pokerbracket/internal/cards"
)

// Evaluate ranks the best 5-card hand obtainable from 5 to 7 cards. It
// enumerates every 5-card subset and keeps the maximum under Compare,
// returning both the score and the winning 5-card subset (for display only;
// the subset is not otherwise semantically observable).
func Evaluate(hand []cards.Card) (Score, []cards.Card) {
	var best Score
	var bestHand []cards.Card
	first := true

	forEachCombo(hand, 5, func(combo []cards.Card) {
		score := categorizeFive(combo)
		if first || Compare(score, best) > 0 {
			best = score
			bestHand = append([]cards.Card(nil), combo...)
			first = false
		}
	})

	return best, bestHand
}

// categorizeFive scores exactly 5 cards.
func categorizeFive(combo []cards.Card) Score {
	var counts [13]int
	var mask uint16
	var suitCounts [4]int

	for _, c := range combo {
		counts[c.Rank]++
		mask |= 1 << uint(c.Rank)
		suitCounts[c.Suit]++
	}

	flush := false
	for _, n := range suitCounts {
		if n == 5 {
			flush = true
			break
		}
	}

	straightHigh := straightHighMask(mask)

	if flush && straightHigh >= 0 {
		return Score{Category: StraightFlush, Tiebreakers: []int{straightHigh}}
	}

	groups := groupByCount(counts)

	switch {
	case groups[0].count == 4:
		kicker := groups[1].rank
		return Score{Category: FourOfAKind, Tiebreakers: []int{groups[0].rank, kicker}}
	case groups[0].count == 3 && groups[1].count == 2:
		return Score{Category: FullHouse, Tiebreakers: []int{groups[0].rank, groups[1].rank}}
	case flush:
		return Score{Category: Flush, Tiebreakers: descendingRanks(combo)}
	case straightHigh >= 0:
		return Score{Category: Straight, Tiebreakers: []int{straightHigh}}
	case groups[0].count == 3:
		return Score{Category: ThreeOfAKind, Tiebreakers: []int{groups[0].rank, groups[1].rank, groups[2].rank}}
	case groups[0].count == 2 && groups[1].count == 2:
		hi, lo := groups[0].rank, groups[1].rank
		if lo > hi {
			hi, lo = lo, hi
		}
		return Score{Category: TwoPair, Tiebreakers: []int{hi, lo, groups[2].rank}}
	case groups[0].count == 2:
		return Score{Category: Pair, Tiebreakers: []int{groups[0].rank, groups[1].rank, groups[2].rank, groups[3].rank}}
	default:
		return Score{Category: HighCard, Tiebreakers: descendingRanks(combo)}
	}
}

type rankGroup struct {
	rank  int
	count int
}

// groupByCount returns the ranks present (counts>0), sorted by
// (count desc, rank desc) and padded with zero-count entries so callers can
// always index groups[0..3] safely.
func groupByCount(counts [13]int) []rankGroup {
	groups := make([]rankGroup, 0, 13)
	for rank := 12; rank >= 0; rank-- {
		if counts[rank] > 0 {
			groups = append(groups, rankGroup{rank: rank, count: counts[rank]})
		}
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].count > groups[j].count
	})
	for len(groups) < 4 {
		groups = append(groups, rankGroup{})
	}
	return groups
}

func descendingRanks(combo []cards.Card) []int {
	ranks := make([]int, len(combo))
	for i, c := range combo {
		ranks[i] = int(c.Rank)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))
	return ranks
}

// wheelMask is the rank-presence mask for the A-2-3-4-5 straight (ranks
// Two, Three, Four, Five and Ace).
const wheelMask = 1<<uint(cards.Two) | 1<<uint(cards.Three) | 1<<uint(cards.Four) | 1<<uint(cards.Five) | 1<<uint(cards.Ace)

// straightHighMask returns the high-card rank of the straight present in a
// 13-bit rank-presence mask, or -1 if the mask contains no straight. The
// A-2-3-4-5 wheel is treated as high=Five. mask must have no bits above
// position 12 (cards.Ace).
func straightHighMask(mask uint16) int {
	if mask&wheelMask == wheelMask {
		return int(cards.Five)
	}

	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq == 0 {
		return -1
	}
	low := bits.Len16(seq) - 1
	return low + 4
}
