package eval

import "github.com/jyoder/pokerbracket/internal/cards"

// forEachCombo invokes fn once per k-element subset of cards, in
// combination order. fn must not retain the slice passed to it.
func forEachCombo(hand []cards.Card, k int, fn func(combo []cards.Card)) {
	n := len(hand)
	if k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	combo := make([]cards.Card, k)

	for {
		for i, pos := range idx {
			combo[i] = hand[pos]
		}
		fn(combo)

		i := k - 1
		for i >= 0 && idx[i] == i+n-k {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
