package hands

import (
	"strings"

	poker "github.com/paulhankin/poker"
)

// TotalCombos is the number of distinct two-card holdings in a 52-card deck.
const TotalCombos = 1326

var suits = [...]poker.Suit{poker.Club, poker.Diamond, poker.Heart, poker.Spade}

// Library ranks run 1..13 with the ace as 1.
func toPH(r Rank) poker.Rank {
	v := r.Value()
	if v == 14 {
		return poker.Rank(1)
	}
	return poker.Rank(v)
}

// ComboCount is 6 for pairs, 4 for suited and 12 for offsuit hands.
func (h Hand) ComboCount() int {
	switch {
	case h.Pair():
		return 6
	case h.Suited:
		return 4
	default:
		return 12
	}
}

// Combos expands a hand class into its concrete holdings.
func Combos(h Hand) ([][2]poker.Card, error) {
	first, second := h.Ranks()
	out := make([][2]poker.Card, 0, h.ComboCount())
	for i, s1 := range suits {
		for j, s2 := range suits {
			switch {
			case h.Pair() && j <= i:
				continue
			case h.Suited && i != j:
				continue
			case !h.Pair() && !h.Suited && i == j:
				continue
			}
			a, err := poker.MakeCard(s1, toPH(first))
			if err != nil {
				return nil, err
			}
			b, err := poker.MakeCard(s2, toPH(second))
			if err != nil {
				return nil, err
			}
			out = append(out, [2]poker.Card{a, b})
		}
	}
	return out, nil
}

// ComboLabels names each holding of h as rank+suit pairs, e.g. "AcKc".
func ComboLabels(h Hand) ([]string, error) {
	combos, err := Combos(h)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(combos))
	for i, c := range combos {
		out[i] = cardLabel(c[0]) + cardLabel(c[1])
	}
	return out, nil
}

func cardLabel(c poker.Card) string {
	return c.Rank().String() + strings.ToLower(c.Suit().String())
}
