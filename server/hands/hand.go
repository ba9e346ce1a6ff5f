package hands

import (
	"github.com/pkg/errors"
)

// Hand is a parsed starting-hand code placed on the 13x13 grid.
//
// Pairs sit on the diagonal (X == Y). Suited codes keep their character
// order (X = first, Y = second) and offsuit codes swap it, so the two
// variants of one rank pair land on mirror-image cells.
type Hand struct {
	Code   string
	X      Rank
	Y      Rank
	Suited bool
}

func (h Hand) Pair() bool { return h.X == h.Y }

// Ranks returns the two rank characters in the order they appear in the code.
func (h Hand) Ranks() (first, second Rank) {
	if h.Suited || h.Pair() {
		return h.X, h.Y
	}
	return h.Y, h.X
}

// Parse parses "XX", "XYs" or "XYo". A pair with a suit marker ("AAs",
// "AAo") is refused as malformed rather than read as a pair. Rank order
// within a code is not checked.
func Parse(code string) (Hand, error) {
	if len(code) != 2 && len(code) != 3 {
		return Hand{}, errors.Wrapf(ErrMalformedHandCode, "%q: want 2 or 3 characters", code)
	}
	first, err := ParseRank(code[0])
	if err != nil {
		return Hand{}, errors.Wrapf(err, "hand %q", code)
	}
	second, err := ParseRank(code[1])
	if err != nil {
		return Hand{}, errors.Wrapf(err, "hand %q", code)
	}

	if len(code) == 2 {
		if first != second {
			return Hand{}, errors.Wrapf(ErrMalformedHandCode, "%q: two-character code must be a pair", code)
		}
		return Hand{Code: code, X: first, Y: second}, nil
	}

	if first == second {
		return Hand{}, errors.Wrapf(ErrMalformedHandCode, "%q: pairs take no suit marker", code)
	}
	switch code[2] {
	case 's':
		return Hand{Code: code, X: first, Y: second, Suited: true}, nil
	case 'o':
		return Hand{Code: code, X: second, Y: first}, nil
	default:
		return Hand{}, errors.Wrapf(ErrMalformedHandCode, "%q: suit marker must be 's' or 'o'", code)
	}
}

// All returns the 169 canonical codes in row-major grid order (row = Y, column = X).
func All() []string {
	out := make([]string, 0, len(Ranks)*len(Ranks))
	for y := range Ranks {
		for x := range Ranks {
			out = append(out, CodeAt(x, y))
		}
	}
	return out
}

// CodeAt names the grid cell at column x, row y: pairs on the diagonal,
// suited above it, offsuit below.
func CodeAt(x, y int) string {
	rx, ry := byte(Ranks[x]), byte(Ranks[y])
	switch {
	case x == y:
		return string([]byte{rx, ry})
	case x < y:
		return string([]byte{rx, ry, 's'})
	default:
		return string([]byte{ry, rx, 'o'})
	}
}
