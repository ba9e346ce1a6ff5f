package hands

import (
	"strings"

	"github.com/pkg/errors"
)

// Rank is one symbol of the starting-hand alphabet, stored as its ASCII character.
type Rank byte

// alphabet lists the ranks in grid order: index 0 is the ace row/column.
const alphabet = "AKQJT98765432"

// Ranks holds the 13 ranks in grid order (A first, 2 last).
var Ranks = func() [13]Rank {
	var out [13]Rank
	for i := 0; i < len(alphabet); i++ {
		out[i] = Rank(alphabet[i])
	}
	return out
}()

var (
	ErrMalformedHandCode = errors.New("malformed hand code")
	ErrUnknownRank       = errors.New("unknown rank")
)

func ParseRank(c byte) (Rank, error) {
	if strings.IndexByte(alphabet, c) < 0 {
		return 0, errors.Wrapf(ErrUnknownRank, "%q", c)
	}
	return Rank(c), nil
}

// Index is the grid position of r, or -1 when r is not a rank symbol.
func (r Rank) Index() int { return strings.IndexByte(alphabet, byte(r)) }

func (r Rank) Valid() bool { return r.Index() >= 0 }

func (r Rank) String() string { return string(rune(r)) }

// Value maps the rank to 2..14 with the ace high.
func (r Rank) Value() int {
	i := r.Index()
	if i < 0 {
		return 0
	}
	return 14 - i
}

func (r Rank) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, errors.Wrapf(ErrUnknownRank, "%q", byte(r))
	}
	return []byte{byte(r)}, nil
}

func (r *Rank) UnmarshalText(b []byte) error {
	if len(b) != 1 {
		return errors.Wrapf(ErrUnknownRank, "%q", string(b))
	}
	v, err := ParseRank(b[0])
	if err != nil {
		return err
	}
	*r = v
	return nil
}
