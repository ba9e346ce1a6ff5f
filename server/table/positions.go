package table

type Position string

const (
	SmallBlind Position = "SB"
	BigBlind   Position = "BB"
	UTG        Position = "UTG"
	MP         Position = "MP"
	CO         Position = "CO"
	Button     Position = "BTN"
)

// Positions labels n seats given the button seat. Heads-up, the button posts
// the small blind. Seats left of the big blind run UTG, MP..., CO.
func Positions(n, button int) []Position {
	if n < 1 {
		return nil
	}
	button = ((button % n) + n) % n
	out := make([]Position, n)
	at := func(k int) int { return (button + k) % n }

	out[button] = Button
	switch n {
	case 1:
		return out
	case 2:
		out[button] = SmallBlind
		out[at(1)] = BigBlind
		return out
	}
	out[at(1)] = SmallBlind
	out[at(2)] = BigBlind

	rest := n - 3
	for k := 0; k < rest; k++ {
		p := MP
		switch {
		case k == 0:
			p = UTG
		case k == rest-1:
			p = CO
		}
		out[at(3+k)] = p
	}
	return out
}
