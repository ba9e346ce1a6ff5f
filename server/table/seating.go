package table

// Player is what a seat displays.
type Player struct {
	Username string `json:"username"`
	Chips    int    `json:"chips"`
	Bet      int    `json:"bet"`
}

type SeatView struct {
	Player   Player         `json:"player"`
	Seat     SeatCoordinate `json:"seat"`
	Left     float64        `json:"left"`
	Top      float64        `json:"top"`
	Position Position       `json:"position"`
}

// Seat places players in order around the footprint; the i-th player gets seat i.
func Seat(players []Player, f Footprint, button int) ([]SeatView, error) {
	coords, err := f.Layout(len(players))
	if err != nil {
		return nil, err
	}
	positions := Positions(len(players), button)
	out := make([]SeatView, len(players))
	for i, p := range players {
		left, top := f.Absolute(coords[i])
		out[i] = SeatView{Player: p, Seat: coords[i], Left: left, Top: top, Position: positions[i]}
	}
	return out, nil
}
