package table

import (
	"math"

	"github.com/pkg/errors"
)

var (
	ErrEmptySeatSet  = errors.New("seat count must be at least 1")
	ErrInvalidRadius = errors.New("radii must be positive")
)

// SeatCoordinate is an offset from the table center, in the unit of the radii.
type SeatCoordinate struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Layout spreads seatCount seats evenly on an ellipse. Seat 0 is at the top
// and indices proceed clockwise (y grows downward). A single seat also sits
// at the top, never at the center.
func Layout(seatCount int, radiusX, radiusY float64) ([]SeatCoordinate, error) {
	if seatCount < 1 {
		return nil, errors.Wrapf(ErrEmptySeatSet, "got %d", seatCount)
	}
	if !(radiusX > 0) || !(radiusY > 0) || math.IsInf(radiusX, 0) || math.IsInf(radiusY, 0) {
		return nil, errors.Wrapf(ErrInvalidRadius, "rx=%v ry=%v", radiusX, radiusY)
	}

	out := make([]SeatCoordinate, seatCount)
	for i := range out {
		angle := float64(i)/float64(seatCount)*2*math.Pi - math.Pi/2
		out[i] = SeatCoordinate{
			Index: i,
			X:     math.Cos(angle) * radiusX,
			Y:     math.Sin(angle) * radiusY,
		}
	}
	return out, nil
}
