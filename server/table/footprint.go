package table

// Footprint describes the drawing area of a table. Radii are where seats go;
// the felt is the visible oval inside them.
type Footprint struct {
	Width      float64 `json:"width" yaml:"width"`
	Height     float64 `json:"height" yaml:"height"`
	RadiusX    float64 `json:"radius_x" yaml:"radiusX"`
	RadiusY    float64 `json:"radius_y" yaml:"radiusY"`
	FeltWidth  float64 `json:"felt_width" yaml:"feltWidth"`
	FeltHeight float64 `json:"felt_height" yaml:"feltHeight"`
}

var DefaultFootprint = Footprint{
	Width:      800,
	Height:     600,
	RadiusX:    350,
	RadiusY:    250,
	FeltWidth:  500,
	FeltHeight: 300,
}

// Layout lays out n seats on this footprint's radii.
func (f Footprint) Layout(n int) ([]SeatCoordinate, error) {
	return Layout(n, f.RadiusX, f.RadiusY)
}

// Absolute converts a center offset into coordinates from the footprint's top-left corner.
func (f Footprint) Absolute(s SeatCoordinate) (x, y float64) {
	return f.Width/2 + s.X, f.Height/2 + s.Y
}
