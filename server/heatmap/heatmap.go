package heatmap

import (
	"github.com/pkg/errors"

	"rangeview/server/hands"
)

var ErrLengthMismatch = errors.New("hands and equities differ in length")

// Pair is one (hand, equity) unit as delivered by the equity service.
type Pair struct {
	Hand   string  `json:"hand"`
	Equity float64 `json:"equity"`
}

// Cell is one grid entry. Equity is passed through untouched; whether it is
// a fraction or a percentage depends on the source.
type Cell struct {
	RankX  hands.Rank `json:"rankX"`
	RankY  hands.Rank `json:"rankY"`
	Hand   string     `json:"hand"`
	Equity float64    `json:"equity"`
}

// Zip joins the two parallel wire arrays index-wise.
func Zip(codes []string, equities []float64) ([]Pair, error) {
	if len(codes) != len(equities) {
		return nil, errors.Wrapf(ErrLengthMismatch, "%d hands, %d equities", len(codes), len(equities))
	}
	out := make([]Pair, len(codes))
	for i := range codes {
		out[i] = Pair{Hand: codes[i], Equity: equities[i]}
	}
	return out, nil
}

// Build zips and places the wire arrays. Output order follows input order.
func Build(codes []string, equities []float64) ([]Cell, error) {
	pairs, err := Zip(codes, equities)
	if err != nil {
		return nil, err
	}
	return BuildPairs(pairs)
}

// BuildPairs maps each pair to one cell. Duplicates are kept; no partial
// result is returned on error.
func BuildPairs(pairs []Pair) ([]Cell, error) {
	out := make([]Cell, 0, len(pairs))
	for i, p := range pairs {
		h, err := hands.Parse(p.Hand)
		if err != nil {
			return nil, errors.Wrapf(err, "entry %d", i)
		}
		out = append(out, Cell{RankX: h.X, RankY: h.Y, Hand: p.Hand, Equity: p.Equity})
	}
	return out, nil
}
