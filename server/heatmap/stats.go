package heatmap

import (
	"math"
	"sort"

	"rangeview/server/hands"
)

type Summary struct {
	Cells int     `json:"cells"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Mean  float64 `json:"mean"`
	// WeightedMean weights each hand class by its number of combos.
	WeightedMean float64 `json:"weighted_mean"`
	Combos       int     `json:"combos"`
}

func comboWeight(c Cell) int {
	h, err := hands.Parse(c.Hand)
	if err != nil {
		return 0
	}
	combos, err := hands.Combos(h)
	if err != nil {
		return 0
	}
	return len(combos)
}

func Summarize(cells []Cell) Summary {
	if len(cells) == 0 {
		return Summary{}
	}
	s := Summary{Cells: len(cells), Min: math.Inf(1), Max: math.Inf(-1)}
	sum, wsum := 0.0, 0.0
	for _, c := range cells {
		s.Min = math.Min(s.Min, c.Equity)
		s.Max = math.Max(s.Max, c.Equity)
		sum += c.Equity
		w := comboWeight(c)
		s.Combos += w
		wsum += c.Equity * float64(w)
	}
	s.Mean = sum / float64(len(cells))
	if s.Combos > 0 {
		s.WeightedMean = wsum / float64(s.Combos)
	}
	return s
}

// TopRange returns the strongest hand classes, by equity, until at least pct
// percent of all 1326 combos are included. Ties keep input order.
func TopRange(cells []Cell, pct float64) []Cell {
	if pct <= 0 || len(cells) == 0 {
		return nil
	}
	sorted := append([]Cell(nil), cells...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Equity > sorted[j].Equity })

	target := pct / 100 * hands.TotalCombos
	var out []Cell
	covered := 0
	for _, c := range sorted {
		if float64(covered) >= target {
			break
		}
		out = append(out, c)
		covered += comboWeight(c)
	}
	return out
}
