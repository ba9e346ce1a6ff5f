package heatmap

import (
	"fmt"
)

// Formatter turns a cell into display text for a chart label or tooltip.
type Formatter func(Cell) string

// Scale says how equities of a grid are expressed.
type Scale string

const (
	Fraction Scale = "fraction" // 0..1
	Percent  Scale = "percent"  // 0..100
)

// DetectScale treats any equity above 1 as a sign of a percentage source.
func DetectScale(cells []Cell) Scale {
	for _, c := range cells {
		if c.Equity > 1 {
			return Percent
		}
	}
	return Fraction
}

func LabelHand(c Cell) string { return c.Hand }

// TooltipEquity renders "AKs: 67.0%" regardless of the source scale.
func TooltipEquity(scale Scale) Formatter {
	return func(c Cell) string {
		return fmt.Sprintf("%s: %.1f%%", c.Hand, AsPercent(c.Equity, scale))
	}
}

func AsPercent(equity float64, scale Scale) float64 {
	if scale == Percent {
		return equity
	}
	return equity * 100
}
