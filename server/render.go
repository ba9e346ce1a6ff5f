package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/pterm/pterm"

	"rangeview/server/hands"
	"rangeview/server/heatmap"
	"rangeview/server/table"
)

// heatColor maps an equity in percent onto a red (weak) to green (strong) ramp.
func heatColor(pct float64) pterm.RGB {
	t := math.Max(0, math.Min(1, (pct-30)/55))
	return pterm.NewRGB(uint8(220*(1-t)+30*t), uint8(60*(1-t)+180*t), 60)
}

// renderHeatmap draws the 13x13 grid with hand labels, ace row and column first.
func renderHeatmap(cells []heatmap.Cell, color bool, label heatmap.Formatter) (string, error) {
	if label == nil {
		label = heatmap.LabelHand
	}
	scale := heatmap.DetectScale(cells)
	m := heatmap.Matrix(cells)

	header := []string{""}
	for _, r := range hands.Ranks {
		header = append(header, r.String())
	}
	data := pterm.TableData{header}
	for y, r := range hands.Ranks {
		row := []string{r.String()}
		for x := range hands.Ranks {
			c := m[y][x]
			if c == nil {
				row = append(row, "  -  ")
				continue
			}
			text := fmt.Sprintf("%-3s %4.1f", label(*c), heatmap.AsPercent(c.Equity, scale))
			if color {
				text = heatColor(heatmap.AsPercent(c.Equity, scale)).Sprint(text)
			}
			row = append(row, text)
		}
		data = append(data, row)
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

// renderSummary lists the range statistics and the strongest 10% of combos.
func renderSummary(cells []heatmap.Cell) string {
	scale := heatmap.DetectScale(cells)
	s := heatmap.Summarize(cells)
	var b strings.Builder
	fmt.Fprintf(&b, "cells=%d combos=%d min=%.1f%% max=%.1f%% mean=%.1f%% weighted=%.1f%%\n",
		s.Cells, s.Combos,
		heatmap.AsPercent(s.Min, scale), heatmap.AsPercent(s.Max, scale),
		heatmap.AsPercent(s.Mean, scale), heatmap.AsPercent(s.WeightedMean, scale))

	top := heatmap.TopRange(cells, 10)
	tip := heatmap.TooltipEquity(scale)
	names := make([]string, len(top))
	for i, c := range top {
		names[i] = tip(c)
	}
	fmt.Fprintf(&b, "top 10%%: %s", strings.Join(names, ", "))
	if cov := heatmap.CheckCoverage(cells); !cov.Complete() {
		fmt.Fprintf(&b, "\nmissing=%v duplicates=%v", cov.Missing, cov.Duplicates)
	}
	return b.String()
}

// renderHandCombos lists the holdings of a hero hand class; "" when hand is
// concrete cards or not a hand code.
func renderHandCombos(hand string) string {
	combos := handCombos(hand)
	if len(combos) == 0 {
		return ""
	}
	return fmt.Sprintf("%s (%d combos): %s", hand, len(combos), strings.Join(combos, " "))
}

// renderTable sketches the felt and seat numbers on a character canvas.
func renderTable(views []table.SeatView, fp table.Footprint, cols, rows int) (string, error) {
	canvas := make([][]rune, rows)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", cols))
	}
	plot := func(left, top float64, ch rune) {
		c := int(math.Round(left / fp.Width * float64(cols-1)))
		r := int(math.Round(top / fp.Height * float64(rows-1)))
		if r >= 0 && r < rows && c >= 0 && c < cols {
			canvas[r][c] = ch
		}
	}
	for deg := 0; deg < 360; deg += 3 {
		a := float64(deg) * math.Pi / 180
		plot(fp.Width/2+math.Cos(a)*fp.FeltWidth/2, fp.Height/2+math.Sin(a)*fp.FeltHeight/2, '.')
	}
	for _, v := range views {
		plot(v.Left, v.Top, rune(seatGlyph(v.Seat.Index)))
	}
	lines := make([]string, rows)
	for i, row := range canvas {
		lines[i] = string(row)
	}
	sketch := pterm.DefaultBox.WithTitle("Table").Sprint(strings.Join(lines, "\n"))

	data := pterm.TableData{{"seat", "player", "pos", "x", "y", "chips", "bet"}}
	for _, v := range views {
		data = append(data, []string{
			string(seatGlyph(v.Seat.Index)), v.Player.Username, string(v.Position),
			fmt.Sprintf("%.1f", v.Seat.X), fmt.Sprintf("%.1f", v.Seat.Y),
			fmt.Sprint(v.Player.Chips), fmt.Sprint(v.Player.Bet),
		})
	}
	list, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", err
	}
	return sketch + "\n" + list, nil
}

// seatGlyph is 0-9 then A-Z.
func seatGlyph(i int) byte {
	const glyphs = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	if i < 0 || i >= len(glyphs) {
		return '*'
	}
	return glyphs[i]
}
