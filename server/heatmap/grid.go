package heatmap

import "rangeview/server/hands"

const Size = 13

// Matrix places cells by (rankY, rankX). A later cell for the same position
// overwrites an earlier one; empty positions stay nil.
func Matrix(cells []Cell) [Size][Size]*Cell {
	var m [Size][Size]*Cell
	for i := range cells {
		x, y := cells[i].RankX.Index(), cells[i].RankY.Index()
		if x < 0 || y < 0 {
			continue
		}
		m[y][x] = &cells[i]
	}
	return m
}

// Coverage reports grid positions without a cell and positions holding more than one.
type Coverage struct {
	Missing    []string `json:"missing"`
	Duplicates []string `json:"duplicates"`
}

func (c Coverage) Complete() bool { return len(c.Missing) == 0 && len(c.Duplicates) == 0 }

func CheckCoverage(cells []Cell) Coverage {
	var counts [Size][Size]int
	for _, c := range cells {
		x, y := c.RankX.Index(), c.RankY.Index()
		if x < 0 || y < 0 {
			continue
		}
		counts[y][x]++
	}
	var cov Coverage
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			label := hands.CodeAt(x, y)
			switch {
			case counts[y][x] == 0:
				cov.Missing = append(cov.Missing, label)
			case counts[y][x] > 1:
				cov.Duplicates = append(cov.Duplicates, label)
			}
		}
	}
	return cov
}
