package pdftext

import (
	"math"
	"sort"
	"strings"

	"github.com/bankfusion/bankfusion/internal/extractor"
)

// Glyph is one positioned text run on a page.
type Glyph struct {
	X, Y     float64
	W        float64
	FontSize float64
	S        string
}

const (
	// A horizontal gap wider than cellGap font sizes starts a new cell;
	// wider than wordGap it inserts a space.
	cellGap = 1.5
	wordGap = 0.2

	// minTableCells is the fewest cells a row needs to count as tabular.
	minTableCells = 3
	// maxWrapLines is the most short lines folded into one table row.
	maxWrapLines = 3
	defaultFont  = 10.0
)

type cell struct {
	text   string
	x0, x1 float64
}

func (c cell) center() float64 { return (c.x0 + c.x1) / 2 }

type line struct {
	y     float64
	cells []cell
	wrap  bool // continuation of the tabular row above
}

func (l line) text() string {
	parts := make([]string, len(l.cells))
	for i, c := range l.cells {
		parts[i] = c.text
	}
	return strings.Join(parts, " ")
}

// Layout orders glyph rows top to bottom, splits each row into cells on
// wide horizontal gaps, and turns runs of at least two tabular rows into
// tables. Up to maxWrapLines short lines between two tabular rows are
// wrapped cell text and fold into the row above. Within a table, cells
// are aligned to the columns of the run's widest row so blank cells stay
// blank.
func Layout(rows [][]Glyph) extractor.Page {
	lines := make([]line, 0, len(rows))
	for _, r := range rows {
		cells := splitCells(r)
		if len(cells) == 0 {
			continue
		}
		lines = append(lines, line{y: r[0].Y, cells: cells})
	}
	// PDF y grows upwards.
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].y > lines[j].y })

	var page extractor.Page
	var text []string
	var run, pending []line
	flush := func() {
		if tabularRows(run) >= 2 {
			page.Tables = append(page.Tables, align(run))
		}
		run, pending = nil, nil
	}
	for _, l := range lines {
		text = append(text, l.text())
		if len(l.cells) >= minTableCells {
			for _, p := range pending {
				p.wrap = true
				run = append(run, p)
			}
			pending = nil
			run = append(run, l)
			continue
		}
		if len(run) == 0 || len(pending) == maxWrapLines {
			flush()
			continue
		}
		pending = append(pending, l)
	}
	flush()

	page.Text = strings.Join(text, "\n")
	return page
}

func tabularRows(run []line) int {
	n := 0
	for _, l := range run {
		if !l.wrap {
			n++
		}
	}
	return n
}

// align maps every cell of a run onto the nearest column of its widest
// row. Wrapped lines extend the cells of the row above.
func align(run []line) extractor.Table {
	anchors := widest(run).cells
	table := make(extractor.Table, 0, len(run))
	for _, l := range run {
		if l.wrap {
			last := table[len(table)-1]
			for _, c := range l.cells {
				appendText(last, nearest(anchors, c.center()), c.text)
			}
			continue
		}
		row := make(extractor.Row, len(anchors))
		for _, c := range l.cells {
			appendText(row, nearest(anchors, c.center()), c.text)
		}
		table = append(table, row)
	}
	return table
}

// widest returns the first row with the most cells, normally the header.
func widest(run []line) line {
	best := run[0]
	for _, l := range run[1:] {
		if !l.wrap && len(l.cells) > len(best.cells) {
			best = l
		}
	}
	return best
}

func appendText(row extractor.Row, i int, text string) {
	if row[i] == "" {
		row[i] = text
	} else {
		row[i] += " " + text
	}
}

func nearest(anchors []cell, x float64) int {
	best, dist := 0, math.Inf(1)
	for i, a := range anchors {
		if x >= a.x0 && x <= a.x1 {
			return i
		}
		if d := math.Abs(a.center() - x); d < dist {
			best, dist = i, d
		}
	}
	return best
}

func splitCells(row []Glyph) []cell {
	glyphs := make([]Glyph, len(row))
	copy(glyphs, row)
	sort.SliceStable(glyphs, func(i, j int) bool { return glyphs[i].X < glyphs[j].X })

	var cells []cell
	var cur strings.Builder
	start, end := 0.0, 0.0
	for i, g := range glyphs {
		if i == 0 {
			start = g.X
		} else {
			gap := g.X - end
			switch {
			case gap > cellGap*fontSize(g):
				cells = appendCell(cells, cur.String(), start, end)
				cur.Reset()
				start = g.X
			case gap > wordGap*fontSize(g):
				cur.WriteByte(' ')
			}
		}
		cur.WriteString(g.S)
		end = g.X + width(g)
	}
	return appendCell(cells, cur.String(), start, end)
}

func appendCell(cells []cell, s string, x0, x1 float64) []cell {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return cells
	}
	return append(cells, cell{text: s, x0: x0, x1: x1})
}

func fontSize(g Glyph) float64 {
	if g.FontSize <= 0 {
		return defaultFont
	}
	return g.FontSize
}

// width falls back to an average glyph width when the font reports none.
func width(g Glyph) float64 {
	if g.W > 0 {
		return g.W
	}
	return 0.5 * fontSize(g) * float64(len([]rune(g.S)))
}
