package main

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

const (
	noDataMessage = "No data loaded"
	maxBarWidth   = 9
	barGap        = 1
)

// canvasCell is one terminal column. A zero char marks the right half of
// the double-width rune in the cell before it.
type canvasCell struct {
	char  rune
	style lipgloss.Style
}

func blankCell() canvasCell {
	return canvasCell{char: ' ', style: lipgloss.NewStyle()}
}

type canvasGrid [][]canvasCell

func newCanvasGrid(width, height int) canvasGrid {
	grid := make(canvasGrid, height)
	for row := range grid {
		grid[row] = make([]canvasCell, width)
		for col := range grid[row] {
			grid[row][col] = blankCell()
		}
	}
	return grid
}

func (g canvasGrid) inside(x, y int) bool {
	return y >= 0 && y < len(g) && x >= 0 && x < len(g[y])
}

func (g canvasGrid) set(x, y int, r rune, style lipgloss.Style) {
	if g.inside(x, y) {
		g.unpair(x, y)
		g[y][x] = canvasCell{char: r, style: style}
	}
}

// unpair blanks the other half of a double-width rune about to lose one of
// its cells, so the row keeps its width.
func (g canvasGrid) unpair(x, y int) {
	row := g[y]
	switch {
	case row[x].char == 0 && x > 0:
		row[x-1] = blankCell()
	case runewidth.RuneWidth(row[x].char) == 2 && x+1 < len(row):
		row[x+1] = blankCell()
	}
}

// text writes s left to right from (x, y), clipping at the grid edge. A
// double-width rune that would straddle the edge becomes a blank.
func (g canvasGrid) text(x, y int, s string, style lipgloss.Style) {
	for _, r := range s {
		if runewidth.RuneWidth(r) < 2 {
			g.set(x, y, r, style)
			x++
			continue
		}
		if g.inside(x, y) && g.inside(x+1, y) {
			g.unpair(x+1, y)
			g.set(x, y, r, style)
			g[y][x+1] = canvasCell{style: style}
		} else {
			g.set(x, y, ' ', style)
		}
		x += 2
	}
}

func (g canvasGrid) centered(y int, s string, style lipgloss.Style) {
	if len(g) == 0 {
		return
	}
	x := (len(g[0]) - runewidth.StringWidth(s)) / 2
	g.text(max(x, 0), y, s, style)
}

func (g canvasGrid) String() string {
	var b strings.Builder
	for row, cells := range g {
		for _, cell := range cells {
			if cell.char == 0 {
				continue
			}
			b.WriteString(cell.style.Render(string(cell.char)))
		}
		if row < len(g)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// drawLine plots a Bresenham line, leaving occupied cells alone.
func (g canvasGrid) drawLine(startX, startY, endX, endY int, style lipgloss.Style) {
	deltaX := absInt(endX - startX)
	deltaY := absInt(endY - startY)

	stepX := 1
	if startX > endX {
		stepX = -1
	}
	stepY := 1
	if startY > endY {
		stepY = -1
	}

	errTerm := deltaX - deltaY
	x, y := startX, startY
	for {
		if g.inside(x, y) && g[y][x].char == ' ' {
			g[y][x] = canvasCell{char: '·', style: style}
		}
		if x == endX && y == endY {
			break
		}
		doubled := 2 * errTerm
		if doubled > -deltaY {
			errTerm -= deltaY
			x += stepX
		}
		if doubled < deltaX {
			errTerm += deltaX
			y += stepY
		}
	}
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// formatTick prints an axis value exactly, in the shortest form that
// round-trips.
func formatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// scaleToCells maps v in [lo, hi] onto 0..cells-1. A zero-width range puts
// every value in the middle instead of dividing by zero.
func scaleToCells(v, lo, hi float64, cells int) int {
	if cells <= 1 {
		return 0
	}
	if hi == lo {
		return (cells - 1) / 2
	}
	pos := int(math.Round((v - lo) / (hi - lo) * float64(cells-1)))
	return min(max(pos, 0), cells-1)
}

// renderLineChart draws axes labelled with the exact bounds and joins the
// points in series order.
//
//	yMax │      •
//	   Y │   ·· ·
//	yMin │•·
//	     └───────
//	     xMin X xMax
func renderLineChart(panel ChartPanel, width, height int, s styles) string {
	grid := newCanvasGrid(width, height)
	b := panel.Bounds

	yTop, yBottom := formatTick(b.YMax), formatTick(b.YMin)
	labelWidth := max(runewidth.StringWidth(yTop), runewidth.StringWidth(yBottom), runewidth.StringWidth(panel.YTitle))
	labelWidth = min(labelWidth, width/3)

	plotLeft := labelWidth + 1
	plotWidth := width - plotLeft
	plotHeight := height - 2
	if plotWidth < 2 || plotHeight < 1 {
		grid.centered(height/2, noDataMessage, s.muted)
		return grid.String()
	}

	// Axes.
	for row := 0; row < plotHeight; row++ {
		grid.set(labelWidth, row, '│', s.axis)
	}
	grid.set(labelWidth, plotHeight, '└', s.axis)
	for col := plotLeft; col < width; col++ {
		grid.set(col, plotHeight, '─', s.axis)
	}

	// Y labels, right aligned against the axis.
	yLabel := func(row int, label string) {
		label = truncate.String(label, uint(labelWidth))
		grid.text(labelWidth-runewidth.StringWidth(label), row, label, s.axis)
	}
	yLabel(0, yTop)
	if plotHeight > 1 {
		yLabel(plotHeight-1, yBottom)
	}
	if plotHeight > 2 {
		yLabel(plotHeight/2, panel.YTitle)
	}

	// X labels under the axis.
	xLeft, xRight := formatTick(b.XMin), formatTick(b.XMax)
	labelRow := plotHeight + 1
	grid.text(plotLeft, labelRow, xLeft, s.axis)
	grid.text(width-runewidth.StringWidth(xRight), labelRow, xRight, s.axis)
	titleCol := plotLeft + (plotWidth-runewidth.StringWidth(panel.XTitle))/2
	if titleCol > plotLeft+runewidth.StringWidth(xLeft) {
		grid.text(titleCol, labelRow, panel.XTitle, s.axis)
	}

	if len(panel.Points) == 0 {
		grid.centered(plotHeight/2, noDataMessage, s.muted)
		return grid.String()
	}

	cellOf := func(p Point) (int, int) {
		col := plotLeft + scaleToCells(p.X, b.XMin, b.XMax, plotWidth)
		row := plotHeight - 1 - scaleToCells(p.Y, b.YMin, b.YMax, plotHeight)
		return col, row
	}

	prevX, prevY := cellOf(panel.Points[0])
	for _, p := range panel.Points[1:] {
		x, y := cellOf(p)
		grid.drawLine(prevX, prevY, x, y, s.series)
		prevX, prevY = x, y
	}
	for _, p := range panel.Points {
		x, y := cellOf(p)
		grid.set(x, y, '•', s.marker)
	}

	return grid.String()
}

// barLayout picks a bar width so that as many bars as possible fit; bars
// past the right edge are clipped.
func barLayout(count, width int) (barWidth, visible int) {
	if count == 0 || width <= 0 {
		return 0, 0
	}
	barWidth = (width+barGap)/count - barGap
	barWidth = min(max(barWidth, 1), maxBarWidth)
	visible = min(count, (width+barGap)/(barWidth+barGap))
	return barWidth, visible
}

func barHeight(value, highest uint64, rows int) int {
	if highest == 0 || value == 0 || rows <= 0 {
		return 0
	}
	h := int(math.Round(float64(value) / float64(highest) * float64(rows)))
	return min(max(h, 1), rows)
}

// renderBarChart draws one vertical bar per record in file order, value on
// top and label underneath.
func renderBarChart(panel ChartPanel, width, height int, s styles) string {
	grid := newCanvasGrid(width, height)
	plotHeight := height - 2
	if len(panel.Bars) == 0 || plotHeight < 1 {
		grid.centered(height/2, noDataMessage, s.muted)
		return grid.String()
	}

	var highest uint64
	for _, bar := range panel.Bars {
		highest = max(highest, bar.Value)
	}

	barWidth, visible := barLayout(len(panel.Bars), width)
	for i, bar := range panel.Bars[:visible] {
		left := i * (barWidth + barGap)
		style := lipgloss.NewStyle().Foreground(palette[bar.Color%paletteSize])

		h := barHeight(bar.Value, highest, plotHeight-1)
		top := plotHeight - h
		for row := top; row < plotHeight; row++ {
			for col := left; col < left+barWidth; col++ {
				grid.set(col, row, '█', style)
			}
		}

		value := truncate.String(strconv.FormatUint(bar.Value, 10), uint(barWidth))
		grid.text(left+(barWidth-runewidth.StringWidth(value))/2, top-1, value, s.emphasis)

		label := truncate.String(bar.Label, uint(barWidth))
		grid.text(left+(barWidth-runewidth.StringWidth(label))/2, plotHeight, label, s.axis)
	}

	if visible < len(panel.Bars) {
		more := "+" + strconv.Itoa(len(panel.Bars)-visible)
		grid.text(width-runewidth.StringWidth(more), height-1, more, s.muted)
	}

	return grid.String()
}
