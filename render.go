package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

// palette holds the bar colors; Bar.Color indexes it.
var palette = [paletteSize]lipgloss.Color{
	lipgloss.Color("1"), // red
	lipgloss.Color("2"), // green
	lipgloss.Color("3"), // yellow
	lipgloss.Color("4"), // blue
	lipgloss.Color("5"), // magenta
	lipgloss.Color("6"), // cyan
}

type styles struct {
	plain       lipgloss.Style
	emphasis    lipgloss.Style
	input       lipgloss.Style
	inputActive lipgloss.Style
	inputTitle  lipgloss.Style
	alert       lipgloss.Style
	chart       lipgloss.Style
	chartTitle  lipgloss.Style
	axis        lipgloss.Style
	series      lipgloss.Style
	marker      lipgloss.Style
	muted       lipgloss.Style
}

func newStyles() styles {
	borderColor := lipgloss.Color("8")

	return styles{
		plain:    lipgloss.NewStyle(),
		emphasis: lipgloss.NewStyle().Bold(true),

		input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor),

		inputActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("3")).
			Foreground(lipgloss.Color("3")),

		inputTitle: lipgloss.NewStyle().Bold(true),

		alert: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),

		chart: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(borderColor),

		chartTitle: lipgloss.NewStyle().Bold(true),
		axis:       lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		series:     lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		marker:     lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// renderPlan draws a DrawPlan into a full-screen string.
func renderPlan(plan DrawPlan) string {
	if plan.Width <= 0 || plan.Height <= 0 {
		return ""
	}
	s := newStyles()

	rows := make([]string, plan.Height)
	place(rows, plan.Help.Area, renderHelp(plan.Help, s))
	place(rows, plan.Input.Area, renderInput(plan.Input, s))
	place(rows, plan.Status.Area, renderStatus(plan.Status, s))
	place(rows, plan.Chart.Area, renderChartPanel(plan.Chart, s))

	screen := strings.Join(rows, "\n")
	if c := plan.Input.Cursor; c != nil {
		// A path wider than the box scrolls, so the cursor stops at the
		// last inner column.
		area := plan.Input.Area
		x := min(c.X, area.X+area.Width-2)
		screen = overlayAt(screen, "█", x, c.Y)
	}
	return screen
}

// place writes block into rows starting at area's origin, clipped to area.
func place(rows []string, area Rect, block string) {
	if area.Width <= 0 || area.Height <= 0 || block == "" {
		return
	}
	for i, line := range strings.Split(block, "\n") {
		if i >= area.Height || area.Y+i >= len(rows) {
			break
		}
		rows[area.Y+i] = strings.Repeat(" ", area.X) + truncate.String(line, uint(area.Width))
	}
}

func renderHelp(help HelpLine, s styles) string {
	var b strings.Builder
	for _, span := range help.Spans {
		style := s.plain
		if span.Emphasis {
			style = s.emphasis
		}
		if help.Blink {
			style = style.Copy().Blink(true)
		}
		b.WriteString(style.Render(span.Text))
	}
	return b.String()
}

func renderInput(box InputBox, s styles) string {
	if box.Area.Width < 3 || box.Area.Height < 3 {
		return box.Text
	}
	style := s.input
	if box.Active {
		style = s.inputActive
	}
	innerWidth := box.Area.Width - 2

	// Keep the tail of a long path visible, like a scrolled input line.
	text := box.Text
	if w := ansi.StringWidth(text); w >= innerWidth {
		text = ansi.TruncateLeft(text, w-innerWidth+1, "")
	}
	rendered := style.Copy().Width(innerWidth).Render(text)
	return withTitle(rendered, s.inputTitle.Render(box.Title))
}

func renderStatus(status StatusLine, s styles) string {
	style := s.plain
	if status.Alert {
		style = s.alert
	}
	return style.Copy().Width(status.Area.Width).Render(status.Text)
}

func renderChartPanel(panel ChartPanel, s styles) string {
	area := panel.Area
	if area.Width < 3 || area.Height < 3 {
		return ""
	}
	innerWidth, innerHeight := area.Width-2, area.Height-2

	var body string
	switch panel.Kind {
	case ChartBar:
		body = renderBarChart(panel, innerWidth, innerHeight, s)
	default:
		body = renderLineChart(panel, innerWidth, innerHeight, s)
	}

	framed := s.chart.Copy().
		Width(innerWidth).
		Height(innerHeight).
		Render(body)
	title := truncate.String(panel.Title, uint(innerWidth))
	return withTitle(framed, s.chartTitle.Render(title))
}

// withTitle writes title into the top border of a framed block.
func withTitle(framed, title string) string {
	if title == "" {
		return framed
	}
	return overlayAt(framed, title, 1, 0)
}

// overlayAt replaces the cells under fg, starting at column x of line y.
func overlayAt(base, fg string, x, y int) string {
	lines := strings.Split(base, "\n")
	if y < 0 || y >= len(lines) || x < 0 {
		return base
	}

	line := lines[y]
	lineWidth := ansi.StringWidth(line)
	fgWidth := ansi.StringWidth(fg)

	var b strings.Builder
	left := truncate.String(line, uint(x))
	pos := ansi.StringWidth(left)
	b.WriteString(left)
	if pos < x {
		b.WriteString(strings.Repeat(" ", x-pos))
		pos = x
	}
	b.WriteString(fg)
	pos += fgWidth
	if pos < lineWidth {
		b.WriteString(ansi.TruncateLeft(line, pos, ""))
	}

	lines[y] = b.String()
	return strings.Join(lines, "\n")
}
