package main

import (
	"path/filepath"

	"github.com/mattn/go-runewidth"
)

// Plan lays out one frame for a terminal of the given size. It has no side
// effects and reads nothing but its arguments.
func Plan(state AppState, width, height int) DrawPlan {
	areas := splitLayout(width, height)

	plan := DrawPlan{
		Width:  width,
		Height: height,
		Help:   planHelp(state, areas[0]),
		Input: InputBox{
			Area:   areas[1],
			Title:  inputTitle,
			Text:   state.PathBuffer,
			Active: state.Mode == ModeEditing,
		},
		Status: planStatus(state, areas[2]),
	}

	if state.Mode == ModeEditing {
		plan.Input.Cursor = &Position{
			X: areas[1].X + runewidth.StringWidth(state.PathBuffer) + 1,
			Y: areas[1].Y + 1,
		}
	}

	var chart ChartPanel
	if state.Series != nil {
		chart = state.Series.Panel()
	} else {
		chart = emptyPanel(state.Kind)
	}
	chart.Area = areas[3]
	chart.Title = panelTitle(state.Source)
	plan.Chart = chart

	return plan
}

// splitLayout stacks help, input, status and chart inside the screen margin.
// Fixed regions shrink when the terminal is too short; the chart takes what
// is left, possibly nothing.
func splitLayout(width, height int) [4]Rect {
	innerWidth := max(width-2*screenMargin, 0)
	remaining := max(height-2*screenMargin, 0)

	var areas [4]Rect
	y := screenMargin
	for i, h := range []int{helpHeight, inputHeight, statusHeight} {
		h = min(h, remaining)
		areas[i] = Rect{X: screenMargin, Y: y, Width: innerWidth, Height: h}
		y += h
		remaining -= h
	}
	areas[3] = Rect{X: screenMargin, Y: y, Width: innerWidth, Height: remaining}
	return areas
}

func planHelp(state AppState, area Rect) HelpLine {
	if state.Mode == ModeEditing {
		return HelpLine{
			Area: area,
			Spans: []Span{
				{Text: "Press "},
				{Text: "Esc", Emphasis: true},
				{Text: " to stop editing, "},
				{Text: "Enter", Emphasis: true},
				{Text: " to load the file."},
			},
		}
	}

	spans := []Span{
		{Text: "Press "},
		{Text: "q", Emphasis: true},
		{Text: " to exit, "},
		{Text: "e", Emphasis: true},
		{Text: " to start editing"},
	}
	if state.Series != nil {
		spans = append(spans,
			Span{Text: ", "},
			Span{Text: "s", Emphasis: true},
			Span{Text: " to save a PNG, "},
			Span{Text: "t", Emphasis: true},
			Span{Text: " as text"},
		)
	}
	spans = append(spans, Span{Text: "."})
	return HelpLine{Area: area, Spans: spans, Blink: true}
}

func planStatus(state AppState, area Rect) StatusLine {
	switch {
	case state.Notice != "":
		return StatusLine{Area: area, Text: state.Notice}
	case state.LastError != "":
		return StatusLine{Area: area, Text: state.LastError, Alert: true}
	default:
		return StatusLine{Area: area, Text: statusPlaceholder}
	}
}

func panelTitle(source string) string {
	if source == "" {
		return chartTitle
	}
	return chartTitle + " (" + filepath.Base(source) + ")"
}
