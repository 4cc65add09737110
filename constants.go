package main

import (
	"fmt"
	"strings"
)

type Mode int

const (
	ModeNormal Mode = iota
	ModeEditing
)

// ChartKind selects both the row type rule used when parsing and the chart
// presentation used when drawing.
type ChartKind int

const (
	ChartLine ChartKind = iota
	ChartBar
)

func (k ChartKind) String() string {
	switch k {
	case ChartBar:
		return "bar"
	default:
		return "line"
	}
}

func parseChartKind(name string) (ChartKind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "line", "scatter", "xy":
		return ChartLine, nil
	case "bar", "bars", "category":
		return ChartBar, nil
	default:
		return ChartLine, fmt.Errorf("unknown chart type %q (want line or bar)", name)
	}
}

const (
	paletteSize      = 6 // Number of bar colors
	defaultDelimiter = ','

	screenMargin = 2
	helpHeight   = 1
	inputHeight  = 3
	statusHeight = 3

	defaultWidth  = 80
	defaultHeight = 24
)

const (
	inputTitle        = "CSV Path"
	chartTitle        = "Data Chart"
	statusPlaceholder = "Enter a CSV path (e.g., test.csv) and press Enter"
)
