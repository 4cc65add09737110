package main

type Point struct {
	X, Y float64
}

type AxisBounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// DefaultBounds is used before anything has been loaded.
var DefaultBounds = AxisBounds{XMin: 0, XMax: 10, YMin: 0, YMax: 10}

// Bounds returns the exact extent of points on both axes. No padding or
// rounding is applied; a single distinct value yields min == max.
func Bounds(points []Point) AxisBounds {
	if len(points) == 0 {
		return DefaultBounds
	}
	b := AxisBounds{
		XMin: points[0].X, XMax: points[0].X,
		YMin: points[0].Y, YMax: points[0].Y,
	}
	for _, p := range points[1:] {
		if p.X < b.XMin {
			b.XMin = p.X
		}
		if p.X > b.XMax {
			b.XMax = p.X
		}
		if p.Y < b.YMin {
			b.YMin = p.Y
		}
		if p.Y > b.YMax {
			b.YMax = p.Y
		}
	}
	return b
}

type Bar struct {
	Label string
	Value uint64
	Color int // index into the bar palette
}

// Series is a loaded, non-empty set of records that knows how to present
// itself as a chart panel.
type Series interface {
	Kind() ChartKind
	Len() int
	Panel() ChartPanel
}

type LineSeries struct {
	points []Point
	bounds AxisBounds
}

func NewLineSeries(points []Point) *LineSeries {
	owned := make([]Point, len(points))
	copy(owned, points)
	return &LineSeries{points: owned, bounds: Bounds(owned)}
}

func (s *LineSeries) Kind() ChartKind    { return ChartLine }
func (s *LineSeries) Len() int           { return len(s.points) }
func (s *LineSeries) Points() []Point    { return s.points }
func (s *LineSeries) Bounds() AxisBounds { return s.bounds }

func (s *LineSeries) Panel() ChartPanel {
	return ChartPanel{
		Kind:   ChartLine,
		Bounds: s.bounds,
		Points: s.points,
		XTitle: "X",
		YTitle: "Y",
	}
}

// CategorySeries keeps bars in file order. Repeated labels are separate bars.
type CategorySeries struct {
	bars []Bar
}

// NewCategorySeries copies bars and assigns each one a palette slot by
// position, rotating through paletteSize colors.
func NewCategorySeries(bars []Bar) *CategorySeries {
	owned := make([]Bar, len(bars))
	for i, bar := range bars {
		bar.Color = i % paletteSize
		owned[i] = bar
	}
	return &CategorySeries{bars: owned}
}

func (s *CategorySeries) Kind() ChartKind { return ChartBar }
func (s *CategorySeries) Len() int        { return len(s.bars) }
func (s *CategorySeries) Bars() []Bar     { return s.bars }

func (s *CategorySeries) Panel() ChartPanel {
	return ChartPanel{
		Kind: ChartBar,
		Bars: s.bars,
	}
}

// emptyPanel is what the chart region shows before a file is loaded.
func emptyPanel(kind ChartKind) ChartPanel {
	panel := ChartPanel{Kind: kind}
	if kind == ChartLine {
		panel.Bounds = DefaultBounds
		panel.XTitle = "X"
		panel.YTitle = "Y"
	}
	return panel
}
