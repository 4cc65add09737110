package main

// AppState is everything the loop needs to draw a frame and react to a key.
// Only the bubbletea model holds it; helpers get copies or the fields they need.
type AppState struct {
	Mode       Mode
	Kind       ChartKind
	PathBuffer string
	Series     Series
	Source     string // path the current Series was loaded from
	LastError  string
	Notice     string
	Running    bool
}

type Rect struct {
	X, Y          int
	Width, Height int
}

type Position struct {
	X, Y int
}

type Span struct {
	Text     string
	Emphasis bool
}

type HelpLine struct {
	Area  Rect
	Spans []Span
	Blink bool
}

type InputBox struct {
	Area   Rect
	Title  string
	Text   string
	Active bool
	Cursor *Position // nil unless editing
}

type StatusLine struct {
	Area  Rect
	Text  string
	Alert bool
}

// ChartPanel is the renderer-facing view of a Series. Exactly one of
// Points or Bars is populated, according to Kind.
type ChartPanel struct {
	Area   Rect
	Title  string
	Kind   ChartKind
	Bounds AxisBounds
	Points []Point
	Bars   []Bar
	XTitle string
	YTitle string
}

func (p ChartPanel) Empty() bool {
	return len(p.Points) == 0 && len(p.Bars) == 0
}

// DrawPlan describes one frame. It carries no behavior.
type DrawPlan struct {
	Width, Height int
	Help          HelpLine
	Input         InputBox
	Status        StatusLine
	Chart         ChartPanel
}
