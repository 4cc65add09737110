package main

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const (
	pngWidth    = 800
	pngHeight   = 480
	pngMargin   = 60.0
	pngFontSize = 12.0
)

// pngPalette mirrors the terminal bar palette.
var pngPalette = [paletteSize]color.RGBA{
	{R: 0xcd, G: 0x31, B: 0x31, A: 0xff},
	{R: 0x0d, G: 0xbc, B: 0x79, A: 0xff},
	{R: 0xe5, G: 0xb5, B: 0x10, A: 0xff},
	{R: 0x24, G: 0x72, B: 0xc8, A: 0xff},
	{R: 0xbc, G: 0x3f, B: 0xbc, A: 0xff},
	{R: 0x11, G: 0xa8, B: 0xcd, A: 0xff},
}

var (
	pngAxisColor   = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
	pngSeriesColor = color.RGBA{R: 0x11, G: 0xa8, B: 0xcd, A: 0xff}
)

// ExportPNG draws the panel's chart into a PNG image at filename.
func ExportPNG(panel ChartPanel, filename string) error {
	if panel.Empty() {
		return fmt.Errorf("nothing to export")
	}

	dc := gg.NewContext(pngWidth, pngHeight)
	dc.SetColor(color.White)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    pngFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}))

	dc.SetColor(color.Black)
	dc.DrawStringAnchored(panel.Title, pngWidth/2, pngMargin/2, 0.5, 0.5)

	left, top := pngMargin, pngMargin
	right, bottom := float64(pngWidth)-pngMargin/2, float64(pngHeight)-pngMargin

	dc.SetColor(pngAxisColor)
	dc.SetLineWidth(1)
	dc.DrawLine(left, top, left, bottom)
	dc.DrawLine(left, bottom, right, bottom)
	dc.Stroke()

	switch panel.Kind {
	case ChartBar:
		drawBarsPNG(dc, panel.Bars, left, top, right, bottom)
	default:
		drawLinePNG(dc, panel, left, top, right, bottom)
	}

	if err := dc.SavePNG(filename); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	return nil
}

// ExportText writes the chart panel as it appears on screen, without colors,
// to filename. The panel's Area sets the size.
func ExportText(panel ChartPanel, filename string) error {
	if panel.Empty() {
		return fmt.Errorf("nothing to export")
	}
	rendered := renderChartPanel(panel, newStyles())
	if rendered == "" {
		return fmt.Errorf("chart area too small")
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	for _, line := range strings.Split(ansi.Strip(rendered), "\n") {
		if _, err := fmt.Fprintln(file, line); err != nil {
			return fmt.Errorf("writing %s: %w", filename, err)
		}
	}
	return nil
}

func pngScale(v, lo, hi, from, to float64) float64 {
	if hi == lo {
		return (from + to) / 2
	}
	return from + (v-lo)/(hi-lo)*(to-from)
}

func drawLinePNG(dc *gg.Context, panel ChartPanel, left, top, right, bottom float64) {
	b := panel.Bounds

	dc.SetColor(pngAxisColor)
	dc.DrawStringAnchored(formatTick(b.YMax), left-6, top, 1, 0.5)
	dc.DrawStringAnchored(formatTick(b.YMin), left-6, bottom, 1, 0.5)
	dc.DrawStringAnchored(formatTick(b.XMin), left, bottom+14, 0, 0.5)
	dc.DrawStringAnchored(formatTick(b.XMax), right, bottom+14, 1, 0.5)
	dc.DrawStringAnchored(panel.XTitle, (left+right)/2, bottom+30, 0.5, 0.5)
	dc.DrawStringAnchored(panel.YTitle, left-30, (top+bottom)/2, 0.5, 0.5)

	at := func(p Point) (float64, float64) {
		return pngScale(p.X, b.XMin, b.XMax, left, right), pngScale(p.Y, b.YMin, b.YMax, bottom, top)
	}

	dc.SetColor(pngSeriesColor)
	dc.SetLineWidth(2)
	for i, p := range panel.Points {
		x, y := at(p)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.Stroke()

	for _, p := range panel.Points {
		x, y := at(p)
		dc.DrawCircle(x, y, 3)
		dc.Fill()
	}
}

func drawBarsPNG(dc *gg.Context, bars []Bar, left, top, right, bottom float64) {
	var highest uint64
	for _, bar := range bars {
		highest = max(highest, bar.Value)
	}

	slot := (right - left) / float64(len(bars))
	barWidth := slot * 0.7
	for i, bar := range bars {
		x := left + float64(i)*slot + (slot-barWidth)/2
		h := 0.0
		if highest > 0 {
			h = float64(bar.Value) / float64(highest) * (bottom - top)
		}

		dc.SetColor(pngPalette[bar.Color%paletteSize])
		dc.DrawRectangle(x, bottom-h, barWidth, h)
		dc.Fill()

		dc.SetColor(color.Black)
		dc.DrawStringAnchored(strconv.FormatUint(bar.Value, 10), x+barWidth/2, bottom-h-8, 0.5, 0.5)
		dc.SetColor(pngAxisColor)
		dc.DrawStringAnchored(bar.Label, x+barWidth/2, bottom+14, 0.5, 0.5)
	}
}
