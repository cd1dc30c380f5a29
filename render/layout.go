package render

import (
	"math"

	"github.com/uyouii/percentile-chart/model"
)

const (
	LegendBand = 50.0
	AxisBand   = 30.0

	// minimum pixels between two axis ticks
	tickSpacing = 80.0
)

type Margin struct {
	Top, Right, Bottom, Left float64
}

var DefaultMargin = Margin{Top: 10, Right: 20, Bottom: 10, Left: 10}

type Rect struct {
	X, Y, Width, Height float64
}

// Layout splits the viewport into the plot area and the bands holding the
// axes and the legends. The y legend and axis sit left of the plot, the x
// axis and legend below it.
type Layout struct {
	Viewport model.Viewport
	Margin   Margin
	Plot     Rect
}

func NewLayout(viewport model.Viewport, margin Margin) Layout {
	plot := Rect{
		X:      margin.Left + LegendBand + AxisBand,
		Y:      margin.Top,
		Width:  viewport.Width - margin.Left - margin.Right - LegendBand - AxisBand,
		Height: viewport.Height - margin.Top - margin.Bottom - LegendBand - AxisBand,
	}
	plot.Width = math.Max(plot.Width, 0)
	plot.Height = math.Max(plot.Height, 0)
	return Layout{Viewport: viewport, Margin: margin, Plot: plot}
}

// XLegendAnchor is the horizontal center of the band below the x axis.
func (l Layout) XLegendAnchor() (float64, float64) {
	return l.Plot.X + l.Plot.Width/2, l.Plot.Y + l.Plot.Height + AxisBand + LegendBand/2
}

// YLegendAnchor is the vertical center of the band left of the y axis.
func (l Layout) YLegendAnchor() (float64, float64) {
	return l.Margin.Left + LegendBand/2, l.Plot.Y + l.Plot.Height/2
}

func (l Layout) MaxXTicks() int {
	return int(math.Max(2, math.Floor(l.Plot.Width/tickSpacing)))
}

func (l Layout) MaxYTicks() int {
	return int(math.Max(2, math.Min(11, math.Floor(l.Plot.Height/(tickSpacing/2)))))
}
