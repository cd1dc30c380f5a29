package render

import (
	"context"
	"fmt"
	"io"
	"math"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/uyouii/percentile-chart/axis"
	"github.com/uyouii/percentile-chart/model"
	"github.com/uyouii/percentile-chart/utils"
	"github.com/uyouii/percentile-chart/viewmodel"
	"go.uber.org/zap"
)

const (
	axisStyle       = "stroke:#666666;stroke-width:1"
	tickLabelStyle  = "font-family:sans-serif;font-size:11px;fill:#666666"
	legendStyle     = "font-family:sans-serif;font-size:13px;fill:#333333;text-anchor:middle"
	diagnosticStyle = "font-family:sans-serif;font-size:14px;fill:#a00000;text-anchor:middle"
	tickLength      = 5
	pointRadius     = 3
)

// errWriter keeps the first write error, svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, nil
}

func px(f float64) int {
	return int(math.Round(f))
}

var colorReplacer = strings.NewReplacer(";", "", "\"", "", "'", "", "<", "", ">", "", ":", "")

// Render draws vm into an SVG document of the viewport size. A degraded view
// model only draws its diagnostic text.
func Render(ctx context.Context, w io.Writer, vm *viewmodel.ViewModel, viewport model.Viewport) error {
	logger := utils.GetLogger(ctx)

	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(px(viewport.Width), px(viewport.Height))

	if vm.IsDegraded() {
		logger.Debug("render diagnostic", zap.String("text", vm.Diagnostic()))
		canvas.Text(px(viewport.Width/2), px(viewport.Height/2), vm.Diagnostic(), diagnosticStyle)
		canvas.End()
		return ew.err
	}

	layout := NewLayout(viewport, DefaultMargin)
	plot := layout.Plot
	xScale := vm.Strategy().Scale(vm.XDomain, plot.X, plot.X+plot.Width)
	yScale := axis.NewLinear(vm.YDomain, plot.Y+plot.Height, plot.Y)

	drawXAxis(canvas, vm, layout, xScale)
	drawYAxis(canvas, layout, yScale)
	drawCurve(canvas, vm, xScale, yScale)
	drawLegends(canvas, vm, layout)

	canvas.End()
	if ew.err != nil {
		logger.Error("write svg failed", zap.Error(ew.err))
	}
	return ew.err
}

func drawXAxis(canvas *svg.SVG, vm *viewmodel.ViewModel, layout Layout, scale axis.Scale) {
	plot := layout.Plot
	y := px(plot.Y + plot.Height)
	canvas.Gid("x-axis")
	canvas.Line(px(plot.X), y, px(plot.X+plot.Width), y, axisStyle)
	for _, tick := range scale.Ticks(layout.MaxXTicks()) {
		x := px(scale.Map(tick))
		canvas.Line(x, y, x, y+tickLength, axisStyle)
		canvas.Text(x, y+tickLength+12, vm.Formatter.Format(tick), tickLabelStyle+";text-anchor:middle")
	}
	canvas.Gend()
}

func drawYAxis(canvas *svg.SVG, layout Layout, scale axis.Scale) {
	plot := layout.Plot
	x := px(plot.X)
	canvas.Gid("y-axis")
	canvas.Line(x, px(plot.Y), x, px(plot.Y+plot.Height), axisStyle)
	for _, tick := range scale.Ticks(layout.MaxYTicks()) {
		y := px(scale.Map(tick))
		canvas.Line(x-tickLength, y, x, y, axisStyle)
		canvas.Text(x-tickLength-3, y+4, fmt.Sprintf("%g", tick), tickLabelStyle+";text-anchor:end")
	}
	canvas.Gend()
}

func drawCurve(canvas *svg.SVG, vm *viewmodel.ViewModel, xScale, yScale axis.Scale) {
	color := colorReplacer.Replace(vm.Settings.FillColor)
	xs := make([]int, len(vm.Points))
	ys := make([]int, len(vm.Points))
	for i, p := range vm.Points {
		xs[i] = px(xScale.Map(p.Value))
		ys[i] = px(yScale.Map(float64(p.Percentile)))
	}

	canvas.Gid("curve")
	canvas.Polyline(xs, ys, "fill:none;stroke-width:2;stroke:"+color)
	for i := range vm.Points {
		canvas.Group(`class="point"`)
		var title []string
		for _, item := range vm.Tooltip(i) {
			title = append(title, item.DisplayName+": "+item.Value)
		}
		canvas.Title(strings.Join(title, "\n"))
		canvas.Circle(xs[i], ys[i], pointRadius, "fill-opacity:0;fill:"+color)
		canvas.Gend()
	}
	canvas.Gend()
}

func drawLegends(canvas *svg.SVG, vm *viewmodel.ViewModel, layout Layout) {
	if legend, ok := vm.Legend(model.XAxis); ok && legend.Text != "" {
		x, y := layout.XLegendAnchor()
		canvas.Text(px(x), px(y), legend.Text, legendStyle)
	}
	if legend, ok := vm.Legend(model.YAxis); ok {
		x, y := layout.YLegendAnchor()
		canvas.TranslateRotate(px(x), px(y), 270)
		canvas.Text(0, 0, legend.Text, legendStyle)
		canvas.Gend()
	}
}
