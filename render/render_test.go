package render

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/percentile-chart/model"
	"github.com/uyouii/percentile-chart/viewmodel"
)

var viewport = model.Viewport{Width: 640, Height: 400}

func build(t *testing.T, ds *model.Dataset) *viewmodel.ViewModel {
	t.Helper()
	return viewmodel.NewBuilder().Build(context.Background(), viewmodel.Input{Dataset: ds})
}

func TestNewLayout(t *testing.T) {
	layout := NewLayout(viewport, Margin{Top: 10, Right: 20, Bottom: 10, Left: 10})
	assert.Equal(t, 90.0, layout.Plot.X)
	assert.Equal(t, 10.0, layout.Plot.Y)
	assert.Equal(t, 640.0-10-20-50-30, layout.Plot.Width)
	assert.Equal(t, 400.0-10-10-50-30, layout.Plot.Height)

	x, y := layout.XLegendAnchor()
	assert.Equal(t, layout.Plot.X+layout.Plot.Width/2, x)
	assert.Equal(t, layout.Plot.Y+layout.Plot.Height+AxisBand+LegendBand/2, y)

	tiny := NewLayout(model.Viewport{Width: 50, Height: 50}, DefaultMargin)
	assert.Equal(t, 0.0, tiny.Plot.Width)
	assert.Equal(t, 0.0, tiny.Plot.Height)
	assert.Equal(t, 2, tiny.MaxXTicks())
}

func TestRenderChart(t *testing.T) {
	vm := build(t, &model.Dataset{
		Category: &model.Column{DisplayName: "Region"},
		Values:   &model.Column{DisplayName: "Latency", Values: []any{13.0, 40.0, 77.0, 21.5}},
	})

	var buf bytes.Buffer
	require.NoError(t, Render(context.Background(), &buf, vm, viewport))
	out := buf.String()

	assert.True(t, strings.HasPrefix(strings.TrimSpace(out), "<?xml"))
	assert.Contains(t, out, "<polyline")
	assert.Contains(t, out, "stroke:#01B8AA")
	assert.Contains(t, out, "Latency per Region")
	assert.Contains(t, out, ">Percentile<")
	assert.Contains(t, out, "rotate(270")
	assert.Equal(t, 101, strings.Count(out, "<circle"))
	assert.Contains(t, out, "Percentile: 50")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))
}

func TestRenderDegraded(t *testing.T) {
	vm := build(t, &model.Dataset{Values: &model.Column{Values: []any{"a", "b"}}})

	var buf bytes.Buffer
	require.NoError(t, Render(context.Background(), &buf, vm, viewport))
	out := buf.String()

	assert.Contains(t, out, viewmodel.InvalidDataLegend)
	assert.NotContains(t, out, "<polyline")
	assert.NotContains(t, out, "x-axis")
}

func TestRenderSingleValueAndDates(t *testing.T) {
	vm := build(t, &model.Dataset{Values: &model.Column{Values: []any{10.0}}})
	var buf bytes.Buffer
	require.NoError(t, Render(context.Background(), &buf, vm, viewport))
	assert.Contains(t, buf.String(), "<polyline")

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	vm = build(t, &model.Dataset{Values: &model.Column{Values: []any{start, start.Add(72 * time.Hour)}}})
	buf.Reset()
	require.NoError(t, Render(context.Background(), &buf, vm, viewport))
	assert.Contains(t, buf.String(), "2024-01-0")
}

func TestRenderEscapesText(t *testing.T) {
	vm := build(t, &model.Dataset{Values: &model.Column{DisplayName: "a<b", Values: []any{1.0, 2.0}}})
	var buf bytes.Buffer
	require.NoError(t, Render(context.Background(), &buf, vm, viewport))
	assert.Contains(t, buf.String(), "a&lt;b")
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestRenderReportsWriteError(t *testing.T) {
	vm := build(t, &model.Dataset{Values: &model.Column{Values: []any{1.0}}})
	err := Render(context.Background(), failingWriter{}, vm, viewport)
	assert.EqualError(t, err, "disk full")
}

func TestRenderTemporalCenturies(t *testing.T) {
	vm := build(t, &model.Dataset{
		Values: &model.Column{DisplayName: "Founded", Type: model.ColumnDateTime, Values: []any{
			time.Date(1650, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		}},
	})
	require.False(t, vm.IsDegraded())

	var buf bytes.Buffer
	require.NoError(t, Render(context.Background(), &buf, vm, viewport))
	out := buf.String()
	assert.Contains(t, out, "<polyline")
	assert.LessOrEqual(t, strings.Count(out, "text-anchor:middle\""), NewLayout(viewport, DefaultMargin).MaxXTicks()+3)
}
